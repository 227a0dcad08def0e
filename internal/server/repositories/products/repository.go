package products

import (
	"context"

	"github.com/dzavadskis/minimart/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, product *models.Product) (*models.Product, error)
	List(ctx context.Context) ([]*models.Product, error)
}
