package products

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dzavadskis/minimart/internal/dbx"
	"github.com/dzavadskis/minimart/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a new product. Tags, additional image URLs and dimensions
// are stored as JSONB; dimensions stays NULL when absent.
func (r *PostgresRepository) Create(ctx context.Context, product *models.Product) (*models.Product, error) {

	tags, err := json.Marshal(product.Tags)
	if err != nil {
		return nil, fmt.Errorf("tags encode error: %w", err)
	}
	images, err := json.Marshal(product.Images)
	if err != nil {
		return nil, fmt.Errorf("images encode error: %w", err)
	}
	var dimensions []byte
	if product.Dimensions != nil {
		dimensions, err = json.Marshal(product.Dimensions)
		if err != nil {
			return nil, fmt.Errorf("dimensions encode error: %w", err)
		}
	}

	query :=
		`INSERT INTO products (name, description, price, discount_percent, final_price,
		                       category, brand, stock, rating, reviews_count, tags,
		                       color, size, weight, dimensions, image_url, images, is_active)
         VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
		 RETURNING id, created_at, updated_at
		 `

	err = r.db.QueryRowContext(ctx, query,
		product.Name, product.Description, product.Price, product.DiscountPercent,
		product.FinalPrice, product.Category, product.Brand, product.Stock,
		product.Rating, product.ReviewsCount, tags, product.Color, product.Size,
		product.Weight, dimensions, product.ImageURL, images, product.IsActive).
		Scan(&product.ID, &product.CreatedAt, &product.UpdatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return product, nil
}

// List returns all products, newest first.
func (r *PostgresRepository) List(ctx context.Context) ([]*models.Product, error) {
	query :=
		`SELECT id, name, description, price, discount_percent, final_price,
		        category, brand, stock, rating, reviews_count, tags,
		        color, size, weight, dimensions, image_url, images, is_active,
		        created_at, updated_at
		 FROM products
		 ORDER BY created_at DESC
		 `

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Product
	for rows.Next() {
		p := &models.Product{}
		var tags, dimensions, images []byte
		if err := rows.Scan(
			&p.ID, &p.Name, &p.Description, &p.Price, &p.DiscountPercent,
			&p.FinalPrice, &p.Category, &p.Brand, &p.Stock, &p.Rating,
			&p.ReviewsCount, &tags, &p.Color, &p.Size, &p.Weight, &dimensions,
			&p.ImageURL, &images, &p.IsActive, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		if err := json.Unmarshal(tags, &p.Tags); err != nil {
			return nil, fmt.Errorf("tags decode error: %w", err)
		}
		if err := json.Unmarshal(images, &p.Images); err != nil {
			return nil, fmt.Errorf("images decode error: %w", err)
		}
		if len(dimensions) > 0 {
			if err := json.Unmarshal(dimensions, &p.Dimensions); err != nil {
				return nil, fmt.Errorf("dimensions decode error: %w", err)
			}
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}
