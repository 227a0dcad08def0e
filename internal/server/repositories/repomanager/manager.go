package repomanager

import (
	"context"
	"database/sql"

	"github.com/dzavadskis/minimart/internal/dbx"
	"github.com/dzavadskis/minimart/internal/server/repositories/products"
	"github.com/dzavadskis/minimart/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Products(db dbx.DBTX) products.Repository
}
