package repomanager

import (
	"context"
	"database/sql"

	"github.com/theryangeary/gl/internal/dbx"
	"github.com/theryangeary/gl/internal/server/repositories/categories"
	"github.com/theryangeary/gl/internal/server/repositories/entries"
)

// RepositoryManager vends repository implementations bound to a DBTX, so
// services can use the same repositories on a bare connection and inside a
// transaction, and exposes a schema migration hook.
type RepositoryManager interface {
	Entries(db dbx.DBTX) entries.Repository
	Categories(db dbx.DBTX) categories.Repository
	RunMigrations(ctx context.Context, db *sql.DB) error
}
