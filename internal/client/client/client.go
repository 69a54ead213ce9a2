package client

import (
	"context"

	"github.com/theryangeary/gl/internal/client/models"
)

// Client is the transport the list services talk through. Implementations
// translate transport and server failures into the shared error taxonomy.
type Client interface {
	Ping(ctx context.Context) error

	ListEntries(ctx context.Context) ([]models.Entry, error)
	CreateEntry(ctx context.Context, req models.CreateEntry) (*models.Entry, error)
	UpdateEntry(ctx context.Context, id int64, req models.UpdateEntry) (*models.Entry, error)
	DeleteEntry(ctx context.Context, id int64) error
	Reorder(ctx context.Context, req models.Reorder) error
	EntrySuggestions(ctx context.Context, query string) ([]string, error)

	ListCategories(ctx context.Context) ([]models.Category, error)
	CreateCategory(ctx context.Context, name string) (*models.Category, error)
	UpdateCategory(ctx context.Context, id int64, name string) (*models.Category, error)
	DeleteCategory(ctx context.Context, id int64) error
	CategorySuggestions(ctx context.Context, query string) ([]string, error)
}
