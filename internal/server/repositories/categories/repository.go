package categories

import (
	"context"

	"github.com/theryangeary/gl/internal/server/models"
)

// Repository is the category store contract. LockForUpdate is the write
// serialization point for position shifts: every transaction that mutates a
// category's ordering locks that category's row first.
type Repository interface {
	SelectAll(ctx context.Context) ([]*models.Category, error)
	GetByID(ctx context.Context, id int64) (*models.Category, error)
	Insert(ctx context.Context, name string) (*models.Category, error)
	UpdateName(ctx context.Context, id int64, name string) error

	// Delete removes the category; entries cascade at the schema level.
	Delete(ctx context.Context, id int64) error

	// LockForUpdate acquires row locks on the given categories in ascending
	// id order (stable order avoids lock cycles between concurrent moves).
	// common.ErrorNotFound when any id does not exist.
	LockForUpdate(ctx context.Context, ids []int64) error

	// SuggestNames lists category names with the given prefix.
	SuggestNames(ctx context.Context, prefix string, limit int) ([]string, error)
}
