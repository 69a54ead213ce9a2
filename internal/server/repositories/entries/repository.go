package entries

import (
	"context"
	"time"

	"github.com/theryangeary/gl/internal/server/models"
	"github.com/theryangeary/gl/internal/server/ordering"
)

// Repository is the Entry Store contract: point reads and writes, ordered
// range queries, and the position-shift primitive used by reorder plans.
// Implementations are bound to a dbx.DBTX, so the same repository code runs
// both on a bare connection and inside a transaction.
type Repository interface {
	// GetByID returns the entry in any state, or common.ErrorNotFound.
	GetByID(ctx context.Context, id int64) (*models.Entry, error)

	// GetByIDForUpdate is GetByID with a row lock, for use inside a
	// transaction that is about to mutate the entry or its neighbours.
	GetByIDForUpdate(ctx context.Context, id int64) (*models.Entry, error)

	// SelectActive lists all active entries ordered by category, then position.
	SelectActive(ctx context.Context) ([]*models.Entry, error)

	// MaxPosition returns the highest active position in a category, 0 when
	// the category has no active entries.
	MaxPosition(ctx context.Context, categoryID int64) (int64, error)

	// Insert persists a new entry and fills in its generated id.
	Insert(ctx context.Context, e *models.Entry) (*models.Entry, error)

	// UpdateFields writes description, quantity, notes and completed_at,
	// refreshing updated_at.
	UpdateFields(ctx context.Context, e *models.Entry) error

	// SetPlacement moves an entry to (categoryID, position), or archives it
	// when position is nil and archivedAt is set.
	SetPlacement(ctx context.Context, id int64, categoryID int64, position *int64, archivedAt *time.Time) error

	// ApplyShift adjusts the positions of active entries in the shift's
	// range, excluding the subject entry (which SetPlacement handles).
	ApplyShift(ctx context.Context, shift ordering.Shift, excludeID int64) error

	// Delete hard-deletes the row; common.ErrorNotFound when absent.
	Delete(ctx context.Context, id int64) error

	// SuggestDescriptions lists distinct previously used descriptions with
	// the given prefix, archived entries included.
	SuggestDescriptions(ctx context.Context, prefix string, limit int) ([]string, error)

	// DeferPositionConstraint postpones the per-category position uniqueness
	// check to commit for the rest of the current transaction.
	DeferPositionConstraint(ctx context.Context) error
}
