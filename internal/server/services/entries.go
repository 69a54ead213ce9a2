// Package services implements the reconciliation layer: every mutating
// operation validates its input, then runs the position allocation and the
// row writes inside a single transaction, with the affected categories'
// rows locked for the duration of the shift sequence.
package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/theryangeary/gl/internal/common"
	"github.com/theryangeary/gl/internal/dbx"
	"github.com/theryangeary/gl/internal/server/models"
	"github.com/theryangeary/gl/internal/server/ordering"
	"github.com/theryangeary/gl/internal/server/repositories/entries"
	"github.com/theryangeary/gl/internal/server/repositories/repomanager"
)

const suggestionLimit = 10

// EntryService orchestrates entry create/update/delete/reorder against the
// Entry Store, applying the ordering plans atomically.
type EntryService struct {
	db                *sql.DB
	repos             repomanager.RepositoryManager
	defaultCategoryID int64
}

// NewEntryService builds an EntryService. defaultCategoryID is the category
// entries land in when the caller names none; it is resolved from
// configuration once at startup, not assumed to be any particular row.
func NewEntryService(db *sql.DB, repos repomanager.RepositoryManager, defaultCategoryID int64) *EntryService {
	return &EntryService{db: db, repos: repos, defaultCategoryID: defaultCategoryID}
}

// CreateEntryParams carries the caller-supplied fields for a new entry.
type CreateEntryParams struct {
	Description string
	CategoryID  *int64
	Position    *int64
	Quantity    string
	Notes       string
}

// UpdateEntryParams carries a partial update. Position and CategoryID are
// accepted only to be rejected: placement changes go through Reorder.
type UpdateEntryParams struct {
	Description *string
	Quantity    *string
	Notes       *string
	Completed   *bool
	Archived    *bool
	Position    *int64
	CategoryID  *int64
}

// ReorderParams names the entry and its new placement. Both targets absent
// makes the call a no-op.
type ReorderParams struct {
	ID            int64
	NewPosition   *int64
	NewCategoryID *int64
}

// List returns all active entries ordered by category, then position.
func (s *EntryService) List(ctx context.Context) ([]*models.Entry, error) {
	return s.repos.Entries(s.db).SelectActive(ctx)
}

// Create validates and persists a new entry, appended to the end of its
// category or opening a gap at the requested position.
func (s *EntryService) Create(ctx context.Context, params CreateEntryParams) (*models.Entry, error) {
	description := strings.TrimSpace(params.Description)
	if description == "" {
		return nil, fmt.Errorf("%w: description must not be empty", common.ErrorValidation)
	}
	if params.Position != nil && *params.Position <= 0 {
		return nil, fmt.Errorf("%w: position must be positive", common.ErrorValidation)
	}

	categoryID := s.defaultCategoryID
	if params.CategoryID != nil {
		categoryID = *params.CategoryID
	}

	entry := &models.Entry{
		Description: description,
		Quantity:    params.Quantity,
		Notes:       params.Notes,
		CategoryID:  categoryID,
	}

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.repos.Categories(tx).LockForUpdate(ctx, []int64{categoryID}); err != nil {
			return err
		}
		repo := s.repos.Entries(tx)
		if err := repo.DeferPositionConstraint(ctx); err != nil {
			return err
		}
		maxPos, err := repo.MaxPosition(ctx, categoryID)
		if err != nil {
			return err
		}
		plan, err := ordering.PlanInsert(categoryID, maxPos, params.Position)
		if err != nil {
			return err
		}
		if err := applyShifts(ctx, repo, plan, 0); err != nil {
			return err
		}
		entry.Position = &plan.Placement.Position
		_, err = repo.Insert(ctx, entry)
		return err
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// Update applies the supplied fields to an entry. The archived flag toggles
// the Active/Archived states: archiving clears the position and closes the
// gap, unarchiving appends the entry to the end of its category.
func (s *EntryService) Update(ctx context.Context, id int64, params UpdateEntryParams) (*models.Entry, error) {
	if params.Position != nil || params.CategoryID != nil {
		return nil, fmt.Errorf("%w: position and category change via reorder", common.ErrorValidation)
	}
	if params.Description != nil && strings.TrimSpace(*params.Description) == "" {
		return nil, fmt.Errorf("%w: description must not be empty", common.ErrorValidation)
	}

	var entry *models.Entry
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repos.Entries(tx)

		var err error
		entry, err = repo.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}

		if params.Description != nil {
			entry.Description = strings.TrimSpace(*params.Description)
		}
		if params.Quantity != nil {
			entry.Quantity = *params.Quantity
		}
		if params.Notes != nil {
			entry.Notes = *params.Notes
		}
		if params.Completed != nil {
			if *params.Completed && entry.CompletedAt == nil {
				now := time.Now().UTC()
				entry.CompletedAt = &now
			}
			if !*params.Completed {
				entry.CompletedAt = nil
			}
		}
		if err := repo.UpdateFields(ctx, entry); err != nil {
			return err
		}

		if params.Archived != nil && *params.Archived != entry.Archived() {
			if err := s.toggleArchived(ctx, tx, entry, *params.Archived); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// toggleArchived moves an entry between the Active and Archived states,
// keeping the active sequence dense on both edges.
func (s *EntryService) toggleArchived(ctx context.Context, tx dbx.DBTX, entry *models.Entry, archive bool) error {
	if err := s.repos.Categories(tx).LockForUpdate(ctx, []int64{entry.CategoryID}); err != nil {
		return err
	}
	repo := s.repos.Entries(tx)
	if err := repo.DeferPositionConstraint(ctx); err != nil {
		return err
	}

	if archive {
		plan := ordering.PlanRemoval(entry.CategoryID, *entry.Position)
		if err := applyShifts(ctx, repo, plan, entry.ID); err != nil {
			return err
		}
		now := time.Now().UTC()
		entry.Position = nil
		entry.ArchivedAt = &now
		return repo.SetPlacement(ctx, entry.ID, entry.CategoryID, nil, &now)
	}

	maxPos, err := repo.MaxPosition(ctx, entry.CategoryID)
	if err != nil {
		return err
	}
	pos := maxPos + 1
	entry.Position = &pos
	entry.ArchivedAt = nil
	return repo.SetPlacement(ctx, entry.ID, entry.CategoryID, &pos, nil)
}

// Delete hard-deletes the entry, closing the position gap when it was
// active. A second delete of the same id reports not found.
func (s *EntryService) Delete(ctx context.Context, id int64) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repos.Entries(tx)

		entry, err := repo.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if !entry.Archived() {
			if err := s.repos.Categories(tx).LockForUpdate(ctx, []int64{entry.CategoryID}); err != nil {
				return err
			}
			if err := repo.DeferPositionConstraint(ctx); err != nil {
				return err
			}
			plan := ordering.PlanRemoval(entry.CategoryID, *entry.Position)
			if err := applyShifts(ctx, repo, plan, entry.ID); err != nil {
				return err
			}
		}
		return repo.Delete(ctx, id)
	})
}

// Reorder moves an active entry to a new position and/or category. Both
// targets absent is a no-op; reorder of an archived entry reports not found.
func (s *EntryService) Reorder(ctx context.Context, params ReorderParams) error {
	if params.NewPosition == nil && params.NewCategoryID == nil {
		return nil
	}
	if params.NewPosition != nil && *params.NewPosition <= 0 {
		return fmt.Errorf("%w: position must be positive", common.ErrorValidation)
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repos.Entries(tx)

		entry, err := repo.GetByIDForUpdate(ctx, params.ID)
		if err != nil {
			return err
		}
		if entry.Archived() {
			// Only active entries participate in ordering.
			return fmt.Errorf("%w: entry %d is archived", common.ErrorNotFound, params.ID)
		}

		dstCategory := entry.CategoryID
		if params.NewCategoryID != nil {
			dstCategory = *params.NewCategoryID
		}

		locks := []int64{entry.CategoryID}
		if dstCategory != entry.CategoryID {
			locks = append(locks, dstCategory)
		}
		if err := s.repos.Categories(tx).LockForUpdate(ctx, locks); err != nil {
			return err
		}
		if err := repo.DeferPositionConstraint(ctx); err != nil {
			return err
		}

		var plan ordering.Plan
		if dstCategory == entry.CategoryID {
			if params.NewPosition == nil {
				return nil
			}
			maxPos, err := repo.MaxPosition(ctx, entry.CategoryID)
			if err != nil {
				return err
			}
			plan, err = ordering.PlanMove(entry.CategoryID, *entry.Position, maxPos, *params.NewPosition)
			if err != nil {
				return err
			}
			if plan.NoOp {
				return nil
			}
		} else {
			dstMax, err := repo.MaxPosition(ctx, dstCategory)
			if err != nil {
				return err
			}
			plan, err = ordering.PlanTransfer(entry.CategoryID, *entry.Position, dstCategory, dstMax, params.NewPosition)
			if err != nil {
				return err
			}
		}

		if err := applyShifts(ctx, repo, plan, entry.ID); err != nil {
			return err
		}
		return repo.SetPlacement(ctx, entry.ID, plan.Placement.CategoryID, &plan.Placement.Position, nil)
	})
}

// Suggest lists previously used descriptions starting with prefix, most
// useful while typing a new entry. Archived history is included on purpose.
func (s *EntryService) Suggest(ctx context.Context, prefix string) ([]string, error) {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return []string{}, nil
	}
	return s.repos.Entries(s.db).SuggestDescriptions(ctx, prefix, suggestionLimit)
}

func applyShifts(ctx context.Context, repo entries.Repository, plan ordering.Plan, subjectID int64) error {
	for _, shift := range plan.Shifts {
		if err := repo.ApplyShift(ctx, shift, subjectID); err != nil {
			return err
		}
	}
	return nil
}
