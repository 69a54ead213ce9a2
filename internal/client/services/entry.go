// Package services keeps the client's working view of the grocery list:
// the last server-confirmed state plus short-lived optimistic edits. Every
// mutation applies locally first, then hits the server; the server's answer
// (success or error) always replaces the optimistic state, so the view never
// drifts from what the server confirmed.
package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/theryangeary/gl/internal/client/client"
	"github.com/theryangeary/gl/internal/client/models"
)

type EntryService struct {
	client client.Client

	mu         sync.Mutex
	entries    []models.Entry // current view, may carry optimistic edits
	confirmed  []models.Entry // last server-confirmed state
	categories []models.Category
}

func NewEntryService(client client.Client) *EntryService {
	return &EntryService{client: client}
}

// Refresh replaces both the confirmed state and the view with what the
// server currently holds.
func (s *EntryService) Refresh(ctx context.Context) error {
	entries, err := s.client.ListEntries(ctx)
	if err != nil {
		return err
	}
	categories, err := s.client.ListCategories(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.confirmed = entries
	s.entries = cloneEntries(entries)
	s.categories = categories
	return nil
}

// Entries returns the current view sorted by category, position, with
// archived entries trailing their category.
func (s *EntryService) Entries() []models.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := cloneEntries(s.entries)
	sort.SliceStable(result, func(i, j int) bool {
		a, b := result[i], result[j]
		if a.CategoryID != b.CategoryID {
			return a.CategoryID < b.CategoryID
		}
		if a.Archived() != b.Archived() {
			return !a.Archived()
		}
		if a.Archived() {
			return a.ID < b.ID
		}
		return *a.Position < *b.Position
	})
	return result
}

// Categories returns the known categories.
func (s *EntryService) Categories() []models.Category {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Category(nil), s.categories...)
}

// CategoryName resolves a category id for display.
func (s *EntryService) CategoryName(id int64) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.categories {
		if c.ID == id {
			return c.Name
		}
	}
	return "?"
}

// Add appends a new entry. The optimistic copy carries a placeholder id
// until the server assigns the real one.
func (s *EntryService) Add(ctx context.Context, req models.CreateEntry) (*models.Entry, error) {
	s.mu.Lock()
	categoryID := s.defaultCategoryLocked()
	if req.CategoryID != nil {
		categoryID = *req.CategoryID
	}
	pos := s.nextPositionLocked(categoryID)
	s.entries = append(s.entries, models.Entry{
		ID:          -1,
		Description: req.Description,
		Quantity:    req.Quantity,
		Notes:       req.Notes,
		CategoryID:  categoryID,
		Position:    &pos,
		UpdatedAt:   time.Now(),
	})
	s.mu.Unlock()

	entry, err := s.client.CreateEntry(ctx, req)
	if err != nil {
		s.revert()
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.entries {
		if s.entries[i].ID == -1 {
			s.entries[i] = *entry
			break
		}
	}
	s.confirmed = cloneEntries(s.entries)
	return entry, nil
}

// SetCompleted checks or unchecks an entry.
func (s *EntryService) SetCompleted(ctx context.Context, id int64, completed bool) error {
	s.mu.Lock()
	if i := indexByID(s.entries, id); i >= 0 {
		if completed {
			now := time.Now()
			s.entries[i].CompletedAt = &now
		} else {
			s.entries[i].CompletedAt = nil
		}
	}
	s.mu.Unlock()

	entry, err := s.client.UpdateEntry(ctx, id, models.UpdateEntry{Completed: &completed})
	if err != nil {
		s.revert()
		return err
	}
	s.confirmEntry(entry)
	return nil
}

// UpdateText changes description, quantity or notes; nil fields stay as-is.
func (s *EntryService) UpdateText(ctx context.Context, id int64, req models.UpdateEntry) error {
	entry, err := s.client.UpdateEntry(ctx, id, req)
	if err != nil {
		return err
	}
	s.confirmEntry(entry)
	return nil
}

// SetArchived archives or restores an entry. Positions of the whole
// category shift, so the confirmed state is re-fetched afterwards.
func (s *EntryService) SetArchived(ctx context.Context, id int64, archived bool) error {
	s.mu.Lock()
	if i := indexByID(s.entries, id); i >= 0 {
		if archived {
			now := time.Now()
			s.closeGapLocked(s.entries[i].CategoryID, s.entries[i].Position)
			s.entries[i].ArchivedAt = &now
			s.entries[i].Position = nil
		} else {
			pos := s.nextPositionLocked(s.entries[i].CategoryID)
			s.entries[i].ArchivedAt = nil
			s.entries[i].Position = &pos
		}
	}
	s.mu.Unlock()

	if _, err := s.client.UpdateEntry(ctx, id, models.UpdateEntry{Archived: &archived}); err != nil {
		s.revert()
		return err
	}
	return s.Refresh(ctx)
}

// Move places an entry at a new position and/or category.
func (s *EntryService) Move(ctx context.Context, req models.Reorder) error {
	if err := s.client.Reorder(ctx, req); err != nil {
		return err
	}
	return s.Refresh(ctx)
}

// Remove deletes an entry permanently.
func (s *EntryService) Remove(ctx context.Context, id int64) error {
	s.mu.Lock()
	if i := indexByID(s.entries, id); i >= 0 {
		e := s.entries[i]
		s.entries = append(s.entries[:i], s.entries[i+1:]...)
		if !e.Archived() {
			s.closeGapLocked(e.CategoryID, e.Position)
		}
	}
	s.mu.Unlock()

	if err := s.client.DeleteEntry(ctx, id); err != nil {
		s.revert()
		return err
	}
	return s.Refresh(ctx)
}

// Suggest returns description completions for a prefix.
func (s *EntryService) Suggest(ctx context.Context, query string) ([]string, error) {
	return s.client.EntrySuggestions(ctx, query)
}

// CreateCategory adds a category and refreshes the category list.
func (s *EntryService) CreateCategory(ctx context.Context, name string) (*models.Category, error) {
	category, err := s.client.CreateCategory(ctx, name)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.categories = append(s.categories, *category)
	s.mu.Unlock()
	return category, nil
}

// DeleteCategory removes a category; its entries go with it.
func (s *EntryService) DeleteCategory(ctx context.Context, id int64) error {
	if err := s.client.DeleteCategory(ctx, id); err != nil {
		return err
	}
	return s.Refresh(ctx)
}

// revert discards optimistic edits, restoring the last confirmed state.
func (s *EntryService) revert() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = cloneEntries(s.confirmed)
}

// confirmEntry folds one server-confirmed entry into both states.
func (s *EntryService) confirmEntry(entry *models.Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := indexByID(s.entries, entry.ID); i >= 0 {
		s.entries[i] = *entry
	} else {
		s.entries = append(s.entries, *entry)
	}
	s.confirmed = cloneEntries(s.entries)
}

// nextPositionLocked returns 1 + the max active position of the category.
func (s *EntryService) nextPositionLocked(categoryID int64) int64 {
	var max int64
	for _, e := range s.entries {
		if e.Archived() || e.CategoryID != categoryID {
			continue
		}
		if *e.Position > max {
			max = *e.Position
		}
	}
	return max + 1
}

// defaultCategoryLocked guesses the server's default category: the lowest
// category id. The guess only affects the optimistic placeholder; the
// server's answer overwrites it.
func (s *EntryService) defaultCategoryLocked() int64 {
	if len(s.categories) == 0 {
		return 1
	}
	min := s.categories[0].ID
	for _, c := range s.categories[1:] {
		if c.ID < min {
			min = c.ID
		}
	}
	return min
}

// closeGapLocked shifts active positions above pos down by one.
func (s *EntryService) closeGapLocked(categoryID int64, pos *int64) {
	if pos == nil {
		return
	}
	for i := range s.entries {
		e := &s.entries[i]
		if e.Archived() || e.CategoryID != categoryID {
			continue
		}
		if *e.Position > *pos {
			p := *e.Position - 1
			e.Position = &p
		}
	}
}

func cloneEntries(entries []models.Entry) []models.Entry {
	result := make([]models.Entry, len(entries))
	copy(result, entries)
	return result
}

func indexByID(entries []models.Entry, id int64) int {
	for i := range entries {
		if entries[i].ID == id {
			return i
		}
	}
	return -1
}
