package models

import "time"

// Entry is one grocery list entry. An entry is either active, with a
// position inside its category's ordered list, or archived, with
// ArchivedAt set and no position. The schema enforces that exactly one of
// the two holds.
type Entry struct {
	ID          int64      `json:"id"`
	Description string     `json:"description"`
	Quantity    string     `json:"quantity"`
	Notes       string     `json:"notes"`
	CategoryID  int64      `json:"category_id"`
	Position    *int64     `json:"position"`
	CompletedAt *time.Time `json:"completed_at"`
	ArchivedAt  *time.Time `json:"archived_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Archived reports whether the entry has been removed from active ordering.
func (e *Entry) Archived() bool {
	return e.ArchivedAt != nil
}
