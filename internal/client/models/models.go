// Package models defines the wire representations the client exchanges with
// the server. Field tags match the server's JSON surface.
package models

import "time"

// Entry is one grocery list entry as returned by the server. Active entries
// carry a position inside their category; archived entries carry ArchivedAt
// and no position.
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

// Completed reports whether the entry is checked off.
func (e *Entry) Completed() bool {
	return e.CompletedAt != nil
}

// Category groups entries.
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// CreateEntry is the payload for creating an entry. CategoryID and Position
// are optional; the server appends to the default category when omitted.
type CreateEntry struct {
	Description string `json:"description"`
	CategoryID  *int64 `json:"category_id,omitempty"`
	Position    *int64 `json:"position,omitempty"`
	Quantity    string `json:"quantity,omitempty"`
	Notes       string `json:"notes,omitempty"`
}

// UpdateEntry is the payload for a partial entry update. Nil fields are left
// unchanged by the server.
type UpdateEntry struct {
	Description *string `json:"description,omitempty"`
	Quantity    *string `json:"quantity,omitempty"`
	Notes       *string `json:"notes,omitempty"`
	Completed   *bool   `json:"completed,omitempty"`
	Archived    *bool   `json:"archived,omitempty"`
}

// Reorder is the payload for moving an entry within or across categories.
type Reorder struct {
	ID            int64  `json:"id"`
	NewPosition   *int64 `json:"new_position,omitempty"`
	NewCategoryID *int64 `json:"new_category_id,omitempty"`
}
