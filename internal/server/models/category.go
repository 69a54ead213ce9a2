package models

// Category groups entries. Deleting a category cascades to its entries,
// archived ones included.
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
