package cli

import (
	"context"
	"fmt"
)

// List prints the current view grouped by category, active entries in list
// order, archived ones trailing.
func (a *App) List(ctx context.Context) {
	entries := a.list.Entries()
	if len(entries) == 0 {
		printlnFn("(empty list)")
		return
	}

	var lastCategory int64 = -1
	for _, e := range entries {
		if e.CategoryID != lastCategory {
			printlnFn(fmt.Sprintf("-- %s --", a.list.CategoryName(e.CategoryID)))
			lastCategory = e.CategoryID
		}

		if e.Archived() {
			printlnFn(fmt.Sprintf("   (archived) #%d %s", e.ID, e.Description))
			continue
		}

		box := " "
		if e.Completed() {
			box = "x"
		}
		line := fmt.Sprintf("  %2d. [%s] #%d %s", *e.Position, box, e.ID, e.Description)
		if e.Quantity != "" {
			line += fmt.Sprintf(" (%s)", e.Quantity)
		}
		if e.Notes != "" {
			line += fmt.Sprintf(" [%s]", e.Notes)
		}
		printlnFn(line)
	}
}

// Refresh re-fetches the list from the server.
func (a *App) Refresh(ctx context.Context) {
	if err := a.list.Refresh(ctx); err != nil {
		printlnFn("Error:", err.Error())
	}
}
