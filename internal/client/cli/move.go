package cli

import (
	"context"
	"strconv"

	"github.com/theryangeary/gl/internal/client/models"
)

// Move places an entry at a new position, optionally in another category:
// "move <id> <pos>" or "move <id> <pos> <category>". A position beyond the
// end of the list appends.
func (a *App) Move(ctx context.Context, args []string) {
	if len(args) < 2 || len(args) > 3 {
		printlnFn("Usage: move <id> <pos> [category]")
		return
	}

	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		printlnFn("Invalid entry id:", args[0])
		return
	}
	pos, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil {
		printlnFn("Invalid position:", args[1])
		return
	}

	req := models.Reorder{ID: id, NewPosition: &pos}
	if len(args) == 3 {
		categoryID, err := strconv.ParseInt(args[2], 10, 64)
		if err != nil {
			printlnFn("Invalid category id:", args[2])
			return
		}
		req.NewCategoryID = &categoryID
	}

	if err := a.list.Move(ctx, req); err != nil {
		printlnFn("Error:", err.Error())
		return
	}
	a.List(ctx)
}
