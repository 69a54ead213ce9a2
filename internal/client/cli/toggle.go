package cli

import (
	"context"
	"errors"
	"strconv"
)

var errUsage = errors.New("expected an entry id")

// parseID extracts a single numeric id from command arguments.
func parseID(args []string) (int64, error) {
	if len(args) != 1 {
		return 0, errUsage
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return 0, errUsage
	}
	return id, nil
}

// Check marks an entry as completed.
func (a *App) Check(ctx context.Context, args []string) {
	a.setCompleted(ctx, args, true)
}

// Uncheck clears an entry's completed mark.
func (a *App) Uncheck(ctx context.Context, args []string) {
	a.setCompleted(ctx, args, false)
}

func (a *App) setCompleted(ctx context.Context, args []string, completed bool) {
	id, err := parseID(args)
	if err != nil {
		printlnFn("Usage: check <id> / uncheck <id>")
		return
	}
	if err := a.list.SetCompleted(ctx, id, completed); err != nil {
		printlnFn("Error:", err.Error())
		return
	}
	a.List(ctx)
}

// Archive removes an entry from active ordering, keeping it for suggestions.
func (a *App) Archive(ctx context.Context, args []string) {
	a.setArchived(ctx, args, true)
}

// Restore returns an archived entry to the end of its category.
func (a *App) Restore(ctx context.Context, args []string) {
	a.setArchived(ctx, args, false)
}

func (a *App) setArchived(ctx context.Context, args []string, archived bool) {
	id, err := parseID(args)
	if err != nil {
		printlnFn("Usage: archive <id> / restore <id>")
		return
	}
	if err := a.list.SetArchived(ctx, id, archived); err != nil {
		printlnFn("Error:", err.Error())
		return
	}
	a.List(ctx)
}
