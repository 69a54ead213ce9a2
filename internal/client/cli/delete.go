package cli

import "context"

// Remove deletes an entry permanently. For keeping an entry around for
// suggestions, archive is the better fit.
func (a *App) Remove(ctx context.Context, args []string) {
	id, err := parseID(args)
	if err != nil {
		printlnFn("Usage: rm <id>")
		return
	}
	if err := a.list.Remove(ctx, id); err != nil {
		printlnFn("Error:", err.Error())
		return
	}
	a.List(ctx)
}
