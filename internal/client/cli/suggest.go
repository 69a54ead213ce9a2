package cli

import (
	"context"
	"strings"
)

// Suggest prints description completions for a prefix: "suggest mi".
func (a *App) Suggest(ctx context.Context, args []string) {
	prefix := strings.Join(args, " ")
	if prefix == "" {
		printlnFn("Usage: suggest <prefix>")
		return
	}
	suggestions, err := a.list.Suggest(ctx, prefix)
	if err != nil {
		printlnFn("Error:", err.Error())
		return
	}
	if len(suggestions) == 0 {
		printlnFn("(no suggestions)")
		return
	}
	for _, s := range suggestions {
		printlnFn("  " + s)
	}
}
