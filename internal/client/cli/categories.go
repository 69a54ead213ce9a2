package cli

import (
	"context"
	"fmt"
	"strings"
)

// Categories prints the known categories.
func (a *App) Categories(ctx context.Context) {
	for _, c := range a.list.Categories() {
		printlnFn(fmt.Sprintf("  %3d  %s", c.ID, c.Name))
	}
}

// AddCategory creates a category: "addcat Dairy".
func (a *App) AddCategory(ctx context.Context, args []string) {
	name := strings.Join(args, " ")
	if name == "" {
		printlnFn("Usage: addcat <name>")
		return
	}
	category, err := a.list.CreateCategory(ctx, name)
	if err != nil {
		printlnFn("Error:", err.Error())
		return
	}
	printlnFn(fmt.Sprintf("Added category %d (%s)", category.ID, category.Name))
}

// RemoveCategory deletes a category and every entry in it.
func (a *App) RemoveCategory(ctx context.Context, args []string) {
	id, err := parseID(args)
	if err != nil {
		printlnFn("Usage: rmcat <id>")
		return
	}
	if err := a.list.DeleteCategory(ctx, id); err != nil {
		printlnFn("Error:", err.Error())
		return
	}
	a.List(ctx)
}
