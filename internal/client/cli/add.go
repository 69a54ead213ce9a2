package cli

import (
	"context"
	"os"
	"strconv"
	"strings"

	"github.com/theryangeary/gl/internal/client/models"
)

// Add creates a new entry. The description can be given inline
// ("add Milk") or interactively; quantity, notes and category are always
// prompted for and may be left empty.
func (a *App) Add(ctx context.Context, args []string) {

	description := strings.Join(args, " ")
	if description == "" {
		var err error
		description, err = GetSimpleText(a.reader, "Description", os.Stdout)
		if err != nil {
			printlnFn("Error:", err.Error())
			return
		}
	}

	quantity, err := GetSimpleText(a.reader, "Quantity (optional)", os.Stdout)
	if err != nil {
		printlnFn("Error:", err.Error())
		return
	}
	notes, err := GetSimpleText(a.reader, "Notes (optional)", os.Stdout)
	if err != nil {
		printlnFn("Error:", err.Error())
		return
	}
	categoryText, err := GetSimpleText(a.reader, "Category id (optional)", os.Stdout)
	if err != nil {
		printlnFn("Error:", err.Error())
		return
	}

	req := models.CreateEntry{Description: description, Quantity: quantity, Notes: notes}
	if categoryText != "" {
		id, err := strconv.ParseInt(categoryText, 10, 64)
		if err != nil {
			printlnFn("Invalid category id:", categoryText)
			return
		}
		req.CategoryID = &id
	}

	entry, err := a.list.Add(ctx, req)
	if err != nil {
		printlnFn("Error:", err.Error())
		return
	}
	printlnFn("Added #" + strconv.FormatInt(entry.ID, 10))
}
