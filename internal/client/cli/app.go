// Package cli implements the interactive grocery list client: a small
// read-eval-print loop over the list service.
package cli

import (
	"bufio"
	"context"
	"os"

	"github.com/theryangeary/gl/internal/client/client"
	"github.com/theryangeary/gl/internal/client/config"
	"github.com/theryangeary/gl/internal/client/services"
)

type App struct {
	config *config.Config
	list   *services.EntryService
	reader *bufio.Reader
}

func NewApp(c *config.Config) *App {

	apiClient := client.NewHTTPClient(c.ServerEndpointAddr, c.RequestTimeout)
	ls := services.NewEntryService(apiClient)

	return &App{config: c, list: ls, reader: bufio.NewReader(os.Stdin)}
}

func (a *App) Run(ctx context.Context) {
	a.Root(ctx)
}
