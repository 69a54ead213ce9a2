// Package server initializes and runs the application server.
// It opens the database, applies migrations, wires the reconciliation and
// category services to the REST endpoint, and handles graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/theryangeary/gl/internal/logging"
	"github.com/theryangeary/gl/internal/server/config"
	"github.com/theryangeary/gl/internal/server/demo"
	"github.com/theryangeary/gl/internal/server/repositories/repomanager"
	"github.com/theryangeary/gl/internal/server/rest"
	"github.com/theryangeary/gl/internal/server/services"
)

type App struct {
	config          *config.Config
	logger          logging.Logger
	db              *sql.DB
	entryService    *services.EntryService
	categoryService *services.CategoryService
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {

	slog := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(slog)

	db, err := sql.Open("pgx", c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		return nil, fmt.Errorf("db migration error: %w", err)
	}

	es := services.NewEntryService(db, rm, c.DefaultCategoryID)
	cs := services.NewCategoryService(db, rm, c.DefaultCategoryID)

	return &App{config: c, logger: logger, db: db, entryService: es, categoryService: cs}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {

	s := rest.NewServer(app.config.EndpointAddrHTTP, app.logger, app.entryService, app.categoryService)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	if app.config.DemoMode {
		resetter := demo.NewResetter(app.db, app.logger, app.config.DemoResetInterval)
		wg.Add(1)
		go func() {
			defer wg.Done()
			resetter.Run(ctx)
		}()
	}

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, err.Error())
	}
}
