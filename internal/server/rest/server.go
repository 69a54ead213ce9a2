// Package rest exposes the reconciliation and category services over the
// JSON API consumed by the sync client and the web UI.
package rest

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/theryangeary/gl/internal/logging"
	"github.com/theryangeary/gl/internal/server/models"
	"github.com/theryangeary/gl/internal/server/services"
)

// EntryService is the reconciliation surface the handlers call into.
type EntryService interface {
	List(ctx context.Context) ([]*models.Entry, error)
	Create(ctx context.Context, params services.CreateEntryParams) (*models.Entry, error)
	Update(ctx context.Context, id int64, params services.UpdateEntryParams) (*models.Entry, error)
	Delete(ctx context.Context, id int64) error
	Reorder(ctx context.Context, params services.ReorderParams) error
	Suggest(ctx context.Context, prefix string) ([]string, error)
}

// CategoryService is the category CRUD surface.
type CategoryService interface {
	List(ctx context.Context) ([]*models.Category, error)
	Create(ctx context.Context, name string) (*models.Category, error)
	Update(ctx context.Context, id int64, name string) (*models.Category, error)
	Delete(ctx context.Context, id int64) error
	Suggest(ctx context.Context, prefix string) ([]string, error)
}

type Server struct {
	address    string
	logger     logging.Logger
	entries    EntryService
	categories CategoryService
}

func NewServer(address string, logger logging.Logger, es EntryService, cs CategoryService) *Server {
	return &Server{
		address:    address,
		logger:     logger.With("module", "rest_server"),
		entries:    es,
		categories: cs,
	}
}

// Handler builds the route table. Paths are part of the client contract and
// must not change.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/entries", s.listEntries)
	mux.HandleFunc("POST /api/entries", s.createEntry)
	mux.HandleFunc("PUT /api/entries/reorder", s.reorderEntry)
	mux.HandleFunc("GET /api/entries/suggestions", s.entrySuggestions)
	mux.HandleFunc("PUT /api/entries/{id}", s.updateEntry)
	mux.HandleFunc("DELETE /api/entries/{id}", s.deleteEntry)

	mux.HandleFunc("GET /api/categories", s.listCategories)
	mux.HandleFunc("POST /api/categories", s.createCategory)
	mux.HandleFunc("GET /api/categories/suggestions", s.categorySuggestions)
	mux.HandleFunc("PUT /api/categories/{id}", s.updateCategory)
	mux.HandleFunc("DELETE /api/categories/{id}", s.deleteCategory)

	mux.HandleFunc("GET /health", s.health)

	return s.withCORS(s.withRequestLog(mux))
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.address,
		Handler: s.Handler(),
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
