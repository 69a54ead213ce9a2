package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/theryangeary/gl/internal/common"
	"github.com/theryangeary/gl/internal/dbx"
	"github.com/theryangeary/gl/internal/server/models"
	"github.com/theryangeary/gl/internal/server/repositories/repomanager"
)

// CategoryService covers the category CRUD collaborators around the entry
// core. Deleting a category cascades to its entries at the schema level.
type CategoryService struct {
	db                *sql.DB
	repos             repomanager.RepositoryManager
	defaultCategoryID int64
}

func NewCategoryService(db *sql.DB, repos repomanager.RepositoryManager, defaultCategoryID int64) *CategoryService {
	return &CategoryService{db: db, repos: repos, defaultCategoryID: defaultCategoryID}
}

func (s *CategoryService) List(ctx context.Context) ([]*models.Category, error) {
	return s.repos.Categories(s.db).SelectAll(ctx)
}

func (s *CategoryService) Create(ctx context.Context, name string) (*models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: name must not be empty", common.ErrorValidation)
	}
	return s.repos.Categories(s.db).Insert(ctx, name)
}

func (s *CategoryService) Update(ctx context.Context, id int64, name string) (*models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: name must not be empty", common.ErrorValidation)
	}
	if err := s.repos.Categories(s.db).UpdateName(ctx, id, name); err != nil {
		return nil, err
	}
	return &models.Category{ID: id, Name: name}, nil
}

// Delete removes a category and, through the schema cascade, all of its
// entries, archived ones included. The configured default category cannot
// be deleted: entries without an explicit category land there.
func (s *CategoryService) Delete(ctx context.Context, id int64) error {
	if id == s.defaultCategoryID {
		return fmt.Errorf("%w: cannot delete the default category", common.ErrorValidation)
	}
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return s.repos.Categories(tx).Delete(ctx, id)
	})
}

func (s *CategoryService) Suggest(ctx context.Context, prefix string) ([]string, error) {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return []string{}, nil
	}
	return s.repos.Categories(s.db).SuggestNames(ctx, prefix, suggestionLimit)
}
