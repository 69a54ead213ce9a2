// Package categories provides the PostgreSQL-backed category store and the
// per-category row locks serializing position shifts.
package categories

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/theryangeary/gl/internal/common"
	"github.com/theryangeary/gl/internal/dbx"
	"github.com/theryangeary/gl/internal/server/models"
)

// PostgresRepository implements category storage over a dbx.DBTX
// (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) SelectAll(ctx context.Context) ([]*models.Category, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name FROM categories ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to select categories: %w", dbx.TranslateError(err))
	}
	defer rows.Close()

	result := []*models.Category{}
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, err
		}
		result = append(result, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.Category, error) {
	var c models.Category
	err := r.db.QueryRowContext(ctx, `SELECT id, name FROM categories WHERE id = $1`, id).Scan(&c.ID, &c.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to select category: %w", dbx.TranslateError(err))
	}
	return &c, nil
}

func (r *PostgresRepository) Insert(ctx context.Context, name string) (*models.Category, error) {
	c := models.Category{Name: name}
	err := r.db.QueryRowContext(ctx, `INSERT INTO categories (name) VALUES ($1) RETURNING id`, name).Scan(&c.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to insert category: %w", dbx.TranslateError(err))
	}
	return &c, nil
}

func (r *PostgresRepository) UpdateName(ctx context.Context, id int64, name string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE categories SET name = $2 WHERE id = $1`, id, name)
	if err != nil {
		return fmt.Errorf("failed to update category: %w", dbx.TranslateError(err))
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", dbx.TranslateError(err))
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (r *PostgresRepository) LockForUpdate(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	sorted := append([]int64(nil), ids...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	// One round-trip per id keeps the acquisition order deterministic;
	// "WHERE id = ANY(...)" would let the planner pick its own order.
	for _, id := range dedupe(sorted) {
		var locked int64
		err := r.db.QueryRowContext(ctx, `SELECT id FROM categories WHERE id = $1 FOR UPDATE`, id).Scan(&locked)
		if err != nil {
			return fmt.Errorf("failed to lock category %d: %w", id, dbx.TranslateError(err))
		}
	}
	return nil
}

func (r *PostgresRepository) SuggestNames(ctx context.Context, prefix string, limit int) ([]string, error) {
	query := `SELECT name FROM categories
		WHERE name ILIKE $1 ESCAPE '\'
		ORDER BY name
		LIMIT $2`
	rows, err := r.db.QueryContext(ctx, query, escapeLike(prefix)+"%", limit)
	if err != nil {
		return nil, fmt.Errorf("failed to select category suggestions: %w", dbx.TranslateError(err))
	}
	defer rows.Close()

	result := []string{}
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func dedupe(sorted []int64) []int64 {
	out := sorted[:0]
	for i, v := range sorted {
		if i == 0 || v != sorted[i-1] {
			out = append(out, v)
		}
	}
	return out
}

func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	return strings.ReplaceAll(s, `_`, `\_`)
}
