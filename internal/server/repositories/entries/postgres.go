// Package entries provides the PostgreSQL-backed Entry Store: ordered
// range queries, placement writes and the position-shift primitive.
package entries

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/theryangeary/gl/internal/common"
	"github.com/theryangeary/gl/internal/dbx"
	"github.com/theryangeary/gl/internal/server/models"
	"github.com/theryangeary/gl/internal/server/ordering"
)

// PostgresRepository implements entry storage over a dbx.DBTX
// (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const entryColumns = `id, description, quantity, notes, category_id, position, completed_at, archived_at, updated_at`

func scanEntry(row interface{ Scan(...any) error }) (*models.Entry, error) {
	var e models.Entry
	err := row.Scan(
		&e.ID, &e.Description, &e.Quantity, &e.Notes, &e.CategoryID,
		&e.Position, &e.CompletedAt, &e.ArchivedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.Entry, error) {
	query := `SELECT ` + entryColumns + ` FROM grocery_list_entries WHERE id = $1`
	e, err := scanEntry(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("failed to select entry: %w", dbx.TranslateError(err))
	}
	return e, nil
}

func (r *PostgresRepository) GetByIDForUpdate(ctx context.Context, id int64) (*models.Entry, error) {
	query := `SELECT ` + entryColumns + ` FROM grocery_list_entries WHERE id = $1 FOR UPDATE`
	e, err := scanEntry(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("failed to lock entry: %w", dbx.TranslateError(err))
	}
	return e, nil
}

func (r *PostgresRepository) SelectActive(ctx context.Context) ([]*models.Entry, error) {
	query := `SELECT ` + entryColumns + ` FROM grocery_list_entries
		WHERE archived_at IS NULL
		ORDER BY category_id, position`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to select entries: %w", dbx.TranslateError(err))
	}
	defer rows.Close()

	result := []*models.Entry{}
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PostgresRepository) MaxPosition(ctx context.Context, categoryID int64) (int64, error) {
	query := `SELECT COALESCE(MAX(position), 0) FROM grocery_list_entries
		WHERE category_id = $1 AND archived_at IS NULL`
	var max int64
	if err := r.db.QueryRowContext(ctx, query, categoryID).Scan(&max); err != nil {
		return 0, fmt.Errorf("failed to read max position: %w", dbx.TranslateError(err))
	}
	return max, nil
}

func (r *PostgresRepository) Insert(ctx context.Context, e *models.Entry) (*models.Entry, error) {
	query := `INSERT INTO grocery_list_entries
			(description, quantity, notes, category_id, position, completed_at, archived_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, now())
		RETURNING id, updated_at`
	err := r.db.QueryRowContext(ctx, query,
		e.Description, e.Quantity, e.Notes, e.CategoryID, e.Position, e.CompletedAt, e.ArchivedAt,
	).Scan(&e.ID, &e.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert entry: %w", dbx.TranslateError(err))
	}
	return e, nil
}

func (r *PostgresRepository) UpdateFields(ctx context.Context, e *models.Entry) error {
	query := `UPDATE grocery_list_entries
		SET description = $2, quantity = $3, notes = $4, completed_at = $5, updated_at = now()
		WHERE id = $1
		RETURNING updated_at`
	err := r.db.QueryRowContext(ctx, query, e.ID, e.Description, e.Quantity, e.Notes, e.CompletedAt).Scan(&e.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update entry: %w", dbx.TranslateError(err))
	}
	return nil
}

func (r *PostgresRepository) SetPlacement(ctx context.Context, id int64, categoryID int64, position *int64, archivedAt *time.Time) error {
	query := `UPDATE grocery_list_entries
		SET category_id = $2, position = $3, archived_at = $4, updated_at = now()
		WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id, categoryID, position, archivedAt)
	if err != nil {
		return fmt.Errorf("failed to place entry: %w", dbx.TranslateError(err))
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

func (r *PostgresRepository) ApplyShift(ctx context.Context, shift ordering.Shift, excludeID int64) error {
	query := `UPDATE grocery_list_entries
		SET position = position + $2, updated_at = now()
		WHERE category_id = $1
			AND archived_at IS NULL
			AND position >= $3
			AND ($4 = 0 OR position <= $4)
			AND id <> $5`
	_, err := r.db.ExecContext(ctx, query,
		shift.CategoryID, shift.Delta, shift.MinPosition, shift.MaxPosition, excludeID)
	if err != nil {
		return fmt.Errorf("failed to shift positions: %w", dbx.TranslateError(err))
	}
	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM grocery_list_entries WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete entry: %w", dbx.TranslateError(err))
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

func (r *PostgresRepository) SuggestDescriptions(ctx context.Context, prefix string, limit int) ([]string, error) {
	query := `SELECT DISTINCT description FROM grocery_list_entries
		WHERE description ILIKE $1 ESCAPE '\'
		ORDER BY description
		LIMIT $2`
	rows, err := r.db.QueryContext(ctx, query, escapeLike(prefix)+"%", limit)
	if err != nil {
		return nil, fmt.Errorf("failed to select suggestions: %w", dbx.TranslateError(err))
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

func (r *PostgresRepository) DeferPositionConstraint(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `SET CONSTRAINTS grocery_list_entries_category_position_key DEFERRED`)
	if err != nil {
		return fmt.Errorf("failed to defer position constraint: %w", dbx.TranslateError(err))
	}
	return nil
}

// escapeLike neutralizes LIKE metacharacters in user input.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	return strings.ReplaceAll(s, `_`, `\_`)
}
