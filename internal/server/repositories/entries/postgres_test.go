package entries

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/theryangeary/gl/internal/common"
	"github.com/theryangeary/gl/internal/server/models"
	"github.com/theryangeary/gl/internal/server/ordering"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func entryRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "description", "quantity", "notes", "category_id",
		"position", "completed_at", "archived_at", "updated_at",
	})
}

func TestGetByID_Found(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(`SELECT .* FROM grocery_list_entries WHERE id = \$1`).
		WithArgs(int64(7)).
		WillReturnRows(entryRows().AddRow(int64(7), "Milk", "2L", "", int64(1), int64(3), nil, nil, now))

	e, err := repo.GetByID(context.Background(), 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if e.Description != "Milk" || e.Position == nil || *e.Position != 3 {
		t.Fatalf("unexpected entry: %+v", e)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestGetByID_NoRowsIsNotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT .* FROM grocery_list_entries WHERE id = \$1`).
		WithArgs(int64(404)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), 404)
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want ErrorNotFound, got %v", err)
	}
}

func TestSelectActive_OrdersByCategoryAndPosition(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(`SELECT .* FROM grocery_list_entries\s+WHERE archived_at IS NULL\s+ORDER BY category_id, position`).
		WillReturnRows(entryRows().
			AddRow(int64(1), "Milk", "", "", int64(1), int64(1), nil, nil, now).
			AddRow(int64(2), "Bread", "", "", int64(1), int64(2), nil, nil, now))

	result, err := repo.SelectActive(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result) != 2 || result[0].ID != 1 || result[1].ID != 2 {
		t.Fatalf("unexpected result: %+v", result)
	}
}

func TestMaxPosition_EmptyCategoryIsZero(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT COALESCE\(MAX\(position\), 0\) FROM grocery_list_entries`).
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(int64(0)))

	max, err := repo.MaxPosition(context.Background(), 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if max != 0 {
		t.Fatalf("want 0, got %d", max)
	}
}

func TestInsert_ReturnsGeneratedID(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	pos := int64(4)
	now := time.Now()
	mock.ExpectQuery(`INSERT INTO grocery_list_entries`).
		WithArgs("Eggs", "12", "", int64(1), pos, nil, nil).
		WillReturnRows(sqlmock.NewRows([]string{"id", "updated_at"}).AddRow(int64(42), now))

	e, err := repo.Insert(context.Background(), &models.Entry{
		Description: "Eggs", Quantity: "12", CategoryID: 1, Position: &pos,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if e.ID != 42 {
		t.Fatalf("want id 42, got %d", e.ID)
	}
}

func TestSetPlacement_ZeroRowsIsNotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`UPDATE grocery_list_entries`).
		WithArgs(int64(9), int64(1), nil, nil).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.SetPlacement(context.Background(), 9, 1, nil, nil)
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want ErrorNotFound, got %v", err)
	}
}

func TestApplyShift_BoundedRange(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`UPDATE grocery_list_entries\s+SET position = position \+ \$2`).
		WithArgs(int64(1), int64(-1), int64(3), int64(5), int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 3))

	shift := ordering.Shift{CategoryID: 1, MinPosition: 3, MaxPosition: 5, Delta: -1}
	if err := repo.ApplyShift(context.Background(), shift, 7); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestDelete_ZeroRowsIsNotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`DELETE FROM grocery_list_entries WHERE id = \$1`).
		WithArgs(int64(404)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), 404)
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want ErrorNotFound, got %v", err)
	}
}

func TestSuggestDescriptions_EscapesPattern(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT DISTINCT description FROM grocery_list_entries`).
		WithArgs(`50\% off\_sale%`, 10).
		WillReturnRows(sqlmock.NewRows([]string{"description"}).AddRow("50% off_sale milk"))

	result, err := repo.SuggestDescriptions(context.Background(), "50% off_sale", 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result) != 1 {
		t.Fatalf("unexpected result: %v", result)
	}
}

func TestDeferPositionConstraint(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`SET CONSTRAINTS grocery_list_entries_category_position_key DEFERRED`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.DeferPositionConstraint(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
