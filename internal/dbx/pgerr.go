package dbx

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/theryangeary/gl/internal/common"
)

// PostgreSQL SQLSTATE codes the repositories care about.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
	pgSerializationFail   = "40001"
	pgDeadlockDetected    = "40P01"
	pgLockNotAvailable    = "55P03"
)

// TranslateError maps low-level database errors onto the shared taxonomy:
// constraint breakage becomes common.ErrorConstraint, lock/serialization
// trouble becomes common.ErrorConflictRetryable, and sql.ErrNoRows becomes
// common.ErrorNotFound. Anything else is passed through unchanged so the
// caller can wrap it.
func TranslateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return common.ErrorNotFound
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", common.ErrorConflictRetryable, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation, pgForeignKeyViolation, pgCheckViolation:
			return fmt.Errorf("%w: %s", common.ErrorConstraint, pgErr.Message)
		case pgSerializationFail, pgDeadlockDetected, pgLockNotAvailable:
			return fmt.Errorf("%w: %s", common.ErrorConflictRetryable, pgErr.Message)
		}
	}
	return err
}
