// Package demo restores the database to a small sample dataset on a fixed
// interval, so a public demo deployment cleans up after its visitors.
package demo

import (
	"context"
	"database/sql"
	"time"

	"github.com/theryangeary/gl/internal/dbx"
	"github.com/theryangeary/gl/internal/logging"
)

// resetStatements rebuild the sample dataset. They run in order inside a
// single transaction, so readers never observe a half-reset list.
var resetStatements = []string{
	`TRUNCATE grocery_list_entries, categories RESTART IDENTITY CASCADE`,
	`INSERT INTO categories (name) VALUES ('Uncategorized'), ('Produce'), ('Dairy'), ('Pantry')`,
	`INSERT INTO grocery_list_entries (description, quantity, notes, category_id, position) VALUES
		('Apples', '6', '', 2, 1),
		('Spinach', '1 bag', 'baby spinach if available', 2, 2),
		('Carrots', '', '', 2, 3),
		('Milk', '2L', '', 3, 1),
		('Yogurt', '4 pack', '', 3, 2),
		('Rice', '1kg', '', 4, 1),
		('Olive oil', '', 'extra virgin', 4, 2),
		('Batteries', 'AA', '', 1, 1)`,
	`INSERT INTO grocery_list_entries (description, quantity, notes, category_id, archived_at) VALUES
		('Birthday candles', '', '', 1, now())`,
}

// Resetter periodically replaces all list data with the sample dataset.
type Resetter struct {
	db       *sql.DB
	logger   logging.Logger
	interval time.Duration
}

func NewResetter(db *sql.DB, logger logging.Logger, interval time.Duration) *Resetter {
	return &Resetter{db: db, logger: logger, interval: interval}
}

// Run resets the dataset once immediately and then on every interval tick,
// until the context is cancelled.
func (r *Resetter) Run(ctx context.Context) {
	if err := r.Reset(ctx); err != nil {
		r.logger.Error(ctx, "demo reset failed: "+err.Error())
	}

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := r.Reset(ctx); err != nil {
				r.logger.Error(ctx, "demo reset failed: "+err.Error())
			}
		}
	}
}

// Reset replaces the current database contents with the sample dataset in a
// single transaction.
func (r *Resetter) Reset(ctx context.Context) error {
	return dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		for _, stmt := range resetStatements {
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				return err
			}
		}
		return nil
	})
}
