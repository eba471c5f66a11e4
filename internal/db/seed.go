package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/manut/internal/core/catalog"
	"github.com/example/manut/internal/ports/secondary"
)

// SeedDefaultItems fills an empty maintenance_items catalog with
// catalog.DefaultItems, all active and stamped with now. A catalog that
// already has entries, active or not, is left untouched.
// Returns the number of items inserted.
func SeedDefaultItems(ctx context.Context, database *sql.DB, now time.Time) (int, error) {
	tx, err := database.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("seed items: %w", err)
	}
	defer tx.Rollback()

	var count int
	if err := tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM maintenance_items").Scan(&count); err != nil {
		return 0, fmt.Errorf("seed items: %w", err)
	}
	if count > 0 {
		return 0, nil
	}

	createdAt := now.Format(secondary.TimestampLayout)
	for _, name := range catalog.DefaultItems {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO maintenance_items (name, active, created_at) VALUES (?, 1, ?)",
			name, createdAt,
		); err != nil {
			return 0, fmt.Errorf("seed items: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("seed items: %w", err)
	}
	return len(catalog.DefaultItems), nil
}

