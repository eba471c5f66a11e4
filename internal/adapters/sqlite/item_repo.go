package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/example/manut/internal/core/errs"
	"github.com/example/manut/internal/ports/secondary"
)

// ItemRepository implements secondary.ItemRepository with SQLite.
type ItemRepository struct {
	db    *sql.DB
	retry RetryPolicy
}

// NewItemRepository creates a new SQLite catalog repository.
func NewItemRepository(db *sql.DB, retry RetryPolicy) *ItemRepository {
	return &ItemRepository{db: db, retry: retry}
}

// Create persists a new catalog item. The NOCASE unique index backs up the
// caller's duplicate check.
func (r *ItemRepository) Create(ctx context.Context, item *secondary.MaintenanceItemRecord) (int64, error) {
	var id int64
	err := withRetry(ctx, r.retry, func() error {
		res, err := r.db.ExecContext(ctx,
			"INSERT INTO maintenance_items (name, active, created_at) VALUES (?, ?, ?)",
			item.Name, item.Active, item.CreatedAt,
		)
		if err != nil {
			return err
		}
		id, err = res.LastInsertId()
		return err
	})
	if isUniqueViolation(err) {
		return 0, fmt.Errorf("%w: item %q", errs.ErrDuplicate, item.Name)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to create item: %w", err)
	}
	return id, nil
}

// GetByID retrieves a catalog item by its ID.
func (r *ItemRepository) GetByID(ctx context.Context, id int64) (*secondary.MaintenanceItemRecord, error) {
	record, err := r.getOne(ctx, "SELECT id, name, active, created_at FROM maintenance_items WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errs.NotFound("item", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get item: %w", err)
	}
	return record, nil
}

// FindByName looks up an item by name, ignoring case.
func (r *ItemRepository) FindByName(ctx context.Context, name string) (*secondary.MaintenanceItemRecord, error) {
	record, err := r.getOne(ctx,
		"SELECT id, name, active, created_at FROM maintenance_items WHERE name = ? COLLATE NOCASE LIMIT 1", name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find item: %w", err)
	}
	return record, nil
}

func (r *ItemRepository) getOne(ctx context.Context, query string, arg any) (*secondary.MaintenanceItemRecord, error) {
	record := &secondary.MaintenanceItemRecord{}
	err := r.db.QueryRowContext(ctx, query, arg).Scan(&record.ID, &record.Name, &record.Active, &record.CreatedAt)
	if err != nil {
		return nil, err
	}
	return record, nil
}

// List retrieves catalog items ordered by name.
func (r *ItemRepository) List(ctx context.Context, activeOnly bool) ([]*secondary.MaintenanceItemRecord, error) {
	query := "SELECT id, name, active, created_at FROM maintenance_items"
	if activeOnly {
		query += " WHERE active = 1"
	}
	query += " ORDER BY name ASC"

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	defer rows.Close()

	m, err := newRowMapper(rows, "id", "name", "active", "created_at")
	if err != nil {
		return nil, err
	}

	var items []*secondary.MaintenanceItemRecord
	for rows.Next() {
		record := &secondary.MaintenanceItemRecord{}
		if err := m.scan(rows, map[string]any{
			"id":         &record.ID,
			"name":       &record.Name,
			"active":     &record.Active,
			"created_at": &record.CreatedAt,
		}); err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		items = append(items, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	return items, nil
}

// SetActive flips the active flag of an item.
func (r *ItemRepository) SetActive(ctx context.Context, id int64, active bool) error {
	var n int64
	err := withRetry(ctx, r.retry, func() error {
		res, err := r.db.ExecContext(ctx, "UPDATE maintenance_items SET active = ? WHERE id = ?", active, id)
		if err != nil {
			return err
		}
		n, err = res.RowsAffected()
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to update item: %w", err)
	}
	if n == 0 {
		return errs.NotFound("item", id)
	}
	return nil
}
