package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/manut/internal/core/errs"
	"github.com/example/manut/internal/core/ticket"
	"github.com/example/manut/internal/ports/secondary"
)

// TicketRepository implements secondary.TicketRepository with SQLite.
type TicketRepository struct {
	db    *sql.DB
	retry RetryPolicy
}

// NewTicketRepository creates a new SQLite general maintenance repository.
func NewTicketRepository(db *sql.DB, retry RetryPolicy) *TicketRepository {
	return &TicketRepository{db: db, retry: retry}
}

// Create persists a new ticket.
func (r *TicketRepository) Create(ctx context.Context, t *secondary.TicketRecord) (int64, error) {
	var id int64
	err := withRetry(ctx, r.retry, func() error {
		res, err := r.db.ExecContext(ctx,
			`INSERT INTO general_maintenance (maint_date, place, description, status, technician, note, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			t.MaintDate, t.Place, t.Description, t.Status, t.Technician, nullString(t.Note), t.CreatedAt,
		)
		if err != nil {
			return err
		}
		id, err = res.LastInsertId()
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("failed to create ticket: %w", err)
	}
	return id, nil
}

// GetByID retrieves a ticket by its ID.
func (r *TicketRepository) GetByID(ctx context.Context, id int64) (*secondary.TicketRecord, error) {
	rows, err := r.db.QueryContext(ctx, ticketSelect+" WHERE id = ?", id)
	if err != nil {
		return nil, fmt.Errorf("failed to get ticket: %w", err)
	}
	defer rows.Close()

	m, err := newRowMapper(rows, ticketColumns...)
	if err != nil {
		return nil, err
	}
	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("failed to get ticket: %w", err)
		}
		return nil, errs.NotFound("ticket", id)
	}
	return scanTicket(m, rows)
}

// List retrieves tickets matching the given filters.
func (r *TicketRepository) List(ctx context.Context, filters secondary.TicketFilters) ([]*secondary.TicketRecord, error) {
	query, args := ticketsQuery(filters)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list tickets: %w", err)
	}
	defer rows.Close()

	m, err := newRowMapper(rows, ticketColumns...)
	if err != nil {
		return nil, err
	}

	var tickets []*secondary.TicketRecord
	for rows.Next() {
		t, err := scanTicket(m, rows)
		if err != nil {
			return nil, err
		}
		tickets = append(tickets, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list tickets: %w", err)
	}
	return tickets, nil
}

var ticketColumns = []string{
	"id", "maint_date", "place", "description", "status", "technician", "note",
	"created_at", "resolved_at", "resolved_by", "resolution_note",
}

func scanTicket(m *rowMapper, rows *sql.Rows) (*secondary.TicketRecord, error) {
	var note, resolvedAt, resolvedBy, resolutionNote sql.NullString
	t := &secondary.TicketRecord{}
	err := m.scan(rows, map[string]any{
		"id":              &t.ID,
		"maint_date":      &t.MaintDate,
		"place":           &t.Place,
		"description":     &t.Description,
		"status":          &t.Status,
		"technician":      &t.Technician,
		"note":            &note,
		"created_at":      &t.CreatedAt,
		"resolved_at":     &resolvedAt,
		"resolved_by":     &resolvedBy,
		"resolution_note": &resolutionNote,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan ticket: %w", err)
	}
	t.Note = note.String
	t.ResolvedAt = resolvedAt.String
	t.ResolvedBy = resolvedBy.String
	t.ResolutionNote = resolutionNote.String
	return t, nil
}

// UpdateStatus changes the status of an unresolved ticket.
func (r *TicketRepository) UpdateStatus(ctx context.Context, id int64, status string) (bool, error) {
	return r.conditionalUpdate(ctx,
		"UPDATE general_maintenance SET status = ? WHERE id = ? AND resolved_at IS NULL",
		status, id)
}

// Resolve closes an unresolved ticket.
func (r *TicketRepository) Resolve(ctx context.Context, id int64, resolvedBy, resolutionNote, resolvedAt string) (bool, error) {
	return r.conditionalUpdate(ctx,
		`UPDATE general_maintenance
		SET status = ?, resolved_at = ?, resolved_by = ?, resolution_note = ?
		WHERE id = ? AND resolved_at IS NULL`,
		ticket.StatusResolved, resolvedAt, resolvedBy, nullString(resolutionNote), id)
}

func (r *TicketRepository) conditionalUpdate(ctx context.Context, query string, args ...any) (bool, error) {
	var applied bool
	err := withRetry(ctx, r.retry, func() error {
		res, err := r.db.ExecContext(ctx, query, args...)
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		applied = n == 1
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("failed to update ticket: %w", err)
	}
	return applied, nil
}
