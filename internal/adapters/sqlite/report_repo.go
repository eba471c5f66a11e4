// Package sqlite contains SQLite implementations of repository interfaces.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/example/manut/internal/core/errs"
	"github.com/example/manut/internal/core/room"
	"github.com/example/manut/internal/ports/secondary"
)

// ReportRepository implements secondary.ReportRepository with SQLite.
type ReportRepository struct {
	db    *sql.DB
	retry RetryPolicy
}

// NewReportRepository creates a new SQLite report repository.
func NewReportRepository(db *sql.DB, retry RetryPolicy) *ReportRepository {
	return &ReportRepository{db: db, retry: retry}
}

// Create persists a report, its items and the submission token claim in one
// transaction.
func (r *ReportRepository) Create(ctx context.Context, report *secondary.ReportRecord, items []*secondary.ReportItemRecord, submissionToken string) (int64, error) {
	var reportID int64
	err := withRetry(ctx, r.retry, func() error {
		id, err := r.create(ctx, report, items, submissionToken)
		if err != nil {
			return err
		}
		reportID = id
		return nil
	})
	if err != nil {
		return 0, err
	}
	return reportID, nil
}

func (r *ReportRepository) create(ctx context.Context, report *secondary.ReportRecord, items []*secondary.ReportItemRecord, submissionToken string) (int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		"INSERT INTO reports (report_date, floor, apt, room_code, room, technician, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)",
		report.ReportDate, report.Floor, report.Apt, report.RoomCode, legacyRoom(report.Floor, report.Apt),
		report.Technician, report.CreatedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to create report: %w", err)
	}
	reportID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read report id: %w", err)
	}

	if submissionToken != "" {
		res, err := tx.ExecContext(ctx,
			"UPDATE report_submissions SET used_at = ?, report_id = ? WHERE token = ? AND used_at IS NULL",
			report.CreatedAt, reportID, submissionToken,
		)
		if err != nil {
			return 0, fmt.Errorf("failed to claim submission token: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return 0, fmt.Errorf("failed to claim submission token: %w", err)
		}
		if n == 0 {
			return 0, fmt.Errorf("%w: token %s was already used or never issued", errs.ErrDuplicateSubmission, submissionToken)
		}
	}

	stmt, err := tx.PrepareContext(ctx,
		"INSERT INTO report_items (report_id, item_id, item, status, note) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		return 0, fmt.Errorf("failed to prepare report items: %w", err)
	}
	defer stmt.Close()

	for _, item := range items {
		if _, err := stmt.ExecContext(ctx, reportID, nullInt64(item.ItemID), item.Item, item.Status, nullString(item.Note)); err != nil {
			return 0, fmt.Errorf("failed to create report item %q: %w", item.Item, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit report: %w", err)
	}
	return reportID, nil
}

// legacyRoom is the single-number room still expected by stores that came up
// from v1, where reports.room is NOT NULL. Rooms the old numbering cannot
// express are stored as NULL.
func legacyRoom(floor, apt int) sql.NullInt64 {
	if floor < 1 || apt < 1 || apt > room.DefaultAptsPerFloor {
		return sql.NullInt64{}
	}
	return nullInt64(int64(room.ToLegacy(floor, apt, room.DefaultAptsPerFloor)))
}

// GetByID retrieves a report by its ID.
func (r *ReportRepository) GetByID(ctx context.Context, id int64) (*secondary.ReportRecord, error) {
	var (
		floor, apt sql.NullInt64
		roomCode   sql.NullString
	)

	record := &secondary.ReportRecord{}
	err := r.db.QueryRowContext(ctx,
		"SELECT id, report_date, floor, apt, room_code, technician, created_at FROM reports WHERE id = ?",
		id,
	).Scan(&record.ID, &record.ReportDate, &floor, &apt, &roomCode, &record.Technician, &record.CreatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, errs.NotFound("report", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get report: %w", err)
	}

	record.Floor = int(floor.Int64)
	record.Apt = int(apt.Int64)
	record.RoomCode = roomCode.String
	return record, nil
}

var reportItemColumns = []string{"id", "report_id", "item_id", "item", "status", "note", "resolved_at", "resolved_by", "resolution_note"}

const reportItemSelect = "SELECT id, report_id, item_id, item, status, note, resolved_at, resolved_by, resolution_note FROM report_items"

// ListItems retrieves the items of a report in insertion order.
func (r *ReportRepository) ListItems(ctx context.Context, reportID int64) ([]*secondary.ReportItemRecord, error) {
	rows, err := r.db.QueryContext(ctx, reportItemSelect+" WHERE report_id = ? ORDER BY id", reportID)
	if err != nil {
		return nil, fmt.Errorf("failed to list report items: %w", err)
	}
	defer rows.Close()

	m, err := newRowMapper(rows, reportItemColumns...)
	if err != nil {
		return nil, err
	}

	var items []*secondary.ReportItemRecord
	for rows.Next() {
		item, err := scanReportItem(m, rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list report items: %w", err)
	}
	return items, nil
}

// GetItem retrieves a single report item by its ID.
func (r *ReportRepository) GetItem(ctx context.Context, itemID int64) (*secondary.ReportItemRecord, error) {
	rows, err := r.db.QueryContext(ctx, reportItemSelect+" WHERE id = ?", itemID)
	if err != nil {
		return nil, fmt.Errorf("failed to get report item: %w", err)
	}
	defer rows.Close()

	m, err := newRowMapper(rows, reportItemColumns...)
	if err != nil {
		return nil, err
	}
	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("failed to get report item: %w", err)
		}
		return nil, errs.NotFound("report item", itemID)
	}
	return scanReportItem(m, rows)
}

func scanReportItem(m *rowMapper, rows *sql.Rows) (*secondary.ReportItemRecord, error) {
	var (
		itemID                                      sql.NullInt64
		note, resolvedAt, resolvedBy, resolutionNote sql.NullString
	)
	record := &secondary.ReportItemRecord{}
	err := m.scan(rows, map[string]any{
		"id":              &record.ID,
		"report_id":       &record.ReportID,
		"item_id":         &itemID,
		"item":            &record.Item,
		"status":          &record.Status,
		"note":            &note,
		"resolved_at":     &resolvedAt,
		"resolved_by":     &resolvedBy,
		"resolution_note": &resolutionNote,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan report item: %w", err)
	}

	record.ItemID = itemID.Int64
	record.Note = note.String
	record.ResolvedAt = resolvedAt.String
	record.ResolvedBy = resolvedBy.String
	record.ResolutionNote = resolutionNote.String
	return record, nil
}

var reportRowColumns = []string{
	"report_id", "report_date", "floor", "apt", "room_code", "technician", "created_at",
	"report_item_id", "item_id", "item", "status", "note", "resolved_at", "resolved_by", "resolution_note",
}

// FetchRows retrieves report rows matching the given filters.
func (r *ReportRepository) FetchRows(ctx context.Context, filters secondary.ReportFilters) ([]*secondary.ReportRowRecord, error) {
	query, args := reportRowsQuery(filters)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch report rows: %w", err)
	}
	defer rows.Close()

	m, err := newRowMapper(rows, reportRowColumns...)
	if err != nil {
		return nil, err
	}

	var result []*secondary.ReportRowRecord
	for rows.Next() {
		var (
			floor, apt, itemID                                    sql.NullInt64
			roomCode, note, resolvedAt, resolvedBy, resolutionNote sql.NullString
		)
		record := &secondary.ReportRowRecord{}
		err := m.scan(rows, map[string]any{
			"report_id":       &record.ReportID,
			"report_date":     &record.ReportDate,
			"floor":           &floor,
			"apt":             &apt,
			"room_code":       &roomCode,
			"technician":      &record.Technician,
			"created_at":      &record.CreatedAt,
			"report_item_id":  &record.ReportItemID,
			"item_id":         &itemID,
			"item":            &record.Item,
			"status":          &record.Status,
			"note":            &note,
			"resolved_at":     &resolvedAt,
			"resolved_by":     &resolvedBy,
			"resolution_note": &resolutionNote,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to scan report row: %w", err)
		}

		record.Floor = int(floor.Int64)
		record.Apt = int(apt.Int64)
		record.RoomCode = roomCode.String
		record.ItemID = itemID.Int64
		record.Note = note.String
		record.ResolvedAt = resolvedAt.String
		record.ResolvedBy = resolvedBy.String
		record.ResolutionNote = resolutionNote.String

		result = append(result, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to fetch report rows: %w", err)
	}
	return result, nil
}

// ResolveItem stamps resolution fields on an open pendency. The WHERE clause
// is the guard: a concurrent second resolve matches no row.
func (r *ReportRepository) ResolveItem(ctx context.Context, itemID int64, resolvedBy, resolutionNote, resolvedAt string) (bool, error) {
	var applied bool
	err := withRetry(ctx, r.retry, func() error {
		res, err := r.db.ExecContext(ctx,
			`UPDATE report_items
			SET resolved_at = ?, resolved_by = ?, resolution_note = ?
			WHERE id = ? AND status = 'Problema' AND resolved_at IS NULL`,
			resolvedAt, resolvedBy, nullString(resolutionNote), itemID,
		)
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
		return false, fmt.Errorf("failed to resolve report item: %w", err)
	}
	return applied, nil
}
