// Package sqlite_test contains integration tests for SQLite repositories.
//
// # Schema Protection
//
// This file is the SINGLE POINT where the database schema is loaded for tests.
// All test setup functions use db.GetSchemaSQL() so tests run against the
// schema the migration ladder produces (db.TestSchemaSQLMatchesLadder keeps
// the two in sync).
//
// DO NOT hardcode CREATE TABLE statements in test files. Use setupTestDB()
// and the seed* helpers instead.
package sqlite_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/example/manut/internal/adapters/sqlite"
	"github.com/example/manut/internal/core/room"
	"github.com/example/manut/internal/db"
	"github.com/example/manut/internal/ports/secondary"
)

var testRetry = sqlite.RetryPolicy{Attempts: 3, Backoff: time.Millisecond}

// setupTestDB creates an in-memory database with the authoritative schema.
// This is the single shared test database setup function for all repository tests.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	testDB, err := db.OpenMemory(context.Background())
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}

	// Use the authoritative schema from schema.go
	if _, err := testDB.Exec(db.GetSchemaSQL()); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	t.Cleanup(func() {
		testDB.Close()
	})

	return testDB
}

// setupFileDB creates a migrated on-disk store, for tests that need more
// than one connection.
func setupFileDB(t *testing.T) (*sql.DB, string) {
	t.Helper()
	ctx := context.Background()

	path := filepath.Join(t.TempDir(), "manutencao_hotel.db")
	testDB, err := db.Open(ctx, path)
	if err != nil {
		t.Fatalf("failed to open file db: %v", err)
	}
	t.Cleanup(func() {
		testDB.Close()
	})

	if _, err := (&db.Migrator{DB: testDB, Path: path}).EnsureCurrentSchema(ctx); err != nil {
		t.Fatalf("failed to migrate file db: %v", err)
	}
	return testDB, path
}

// seedReport inserts a report with the given items through the repository
// and returns the report ID.
func seedReport(t *testing.T, testDB *sql.DB, date string, floor, apt int, technician string, items ...*secondary.ReportItemRecord) int64 {
	t.Helper()
	repo := sqlite.NewReportRepository(testDB, testRetry)
	id, err := repo.Create(context.Background(), &secondary.ReportRecord{
		ReportDate: date,
		Floor:      floor,
		Apt:        apt,
		RoomCode:   room.Code(floor, apt),
		Technician: technician,
		CreatedAt:  date + "T10:00:00",
	}, items, "")
	if err != nil {
		t.Fatalf("failed to seed report: %v", err)
	}
	return id
}

// seedItem inserts a catalog item and returns its ID.
func seedItem(t *testing.T, testDB *sql.DB, name string, active bool) int64 {
	t.Helper()
	res, err := testDB.Exec(
		"INSERT INTO maintenance_items (name, active, created_at) VALUES (?, ?, '2024-01-01T08:00:00')",
		name, active)
	if err != nil {
		t.Fatalf("failed to seed item: %v", err)
	}
	id, _ := res.LastInsertId()
	return id
}

// firstItemID returns the ID of the first item of a report.
func firstItemID(t *testing.T, testDB *sql.DB, reportID int64) int64 {
	t.Helper()
	var id int64
	if err := testDB.QueryRow("SELECT MIN(id) FROM report_items WHERE report_id = ?", reportID).Scan(&id); err != nil {
		t.Fatalf("failed to get report item id: %v", err)
	}
	return id
}

func problemItem(name, note string) *secondary.ReportItemRecord {
	return &secondary.ReportItemRecord{Item: name, Status: "Problema", Note: note}
}

func okItem(name string) *secondary.ReportItemRecord {
	return &secondary.ReportItemRecord{Item: name, Status: "OK"}
}

func intPtr(v int) *int {
	return &v
}
