package db

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/example/manut/internal/core/catalog"
	"github.com/example/manut/internal/core/room"
)

var fixedNow = time.Date(2024, 1, 10, 9, 30, 0, 0, time.UTC)

func newMemoryDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := OpenMemory(context.Background())
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return database
}

func schemaSnapshot(t *testing.T, database *sql.DB) []string {
	t.Helper()
	rows, err := database.Query("SELECT type || ':' || name || ':' || COALESCE(sql, '') FROM sqlite_master ORDER BY type, name")
	if err != nil {
		t.Fatalf("failed to read sqlite_master: %v", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			t.Fatalf("scan: %v", err)
		}
		out = append(out, s)
	}
	return out
}

func countRows(t *testing.T, database *sql.DB, table string) int {
	t.Helper()
	var n int
	if err := database.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&n); err != nil {
		t.Fatalf("count %s: %v", table, err)
	}
	return n
}

func TestEnsureCurrentSchema_FreshStore(t *testing.T) {
	database := newMemoryDB(t)
	m := &Migrator{DB: database, Now: func() time.Time { return fixedNow }}

	result, err := m.EnsureCurrentSchema(context.Background())
	if err != nil {
		t.Fatalf("EnsureCurrentSchema failed: %v", err)
	}

	if result.FromVersion != 1 || result.ToVersion != CurrentVersion {
		t.Errorf("expected 1 -> %d, got %d -> %d", CurrentVersion, result.FromVersion, result.ToVersion)
	}
	if result.BackupPath != "" {
		t.Errorf("in-memory store should not be backed up, got %q", result.BackupPath)
	}
	if result.SeededItems != len(catalog.DefaultItems) {
		t.Errorf("expected %d seeded items, got %d", len(catalog.DefaultItems), result.SeededItems)
	}

	v, err := SchemaVersion(context.Background(), database)
	if err != nil {
		t.Fatalf("SchemaVersion failed: %v", err)
	}
	if v != 4 {
		t.Errorf("expected version 4, got %d", v)
	}

	var active int
	var createdAt string
	err = database.QueryRow("SELECT COUNT(*), MIN(created_at) FROM maintenance_items WHERE active = 1").Scan(&active, &createdAt)
	if err != nil {
		t.Fatalf("query catalog: %v", err)
	}
	if active != 13 {
		t.Errorf("expected 13 active items, got %d", active)
	}
	if createdAt != "2024-01-10T09:30:00" {
		t.Errorf("unexpected created_at %q", createdAt)
	}
}

func TestEnsureCurrentSchema_Idempotent(t *testing.T) {
	database := newMemoryDB(t)
	m := &Migrator{DB: database, Now: func() time.Time { return fixedNow }}
	ctx := context.Background()

	if _, err := m.EnsureCurrentSchema(ctx); err != nil {
		t.Fatalf("first run failed: %v", err)
	}
	if _, err := database.Exec(
		"INSERT INTO reports (report_date, technician, created_at, floor, apt, room_code) VALUES ('2024-01-10', 'Ana', '2024-01-10T09:30:00', 1, 1, '0101')",
	); err != nil {
		t.Fatalf("insert report: %v", err)
	}

	before := schemaSnapshot(t, database)
	itemsBefore := countRows(t, database, "maintenance_items")

	result, err := m.EnsureCurrentSchema(ctx)
	if err != nil {
		t.Fatalf("second run failed: %v", err)
	}
	if result.FromVersion != CurrentVersion || result.ToVersion != CurrentVersion {
		t.Errorf("second run should be a no-op, got %d -> %d", result.FromVersion, result.ToVersion)
	}
	if result.SeededItems != 0 {
		t.Errorf("second run should not seed, seeded %d", result.SeededItems)
	}

	after := schemaSnapshot(t, database)
	if !reflect.DeepEqual(before, after) {
		t.Errorf("schema changed on second run:\nbefore %v\nafter  %v", before, after)
	}
	if got := countRows(t, database, "maintenance_items"); got != itemsBefore {
		t.Errorf("catalog changed: %d -> %d", itemsBefore, got)
	}
	if got := countRows(t, database, "reports"); got != 1 {
		t.Errorf("expected 1 report, got %d", got)
	}
}

func TestEnsureCurrentSchema_SeedSkipsNonEmptyCatalog(t *testing.T) {
	database := newMemoryDB(t)
	ctx := context.Background()
	m := &Migrator{DB: database}
	if _, err := m.EnsureCurrentSchema(ctx); err != nil {
		t.Fatalf("EnsureCurrentSchema failed: %v", err)
	}

	// Deactivating everything still counts as a non-empty catalog.
	if _, err := database.Exec("UPDATE maintenance_items SET active = 0"); err != nil {
		t.Fatalf("deactivate: %v", err)
	}
	n, err := SeedDefaultItems(ctx, database, fixedNow)
	if err != nil {
		t.Fatalf("SeedDefaultItems failed: %v", err)
	}
	if n != 0 {
		t.Errorf("expected no seeding, got %d", n)
	}
}

const v1SchemaSQL = `
CREATE TABLE reports (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	report_date TEXT NOT NULL,
	room INTEGER NOT NULL,
	technician TEXT NOT NULL,
	created_at TEXT NOT NULL
);
CREATE TABLE report_items (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	report_id INTEGER NOT NULL,
	item TEXT NOT NULL,
	status TEXT NOT NULL,
	note TEXT,
	FOREIGN KEY (report_id) REFERENCES reports(id)
);
`

func TestEnsureCurrentSchema_MigratesV1Store(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	storePath := filepath.Join(dir, "manutencao_hotel.db")
	backupDir := filepath.Join(dir, "backups")

	database, err := Open(ctx, storePath)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer database.Close()

	if _, err := database.Exec(v1SchemaSQL); err != nil {
		t.Fatalf("create v1 schema: %v", err)
	}
	for legacy := 1; legacy <= 216; legacy++ {
		res, err := database.Exec(
			"INSERT INTO reports (report_date, room, technician, created_at) VALUES ('2023-06-01', ?, 'Ana', '2023-06-01T10:00:00')",
			legacy)
		if err != nil {
			t.Fatalf("insert legacy report %d: %v", legacy, err)
		}
		id, _ := res.LastInsertId()
		if _, err := database.Exec(
			"INSERT INTO report_items (report_id, item, status, note) VALUES (?, 'Cofre', 'Problema', NULL)", id); err != nil {
			t.Fatalf("insert legacy item: %v", err)
		}
	}

	m := &Migrator{
		DB:        database,
		Path:      storePath,
		BackupDir: backupDir,
		Now:       func() time.Time { return fixedNow },
	}
	result, err := m.EnsureCurrentSchema(ctx)
	if err != nil {
		t.Fatalf("EnsureCurrentSchema failed: %v", err)
	}

	wantBackup := filepath.Join(backupDir, "manutencao_hotel_20240110_093000.db")
	if result.BackupPath != wantBackup {
		t.Errorf("BackupPath = %q, want %q", result.BackupPath, wantBackup)
	}
	if _, err := os.Stat(wantBackup); err != nil {
		t.Errorf("backup file missing: %v", err)
	}

	v, err := SchemaVersion(ctx, database)
	if err != nil {
		t.Fatalf("SchemaVersion failed: %v", err)
	}
	if v != CurrentVersion {
		t.Errorf("expected version %d, got %d", CurrentVersion, v)
	}

	rows, err := database.Query("SELECT room, floor, apt, room_code FROM reports ORDER BY id")
	if err != nil {
		t.Fatalf("query reports: %v", err)
	}
	defer rows.Close()

	n := 0
	for rows.Next() {
		var legacy, floor, apt int
		var code sql.NullString
		if err := rows.Scan(&legacy, &floor, &apt, &code); err != nil {
			t.Fatalf("scan: %v", err)
		}
		wantFloor, wantApt := room.FromLegacy(legacy, room.DefaultAptsPerFloor)
		if floor != wantFloor || apt != wantApt {
			t.Errorf("room %d migrated to (%d, %d), want (%d, %d)", legacy, floor, apt, wantFloor, wantApt)
		}
		if !code.Valid || code.String != room.Code(floor, apt) {
			t.Errorf("room %d has room_code %v, want %q", legacy, code, room.Code(floor, apt))
		}
		n++
	}
	if n != 216 {
		t.Errorf("expected 216 reports, got %d", n)
	}

	// Legacy items survive with a NULL catalog reference and no resolution.
	var nullItemIDs, unresolved int
	if err := database.QueryRow(
		"SELECT COUNT(*), SUM(resolved_at IS NULL) FROM report_items WHERE item_id IS NULL",
	).Scan(&nullItemIDs, &unresolved); err != nil {
		t.Fatalf("query items: %v", err)
	}
	if nullItemIDs != 216 || unresolved != 216 {
		t.Errorf("expected 216 untouched legacy items, got %d / %d", nullItemIDs, unresolved)
	}
}

func TestEnsureCurrentSchema_ReentersPartialStep(t *testing.T) {
	ctx := context.Background()
	database := newMemoryDB(t)

	if _, err := database.Exec(v1SchemaSQL); err != nil {
		t.Fatalf("create v1 schema: %v", err)
	}
	// A v1 -> v2 step that died after adding floor.
	if _, err := database.Exec("ALTER TABLE reports ADD COLUMN floor INTEGER"); err != nil {
		t.Fatalf("alter: %v", err)
	}
	if _, err := database.Exec(
		"INSERT INTO reports (report_date, room, technician, created_at, floor) VALUES ('2023-06-01', 19, 'Ana', '2023-06-01T10:00:00', NULL)",
	); err != nil {
		t.Fatalf("insert: %v", err)
	}

	m := &Migrator{DB: database}
	if _, err := m.EnsureCurrentSchema(ctx); err != nil {
		t.Fatalf("EnsureCurrentSchema failed: %v", err)
	}

	var code string
	if err := database.QueryRow("SELECT room_code FROM reports").Scan(&code); err != nil {
		t.Fatalf("query: %v", err)
	}
	if code != "0201" {
		t.Errorf("expected room_code 0201, got %q", code)
	}
}

func TestSchemaSQLMatchesLadder(t *testing.T) {
	ctx := context.Background()

	laddered := newMemoryDB(t)
	if _, err := (&Migrator{DB: laddered}).EnsureCurrentSchema(ctx); err != nil {
		t.Fatalf("EnsureCurrentSchema failed: %v", err)
	}

	direct := newMemoryDB(t)
	if _, err := direct.Exec(GetSchemaSQL()); err != nil {
		t.Fatalf("apply SchemaSQL: %v", err)
	}

	tables := []string{"schema_meta", "reports", "report_items", "maintenance_items", "general_maintenance", "report_submissions"}
	for _, table := range tables {
		want, err := TableColumns(ctx, laddered, table)
		if err != nil {
			t.Fatalf("ladder columns: %v", err)
		}
		got, err := TableColumns(ctx, direct, table)
		if err != nil {
			t.Fatalf("schema columns: %v", err)
		}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("%s columns drifted:\nSchemaSQL %v\nladder    %v", table, got, want)
		}
	}

	indexes := func(database *sql.DB) []string {
		rows, err := database.Query("SELECT name FROM sqlite_master WHERE type = 'index' AND name LIKE 'idx_%' ORDER BY name")
		if err != nil {
			t.Fatalf("query indexes: %v", err)
		}
		defer rows.Close()
		var names []string
		for rows.Next() {
			var name string
			if err := rows.Scan(&name); err != nil {
				t.Fatalf("scan: %v", err)
			}
			names = append(names, name)
		}
		return names
	}
	if got, want := indexes(direct), indexes(laddered); !reflect.DeepEqual(got, want) {
		t.Errorf("indexes drifted:\nSchemaSQL %v\nladder    %v", got, want)
	}

	v, err := SchemaVersion(ctx, direct)
	if err != nil {
		t.Fatalf("SchemaVersion failed: %v", err)
	}
	if v != CurrentVersion {
		t.Errorf("SchemaSQL records version %d, want %d", v, CurrentVersion)
	}
}
