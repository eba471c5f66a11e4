package db

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/example/manut/internal/core/room"
)

// Migration represents one forward step of the schema ladder. Up runs inside
// the transaction that also records Version, and must be re-entrant: every
// column, table and index it adds is checked for first.
type Migration struct {
	Version int
	Name    string
	Up      func(ctx context.Context, tx *sql.Tx) error
}

// migrations is the list of all migrations in order
var migrations = []Migration{
	{
		Version: 2,
		Name:    "add_floor_apt_room_code_to_reports",
		Up:      migrationV2,
	},
	{
		Version: 3,
		Name:    "add_maintenance_items_catalog",
		Up:      migrationV3,
	},
	{
		Version: 4,
		Name:    "add_resolution_fields_to_report_items",
		Up:      migrationV4,
	},
}

// CurrentVersion is the schema version the ladder ends at.
var CurrentVersion = migrations[len(migrations)-1].Version

// Migrator brings a store to CurrentVersion.
type Migrator struct {
	DB *sql.DB
	// Path is the store file. Empty for in-memory stores, which are never
	// backed up.
	Path      string
	BackupDir string
	Logger    *zap.Logger
	Now       func() time.Time
}

// MigrationResult describes what EnsureCurrentSchema did.
type MigrationResult struct {
	FromVersion int
	ToVersion   int
	BackupPath  string
	SeededItems int
}

// EnsureCurrentSchema is safe to call on every start. It backs up an existing
// store that has pending migrations, creates missing base tables, applies
// each pending step in its own transaction, and seeds the item catalog if it
// is empty. Any failure aborts; the backup is the recovery path.
func (m *Migrator) EnsureCurrentSchema(ctx context.Context) (*MigrationResult, error) {
	logger := m.logger()

	existing, err := hasTable(ctx, m.DB, "reports")
	if err != nil {
		return nil, fmt.Errorf("failed to inspect store: %w", err)
	}

	from := 1
	if ok, err := hasTable(ctx, m.DB, "schema_meta"); err != nil {
		return nil, fmt.Errorf("failed to inspect store: %w", err)
	} else if ok {
		if from, err = SchemaVersion(ctx, m.DB); err != nil {
			return nil, err
		}
	}

	result := &MigrationResult{FromVersion: from, ToVersion: from}

	if existing && from < CurrentVersion && m.Path != "" {
		path, err := m.backup(ctx)
		if err != nil {
			return nil, err
		}
		result.BackupPath = path
		logger.Info("store backed up before migration", zap.String("path", path))
	}

	if _, err := m.DB.ExecContext(ctx, BaseSQL); err != nil {
		return nil, fmt.Errorf("failed to create base tables: %w", err)
	}

	for _, migration := range migrations {
		if migration.Version <= result.ToVersion {
			continue
		}

		logger.Info("running migration",
			zap.Int("from", result.ToVersion),
			zap.Int("to", migration.Version),
			zap.String("name", migration.Name))

		if err := m.apply(ctx, migration); err != nil {
			return nil, err
		}
		result.ToVersion = migration.Version
	}

	seeded, err := SeedDefaultItems(ctx, m.DB, m.now())
	if err != nil {
		return nil, err
	}
	result.SeededItems = seeded
	if seeded > 0 {
		logger.Info("seeded default catalog", zap.Int("items", seeded))
	}

	return result, nil
}

func (m *Migrator) apply(ctx context.Context, migration Migration) error {
	tx, err := m.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction for migration %d: %w", migration.Version, err)
	}
	defer tx.Rollback()

	if err := migration.Up(ctx, tx); err != nil {
		return fmt.Errorf("migration %d (%s) failed: %w", migration.Version, migration.Name, err)
	}

	if _, err := tx.ExecContext(ctx, "UPDATE schema_meta SET version = ? WHERE id = 1", migration.Version); err != nil {
		return fmt.Errorf("failed to record migration %d: %w", migration.Version, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit migration %d: %w", migration.Version, err)
	}
	return nil
}

func (m *Migrator) backup(ctx context.Context) (string, error) {
	// Fold the write-ahead log into the main file so the copy is complete.
	if _, err := m.DB.ExecContext(ctx, "PRAGMA wal_checkpoint(TRUNCATE)"); err != nil {
		return "", fmt.Errorf("failed to checkpoint store before backup: %w", err)
	}
	if _, err := os.Stat(m.Path); err != nil {
		return "", fmt.Errorf("failed to stat store: %w", err)
	}
	return Backup(m.Path, m.BackupDir, m.now())
}

func (m *Migrator) logger() *zap.Logger {
	if m.Logger == nil {
		return zap.NewNop()
	}
	return m.Logger
}

func (m *Migrator) now() time.Time {
	if m.Now == nil {
		return time.Now()
	}
	return m.Now()
}

// SchemaVersion reads the applied version from schema_meta.
func SchemaVersion(ctx context.Context, q queryer) (int, error) {
	var v int
	if err := q.QueryRowContext(ctx, "SELECT version FROM schema_meta WHERE id = 1").Scan(&v); err != nil {
		return 0, fmt.Errorf("failed to get current schema version: %w", err)
	}
	return v, nil
}

type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func hasTable(ctx context.Context, q queryer, table string) (bool, error) {
	var n int
	err := q.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?", table).Scan(&n)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// TableColumns lists the columns of table in declaration order.
func TableColumns(ctx context.Context, q queryer, table string) ([]string, error) {
	// table is always one of our own literals; PRAGMA does not take parameters.
	rows, err := q.QueryContext(ctx, fmt.Sprintf("PRAGMA table_info(%s)", table))
	if err != nil {
		return nil, fmt.Errorf("failed to read columns of %s: %w", table, err)
	}
	defer rows.Close()

	var cols []string
	for rows.Next() {
		var (
			cid       int
			name      string
			colType   string
			notNull   int
			dfltValue sql.NullString
			pk        int
		)
		if err := rows.Scan(&cid, &name, &colType, &notNull, &dfltValue, &pk); err != nil {
			return nil, fmt.Errorf("failed to scan columns of %s: %w", table, err)
		}
		cols = append(cols, name)
	}
	return cols, rows.Err()
}

func tableHasColumn(ctx context.Context, q queryer, table, column string) (bool, error) {
	cols, err := TableColumns(ctx, q, table)
	if err != nil {
		return false, err
	}
	for _, c := range cols {
		if c == column {
			return true, nil
		}
	}
	return false, nil
}

// addColumnIfMissing runs ALTER TABLE ... ADD COLUMN unless column exists.
func addColumnIfMissing(ctx context.Context, tx *sql.Tx, table, column, decl string) error {
	ok, err := tableHasColumn(ctx, tx, table, column)
	if err != nil {
		return err
	}
	if ok {
		return nil
	}
	if _, err := tx.ExecContext(ctx, fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s", table, column, decl)); err != nil {
		return fmt.Errorf("failed to add %s.%s: %w", table, column, err)
	}
	return nil
}

func execAll(ctx context.Context, tx *sql.Tx, stmts ...string) error {
	for _, stmt := range stmts {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to execute %q: %w", stmt, err)
		}
	}
	return nil
}

// migrationV2 derives floor, apt and room_code for reports written with the
// legacy single room number.
func migrationV2(ctx context.Context, tx *sql.Tx) error {
	for _, col := range []string{"floor", "apt"} {
		if err := addColumnIfMissing(ctx, tx, "reports", col, "INTEGER"); err != nil {
			return err
		}
	}
	if err := addColumnIfMissing(ctx, tx, "reports", "room_code", "TEXT"); err != nil {
		return err
	}

	hasRoom, err := tableHasColumn(ctx, tx, "reports", "room")
	if err != nil {
		return err
	}
	if hasRoom {
		// SQLite integer division truncates, matching room.FromLegacy.
		_, err := tx.ExecContext(ctx, `
			UPDATE reports
			SET
				floor = ((room - 1) / ?) + 1,
				apt   = ((room - 1) % ?) + 1
			WHERE (floor IS NULL OR apt IS NULL) AND room IS NOT NULL`,
			room.DefaultAptsPerFloor, room.DefaultAptsPerFloor)
		if err != nil {
			return fmt.Errorf("failed to backfill floor and apt: %w", err)
		}
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE reports
		SET room_code = printf('%02d%02d', floor, apt)
		WHERE (room_code IS NULL OR room_code = '') AND floor IS NOT NULL AND apt IS NOT NULL`)
	if err != nil {
		return fmt.Errorf("failed to backfill room_code: %w", err)
	}

	return execAll(ctx, tx,
		"CREATE INDEX IF NOT EXISTS idx_reports_date ON reports(report_date)",
		"CREATE INDEX IF NOT EXISTS idx_reports_roomcode ON reports(room_code)",
		"CREATE INDEX IF NOT EXISTS idx_reports_floor_apt ON reports(floor, apt)",
	)
}

// migrationV3 introduces the registrable item catalog.
func migrationV3(ctx context.Context, tx *sql.Tx) error {
	if err := execAll(ctx, tx, `
		CREATE TABLE IF NOT EXISTS maintenance_items (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL UNIQUE COLLATE NOCASE,
			active INTEGER NOT NULL DEFAULT 1,
			created_at TEXT NOT NULL
		)`); err != nil {
		return err
	}

	if err := addColumnIfMissing(ctx, tx, "report_items", "item_id", "INTEGER"); err != nil {
		return err
	}

	return execAll(ctx, tx,
		"CREATE INDEX IF NOT EXISTS idx_items_active ON maintenance_items(active)",
		"CREATE INDEX IF NOT EXISTS idx_report_items_item_id ON report_items(item_id)",
	)
}

// migrationV4 adds pendency resolution tracking.
func migrationV4(ctx context.Context, tx *sql.Tx) error {
	for _, col := range []string{"resolved_at", "resolved_by", "resolution_note"} {
		if err := addColumnIfMissing(ctx, tx, "report_items", col, "TEXT"); err != nil {
			return err
		}
	}

	return execAll(ctx, tx,
		"CREATE INDEX IF NOT EXISTS idx_report_items_resolved_at ON report_items(resolved_at)",
	)
}
