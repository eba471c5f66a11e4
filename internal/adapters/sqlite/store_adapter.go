package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	storedb "github.com/example/manut/internal/db"
	"github.com/example/manut/internal/ports/secondary"
)

// StoreAdapter implements secondary.StoreAdapter over the migration engine.
type StoreAdapter struct {
	db       *sql.DB
	migrator *storedb.Migrator
}

// NewStoreAdapter creates a store adapter for the store at path. path is
// empty for in-memory stores.
func NewStoreAdapter(db *sql.DB, path, backupDir string, logger *zap.Logger) *StoreAdapter {
	return &StoreAdapter{
		db: db,
		migrator: &storedb.Migrator{
			DB:        db,
			Path:      path,
			BackupDir: backupDir,
			Logger:    logger,
			Now:       time.Now,
		},
	}
}

// EnsureCurrentSchema migrates the store and seeds the catalog.
func (a *StoreAdapter) EnsureCurrentSchema(ctx context.Context) (*secondary.SchemaRecord, error) {
	result, err := a.migrator.EnsureCurrentSchema(ctx)
	if err != nil {
		return nil, err
	}
	return &secondary.SchemaRecord{
		FromVersion: result.FromVersion,
		ToVersion:   result.ToVersion,
		BackupPath:  result.BackupPath,
		SeededItems: result.SeededItems,
	}, nil
}

// Backup copies the store file after folding the write-ahead log into it.
func (a *StoreAdapter) Backup(ctx context.Context) (string, error) {
	if a.migrator.Path == "" {
		return "", errors.New("in-memory store cannot be backed up")
	}
	if _, err := a.db.ExecContext(ctx, "PRAGMA wal_checkpoint(TRUNCATE)"); err != nil {
		return "", fmt.Errorf("failed to checkpoint store: %w", err)
	}
	return storedb.Backup(a.migrator.Path, a.migrator.BackupDir, a.migrator.Now())
}

// Stats reads the schema version and row counts.
func (a *StoreAdapter) Stats(ctx context.Context) (*secondary.StoreStatsRecord, error) {
	version, err := storedb.SchemaVersion(ctx, a.db)
	if err != nil {
		return nil, err
	}

	stats := &secondary.StoreStatsRecord{
		Path:          a.migrator.Path,
		Version:       version,
		LatestVersion: storedb.CurrentVersion,
	}

	counts := []struct {
		query string
		dest  *int
	}{
		{"SELECT COUNT(*) FROM reports", &stats.Reports},
		{"SELECT COUNT(*) FROM report_items", &stats.ReportItems},
		{"SELECT COUNT(*) FROM report_items WHERE status = 'Problema' AND resolved_at IS NULL", &stats.OpenPendencies},
		{"SELECT COUNT(*) FROM maintenance_items", &stats.Items},
		{"SELECT COUNT(*) FROM maintenance_items WHERE active = 1", &stats.ActiveItems},
		{"SELECT COUNT(*) FROM general_maintenance", &stats.Tickets},
		{"SELECT COUNT(*) FROM general_maintenance WHERE resolved_at IS NULL", &stats.OpenTickets},
	}
	for _, c := range counts {
		if err := a.db.QueryRowContext(ctx, c.query).Scan(c.dest); err != nil {
			return nil, fmt.Errorf("failed to read store stats: %w", err)
		}
	}
	return stats, nil
}
