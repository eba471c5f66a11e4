package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/example/manut/internal/ports/primary"
	"github.com/example/manut/internal/ports/secondary"
)

// StoreServiceImpl implements the StoreService interface.
type StoreServiceImpl struct {
	store  secondary.StoreAdapter
	logger *zap.Logger
}

// NewStoreService creates a new StoreService with injected dependencies.
func NewStoreService(store secondary.StoreAdapter, logger *zap.Logger) *StoreServiceImpl {
	return &StoreServiceImpl{store: store, logger: logger}
}

// EnsureSchema migrates the store to the current version.
func (s *StoreServiceImpl) EnsureSchema(ctx context.Context) (*primary.SchemaResult, error) {
	record, err := s.store.EnsureCurrentSchema(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate store: %w", err)
	}
	if record.FromVersion != record.ToVersion {
		s.logger.Info("store migrated",
			zap.Int("from", record.FromVersion),
			zap.Int("to", record.ToVersion),
			zap.String("backup", record.BackupPath))
	}
	return &primary.SchemaResult{
		FromVersion: record.FromVersion,
		ToVersion:   record.ToVersion,
		BackupPath:  record.BackupPath,
		SeededItems: record.SeededItems,
	}, nil
}

// Backup writes a timestamped copy of the store.
func (s *StoreServiceImpl) Backup(ctx context.Context) (string, error) {
	path, err := s.store.Backup(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to back up store: %w", err)
	}
	s.logger.Info("store backed up", zap.String("path", path))
	return path, nil
}

// Status reports the schema version and row counts.
func (s *StoreServiceImpl) Status(ctx context.Context) (*primary.StoreStatus, error) {
	stats, err := s.store.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read store status: %w", err)
	}
	return &primary.StoreStatus{
		Path:           stats.Path,
		Version:        stats.Version,
		LatestVersion:  stats.LatestVersion,
		Reports:        stats.Reports,
		ReportItems:    stats.ReportItems,
		OpenPendencies: stats.OpenPendencies,
		Items:          stats.Items,
		ActiveItems:    stats.ActiveItems,
		Tickets:        stats.Tickets,
		OpenTickets:    stats.OpenTickets,
	}, nil
}
