package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/example/manut/internal/ports/primary"
)

// StoreAdapter translates store lifecycle commands to StoreService calls.
type StoreAdapter struct {
	service primary.StoreService
	out     io.Writer
}

// NewStoreAdapter creates a new StoreAdapter with the given service.
func NewStoreAdapter(service primary.StoreService, out io.Writer) *StoreAdapter {
	return &StoreAdapter{service: service, out: out}
}

// Migrate brings the store to the current schema version.
func (a *StoreAdapter) Migrate(ctx context.Context) (*primary.SchemaResult, error) {
	result, err := a.service.EnsureSchema(ctx)
	if err != nil {
		return nil, err
	}

	if result.FromVersion == result.ToVersion {
		fmt.Fprintf(a.out, "✓ Schema is current (v%d)\n", result.ToVersion)
	} else {
		fmt.Fprintf(a.out, "✓ Migrated schema v%d → v%d\n", result.FromVersion, result.ToVersion)
	}
	if result.BackupPath != "" {
		fmt.Fprintf(a.out, "  Backup: %s\n", result.BackupPath)
	}
	if result.SeededItems > 0 {
		fmt.Fprintf(a.out, "  Seeded %d catalog item(s)\n", result.SeededItems)
	}
	return result, nil
}

// Backup writes a timestamped copy of the store.
func (a *StoreAdapter) Backup(ctx context.Context) (string, error) {
	path, err := a.service.Backup(ctx)
	if err != nil {
		return "", err
	}
	fmt.Fprintf(a.out, "✓ Backup written to %s\n", path)
	return path, nil
}

// Status prints the schema version and row counts.
func (a *StoreAdapter) Status(ctx context.Context) (*primary.StoreStatus, error) {
	s, err := a.service.Status(ctx)
	if err != nil {
		return nil, err
	}

	version := color.New(color.FgGreen).Sprintf("v%d", s.Version)
	if s.Version < s.LatestVersion {
		version = color.New(color.FgYellow).Sprintf("v%d (latest v%d, run manut migrate)", s.Version, s.LatestVersion)
	}

	fmt.Fprintf(a.out, "Store:    %s\n", s.Path)
	fmt.Fprintf(a.out, "Schema:   %s\n", version)
	fmt.Fprintf(a.out, "Reports:  %d (%d item line(s), %d open pendenc(ies))\n", s.Reports, s.ReportItems, s.OpenPendencies)
	fmt.Fprintf(a.out, "Catalog:  %d item(s), %d active\n", s.Items, s.ActiveItems)
	fmt.Fprintf(a.out, "Tickets:  %d (%d not resolved)\n", s.Tickets, s.OpenTickets)
	return s, nil
}
