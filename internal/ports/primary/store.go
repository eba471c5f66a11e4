package primary

import "context"

// StoreService defines the primary port for store lifecycle operations.
type StoreService interface {
	// EnsureSchema migrates the store to the current version. Safe to call
	// on every start.
	EnsureSchema(ctx context.Context) (*SchemaResult, error)

	// Backup writes a timestamped copy of the store.
	Backup(ctx context.Context) (string, error)

	// Status reports the schema version and row counts.
	Status(ctx context.Context) (*StoreStatus, error)
}

// SchemaResult describes a migration run.
type SchemaResult struct {
	FromVersion int
	ToVersion   int
	BackupPath  string
	SeededItems int
}

// StoreStatus holds the schema version and row counts of the store.
type StoreStatus struct {
	Path           string
	Version        int
	LatestVersion  int
	Reports        int
	ReportItems    int
	OpenPendencies int
	Items          int
	ActiveItems    int
	Tickets        int
	OpenTickets    int
}
