// Package wire provides dependency injection for manut.
// It creates singleton services with lazy initialization.
package wire

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"sync"

	"go.uber.org/zap"

	cliadapter "github.com/example/manut/internal/adapters/cli"
	"github.com/example/manut/internal/adapters/sqlite"
	"github.com/example/manut/internal/app"
	"github.com/example/manut/internal/config"
	"github.com/example/manut/internal/core/room"
	"github.com/example/manut/internal/db"
	"github.com/example/manut/internal/logging"
	"github.com/example/manut/internal/ports/primary"
)

var (
	configPath string

	cfg      *config.Config
	logger   *zap.Logger
	database *sql.DB

	reportService   primary.ReportService
	pendencyService primary.PendencyService
	catalogService  primary.CatalogService
	ticketService   primary.TicketService
	exportService   primary.ExportService
	storeService    primary.StoreService

	once    sync.Once
	initErr error
)

// SetConfigPath selects the YAML config file. It must be called before the
// first service is requested; an empty path means defaults and environment.
func SetConfigPath(path string) {
	configPath = path
}

// Init loads configuration, opens the store and builds every service.
// Later calls return the first result.
func Init(ctx context.Context) error {
	once.Do(func() { initErr = initServices(ctx) })
	return initErr
}

func mustInit() {
	if err := Init(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize manut: %v\n", err)
		os.Exit(1)
	}
}

// initServices initializes all services and their dependencies.
// This is called once via sync.Once.
func initServices(ctx context.Context) error {
	loaded, err := config.LoadConfig(configPath)
	if err != nil {
		return err
	}
	if err := loaded.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	log, err := logging.New(loaded.LogLevel, loaded.LogFormat)
	if err != nil {
		return err
	}

	conn, err := db.Open(ctx, loaded.DatabasePath)
	if err != nil {
		return err
	}

	// Create repository adapters (secondary ports) - sqlite adapters with injected DB
	retry := sqlite.RetryPolicy{Attempts: loaded.BusyRetries, Backoff: loaded.BusyBackoff}
	reportRepo := sqlite.NewReportRepository(conn, retry)
	itemRepo := sqlite.NewItemRepository(conn, retry)
	ticketRepo := sqlite.NewTicketRepository(conn, retry)
	submissionRepo := sqlite.NewSubmissionRepository(conn, retry)
	storeAdapter := sqlite.NewStoreAdapter(conn, loaded.DatabasePath, loaded.BackupDir, log)

	layout := room.Layout{Floors: loaded.Floors, AptsPerFloor: loaded.AptsPerFloor}

	// Create services (primary ports implementation)
	reports := app.NewReportService(reportRepo, itemRepo, submissionRepo, layout, log)
	pendencies := app.NewPendencyService(reportRepo, log)
	tickets := app.NewTicketService(ticketRepo, log)

	cfg = loaded
	logger = log
	database = conn
	reportService = reports
	pendencyService = pendencies
	catalogService = app.NewCatalogService(itemRepo, log)
	ticketService = tickets
	exportService = app.NewExportService(reports, pendencies, tickets, log)
	storeService = app.NewStoreService(storeAdapter, log)
	return nil
}

// Close releases the store connection and flushes the logger.
func Close() error {
	if logger != nil {
		_ = logger.Sync()
	}
	if database != nil {
		return database.Close()
	}
	return nil
}

// Config returns the loaded configuration.
func Config() *config.Config {
	mustInit()
	return cfg
}

// Logger returns the singleton logger.
func Logger() *zap.Logger {
	mustInit()
	return logger
}

// StoreService returns the singleton StoreService instance.
func StoreService() primary.StoreService {
	mustInit()
	return storeService
}

// ReportAdapter returns a new ReportAdapter writing to stdout.
// Each call creates a new adapter (adapters are stateless translators).
func ReportAdapter() *cliadapter.ReportAdapter {
	return ReportAdapterWithOutput(os.Stdout)
}

// ReportAdapterWithOutput returns a new ReportAdapter writing to the given output.
func ReportAdapterWithOutput(out io.Writer) *cliadapter.ReportAdapter {
	mustInit()
	return cliadapter.NewReportAdapter(reportService, out)
}

// PendencyAdapter returns a new PendencyAdapter writing to stdout.
func PendencyAdapter() *cliadapter.PendencyAdapter {
	mustInit()
	return cliadapter.NewPendencyAdapter(pendencyService, os.Stdout)
}

// CatalogAdapter returns a new CatalogAdapter writing to stdout.
func CatalogAdapter() *cliadapter.CatalogAdapter {
	mustInit()
	return cliadapter.NewCatalogAdapter(catalogService, os.Stdout)
}

// TicketAdapter returns a new TicketAdapter writing to stdout.
func TicketAdapter() *cliadapter.TicketAdapter {
	mustInit()
	return cliadapter.NewTicketAdapter(ticketService, os.Stdout)
}

// ExportAdapter returns a new ExportAdapter writing to stdout.
func ExportAdapter() *cliadapter.ExportAdapter {
	mustInit()
	return cliadapter.NewExportAdapter(exportService, os.Stdout)
}

// StoreAdapter returns a new StoreAdapter writing to stdout.
func StoreAdapter() *cliadapter.StoreAdapter {
	mustInit()
	return cliadapter.NewStoreAdapter(storeService, os.Stdout)
}
