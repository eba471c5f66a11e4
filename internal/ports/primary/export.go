package primary

import (
	"context"
	"time"
)

// ExportService defines the primary port for file exports.
// Every export writes into Dir using the name {kind}_{from}_a_{to}.{ext}.
type ExportService interface {
	// ExportReports writes the filtered report rows as CSV.
	ExportReports(ctx context.Context, filters ReportFilters, dir string) (*ExportResult, error)

	// ExportOpenPendencies writes open pendencies as CSV.
	ExportOpenPendencies(ctx context.Context, filters PendencyFilters, dir string) (*ExportResult, error)

	// ExportResolvedPendencies writes resolved pendencies as CSV.
	ExportResolvedPendencies(ctx context.Context, filters PendencyFilters, dir string) (*ExportResult, error)

	// ExportTickets writes tickets as CSV.
	ExportTickets(ctx context.Context, filters TicketFilters, dir string) (*ExportResult, error)

	// ExportWorkbook writes one spreadsheet with the report, resolved
	// pendency and ticket sheets for a shared date range.
	ExportWorkbook(ctx context.Context, from, to time.Time, dir string) (*ExportResult, error)
}

// ExportResult describes a written export file.
type ExportResult struct {
	Path string
	Rows int
}
