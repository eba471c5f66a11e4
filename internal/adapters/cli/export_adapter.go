package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/example/manut/internal/ports/primary"
)

// ExportAdapter translates export commands to ExportService calls.
type ExportAdapter struct {
	service primary.ExportService
	out     io.Writer
}

// NewExportAdapter creates a new ExportAdapter with the given service.
func NewExportAdapter(service primary.ExportService, out io.Writer) *ExportAdapter {
	return &ExportAdapter{service: service, out: out}
}

// Reports writes the report listing as CSV into dir.
func (a *ExportAdapter) Reports(ctx context.Context, filters primary.ReportFilters, dir string) error {
	return a.report(a.service.ExportReports(ctx, filters, dir))
}

// OpenPendencies writes open pendencies as CSV into dir.
func (a *ExportAdapter) OpenPendencies(ctx context.Context, filters primary.PendencyFilters, dir string) error {
	return a.report(a.service.ExportOpenPendencies(ctx, filters, dir))
}

// ResolvedPendencies writes resolved pendencies as CSV into dir.
func (a *ExportAdapter) ResolvedPendencies(ctx context.Context, filters primary.PendencyFilters, dir string) error {
	return a.report(a.service.ExportResolvedPendencies(ctx, filters, dir))
}

// Tickets writes tickets as CSV into dir.
func (a *ExportAdapter) Tickets(ctx context.Context, filters primary.TicketFilters, dir string) error {
	return a.report(a.service.ExportTickets(ctx, filters, dir))
}

// Workbook writes the unified spreadsheet into dir.
func (a *ExportAdapter) Workbook(ctx context.Context, from, to time.Time, dir string) error {
	return a.report(a.service.ExportWorkbook(ctx, from, to, dir))
}

func (a *ExportAdapter) report(result *primary.ExportResult, err error) error {
	if err != nil {
		return fmt.Errorf("failed to export: %w", err)
	}
	fmt.Fprintf(a.out, "✓ Wrote %d row(s) to %s\n", result.Rows, result.Path)
	return nil
}
