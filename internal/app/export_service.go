package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/example/manut/internal/core/report"
	"github.com/example/manut/internal/export"
	"github.com/example/manut/internal/ports/primary"
)

// ExportServiceImpl implements the ExportService interface on top of the
// read services.
type ExportServiceImpl struct {
	reports    primary.ReportService
	pendencies primary.PendencyService
	tickets    primary.TicketService
	logger     *zap.Logger
}

// NewExportService creates a new ExportService with injected dependencies.
func NewExportService(
	reports primary.ReportService,
	pendencies primary.PendencyService,
	tickets primary.TicketService,
	logger *zap.Logger,
) *ExportServiceImpl {
	return &ExportServiceImpl{
		reports:    reports,
		pendencies: pendencies,
		tickets:    tickets,
		logger:     logger,
	}
}

// ExportReports writes the general report listing as CSV into dir.
func (s *ExportServiceImpl) ExportReports(ctx context.Context, filters primary.ReportFilters, dir string) (*primary.ExportResult, error) {
	rows, err := s.reports.FetchReports(ctx, filters)
	if err != nil {
		return nil, err
	}
	name := export.FileName(export.KindReports, filters.DateFrom, filters.DateTo, "csv")
	return s.writeCSV(dir, name, export.ReportTable(rows))
}

// ExportOpenPendencies writes open pendencies as CSV into dir.
func (s *ExportServiceImpl) ExportOpenPendencies(ctx context.Context, filters primary.PendencyFilters, dir string) (*primary.ExportResult, error) {
	rows, err := s.pendencies.ListOpen(ctx, filters)
	if err != nil {
		return nil, err
	}
	name := export.FileName(export.KindPendencies, filters.DateFrom, filters.DateTo, "csv")
	return s.writeCSV(dir, name, export.PendencyTable(rows))
}

// ExportResolvedPendencies writes resolved pendencies as CSV into dir.
func (s *ExportServiceImpl) ExportResolvedPendencies(ctx context.Context, filters primary.PendencyFilters, dir string) (*primary.ExportResult, error) {
	rows, err := s.pendencies.ListResolved(ctx, filters)
	if err != nil {
		return nil, err
	}
	name := export.FileName(export.KindResolved, filters.DateFrom, filters.DateTo, "csv")
	return s.writeCSV(dir, name, export.PendencyTable(rows))
}

// ExportTickets writes general maintenance tickets as CSV into dir.
func (s *ExportServiceImpl) ExportTickets(ctx context.Context, filters primary.TicketFilters, dir string) (*primary.ExportResult, error) {
	tickets, err := s.tickets.ListTickets(ctx, filters)
	if err != nil {
		return nil, err
	}
	name := export.FileName(export.KindTickets, filters.DateFrom, filters.DateTo, "csv")
	return s.writeCSV(dir, name, export.TicketTable(tickets))
}

// ExportWorkbook writes the unified spreadsheet for one date range: report
// rows, resolved pendencies and tickets, one sheet each.
func (s *ExportServiceImpl) ExportWorkbook(ctx context.Context, from, to time.Time, dir string) (*primary.ExportResult, error) {
	if err := report.CanQueryRange(from, to).Error(); err != nil {
		return nil, err
	}

	rows, err := s.reports.FetchReports(ctx, primary.ReportFilters{DateFrom: from, DateTo: to})
	if err != nil {
		return nil, err
	}
	resolved, err := s.pendencies.ListResolved(ctx, primary.PendencyFilters{DateFrom: from, DateTo: to})
	if err != nil {
		return nil, err
	}
	tickets, err := s.tickets.ListTickets(ctx, primary.TicketFilters{DateFrom: from, DateTo: to})
	if err != nil {
		return nil, err
	}

	path, err := createPath(dir, export.FileName(export.KindWorkbook, from, to, "xlsx"))
	if err != nil {
		return nil, err
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create export file: %w", err)
	}
	defer f.Close()

	err = export.WriteWorkbook(f, []export.Sheet{
		{Name: export.SheetReports, Table: export.ReportTable(rows)},
		{Name: export.SheetResolved, Table: export.PendencyTable(resolved)},
		{Name: export.SheetTickets, Table: export.TicketTable(tickets)},
	})
	if err != nil {
		return nil, err
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("failed to close export file: %w", err)
	}

	total := len(rows) + len(resolved) + len(tickets)
	s.logger.Info("workbook exported", zap.String("path", path), zap.Int("rows", total))
	return &primary.ExportResult{Path: path, Rows: total}, nil
}

func (s *ExportServiceImpl) writeCSV(dir, name string, table export.Table) (*primary.ExportResult, error) {
	path, err := createPath(dir, name)
	if err != nil {
		return nil, err
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create export file: %w", err)
	}
	defer f.Close()

	if err := export.WriteCSV(f, table); err != nil {
		return nil, err
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("failed to close export file: %w", err)
	}

	s.logger.Info("csv exported", zap.String("path", path), zap.Int("rows", len(table.Rows)))
	return &primary.ExportResult{Path: path, Rows: len(table.Rows)}, nil
}

func createPath(dir, name string) (string, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create export dir: %w", err)
	}
	return filepath.Join(dir, name), nil
}
