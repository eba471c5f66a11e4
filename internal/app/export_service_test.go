package app

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/example/manut/internal/core/errs"
	"github.com/example/manut/internal/export"
	"github.com/example/manut/internal/ports/primary"
)

func newTestExportService(t *testing.T) (*ExportServiceImpl, *ReportServiceImpl, *PendencyServiceImpl, *TicketServiceImpl) {
	t.Helper()
	reports, reportRepo, _ := newTestReportService("Frigobar", "Cofre")
	pendencies := NewPendencyService(reportRepo, zap.NewNop())
	pendencies.now = fixedNow
	tickets, _ := newTestTicketService()
	return NewExportService(reports, pendencies, tickets, zap.NewNop()), reports, pendencies, tickets
}

func TestExportReports(t *testing.T) {
	service, reports, _, _ := newTestExportService(t)
	ctx := context.Background()
	_, err := reports.CreateReport(ctx, frigobarRequest())
	require.NoError(t, err)

	dir := filepath.Join(t.TempDir(), "out")
	result, err := service.ExportReports(ctx, primary.ReportFilters{DateFrom: jan10, DateTo: jan31}, dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "relatorio_aptos_2024-01-10_a_2024-01-31.csv"), result.Path)
	assert.Equal(t, 2, result.Rows)

	data, err := os.ReadFile(result.Path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "\xef\xbb\xbfreport_date,room_code,"))
	assert.Contains(t, lines[1], "Frigobar,Problema,faz ruído")
}

func TestExportPendencies(t *testing.T) {
	service, reports, pendencies, _ := newTestExportService(t)
	ctx := context.Background()
	_, err := reports.CreateReport(ctx, frigobarRequest())
	require.NoError(t, err)

	dir := t.TempDir()
	open, err := service.ExportOpenPendencies(ctx, januaryPendencies, dir)
	require.NoError(t, err)
	assert.Equal(t, 1, open.Rows)
	assert.Equal(t, "pendencias_aptos_2024-01-10_a_2024-01-31.csv", filepath.Base(open.Path))

	rows, err := pendencies.ListOpen(ctx, januaryPendencies)
	require.NoError(t, err)
	require.NoError(t, pendencies.Resolve(ctx, primary.ResolvePendencyRequest{ReportItemID: rows[0].ReportItemID, ResolvedBy: "Carlos", ResolutionNote: "trocado"}))

	resolved, err := service.ExportResolvedPendencies(ctx, januaryPendencies, dir)
	require.NoError(t, err)
	assert.Equal(t, 1, resolved.Rows)

	data, err := os.ReadFile(resolved.Path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Carlos,trocado")
	assert.NotContains(t, strings.SplitN(string(data), "\n", 2)[0], "status")
}

func TestExportTickets_Empty(t *testing.T) {
	service, _, _, _ := newTestExportService(t)

	result, err := service.ExportTickets(context.Background(), primary.TicketFilters{DateFrom: jan10, DateTo: jan31}, t.TempDir())
	require.NoError(t, err)
	assert.Zero(t, result.Rows)
	assert.FileExists(t, result.Path)
}

func TestExportWorkbook(t *testing.T) {
	service, reports, _, tickets := newTestExportService(t)
	ctx := context.Background()
	_, err := reports.CreateReport(ctx, frigobarRequest())
	require.NoError(t, err)
	_, err = tickets.CreateTicket(ctx, lobbyTicket())
	require.NoError(t, err)

	result, err := service.ExportWorkbook(ctx, jan10, jan31, t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "relatorio_unificado_2024-01-10_a_2024-01-31.xlsx", filepath.Base(result.Path))
	assert.Equal(t, 3, result.Rows)

	f, err := excelize.OpenFile(result.Path)
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{export.SheetReports, export.SheetResolved, export.SheetTickets}, f.GetSheetList())

	resolved, err := f.GetRows(export.SheetResolved)
	require.NoError(t, err)
	assert.Len(t, resolved, 1, "resolved sheet keeps its header when empty")
}

func TestExportWorkbook_InvalidRange(t *testing.T) {
	service, _, _, _ := newTestExportService(t)
	dir := t.TempDir()

	_, err := service.ExportWorkbook(context.Background(), jan31, jan10, dir)
	assert.ErrorIs(t, err, errs.ErrValidation)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
