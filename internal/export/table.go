// Package export turns report, pendency and ticket listings into CSV files
// and spreadsheets.
package export

import (
	"fmt"
	"time"

	"github.com/example/manut/internal/ports/primary"
)

// Export kinds, used as the leading part of file names.
const (
	KindReports    = "relatorio_aptos"
	KindPendencies = "pendencias_aptos"
	KindResolved   = "resolvidas_aptos"
	KindTickets    = "manutencao_geral"
	KindWorkbook   = "relatorio_unificado"
)

// Sheet names of the unified workbook.
const (
	SheetReports  = "Aptos"
	SheetResolved = "Resolvidas Aptos"
	SheetTickets  = "Manutenção Geral"
)

// Table is a header plus rows of cell values.
type Table struct {
	Header []string
	Rows   [][]any
}

// FileName returns {kind}_{from}_a_{to}.{ext} with ISO dates.
func FileName(kind string, from, to time.Time, ext string) string {
	return fmt.Sprintf("%s_%s_a_%s.%s", kind, from.Format(time.DateOnly), to.Format(time.DateOnly), ext)
}

// ReportColumns is the column order of the general report export.
var ReportColumns = []string{
	"report_date", "room_code", "floor", "apt", "technician", "item", "status", "note", "created_at", "report_id",
}

// PendencyColumns is the column order of the open and resolved pendency
// exports.
var PendencyColumns = []string{
	"report_date", "room_code", "floor", "apt", "technician", "item", "note", "created_at", "report_id",
	"resolved_at", "resolved_by", "resolution_note",
}

// TicketColumns is the column order of the general maintenance export.
var TicketColumns = []string{
	"maint_date", "place", "description", "status", "technician", "note", "created_at",
	"resolved_at", "resolved_by", "resolution_note", "id",
}

// ReportTable projects report rows for export.
func ReportTable(rows []*primary.ReportRow) Table {
	t := Table{Header: ReportColumns, Rows: make([][]any, 0, len(rows))}
	for _, r := range rows {
		t.Rows = append(t.Rows, []any{
			r.ReportDate.Format(time.DateOnly), r.RoomCode, r.Floor, r.Apt, r.Technician,
			r.Item, r.Status, r.Note, r.CreatedAt, r.ReportID,
		})
	}
	return t
}

// PendencyTable projects pendency rows for export.
func PendencyTable(rows []*primary.ReportRow) Table {
	t := Table{Header: PendencyColumns, Rows: make([][]any, 0, len(rows))}
	for _, r := range rows {
		t.Rows = append(t.Rows, []any{
			r.ReportDate.Format(time.DateOnly), r.RoomCode, r.Floor, r.Apt, r.Technician,
			r.Item, r.Note, r.CreatedAt, r.ReportID,
			r.ResolvedAt, r.ResolvedBy, r.ResolutionNote,
		})
	}
	return t
}

// TicketTable projects tickets for export.
func TicketTable(tickets []*primary.Ticket) Table {
	t := Table{Header: TicketColumns, Rows: make([][]any, 0, len(tickets))}
	for _, tk := range tickets {
		t.Rows = append(t.Rows, []any{
			tk.Date.Format(time.DateOnly), tk.Place, tk.Description, tk.Status, tk.Technician, tk.Note,
			tk.CreatedAt, tk.ResolvedAt, tk.ResolvedBy, tk.ResolutionNote, tk.ID,
		})
	}
	return t
}
