package sqlite

import (
	"strings"

	"github.com/example/manut/internal/core/report"
	"github.com/example/manut/internal/ports/secondary"
)

// predicates collects parameterized WHERE clauses. Values only ever travel
// as arguments.
type predicates struct {
	clauses []string
	args    []any
}

func (p *predicates) add(clause string, args ...any) {
	p.clauses = append(p.clauses, clause)
	p.args = append(p.args, args...)
}

func (p *predicates) where() string {
	if len(p.clauses) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(p.clauses, " AND ")
}

// likeContains builds a LIKE pattern matching s anywhere, with LIKE
// wildcards in s escaped. Use with ESCAPE '\'.
func likeContains(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(s) + "%"
}

const reportRowsSelect = `SELECT
	r.id AS report_id,
	r.report_date,
	r.floor,
	r.apt,
	r.room_code,
	r.technician,
	r.created_at,
	ri.id AS report_item_id,
	ri.item_id,
	ri.item,
	ri.status,
	ri.note,
	ri.resolved_at,
	ri.resolved_by,
	ri.resolution_note
FROM reports r
JOIN report_items ri ON ri.report_id = r.id`

// reportRowsQuery translates filters into the report rows query.
func reportRowsQuery(f secondary.ReportFilters) (string, []any) {
	p := &predicates{}
	p.add("r.report_date BETWEEN ? AND ?", f.DateFrom, f.DateTo)

	if f.Floor != nil {
		p.add("r.floor = ?", *f.Floor)
	}
	if f.Apt != nil {
		p.add("r.apt = ?", *f.Apt)
	}
	if f.RoomCode != "" {
		p.add("r.room_code = ?", f.RoomCode)
	}
	if f.Technician != "" {
		p.add(`r.technician LIKE ? ESCAPE '\'`, likeContains(f.Technician))
	}
	if f.Status != "" {
		p.add("ri.status = ?", f.Status)
	}

	switch f.Pendency {
	case secondary.PendencyOpen:
		p.add("ri.status = ?", report.StatusProblem)
		p.add("ri.resolved_at IS NULL")
	case secondary.PendencyResolved:
		p.add("ri.status = ?", report.StatusProblem)
		p.add("ri.resolved_at IS NOT NULL")
	}

	order := " ORDER BY r.report_date DESC, r.floor ASC, r.apt ASC, r.id DESC"
	if f.Order == secondary.OrderByRoomCode {
		order = " ORDER BY r.report_date DESC, r.room_code ASC, r.id DESC"
	}

	// Items of one report keep their checklist order.
	return reportRowsSelect + p.where() + order + ", ri.id ASC", p.args
}

const ticketSelect = `SELECT id, maint_date, place, description, status, technician, note,
	created_at, resolved_at, resolved_by, resolution_note
FROM general_maintenance`

// ticketsQuery translates filters into the ticket listing query.
func ticketsQuery(f secondary.TicketFilters) (string, []any) {
	p := &predicates{}
	if f.DateFrom != "" && f.DateTo != "" {
		p.add("maint_date BETWEEN ? AND ?", f.DateFrom, f.DateTo)
	}
	if f.Status != "" {
		p.add("status = ?", f.Status)
	}
	if f.Search != "" {
		pattern := likeContains(f.Search)
		p.add(`(place LIKE ? ESCAPE '\' OR description LIKE ? ESCAPE '\' OR technician LIKE ? ESCAPE '\')`,
			pattern, pattern, pattern)
	}
	return ticketSelect + p.where() + " ORDER BY maint_date DESC, id DESC", p.args
}
