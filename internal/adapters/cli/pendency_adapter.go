package cli

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/example/manut/internal/core/summary"
	"github.com/example/manut/internal/ports/primary"
)

// PendencyAdapter translates pendency commands to PendencyService calls.
type PendencyAdapter struct {
	service primary.PendencyService
	out     io.Writer
}

// NewPendencyAdapter creates a new PendencyAdapter with the given service.
func NewPendencyAdapter(service primary.PendencyService, out io.Writer) *PendencyAdapter {
	return &PendencyAdapter{service: service, out: out}
}

// ListOpen prints open pendencies, or their per-room counts when
// summarize is set.
func (a *PendencyAdapter) ListOpen(ctx context.Context, filters primary.PendencyFilters, summarize bool) error {
	if summarize {
		counts, err := a.service.SummaryByRoom(ctx, filters)
		if err != nil {
			return fmt.Errorf("failed to summarize pendencies: %w", err)
		}
		a.printSummary(counts)
		return nil
	}

	rows, err := a.service.ListOpen(ctx, filters)
	if err != nil {
		return fmt.Errorf("failed to list pendencies: %w", err)
	}
	if len(rows) == 0 {
		fmt.Fprintln(a.out, "No open pendencies.")
		return nil
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "ID\tDATE\tROOM\tITEM\tNOTE\tTECHNICIAN")
	fmt.Fprintln(w, "--\t----\t----\t----\t----\t----------")
	for _, r := range rows {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
			r.ReportItemID,
			r.ReportDate.Format(time.DateOnly),
			r.RoomCode,
			r.Item,
			orDash(r.Note),
			r.Technician,
		)
	}
	w.Flush()
	fmt.Fprintf(a.out, "\n%d open pendenc(ies)\n", len(rows))
	return nil
}

func (a *PendencyAdapter) printSummary(counts []summary.RoomCount) {
	if len(counts) == 0 {
		fmt.Fprintln(a.out, "No open pendencies.")
		return
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "DATE\tROOM\tPENDENCIES")
	fmt.Fprintln(w, "----\t----\t----------")
	for _, c := range counts {
		fmt.Fprintf(w, "%s\t%s\t%d\n", c.ReportDate, c.RoomCode, c.Count)
	}
	w.Flush()
	fmt.Fprintf(a.out, "\nTotal: %d\n", summary.Total(counts))
}

// ListResolved prints resolved pendencies with their resolution.
func (a *PendencyAdapter) ListResolved(ctx context.Context, filters primary.PendencyFilters) error {
	rows, err := a.service.ListResolved(ctx, filters)
	if err != nil {
		return fmt.Errorf("failed to list resolved pendencies: %w", err)
	}
	if len(rows) == 0 {
		fmt.Fprintln(a.out, "No resolved pendencies.")
		return nil
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "ID\tDATE\tROOM\tITEM\tRESOLVED AT\tBY\tRESOLUTION")
	fmt.Fprintln(w, "--\t----\t----\t----\t-----------\t--\t----------")
	for _, r := range rows {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
			r.ReportItemID,
			r.ReportDate.Format(time.DateOnly),
			r.RoomCode,
			r.Item,
			r.ResolvedAt,
			r.ResolvedBy,
			orDash(r.ResolutionNote),
		)
	}
	w.Flush()
	return nil
}

// Resolve closes one pendency.
func (a *PendencyAdapter) Resolve(ctx context.Context, req primary.ResolvePendencyRequest) error {
	if err := a.service.Resolve(ctx, req); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "✓ Pendency %d resolved\n", req.ReportItemID)
	return nil
}
