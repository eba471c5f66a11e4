package cli

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/example/manut/internal/ports/primary"
)

// ReportAdapter translates report commands to ReportService calls.
type ReportAdapter struct {
	service primary.ReportService
	out     io.Writer
}

// NewReportAdapter creates a new ReportAdapter with the given service.
func NewReportAdapter(service primary.ReportService, out io.Writer) *ReportAdapter {
	return &ReportAdapter{service: service, out: out}
}

// Token issues a submission token and prints it alone so scripts can capture it.
func (a *ReportAdapter) Token(ctx context.Context) (string, error) {
	token, err := a.service.IssueSubmissionToken(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to issue submission token: %w", err)
	}
	fmt.Fprintln(a.out, token)
	return token, nil
}

// Create saves a report and prints a confirmation.
func (a *ReportAdapter) Create(ctx context.Context, req primary.CreateReportRequest) (*primary.CreateReportResponse, error) {
	resp, err := a.service.CreateReport(ctx, req)
	if err != nil {
		return nil, err
	}

	fmt.Fprintf(a.out, "✓ Report %d saved for room %s\n", resp.ReportID, resp.RoomCode)
	fmt.Fprintf(a.out, "  Date:  %s\n", req.Date.Format(time.DateOnly))
	fmt.Fprintf(a.out, "  Items: %d\n", resp.ItemCount)
	return resp, nil
}

// Show displays one report with its checklist.
func (a *ReportAdapter) Show(ctx context.Context, reportID int64) (*primary.Report, error) {
	r, err := a.service.GetReport(ctx, reportID)
	if err != nil {
		return nil, fmt.Errorf("failed to get report: %w", err)
	}

	fmt.Fprintf(a.out, "\nReport: %d\n", r.ID)
	fmt.Fprintf(a.out, "Room:       %s (floor %d, apt %d)\n", r.RoomCode, r.Floor, r.Apt)
	fmt.Fprintf(a.out, "Date:       %s\n", r.ReportDate.Format(time.DateOnly))
	fmt.Fprintf(a.out, "Technician: %s\n", r.Technician)
	fmt.Fprintf(a.out, "Created:    %s\n", r.CreatedAt)
	fmt.Fprintln(a.out)

	w := tabwriter.NewWriter(a.out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "ID\tITEM\tSTATUS\tNOTE\tRESOLVED")
	fmt.Fprintln(w, "--\t----\t------\t----\t--------")
	for _, item := range r.Items {
		resolved := "-"
		if item.ResolvedAt != "" {
			resolved = item.ResolvedAt + " by " + item.ResolvedBy
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", item.ID, item.Item, statusMarker(item.Status), orDash(item.Note), resolved)
	}
	w.Flush()
	return r, nil
}

// List prints report rows as a table.
func (a *ReportAdapter) List(ctx context.Context, filters primary.ReportFilters) ([]*primary.ReportRow, error) {
	rows, err := a.service.FetchReports(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}

	if len(rows) == 0 {
		fmt.Fprintln(a.out, "No reports found.")
		return rows, nil
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "DATE\tROOM\tTECHNICIAN\tITEM\tSTATUS\tNOTE\tREPORT")
	fmt.Fprintln(w, "----\t----\t----------\t----\t------\t----\t------")
	for _, r := range rows {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%d\n",
			r.ReportDate.Format(time.DateOnly),
			r.RoomCode,
			r.Technician,
			r.Item,
			statusMarker(r.Status),
			orDash(r.Note),
			r.ReportID,
		)
	}
	w.Flush()
	fmt.Fprintf(a.out, "\n%d row(s)\n", len(rows))
	return rows, nil
}
