package primary

import (
	"context"
	"time"

	"github.com/example/manut/internal/core/report"
)

// ReportService defines the primary port for room inspection reports.
type ReportService interface {
	// IssueSubmissionToken returns a single-use token a caller attaches to
	// CreateReport so a repeated submit cannot save the same visit twice.
	IssueSubmissionToken(ctx context.Context) (string, error)

	// CreateReport saves a report and its checklist.
	CreateReport(ctx context.Context, req CreateReportRequest) (*CreateReportResponse, error)

	// GetReport retrieves a report with its items.
	GetReport(ctx context.Context, reportID int64) (*Report, error)

	// FetchReports lists report items joined with their report.
	FetchReports(ctx context.Context, filters ReportFilters) ([]*ReportRow, error)
}

// ReportItemInput is one checklist line of a new report.
type ReportItemInput struct {
	ItemID int64 // catalog id, 0 when the line is free text
	Name   string
	Status string // OK, Problema, N/A
	Note   string
}

// CreateReportRequest contains parameters for creating a report.
type CreateReportRequest struct {
	Date       time.Time
	Floor      int
	Apt        int
	Technician string
	Items      []ReportItemInput
	// UseCatalogDefaults writes one OK line per active catalog item when
	// Items is empty.
	UseCatalogDefaults bool
	SubmissionToken    string
}

// CreateReportResponse contains the result of creating a report.
type CreateReportResponse struct {
	ReportID  int64
	RoomCode  string
	ItemCount int
}

// Report is a saved room visit.
type Report struct {
	ID         int64
	ReportDate time.Time
	Floor      int
	Apt        int
	RoomCode   string
	Technician string
	CreatedAt  string
	Items      []*ReportItem
}

// ReportItem is one checklist line of a saved report.
type ReportItem struct {
	ID             int64
	ItemID         int64
	Item           string
	Status         string
	Note           string
	ResolvedAt     string
	ResolvedBy     string
	ResolutionNote string
}

// IsOpen reports whether the item is an unresolved problem.
func (i *ReportItem) IsOpen() bool {
	return i.Status == report.StatusProblem && i.ResolvedAt == ""
}

// ReportRow is a report item flattened with its report, the shape used by
// listings and exports.
type ReportRow struct {
	ReportID       int64
	ReportDate     time.Time
	Floor          int
	Apt            int
	RoomCode       string
	Technician     string
	CreatedAt      string
	ReportItemID   int64
	Item           string
	Status         string
	Note           string
	ResolvedAt     string
	ResolvedBy     string
	ResolutionNote string
}

// ReportFilters contains filter options for FetchReports.
// DateFrom and DateTo are required and inclusive.
type ReportFilters struct {
	DateFrom   time.Time
	DateTo     time.Time
	Floor      *int
	Apt        *int
	RoomCode   string // exact four-digit code
	Technician string // case-insensitive substring
	Status     string
}
