package primary

import (
	"context"
	"time"

	"github.com/example/manut/internal/core/summary"
)

// PendencyService defines the primary port for open problems raised by
// report items.
type PendencyService interface {
	// ListOpen lists items with status Problema that are not resolved.
	ListOpen(ctx context.Context, filters PendencyFilters) ([]*ReportRow, error)

	// ListResolved lists items with status Problema that were resolved.
	ListResolved(ctx context.Context, filters PendencyFilters) ([]*ReportRow, error)

	// Resolve closes an open pendency. Resolving twice fails with
	// errs.ErrAlreadyResolved and keeps the first resolution.
	Resolve(ctx context.Context, req ResolvePendencyRequest) error

	// SummaryByRoom counts open pendencies per report date and room.
	SummaryByRoom(ctx context.Context, filters PendencyFilters) ([]summary.RoomCount, error)
}

// PendencyFilters contains filter options for pendency listings.
type PendencyFilters struct {
	DateFrom time.Time
	DateTo   time.Time
	Floor    *int
}

// ResolvePendencyRequest contains parameters for resolving a pendency.
type ResolvePendencyRequest struct {
	ReportItemID   int64
	ResolvedBy     string
	ResolutionNote string
}
