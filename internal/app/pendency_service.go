package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/example/manut/internal/core/errs"
	"github.com/example/manut/internal/core/report"
	"github.com/example/manut/internal/core/summary"
	"github.com/example/manut/internal/ctxutil"
	"github.com/example/manut/internal/ports/primary"
	"github.com/example/manut/internal/ports/secondary"
)

// PendencyServiceImpl implements the PendencyService interface.
type PendencyServiceImpl struct {
	reportRepo secondary.ReportRepository
	logger     *zap.Logger
	now        func() time.Time
}

// NewPendencyService creates a new PendencyService with injected dependencies.
func NewPendencyService(reportRepo secondary.ReportRepository, logger *zap.Logger) *PendencyServiceImpl {
	return &PendencyServiceImpl{
		reportRepo: reportRepo,
		logger:     logger,
		now:        time.Now,
	}
}

// ListOpen lists unresolved problems, newest report date first.
func (s *PendencyServiceImpl) ListOpen(ctx context.Context, filters primary.PendencyFilters) ([]*primary.ReportRow, error) {
	return s.list(ctx, filters, secondary.PendencyOpen)
}

// ListResolved lists resolved problems, newest report date first.
func (s *PendencyServiceImpl) ListResolved(ctx context.Context, filters primary.PendencyFilters) ([]*primary.ReportRow, error) {
	return s.list(ctx, filters, secondary.PendencyResolved)
}

func (s *PendencyServiceImpl) list(ctx context.Context, filters primary.PendencyFilters, state secondary.PendencyState) ([]*primary.ReportRow, error) {
	if err := report.CanQueryRange(filters.DateFrom, filters.DateTo).Error(); err != nil {
		return nil, err
	}

	records, err := s.reportRepo.FetchRows(ctx, secondary.ReportFilters{
		DateFrom: filters.DateFrom.Format(time.DateOnly),
		DateTo:   filters.DateTo.Format(time.DateOnly),
		Floor:    filters.Floor,
		Pendency: state,
		Order:    secondary.OrderByRoomCode,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list pendencies: %w", err)
	}
	return recordsToRows(records)
}

// Resolve closes an open pendency. The conditional update decides; when it
// matches nothing the stored row tells the caller why.
func (s *PendencyServiceImpl) Resolve(ctx context.Context, req primary.ResolvePendencyRequest) error {
	resolvedBy := strings.TrimSpace(ctxutil.ActorOr(ctx, req.ResolvedBy))
	if resolvedBy == "" {
		return report.CanResolvePendency(report.ResolvePendencyContext{ItemID: req.ReportItemID}).Error()
	}

	resolvedAt := s.now().Format(secondary.TimestampLayout)
	applied, err := s.reportRepo.ResolveItem(ctx, req.ReportItemID, resolvedBy, report.NormalizeNote(req.ResolutionNote), resolvedAt)
	if err != nil {
		return err
	}
	if applied {
		s.logger.Info("pendency resolved",
			zap.Int64("report_item_id", req.ReportItemID),
			zap.String("resolved_by", resolvedBy))
		return nil
	}

	guardCtx := report.ResolvePendencyContext{ItemID: req.ReportItemID, ResolvedBy: resolvedBy}
	item, err := s.reportRepo.GetItem(ctx, req.ReportItemID)
	switch {
	case errors.Is(err, errs.ErrNotFound):
	case err != nil:
		return fmt.Errorf("failed to load report item: %w", err)
	default:
		guardCtx.Found = true
		guardCtx.Status = item.Status
		guardCtx.Resolved = item.ResolvedAt != ""
	}

	guardErr := report.CanResolvePendency(guardCtx).Error()
	if guardErr == nil {
		// Became resolvable after the update missed; nothing reopens items,
		// so this only happens if a row was edited outside manut.
		guardErr = fmt.Errorf("%w: report item %d", errs.ErrAlreadyResolved, req.ReportItemID)
	}
	s.logger.Warn("pendency not resolved",
		zap.Int64("report_item_id", req.ReportItemID),
		zap.Error(guardErr))
	return guardErr
}

// SummaryByRoom counts open pendencies per report date and room.
func (s *PendencyServiceImpl) SummaryByRoom(ctx context.Context, filters primary.PendencyFilters) ([]summary.RoomCount, error) {
	rows, err := s.ListOpen(ctx, filters)
	if err != nil {
		return nil, err
	}

	keys := make([]summary.Key, len(rows))
	for i, r := range rows {
		keys[i] = summary.Key{ReportDate: r.ReportDate.Format(time.DateOnly), RoomCode: r.RoomCode}
	}
	return summary.ByRoom(keys), nil
}
