package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/example/manut/internal/core/errs"
	"github.com/example/manut/internal/core/report"
	"github.com/example/manut/internal/core/room"
	"github.com/example/manut/internal/ctxutil"
	"github.com/example/manut/internal/ports/primary"
	"github.com/example/manut/internal/ports/secondary"
)

// ReportServiceImpl implements the ReportService interface.
type ReportServiceImpl struct {
	reportRepo     secondary.ReportRepository
	itemRepo       secondary.ItemRepository
	submissionRepo secondary.SubmissionRepository
	layout         room.Layout
	logger         *zap.Logger
	now            func() time.Time
}

// NewReportService creates a new ReportService with injected dependencies.
func NewReportService(
	reportRepo secondary.ReportRepository,
	itemRepo secondary.ItemRepository,
	submissionRepo secondary.SubmissionRepository,
	layout room.Layout,
	logger *zap.Logger,
) *ReportServiceImpl {
	return &ReportServiceImpl{
		reportRepo:     reportRepo,
		itemRepo:       itemRepo,
		submissionRepo: submissionRepo,
		layout:         layout,
		logger:         logger,
		now:            time.Now,
	}
}

// IssueSubmissionToken returns a fresh single-use submission token.
func (s *ReportServiceImpl) IssueSubmissionToken(ctx context.Context) (string, error) {
	token := uuid.NewString()
	if err := s.submissionRepo.Issue(ctx, token, s.now().Format(secondary.TimestampLayout)); err != nil {
		return "", err
	}
	return token, nil
}

// CreateReport saves a report and its checklist in one transaction.
func (s *ReportServiceImpl) CreateReport(ctx context.Context, req primary.CreateReportRequest) (*primary.CreateReportResponse, error) {
	technician := strings.TrimSpace(ctxutil.ActorOr(ctx, req.Technician))

	inputs := req.Items
	activeCount := 0
	if len(inputs) == 0 && req.UseCatalogDefaults {
		active, err := s.itemRepo.List(ctx, true)
		if err != nil {
			return nil, fmt.Errorf("failed to load active catalog: %w", err)
		}
		activeCount = len(active)
		for _, item := range active {
			inputs = append(inputs, primary.ReportItemInput{ItemID: item.ID, Name: item.Name, Status: report.StatusOK})
		}
	}

	items, err := s.resolveItems(ctx, inputs)
	if err != nil {
		return nil, err
	}

	checks := make([]report.ItemCheck, len(items))
	for i, item := range items {
		checks[i] = report.ItemCheck{Name: item.Item, Status: item.Status}
	}
	guard := report.CanCreateReport(report.CreateReportContext{
		Technician:         technician,
		Floor:              req.Floor,
		Apt:                req.Apt,
		Layout:             s.layout,
		Items:              checks,
		UseCatalogDefaults: req.UseCatalogDefaults,
		ActiveCatalogSize:  activeCount,
	})
	if err := guard.Error(); err != nil {
		return nil, err
	}
	if req.Date.IsZero() {
		return nil, errs.Validation("report date is required")
	}

	code := room.Code(req.Floor, req.Apt)
	record := &secondary.ReportRecord{
		ReportDate: req.Date.Format(time.DateOnly),
		Floor:      req.Floor,
		Apt:        req.Apt,
		RoomCode:   code,
		Technician: technician,
		CreatedAt:  s.now().Format(secondary.TimestampLayout),
	}

	reportID, err := s.reportRepo.Create(ctx, record, items, req.SubmissionToken)
	if err != nil {
		return nil, err
	}

	s.logger.Info("report created",
		zap.Int64("report_id", reportID),
		zap.String("room_code", code),
		zap.String("date", record.ReportDate),
		zap.Int("items", len(items)))

	return &primary.CreateReportResponse{
		ReportID:  reportID,
		RoomCode:  code,
		ItemCount: len(items),
	}, nil
}

// resolveItems turns checklist input into records. A catalog id fills in a
// missing name; a name that matches the catalog picks up its id and
// canonical spelling.
func (s *ReportServiceImpl) resolveItems(ctx context.Context, inputs []primary.ReportItemInput) ([]*secondary.ReportItemRecord, error) {
	items := make([]*secondary.ReportItemRecord, 0, len(inputs))
	for _, in := range inputs {
		record := &secondary.ReportItemRecord{
			ItemID: in.ItemID,
			Item:   strings.TrimSpace(in.Name),
			Status: in.Status,
			Note:   report.NormalizeNote(in.Note),
		}

		switch {
		case record.ItemID != 0 && record.Item == "":
			item, err := s.itemRepo.GetByID(ctx, record.ItemID)
			if err != nil {
				if errors.Is(err, errs.ErrNotFound) {
					return nil, errs.Validation("unknown catalog item %d", record.ItemID)
				}
				return nil, fmt.Errorf("failed to load catalog item: %w", err)
			}
			record.Item = item.Name
		case record.ItemID == 0 && record.Item != "":
			item, err := s.itemRepo.FindByName(ctx, record.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to look up catalog item: %w", err)
			}
			if item != nil {
				record.ItemID = item.ID
				record.Item = item.Name
			}
		}

		items = append(items, record)
	}
	return items, nil
}

// GetReport retrieves a report with its items.
func (s *ReportServiceImpl) GetReport(ctx context.Context, reportID int64) (*primary.Report, error) {
	record, err := s.reportRepo.GetByID(ctx, reportID)
	if err != nil {
		return nil, err
	}
	date, err := parseDate(record.ReportDate)
	if err != nil {
		return nil, err
	}

	items, err := s.reportRepo.ListItems(ctx, reportID)
	if err != nil {
		return nil, err
	}

	r := &primary.Report{
		ID:         record.ID,
		ReportDate: date,
		Floor:      record.Floor,
		Apt:        record.Apt,
		RoomCode:   record.RoomCode,
		Technician: record.Technician,
		CreatedAt:  record.CreatedAt,
		Items:      make([]*primary.ReportItem, len(items)),
	}
	for i, item := range items {
		r.Items[i] = &primary.ReportItem{
			ID:             item.ID,
			ItemID:         item.ItemID,
			Item:           item.Item,
			Status:         item.Status,
			Note:           item.Note,
			ResolvedAt:     item.ResolvedAt,
			ResolvedBy:     item.ResolvedBy,
			ResolutionNote: item.ResolutionNote,
		}
	}
	return r, nil
}

// FetchReports lists report items joined with their report.
func (s *ReportServiceImpl) FetchReports(ctx context.Context, filters primary.ReportFilters) ([]*primary.ReportRow, error) {
	if err := report.CanQueryRange(filters.DateFrom, filters.DateTo).Error(); err != nil {
		return nil, err
	}

	code := strings.TrimSpace(filters.RoomCode)
	if code != "" {
		if _, _, err := room.ParseCode(code); err != nil {
			return nil, errs.Validation("%v", err)
		}
	}
	if filters.Status != "" && !report.IsValidStatus(filters.Status) {
		return nil, errs.Validation("invalid status filter %q", filters.Status)
	}

	records, err := s.reportRepo.FetchRows(ctx, secondary.ReportFilters{
		DateFrom:   filters.DateFrom.Format(time.DateOnly),
		DateTo:     filters.DateTo.Format(time.DateOnly),
		Floor:      filters.Floor,
		Apt:        filters.Apt,
		RoomCode:   code,
		Technician: strings.TrimSpace(filters.Technician),
		Status:     filters.Status,
		Order:      secondary.OrderByFloorApt,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch reports: %w", err)
	}
	return recordsToRows(records)
}
