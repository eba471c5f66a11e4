package cli

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/fatih/color"

	"github.com/example/manut/internal/core/summary"
	"github.com/example/manut/internal/ports/primary"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

var jan10 = time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)

// mockReportService implements primary.ReportService for testing
type mockReportService struct {
	createFn func(ctx context.Context, req primary.CreateReportRequest) (*primary.CreateReportResponse, error)
	getFn    func(ctx context.Context, id int64) (*primary.Report, error)
	fetchFn  func(ctx context.Context, filters primary.ReportFilters) ([]*primary.ReportRow, error)
}

func (m *mockReportService) IssueSubmissionToken(ctx context.Context) (string, error) {
	return "9b2f7c1e-0000-4000-8000-000000000001", nil
}

func (m *mockReportService) CreateReport(ctx context.Context, req primary.CreateReportRequest) (*primary.CreateReportResponse, error) {
	if m.createFn != nil {
		return m.createFn(ctx, req)
	}
	return &primary.CreateReportResponse{ReportID: 1, RoomCode: "0101", ItemCount: len(req.Items)}, nil
}

func (m *mockReportService) GetReport(ctx context.Context, id int64) (*primary.Report, error) {
	if m.getFn != nil {
		return m.getFn(ctx, id)
	}
	return &primary.Report{ID: id}, nil
}

func (m *mockReportService) FetchReports(ctx context.Context, filters primary.ReportFilters) ([]*primary.ReportRow, error) {
	if m.fetchFn != nil {
		return m.fetchFn(ctx, filters)
	}
	return nil, nil
}

// mockPendencyService implements primary.PendencyService for testing
type mockPendencyService struct {
	rows      []*primary.ReportRow
	counts    []summary.RoomCount
	resolveFn func(ctx context.Context, req primary.ResolvePendencyRequest) error
}

func (m *mockPendencyService) ListOpen(ctx context.Context, filters primary.PendencyFilters) ([]*primary.ReportRow, error) {
	return m.rows, nil
}

func (m *mockPendencyService) ListResolved(ctx context.Context, filters primary.PendencyFilters) ([]*primary.ReportRow, error) {
	return m.rows, nil
}

func (m *mockPendencyService) Resolve(ctx context.Context, req primary.ResolvePendencyRequest) error {
	if m.resolveFn != nil {
		return m.resolveFn(ctx, req)
	}
	return nil
}

func (m *mockPendencyService) SummaryByRoom(ctx context.Context, filters primary.PendencyFilters) ([]summary.RoomCount, error) {
	return m.counts, nil
}

// mockCatalogService implements primary.CatalogService for testing
type mockCatalogService struct {
	items      []*primary.MaintenanceItem
	lastActive bool
}

func (m *mockCatalogService) AddItem(ctx context.Context, name string) (*primary.MaintenanceItem, error) {
	return &primary.MaintenanceItem{ID: 14, Name: name, Active: true}, nil
}

func (m *mockCatalogService) ListItems(ctx context.Context, activeOnly bool) ([]*primary.MaintenanceItem, error) {
	m.lastActive = activeOnly
	return m.items, nil
}

func (m *mockCatalogService) SetItemActive(ctx context.Context, itemID int64, active bool) error {
	return nil
}

// mockStoreService implements primary.StoreService for testing
type mockStoreService struct {
	schema *primary.SchemaResult
	status *primary.StoreStatus
}

func (m *mockStoreService) EnsureSchema(ctx context.Context) (*primary.SchemaResult, error) {
	return m.schema, nil
}

func (m *mockStoreService) Backup(ctx context.Context) (string, error) {
	return "backups/manutencao_hotel_20240110_093000.db", nil
}

func (m *mockStoreService) Status(ctx context.Context) (*primary.StoreStatus, error) {
	return m.status, nil
}
