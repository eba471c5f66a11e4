package app

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/example/manut/internal/core/catalog"
	"github.com/example/manut/internal/ports/primary"
	"github.com/example/manut/internal/ports/secondary"
)

// CatalogServiceImpl implements the CatalogService interface.
type CatalogServiceImpl struct {
	itemRepo secondary.ItemRepository
	logger   *zap.Logger
	now      func() time.Time
}

// NewCatalogService creates a new CatalogService with injected dependencies.
func NewCatalogService(itemRepo secondary.ItemRepository, logger *zap.Logger) *CatalogServiceImpl {
	return &CatalogServiceImpl{
		itemRepo: itemRepo,
		logger:   logger,
		now:      time.Now,
	}
}

// AddItem registers a new checklist item name.
func (s *CatalogServiceImpl) AddItem(ctx context.Context, name string) (*primary.MaintenanceItem, error) {
	name = catalog.NormalizeName(name)

	guardCtx := catalog.AddItemContext{Name: name}
	if name != "" {
		existing, err := s.itemRepo.FindByName(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("failed to check catalog: %w", err)
		}
		if existing != nil {
			guardCtx.ExistingName = existing.Name
		}
	}
	if err := catalog.CanAddItem(guardCtx).Error(); err != nil {
		return nil, err
	}

	record := &secondary.MaintenanceItemRecord{
		Name:      name,
		Active:    true,
		CreatedAt: s.now().Format(secondary.TimestampLayout),
	}
	id, err := s.itemRepo.Create(ctx, record)
	if err != nil {
		return nil, err
	}
	record.ID = id

	s.logger.Info("catalog item added", zap.Int64("item_id", id), zap.String("name", name))
	return recordToItem(record), nil
}

// ListItems lists catalog items by name.
func (s *CatalogServiceImpl) ListItems(ctx context.Context, activeOnly bool) ([]*primary.MaintenanceItem, error) {
	records, err := s.itemRepo.List(ctx, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}

	items := make([]*primary.MaintenanceItem, len(records))
	for i, r := range records {
		items[i] = recordToItem(r)
	}
	return items, nil
}

// SetItemActive activates or deactivates an item.
func (s *CatalogServiceImpl) SetItemActive(ctx context.Context, itemID int64, active bool) error {
	if err := s.itemRepo.SetActive(ctx, itemID, active); err != nil {
		return err
	}
	s.logger.Info("catalog item updated", zap.Int64("item_id", itemID), zap.Bool("active", active))
	return nil
}
