package primary

import "context"

// CatalogService defines the primary port for the maintenance item catalog.
type CatalogService interface {
	// AddItem registers a new checklist item name.
	AddItem(ctx context.Context, name string) (*MaintenanceItem, error)

	// ListItems lists catalog items by name, optionally only active ones.
	ListItems(ctx context.Context, activeOnly bool) ([]*MaintenanceItem, error)

	// SetItemActive activates or deactivates an item. Items are never deleted.
	SetItemActive(ctx context.Context, itemID int64, active bool) error
}

// MaintenanceItem is a checklist item name in the catalog.
type MaintenanceItem struct {
	ID        int64
	Name      string
	Active    bool
	CreatedAt string
}
