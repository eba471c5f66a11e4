package cli

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/fatih/color"

	"github.com/example/manut/internal/ports/primary"
)

// CatalogAdapter translates item commands to CatalogService calls.
type CatalogAdapter struct {
	service primary.CatalogService
	out     io.Writer
}

// NewCatalogAdapter creates a new CatalogAdapter with the given service.
func NewCatalogAdapter(service primary.CatalogService, out io.Writer) *CatalogAdapter {
	return &CatalogAdapter{service: service, out: out}
}

// Add registers a catalog item.
func (a *CatalogAdapter) Add(ctx context.Context, name string) (*primary.MaintenanceItem, error) {
	item, err := a.service.AddItem(ctx, name)
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(a.out, "✓ Added item %d: %s\n", item.ID, item.Name)
	return item, nil
}

// List prints the catalog.
func (a *CatalogAdapter) List(ctx context.Context, activeOnly bool) ([]*primary.MaintenanceItem, error) {
	items, err := a.service.ListItems(ctx, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	if len(items) == 0 {
		fmt.Fprintln(a.out, "No items found.")
		fmt.Fprintln(a.out)
		fmt.Fprintln(a.out, "Add one:")
		fmt.Fprintln(a.out, "  manut item add Frigobar")
		return items, nil
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tACTIVE")
	fmt.Fprintln(w, "--\t----\t------")
	for _, item := range items {
		active := color.New(color.FgGreen).Sprint("yes")
		if !item.Active {
			active = color.New(color.FgYellow).Sprint("no")
		}
		fmt.Fprintf(w, "%d\t%s\t%s\n", item.ID, item.Name, active)
	}
	w.Flush()
	return items, nil
}

// SetActive activates or deactivates an item.
func (a *CatalogAdapter) SetActive(ctx context.Context, itemID int64, active bool) error {
	if err := a.service.SetItemActive(ctx, itemID, active); err != nil {
		return err
	}
	verb := "Deactivated"
	if active {
		verb = "Activated"
	}
	fmt.Fprintf(a.out, "✓ %s item %d\n", verb, itemID)
	return nil
}
