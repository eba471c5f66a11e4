// Package catalog contains the pure business logic for the checklist item catalog.
// Items are never deleted; deactivation only hides them from new checklists.
package catalog

import (
	"fmt"
	"strings"

	"github.com/example/manut/internal/core/errs"
)

// DefaultItems is the catalog seeded into an empty store.
var DefaultItems = []string{
	"Fechadura Porta (Pilhas)",
	"Cofre",
	"Frigobar",
	"Toalheiro",
	"Suporte Papel",
	"Ducha",
	"Luzes",
	"Televisao",
	"Telefone",
	"Abajur",
	"Tomadas",
	"Controles",
	"Cortina",
}

// GuardResult represents the outcome of a guard evaluation.
type GuardResult struct {
	Allowed bool
	Reason  string
	Kind    error
}

// Error converts the guard result to an error if not allowed.
func (r GuardResult) Error() error {
	if r.Allowed {
		return nil
	}
	kind := r.Kind
	if kind == nil {
		kind = errs.ErrValidation
	}
	return fmt.Errorf("%w: %s", kind, r.Reason)
}

// NormalizeName collapses internal whitespace runs and trims both ends.
func NormalizeName(name string) string {
	return strings.Join(strings.Fields(name), " ")
}

// AddItemContext provides context for catalog registration guards.
type AddItemContext struct {
	Name string // already normalized
	// ExistingName is the stored name matching Name ignoring case, if any.
	ExistingName string
}

// CanAddItem evaluates whether a name can be registered.
// Rules:
// - Name must be non-empty after normalization
// - No existing item may share the name ignoring case
func CanAddItem(ctx AddItemContext) GuardResult {
	if ctx.Name == "" {
		return GuardResult{Reason: "item name is required"}
	}

	if ctx.ExistingName != "" {
		return GuardResult{
			Reason: fmt.Sprintf("item %q is already registered as %q", ctx.Name, ctx.ExistingName),
			Kind:   errs.ErrDuplicate,
		}
	}

	return GuardResult{Allowed: true}
}
