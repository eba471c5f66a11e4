// Package ticket contains the pure business logic for general (non-room)
// maintenance tickets.
package ticket

import (
	"fmt"
	"strings"

	"github.com/example/manut/internal/core/errs"
)

// Ticket statuses. Resolved is only ever set by the resolve operation.
const (
	StatusOpen       = "Aberto"
	StatusInProgress = "Em andamento"
	StatusResolved   = "Resolvido"
)

// Statuses lists every ticket status in lifecycle order.
var Statuses = []string{StatusOpen, StatusInProgress, StatusResolved}

// IsValidStatus reports whether s is a known ticket status.
func IsValidStatus(s string) bool {
	for _, v := range Statuses {
		if s == v {
			return true
		}
	}
	return false
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

// CreateTicketContext provides context for ticket creation guards.
type CreateTicketContext struct {
	Place       string
	Description string
	Technician  string
	Status      string
}

// CanCreateTicket evaluates whether a ticket can be opened.
// Rules:
// - Place, description and technician must be non-empty
// - Status must be "Aberto" or "Em andamento"
func CanCreateTicket(ctx CreateTicketContext) GuardResult {
	if strings.TrimSpace(ctx.Place) == "" {
		return GuardResult{Reason: "place is required"}
	}
	if strings.TrimSpace(ctx.Technician) == "" {
		return GuardResult{Reason: "technician is required"}
	}
	if strings.TrimSpace(ctx.Description) == "" {
		return GuardResult{Reason: "description is required"}
	}
	if ctx.Status == StatusResolved {
		return GuardResult{Reason: "a ticket can only become Resolvido through resolve"}
	}
	if !IsValidStatus(ctx.Status) {
		return GuardResult{Reason: fmt.Sprintf("invalid ticket status %q", ctx.Status)}
	}
	return GuardResult{Allowed: true}
}

// ResolveTicketContext provides context for ticket resolution guards.
type ResolveTicketContext struct {
	TicketID   int64
	ResolvedBy string
	Found      bool
	Status     string
}

// CanResolveTicket evaluates whether a ticket can be resolved.
// Rules:
// - ResolvedBy must be non-empty
// - Ticket must exist and not be resolved yet
func CanResolveTicket(ctx ResolveTicketContext) GuardResult {
	if strings.TrimSpace(ctx.ResolvedBy) == "" {
		return GuardResult{Reason: "resolved by is required"}
	}
	if !ctx.Found {
		return GuardResult{Reason: fmt.Sprintf("ticket %d", ctx.TicketID), Kind: errs.ErrNotFound}
	}
	if ctx.Status == StatusResolved {
		return GuardResult{Reason: fmt.Sprintf("ticket %d", ctx.TicketID), Kind: errs.ErrAlreadyResolved}
	}
	return GuardResult{Allowed: true}
}

// SetStatusContext provides context for manual status changes.
type SetStatusContext struct {
	TicketID      int64
	Found         bool
	CurrentStatus string
	NewStatus     string
}

// CanSetStatus evaluates a manual status change.
// Rules:
// - Ticket must exist and not be resolved
// - New status must be "Aberto" or "Em andamento"
func CanSetStatus(ctx SetStatusContext) GuardResult {
	if !ctx.Found {
		return GuardResult{Reason: fmt.Sprintf("ticket %d", ctx.TicketID), Kind: errs.ErrNotFound}
	}
	if ctx.CurrentStatus == StatusResolved {
		return GuardResult{Reason: fmt.Sprintf("ticket %d", ctx.TicketID), Kind: errs.ErrAlreadyResolved}
	}
	if ctx.NewStatus == StatusResolved {
		return GuardResult{Reason: "use resolve to close a ticket"}
	}
	if !IsValidStatus(ctx.NewStatus) {
		return GuardResult{Reason: fmt.Sprintf("invalid ticket status %q", ctx.NewStatus)}
	}
	return GuardResult{Allowed: true}
}
