// Package report contains the pure business logic for room inspection reports
// and the pendencies they raise.
// Guards are pure functions that evaluate preconditions without side effects.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/example/manut/internal/core/errs"
	"github.com/example/manut/internal/core/room"
)

// Checklist item statuses.
const (
	StatusOK      = "OK"
	StatusProblem = "Problema"
	StatusNA      = "N/A"
)

// Statuses lists the allowed checklist statuses in display order.
var Statuses = []string{StatusOK, StatusProblem, StatusNA}

// IsValidStatus reports whether s is an allowed checklist status.
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
	// Kind is the error kind reported when not allowed. Nil means ErrValidation.
	Kind error
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

// ItemCheck is one checklist line as submitted.
type ItemCheck struct {
	Name   string
	Status string
}

// CreateReportContext provides context for report creation guards.
type CreateReportContext struct {
	Technician string
	Floor      int
	Apt        int
	Layout     room.Layout
	Items      []ItemCheck
	// UseCatalogDefaults allows an empty Items list; one "OK" line per active
	// catalog entry is written instead.
	UseCatalogDefaults bool
	ActiveCatalogSize  int
}

// CanCreateReport evaluates whether a report can be saved.
// Rules:
// - Technician must be non-empty after trimming
// - Floor and apartment must be inside the hotel layout
// - Items must be non-empty unless catalog defaults were requested
// - Every item needs a name and an allowed status
func CanCreateReport(ctx CreateReportContext) GuardResult {
	if strings.TrimSpace(ctx.Technician) == "" {
		return GuardResult{Reason: "technician is required"}
	}

	if !ctx.Layout.Contains(ctx.Floor, ctx.Apt) {
		return GuardResult{
			Reason: fmt.Sprintf("room floor %d apt %d is outside the hotel layout (%d floors x %d apts)",
				ctx.Floor, ctx.Apt, ctx.Layout.Floors, ctx.Layout.AptsPerFloor),
		}
	}

	if len(ctx.Items) == 0 {
		if !ctx.UseCatalogDefaults {
			return GuardResult{Reason: "at least one checklist item is required"}
		}
		if ctx.ActiveCatalogSize == 0 {
			return GuardResult{Reason: "no active catalog items to build a default checklist"}
		}
	}

	for i, item := range ctx.Items {
		if strings.TrimSpace(item.Name) == "" {
			return GuardResult{Reason: fmt.Sprintf("item %d has no name", i+1)}
		}
		if !IsValidStatus(item.Status) {
			return GuardResult{
				Reason: fmt.Sprintf("item %q has invalid status %q (allowed: %s)", item.Name, item.Status, strings.Join(Statuses, ", ")),
			}
		}
	}

	return GuardResult{Allowed: true}
}

// CanQueryRange evaluates an inclusive date range filter.
func CanQueryRange(from, to time.Time) GuardResult {
	if from.IsZero() || to.IsZero() {
		return GuardResult{Reason: "date range is required"}
	}
	if from.After(to) {
		return GuardResult{
			Reason: fmt.Sprintf("date from %s is after date to %s", from.Format(time.DateOnly), to.Format(time.DateOnly)),
		}
	}
	return GuardResult{Allowed: true}
}

// ResolvePendencyContext provides context for pendency resolution guards.
type ResolvePendencyContext struct {
	ItemID     int64
	ResolvedBy string
	// Found, Status and Resolved describe the row as currently stored.
	Found    bool
	Status   string
	Resolved bool
}

// CanResolvePendency evaluates whether a report item can be resolved.
// Rules:
// - ResolvedBy must be non-empty
// - Item must exist
// - Status must be "Problema"
// - Item must not be resolved yet (resolution is one-way)
func CanResolvePendency(ctx ResolvePendencyContext) GuardResult {
	if strings.TrimSpace(ctx.ResolvedBy) == "" {
		return GuardResult{Reason: "resolved by is required"}
	}

	if !ctx.Found {
		return GuardResult{Reason: fmt.Sprintf("report item %d", ctx.ItemID), Kind: errs.ErrNotFound}
	}

	if ctx.Status != StatusProblem {
		return GuardResult{
			Reason: fmt.Sprintf("report item %d has status %q", ctx.ItemID, ctx.Status),
			Kind:   errs.ErrNotPending,
		}
	}

	if ctx.Resolved {
		return GuardResult{Reason: fmt.Sprintf("report item %d", ctx.ItemID), Kind: errs.ErrAlreadyResolved}
	}

	return GuardResult{Allowed: true}
}

// NormalizeNote trims a free-text note. Blank notes become empty and are
// stored as NULL.
func NormalizeNote(note string) string {
	return strings.TrimSpace(note)
}
