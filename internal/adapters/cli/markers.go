// Package cli holds thin adapters that translate CLI operations into service
// calls and render the results as tables.
package cli

import (
	"github.com/fatih/color"

	"github.com/example/manut/internal/core/report"
	"github.com/example/manut/internal/core/ticket"
)

// statusMarker colors checklist and ticket statuses for terminal output.
func statusMarker(status string) string {
	switch status {
	case report.StatusOK, ticket.StatusResolved:
		return color.New(color.FgGreen).Sprint(status)
	case report.StatusProblem, ticket.StatusOpen:
		return color.New(color.FgRed).Sprint(status)
	case ticket.StatusInProgress:
		return color.New(color.FgYellow).Sprint(status)
	default:
		return status
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
