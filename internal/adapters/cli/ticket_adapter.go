package cli

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/example/manut/internal/ports/primary"
)

// TicketAdapter translates ticket commands to TicketService calls.
type TicketAdapter struct {
	service primary.TicketService
	out     io.Writer
}

// NewTicketAdapter creates a new TicketAdapter with the given service.
func NewTicketAdapter(service primary.TicketService, out io.Writer) *TicketAdapter {
	return &TicketAdapter{service: service, out: out}
}

// Create opens a ticket.
func (a *TicketAdapter) Create(ctx context.Context, req primary.CreateTicketRequest) (*primary.Ticket, error) {
	t, err := a.service.CreateTicket(ctx, req)
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(a.out, "✓ Ticket %d opened at %s [%s]\n", t.ID, t.Place, t.Status)
	return t, nil
}

// List prints tickets as a table.
func (a *TicketAdapter) List(ctx context.Context, filters primary.TicketFilters) ([]*primary.Ticket, error) {
	tickets, err := a.service.ListTickets(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list tickets: %w", err)
	}
	if len(tickets) == 0 {
		fmt.Fprintln(a.out, "No tickets found.")
		return tickets, nil
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "ID\tDATE\tPLACE\tDESCRIPTION\tSTATUS\tTECHNICIAN\tRESOLVED BY")
	fmt.Fprintln(w, "--\t----\t-----\t-----------\t------\t----------\t-----------")
	for _, t := range tickets {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
			t.ID,
			t.Date.Format(time.DateOnly),
			t.Place,
			t.Description,
			statusMarker(t.Status),
			t.Technician,
			orDash(t.ResolvedBy),
		)
	}
	w.Flush()
	return tickets, nil
}

// SetStatus changes the status of an open ticket.
func (a *TicketAdapter) SetStatus(ctx context.Context, ticketID int64, status string) error {
	if err := a.service.SetTicketStatus(ctx, ticketID, status); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "✓ Ticket %d is now %s\n", ticketID, status)
	return nil
}

// Resolve closes a ticket.
func (a *TicketAdapter) Resolve(ctx context.Context, req primary.ResolveTicketRequest) error {
	if err := a.service.ResolveTicket(ctx, req); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "✓ Ticket %d resolved\n", req.TicketID)
	return nil
}
