package primary

import (
	"context"
	"time"
)

// TicketService defines the primary port for general (non-room) maintenance.
type TicketService interface {
	// CreateTicket opens a new ticket.
	CreateTicket(ctx context.Context, req CreateTicketRequest) (*Ticket, error)

	// ListTickets lists tickets in a date range.
	ListTickets(ctx context.Context, filters TicketFilters) ([]*Ticket, error)

	// SetTicketStatus moves an unresolved ticket between Aberto and Em andamento.
	SetTicketStatus(ctx context.Context, ticketID int64, status string) error

	// ResolveTicket closes a ticket. Resolving twice fails with
	// errs.ErrAlreadyResolved and keeps the first resolution.
	ResolveTicket(ctx context.Context, req ResolveTicketRequest) error
}

// CreateTicketRequest contains parameters for opening a ticket.
type CreateTicketRequest struct {
	Date        time.Time
	Place       string
	Description string
	Status      string // defaults to Aberto
	Technician  string
	Note        string
}

// ResolveTicketRequest contains parameters for resolving a ticket.
type ResolveTicketRequest struct {
	TicketID       int64
	ResolvedBy     string
	ResolutionNote string
}

// TicketFilters contains filter options for ListTickets.
type TicketFilters struct {
	DateFrom time.Time
	DateTo   time.Time
	Status   string
	Search   string
}

// Ticket is a general maintenance ticket.
type Ticket struct {
	ID             int64
	Date           time.Time
	Place          string
	Description    string
	Status         string
	Technician     string
	Note           string
	CreatedAt      string
	ResolvedAt     string
	ResolvedBy     string
	ResolutionNote string
}
