package app

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/example/manut/internal/core/errs"
	"github.com/example/manut/internal/core/ticket"
	"github.com/example/manut/internal/ports/primary"
)

func newTestTicketService() (*TicketServiceImpl, *mockTicketRepository) {
	ticketRepo := newMockTicketRepository()
	service := NewTicketService(ticketRepo, zap.NewNop())
	service.now = fixedNow
	return service, ticketRepo
}

func lobbyTicket() primary.CreateTicketRequest {
	return primary.CreateTicketRequest{
		Date:        jan10,
		Place:       " Lobby ",
		Description: "Lâmpada queimada",
		Technician:  "Bruno",
	}
}

func TestCreateTicket_DefaultsToOpen(t *testing.T) {
	service, ticketRepo := newTestTicketService()

	tk, err := service.CreateTicket(context.Background(), lobbyTicket())
	require.NoError(t, err)
	assert.Equal(t, ticket.StatusOpen, tk.Status)
	assert.Equal(t, "Lobby", tk.Place)
	assert.Equal(t, jan10, tk.Date)
	assert.Equal(t, "2024-01-10", ticketRepo.tickets[tk.ID].MaintDate)
}

func TestCreateTicket_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *primary.CreateTicketRequest)
	}{
		{"blank place", func(r *primary.CreateTicketRequest) { r.Place = "" }},
		{"blank description", func(r *primary.CreateTicketRequest) { r.Description = " " }},
		{"blank technician", func(r *primary.CreateTicketRequest) { r.Technician = "" }},
		{"created resolved", func(r *primary.CreateTicketRequest) { r.Status = ticket.StatusResolved }},
		{"unknown status", func(r *primary.CreateTicketRequest) { r.Status = "Pausado" }},
		{"missing date", func(r *primary.CreateTicketRequest) { r.Date = time.Time{} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, ticketRepo := newTestTicketService()
			req := lobbyTicket()
			tt.mutate(&req)

			_, err := service.CreateTicket(context.Background(), req)
			assert.ErrorIs(t, err, errs.ErrValidation)
			assert.Empty(t, ticketRepo.tickets)
		})
	}
}

func TestSetTicketStatus(t *testing.T) {
	service, ticketRepo := newTestTicketService()
	ctx := context.Background()
	tk, err := service.CreateTicket(ctx, lobbyTicket())
	require.NoError(t, err)

	require.NoError(t, service.SetTicketStatus(ctx, tk.ID, ticket.StatusInProgress))
	assert.Equal(t, ticket.StatusInProgress, ticketRepo.tickets[tk.ID].Status)

	err = service.SetTicketStatus(ctx, tk.ID, ticket.StatusResolved)
	assert.ErrorIs(t, err, errs.ErrValidation)

	err = service.SetTicketStatus(ctx, 99, ticket.StatusOpen)
	assert.ErrorIs(t, err, errs.ErrNotFound)

	require.NoError(t, service.ResolveTicket(ctx, primary.ResolveTicketRequest{TicketID: tk.ID, ResolvedBy: "Carlos"}))
	err = service.SetTicketStatus(ctx, tk.ID, ticket.StatusOpen)
	assert.ErrorIs(t, err, errs.ErrAlreadyResolved)
}

func TestResolveTicket(t *testing.T) {
	service, ticketRepo := newTestTicketService()
	ctx := context.Background()
	tk, err := service.CreateTicket(ctx, lobbyTicket())
	require.NoError(t, err)

	err = service.ResolveTicket(ctx, primary.ResolveTicketRequest{TicketID: tk.ID, ResolvedBy: "Carlos", ResolutionNote: "trocada"})
	require.NoError(t, err)

	stored := ticketRepo.tickets[tk.ID]
	assert.Equal(t, ticket.StatusResolved, stored.Status)
	assert.Equal(t, "Carlos", stored.ResolvedBy)
	assert.Equal(t, "2024-01-11T08:00:00", stored.ResolvedAt)

	err = service.ResolveTicket(ctx, primary.ResolveTicketRequest{TicketID: tk.ID, ResolvedBy: "Bruno"})
	assert.ErrorIs(t, err, errs.ErrAlreadyResolved)
	assert.Equal(t, "Carlos", ticketRepo.tickets[tk.ID].ResolvedBy)

	err = service.ResolveTicket(ctx, primary.ResolveTicketRequest{TicketID: 42, ResolvedBy: "Bruno"})
	assert.ErrorIs(t, err, errs.ErrNotFound)

	err = service.ResolveTicket(ctx, primary.ResolveTicketRequest{TicketID: tk.ID})
	assert.ErrorIs(t, err, errs.ErrValidation)
}

func TestListTickets(t *testing.T) {
	service, ticketRepo := newTestTicketService()
	ctx := context.Background()
	_, err := service.CreateTicket(ctx, lobbyTicket())
	require.NoError(t, err)

	tickets, err := service.ListTickets(ctx, primary.TicketFilters{DateFrom: jan10, DateTo: jan31, Search: " lâmp "})
	require.NoError(t, err)
	require.Len(t, tickets, 1)
	assert.Equal(t, "lâmp", ticketRepo.lastFilters.Search)

	_, err = service.ListTickets(ctx, primary.TicketFilters{DateFrom: jan10, DateTo: jan31, Status: "Pausado"})
	assert.ErrorIs(t, err, errs.ErrValidation)

	_, err = service.ListTickets(ctx, primary.TicketFilters{DateFrom: jan31, DateTo: jan10})
	assert.ErrorIs(t, err, errs.ErrValidation)
}
