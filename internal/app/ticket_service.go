package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/example/manut/internal/core/errs"
	"github.com/example/manut/internal/core/report"
	"github.com/example/manut/internal/core/ticket"
	"github.com/example/manut/internal/ctxutil"
	"github.com/example/manut/internal/ports/primary"
	"github.com/example/manut/internal/ports/secondary"
)

// TicketServiceImpl implements the TicketService interface.
type TicketServiceImpl struct {
	ticketRepo secondary.TicketRepository
	logger     *zap.Logger
	now        func() time.Time
}

// NewTicketService creates a new TicketService with injected dependencies.
func NewTicketService(ticketRepo secondary.TicketRepository, logger *zap.Logger) *TicketServiceImpl {
	return &TicketServiceImpl{
		ticketRepo: ticketRepo,
		logger:     logger,
		now:        time.Now,
	}
}

// CreateTicket opens a new ticket.
func (s *TicketServiceImpl) CreateTicket(ctx context.Context, req primary.CreateTicketRequest) (*primary.Ticket, error) {
	status := req.Status
	if status == "" {
		status = ticket.StatusOpen
	}
	technician := strings.TrimSpace(ctxutil.ActorOr(ctx, req.Technician))

	guard := ticket.CanCreateTicket(ticket.CreateTicketContext{
		Place:       req.Place,
		Description: req.Description,
		Technician:  technician,
		Status:      status,
	})
	if err := guard.Error(); err != nil {
		return nil, err
	}
	if req.Date.IsZero() {
		return nil, errs.Validation("ticket date is required")
	}

	record := &secondary.TicketRecord{
		MaintDate:   req.Date.Format(time.DateOnly),
		Place:       strings.TrimSpace(req.Place),
		Description: strings.TrimSpace(req.Description),
		Status:      status,
		Technician:  technician,
		Note:        strings.TrimSpace(req.Note),
		CreatedAt:   s.now().Format(secondary.TimestampLayout),
	}
	id, err := s.ticketRepo.Create(ctx, record)
	if err != nil {
		return nil, err
	}
	record.ID = id

	s.logger.Info("ticket created", zap.Int64("ticket_id", id), zap.String("place", record.Place))
	return recordToTicket(record)
}

// ListTickets lists tickets in a date range, newest first.
func (s *TicketServiceImpl) ListTickets(ctx context.Context, filters primary.TicketFilters) ([]*primary.Ticket, error) {
	if err := report.CanQueryRange(filters.DateFrom, filters.DateTo).Error(); err != nil {
		return nil, err
	}
	if filters.Status != "" && !ticket.IsValidStatus(filters.Status) {
		return nil, errs.Validation("invalid ticket status %q", filters.Status)
	}

	records, err := s.ticketRepo.List(ctx, secondary.TicketFilters{
		DateFrom: filters.DateFrom.Format(time.DateOnly),
		DateTo:   filters.DateTo.Format(time.DateOnly),
		Status:   filters.Status,
		Search:   strings.TrimSpace(filters.Search),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list tickets: %w", err)
	}

	tickets := make([]*primary.Ticket, len(records))
	for i, r := range records {
		t, err := recordToTicket(r)
		if err != nil {
			return nil, err
		}
		tickets[i] = t
	}
	return tickets, nil
}

// SetTicketStatus moves an unresolved ticket between Aberto and Em andamento.
func (s *TicketServiceImpl) SetTicketStatus(ctx context.Context, ticketID int64, status string) error {
	guardCtx := ticket.SetStatusContext{TicketID: ticketID, NewStatus: status}
	current, err := s.ticketRepo.GetByID(ctx, ticketID)
	switch {
	case errors.Is(err, errs.ErrNotFound):
	case err != nil:
		return fmt.Errorf("failed to load ticket: %w", err)
	default:
		guardCtx.Found = true
		guardCtx.CurrentStatus = current.Status
	}
	if err := ticket.CanSetStatus(guardCtx).Error(); err != nil {
		return err
	}

	applied, err := s.ticketRepo.UpdateStatus(ctx, ticketID, status)
	if err != nil {
		return err
	}
	if !applied {
		return fmt.Errorf("%w: ticket %d", errs.ErrAlreadyResolved, ticketID)
	}

	s.logger.Info("ticket status changed", zap.Int64("ticket_id", ticketID), zap.String("status", status))
	return nil
}

// ResolveTicket closes a ticket, keeping the first resolution when called twice.
func (s *TicketServiceImpl) ResolveTicket(ctx context.Context, req primary.ResolveTicketRequest) error {
	resolvedBy := strings.TrimSpace(ctxutil.ActorOr(ctx, req.ResolvedBy))
	if resolvedBy == "" {
		return ticket.CanResolveTicket(ticket.ResolveTicketContext{TicketID: req.TicketID}).Error()
	}

	applied, err := s.ticketRepo.Resolve(ctx, req.TicketID, resolvedBy,
		strings.TrimSpace(req.ResolutionNote), s.now().Format(secondary.TimestampLayout))
	if err != nil {
		return err
	}
	if applied {
		s.logger.Info("ticket resolved", zap.Int64("ticket_id", req.TicketID), zap.String("resolved_by", resolvedBy))
		return nil
	}

	guardCtx := ticket.ResolveTicketContext{TicketID: req.TicketID, ResolvedBy: resolvedBy}
	current, err := s.ticketRepo.GetByID(ctx, req.TicketID)
	switch {
	case errors.Is(err, errs.ErrNotFound):
	case err != nil:
		return fmt.Errorf("failed to load ticket: %w", err)
	default:
		guardCtx.Found = true
		guardCtx.Status = current.Status
	}

	guardErr := ticket.CanResolveTicket(guardCtx).Error()
	if guardErr == nil {
		guardErr = fmt.Errorf("%w: ticket %d", errs.ErrAlreadyResolved, req.TicketID)
	}
	s.logger.Warn("ticket not resolved", zap.Int64("ticket_id", req.TicketID), zap.Error(guardErr))
	return guardErr
}
