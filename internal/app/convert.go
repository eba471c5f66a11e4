package app

import (
	"fmt"
	"time"

	"github.com/example/manut/internal/ports/primary"
	"github.com/example/manut/internal/ports/secondary"
)

func parseDate(s string) (time.Time, error) {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse stored date %q: %w", s, err)
	}
	return t, nil
}

func recordsToRows(records []*secondary.ReportRowRecord) ([]*primary.ReportRow, error) {
	rows := make([]*primary.ReportRow, len(records))
	for i, r := range records {
		date, err := parseDate(r.ReportDate)
		if err != nil {
			return nil, err
		}
		rows[i] = &primary.ReportRow{
			ReportID:       r.ReportID,
			ReportDate:     date,
			Floor:          r.Floor,
			Apt:            r.Apt,
			RoomCode:       r.RoomCode,
			Technician:     r.Technician,
			CreatedAt:      r.CreatedAt,
			ReportItemID:   r.ReportItemID,
			Item:           r.Item,
			Status:         r.Status,
			Note:           r.Note,
			ResolvedAt:     r.ResolvedAt,
			ResolvedBy:     r.ResolvedBy,
			ResolutionNote: r.ResolutionNote,
		}
	}
	return rows, nil
}

func recordToTicket(r *secondary.TicketRecord) (*primary.Ticket, error) {
	date, err := parseDate(r.MaintDate)
	if err != nil {
		return nil, err
	}
	return &primary.Ticket{
		ID:             r.ID,
		Date:           date,
		Place:          r.Place,
		Description:    r.Description,
		Status:         r.Status,
		Technician:     r.Technician,
		Note:           r.Note,
		CreatedAt:      r.CreatedAt,
		ResolvedAt:     r.ResolvedAt,
		ResolvedBy:     r.ResolvedBy,
		ResolutionNote: r.ResolutionNote,
	}, nil
}

func recordToItem(r *secondary.MaintenanceItemRecord) *primary.MaintenanceItem {
	return &primary.MaintenanceItem{
		ID:        r.ID,
		Name:      r.Name,
		Active:    r.Active,
		CreatedAt: r.CreatedAt,
	}
}
