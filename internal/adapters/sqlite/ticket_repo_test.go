package sqlite_test

import (
	"context"
	"errors"
	"testing"

	"github.com/example/manut/internal/adapters/sqlite"
	"github.com/example/manut/internal/core/errs"
	"github.com/example/manut/internal/ports/secondary"
)

func createTestTicket(t *testing.T, repo *sqlite.TicketRepository, date, place, description, technician string) int64 {
	t.Helper()
	id, err := repo.Create(context.Background(), &secondary.TicketRecord{
		MaintDate:   date,
		Place:       place,
		Description: description,
		Status:      "Aberto",
		Technician:  technician,
		CreatedAt:   date + "T08:00:00",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	return id
}

func TestTicketRepository_CreateAndGet(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewTicketRepository(db, testRetry)
	ctx := context.Background()

	id := createTestTicket(t, repo, "2024-01-10", "Lobby", "Lâmpada queimada", "Ana")

	got, err := repo.GetByID(ctx, id)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Place != "Lobby" || got.Status != "Aberto" || got.Note != "" || got.ResolvedAt != "" {
		t.Errorf("unexpected ticket: %+v", got)
	}

	if _, err := repo.GetByID(ctx, 999); !errors.Is(err, errs.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestTicketRepository_List(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewTicketRepository(db, testRetry)
	ctx := context.Background()

	createTestTicket(t, repo, "2024-01-05", "Piscina", "Bomba com ruído", "Bruno")
	createTestTicket(t, repo, "2024-01-10", "Lobby", "Lâmpada queimada", "Ana")
	createTestTicket(t, repo, "2024-02-10", "Cozinha", "Vazamento na pia", "ana paula")

	tests := []struct {
		name    string
		filters secondary.TicketFilters
		want    []string
	}{
		{name: "range newest first", filters: secondary.TicketFilters{DateFrom: "2024-01-01", DateTo: "2024-01-31"}, want: []string{"Lobby", "Piscina"}},
		{name: "search place", filters: secondary.TicketFilters{DateFrom: "2024-01-01", DateTo: "2024-12-31", Search: "PISC"}, want: []string{"Piscina"}},
		{name: "search description", filters: secondary.TicketFilters{DateFrom: "2024-01-01", DateTo: "2024-12-31", Search: "vazamento"}, want: []string{"Cozinha"}},
		{name: "search technician", filters: secondary.TicketFilters{DateFrom: "2024-01-01", DateTo: "2024-12-31", Search: "ANA"}, want: []string{"Cozinha", "Lobby"}},
		{name: "status", filters: secondary.TicketFilters{DateFrom: "2024-01-01", DateTo: "2024-12-31", Status: "Resolvido"}, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tickets, err := repo.List(ctx, tt.filters)
			if err != nil {
				t.Fatalf("List failed: %v", err)
			}
			if len(tickets) != len(tt.want) {
				t.Fatalf("expected %d tickets, got %d", len(tt.want), len(tickets))
			}
			for i, place := range tt.want {
				if tickets[i].Place != place {
					t.Errorf("ticket %d = %q, want %q", i, tickets[i].Place, place)
				}
			}
		})
	}
}

func TestTicketRepository_ResolveAndStatus(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewTicketRepository(db, testRetry)
	ctx := context.Background()

	id := createTestTicket(t, repo, "2024-01-10", "Lobby", "Lâmpada queimada", "Ana")

	applied, err := repo.UpdateStatus(ctx, id, "Em andamento")
	if err != nil || !applied {
		t.Fatalf("UpdateStatus = %v, %v", applied, err)
	}

	applied, err = repo.Resolve(ctx, id, "Carlos", "trocada", "2024-01-11T09:00:00")
	if err != nil || !applied {
		t.Fatalf("Resolve = %v, %v", applied, err)
	}

	applied, err = repo.Resolve(ctx, id, "Diego", "", "2024-01-12T09:00:00")
	if err != nil {
		t.Fatalf("second Resolve failed: %v", err)
	}
	if applied {
		t.Error("expected second resolve to be a no-op")
	}

	applied, err = repo.UpdateStatus(ctx, id, "Aberto")
	if err != nil {
		t.Fatalf("UpdateStatus failed: %v", err)
	}
	if applied {
		t.Error("a resolved ticket must not be reopened")
	}

	got, err := repo.GetByID(ctx, id)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Status != "Resolvido" || got.ResolvedBy != "Carlos" || got.ResolutionNote != "trocada" {
		t.Errorf("unexpected resolved ticket: %+v", got)
	}
}
