package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/manut/internal/ports/primary"
	"github.com/example/manut/internal/wire"
)

// TicketCmd returns the ticket command
func TicketCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ticket",
		Short: "General maintenance outside the rooms",
	}
	cmd.AddCommand(ticketCreateCmd())
	cmd.AddCommand(ticketListCmd())
	cmd.AddCommand(ticketStatusCmd())
	cmd.AddCommand(ticketResolveCmd())
	return cmd
}

func ticketCreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Open a ticket",
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := dateFlag(cmd, "date")
			if err != nil {
				return err
			}
			place, _ := cmd.Flags().GetString("place")
			description, _ := cmd.Flags().GetString("description")
			technician, _ := cmd.Flags().GetString("technician")
			status, _ := cmd.Flags().GetString("status")
			note, _ := cmd.Flags().GetString("note")

			_, err = wire.TicketAdapter().Create(cmd.Context(), primary.CreateTicketRequest{
				Date:        date,
				Place:       place,
				Description: description,
				Status:      status,
				Technician:  technician,
				Note:        note,
			})
			return err
		},
	}
	cmd.Flags().String("date", "", "maintenance date, YYYY-MM-DD (default today)")
	cmd.Flags().String("place", "", "where, e.g. Lobby")
	cmd.Flags().String("description", "", "what is wrong")
	cmd.Flags().String("technician", "", "who opened it (default --as)")
	cmd.Flags().String("status", "", "Aberto or Em andamento (default Aberto)")
	cmd.Flags().String("note", "", "free text")
	return cmd
}

func ticketListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tickets in a date range",
		RunE: func(cmd *cobra.Command, args []string) error {
			from, to, err := dateRange(cmd)
			if err != nil {
				return err
			}
			status, _ := cmd.Flags().GetString("status")
			search, _ := cmd.Flags().GetString("search")
			filters := primary.TicketFilters{DateFrom: from, DateTo: to, Status: status, Search: search}

			if dir, _ := cmd.Flags().GetString("csv"); dir != "" {
				return wire.ExportAdapter().Tickets(cmd.Context(), filters, dir)
			}
			_, err = wire.TicketAdapter().List(cmd.Context(), filters)
			return err
		},
	}
	addDateRangeFlags(cmd)
	cmd.Flags().String("status", "", "only this status")
	cmd.Flags().String("search", "", "place, description or technician contains (case-insensitive)")
	cmd.Flags().String("csv", "", "write a CSV into this directory instead of printing")
	return cmd
}

func ticketStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status [ticket-id] [status]",
		Short: "Move an open ticket to Aberto or Em andamento",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("ticket", args[0])
			if err != nil {
				return err
			}
			return wire.TicketAdapter().SetStatus(cmd.Context(), id, args[1])
		},
	}
}

func ticketResolveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve [ticket-id]",
		Short: "Close a ticket",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("ticket", args[0])
			if err != nil {
				return err
			}
			by, _ := cmd.Flags().GetString("by")
			note, _ := cmd.Flags().GetString("note")
			return wire.TicketAdapter().Resolve(cmd.Context(), primary.ResolveTicketRequest{
				TicketID:       id,
				ResolvedBy:     by,
				ResolutionNote: note,
			})
		},
	}
	cmd.Flags().String("by", "", "who closed it (default --as)")
	cmd.Flags().String("note", "", "what was done")
	return cmd
}
