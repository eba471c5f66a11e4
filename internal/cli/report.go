package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/manut/internal/ports/primary"
	"github.com/example/manut/internal/wire"
)

// ReportCmd returns the report command
func ReportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Record and list room inspection reports",
	}
	cmd.AddCommand(reportTokenCmd())
	cmd.AddCommand(reportCreateCmd())
	cmd.AddCommand(reportShowCmd())
	cmd.AddCommand(reportListCmd())
	return cmd
}

func reportTokenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "token",
		Short: "Issue a single-use submission token",
		Long:  "Issue a token to pass to report create --token. A report submitted twice with the same token is saved once.",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := wire.ReportAdapter().Token(cmd.Context())
			return err
		},
	}
}

func reportCreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Save an inspection report for one room",
		Example: `  manut report create --floor 1 --apt 1 --technician Ana \
    --item "Frigobar:Problema:faz ruído" --item Cofre:OK`,
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := dateFlag(cmd, "date")
			if err != nil {
				return err
			}

			specs, _ := cmd.Flags().GetStringArray("item")
			items := make([]primary.ReportItemInput, 0, len(specs))
			for _, spec := range specs {
				in, err := parseItemSpec(spec)
				if err != nil {
					return err
				}
				items = append(items, in)
			}

			floor, _ := cmd.Flags().GetInt("floor")
			apt, _ := cmd.Flags().GetInt("apt")
			technician, _ := cmd.Flags().GetString("technician")
			defaults, _ := cmd.Flags().GetBool("defaults")
			token, _ := cmd.Flags().GetString("token")

			_, err = wire.ReportAdapter().Create(cmd.Context(), primary.CreateReportRequest{
				Date:               date,
				Floor:              floor,
				Apt:                apt,
				Technician:         technician,
				Items:              items,
				UseCatalogDefaults: defaults,
				SubmissionToken:    token,
			})
			return err
		},
	}
	cmd.Flags().String("date", "", "report date, YYYY-MM-DD (default today)")
	cmd.Flags().Int("floor", 0, "floor number")
	cmd.Flags().Int("apt", 0, "apartment number on the floor")
	cmd.Flags().String("technician", "", "who inspected the room")
	cmd.Flags().StringArray("item", nil, `checklist line "ITEM:STATUS[:NOTE]", ITEM is a catalog id or name (repeatable)`)
	cmd.Flags().Bool("defaults", false, "with no --item, mark every active catalog item OK")
	cmd.Flags().String("token", "", "submission token from report token")
	_ = cmd.MarkFlagRequired("floor")
	_ = cmd.MarkFlagRequired("apt")
	return cmd
}

func reportShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [report-id]",
		Short: "Show one report with its checklist",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("report", args[0])
			if err != nil {
				return err
			}
			_, err = wire.ReportAdapter().Show(cmd.Context(), id)
			return err
		},
	}
}

func reportListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List report lines in a date range",
		RunE: func(cmd *cobra.Command, args []string) error {
			from, to, err := dateRange(cmd)
			if err != nil {
				return err
			}
			roomCode, _ := cmd.Flags().GetString("room")
			technician, _ := cmd.Flags().GetString("technician")
			status, _ := cmd.Flags().GetString("status")

			filters := primary.ReportFilters{
				DateFrom:   from,
				DateTo:     to,
				Floor:      optionalInt(cmd, "floor"),
				Apt:        optionalInt(cmd, "apt"),
				RoomCode:   roomCode,
				Technician: technician,
				Status:     status,
			}

			if dir, _ := cmd.Flags().GetString("csv"); dir != "" {
				return wire.ExportAdapter().Reports(cmd.Context(), filters, dir)
			}
			_, err = wire.ReportAdapter().List(cmd.Context(), filters)
			return err
		},
	}
	addDateRangeFlags(cmd)
	cmd.Flags().Int("floor", 0, "only this floor")
	cmd.Flags().Int("apt", 0, "only this apartment number")
	cmd.Flags().String("room", "", "only this room code, e.g. 0101")
	cmd.Flags().String("technician", "", "technician name contains (case-insensitive)")
	cmd.Flags().String("status", "", "only OK, Problema or N/A")
	cmd.Flags().String("csv", "", "write a CSV into this directory instead of printing")
	return cmd
}
