package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/manut/internal/ports/primary"
	"github.com/example/manut/internal/wire"
)

// PendencyCmd returns the pendency command
func PendencyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pendency",
		Short: "Track checklist problems until they are fixed",
	}
	cmd.AddCommand(pendencyListCmd())
	cmd.AddCommand(pendencyResolvedCmd())
	cmd.AddCommand(pendencyResolveCmd())
	return cmd
}

func pendencyFilters(cmd *cobra.Command) (primary.PendencyFilters, error) {
	from, to, err := dateRange(cmd)
	if err != nil {
		return primary.PendencyFilters{}, err
	}
	return primary.PendencyFilters{DateFrom: from, DateTo: to, Floor: optionalInt(cmd, "floor")}, nil
}

func addPendencyFlags(cmd *cobra.Command) {
	addDateRangeFlags(cmd)
	cmd.Flags().Int("floor", 0, "only this floor")
	cmd.Flags().String("csv", "", "write a CSV into this directory instead of printing")
}

func pendencyListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List open pendencies",
		RunE: func(cmd *cobra.Command, args []string) error {
			filters, err := pendencyFilters(cmd)
			if err != nil {
				return err
			}
			if dir, _ := cmd.Flags().GetString("csv"); dir != "" {
				return wire.ExportAdapter().OpenPendencies(cmd.Context(), filters, dir)
			}
			summarize, _ := cmd.Flags().GetBool("summary")
			return wire.PendencyAdapter().ListOpen(cmd.Context(), filters, summarize)
		},
	}
	addPendencyFlags(cmd)
	cmd.Flags().Bool("summary", false, "count pendencies per date and room")
	return cmd
}

func pendencyResolvedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolved",
		Short: "List resolved pendencies",
		RunE: func(cmd *cobra.Command, args []string) error {
			filters, err := pendencyFilters(cmd)
			if err != nil {
				return err
			}
			if dir, _ := cmd.Flags().GetString("csv"); dir != "" {
				return wire.ExportAdapter().ResolvedPendencies(cmd.Context(), filters, dir)
			}
			return wire.PendencyAdapter().ListResolved(cmd.Context(), filters)
		},
	}
	addPendencyFlags(cmd)
	return cmd
}

func pendencyResolveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve [report-item-id]",
		Short: "Mark an open pendency as fixed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("report item", args[0])
			if err != nil {
				return err
			}
			by, _ := cmd.Flags().GetString("by")
			note, _ := cmd.Flags().GetString("note")
			return wire.PendencyAdapter().Resolve(cmd.Context(), primary.ResolvePendencyRequest{
				ReportItemID:   id,
				ResolvedBy:     by,
				ResolutionNote: note,
			})
		},
	}
	cmd.Flags().String("by", "", "who fixed it (default --as)")
	cmd.Flags().String("note", "", "what was done")
	return cmd
}
