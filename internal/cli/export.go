package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/manut/internal/wire"
)

// ExportCmd returns the export command
func ExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the unified spreadsheet for a date range",
		Long: `Write one .xlsx workbook with three sheets: Aptos (report lines),
Resolvidas Aptos (resolved pendencies) and Manutenção Geral (tickets).`,
		RunE: func(cmd *cobra.Command, args []string) error {
			from, to, err := dateRange(cmd)
			if err != nil {
				return err
			}
			dir, _ := cmd.Flags().GetString("dir")
			return wire.ExportAdapter().Workbook(cmd.Context(), from, to, dir)
		},
	}
	addDateRangeFlags(cmd)
	cmd.Flags().String("dir", ".", "output directory")
	return cmd
}
