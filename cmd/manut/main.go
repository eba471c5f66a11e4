package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/manut/internal/cli"
	"github.com/example/manut/internal/version"
	"github.com/example/manut/internal/wire"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "manut",
		Short:   "manut - hotel room maintenance tracker",
		Version: version.String(),
		Long: `manut records room inspection checklists, tracks the problems they raise
until someone fixes them, and keeps a log of general maintenance tickets.`,
		SilenceUsage: true,
	}
	cli.AddPersistentFlags(rootCmd)

	// Store lifecycle
	rootCmd.AddCommand(cli.InitCmd())
	rootCmd.AddCommand(cli.MigrateCmd())
	rootCmd.AddCommand(cli.BackupCmd())
	rootCmd.AddCommand(cli.StatusCmd())

	// Domain commands
	rootCmd.AddCommand(cli.ItemCmd())
	rootCmd.AddCommand(cli.ReportCmd())
	rootCmd.AddCommand(cli.PendencyCmd())
	rootCmd.AddCommand(cli.TicketCmd())
	rootCmd.AddCommand(cli.ExportCmd())

	err := rootCmd.ExecuteContext(context.Background())
	if closeErr := wire.Close(); err == nil && closeErr != nil {
		err = closeErr
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
