package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/manut/internal/ctxutil"
	"github.com/example/manut/internal/wire"
)

// skipAutoMigrate marks commands that run the migration themselves.
const skipAutoMigrate = "manut/skip-auto-migrate"

// AddPersistentFlags registers the flags every command understands and the
// hook that wires services before a command runs.
func AddPersistentFlags(root *cobra.Command) {
	root.PersistentFlags().String("config", "", "path to a YAML config file")
	root.PersistentFlags().String("as", "", "operator name used when --technician or --by is omitted")
	root.PersistentPreRunE = prepare
}

// prepare loads configuration, opens the store and migrates it to the
// current schema, then stores the operator in the command context.
func prepare(cmd *cobra.Command, args []string) error {
	configPath, _ := cmd.Flags().GetString("config")
	wire.SetConfigPath(configPath)

	ctx := cmd.Context()
	if err := wire.Init(ctx); err != nil {
		return err
	}

	if _, skip := cmd.Annotations[skipAutoMigrate]; !skip {
		if _, err := wire.StoreService().EnsureSchema(ctx); err != nil {
			return err
		}
	}

	if actor, _ := cmd.Flags().GetString("as"); actor != "" {
		cmd.SetContext(ctxutil.WithActor(ctx, actor))
	}
	return nil
}
