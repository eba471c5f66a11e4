package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/manut/internal/config"
	"github.com/example/manut/internal/wire"
)

// InitCmd returns the init command
func InitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:         "init",
		Short:       "Create or upgrade the maintenance store",
		Long:        `Create the store at the configured path, migrate it to the current schema and seed the default checklist items.`,
		Annotations: map[string]string{skipAutoMigrate: ""},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := wire.Config()
			fmt.Printf("Initializing store at %s\n", cfg.DatabasePath)

			if _, err := wire.StoreAdapter().Migrate(cmd.Context()); err != nil {
				return fmt.Errorf("failed to initialize store: %w", err)
			}

			if path, _ := cmd.Flags().GetString("write-config"); path != "" {
				if err := config.SaveConfig(path, cfg); err != nil {
					return err
				}
				fmt.Printf("✓ Config written to %s\n", path)
			}

			fmt.Println()
			fmt.Println("Next steps:")
			fmt.Println("  manut item list")
			fmt.Println("  manut report create --floor 1 --apt 1 --technician Ana --item Frigobar:OK")
			return nil
		},
	}
	cmd.Flags().String("write-config", "", "also write the effective config as YAML to this path")
	return cmd
}

// MigrateCmd returns the migrate command
func MigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "migrate",
		Short:       "Migrate the store to the current schema version",
		Long:        `Apply pending schema migrations. Older stores are backed up first. Running it on a current store changes nothing.`,
		Annotations: map[string]string{skipAutoMigrate: ""},
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := wire.StoreAdapter().Migrate(cmd.Context())
			return err
		},
	}
}

// BackupCmd returns the backup command
func BackupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "backup",
		Short: "Write a timestamped copy of the store",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := wire.StoreAdapter().Backup(cmd.Context())
			return err
		},
	}
}

// StatusCmd returns the status command
func StatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show schema version and row counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := wire.StoreAdapter().Status(cmd.Context())
			return err
		},
	}
}
