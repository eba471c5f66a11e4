package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/example/manut/internal/wire"
)

// ItemCmd returns the item command
func ItemCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "item",
		Short: "Manage the checklist item catalog",
		Long:  "Add, list, activate and deactivate the items inspected in every room. Items are never deleted.",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "add [name]",
		Short: "Add a checklist item",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := wire.CatalogAdapter().Add(cmd.Context(), strings.Join(args, " "))
			return err
		},
	})

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List checklist items",
		RunE: func(cmd *cobra.Command, args []string) error {
			all, _ := cmd.Flags().GetBool("all")
			_, err := wire.CatalogAdapter().List(cmd.Context(), !all)
			return err
		},
	}
	listCmd.Flags().Bool("all", false, "include inactive items")
	cmd.AddCommand(listCmd)

	cmd.AddCommand(setActiveCmd("activate", "Put an item back on new checklists", true))
	cmd.AddCommand(setActiveCmd("deactivate", "Keep an item off new checklists", false))
	return cmd
}

func setActiveCmd(use, short string, active bool) *cobra.Command {
	return &cobra.Command{
		Use:   use + " [item-id]",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("item", args[0])
			if err != nil {
				return err
			}
			return wire.CatalogAdapter().SetActive(cmd.Context(), id, active)
		},
	}
}
