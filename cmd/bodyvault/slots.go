package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func newSlotsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "slots",
		Short: "Manage capture slots",
	}

	cmd.AddCommand(newSlotsListCmd())
	cmd.AddCommand(newSlotsAddCmd())
	cmd.AddCommand(newSlotsRenameCmd())
	cmd.AddCommand(newSlotsMoveCmd())
	cmd.AddCommand(newSlotsEnableCmd(true))
	cmd.AddCommand(newSlotsEnableCmd(false))
	cmd.AddCommand(newSlotsRmCmd())

	return cmd
}

func newSlotsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all slots",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := openApp(cmd, false)
			if err != nil {
				return err
			}
			defer app.close()

			slots, err := app.slots.List(context.Background())
			if err != nil {
				return err
			}

			t := table.NewWriter()
			t.SetOutputMirror(cmd.OutOrStdout())
			t.SetStyle(table.StyleLight)
			t.AppendHeader(table.Row{"ID", "Name", "Order", "Default", "Active"})
			for _, slot := range slots {
				isDefault := ""
				if slot.IsDefault {
					isDefault = "yes"
				}
				isActive := ""
				if slot.IsActive {
					isActive = "yes"
				}
				t.AppendRow(table.Row{slot.ID, slot.Name, slot.DisplayOrder, isDefault, isActive})
			}
			t.Render()
			return nil
		},
	}
}

func newSlotsAddCmd() *cobra.Command {
	var icon string

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a custom slot after the existing ones",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := openApp(cmd, false)
			if err != nil {
				return err
			}
			defer app.close()

			id, err := app.slots.Add(context.Background(), args[0], icon)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), id)
			return nil
		},
	}

	cmd.Flags().StringVar(&icon, "icon", "", "Icon name for the slot")

	return cmd
}

func newSlotsRenameCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rename <slot-id> <name>",
		Short: "Rename a slot",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			slotID, err := parseSlotID(args[0])
			if err != nil {
				return err
			}

			app, err := openApp(cmd, false)
			if err != nil {
				return err
			}
			defer app.close()

			return app.slots.Rename(context.Background(), slotID, args[1])
		},
	}
}

func newSlotsMoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "move <slot-id> <order>",
		Short: "Change a slot's position in the walkthrough",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			slotID, err := parseSlotID(args[0])
			if err != nil {
				return err
			}
			order, err := strconv.ParseInt(args[1], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid order: %s", args[1])
			}

			app, err := openApp(cmd, false)
			if err != nil {
				return err
			}
			defer app.close()

			return app.slots.Reorder(context.Background(), slotID, order)
		},
	}
}

func newSlotsEnableCmd(enable bool) *cobra.Command {
	use, short := "enable", "Include a slot in new sessions"
	if !enable {
		use, short = "disable", "Exclude a slot from new sessions"
	}

	return &cobra.Command{
		Use:   use + " <slot-id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			slotID, err := parseSlotID(args[0])
			if err != nil {
				return err
			}

			app, err := openApp(cmd, false)
			if err != nil {
				return err
			}
			defer app.close()

			return app.slots.SetActive(context.Background(), slotID, enable)
		},
	}
}

func newSlotsRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <slot-id>",
		Short: "Delete a custom slot (default slots can only be disabled)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			slotID, err := parseSlotID(args[0])
			if err != nil {
				return err
			}

			app, err := openApp(cmd, false)
			if err != nil {
				return err
			}
			defer app.close()

			return app.slots.Remove(context.Background(), slotID)
		},
	}
}

func parseSlotID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid slot id: %s", arg)
	}
	return id, nil
}
