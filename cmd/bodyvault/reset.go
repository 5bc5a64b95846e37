package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

func newResetCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete every session, photo, and insight",
		Long:  "Wipes all stored data. Slot configuration and the encryption salt are kept.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !force {
				return errors.New("refusing to wipe all data without --force")
			}

			app, err := openApp(cmd, true)
			if err != nil {
				return err
			}
			defer app.close()

			if err := app.photos.DeleteAll(context.Background(), app.dbCtx); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "all sessions and photos deleted")
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Confirm deletion of all data")

	return cmd
}
