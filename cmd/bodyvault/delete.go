package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newDeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete sessions or photos",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "session <session-id>",
		Short: "Delete a session with all of its photos",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sessionID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid session id: %s", args[0])
			}

			app, err := openApp(cmd, true)
			if err != nil {
				return err
			}
			defer app.close()

			if err := app.photos.DeleteSession(context.Background(), sessionID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "session %d deleted\n", sessionID)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "photo <photo-id>",
		Short: "Delete a single photo",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			photoID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid photo id: %s", args[0])
			}

			app, err := openApp(cmd, true)
			if err != nil {
				return err
			}
			defer app.close()

			if err := app.photos.DeletePhoto(context.Background(), photoID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "photo %d deleted\n", photoID)
			return nil
		},
	})

	return cmd
}
