package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newSweepCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sweep",
		Short: "Remove orphaned blobs no photo row references",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := openApp(cmd, true)
			if err != nil {
				return err
			}
			defer app.close()

			result, err := app.photos.Sweep(context.Background())
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "scanned %d blob(s), removed %d orphan(s)\n",
				result.Scanned, result.Removed)
			for _, path := range result.Failed {
				fmt.Fprintf(cmd.ErrOrStderr(), "failed to remove: %s\n", path)
			}
			return nil
		},
	}
}
