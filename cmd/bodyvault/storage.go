package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newStorageCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "storage",
		Short: "Show disk usage of the encrypted store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := openApp(cmd, false)
			if err != nil {
				return err
			}
			defer app.close()

			used, err := app.photos.StorageUsed()
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), humanBytes(used))
			return nil
		},
	}
}

func humanBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
