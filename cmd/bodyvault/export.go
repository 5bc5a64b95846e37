package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
)

func newExportCmd() *cobra.Command {
	var (
		output    string
		thumbnail bool
	)

	cmd := &cobra.Command{
		Use:   "export <photo-id>",
		Short: "Decrypt a photo and write it to a file",
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

			ctx := context.Background()
			var data []byte
			if thumbnail {
				data, err = app.photos.LoadThumbnail(ctx, photoID)
			} else {
				data, err = app.photos.LoadPhoto(ctx, photoID)
			}
			if err != nil {
				return err
			}

			if output == "" {
				output = fmt.Sprintf("photo_%d.jpg", photoID)
			}
			if err := os.WriteFile(output, data, 0o600); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file path")
	cmd.Flags().BoolVar(&thumbnail, "thumbnail", false, "Export the thumbnail instead of the full photo")

	return cmd
}
