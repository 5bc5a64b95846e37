package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/bodyvault/bodyvault/internal/analysis"
)

func newAnalyzeCmd() *cobra.Command {
	var skipSave bool

	cmd := &cobra.Command{
		Use:   "analyze <session-id>",
		Short: "Get an AI assessment of a single session",
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

			ctx, cancel := context.WithTimeout(context.Background(), analysisTimeout)
			defer cancel()

			photos, err := loadSessionPhotos(ctx, app, sessionID)
			if err != nil {
				return err
			}

			client := analysis.NewClient(app.cfg.AIBaseURL, app.cfg.AIAPIKey, app.cfg.AIModel, app.log)
			text, err := client.AnalyzeSession(ctx, photos)
			if err != nil {
				return err
			}

			if !skipSave {
				if _, err := app.insights.SaveInsight(ctx, sessionID, "session_analysis", text, 1); err != nil {
					return err
				}
			}

			fmt.Fprintln(cmd.OutOrStdout(), text)
			return nil
		},
	}

	cmd.Flags().BoolVar(&skipSave, "no-save", false, "Print the result without storing an insight")

	return cmd
}
