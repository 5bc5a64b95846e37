package main

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/bodyvault/bodyvault/internal/analysis"
)

const analysisTimeout = 2 * time.Minute

func newCompareCmd() *cobra.Command {
	var skipSave bool

	cmd := &cobra.Command{
		Use:   "compare <before-session-id> <after-session-id>",
		Short: "Compare two sessions with the AI model",
		Long: "Decrypts the photos of both sessions, sends them to the configured model, " +
			"and stores the returned assessment as an insight on the later session. " +
			"Requires BODYVAULT_AI_KEY.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			beforeID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid session id: %s", args[0])
			}
			afterID, err := strconv.ParseInt(args[1], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid session id: %s", args[1])
			}

			app, err := openApp(cmd, true)
			if err != nil {
				return err
			}
			defer app.close()

			ctx, cancel := context.WithTimeout(context.Background(), analysisTimeout)
			defer cancel()

			before, err := loadSessionPhotos(ctx, app, beforeID)
			if err != nil {
				return err
			}
			after, err := loadSessionPhotos(ctx, app, afterID)
			if err != nil {
				return err
			}

			client := analysis.NewClient(app.cfg.AIBaseURL, app.cfg.AIAPIKey, app.cfg.AIModel, app.log)
			text, err := client.Compare(ctx, before, after)
			if err != nil {
				return err
			}

			if !skipSave {
				if _, err := app.insights.SaveInsight(ctx, afterID, "progress_comparison", text, 1); err != nil {
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

func loadSessionPhotos(ctx context.Context, app *app, sessionID int64) ([][]byte, error) {
	detail, err := app.photos.SessionDetail(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	result := make([][]byte, 0, len(detail.Photos))
	for _, photo := range detail.Photos {
		data, err := app.photos.LoadPhoto(ctx, photo.ID)
		if err != nil {
			return nil, fmt.Errorf("load photo %d: %w", photo.ID, err)
		}
		result = append(result, data)
	}
	return result, nil
}
