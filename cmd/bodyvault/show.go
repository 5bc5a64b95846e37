package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"
)

func newShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <session-id>",
		Short: "Show a session with its photos, insights, and measurements",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sessionID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid session id: %s", args[0])
			}

			app, err := openApp(cmd, false)
			if err != nil {
				return err
			}
			defer app.close()

			detail, err := app.photos.SessionDetail(context.Background(), sessionID)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			s := detail.Session
			status := "in progress"
			if s.IsComplete {
				status = "complete"
			}
			fmt.Fprintf(out, "Session %d  %s  %s\n", s.ID, s.CreatedAt.Format("2006-01-02 15:04"), status)
			if s.Notes != "" {
				fmt.Fprintf(out, "Notes: %s\n", s.Notes)
			}

			if len(detail.Photos) > 0 {
				fmt.Fprintln(out)
				t := table.NewWriter()
				t.SetOutputMirror(out)
				t.SetStyle(table.StyleLight)
				t.AppendHeader(table.Row{"Photo", "Slot", "Captured", "File"})
				for _, p := range detail.Photos {
					t.AppendRow(table.Row{
						p.ID,
						p.SlotID,
						p.CapturedAt.Format("15:04:05"),
						filepath.Base(p.BlobPath),
					})
				}
				t.Render()
			}

			for _, insight := range detail.Insights {
				fmt.Fprintf(out, "\n[%s] (confidence %.2f)\n%s\n",
					insight.Category, insight.Confidence,
					runewidth.Truncate(insight.Content, 2000, "..."))
			}

			for _, m := range detail.Measurements {
				fmt.Fprintf(out, "%s: %.1f\n", m.Kind, m.Value)
			}
			return nil
		},
	}

	return cmd
}
