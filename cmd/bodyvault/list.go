package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/bodyvault/bodyvault/internal/database"
)

func newListCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List capture sessions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := openApp(cmd, false)
			if err != nil {
				return err
			}
			defer app.close()

			sessions, err := app.photos.ListSessions(context.Background())
			if err != nil {
				return err
			}

			switch format {
			case "json":
				return outputSessionsJSON(cmd, sessions)
			case "table":
				outputSessionsTable(cmd, sessions)
				return nil
			default:
				return fmt.Errorf("invalid format: %s (valid values: table, json)", format)
			}
		},
	}

	cmd.Flags().StringVar(&format, "format", "table", "Output format: table or json")

	return cmd
}

type sessionOutputEntry struct {
	ID       int64  `json:"id"`
	Created  string `json:"created"`
	Photos   int64  `json:"photos"`
	Complete bool   `json:"complete"`
	Notes    string `json:"notes,omitempty"`
}

func outputSessionsJSON(cmd *cobra.Command, sessions []database.SessionRecord) error {
	output := make([]sessionOutputEntry, 0, len(sessions))
	for _, s := range sessions {
		output = append(output, sessionOutputEntry{
			ID:       s.ID,
			Created:  s.CreatedAt.Format(time.RFC3339),
			Photos:   s.PhotoCount,
			Complete: s.IsComplete,
			Notes:    s.Notes,
		})
	}

	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}

func outputSessionsTable(cmd *cobra.Command, sessions []database.SessionRecord) {
	t := table.NewWriter()
	t.SetOutputMirror(cmd.OutOrStdout())
	t.SetStyle(table.StyleLight)

	// Fixed columns take roughly 40 characters; notes get the rest.
	notesWidth := terminalWidth() - 40
	if notesWidth < 15 {
		notesWidth = 15
	}

	t.AppendHeader(table.Row{"ID", "Created", "Photos", "Complete", "Notes"})
	for _, s := range sessions {
		complete := ""
		if s.IsComplete {
			complete = "yes"
		}
		t.AppendRow(table.Row{
			s.ID,
			s.CreatedAt.Format("2006-01-02 15:04"),
			s.PhotoCount,
			complete,
			runewidth.Truncate(s.Notes, notesWidth, "..."),
		})
	}
	t.Render()
}

func terminalWidth() int {
	if width, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && width > 0 {
		return width
	}
	return 80
}
