package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

func newNoteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "note <session-id> <text>...",
		Short: "Set the notes on a session",
		Args:  cobra.MinimumNArgs(2),
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

			return app.photos.SetSessionNotes(context.Background(), sessionID, strings.Join(args[1:], " "))
		},
	}

	return cmd
}
