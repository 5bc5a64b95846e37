package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newMeasureCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "measure <session-id> <kind> <value>",
		Short: "Record a body measurement against a session",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			sessionID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid session id: %s", args[0])
			}
			value, err := strconv.ParseFloat(args[2], 64)
			if err != nil {
				return fmt.Errorf("invalid value: %s", args[2])
			}

			app, err := openApp(cmd, false)
			if err != nil {
				return err
			}
			defer app.close()

			_, err = app.insights.AddMeasurement(context.Background(), sessionID, args[1], value)
			return err
		},
	}

	return cmd
}
