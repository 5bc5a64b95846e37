package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bodyvault/bodyvault/internal/session"
)

func newCaptureCmd() *cobra.Command {
	var rotate int

	cmd := &cobra.Command{
		Use:   "capture <photo>...",
		Short: "Run a capture walkthrough over photo files",
		Long: "Walks the active slots in order, storing one photo file per slot. " +
			"Pass \"-\" to skip a slot. Slots left over when the files run out are skipped " +
			"and the session completes with whatever was captured.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := openApp(cmd, true)
			if err != nil {
				return err
			}
			defer app.close()

			ctx := context.Background()
			orch := session.New(app.photos, app.slots,
				session.WithLogger(app.log),
				session.WithErrorRevertDelay(0))

			if err := orch.Start(ctx); err != nil {
				return err
			}

			for _, arg := range args {
				if orch.Snapshot().Kind != session.StateInProgress {
					break
				}
				slot, err := orch.CurrentSlot()
				if err != nil {
					return err
				}

				if arg == "-" {
					if err := orch.Skip(ctx); err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), "skipped  %s\n", slot.Name)
					continue
				}

				data, err := os.ReadFile(arg)
				if err != nil {
					return err
				}
				if err := orch.Capture(ctx, data, rotate); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "captured %s (%s)\n", slot.Name, arg)
			}

			if orch.Snapshot().Kind == session.StateInProgress {
				if err := orch.Complete(ctx); err != nil {
					return err
				}
			}

			state := orch.Snapshot()
			switch state.Kind {
			case session.StateComplete:
				fmt.Fprintf(cmd.OutOrStdout(), "session %d complete, %d photo(s)\n",
					*state.SessionID, state.CapturedCount)
			case session.StateCancelled:
				fmt.Fprintln(cmd.OutOrStdout(), "nothing captured, no session created")
			default:
				return fmt.Errorf("walkthrough ended in unexpected state: %s", state.Kind)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&rotate, "rotate", 0, "Rotate photos clockwise before storing (degrees, multiple of 90)")

	return cmd
}
