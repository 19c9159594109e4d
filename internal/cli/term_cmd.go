package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newTermCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "term",
		Short: "Lock or unlock terms",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "lock <term>",
			Short: "Freeze a term so planning and reset leave it alone",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := app.Plans.LockTerm(cmd.Context(), args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Locked %s\n", args[0])
				return nil
			},
		},
		&cobra.Command{
			Use:   "unlock <term>",
			Short: "Let planning change a term again",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := app.Plans.UnlockTerm(cmd.Context(), args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Unlocked %s\n", args[0])
				return nil
			},
		},
	)

	return cmd
}
