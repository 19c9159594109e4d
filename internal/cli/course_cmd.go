package cli

import (
	"fmt"

	"github.com/alexanderramin/termplan/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newCourseCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "course",
		Short: "Move and pin individual courses",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "place <course> <term>",
			Short: "Move a course into a term and pin it there",
			Long: "The move is made even when prerequisites or limits are not met;\n" +
				"the result says why the placement is invalid. Use \"unassigned\" as\n" +
				"the term to remove the course.",
			Args: cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				resp, err := app.Plans.Place(cmd.Context(), args[0], args[1])
				if err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), formatter.FormatVerdict(resp))
				return nil
			},
		},
		&cobra.Command{
			Use:   "remove <course>",
			Short: "Return a course to the unassigned bucket",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := app.Plans.Remove(cmd.Context(), args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", args[0])
				return nil
			},
		},
		&cobra.Command{
			Use:   "pin <course>",
			Short: "Keep a placed course where it is during automatic planning",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := app.Plans.Pin(cmd.Context(), args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Pinned %s\n", args[0])
				return nil
			},
		},
		&cobra.Command{
			Use:   "unpin <course>",
			Short: "Let automatic planning move a course again",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := app.Plans.Unpin(cmd.Context(), args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Unpinned %s\n", args[0])
				return nil
			},
		},
	)

	return cmd
}
