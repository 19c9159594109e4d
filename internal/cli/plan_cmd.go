package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/termplan/internal/cli/formatter"
	"github.com/spf13/cobra"
)

var errResetNeedsConfirmation = errors.New("reset clears every unlocked term; rerun with --yes")

func newPlanCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Run, inspect and reset the term plan",
	}

	cmd.AddCommand(
		newPlanRunCmd(app),
		newPlanShowCmd(app),
		newPlanResetCmd(app),
		newPlanCheckCmd(app),
		newPlanHistoryCmd(app),
	)

	return cmd
}

func newPlanRunCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Place every unplaced course automatically",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := app.Plans.Run(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatRun(resp))
			return nil
		},
	}
}

func newPlanShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the current plan",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			view, err := app.Plans.Show(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatPlan(view))
			return nil
		},
	}
}

func newPlanResetCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Move every course in an unlocked term back to unassigned",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				if !app.interactive() {
					return errResetNeedsConfirmation
				}
				ok, err := app.confirm("Reset the plan?", "Unlocked terms are emptied and their pins cleared.")
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("Reset cancelled."))
					return nil
				}
			}

			view, err := app.Plans.Reset(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatPlan(view))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")

	return cmd
}

func newPlanCheckCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "check <course> <term>",
		Short: "Check whether a course may go into a term without moving it",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := app.Plans.Check(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatVerdict(resp))
			return nil
		},
	}
}

func newPlanHistoryCmd(app *App) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history [run-id]",
		Short: "List recent planning runs, or show one run in detail",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				run, err := app.Plans.GetRun(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), formatter.FormatRunDetail(run))
				return nil
			}

			runs, err := app.Plans.History(cmd.Context(), limit)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatHistory(runs, time.Now().UTC()))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "Number of runs to list")

	return cmd
}
