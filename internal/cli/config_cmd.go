package cli

import (
	"fmt"

	"github.com/alexanderramin/termplan/internal/app"
	"github.com/alexanderramin/termplan/internal/cli/formatter"
	"github.com/alexanderramin/termplan/internal/domain"
	"github.com/spf13/cobra"
)

func newConfigCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or change planning settings",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Show settings and the limits they resolve to",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				view, err := a.Settings.Get(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), formatter.FormatSettings(view))
				return nil
			},
		},
		newConfigSetCmd(a),
	)

	return cmd
}

func newConfigSetCmd(a *App) *cobra.Command {
	var (
		system                                         string
		years, terms                                   int
		minUnits, targetUnits, maxUnits                int
		targetDifficulty, maxDifficulty, topUpAttempts int
		auto                                           bool
	)

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Change planning settings",
		Long: "Only the flags given are changed. Unit and difficulty limits that were\n" +
			"never set are computed from the catalog; --auto drops every override.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			update := app.SettingsUpdate{ClearOverrides: auto}
			if flags.Changed("system") {
				s := domain.AcademicSystem(system)
				update.AcademicSystem = &s
			}
			intFlags := []struct {
				name string
				val  *int
				dst  **int
			}{
				{"years", &years, &update.GraduationYears},
				{"terms", &terms, &update.CustomTermCount},
				{"min-units", &minUnits, &update.MinUnits},
				{"target-units", &targetUnits, &update.TargetUnits},
				{"max-units", &maxUnits, &update.MaxUnits},
				{"target-difficulty", &targetDifficulty, &update.TargetDifficulty},
				{"max-difficulty", &maxDifficulty, &update.MaxDifficulty},
				{"top-up-attempts", &topUpAttempts, &update.TopUpAttempts},
			}
			changed := auto || update.AcademicSystem != nil
			for _, f := range intFlags {
				if flags.Changed(f.name) {
					*f.dst = f.val
					changed = true
				}
			}
			if !changed {
				return fmt.Errorf("nothing to change; see --help for the available flags")
			}

			view, err := a.Settings.Update(cmd.Context(), update)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatSettings(view))
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&system, "system", "", "Academic system: quarter or semester")
	f.IntVar(&years, "years", 0, "Number of academic years")
	f.IntVar(&terms, "terms", 0, "Planning term count used for the unit and difficulty targets")
	f.IntVar(&minUnits, "min-units", 0, "Minimum units per term")
	f.IntVar(&targetUnits, "target-units", 0, "Target units per term")
	f.IntVar(&maxUnits, "max-units", 0, "Maximum units per term")
	f.IntVar(&targetDifficulty, "target-difficulty", 0, "Target difficulty per term")
	f.IntVar(&maxDifficulty, "max-difficulty", 0, "Maximum difficulty per term")
	f.IntVar(&topUpAttempts, "top-up-attempts", 0, "Top-up attempts per term")
	f.BoolVar(&auto, "auto", false, "Drop every override and compute limits from the catalog")

	return cmd
}
