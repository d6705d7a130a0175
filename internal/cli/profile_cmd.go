package cli

import (
	"fmt"

	"github.com/alexanderramin/cadence/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newProfileCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show or change the tracking policy",
	}

	cmd.AddCommand(newProfileShowCmd(app), newProfileSetCmd(app))

	return cmd
}

func newProfileShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the tracking policy",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := app.Profile.Get(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatProfile(p))
			return nil
		},
	}
}

func newProfileSetCmd(app *App) *cobra.Command {
	var (
		tolerance       int
		preservesStreak string
		exempts         string
		strict          string
	)

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Change the tracking policy",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			p, err := app.Profile.Get(ctx)
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			changed := false
			if flags.Changed("tolerance") {
				p.OnTrackTolerance = tolerance
				changed = true
			}
			for _, b := range []struct {
				name string
				raw  string
				dst  *bool
			}{
				{"skip-preserves-streak", preservesStreak, &p.SkipPreservesStreak},
				{"skip-exempts-penalty", exempts, &p.SkipExemptsPenalty},
				{"strict", strict, &p.StrictCompletionWindow},
			} {
				if !flags.Changed(b.name) {
					continue
				}
				v, err := parseBoolArg(b.name, b.raw)
				if err != nil {
					return err
				}
				*b.dst = v
				changed = true
			}
			if !changed {
				return fmt.Errorf("nothing to change: pass at least one policy flag")
			}

			if err := app.Profile.Update(ctx, p); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatProfile(p))
			return nil
		},
	}

	cmd.Flags().IntVar(&tolerance, "tolerance", 0, "Completions above expected still counted as on track")
	cmd.Flags().StringVar(&preservesStreak, "skip-preserves-streak", "", "Whether a skipped day keeps a streak alive (true|false)")
	cmd.Flags().StringVar(&exempts, "skip-exempts-penalty", "", "Whether a skipped day is left out of missed counts (true|false)")
	cmd.Flags().StringVar(&strict, "strict", "", "Reject check-ins on days that are not planned (true|false)")

	return cmd
}
