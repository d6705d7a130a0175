package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/cadence/internal/app"
	"github.com/alexanderramin/cadence/internal/calendar"
	"github.com/alexanderramin/cadence/internal/cli/formatter"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

type checkInFunc func(ctx context.Context, req app.CheckInRequest) (*app.CheckInResult, error)

// newCheckInWriteCmd builds one of the single-day write commands around the
// check-in use case chosen by pick.
func newCheckInWriteCmd(app *App, use, short string, pick func(*App) checkInFunc) *cobra.Command {
	var day calendar.Date

	cmd := &cobra.Command{
		Use:   use + " ID",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := resolveActivity(ctx, app, args[0])
			if err != nil {
				return err
			}
			res, err := pick(app)(ctx, checkInReq(a.ID, dayOrToday(app, day)))
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatCheckIn(a.Name, res))
			return nil
		},
	}

	addDateFlag(cmd, &day, "date", "Day to update")

	return cmd
}

func newMarkCmd(app *App) *cobra.Command {
	return newCheckInWriteCmd(app, "mark", "Mark a day completed", func(a *App) checkInFunc { return a.CheckIn.MarkComplete })
}

func newUnmarkCmd(app *App) *cobra.Command {
	return newCheckInWriteCmd(app, "unmark", "Clear the completion of a day", func(a *App) checkInFunc { return a.CheckIn.Unmark })
}

func newToggleCmd(app *App) *cobra.Command {
	return newCheckInWriteCmd(app, "toggle", "Flip the completion of a day", func(a *App) checkInFunc { return a.CheckIn.Toggle })
}

func newSkipCmd(app *App) *cobra.Command {
	return newCheckInWriteCmd(app, "skip", "Mark a day intentionally skipped", func(a *App) checkInFunc { return a.CheckIn.Skip })
}

func newUnskipCmd(app *App) *cobra.Command {
	return newCheckInWriteCmd(app, "unskip", "Clear the skip of a day", func(a *App) checkInFunc { return a.CheckIn.Unskip })
}

func checkInReq(activityID string, day calendar.Date) app.CheckInRequest {
	return app.CheckInRequest{ActivityID: activityID, Date: day}
}

func newNoteCmd(app *App) *cobra.Command {
	var (
		day  calendar.Date
		text string
	)

	cmd := &cobra.Command{
		Use:   "note ID",
		Short: "Attach a note to a day (empty text clears it)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := resolveActivity(ctx, app, args[0])
			if err != nil {
				return err
			}
			d := dayOrToday(app, day)
			if err := app.CheckIn.SetNote(ctx, checkInReq(a.ID, d), text); err != nil {
				return err
			}
			if text == "" {
				fmt.Fprintf(cmd.OutOrStdout(), "Cleared note for %s on %s\n", a.Name, d)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "Saved note for %s on %s\n", a.Name, d)
			}
			return nil
		},
	}

	addDateFlag(cmd, &day, "date", "Day to annotate")
	cmd.Flags().StringVar(&text, "text", "", "Note text")
	_ = cmd.MarkFlagRequired("text")

	return cmd
}

func newCheckInCmd(app *App) *cobra.Command {
	var today calendar.Date

	cmd := &cobra.Command{
		Use:   "checkin",
		Short: "Check off today's activities interactively",
		Long: "Open a list of the activities planned today. Space toggles done, s\n" +
			"toggles skipped. Without a terminal the list is printed instead.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			day := dayOrToday(app, today)

			if app.Interactive {
				m := newCheckInModel(ctx, app, day)
				if _, err := tea.NewProgram(m, tea.WithContext(ctx)).Run(); err != nil {
					return err
				}
			}

			items, err := app.Analytics.DueToday(ctx, day)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatDueToday(items))
			return nil
		},
	}

	addDateFlag(cmd, &today, "today", "Day to check in")

	return cmd
}
