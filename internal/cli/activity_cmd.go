package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/cadence/internal/calendar"
	"github.com/alexanderramin/cadence/internal/cli/formatter"
	"github.com/alexanderramin/cadence/internal/domain"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

func newActivityCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "activity",
		Aliases: []string{"a"},
		Short:   "Manage tracked activities",
	}

	cmd.AddCommand(
		newActivityAddCmd(app),
		newActivityListCmd(app),
		newActivityShowCmd(app),
		newActivityEditCmd(app),
		newActivityRescheduleCmd(app),
		newActivityArchiveCmd(app),
		newActivityDeleteCmd(app),
	)

	return cmd
}

func newActivityAddCmd(app *App) *cobra.Command {
	var (
		vals        activityFormValues
		start       calendar.Date
		pattern     domain.WeekdayPattern
		target      int
		interactive bool
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a new activity",
		RunE: func(cmd *cobra.Command, args []string) error {
			vals.Start = dayOrToday(app, start).String()
			vals.Weekdays = patternIndexes(pattern)
			if cmd.Flags().Changed("target") {
				vals.Target = fmt.Sprintf("%d", target)
			}

			if interactive {
				if !app.Interactive {
					return fmt.Errorf("--interactive requires a terminal")
				}
				if err := activityForm(&vals).Run(); err != nil {
					if errors.Is(err, huh.ErrUserAborted) {
						fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
						return nil
					}
					return err
				}
			} else if err := requireFlags(cmd, "name", "days", "target"); err != nil {
				return err
			}

			a, err := vals.toActivity()
			if err != nil {
				return err
			}
			if err := app.Activities.Create(cmd.Context(), a); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created activity %s [%s]\n", a.Name, a.DisplayID())
			fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", formatter.ScheduleLine(a.Schedule))
			return nil
		},
	}

	cmd.Flags().StringVar(&vals.Name, "name", "", "Activity name")
	cmd.Flags().StringVar(&vals.Category, "category", "", "Category label")
	cmd.Flags().StringVar(&vals.Priority, "priority", "", "Priority: low, medium or high")
	cmd.Flags().StringVar(&vals.Description, "description", "", "Free-form description")
	addDateFlag(cmd, &start, "start", "First day of the schedule")
	cmd.Flags().Var(newWeekdaysValue(&pattern), "days", "Planned weekdays, e.g. mon,wed,fri or weekdays")
	cmd.Flags().IntVar(&target, "target", 0, "Number of planned occurrences")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Fill in the activity with a form")

	return cmd
}

// requireFlags reports the first named flag the user left unset. Flags are
// only required outside interactive mode, so cobra's MarkFlagRequired does
// not fit.
func requireFlags(cmd *cobra.Command, names ...string) error {
	var missing []string
	for _, n := range names {
		if !cmd.Flags().Changed(n) {
			missing = append(missing, n)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf(`required flag(s) "%s" not set`, strings.Join(missing, `", "`))
	}
	return nil
}

func newActivityListCmd(app *App) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List activities",
		RunE: func(cmd *cobra.Command, args []string) error {
			activities, err := app.Activities.List(cmd.Context(), all)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatActivityList(activities))
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Include archived activities")

	return cmd
}

func newActivityShowCmd(app *App) *cobra.Command {
	var today calendar.Date

	cmd := &cobra.Command{
		Use:   "show ID",
		Short: "Show progress and streaks of one activity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := resolveActivity(ctx, app, args[0])
			if err != nil {
				return err
			}
			view, err := app.Analytics.ActivityStatus(ctx, a.ID, dayOrToday(app, today))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatActivityStatus(view))
			if a.Description != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "\n%s\n", a.Description)
			}
			return nil
		},
	}

	addDateFlag(cmd, &today, "today", "Evaluate as of this day")

	return cmd
}

func newActivityEditCmd(app *App) *cobra.Command {
	var name, category, priority, description string

	cmd := &cobra.Command{
		Use:   "edit ID",
		Short: "Change the name, category, priority or description",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := resolveActivity(ctx, app, args[0])
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			if flags.Changed("name") {
				a.Name = name
			}
			if flags.Changed("category") {
				a.Category = category
			}
			if flags.Changed("priority") {
				a.Priority = domain.Priority(strings.ToLower(priority))
			}
			if flags.Changed("description") {
				a.Description = description
			}

			if err := app.Activities.Update(ctx, a); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated activity %s [%s]\n", a.Name, a.DisplayID())
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New name")
	cmd.Flags().StringVar(&category, "category", "", "New category")
	cmd.Flags().StringVar(&priority, "priority", "", "New priority: low, medium or high")
	cmd.Flags().StringVar(&description, "description", "", "New description")

	return cmd
}

func newActivityRescheduleCmd(app *App) *cobra.Command {
	var (
		start   calendar.Date
		pattern domain.WeekdayPattern
		target  int
	)

	cmd := &cobra.Command{
		Use:   "reschedule ID",
		Short: "Replace the schedule, keeping completion history",
		Long: "Replace the start date, weekdays or target of an activity. Flags left\n" +
			"unset keep their current value. Completions and skips are kept as-is.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := resolveActivity(ctx, app, args[0])
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			if !flags.Changed("start") && !flags.Changed("days") && !flags.Changed("target") {
				return fmt.Errorf("nothing to change: pass --start, --days or --target")
			}
			s := a.Schedule
			if flags.Changed("start") {
				s.StartDate = start
			}
			if flags.Changed("days") {
				s.Pattern = pattern
			}
			if flags.Changed("target") {
				s.TargetOccurrences = target
			}

			updated, err := app.Activities.Reschedule(ctx, a.ID, s.StartDate, s.Pattern, s.TargetOccurrences)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Rescheduled %s [%s]\n", updated.Name, updated.DisplayID())
			fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", formatter.ScheduleLine(updated.Schedule))
			return nil
		},
	}

	cmd.Flags().Var(newDateValue(&start), "start", "New first day (YYYY-MM-DD)")
	cmd.Flags().Var(newWeekdaysValue(&pattern), "days", "New planned weekdays")
	cmd.Flags().IntVar(&target, "target", 0, "New number of planned occurrences")

	return cmd
}

func newActivityArchiveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "archive ID",
		Short: "Archive an activity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := resolveActivity(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Activities.Archive(ctx, a.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Archived activity %s [%s]\n", a.Name, a.DisplayID())
			return nil
		},
	}
}

func newActivityDeleteCmd(app *App) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:     "delete ID",
		Aliases: []string{"rm"},
		Short:   "Delete an archived activity and its history",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := resolveActivity(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Activities.Delete(ctx, a.ID, force); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted activity %s [%s]\n", a.Name, a.DisplayID())
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Delete even if not archived")

	return cmd
}
