package cli

import (
	"fmt"

	"github.com/alexanderramin/cadence/internal/analytics"
	"github.com/alexanderramin/cadence/internal/app"
	"github.com/alexanderramin/cadence/internal/calendar"
	"github.com/alexanderramin/cadence/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newStatusCmd(app *App) *cobra.Command {
	var (
		today calendar.Date
		all   bool
	)

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show progress and on-track status of every activity",
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := app.Analytics.Overview(cmd.Context(), statusRequest(dayOrToday(app, today), all))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatOverview(resp))
			return nil
		},
	}

	addDateFlag(cmd, &today, "today", "Evaluate as of this day")
	cmd.Flags().BoolVar(&all, "all", false, "Include archived activities")

	return cmd
}

func statusRequest(today calendar.Date, includeArchived bool) app.StatusRequest {
	return app.StatusRequest{Today: today, IncludeArchived: includeArchived}
}

func newInsightsCmd(app *App) *cobra.Command {
	var today calendar.Date

	cmd := &cobra.Command{
		Use:   "insights ID",
		Short: "Show weekday rates, recent trend and heat strip",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := resolveActivity(ctx, app, args[0])
			if err != nil {
				return err
			}
			resp, err := app.Analytics.Insights(ctx, insightsRequest(app, a.ID, dayOrToday(app, today)))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatInsights(resp))
			return nil
		},
	}

	addDateFlag(cmd, &today, "today", "Evaluate as of this day")

	return cmd
}

func insightsRequest(a *App, activityID string, today calendar.Date) app.InsightsRequest {
	req := app.NewInsightsRequest(activityID, today)
	if a.TrendDays > 0 {
		req.TrendDays = a.TrendDays
	}
	if a.HeatDays > 0 {
		req.HeatDays = a.HeatDays
	}
	return req
}

func newWindowCmd(app *App) *cobra.Command {
	var (
		today calendar.Date
		days  int
	)

	cmd := &cobra.Command{
		Use:   "window ID",
		Short: "List the state of each day in a window ending today",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := analytics.ValidateWindowDays(days); err != nil {
				return fmt.Errorf("invalid --days: %w", err)
			}
			ctx := cmd.Context()
			a, err := resolveActivity(ctx, app, args[0])
			if err != nil {
				return err
			}
			window, err := app.Analytics.Window(ctx, a.ID, dayOrToday(app, today), days)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatWindow(a.Name, window))
			return nil
		},
	}

	addDateFlag(cmd, &today, "today", "Last day of the window")
	cmd.Flags().IntVar(&days, "days", 7, "Window length in days")

	return cmd
}

func newDueCmd(app *App) *cobra.Command {
	var today calendar.Date

	cmd := &cobra.Command{
		Use:   "due",
		Short: "List activities planned today",
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := app.Analytics.DueToday(cmd.Context(), dayOrToday(app, today))
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatDueToday(items))
			return nil
		},
	}

	addDateFlag(cmd, &today, "today", "Day to list")

	return cmd
}
