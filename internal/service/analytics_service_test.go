package service

import (
	"context"
	"testing"

	"github.com/alexanderramin/cadence/internal/app"
	"github.com/alexanderramin/cadence/internal/domain"
	"github.com/alexanderramin/cadence/internal/repository"
	"github.com/alexanderramin/cadence/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	daily     = domain.WeekdayPattern{true, true, true, true, true, true, true}
	monWedFri = domain.WeekdayPattern{true, false, true, false, true, false, false}
)

func TestAnalytics_ActivityStatus(t *testing.T) {
	r := setupRepos(t)
	svc := r.analytics()
	ctx := context.Background()

	a := seedActivity(t, r, testutil.NewTestActivity("Run"),
		"2024-01-01", "2024-01-02", "2024-01-03", "2024-01-04", "2024-01-05")
	require.NoError(t, r.covers.Set(ctx, a.ID, "covers/run.png"))
	require.NoError(t, r.completions.SetNote(ctx, a.ID, date("2024-01-08"), "rain"))

	view, err := svc.ActivityStatus(ctx, a.ID, date("2024-01-08"))
	require.NoError(t, err)

	assert.Equal(t, "Run", view.Name)
	assert.Equal(t, "covers/run.png", view.Cover)
	assert.True(t, view.PlannedToday)
	assert.False(t, view.CompletedToday)
	assert.Equal(t, "rain", view.NoteToday)
	assert.True(t, view.HasNextPlanned)
	assert.Equal(t, date("2024-01-09"), view.NextPlanned)

	p := view.Progress
	assert.Equal(t, 10, p.ScheduledTotal)
	assert.Equal(t, 6, p.ScheduledPast)
	assert.Equal(t, 5, p.CompletedTotal)
	assert.Equal(t, 1, p.MissedTotal)
	assert.Equal(t, 5, p.SessionsLeft)
	assert.Equal(t, 4, p.DaysLeft)
	assert.Equal(t, 83, p.CompletionPercent)
	assert.Equal(t, 5, p.Streaks.Current)
	assert.Equal(t, domain.OnTrackBehind, p.Status)
}

func TestAnalytics_ActivityStatus_AfterEnd(t *testing.T) {
	r := setupRepos(t)
	a := seedActivity(t, r, testutil.NewTestActivity("Run"))

	view, err := r.analytics().ActivityStatus(context.Background(), a.ID, date("2024-03-01"))
	require.NoError(t, err)
	assert.False(t, view.HasNextPlanned)
	assert.Empty(t, view.Cover)
	assert.Equal(t, 0, view.Progress.DaysLeft)
}

func TestAnalytics_ActivityStatus_FollowsProfile(t *testing.T) {
	r := setupRepos(t)
	svc := r.analytics()
	ctx := context.Background()
	a := seedActivity(t, r, testutil.NewTestActivity("Run"), "2024-01-01")
	require.NoError(t, r.completions.SetSkipped(ctx, a.ID, date("2024-01-02")))

	view, err := svc.ActivityStatus(ctx, a.ID, date("2024-01-04"))
	require.NoError(t, err)
	assert.Equal(t, 2, view.Progress.MissedTotal)
	assert.Equal(t, 33, view.Progress.CompletionPercent)

	profile := domain.DefaultTrackerProfile()
	profile.SkipExemptsPenalty = false
	require.NoError(t, NewProfileService(r.profiles).Update(ctx, profile))

	view, err = svc.ActivityStatus(ctx, a.ID, date("2024-01-04"))
	require.NoError(t, err)
	assert.Equal(t, 3, view.Progress.MissedTotal)
	assert.Equal(t, 25, view.Progress.CompletionPercent)
}

func TestAnalytics_ActivityStatus_NotFound(t *testing.T) {
	r := setupRepos(t)
	_, err := r.analytics().ActivityStatus(context.Background(), "missing", date("2024-01-01"))
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestAnalytics_Overview(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()

	seedActivity(t, r, testutil.NewTestActivity("A run"),
		"2024-01-01", "2024-01-02", "2024-01-03", "2024-01-04", "2024-01-05")
	seedActivity(t, r, testutil.NewTestActivity("B swim", testutil.WithSchedule("2024-01-10", daily, 5)))
	seedActivity(t, r, testutil.NewTestActivity("C read"),
		"2024-01-01", "2024-01-02", "2024-01-03", "2024-01-04", "2024-01-05",
		"2024-01-08", "2024-01-09", "2024-01-10", "2024-01-11")

	resp, err := r.analytics().Overview(ctx, app.StatusRequest{Today: date("2024-01-08")})
	require.NoError(t, err)

	require.Len(t, resp.Activities, 3)
	s := resp.Summary
	assert.Equal(t, 3, s.CountsTotal)
	assert.Equal(t, 1, s.CountsUpcoming)
	assert.Equal(t, 1, s.CountsBehind)
	assert.Equal(t, 1, s.CountsAhead)
	assert.Equal(t, 0, s.CountsOnTrack)
	assert.Equal(t, 2, s.DueToday)
	assert.Equal(t, 1, s.DoneToday)
	assert.Equal(t, 14, s.CompletedTotal)
	assert.Equal(t, 1, s.MissedTotal)
	assert.Equal(t, 100, s.CompletionPct)
	assert.Empty(t, resp.Warnings)
}

func TestAnalytics_Overview_Empty(t *testing.T) {
	r := setupRepos(t)
	resp, err := r.analytics().Overview(context.Background(), app.StatusRequest{Today: date("2024-01-08")})
	require.NoError(t, err)
	assert.Empty(t, resp.Activities)
	assert.Zero(t, resp.Summary.CompletionPct)
	assert.NotEmpty(t, resp.Warnings)
}

func TestAnalytics_Overview_ExcludesArchivedByDefault(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	a := seedActivity(t, r, testutil.NewTestActivity("Run"))
	require.NoError(t, r.activities.Archive(ctx, a.ID))

	resp, err := r.analytics().Overview(ctx, app.StatusRequest{Today: date("2024-01-08")})
	require.NoError(t, err)
	assert.Empty(t, resp.Activities)

	resp, err = r.analytics().Overview(ctx, app.StatusRequest{Today: date("2024-01-08"), IncludeArchived: true})
	require.NoError(t, err)
	assert.Len(t, resp.Activities, 1)
}

func TestAnalytics_Insights(t *testing.T) {
	r := setupRepos(t)
	a := seedActivity(t, r, testutil.NewTestActivity("Run", testutil.WithSchedule("2024-01-01", monWedFri, 9)),
		"2024-01-01", "2024-01-08", "2024-01-15", "2024-01-03")

	resp, err := r.analytics().Insights(context.Background(), app.NewInsightsRequest(a.ID, date("2024-01-19")))
	require.NoError(t, err)

	require.True(t, resp.HasBestWorst)
	assert.Equal(t, 0, resp.BestWorst.Best)
	assert.Equal(t, 4, resp.BestWorst.Worst)
	assert.InDelta(t, 1.0/3.0, resp.Weekdays.Rate[2], 1e-9)

	require.Len(t, resp.Trend, 7)
	assert.Equal(t, date("2024-01-13"), resp.Trend[0].Date)
	assert.Equal(t, 3, resp.TrendTally.Planned)
	assert.Equal(t, 1, resp.TrendTally.Completed)
	assert.Equal(t, 1, resp.TrendTally.Missed)
	assert.Len(t, resp.Heat, 30)
	assert.Equal(t, 2, resp.Streaks.Longest)
	assert.Equal(t, 0, resp.Streaks.Current, "2024-01-17 was missed")
}

func TestAnalytics_Insights_NegativeWindow(t *testing.T) {
	r := setupRepos(t)
	a := seedActivity(t, r, testutil.NewTestActivity("Run"))

	req := app.NewInsightsRequest(a.ID, date("2024-01-08"))
	req.TrendDays = -1
	_, err := r.analytics().Insights(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrInvalidDateRange)
}

func TestAnalytics_Window(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	a := seedActivity(t, r, testutil.NewTestActivity("Run"), "2024-01-02", "2024-01-03")
	require.NoError(t, r.completions.SetSkipped(ctx, a.ID, date("2024-01-04")))

	window, err := r.analytics().Window(ctx, a.ID, date("2024-01-08"), 7)
	require.NoError(t, err)
	require.Len(t, window, 7)
	assert.True(t, window[6].IsToday)
	assert.True(t, window[2].Skipped)
	assert.True(t, window[3].Missed())
}

func TestAnalytics_DueToday(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()

	run := seedActivity(t, r, testutil.NewTestActivity("A run"), "2024-01-04", "2024-01-05", "2024-01-08")
	seedActivity(t, r, testutil.NewTestActivity("B swim", testutil.WithSchedule("2024-01-01", domain.WeekdayPattern{false, true}, 4)))
	read := seedActivity(t, r, testutil.NewTestActivity("C read"))
	require.NoError(t, r.completions.SetSkipped(ctx, read.ID, date("2024-01-08")))
	require.NoError(t, r.completions.SetNote(ctx, read.ID, date("2024-01-08"), "travel"))
	archived := seedActivity(t, r, testutil.NewTestActivity("D archived"))
	require.NoError(t, r.activities.Archive(ctx, archived.ID))

	items, err := r.analytics().DueToday(ctx, date("2024-01-08"))
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, run.ID, items[0].ActivityID)
	assert.True(t, items[0].Completed)
	assert.Equal(t, 3, items[0].CurrentStreak)

	assert.Equal(t, read.ID, items[1].ActivityID)
	assert.True(t, items[1].Skipped)
	assert.Equal(t, "travel", items[1].Note)
}
