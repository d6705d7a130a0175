package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/cadence/internal/analytics"
	"github.com/alexanderramin/cadence/internal/app"
	"github.com/alexanderramin/cadence/internal/calendar"
	"github.com/alexanderramin/cadence/internal/domain"
	"github.com/alexanderramin/cadence/internal/repository"
	"github.com/alexanderramin/cadence/internal/schedule"
)

type analyticsService struct {
	activities  repository.ActivityRepo
	completions repository.CompletionRepo
	covers      repository.CoverRepo
	profiles    repository.TrackerProfileRepo
	locks       *ActivityLocks
	observer    UseCaseObserver
}

func NewAnalyticsService(
	activities repository.ActivityRepo,
	completions repository.CompletionRepo,
	covers repository.CoverRepo,
	profiles repository.TrackerProfileRepo,
	locks *ActivityLocks,
	observers ...UseCaseObserver,
) AnalyticsService {
	return &analyticsService{
		activities:  activities,
		completions: completions,
		covers:      covers,
		profiles:    profiles,
		locks:       locksOrNew(locks),
		observer:    useCaseObserverOrNoop(observers),
	}
}

// loadState reads the completion history of one activity under its read
// lock and returns an immutable snapshot of it.
func (s *analyticsService) loadState(ctx context.Context, activityID string) (domain.CompletionSnapshot, *domain.CompletionState, error) {
	unlock := s.locks.RLock(activityID)
	defer unlock()
	state, err := s.completions.Load(ctx, activityID)
	if err != nil {
		return domain.CompletionSnapshot{}, nil, fmt.Errorf("loading history of %s: %w", activityID, err)
	}
	return state.Snapshot(), state, nil
}

func (s *analyticsService) ActivityStatus(ctx context.Context, activityID string, today calendar.Date) (view *app.ActivityStatusView, err error) {
	defer observeUseCase(ctx, s.observer, "activity-status", time.Now().UTC(), map[string]any{"activity_id": activityID}, &err)

	a, err := s.activities.GetByID(ctx, activityID)
	if err != nil {
		return nil, err
	}
	policy, _, err := loadPolicy(ctx, s.profiles)
	if err != nil {
		return nil, err
	}
	return s.statusView(ctx, a, policy, today)
}

func (s *analyticsService) statusView(ctx context.Context, a *domain.Activity, policy analytics.Policy, today calendar.Date) (*app.ActivityStatusView, error) {
	snap, state, err := s.loadState(ctx, a.ID)
	if err != nil {
		return nil, err
	}
	cover, err := s.covers.Get(ctx, a.ID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	view := &app.ActivityStatusView{
		ActivityID:     a.ID,
		Name:           a.Name,
		Category:       a.Category,
		Priority:       a.Priority,
		Status:         a.Status,
		Schedule:       a.Schedule,
		Cover:          cover,
		Today:          today,
		PlannedToday:   schedule.IsPlanned(a.Schedule, today),
		CompletedToday: snap.IsComplete(today),
		SkippedToday:   snap.IsSkipped(today),
		Progress:       analytics.Summarize(a.Schedule, snap, policy, today),
	}
	if note, ok := state.Note(today); ok {
		view.NoteToday = note
	}
	view.NextPlanned, view.HasNextPlanned = schedule.NextPlanned(a.Schedule, today.AddDays(1))
	return view, nil
}

func (s *analyticsService) Overview(ctx context.Context, req app.StatusRequest) (resp *app.OverviewResponse, err error) {
	fields := map[string]any{"today": req.Today.String()}
	defer observeUseCase(ctx, s.observer, "overview", time.Now().UTC(), fields, &err)

	activities, err := s.activities.List(ctx, req.IncludeArchived)
	if err != nil {
		return nil, err
	}
	policy, _, err := loadPolicy(ctx, s.profiles)
	if err != nil {
		return nil, err
	}

	resp = &app.OverviewResponse{
		Summary:    app.OverviewSummary{Today: req.Today},
		Activities: make([]app.ActivityStatusView, 0, len(activities)),
	}
	summaries := make([]analytics.Summary, 0, len(activities))
	for _, a := range activities {
		view, err := s.statusView(ctx, a, policy, req.Today)
		if err != nil {
			return nil, err
		}
		resp.Activities = append(resp.Activities, *view)
		summaries = append(summaries, view.Progress)
		tallyOverview(&resp.Summary, view)
	}
	resp.Summary.CompletionPct = analytics.PooledPercent(summaries...)
	fields["activity_count"] = resp.Summary.CountsTotal

	if len(activities) == 0 {
		resp.Warnings = append(resp.Warnings, "No activities yet. Add one with `cadence activity add`.")
	}
	return resp, nil
}

func tallyOverview(sum *app.OverviewSummary, view *app.ActivityStatusView) {
	sum.CountsTotal++
	switch view.Progress.Status {
	case domain.OnTrackUpcoming:
		sum.CountsUpcoming++
	case domain.OnTrackOnTrack:
		sum.CountsOnTrack++
	case domain.OnTrackAhead:
		sum.CountsAhead++
	case domain.OnTrackBehind:
		sum.CountsBehind++
	}
	if view.PlannedToday {
		sum.DueToday++
		if view.CompletedToday {
			sum.DoneToday++
		}
	}
	sum.CompletedTotal += view.Progress.CompletedTotal
	sum.MissedTotal += view.Progress.MissedTotal
}

func (s *analyticsService) Insights(ctx context.Context, req app.InsightsRequest) (resp *app.InsightsResponse, err error) {
	defer observeUseCase(ctx, s.observer, "insights", time.Now().UTC(), map[string]any{"activity_id": req.ActivityID}, &err)

	a, err := s.activities.GetByID(ctx, req.ActivityID)
	if err != nil {
		return nil, err
	}
	policy, _, err := loadPolicy(ctx, s.profiles)
	if err != nil {
		return nil, err
	}
	snap, _, err := s.loadState(ctx, a.ID)
	if err != nil {
		return nil, err
	}

	defaults := app.NewInsightsRequest(req.ActivityID, req.Today)
	trendDays, heatDays := req.TrendDays, req.HeatDays
	if trendDays == 0 {
		trendDays = defaults.TrendDays
	}
	if heatDays == 0 {
		heatDays = defaults.HeatDays
	}

	trend, err := analytics.WindowStatus(a.Schedule, snap, req.Today, trendDays)
	if err != nil {
		return nil, err
	}
	heat, err := analytics.WindowStatus(a.Schedule, snap, req.Today, heatDays)
	if err != nil {
		return nil, err
	}

	resp = &app.InsightsResponse{
		ActivityID: a.ID,
		Name:       a.Name,
		Today:      req.Today,
		Weekdays:   analytics.DayOfWeekRates(a.Schedule, snap, policy, req.Today),
		Trend:      trend,
		TrendTally: analytics.Tally(trend),
		Heat:       heat,
		HeatTally:  analytics.Tally(heat),
		Streaks:    analytics.ComputeStreaks(a.Schedule, snap, policy, req.Today),
	}
	resp.BestWorst, resp.HasBestWorst = analytics.BestWorstDay(resp.Weekdays)
	return resp, nil
}

func (s *analyticsService) Window(ctx context.Context, activityID string, today calendar.Date, days int) ([]analytics.DayStatus, error) {
	a, err := s.activities.GetByID(ctx, activityID)
	if err != nil {
		return nil, err
	}
	snap, _, err := s.loadState(ctx, a.ID)
	if err != nil {
		return nil, err
	}
	return analytics.WindowStatus(a.Schedule, snap, today, days)
}

// DueToday lists the active activities planned on today, in list order.
func (s *analyticsService) DueToday(ctx context.Context, today calendar.Date) ([]app.DueTodayItem, error) {
	activities, err := s.activities.List(ctx, false)
	if err != nil {
		return nil, err
	}
	policy, _, err := loadPolicy(ctx, s.profiles)
	if err != nil {
		return nil, err
	}

	var items []app.DueTodayItem
	for _, a := range activities {
		if !schedule.IsPlanned(a.Schedule, today) {
			continue
		}
		snap, state, err := s.loadState(ctx, a.ID)
		if err != nil {
			return nil, err
		}
		item := app.DueTodayItem{
			ActivityID:    a.ID,
			Name:          a.Name,
			Category:      a.Category,
			Date:          today,
			Completed:     snap.IsComplete(today),
			Skipped:       snap.IsSkipped(today),
			CurrentStreak: analytics.CurrentStreak(a.Schedule, snap, policy, today),
		}
		item.Note, _ = state.Note(today)
		items = append(items, item)
	}
	return items, nil
}
