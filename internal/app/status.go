package app

import (
	"github.com/alexanderramin/cadence/internal/analytics"
	"github.com/alexanderramin/cadence/internal/calendar"
	"github.com/alexanderramin/cadence/internal/domain"
)

type StatusRequest struct {
	Today           calendar.Date
	IncludeArchived bool
}

// ActivityStatusView is the full progress picture of one activity as of
// Today.
type ActivityStatusView struct {
	ActivityID string
	Name       string
	Category   string
	Priority   domain.Priority
	Status     domain.ActivityStatus
	Schedule   domain.RecurrenceSchedule
	Cover      string

	Today          calendar.Date
	PlannedToday   bool
	CompletedToday bool
	SkippedToday   bool
	NoteToday      string

	// NextPlanned is the first planned day strictly after Today.
	NextPlanned    calendar.Date
	HasNextPlanned bool

	Progress analytics.Summary
}

type OverviewSummary struct {
	Today          calendar.Date
	CountsTotal    int
	CountsUpcoming int
	CountsOnTrack  int
	CountsAhead    int
	CountsBehind   int
	DueToday       int
	DoneToday      int
	CompletedTotal int
	MissedTotal    int
	// CompletionPct pools completions and due days across all activities.
	CompletionPct int
}

type OverviewResponse struct {
	Summary    OverviewSummary
	Activities []ActivityStatusView
	Warnings   []string
}
