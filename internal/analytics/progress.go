package analytics

import (
	"math"

	"github.com/alexanderramin/cadence/internal/calendar"
	"github.com/alexanderramin/cadence/internal/domain"
	"github.com/alexanderramin/cadence/internal/schedule"
)

// ScheduledTotal is the number of occurrences in the whole schedule.
func ScheduledTotal(s domain.RecurrenceSchedule) int {
	return schedule.CountScheduled(s, s.EndDate)
}

// ScheduledPast is the number of occurrences up to and including today.
func ScheduledPast(s domain.RecurrenceSchedule, today calendar.Date) int {
	return schedule.CountScheduled(s, calendar.Min(today, s.EndDate))
}

// CompletedTotal counts every recorded completion, planned or not.
func CompletedTotal(c domain.CompletionView) int {
	return c.TotalCompleted()
}

// ExcusedPast counts planned days through today that the policy exempts
// from penalty (skipped and not completed).
func ExcusedPast(s domain.RecurrenceSchedule, c domain.CompletionView, p Policy, today calendar.Date) int {
	if !p.SkipExemptsPenalty {
		return 0
	}
	n := 0
	for d := range schedule.PlannedDates(s, s.StartDate, today) {
		if p.exempt(c.IsComplete(d), c.IsSkipped(d)) {
			n++
		}
	}
	return n
}

// MissedTotal is max(0, scheduled_past - excused - completed_total).
func MissedTotal(s domain.RecurrenceSchedule, c domain.CompletionView, p Policy, today calendar.Date) int {
	return max(0, ScheduledPast(s, today)-ExcusedPast(s, c, p, today)-c.TotalCompleted())
}

// SessionsLeft is max(0, scheduled_total - completed_total).
func SessionsLeft(s domain.RecurrenceSchedule, c domain.CompletionView) int {
	return max(0, ScheduledTotal(s)-c.TotalCompleted())
}

// DaysLeft is the number of days from today to the end date, never negative.
func DaysLeft(s domain.RecurrenceSchedule, today calendar.Date) int {
	return max(0, calendar.DaysBetween(today, s.EndDate))
}

// CompletionPercent is completed / (scheduled_past - excused) as a rounded
// percentage in [0, 100]. It is 0 when nothing was due yet.
func CompletionPercent(s domain.RecurrenceSchedule, c domain.CompletionView, p Policy, today calendar.Date) int {
	return percent(c.TotalCompleted(), ScheduledPast(s, today)-ExcusedPast(s, c, p, today))
}

// OnTrackStatus compares completions to the expected count through today.
func OnTrackStatus(s domain.RecurrenceSchedule, c domain.CompletionView, p Policy, today calendar.Date) domain.OnTrack {
	if today.Before(s.StartDate) {
		return domain.OnTrackUpcoming
	}
	expected := ScheduledPast(s, today) - ExcusedPast(s, c, p, today)
	return classify(c.TotalCompleted(), expected, p.OnTrackTolerance)
}

// Summary bundles every progress figure for one activity and one today.
type Summary struct {
	ScheduledTotal    int
	ScheduledPast     int
	Excused           int
	CompletedTotal    int
	MissedTotal       int
	SessionsLeft      int
	DaysLeft          int
	CompletionPercent int
	Status            domain.OnTrack
	Streaks           Streaks
}

// Summarize computes a Summary with a single pass over the elapsed part of
// the schedule.
func Summarize(s domain.RecurrenceSchedule, c domain.CompletionView, p Policy, today calendar.Date) Summary {
	var past, excused int
	for d := range schedule.PlannedDates(s, s.StartDate, today) {
		past++
		if p.exempt(c.IsComplete(d), c.IsSkipped(d)) {
			excused++
		}
	}

	completed := c.TotalCompleted()
	total := ScheduledTotal(s)
	status := domain.OnTrackUpcoming
	if !today.Before(s.StartDate) {
		status = classify(completed, past-excused, p.OnTrackTolerance)
	}

	return Summary{
		ScheduledTotal:    total,
		ScheduledPast:     past,
		Excused:           excused,
		CompletedTotal:    completed,
		MissedTotal:       max(0, past-excused-completed),
		SessionsLeft:      max(0, total-completed),
		DaysLeft:          DaysLeft(s, today),
		CompletionPercent: percent(completed, past-excused),
		Status:            status,
		Streaks:           ComputeStreaks(s, c, p, today),
	}
}

func classify(actual, expected, tolerance int) domain.OnTrack {
	switch {
	case actual < expected:
		return domain.OnTrackBehind
	case actual <= expected+tolerance:
		return domain.OnTrackOnTrack
	default:
		return domain.OnTrackAhead
	}
}

func percent(num, den int) int {
	if den <= 0 {
		return 0
	}
	pct := int(math.Round(float64(num) / float64(den) * 100))
	return min(100, max(0, pct))
}

// PooledPercent is the completion percent of several activities taken
// together: all completions over all non-exempt due days.
func PooledPercent(summaries ...Summary) int {
	var completed, due int
	for _, s := range summaries {
		completed += s.CompletedTotal
		due += s.ScheduledPast - s.Excused
	}
	return percent(completed, due)
}
