package analytics

import (
	"github.com/alexanderramin/cadence/internal/calendar"
	"github.com/alexanderramin/cadence/internal/domain"
	"github.com/alexanderramin/cadence/internal/schedule"
)

// Streaks pairs the current and longest streak of an activity.
type Streaks struct {
	Current int
	Longest int
}

// CurrentStreak counts consecutive completed planned days walking backward
// from today. Unplanned days are stepped over. An uncompleted planned day
// ends the walk, except today itself which may still be done.
func CurrentStreak(s domain.RecurrenceSchedule, c domain.CompletionView, p Policy, today calendar.Date) int {
	if today.Before(s.StartDate) {
		return 0
	}
	streak := 0
	for d := range calendar.DaysBackward(s.StartDate, calendar.Min(today, s.EndDate)) {
		if !schedule.IsPlanned(s, d) {
			continue
		}
		switch {
		case c.IsComplete(d):
			streak++
		case d == today:
			// not done yet today
		case p.SkipPreservesStreak && c.IsSkipped(d):
		default:
			return streak
		}
	}
	return streak
}

// LongestStreak scans the whole schedule forward and returns the longest
// run of completed planned days. It does not depend on today.
func LongestStreak(s domain.RecurrenceSchedule, c domain.CompletionView, p Policy) int {
	run, best := 0, 0
	for d := range schedule.PlannedDates(s, s.StartDate, s.EndDate) {
		switch {
		case c.IsComplete(d):
			run++
			best = max(best, run)
		case p.SkipPreservesStreak && c.IsSkipped(d):
		default:
			run = 0
		}
	}
	return best
}

// ComputeStreaks returns both streaks.
func ComputeStreaks(s domain.RecurrenceSchedule, c domain.CompletionView, p Policy, today calendar.Date) Streaks {
	return Streaks{
		Current: CurrentStreak(s, c, p, today),
		Longest: LongestStreak(s, c, p),
	}
}
