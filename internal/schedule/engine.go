// Package schedule derives end dates for weekly recurrence schedules and
// classifies dates against them.
package schedule

import (
	"fmt"
	"iter"

	"github.com/alexanderramin/cadence/internal/calendar"
	"github.com/alexanderramin/cadence/internal/domain"
)

const (
	// MaxScanDays bounds the forward walk of ComputeEndDate (about 10 years).
	MaxScanDays = 3653

	// MaxTargetOccurrences is the largest accepted target. A daily pattern
	// at this target ends exactly at the scan bound.
	MaxTargetOccurrences = MaxScanDays
)

// ComputeEndDate returns the date of the target-th planned weekday on or
// after start. A zero target returns start. An empty pattern with a positive
// target, a target above MaxTargetOccurrences, or a walk longer than
// MaxScanDays fails with domain.ErrInvalidSchedule.
func ComputeEndDate(start calendar.Date, pattern domain.WeekdayPattern, target int) (calendar.Date, error) {
	switch {
	case target < 0:
		return calendar.Date{}, &domain.ScheduleError{
			Reason: domain.ReasonNegativeTarget,
			Detail: fmt.Sprintf("target occurrences %d must not be negative", target),
		}
	case target == 0:
		return start, nil
	case pattern.IsEmpty():
		return calendar.Date{}, &domain.ScheduleError{
			Reason: domain.ReasonEmptyPattern,
			Detail: fmt.Sprintf("no weekday selected for %d occurrences", target),
		}
	case target > MaxTargetOccurrences:
		return calendar.Date{}, &domain.ScheduleError{
			Reason: domain.ReasonTargetTooLarge,
			Detail: fmt.Sprintf("target occurrences %d exceeds %d", target, MaxTargetOccurrences),
		}
	}

	count := 0
	d := start
	for i := 0; i < MaxScanDays; i++ {
		if pattern.Includes(d) {
			count++
			if count == target {
				return d, nil
			}
		}
		d = d.AddDays(1)
	}
	return calendar.Date{}, &domain.ScheduleError{
		Reason: domain.ReasonScanLimit,
		Detail: fmt.Sprintf("%d occurrences of %q do not fit within %d days", target, pattern.String(), MaxScanDays),
	}
}

// New builds a schedule with its derived end date.
func New(start calendar.Date, pattern domain.WeekdayPattern, target int) (domain.RecurrenceSchedule, error) {
	if start.IsZero() {
		return domain.RecurrenceSchedule{}, &domain.ScheduleError{
			Reason: domain.ReasonMissingStart,
			Detail: "start date is required",
		}
	}
	end, err := ComputeEndDate(start, pattern, target)
	if err != nil {
		return domain.RecurrenceSchedule{}, err
	}
	return domain.RecurrenceSchedule{
		StartDate:         start,
		Pattern:           pattern,
		TargetOccurrences: target,
		EndDate:           end,
	}, nil
}

// IsPlanned reports whether d is an occurrence of s.
func IsPlanned(s domain.RecurrenceSchedule, d calendar.Date) bool {
	if s.TargetOccurrences == 0 || !s.Contains(d) {
		return false
	}
	return s.Pattern.Includes(d)
}

// CountScheduled counts planned dates in [start, min(end, through)].
func CountScheduled(s domain.RecurrenceSchedule, through calendar.Date) int {
	n := 0
	for range PlannedDates(s, s.StartDate, through) {
		n++
	}
	return n
}

// PlannedDates yields the planned dates of s inside [from, to], ascending.
func PlannedDates(s domain.RecurrenceSchedule, from, to calendar.Date) iter.Seq[calendar.Date] {
	lo := calendar.Max(from, s.StartDate)
	hi := calendar.Min(to, s.EndDate)
	return func(yield func(calendar.Date) bool) {
		if s.TargetOccurrences == 0 {
			return
		}
		for d := range calendar.Days(lo, hi) {
			if s.Pattern.Includes(d) && !yield(d) {
				return
			}
		}
	}
}

// NextPlanned returns the first planned date on or after from.
func NextPlanned(s domain.RecurrenceSchedule, from calendar.Date) (calendar.Date, bool) {
	for d := range PlannedDates(s, from, s.EndDate) {
		return d, true
	}
	return calendar.Date{}, false
}
