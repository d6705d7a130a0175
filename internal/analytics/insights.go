package analytics

import (
	"fmt"

	"github.com/alexanderramin/cadence/internal/calendar"
	"github.com/alexanderramin/cadence/internal/domain"
	"github.com/alexanderramin/cadence/internal/schedule"
)

// WeekdayRates holds per-weekday completion counts through today, indexed
// Monday=0. A weekday with no planned days has no defined rate.
type WeekdayRates struct {
	Planned   [7]int
	Completed [7]int
	Rate      [7]float64
}

// Defined reports whether weekday i had at least one planned day.
func (w WeekdayRates) Defined(i int) bool {
	return w.Planned[i] > 0
}

// DayOfWeekRates computes, for each weekday, completed planned days over
// planned days through today. Exempt skips are left out of both counts.
func DayOfWeekRates(s domain.RecurrenceSchedule, c domain.CompletionView, p Policy, today calendar.Date) WeekdayRates {
	var w WeekdayRates
	for d := range schedule.PlannedDates(s, s.StartDate, today) {
		done := c.IsComplete(d)
		if p.exempt(done, c.IsSkipped(d)) {
			continue
		}
		i := d.WeekdayIndex()
		w.Planned[i]++
		if done {
			w.Completed[i]++
		}
	}
	for i := range w.Rate {
		if w.Planned[i] > 0 {
			w.Rate[i] = float64(w.Completed[i]) / float64(w.Planned[i])
		}
	}
	return w
}

// BestWorst names the weekdays with the highest and lowest defined rate.
type BestWorst struct {
	Best      int
	BestRate  float64
	Worst     int
	WorstRate float64
}

// BestWorstDay picks the argmax and argmin over weekdays with a defined
// rate. Ties go to the earlier weekday, Monday first. ok is false when no
// weekday has a defined rate.
func BestWorstDay(w WeekdayRates) (bw BestWorst, ok bool) {
	for i := range w.Rate {
		if !w.Defined(i) {
			continue
		}
		r := w.Rate[i]
		if !ok {
			bw = BestWorst{Best: i, BestRate: r, Worst: i, WorstRate: r}
			ok = true
			continue
		}
		if r > bw.BestRate {
			bw.Best, bw.BestRate = i, r
		}
		if r < bw.WorstRate {
			bw.Worst, bw.WorstRate = i, r
		}
	}
	return bw, ok
}

// DayStatus is one cell of a trend bar or heat strip.
type DayStatus struct {
	Date      calendar.Date
	Planned   bool
	Completed bool
	Skipped   bool
	IsToday   bool
}

// Missed reports a planned, past, uncompleted and unskipped day.
func (d DayStatus) Missed() bool {
	return d.Planned && !d.IsToday && !d.Completed && !d.Skipped
}

// MaxWindowDays bounds the length of a status window.
const MaxWindowDays = schedule.MaxScanDays

// WindowStatus returns exactly days entries ending at today, oldest first.
// A negative length or one above MaxWindowDays fails with
// domain.ErrInvalidDateRange; zero yields an empty window.
func WindowStatus(s domain.RecurrenceSchedule, c domain.CompletionView, today calendar.Date, days int) ([]DayStatus, error) {
	if err := ValidateWindowDays(days); err != nil {
		return nil, err
	}
	out := make([]DayStatus, 0, days)
	for d := range calendar.Days(today.AddDays(-(days - 1)), today) {
		out = append(out, DayStatus{
			Date:      d,
			Planned:   schedule.IsPlanned(s, d),
			Completed: c.IsComplete(d),
			Skipped:   c.IsSkipped(d),
			IsToday:   d == today,
		})
	}
	return out, nil
}

// ValidateWindowDays checks a window length against [0, MaxWindowDays].
func ValidateWindowDays(days int) error {
	if days < 0 || days > MaxWindowDays {
		return fmt.Errorf("%w: window of %d days (allowed 0 to %d)", domain.ErrInvalidDateRange, days, MaxWindowDays)
	}
	return nil
}

// WindowTally counts the cells of a window.
type WindowTally struct {
	Planned   int
	Completed int
	Skipped   int
	Missed    int
}

// Tally summarizes a window produced by WindowStatus. Only planned days are
// counted.
func Tally(window []DayStatus) WindowTally {
	var t WindowTally
	for _, d := range window {
		if !d.Planned {
			continue
		}
		t.Planned++
		switch {
		case d.Completed:
			t.Completed++
		case d.Skipped:
			t.Skipped++
		case d.Missed():
			t.Missed++
		}
	}
	return t
}
