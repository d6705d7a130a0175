package calendar

import "iter"

const secondsPerDay = 24 * 60 * 60

// IsWithin reports whether start <= d <= end.
func IsWithin(d, start, end Date) bool {
	return !d.Before(start) && !d.After(end)
}

// DaysBetween returns the signed number of days from a to b. It works on
// Unix seconds, so distances beyond the range of time.Duration stay exact.
func DaysBetween(a, b Date) int {
	return int((b.Time().Unix() - a.Time().Unix()) / secondsPerDay)
}

// Days yields every date from start to end inclusive, ascending. A range with
// end before start yields nothing. Each call to the returned sequence starts
// over from start.
func Days(start, end Date) iter.Seq[Date] {
	return func(yield func(Date) bool) {
		if end.Before(start) {
			return
		}
		for d := start; !d.After(end); d = d.AddDays(1) {
			if !yield(d) {
				return
			}
		}
	}
}

// DaysBackward yields every date from end down to start inclusive.
func DaysBackward(start, end Date) iter.Seq[Date] {
	return func(yield func(Date) bool) {
		if end.Before(start) {
			return
		}
		for d := end; !d.Before(start); d = d.AddDays(-1) {
			if !yield(d) {
				return
			}
		}
	}
}

// WeekdayNames are short labels indexed Monday=0.
var WeekdayNames = [7]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}
