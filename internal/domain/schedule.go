package domain

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/cadence/internal/calendar"
)

// WeekdayPattern marks which weekdays are planned, indexed Monday=0.
type WeekdayPattern [7]bool

// Count returns the number of planned weekdays.
func (p WeekdayPattern) Count() int {
	n := 0
	for _, on := range p {
		if on {
			n++
		}
	}
	return n
}

// IsEmpty reports whether no weekday is planned.
func (p WeekdayPattern) IsEmpty() bool {
	return p.Count() == 0
}

// Includes reports whether d falls on a planned weekday.
func (p WeekdayPattern) Includes(d calendar.Date) bool {
	return p[d.WeekdayIndex()]
}

// String renders the pattern as lowercase short names, e.g. "mon,wed,fri".
func (p WeekdayPattern) String() string {
	var parts []string
	for i, on := range p {
		if on {
			parts = append(parts, strings.ToLower(calendar.WeekdayNames[i]))
		}
	}
	return strings.Join(parts, ",")
}

// Mask encodes the pattern as a 7-bit integer, bit 0 = Monday.
func (p WeekdayPattern) Mask() int {
	m := 0
	for i, on := range p {
		if on {
			m |= 1 << i
		}
	}
	return m
}

// PatternFromMask decodes a Mask value.
func PatternFromMask(m int) WeekdayPattern {
	var p WeekdayPattern
	for i := range p {
		p[i] = m&(1<<i) != 0
	}
	return p
}

var weekdayAliases = map[string]int{
	"mon": 0, "monday": 0,
	"tue": 1, "tues": 1, "tuesday": 1,
	"wed": 2, "wednesday": 2,
	"thu": 3, "thur": 3, "thurs": 3, "thursday": 3,
	"fri": 4, "friday": 4,
	"sat": 5, "saturday": 5,
	"sun": 6, "sunday": 6,
}

// ParseWeekdays parses a comma separated list of weekday names. The shortcuts
// "daily", "weekdays" and "weekends" are accepted as the whole value.
func ParseWeekdays(s string) (WeekdayPattern, error) {
	var p WeekdayPattern
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return p, nil
	case "daily", "everyday":
		return WeekdayPattern{true, true, true, true, true, true, true}, nil
	case "weekdays":
		return WeekdayPattern{true, true, true, true, true, false, false}, nil
	case "weekends":
		return WeekdayPattern{false, false, false, false, false, true, true}, nil
	}
	for _, raw := range strings.Split(s, ",") {
		name := strings.ToLower(strings.TrimSpace(raw))
		if name == "" {
			continue
		}
		idx, ok := weekdayAliases[name]
		if !ok {
			return WeekdayPattern{}, fmt.Errorf("unknown weekday %q", raw)
		}
		p[idx] = true
	}
	return p, nil
}

// RecurrenceSchedule is the static weekly plan of an activity. EndDate is
// derived from the other three fields; build schedules with schedule.New so
// it is always consistent.
type RecurrenceSchedule struct {
	StartDate         calendar.Date
	Pattern           WeekdayPattern
	TargetOccurrences int
	EndDate           calendar.Date
}

// Contains reports whether d lies inside [StartDate, EndDate].
func (s RecurrenceSchedule) Contains(d calendar.Date) bool {
	return calendar.IsWithin(d, s.StartDate, s.EndDate)
}
