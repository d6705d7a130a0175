package testutil

import (
	"time"

	"github.com/alexanderramin/cadence/internal/calendar"
	"github.com/alexanderramin/cadence/internal/domain"
	"github.com/alexanderramin/cadence/internal/schedule"
	"github.com/google/uuid"
)

// Weekdays is the Monday to Friday pattern used by most fixtures.
var Weekdays = domain.WeekdayPattern{true, true, true, true, true, false, false}

// Activity options
type ActivityOption func(*domain.Activity)

// WithSchedule rebuilds the fixture's schedule. It panics on an invalid
// schedule, which is always a bug in the test itself.
func WithSchedule(start string, pattern domain.WeekdayPattern, target int) ActivityOption {
	return func(a *domain.Activity) {
		s, err := schedule.New(calendar.MustParse(start), pattern, target)
		if err != nil {
			panic(err)
		}
		a.Schedule = s
	}
}

func WithCategory(c string) ActivityOption {
	return func(a *domain.Activity) {
		a.Category = c
	}
}

func WithPriority(p domain.Priority) ActivityOption {
	return func(a *domain.Activity) {
		a.Priority = p
	}
}

func WithDescription(d string) ActivityOption {
	return func(a *domain.Activity) {
		a.Description = d
	}
}

func WithCreatedAt(t time.Time) ActivityOption {
	return func(a *domain.Activity) {
		a.CreatedAt = t
		a.UpdatedAt = t
	}
}

// NewTestActivity returns an active weekday activity starting Monday
// 2024-01-01 with ten occurrences (ending Friday 2024-01-12).
func NewTestActivity(name string, opts ...ActivityOption) *domain.Activity {
	now := time.Now().UTC().Truncate(time.Second)
	a := &domain.Activity{
		ID:        uuid.New().String(),
		Name:      name,
		Priority:  domain.PriorityMedium,
		Status:    domain.ActivityActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	WithSchedule("2024-01-01", Weekdays, 10)(a)
	for _, opt := range opts {
		opt(a)
	}
	return a
}
