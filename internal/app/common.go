package app

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/cadence/internal/calendar"
	"github.com/alexanderramin/cadence/internal/domain"
)

// DueTodayItem is one activity planned on the requested day.
type DueTodayItem struct {
	ActivityID    string
	Name          string
	Category      string
	Date          calendar.Date
	Completed     bool
	Skipped       bool
	Note          string
	CurrentStreak int
}

// CheckInRequest addresses one day of one activity.
type CheckInRequest struct {
	ActivityID string
	Date       calendar.Date
}

// CheckInResult reports the stored state of the day after a check-in write.
type CheckInResult struct {
	ActivityID string
	Date       calendar.Date
	Planned    bool
	Completed  bool
	Skipped    bool
}

type ImportResult struct {
	Activities  []*domain.Activity
	Completions int
	Skips       int
	Notes       int
}

// ValidationError collects every problem found in an import file.
type ValidationError struct {
	Errs []error
}

func (e *ValidationError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "import validation failed (%d errors):", len(e.Errs))
	for _, err := range e.Errs {
		b.WriteString("\n  - ")
		b.WriteString(err.Error())
	}
	return b.String()
}

func (e *ValidationError) Unwrap() []error {
	return e.Errs
}
