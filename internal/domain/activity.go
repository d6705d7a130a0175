package domain

import (
	"fmt"
	"strings"
	"time"
)

type ActivityStatus string

const (
	ActivityActive   ActivityStatus = "active"
	ActivityArchived ActivityStatus = "archived"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// ValidPriorities is the canonical set of accepted priority strings.
var ValidPriorities = map[string]bool{
	"low": true, "medium": true, "high": true,
}

// Activity is a tracked habit. Its schedule is replaced wholesale when the
// activity is rescheduled; completion history is stored separately and
// survives rescheduling.
type Activity struct {
	ID          string
	Name        string
	Category    string
	Priority    Priority
	Description string
	Schedule    RecurrenceSchedule
	Status      ActivityStatus
	ArchivedAt  *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Validate checks the descriptive fields. Schedule validity is checked when
// the schedule is built.
func (a *Activity) Validate() error {
	if strings.TrimSpace(a.Name) == "" {
		return fmt.Errorf("activity name is required")
	}
	if a.Priority != "" && !ValidPriorities[string(a.Priority)] {
		return fmt.Errorf("priority %q must be one of low, medium, high", a.Priority)
	}
	return nil
}

// DisplayID returns the first 8 characters of the ID.
func (a *Activity) DisplayID() string {
	if len(a.ID) >= 8 {
		return a.ID[:8]
	}
	return a.ID
}

// IsArchived reports whether the activity was archived.
func (a *Activity) IsArchived() bool {
	return a.Status == ActivityArchived
}
