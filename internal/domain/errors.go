package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidSchedule marks a schedule that cannot be computed: an empty
	// weekday pattern with a positive target, or a target beyond the sanity
	// ceiling.
	ErrInvalidSchedule = errors.New("invalid schedule")

	// ErrInvalidDateRange marks a malformed range or window query.
	ErrInvalidDateRange = errors.New("invalid date range")

	// ErrDateNotPlanned is returned under the strict completion window policy
	// when a date outside the plan is marked.
	ErrDateNotPlanned = errors.New("date is not planned for this activity")
)

type ScheduleErrorReason string

const (
	ReasonEmptyPattern   ScheduleErrorReason = "EMPTY_PATTERN"
	ReasonNegativeTarget ScheduleErrorReason = "NEGATIVE_TARGET"
	ReasonTargetTooLarge ScheduleErrorReason = "TARGET_TOO_LARGE"
	ReasonScanLimit      ScheduleErrorReason = "SCAN_LIMIT"
	ReasonMissingStart   ScheduleErrorReason = "MISSING_START"
)

// ScheduleError describes why a schedule was rejected. It matches
// ErrInvalidSchedule under errors.Is.
type ScheduleError struct {
	Reason ScheduleErrorReason
	Detail string
}

func (e *ScheduleError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrInvalidSchedule, e.Reason, e.Detail)
}

func (e *ScheduleError) Is(target error) bool {
	return target == ErrInvalidSchedule
}
