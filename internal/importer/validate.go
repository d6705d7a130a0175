package importer

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/cadence/internal/calendar"
	"github.com/alexanderramin/cadence/internal/domain"
	"github.com/alexanderramin/cadence/internal/schedule"
)

// ValidateImportSchema checks the import schema for errors before conversion.
// Returns a slice of all validation errors found.
func ValidateImportSchema(schema *ImportSchema) []error {
	var errs []error

	if len(schema.Activities) == 0 {
		errs = append(errs, fmt.Errorf("activities: at least one activity is required"))
	}

	seenNames := make(map[string]int)
	for i := range schema.Activities {
		a := &schema.Activities[i]
		prefix := fmt.Sprintf("activities[%d]", i)

		key := strings.ToLower(strings.TrimSpace(a.Name))
		if first, ok := seenNames[key]; ok && key != "" {
			errs = append(errs, fmt.Errorf("%s.name %q duplicates activities[%d]", prefix, a.Name, first))
		} else {
			seenNames[key] = i
		}

		errs = append(errs, validateActivity(prefix, a)...)
	}

	return errs
}

func validateActivity(prefix string, a *ActivityImport) []error {
	var errs []error

	if strings.TrimSpace(a.Name) == "" {
		errs = append(errs, fmt.Errorf("%s.name is required", prefix))
	}
	if a.Priority != "" && !domain.ValidPriorities[a.Priority] {
		errs = append(errs, fmt.Errorf("%s.priority: invalid value %q", prefix, a.Priority))
	}

	pattern, patternErr := domain.ParseWeekdays(strings.Join(a.Weekdays, ","))
	if patternErr != nil {
		errs = append(errs, fmt.Errorf("%s.weekdays: %w", prefix, patternErr))
	}

	var start calendar.Date
	if a.StartDate == "" {
		errs = append(errs, fmt.Errorf("%s.start_date is required", prefix))
	} else if d, err := calendar.Parse(a.StartDate); err != nil {
		errs = append(errs, fmt.Errorf("%s.start_date: invalid date format %q (expected YYYY-MM-DD)", prefix, a.StartDate))
	} else {
		start = d
	}

	if patternErr == nil && !start.IsZero() {
		if _, err := schedule.New(start, pattern, a.TargetOccurrences); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", prefix, err))
		}
	}

	errs = append(errs, validateDates(prefix+".completions", a.Completions)...)
	errs = append(errs, validateDates(prefix+".skips", a.Skips)...)
	for day := range a.Notes {
		if _, err := calendar.Parse(day); err != nil {
			errs = append(errs, fmt.Errorf("%s.notes: invalid date key %q (expected YYYY-MM-DD)", prefix, day))
		}
	}

	return errs
}

func validateDates(field string, days []string) []error {
	var errs []error
	for i, day := range days {
		if _, err := calendar.Parse(day); err != nil {
			errs = append(errs, fmt.Errorf("%s[%d]: invalid date format %q (expected YYYY-MM-DD)", field, i, day))
		}
	}
	return errs
}
