package importer

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/cadence/internal/calendar"
	"github.com/alexanderramin/cadence/internal/domain"
	"github.com/alexanderramin/cadence/internal/schedule"
	"github.com/google/uuid"
)

// GeneratedActivity is one converted record ready for persistence.
type GeneratedActivity struct {
	Activity *domain.Activity
	State    *domain.CompletionState
	Cover    string
}

// Convert transforms a validated ImportSchema into domain objects ready for persistence.
// Call ValidateImportSchema first; Convert assumes the schema is valid.
func Convert(schema *ImportSchema) ([]GeneratedActivity, error) {
	now := time.Now().UTC().Truncate(time.Second)
	out := make([]GeneratedActivity, 0, len(schema.Activities))

	for i, rec := range schema.Activities {
		start, err := calendar.Parse(rec.StartDate)
		if err != nil {
			return nil, fmt.Errorf("activities[%d]: parsing start_date: %w", i, err)
		}
		pattern, err := domain.ParseWeekdays(strings.Join(rec.Weekdays, ","))
		if err != nil {
			return nil, fmt.Errorf("activities[%d]: %w", i, err)
		}
		sched, err := schedule.New(start, pattern, rec.TargetOccurrences)
		if err != nil {
			return nil, fmt.Errorf("activities[%d]: %w", i, err)
		}

		priority := domain.Priority(rec.Priority)
		if priority == "" {
			priority = domain.PriorityMedium
		}
		a := &domain.Activity{
			ID:          uuid.New().String(),
			Name:        strings.TrimSpace(rec.Name),
			Category:    rec.Category,
			Priority:    priority,
			Description: rec.Description,
			Schedule:    sched,
			Status:      domain.ActivityActive,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if rec.Archived {
			a.Status = domain.ActivityArchived
			a.ArchivedAt = &now
		}

		state := domain.NewCompletionState()
		for _, s := range rec.Completions {
			d, err := calendar.Parse(s)
			if err != nil {
				return nil, fmt.Errorf("activities[%d].completions: %w", i, err)
			}
			state.MarkComplete(d)
		}
		for _, s := range rec.Skips {
			d, err := calendar.Parse(s)
			if err != nil {
				return nil, fmt.Errorf("activities[%d].skips: %w", i, err)
			}
			state.MarkSkipped(d)
		}
		for s, text := range rec.Notes {
			d, err := calendar.Parse(s)
			if err != nil {
				return nil, fmt.Errorf("activities[%d].notes: %w", i, err)
			}
			state.SetNote(d, text)
		}

		out = append(out, GeneratedActivity{Activity: a, State: state, Cover: rec.Cover})
	}
	return out, nil
}

// FromActivity builds the export record of an activity.
func FromActivity(a *domain.Activity, state *domain.CompletionState, cover string) ActivityImport {
	rec := ActivityImport{
		Name:              a.Name,
		Category:          a.Category,
		Priority:          string(a.Priority),
		Description:       a.Description,
		StartDate:         a.Schedule.StartDate.String(),
		TargetOccurrences: a.Schedule.TargetOccurrences,
		Archived:          a.IsArchived(),
		Cover:             cover,
	}
	if names := a.Schedule.Pattern.String(); names != "" {
		rec.Weekdays = strings.Split(names, ",")
	}
	if state == nil {
		return rec
	}
	for _, d := range state.CompletedDates() {
		rec.Completions = append(rec.Completions, d.String())
	}
	for _, d := range state.SkippedDates() {
		rec.Skips = append(rec.Skips, d.String())
	}
	if notes := state.Notes(); len(notes) > 0 {
		rec.Notes = make(map[string]string, len(notes))
		for d, text := range notes {
			rec.Notes[d.String()] = text
		}
	}
	return rec
}
