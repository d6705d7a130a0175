package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/cadence/internal/calendar"
	"github.com/alexanderramin/cadence/internal/cli/formatter"
	"github.com/alexanderramin/cadence/internal/domain"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// cadenceHuhTheme returns a custom huh theme using the Gruvbox palette.
func cadenceHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	// Focused state: orange accent
	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.MultiSelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	// Blurred state: dimmed
	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// activityFormValues holds the raw answers of the add-activity form. Flags
// prefill it, so the same conversion serves both modes.
type activityFormValues struct {
	Name        string
	Category    string
	Priority    string
	Description string
	Start       string
	Weekdays    []int
	Target      string
}

func (v activityFormValues) toActivity() (*domain.Activity, error) {
	start, err := calendar.Parse(strings.TrimSpace(v.Start))
	if err != nil {
		return nil, err
	}
	target, err := strconv.Atoi(strings.TrimSpace(v.Target))
	if err != nil {
		return nil, fmt.Errorf("invalid target %q: must be a whole number", v.Target)
	}
	return &domain.Activity{
		Name:        strings.TrimSpace(v.Name),
		Category:    strings.TrimSpace(v.Category),
		Priority:    domain.Priority(strings.ToLower(strings.TrimSpace(v.Priority))),
		Description: strings.TrimSpace(v.Description),
		Schedule: domain.RecurrenceSchedule{
			StartDate:         start,
			Pattern:           patternFromIndexes(v.Weekdays),
			TargetOccurrences: target,
		},
	}, nil
}

// activityForm builds the interactive add-activity form over vals.
func activityForm(vals *activityFormValues) *huh.Form {
	if vals.Priority == "" {
		vals.Priority = string(domain.PriorityMedium)
	}

	dayOptions := make([]huh.Option[int], 0, len(calendar.WeekdayNames))
	for i, name := range calendar.WeekdayNames {
		dayOptions = append(dayOptions, huh.NewOption(name, i))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Value(&vals.Name).
				Validate(validateRequired("name")),
			huh.NewInput().
				Title("Category").
				Placeholder("health").
				Value(&vals.Category),
			huh.NewSelect[string]().
				Title("Priority").
				Options(
					huh.NewOption("Low", string(domain.PriorityLow)),
					huh.NewOption("Medium", string(domain.PriorityMedium)),
					huh.NewOption("High", string(domain.PriorityHigh)),
				).
				Value(&vals.Priority),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Start Date (YYYY-MM-DD)").
				Value(&vals.Start).
				Validate(validateDate),
			huh.NewMultiSelect[int]().
				Title("Planned Weekdays").
				Options(dayOptions...).
				Value(&vals.Weekdays).
				Validate(validateWeekdays),
			huh.NewInput().
				Title("Target Occurrences").
				Placeholder("20").
				Value(&vals.Target).
				Validate(validateNonNegativeInt),
		),
	).WithTheme(cadenceHuhTheme()).WithShowHelp(false)
}

func validateRequired(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}

func validateDate(s string) error {
	_, err := calendar.Parse(strings.TrimSpace(s))
	return err
}

func validateWeekdays(days []int) error {
	if len(days) == 0 {
		return fmt.Errorf("pick at least one weekday")
	}
	return nil
}

func validateNonNegativeInt(s string) error {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || v < 0 {
		return fmt.Errorf("must be a whole number of 0 or more")
	}
	return nil
}

func patternIndexes(p domain.WeekdayPattern) []int {
	var out []int
	for i, on := range p {
		if on {
			out = append(out, i)
		}
	}
	return out
}

func patternFromIndexes(days []int) domain.WeekdayPattern {
	var p domain.WeekdayPattern
	for _, i := range days {
		if i >= 0 && i < len(p) {
			p[i] = true
		}
	}
	return p
}
