package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/cadence/internal/calendar"
	"github.com/alexanderramin/cadence/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		titleRendered := StyleHeader.Render(strings.ToUpper(title))
		inner := titleRendered + "\n\n" + content
		return boxStyle.Render(inner)
	}

	return boxStyle.Render(content)
}

// RelativeDay describes d relative to today in whole calendar days.
func RelativeDay(d, today calendar.Date) string {
	days := calendar.DaysBetween(today, d)

	switch {
	case days == 0:
		return "Today"
	case days == 1:
		return "Tomorrow"
	case days == -1:
		return "Yesterday"
	case days > 0 && days < 14:
		return fmt.Sprintf("In %dd", days)
	case days > 0 && days < 60:
		return fmt.Sprintf("In %dw", days/7)
	case days > 0:
		return fmt.Sprintf("In %dmo", days/30)
	case days < 0 && days > -14:
		return fmt.Sprintf("%dd ago", -days)
	case days < 0 && days > -60:
		return fmt.Sprintf("%dw ago", -days/7)
	default:
		return fmt.Sprintf("%dmo ago", -days/30)
	}
}

// HumanDay formats d like "Mon Jan 8, 2024".
func HumanDay(d calendar.Date) string {
	return d.Time().Format("Mon Jan 2, 2006")
}

// StatusPill returns a colored status indicator for an activity.
func StatusPill(status domain.ActivityStatus) string {
	switch status {
	case domain.ActivityActive:
		return StyleGreen.Render("● Active")
	case domain.ActivityArchived:
		return StyleDim.Render("✖ Archived")
	default:
		return StyleDim.Render(string(status))
	}
}

// PriorityBadge colors the priority: red high, yellow medium, dim low.
func PriorityBadge(p domain.Priority) string {
	switch p {
	case domain.PriorityHigh:
		return StyleRed.Render("high")
	case domain.PriorityMedium:
		return StyleYellow.Render("medium")
	case domain.PriorityLow:
		return StyleDim.Render("low")
	default:
		return StyleDim.Render("--")
	}
}

// CategoryBadge returns a capitalized, purple-styled category label.
func CategoryBadge(c string) string {
	if c == "" {
		return StyleDim.Render("--")
	}
	label := strings.ToUpper(c[:1]) + c[1:]
	return StylePurple.Render(label)
}

// TruncID returns the first 8 characters of an ID, dimmed.
func TruncID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return StyleDim.Render(id)
}

// ScheduleLine summarizes a schedule like "mon,wed,fri ×12 · 2024-01-01 → 2024-01-26".
func ScheduleLine(s domain.RecurrenceSchedule) string {
	days := s.Pattern.String()
	if days == "" {
		days = "none"
	}
	return fmt.Sprintf("%s ×%d · %s → %s", days, s.TargetOccurrences, s.StartDate, s.EndDate)
}

// Check renders a yes/no mark.
func Check(ok bool) string {
	if ok {
		return StyleGreen.Render("✔")
	}
	return StyleDim.Render("–")
}

// Truncate shortens s to at most width terminal cells, ending in "…" when
// anything was cut. Wide runes that would straddle the limit are dropped.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if lipgloss.Width(s) <= width {
		return s
	}
	return lipgloss.NewStyle().MaxWidth(width-1).Render(s) + "…"
}

// PadRight pads s with spaces to width terminal cells.
func PadRight(s string, width int) string {
	return s + strings.Repeat(" ", max(0, width-lipgloss.Width(s)))
}
