package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/cadence/internal/app"
	"github.com/alexanderramin/cadence/internal/domain"
)

// FormatActivityList renders activities as a table.
func FormatActivityList(activities []*domain.Activity) string {
	if len(activities) == 0 {
		return Dim("No activities found.") + "\n"
	}

	headers := []string{"ID", "NAME", "CATEGORY", "PRIORITY", "SCHEDULE", "STATUS"}
	rows := make([][]string, 0, len(activities))
	for _, a := range activities {
		rows = append(rows, []string{
			TruncID(a.ID),
			Bold(a.Name),
			CategoryBadge(a.Category),
			PriorityBadge(a.Priority),
			ScheduleLine(a.Schedule),
			StatusPill(a.Status),
		})
	}
	return RenderTable(headers, rows)
}

// FormatActivity renders the stored fields of one activity.
func FormatActivity(a *domain.Activity) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s  %s\n", Bold(a.Name), TruncID(a.ID), StatusPill(a.Status))
	fmt.Fprintf(&b, "Category:  %s\n", CategoryBadge(a.Category))
	fmt.Fprintf(&b, "Priority:  %s\n", PriorityBadge(a.Priority))
	fmt.Fprintf(&b, "Schedule:  %s\n", ScheduleLine(a.Schedule))
	if a.Description != "" {
		fmt.Fprintf(&b, "\n%s\n", a.Description)
	}
	return b.String()
}

// FormatDueToday lists what is planned on one day.
func FormatDueToday(items []app.DueTodayItem) string {
	if len(items) == 0 {
		return Dim("Nothing planned today.") + "\n"
	}

	rows := make([][]string, 0, len(items))
	done := 0
	for _, it := range items {
		state := StyleBlue.Render("due")
		switch {
		case it.Completed:
			state = StyleGreen.Render("done")
			done++
		case it.Skipped:
			state = StyleYellow.Render("skipped")
		}
		rows = append(rows, []string{
			Check(it.Completed),
			TruncID(it.ActivityID),
			Bold(it.Name),
			state,
			fmt.Sprintf("%d", it.CurrentStreak),
			it.Note,
		})
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s  %d/%d done\n\n", Header(HumanDay(items[0].Date)), done, len(items))
	b.WriteString(Table{
		Headers:    []string{"", "ID", "NAME", "STATE", "STREAK", "NOTE"},
		Rows:       rows,
		RightAlign: map[int]bool{4: true},
	}.Render())
	return b.String()
}

// FormatCheckIn renders a one-line confirmation of a check-in write.
func FormatCheckIn(name string, res *app.CheckInResult) string {
	var state string
	switch {
	case res.Completed && res.Skipped:
		state = "done (also marked skipped)"
	case res.Completed:
		state = StyleGreen.Render("done")
	case res.Skipped:
		state = StyleYellow.Render("skipped")
	default:
		state = "open"
	}
	line := fmt.Sprintf("%s %s: %s", Bold(name), res.Date, state)
	if !res.Planned {
		line += Dim(" (not a planned day)")
	}
	return line + "\n"
}

// FormatProfile renders the tracker policy.
func FormatProfile(p *domain.TrackerProfile) string {
	var b strings.Builder
	fmt.Fprintf(&b, "On-track tolerance:        %d\n", p.OnTrackTolerance)
	fmt.Fprintf(&b, "Skip preserves streak:     %s\n", yesNo(p.SkipPreservesStreak))
	fmt.Fprintf(&b, "Skip exempts penalty:      %s\n", yesNo(p.SkipExemptsPenalty))
	fmt.Fprintf(&b, "Strict completion window:  %s\n", yesNo(p.StrictCompletionWindow))
	return RenderBox("Profile", b.String())
}

// FormatImportResult summarizes what an import wrote.
func FormatImportResult(res *app.ImportResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Imported %d %s (%d completions, %d skips, %d notes)\n",
		len(res.Activities), plural(len(res.Activities), "activity", "activities"),
		res.Completions, res.Skips, res.Notes)
	for _, a := range res.Activities {
		fmt.Fprintf(&b, "  %s  %s  %s\n", TruncID(a.ID), a.Name, Dim(ScheduleLine(a.Schedule)))
	}
	return b.String()
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
