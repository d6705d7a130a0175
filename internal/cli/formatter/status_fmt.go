package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/cadence/internal/app"
)

const statusProgressBarWidth = 10

// FormatOverview renders the status dashboard of every activity.
func FormatOverview(resp *app.OverviewResponse) string {
	var b strings.Builder

	headers := []string{"ID", "NAME", "TODAY", "PROGRESS", "DONE", "STREAK", "TRACK"}
	rows := make([][]string, 0, len(resp.Activities))
	for _, a := range resp.Activities {
		p := a.Progress
		rows = append(rows, []string{
			TruncID(a.ActivityID),
			Bold(a.Name),
			todayCell(a),
			RenderProgress(p.CompletionPercent, statusProgressBarWidth),
			fmt.Sprintf("%d/%d", p.CompletedTotal, p.ScheduledTotal),
			fmt.Sprintf("%d", p.Streaks.Current),
			OnTrackIndicator(p.Status),
		})
	}
	b.WriteString(Table{Headers: headers, Rows: rows, RightAlign: map[int]bool{4: true, 5: true}}.Render())

	s := resp.Summary
	b.WriteString("\n")
	parts := []string{
		StyleRed.Render(fmt.Sprintf("%d Behind", s.CountsBehind)),
		StyleGreen.Render(fmt.Sprintf("%d On Track", s.CountsOnTrack)),
		StyleBlue.Render(fmt.Sprintf("%d Ahead", s.CountsAhead)),
		Dim(fmt.Sprintf("%d Upcoming", s.CountsUpcoming)),
	}
	b.WriteString(strings.Join(parts, ", ") + "\n")
	fmt.Fprintf(&b, "Today %s: %d/%d done · overall %d%%\n", s.Today, s.DoneToday, s.DueToday, s.CompletionPct)

	if len(resp.Warnings) > 0 {
		b.WriteString("\n")
		for _, w := range resp.Warnings {
			b.WriteString(StyleYellow.Render(fmt.Sprintf("  WARNING: %s", w)) + "\n")
		}
	}

	return RenderBox("Status", b.String())
}

func todayCell(a app.ActivityStatusView) string {
	switch {
	case !a.PlannedToday:
		return Dim("off")
	case a.CompletedToday:
		return StyleGreen.Render("done")
	case a.SkippedToday:
		return StyleYellow.Render("skipped")
	default:
		return StyleBlue.Render("due")
	}
}

// FormatActivityStatus renders the detail view of one activity.
func FormatActivityStatus(v *app.ActivityStatusView) string {
	var b strings.Builder
	p := v.Progress

	fmt.Fprintf(&b, "%s  %s  %s\n", Bold(v.Name), TruncID(v.ActivityID), StatusPill(v.Status))
	fmt.Fprintf(&b, "%s · %s\n", CategoryBadge(v.Category), PriorityBadge(v.Priority))
	fmt.Fprintf(&b, "%s\n", Dim(ScheduleLine(v.Schedule)))
	if v.Cover != "" {
		fmt.Fprintf(&b, "Cover: %s\n", v.Cover)
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "%s  %s\n", RenderProgress(p.CompletionPercent, 20), OnTrackIndicator(p.Status))
	fmt.Fprintf(&b, "Completed %d of %d · %d due so far · %d missed", p.CompletedTotal, p.ScheduledTotal, p.ScheduledPast, p.MissedTotal)
	if p.Excused > 0 {
		fmt.Fprintf(&b, " · %d excused", p.Excused)
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "Sessions left %d · days left %d\n", p.SessionsLeft, p.DaysLeft)
	fmt.Fprintf(&b, "Streak %d · best %d\n", p.Streaks.Current, p.Streaks.Longest)
	b.WriteString("\n")

	fmt.Fprintf(&b, "Today %s: %s\n", v.Today, todayCell(*v))
	if v.NoteToday != "" {
		fmt.Fprintf(&b, "Note: %s\n", v.NoteToday)
	}
	if v.HasNextPlanned {
		fmt.Fprintf(&b, "Next: %s (%s)\n", HumanDay(v.NextPlanned), RelativeDay(v.NextPlanned, v.Today))
	} else {
		b.WriteString(Dim("No planned days left") + "\n")
	}

	return RenderBox("Activity", b.String())
}
