package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/cadence/internal/analytics"
	"github.com/alexanderramin/cadence/internal/app"
	"github.com/alexanderramin/cadence/internal/calendar"
)

const weekdayChartWidth = 16

// FormatInsights renders the weekday chart, trend bar and heat strip of one
// activity.
func FormatInsights(resp *app.InsightsResponse) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s  %s\n\n", Bold(resp.Name), TruncID(resp.ActivityID))

	b.WriteString(Header("By weekday") + "\n")
	b.WriteString(RenderWeekdayChart(resp.Weekdays, weekdayChartWidth))
	if resp.HasBestWorst {
		bw := resp.BestWorst
		fmt.Fprintf(&b, "Best %s (%s) · worst %s (%s)\n",
			calendar.WeekdayNames[bw.Best], ratePercent(bw.BestRate),
			calendar.WeekdayNames[bw.Worst], ratePercent(bw.WorstRate))
	} else {
		b.WriteString(Dim("No planned days yet") + "\n")
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "%s\n", Header(fmt.Sprintf("Last %d days", len(resp.Trend))))
	b.WriteString(RenderTrend(resp.Trend) + "\n")
	b.WriteString(tallyLine(resp.TrendTally) + "\n\n")

	fmt.Fprintf(&b, "%s\n", Header(fmt.Sprintf("Last %d days", len(resp.Heat))))
	b.WriteString(RenderHeatStrip(resp.Heat) + "\n")
	b.WriteString(tallyLine(resp.HeatTally) + "\n\n")

	fmt.Fprintf(&b, "Streak %d · best %d\n", resp.Streaks.Current, resp.Streaks.Longest)
	b.WriteString(Legend())

	return RenderBox("Insights", b.String())
}

// FormatWindow renders a day-by-day listing of a window, newest last.
func FormatWindow(name string, window []analytics.DayStatus) string {
	if len(window) == 0 {
		return Dim("Empty window.") + "\n"
	}

	rows := make([][]string, 0, len(window))
	for _, d := range window {
		rows = append(rows, []string{
			d.Date.String(),
			calendar.WeekdayNames[d.Date.WeekdayIndex()],
			DayGlyph(d),
			dayLabel(d),
		})
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\n", Bold(name))
	b.WriteString(RenderTable([]string{"DATE", "DAY", "", "STATE"}, rows))
	b.WriteString("\n" + tallyLine(analytics.Tally(window)) + "\n")
	return b.String()
}

func dayLabel(d analytics.DayStatus) string {
	switch {
	case d.Completed && !d.Planned:
		return "done (unplanned)"
	case d.Completed:
		return "done"
	case d.Planned && d.Skipped:
		return "skipped"
	case d.Missed():
		return "missed"
	case d.Planned && d.IsToday:
		return "due today"
	case d.Planned:
		return "planned"
	default:
		return Dim("off")
	}
}

func tallyLine(t analytics.WindowTally) string {
	return Dim(fmt.Sprintf("%d planned · %d done · %d skipped · %d missed",
		t.Planned, t.Completed, t.Skipped, t.Missed))
}

func ratePercent(r float64) string {
	return fmt.Sprintf("%.0f%%", r*100)
}
