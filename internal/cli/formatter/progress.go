package formatter

import (
	"fmt"
	"math"
	"strings"

	"github.com/alexanderramin/cadence/internal/analytics"
	"github.com/alexanderramin/cadence/internal/calendar"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// Day glyphs used by heat strips and trend bars.
const (
	glyphCompleted = "●"
	glyphSkipped   = "◌"
	glyphMissed    = "✗"
	glyphOpen      = "○"
	glyphOff       = "·"
)

// RenderProgress renders a progress bar like [████░░░░]  45% for a percent
// in 0..100. The bar is colored green from 66%, yellow from 33%, red below.
func RenderProgress(pct int, width int) string {
	pct = min(100, max(0, pct))
	if width < 2 {
		width = 2
	}

	filled := pct * width / 100
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)

	style := StyleGreen
	if pct < 33 {
		style = StyleRed
	} else if pct < 66 {
		style = StyleYellow
	}
	return fmt.Sprintf("[%s] %3d%%", style.Render(bar), pct)
}

// DayGlyph renders one day of a window: completed, skipped, missed, open
// (planned today or later) or unplanned.
func DayGlyph(d analytics.DayStatus) string {
	switch {
	case d.Completed:
		return StyleGreen.Render(glyphCompleted)
	case d.Planned && d.Skipped:
		return StyleYellow.Render(glyphSkipped)
	case d.Missed():
		return StyleRed.Render(glyphMissed)
	case d.Planned:
		return StyleBlue.Render(glyphOpen)
	default:
		return StyleDim.Render(glyphOff)
	}
}

// RenderHeatStrip renders a window as one glyph per day, oldest first.
func RenderHeatStrip(window []analytics.DayStatus) string {
	var b strings.Builder
	for _, d := range window {
		b.WriteString(DayGlyph(d))
	}
	return b.String()
}

// RenderTrend renders a short window with a weekday initial above each glyph.
func RenderTrend(window []analytics.DayStatus) string {
	var top, bottom strings.Builder
	for i, d := range window {
		if i > 0 {
			top.WriteString(" ")
			bottom.WriteString(" ")
		}
		initial := calendar.WeekdayNames[d.Date.WeekdayIndex()][:1]
		if d.IsToday {
			top.WriteString(StyleHeader.Render(initial))
		} else {
			top.WriteString(Dim(initial))
		}
		bottom.WriteString(DayGlyph(d))
	}
	return top.String() + "\n" + bottom.String()
}

// RenderWeekdayChart renders one bar per weekday with its completion rate.
// Weekdays with nothing planned show "--".
func RenderWeekdayChart(w analytics.WeekdayRates, width int) string {
	var b strings.Builder
	for i, name := range calendar.WeekdayNames {
		if !w.Defined(i) {
			fmt.Fprintf(&b, "%s  %s\n", name, Dim("--"))
			continue
		}
		pct := int(math.Round(w.Rate[i] * 100))
		fmt.Fprintf(&b, "%s  %s  %s\n", name, RenderProgress(pct, width),
			Dim(fmt.Sprintf("%d/%d", w.Completed[i], w.Planned[i])))
	}
	return b.String()
}

// Legend explains the day glyphs.
func Legend() string {
	return Dim(fmt.Sprintf("%s done  %s skipped  %s missed  %s open  %s off",
		glyphCompleted, glyphSkipped, glyphMissed, glyphOpen, glyphOff))
}
