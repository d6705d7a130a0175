package formatter

import (
	"strings"
	"testing"

	"github.com/alexanderramin/cadence/internal/analytics"
	"github.com/stretchr/testify/assert"
)

func TestRenderProgress(t *testing.T) {
	tests := []struct {
		name  string
		pct   int
		width int
		want  string
	}{
		{"empty", 0, 10, "[░░░░░░░░░░]   0%"},
		{"half", 50, 10, "[█████░░░░░]  50%"},
		{"full", 100, 4, "[████] 100%"},
		{"clamps high", 150, 4, "[████] 100%"},
		{"clamps low", -5, 4, "[░░░░]   0%"},
		{"tiny width", 50, 1, "[█░]  50%"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, stripANSI(RenderProgress(tt.pct, tt.width)))
		})
	}
}

func TestDayGlyph(t *testing.T) {
	d := day("2024-01-03")
	tests := []struct {
		name string
		cell analytics.DayStatus
		want string
	}{
		{"completed", analytics.DayStatus{Date: d, Planned: true, Completed: true}, "●"},
		{"completed unplanned", analytics.DayStatus{Date: d, Completed: true}, "●"},
		{"skipped", analytics.DayStatus{Date: d, Planned: true, Skipped: true}, "◌"},
		{"missed", analytics.DayStatus{Date: d, Planned: true}, "✗"},
		{"due today", analytics.DayStatus{Date: d, Planned: true, IsToday: true}, "○"},
		{"off", analytics.DayStatus{Date: d}, "·"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, stripANSI(DayGlyph(tt.cell)))
		})
	}
}

func TestRenderTrend(t *testing.T) {
	window := []analytics.DayStatus{
		{Date: day("2024-01-06")},
		{Date: day("2024-01-07")},
		{Date: day("2024-01-08"), Planned: true, Completed: true, IsToday: true},
	}
	out := stripANSI(RenderTrend(window))

	lines := strings.Split(out, "\n")
	assert.Equal(t, []string{"S S M", "· · ●"}, lines)
}

func TestRenderWeekdayChart(t *testing.T) {
	w := analytics.WeekdayRates{}
	w.Planned[0], w.Completed[0], w.Rate[0] = 3, 2, 2.0/3.0

	out := stripANSI(RenderWeekdayChart(w, 3))

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Len(t, lines, 7)
	assert.Equal(t, "Mon  [██░]  67%  2/3", lines[0])
	assert.Equal(t, "Tue  --", lines[1])
}

func TestLegend(t *testing.T) {
	out := stripANSI(Legend())
	for _, want := range []string{"done", "skipped", "missed", "open", "off"} {
		assert.Contains(t, out, want)
	}
}
