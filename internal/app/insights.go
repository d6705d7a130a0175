package app

import (
	"github.com/alexanderramin/cadence/internal/analytics"
	"github.com/alexanderramin/cadence/internal/calendar"
)

type InsightsRequest struct {
	ActivityID string
	Today      calendar.Date
	TrendDays  int
	HeatDays   int
}

// NewInsightsRequest returns a request with the default 7-day trend and
// 30-day heat strip.
func NewInsightsRequest(activityID string, today calendar.Date) InsightsRequest {
	return InsightsRequest{
		ActivityID: activityID,
		Today:      today,
		TrendDays:  7,
		HeatDays:   30,
	}
}

type InsightsResponse struct {
	ActivityID string
	Name       string
	Today      calendar.Date

	Weekdays     analytics.WeekdayRates
	BestWorst    analytics.BestWorst
	HasBestWorst bool

	Trend      []analytics.DayStatus
	TrendTally analytics.WindowTally
	Heat       []analytics.DayStatus
	HeatTally  analytics.WindowTally

	Streaks analytics.Streaks
}
