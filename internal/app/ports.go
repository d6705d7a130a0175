package app

import (
	"context"
	"io"

	"github.com/alexanderramin/cadence/internal/calendar"
	"github.com/alexanderramin/cadence/internal/importer"
)

type StatusUseCase interface {
	ActivityStatus(ctx context.Context, activityID string, today calendar.Date) (*ActivityStatusView, error)
	Overview(ctx context.Context, req StatusRequest) (*OverviewResponse, error)
}

type InsightsUseCase interface {
	Insights(ctx context.Context, req InsightsRequest) (*InsightsResponse, error)
}

type DueTodayUseCase interface {
	DueToday(ctx context.Context, today calendar.Date) ([]DueTodayItem, error)
}

type CheckInUseCase interface {
	MarkComplete(ctx context.Context, req CheckInRequest) (*CheckInResult, error)
	Unmark(ctx context.Context, req CheckInRequest) (*CheckInResult, error)
	Toggle(ctx context.Context, req CheckInRequest) (*CheckInResult, error)
	Skip(ctx context.Context, req CheckInRequest) (*CheckInResult, error)
	Unskip(ctx context.Context, req CheckInRequest) (*CheckInResult, error)
}

type ImportActivitiesUseCase interface {
	Import(ctx context.Context, filePath string) (*ImportResult, error)
	ImportSchema(ctx context.Context, schema *importer.ImportSchema) (*ImportResult, error)
}

type ExportActivitiesUseCase interface {
	Export(ctx context.Context, w io.Writer, format importer.Format) (int, error)
}
