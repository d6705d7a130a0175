package service

import (
	"context"

	"github.com/alexanderramin/cadence/internal/analytics"
	"github.com/alexanderramin/cadence/internal/app"
	"github.com/alexanderramin/cadence/internal/calendar"
	"github.com/alexanderramin/cadence/internal/domain"
)

type ActivityService interface {
	Create(ctx context.Context, a *domain.Activity) error
	GetByID(ctx context.Context, id string) (*domain.Activity, error)
	Resolve(ctx context.Context, idOrPrefix string) (string, error)
	List(ctx context.Context, includeArchived bool) ([]*domain.Activity, error)
	Update(ctx context.Context, a *domain.Activity) error
	Reschedule(ctx context.Context, id string, start calendar.Date, pattern domain.WeekdayPattern, target int) (*domain.Activity, error)
	Archive(ctx context.Context, id string) error
	Delete(ctx context.Context, id string, force bool) error
}

type CheckInService interface {
	app.CheckInUseCase
	SetNote(ctx context.Context, req app.CheckInRequest, text string) error
	History(ctx context.Context, activityID string) (*domain.CompletionState, error)
}

type AnalyticsService interface {
	app.StatusUseCase
	app.InsightsUseCase
	app.DueTodayUseCase
	Window(ctx context.Context, activityID string, today calendar.Date, days int) ([]analytics.DayStatus, error)
}

type ProfileService interface {
	Get(ctx context.Context) (*domain.TrackerProfile, error)
	Update(ctx context.Context, p *domain.TrackerProfile) error
}

type CoverService interface {
	Get(ctx context.Context, activityID string) (string, error)
	Set(ctx context.Context, activityID, cover string) error
}

type ImportService interface {
	app.ImportActivitiesUseCase
	app.ExportActivitiesUseCase
}
