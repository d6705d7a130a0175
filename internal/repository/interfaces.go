package repository

import (
	"context"
	"errors"

	"github.com/alexanderramin/cadence/internal/calendar"
	"github.com/alexanderramin/cadence/internal/domain"
)

var (
	// ErrNotFound is returned when a requested row does not exist.
	ErrNotFound = errors.New("not found")
	// ErrAmbiguousID is returned when an ID prefix matches more than one row.
	ErrAmbiguousID = errors.New("ambiguous id prefix")
)

type ActivityRepo interface {
	Create(ctx context.Context, a *domain.Activity) error
	GetByID(ctx context.Context, id string) (*domain.Activity, error)
	ResolveID(ctx context.Context, prefix string) (string, error)
	List(ctx context.Context, includeArchived bool) ([]*domain.Activity, error)
	Update(ctx context.Context, a *domain.Activity) error
	Archive(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

// CompletionRepo stores the per-day completion, skip and note records of
// activities. Setters are idempotent.
type CompletionRepo interface {
	SetCompleted(ctx context.Context, activityID string, day calendar.Date) error
	ClearCompleted(ctx context.Context, activityID string, day calendar.Date) error
	SetSkipped(ctx context.Context, activityID string, day calendar.Date) error
	ClearSkipped(ctx context.Context, activityID string, day calendar.Date) error
	SetNote(ctx context.Context, activityID string, day calendar.Date, note string) error
	ClearNote(ctx context.Context, activityID string, day calendar.Date) error
	Load(ctx context.Context, activityID string) (*domain.CompletionState, error)
}

// CoverRepo is keyed side storage for an activity's cover image reference.
type CoverRepo interface {
	Get(ctx context.Context, activityID string) (string, error)
	Set(ctx context.Context, activityID, cover string) error
}

type TrackerProfileRepo interface {
	Get(ctx context.Context) (*domain.TrackerProfile, error)
	Upsert(ctx context.Context, p *domain.TrackerProfile) error
}
