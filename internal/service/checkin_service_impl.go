package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/cadence/internal/app"
	"github.com/alexanderramin/cadence/internal/calendar"
	"github.com/alexanderramin/cadence/internal/db"
	"github.com/alexanderramin/cadence/internal/domain"
	"github.com/alexanderramin/cadence/internal/repository"
	"github.com/alexanderramin/cadence/internal/schedule"
)

type checkInService struct {
	completions repository.CompletionRepo
	uow         db.UnitOfWork
	locks       *ActivityLocks
	observer    UseCaseObserver
}

func NewCheckInService(
	completions repository.CompletionRepo,
	uow db.UnitOfWork,
	locks *ActivityLocks,
	observers ...UseCaseObserver,
) CheckInService {
	return &checkInService{
		completions: completions,
		uow:         uow,
		locks:       locksOrNew(locks),
		observer:    useCaseObserverOrNoop(observers),
	}
}

// checkInOp is one write against the stored state of a day. It receives the
// current state so toggles can decide what to write.
type checkInOp func(ctx context.Context, repo *repository.SQLiteCompletionRepo, state *domain.CompletionState, day calendar.Date) error

// checkInSpec names a check-in use case. requiresPlanned reports whether the
// op creates a record that the strict completion window rejects on an
// unplanned day.
type checkInSpec struct {
	name            string
	requiresPlanned func(state *domain.CompletionState, day calendar.Date) bool
	op              checkInOp
}

func (s *checkInService) MarkComplete(ctx context.Context, req app.CheckInRequest) (*app.CheckInResult, error) {
	return s.apply(ctx, req, checkInSpec{
		name:            "checkin-mark",
		requiresPlanned: always,
		op: func(ctx context.Context, repo *repository.SQLiteCompletionRepo, _ *domain.CompletionState, day calendar.Date) error {
			return repo.SetCompleted(ctx, req.ActivityID, day)
		},
	})
}

func (s *checkInService) Unmark(ctx context.Context, req app.CheckInRequest) (*app.CheckInResult, error) {
	return s.apply(ctx, req, checkInSpec{
		name:            "checkin-unmark",
		requiresPlanned: never,
		op: func(ctx context.Context, repo *repository.SQLiteCompletionRepo, _ *domain.CompletionState, day calendar.Date) error {
			return repo.ClearCompleted(ctx, req.ActivityID, day)
		},
	})
}

func (s *checkInService) Toggle(ctx context.Context, req app.CheckInRequest) (*app.CheckInResult, error) {
	return s.apply(ctx, req, checkInSpec{
		name: "checkin-toggle",
		requiresPlanned: func(state *domain.CompletionState, day calendar.Date) bool {
			return !state.IsComplete(day)
		},
		op: func(ctx context.Context, repo *repository.SQLiteCompletionRepo, state *domain.CompletionState, day calendar.Date) error {
			if state.IsComplete(day) {
				return repo.ClearCompleted(ctx, req.ActivityID, day)
			}
			return repo.SetCompleted(ctx, req.ActivityID, day)
		},
	})
}

func (s *checkInService) Skip(ctx context.Context, req app.CheckInRequest) (*app.CheckInResult, error) {
	return s.apply(ctx, req, checkInSpec{
		name:            "checkin-skip",
		requiresPlanned: always,
		op: func(ctx context.Context, repo *repository.SQLiteCompletionRepo, _ *domain.CompletionState, day calendar.Date) error {
			return repo.SetSkipped(ctx, req.ActivityID, day)
		},
	})
}

func (s *checkInService) Unskip(ctx context.Context, req app.CheckInRequest) (*app.CheckInResult, error) {
	return s.apply(ctx, req, checkInSpec{
		name:            "checkin-unskip",
		requiresPlanned: never,
		op: func(ctx context.Context, repo *repository.SQLiteCompletionRepo, _ *domain.CompletionState, day calendar.Date) error {
			return repo.ClearSkipped(ctx, req.ActivityID, day)
		},
	})
}

// SetNote stores text for the day. Blank text removes the note. Notes are
// allowed on any day regardless of the completion window.
func (s *checkInService) SetNote(ctx context.Context, req app.CheckInRequest, text string) error {
	_, err := s.apply(ctx, req, checkInSpec{
		name:            "checkin-note",
		requiresPlanned: never,
		op: func(ctx context.Context, repo *repository.SQLiteCompletionRepo, _ *domain.CompletionState, day calendar.Date) error {
			if strings.TrimSpace(text) == "" {
				return repo.ClearNote(ctx, req.ActivityID, day)
			}
			return repo.SetNote(ctx, req.ActivityID, day, text)
		},
	})
	return err
}

// History loads the full completion state of an activity under its read
// lock.
func (s *checkInService) History(ctx context.Context, activityID string) (*domain.CompletionState, error) {
	unlock := s.locks.RLock(activityID)
	defer unlock()
	return s.completions.Load(ctx, activityID)
}

func (s *checkInService) apply(ctx context.Context, req app.CheckInRequest, spec checkInSpec) (result *app.CheckInResult, err error) {
	fields := map[string]any{
		"activity_id": req.ActivityID,
		"date":        req.Date.String(),
	}
	defer observeUseCase(ctx, s.observer, spec.name, time.Now().UTC(), fields, &err)

	if req.Date.IsZero() {
		return nil, fmt.Errorf("check-in date is required")
	}

	unlock := s.locks.Lock(req.ActivityID)
	defer unlock()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		activity, err := repository.NewSQLiteActivityRepo(tx).GetByID(ctx, req.ActivityID)
		if err != nil {
			return err
		}
		_, profile, err := loadPolicy(ctx, repository.NewSQLiteTrackerProfileRepo(tx))
		if err != nil {
			return err
		}
		repo := repository.NewSQLiteCompletionRepo(tx)
		state, err := repo.Load(ctx, req.ActivityID)
		if err != nil {
			return err
		}

		planned := schedule.IsPlanned(activity.Schedule, req.Date)
		if profile.StrictCompletionWindow && !planned && spec.requiresPlanned(state, req.Date) {
			return fmt.Errorf("%w: %s is not a planned day of %q", domain.ErrDateNotPlanned, req.Date, activity.Name)
		}

		if err := spec.op(ctx, repo, state, req.Date); err != nil {
			return err
		}
		after, err := repo.Load(ctx, req.ActivityID)
		if err != nil {
			return err
		}
		result = &app.CheckInResult{
			ActivityID: req.ActivityID,
			Date:       req.Date,
			Planned:    planned,
			Completed:  after.IsComplete(req.Date),
			Skipped:    after.IsSkipped(req.Date),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	fields["completed"] = result.Completed
	fields["skipped"] = result.Skipped
	return result, nil
}

func always(*domain.CompletionState, calendar.Date) bool { return true }
func never(*domain.CompletionState, calendar.Date) bool  { return false }
