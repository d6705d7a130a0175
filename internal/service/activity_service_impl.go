package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/cadence/internal/calendar"
	"github.com/alexanderramin/cadence/internal/db"
	"github.com/alexanderramin/cadence/internal/domain"
	"github.com/alexanderramin/cadence/internal/repository"
	"github.com/alexanderramin/cadence/internal/schedule"
	"github.com/google/uuid"
)

type activityService struct {
	activities repository.ActivityRepo
	uow        db.UnitOfWork
	locks      *ActivityLocks
	observer   UseCaseObserver
}

func NewActivityService(
	activities repository.ActivityRepo,
	uow db.UnitOfWork,
	locks *ActivityLocks,
	observers ...UseCaseObserver,
) ActivityService {
	return &activityService{
		activities: activities,
		uow:        uow,
		locks:      locksOrNew(locks),
		observer:   useCaseObserverOrNoop(observers),
	}
}

func (s *activityService) Create(ctx context.Context, a *domain.Activity) (err error) {
	defer observeUseCase(ctx, s.observer, "activity-create", time.Now().UTC(), map[string]any{"name": a.Name}, &err)

	a.Name = strings.TrimSpace(a.Name)
	if err = a.Validate(); err != nil {
		return err
	}
	sched, err := schedule.New(a.Schedule.StartDate, a.Schedule.Pattern, a.Schedule.TargetOccurrences)
	if err != nil {
		return fmt.Errorf("activity %q: %w", a.Name, err)
	}
	a.Schedule = sched

	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	if a.Priority == "" {
		a.Priority = domain.PriorityMedium
	}
	if a.Status == "" {
		a.Status = domain.ActivityActive
	}
	now := time.Now().UTC()
	a.CreatedAt = now
	a.UpdatedAt = now
	return s.activities.Create(ctx, a)
}

func (s *activityService) GetByID(ctx context.Context, id string) (*domain.Activity, error) {
	return s.activities.GetByID(ctx, id)
}

// Resolve accepts a full ID or a unique ID prefix, such as the eight
// characters shown by DisplayID.
func (s *activityService) Resolve(ctx context.Context, idOrPrefix string) (string, error) {
	return s.activities.ResolveID(ctx, strings.TrimSpace(idOrPrefix))
}

func (s *activityService) List(ctx context.Context, includeArchived bool) ([]*domain.Activity, error) {
	return s.activities.List(ctx, includeArchived)
}

// Update saves the descriptive fields. The schedule is changed through
// Reschedule only.
func (s *activityService) Update(ctx context.Context, a *domain.Activity) (err error) {
	defer observeUseCase(ctx, s.observer, "activity-update", time.Now().UTC(), map[string]any{"activity_id": a.ID}, &err)

	a.Name = strings.TrimSpace(a.Name)
	if err = a.Validate(); err != nil {
		return err
	}
	unlock := s.locks.Lock(a.ID)
	defer unlock()

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		repo := repository.NewSQLiteActivityRepo(tx)
		current, err := repo.GetByID(ctx, a.ID)
		if err != nil {
			return err
		}
		current.Name = a.Name
		current.Category = a.Category
		current.Priority = a.Priority
		current.Description = a.Description
		current.UpdatedAt = time.Now().UTC()
		if err := repo.Update(ctx, current); err != nil {
			return err
		}
		*a = *current
		return nil
	})
}

// Reschedule replaces the schedule of an activity. Completion history is
// kept as is; days that fall outside the new schedule simply stop counting.
func (s *activityService) Reschedule(ctx context.Context, id string, start calendar.Date, pattern domain.WeekdayPattern, target int) (a *domain.Activity, err error) {
	fields := map[string]any{"activity_id": id, "target": target}
	defer observeUseCase(ctx, s.observer, "activity-reschedule", time.Now().UTC(), fields, &err)

	sched, err := schedule.New(start, pattern, target)
	if err != nil {
		return nil, err
	}
	fields["end_date"] = sched.EndDate.String()

	unlock := s.locks.Lock(id)
	defer unlock()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		repo := repository.NewSQLiteActivityRepo(tx)
		current, err := repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		current.Schedule = sched
		current.UpdatedAt = time.Now().UTC()
		if err := repo.Update(ctx, current); err != nil {
			return err
		}
		a = current
		return nil
	})
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (s *activityService) Archive(ctx context.Context, id string) (err error) {
	defer observeUseCase(ctx, s.observer, "activity-archive", time.Now().UTC(), map[string]any{"activity_id": id}, &err)
	return s.activities.Archive(ctx, id)
}

// Delete removes an activity with its history. Active activities must be
// archived first unless force is set.
func (s *activityService) Delete(ctx context.Context, id string, force bool) (err error) {
	defer observeUseCase(ctx, s.observer, "activity-delete", time.Now().UTC(), map[string]any{"activity_id": id, "force": force}, &err)

	unlock := s.locks.Lock(id)
	defer unlock()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		repo := repository.NewSQLiteActivityRepo(tx)
		if !force {
			a, err := repo.GetByID(ctx, id)
			if err != nil {
				return err
			}
			if !a.IsArchived() {
				return fmt.Errorf("activity must be archived before deletion (use --force to override)")
			}
		}
		return repo.Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	s.locks.Forget(id)
	return nil
}
