package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/cadence/internal/domain"
	"github.com/alexanderramin/cadence/internal/repository"
)

type profileService struct {
	profiles repository.TrackerProfileRepo
	observer UseCaseObserver
}

func NewProfileService(profiles repository.TrackerProfileRepo, observers ...UseCaseObserver) ProfileService {
	return &profileService{profiles: profiles, observer: useCaseObserverOrNoop(observers)}
}

// Get returns the stored profile, or the defaults when none is stored.
func (s *profileService) Get(ctx context.Context) (*domain.TrackerProfile, error) {
	_, profile, err := loadPolicy(ctx, s.profiles)
	return profile, err
}

func (s *profileService) Update(ctx context.Context, p *domain.TrackerProfile) (err error) {
	fields := map[string]any{
		"on_track_tolerance":       p.OnTrackTolerance,
		"skip_preserves_streak":    p.SkipPreservesStreak,
		"skip_exempts_penalty":     p.SkipExemptsPenalty,
		"strict_completion_window": p.StrictCompletionWindow,
	}
	defer observeUseCase(ctx, s.observer, "profile-update", time.Now().UTC(), fields, &err)

	if p.OnTrackTolerance < 0 {
		return fmt.Errorf("on-track tolerance must be >= 0, got %d", p.OnTrackTolerance)
	}
	if p.ID == "" {
		p.ID = domain.DefaultTrackerProfile().ID
	}
	return s.profiles.Upsert(ctx, p)
}
