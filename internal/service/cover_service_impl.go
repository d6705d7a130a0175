package service

import (
	"context"
	"errors"
	"strings"

	"github.com/alexanderramin/cadence/internal/repository"
)

type coverService struct {
	activities repository.ActivityRepo
	covers     repository.CoverRepo
}

func NewCoverService(activities repository.ActivityRepo, covers repository.CoverRepo) CoverService {
	return &coverService{activities: activities, covers: covers}
}

// Get returns the cover of an activity, or "" when none is set.
func (s *coverService) Get(ctx context.Context, activityID string) (string, error) {
	if _, err := s.activities.GetByID(ctx, activityID); err != nil {
		return "", err
	}
	cover, err := s.covers.Get(ctx, activityID)
	if errors.Is(err, repository.ErrNotFound) {
		return "", nil
	}
	return cover, err
}

// Set stores the cover reference. A blank value clears it.
func (s *coverService) Set(ctx context.Context, activityID, cover string) error {
	if _, err := s.activities.GetByID(ctx, activityID); err != nil {
		return err
	}
	return s.covers.Set(ctx, activityID, strings.TrimSpace(cover))
}
