package service

import (
	"context"
	"errors"
	"sync"

	"github.com/alexanderramin/cadence/internal/analytics"
	"github.com/alexanderramin/cadence/internal/domain"
	"github.com/alexanderramin/cadence/internal/repository"
)

// ActivityLocks serializes writes per activity while letting readers of the
// same activity, and any work on other activities, proceed in parallel.
// Services that share an ActivityLocks see each other's writes atomically.
type ActivityLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.RWMutex
}

func NewActivityLocks() *ActivityLocks {
	return &ActivityLocks{locks: make(map[string]*sync.RWMutex)}
}

func (l *ActivityLocks) get(id string) *sync.RWMutex {
	l.mu.Lock()
	defer l.mu.Unlock()
	m, ok := l.locks[id]
	if !ok {
		m = &sync.RWMutex{}
		l.locks[id] = m
	}
	return m
}

// Lock takes the write lock of id and returns its release func.
func (l *ActivityLocks) Lock(id string) func() {
	m := l.get(id)
	m.Lock()
	return m.Unlock
}

// RLock takes the read lock of id and returns its release func.
func (l *ActivityLocks) RLock(id string) func() {
	m := l.get(id)
	m.RLock()
	return m.RUnlock
}

// Forget drops the lock entry of a deleted activity. Call it while holding
// the write lock; goroutines already waiting on the old entry still get it.
func (l *ActivityLocks) Forget(id string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.locks, id)
}

func locksOrNew(l *ActivityLocks) *ActivityLocks {
	if l == nil {
		return NewActivityLocks()
	}
	return l
}

// loadPolicy reads the tracker profile and falls back to the default policy
// when the row is missing.
func loadPolicy(ctx context.Context, profiles repository.TrackerProfileRepo) (analytics.Policy, *domain.TrackerProfile, error) {
	profile, err := profiles.Get(ctx)
	if errors.Is(err, repository.ErrNotFound) {
		profile = domain.DefaultTrackerProfile()
	} else if err != nil {
		return analytics.Policy{}, nil, err
	}
	return analytics.PolicyFromProfile(profile), profile, nil
}
