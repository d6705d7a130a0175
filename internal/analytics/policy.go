// Package analytics derives streaks, progress and weekday insights from a
// recurrence schedule and a completion view. Every function is pure: the
// caller supplies "today".
package analytics

import "github.com/alexanderramin/cadence/internal/domain"

// Policy holds the tunable rules applied by the analytics.
type Policy struct {
	// OnTrackTolerance is how many completions above expected still count
	// as on track.
	OnTrackTolerance int
	// SkipPreservesStreak treats a skipped planned day like an unplanned
	// one in streak scans. When false a skip breaks the streak.
	SkipPreservesStreak bool
	// SkipExemptsPenalty excludes skipped, uncompleted planned days from the
	// miss count and from percentage denominators.
	SkipExemptsPenalty bool
}

// DefaultPolicy matches domain.DefaultTrackerProfile.
func DefaultPolicy() Policy {
	return PolicyFromProfile(domain.DefaultTrackerProfile())
}

// PolicyFromProfile converts a stored profile. A nil profile yields the
// default policy.
func PolicyFromProfile(p *domain.TrackerProfile) Policy {
	if p == nil {
		p = domain.DefaultTrackerProfile()
	}
	tol := p.OnTrackTolerance
	if tol < 0 {
		tol = 0
	}
	return Policy{
		OnTrackTolerance:    tol,
		SkipPreservesStreak: p.SkipPreservesStreak,
		SkipExemptsPenalty:  p.SkipExemptsPenalty,
	}
}

// exempt reports whether a planned day is exempt from miss/percent penalty.
func (p Policy) exempt(complete, skipped bool) bool {
	return p.SkipExemptsPenalty && skipped && !complete
}
