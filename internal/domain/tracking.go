package domain

// OnTrack classifies cumulative completions against expected occurrences.
type OnTrack string

const (
	OnTrackUpcoming OnTrack = "upcoming"
	OnTrackOnTrack  OnTrack = "on_track"
	OnTrackAhead    OnTrack = "ahead"
	OnTrackBehind   OnTrack = "behind"
)

type CompletionKind string

const (
	KindCompleted CompletionKind = "completed"
	KindSkipped   CompletionKind = "skipped"
)

// DefaultOnTrackTolerance is how many completions above the expected count
// still classify as on track rather than ahead.
const DefaultOnTrackTolerance = 2

// TrackerProfile holds the analytics policy. There is a single profile with
// ID "default".
type TrackerProfile struct {
	ID                     string
	OnTrackTolerance       int
	SkipPreservesStreak    bool
	SkipExemptsPenalty     bool
	StrictCompletionWindow bool
}

// DefaultTrackerProfile returns the seeded profile.
func DefaultTrackerProfile() *TrackerProfile {
	return &TrackerProfile{
		ID:                  "default",
		OnTrackTolerance:    DefaultOnTrackTolerance,
		SkipPreservesStreak: true,
		SkipExemptsPenalty:  true,
	}
}
