package domain

import (
	"maps"
	"slices"
	"strings"
	"sync"

	"github.com/alexanderramin/cadence/internal/calendar"
)

// CompletionView is the read side of an activity's completion state.
type CompletionView interface {
	IsComplete(d calendar.Date) bool
	IsSkipped(d calendar.Date) bool
	TotalCompleted() int
}

// CompletionState holds the per-date completed/skipped flags and notes of one
// activity. It is safe for concurrent use: writers are serialized and a write
// is fully applied before any later read observes it.
//
// Completions and skips are tracked independently. Un-marking deletes the
// entry rather than storing false.
type CompletionState struct {
	mu          sync.RWMutex
	completions map[calendar.Date]bool
	skips       map[calendar.Date]bool
	notes       map[calendar.Date]string
}

// NewCompletionState returns an empty state.
func NewCompletionState() *CompletionState {
	return &CompletionState{
		completions: make(map[calendar.Date]bool),
		skips:       make(map[calendar.Date]bool),
		notes:       make(map[calendar.Date]string),
	}
}

// CompletionStateFrom builds a state from raw maps. Entries whose value is
// false are treated as absent. The input maps are copied.
func CompletionStateFrom(completions, skips map[calendar.Date]bool, notes map[calendar.Date]string) *CompletionState {
	s := NewCompletionState()
	for d, done := range completions {
		if done {
			s.completions[d] = true
		}
	}
	for d, skipped := range skips {
		if skipped {
			s.skips[d] = true
		}
	}
	for d, n := range notes {
		if strings.TrimSpace(n) != "" {
			s.notes[d] = n
		}
	}
	return s
}

func (s *CompletionState) MarkComplete(d calendar.Date) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.completions[d] = true
}

// Unmark removes a completion. Unmarking an absent date is a no-op.
func (s *CompletionState) Unmark(d calendar.Date) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.completions, d)
}

// Toggle flips the completion of d and returns the new state.
func (s *CompletionState) Toggle(d calendar.Date) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.completions[d] {
		delete(s.completions, d)
		return false
	}
	s.completions[d] = true
	return true
}

func (s *CompletionState) MarkSkipped(d calendar.Date) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.skips[d] = true
}

func (s *CompletionState) UnmarkSkip(d calendar.Date) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.skips, d)
}

func (s *CompletionState) IsComplete(d calendar.Date) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.completions[d]
}

func (s *CompletionState) IsSkipped(d calendar.Date) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.skips[d]
}

// TotalCompleted counts completed dates, planned or not.
func (s *CompletionState) TotalCompleted() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.completions)
}

// SetNote stores free text for d. Blank text removes the note.
func (s *CompletionState) SetNote(d calendar.Date, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if strings.TrimSpace(text) == "" {
		delete(s.notes, d)
		return
	}
	s.notes[d] = text
}

func (s *CompletionState) Note(d calendar.Date) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n, ok := s.notes[d]
	return n, ok
}

// CompletedDates returns the completed dates in ascending order.
func (s *CompletionState) CompletedDates() []calendar.Date {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sortedKeys(s.completions)
}

// SkippedDates returns the skipped dates in ascending order.
func (s *CompletionState) SkippedDates() []calendar.Date {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sortedKeys(s.skips)
}

// Notes returns a copy of all notes.
func (s *CompletionState) Notes() map[calendar.Date]string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return maps.Clone(s.notes)
}

// Snapshot returns an immutable copy so a full analytics pass reads one
// consistent view.
func (s *CompletionState) Snapshot() CompletionSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return CompletionSnapshot{
		completions: maps.Clone(s.completions),
		skips:       maps.Clone(s.skips),
	}
}

// CompletionSnapshot is a frozen CompletionView.
type CompletionSnapshot struct {
	completions map[calendar.Date]bool
	skips       map[calendar.Date]bool
}

func (s CompletionSnapshot) IsComplete(d calendar.Date) bool { return s.completions[d] }
func (s CompletionSnapshot) IsSkipped(d calendar.Date) bool  { return s.skips[d] }
func (s CompletionSnapshot) TotalCompleted() int             { return len(s.completions) }

func sortedKeys(m map[calendar.Date]bool) []calendar.Date {
	keys := slices.Collect(maps.Keys(m))
	slices.SortFunc(keys, calendar.Date.Compare)
	return keys
}

var (
	_ CompletionView = (*CompletionState)(nil)
	_ CompletionView = CompletionSnapshot{}
)
