package scrollbar

import "sync"

// Value is the compact scrollbar state: the fraction of the content visible at
// once and how far the visible window has advanced, both in [0, 1].
type Value struct {
	ThumbSize   float64
	ThumbTravel float64
}

// NewValue returns a Value with both fractions clamped to [0, 1].
func NewValue(thumbSize, thumbTravel float64) Value {
	return Value{ThumbSize: clamp01(thumbSize), ThumbTravel: clamp01(thumbTravel)}
}

// ThumbTrackSize returns the fraction of the track the thumb can travel.
func (v Value) ThumbTrackSize() float64 {
	return 1 - v.ThumbSize
}

// State holds the latest scrollbar value. It has a single writer, the
// derivation step, and any number of readers.
type State struct {
	mu    sync.RWMutex
	value Value
	set   bool
}

// NewState returns an empty state.
func NewState() *State {
	return &State{}
}

// Value returns the current value and whether one was ever stored.
func (s *State) Value() (Value, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value, s.set
}

// Store replaces the current value. It reports false, leaving the state
// untouched, when v equals the stored value.
func (s *State) Store(v Value) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.set && s.value == v {
		return false
	}
	s.value = v
	s.set = true
	return true
}

// Reset forgets the stored value.
func (s *State) Reset() {
	s.mu.Lock()
	s.value = Value{}
	s.set = false
	s.mu.Unlock()
}
