package scrollbar

import "math"

// Unspecified marks a pointer offset that is not set.
var Unspecified = math.NaN()

// DragSession holds the last pointer offset along the scroll axis while the
// thumb is pressed or dragged.
type DragSession struct {
	pointer float64
	travel  float64
}

// NewDragSession returns an inactive session.
func NewDragSession() *DragSession {
	return &DragSession{pointer: Unspecified, travel: Unspecified}
}

// Active reports whether a press or drag is in progress.
func (s *DragSession) Active() bool {
	return !math.IsNaN(s.pointer)
}

// Pointer returns the last pointer offset, Unspecified when inactive.
func (s *DragSession) Pointer() float64 {
	return s.pointer
}

// Travel returns the interaction travel percent, NaN when inactive.
func (s *DragSession) Travel() float64 {
	return s.travel
}

// Start latches the press location. Until the first move the travel is the
// raw position of the pointer on the track.
func (s *DragSession) Start(track Track, pointer float64) float64 {
	if math.IsNaN(pointer) {
		s.End()
		return s.travel
	}
	s.pointer = pointer
	s.travel = track.RawPosition(pointer)
	return s.travel
}

// Move updates the pointer and returns the travel with the thumb centered on
// it. Moves without a matching Start are ignored and report false.
func (s *DragSession) Move(track Track, pointer, thumbSize float64) (float64, bool) {
	if !s.Active() || math.IsNaN(pointer) {
		return s.travel, false
	}
	s.pointer = pointer
	s.travel = track.ThumbPosition(pointer, thumbSize)
	return s.travel, true
}

// End clears the session. Calling it on an inactive session is a no-op.
func (s *DragSession) End() {
	s.pointer = Unspecified
	s.travel = Unspecified
}
