package animate

import (
	"sync"
	"time"
)

// Animator animates a single float toward a target. The current value is
// polled once per visual update.
type Animator interface {
	// SetTarget starts animating toward target along spec, starting from the
	// current value. Setting the current target again is a no-op.
	SetTarget(target float64, spec Spec)
	// Value returns the current animated value.
	Value() float64
	// Target returns the value the animation is heading to.
	Target() float64
	// Animating reports whether the value has not settled yet.
	Animating() bool
	// Snap stops any animation and sets the value.
	Snap(value float64)
}

// Clock returns the current time.
type Clock func() time.Time

// Float is an Animator backed by a clock.
type Float struct {
	mu sync.Mutex

	clock Clock

	start     float64
	current   float64
	velocity  float64 // initial velocity of the running segment
	live      float64 // velocity at the last advance
	target    float64
	startTime time.Time
	spec      Spec
	done      bool
}

var _ Animator = (*Float)(nil)

// NewFloat returns an animator resting at initial. A nil clock uses time.Now.
func NewFloat(initial float64, clock Clock) *Float {
	if clock == nil {
		clock = time.Now
	}
	return &Float{
		clock:   clock,
		start:   initial,
		current: initial,
		target:  initial,
		spec:    Snap(),
		done:    true,
	}
}

// SetTarget implements Animator.
func (f *Float) SetTarget(target float64, spec Spec) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if target == f.target {
		return
	}
	if spec == nil {
		spec = Snap()
	}

	now := f.clock()
	f.advance(now)

	f.start = f.current
	f.velocity = f.live
	f.target = target
	f.startTime = now
	f.spec = spec
	f.done = false
	f.advance(now)
}

// Value implements Animator.
func (f *Float) Value() float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.advance(f.clock())
	return f.current
}

// Target implements Animator.
func (f *Float) Target() float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.target
}

// Animating implements Animator.
func (f *Float) Animating() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.advance(f.clock())
	return !f.done
}

// Snap implements Animator.
func (f *Float) Snap(value float64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.start, f.current, f.target = value, value, value
	f.velocity, f.live = 0, 0
	f.spec = Snap()
	f.done = true
}

// advance recomputes the current value. Must be called with the lock held.
func (f *Float) advance(now time.Time) {
	if f.done {
		return
	}
	value, velocity, done := f.spec.At(f.start, f.target, f.velocity, now.Sub(f.startTime))
	f.current = value
	f.live = velocity
	if done {
		f.current = f.target
		f.live = 0
		f.done = true
	}
}
