package animate

import (
	"math"
	"time"
)

// Spring stiffness presets.
const (
	StiffnessHigh      = 10_000.0
	StiffnessMedium    = 1_500.0
	StiffnessMediumLow = 400.0
	StiffnessLow       = 200.0
	StiffnessVeryLow   = 50.0
)

// Spec describes how a value travels toward its target.
type Spec interface {
	// At returns the value and velocity at elapsed since the animation started
	// from start (with initial velocity) toward target, and whether the
	// animation has settled.
	At(start, target, velocity float64, elapsed time.Duration) (value, newVelocity float64, done bool)
}

type tweenSpec struct {
	duration time.Duration
	easing   EasingFunc
}

// Tween animates over a fixed duration along easing. A nil easing uses
// FastOutSlowIn.
func Tween(duration time.Duration, easing EasingFunc) Spec {
	if easing == nil {
		easing = FastOutSlowIn
	}
	return tweenSpec{duration: max(duration, 0), easing: easing}
}

// Snap jumps to the target immediately.
func Snap() Spec {
	return tweenSpec{}
}

func (s tweenSpec) At(start, target, _ float64, elapsed time.Duration) (float64, float64, bool) {
	if s.duration <= 0 || elapsed >= s.duration {
		return target, 0, true
	}
	if elapsed <= 0 {
		return start, 0, false
	}
	progress := float64(elapsed) / float64(s.duration)
	eased := s.easing(min(max(progress, 0), 1))
	return start + (target-start)*eased, 0, false
}

type springSpec struct {
	stiffness float64
	threshold float64
}

// Spring returns a critically damped (non-bouncy) spring with the given
// stiffness. It settles once it is within threshold of its target.
func Spring(stiffness float64) Spec {
	return SpringWithThreshold(stiffness, 0.001)
}

// SpringWithThreshold is Spring with an explicit settle threshold.
func SpringWithThreshold(stiffness, threshold float64) Spec {
	if stiffness <= 0 {
		stiffness = StiffnessMedium
	}
	if threshold <= 0 {
		threshold = 0.001
	}
	return springSpec{stiffness: stiffness, threshold: threshold}
}

func (s springSpec) At(start, target, velocity float64, elapsed time.Duration) (float64, float64, bool) {
	if elapsed <= 0 {
		return start, velocity, start == target && velocity == 0
	}
	omega := math.Sqrt(s.stiffness)
	t := elapsed.Seconds()
	x0 := start - target
	decay := math.Exp(-omega * t)

	// x(t) = (x0 + (v0 + w*x0)*t) * e^(-w*t) for a critically damped spring.
	b := velocity + omega*x0
	x := (x0 + b*t) * decay
	v := (velocity - omega*b*t) * decay

	if math.Abs(x) < s.threshold && math.Abs(v) < s.threshold*omega {
		return target, 0, true
	}
	return target + x, v, false
}
