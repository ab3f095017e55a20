package animate

// EasingFunc maps linear progress in [0,1] to eased progress in [0,1].
type EasingFunc func(t float64) float64

var (
	// EaseLinear moves at constant speed.
	EaseLinear EasingFunc = func(t float64) float64 { return t }

	// EaseSmoothstep accelerates at the start and decelerates at the end.
	EaseSmoothstep EasingFunc = func(t float64) float64 {
		return t * t * (3 - 2*t)
	}

	// EaseOutCubic starts fast and decelerates.
	EaseOutCubic EasingFunc = func(t float64) float64 {
		t1 := t - 1
		return t1*t1*t1 + 1
	}

	// EaseInOutCubic is the cubic S-curve.
	EaseInOutCubic EasingFunc = func(t float64) float64 {
		if t < 0.5 {
			return 4 * t * t * t
		}
		t1 := 2*t - 2
		return 1 + t1*t1*t1*0.5
	}

	// FastOutSlowIn approximates the cubic-bezier(0.4, 0, 0.2, 1) curve used as
	// the default tween.
	FastOutSlowIn EasingFunc = func(t float64) float64 {
		return cubicBezier(0.4, 0, 0.2, 1, t)
	}
)

// cubicBezier evaluates the y coordinate of a unit cubic bezier at the point
// whose x coordinate is t.
func cubicBezier(x1, y1, x2, y2, t float64) float64 {
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}
	sample := func(a, b, s float64) float64 {
		return 3*a*(1-s)*(1-s)*s + 3*b*(1-s)*s*s + s*s*s
	}
	// Bisection on x; 24 rounds are well below a cell's resolution.
	lo, hi := 0.0, 1.0
	s := t
	for range 24 {
		x := sample(x1, x2, s)
		if x < t {
			lo = s
		} else {
			hi = s
		}
		s = (lo + hi) / 2
	}
	return sample(y1, y2, s)
}
