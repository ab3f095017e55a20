package animate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type testClock struct {
	now time.Time
}

func (c *testClock) Now() time.Time { return c.now }

func (c *testClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestClock() *testClock {
	return &testClock{now: time.Unix(1_700_000_000, 0)}
}

func TestFloatTween(t *testing.T) {
	clock := newTestClock()
	f := NewFloat(0, clock.Now)
	assert.False(t, f.Animating())

	f.SetTarget(10, Tween(100*time.Millisecond, EaseLinear))
	assert.True(t, f.Animating())
	assert.Equal(t, 10.0, f.Target())
	assert.Equal(t, 0.0, f.Value())

	clock.Advance(25 * time.Millisecond)
	assert.InDelta(t, 2.5, f.Value(), 1e-9)

	clock.Advance(75 * time.Millisecond)
	assert.Equal(t, 10.0, f.Value())
	assert.False(t, f.Animating())
}

func TestFloatRetargetStartsFromCurrent(t *testing.T) {
	clock := newTestClock()
	f := NewFloat(0, clock.Now)
	f.SetTarget(10, Tween(100*time.Millisecond, EaseLinear))
	clock.Advance(50 * time.Millisecond)

	f.SetTarget(0, Tween(100*time.Millisecond, EaseLinear))
	assert.InDelta(t, 5.0, f.Value(), 1e-9)

	clock.Advance(50 * time.Millisecond)
	assert.InDelta(t, 2.5, f.Value(), 1e-9)
}

func TestFloatSameTargetKeepsRunning(t *testing.T) {
	clock := newTestClock()
	f := NewFloat(0, clock.Now)
	f.SetTarget(10, Tween(100*time.Millisecond, EaseLinear))
	clock.Advance(50 * time.Millisecond)

	f.SetTarget(10, Tween(100*time.Millisecond, EaseLinear))
	clock.Advance(50 * time.Millisecond)
	assert.Equal(t, 10.0, f.Value())
}

func TestFloatSpring(t *testing.T) {
	clock := newTestClock()
	f := NewFloat(0, clock.Now)
	f.SetTarget(1, Spring(StiffnessLow))

	prev := 0.0
	for range 20 {
		clock.Advance(16 * time.Millisecond)
		v := f.Value()
		// Critically damped: approaches without overshooting.
		assert.GreaterOrEqual(t, v, prev)
		assert.LessOrEqual(t, v, 1.0)
		prev = v
	}

	clock.Advance(5 * time.Second)
	assert.Equal(t, 1.0, f.Value())
	assert.False(t, f.Animating())
}

func TestFloatSnap(t *testing.T) {
	clock := newTestClock()
	f := NewFloat(0, clock.Now)
	f.SetTarget(4, Tween(time.Second, nil))
	f.Snap(2)
	assert.Equal(t, 2.0, f.Value())
	assert.Equal(t, 2.0, f.Target())
	assert.False(t, f.Animating())
}

func TestSnapSpec(t *testing.T) {
	f := NewFloat(0, nil)
	f.SetTarget(3, Snap())
	assert.Equal(t, 3.0, f.Value())
	assert.False(t, f.Animating())
}
