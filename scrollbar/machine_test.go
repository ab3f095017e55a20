package scrollbar

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTimer struct {
	delay   time.Duration
	fn      func()
	stopped bool
	fired   bool
}

func (t *fakeTimer) Stop() bool {
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

type fakeScheduler struct {
	mu     sync.Mutex
	timers []*fakeTimer
}

func (s *fakeScheduler) AfterFunc(d time.Duration, f func()) Timer {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := &fakeTimer{delay: d, fn: f}
	s.timers = append(s.timers, t)
	return t
}

// fireAll runs every timer that is still pending.
func (s *fakeScheduler) fireAll() int {
	s.mu.Lock()
	var pending []*fakeTimer
	for _, t := range s.timers {
		if !t.stopped && !t.fired {
			t.fired = true
			pending = append(pending, t)
		}
	}
	s.mu.Unlock()
	for _, t := range pending {
		t.fn()
	}
	return len(pending)
}

func (s *fakeScheduler) last() *fakeTimer {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.timers) == 0 {
		return nil
	}
	return s.timers[len(s.timers)-1]
}

type fakeClock struct {
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestMachine() (*Machine, *fakeScheduler, *fakeClock) {
	scheduler := &fakeScheduler{}
	clock := newFakeClock()
	m := NewMachine(DefaultMachineConfig(2), scheduler, clock.Now)
	return m, scheduler, clock
}

var scrolling = Signals{CanScrollForward: true, ScrollInProgress: true}

func TestMachineStartsHidden(t *testing.T) {
	m, _, _ := newTestMachine()
	assert.Equal(t, Dormant, m.State())
	assert.Equal(t, 2.0, m.Offset())
	assert.Equal(t, 0.0, m.Opacity())
	assert.False(t, m.Animating())
}

func TestMachineScrollReveals(t *testing.T) {
	m, _, clock := newTestMachine()

	var transitions []InteractionState
	m.SetChangedFunc(func(s InteractionState) { transitions = append(transitions, s) })

	assert.Equal(t, Scrolling, m.Evaluate(scrolling))
	assert.True(t, m.Animating())

	clock.Advance(300 * time.Millisecond)
	mid := m.Offset()
	assert.Greater(t, mid, 0.0)
	assert.Less(t, mid, 2.0)

	clock.Advance(300 * time.Millisecond)
	assert.Equal(t, 0.0, m.Offset())
	assert.Equal(t, 1.0, m.Opacity())
	assert.Equal(t, []InteractionState{Scrolling}, transitions)
}

func TestMachineScrollWithoutRoom(t *testing.T) {
	m, _, _ := newTestMachine()
	assert.Equal(t, Dormant, m.Evaluate(Signals{ScrollInProgress: true}))
	assert.Equal(t, 2.0, m.Offset())
}

func TestMachineHidesAfterDelay(t *testing.T) {
	m, scheduler, clock := newTestMachine()
	woken := 0
	m.SetWakeFunc(func() { woken++ })

	m.Evaluate(scrolling)
	clock.Advance(time.Second)

	// Holding: no new signal keeps the current state.
	assert.Equal(t, Scrolling, m.Evaluate(Signals{}))
	assert.False(t, m.HidePending())

	assert.Equal(t, Dormant, m.Evaluate(Signals{FlingEnded: true}))
	require.True(t, m.HidePending())
	assert.Equal(t, DefaultDormantDelay, scheduler.last().delay)
	assert.Equal(t, 0.0, m.Offset())

	clock.Advance(DefaultDormantDelay)
	require.Equal(t, 1, scheduler.fireAll())
	assert.Equal(t, 1, woken)
	assert.False(t, m.HidePending())

	clock.Advance(DefaultHideDuration / 2)
	assert.Greater(t, m.Offset(), 0.0)
	assert.Less(t, m.Offset(), 2.0)

	clock.Advance(DefaultHideDuration / 2)
	assert.Equal(t, 2.0, m.Offset())
	assert.Equal(t, 0.0, m.Opacity())
	assert.False(t, m.Animating())
}

func TestMachineInteractionCancelsHide(t *testing.T) {
	m, scheduler, clock := newTestMachine()

	m.Evaluate(scrolling)
	clock.Advance(time.Second)
	m.Evaluate(Signals{FlingEnded: true})
	pending := scheduler.last()
	require.NotNil(t, pending)

	clock.Advance(time.Second)
	assert.Equal(t, Dragging, m.Evaluate(Signals{Hovered: true}))
	assert.True(t, pending.stopped)
	assert.False(t, m.HidePending())

	// A cancelled timer that still runs must not hide the thumb.
	pending.fn()
	clock.Advance(time.Second)
	assert.Equal(t, 0.0, m.Offset())
}

func TestMachineDraggingWins(t *testing.T) {
	m, _, clock := newTestMachine()

	signals := scrolling
	signals.Dragged = true
	signals.FlingEnded = true
	assert.Equal(t, Dragging, m.Evaluate(signals))

	clock.Advance(5 * time.Second)
	assert.InDelta(t, 1.0, m.ColorMix(), 1e-9)

	assert.Equal(t, Scrolling, m.Evaluate(scrolling))
	clock.Advance(5 * time.Second)
	assert.InDelta(t, 0.0, m.ColorMix(), 1e-9)
}

func TestMachineDormantStaysDormant(t *testing.T) {
	m, scheduler, _ := newTestMachine()
	assert.Equal(t, Dormant, m.Evaluate(Signals{FlingEnded: true}))
	assert.Nil(t, scheduler.last())
}

func TestMachineStop(t *testing.T) {
	m, scheduler, _ := newTestMachine()
	m.Evaluate(scrolling)
	m.Evaluate(Signals{FlingEnded: true})
	require.True(t, m.HidePending())

	m.Stop()
	assert.False(t, m.HidePending())
	assert.Equal(t, 0, scheduler.fireAll())
}

func TestMachineAdopt(t *testing.T) {
	prev, scheduler, clock := newTestMachine()
	var transitions []InteractionState
	prev.SetChangedFunc(func(s InteractionState) { transitions = append(transitions, s) })
	prev.Evaluate(scrolling)
	clock.Advance(time.Second)
	prev.Evaluate(Signals{FlingEnded: true})
	require.True(t, prev.HidePending())

	config := DefaultMachineConfig(4)
	m := NewMachine(config, scheduler, clock.Now).Adopt(prev)

	// The thumb stays shown and the dormancy timer moves over.
	assert.Equal(t, Dormant, m.State())
	assert.Equal(t, 0.0, m.Offset())
	assert.False(t, prev.HidePending())
	require.True(t, m.HidePending())

	m.Evaluate(Signals{Hovered: true})
	assert.Equal(t, []InteractionState{Scrolling, Dormant, Dragging}, transitions)

	// A hidden thumb stays hidden at the new thickness.
	hidden, _, _ := newTestMachine()
	m = NewMachine(config, scheduler, clock.Now).Adopt(hidden)
	assert.Equal(t, 4.0, m.Offset())
	assert.False(t, m.Animating())
}
