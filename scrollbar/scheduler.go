package scrollbar

import (
	"sync"
	"time"
)

// Timer is a pending delayed call.
type Timer interface {
	// Stop prevents the call from running. It returns false if the call has
	// already run or was stopped.
	Stop() bool
}

// Scheduler runs f once after d.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

// SchedulerFunc adapts a function to Scheduler.
type SchedulerFunc func(d time.Duration, f func()) Timer

// AfterFunc implements Scheduler.
func (fn SchedulerFunc) AfterFunc(d time.Duration, f func()) Timer {
	return fn(d, f)
}

// TimeScheduler schedules with time.AfterFunc. The call runs on its own
// goroutine.
var TimeScheduler Scheduler = SchedulerFunc(func(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
})

// DeferredScheduler waits on time.AfterFunc but only queues the calls; they
// run on the goroutine that calls RunDue. A widget that owns one calls RunDue
// from its draw and event handlers, so timer callbacks never race them.
type DeferredScheduler struct {
	mu   sync.Mutex
	due  []*deferredTimer
	wake func()
}

// NewDeferredScheduler returns a scheduler with no wake handler.
func NewDeferredScheduler() *DeferredScheduler {
	return &DeferredScheduler{}
}

// SetWakeFunc sets a handler called, on the timer goroutine, whenever a call
// becomes due. The owner typically requests a redraw there.
func (s *DeferredScheduler) SetWakeFunc(handler func()) *DeferredScheduler {
	s.mu.Lock()
	s.wake = handler
	s.mu.Unlock()
	return s
}

// AfterFunc implements Scheduler.
func (s *DeferredScheduler) AfterFunc(d time.Duration, f func()) Timer {
	t := &deferredTimer{scheduler: s, f: f}
	t.timer = time.AfterFunc(d, t.expire)
	return t
}

// Pending returns the number of calls waiting for RunDue.
func (s *DeferredScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, t := range s.due {
		if !t.done {
			n++
		}
	}
	return n
}

// RunDue runs the calls that became due and were not stopped since, in the
// order they expired. It returns the number of calls run.
func (s *DeferredScheduler) RunDue() int {
	s.mu.Lock()
	due := s.due
	s.due = nil
	s.mu.Unlock()

	n := 0
	for _, t := range due {
		s.mu.Lock()
		run := !t.done
		t.done = true
		s.mu.Unlock()
		if run {
			t.f()
			n++
		}
	}
	return n
}

type deferredTimer struct {
	scheduler *DeferredScheduler
	timer     *time.Timer
	f         func()
	// done is set once the call ran or was stopped. Guarded by scheduler.mu.
	done bool
}

func (t *deferredTimer) expire() {
	s := t.scheduler
	s.mu.Lock()
	if t.done {
		s.mu.Unlock()
		return
	}
	s.due = append(s.due, t)
	wake := s.wake
	s.mu.Unlock()

	if wake != nil {
		wake()
	}
}

// Stop implements Timer.
func (t *deferredTimer) Stop() bool {
	t.timer.Stop()
	s := t.scheduler
	s.mu.Lock()
	defer s.mu.Unlock()
	if t.done {
		return false
	}
	t.done = true
	return true
}
