package lazybar

import (
	"fmt"
	"sync"
	"time"

	"github.com/ayn2op/lazybar/scrollbar"
	"github.com/gdamore/tcell/v3"
)

// lineItem is a list item of a fixed height that prints its label on every
// line.
type lineItem struct {
	*Box
	label  string
	height int
}

func newLineItem(label string, height int) *lineItem {
	return &lineItem{Box: NewBox(), label: label, height: height}
}

func (i *lineItem) Height(int) int {
	return i.height
}

func (i *lineItem) Draw(screen tcell.Screen) {
	x, y, width, height := i.GetRect()
	for row := 0; row < height; row++ {
		PrintWithStyle(screen, i.label, x, y+row, width, AlignmentLeft, tcell.StyleDefault)
	}
}

// listBuilder returns a builder of count items labelled by index, each of
// the given height.
func listBuilder(count, height int) ScrollListBuilder {
	return func(index, _ int) ScrollListItem {
		if index < 0 || index >= count {
			return nil
		}
		return newLineItem(fmt.Sprintf("%d", index), height)
	}
}

func gridBuilder(count int, height func(index int) int) ScrollGridBuilder {
	return func(index int) ScrollListItem {
		if index < 0 || index >= count {
			return nil
		}
		return newLineItem(fmt.Sprintf("%d", index), height(index))
	}
}

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

func (s *fakeScheduler) AfterFunc(d time.Duration, f func()) scrollbar.Timer {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := &fakeTimer{delay: d, fn: f}
	s.timers = append(s.timers, t)
	return t
}

// pending returns the timers that have neither fired nor been stopped.
func (s *fakeScheduler) pending() []*fakeTimer {
	s.mu.Lock()
	defer s.mu.Unlock()
	var pending []*fakeTimer
	for _, t := range s.timers {
		if !t.stopped && !t.fired {
			pending = append(pending, t)
		}
	}
	return pending
}

// fire runs every pending timer with the given delay.
func (s *fakeScheduler) fire(d time.Duration) int {
	n := 0
	for _, t := range s.pending() {
		if t.delay != d {
			continue
		}
		t.fired = true
		t.fn()
		n++
	}
	return n
}

type fakeClock struct {
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func mouse(x, y int) *tcell.EventMouse {
	return tcell.NewEventMouse(x, y, tcell.ButtonNone, tcell.ModNone)
}

func key(k tcell.Key) *tcell.EventKey {
	return tcell.NewEventKey(k, "", tcell.ModNone)
}

func runeKey(r string) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}
