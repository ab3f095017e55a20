package scrollbar

import (
	"context"
	"errors"
	"io"
	"log"
	"math"
	"sync"
)

// OvershootOffset is the offset requested together with the target index once
// the thumb reaches its maximum travel. Hosts clamp it, so the content lands
// on its true end even when index rounding falls short.
const OvershootOffset = 999

//go:generate mockgen -destination=scroller_mock.go -package=scrollbar github.com/ayn2op/lazybar/scrollbar Scroller

// Scroller is implemented by lazy layouts that can jump to an item.
type Scroller interface {
	// ScrollToIndex scrolls so that item index starts the viewport, shifted by
	// offset cells. Implementations should stop early when ctx is done.
	ScrollToIndex(ctx context.Context, index, offset int) error
}

// ScrollerFunc adapts a function to Scroller.
type ScrollerFunc func(ctx context.Context, index, offset int) error

// ScrollToIndex implements Scroller.
func (fn ScrollerFunc) ScrollToIndex(ctx context.Context, index, offset int) error {
	return fn(ctx, index, offset)
}

// TargetRequest is a scroll command computed from a thumb travel.
type TargetRequest struct {
	Index  int
	Offset int
}

// TargetFor returns the scroll command for a thumb at travel out of maxTravel
// over itemCount items.
func TargetFor(itemCount int, travel, maxTravel float64) TargetRequest {
	request := TargetRequest{Index: int(math.Round(float64(itemCount) * travel))}
	if !math.IsNaN(maxTravel) && travel >= maxTravel {
		request.Offset = OvershootOffset
	}
	return request
}

// Executor runs a scroll command.
type Executor func(func())

// Inline runs the command on the calling goroutine.
func Inline(f func()) { f() }

// Trigger is a restartable single slot: firing a new key cancels the command
// started for the previous key instead of queueing behind it.
type Trigger struct {
	mu     sync.Mutex
	exec   Executor
	key    float64
	keyed  bool
	cancel context.CancelFunc
}

// NewTrigger returns a trigger running commands with exec. A nil exec runs
// them inline.
func NewTrigger(exec Executor) *Trigger {
	if exec == nil {
		exec = Inline
	}
	return &Trigger{exec: exec}
}

// Fire runs fn for key unless key is the current one. It reports whether fn
// was started.
func (t *Trigger) Fire(key float64, fn func(ctx context.Context)) bool {
	t.mu.Lock()
	if t.keyed && t.key == key {
		t.mu.Unlock()
		return false
	}
	if t.cancel != nil {
		t.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	t.key, t.keyed, t.cancel = key, true, cancel
	exec := t.exec
	t.mu.Unlock()

	exec(func() { fn(ctx) })
	return true
}

// Reset forgets the current key so the next Fire always runs. A running
// command is not cancelled.
func (t *Trigger) Reset() {
	t.mu.Lock()
	t.keyed = false
	t.mu.Unlock()
}

// Stop cancels the running command and forgets the key.
func (t *Trigger) Stop() {
	t.mu.Lock()
	if t.cancel != nil {
		t.cancel()
		t.cancel = nil
	}
	t.keyed = false
	t.mu.Unlock()
}

// DragScroller converts thumb travel reported by a scrollbar into scroll
// commands for a lazy layout.
type DragScroller struct {
	mu        sync.Mutex
	scroller  Scroller
	trigger   *Trigger
	itemCount int
	travel    float64
	maxTravel float64
	last      TargetRequest
	fired     bool
	logger    *log.Logger
}

// NewDragScroller returns a drag scroller for itemCount items.
func NewDragScroller(scroller Scroller, itemCount int) *DragScroller {
	return &DragScroller{
		scroller:  scroller,
		trigger:   NewTrigger(nil),
		itemCount: max(itemCount, 0),
		travel:    math.NaN(),
		maxTravel: math.NaN(),
		logger:    log.New(io.Discard, "", 0),
	}
}

// SetExecutor sets how scroll commands are run.
func (d *DragScroller) SetExecutor(exec Executor) *DragScroller {
	d.mu.Lock()
	d.trigger.Stop()
	d.trigger = NewTrigger(exec)
	d.mu.Unlock()
	return d
}

// SetItemCount sets the number of items used by later commands.
func (d *DragScroller) SetItemCount(n int) *DragScroller {
	d.mu.Lock()
	d.itemCount = max(n, 0)
	d.mu.Unlock()
	return d
}

// SetLogger sets the logger used to report failed scroll commands.
func (d *DragScroller) SetLogger(logger *log.Logger) *DragScroller {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	d.mu.Lock()
	d.logger = logger
	d.mu.Unlock()
	return d
}

// OnThumbMoved records the travel of the thumb and scrolls to the matching
// item. Repeating the current travel is a no-op.
func (d *DragScroller) OnThumbMoved(travel, maxTravel float64) {
	d.mu.Lock()
	d.travel, d.maxTravel = travel, maxTravel
	if math.IsNaN(travel) {
		d.mu.Unlock()
		return
	}
	request := TargetFor(d.itemCount, travel, maxTravel)
	trigger := d.trigger
	scroller := d.scroller
	logger := d.logger
	d.mu.Unlock()

	trigger.Fire(travel, func(ctx context.Context) {
		d.mu.Lock()
		d.last, d.fired = request, true
		d.mu.Unlock()

		err := scroller.ScrollToIndex(ctx, request.Index, request.Offset)
		if err != nil && !errors.Is(err, context.Canceled) {
			logger.Printf("scrollbar: scroll to %d (+%d): %v", request.Index, request.Offset, err)
		}
	})
}

// Release ends a drag. The next travel always issues a command, even if it
// equals the last one.
func (d *DragScroller) Release() {
	d.mu.Lock()
	d.travel, d.maxTravel = math.NaN(), math.NaN()
	trigger := d.trigger
	d.mu.Unlock()
	trigger.Reset()
}

// Travel returns the last reported travel and maximum travel; NaN when none.
func (d *DragScroller) Travel() (travel, maxTravel float64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.travel, d.maxTravel
}

// LastRequest returns the last command started.
func (d *DragScroller) LastRequest() (TargetRequest, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.last, d.fired
}

// Stop cancels the running command.
func (d *DragScroller) Stop() {
	d.mu.Lock()
	trigger := d.trigger
	d.mu.Unlock()
	trigger.Stop()
}
