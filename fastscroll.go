package lazybar

import (
	"io"
	"log"
	"time"

	"github.com/ayn2op/lazybar/animate"
	"github.com/ayn2op/lazybar/config"
	"github.com/ayn2op/lazybar/scrollbar"
	"github.com/gdamore/tcell/v3"
)

// Defaults of a FastScroll.
const (
	DefaultSettleDelay    = 150 * time.Millisecond
	DefaultSmallThreshold = 100
)

// ScrollHost is a lazy layout that a FastScroll can overlay.
type ScrollHost interface {
	Primitive
	scrollbar.ViewportSource
	scrollbar.Scroller
	ItemCount() int
}

// FastScroll overlays a draggable scrollbar on a lazy layout. Every viewport
// snapshot of the host updates the scrollbar value and the interaction state
// machine; dragging the thumb scrolls the host.
type FastScroll struct {
	*Box

	host ScrollHost
	bar  *ScrollBar

	deriver *scrollbar.Deriver
	machine *scrollbar.Machine
	drag    *scrollbar.DragScroller
	cancel  func()

	scheduler     scrollbar.Scheduler
	deferred      *scrollbar.DeferredScheduler
	wake          func()
	clock         animate.Clock
	machineConfig scrollbar.MachineConfig

	// scrolling is set by host movement and cleared once the host has been
	// still for settleDelay.
	scrolling        bool
	settleDelay      time.Duration
	settleTimer      scrollbar.Timer
	settleGeneration uint64

	smallThreshold int
	info           scrollbar.LayoutInfo

	logger *log.Logger
}

// NewFastScroll wraps host, whose items are arranged as layout.
func NewFastScroll(host ScrollHost, layout scrollbar.Layout) *FastScroll {
	state := scrollbar.NewState()
	deferred := scrollbar.NewDeferredScheduler()
	f := &FastScroll{
		Box:            NewBox(),
		host:           host,
		bar:            NewScrollBar(state),
		deriver:        scrollbar.NewDeriver(layout, state),
		drag:           scrollbar.NewDragScroller(host, 0),
		scheduler:      deferred,
		deferred:       deferred,
		machineConfig:  scrollbar.DefaultMachineConfig(1),
		settleDelay:    DefaultSettleDelay,
		smallThreshold: DefaultSmallThreshold,
		logger:         log.New(io.Discard, "", 0),
	}
	f.rebuildMachine()

	f.bar.SetThumbMovedFunc(f.onThumbMoved)
	f.bar.SetReleasedFunc(f.drag.Release)
	f.bar.SetInteractionFunc(f.evaluate)
	f.cancel = host.Subscribe(f.onViewport)
	return f
}

// Host returns the wrapped layout.
func (f *FastScroll) Host() ScrollHost {
	return f.host
}

// ScrollBar returns the overlay scrollbar.
func (f *FastScroll) ScrollBar() *ScrollBar {
	return f.bar
}

// Machine returns the interaction state machine.
func (f *FastScroll) Machine() *scrollbar.Machine {
	return f.machine
}

// DragScroller returns the drag-to-scroll controller.
func (f *FastScroll) DragScroller() *scrollbar.DragScroller {
	return f.drag
}

// SetScheduler sets the scheduler of the settle and dormancy timers. Its
// callbacks must run on the goroutine that draws. Application implements it
// that way. By default, timers are queued and run at the start of the next
// Draw or event; set a wake func to get that draw.
func (f *FastScroll) SetScheduler(scheduler scrollbar.Scheduler) *FastScroll {
	if scheduler == nil {
		scheduler = f.deferred
	}
	f.scheduler = scheduler
	f.rebuildMachine()
	return f
}

// SetClock sets the clock of the animations.
func (f *FastScroll) SetClock(clock animate.Clock) *FastScroll {
	f.clock = clock
	f.rebuildMachine()
	return f
}

// SetWakeFunc sets a handler called when the scrollbar needs a frame that no
// event will bring: a queued timer became due or the thumb started to hide.
// It may be called from any goroutine.
func (f *FastScroll) SetWakeFunc(handler func()) *FastScroll {
	f.wake = handler
	f.deferred.SetWakeFunc(handler)
	f.machine.SetWakeFunc(handler)
	return f
}

// SetMachineConfig sets the timings of the interaction state machine. The
// slide-out distance always equals the thumb thickness.
func (f *FastScroll) SetMachineConfig(config scrollbar.MachineConfig) *FastScroll {
	f.machineConfig = config
	f.rebuildMachine()
	return f
}

// SetSettleDelay sets how long the host must be still before scrolling ends.
func (f *FastScroll) SetSettleDelay(d time.Duration) *FastScroll {
	f.settleDelay = max(d, 0)
	return f
}

// SetSmallThreshold sets the item count below which the scrollbar is
// decorative.
func (f *FastScroll) SetSmallThreshold(n int) *FastScroll {
	f.smallThreshold = max(n, 0)
	return f
}

// SetThickness sets the thumb thickness in cells.
func (f *FastScroll) SetThickness(cells int) *FastScroll {
	f.bar.SetThickness(cells)
	f.rebuildMachine()
	return f
}

// SetLogger sets the logger of the scrollbar machinery.
func (f *FastScroll) SetLogger(logger *log.Logger) *FastScroll {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	f.logger = logger
	f.machine.SetLogger(logger)
	f.drag.SetLogger(logger)
	return f
}

// ApplyConfig applies the scrollbar section of cfg.
func (f *FastScroll) ApplyConfig(cfg *config.Config) *FastScroll {
	sc := cfg.Scrollbar
	thumb, drag, track := sc.Colors()
	f.bar.SetColors(thumb, drag, track).
		SetShowTrack(sc.ShowTrack).
		SetThumbLength(sc.ThumbLength, sc.MinThumbLength).
		SetThickness(sc.ThumbThickness)
	f.settleDelay = sc.ScrollSettle()
	f.smallThreshold = sc.SmallThreshold
	f.machineConfig = scrollbar.MachineConfig{
		DormantDelay:   sc.DormantDelay(),
		HideDuration:   sc.HideDuration(),
		ColorStiffness: sc.SpringStiffness,
	}
	f.rebuildMachine()
	return f
}

func (f *FastScroll) rebuildMachine() {
	config := f.machineConfig
	config.Thickness = float64(f.bar.thickness)
	prev := f.machine
	f.machine = scrollbar.NewMachine(config, f.scheduler, f.clock)
	if prev != nil {
		f.machine.Adopt(prev)
	}
	f.machine.SetWakeFunc(f.wake)
	if f.logger != nil {
		f.machine.SetLogger(f.logger)
	}
	f.bar.SetMachine(f.machine)
}

// onViewport receives every snapshot of the host.
func (f *FastScroll) onViewport(info scrollbar.LayoutInfo) {
	f.info = info
	f.drag.SetItemCount(info.TotalItems)
	f.deriver.SetItemsAvailable(info.TotalItems)
	if _, ok := f.deriver.Update(info); !ok && len(info.Items) == 0 {
		f.deriver.State().Reset()
	}
	f.bar.SetSmall(info.TotalItems < f.smallThreshold)

	if info.ScrollInProgress {
		f.scrolling = true
		f.armSettle()
	}
	f.evaluate()
}

// onThumbMoved forwards thumb travel to the drag scroller. The end of a
// reversed list or grid lies at the top of the track.
func (f *FastScroll) onThumbMoved(travel, maxTravel float64) {
	if f.info.Reverse && f.deriver.Layout() != scrollbar.StaggeredGridLayout {
		travel = max(maxTravel-travel, 0)
	}
	f.drag.OnThumbMoved(travel, maxTravel)
}

// armSettle restarts the settle timer.
func (f *FastScroll) armSettle() {
	if f.settleTimer != nil {
		f.settleTimer.Stop()
	}
	f.settleGeneration++
	generation := f.settleGeneration
	f.settleTimer = f.scheduler.AfterFunc(f.settleDelay, func() {
		if generation != f.settleGeneration {
			return
		}
		f.settleTimer = nil
		f.scrolling = false
		f.evaluate()
	})
}

// LayoutInfo returns the last viewport snapshot of the host.
func (f *FastScroll) LayoutInfo() scrollbar.LayoutInfo {
	return f.info
}

// Scrolling reports whether the host moved within the settle delay.
func (f *FastScroll) Scrolling() bool {
	return f.scrolling
}

// evaluate feeds the current signals to the state machine.
func (f *FastScroll) evaluate() {
	signals := f.bar.Signals()
	signals.CanScrollForward = f.info.CanScrollForward
	signals.CanScrollBackward = f.info.CanScrollBackward
	signals.ScrollInProgress = f.scrolling
	signals.FlingEnded = !f.scrolling
	f.machine.Evaluate(signals)
}

// Animating reports whether the scrollbar is animating.
func (f *FastScroll) Animating() bool {
	return f.machine.Animating()
}

// SetRect places the host in the whole rect and the scrollbar along its
// trailing edge.
func (f *FastScroll) SetRect(x, y, width, height int) {
	f.Box.SetRect(x, y, width, height)
	f.host.SetRect(x, y, width, height)
	track := min(f.bar.TrackThickness(), width)
	f.bar.SetRect(x+width-track, y, track, height)
}

// Draw draws the host and the scrollbar over it.
func (f *FastScroll) Draw(screen tcell.Screen) {
	f.deferred.RunDue()
	f.host.Draw(screen)
	f.bar.Draw(screen)
}

// InputHandler passes keys to the host.
func (f *FastScroll) InputHandler(event *tcell.EventKey) Command {
	f.deferred.RunDue()
	return f.host.InputHandler(event)
}

// PasteHandler passes pasted text to the host.
func (f *FastScroll) PasteHandler(text string) Command {
	return f.host.PasteHandler(text)
}

// MouseHandler gives the scrollbar moves (for hover) and events inside its
// track; everything else goes to the host.
func (f *FastScroll) MouseHandler(action MouseAction, event *tcell.EventMouse) (Primitive, Command) {
	f.deferred.RunDue()
	inBar := f.bar.InRect(event.Position())
	if action == MouseMove || inBar {
		capture, cmd := f.bar.MouseHandler(action, event)
		if capture != nil {
			return capture, cmd
		}
		if inBar && action != MouseMove && !f.bar.IsSmall() {
			return nil, AppendCommand(cmd, SetFocusCommand{Target: f})
		}
		if cmd != nil && action == MouseMove {
			_, hostCmd := f.host.MouseHandler(action, event)
			return nil, AppendCommand(cmd, hostCmd)
		}
	}
	return f.host.MouseHandler(action, event)
}

// Focus passes the focus to the host.
func (f *FastScroll) Focus(delegate func(p Primitive)) {
	delegate(f.host)
}

// HasFocus reports whether the host has focus.
func (f *FastScroll) HasFocus() bool {
	return f.host.HasFocus()
}

// Blur blurs the host.
func (f *FastScroll) Blur() {
	f.host.Blur()
}

// Stop cancels timers, the subscription and any running scroll command.
func (f *FastScroll) Stop() {
	if f.settleTimer != nil {
		f.settleTimer.Stop()
		f.settleTimer = nil
	}
	f.settleGeneration++
	f.machine.Stop()
	f.drag.Stop()
	if f.cancel != nil {
		f.cancel()
		f.cancel = nil
	}
}

var _ Primitive = &FastScroll{}
