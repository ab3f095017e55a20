package scrollbar

import (
	"io"
	"log"
	"sync"
	"time"

	"github.com/ayn2op/lazybar/animate"
)

// InteractionState is the visual state of the thumb.
type InteractionState uint8

const (
	// Dormant is the idle state; the thumb slides out of view after a delay.
	Dormant InteractionState = iota
	// Scrolling means the content is being scrolled by the user.
	Scrolling
	// Dragging means the thumb itself is pressed, hovered or dragged.
	Dragging
)

func (s InteractionState) String() string {
	switch s {
	case Dormant:
		return "dormant"
	case Scrolling:
		return "scrolling"
	case Dragging:
		return "dragging"
	}
	return "unknown"
}

// Signals is the input of one state machine evaluation.
type Signals struct {
	Pressed bool
	Hovered bool
	Dragged bool

	CanScrollForward  bool
	CanScrollBackward bool
	ScrollInProgress  bool

	// FlingEnded reports that scrolling has settled.
	FlingEnded bool
}

// Dragging reports whether the thumb is interacted with.
func (s Signals) Dragging() bool {
	return s.Pressed || s.Hovered || s.Dragged
}

// Scrolling reports whether scrollable content is mid-scroll.
func (s Signals) Scrolling() bool {
	return (s.CanScrollForward || s.CanScrollBackward) && s.ScrollInProgress
}

// Default machine timings.
const (
	DefaultDormantDelay = 1500 * time.Millisecond
	DefaultHideDuration = 600 * time.Millisecond
)

// MachineConfig configures a Machine.
type MachineConfig struct {
	// Thickness is the distance the thumb slides out when dormant.
	Thickness float64
	// DormantDelay is the time spent dormant before the thumb hides.
	DormantDelay time.Duration
	// HideDuration is the duration of the slide in and out.
	HideDuration time.Duration
	// ColorStiffness is the stiffness of the color spring.
	ColorStiffness float64
}

// DefaultMachineConfig returns the default configuration for a thumb of the
// given thickness.
func DefaultMachineConfig(thickness float64) MachineConfig {
	return MachineConfig{
		Thickness:      thickness,
		DormantDelay:   DefaultDormantDelay,
		HideDuration:   DefaultHideDuration,
		ColorStiffness: animate.StiffnessLow,
	}
}

// Machine tracks the interaction state of a scrollbar thumb and drives its
// color and slide-out animations.
type Machine struct {
	mu sync.Mutex

	config    MachineConfig
	scheduler Scheduler

	state     InteractionState
	hideTimer Timer
	// generation invalidates hide timers that fire after being cancelled.
	generation uint64

	color  animate.Animator
	offset animate.Animator

	changed func(InteractionState)
	wake    func()
	logger  *log.Logger
}

// NewMachine returns a dormant machine with the thumb hidden. A nil scheduler
// uses TimeScheduler and a nil clock uses time.Now.
func NewMachine(config MachineConfig, scheduler Scheduler, clock animate.Clock) *Machine {
	if scheduler == nil {
		scheduler = TimeScheduler
	}
	if config.Thickness <= 0 {
		config.Thickness = 1
	}
	if config.ColorStiffness <= 0 {
		config.ColorStiffness = animate.StiffnessLow
	}
	return &Machine{
		config:    config,
		scheduler: scheduler,
		state:     Dormant,
		color:     animate.NewFloat(0, clock),
		offset:    animate.NewFloat(config.Thickness, clock),
		logger:    log.New(io.Discard, "", 0),
	}
}

// SetChangedFunc sets a handler called after every state transition.
func (m *Machine) SetChangedFunc(handler func(InteractionState)) *Machine {
	m.mu.Lock()
	m.changed = handler
	m.mu.Unlock()
	return m
}

// SetWakeFunc sets a handler called when the hide animation is armed by the
// dormancy timer, so the owner can schedule frames.
func (m *Machine) SetWakeFunc(handler func()) *Machine {
	m.mu.Lock()
	m.wake = handler
	m.mu.Unlock()
	return m
}

// SetLogger sets the logger used to trace transitions.
func (m *Machine) SetLogger(logger *log.Logger) *Machine {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	m.mu.Lock()
	m.logger = logger
	m.mu.Unlock()
	return m
}

// Evaluate applies signals and returns the resulting state.
func (m *Machine) Evaluate(signals Signals) InteractionState {
	m.mu.Lock()

	prev := m.state
	next := prev
	switch {
	case signals.Dragging():
		next = Dragging
	case signals.Scrolling():
		next = Scrolling
	case signals.FlingEnded:
		next = Dormant
	}

	if next != Dormant {
		m.cancelHideLocked()
		m.offset.SetTarget(0, animate.Tween(m.config.HideDuration, nil))
	} else if prev != Dormant {
		m.scheduleHideLocked()
	}

	colorTarget := 0.0
	if next == Dragging {
		colorTarget = 1
	}
	m.color.SetTarget(colorTarget, animate.Spring(m.config.ColorStiffness))

	m.state = next
	changed := m.changed
	logger := m.logger
	m.mu.Unlock()

	if next != prev {
		logger.Printf("scrollbar: %s -> %s", prev, next)
		if changed != nil {
			changed(next)
		}
	}
	return next
}

func (m *Machine) cancelHideLocked() {
	m.generation++
	if m.hideTimer != nil {
		m.hideTimer.Stop()
		m.hideTimer = nil
	}
}

func (m *Machine) scheduleHideLocked() {
	m.cancelHideLocked()
	generation := m.generation
	m.hideTimer = m.scheduler.AfterFunc(m.config.DormantDelay, func() {
		m.armHide(generation)
	})
}

// armHide starts the slide-out unless the timer was cancelled meanwhile.
func (m *Machine) armHide(generation uint64) {
	m.mu.Lock()
	if generation != m.generation || m.state != Dormant {
		m.mu.Unlock()
		return
	}
	m.hideTimer = nil
	m.offset.SetTarget(m.config.Thickness, animate.Tween(m.config.HideDuration, nil))
	wake := m.wake
	m.mu.Unlock()

	if wake != nil {
		wake()
	}
}

// Adopt takes over the state, handlers and thumb position of prev, which is
// stopped. Offsets are scaled to the thickness of m.
func (m *Machine) Adopt(prev *Machine) *Machine {
	prev.mu.Lock()
	state, changed, wake := prev.state, prev.changed, prev.wake
	hidePending := prev.hideTimer != nil
	prev.cancelHideLocked()
	prev.mu.Unlock()

	scale := m.config.Thickness / prev.config.Thickness
	offset, offsetTarget := prev.offset.Value()*scale, prev.offset.Target()*scale

	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = state
	m.changed = changed
	m.wake = wake
	m.offset.Snap(offset)
	m.offset.SetTarget(offsetTarget, animate.Tween(m.config.HideDuration, nil))
	m.color.Snap(prev.color.Value())
	colorTarget := 0.0
	if state == Dragging {
		colorTarget = 1
	}
	m.color.SetTarget(colorTarget, animate.Spring(m.config.ColorStiffness))
	if hidePending {
		m.scheduleHideLocked()
	}
	return m
}

// State returns the current interaction state.
func (m *Machine) State() InteractionState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// HidePending reports whether the dormancy timer is running.
func (m *Machine) HidePending() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.hideTimer != nil
}

// Offset returns the current slide-out distance, 0 when fully shown.
func (m *Machine) Offset() float64 {
	return m.offset.Value()
}

// Opacity returns the thumb opacity. The fade is coupled to the slide-out:
// fully slid out means fully transparent.
func (m *Machine) Opacity() float64 {
	return clamp01(1 - m.offset.Value()/m.config.Thickness)
}

// ColorMix returns the blend factor between the default thumb color (0) and
// the drag color (1).
func (m *Machine) ColorMix() float64 {
	return clamp01(m.color.Value())
}

// Animating reports whether the color or the offset is still moving.
func (m *Machine) Animating() bool {
	return m.color.Animating() || m.offset.Animating()
}

// Stop cancels any pending timer.
func (m *Machine) Stop() {
	m.mu.Lock()
	m.cancelHideLocked()
	m.mu.Unlock()
}
