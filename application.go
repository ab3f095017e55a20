package lazybar

import (
	"io"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/ayn2op/lazybar/scrollbar"
	"github.com/gdamore/tcell/v3"
)

const (
	// The size of the queued updates channel.
	updatesQueueSize = 100
	// The minimum time between two consecutive redraws on resize.
	redrawPause = 50 * time.Millisecond
	// The time between two animation frames.
	frameInterval = 16 * time.Millisecond
)

// DoubleClickInterval specifies the maximum time between clicks to register a
// double click rather than click.
var DoubleClickInterval = 500 * time.Millisecond

// MouseAction indicates one of the actions the mouse is logically doing.
type MouseAction int16

// Available mouse actions.
const (
	MouseMove MouseAction = iota
	MouseLeftDown
	MouseLeftUp
	MouseLeftClick
	MouseLeftDoubleClick
	MouseMiddleDown
	MouseMiddleUp
	MouseMiddleClick
	MouseMiddleDoubleClick
	MouseRightDown
	MouseRightUp
	MouseRightClick
	MouseRightDoubleClick
	MouseScrollUp
	MouseScrollDown
	MouseScrollLeft
	MouseScrollRight
)

// mouseButtons maps each button to the actions it produces.
var mouseButtons = []struct {
	button                  tcell.ButtonMask
	down, up, click, dclick MouseAction
}{
	{tcell.ButtonPrimary, MouseLeftDown, MouseLeftUp, MouseLeftClick, MouseLeftDoubleClick},
	{tcell.ButtonMiddle, MouseMiddleDown, MouseMiddleUp, MouseMiddleClick, MouseMiddleDoubleClick},
	{tcell.ButtonSecondary, MouseRightDown, MouseRightUp, MouseRightClick, MouseRightDoubleClick},
}

var mouseWheels = []struct {
	button tcell.ButtonMask
	action MouseAction
}{
	{tcell.WheelUp, MouseScrollUp},
	{tcell.WheelDown, MouseScrollDown},
	{tcell.WheelLeft, MouseScrollLeft},
	{tcell.WheelRight, MouseScrollRight},
}

// queuedUpdate is a function run on the event loop. If done is not nil it
// receives exactly one element after f has run.
type queuedUpdate struct {
	f    func()
	done chan struct{}
}

// Application owns the screen and runs the event loop. Key events go to the
// root primitive, mouse events are translated into MouseActions, and timers
// scheduled through AfterFunc run on the loop so widgets never race drawing.
//
// While the root primitive reports Animating, the application redraws every
// frame until it settles.
//
//	if err := lazybar.NewApplication().SetRoot(p).Run(); err != nil {
//	    log.Fatal(err)
//	}
type Application struct {
	sync.RWMutex

	// Only Run and Stop assign the screen after construction.
	screen tcell.Screen
	focus  Primitive
	root   Primitive

	events  chan tcell.Event
	updates chan queuedUpdate

	mouse mouseState

	// forceRedraw requests a full clear before the next frame.
	forceRedraw bool
	// ticking is set while the frame ticker runs.
	ticking bool

	// done is closed when Run returns.
	done     chan struct{}
	doneOnce sync.Once

	logger *log.Logger
}

// mouseState is the mouse history used to derive actions.
type mouseState struct {
	// capture receives all mouse events until its handler releases it.
	capture      Primitive
	lastX, lastY int
	downX, downY int
	lastClick    time.Time
	lastButtons  tcell.ButtonMask
}

// NewApplication creates and returns a new application.
func NewApplication() *Application {
	return &Application{
		updates: make(chan queuedUpdate, updatesQueueSize),
		done:    make(chan struct{}),
		logger:  log.New(io.Discard, "", 0),
	}
}

// SetLogger sets the logger used to trace the event loop. Nil discards.
func (a *Application) SetLogger(logger *log.Logger) *Application {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	a.Lock()
	a.logger = logger
	a.Unlock()
	return a
}

// SetScreen sets the screen used by Run. It has no effect once a screen is set.
func (a *Application) SetScreen(screen tcell.Screen) *Application {
	a.Lock()
	defer a.Unlock()
	if a.screen == nil {
		a.screen = screen
		a.forceRedraw = true
	}
	return a
}

func (a *Application) initScreen() (tcell.Screen, error) {
	a.Lock()
	defer a.Unlock()
	if a.screen == nil {
		screen, err := tcell.NewScreen()
		if err != nil {
			return nil, err
		}
		if err := screen.Init(); err != nil {
			return nil, err
		}
		a.screen = screen
	}
	return a.screen, nil
}

// Run starts the event loop and blocks until [Application.Stop] is called or
// the screen fails. While running, the application claims stdin and stdout.
func (a *Application) Run() error {
	screen, err := a.initScreen()
	if err != nil {
		return err
	}

	// Panics would leave the terminal in raw mode.
	defer func() {
		if p := recover(); p != nil {
			a.Stop()
			panic(p)
		}
	}()
	defer a.doneOnce.Do(func() { close(a.done) })

	a.draw()

	a.Lock()
	a.events = screen.EventQ()
	logger := a.logger
	a.Unlock()

	var (
		loopErr     error
		lastRedraw  time.Time
		redrawTimer *time.Timer
		paste       strings.Builder
		pasting     bool
	)
	for {
		select {
		case update := <-a.updates:
			update.f()
			if update.done != nil {
				update.done <- struct{}{}
			}
			continue
		case event := <-a.events:
			if event == nil {
				return loopErr
			}

			switch event := event.(type) {
			case *tcell.EventKey:
				if pasting {
					switch event.Key() {
					case tcell.KeyRune:
						paste.WriteString(event.Str())
					case tcell.KeyEnter:
						paste.WriteRune('\n')
					case tcell.KeyTab:
						paste.WriteRune('\t')
					}
					continue
				}
				a.dispatch(func(root Primitive) Command { return root.InputHandler(event) })
			case *tcell.EventPaste:
				if event.Start() {
					pasting = true
					paste.Reset()
					continue
				}
				pasting = false
				if paste.Len() > 0 {
					text := paste.String()
					a.dispatch(func(root Primitive) Command { return root.PasteHandler(text) })
				}
			case *tcell.EventResize:
				a.Lock()
				// The terminal may have been reset even if the size is unchanged.
				a.forceRedraw = true
				a.Unlock()
				if time.Since(lastRedraw) < redrawPause {
					if redrawTimer != nil {
						redrawTimer.Stop()
					}
					redrawTimer = time.AfterFunc(redrawPause, func() {
						a.events <- event
					})
				}
				lastRedraw = time.Now()
				a.draw()
			case *tcell.EventMouse:
				if a.fireMouseActions(event) {
					a.draw()
				}
			case *tcell.EventError:
				logger.Printf("screen error: %v", event)
				loopErr = event
				a.Stop()
			}
		}
	}
}

// dispatch hands a keyboard event to the focused root and runs its command.
func (a *Application) dispatch(handle func(root Primitive) Command) {
	a.RLock()
	root := a.root
	a.RUnlock()
	if root == nil || !root.HasFocus() {
		return
	}
	if a.executeCommand(handle(root)) {
		a.draw()
	}
}

// fireMouseActions derives mouse actions from event and forwards them to the
// capturing primitive, or to the root. It reports whether a redraw is needed.
func (a *Application) fireMouseActions(event *tcell.EventMouse) (handled bool) {
	m := &a.mouse
	var target Primitive
	fire := func(action MouseAction) {
		primitive := a.root
		if m.capture != nil {
			primitive = m.capture
			target = m.capture
		} else if target != nil {
			primitive = target
		}
		var capture Primitive
		if primitive != nil {
			var cmd Command
			capture, cmd = primitive.MouseHandler(action, event)
			if a.executeCommand(cmd) {
				handled = true
			}
		}
		m.capture = capture
	}

	x, y := event.Position()
	buttons := event.Buttons()
	clickMoved := x != m.downX || y != m.downY
	changes := buttons ^ m.lastButtons

	if x != m.lastX || y != m.lastY {
		fire(MouseMove)
		m.lastX, m.lastY = x, y
	}

	pressed := false
	for _, b := range mouseButtons {
		if changes&b.button == 0 {
			continue
		}
		if buttons&b.button != 0 {
			fire(b.down)
			pressed = true
			continue
		}
		fire(b.up)
		if clickMoved {
			continue
		}
		if now := time.Now(); m.lastClick.Add(DoubleClickInterval).Before(now) {
			fire(b.click)
			m.lastClick = now
		} else {
			fire(b.dclick)
			m.lastClick = time.Time{}
		}
	}

	for _, w := range mouseWheels {
		if buttons&w.button != 0 {
			fire(w.action)
		}
	}

	m.lastButtons = buttons
	if pressed {
		m.downX, m.downY = x, y
	}
	return handled
}

// Stop finalizes the screen, which ends Run.
func (a *Application) Stop() {
	a.Lock()
	defer a.Unlock()
	if a.screen == nil {
		return
	}
	a.screen.Fini()
	a.screen = nil
}

// ForceDraw draws the root immediately. It must only be called from the
// event loop, for example in a handler or an AfterFunc callback.
func (a *Application) ForceDraw() *Application {
	return a.draw()
}

func (a *Application) draw() *Application {
	a.Lock()
	screen := a.screen
	root := a.root
	forceRedraw := a.forceRedraw
	a.forceRedraw = false
	a.Unlock()

	if screen == nil || root == nil {
		return a
	}

	width, height := screen.Size()
	root.SetRect(0, 0, width, height)

	// Show only emits deltas, so a full clear is reserved for forced redraws.
	if forceRedraw {
		screen.Clear()
	}
	root.Draw(screen)
	screen.Show()

	if animating(root) {
		a.animate()
	}
	return a
}

func animating(p Primitive) bool {
	animated, ok := p.(Animated)
	return ok && animated.Animating()
}

// animate starts the frame ticker unless it is already running. The ticker
// redraws every frameInterval until the root primitive settles.
func (a *Application) animate() {
	a.Lock()
	if a.ticking {
		a.Unlock()
		return
	}
	a.ticking = true
	a.Unlock()
	go a.tick()
}

func (a *Application) tick() {
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	next := make(chan bool, 1)
	frame := queuedUpdate{f: func() {
		a.draw()
		a.RLock()
		root := a.root
		a.RUnlock()
		more := root != nil && animating(root)
		if !more {
			a.Lock()
			a.ticking = false
			a.Unlock()
		}
		next <- more
	}}

	for {
		select {
		case <-ticker.C:
		case <-a.done:
			return
		}

		// Skip the frame when the loop is busy.
		select {
		case a.updates <- frame:
		default:
			continue
		}

		select {
		case more := <-next:
			if !more {
				return
			}
		case <-a.done:
			return
		}
	}
}

// post queues f without waiting for it. It is dropped once Run has returned.
func (a *Application) post(f func()) {
	select {
	case a.updates <- queuedUpdate{f: f}:
	case <-a.done:
	}
}

// Redraw asks the event loop for a draw. Unlike ForceDraw it may be called
// from any goroutine and does not wait.
func (a *Application) Redraw() {
	go a.post(func() { a.draw() })
}

// AfterFunc runs f on the event loop after d and redraws.
func (a *Application) AfterFunc(d time.Duration, f func()) scrollbar.Timer {
	return time.AfterFunc(d, func() {
		a.post(func() {
			f()
			a.draw()
		})
	})
}

// QueueUpdate runs f on the event loop and waits for it to return.
func (a *Application) QueueUpdate(f func()) *Application {
	ch := make(chan struct{})
	select {
	case a.updates <- queuedUpdate{f: f, done: ch}:
		<-ch
	case <-a.done:
	}
	return a
}

// SetRoot sets the root primitive and focuses it.
func (a *Application) SetRoot(root Primitive) *Application {
	a.Lock()
	a.root = root
	if a.screen != nil {
		a.forceRedraw = true
	}
	a.Unlock()

	a.SetFocus(root)
	return a
}

// SetFocus blurs the focused primitive and focuses p. Primitives may pass
// focus on to a child through the delegate.
func (a *Application) SetFocus(p Primitive) *Application {
	a.Lock()
	if a.focus != nil {
		a.focus.Blur()
	}
	a.focus = p
	if a.screen != nil {
		a.screen.HideCursor()
	}
	a.Unlock()
	if p != nil {
		p.Focus(func(p Primitive) {
			a.SetFocus(p)
		})
	}
	return a
}

// GetFocus returns the focused primitive, or nil.
func (a *Application) GetFocus() Primitive {
	a.RLock()
	defer a.RUnlock()
	return a.focus
}

// executeCommand runs cmd and reports whether a redraw is needed.
func (a *Application) executeCommand(cmd Command) bool {
	if cmd == nil {
		return false
	}

	switch c := cmd.(type) {
	case BatchCommand:
		handled := false
		for _, item := range c {
			if a.executeCommand(item) {
				handled = true
			}
		}
		return handled
	case RedrawCommand:
		return true
	case QuitCommand:
		a.RLock()
		a.logger.Printf("quit requested")
		a.RUnlock()
		a.Stop()
		return false
	case SetFocusCommand:
		if c.Target == nil {
			return false
		}
		a.RLock()
		changed := a.focus != c.Target
		a.RUnlock()
		a.SetFocus(c.Target)
		return changed
	case SetTitleCommand:
		a.RLock()
		screen := a.screen
		a.RUnlock()
		if screen != nil {
			screen.SetTitle(string(c))
		}
		return false
	}
	// ConsumeEventCommand only stops propagation.
	return false
}
