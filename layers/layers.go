package layers

import (
	"github.com/ayn2op/lazybar"
	"github.com/gdamore/tcell/v3"
)

// layer represents one layer of a Layers object.
type layer struct {
	name    string            // The layer's name.
	item    lazybar.Primitive // The layer's primitive.
	resize  bool              // Whether or not to resize the layer when it is drawn.
	visible bool              // Whether or not this layer is visible.
	enabled bool              // Whether or not this layer can receive focus/input.
	overlay bool              // Whether this layer applies a background style to layers behind it.
}

// Layers is a container for other primitives laid out on top of each other.
// The layers are drawn from back to front and can optionally apply a
// background style to the layers behind them (typically used for modal dialogs).
type Layers struct {
	*lazybar.Box

	// The contained layers. (Visible) layers are drawn from back to front.
	layers []*layer
	// The style applied to layers behind the active overlay layer.
	backgroundLayerStyle tcell.Style

	// We keep a reference to the function which allows us to set the focus to
	// a newly visible layer.
	setFocus func(p lazybar.Primitive)
	// An optional handler which is called whenever the visibility or the order of
	// layers changes.
	changed func()
}

// Option configures a layer on Add.
type Option func(*layer)

// WithName sets the layer's name.
func WithName(name string) Option {
	return func(l *layer) {
		l.name = name
	}
}

// WithResize sets whether the layer is resized to the container's inner rect.
func WithResize(resize bool) Option {
	return func(l *layer) {
		l.resize = resize
	}
}

// WithVisible sets the initial visibility of the layer.
func WithVisible(visible bool) Option {
	return func(l *layer) {
		l.visible = visible
	}
}

// WithEnabled sets whether the layer can receive focus and input.
func WithEnabled(enabled bool) Option {
	return func(l *layer) {
		l.enabled = enabled
	}
}

// WithOverlay marks this layer as an overlay layer.
func WithOverlay() Option {
	return func(l *layer) {
		l.overlay = true
	}
}

// New returns a new Layers object.
func New() *Layers {
	return &Layers{Box: lazybar.NewBox()}
}

// SetChangedFunc sets a handler which is called whenever the visibility or the
// order of any visible layers changes.
func (l *Layers) SetChangedFunc(handler func()) *Layers {
	l.changed = handler
	return l
}

// GetLayerCount returns the number of layers currently stored in this object.
func (l *Layers) GetLayerCount() int {
	return len(l.layers)
}

// GetVisible returns whether the given layer is visible.
func (l *Layers) GetVisible(name string) bool {
	if layer := l.find(name); layer != nil {
		return layer.visible
	}
	return false
}

// AddLayer adds a new layer for the given primitive. A layer with the same
// name is replaced.
func (l *Layers) AddLayer(item lazybar.Primitive, opts ...Option) *Layers {
	hasFocus := l.HasFocus()
	newLayer := &layer{
		item:    item,
		visible: true,
		enabled: true,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(newLayer)
		}
	}
	if newLayer.name != "" {
		for index, layer := range l.layers {
			if layer.name == newLayer.name {
				l.layers = append(l.layers[:index], l.layers[index+1:]...)
				break
			}
		}
	}
	l.layers = append(l.layers, newLayer)
	l.notify()
	if hasFocus {
		l.Focus(l.setFocus)
	}
	return l
}

// RemoveLayer removes the layer with the given name.
func (l *Layers) RemoveLayer(name string) *Layers {
	hasFocus := l.HasFocus()
	for index, layer := range l.layers {
		if layer.name == name {
			l.layers = append(l.layers[:index], l.layers[index+1:]...)
			if layer.visible {
				l.notify()
			}
			break
		}
	}
	if hasFocus {
		l.Focus(l.setFocus)
	}
	return l
}

// HasLayer returns true if a layer with the given name exists in this object.
func (l *Layers) HasLayer(name string) bool {
	return l.find(name) != nil
}

// ShowLayer sets a layer's visibility to "true" (in addition to any other layers
// which are already visible).
func (l *Layers) ShowLayer(name string) *Layers {
	return l.setVisible(name, true)
}

// HideLayer sets a layer's visibility to "false".
func (l *Layers) HideLayer(name string) *Layers {
	return l.setVisible(name, false)
}

// ToggleLayer flips a layer's visibility.
func (l *Layers) ToggleLayer(name string) *Layers {
	return l.setVisible(name, !l.GetVisible(name))
}

func (l *Layers) setVisible(name string, visible bool) *Layers {
	if layer := l.find(name); layer != nil && layer.visible != visible {
		layer.visible = visible
		l.notify()
	}
	if l.HasFocus() {
		l.Focus(l.setFocus)
	}
	return l
}

// SendToFront changes the order of the layers such that the layer with the given
// name comes last, causing it to be drawn last with the next update (if visible).
func (l *Layers) SendToFront(name string) *Layers {
	for index, layer := range l.layers {
		if layer.name == name {
			if index < len(l.layers)-1 {
				l.layers = append(append(l.layers[:index], l.layers[index+1:]...), layer)
			}
			if layer.visible {
				l.notify()
			}
			break
		}
	}
	if l.HasFocus() {
		l.Focus(l.setFocus)
	}
	return l
}

// GetFrontLayer returns the front-most visible layer. If there are no visible
// layers, ("", nil) is returned.
func (l *Layers) GetFrontLayer() (name string, item lazybar.Primitive) {
	for index := len(l.layers) - 1; index >= 0; index-- {
		if l.layers[index].visible {
			return l.layers[index].name, l.layers[index].item
		}
	}
	return
}

// GetLayer returns the layer with the given name. If no such layer exists, nil is
// returned.
func (l *Layers) GetLayer(name string) lazybar.Primitive {
	if layer := l.find(name); layer != nil {
		return layer.item
	}
	return nil
}

// SetLayerEnabled enables or disables a layer. Disabled layers are still drawn
// (if visible) but do not receive focus or input.
func (l *Layers) SetLayerEnabled(name string, enabled bool) *Layers {
	hasFocus := l.HasFocus()
	if layer := l.find(name); layer != nil && layer.enabled != enabled {
		if !enabled && layer.item.HasFocus() {
			layer.item.Blur()
		}
		layer.enabled = enabled
		if layer.visible {
			l.notify()
		}
	}
	if hasFocus {
		l.Focus(l.setFocus)
	}
	return l
}

// SetBackgroundLayerStyle sets the style applied to layers behind the active
// overlay layer.
func (l *Layers) SetBackgroundLayerStyle(style tcell.Style) *Layers {
	if l.backgroundLayerStyle != style {
		l.backgroundLayerStyle = style
		l.notify()
	}
	return l
}

func (l *Layers) find(name string) *layer {
	for _, layer := range l.layers {
		if layer.name == name {
			return layer
		}
	}
	return nil
}

func (l *Layers) notify() {
	if l.changed != nil {
		l.changed()
	}
}

// Animating reports whether a visible layer is animating.
func (l *Layers) Animating() bool {
	for _, layer := range l.layers {
		if !layer.visible {
			continue
		}
		if animated, ok := layer.item.(lazybar.Animated); ok && animated.Animating() {
			return true
		}
	}
	return false
}

// HasFocus returns whether or not this primitive has focus.
func (l *Layers) HasFocus() bool {
	for _, layer := range l.layers {
		if layer.enabled && layer.item.HasFocus() {
			return true
		}
	}
	return l.Box.HasFocus()
}

// Focus is called by the application when the primitive receives focus.
func (l *Layers) Focus(delegate func(p lazybar.Primitive)) {
	if delegate == nil {
		return // We cannot delegate so we cannot focus.
	}
	l.setFocus = delegate
	if top := l.topVisibleEnabledLayer(); top != nil {
		delegate(top.item)
		return
	}
	l.Box.Focus(delegate)
}

// Draw draws this primitive onto the screen.
func (l *Layers) Draw(screen tcell.Screen) {
	l.DrawForSubclass(screen, l)

	overlayIndex := l.topVisibleEnabledOverlayIndex()
	var ovScreen *overlayScreen
	if overlayIndex >= 0 {
		ovScreen = newOverlayScreen(screen, l.backgroundLayerStyle)
	}
	for index, layer := range l.layers {
		if !layer.visible {
			continue
		}
		layerScreen := screen
		if ovScreen != nil && index < overlayIndex {
			// Draw lower layers through the overlay screen so only the touched
			// cells get styled (avoids a full-screen pass).
			layerScreen = ovScreen
		}
		if layer.resize {
			x, y, width, height := l.GetInnerRect()
			layer.item.SetRect(x, y, width, height)
		}
		layer.item.Draw(layerScreen)
	}
}

// MouseHandler passes mouse events to the front-most visible layer that
// takes them, but never to layers behind an active overlay layer.
func (l *Layers) MouseHandler(action lazybar.MouseAction, event *tcell.EventMouse) (lazybar.Primitive, lazybar.Command) {
	if !l.InRect(event.Position()) {
		return nil, nil
	}

	overlayIndex := l.topVisibleEnabledOverlayIndex()
	for index := len(l.layers) - 1; index >= 0; index-- {
		layer := l.layers[index]
		if !layer.visible || !layer.enabled {
			continue
		}
		if overlayIndex >= 0 && index < overlayIndex {
			break
		}
		capture, cmd := layer.item.MouseHandler(action, event)
		if capture != nil || cmd != nil {
			return capture, cmd
		}
	}

	// If an overlay layer is active, block input to layers behind it even if
	// the top layer didn't take the event.
	if overlayIndex >= 0 {
		return nil, lazybar.ConsumeEventCommand{}
	}
	return nil, nil
}

// InputHandler passes key events to the focused layer.
func (l *Layers) InputHandler(event *tcell.EventKey) lazybar.Command {
	for _, layer := range l.layers {
		if layer.enabled && layer.item.HasFocus() {
			return layer.item.InputHandler(event)
		}
	}
	return nil
}

// PasteHandler passes pasted text to the focused layer.
func (l *Layers) PasteHandler(text string) lazybar.Command {
	for _, layer := range l.layers {
		if layer.enabled && layer.item.HasFocus() {
			return layer.item.PasteHandler(text)
		}
	}
	return nil
}

func (l *Layers) topVisibleEnabledLayer() *layer {
	for index := len(l.layers) - 1; index >= 0; index-- {
		layer := l.layers[index]
		if layer.visible && layer.enabled {
			return layer
		}
	}
	return nil
}

// topVisibleEnabledOverlayIndex returns the index of the top-most overlay
// layer that is both visible and enabled. Only one overlay is applied at a
// time.
func (l *Layers) topVisibleEnabledOverlayIndex() int {
	for index := len(l.layers) - 1; index >= 0; index-- {
		layer := l.layers[index]
		if layer.visible && layer.enabled && layer.overlay {
			return index
		}
	}
	return -1
}

type overlayScreen struct {
	tcell.Screen
	overlay tcell.Style
}

func newOverlayScreen(screen tcell.Screen, overlay tcell.Style) *overlayScreen {
	return &overlayScreen{
		Screen:  screen,
		overlay: overlay,
	}
}

func (s *overlayScreen) SetContent(x int, y int, primary rune, combining []rune, style tcell.Style) {
	s.Screen.SetContent(x, y, primary, combining, applyBackgroundStyle(style, s.overlay))
}

func (s *overlayScreen) Put(x int, y int, str string, style tcell.Style) (string, int) {
	return s.Screen.Put(x, y, str, applyBackgroundStyle(style, s.overlay))
}

func (s *overlayScreen) PutStr(x int, y int, str string) {
	// Use StyleDefault so the screen's default style still applies, then overlay.
	s.Screen.PutStrStyled(x, y, str, applyBackgroundStyle(tcell.StyleDefault, s.overlay))
}

func (s *overlayScreen) PutStrStyled(x int, y int, str string, style tcell.Style) {
	s.Screen.PutStrStyled(x, y, str, applyBackgroundStyle(style, s.overlay))
}

func applyBackgroundStyle(base tcell.Style, overlay tcell.Style) tcell.Style {
	// Apply overlay colors only when explicitly set so existing content
	// colors survive.
	if fg := overlay.GetForeground(); fg != tcell.ColorDefault {
		base = base.Foreground(fg)
	}
	if bg := overlay.GetBackground(); bg != tcell.ColorDefault {
		base = base.Background(bg)
	}

	// Attributes are additive.
	if overlay.HasBold() {
		base = base.Bold(true)
	}
	if overlay.HasDim() {
		base = base.Dim(true)
	}
	if overlay.HasItalic() {
		base = base.Italic(true)
	}
	if overlay.HasReverse() {
		base = base.Reverse(true)
	}
	return base
}
