package lazybar

import (
	"math"

	"github.com/ayn2op/lazybar/animate"
	"github.com/ayn2op/lazybar/scrollbar"
	"github.com/gdamore/tcell/v3"
)

const subcell = 8

// GlyphSet defines the fractional thumb glyphs. Index i holds the glyph
// covering i+1 eighths of a cell.
type GlyphSet struct {
	ThumbVerticalLower [8]string
	ThumbVerticalUpper [8]string

	ThumbHorizontalLeft  [8]string
	ThumbHorizontalRight [8]string
}

// LegacyComputingGlyphSet returns legacy-computing symbols for full 1/8 fractional fidelity.
func LegacyComputingGlyphSet() GlyphSet {
	return GlyphSet{
		ThumbVerticalLower: [8]string{"▁", "▂", "▃", "▄", "▅", "▆", "▇", "█"},
		ThumbVerticalUpper: [8]string{"▔", "🮂", "🮃", "▀", "🮄", "🮅", "🮆", "█"},

		ThumbHorizontalLeft:  [8]string{"▏", "▎", "▍", "▌", "▋", "▊", "▉", "█"},
		ThumbHorizontalRight: [8]string{"▕", "🮇", "🮈", "▐", "🮉", "🮊", "🮋", "█"},
	}
}

// UnicodeGlyphSet returns a standard-unicode-only approximation set.
func UnicodeGlyphSet() GlyphSet {
	return GlyphSet{
		ThumbVerticalLower: [8]string{"▁", "▂", "▃", "▄", "▅", "▆", "▇", "█"},
		ThumbVerticalUpper: [8]string{"▔", "▔", "▀", "▀", "▀", "▀", "█", "█"},

		ThumbHorizontalLeft:  [8]string{"▏", "▎", "▍", "▌", "▋", "▊", "▉", "█"},
		ThumbHorizontalRight: [8]string{"▕", "▕", "▐", "▐", "▐", "▐", "█", "█"},
	}
}

type scrollMetrics struct {
	trackCells int
	trackLen   int
	thumbLen   int
	thumbStart int
}

// computeScrollMetrics converts a thumb placed at offset with the given
// length, both in cells, into subcell units.
func computeScrollMetrics(trackCells int, offset, length float64) scrollMetrics {
	trackLen := trackCells * subcell
	if trackLen <= 0 {
		return scrollMetrics{}
	}
	thumbLen := min(max(int(math.Round(length*subcell)), 0), trackLen)
	thumbStart := min(max(int(math.Round(offset*subcell)), 0), trackLen-thumbLen)
	return scrollMetrics{trackCells: trackCells, trackLen: trackLen, thumbLen: thumbLen, thumbStart: thumbStart}
}

func cellFill(m scrollMetrics, cellIndex int) (start int, fillLen int) {
	if m.thumbLen == 0 {
		return 0, 0
	}
	cellStart := cellIndex * subcell
	cellEnd := cellStart + subcell
	thumbEnd := m.thumbStart + m.thumbLen
	start = max(m.thumbStart, cellStart)
	end := min(thumbEnd, cellEnd)
	if end <= start {
		return 0, 0
	}
	// Convert absolute subcell coverage into cell-local [start,len] used by fractional glyph selection.
	fillLen = min(end-start, subcell)
	start = min(max(start-cellStart, 0), subcell)
	return start, fillLen
}

// ScrollBar is an overlay scrollbar drawn over the trailing edge of a lazy
// layout. Its rect is the track; the thumb is drawn in the outer part of it,
// slides out of view when dormant and can be dragged with the mouse.
type ScrollBar struct {
	*Box

	orientation scrollbar.Orientation

	state   *scrollbar.State
	machine *scrollbar.Machine
	session *scrollbar.DragSession

	hovered bool
	// moved is set once the pointer moves during a press.
	moved bool
	// small bars are decorative: they ignore the mouse and size the thumb
	// by the visible fraction of the content.
	small bool

	thickness      int
	minThumbLength float64
	thumbLength    float64

	thumbColor tcell.Color
	dragColor  tcell.Color
	trackColor tcell.Color
	showTrack  bool

	glyphSet GlyphSet

	thumbMoved  func(travel, maxTravel float64)
	released    func()
	interaction func()
}

// NewScrollBar returns a vertical scrollbar reading its value from state.
func NewScrollBar(state *scrollbar.State) *ScrollBar {
	if state == nil {
		state = scrollbar.NewState()
	}
	s := &ScrollBar{
		Box:            NewBox(),
		orientation:    scrollbar.Vertical,
		state:          state,
		session:        scrollbar.NewDragSession(),
		thickness:      1,
		minThumbLength: 1,
		thumbLength:    3,
		thumbColor:     Styles.ScrollBarThumbColor,
		dragColor:      Styles.ScrollBarDragColor,
		trackColor:     Styles.ScrollBarTrackColor,
		glyphSet:       LegacyComputingGlyphSet(),
	}
	s.machine = scrollbar.NewMachine(scrollbar.DefaultMachineConfig(1), nil, nil)
	return s
}

// SetOrientation sets the scroll axis.
func (s *ScrollBar) SetOrientation(orientation scrollbar.Orientation) *ScrollBar {
	s.orientation = orientation
	return s
}

// SetMachine replaces the interaction state machine driving the fade.
func (s *ScrollBar) SetMachine(machine *scrollbar.Machine) *ScrollBar {
	if machine != nil {
		s.machine.Stop()
		s.machine = machine
	}
	return s
}

// Machine returns the interaction state machine.
func (s *ScrollBar) Machine() *scrollbar.Machine {
	return s.machine
}

// State returns the state the scrollbar reads.
func (s *ScrollBar) State() *scrollbar.State {
	return s.state
}

// SetThickness sets the thumb thickness in cells. The track is half as wide
// again.
func (s *ScrollBar) SetThickness(cells int) *ScrollBar {
	s.thickness = max(cells, 1)
	return s
}

// TrackThickness returns the track thickness in cells.
func (s *ScrollBar) TrackThickness() int {
	return int(math.Round(1.5 * float64(s.thickness)))
}

// SetThumbLength sets the fixed thumb length of interactive bars and the
// minimum thumb length of small bars, in cells.
func (s *ScrollBar) SetThumbLength(fixed, minimum float64) *ScrollBar {
	s.thumbLength = max(fixed, 0)
	s.minThumbLength = max(minimum, 0)
	return s
}

// SetSmall switches between the decorative and the interactive bar. A press
// in progress is dropped.
func (s *ScrollBar) SetSmall(small bool) *ScrollBar {
	if s.small == small {
		return s
	}
	s.small = small
	if small {
		s.reset()
	}
	return s
}

// IsSmall reports whether the bar is decorative.
func (s *ScrollBar) IsSmall() bool {
	return s.small
}

// SetColors sets the thumb, drag and track colors.
func (s *ScrollBar) SetColors(thumb, drag, track tcell.Color) *ScrollBar {
	s.thumbColor, s.dragColor, s.trackColor = thumb, drag, track
	return s
}

// SetShowTrack sets whether the track background is painted.
func (s *ScrollBar) SetShowTrack(show bool) *ScrollBar {
	s.showTrack = show
	return s
}

// SetGlyphSet applies a glyph set.
func (s *ScrollBar) SetGlyphSet(g GlyphSet) *ScrollBar {
	s.glyphSet = g
	return s
}

// SetThumbMovedFunc sets the handler called with the thumb travel, as a
// fraction of the whole track, and the maximum travel whenever the thumb is
// pressed or dragged.
func (s *ScrollBar) SetThumbMovedFunc(handler func(travel, maxTravel float64)) *ScrollBar {
	s.thumbMoved = handler
	return s
}

// SetReleasedFunc sets the handler called when a press ends.
func (s *ScrollBar) SetReleasedFunc(handler func()) *ScrollBar {
	s.released = handler
	return s
}

// SetInteractionFunc sets the handler called whenever the pressed, hovered
// or dragged signals change.
func (s *ScrollBar) SetInteractionFunc(handler func()) *ScrollBar {
	s.interaction = handler
	return s
}

// Signals returns the pointer signals of the thumb.
func (s *ScrollBar) Signals() scrollbar.Signals {
	pressed := s.session.Active()
	return scrollbar.Signals{
		Pressed: pressed,
		Hovered: s.hovered,
		Dragged: pressed && s.moved,
	}
}

// Travel returns the travel percent of the current press, NaN when idle.
func (s *ScrollBar) Travel() float64 {
	return s.session.Travel()
}

// Animating reports whether the thumb is fading or changing color.
func (s *ScrollBar) Animating() bool {
	return s.machine.Animating()
}

func (s *ScrollBar) length() int {
	_, _, width, height := s.GetRect()
	if s.orientation == scrollbar.Horizontal {
		return width
	}
	return height
}

func (s *ScrollBar) cross() int {
	_, _, width, height := s.GetRect()
	if s.orientation == scrollbar.Horizontal {
		return height
	}
	return width
}

func (s *ScrollBar) track() scrollbar.Track {
	return scrollbar.NewTrack(0, float64(s.length()))
}

func (s *ScrollBar) thumbSize(v scrollbar.Value, track scrollbar.Track) float64 {
	return scrollbar.ThumbLength(v, track, s.small, s.minThumbLength, s.thumbLength)
}

// pointer returns the offset of the center of the cell at (x, y) from the
// track start.
func (s *ScrollBar) pointer(x, y int) float64 {
	bx, by, _, _ := s.GetRect()
	if s.orientation == scrollbar.Horizontal {
		return float64(x-bx) + 0.5
	}
	return float64(y-by) + 0.5
}

// position maps a cell along the track and across it to screen coordinates.
func (s *ScrollBar) position(along, across int) (int, int) {
	x, y, _, _ := s.GetRect()
	if s.orientation == scrollbar.Horizontal {
		return x + along, y + across
	}
	return x + across, y + along
}

// thumbCross returns the cells across the track covered by the thumb, which
// sits against the outer edge and is pushed past it by the slide-out offset.
func (s *ScrollBar) thumbCross() (start, end int) {
	cross := s.cross()
	shift := int(math.Round(s.machine.Offset()))
	start = cross - s.thickness + shift
	end = cross + shift
	return max(start, 0), min(end, cross)
}

func (s *ScrollBar) glyph(start, fillLen int) string {
	if fillLen >= subcell {
		return s.glyphSet.ThumbVerticalLower[subcell-1]
	}
	ix := fillLen - 1
	if s.orientation == scrollbar.Horizontal {
		if start == 0 {
			return s.glyphSet.ThumbHorizontalLeft[ix]
		}
		return s.glyphSet.ThumbHorizontalRight[ix]
	}
	if start == 0 {
		return s.glyphSet.ThumbVerticalUpper[ix]
	}
	return s.glyphSet.ThumbVerticalLower[ix]
}

// Draw draws the track and the thumb over whatever is already on screen.
func (s *ScrollBar) Draw(screen tcell.Screen) {
	length, cross := s.length(), s.cross()
	if length <= 0 || cross <= 0 {
		return
	}
	v, ok := s.state.Value()
	if !ok {
		return
	}
	opacity := s.machine.Opacity()
	if opacity <= 0 {
		return
	}

	track := s.track()
	thumb := s.thumbSize(v, track)
	offset := scrollbar.ThumbOffset(track, thumb, scrollbar.ThumbTravelPercent(v, s.session.Travel()))
	m := computeScrollMetrics(length, offset, thumb)
	color := animate.BlendColors(s.thumbColor, s.dragColor, s.machine.ColorMix())
	crossStart, crossEnd := s.thumbCross()

	for along := 0; along < length; along++ {
		start, fillLen := cellFill(m, along)
		for across := 0; across < cross; across++ {
			x, y := s.position(along, across)
			_, style, _ := screen.Get(x, y)
			background := style.GetBackground()
			if s.showTrack {
				background = animate.BlendColors(background, s.trackColor, opacity)
			}

			if fillLen > 0 && across >= crossStart && across < crossEnd {
				foreground := animate.BlendColors(background, color, opacity)
				screen.Put(x, y, s.glyph(start, fillLen), tcell.StyleDefault.Foreground(foreground).Background(background))
			} else if s.showTrack {
				screen.Put(x, y, " ", tcell.StyleDefault.Background(background))
			}
		}
	}
}

func (s *ScrollBar) emit(travel float64) {
	v, ok := s.state.Value()
	if !ok || s.thumbMoved == nil {
		return
	}
	trackSize := v.ThumbTrackSize()
	s.thumbMoved(travel*trackSize, trackSize)
}

func (s *ScrollBar) notify() {
	if s.interaction != nil {
		s.interaction()
	}
}

func (s *ScrollBar) reset() {
	active := s.session.Active()
	s.session.End()
	s.moved = false
	s.hovered = false
	if active && s.released != nil {
		s.released()
	}
}

// MouseHandler starts a drag on a left press inside the track and keeps the
// mouse captured until the button is released.
func (s *ScrollBar) MouseHandler(action MouseAction, event *tcell.EventMouse) (Primitive, Command) {
	x, y := event.Position()
	inside := s.InRect(x, y)

	switch action {
	case MouseMove:
		if s.session.Active() {
			v, ok := s.state.Value()
			if !ok {
				return s, nil
			}
			travel, moved := s.session.Move(s.track(), s.pointer(x, y), s.thumbSize(v, s.track()))
			if moved {
				changed := !s.moved
				s.moved = true
				s.emit(travel)
				if changed {
					s.notify()
				}
			}
			return s, RedrawCommand{}
		}
		hovered := inside && !s.small
		if hovered != s.hovered {
			s.hovered = hovered
			s.notify()
			return nil, RedrawCommand{}
		}
	case MouseLeftDown:
		if !inside || s.small {
			return nil, nil
		}
		if _, ok := s.state.Value(); !ok {
			return nil, nil
		}
		s.moved = false
		s.emit(s.session.Start(s.track(), s.pointer(x, y)))
		s.notify()
		return s, RedrawCommand{}
	case MouseLeftUp:
		if !s.session.Active() {
			return nil, nil
		}
		s.reset()
		s.hovered = inside && !s.small
		s.notify()
		return nil, RedrawCommand{}
	}
	return nil, nil
}

var _ Primitive = &ScrollBar{}
