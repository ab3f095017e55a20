package lazybar

import (
	"context"

	"github.com/ayn2op/lazybar/keybind"
	"github.com/ayn2op/lazybar/scrollbar"
	"github.com/gdamore/tcell/v3"
)

// ScrollGridBuilder returns the grid item for index, or nil when the index is
// out of range.
type ScrollGridBuilder func(index int) ScrollListItem

// gridPlacement is the position of one item in content coordinates.
type gridPlacement struct {
	row    int
	lane   int
	top    int
	height int
}

// ScrollGrid displays a virtual grid of primitives. Items fill a fixed number
// of lanes (columns), either row by row or, when staggered, each item into
// the lane that currently ends first. Like ScrollList it publishes viewport
// snapshots and can be scrolled to an item.
type ScrollGrid struct {
	*Box

	Builder   ScrollGridBuilder
	lanes     int
	staggered bool
	rowGap    int
	laneGap   int
	itemCount int

	scrollY int
	pending int
	target  *scrollTarget

	// placements caches the layout for placedWidth.
	placements  []gridPlacement
	placedWidth int
	contentLen  int

	keyMap keybind.ScrollKeyMap

	subscribers scrollbar.Subscribers
	info        scrollbar.LayoutInfo
	drawn       bool
	lastScrollY int
}

// NewScrollGrid returns a grid with the given number of lanes.
func NewScrollGrid(lanes int) *ScrollGrid {
	return &ScrollGrid{
		Box:       NewBox(),
		lanes:     max(lanes, 1),
		laneGap:   1,
		itemCount: -1,
		keyMap:    keybind.DefaultScrollKeyMap(),
	}
}

// SetBuilder sets the builder used to create grid items on demand.
func (g *ScrollGrid) SetBuilder(builder ScrollGridBuilder) *ScrollGrid {
	g.Builder = builder
	g.Invalidate()
	return g
}

// SetItemCount sets the number of items. A negative count makes the grid
// find the count by probing the builder.
func (g *ScrollGrid) SetItemCount(n int) *ScrollGrid {
	g.itemCount = max(n, -1)
	g.Invalidate()
	return g
}

// ItemCount returns the number of items.
func (g *ScrollGrid) ItemCount() int {
	if g.Builder == nil {
		return 0
	}
	if g.itemCount >= 0 {
		return g.itemCount
	}
	return probeCount(func(index int) bool {
		return g.Builder(index) != nil
	})
}

// SetStaggered switches between aligned rows and staggered lanes.
func (g *ScrollGrid) SetStaggered(staggered bool) *ScrollGrid {
	g.staggered = staggered
	g.Invalidate()
	return g
}

// SetGaps sets the blank rows between items of a lane and the blank columns
// between lanes.
func (g *ScrollGrid) SetGaps(rowGap, laneGap int) *ScrollGrid {
	g.rowGap, g.laneGap = max(rowGap, 0), max(laneGap, 0)
	g.Invalidate()
	return g
}

// SetKeyMap sets the keybinds handled by the grid.
func (g *ScrollGrid) SetKeyMap(keyMap keybind.ScrollKeyMap) *ScrollGrid {
	g.keyMap = keyMap
	return g
}

// Invalidate drops the cached layout, for builders whose item heights
// changed.
func (g *ScrollGrid) Invalidate() {
	g.placements = nil
	g.placedWidth = -1
}

// Layout returns the scrollbar layout matching the grid.
func (g *ScrollGrid) Layout() scrollbar.Layout {
	if g.staggered {
		return scrollbar.StaggeredGridLayout
	}
	return scrollbar.GridLayout
}

// ScrollToIndex scrolls so that the row of item index starts the viewport,
// shifted by offset lines. The jump is applied on the next draw and dropped
// if ctx is done by then.
func (g *ScrollGrid) ScrollToIndex(ctx context.Context, index, offset int) error {
	if g.Builder == nil {
		return ErrNoBuilder
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	g.target = &scrollTarget{ctx: ctx, index: index, offset: offset}
	return nil
}

// ScrollToStart scrolls to the first row.
func (g *ScrollGrid) ScrollToStart() *ScrollGrid {
	g.scrollY, g.pending, g.target = 0, 0, nil
	return g
}

// ScrollToEnd scrolls to the last row.
func (g *ScrollGrid) ScrollToEnd() *ScrollGrid {
	g.scrollY, g.pending, g.target = g.contentLen, 0, nil
	return g
}

// Subscribe registers fn to receive a viewport snapshot after every draw.
func (g *ScrollGrid) Subscribe(fn func(scrollbar.LayoutInfo)) (cancel func()) {
	return g.subscribers.Add(fn)
}

// LayoutInfo returns the snapshot of the last draw.
func (g *ScrollGrid) LayoutInfo() scrollbar.LayoutInfo {
	return g.info
}

func (g *ScrollGrid) laneWidth(width int) int {
	return max((width-(g.lanes-1)*g.laneGap)/g.lanes, 1)
}

// place lays out every item for width.
func (g *ScrollGrid) place(width int) {
	if g.placements != nil && g.placedWidth == width {
		return
	}
	count := g.ItemCount()
	laneWidth := g.laneWidth(width)
	g.placements = make([]gridPlacement, 0, count)
	g.placedWidth = width

	bottoms := make([]int, g.lanes)
	rowTop, rowBottom := 0, 0
	for i := 0; i < count; i++ {
		item := g.Builder(i)
		if item == nil {
			break
		}
		height := max(item.Height(laneWidth), 1)

		var p gridPlacement
		if g.staggered {
			lane := 0
			for l := 1; l < g.lanes; l++ {
				if bottoms[l] < bottoms[lane] {
					lane = l
				}
			}
			p = gridPlacement{row: i / g.lanes, lane: lane, top: bottoms[lane], height: height}
			bottoms[lane] += height + g.rowGap
		} else {
			lane := i % g.lanes
			if lane == 0 && i > 0 {
				rowTop = rowBottom + g.rowGap
			}
			p = gridPlacement{row: i / g.lanes, lane: lane, top: rowTop, height: height}
			rowBottom = max(rowBottom, rowTop+height)
			bottoms[lane] = rowBottom + g.rowGap
		}
		g.placements = append(g.placements, p)
	}

	g.contentLen = 0
	for _, bottom := range bottoms {
		g.contentLen = max(g.contentLen, bottom-g.rowGap)
	}
}

func (g *ScrollGrid) maxScroll(height int) int {
	return max(g.contentLen-height, 0)
}

// Draw draws this primitive onto the screen.
func (g *ScrollGrid) Draw(screen tcell.Screen) {
	g.DrawForSubclass(screen, g)

	x, y, width, height := g.GetInnerRect()
	if width <= 0 || height <= 0 || g.Builder == nil {
		g.publish(nil, height)
		return
	}
	g.place(width)

	if target := g.target; target != nil {
		g.target = nil
		if target.ctx.Err() == nil && len(g.placements) > 0 {
			index := min(max(target.index, 0), len(g.placements)-1)
			g.scrollY = g.placements[index].top + max(target.offset, 0)
		}
	}
	g.scrollY = min(max(g.scrollY+g.pending, 0), g.maxScroll(height))
	g.pending = 0

	laneWidth := g.laneWidth(width)
	clipped := newClippedScreen(screen, x, y, width, height)
	visible := make([]int, 0, 32)
	for i, p := range g.placements {
		if p.top+p.height <= g.scrollY || p.top >= g.scrollY+height {
			continue
		}
		visible = append(visible, i)
		item := g.Builder(i)
		if item == nil {
			continue
		}
		item.SetRect(x+p.lane*(laneWidth+g.laneGap), y+p.top-g.scrollY, laneWidth, p.height)
		item.Draw(clipped)
	}

	g.publish(visible, height)
}

// publish builds the viewport snapshot and notifies subscribers.
func (g *ScrollGrid) publish(visible []int, height int) {
	items := make([]scrollbar.ItemInfo, 0, len(visible))
	for _, i := range visible {
		p := g.placements[i]
		items = append(items, scrollbar.ItemInfo{
			Index:  i,
			Offset: p.top - g.scrollY,
			Size:   p.height,
			Row:    p.row,
			Column: p.lane,
			Lane:   p.lane,
		})
	}

	moved := g.drawn && g.scrollY != g.lastScrollY
	g.drawn = true
	g.lastScrollY = g.scrollY

	g.info = scrollbar.LayoutInfo{
		Items:             items,
		ViewportStart:     0,
		ViewportEnd:       max(height, 0),
		Orientation:       scrollbar.Vertical,
		TotalItems:        len(g.placements),
		ScrollInProgress:  moved,
		CanScrollForward:  len(items) > 0 && g.scrollY < g.maxScroll(height),
		CanScrollBackward: g.scrollY > 0,
	}
	g.subscribers.Notify(g.info)
}

// InputHandler scrolls with the grid's keybinds.
func (g *ScrollGrid) InputHandler(event *tcell.EventKey) Command {
	_, _, _, height := g.GetInnerRect()
	km := g.keyMap

	switch {
	case keybind.Matches(event, km.Down):
		g.pending++
	case keybind.Matches(event, km.Up):
		g.pending--
	case keybind.Matches(event, km.JumpStart):
		g.ScrollToStart()
	case keybind.Matches(event, km.JumpEnd):
		g.ScrollToEnd()
	case keybind.Matches(event, km.PageDown):
		g.pending += max(height, 1)
	case keybind.Matches(event, km.PageUp):
		g.pending -= max(height, 1)
	default:
		return nil
	}
	return RedrawCommand{}
}

// MouseHandler scrolls with the wheel.
func (g *ScrollGrid) MouseHandler(action MouseAction, event *tcell.EventMouse) (Primitive, Command) {
	if !g.InRect(event.Position()) {
		return nil, nil
	}

	switch action {
	case MouseLeftDown:
		return nil, SetFocusCommand{Target: g}
	case MouseScrollUp:
		g.pending -= wheelLines
		return nil, RedrawCommand{}
	case MouseScrollDown:
		g.pending += wheelLines
		return nil, RedrawCommand{}
	}
	return nil, nil
}

var (
	_ Primitive                = &ScrollGrid{}
	_ scrollbar.ViewportSource = &ScrollGrid{}
	_ scrollbar.Scroller       = &ScrollGrid{}
)
