package lazybar

import (
	"context"
	"errors"

	"github.com/ayn2op/lazybar/keybind"
	"github.com/ayn2op/lazybar/scrollbar"
	"github.com/gdamore/tcell/v3"
)

// ErrNoBuilder is returned when scrolling a lazy layout without a builder.
var ErrNoBuilder = errors.New("lazybar: no builder")

// wheelLines is the number of lines scrolled per wheel notch.
const wheelLines = 3

// ScrollListItem represents a primitive which can be measured for a given width.
//
// Scroll list items are responsible for reporting their own height so the list can
// layout and scroll variable-height items.
type ScrollListItem interface {
	Primitive
	Height(width int) int
}

// ScrollListBuilder returns a list item for the given index and cursor position.
// It must return nil when the index is out of range.
type ScrollListBuilder func(index int, cursor int) ScrollListItem

// ScrollList displays a virtual list of primitives returned by a builder
// function. After every draw it publishes a snapshot of its viewport to
// subscribers, and it can be scrolled to an item from outside.
type ScrollList struct {
	*Box

	Builder  ScrollListBuilder
	gap      int
	trackEnd bool
	atEnd    bool
	reverse  bool
	// itemCount is the number of items, -1 when the builder is probed.
	itemCount int

	cursor int
	scroll scrollListState
	target *scrollTarget

	changed func(index int)
	keyMap  keybind.ScrollKeyMap

	subscribers scrollbar.Subscribers
	info        scrollbar.LayoutInfo
	// drawn is set after the first draw; lastTop and lastOffset hold the
	// position it left.
	drawn      bool
	lastTop    int
	lastOffset int

	lastDraw []scrollListDrawnItem
	lastRect scrollListRect
}

type scrollListState struct {
	// Index of the top item in the viewport.
	top int
	// Line offset into the top item; negative values mean the item is scrolled up.
	offset int
	// Pending scroll delta in lines to apply on the next draw.
	pending int
	// Ensure the cursor is visible on the next draw.
	wantsCursor bool
}

// scrollTarget is a jump requested by ScrollToIndex, applied on the next
// draw unless its context is done by then.
type scrollTarget struct {
	ctx    context.Context
	index  int
	offset int
}

type scrollListDrawnItem struct {
	index  int
	item   ScrollListItem
	row    int
	height int
}

type scrollListRect struct {
	x      int
	y      int
	width  int
	height int
}

// NewScrollList returns a new scroll list.
func NewScrollList() *ScrollList {
	return &ScrollList{
		Box:       NewBox(),
		cursor:    -1,
		itemCount: -1,
		keyMap:    keybind.DefaultScrollKeyMap(),
	}
}

// SetBuilder sets the builder used to create list items on demand.
func (l *ScrollList) SetBuilder(builder ScrollListBuilder) *ScrollList {
	l.Builder = builder
	return l
}

// SetItemCount sets the number of items. A negative count makes the list
// find the count by probing the builder.
func (l *ScrollList) SetItemCount(n int) *ScrollList {
	l.itemCount = max(n, -1)
	return l
}

// ItemCount returns the number of items.
func (l *ScrollList) ItemCount() int {
	if l.Builder == nil {
		return 0
	}
	if l.itemCount >= 0 {
		return l.itemCount
	}
	return probeCount(func(index int) bool {
		return l.Builder(index, l.cursor) != nil
	})
}

// probeCount finds the number of items of a builder by galloping to the
// first missing index and bisecting back.
func probeCount(exists func(index int) bool) int {
	if !exists(0) {
		return 0
	}
	lo, hi := 0, 1
	for exists(hi) {
		lo, hi = hi, hi*2
	}
	for hi-lo > 1 {
		mid := lo + (hi-lo)/2
		if exists(mid) {
			lo = mid
		} else {
			hi = mid
		}
	}
	return hi
}

// SetKeyMap sets the keybinds handled by the list.
func (l *ScrollList) SetKeyMap(keyMap keybind.ScrollKeyMap) *ScrollList {
	l.keyMap = keyMap
	return l
}

// Clear removes all items from the list by clearing the builder and resetting
// scroll state.
func (l *ScrollList) Clear() *ScrollList {
	l.Builder = nil
	l.cursor = -1
	l.scroll = scrollListState{}
	l.target = nil
	l.lastDraw = nil
	l.lastRect = scrollListRect{}
	l.atEnd = false
	return l
}

// SetGap sets the number of blank rows between items.
func (l *ScrollList) SetGap(gap int) *ScrollList {
	l.gap = max(gap, 0)
	return l
}

// SetTrackEnd toggles auto-scrolling when the view is already at the end.
func (l *ScrollList) SetTrackEnd(track bool) *ScrollList {
	l.trackEnd = track
	return l
}

// SetReverse lays the items out from the bottom up, the first item at the
// bottom edge.
func (l *ScrollList) SetReverse(reverse bool) *ScrollList {
	l.reverse = reverse
	return l
}

// ScrollToStart resets the scroll position to the first item, without
// changing the cursor.
func (l *ScrollList) ScrollToStart() *ScrollList {
	l.scroll.top = 0
	l.scroll.offset = 0
	l.scroll.pending = 0
	l.scroll.wantsCursor = false
	l.atEnd = false
	return l
}

// ScrollToEnd scrolls the view so the last items are visible.
func (l *ScrollList) ScrollToEnd() *ScrollList {
	_, _, width, height := l.GetInnerRect()
	if width <= 0 || height <= 0 {
		return l
	}
	l.scroll.top, l.scroll.offset = l.endScrollState(width, height)
	l.scroll.pending = 0
	l.scroll.wantsCursor = false
	l.atEnd = true
	return l
}

// ScrollToIndex scrolls so that item index starts the viewport, shifted by
// offset lines. The jump is applied on the next draw and dropped if ctx is
// done by then. Offsets past the end of the list stop at the end.
func (l *ScrollList) ScrollToIndex(ctx context.Context, index, offset int) error {
	if l.Builder == nil {
		return ErrNoBuilder
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	l.target = &scrollTarget{ctx: ctx, index: index, offset: offset}
	return nil
}

// SetCursor sets the currently selected item index.
func (l *ScrollList) SetCursor(index int) *ScrollList {
	if index < -1 {
		index = -1
	}
	if l.cursor != index {
		l.cursor = index
		l.atEnd = false
		l.ensureScroll()
		if l.changed != nil {
			l.changed(l.cursor)
		}
	}
	return l
}

// Cursor returns the current cursor index.
func (l *ScrollList) Cursor() int {
	return l.cursor
}

// SetPendingScroll sets a pending scroll amount, in lines. Positive numbers
// scroll toward the end.
func (l *ScrollList) SetPendingScroll(lines int) *ScrollList {
	l.scroll.pending = lines
	return l
}

// NextItem moves the cursor to the next item, if any.
func (l *ScrollList) NextItem() bool {
	if l.Builder == nil {
		return false
	}
	next := l.cursor + 1
	if l.Builder(next, l.cursor) == nil {
		return false
	}
	l.cursor = next
	l.ensureScroll()
	if l.changed != nil {
		l.changed(l.cursor)
	}
	return true
}

// PrevItem moves the cursor to the previous item, if any.
func (l *ScrollList) PrevItem() bool {
	if l.cursor <= 0 || l.Builder == nil {
		return false
	}
	if l.Builder(l.cursor-1, l.cursor) == nil {
		return false
	}
	l.cursor--
	l.ensureScroll()
	if l.changed != nil {
		l.changed(l.cursor)
	}
	return true
}

// SetChangedFunc sets a handler that is called when the cursor changes.
func (l *ScrollList) SetChangedFunc(handler func(index int)) *ScrollList {
	l.changed = handler
	return l
}

// Subscribe registers fn to receive a viewport snapshot after every draw.
func (l *ScrollList) Subscribe(fn func(scrollbar.LayoutInfo)) (cancel func()) {
	return l.subscribers.Add(fn)
}

// LayoutInfo returns the snapshot of the last draw.
func (l *ScrollList) LayoutInfo() scrollbar.LayoutInfo {
	return l.info
}

// Draw draws this primitive onto the screen.
func (l *ScrollList) Draw(screen tcell.Screen) {
	l.DrawForSubclass(screen, l)

	x, y, width, height := l.GetInnerRect()
	if width <= 0 || height <= 0 || l.Builder == nil {
		l.publish(nil, height)
		return
	}

	if target := l.target; target != nil {
		l.target = nil
		if target.ctx.Err() == nil {
			l.applyTarget(target.index, target.offset, width, height)
		}
	}

	// If we were already at the end, keep following new items without
	// forcing full scans during normal scrolling.
	if l.trackEnd && l.atEnd {
		l.scroll.top, l.scroll.offset = l.endScrollState(width, height)
		l.scroll.wantsCursor = false
	}

	ah := -(l.scroll.offset + l.scroll.pending)
	l.scroll.pending = 0
	if ah > 0 && l.scroll.top == 0 {
		ah = 0
		l.scroll.offset = 0
	}

	children, endReached := l.layout(width, height, ah)
	if len(children) == 0 {
		l.scroll.top = 0
		l.scroll.offset = 0
		l.lastDraw = nil
		l.lastRect = scrollListRect{x: x, y: y, width: width, height: height}
		l.atEnd = false
		l.publish(nil, height)
		return
	}

	last := children[len(children)-1]
	if !endReached && l.Builder(last.index+1, l.cursor) == nil {
		endReached = true
	}
	// Scrolled past the end: settle on the last full viewport.
	if endReached && last.row+last.height < height && (children[0].index > 0 || children[0].row < 0) {
		l.scroll.top, l.scroll.offset = l.endScrollState(width, height)
		children, _ = l.layout(width, height, -l.scroll.offset)
		// The end state places the last item at the bottom.
		endReached = true
		last = children[len(children)-1]
	}

	// Adjust rows so the cursor item is fully visible.
	if l.scroll.wantsCursor {
		for _, child := range children {
			if child.index != l.cursor {
				continue
			}
			if bottom := child.row + child.height; bottom > height {
				adj := height - bottom
				for i := range children {
					children[i].row += adj
				}
			}
			l.scroll.wantsCursor = false
			break
		}
	}

	// Keep the first partially visible item as the top anchor.
	for _, child := range children {
		span := child.height + l.gap
		if child.row <= 0 && child.row+span > 0 {
			l.scroll.top = child.index
			l.scroll.offset = -child.row
			break
		}
	}

	last = children[len(children)-1]
	l.atEnd = endReached && last.row+last.height <= height

	l.lastDraw = children
	l.lastRect = scrollListRect{x: x, y: y, width: width, height: height}

	clipped := newClippedScreen(screen, x, y, width, height)
	for _, child := range children {
		l.placeItem(child, x, y, width, height)
		child.item.Draw(clipped)
	}

	l.publish(children, height)
}

func (l *ScrollList) placeItem(child scrollListDrawnItem, x, y, width, height int) {
	row := child.row
	if l.reverse {
		row = height - child.row - child.height
	}
	child.item.SetRect(x, y+row, width, child.height)
}

// layout builds the items of the viewport, starting with the top item at
// row ah. A positive ah pulls in items above the top one.
func (l *ScrollList) layout(width, height, ah int) ([]scrollListDrawnItem, bool) {
	children := make([]scrollListDrawnItem, 0, 16)
	if ah > 0 {
		// We scrolled upward into the previous top item; prepend enough items above.
		l.insertChildren(&children, width, ah)
		if len(children) > 0 {
			last := children[len(children)-1]
			ah = last.row + last.height + l.gap
		}
	}

	for i := l.scroll.top; ; i++ {
		item := l.Builder(i, l.cursor)
		if item == nil {
			return children, true
		}

		itemHeight := l.itemHeight(item, width)
		children = append(children, scrollListDrawnItem{
			index:  i,
			item:   item,
			row:    ah,
			height: itemHeight,
		})
		ah += itemHeight + l.gap

		if l.scroll.wantsCursor && i <= l.cursor {
			continue
		}
		if ah >= height {
			return children, false
		}
	}
}

// publish builds the viewport snapshot and notifies subscribers.
func (l *ScrollList) publish(children []scrollListDrawnItem, height int) {
	items := make([]scrollbar.ItemInfo, 0, len(children))
	for _, child := range children {
		if child.row+child.height <= 0 || child.row >= height {
			continue
		}
		items = append(items, scrollbar.ItemInfo{
			Index:  child.index,
			Offset: child.row,
			Size:   child.height,
			Row:    child.index,
		})
	}

	moved := l.drawn && (l.scroll.top != l.lastTop || l.scroll.offset != l.lastOffset)
	l.drawn = true
	l.lastTop, l.lastOffset = l.scroll.top, l.scroll.offset

	l.info = scrollbar.LayoutInfo{
		Items:             items,
		ViewportStart:     0,
		ViewportEnd:       max(height, 0),
		Reverse:           l.reverse,
		Orientation:       scrollbar.Vertical,
		TotalItems:        l.ItemCount(),
		ScrollInProgress:  moved,
		CanScrollForward:  len(items) > 0 && !l.atEnd,
		CanScrollBackward: l.scroll.top > 0 || l.scroll.offset > 0,
	}
	l.subscribers.Notify(l.info)
}

// applyTarget moves the top of the viewport to item index, offset lines in.
func (l *ScrollList) applyTarget(index, offset, width, height int) {
	l.scroll.pending = 0
	l.scroll.wantsCursor = false
	count := l.ItemCount()
	if count == 0 {
		l.scroll.top, l.scroll.offset = 0, 0
		return
	}
	index = min(max(index, 0), count-1)
	offset = max(offset, 0)

	endTop, endOffset := l.endScrollState(width, height)
	if index > endTop || (index == endTop && offset >= endOffset) {
		l.scroll.top, l.scroll.offset = endTop, endOffset
		l.atEnd = true
		return
	}
	l.scroll.top, l.scroll.offset = index, offset
	l.atEnd = false
}

func (l *ScrollList) itemHeight(item ScrollListItem, width int) int {
	if item == nil {
		return 0
	}
	return max(item.Height(width), 1)
}

func (l *ScrollList) insertChildren(children *[]scrollListDrawnItem, width int, ah int) {
	if l.scroll.top <= 0 {
		return
	}

	l.scroll.top--
	for ah > 0 {
		// Account for the gap between the inserted item and the current top.
		ah -= l.gap
		item := l.Builder(l.scroll.top, l.cursor)
		if item == nil {
			break
		}
		height := l.itemHeight(item, width)
		ah -= height
		entry := scrollListDrawnItem{
			index:  l.scroll.top,
			item:   item,
			row:    ah,
			height: height,
		}
		*children = append([]scrollListDrawnItem{entry}, *children...)

		if l.scroll.top == 0 {
			break
		}
		l.scroll.top--
	}

	l.scroll.offset = ah

	if l.scroll.top == 0 && ah > 0 {
		// We hit the absolute top; normalize rows to avoid overscrolling.
		l.scroll.offset = 0
		row := 0
		for i := range *children {
			(*children)[i].row = row
			row += (*children)[i].height + l.gap
		}
	}
}

func (l *ScrollList) ensureScroll() {
	if l.cursor < 0 {
		l.scroll.wantsCursor = false
		return
	}
	if l.cursor > l.scroll.top {
		l.scroll.wantsCursor = true
		return
	}
	l.scroll.top = l.cursor
	l.scroll.offset = 0
}

// endScrollState returns the top item and offset that align the last item
// with the bottom of the viewport.
func (l *ScrollList) endScrollState(width int, height int) (int, int) {
	if l.Builder == nil || width <= 0 || height <= 0 {
		return 0, 0
	}
	last := l.ItemCount() - 1
	if last < 0 {
		return 0, 0
	}

	// Walk upward from the last item until we fill a viewport.
	total := 0
	for i := last; i >= 0; i-- {
		item := l.Builder(i, l.cursor)
		if item == nil {
			continue
		}
		if total > 0 {
			total += l.gap
		}
		itemHeight := l.itemHeight(item, width)
		if total+itemHeight > height {
			return i, max(total+itemHeight-height, 0)
		}
		total += itemHeight
	}
	return 0, 0
}

// direction is 1 when the end of the list lies down the screen.
func (l *ScrollList) direction() int {
	if l.reverse {
		return -1
	}
	return 1
}

// InputHandler moves the cursor and scrolls with the list's keybinds. Up and
// down follow the screen, so they swap in a reversed list.
func (l *ScrollList) InputHandler(event *tcell.EventKey) Command {
	_, _, _, height := l.GetInnerRect()
	page := max(height, 1)
	km := l.keyMap

	switch {
	case keybind.Matches(event, km.Down):
		if l.reverse {
			l.PrevItem()
		} else {
			l.NextItem()
		}
	case keybind.Matches(event, km.Up):
		if l.reverse {
			l.NextItem()
		} else {
			l.PrevItem()
		}
	case keybind.Matches(event, km.JumpStart):
		l.ScrollToStart()
	case keybind.Matches(event, km.JumpEnd):
		l.ScrollToEnd()
	case keybind.Matches(event, km.PageDown):
		l.scroll.pending += page * l.direction()
	case keybind.Matches(event, km.PageUp):
		l.scroll.pending -= page * l.direction()
	default:
		return nil
	}
	return RedrawCommand{}
}

// MouseHandler selects items on click and scrolls with the wheel.
func (l *ScrollList) MouseHandler(action MouseAction, event *tcell.EventMouse) (Primitive, Command) {
	x, y := event.Position()
	if !l.InRect(x, y) {
		return nil, nil
	}

	switch action {
	case MouseLeftDown:
		return nil, SetFocusCommand{Target: l}
	case MouseLeftClick:
		if index := l.indexAtPoint(x, y); index >= 0 {
			l.SetCursor(index)
		}
		return nil, RedrawCommand{}
	case MouseScrollUp:
		l.scroll.pending -= wheelLines * l.direction()
		return nil, RedrawCommand{}
	case MouseScrollDown:
		l.scroll.pending += wheelLines * l.direction()
		return nil, RedrawCommand{}
	}
	return nil, nil
}

func (l *ScrollList) indexAtPoint(x, y int) int {
	if len(l.lastDraw) == 0 {
		return -1
	}
	if x < l.lastRect.x || x >= l.lastRect.x+l.lastRect.width || y < l.lastRect.y || y >= l.lastRect.y+l.lastRect.height {
		return -1
	}

	row := y - l.lastRect.y
	if l.reverse {
		row = l.lastRect.height - 1 - row
	}
	for _, child := range l.lastDraw {
		if row >= child.row && row < child.row+child.height+l.gap {
			return child.index
		}
	}
	return -1
}

var (
	_ Primitive                = &ScrollList{}
	_ scrollbar.ViewportSource = &ScrollList{}
	_ scrollbar.Scroller       = &ScrollList{}
)
