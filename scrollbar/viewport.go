package scrollbar

import "slices"

// Layout selects how the next item along the main axis is found.
type Layout uint8

const (
	// ListLayout is a single column (or row) of items.
	ListLayout Layout = iota
	// GridLayout arranges items in rows (vertical) or columns (horizontal).
	GridLayout
	// StaggeredGridLayout arranges items in lanes of varying item length.
	StaggeredGridLayout
)

func (l Layout) String() string {
	switch l {
	case ListLayout:
		return "list"
	case GridLayout:
		return "grid"
	case StaggeredGridLayout:
		return "staggered"
	}
	return "unknown"
}

// ItemInfo describes one visible item of a lazy layout. Offset and Size are
// measured along the main axis, Offset relative to the viewport start.
type ItemInfo struct {
	Index  int
	Offset int
	Size   int
	Row    int
	Column int
	Lane   int
}

// LayoutInfo is an immutable snapshot of a lazy layout's viewport. Items are
// ordered as laid out, the first visible item first.
type LayoutInfo struct {
	Items         []ItemInfo
	ViewportStart int
	ViewportEnd   int
	Reverse       bool
	Orientation   Orientation
	TotalItems    int

	ScrollInProgress  bool
	CanScrollForward  bool
	CanScrollBackward bool
}

// ViewportSource notifies subscribers with a fresh snapshot whenever the
// viewport of a lazy layout changes.
type ViewportSource interface {
	// Subscribe registers fn and returns a function that removes it.
	Subscribe(fn func(LayoutInfo)) (cancel func())
}

// Subscribers is a small helper for ViewportSource implementations.
// Subscribers are notified in the order they were added.
type Subscribers struct {
	next int
	subs []subscriber
}

type subscriber struct {
	id int
	fn func(LayoutInfo)
}

// Add registers fn and returns its cancel function.
func (s *Subscribers) Add(fn func(LayoutInfo)) func() {
	id := s.next
	s.next++
	s.subs = append(s.subs, subscriber{id: id, fn: fn})
	return func() {
		s.subs = slices.DeleteFunc(s.subs, func(sub subscriber) bool {
			return sub.id == id
		})
	}
}

// Notify calls every subscriber with info.
func (s *Subscribers) Notify(info LayoutInfo) {
	for _, sub := range slices.Clone(s.subs) {
		sub.fn(info)
	}
}

// Len returns the number of subscribers.
func (s *Subscribers) Len() int {
	return len(s.subs)
}
