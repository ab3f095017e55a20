package scrollbar

import "math"

// Derive computes the scrollbar value for a viewport snapshot of a lazy layout
// holding itemsAvailable items. It reports false when there is nothing to
// emit this cycle: no items, nothing visible, or a first item whose position
// cannot be interpolated.
func Derive(layout Layout, info LayoutInfo, itemsAvailable int) (Value, bool) {
	if itemsAvailable <= 0 || len(info.Items) == 0 {
		return Value{}, false
	}

	firstIndex := InterpolateFirstItemIndex(
		info.Items,
		func(item ItemInfo) int { return item.Size },
		func(item ItemInfo) int { return item.Offset },
		nextOnMainAxis(layout, info),
		func(item ItemInfo) int { return item.Index },
	)
	if math.IsNaN(firstIndex) {
		return Value{}, false
	}
	total := float64(itemsAvailable)
	firstIndex = min(firstIndex, total)

	var visible float64
	for _, item := range info.Items {
		visible += ItemVisibilityPercentage(item.Size, item.Offset, info.ViewportStart, info.ViewportEnd)
	}

	thumbSize := min(visible/total, 1)
	travel := min(firstIndex/total, 1)
	// Staggered grids keep their travel even when laid out in reverse.
	if info.Reverse && layout != StaggeredGridLayout {
		travel = 1 - travel
	}
	return NewValue(thumbSize, travel), true
}

func nextOnMainAxis(layout Layout, info LayoutInfo) func(ItemInfo) (ItemInfo, bool) {
	items := info.Items
	find := func(match func(item ItemInfo) bool) (ItemInfo, bool) {
		for i := 1; i < len(items); i++ {
			if match(items[i]) {
				return items[i], true
			}
		}
		return ItemInfo{}, false
	}

	switch layout {
	case GridLayout:
		return func(first ItemInfo) (ItemInfo, bool) {
			if info.Orientation == Horizontal {
				return find(func(item ItemInfo) bool { return item.Column != first.Column })
			}
			return find(func(item ItemInfo) bool { return item.Row != first.Row })
		}
	case StaggeredGridLayout:
		return func(first ItemInfo) (ItemInfo, bool) {
			return find(func(item ItemInfo) bool { return item.Lane == first.Lane })
		}
	default:
		return func(ItemInfo) (ItemInfo, bool) {
			return find(func(ItemInfo) bool { return true })
		}
	}
}

// Deriver turns viewport snapshots into scrollbar values and drops values
// equal to the last one emitted.
type Deriver struct {
	layout         Layout
	itemsAvailable int
	state          *State
	changed        func(Value)
}

// NewDeriver returns a deriver for layout that stores into state.
func NewDeriver(layout Layout, state *State) *Deriver {
	if state == nil {
		state = NewState()
	}
	return &Deriver{layout: layout, state: state}
}

// SetItemsAvailable sets the total number of items. When unset, or zero, the
// snapshot's TotalItems is used.
func (d *Deriver) SetItemsAvailable(n int) *Deriver {
	d.itemsAvailable = max(n, 0)
	return d
}

// SetChangedFunc sets a handler called with every emitted value.
func (d *Deriver) SetChangedFunc(handler func(Value)) *Deriver {
	d.changed = handler
	return d
}

// Layout returns the layout the deriver derives for.
func (d *Deriver) Layout() Layout {
	return d.layout
}

// State returns the state the deriver writes to.
func (d *Deriver) State() *State {
	return d.state
}

// Update derives a value from info and stores it. It reports whether a new
// value was emitted.
func (d *Deriver) Update(info LayoutInfo) (Value, bool) {
	total := d.itemsAvailable
	if total == 0 {
		total = info.TotalItems
	}
	v, ok := Derive(d.layout, info, total)
	if !ok {
		return Value{}, false
	}
	if !d.state.Store(v) {
		return v, false
	}
	if d.changed != nil {
		d.changed(v)
	}
	return v, true
}

// Observe subscribes the deriver to source. Every notification carries a
// complete snapshot, so a newer one simply supersedes the previous.
func (d *Deriver) Observe(source ViewportSource) (cancel func()) {
	return source.Subscribe(func(info LayoutInfo) {
		d.Update(info)
	})
}
