package help

import (
	"fmt"

	"github.com/ayn2op/lazybar/scrollbar"
)

// Status is the scroll position shown at the end of the short help line.
type Status struct {
	// First and Last are the lowest and highest visible item indexes.
	First, Last int
	Total       int
	State       scrollbar.InteractionState
}

// NewStatus summarizes a viewport snapshot. It reports false when nothing is
// visible.
func NewStatus(info scrollbar.LayoutInfo, state scrollbar.InteractionState) (Status, bool) {
	if len(info.Items) == 0 {
		return Status{}, false
	}
	// Grid lanes and reversed lists do not keep indexes in layout order.
	s := Status{First: info.Items[0].Index, Last: info.Items[0].Index, Total: info.TotalItems, State: state}
	for _, item := range info.Items[1:] {
		s.First = min(s.First, item.Index)
		s.Last = max(s.Last, item.Index)
	}
	return s, true
}

// String formats s with one-based indexes, followed by the interaction state
// unless the thumb is dormant.
func (s Status) String() string {
	out := fmt.Sprintf("%d-%d/%d", s.First+1, s.Last+1, s.Total)
	if s.State != scrollbar.Dormant {
		out += " " + s.State.String()
	}
	return out
}

func (h *Help) statusSegment() (segment, bool) {
	if h.status == nil {
		return segment{}, false
	}
	s, ok := h.status()
	if !ok {
		return segment{}, false
	}
	style := h.Styles.Status
	if s.State != scrollbar.Dormant {
		style = h.Styles.ActiveStatus
	}
	return segment{text: s.String(), style: style}, true
}
