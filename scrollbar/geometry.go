package scrollbar

import "math"

// InterpolateFirstItemIndex linearly interpolates the index of the first item
// in items so the thumb can advance in fractions of an item.
//
// The result lies in [first, next] where next is the index of the item
// returned by nextOnMainAxis, or in [first, first+1) when there is none. NaN
// is returned when the position cannot be computed: no items, a negative
// first index or a first item without extent. Callers skip the update cycle on
// NaN.
func InterpolateFirstItemIndex[T any](
	items []T,
	size func(T) int,
	offset func(T) int,
	nextOnMainAxis func(first T) (T, bool),
	index func(T) int,
) float64 {
	if len(items) == 0 {
		return math.NaN()
	}

	first := items[0]
	firstIndex := index(first)
	if firstIndex < 0 {
		return math.NaN()
	}

	firstSize := size(first)
	if firstSize == 0 {
		return math.NaN()
	}

	factor := math.Abs(float64(offset(first))) / float64(firstSize)

	next, ok := nextOnMainAxis(first)
	if !ok {
		return float64(firstIndex) + factor
	}

	nextIndex := index(next)
	return float64(firstIndex) + float64(nextIndex-firstIndex)*factor
}

// ItemVisibilityPercentage returns the fraction of an item's extent that lies
// inside the viewport [viewportStart, viewportEnd].
func ItemVisibilityPercentage(itemSize, itemStart, viewportStart, viewportEnd int) float64 {
	if itemSize == 0 {
		return 0
	}

	itemEnd := itemStart + itemSize

	// Portion of the item hidden before the viewport start.
	startClip := 0
	if itemStart < viewportStart {
		startClip = viewportStart - itemStart
	}
	// Portion of the item hidden past the viewport end.
	endClip := 0
	if itemEnd > viewportEnd {
		endClip = itemEnd - viewportEnd
	}

	size := float64(itemSize)
	return clamp01((size - float64(startClip) - float64(endClip)) / size)
}

func clamp01(v float64) float64 {
	return clamp(v, 0, 1)
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return min(max(v, lo), hi)
}
