package scrollbar

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func listItems(first, count, size, offset int) []ItemInfo {
	items := make([]ItemInfo, count)
	for i := range items {
		items[i] = ItemInfo{Index: first + i, Offset: offset + i*size, Size: size}
	}
	return items
}

func interpolateList(items []ItemInfo) float64 {
	return InterpolateFirstItemIndex(
		items,
		func(item ItemInfo) int { return item.Size },
		func(item ItemInfo) int { return item.Offset },
		func(ItemInfo) (ItemInfo, bool) {
			if len(items) < 2 {
				return ItemInfo{}, false
			}
			return items[1], true
		},
		func(item ItemInfo) int { return item.Index },
	)
}

func TestInterpolateFirstItemIndex(t *testing.T) {
	t.Run("partially scrolled", func(t *testing.T) {
		got := interpolateList(listItems(10, 5, 50, -10))
		assert.InDelta(t, 10.2, got, 1e-9)
	})

	t.Run("aligned", func(t *testing.T) {
		assert.InDelta(t, 3.0, interpolateList(listItems(3, 4, 10, 0)), 1e-9)
	})

	t.Run("no next item", func(t *testing.T) {
		got := interpolateList(listItems(7, 1, 20, -5))
		assert.InDelta(t, 7.25, got, 1e-9)
	})

	t.Run("empty", func(t *testing.T) {
		assert.True(t, math.IsNaN(interpolateList(nil)))
	})

	t.Run("negative index", func(t *testing.T) {
		assert.True(t, math.IsNaN(interpolateList(listItems(-1, 3, 10, 0))))
	})

	t.Run("zero size", func(t *testing.T) {
		assert.True(t, math.IsNaN(interpolateList(listItems(0, 3, 0, 0))))
	})

	t.Run("bounded by next index", func(t *testing.T) {
		for offset := 0; offset > -50; offset -= 7 {
			items := listItems(20, 3, 50, offset)
			items[1].Index = 24
			got := interpolateList(items)
			assert.GreaterOrEqual(t, got, 20.0)
			assert.LessOrEqual(t, got, 24.0)
		}
	})
}

func TestItemVisibilityPercentage(t *testing.T) {
	tests := []struct {
		name   string
		size   int
		start  int
		vStart int
		vEnd   int
		want   float64
	}{
		{"fully visible", 50, 40, 0, 250, 1},
		{"clipped at start", 50, -10, 0, 250, 0.8},
		{"clipped at end", 50, 230, 0, 250, 0.4},
		{"clipped at both ends", 100, -25, 0, 50, 0.5},
		{"outside", 50, 300, 0, 250, 0},
		{"zero size", 0, 10, 0, 250, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ItemVisibilityPercentage(tt.size, tt.start, tt.vStart, tt.vEnd)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestItemVisibilityPercentageRange(t *testing.T) {
	for size := 1; size < 40; size += 3 {
		for start := -60; start < 60; start += 5 {
			got := ItemVisibilityPercentage(size, start, 0, 30)
			assert.GreaterOrEqual(t, got, 0.0)
			assert.LessOrEqual(t, got, 1.0)
		}
	}
}

func nan() float64 { return math.NaN() }

func TestItemVisibilityPercentageSymmetric(t *testing.T) {
	for clip := 0; clip <= 50; clip += 5 {
		atStart := ItemVisibilityPercentage(50, -clip, 0, 200)
		atEnd := ItemVisibilityPercentage(50, 150+clip, 0, 200)
		assert.InDelta(t, atStart, atEnd, 1e-9)
	}
}
