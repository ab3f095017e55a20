package lazybar

import (
	"context"
	"strings"
	"testing"

	"github.com/ayn2op/lazybar/scrollbar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func drawGrid(g *ScrollGrid) []string {
	_, _, width, height := g.GetRect()
	screen := NewCaptureScreen(width, height)
	g.Draw(screen)
	return strings.Split(screen.String(), "\n")
}

func newTestGrid(count int, height func(int) int) *ScrollGrid {
	g := NewScrollGrid(2).SetBuilder(gridBuilder(count, height))
	g.SetRect(0, 0, 11, 4)
	return g
}

func unit(int) int { return 1 }

func TestScrollGridFixedRows(t *testing.T) {
	g := newTestGrid(10, unit)

	assert.Equal(t, []string{
		"0     1",
		"2     3",
		"4     5",
		"6     7",
	}, drawGrid(g))

	info := g.LayoutInfo()
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7}, indexes(info))
	assert.Equal(t, scrollbar.ItemInfo{Index: 3, Offset: 1, Size: 1, Row: 1, Column: 1, Lane: 1}, info.Items[3])
	assert.Equal(t, 10, info.TotalItems)
	assert.True(t, info.CanScrollForward)
	assert.False(t, info.CanScrollBackward)
	assert.Equal(t, scrollbar.GridLayout, g.Layout())
}

func TestScrollGridRowTakesTallestItem(t *testing.T) {
	g := newTestGrid(4, func(i int) int {
		if i == 0 {
			return 2
		}
		return 1
	})

	assert.Equal(t, []string{
		"0     1",
		"0",
		"2     3",
		"",
	}, drawGrid(g))
}

func TestScrollGridStaggered(t *testing.T) {
	g := newTestGrid(6, func(i int) int {
		if i == 0 {
			return 3
		}
		return 1
	}).SetStaggered(true)

	assert.Equal(t, []string{
		"0     1",
		"0     2",
		"0     3",
		"4     5",
	}, drawGrid(g))

	info := g.LayoutInfo()
	assert.Equal(t, scrollbar.StaggeredGridLayout, g.Layout())
	assert.Equal(t, 1, info.Items[2].Lane)
	assert.Equal(t, 0, info.Items[4].Lane)
	assert.False(t, info.CanScrollForward)
}

func TestScrollGridScrollToIndex(t *testing.T) {
	g := newTestGrid(20, unit)
	drawGrid(g)

	require.NoError(t, g.ScrollToIndex(context.Background(), 10, 0))
	drawGrid(g)
	info := g.LayoutInfo()
	assert.Equal(t, []int{10, 11, 12, 13, 14, 15, 16, 17}, indexes(info))
	assert.True(t, info.ScrollInProgress)
	assert.True(t, info.CanScrollForward)
	assert.True(t, info.CanScrollBackward)

	require.NoError(t, g.ScrollToIndex(context.Background(), 18, scrollbar.OvershootOffset))
	drawGrid(g)
	info = g.LayoutInfo()
	assert.Equal(t, []int{12, 13, 14, 15, 16, 17, 18, 19}, indexes(info))
	assert.False(t, info.CanScrollForward)

	assert.ErrorIs(t, NewScrollGrid(2).ScrollToIndex(context.Background(), 0, 0), ErrNoBuilder)
}

func TestScrollGridKeys(t *testing.T) {
	g := newTestGrid(20, unit)
	drawGrid(g)

	assert.Equal(t, RedrawCommand{}, g.InputHandler(runeKey("j")))
	drawGrid(g)
	assert.Equal(t, 2, g.LayoutInfo().Items[0].Index)

	g.ScrollToEnd()
	drawGrid(g)
	assert.False(t, g.LayoutInfo().CanScrollForward)

	g.ScrollToStart()
	drawGrid(g)
	assert.False(t, g.LayoutInfo().CanScrollBackward)
}

func TestScrollGridWheel(t *testing.T) {
	g := newTestGrid(20, unit)
	drawGrid(g)

	_, cmd := g.MouseHandler(MouseScrollDown, mouse(1, 1))
	assert.Equal(t, RedrawCommand{}, cmd)
	drawGrid(g)
	assert.Equal(t, 6, g.LayoutInfo().Items[0].Index)
}
