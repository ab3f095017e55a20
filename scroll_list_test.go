package lazybar

import (
	"context"
	"strings"
	"testing"

	"github.com/ayn2op/lazybar/scrollbar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestList(count, height int) *ScrollList {
	l := NewScrollList().SetBuilder(listBuilder(count, height))
	l.SetRect(0, 0, 10, 5)
	return l
}

func drawList(l *ScrollList) []string {
	_, _, width, height := l.GetRect()
	screen := NewCaptureScreen(width, height)
	l.Draw(screen)
	return strings.Split(screen.String(), "\n")
}

func indexes(info scrollbar.LayoutInfo) []int {
	out := make([]int, 0, len(info.Items))
	for _, item := range info.Items {
		out = append(out, item.Index)
	}
	return out
}

func TestProbeCount(t *testing.T) {
	for _, n := range []int{0, 1, 2, 3, 7, 64, 1000} {
		calls := 0
		got := probeCount(func(index int) bool {
			calls++
			return index < n
		})
		assert.Equal(t, n, got)
		assert.Less(t, calls, 40, "n=%d", n)
	}
}

func TestScrollListItemCount(t *testing.T) {
	l := NewScrollList()
	assert.Equal(t, 0, l.ItemCount())

	l.SetBuilder(listBuilder(42, 1))
	assert.Equal(t, 42, l.ItemCount())

	l.SetItemCount(10)
	assert.Equal(t, 10, l.ItemCount())
}

func TestScrollListPublishesLayoutInfo(t *testing.T) {
	l := newTestList(200, 1)

	var got []scrollbar.LayoutInfo
	cancel := l.Subscribe(func(info scrollbar.LayoutInfo) {
		got = append(got, info)
	})

	assert.Equal(t, []string{"0", "1", "2", "3", "4"}, drawList(l))
	require.Len(t, got, 1)
	info := got[0]
	assert.Equal(t, []int{0, 1, 2, 3, 4}, indexes(info))
	assert.Equal(t, scrollbar.ItemInfo{Index: 2, Offset: 2, Size: 1, Row: 2}, info.Items[2])
	assert.Equal(t, 0, info.ViewportStart)
	assert.Equal(t, 5, info.ViewportEnd)
	assert.Equal(t, 200, info.TotalItems)
	assert.True(t, info.CanScrollForward)
	assert.False(t, info.CanScrollBackward)
	assert.False(t, info.ScrollInProgress)

	// A draw without movement is not a scroll.
	drawList(l)
	require.Len(t, got, 2)
	assert.False(t, got[1].ScrollInProgress)

	cancel()
	drawList(l)
	assert.Len(t, got, 2)
	assert.Equal(t, got[1], l.LayoutInfo())
}

func TestScrollListScrollToIndex(t *testing.T) {
	l := newTestList(200, 1)
	drawList(l)

	require.NoError(t, l.ScrollToIndex(context.Background(), 50, 0))
	assert.Equal(t, []string{"50", "51", "52", "53", "54"}, drawList(l))

	info := l.LayoutInfo()
	assert.True(t, info.ScrollInProgress)
	assert.True(t, info.CanScrollForward)
	assert.True(t, info.CanScrollBackward)
}

func TestScrollListScrollToIndexOvershootStopsAtEnd(t *testing.T) {
	l := newTestList(200, 1)
	drawList(l)

	require.NoError(t, l.ScrollToIndex(context.Background(), 180, scrollbar.OvershootOffset))
	assert.Equal(t, []string{"195", "196", "197", "198", "199"}, drawList(l))

	info := l.LayoutInfo()
	assert.Equal(t, []int{195, 196, 197, 198, 199}, indexes(info))
	assert.False(t, info.CanScrollForward)
	assert.True(t, info.CanScrollBackward)
}

func TestScrollListWheelPastEndStopsAtEnd(t *testing.T) {
	l := newTestList(20, 1)
	drawList(l)

	l.SetPendingScroll(100)
	assert.Equal(t, []string{"15", "16", "17", "18", "19"}, drawList(l))
	info := l.LayoutInfo()
	assert.False(t, info.CanScrollForward)
	assert.True(t, info.CanScrollBackward)
}

func TestScrollListScrollToIndexWithItemOffset(t *testing.T) {
	l := newTestList(50, 3)
	drawList(l)

	require.NoError(t, l.ScrollToIndex(context.Background(), 10, 2))
	assert.Equal(t, []string{"10", "11", "11", "11", "12"}, drawList(l))
	assert.Equal(t, -2, l.LayoutInfo().Items[0].Offset)
}

func TestScrollListScrollToIndexErrors(t *testing.T) {
	assert.ErrorIs(t, NewScrollList().ScrollToIndex(context.Background(), 1, 0), ErrNoBuilder)

	l := newTestList(10, 1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, l.ScrollToIndex(ctx, 5, 0), context.Canceled)
}

func TestScrollListDropsCancelledTarget(t *testing.T) {
	l := newTestList(200, 1)
	drawList(l)

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, l.ScrollToIndex(ctx, 100, 0))
	cancel()

	assert.Equal(t, []string{"0", "1", "2", "3", "4"}, drawList(l))
	assert.False(t, l.LayoutInfo().ScrollInProgress)
}

func TestScrollListReverse(t *testing.T) {
	l := newTestList(3, 1).SetReverse(true)

	assert.Equal(t, []string{"", "", "2", "1", "0"}, drawList(l))
	info := l.LayoutInfo()
	assert.True(t, info.Reverse)
	assert.Equal(t, []int{0, 1, 2}, indexes(info))
	assert.False(t, info.CanScrollForward)
}

func TestScrollListReverseKeysFollowScreen(t *testing.T) {
	l := newTestList(10, 1).SetReverse(true)
	l.SetCursor(2)

	assert.Equal(t, RedrawCommand{}, l.InputHandler(runeKey("j")))
	assert.Equal(t, 1, l.Cursor())
	l.InputHandler(runeKey("k"))
	l.InputHandler(runeKey("k"))
	assert.Equal(t, 3, l.Cursor())
}

func TestScrollListKeys(t *testing.T) {
	l := newTestList(10, 1)
	drawList(l)

	l.InputHandler(runeKey("j"))
	assert.Equal(t, 0, l.Cursor())
	l.InputHandler(runeKey("j"))
	assert.Equal(t, 1, l.Cursor())
	l.InputHandler(runeKey("k"))
	assert.Equal(t, 0, l.Cursor())

	assert.Nil(t, l.InputHandler(runeKey("x")))
}

func TestScrollListWheel(t *testing.T) {
	l := newTestList(200, 1)
	drawList(l)

	_, cmd := l.MouseHandler(MouseScrollDown, mouse(1, 1))
	assert.Equal(t, RedrawCommand{}, cmd)
	drawList(l)
	assert.Equal(t, []int{3, 4, 5, 6, 7}, indexes(l.LayoutInfo()))

	// Wheel events outside the list are not ours.
	_, cmd = l.MouseHandler(MouseScrollDown, mouse(20, 1))
	assert.Nil(t, cmd)
}

func TestScrollListClickSelects(t *testing.T) {
	l := newTestList(10, 1)
	drawList(l)

	var selected []int
	l.SetChangedFunc(func(index int) { selected = append(selected, index) })
	l.MouseHandler(MouseLeftClick, mouse(2, 3))
	assert.Equal(t, []int{3}, selected)

	l.SetReverse(true)
	drawList(l)
	l.MouseHandler(MouseLeftClick, mouse(2, 4))
	assert.Equal(t, []int{3, 0}, selected)
}

func TestScrollListEmpty(t *testing.T) {
	l := newTestList(0, 1)

	var got []scrollbar.LayoutInfo
	l.Subscribe(func(info scrollbar.LayoutInfo) { got = append(got, info) })
	drawList(l)

	require.Len(t, got, 1)
	assert.Empty(t, got[0].Items)
	assert.Equal(t, 0, got[0].TotalItems)
	assert.False(t, got[0].CanScrollForward)
}
