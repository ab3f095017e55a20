package main

import (
	"strings"
	"testing"

	"github.com/ayn2op/lazybar"
	"github.com/ayn2op/lazybar/config"
	"github.com/ayn2op/lazybar/keybind"
	"github.com/ayn2op/lazybar/scrollbar"
	"github.com/gdamore/tcell/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRoot(t *testing.T, o options) (*root, *lazybar.FastScroll) {
	t.Helper()
	cfg := config.DefaultConfig()
	keyMap := keybind.NewScrollKeyMap(cfg.Keybinds)
	host, layout := newHost(o, keyMap)
	fs := lazybar.NewFastScroll(host, layout).ApplyConfig(cfg)
	t.Cleanup(fs.Stop)
	return newRoot(newView(fs, keyMap), keyMap, cfg.Help.Border), fs
}

func TestItemTextIsDeterministic(t *testing.T) {
	assert.Equal(t, itemText(42), itemText(42))
	assert.Len(t, strings.Fields(itemText(0)), 3)
	assert.Len(t, strings.Fields(itemText(2)), 17)
}

func TestSnapshotList(t *testing.T) {
	o := options{count: 1000, lanes: 3, snapshot: "40x8"}
	r, fs := newTestRoot(t, o)

	out, err := snapshot(r, fs, o)
	require.NoError(t, err)

	rows := strings.Split(out, "\n")
	require.Len(t, rows, 8)
	assert.True(t, strings.HasPrefix(rows[0], "500."), rows[0])
	// The key hint ends with the one-based position.
	assert.True(t, strings.HasPrefix(rows[7], "home jump"), rows[7])
	assert.Contains(t, rows[7], " 501-")
	assert.Contains(t, rows[7], "/1000")

	// The thumb has slid in next to the middle of the list.
	var thumb []string
	for _, row := range rows[:7] {
		if strings.ContainsRune(row, '█') || strings.ContainsRune(row, '▀') || strings.ContainsRune(row, '▄') {
			thumb = append(thumb, row)
		}
	}
	assert.NotEmpty(t, thumb)
}

func TestSnapshotRejectsSize(t *testing.T) {
	o := options{count: 10, lanes: 3, snapshot: "wide"}
	r, fs := newTestRoot(t, o)
	_, err := snapshot(r, fs, o)
	assert.ErrorContains(t, err, "want WxH")
}

func TestRootKeys(t *testing.T) {
	r, _ := newTestRoot(t, options{count: 10, lanes: 3})
	r.SetRect(0, 0, 40, 10)

	cmd := r.InputHandler(tcell.NewEventKey(tcell.KeyRune, "q", tcell.ModNone))
	assert.Equal(t, lazybar.QuitCommand{}, cmd)

	cmd = r.InputHandler(tcell.NewEventKey(tcell.KeyRune, "?", tcell.ModNone))
	assert.Equal(t, lazybar.RedrawCommand{}, cmd)
	assert.True(t, r.GetVisible(helpLayer))

	x, y, w, h := r.GetLayer(helpLayer).GetRect()
	assert.Equal(t, []int{0, 2, 40, 6}, []int{x, y, w, h})

	cmd = r.InputHandler(tcell.NewEventKey(tcell.KeyEscape, "", tcell.ModNone))
	assert.Equal(t, lazybar.RedrawCommand{}, cmd)
	assert.False(t, r.GetVisible(helpLayer))
}

func TestNewHostGrid(t *testing.T) {
	keyMap := keybind.DefaultScrollKeyMap()
	host, layout := newHost(options{staggered: true, lanes: 2, count: 20}, keyMap)
	assert.IsType(t, &lazybar.ScrollGrid{}, host)
	assert.Equal(t, 20, host.ItemCount())
	assert.Equal(t, scrollbar.StaggeredGridLayout, layout)
}
