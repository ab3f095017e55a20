package help

import (
	"strings"
	"testing"

	"github.com/ayn2op/lazybar"
	"github.com/ayn2op/lazybar/keybind"
	"github.com/ayn2op/lazybar/scrollbar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func drawHelp(h *Help, width, height int) *lazybar.CaptureScreen {
	screen := lazybar.NewCaptureScreen(width, height)
	h.SetRect(0, 0, width, height)
	h.Draw(screen)
	return screen
}

func TestShortHelp(t *testing.T) {
	h := New().SetKeyMap(keybind.DefaultScrollKeyMap())

	screen := drawHelp(h, 80, 1)
	assert.Equal(t, "home jump to start • end jump to end • ? toggle help • q quit", screen.String())
}

func TestShortHelpTruncates(t *testing.T) {
	h := New().SetKeyMap(keybind.DefaultScrollKeyMap())

	screen := drawHelp(h, 25, 1)
	assert.Equal(t, "home jump to start …", screen.String())
}

func TestShortHelpSkipsDisabled(t *testing.T) {
	km := keybind.DefaultScrollKeyMap()
	km.Help.SetEnabled(false)
	h := New().SetKeyMap(km)

	screen := drawHelp(h, 80, 1)
	assert.NotContains(t, screen.String(), "toggle help")
}

func TestFullHelpLines(t *testing.T) {
	km := keybind.DefaultScrollKeyMap()
	h := New()

	lines := h.FullHelpLines(km.FullHelp(), 0)
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[0], "up   up"))
	assert.Contains(t, lines[0], "home jump to start")
	assert.Contains(t, lines[0], "? toggle help")
	assert.True(t, strings.HasPrefix(lines[3], "pgdn page down"))

	// Columns that do not fit are dropped behind an ellipsis.
	lines = h.FullHelpLines(km.FullHelp(), 20)
	assert.Equal(t, "up   up …", lines[0])
}

func TestFullHelpDraw(t *testing.T) {
	h := New().SetKeyMap(keybind.DefaultScrollKeyMap()).SetShowAll(true)
	require.True(t, h.ShowAll())

	screen := drawHelp(h, 80, 2)
	rows := strings.Split(screen.String(), "\n")
	require.Len(t, rows, 2)
	assert.Contains(t, rows[1], "end  jump to end")
}

func fixedStatus(s Status) func() (Status, bool) {
	return func() (Status, bool) { return s, true }
}

func TestShortHelpShowsStatus(t *testing.T) {
	h := New().SetKeyMap(keybind.DefaultScrollKeyMap()).
		SetStatusFunc(fixedStatus(Status{First: 500, Last: 504, Total: 1000}))

	line := drawHelp(h, 80, 1).String()
	assert.True(t, strings.HasPrefix(line, "home jump to start"))
	assert.True(t, strings.HasSuffix(line, " 501-505/1000"))

	// The keys give way to the position.
	h.SetStatusFunc(fixedStatus(Status{First: 500, Last: 504, Total: 1000, State: scrollbar.Dragging}))
	line = drawHelp(h, 80, 1).String()
	assert.True(t, strings.HasSuffix(line, " 501-505/1000 dragging"))
	assert.NotContains(t, line, "q quit")

	// Too narrow for the position.
	line = drawHelp(h, 10, 1).String()
	assert.NotContains(t, line, "/1000")
}

func TestNewStatus(t *testing.T) {
	_, ok := NewStatus(scrollbar.LayoutInfo{TotalItems: 10}, scrollbar.Dormant)
	assert.False(t, ok)

	info := scrollbar.LayoutInfo{
		TotalItems: 40,
		Items:      []scrollbar.ItemInfo{{Index: 12}, {Index: 10, Lane: 1}, {Index: 15}, {Index: 11, Lane: 1}},
	}
	s, ok := NewStatus(info, scrollbar.Scrolling)
	require.True(t, ok)
	assert.Equal(t, Status{First: 10, Last: 15, Total: 40, State: scrollbar.Scrolling}, s)
	assert.Equal(t, "11-16/40 scrolling", s.String())
}
