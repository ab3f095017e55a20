package layers

import (
	"testing"

	"github.com/ayn2op/lazybar"
	"github.com/gdamore/tcell/v3"
	"github.com/stretchr/testify/assert"
)

type animated struct {
	*lazybar.Box
	animating bool
}

func (a *animated) Animating() bool { return a.animating }

func mouse(x, y int) *tcell.EventMouse {
	return tcell.NewEventMouse(x, y, tcell.ButtonNone, tcell.ModNone)
}

func TestLayersVisibilityAndOrder(t *testing.T) {
	l := New()
	changes := 0
	l.SetChangedFunc(func() { changes++ })

	base := lazybar.NewBox()
	help := lazybar.NewBox()
	l.AddLayer(base, WithName("base")).
		AddLayer(help, WithName("help"), WithVisible(false))
	assert.Equal(t, 2, l.GetLayerCount())
	assert.Equal(t, 2, changes)

	name, item := l.GetFrontLayer()
	assert.Equal(t, "base", name)
	assert.Equal(t, lazybar.Primitive(base), item)

	l.ToggleLayer("help")
	assert.True(t, l.GetVisible("help"))
	name, _ = l.GetFrontLayer()
	assert.Equal(t, "help", name)
	assert.Equal(t, 3, changes)

	// Showing a visible layer changes nothing.
	l.ShowLayer("help")
	assert.Equal(t, 3, changes)

	l.SendToFront("base")
	name, _ = l.GetFrontLayer()
	assert.Equal(t, "base", name)

	l.RemoveLayer("base")
	assert.False(t, l.HasLayer("base"))
	assert.Nil(t, l.GetLayer("base"))
	assert.Equal(t, lazybar.Primitive(help), l.GetLayer("help"))
}

func TestLayersReplaceByName(t *testing.T) {
	l := New()
	first, second := lazybar.NewBox(), lazybar.NewBox()
	l.AddLayer(first, WithName("main")).AddLayer(second, WithName("main"))

	assert.Equal(t, 1, l.GetLayerCount())
	assert.Equal(t, lazybar.Primitive(second), l.GetLayer("main"))
}

func TestLayersOverlayBlocksMouse(t *testing.T) {
	base := lazybar.NewBox()
	dialog := lazybar.NewBox()
	dialog.SetRect(2, 1, 3, 2)

	l := New().
		AddLayer(base, WithName("base"), WithResize(true)).
		AddLayer(dialog, WithName("dialog"), WithOverlay())
	l.SetRect(0, 0, 10, 5)
	l.Draw(lazybar.NewCaptureScreen(10, 5))

	_, cmd := l.MouseHandler(lazybar.MouseLeftDown, mouse(8, 4))
	assert.Equal(t, lazybar.ConsumeEventCommand{}, cmd)

	_, cmd = l.MouseHandler(lazybar.MouseLeftDown, mouse(3, 1))
	assert.Equal(t, lazybar.SetFocusCommand{Target: dialog}, cmd)

	l.HideLayer("dialog")
	_, cmd = l.MouseHandler(lazybar.MouseLeftDown, mouse(8, 4))
	assert.Equal(t, lazybar.SetFocusCommand{Target: base}, cmd)

	// Events outside the container are not ours.
	_, cmd = l.MouseHandler(lazybar.MouseLeftDown, mouse(20, 20))
	assert.Nil(t, cmd)
}

func TestLayersOverlayStylesLayersBehind(t *testing.T) {
	base := lazybar.NewTextView().SetText("base")
	dialog := lazybar.NewTextView().SetText("top")
	dialog.SetRect(0, 1, 3, 1)

	l := New().
		AddLayer(base, WithName("base"), WithResize(true)).
		AddLayer(dialog, WithName("dialog"), WithOverlay()).
		SetBackgroundLayerStyle(tcell.StyleDefault.Dim(true))
	l.SetRect(0, 0, 6, 2)

	screen := lazybar.NewCaptureScreen(6, 2)
	l.Draw(screen)
	assert.Equal(t, "base\ntop", screen.String())

	_, style, _ := screen.Get(0, 0)
	assert.True(t, style.HasDim())
	_, style, _ = screen.Get(0, 1)
	assert.False(t, style.HasDim())

	// Disabled overlays do not style anything.
	l.SetLayerEnabled("dialog", false)
	l.Draw(screen)
	_, style, _ = screen.Get(0, 0)
	assert.False(t, style.HasDim())
}

func TestLayersAnimating(t *testing.T) {
	a := &animated{Box: lazybar.NewBox()}
	l := New().AddLayer(a, WithName("a"))
	assert.False(t, l.Animating())

	a.animating = true
	assert.True(t, l.Animating())

	l.HideLayer("a")
	assert.False(t, l.Animating())
}
