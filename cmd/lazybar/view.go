package main

import (
	"github.com/ayn2op/lazybar"
	"github.com/ayn2op/lazybar/help"
	"github.com/ayn2op/lazybar/keybind"
	"github.com/ayn2op/lazybar/layers"
	"github.com/gdamore/tcell/v3"
)

// view stacks the scrolling content above a one-line key hint.
type view struct {
	*lazybar.Box
	content *lazybar.FastScroll
	status  *help.Help
}

func newView(content *lazybar.FastScroll, keyMap keybind.ScrollKeyMap) *view {
	return &view{
		Box:     lazybar.NewBox(),
		content: content,
		status: help.New().SetKeyMap(keyMap).SetStatusFunc(func() (help.Status, bool) {
			return help.NewStatus(content.LayoutInfo(), content.Machine().State())
		}),
	}
}

func (v *view) SetRect(x, y, width, height int) {
	v.Box.SetRect(x, y, width, height)
	v.content.SetRect(x, y, width, max(height-1, 0))
	v.status.SetRect(x, y+height-1, width, 1)
}

func (v *view) Draw(screen tcell.Screen) {
	v.content.Draw(screen)
	v.status.Draw(screen)
}

func (v *view) InputHandler(event *tcell.EventKey) lazybar.Command {
	return v.content.InputHandler(event)
}

func (v *view) MouseHandler(action lazybar.MouseAction, event *tcell.EventMouse) (lazybar.Primitive, lazybar.Command) {
	return v.content.MouseHandler(action, event)
}

func (v *view) Focus(delegate func(p lazybar.Primitive)) {
	delegate(v.content)
}

func (v *view) HasFocus() bool {
	return v.content.HasFocus()
}

func (v *view) Animating() bool {
	return v.content.Animating()
}

// root handles the application keys and passes the rest to its layers.
type root struct {
	*layers.Layers
	keyMap keybind.ScrollKeyMap
}

const helpLayer = "help"

func newRoot(main *view, keyMap keybind.ScrollKeyMap, border string) *root {
	full := help.New().SetKeyMap(keyMap).SetShowAll(true)
	full.SetBorders(lazybar.BordersAll).
		SetBorderSet(lazybar.BorderSetNamed(border)).
		SetTitle(" keys ")

	r := &root{Layers: layers.New(), keyMap: keyMap}
	r.AddLayer(main, layers.WithName("main"), layers.WithResize(true))
	r.AddLayer(full, layers.WithName(helpLayer), layers.WithVisible(false), layers.WithOverlay())
	r.SetBackgroundLayerStyle(tcell.StyleDefault.Dim(true))
	return r
}

func (r *root) SetRect(x, y, width, height int) {
	r.Layers.SetRect(x, y, width, height)
	// Center the help box: four rows for the longest column plus borders.
	w, h := min(width, 60), min(height, 6)
	r.GetLayer(helpLayer).SetRect(x+(width-w)/2, y+(height-h)/2, w, h)
}

func (r *root) InputHandler(event *tcell.EventKey) lazybar.Command {
	switch {
	case keybind.Matches(event, r.keyMap.Quit):
		return lazybar.QuitCommand{}
	case keybind.Matches(event, r.keyMap.Help):
		r.ToggleLayer(helpLayer)
		return lazybar.RedrawCommand{}
	case event.Key() == tcell.KeyEscape && r.GetVisible(helpLayer):
		r.HideLayer(helpLayer)
		return lazybar.RedrawCommand{}
	}
	return r.Layers.InputHandler(event)
}
