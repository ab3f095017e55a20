package animate

import (
	"github.com/gdamore/tcell/v3"
	"github.com/gdamore/tcell/v3/color"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// BlendColors mixes from and to in Lab space; t=0 yields from, t=1 yields to.
// Colors without an RGB value (default, reset) are returned unblended.
func BlendColors(from, to tcell.Color, t float64) tcell.Color {
	t = min(max(t, 0), 1)
	a, okA := toColorful(from)
	b, okB := toColorful(to)
	if !okA || !okB {
		if t < 0.5 {
			return from
		}
		return to
	}
	if t == 0 {
		return from
	}
	if t == 1 {
		return to
	}
	return fromColorful(a.BlendLab(b, t).Clamped())
}

// ParseHexColor parses "#rrggbb" (or "#rgb") into a terminal color.
func ParseHexColor(hex string) (tcell.Color, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return color.Default, err
	}
	return fromColorful(c), nil
}

func toColorful(c tcell.Color) (colorful.Color, bool) {
	if c == color.Default || c == color.Reset || !c.Valid() {
		return colorful.Color{}, false
	}
	r, g, b := c.RGB()
	if r < 0 || g < 0 || b < 0 {
		return colorful.Color{}, false
	}
	return colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}, true
}

func fromColorful(c colorful.Color) tcell.Color {
	r, g, b := c.RGB255()
	return color.NewRGBColor(int32(r), int32(g), int32(b))
}
