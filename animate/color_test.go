package animate

import (
	"testing"

	"github.com/gdamore/tcell/v3/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlendColors(t *testing.T) {
	black := color.NewRGBColor(0, 0, 0)
	white := color.NewRGBColor(255, 255, 255)

	assert.Equal(t, black, BlendColors(black, white, 0))
	assert.Equal(t, white, BlendColors(black, white, 1))
	assert.Equal(t, white, BlendColors(black, white, 3))

	r, g, b := BlendColors(black, white, 0.5).RGB()
	assert.Greater(t, r, int32(0))
	assert.Less(t, r, int32(255))
	assert.InDelta(t, r, g, 1)
	assert.InDelta(t, g, b, 1)
}

func TestBlendColorsDefault(t *testing.T) {
	red := color.NewRGBColor(255, 0, 0)
	assert.Equal(t, color.Default, BlendColors(color.Default, red, 0.4))
	assert.Equal(t, red, BlendColors(color.Default, red, 0.6))
}

func TestParseHexColor(t *testing.T) {
	c, err := ParseHexColor("#ff00ff")
	require.NoError(t, err)
	assert.Equal(t, color.NewRGBColor(255, 0, 255), c)

	_, err = ParseHexColor("magenta")
	assert.Error(t, err)
}
