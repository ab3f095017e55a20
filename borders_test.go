package lazybar

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBorderSetNamed(t *testing.T) {
	assert.Equal(t, BorderSetRound(), BorderSetNamed("round"))
	assert.Equal(t, BorderSetDouble(), BorderSetNamed("double"))
	assert.Equal(t, BorderSetPlain(), BorderSetNamed("unknown"))
}

func TestBoxDrawsBorderSet(t *testing.T) {
	box := NewBox()
	box.SetBorders(BordersAll).SetBorderSet(BorderSetNamed("round"))
	box.SetRect(0, 0, 3, 3)

	screen := NewCaptureScreen(3, 3)
	box.Draw(screen)
	assert.Equal(t, "╭─╮\n│ │\n╰─╯", screen.String())
}
