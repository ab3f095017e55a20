package lazybar

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTextViewWraps(t *testing.T) {
	tv := NewTextView().SetText("hello world foo")
	assert.Equal(t, 3, tv.Height(6))
	assert.Equal(t, 1, tv.Height(40))
	assert.Equal(t, 1, tv.Height(0))

	tv.SetRect(0, 0, 6, 3)
	screen := NewCaptureScreen(6, 3)
	tv.Draw(screen)
	assert.Equal(t, "hello\nworld\nfoo", screen.String())
}

func TestTextViewLineBreaksAndMaxLines(t *testing.T) {
	tv := NewTextView().SetText("a\nb\nc")
	assert.Equal(t, 3, tv.Height(10))

	tv.SetMaxLines(2)
	assert.Equal(t, 2, tv.Height(10))
}

func TestTextViewLabel(t *testing.T) {
	tv := NewTextView().SetLabel("7.").SetText("item")
	tv.SetRect(0, 0, 10, 1)

	screen := NewCaptureScreen(10, 1)
	tv.Draw(screen)
	assert.Equal(t, "7. item", screen.String())
	assert.Equal(t, "item", tv.GetText())
}
