package lazybar

import (
	"strings"

	"github.com/gdamore/tcell/v3"
)

// TextView is a block of word-wrapped text. It reports its wrapped height so
// it can serve as an item of a ScrollList or a ScrollGrid.
type TextView struct {
	*Box

	text string

	// The label printed on the first line, before the text.
	label      string
	labelStyle tcell.Style

	alignment Alignment
	textStyle tcell.Style

	// The maximum number of wrapped lines. Ignored if 0.
	maxLines int

	// wrapped caches the lines for wrappedWidth.
	wrapped      []string
	wrappedWidth int
}

// NewTextView returns a new text view.
func NewTextView() *TextView {
	return &TextView{
		Box:          NewBox(),
		labelStyle:   tcell.StyleDefault.Foreground(Styles.SecondaryTextColor),
		alignment:    AlignmentLeft,
		textStyle:    tcell.StyleDefault.Foreground(Styles.PrimaryTextColor),
		wrappedWidth: -1,
	}
}

// SetText sets the text. Line breaks start new lines.
func (t *TextView) SetText(text string) *TextView {
	t.text = text
	t.wrappedWidth = -1
	return t
}

// GetText returns the text.
func (t *TextView) GetText() string {
	return t.text
}

// SetLabel sets the label printed before the text.
func (t *TextView) SetLabel(label string) *TextView {
	t.label = label
	t.wrappedWidth = -1
	return t
}

// SetLabelStyle sets the style of the label.
func (t *TextView) SetLabelStyle(style tcell.Style) *TextView {
	t.labelStyle = style
	return t
}

// SetTextAlign sets the alignment of each line.
func (t *TextView) SetTextAlign(alignment Alignment) *TextView {
	t.alignment = alignment
	return t
}

// SetTextStyle sets the style of the text.
func (t *TextView) SetTextStyle(style tcell.Style) *TextView {
	t.textStyle = style
	return t
}

// SetMaxLines limits the number of wrapped lines. Zero means no limit.
func (t *TextView) SetMaxLines(maxLines int) *TextView {
	t.maxLines = max(maxLines, 0)
	t.wrappedWidth = -1
	return t
}

func (t *TextView) buildWrapped(width int) []string {
	if t.wrappedWidth == width {
		return t.wrapped
	}
	t.wrappedWidth = width
	t.wrapped = t.wrapped[:0]

	text := t.text
	if t.label != "" {
		text = t.label + " " + text
	}
	for _, line := range strings.Split(text, "\n") {
		t.wrapped = append(t.wrapped, WordWrap(line, width)...)
	}
	if t.maxLines > 0 && len(t.wrapped) > t.maxLines {
		t.wrapped = t.wrapped[:t.maxLines]
	}
	return t.wrapped
}

// Height returns the number of wrapped lines at the given width.
func (t *TextView) Height(width int) int {
	if width < 1 {
		return 1
	}
	return max(len(t.buildWrapped(width)), 1)
}

// Draw draws this primitive onto the screen.
func (t *TextView) Draw(screen tcell.Screen) {
	t.DrawForSubclass(screen, t)

	x, y, width, height := t.GetInnerRect()
	if width <= 0 || height <= 0 {
		return
	}

	for row, line := range t.buildWrapped(width) {
		if row >= height {
			break
		}
		if row == 0 && t.label != "" && strings.HasPrefix(line, t.label) {
			_, labelWidth := PrintWithStyle(screen, t.label, x, y, width, AlignmentLeft, t.labelStyle)
			line = strings.TrimPrefix(line, t.label)
			PrintWithStyle(screen, line, x+labelWidth, y, width-labelWidth, t.alignment, t.textStyle)
			continue
		}
		PrintWithStyle(screen, line, x, y+row, width, t.alignment, t.textStyle)
	}
}

var _ ScrollListItem = &TextView{}
