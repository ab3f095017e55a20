package help

import (
	"github.com/gdamore/tcell/v3"
)

// Styles are the cell styles of a Help. Short styles apply to the one-line
// mode and Full styles to the column mode.
type Styles struct {
	ShortKey       tcell.Style
	ShortDesc      tcell.Style
	ShortSeparator tcell.Style

	FullKey       tcell.Style
	FullDesc      tcell.Style
	FullSeparator tcell.Style

	Ellipsis tcell.Style

	// Status styles the scroll position; ActiveStatus is used while the
	// content scrolls or the thumb is dragged.
	Status       tcell.Style
	ActiveStatus tcell.Style
}

// DefaultStyles dims keys and separators and keeps descriptions plain.
func DefaultStyles() Styles {
	dim := tcell.StyleDefault.Dim(true)
	plain := tcell.StyleDefault
	return Styles{
		ShortKey:       dim,
		ShortDesc:      plain,
		ShortSeparator: dim,
		FullKey:        dim,
		FullDesc:       plain,
		FullSeparator:  dim,
		Ellipsis:       dim,
		Status:         dim,
		ActiveStatus:   plain.Bold(true),
	}
}
