package lazybar

import (
	"github.com/gdamore/tcell/v3"
	"github.com/gdamore/tcell/v3/color"
)

// Theme defines the colors used when primitives are initialized.
type Theme struct {
	PrimitiveBackgroundColor tcell.Color // Main background color for primitives.
	BorderColor              tcell.Color // Box borders.
	TitleColor               tcell.Color // Box titles.
	PrimaryTextColor         tcell.Color // Primary text.
	SecondaryTextColor       tcell.Color // Secondary text (e.g. labels).
	ScrollBarThumbColor      tcell.Color // Scrollbar thumb at rest.
	ScrollBarDragColor       tcell.Color // Scrollbar thumb while pressed, hovered or dragged.
	ScrollBarTrackColor      tcell.Color // Scrollbar track, when shown.
}

// Styles is the theme read by new primitives. FastScroll.ApplyConfig
// overrides the scrollbar colors per bar.
var Styles = Theme{
	PrimitiveBackgroundColor: color.Black,
	BorderColor:              color.White,
	TitleColor:               color.White,
	PrimaryTextColor:         color.White,
	SecondaryTextColor:       color.Yellow,
	ScrollBarThumbColor:      color.NewRGBColor(0x8a, 0x8a, 0x8a),
	ScrollBarDragColor:       color.NewRGBColor(0xff, 0x00, 0xff),
	ScrollBarTrackColor:      color.NewRGBColor(0x30, 0x30, 0x30),
}
