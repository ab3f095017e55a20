package lazybar

import (
	"strings"
	"unicode/utf8"

	"github.com/gdamore/tcell/v3"
	"github.com/rivo/uniseg"
)

type cell struct {
	text  string
	style tcell.Style
	// cont marks the trailing columns of a wide grapheme.
	cont bool
}

// CaptureScreen is an in-memory screen. It renders primitives without a
// terminal, for snapshots and tests. Methods it does not override panic.
type CaptureScreen struct {
	tcell.Screen
	width, height int
	cells         []cell
	defaultStyle  tcell.Style
}

// NewCaptureScreen returns a blank capture screen of the given size.
func NewCaptureScreen(width, height int) *CaptureScreen {
	width, height = max(width, 0), max(height, 0)
	s := &CaptureScreen{width: width, height: height, cells: make([]cell, width*height)}
	s.Clear()
	return s
}

// Size returns the screen size.
func (s *CaptureScreen) Size() (int, int) {
	return s.width, s.height
}

func (s *CaptureScreen) Show()                 {}
func (s *CaptureScreen) Sync()                 {}
func (s *CaptureScreen) HideCursor()           {}
func (s *CaptureScreen) ShowCursor(x, y int)   {}
func (s *CaptureScreen) SetTitle(title string) {}
func (s *CaptureScreen) Fini()                 {}

// Clear blanks every cell.
func (s *CaptureScreen) Clear() {
	s.Fill(' ', s.defaultStyle)
}

// Fill sets every cell to r.
func (s *CaptureScreen) Fill(r rune, style tcell.Style) {
	for i := range s.cells {
		s.cells[i] = cell{text: string(r), style: style}
	}
}

func (s *CaptureScreen) SetStyle(style tcell.Style) {
	s.defaultStyle = style
}

func (s *CaptureScreen) SetContent(x int, y int, primary rune, combining []rune, style tcell.Style) {
	text := string(primary)
	if len(combining) > 0 {
		text += string(combining)
	}
	s.Put(x, y, text, style)
}

// Get returns the grapheme and style at (x, y).
func (s *CaptureScreen) Get(x, y int) (str string, style tcell.Style, width int) {
	if x < 0 || y < 0 || x >= s.width || y >= s.height {
		return "", tcell.StyleDefault, 1
	}
	c := s.cells[y*s.width+x]
	if c.cont {
		return "", c.style, 0
	}
	width = uniseg.StringWidth(c.text)
	if width <= 0 {
		width = 1
	}
	return c.text, c.style, width
}

// Put draws the first grapheme of str at (x, y) and returns the rest.
func (s *CaptureScreen) Put(x int, y int, str string, style tcell.Style) (string, int) {
	if str == "" {
		return "", 0
	}

	cluster, remain, width, _ := uniseg.FirstGraphemeClusterInString(str, -1)
	if cluster == "" {
		r, size := utf8.DecodeRuneInString(str)
		if size == 0 {
			return "", 0
		}
		cluster = string(r)
		remain = str[size:]
		width = 1
	}
	if width <= 0 {
		return remain, 0
	}

	// Match terminal clipping behavior for wide graphemes at the right edge.
	if width > 1 && x == s.width-1 {
		cluster = " "
		width = 1
	}

	s.set(x, y, cell{text: cluster, style: style})
	for i := 1; i < width; i++ {
		s.set(x+i, y, cell{style: style, cont: true})
	}
	return remain, width
}

func (s *CaptureScreen) set(x, y int, c cell) {
	if x < 0 || y < 0 || x >= s.width || y >= s.height {
		return
	}
	s.cells[y*s.width+x] = c
}

func (s *CaptureScreen) PutStr(x int, y int, str string) {
	s.PutStrStyled(x, y, str, s.defaultStyle)
}

func (s *CaptureScreen) PutStrStyled(x int, y int, str string, style tcell.Style) {
	for str != "" && x < s.width {
		remain, width := s.Put(x, y, str, style)
		if width <= 0 || remain == str {
			return
		}
		x += width
		str = remain
	}
}

// Row returns the text of row y.
func (s *CaptureScreen) Row(y int) string {
	if y < 0 || y >= s.height {
		return ""
	}
	var b strings.Builder
	for _, c := range s.cells[y*s.width : (y+1)*s.width] {
		if !c.cont {
			b.WriteString(c.text)
		}
	}
	return b.String()
}

// Column returns the text of column x, one grapheme per row.
func (s *CaptureScreen) Column(x int) []string {
	column := make([]string, s.height)
	for y := range column {
		column[y], _, _ = s.Get(x, y)
	}
	return column
}

// String returns all rows separated by newlines, trailing blanks trimmed.
func (s *CaptureScreen) String() string {
	rows := make([]string, s.height)
	for y := range rows {
		rows[y] = strings.TrimRight(s.Row(y), " ")
	}
	return strings.Join(rows, "\n")
}
