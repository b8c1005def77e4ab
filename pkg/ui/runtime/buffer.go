package runtime

import (
	"github.com/odvcencio/cellframe/pkg/errors"
	"github.com/odvcencio/cellframe/pkg/ui/backend"
)

// Cell represents a single character cell in the buffer. A zero Rune marks
// the trailing half of a wide character.
type Cell struct {
	Rune  rune
	Style backend.Style
}

// BlankCell is a space in default colors.
var BlankCell = Cell{Rune: ' ', Style: backend.DefaultStyle()}

// Buffer is the frame buffer: elements render into the back grid, and the
// front grid remembers what was last painted onto the device so Paint only
// sends differences.
type Buffer struct {
	width  int
	height int
	back   []Cell
	front  []Cell

	// forces the next paint to send every cell
	full bool
}

// NewBuffer creates a blank buffer with the given dimensions.
func NewBuffer(w, h int) *Buffer {
	w, h = max(0, w), max(0, h)
	b := &Buffer{
		width:  w,
		height: h,
		back:   blankCells(w * h),
		front:  blankCells(w * h),
		full:   true,
	}
	return b
}

func blankCells(n int) []Cell {
	cells := make([]Cell, n)
	for i := range cells {
		cells[i] = BlankCell
	}
	return cells
}

// Size returns the buffer dimensions.
func (b *Buffer) Size() (w, h int) {
	return b.width, b.height
}

// Resize changes the buffer dimensions. The overlapping region of both
// grids is kept, new cells are blank, and the next paint is a full one.
func (b *Buffer) Resize(w, h int) {
	w, h = max(0, w), max(0, h)
	if w == b.width && h == b.height {
		return
	}
	b.back = resizeCells(b.back, b.width, b.height, w, h)
	b.front = resizeCells(b.front, b.width, b.height, w, h)
	b.width = w
	b.height = h
	b.full = true
}

func resizeCells(old []Cell, oldW, oldH, w, h int) []Cell {
	cells := blankCells(w * h)
	for y := 0; y < min(h, oldH); y++ {
		copy(cells[y*w:y*w+min(w, oldW)], old[y*oldW:y*oldW+min(w, oldW)])
	}
	return cells
}

// InBounds reports whether (x, y) addresses a cell.
func (b *Buffer) InBounds(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

func (b *Buffer) index(x, y int) int {
	if !b.InBounds(x, y) {
		panic(errors.Newf(errors.ErrCodeOutOfRange,
			"cell (%d, %d) outside %dx%d buffer", x, y, b.width, b.height))
	}
	return y*b.width + x
}

// Cell returns the back-buffer cell at (x, y). It panics when (x, y) is
// out of bounds.
func (b *Buffer) Cell(x, y int) Cell {
	return b.back[b.index(x, y)]
}

// Set writes a rune with style into the back buffer. It panics when (x, y)
// is out of bounds.
func (b *Buffer) Set(x, y int, r rune, s backend.Style) {
	b.back[b.index(x, y)] = Cell{Rune: r, Style: s}
}

// Painted returns the front-buffer cell at (x, y): what the device shows.
func (b *Buffer) Painted(x, y int) Cell {
	return b.front[b.index(x, y)]
}

// Clear fills the back buffer with blank cells.
func (b *Buffer) Clear() {
	for i := range b.back {
		b.back[i] = BlankCell
	}
}

// Fill fills a rectangular region of the back buffer, clipped to bounds.
func (b *Buffer) Fill(r Rect, ch rune, s backend.Style) {
	x0 := max(0, r.X)
	y0 := max(0, r.Y)
	x1 := min(b.width, r.X+r.Width)
	y1 := min(b.height, r.Y+r.Height)

	cell := Cell{Rune: ch, Style: s}
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			b.back[y*b.width+x] = cell
		}
	}
}

// Invalidate forces the next paint to send every cell, for devices whose
// content was disturbed behind our back.
func (b *Buffer) Invalidate() {
	b.full = true
}

// String renders the back buffer as text, one line per row.
func (b *Buffer) String() string {
	out := make([]rune, 0, (b.width+1)*b.height)
	for y := 0; y < b.height; y++ {
		if y > 0 {
			out = append(out, '\n')
		}
		for x := 0; x < b.width; x++ {
			r := b.back[y*b.width+x].Rune
			if r == 0 {
				continue
			}
			out = append(out, r)
		}
	}
	return string(out)
}
