package runtime

import (
	"unicode"

	"github.com/mattn/go-runewidth"
	"github.com/odvcencio/cellframe/pkg/ui/backend"
)

//go:generate mockgen -package=runtime -destination=mock_surface_test.go github.com/odvcencio/cellframe/pkg/ui/runtime Surface

// Surface is the drawing boundary elements render through. Colors form two
// independent stacks; writes use the colors on top.
type Surface interface {
	SetForegroundColor(c backend.Color)
	PopForegroundColor()
	SetBackgroundColor(c backend.Color)
	PopBackgroundColor()
	Write(r rune, x, y int)
	WriteString(s string, x, y int)
}

// Context is the Surface over a frame Buffer. Writes outside the buffer
// are dropped.
type Context struct {
	buf *Buffer
	fg  []backend.Color
	bg  []backend.Color
}

// NewContext returns a context whose stacks start at the colors of base.
func NewContext(buf *Buffer, base backend.Style) *Context {
	fg, bg := base.Decompose()
	if fg == backend.ColorUnset {
		fg = backend.ColorDefault
	}
	if bg == backend.ColorUnset {
		bg = backend.ColorDefault
	}
	return &Context{
		buf: buf,
		fg:  []backend.Color{fg},
		bg:  []backend.Color{bg},
	}
}

// Buffer returns the buffer being drawn on.
func (c *Context) Buffer() *Buffer {
	return c.buf
}

// SetForegroundColor pushes a foreground color. ColorUnset re-pushes the
// color currently in effect so the matching pop stays balanced.
func (c *Context) SetForegroundColor(col backend.Color) {
	c.fg = push(c.fg, col)
}

// PopForegroundColor restores the previous foreground color. The base
// color is never popped.
func (c *Context) PopForegroundColor() {
	c.fg = pop(c.fg)
}

// SetBackgroundColor pushes a background color; see SetForegroundColor.
func (c *Context) SetBackgroundColor(col backend.Color) {
	c.bg = push(c.bg, col)
}

// PopBackgroundColor restores the previous background color.
func (c *Context) PopBackgroundColor() {
	c.bg = pop(c.bg)
}

// Foreground returns the foreground color in effect.
func (c *Context) Foreground() backend.Color {
	return c.fg[len(c.fg)-1]
}

// Background returns the background color in effect.
func (c *Context) Background() backend.Color {
	return c.bg[len(c.bg)-1]
}

// Depth returns the sizes of the foreground and background stacks,
// base colors included.
func (c *Context) Depth() (fg, bg int) {
	return len(c.fg), len(c.bg)
}

func (c *Context) style() backend.Style {
	return backend.DefaultStyle().Foreground(c.Foreground()).Background(c.Background())
}

func push(stack []backend.Color, col backend.Color) []backend.Color {
	if col == backend.ColorUnset {
		col = stack[len(stack)-1]
	}
	return append(stack, col)
}

func pop(stack []backend.Color) []backend.Color {
	if len(stack) <= 1 {
		return stack
	}
	return stack[:len(stack)-1]
}

// Write draws r at (x, y). Control characters draw as blanks and
// out-of-bounds writes are dropped.
func (c *Context) Write(r rune, x, y int) {
	c.put(r, x, y)
}

// WriteString draws s starting at (x, y), advancing by each rune's cell
// width. Cells that fall outside the buffer are dropped.
func (c *Context) WriteString(s string, x, y int) {
	for _, r := range s {
		x += c.put(r, x, y)
	}
}

// put writes one rune and returns the number of columns it advanced.
func (c *Context) put(r rune, x, y int) int {
	r = printable(r)
	width := runewidth.RuneWidth(r)
	if width <= 0 {
		r, width = ' ', 1
	}
	if !c.buf.InBounds(x, y) {
		return width
	}
	style := c.style()
	if width == 2 && !c.buf.InBounds(x+1, y) {
		r, width = ' ', 1
	}

	// Writing over half of a wide rune leaves the other half blank.
	if c.buf.Cell(x, y).Rune == 0 && c.buf.InBounds(x-1, y) {
		c.buf.Set(x-1, y, ' ', c.buf.Cell(x-1, y).Style)
	}
	c.buf.Set(x, y, r, style)
	if width == 2 {
		c.buf.Set(x+1, y, 0, style)
	}
	next := x + width
	if c.buf.InBounds(next, y) && c.buf.Cell(next, y).Rune == 0 {
		c.buf.Set(next, y, ' ', c.buf.Cell(next, y).Style)
	}
	return width
}

// RuneCells is the number of columns r occupies when written.
func RuneCells(r rune) int {
	if w := runewidth.RuneWidth(printable(r)); w > 0 {
		return w
	}
	return 1
}

// StringCells is the number of columns s occupies when written.
func StringCells(s string) int {
	n := 0
	for _, r := range s {
		n += RuneCells(r)
	}
	return n
}

func printable(r rune) rune {
	if r == 0 || unicode.IsControl(r) {
		return ' '
	}
	return r
}
