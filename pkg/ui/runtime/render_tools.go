package runtime

import (
	"fmt"
	"strings"
)

// BorderStyle selects a border glyph set.
type BorderStyle int

const (
	BorderNone BorderStyle = iota
	BorderSingle
	BorderDouble
)

func (s BorderStyle) String() string {
	switch s {
	case BorderSingle:
		return "single"
	case BorderDouble:
		return "double"
	default:
		return "none"
	}
}

// ParseBorderStyle resolves "none", "single" or "double".
func ParseBorderStyle(s string) (BorderStyle, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return BorderNone, nil
	case "single":
		return BorderSingle, nil
	case "double":
		return BorderDouble, nil
	}
	return BorderNone, fmt.Errorf("unknown border style %q", s)
}

// BorderPart names one glyph of a border set.
type BorderPart int

const (
	PartHorizontal BorderPart = iota
	PartVertical
	PartTopLeft
	PartTopRight
	PartBottomLeft
	PartBottomRight
	PartJoinTop
	PartJoinBottom
	PartJoinLeft
	PartJoinRight
	PartCross
	partCount
)

var borderGlyphs = [...][partCount]rune{
	BorderNone:   {' ', ' ', ' ', ' ', ' ', ' ', ' ', ' ', ' ', ' ', ' '},
	BorderSingle: {'─', '│', '┌', '┐', '└', '┘', '┬', '┴', '├', '┤', '┼'},
	BorderDouble: {'═', '║', '╔', '╗', '╚', '╝', '╦', '╩', '╠', '╣', '╬'},
}

// BorderGlyph looks up the glyph for part in style. Unknown styles draw
// as BorderNone.
func BorderGlyph(style BorderStyle, part BorderPart) rune {
	if style < 0 || int(style) >= len(borderGlyphs) || part < 0 || part >= partCount {
		return ' '
	}
	return borderGlyphs[style][part]
}

// RenderBlank fills a rectangle with spaces in the current colors.
func RenderBlank(s Surface, left, top, width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	blank := strings.Repeat(" ", width)
	for y := 0; y < height; y++ {
		s.WriteString(blank, left, top+y)
	}
}

// RenderBox draws corners and edges of a width x height frame whose top
// left corner is (left, top). BorderNone draws nothing.
func RenderBox(s Surface, left, top, width, height int, style BorderStyle) {
	if width <= 0 || height <= 0 || style == BorderNone {
		return
	}
	right := left + width - 1
	bottom := top + height - 1
	s.Write(BorderGlyph(style, PartTopLeft), left, top)
	s.Write(BorderGlyph(style, PartTopRight), right, top)
	s.Write(BorderGlyph(style, PartBottomLeft), left, bottom)
	s.Write(BorderGlyph(style, PartBottomRight), right, bottom)
	h := BorderGlyph(style, PartHorizontal)
	for x := left + 1; x < right; x++ {
		s.Write(h, x, top)
		s.Write(h, x, bottom)
	}
	v := BorderGlyph(style, PartVertical)
	for y := top + 1; y < bottom; y++ {
		s.Write(v, left, y)
		s.Write(v, right, y)
	}
}

// Clip returns a Surface that forwards to s but drops every cell outside
// bounds. A wide rune cut by the right edge draws as a blank.
func Clip(s Surface, bounds Rect) Surface {
	return &clipped{Surface: s, bounds: bounds}
}

type clipped struct {
	Surface
	bounds Rect
}

func (c *clipped) Write(r rune, x, y int) {
	if !c.bounds.Contains(x, y) {
		return
	}
	if RuneCells(r) == 2 && !c.bounds.Contains(x+1, y) {
		r = ' '
	}
	c.Surface.Write(r, x, y)
}

func (c *clipped) WriteString(s string, x, y int) {
	for _, r := range s {
		c.Write(r, x, y)
		x += RuneCells(r)
	}
}
