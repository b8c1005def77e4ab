package backend

import (
	"fmt"
	"strings"
)

// Color represents one of the sixteen console colors, or a sentinel.
type Color int32

// Color constants
const (
	// ColorUnset asks the drawing context to keep the color currently in
	// effect. It never reaches a device.
	ColorUnset   Color = -2
	ColorDefault Color = -1
	ColorBlack   Color = 0
	ColorRed     Color = 1
	ColorGreen   Color = 2
	ColorYellow  Color = 3
	ColorBlue    Color = 4
	ColorMagenta Color = 5
	ColorCyan    Color = 6
	ColorWhite   Color = 7

	// Bright variants
	ColorBrightBlack   Color = 8
	ColorBrightRed     Color = 9
	ColorBrightGreen   Color = 10
	ColorBrightYellow  Color = 11
	ColorBrightBlue    Color = 12
	ColorBrightMagenta Color = 13
	ColorBrightCyan    Color = 14
	ColorBrightWhite   Color = 15
)

var colorNames = []string{
	"black", "red", "green", "yellow", "blue", "magenta", "cyan", "white",
	"bright-black", "bright-red", "bright-green", "bright-yellow",
	"bright-blue", "bright-magenta", "bright-cyan", "bright-white",
}

// IsPalette reports whether c is one of the sixteen concrete colors.
func (c Color) IsPalette() bool {
	return c >= ColorBlack && c <= ColorBrightWhite
}

func (c Color) String() string {
	switch {
	case c == ColorUnset:
		return "unset"
	case c == ColorDefault:
		return "default"
	case c.IsPalette():
		return colorNames[c]
	default:
		return fmt.Sprintf("color(%d)", int32(c))
	}
}

// ParseColor resolves a color name such as "blue", "bright-white" or
// "default". Console-style names ("darkblue", "gray") are accepted too.
func ParseColor(name string) (Color, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	n = strings.ReplaceAll(n, "_", "-")
	switch n {
	case "", "default":
		return ColorDefault, nil
	case "unset":
		return ColorUnset, nil
	case "gray", "grey":
		return ColorWhite, nil
	case "darkgray", "darkgrey", "dark-gray", "dark-grey":
		return ColorBrightBlack, nil
	}
	if rest, ok := strings.CutPrefix(n, "dark"); ok {
		// Console dark colors are the ANSI normal intensity colors.
		rest = strings.TrimPrefix(rest, "-")
		for i := ColorBlack; i <= ColorWhite; i++ {
			if colorNames[i] == rest {
				return i, nil
			}
		}
	}
	for i, cn := range colorNames {
		if cn == n {
			return Color(i), nil
		}
	}
	return ColorDefault, fmt.Errorf("unknown color %q", name)
}

// Style combines foreground and background colors.
type Style struct {
	fg Color
	bg Color
}

// DefaultStyle returns the default style (device default colors).
func DefaultStyle() Style {
	return Style{fg: ColorDefault, bg: ColorDefault}
}

// Foreground sets the foreground color.
func (s Style) Foreground(c Color) Style {
	s.fg = c
	return s
}

// Background sets the background color.
func (s Style) Background(c Color) Style {
	s.bg = c
	return s
}

// FG returns the foreground color.
func (s Style) FG() Color {
	return s.fg
}

// BG returns the background color.
func (s Style) BG() Color {
	return s.bg
}

// Decompose returns the foreground and background colors.
func (s Style) Decompose() (fg, bg Color) {
	return s.fg, s.bg
}
