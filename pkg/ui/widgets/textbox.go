package widgets

import (
	"slices"
	"strings"

	"github.com/rivo/uniseg"

	"github.com/odvcencio/cellframe/pkg/ui/runtime"
)

// TextBox shows a string as lines clipped to the space it is measured
// against. With wrapping on and a constrained width, the text is cut into
// width-sized lines; otherwise it is split at newlines.
type TextBox struct {
	runtime.Base
	text     string
	wrap     bool
	lines    []string
	measured runtime.Size
}

// NewTextBox creates a text box showing text.
func NewTextBox(name, text string) *TextBox {
	t := &TextBox{text: text}
	t.Init(name, t)
	return t
}

// Text returns the current text.
func (t *TextBox) Text() string { return t.text }

// SetText replaces the text.
func (t *TextBox) SetText(text string) bool {
	if t.text == text {
		return false
	}
	t.text = text
	t.InvalidateLayout()
	return true
}

// Wrap reports whether long text is cut at the available width.
func (t *TextBox) Wrap() bool { return t.wrap }

// SetWrap turns wrapping on or off.
func (t *TextBox) SetWrap(wrap bool) bool {
	if t.wrap == wrap {
		return false
	}
	t.wrap = wrap
	t.InvalidateLayout()
	return true
}

// WithWrap sets wrapping and returns the text box for chaining.
func (t *TextBox) WithWrap(wrap bool) *TextBox {
	t.SetWrap(wrap)
	return t
}

// Lines returns the lines kept by the last measure.
func (t *TextBox) Lines() []string {
	return slices.Clone(t.lines)
}

// MeasureOverride implements runtime.Control.
func (t *TextBox) MeasureOverride(available runtime.Size) runtime.Size {
	t.lines = t.lines[:0]
	width := 0
	rest := t.text
	for rest != "" {
		var line string
		line, rest = t.nextLine(rest, available.Width)
		if available.Height >= 0 && len(t.lines) >= available.Height {
			continue
		}
		t.lines = append(t.lines, line)
		width = max(width, runtime.StringCells(line))
	}
	t.measured = runtime.Size{Width: width, Height: len(t.lines)}
	return t.measured
}

// nextLine splits the next visual line off text.
func (t *TextBox) nextLine(text string, width int) (line, rest string) {
	if t.wrap && width > 0 {
		return cutCells(text, width)
	}
	i := strings.IndexByte(text, '\n')
	if i < 0 {
		return strings.ReplaceAll(text, "\r", ""), ""
	}
	line = strings.ReplaceAll(text[:i], "\r", "")
	return line, strings.TrimLeft(text[i+1:], "\r")
}

// cutCells returns the longest prefix of s, in whole grapheme clusters,
// that fits in width columns, and the remainder. The prefix holds at least
// one cluster.
func cutCells(s string, width int) (head, tail string) {
	used, n := 0, 0
	state := -1
	rest := s
	for rest != "" {
		var cluster string
		cluster, rest, _, state = uniseg.FirstGraphemeClusterInString(rest, state)
		w := runtime.StringCells(cluster)
		if n > 0 && used+w > width {
			break
		}
		used += w
		n += len(cluster)
	}
	return s[:n], s[n:]
}

// ArrangeOverride implements runtime.Control.
func (t *TextBox) ArrangeOverride(space runtime.Size) runtime.Size {
	return t.measured.Limit(space)
}

// RenderOverride implements runtime.Control.
func (t *TextBox) RenderOverride(s runtime.Surface) {
	loc, size := t.RenderLocation(), t.RenderSize()
	for i, line := range t.lines {
		if i >= size.Height {
			break
		}
		line, _ = cutCells(line, size.Width)
		if runtime.StringCells(line) > size.Width {
			continue
		}
		s.WriteString(line, loc.X, loc.Y+i)
	}
}
