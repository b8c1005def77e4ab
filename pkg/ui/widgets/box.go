// Package widgets provides the concrete elements: bordered frames, text,
// and the selectable list and grid collections.
package widgets

import "github.com/odvcencio/cellframe/pkg/ui/runtime"

// Box draws a border around whatever space it is arranged into. It has no
// content of its own.
type Box struct {
	runtime.Base
	border runtime.BorderStyle
}

// NewBox creates a box with a single-line border.
func NewBox(name string) *Box {
	b := &Box{border: runtime.BorderSingle}
	b.Init(name, b)
	return b
}

// BorderStyle returns the glyph set used for the frame.
func (b *Box) BorderStyle() runtime.BorderStyle { return b.border }

// SetBorderStyle changes the glyph set.
func (b *Box) SetBorderStyle(s runtime.BorderStyle) bool {
	if b.border == s {
		return false
	}
	b.border = s
	b.InvalidatePaint()
	return true
}

// WithBorderStyle sets the glyph set and returns the box for chaining.
func (b *Box) WithBorderStyle(s runtime.BorderStyle) *Box {
	b.SetBorderStyle(s)
	return b
}

// MeasureOverride implements runtime.Control.
func (b *Box) MeasureOverride(runtime.Size) runtime.Size {
	return runtime.Size{}
}

// ArrangeOverride implements runtime.Control.
func (b *Box) ArrangeOverride(space runtime.Size) runtime.Size {
	return space
}

// RenderOverride implements runtime.Control.
func (b *Box) RenderOverride(s runtime.Surface) {
	loc, size := b.RenderLocation(), b.RenderSize()
	runtime.RenderBox(s, loc.X, loc.Y, size.Width, size.Height, b.border)
}
