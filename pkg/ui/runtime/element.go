// Package runtime is the retained-mode layout and rendering core: elements
// are measured against the space offered to them, arranged into windows,
// rendered into a frame buffer and painted onto a device by the App loop.
package runtime

import (
	"slices"

	"github.com/odvcencio/cellframe/pkg/errors"
	"github.com/odvcencio/cellframe/pkg/ui/backend"
)

// InvalidationKind says what an element change requires of the host.
type InvalidationKind int

const (
	// InvalidatePaint means the element must be drawn again.
	InvalidatePaint InvalidationKind = iota + 1
	// InvalidateLayout means the tree must be measured and arranged again.
	InvalidateLayout
)

func (k InvalidationKind) String() string {
	switch k {
	case InvalidatePaint:
		return "paint"
	case InvalidateLayout:
		return "layout"
	default:
		return "unknown"
	}
}

// InvalidateFunc receives invalidation signals from an element.
type InvalidateFunc func(kind InvalidationKind)

// Subscription identifies an invalidation listener.
type Subscription int

// Element is a node of the layout tree.
type Element interface {
	Name() string

	// Measure computes DesiredSize for the available space, margin
	// included. Either dimension may be Unconstrained.
	Measure(available Size)
	// Arrange places the element inside window and computes RenderSize
	// and RenderLocation.
	Arrange(window Rect)
	// Render draws the element with its own colors.
	Render(s Surface)
	// RenderWithColors draws the element, replacing its colors with any
	// argument that is not ColorUnset.
	RenderWithColors(s Surface, fg, bg backend.Color)

	// KeyPressed offers a key; true means it was consumed.
	KeyPressed(key KeyMsg) bool
	// LineEntered offers a completed input line; true means consumed.
	LineEntered(line string) bool

	DesiredSize() Size
	RenderSize() Size
	RenderLocation() Point
	Margin() Spacing

	Visible() bool
	Enabled() bool
	SetEnabled(enabled bool) bool

	OnInvalidate(fn InvalidateFunc) Subscription
	Unsubscribe(sub Subscription)
}

// Control is implemented by concrete elements. Base drives the three
// overrides from Measure, Arrange and Render.
type Control interface {
	Element

	// MeasureOverride returns the content size wanted within available,
	// which already excludes the margin.
	MeasureOverride(available Size) Size
	// ArrangeOverride lays out content in space, starting at
	// RenderLocation, and returns the size actually used.
	ArrangeOverride(space Size) Size
	// RenderOverride draws content after the render rect was blanked.
	RenderOverride(s Surface)
}

// KeyHandler is implemented by controls that react to keys.
type KeyHandler interface {
	HandleKey(key KeyMsg) bool
}

// LineHandler is implemented by controls that react to input lines.
type LineHandler interface {
	HandleLine(line string) bool
}

// EnabledObserver is notified after the enabled flag changes.
type EnabledObserver interface {
	EnabledChanged(enabled bool)
}

type listener struct {
	id Subscription
	fn InvalidateFunc
}

// Base carries the attributes and pipeline shared by all elements. Concrete
// elements embed it and call Init from their constructor:
//
//	b := &Box{}
//	b.Init(name, b)
type Base struct {
	self Control
	name string

	width, height        int
	minWidth, maxWidth   int
	minHeight, maxHeight int
	margin               Spacing
	fg, bg               backend.Color
	hidden               bool
	disabled             bool

	desired    Size
	renderSize Size
	location   Point

	listeners []listener
	lastSub   Subscription
}

// Init names the element and binds the overrides. Size attributes start
// unset, colors start as ColorUnset (inherited) and DesiredSize starts
// Unconstrained until the first Measure.
func (b *Base) Init(name string, self Control) {
	b.self = self
	b.name = name
	b.width, b.height = Unconstrained, Unconstrained
	b.minWidth, b.maxWidth = Unconstrained, Unconstrained
	b.minHeight, b.maxHeight = Unconstrained, Unconstrained
	b.fg, b.bg = backend.ColorUnset, backend.ColorUnset
	b.desired = Size{Width: Unconstrained, Height: Unconstrained}
}

func (b *Base) control() Control {
	if b.self == nil {
		panic(errors.New(errors.ErrCodeInternal, "element used before Init"))
	}
	return b.self
}

// Name returns the element name.
func (b *Base) Name() string { return b.name }

func (b *Base) String() string { return b.name }

// DesiredSize is the result of the last Measure, margin included.
func (b *Base) DesiredSize() Size { return b.desired }

// RenderSize is the content size from the last Arrange, margin excluded.
func (b *Base) RenderSize() Size { return b.renderSize }

// RenderLocation is the content origin from the last Arrange.
func (b *Base) RenderLocation() Point { return b.location }

// RenderRect is the content rectangle from the last Arrange.
func (b *Base) RenderRect() Rect { return RectAt(b.location, b.renderSize) }

// Measure implements Element.
func (b *Base) Measure(available Size) {
	self := b.control()
	if b.hidden {
		b.desired = Size{}
		return
	}

	// The override runs even when both dimensions are explicit: content
	// such as text lines and child sizes is computed there.
	inner := available.Sub(b.margin.TotalSize()).Limit(b.upperBound())
	if b.width >= 0 {
		inner.Width = b.width
	}
	if b.height >= 0 {
		inner.Height = b.height
	}
	content := self.MeasureOverride(inner)
	if b.width >= 0 {
		content.Width = b.width
	}
	if b.height >= 0 {
		content.Height = b.height
	}
	b.desired = b.constrain(content).Add(b.margin.TotalSize())
}

// Arrange implements Element.
func (b *Base) Arrange(window Rect) {
	self := b.control()
	b.location = window.Location().Add(b.margin.TopLeft())
	if b.hidden {
		b.renderSize = Size{}
		return
	}

	space := window.Size().Sub(b.margin.TotalSize())
	space.Width = max(0, space.Width)
	space.Height = max(0, space.Height)
	space = space.Limit(b.upperBound())

	used := self.ArrangeOverride(space)
	b.renderSize = Size{
		Width:  clamp(used.Width, 0, space.Width),
		Height: clamp(used.Height, 0, space.Height),
	}
}

// upperBound is the explicit size where set, else the maximum.
func (b *Base) upperBound() Size {
	ub := Size{Width: b.maxWidth, Height: b.maxHeight}
	if b.width >= 0 {
		ub.Width = limitDim(b.width, b.maxWidth)
	}
	if b.height >= 0 {
		ub.Height = limitDim(b.height, b.maxHeight)
	}
	return ub
}

func (b *Base) constrain(s Size) Size {
	s.Width = max(0, s.Width)
	s.Height = max(0, s.Height)
	if b.maxWidth >= 0 {
		s.Width = min(s.Width, b.maxWidth)
	}
	if b.minWidth >= 0 {
		s.Width = max(s.Width, b.minWidth)
	}
	if b.maxHeight >= 0 {
		s.Height = min(s.Height, b.maxHeight)
	}
	if b.minHeight >= 0 {
		s.Height = max(s.Height, b.minHeight)
	}
	return s
}

// Render implements Element.
func (b *Base) Render(s Surface) {
	b.RenderWithColors(s, backend.ColorUnset, backend.ColorUnset)
}

// RenderWithColors implements Element. The element's colors, or the
// overrides, are pushed for the duration of the call; the render rect is
// blanked before RenderOverride runs.
func (b *Base) RenderWithColors(s Surface, fg, bg backend.Color) {
	self := b.control()
	if b.hidden {
		return
	}
	if fg == backend.ColorUnset {
		fg = b.fg
	}
	if bg == backend.ColorUnset {
		bg = b.bg
	}
	s.SetForegroundColor(fg)
	s.SetBackgroundColor(bg)
	defer func() {
		s.PopBackgroundColor()
		s.PopForegroundColor()
	}()

	RenderBlank(s, b.location.X, b.location.Y, b.renderSize.Width, b.renderSize.Height)
	self.RenderOverride(s)
}

// KeyPressed implements Element.
func (b *Base) KeyPressed(key KeyMsg) bool {
	if b.hidden || b.disabled {
		return false
	}
	if h, ok := b.control().(KeyHandler); ok {
		return h.HandleKey(key)
	}
	return false
}

// LineEntered implements Element.
func (b *Base) LineEntered(line string) bool {
	if b.hidden || b.disabled {
		return false
	}
	if h, ok := b.control().(LineHandler); ok {
		return h.HandleLine(line)
	}
	return false
}

// OnInvalidate registers fn for invalidation signals.
func (b *Base) OnInvalidate(fn InvalidateFunc) Subscription {
	b.lastSub++
	b.listeners = append(b.listeners, listener{id: b.lastSub, fn: fn})
	return b.lastSub
}

// Unsubscribe removes a listener registered with OnInvalidate.
func (b *Base) Unsubscribe(sub Subscription) {
	b.listeners = slices.DeleteFunc(b.listeners, func(l listener) bool {
		return l.id == sub
	})
}

// Invalidate signals kind to every listener.
func (b *Base) Invalidate(kind InvalidationKind) {
	for _, l := range slices.Clone(b.listeners) {
		l.fn(kind)
	}
}

// InvalidateLayout is Invalidate(InvalidateLayout).
func (b *Base) InvalidateLayout() { b.Invalidate(InvalidateLayout) }

// InvalidatePaint is Invalidate(InvalidatePaint).
func (b *Base) InvalidatePaint() { b.Invalidate(InvalidatePaint) }

// Width returns the explicit width, or Unconstrained.
func (b *Base) Width() int { return b.width }

// SetWidth sets the explicit width; a negative value clears it.
func (b *Base) SetWidth(w int) bool { return b.setDim(&b.width, w) }

// Height returns the explicit height, or Unconstrained.
func (b *Base) Height() int { return b.height }

// SetHeight sets the explicit height; a negative value clears it.
func (b *Base) SetHeight(h int) bool { return b.setDim(&b.height, h) }

// MinWidth returns the minimum content width, or Unconstrained.
func (b *Base) MinWidth() int { return b.minWidth }

// SetMinWidth sets the minimum content width; negative clears it.
func (b *Base) SetMinWidth(w int) bool { return b.setDim(&b.minWidth, w) }

// MaxWidth returns the maximum content width, or Unconstrained.
func (b *Base) MaxWidth() int { return b.maxWidth }

// SetMaxWidth sets the maximum content width; negative clears it.
func (b *Base) SetMaxWidth(w int) bool { return b.setDim(&b.maxWidth, w) }

// MinHeight returns the minimum content height, or Unconstrained.
func (b *Base) MinHeight() int { return b.minHeight }

// SetMinHeight sets the minimum content height; negative clears it.
func (b *Base) SetMinHeight(h int) bool { return b.setDim(&b.minHeight, h) }

// MaxHeight returns the maximum content height, or Unconstrained.
func (b *Base) MaxHeight() int { return b.maxHeight }

// SetMaxHeight sets the maximum content height; negative clears it.
func (b *Base) SetMaxHeight(h int) bool { return b.setDim(&b.maxHeight, h) }

func (b *Base) setDim(field *int, v int) bool {
	if v < 0 {
		v = Unconstrained
	}
	if *field == v {
		return false
	}
	*field = v
	b.InvalidateLayout()
	return true
}

// Margin returns the outer spacing.
func (b *Base) Margin() Spacing { return b.margin }

// SetMargin sets the outer spacing.
func (b *Base) SetMargin(m Spacing) bool {
	if b.margin == m {
		return false
	}
	b.margin = m
	b.InvalidateLayout()
	return true
}

// Foreground returns the foreground color; ColorUnset inherits.
func (b *Base) Foreground() backend.Color { return b.fg }

// SetForeground sets the foreground color.
func (b *Base) SetForeground(c backend.Color) bool {
	if b.fg == c {
		return false
	}
	b.fg = c
	b.InvalidatePaint()
	return true
}

// Background returns the background color; ColorUnset inherits.
func (b *Base) Background() backend.Color { return b.bg }

// SetBackground sets the background color.
func (b *Base) SetBackground(c backend.Color) bool {
	if b.bg == c {
		return false
	}
	b.bg = c
	b.InvalidatePaint()
	return true
}

// Visible reports whether the element takes part in layout and rendering.
func (b *Base) Visible() bool { return !b.hidden }

// SetVisible shows or hides the element.
func (b *Base) SetVisible(visible bool) bool {
	if b.hidden == !visible {
		return false
	}
	b.hidden = !visible
	b.InvalidateLayout()
	return true
}

// Enabled reports whether the element accepts input.
func (b *Base) Enabled() bool { return !b.disabled }

// SetEnabled enables or disables input handling.
func (b *Base) SetEnabled(enabled bool) bool {
	if b.disabled == !enabled {
		return false
	}
	b.disabled = !enabled
	if o, ok := b.control().(EnabledObserver); ok {
		o.EnabledChanged(enabled)
	}
	b.InvalidatePaint()
	return true
}
