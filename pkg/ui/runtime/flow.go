package runtime

// Orientation is the stacking axis of a flow.
type Orientation int

const (
	Vertical Orientation = iota
	Horizontal
)

func (o Orientation) String() string {
	if o == Horizontal {
		return "horizontal"
	}
	return "vertical"
}

// FlowContainer stacks its children along one axis. Adjacent margins
// collapse to the larger of the two. Content that does not fit is clipped;
// there is no wrapping.
type FlowContainer struct {
	Container
	orientation Orientation
}

// NewFlowContainer creates an empty flow stacking along o.
func NewFlowContainer(name string, o Orientation) *FlowContainer {
	f := &FlowContainer{orientation: o}
	f.InitContainer(name, f)
	return f
}

// Orientation returns the stacking axis.
func (f *FlowContainer) Orientation() Orientation { return f.orientation }

// SetOrientation changes the stacking axis.
func (f *FlowContainer) SetOrientation(o Orientation) bool {
	if f.orientation == o {
		return false
	}
	f.orientation = o
	f.InvalidateLayout()
	return true
}

// MeasureOverride implements Control. Each child is measured against the
// space left by its predecessors; extents sum along the axis and take the
// maximum across it.
func (f *FlowContainer) MeasureOverride(available Size) Size {
	o := f.orientation
	remaining := available.Sub(f.padding.TotalSize())
	var along, across int
	for _, child := range f.children.Items() {
		child.Measure(remaining)
		d := child.DesiredSize()
		along += o.along(d)
		across = max(across, o.across(d))
		left := subDim(o.along(remaining), o.along(d))
		remaining = o.size(left, o.across(remaining))
	}
	return o.size(along, across).Add(f.padding.TotalSize())
}

// ArrangeOverride implements Control.
func (f *FlowContainer) ArrangeOverride(space Size) Size {
	o := f.orientation
	window := RectAt(f.RenderLocation(), space).Inset(f.padding)
	origin := window.Location()
	total := o.along(window.Size())
	cross := o.across(window.Size())

	offset, trailing, across := 0, 0, 0
	for _, child := range f.children.Items() {
		lead, trail := o.margins(child.Margin())
		start := offset + max(trailing, lead) - lead
		length := o.along(child.DesiredSize())
		if length < 0 {
			length = total - start
		}
		length = clamp(length, 0, max(0, total-start))

		child.Arrange(RectAt(origin.Add(o.point(start, 0)), o.size(length, cross)))
		f.arranged(child)
		if !child.Visible() {
			continue
		}
		used := occupied(child, origin)
		offset = o.along(used)
		trailing = trail
		across = max(across, o.across(used)+o.trailingCross(child.Margin()))
	}
	return o.size(offset+trailing, across).Add(f.padding.TotalSize())
}

func (o Orientation) along(s Size) int {
	if o == Horizontal {
		return s.Width
	}
	return s.Height
}

func (o Orientation) across(s Size) int {
	if o == Horizontal {
		return s.Height
	}
	return s.Width
}

func (o Orientation) size(along, across int) Size {
	if o == Horizontal {
		return Size{Width: along, Height: across}
	}
	return Size{Width: across, Height: along}
}

func (o Orientation) point(along, across int) Point {
	if o == Horizontal {
		return Point{X: along, Y: across}
	}
	return Point{X: across, Y: along}
}

// margins returns the leading and trailing margin along the axis.
func (o Orientation) margins(m Spacing) (lead, trail int) {
	if o == Horizontal {
		return m.Left, m.Right
	}
	return m.Top, m.Bottom
}

func (o Orientation) trailingCross(m Spacing) int {
	if o == Horizontal {
		return m.Bottom
	}
	return m.Right
}
