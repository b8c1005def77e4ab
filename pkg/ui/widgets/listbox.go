package widgets

import (
	"github.com/odvcencio/cellframe/pkg/ui/backend"
	"github.com/odvcencio/cellframe/pkg/ui/observable"
	"github.com/odvcencio/cellframe/pkg/ui/runtime"
	"github.com/odvcencio/cellframe/pkg/ui/terminal"
)

// ListBox stacks its items along one axis with a one-cell gap between
// them. The arrow keys of that axis move the hover; Enter selects.
type ListBox struct {
	ItemsContainer
	orientation runtime.Orientation

	hoveredIndex  int
	selectedIndex int

	extents []int // along the axis, from the last measure
	across  int
	offsets []int // along the axis, from the last arrange
}

// NewListBox creates an empty list laid out along o.
func NewListBox(name string, o runtime.Orientation) *ListBox {
	l := &ListBox{orientation: o, hoveredIndex: None, selectedIndex: None}
	l.initItems(name, l, l.sourceUpdated)
	return l
}

// Orientation returns the stacking axis.
func (l *ListBox) Orientation() runtime.Orientation { return l.orientation }

// SetOrientation changes the stacking axis.
func (l *ListBox) SetOrientation(o runtime.Orientation) bool {
	if l.orientation == o {
		return false
	}
	l.orientation = o
	l.InvalidateLayout()
	return true
}

// HoveredIndex returns the index under the cursor, or None.
func (l *ListBox) HoveredIndex() int { return l.hoveredIndex }

// SetHoveredIndex moves the cursor. Indices outside the list clear it.
func (l *ListBox) SetHoveredIndex(i int) bool {
	i = l.validIndex(i)
	if i == l.hoveredIndex {
		return false
	}
	l.hoveredIndex = i
	l.setHovered(l.source.At(i))
	return true
}

// SelectedIndex returns the committed index, or None.
func (l *ListBox) SelectedIndex() int { return l.selectedIndex }

// SetSelectedIndex commits index i. Indices outside the list clear the
// selection.
func (l *ListBox) SetSelectedIndex(i int) bool {
	i = l.validIndex(i)
	if i == l.selectedIndex {
		return false
	}
	l.selectedIndex = i
	l.setSelected(l.source.At(i))
	return true
}

func (l *ListBox) validIndex(i int) int {
	if i < 0 || i >= l.Count() {
		return None
	}
	return i
}

func (l *ListBox) sourceUpdated(ch observable.Change[runtime.Element]) {
	switch ch.Type {
	case observable.ChangeAdd:
		l.hoveredIndex = shiftInserted(l.hoveredIndex, ch.Index)
		l.selectedIndex = shiftInserted(l.selectedIndex, ch.Index)
	case observable.ChangeRemove:
		l.hoveredIndex = shiftRemoved(l.hoveredIndex, ch.Index)
		l.selectedIndex = shiftRemoved(l.selectedIndex, ch.Index)
	case observable.ChangeClear, observable.ChangeSet:
		l.hoveredIndex, l.selectedIndex = None, None
	}
	l.setHovered(l.source.At(l.hoveredIndex))
	l.setSelected(l.source.At(l.selectedIndex))
}

func shiftInserted(idx, at int) int {
	if idx != None && at <= idx {
		return idx + 1
	}
	return idx
}

func shiftRemoved(idx, at int) int {
	switch {
	case idx == None:
		return None
	case at == idx:
		return None
	case at < idx:
		return idx - 1
	}
	return idx
}

// HandleKey implements runtime.KeyHandler.
func (l *ListBox) HandleKey(key runtime.KeyMsg) bool {
	prev, next := terminal.KeyUp, terminal.KeyDown
	if l.orientation == runtime.Horizontal {
		prev, next = terminal.KeyLeft, terminal.KeyRight
	}
	switch key.Key {
	case prev:
		if l.hoveredIndex > 0 {
			l.SetHoveredIndex(l.hoveredIndex - 1)
		}
	case next:
		if l.hoveredIndex < l.Count()-1 {
			l.SetHoveredIndex(l.hoveredIndex + 1)
		}
	case terminal.KeyEnter:
		l.SetSelectedIndex(l.hoveredIndex)
	default:
		return false
	}
	return true
}

// EnabledChanged implements runtime.EnabledObserver.
func (l *ListBox) EnabledChanged(enabled bool) {
	if enabled {
		l.SetHoveredIndex(l.selectedIndex)
		return
	}
	l.SetHoveredIndex(None)
}

// MeasureOverride implements runtime.Control.
func (l *ListBox) MeasureOverride(available runtime.Size) runtime.Size {
	a := axis(l.orientation)
	items := l.source.Items()
	l.extents = l.extents[:0]
	l.across = 0
	if len(items) == 0 {
		return runtime.Size{}
	}

	inner := available.Sub(l.padding.TotalSize()).Sub(runtime.Size{Width: 2, Height: 2})
	along := 1
	for _, item := range items {
		var d runtime.Size
		if item != nil {
			item.Measure(inner)
			d = item.DesiredSize()
		}
		l.extents = append(l.extents, a.along(d))
		along += a.along(d) + 1
		l.across = max(l.across, a.across(d))
	}
	return a.size(along, l.across+2).Add(l.padding.TotalSize())
}

// ArrangeOverride implements runtime.Control.
func (l *ListBox) ArrangeOverride(space runtime.Size) runtime.Size {
	a := axis(l.orientation)
	items := l.source.Items()
	l.offsets = l.offsets[:0]
	if len(items) == 0 {
		return runtime.Size{}
	}

	origin := l.RenderLocation().Add(l.padding.TopLeft())
	offset := 1
	for i, item := range items {
		extent := 0
		if i < len(l.extents) {
			extent = l.extents[i]
		}
		l.offsets = append(l.offsets, offset)
		if item != nil {
			item.Arrange(runtime.RectAt(origin.Add(a.point(offset, 1)), a.size(extent, l.across)))
		}
		offset += extent + 1
	}
	return a.size(offset, l.across+2).Add(l.padding.TotalSize()).Limit(space)
}

// RenderOverride implements runtime.Control. Nothing is drawn outside the
// render rect, even when arranged smaller than desired.
func (l *ListBox) RenderOverride(s runtime.Surface) {
	s = runtime.Clip(s, l.RenderRect())
	for i, item := range l.source.Items() {
		switch {
		case item == nil:
		case i == l.selectedIndex:
			item.RenderWithColors(s, backend.ColorUnset, l.selectionColor)
		default:
			item.Render(s)
		}
	}

	i := l.hoveredIndex
	if i < 0 || i >= len(l.offsets) || i >= len(l.extents) {
		return
	}
	a := axis(l.orientation)
	at := l.RenderLocation().Add(l.padding.TopLeft()).Add(a.point(l.offsets[i]-1, 0))
	frame := a.size(l.extents[i]+2, l.across+2)
	s.SetForegroundColor(l.highlightColor)
	runtime.RenderBox(s, at.X, at.Y, frame.Width, frame.Height, runtime.BorderSingle)
	s.PopForegroundColor()
}
