package widgets

import (
	"github.com/odvcencio/cellframe/pkg/ui/backend"
	"github.com/odvcencio/cellframe/pkg/ui/observable"
	"github.com/odvcencio/cellframe/pkg/ui/runtime"
)

// None marks an empty hover or selection index.
const None = -1

// ItemsContainer holds the state shared by the selectable collections: the
// item source, the hovered and selected items and their colors. Concrete
// collections embed it and call initItems from their constructor.
type ItemsContainer struct {
	runtime.Base

	padding        runtime.Spacing
	source         *observable.List[runtime.Element]
	unsubscribe    func()
	watched        map[runtime.Element]runtime.Subscription
	selectionColor backend.Color
	highlightColor backend.Color

	hovered  runtime.Element
	selected runtime.Element

	onSelection func(old, cur runtime.Element)
	onHover     func(old, cur runtime.Element)

	// sourceChanged lets the embedding collection adjust its indices
	// before layout is invalidated.
	sourceChanged func(observable.Change[runtime.Element])
}

func (c *ItemsContainer) initItems(name string, self runtime.Control, changed func(observable.Change[runtime.Element])) {
	c.Init(name, self)
	c.watched = make(map[runtime.Element]runtime.Subscription)
	c.selectionColor = backend.ColorBlue
	c.highlightColor = backend.ColorUnset
	c.sourceChanged = changed
}

// ItemsSource returns the item list. It may be nil.
func (c *ItemsContainer) ItemsSource() *observable.List[runtime.Element] {
	return c.source
}

// SetItemsSource replaces the item list. A nil list shows nothing.
func (c *ItemsContainer) SetItemsSource(src *observable.List[runtime.Element]) {
	if c.source == src {
		return
	}
	if c.unsubscribe != nil {
		c.unsubscribe()
		c.unsubscribe = nil
	}
	removed := c.source.Items()
	c.source = src
	if src != nil {
		c.unsubscribe = src.Subscribe(c.itemsChanged)
	}
	c.itemsChanged(observable.Change[runtime.Element]{Type: observable.ChangeSet, Removed: removed})
}

// Count returns the number of items.
func (c *ItemsContainer) Count() int { return c.source.Len() }

func (c *ItemsContainer) itemsChanged(ch observable.Change[runtime.Element]) {
	switch ch.Type {
	case observable.ChangeAdd:
		c.watch(ch.Item)
	case observable.ChangeRemove:
		c.unwatch(ch.Old)
	case observable.ChangeUpdate:
		c.unwatch(ch.Old)
		c.watch(ch.Item)
	case observable.ChangeClear, observable.ChangeSet:
		for _, item := range ch.Removed {
			c.unwatch(item)
		}
		for _, item := range c.source.Items() {
			c.watch(item)
		}
	}
	if c.sourceChanged != nil {
		c.sourceChanged(ch)
	}
	c.InvalidateLayout()
}

func (c *ItemsContainer) watch(item runtime.Element) {
	if item == nil {
		return
	}
	if _, ok := c.watched[item]; ok {
		return
	}
	c.watched[item] = item.OnInvalidate(c.Invalidate)
}

func (c *ItemsContainer) unwatch(item runtime.Element) {
	sub, ok := c.watched[item]
	if !ok || c.source.Contains(item) {
		return
	}
	item.Unsubscribe(sub)
	delete(c.watched, item)
}

// Padding returns the space added around each item.
func (c *ItemsContainer) Padding() runtime.Spacing { return c.padding }

// SetPadding changes the space added around each item.
func (c *ItemsContainer) SetPadding(p runtime.Spacing) bool {
	if c.padding == p {
		return false
	}
	c.padding = p
	c.InvalidateLayout()
	return true
}

// SelectionColor is the background drawn behind the selected item.
func (c *ItemsContainer) SelectionColor() backend.Color { return c.selectionColor }

// SetSelectionColor changes the selection background.
func (c *ItemsContainer) SetSelectionColor(col backend.Color) bool {
	if c.selectionColor == col {
		return false
	}
	c.selectionColor = col
	c.InvalidatePaint()
	return true
}

// HighlightColor is the foreground of the frame around the hovered item.
// ColorUnset draws it in the inherited foreground.
func (c *ItemsContainer) HighlightColor() backend.Color { return c.highlightColor }

// SetHighlightColor changes the hover frame color.
func (c *ItemsContainer) SetHighlightColor(col backend.Color) bool {
	if c.highlightColor == col {
		return false
	}
	c.highlightColor = col
	c.InvalidatePaint()
	return true
}

// HoveredItem returns the item under the cursor, or nil.
func (c *ItemsContainer) HoveredItem() runtime.Element { return c.hovered }

// SelectedItem returns the committed item, or nil.
func (c *ItemsContainer) SelectedItem() runtime.Element { return c.selected }

// OnSelectionChanged registers fn to run after the selected item changes.
func (c *ItemsContainer) OnSelectionChanged(fn func(old, cur runtime.Element)) {
	c.onSelection = fn
}

// OnHoverChanged registers fn to run after the hovered item changes.
func (c *ItemsContainer) OnHoverChanged(fn func(old, cur runtime.Element)) {
	c.onHover = fn
}

func (c *ItemsContainer) setHovered(item runtime.Element) {
	if c.hovered == item {
		return
	}
	old := c.hovered
	c.hovered = item
	c.InvalidatePaint()
	if c.onHover != nil {
		c.onHover(old, item)
	}
}

func (c *ItemsContainer) setSelected(item runtime.Element) {
	if c.selected == item {
		return
	}
	old := c.selected
	c.selected = item
	c.InvalidatePaint()
	if c.onSelection != nil {
		c.onSelection(old, item)
	}
}

// axis projects sizes onto the list direction.
type axis runtime.Orientation

func (a axis) along(s runtime.Size) int {
	if runtime.Orientation(a) == runtime.Horizontal {
		return s.Width
	}
	return s.Height
}

func (a axis) across(s runtime.Size) int {
	if runtime.Orientation(a) == runtime.Horizontal {
		return s.Height
	}
	return s.Width
}

func (a axis) size(along, across int) runtime.Size {
	if runtime.Orientation(a) == runtime.Horizontal {
		return runtime.Size{Width: along, Height: across}
	}
	return runtime.Size{Width: across, Height: along}
}

func (a axis) point(along, across int) runtime.Point {
	if runtime.Orientation(a) == runtime.Horizontal {
		return runtime.Point{X: along, Y: across}
	}
	return runtime.Point{X: across, Y: along}
}
