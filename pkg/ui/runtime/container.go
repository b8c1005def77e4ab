package runtime

import "github.com/odvcencio/cellframe/pkg/ui/observable"

// childState is the per-child render metadata kept by a Container.
type childState struct {
	sub   Subscription
	dirty bool
	size  Size
}

// Container stacks its children on top of each other inside its padding.
// Adding a child subscribes to its invalidation signal and removing it
// unsubscribes; any child invalidation is re-raised by the container.
type Container struct {
	Base
	children *observable.List[Element]
	state    map[Element]*childState
	padding  Spacing
}

// NewContainer creates an empty container.
func NewContainer(name string) *Container {
	c := &Container{}
	c.InitContainer(name, c)
	return c
}

// InitContainer prepares a Container embedded in self.
func (c *Container) InitContainer(name string, self Control) {
	c.Init(name, self)
	c.state = make(map[Element]*childState)
	c.children = observable.NewList[Element]()
	c.children.Subscribe(c.childrenChanged)
}

// Children returns the observable child list. Mutating it updates the
// container.
func (c *Container) Children() *observable.List[Element] {
	return c.children
}

// Add appends children.
func (c *Container) Add(children ...Element) {
	c.children.Add(children...)
}

// Remove detaches child and reports whether it was present.
func (c *Container) Remove(child Element) bool {
	return c.children.Remove(child)
}

// Padding returns the inner spacing between the border and the children.
func (c *Container) Padding() Spacing { return c.padding }

// SetPadding sets the inner spacing.
func (c *Container) SetPadding(p Spacing) bool {
	if c.padding == p {
		return false
	}
	c.padding = p
	c.InvalidateLayout()
	return true
}

// ChildDirty reports whether child has invalidated since the container
// last arranged it. Unknown elements report false.
func (c *Container) ChildDirty(child Element) bool {
	st := c.state[child]
	return st != nil && st.dirty
}

// LastArranged returns the render size child had when the container last
// arranged it.
func (c *Container) LastArranged(child Element) (Size, bool) {
	st := c.state[child]
	if st == nil {
		return Size{}, false
	}
	return st.size, true
}

func (c *Container) childrenChanged(ch observable.Change[Element]) {
	switch ch.Type {
	case observable.ChangeAdd:
		c.attach(ch.Item)
	case observable.ChangeRemove:
		c.detach(ch.Old)
	case observable.ChangeUpdate:
		c.detach(ch.Old)
		c.attach(ch.Item)
	case observable.ChangeClear, observable.ChangeSet:
		for _, old := range ch.Removed {
			c.detach(old)
		}
		for _, child := range c.children.Items() {
			c.attach(child)
		}
	}
	c.InvalidateLayout()
}

func (c *Container) attach(child Element) {
	if child == nil || c.state[child] != nil {
		return
	}
	st := &childState{dirty: true}
	st.sub = child.OnInvalidate(func(kind InvalidationKind) {
		st.dirty = true
		c.Invalidate(kind)
	})
	c.state[child] = st
}

// detach drops a child's subscription and metadata once it no longer
// occurs in the list.
func (c *Container) detach(child Element) {
	st := c.state[child]
	if st == nil || c.children.Contains(child) {
		return
	}
	child.Unsubscribe(st.sub)
	delete(c.state, child)
}

// MeasureOverride implements Control. The result is the bounding box of
// the children plus padding.
func (c *Container) MeasureOverride(available Size) Size {
	inner := available.Sub(c.padding.TotalSize())
	var size Size
	for _, child := range c.children.Items() {
		child.Measure(inner)
		size = size.Max(child.DesiredSize())
	}
	return size.Add(c.padding.TotalSize())
}

// ArrangeOverride implements Control. Every child gets the whole padded
// window.
func (c *Container) ArrangeOverride(space Size) Size {
	window := RectAt(c.RenderLocation(), space).Inset(c.padding)
	var used Size
	for _, child := range c.children.Items() {
		child.Arrange(window)
		c.arranged(child)
		used = used.Max(occupied(child, window.Location()))
	}
	return used.Add(c.padding.TotalSize())
}

func (c *Container) arranged(child Element) {
	if st := c.state[child]; st != nil {
		st.dirty = false
		st.size = child.RenderSize()
	}
}

// occupied is the area an arranged child covers measured from origin,
// leading margin included.
func occupied(child Element, origin Point) Size {
	if !child.Visible() {
		return Size{}
	}
	loc, rs := child.RenderLocation(), child.RenderSize()
	return Size{Width: loc.X - origin.X + rs.Width, Height: loc.Y - origin.Y + rs.Height}
}

// RenderOverride implements Control.
func (c *Container) RenderOverride(s Surface) {
	for _, child := range c.children.Items() {
		child.Render(s)
	}
}

// HandleKey offers key to each child in order until one consumes it.
func (c *Container) HandleKey(key KeyMsg) bool {
	for _, child := range c.children.Items() {
		if child.KeyPressed(key) {
			return true
		}
	}
	return false
}

// HandleLine offers line to each child in order until one consumes it.
func (c *Container) HandleLine(line string) bool {
	for _, child := range c.children.Items() {
		if child.LineEntered(line) {
			return true
		}
	}
	return false
}
