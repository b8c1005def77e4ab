package runtime

// Unconstrained marks a dimension with no limit, or a size attribute that
// has not been set.
const Unconstrained = -1

// Size is a width and height in cells. Either dimension may be
// Unconstrained when used as available space.
type Size struct {
	Width, Height int
}

// Zero returns true if both dimensions are zero.
func (s Size) Zero() bool {
	return s.Width == 0 && s.Height == 0
}

// Add grows s by t. Unconstrained dimensions stay unconstrained.
func (s Size) Add(t Size) Size {
	return Size{Width: addDim(s.Width, t.Width), Height: addDim(s.Height, t.Height)}
}

// Sub shrinks s by t, clamping at zero. Unconstrained dimensions stay
// unconstrained.
func (s Size) Sub(t Size) Size {
	return Size{Width: subDim(s.Width, t.Width), Height: subDim(s.Height, t.Height)}
}

// Limit returns the smaller of each dimension, treating Unconstrained as
// infinite.
func (s Size) Limit(t Size) Size {
	return Size{Width: limitDim(s.Width, t.Width), Height: limitDim(s.Height, t.Height)}
}

// Max returns the larger of each dimension.
func (s Size) Max(t Size) Size {
	return Size{Width: max(s.Width, t.Width), Height: max(s.Height, t.Height)}
}

// Point is a cell position.
type Point struct {
	X, Y int
}

// Add offsets p by q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Rect is a positioned rectangle.
type Rect struct {
	X, Y, Width, Height int
}

// NewRect creates a rect from position and size.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, Width: w, Height: h}
}

// RectAt creates a rect from a location and a size.
func RectAt(p Point, s Size) Rect {
	return Rect{X: p.X, Y: p.Y, Width: s.Width, Height: s.Height}
}

// Size returns the rect's dimensions as a Size.
func (r Rect) Size() Size {
	return Size{Width: r.Width, Height: r.Height}
}

// Location returns the top-left corner.
func (r Rect) Location() Point {
	return Point{X: r.X, Y: r.Y}
}

// Contains returns true if the point is inside the rect.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// Inset returns the rect shrunk by s on every side.
func (r Rect) Inset(s Spacing) Rect {
	return Rect{
		X:      r.X + s.Left,
		Y:      r.Y + s.Top,
		Width:  max(0, r.Width-s.Left-s.Right),
		Height: max(0, r.Height-s.Top-s.Bottom),
	}
}

// Spacing is a per-side inset used for margins and padding.
type Spacing struct {
	Left, Top, Right, Bottom int
}

// Uniform returns the same spacing on every side.
func Uniform(n int) Spacing {
	return Spacing{Left: n, Top: n, Right: n, Bottom: n}
}

// Symmetric returns h on the left and right and v on the top and bottom.
func Symmetric(h, v int) Spacing {
	return Spacing{Left: h, Top: v, Right: h, Bottom: v}
}

// TotalSize is the combined horizontal and vertical spacing.
func (s Spacing) TotalSize() Size {
	return Size{Width: s.Left + s.Right, Height: s.Top + s.Bottom}
}

// TopLeft is the offset the spacing applies to content.
func (s Spacing) TopLeft() Point {
	return Point{X: s.Left, Y: s.Top}
}

func addDim(a, b int) int {
	if a < 0 {
		return a
	}
	return a + b
}

func subDim(a, b int) int {
	if a < 0 {
		return a
	}
	return max(0, a-b)
}

func limitDim(a, b int) int {
	if a < 0 {
		return b
	}
	if b < 0 {
		return a
	}
	return min(a, b)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
