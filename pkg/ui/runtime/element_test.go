package runtime

import (
	"testing"

	"github.com/odvcencio/cellframe/pkg/ui/backend"
	"github.com/odvcencio/cellframe/pkg/ui/terminal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// stub is a leaf control with a fixed content size that records calls.
type stub struct {
	Base
	content  Size
	measured []Size
	arranged []Size
	keys     []KeyMsg
	lines    []string
	enabled  []bool
	consume  bool
	draw     rune
}

func newStub(name string, w, h int) *stub {
	p := &stub{content: Size{Width: w, Height: h}}
	p.Init(name, p)
	return p
}

func (p *stub) MeasureOverride(available Size) Size {
	p.measured = append(p.measured, available)
	return p.content
}

func (p *stub) ArrangeOverride(space Size) Size {
	p.arranged = append(p.arranged, space)
	return p.content
}

func (p *stub) RenderOverride(s Surface) {
	if p.draw != 0 {
		s.Write(p.draw, p.RenderLocation().X, p.RenderLocation().Y)
	}
}

func (p *stub) HandleKey(key KeyMsg) bool {
	p.keys = append(p.keys, key)
	return p.consume
}

func (p *stub) HandleLine(line string) bool {
	p.lines = append(p.lines, line)
	return p.consume
}

func (p *stub) EnabledChanged(enabled bool) {
	p.enabled = append(p.enabled, enabled)
}

func recordInvalidations(e Element) *[]InvalidationKind {
	var kinds []InvalidationKind
	e.OnInvalidate(func(k InvalidationKind) { kinds = append(kinds, k) })
	return &kinds
}

func TestBase_DesiredSizeStartsUnconstrained(t *testing.T) {
	p := newStub("p", 3, 1)
	assert.Equal(t, Size{Width: Unconstrained, Height: Unconstrained}, p.DesiredSize())
}

func TestBase_MeasureAddsMargin(t *testing.T) {
	p := newStub("p", 3, 1)
	p.SetMargin(Spacing{Left: 1, Top: 2, Right: 3, Bottom: 4})

	p.Measure(Size{Width: 20, Height: 10})

	assert.Equal(t, Size{Width: 7, Height: 7}, p.DesiredSize())
	require.Len(t, p.measured, 1)
	assert.Equal(t, Size{Width: 16, Height: 4}, p.measured[0], "override sees space net of margin")
}

func TestBase_MeasureIsIdempotent(t *testing.T) {
	p := newStub("p", 4, 2)
	p.SetMargin(Uniform(1))

	p.Measure(Size{Width: 10, Height: 10})
	first := p.DesiredSize()
	p.Measure(Size{Width: 10, Height: 10})

	assert.Equal(t, first, p.DesiredSize())
}

func TestBase_ExplicitSize(t *testing.T) {
	p := newStub("p", 3, 1)
	p.SetWidth(8)
	p.SetHeight(2)

	p.Measure(Size{Width: 20, Height: 20})
	assert.Equal(t, Size{Width: 8, Height: 2}, p.DesiredSize())
	require.Len(t, p.measured, 1, "content is measured even when the size is fixed")
	assert.Equal(t, Size{Width: 8, Height: 2}, p.measured[0])

	p.SetHeight(-5)
	assert.Equal(t, Unconstrained, p.Height())
	p.Measure(Size{Width: 20, Height: 20})
	assert.Equal(t, Size{Width: 8, Height: 1}, p.DesiredSize())
	require.Len(t, p.measured, 2)
	assert.Equal(t, Size{Width: 8, Height: 20}, p.measured[1])
}

func TestBase_MinMaxClamp(t *testing.T) {
	p := newStub("p", 10, 1)
	p.SetMaxWidth(6)
	p.SetMinHeight(3)

	p.Measure(Size{Width: 20, Height: 20})

	assert.Equal(t, Size{Width: 6, Height: 3}, p.DesiredSize())
	assert.Equal(t, Size{Width: 6, Height: 20}, p.measured[0])
}

func TestBase_HiddenTakesNoSpace(t *testing.T) {
	p := newStub("p", 3, 1)
	p.SetMargin(Uniform(2))
	p.SetVisible(false)

	p.Measure(Size{Width: 10, Height: 10})
	p.Arrange(NewRect(0, 0, 10, 10))

	assert.Equal(t, Size{}, p.DesiredSize())
	assert.Equal(t, Size{}, p.RenderSize())
	assert.Empty(t, p.measured)
}

func TestBase_ArrangeContainment(t *testing.T) {
	p := newStub("p", 30, 30)
	p.SetMargin(Spacing{Left: 1, Top: 1, Right: 1, Bottom: 1})

	p.Measure(Size{Width: 10, Height: 5})
	p.Arrange(NewRect(2, 3, 10, 5))

	assert.Equal(t, Point{X: 3, Y: 4}, p.RenderLocation())
	assert.Equal(t, Size{Width: 8, Height: 3}, p.arranged[0])
	assert.Equal(t, Size{Width: 8, Height: 3}, p.RenderSize())
}

func TestBase_ArrangeRespectsExplicitSize(t *testing.T) {
	p := newStub("p", 30, 30)
	p.SetWidth(4)

	p.Arrange(NewRect(0, 0, 10, 5))

	assert.Equal(t, Size{Width: 4, Height: 5}, p.RenderSize())
}

func TestBase_RenderPushesColorsAndBlanks(t *testing.T) {
	ctrl := gomock.NewController(t)
	s := NewMockSurface(ctrl)

	p := newStub("p", 2, 2)
	p.draw = 'x'
	p.SetForeground(backend.ColorRed)
	p.Arrange(NewRect(1, 1, 2, 2))

	gomock.InOrder(
		s.EXPECT().SetForegroundColor(backend.ColorRed),
		s.EXPECT().SetBackgroundColor(backend.ColorUnset),
		s.EXPECT().WriteString("  ", 1, 1),
		s.EXPECT().WriteString("  ", 1, 2),
		s.EXPECT().Write('x', 1, 1),
		s.EXPECT().PopBackgroundColor(),
		s.EXPECT().PopForegroundColor(),
	)
	p.Render(s)
}

func TestBase_RenderWithColorsOverrides(t *testing.T) {
	ctrl := gomock.NewController(t)
	s := NewMockSurface(ctrl)

	p := newStub("p", 0, 0)
	p.SetForeground(backend.ColorRed)
	p.SetBackground(backend.ColorBlack)

	gomock.InOrder(
		s.EXPECT().SetForegroundColor(backend.ColorRed),
		s.EXPECT().SetBackgroundColor(backend.ColorYellow),
		s.EXPECT().PopBackgroundColor(),
		s.EXPECT().PopForegroundColor(),
	)
	p.RenderWithColors(s, backend.ColorUnset, backend.ColorYellow)
}

func TestBase_HiddenDoesNotRender(t *testing.T) {
	ctrl := gomock.NewController(t)
	s := NewMockSurface(ctrl)

	p := newStub("p", 2, 2)
	p.SetVisible(false)
	p.Render(s)
}

func TestBase_InputRequiresVisibleAndEnabled(t *testing.T) {
	p := newStub("p", 1, 1)
	p.consume = true
	key := KeyMsg{Key: terminal.KeyUp}

	assert.True(t, p.KeyPressed(key))
	assert.True(t, p.LineEntered("hi"))

	p.SetEnabled(false)
	assert.False(t, p.KeyPressed(key))
	assert.False(t, p.LineEntered("hi"))

	p.SetEnabled(true)
	p.SetVisible(false)
	assert.False(t, p.KeyPressed(key))

	assert.Len(t, p.keys, 1)
	assert.Equal(t, []string{"hi"}, p.lines)
}

func TestBase_SettersInvalidate(t *testing.T) {
	p := newStub("p", 1, 1)
	kinds := recordInvalidations(p)

	assert.True(t, p.SetWidth(3))
	assert.False(t, p.SetWidth(3))
	assert.True(t, p.SetMargin(Uniform(1)))
	assert.False(t, p.SetMargin(Uniform(1)))
	assert.True(t, p.SetForeground(backend.ColorGreen))
	assert.True(t, p.SetVisible(false))
	assert.False(t, p.SetVisible(false))
	assert.True(t, p.SetEnabled(false))

	assert.Equal(t, []InvalidationKind{
		InvalidateLayout,
		InvalidateLayout,
		InvalidatePaint,
		InvalidateLayout,
		InvalidatePaint,
	}, *kinds)
	assert.Equal(t, []bool{false}, p.enabled)
}

func TestBase_Unsubscribe(t *testing.T) {
	p := newStub("p", 1, 1)
	calls := 0
	sub := p.OnInvalidate(func(InvalidationKind) { calls++ })

	p.InvalidateLayout()
	p.Unsubscribe(sub)
	p.InvalidateLayout()

	assert.Equal(t, 1, calls)
}

func TestBase_UseBeforeInitPanics(t *testing.T) {
	var b Base
	assert.Panics(t, func() { b.Measure(Size{}) })
}

func TestInvalidationKind_String(t *testing.T) {
	assert.Equal(t, "layout", InvalidateLayout.String())
	assert.Equal(t, "paint", InvalidatePaint.String())
	assert.Equal(t, "unknown", InvalidationKind(0).String())
}
