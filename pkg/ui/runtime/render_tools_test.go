package runtime

import (
	"testing"

	"github.com/odvcencio/cellframe/pkg/ui/backend"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestRenderBlank_WritesEachRow(t *testing.T) {
	ctrl := gomock.NewController(t)
	s := NewMockSurface(ctrl)

	gomock.InOrder(
		s.EXPECT().WriteString("   ", 2, 1),
		s.EXPECT().WriteString("   ", 2, 2),
	)
	RenderBlank(s, 2, 1, 3, 2)
}

func TestRenderBlank_EmptyIsNoop(t *testing.T) {
	ctrl := gomock.NewController(t)
	s := NewMockSurface(ctrl)

	RenderBlank(s, 0, 0, 0, 4)
	RenderBlank(s, 0, 0, 4, -1)
}

func TestRenderBox_DrawsFrame(t *testing.T) {
	buf := NewBuffer(5, 4)
	RenderBox(NewContext(buf, backend.DefaultStyle()), 0, 0, 4, 3, BorderSingle)

	assert.Equal(t, "┌──┐ \n│  │ \n└──┘ \n     ", buf.String())
}

func TestRenderBox_Double(t *testing.T) {
	buf := NewBuffer(3, 3)
	RenderBox(NewContext(buf, backend.DefaultStyle()), 0, 0, 3, 3, BorderDouble)

	assert.Equal(t, "╔═╗\n║ ║\n╚═╝", buf.String())
}

func TestRenderBox_NoneDrawsNothing(t *testing.T) {
	ctrl := gomock.NewController(t)
	s := NewMockSurface(ctrl)

	RenderBox(s, 0, 0, 5, 5, BorderNone)
	RenderBox(s, 0, 0, 0, 5, BorderSingle)
}

func TestRenderBox_Corners(t *testing.T) {
	ctrl := gomock.NewController(t)
	s := NewMockSurface(ctrl)

	s.EXPECT().Write('┌', 1, 1)
	s.EXPECT().Write('┐', 2, 1)
	s.EXPECT().Write('└', 1, 2)
	s.EXPECT().Write('┘', 2, 2)
	RenderBox(s, 1, 1, 2, 2, BorderSingle)
}

func TestBorderGlyph(t *testing.T) {
	assert.Equal(t, '═', BorderGlyph(BorderDouble, PartHorizontal))
	assert.Equal(t, '┼', BorderGlyph(BorderSingle, PartCross))
	assert.Equal(t, ' ', BorderGlyph(BorderNone, PartVertical))
	assert.Equal(t, ' ', BorderGlyph(BorderStyle(9), PartVertical))
	assert.Equal(t, ' ', BorderGlyph(BorderSingle, BorderPart(-1)))
}

func TestParseBorderStyle(t *testing.T) {
	for in, want := range map[string]BorderStyle{
		"":        BorderNone,
		"none":    BorderNone,
		"Single":  BorderSingle,
		" double": BorderDouble,
	} {
		got, err := ParseBorderStyle(in)
		assert.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseBorderStyle("dotted")
	assert.Error(t, err)
}

func TestClip_ForwardsOnlyInsideBounds(t *testing.T) {
	ctrl := gomock.NewController(t)
	s := NewMockSurface(ctrl)

	gomock.InOrder(
		s.EXPECT().SetForegroundColor(backend.ColorRed),
		s.EXPECT().Write('a', 1, 1),
		s.EXPECT().Write('y', 1, 2),
		s.EXPECT().Write('c', 2, 2),
		s.EXPECT().PopForegroundColor(),
	)
	c := Clip(s, NewRect(1, 1, 2, 2))
	c.SetForegroundColor(backend.ColorRed)
	c.Write('a', 1, 1)
	c.Write('b', 3, 1)
	c.Write('z', 0, 2)
	c.WriteString("xyc", 0, 2)
	c.Write('d', 1, 3)
	c.PopForegroundColor()
}

func TestClip_WideRuneAtEdge(t *testing.T) {
	buf := NewBuffer(4, 1)
	Clip(NewContext(buf, backend.DefaultStyle()), NewRect(0, 0, 2, 1)).WriteString("a世界", 0, 0)

	assert.Equal(t, "a   ", buf.String(), "the cut rune blanks and the rest is dropped")
}
