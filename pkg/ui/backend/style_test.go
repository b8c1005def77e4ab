package backend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want Color
	}{
		{"", ColorDefault},
		{"default", ColorDefault},
		{"Blue", ColorBlue},
		{"bright-white", ColorBrightWhite},
		{"bright_red", ColorBrightRed},
		{"DarkBlue", ColorBlue},
		{"darkyellow", ColorYellow},
		{"gray", ColorWhite},
		{"DarkGray", ColorBrightBlack},
		{"unset", ColorUnset},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseColor(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseColor("chartreuse")
	assert.Error(t, err)
}

func TestColorString(t *testing.T) {
	assert.Equal(t, "default", ColorDefault.String())
	assert.Equal(t, "unset", ColorUnset.String())
	assert.Equal(t, "bright-cyan", ColorBrightCyan.String())
	assert.False(t, ColorDefault.IsPalette())
	assert.True(t, ColorBlack.IsPalette())

	for c := ColorBlack; c <= ColorBrightWhite; c++ {
		parsed, err := ParseColor(c.String())
		require.NoError(t, err)
		assert.Equal(t, c, parsed)
	}
}

func TestStyleBuilder(t *testing.T) {
	s := DefaultStyle().Foreground(ColorRed).Background(ColorBlue)
	fg, bg := s.Decompose()
	assert.Equal(t, ColorRed, fg)
	assert.Equal(t, ColorBlue, bg)
	assert.Equal(t, ColorDefault, DefaultStyle().FG())
	assert.NotEqual(t, DefaultStyle(), s)
}
