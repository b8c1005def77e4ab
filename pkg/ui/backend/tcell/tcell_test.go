package tcell

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odvcencio/cellframe/pkg/ui/backend"
	"github.com/odvcencio/cellframe/pkg/ui/terminal"
)

func TestPaletteColorsSurviveTheDevice(t *testing.T) {
	for c := backend.ColorBlack; c <= backend.ColorBrightWhite; c++ {
		assert.Equal(t, c, ConvertColor(deviceColor(c)), "color %v", c)
	}
	assert.Equal(t, tcell.ColorDefault, deviceColor(backend.ColorDefault))
	assert.Equal(t, tcell.ColorDefault, deviceColor(backend.ColorUnset))
	assert.Equal(t, backend.ColorDefault, ConvertColor(tcell.NewRGBColor(1, 2, 3)))
	assert.Equal(t, backend.ColorDefault, ConvertColor(tcell.ColorDefault))
}

func TestTranslateKeys(t *testing.T) {
	tests := []struct {
		device tcell.Key
		want   terminal.Key
	}{
		{tcell.KeyDown, terminal.KeyDown},
		{tcell.KeyBackspace, terminal.KeyBackspace},
		{tcell.KeyBackspace2, terminal.KeyBackspace},
		{tcell.KeyPgDn, terminal.KeyPageDown},
		{tcell.KeyF1, terminal.KeyNone},
	}
	for _, tt := range tests {
		ev := translate(tcell.NewEventKey(tt.device, 0, tcell.ModNone))
		require.IsType(t, terminal.KeyEvent{}, ev)
		assert.Equal(t, tt.want, ev.(terminal.KeyEvent).Key, "device key %v", tt.device)
	}

	ev := translate(tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModAlt))
	assert.Equal(t, terminal.KeyEvent{Key: terminal.KeyRune, Rune: 'x', Alt: true}, ev)
}

func TestPostedEventsTranslateBack(t *testing.T) {
	for _, k := range []terminal.Key{
		terminal.KeyUp, terminal.KeyDown, terminal.KeyLeft, terminal.KeyRight,
		terminal.KeyEnter, terminal.KeyBackspace, terminal.KeyTab, terminal.KeyCtrlC,
	} {
		back := translate(untranslate(terminal.KeyEvent{Key: k}))
		assert.Equal(t, k, back.(terminal.KeyEvent).Key)
	}

	back := translate(untranslate(terminal.KeyEvent{Key: terminal.KeyRune, Rune: 'q'}))
	assert.Equal(t, 'q', back.(terminal.KeyEvent).Rune)

	resize := translate(untranslate(terminal.ResizeEvent{Width: 10, Height: 4}))
	assert.Equal(t, terminal.ResizeEvent{Width: 10, Height: 4}, resize)

	assert.Nil(t, untranslate(terminal.PasteEvent{Text: "x"}))
}

func TestPasteFoldsKeys(t *testing.T) {
	var p paste

	_, consumed := p.feed(tcell.NewEventKey(tcell.KeyRune, 'a', tcell.ModNone))
	assert.False(t, consumed, "keys outside a paste pass through")

	out, consumed := p.feed(tcell.NewEventPaste(true))
	assert.True(t, consumed)
	assert.Nil(t, out)
	for _, ev := range []tcell.Event{
		tcell.NewEventKey(tcell.KeyRune, 'h', tcell.ModNone),
		tcell.NewEventKey(tcell.KeyRune, 'i', tcell.ModNone),
		tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone),
		tcell.NewEventKey(tcell.KeyRune, '!', tcell.ModNone),
	} {
		_, consumed = p.feed(ev)
		assert.True(t, consumed)
	}
	out, consumed = p.feed(tcell.NewEventPaste(false))
	assert.True(t, consumed)
	assert.Equal(t, terminal.PasteEvent{Text: "hi\n!"}, out)

	p.feed(tcell.NewEventPaste(true))
	out, consumed = p.feed(tcell.NewEventPaste(false))
	assert.True(t, consumed)
	assert.Nil(t, out, "empty pastes are dropped")
}

func TestSimulatedScreen(t *testing.T) {
	screen := tcell.NewSimulationScreen("")
	b := NewWithScreen(screen)
	require.NoError(t, b.Init())
	defer b.Fini()
	screen.SetSize(6, 2)

	w, h := b.Size()
	assert.Equal(t, 6, w)
	assert.Equal(t, 2, h)

	b.SetContent(1, 0, 'z', nil, backend.DefaultStyle().Foreground(backend.ColorRed))
	b.Show()
	r, _, style, _ := screen.GetContent(1, 0)
	fg, _, _ := style.Decompose()
	assert.Equal(t, 'z', r)
	assert.Equal(t, backend.ColorRed, ConvertColor(fg))

	require.NoError(t, b.PostEvent(terminal.KeyEvent{Key: terminal.KeyTab}))
	for range 5 {
		// The screen may report its own resizes first.
		if key, ok := b.PollEvent().(terminal.KeyEvent); ok {
			assert.Equal(t, terminal.KeyTab, key.Key)
			return
		}
	}
	t.Fatal("posted key never arrived")
}
