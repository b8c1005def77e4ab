// Package tcell drives a real terminal through tcell. Key and resize
// events are translated to terminal events; bracketed paste is folded into
// a single PasteEvent.
package tcell

import (
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/odvcencio/cellframe/pkg/ui/backend"
	"github.com/odvcencio/cellframe/pkg/ui/terminal"
)

// Backend implements backend.Backend on a tcell.Screen.
type Backend struct {
	screen tcell.Screen
	paste  paste
}

// New opens the controlling terminal.
func New() (*Backend, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return NewWithScreen(screen), nil
}

// NewWithScreen wraps an existing screen, typically a SimulationScreen.
func NewWithScreen(screen tcell.Screen) *Backend {
	return &Backend{screen: screen}
}

// Init implements backend.Backend.
func (b *Backend) Init() error {
	if err := b.screen.Init(); err != nil {
		return err
	}
	b.screen.EnablePaste()
	return nil
}

// Fini implements backend.Backend. It also releases a blocked PollEvent.
func (b *Backend) Fini() { b.screen.Fini() }

// Size implements backend.Backend.
func (b *Backend) Size() (width, height int) { return b.screen.Size() }

// SetContent implements backend.Backend.
func (b *Backend) SetContent(x, y int, mainc rune, comb []rune, style backend.Style) {
	b.screen.SetContent(x, y, mainc, comb, deviceStyle(style))
}

// Show implements backend.Backend.
func (b *Backend) Show() { b.screen.Show() }

// Clear implements backend.Backend.
func (b *Backend) Clear() { b.screen.Clear() }

// HideCursor implements backend.Backend.
func (b *Backend) HideCursor() { b.screen.HideCursor() }

// Sync implements backend.Backend.
func (b *Backend) Sync() { b.screen.Sync() }

// PollEvent implements backend.Backend. Events with no terminal
// counterpart are skipped.
func (b *Backend) PollEvent() terminal.Event {
	for {
		ev := b.screen.PollEvent()
		if ev == nil {
			return nil
		}
		if out, ok := b.paste.feed(ev); ok {
			if out != nil {
				return out
			}
			continue
		}
		if out := translate(ev); out != nil {
			return out
		}
	}
}

// PostEvent implements backend.Backend. Paste events cannot be posted.
func (b *Backend) PostEvent(ev terminal.Event) error {
	if tev := untranslate(ev); tev != nil {
		return b.screen.PostEvent(tev)
	}
	return nil
}

// paste collects the keys between a paste start and end marker.
type paste struct {
	active bool
	text   strings.Builder
}

// feed consumes ev when it belongs to a paste. A finished non-empty paste
// is returned as a PasteEvent.
func (p *paste) feed(ev tcell.Event) (terminal.Event, bool) {
	switch e := ev.(type) {
	case *tcell.EventPaste:
		if e.Start() {
			p.active = true
			p.text.Reset()
			return nil, true
		}
		p.active = false
		text := p.text.String()
		p.text.Reset()
		if text == "" {
			return nil, true
		}
		return terminal.PasteEvent{Text: text}, true
	case *tcell.EventKey:
		if !p.active {
			return nil, false
		}
		switch e.Key() {
		case tcell.KeyRune:
			p.text.WriteRune(e.Rune())
		case tcell.KeyEnter:
			p.text.WriteByte('\n')
		}
		return nil, true
	}
	return nil, false
}

func deviceStyle(s backend.Style) tcell.Style {
	fg, bg := s.Decompose()
	return tcell.StyleDefault.Foreground(deviceColor(fg)).Background(deviceColor(bg))
}

// deviceColor maps palette colors to tcell; the sentinels become the
// terminal default.
func deviceColor(c backend.Color) tcell.Color {
	if !c.IsPalette() {
		return tcell.ColorDefault
	}
	return tcell.PaletteColor(int(c))
}

// ConvertColor maps a tcell color back to the sixteen-color palette.
// Anything else reads as the default color.
func ConvertColor(tc tcell.Color) backend.Color {
	if tc == tcell.ColorDefault || tc&tcell.ColorIsRGB != 0 {
		return backend.ColorDefault
	}
	if c := backend.Color(tc &^ tcell.ColorValid); c.IsPalette() {
		return c
	}
	return backend.ColorDefault
}

// keys pairs tcell keys with terminal keys. The first entry for a
// terminal key is the one posted back to tcell.
var keys = []struct {
	device tcell.Key
	key    terminal.Key
}{
	{tcell.KeyRune, terminal.KeyRune},
	{tcell.KeyEnter, terminal.KeyEnter},
	{tcell.KeyBackspace2, terminal.KeyBackspace},
	{tcell.KeyBackspace, terminal.KeyBackspace},
	{tcell.KeyTab, terminal.KeyTab},
	{tcell.KeyEscape, terminal.KeyEscape},
	{tcell.KeyUp, terminal.KeyUp},
	{tcell.KeyDown, terminal.KeyDown},
	{tcell.KeyLeft, terminal.KeyLeft},
	{tcell.KeyRight, terminal.KeyRight},
	{tcell.KeyHome, terminal.KeyHome},
	{tcell.KeyEnd, terminal.KeyEnd},
	{tcell.KeyPgUp, terminal.KeyPageUp},
	{tcell.KeyPgDn, terminal.KeyPageDown},
	{tcell.KeyDelete, terminal.KeyDelete},
	{tcell.KeyInsert, terminal.KeyInsert},
	{tcell.KeyCtrlC, terminal.KeyCtrlC},
	{tcell.KeyCtrlD, terminal.KeyCtrlD},
	{tcell.KeyCtrlL, terminal.KeyCtrlL},
}

var (
	fromDevice = make(map[tcell.Key]terminal.Key, len(keys))
	toDevice   = make(map[terminal.Key]tcell.Key, len(keys))
)

func init() {
	for _, k := range keys {
		fromDevice[k.device] = k.key
		if _, ok := toDevice[k.key]; !ok {
			toDevice[k.key] = k.device
		}
	}
}

func translate(ev tcell.Event) terminal.Event {
	switch e := ev.(type) {
	case *tcell.EventKey:
		mods := e.Modifiers()
		return terminal.KeyEvent{
			Key:   fromDevice[e.Key()],
			Rune:  e.Rune(),
			Alt:   mods&tcell.ModAlt != 0,
			Ctrl:  mods&tcell.ModCtrl != 0,
			Shift: mods&tcell.ModShift != 0,
		}
	case *tcell.EventResize:
		w, h := e.Size()
		return terminal.ResizeEvent{Width: w, Height: h}
	}
	return nil
}

func untranslate(ev terminal.Event) tcell.Event {
	switch e := ev.(type) {
	case terminal.KeyEvent:
		k, ok := toDevice[e.Key]
		if !ok || e.Key == terminal.KeyRune {
			return tcell.NewEventKey(tcell.KeyRune, e.Rune, tcell.ModNone)
		}
		return tcell.NewEventKey(k, 0, tcell.ModNone)
	case terminal.ResizeEvent:
		return tcell.NewEventResize(e.Width, e.Height)
	}
	return nil
}

var _ backend.Backend = (*Backend)(nil)
