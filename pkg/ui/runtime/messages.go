package runtime

import (
	"time"

	"github.com/odvcencio/cellframe/pkg/ui/terminal"
)

// Message represents an event flowing into the host loop.
// Messages come from device input, timers, or other goroutines.
type Message interface {
	isMessage()
}

// KeyMsg represents a keyboard input event.
type KeyMsg struct {
	Key   terminal.Key
	Rune  rune
	Alt   bool
	Ctrl  bool
	Shift bool
}

func (KeyMsg) isMessage() {}

// Is reports whether m is the given special key.
func (m KeyMsg) Is(k terminal.Key) bool {
	return m.Key == k
}

// LineMsg carries the text typed since the previous Enter. It is posted
// just before the KeyMsg for that Enter.
type LineMsg struct {
	Text string
}

func (LineMsg) isMessage() {}

// ResizeMsg indicates the device size changed.
type ResizeMsg struct {
	Width  int
	Height int
}

func (ResizeMsg) isMessage() {}

// TickMsg is sent on each poll tick.
type TickMsg struct {
	Time time.Time
}

func (TickMsg) isMessage() {}

// QuitMsg stops the host loop.
type QuitMsg struct{}

func (QuitMsg) isMessage() {}

// updateMsg runs a function on the loop goroutine.
type updateMsg struct {
	fn func()
}

func (updateMsg) isMessage() {}
