// Package backend defines the device boundary: the Backend interface and
// the Color and Style values that cells are painted with.
package backend

import "github.com/odvcencio/cellframe/pkg/ui/terminal"

// Backend is a character-cell device. The host loop owns it: Init before
// the first frame, Fini when the loop stops. PollEvent runs on the input
// goroutine and everything else on the loop goroutine.
type Backend interface {
	RenderTarget

	Init() error
	// Fini restores the terminal and makes a blocked PollEvent return nil.
	Fini()
	// Show flushes cells set since the last Show.
	Show()
	Clear()
	HideCursor()
	// Sync redraws every cell on the next Show.
	Sync()

	// PollEvent blocks for the next input event. It returns nil once the
	// device is finished.
	PollEvent() terminal.Event
	// PostEvent queues ev as if it came from the device.
	PostEvent(ev terminal.Event) error
}

// RenderTarget is the part of a device the paint step writes to.
type RenderTarget interface {
	Size() (width, height int)
	// SetContent stores one cell. comb holds combining runes and may be
	// nil.
	SetContent(x, y int, mainc rune, comb []rune, style Style)
}
