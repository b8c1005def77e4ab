// Package ansi provides a Backend that renders frames as ANSI text onto an
// io.Writer. It has no input side; PollEvent only returns posted events.
// It is used for snapshots and for output that is not a terminal.
package ansi

import (
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/muesli/termenv"
	"github.com/odvcencio/cellframe/pkg/ui/backend"
	"github.com/odvcencio/cellframe/pkg/ui/terminal"
)

type cell struct {
	r     rune
	style backend.Style
}

// Backend renders a cell grid to a writer through termenv.
type Backend struct {
	mu      sync.Mutex
	out     *termenv.Output
	outOpts []termenv.OutputOption
	width   int
	height  int
	cells   []cell
	events  chan terminal.Event
	done    chan struct{}
	closed  bool
}

// Option configures a Backend.
type Option func(*Backend)

// WithProfile forces a color profile instead of detecting it from w.
func WithProfile(p termenv.Profile) Option {
	return func(b *Backend) {
		b.outOpts = append(b.outOpts, termenv.WithProfile(p))
	}
}

// New creates a backend of the given size writing to w.
func New(w io.Writer, width, height int, opts ...Option) *Backend {
	b := &Backend{
		events: make(chan terminal.Event, 16),
		done:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(b)
	}
	b.out = termenv.NewOutput(w, b.outOpts...)
	b.resize(width, height)
	return b
}

// Init implements backend.Backend.
func (b *Backend) Init() error { return nil }

// Fini releases a blocked PollEvent.
func (b *Backend) Fini() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.closed {
		b.closed = true
		close(b.done)
	}
}

// Size returns the configured frame size.
func (b *Backend) Size() (int, int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.width, b.height
}

// Resize changes the frame size, discarding content.
func (b *Backend) Resize(width, height int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.resize(width, height)
}

func (b *Backend) resize(width, height int) {
	b.width = max(0, width)
	b.height = max(0, height)
	b.cells = make([]cell, b.width*b.height)
	for i := range b.cells {
		b.cells[i] = cell{r: ' ', style: backend.DefaultStyle()}
	}
}

// SetContent stores a cell; out-of-range cells are ignored.
func (b *Backend) SetContent(x, y int, mainc rune, _ []rune, style backend.Style) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if x < 0 || y < 0 || x >= b.width || y >= b.height {
		return
	}
	b.cells[y*b.width+x] = cell{r: mainc, style: style}
}

// Show writes the full frame, one line per row, grouping runs of equal
// style into a single escape sequence.
func (b *Backend) Show() {
	b.mu.Lock()
	frame := b.render()
	b.mu.Unlock()
	io.WriteString(b.out, frame)
}

// Capture returns the frame text without escape sequences.
func (b *Backend) Capture() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	lines := make([]string, b.height)
	for y := 0; y < b.height; y++ {
		var sb strings.Builder
		for x := 0; x < b.width; x++ {
			sb.WriteRune(b.cells[y*b.width+x].r)
		}
		lines[y] = sb.String()
	}
	return strings.Join(lines, "\n")
}

func (b *Backend) render() string {
	var sb strings.Builder
	for y := 0; y < b.height; y++ {
		var run strings.Builder
		runStyle := backend.DefaultStyle()
		flush := func() {
			if run.Len() == 0 {
				return
			}
			sb.WriteString(b.styled(run.String(), runStyle))
			run.Reset()
		}
		for x := 0; x < b.width; x++ {
			c := b.cells[y*b.width+x]
			if c.style != runStyle {
				flush()
				runStyle = c.style
			}
			r := c.r
			if r == 0 {
				r = ' '
			}
			run.WriteRune(r)
		}
		flush()
		sb.WriteByte('\n')
	}
	return sb.String()
}

func (b *Backend) styled(text string, style backend.Style) string {
	fg, bg := style.Decompose()
	if !fg.IsPalette() && !bg.IsPalette() {
		return text
	}
	s := b.out.String(text)
	if fg.IsPalette() {
		s = s.Foreground(b.out.Color(strconv.Itoa(int(fg))))
	}
	if bg.IsPalette() {
		s = s.Background(b.out.Color(strconv.Itoa(int(bg))))
	}
	return s.String()
}

// Clear blanks the frame.
func (b *Backend) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.cells {
		b.cells[i] = cell{r: ' ', style: backend.DefaultStyle()}
	}
}

// HideCursor is a no-op for streams.
func (b *Backend) HideCursor() {}

// Sync is a no-op; every Show writes a full frame.
func (b *Backend) Sync() {}

// PollEvent returns posted events and nil after Fini.
func (b *Backend) PollEvent() terminal.Event {
	select {
	case ev := <-b.events:
		return ev
	case <-b.done:
		return nil
	}
}

// PostEvent queues an event for PollEvent.
func (b *Backend) PostEvent(ev terminal.Event) error {
	select {
	case b.events <- ev:
		return nil
	case <-b.done:
		return io.ErrClosedPipe
	}
}

var _ backend.Backend = (*Backend)(nil)
