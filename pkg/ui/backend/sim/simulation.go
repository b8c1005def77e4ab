// Package sim runs the tcell backend on a SimulationScreen so frames can be
// read back as text in tests.
package sim

import (
	"strings"
	"sync"

	tcellv2 "github.com/gdamore/tcell/v2"

	"github.com/odvcencio/cellframe/pkg/ui/backend"
	"github.com/odvcencio/cellframe/pkg/ui/backend/tcell"
	"github.com/odvcencio/cellframe/pkg/ui/terminal"
)

// Backend is a tcell backend over an in-memory screen.
type Backend struct {
	*tcell.Backend

	mu     sync.Mutex
	screen tcellv2.SimulationScreen
	size   [2]int
}

// New creates a simulated device of the given size.
func New(width, height int) *Backend {
	screen := tcellv2.NewSimulationScreen("")
	screen.SetSize(width, height)
	return &Backend{
		Backend: tcell.NewWithScreen(screen),
		screen:  screen,
		size:    [2]int{width, height},
	}
}

// Init implements backend.Backend. The screen keeps the size given to New.
func (s *Backend) Init() error {
	if err := s.Backend.Init(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.screen.SetSize(s.size[0], s.size[1])
	return nil
}

// Resize changes the size without posting an event, like a terminal that
// never reports its resizes. Only polling notices it.
func (s *Backend) Resize(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.size = [2]int{width, height}
	s.screen.SetSize(width, height)
}

// InjectResize resizes the screen and posts the matching event.
func (s *Backend) InjectResize(width, height int) {
	s.Resize(width, height)
	s.PostEvent(terminal.ResizeEvent{Width: width, Height: height})
}

// InjectKey posts a key press.
func (s *Backend) InjectKey(key terminal.Key, r rune) {
	s.PostEvent(terminal.KeyEvent{Key: key, Rune: r})
}

// InjectKeyRune posts a printable key press.
func (s *Backend) InjectKeyRune(r rune) {
	s.InjectKey(terminal.KeyRune, r)
}

// InjectKeyString posts one key press per rune of str.
func (s *Backend) InjectKeyString(str string) {
	for _, r := range str {
		s.InjectKeyRune(r)
	}
}

// Capture returns the shown screen, one line per row.
func (s *Backend) Capture() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	w, h := s.screen.Size()
	return s.region(0, 0, w, h)
}

// CaptureRegion returns the w×h block at (x, y), one line per row.
func (s *Backend) CaptureRegion(x, y, w, h int) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.region(x, y, w, h)
}

// CaptureCell returns the rune and palette colors shown at (x, y).
func (s *Backend) CaptureCell(x, y int) (rune, backend.Style) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, _, style, _ := s.screen.GetContent(x, y)
	fg, bg, _ := style.Decompose()
	return r, backend.DefaultStyle().
		Foreground(tcell.ConvertColor(fg)).
		Background(tcell.ConvertColor(bg))
}

func (s *Backend) region(x, y, w, h int) string {
	rows := make([]string, h)
	var sb strings.Builder
	for row := range h {
		sb.Reset()
		for col := x; col < x+w; col++ {
			r, comb, _, _ := s.screen.GetContent(col, y+row)
			if r == 0 {
				r = ' '
			}
			sb.WriteRune(r)
			for _, c := range comb {
				sb.WriteRune(c)
			}
		}
		rows[row] = sb.String()
	}
	return strings.Join(rows, "\n")
}

// FindText returns the cell column and row of the first occurrence of
// text, or (-1, -1).
func (s *Backend) FindText(text string) (x, y int) {
	for row, line := range strings.Split(s.Capture(), "\n") {
		if i := strings.Index(line, text); i >= 0 {
			return len([]rune(line[:i])), row
		}
	}
	return -1, -1
}

// ContainsText reports whether text is shown anywhere.
func (s *Backend) ContainsText(text string) bool {
	x, _ := s.FindText(text)
	return x >= 0
}

var _ backend.Backend = (*Backend)(nil)
