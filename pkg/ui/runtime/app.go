package runtime

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/odvcencio/cellframe/pkg/errors"
	"github.com/odvcencio/cellframe/pkg/logging"
	"github.com/odvcencio/cellframe/pkg/telemetry"
	"github.com/odvcencio/cellframe/pkg/ui/backend"
	"github.com/odvcencio/cellframe/pkg/ui/terminal"
)

// DefaultTickRate is the device size poll interval.
const DefaultTickRate = 50 * time.Millisecond

// AppConfig configures a runtime App.
type AppConfig struct {
	Backend backend.Backend
	Root    Element
	// TickRate is how often the device size is polled and deferred frames
	// are drawn. Zero means DefaultTickRate.
	TickRate time.Duration
	// MaxFPS caps frames triggered by input. Zero means no cap.
	MaxFPS        int
	MessageBuffer int
	Logger        *logging.Logger
	Metrics       *telemetry.Metrics
	// DefaultColors are the base of the color stacks and the color of
	// cells no element covers. The zero Style means backend.DefaultStyle.
	DefaultColors backend.Style
}

// App runs an element tree against a backend. Input is read on its own
// goroutine and handed over as messages; the tree and the frame buffer
// are only touched by the loop goroutine.
type App struct {
	backend  backend.Backend
	root     Element
	tickRate time.Duration
	limiter  *rate.Limiter
	logger   *logging.Logger
	metrics  *telemetry.Metrics
	colors   backend.Style
	messages chan Message
	done     chan struct{}

	// loop goroutine state
	buf                 *Buffer
	width, height       int
	deviceW, deviceH    int
	layoutDue, paintDue bool
	quit                bool

	// input goroutine state
	line []rune
}

// NewApp creates a new App from config.
func NewApp(cfg AppConfig) *App {
	bufferSize := cfg.MessageBuffer
	if bufferSize <= 0 {
		bufferSize = 128
	}
	tick := cfg.TickRate
	if tick <= 0 {
		tick = DefaultTickRate
	}
	limit := rate.Inf
	if cfg.MaxFPS > 0 {
		limit = rate.Limit(cfg.MaxFPS)
	}
	return &App{
		backend:  cfg.Backend,
		root:     cfg.Root,
		tickRate: tick,
		limiter:  rate.NewLimiter(limit, 1),
		logger:   cfg.Logger,
		metrics:  cfg.Metrics,
		colors:   baseColors(cfg.DefaultColors),
		messages: make(chan Message, bufferSize),
		done:     make(chan struct{}),
	}
}

// Post sends a message to the loop. It never blocks; the message is
// dropped when the queue is full.
func (a *App) Post(msg Message) {
	select {
	case a.messages <- msg:
	default:
	}
}

// Queue runs fn on the loop goroutine. It is the way for other goroutines
// to change the element tree.
func (a *App) Queue(fn func()) {
	a.Post(updateMsg{fn: fn})
}

// Quit asks the loop to stop.
func (a *App) Quit() {
	a.Post(QuitMsg{})
}

// Run drives the element tree until Ctrl+C, a QuitMsg or ctx
// cancellation. A panic raised while handling input or drawing is
// returned as an error.
func (a *App) Run(ctx context.Context) error {
	if a.backend == nil {
		return errors.New(errors.ErrCodeInvalidInput, "backend is required")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if err := a.backend.Init(); err != nil {
		return errors.Wrap(err, errors.ErrCodeBackendInit, "init backend")
	}
	var finiOnce sync.Once
	fini := func() { finiOnce.Do(a.backend.Fini) }
	defer fini()

	a.backend.HideCursor()
	a.deviceW, a.deviceH = a.backend.Size()
	a.width, a.height = a.deviceW, a.deviceH
	a.buf = NewBuffer(a.width, a.height)
	a.layoutDue = true
	if a.root != nil {
		sub := a.root.OnInvalidate(a.invalidated)
		defer a.root.Unsubscribe(sub)
	}
	a.logger.Info(logging.CategoryHost, "start", "host loop started", map[string]any{
		"width":  a.width,
		"height": a.height,
	})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		// Finishing the backend releases the input goroutine's PollEvent.
		defer fini()
		return a.loop(gctx)
	})
	g.Go(func() error {
		return a.readInput(gctx)
	})
	err := g.Wait()
	if err != nil {
		a.logger.Error(logging.CategoryHost, "stop", err.Error(), nil)
		return err
	}
	a.logger.Info(logging.CategoryHost, "stop", "host loop stopped", nil)
	return nil
}

func (a *App) loop(ctx context.Context) error {
	defer close(a.done)

	ticker := time.NewTicker(a.tickRate)
	defer ticker.Stop()

	if err := a.safely(a.frame); err != nil {
		return err
	}
	for {
		framed := false
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg := <-a.messages:
			if err := a.safely(func() { a.handle(msg) }); err != nil {
				return err
			}
			framed = a.due() && a.limiter.Allow()
		case now := <-ticker.C:
			if err := a.safely(func() { a.handle(TickMsg{Time: now}) }); err != nil {
				return err
			}
			framed = a.due()
		}
		if a.quit {
			return nil
		}
		if framed {
			if err := a.safely(a.frame); err != nil {
				return err
			}
		}
	}
}

// safely runs fn and turns a panic into an error.
func (a *App) safely(fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.FromPanic(r)
		}
	}()
	fn()
	return nil
}

func (a *App) handle(msg Message) {
	switch m := msg.(type) {
	case KeyMsg:
		a.metrics.ObserveInput(telemetry.InputKey)
		switch {
		case m.Is(terminal.KeyCtrlC):
			a.quit = true
		case m.Is(terminal.KeyCtrlL):
			a.backend.Sync()
			a.buf.Invalidate()
			a.paintDue = true
		case a.root != nil:
			a.root.KeyPressed(m)
		}
	case LineMsg:
		a.metrics.ObserveInput(telemetry.InputLine)
		if a.root != nil {
			a.root.LineEntered(m.Text)
		}
	case ResizeMsg:
		a.metrics.ObserveInput(telemetry.InputResize)
		a.resize(m.Width, m.Height)
	case TickMsg:
		w, h := a.backend.Size()
		if w != a.deviceW || h != a.deviceH {
			a.deviceW, a.deviceH = w, h
			a.resize(w, h)
		}
	case QuitMsg:
		a.quit = true
	case updateMsg:
		if m.fn != nil {
			m.fn()
		}
	}
}

func (a *App) invalidated(kind InvalidationKind) {
	if kind == InvalidateLayout {
		a.layoutDue = true
		return
	}
	a.paintDue = true
}

func (a *App) due() bool {
	return a.layoutDue || a.paintDue
}

func (a *App) resize(w, h int) {
	w, h = max(0, w), max(0, h)
	if w == a.width && h == a.height {
		return
	}
	a.logger.Debug(logging.CategoryHost, "resize", "", map[string]any{
		"from": Size{Width: a.width, Height: a.height},
		"to":   Size{Width: w, Height: h},
	})
	a.width, a.height = w, h
	a.buf.Resize(w, h)
	a.layoutDue = true
}

// frame lays out the tree if needed, renders it into the buffer and paints
// the difference onto the device.
func (a *App) frame() {
	if !a.due() {
		return
	}
	start := time.Now()
	screen := Size{Width: a.width, Height: a.height}

	if a.layoutDue && a.root != nil {
		a.root.Measure(screen)
		a.root.Arrange(RectAt(Point{}, screen))
		a.metrics.ObserveLayout()
		a.logger.Debug(logging.CategoryLayout, "layout_pass", "", map[string]any{
			"available": screen,
			"desired":   a.root.DesiredSize(),
			"render":    a.root.RenderSize(),
		})
	}
	a.layoutDue, a.paintDue = false, false

	renderFrame(a.buf, a.root, a.colors)
	stats := a.buf.Paint(a.backend)
	a.backend.Show()

	elapsed := time.Since(start)
	a.metrics.ObserveFrame(elapsed, stats.Cells, stats.ColorChanges)
	a.logger.Debug(logging.CategoryRender, "frame", "", map[string]any{
		"cells":         stats.Cells,
		"color_changes": stats.ColorChanges,
		"duration_ms":   elapsed.Milliseconds(),
	})
}

// readInput converts device events into messages. Printable runes are
// collected into a line that is posted as a LineMsg ahead of the KeyMsg
// for Enter.
func (a *App) readInput(ctx context.Context) error {
	for {
		ev := a.backend.PollEvent()
		if ev == nil {
			return nil
		}
		var msgs []Message
		switch e := ev.(type) {
		case terminal.KeyEvent:
			msgs = a.keyMessages(e)
		case terminal.ResizeEvent:
			msgs = []Message{ResizeMsg{Width: e.Width, Height: e.Height}}
		case terminal.PasteEvent:
			for _, r := range e.Text {
				key := terminal.KeyEvent{Key: terminal.KeyRune, Rune: r}
				if r == '\n' || r == '\r' {
					key = terminal.KeyEvent{Key: terminal.KeyEnter}
				}
				msgs = append(msgs, a.keyMessages(key)...)
			}
		}
		for _, msg := range msgs {
			select {
			case a.messages <- msg:
			case <-a.done:
				return nil
			case <-ctx.Done():
				return nil
			}
		}
	}
}

func (a *App) keyMessages(e terminal.KeyEvent) []Message {
	key := KeyMsg{Key: e.Key, Rune: e.Rune, Alt: e.Alt, Ctrl: e.Ctrl, Shift: e.Shift}
	switch e.Key {
	case terminal.KeyEnter:
		line := string(a.line)
		a.line = a.line[:0]
		return []Message{LineMsg{Text: line}, key}
	case terminal.KeyBackspace:
		if n := len(a.line); n > 0 {
			a.line = a.line[:n-1]
		}
	case terminal.KeyRune:
		if !e.Ctrl && !e.Alt {
			a.line = append(a.line, e.Rune)
		}
	}
	return []Message{key}
}

func baseColors(s backend.Style) backend.Style {
	if s == (backend.Style{}) {
		return backend.DefaultStyle()
	}
	return s
}

// renderFrame clears buf to the base colors and renders root into it.
func renderFrame(buf *Buffer, root Element, colors backend.Style) {
	ctx := NewContext(buf, colors)
	w, h := buf.Size()
	buf.Fill(NewRect(0, 0, w, h), ' ', backend.DefaultStyle().
		Foreground(ctx.Foreground()).
		Background(ctx.Background()))
	if root != nil {
		root.Render(ctx)
	}
}

// Snapshot draws a single frame of root onto target at the target's size:
// measure, arrange, render and a full paint. The zero Style means
// backend.DefaultStyle.
func Snapshot(root Element, target backend.RenderTarget, colors backend.Style) PaintStats {
	w, h := target.Size()
	screen := Size{Width: w, Height: h}
	if root != nil {
		root.Measure(screen)
		root.Arrange(RectAt(Point{}, screen))
	}
	buf := NewBuffer(w, h)
	renderFrame(buf, root, baseColors(colors))
	return buf.Paint(target)
}
