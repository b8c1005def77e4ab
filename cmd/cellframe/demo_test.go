package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odvcencio/cellframe/pkg/config"
	"github.com/odvcencio/cellframe/pkg/errors"
	"github.com/odvcencio/cellframe/pkg/logging"
	"github.com/odvcencio/cellframe/pkg/ui/backend"
	"github.com/odvcencio/cellframe/pkg/ui/backend/ansi"
	"github.com/odvcencio/cellframe/pkg/ui/runtime"
	"github.com/odvcencio/cellframe/pkg/ui/terminal"
	"github.com/odvcencio/cellframe/pkg/ui/widgets"
)

func defaultTheme(t *testing.T) config.Theme {
	t.Helper()
	theme, err := config.DefaultConfig().UI.Theme()
	require.NoError(t, err)
	return theme
}

func press(d *demo, keys ...terminal.Key) {
	for _, k := range keys {
		d.root.KeyPressed(runtime.KeyMsg{Key: k})
	}
}

func TestDemoSnapshot(t *testing.T) {
	d := newDemo(defaultBoard, defaultTheme(t))

	var out bytes.Buffer
	dev := writeSnapshot(&out, d, 60, 24, ansi.WithProfile(termenv.Ascii))
	frame := dev.Capture()

	assert.Contains(t, frame, "cellframe demo.")
	for _, c := range palette {
		assert.Contains(t, frame, c.String())
	}
	assert.Contains(t, frame, "│ x │   │   │")
	assert.Contains(t, frame, "│   │ o │   │")
	assert.Contains(t, frame, "│   │   │ * │")
	assert.Contains(t, frame, "nothing selected")
	assert.NotContains(t, out.String(), "\x1b")
	assert.Len(t, strings.Split(frame, "\n"), 24)
}

func TestFocusRingMovesInput(t *testing.T) {
	d := newDemo(defaultBoard, defaultTheme(t))
	require.True(t, d.list.Enabled())
	require.False(t, d.grid.Enabled())
	assert.Same(t, d.list, d.focus.Current())

	press(d, terminal.KeyTab)
	assert.False(t, d.list.Enabled())
	assert.True(t, d.grid.Enabled())
	assert.Same(t, d.grid, d.focus.Current())

	press(d, terminal.KeyDown, terminal.KeyEnter)
	assert.Equal(t, widgets.Location{Column: 0, Row: 0}, d.grid.SelectedLocation())
	assert.Equal(t, "x at 0,0", d.status.Text())

	press(d, terminal.KeyRight, terminal.KeyEnter)
	assert.Equal(t, "empty cell at 1,0", d.status.Text())

	press(d, terminal.KeyTab)
	assert.True(t, d.list.Enabled())
	assert.Equal(t, widgets.NoLocation, d.grid.ActiveLocation())
}

func TestStatusReportsFirstEmptyCell(t *testing.T) {
	d := newDemo(defaultBoard, defaultTheme(t))
	require.Equal(t, "nothing selected", d.status.Text())

	press(d, terminal.KeyTab, terminal.KeyDown, terminal.KeyRight, terminal.KeyEnter)
	assert.Equal(t, widgets.Location{Column: 1, Row: 0}, d.grid.SelectedLocation())
	assert.Nil(t, d.grid.SelectedItem())
	assert.Equal(t, "empty cell at 1,0", d.status.Text())
}

func TestListSelectionColorsBoardHighlight(t *testing.T) {
	d := newDemo(defaultBoard, defaultTheme(t))
	assert.Equal(t, backend.ColorYellow, d.grid.HighlightColor())

	press(d, terminal.KeyDown, terminal.KeyDown, terminal.KeyEnter)
	assert.Equal(t, 1, d.list.SelectedIndex())
	assert.Equal(t, backend.ColorGreen, d.grid.HighlightColor())

	// A theme change keeps the color picked from the list.
	theme := defaultTheme(t)
	theme.Highlight = backend.ColorCyan
	theme.Selection = backend.ColorMagenta
	theme.Border = runtime.BorderDouble
	d.applyTheme(theme)
	assert.Equal(t, backend.ColorGreen, d.grid.HighlightColor())
	assert.Equal(t, backend.ColorCyan, d.list.HighlightColor())
	assert.Equal(t, backend.ColorMagenta, d.list.SelectionColor())
	assert.Equal(t, backend.ColorMagenta, d.grid.SelectionColor())
	assert.Equal(t, runtime.BorderDouble, d.grid.BorderStyle())
}

func TestLoadBoard(t *testing.T) {
	b, err := loadBoard("")
	require.NoError(t, err)
	assert.Equal(t, 3, b.Columns())

	path := filepath.Join(t.TempDir(), "board.yaml")
	data := "columns: 2\nrows: 1\nplacements:\n  - {name: k, column: 1, row: 0}\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
	b, err = loadBoard(path)
	require.NoError(t, err)
	assert.Equal(t, 2, b.Columns())
	assert.Len(t, b.Placements(), 1)

	_, err = loadBoard(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeConfigLoad))
	assert.Equal(t, 2, exitCodeForError(err))
}

func TestSnapshotCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("ui:\n  border_style: double\n"), 0o644))

	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetArgs([]string{"snapshot", "--config", path, "--width", "40", "--height", "12", "--plain"})
	require.NoError(t, root.Execute())

	assert.Contains(t, out.String(), "╔")
	assert.Equal(t, 12, strings.Count(out.String(), "\n"))
}

func TestSnapshotCommandRejectsBadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("ui:\n  border_style: wavy\n"), 0o644))

	root := newRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetArgs([]string{"snapshot", "--config", path, "--width", "10", "--height", "4"})
	err := root.Execute()
	require.Error(t, err)
	assert.Equal(t, 2, exitCodeForError(err))
}

func TestSnapshotSizeExplicit(t *testing.T) {
	w, h := snapshotSize(os.Stdout, 33, 7)
	assert.Equal(t, 33, w)
	assert.Equal(t, 7, h)
}

func TestExitCodes(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, 0},
		{"plain", fmt.Errorf("boom"), 1},
		{"config", errors.New(errors.ErrCodeConfigInvalid, "bad"), 2},
		{"backend", errors.New(errors.ErrCodeBackendInit, "no tty"), 1},
		{"explicit", withExitCode(fmt.Errorf("boom"), 3), 3},
		{"explicit zero", exitError{err: fmt.Errorf("boom")}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, exitCodeForError(tt.err))
		})
	}
	assert.Nil(t, withExitCode(nil, 3))
}

func TestPrintVersion(t *testing.T) {
	var out bytes.Buffer
	printVersion(&out)
	assert.Contains(t, out.String(), "cellframe "+version)
	assert.Contains(t, out.String(), "Go version")
}

func TestLogCommand(t *testing.T) {
	dir := t.TempDir()
	logger, err := logging.NewLogger(dir, "01TEST")
	require.NoError(t, err)
	logger.Info(logging.CategoryHost, "start", "host loop started", map[string]any{"width": 80, "height": 24})
	logger.Warn(logging.CategoryConfig, "reload", "bad color", nil)
	require.NoError(t, logger.Close())

	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetArgs([]string{"log", "--file", logger.SessionPath(), "-n", "1"})
	require.NoError(t, root.Execute())

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "warn  config reload bad color")

	out.Reset()
	root = newRootCmd()
	root.SetOut(&out)
	root.SetArgs([]string{"log", "--file", logger.SessionPath()})
	require.NoError(t, root.Execute())
	assert.Contains(t, out.String(), "[height=24 width=80]")
}
