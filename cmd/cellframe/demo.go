package main

import (
	"fmt"
	"os"

	"github.com/odvcencio/cellframe/pkg/board"
	"github.com/odvcencio/cellframe/pkg/config"
	"github.com/odvcencio/cellframe/pkg/errors"
	"github.com/odvcencio/cellframe/pkg/ui/backend"
	"github.com/odvcencio/cellframe/pkg/ui/observable"
	"github.com/odvcencio/cellframe/pkg/ui/runtime"
	"github.com/odvcencio/cellframe/pkg/ui/terminal"
	"github.com/odvcencio/cellframe/pkg/ui/widgets"
)

const demoTitle = "cellframe demo. Tab switches between the color list and the board, " +
	"arrow keys move, Enter selects, Ctrl+C quits."

var palette = []backend.Color{
	backend.ColorRed,
	backend.ColorGreen,
	backend.ColorYellow,
	backend.ColorBlue,
	backend.ColorMagenta,
	backend.ColorCyan,
	backend.ColorWhite,
}

// defaultBoard is used when no --board file is given.
var defaultBoard = &board.Static{
	Cols:   3,
	Height: 3,
	Pieces: []board.Placement{
		{Name: "x", Column: 0, Row: 0},
		{Name: "o", Column: 1, Row: 1},
		{Name: "*", Column: 2, Row: 2},
	},
}

// loadBoard reads a board description, or returns the default board when
// path is empty.
func loadBoard(path string) (board.Board, error) {
	if path == "" {
		return defaultBoard, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeConfigLoad, "read board file").
			WithContext("path", path)
	}
	b, err := board.Decode(data)
	if err != nil {
		return nil, err
	}
	return b, nil
}

// demo is the element tree shown by run and snapshot.
type demo struct {
	root   *runtime.FlowContainer
	focus  *focusRing
	title  *widgets.TextBox
	status *widgets.TextBox
	list   *widgets.ListBox
	grid   *widgets.Grid

	swatches map[runtime.Element]backend.Color
}

func newDemo(b board.Board, theme config.Theme) *demo {
	d := &demo{
		root:     runtime.NewFlowContainer("root", runtime.Vertical),
		title:    widgets.NewTextBox("title", demoTitle).WithWrap(true),
		status:   widgets.NewTextBox("status", "nothing selected"),
		list:     widgets.NewListBox("colors", runtime.Vertical),
		grid:     widgets.NewBoardGrid("board", b),
		swatches: make(map[runtime.Element]backend.Color),
	}

	colors := observable.NewList[runtime.Element]()
	for _, c := range palette {
		swatch := widgets.NewTextBox(c.String(), c.String())
		swatch.SetForeground(c)
		d.swatches[swatch] = c
		colors.Add(swatch)
	}
	d.list.SetItemsSource(colors)

	pieces := observable.NewList[runtime.Element]()
	for _, p := range b.Placements() {
		pieces.Add(widgets.NewTextBox(p.Name, p.Name))
	}
	d.grid.SetItemsSource(pieces)
	d.grid.SetPadding(runtime.Spacing{Left: 1, Right: 1})

	d.list.OnSelectionChanged(func(_, cur runtime.Element) {
		if c, ok := d.swatches[cur]; ok {
			d.grid.SetHighlightColor(c)
		}
	})
	d.grid.OnSelectedLocationChanged(func(_, cur widgets.Location) {
		d.status.SetText(d.describe(cur))
	})
	// An item can land in the selected cell without the cell changing.
	d.grid.OnSelectionChanged(func(_, _ runtime.Element) {
		d.status.SetText(d.describe(d.grid.SelectedLocation()))
	})

	panes := runtime.NewFlowContainer("panes", runtime.Horizontal)
	d.grid.SetMargin(runtime.Spacing{Left: 2})
	panes.Add(d.list, d.grid)
	panes.SetMargin(runtime.Spacing{Top: 1, Bottom: 1})

	d.focus = newFocusRing("focus", d.list, d.grid)
	d.root.Add(d.focus, d.title, panes, d.status)
	d.applyTheme(theme)
	return d
}

func (d *demo) describe(loc widgets.Location) string {
	if loc == widgets.NoLocation {
		return "nothing selected"
	}
	item := d.grid.ItemAt(loc.Column, loc.Row)
	if item == nil {
		return fmt.Sprintf("empty cell at %d,%d", loc.Column, loc.Row)
	}
	return fmt.Sprintf("%s at %d,%d", item.Name(), loc.Column, loc.Row)
}

// applyTheme recolors the tree. It must run on the loop goroutine once the
// app is running.
func (d *demo) applyTheme(t config.Theme) {
	d.root.SetForeground(t.Colors.FG())
	d.root.SetBackground(t.Colors.BG())
	d.list.SetSelectionColor(t.Selection)
	d.grid.SetSelectionColor(t.Selection)
	d.list.SetHighlightColor(t.Highlight)
	if _, ok := d.swatches[d.list.SelectedItem()]; !ok {
		d.grid.SetHighlightColor(t.Highlight)
	}
	d.grid.SetBorderStyle(t.Border)
}

// focusRing takes no space. Tab moves input from one target to the next
// by enabling only that target.
type focusRing struct {
	runtime.Base
	targets []runtime.Element
	current int
}

func newFocusRing(name string, targets ...runtime.Element) *focusRing {
	f := &focusRing{targets: targets}
	f.Init(name, f)
	for i, t := range targets {
		t.SetEnabled(i == 0)
	}
	return f
}

// Current returns the target receiving input, or nil.
func (f *focusRing) Current() runtime.Element {
	if len(f.targets) == 0 {
		return nil
	}
	return f.targets[f.current]
}

// HandleKey implements runtime.KeyHandler.
func (f *focusRing) HandleKey(key runtime.KeyMsg) bool {
	if !key.Is(terminal.KeyTab) || len(f.targets) < 2 {
		return false
	}
	f.targets[f.current].SetEnabled(false)
	f.current = (f.current + 1) % len(f.targets)
	f.targets[f.current].SetEnabled(true)
	return true
}

// MeasureOverride implements runtime.Control.
func (f *focusRing) MeasureOverride(runtime.Size) runtime.Size { return runtime.Size{} }

// ArrangeOverride implements runtime.Control.
func (f *focusRing) ArrangeOverride(runtime.Size) runtime.Size { return runtime.Size{} }

// RenderOverride implements runtime.Control.
func (f *focusRing) RenderOverride(runtime.Surface) {}
