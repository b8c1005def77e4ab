package widgets

import (
	"github.com/odvcencio/cellframe/pkg/board"
	"github.com/odvcencio/cellframe/pkg/errors"
	"github.com/odvcencio/cellframe/pkg/ui/backend"
	"github.com/odvcencio/cellframe/pkg/ui/observable"
	"github.com/odvcencio/cellframe/pkg/ui/runtime"
	"github.com/odvcencio/cellframe/pkg/ui/terminal"
)

// Location addresses a grid cell.
type Location struct {
	Column, Row int
}

// NoLocation is the empty active or selected cell.
var NoLocation = Location{Column: None, Row: None}

// Locator maps an item to its cell. A negative column or row leaves the
// item out of the grid.
type Locator func(item runtime.Element) (col, row int)

// Grid places items in a fixed table of cells separated by border lines.
// The arrow keys move the active cell; Enter selects it.
type Grid struct {
	ItemsContainer
	columns, rows int
	locator       Locator
	border        runtime.BorderStyle

	active     Location
	selected   Location
	onLocation func(old, cur Location)

	colWidths  []int
	rowHeights []int
}

// NewGrid creates an empty grid. It panics unless both dimensions are
// positive.
func NewGrid(name string, columns, rows int) *Grid {
	if columns <= 0 || rows <= 0 {
		panic(errors.Newf(errors.ErrCodeInvalidInput, "grid %q needs positive dimensions, got %dx%d", name, columns, rows))
	}
	g := &Grid{
		columns:    columns,
		rows:       rows,
		border:     runtime.BorderSingle,
		active:     NoLocation,
		selected:   NoLocation,
		colWidths:  make([]int, columns),
		rowHeights: make([]int, rows),
	}
	g.initItems(name, g, g.sourceUpdated)
	return g
}

// NewBoardGrid creates a grid shaped like b whose items are placed by
// matching their names against the board's pieces.
func NewBoardGrid(name string, b board.Board) *Grid {
	g := NewGrid(name, b.Columns(), b.Rows())
	g.SetLocator(BoardLocator(b))
	return g
}

// BoardLocator maps an item to the cell of the piece sharing its name.
func BoardLocator(b board.Board) Locator {
	return func(item runtime.Element) (int, int) {
		col, row, ok := board.Find(b, item.Name())
		if !ok {
			return None, None
		}
		return col, row
	}
}

// Columns returns the number of columns.
func (g *Grid) Columns() int { return g.columns }

// Rows returns the number of rows.
func (g *Grid) Rows() int { return g.rows }

// SetLocator replaces the item-to-cell mapping. Nil restores the default,
// which fills cells row by row in source order.
func (g *Grid) SetLocator(fn Locator) {
	g.locator = fn
	g.refreshItems()
	g.InvalidateLayout()
}

// BorderStyle returns the glyph set of the table lines.
func (g *Grid) BorderStyle() runtime.BorderStyle { return g.border }

// SetBorderStyle changes the glyph set of the table lines.
func (g *Grid) SetBorderStyle(s runtime.BorderStyle) bool {
	if g.border == s {
		return false
	}
	g.border = s
	g.InvalidatePaint()
	return true
}

func (g *Grid) indexLocation(item runtime.Element) (int, int) {
	i := g.source.IndexOf(item)
	if i < 0 {
		return None, None
	}
	return i % g.columns, i / g.columns
}

// locate resolves the cell of item. Mappings outside the table are fatal.
func (g *Grid) locate(item runtime.Element) (Location, bool) {
	if item == nil {
		return NoLocation, false
	}
	fn := g.locator
	if fn == nil {
		fn = g.indexLocation
	}
	col, row := fn(item)
	if col < 0 || row < 0 {
		return NoLocation, false
	}
	if col >= g.columns || row >= g.rows {
		panic(errors.Newf(errors.ErrCodeOutOfRange, "item %q mapped to (%d, %d) outside %dx%d grid",
			item.Name(), col, row, g.columns, g.rows).
			WithContext("grid", g.Name()))
	}
	return Location{Column: col, Row: row}, true
}

func (g *Grid) inside(loc Location) bool {
	return loc.Column >= 0 && loc.Column < g.columns && loc.Row >= 0 && loc.Row < g.rows
}

// ItemAt returns the first item mapped to (col, row), or nil.
func (g *Grid) ItemAt(col, row int) runtime.Element {
	target := Location{Column: col, Row: row}
	if !g.inside(target) {
		return nil
	}
	for _, item := range g.source.Items() {
		if loc, ok := g.locate(item); ok && loc == target {
			return item
		}
	}
	return nil
}

func (g *Grid) itemAt(loc Location) runtime.Element {
	return g.ItemAt(loc.Column, loc.Row)
}

// ActiveLocation returns the cell under the cursor, or NoLocation.
func (g *Grid) ActiveLocation() Location { return g.active }

// SetActiveLocation moves the cursor. Cells outside the table clear it.
func (g *Grid) SetActiveLocation(loc Location) bool {
	if !g.inside(loc) {
		loc = NoLocation
	}
	if loc == g.active {
		return false
	}
	g.active = loc
	g.setHovered(g.itemAt(loc))
	g.InvalidatePaint()
	return true
}

// SelectedLocation returns the committed cell, or NoLocation.
func (g *Grid) SelectedLocation() Location { return g.selected }

// SetSelectedLocation commits loc. The selected item becomes whatever
// occupies it, possibly nothing.
func (g *Grid) SetSelectedLocation(loc Location) bool {
	if !g.inside(loc) {
		loc = NoLocation
	}
	if loc == g.selected {
		return false
	}
	g.setSelectedLocation(loc)
	g.setSelected(g.itemAt(loc))
	g.InvalidatePaint()
	return true
}

// OnSelectedLocationChanged registers fn to run whenever the selected cell
// changes, including moves between empty cells. Passing nil clears it.
func (g *Grid) OnSelectedLocationChanged(fn func(old, cur Location)) {
	g.onLocation = fn
}

func (g *Grid) setSelectedLocation(loc Location) {
	old := g.selected
	g.selected = loc
	if old != loc && g.onLocation != nil {
		g.onLocation(old, loc)
	}
}

func (g *Grid) sourceUpdated(observable.Change[runtime.Element]) {
	g.refreshItems()
}

// refreshItems keeps the selection on its item and the hover on its cell.
func (g *Grid) refreshItems() {
	if item := g.SelectedItem(); item != nil {
		loc := NoLocation
		if g.source.Contains(item) {
			if at, ok := g.locate(item); ok {
				loc = at
			}
		}
		g.setSelectedLocation(loc)
	}
	g.setSelected(g.itemAt(g.selected))
	g.setHovered(g.itemAt(g.active))
}

// HandleKey implements runtime.KeyHandler.
func (g *Grid) HandleKey(key runtime.KeyMsg) bool {
	loc := g.active
	switch key.Key {
	case terminal.KeyLeft:
		if loc.Column > 0 {
			loc.Column--
			loc.Row = max(loc.Row, 0)
		}
	case terminal.KeyRight:
		if loc.Column < g.columns-1 {
			loc.Column++
			loc.Row = max(loc.Row, 0)
		}
	case terminal.KeyUp:
		if loc.Row > 0 {
			loc.Row--
			loc.Column = max(loc.Column, 0)
		}
	case terminal.KeyDown:
		if loc.Row < g.rows-1 {
			loc.Row++
			loc.Column = max(loc.Column, 0)
		}
	case terminal.KeyEnter:
		g.SetSelectedLocation(g.active)
		return true
	default:
		return false
	}
	g.SetActiveLocation(loc)
	return true
}

// EnabledChanged implements runtime.EnabledObserver.
func (g *Grid) EnabledChanged(enabled bool) {
	if enabled {
		g.SetActiveLocation(g.selected)
		return
	}
	g.SetActiveLocation(NoLocation)
}

// MeasureOverride implements runtime.Control.
func (g *Grid) MeasureOverride(available runtime.Size) runtime.Size {
	clear(g.colWidths)
	clear(g.rowHeights)
	pad := g.padding.TotalSize()
	cell := runtime.Size{
		Width:  share(available.Width, g.columns),
		Height: share(available.Height, g.rows),
	}.Sub(pad)

	for _, item := range g.source.Items() {
		loc, ok := g.locate(item)
		if !ok {
			continue
		}
		item.Measure(cell)
		d := item.DesiredSize().Add(pad)
		g.colWidths[loc.Column] = max(g.colWidths[loc.Column], d.Width)
		g.rowHeights[loc.Row] = max(g.rowHeights[loc.Row], d.Height)
	}
	return g.tableSize()
}

// share splits total cells among n tracks after the n+1 border lines.
func share(total, n int) int {
	if total < 0 {
		return total
	}
	return max(0, (total-n-1)/n)
}

func (g *Grid) tableSize() runtime.Size {
	return runtime.Size{Width: tableExtent(g.colWidths), Height: tableExtent(g.rowHeights)}
}

func tableExtent(extents []int) int {
	total := 1
	for _, e := range extents {
		total += e + 1
	}
	return total
}

// ArrangeOverride implements runtime.Control.
func (g *Grid) ArrangeOverride(space runtime.Size) runtime.Size {
	for _, item := range g.source.Items() {
		loc, ok := g.locate(item)
		if !ok {
			continue
		}
		cell := g.cellRect(loc)
		d := item.DesiredSize().Limit(cell.Size())
		x := cell.X + (cell.Width-d.Width)/2
		y := cell.Y + (cell.Height-d.Height)/2
		item.Arrange(runtime.NewRect(x, y, d.Width, d.Height))
	}
	return g.tableSize().Limit(space)
}

// cellRect is the interior of the cell at loc, inside the table lines.
func (g *Grid) cellRect(loc Location) runtime.Rect {
	origin := g.RenderLocation()
	x, y := origin.X+1, origin.Y+1
	for _, w := range g.colWidths[:loc.Column] {
		x += w + 1
	}
	for _, h := range g.rowHeights[:loc.Row] {
		y += h + 1
	}
	return runtime.NewRect(x, y, g.colWidths[loc.Column], g.rowHeights[loc.Row])
}

// RenderOverride implements runtime.Control. Nothing is drawn outside the
// render rect, even when arranged smaller than desired.
func (g *Grid) RenderOverride(s runtime.Surface) {
	s = runtime.Clip(s, g.RenderRect())
	g.renderLines(s)

	for _, item := range g.source.Items() {
		loc, ok := g.locate(item)
		switch {
		case !ok:
		case loc == g.selected:
			item.RenderWithColors(s, backend.ColorUnset, g.selectionColor)
		default:
			item.Render(s)
		}
	}

	if !g.inside(g.active) {
		return
	}
	cell := g.cellRect(g.active)
	s.SetForegroundColor(g.highlightColor)
	runtime.RenderBox(s, cell.X-1, cell.Y-1, cell.Width+2, cell.Height+2, runtime.BorderDouble)
	s.PopForegroundColor()
}

func (g *Grid) renderLines(s runtime.Surface) {
	if g.border == runtime.BorderNone {
		return
	}
	origin := g.RenderLocation()
	xs := boundaries(origin.X, g.colWidths)
	ys := boundaries(origin.Y, g.rowHeights)

	horizontal := runtime.BorderGlyph(g.border, runtime.PartHorizontal)
	vertical := runtime.BorderGlyph(g.border, runtime.PartVertical)
	for r, y := range ys {
		for x := xs[0]; x <= xs[len(xs)-1]; x++ {
			s.Write(horizontal, x, y)
		}
		for c, x := range xs {
			s.Write(g.junction(c, r), x, y)
		}
	}
	for r := 0; r < g.rows; r++ {
		for y := ys[r] + 1; y < ys[r+1]; y++ {
			for _, x := range xs {
				s.Write(vertical, x, y)
			}
		}
	}
}

// boundaries returns the positions of the lines around each track.
func boundaries(start int, extents []int) []int {
	out := make([]int, 0, len(extents)+1)
	pos := start
	out = append(out, pos)
	for _, e := range extents {
		pos += e + 1
		out = append(out, pos)
	}
	return out
}

// junction picks the glyph where line c meets line r.
func (g *Grid) junction(c, r int) rune {
	part := runtime.PartCross
	switch {
	case r == 0 && c == 0:
		part = runtime.PartTopLeft
	case r == 0 && c == g.columns:
		part = runtime.PartTopRight
	case r == 0:
		part = runtime.PartJoinTop
	case r == g.rows && c == 0:
		part = runtime.PartBottomLeft
	case r == g.rows && c == g.columns:
		part = runtime.PartBottomRight
	case r == g.rows:
		part = runtime.PartJoinBottom
	case c == 0:
		part = runtime.PartJoinLeft
	case c == g.columns:
		part = runtime.PartJoinRight
	}
	return runtime.BorderGlyph(g.border, part)
}
