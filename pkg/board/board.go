// Package board describes the geometry and piece placements that a game
// model hands to the widget tree. The tree only reads boards.
package board

import (
	"gopkg.in/yaml.v3"

	"github.com/odvcencio/cellframe/pkg/errors"
)

// Placement puts a named piece on a cell.
type Placement struct {
	Name   string `yaml:"name"`
	Column int    `yaml:"column"`
	Row    int    `yaml:"row"`
}

// Board is a fixed table of cells with pieces on some of them.
type Board interface {
	Columns() int
	Rows() int
	Placements() []Placement
}

// Static is a Board whose contents never change.
type Static struct {
	Cols   int         `yaml:"columns"`
	Height int         `yaml:"rows"`
	Pieces []Placement `yaml:"placements"`
}

// New creates a validated static board.
func New(columns, rows int, placements ...Placement) (*Static, error) {
	b := &Static{Cols: columns, Height: rows, Pieces: placements}
	if err := Validate(b); err != nil {
		return nil, err
	}
	return b, nil
}

// Decode reads a static board from YAML:
//
//	columns: 3
//	rows: 3
//	placements:
//	  - {name: x, column: 1, row: 1}
func Decode(data []byte) (*Static, error) {
	var b Static
	if err := yaml.Unmarshal(data, &b); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeConfigParse, "decode board")
	}
	if err := Validate(&b); err != nil {
		return nil, err
	}
	return &b, nil
}

func (b *Static) Columns() int { return b.Cols }

func (b *Static) Rows() int { return b.Height }

func (b *Static) Placements() []Placement { return b.Pieces }

// Validate checks that the board has cells, that every placement lies on
// the board and that no two pieces share a cell or a name.
func Validate(b Board) error {
	cols, rows := b.Columns(), b.Rows()
	if cols <= 0 || rows <= 0 {
		return errors.Newf(errors.ErrCodeInvalidInput, "board needs positive dimensions, got %dx%d", cols, rows)
	}
	cells := make(map[[2]int]string)
	names := make(map[string]bool)
	for _, p := range b.Placements() {
		if p.Column < 0 || p.Column >= cols || p.Row < 0 || p.Row >= rows {
			return errors.Newf(errors.ErrCodeOutOfRange, "piece %q at (%d, %d) is off the %dx%d board",
				p.Name, p.Column, p.Row, cols, rows)
		}
		cell := [2]int{p.Column, p.Row}
		if other, ok := cells[cell]; ok {
			return errors.Newf(errors.ErrCodeInvalidInput, "pieces %q and %q share (%d, %d)",
				other, p.Name, p.Column, p.Row)
		}
		if names[p.Name] {
			return errors.Newf(errors.ErrCodeInvalidInput, "piece %q placed twice", p.Name)
		}
		cells[cell] = p.Name
		names[p.Name] = true
	}
	return nil
}

// Find returns the cell of the named piece.
func Find(b Board, name string) (col, row int, ok bool) {
	for _, p := range b.Placements() {
		if p.Name == name {
			return p.Column, p.Row, true
		}
	}
	return -1, -1, false
}
