package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odvcencio/cellframe/pkg/errors"
)

func TestNew(t *testing.T) {
	b, err := New(3, 2, Placement{Name: "x", Column: 2, Row: 1})
	require.NoError(t, err)
	assert.Equal(t, 3, b.Columns())
	assert.Equal(t, 2, b.Rows())
	assert.Len(t, b.Placements(), 1)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		board  *Static
		code   errors.ErrorCode
		wantOK bool
	}{
		{"empty board", &Static{Cols: 3, Height: 3}, "", true},
		{"no cells", &Static{Cols: 0, Height: 3}, errors.ErrCodeInvalidInput, false},
		{"off board", &Static{Cols: 2, Height: 2, Pieces: []Placement{{Name: "a", Column: 2}}}, errors.ErrCodeOutOfRange, false},
		{"negative", &Static{Cols: 2, Height: 2, Pieces: []Placement{{Name: "a", Row: -1}}}, errors.ErrCodeOutOfRange, false},
		{"shared cell", &Static{Cols: 2, Height: 2, Pieces: []Placement{{Name: "a"}, {Name: "b"}}}, errors.ErrCodeInvalidInput, false},
		{"same name", &Static{Cols: 2, Height: 2, Pieces: []Placement{{Name: "a"}, {Name: "a", Row: 1}}}, errors.ErrCodeInvalidInput, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.board)
			if tt.wantOK {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.IsCode(err, tt.code), "got %v", err)
		})
	}
}

func TestDecode(t *testing.T) {
	b, err := Decode([]byte(`
columns: 3
rows: 3
placements:
  - {name: x, column: 1, row: 1}
  - {name: o, column: 0, row: 2}
`))
	require.NoError(t, err)
	assert.Equal(t, 3, b.Columns())

	col, row, ok := Find(b, "o")
	assert.True(t, ok)
	assert.Equal(t, 0, col)
	assert.Equal(t, 2, row)

	_, _, ok = Find(b, "missing")
	assert.False(t, ok)
}

func TestDecode_Errors(t *testing.T) {
	_, err := Decode([]byte("columns: [1"))
	assert.True(t, errors.IsCode(err, errors.ErrCodeConfigParse))

	_, err = Decode([]byte("columns: 1\nrows: 1\nplacements: [{name: a, column: 4, row: 0}]"))
	assert.True(t, errors.IsCode(err, errors.ErrCodeOutOfRange))
}
