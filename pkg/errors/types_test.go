package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeOutOfRange, "cell (9, 9) outside 4x4 buffer")

	assert.Equal(t, ErrCodeOutOfRange, err.Code)
	assert.Equal(t, "cell (9, 9) outside 4x4 buffer", err.Message)
	assert.Nil(t, err.Underlying)
	assert.Equal(t, "[OUT_OF_RANGE] cell (9, 9) outside 4x4 buffer", err.Error())
}

func TestNewf(t *testing.T) {
	err := Newf(ErrCodeOutOfRange, "column %d outside [0,%d)", 5, 3)
	assert.Equal(t, "column 5 outside [0,3)", err.Message)
}

func TestWrap(t *testing.T) {
	cause := errors.New("open /dev/tty: no such device")
	err := Wrap(cause, ErrCodeBackendInit, "init backend")

	require.NotNil(t, err)
	assert.Same(t, cause, err.Unwrap())
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "[BACKEND_INIT] init backend: open /dev/tty: no such device", err.Error())

	assert.Nil(t, Wrap(nil, ErrCodeInternal, "nothing"))
}

func TestWithContextSortsKeys(t *testing.T) {
	err := New(ErrCodeOutOfRange, "grid placement").
		WithContext("row", 1).
		WithContext("column", 4)

	assert.Equal(t, map[string]any{"column": 4, "row": 1}, err.Context)
	assert.Equal(t, "[OUT_OF_RANGE] grid placement {column: 4, row: 1}", err.Error())
}

func TestCodes(t *testing.T) {
	err := New(ErrCodeOutOfRange, "bad")
	wrapped := fmt.Errorf("render frame: %w", err)

	assert.True(t, IsCode(err, ErrCodeOutOfRange))
	assert.True(t, IsCode(wrapped, ErrCodeOutOfRange))
	assert.False(t, IsCode(err, ErrCodeInternal))
	assert.False(t, IsCode(nil, ErrCodeOutOfRange))
	assert.False(t, IsCode(errors.New("plain"), ErrCodeInternal))

	assert.Equal(t, ErrCodeOutOfRange, GetCode(wrapped))
	assert.Equal(t, ErrorCode(""), GetCode(nil))
	assert.Equal(t, ErrCodeInternal, GetCode(errors.New("plain")))
}

func TestIsMatchesCode(t *testing.T) {
	err := fmt.Errorf("load: %w", Wrap(errors.New("eof"), ErrCodeConfigParse, "decode"))

	assert.ErrorIs(t, err, &Error{Code: ErrCodeConfigParse})
	assert.NotErrorIs(t, err, &Error{Code: ErrCodeConfigLoad})
}

func TestFromPanic(t *testing.T) {
	structured := New(ErrCodeOutOfRange, "placement")
	assert.Same(t, structured, FromPanic(structured))

	plain := errors.New("boom")
	got := FromPanic(plain)
	assert.ErrorIs(t, got, plain)
	assert.Equal(t, ErrCodeInternal, GetCode(got))

	got = FromPanic("index out of range")
	assert.Equal(t, ErrCodeInternal, GetCode(got))
	assert.Contains(t, got.Error(), "index out of range")

	assert.NoError(t, FromPanic(nil))
}

func TestStackStartsAtCaller(t *testing.T) {
	err := New(ErrCodeInternal, "here")

	require.NotEmpty(t, err.Stack)
	assert.True(t, strings.HasSuffix(err.Stack[0].Function, "TestStackStartsAtCaller"), err.Stack[0].Function)
	assert.True(t, strings.HasSuffix(err.Stack[0].File, "types_test.go"))

	trace := err.StackTrace()
	assert.True(t, strings.HasPrefix(trace, "Stack trace:\n  1. "))
	assert.Contains(t, trace, "TestStackStartsAtCaller")
}
