// Package logging writes structured host events as JSON lines, one file
// per session plus a shared file of errors.
package logging

import (
	"bufio"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/odvcencio/cellframe/pkg/errors"
)

// Level represents log severity
type Level string

const (
	LevelDebug Level = "debug"
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
)

var levelRank = map[Level]int{
	LevelDebug: 0,
	LevelInfo:  1,
	LevelWarn:  2,
	LevelError: 3,
}

// ParseLevel maps a config string to a Level.
func ParseLevel(s string) (Level, error) {
	lvl := Level(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := levelRank[lvl]; !ok {
		return LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
	return lvl, nil
}

// Category names the part of the engine an event comes from.
type Category string

const (
	CategoryLayout Category = "layout"
	CategoryRender Category = "render"
	CategoryInput  Category = "input"
	CategoryHost   Category = "host"
	CategoryConfig Category = "config"
)

// Event is one line of a log file.
type Event struct {
	Timestamp time.Time      `json:"timestamp"`
	Level     Level          `json:"level"`
	Category  Category       `json:"category"`
	EventType string         `json:"type"`
	SessionID string         `json:"session_id,omitempty"`
	Details   map[string]any `json:"details,omitempty"`
	Message   string         `json:"message,omitempty"`
}

const (
	sessionsDir = "sessions"
	errorsFile  = "errors.jsonl"
	logExt      = ".jsonl"
)

// Logger writes events as JSON lines. A nil *Logger discards everything,
// so components may hold one unconditionally.
type Logger struct {
	mu       sync.Mutex
	session  string
	path     string
	out      io.Writer
	errs     io.Writer
	closers  []io.Closer
	minLevel Level
}

// NewSessionID returns a sortable identifier for a host run.
func NewSessionID() string {
	return ulid.Make().String()
}

// NewLogger writes to <dir>/sessions/<session>.jsonl and copies error
// events to <dir>/errors.jsonl. An empty session gets a fresh ID.
func NewLogger(dir, session string) (*Logger, error) {
	if session == "" {
		session = NewSessionID()
	}
	if err := os.MkdirAll(filepath.Join(dir, sessionsDir), 0o755); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternal, "create log directory").
			WithContext("dir", dir)
	}

	path := filepath.Join(dir, sessionsDir, session+logExt)
	sessionLog, err := openAppend(path)
	if err != nil {
		return nil, err
	}
	errorLog, err := openAppend(filepath.Join(dir, errorsFile))
	if err != nil {
		sessionLog.Close()
		return nil, err
	}

	return &Logger{
		session:  session,
		path:     path,
		out:      sessionLog,
		errs:     errorLog,
		closers:  []io.Closer{sessionLog, errorLog},
		minLevel: LevelInfo,
	}, nil
}

func openAppend(path string) (*os.File, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternal, "open log file").
			WithContext("path", path)
	}
	return f, nil
}

// NewWriterLogger writes every event, errors included, to w only.
func NewWriterLogger(w io.Writer, session string) *Logger {
	return &Logger{session: session, out: w, minLevel: LevelInfo}
}

// SessionID returns the session stamped on events.
func (l *Logger) SessionID() string {
	if l == nil {
		return ""
	}
	return l.session
}

// SessionPath returns the session log file, or "" for writer loggers.
func (l *Logger) SessionPath() string {
	if l == nil {
		return ""
	}
	return l.path
}

// SetMinLevel drops events below level from now on.
func (l *Logger) SetMinLevel(level Level) {
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.minLevel = level
}

// Enabled reports whether events at level would be written.
func (l *Logger) Enabled(level Level) bool {
	if l == nil {
		return false
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.passes(level)
}

func (l *Logger) passes(level Level) bool {
	return levelRank[level] >= levelRank[l.minLevel]
}

// Log writes event, filling in the timestamp and session when unset.
func (l *Logger) Log(event Event) error {
	if l == nil {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.passes(event.Level) || l.out == nil {
		return nil
	}

	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	if event.SessionID == "" {
		event.SessionID = l.session
	}
	line, err := json.Marshal(event)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeInternal, "encode log event")
	}
	line = append(line, '\n')

	if _, err := l.out.Write(line); err != nil {
		return errors.Wrap(err, errors.ErrCodeInternal, "write log event")
	}
	if event.Level == LevelError && l.errs != nil {
		if _, err := l.errs.Write(line); err != nil {
			return errors.Wrap(err, errors.ErrCodeInternal, "write error log")
		}
	}
	return nil
}

func (l *Logger) emit(level Level, category Category, eventType, message string, details map[string]any) error {
	return l.Log(Event{
		Level:     level,
		Category:  category,
		EventType: eventType,
		Message:   message,
		Details:   details,
	})
}

// Debug logs a debug event
func (l *Logger) Debug(category Category, eventType, message string, details map[string]any) error {
	return l.emit(LevelDebug, category, eventType, message, details)
}

// Info logs an info event
func (l *Logger) Info(category Category, eventType, message string, details map[string]any) error {
	return l.emit(LevelInfo, category, eventType, message, details)
}

// Warn logs a warning event
func (l *Logger) Warn(category Category, eventType, message string, details map[string]any) error {
	return l.emit(LevelWarn, category, eventType, message, details)
}

// Error logs an error event and copies it to the error log.
func (l *Logger) Error(category Category, eventType, message string, details map[string]any) error {
	return l.emit(LevelError, category, eventType, message, details)
}

// Close closes the log files. Later events are dropped.
func (l *Logger) Close() error {
	if l == nil {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	var errs []error
	for _, c := range l.closers {
		errs = append(errs, c.Close())
	}
	l.closers = nil
	l.out, l.errs = nil, nil
	return stderrors.Join(errs...)
}

// LatestSession returns the most recent session log under dir. Session
// IDs are ULIDs, so the greatest name is the newest.
func LatestSession(dir string) (string, error) {
	entries, err := os.ReadDir(filepath.Join(dir, sessionsDir))
	if err != nil {
		return "", errors.Wrap(err, errors.ErrCodeInvalidInput, "list sessions").
			WithContext("dir", dir)
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), logExt) {
			names = append(names, e.Name())
		}
	}
	if len(names) == 0 {
		return "", errors.New(errors.ErrCodeInvalidInput, "no sessions logged").
			WithContext("dir", dir)
	}
	return filepath.Join(dir, sessionsDir, slices.Max(names)), nil
}

// ReadRecentEvents returns the last count events of a log file. Reading
// stops at the first line that is not an event.
func ReadRecentEvents(path string, count int) ([]Event, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInvalidInput, "open log").
			WithContext("path", path)
	}
	defer f.Close()

	var events []Event
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		var ev Event
		if err := json.Unmarshal(scanner.Bytes(), &ev); err != nil {
			break
		}
		events = append(events, ev)
	}
	if count >= 0 && len(events) > count {
		events = events[len(events)-count:]
	}
	return events, nil
}
