// Package logging writes structured JSONL debug logs to disk. A terminal
// toolkit cannot log to stderr while it owns the screen, so events go to
// per-session files under the log directory instead.
package logging

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/odvcencio/slate/pkg/telemetry"
)

// Level represents log severity.
type Level string

const (
	LevelDebug Level = "debug"
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
)

// Category represents the subsystem generating the log.
type Category string

const (
	CategoryLayout     Category = "layout"
	CategoryStylesheet Category = "stylesheet"
	CategoryWidget     Category = "widget"
	CategoryInput      Category = "input"
	CategoryPaint      Category = "paint"
	CategoryConfig     Category = "config"
	CategoryHost       Category = "host"
)

// Event is one structured log record.
type Event struct {
	Timestamp time.Time      `json:"timestamp"`
	Level     Level          `json:"level"`
	Category  Category       `json:"category"`
	EventType string         `json:"type"`
	SessionID string         `json:"session_id,omitempty"`
	Details   map[string]any `json:"details,omitempty"`
	Message   string         `json:"message,omitempty"`
}

// Logger writes structured events to a per-session file, duplicating
// errors into a shared errors file.
type Logger struct {
	sessionID   string
	baseDir     string
	sessionFile *os.File
	errorFile   *os.File
	mu          sync.Mutex
	minLevel    Level

	unsubscribe func()
}

// NewLogger creates a logger rooted at baseDir. An empty sessionID gets a
// fresh ULID.
func NewLogger(baseDir, sessionID string) (*Logger, error) {
	if sessionID == "" {
		sessionID = ulid.Make().String()
	}
	sessionsDir := filepath.Join(baseDir, "sessions")
	if err := os.MkdirAll(sessionsDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	sessionFile, err := os.OpenFile(
		filepath.Join(sessionsDir, sessionID+".jsonl"),
		os.O_CREATE|os.O_WRONLY|os.O_APPEND,
		0644,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to open session log: %w", err)
	}

	errorFile, err := os.OpenFile(
		filepath.Join(baseDir, "errors.jsonl"),
		os.O_CREATE|os.O_WRONLY|os.O_APPEND,
		0644,
	)
	if err != nil {
		sessionFile.Close()
		return nil, fmt.Errorf("failed to open error log: %w", err)
	}

	return &Logger{
		sessionID:   sessionID,
		baseDir:     baseDir,
		sessionFile: sessionFile,
		errorFile:   errorFile,
		minLevel:    LevelInfo,
	}, nil
}

// SessionID returns the session this logger writes under.
func (l *Logger) SessionID() string { return l.sessionID }

// SetMinLevel sets the minimum log level.
func (l *Logger) SetMinLevel(level Level) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.minLevel = level
}

// Log writes an event to the session file and, for errors, the shared
// error file.
func (l *Logger) Log(event Event) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	if event.SessionID == "" {
		event.SessionID = l.sessionID
	}
	if !l.shouldLog(event.Level) {
		return nil
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}
	data = append(data, '\n')

	if l.sessionFile != nil {
		if _, err := l.sessionFile.Write(data); err != nil {
			return fmt.Errorf("failed to write to session log: %w", err)
		}
	}
	if event.Level == LevelError && l.errorFile != nil {
		if _, err := l.errorFile.Write(data); err != nil {
			return fmt.Errorf("failed to write to error log: %w", err)
		}
	}
	return nil
}

func (l *Logger) shouldLog(level Level) bool {
	levels := map[Level]int{
		LevelDebug: 0,
		LevelInfo:  1,
		LevelWarn:  2,
		LevelError: 3,
	}
	return levels[level] >= levels[l.minLevel]
}

// Debug logs a debug event.
func (l *Logger) Debug(category Category, eventType, message string, details map[string]any) error {
	return l.Log(Event{Level: LevelDebug, Category: category, EventType: eventType, Message: message, Details: details})
}

// Info logs an info event.
func (l *Logger) Info(category Category, eventType, message string, details map[string]any) error {
	return l.Log(Event{Level: LevelInfo, Category: category, EventType: eventType, Message: message, Details: details})
}

// Warn logs a warning event.
func (l *Logger) Warn(category Category, eventType, message string, details map[string]any) error {
	return l.Log(Event{Level: LevelWarn, Category: category, EventType: eventType, Message: message, Details: details})
}

// Error logs an error event.
func (l *Logger) Error(category Category, eventType, message string, details map[string]any) error {
	return l.Log(Event{Level: LevelError, Category: category, EventType: eventType, Message: message, Details: details})
}

// Attach subscribes the logger to a telemetry hub so every toolkit event
// lands in the session log. Events record at info level so they clear the
// default minimum. Detach with Close.
func (l *Logger) Attach(hub *telemetry.Hub) {
	if hub == nil {
		return
	}
	ch, unsubscribe := hub.Subscribe()
	l.mu.Lock()
	l.unsubscribe = unsubscribe
	l.mu.Unlock()

	go func() {
		for ev := range ch {
			l.Log(Event{
				Timestamp: ev.Timestamp,
				Level:     LevelInfo,
				Category:  categoryFor(ev.Type),
				EventType: string(ev.Type),
				Message:   ev.Source,
				Details:   ev.Data,
			})
		}
	}()
}

func categoryFor(t telemetry.EventType) Category {
	switch t {
	case telemetry.EventStylesheetLoaded, telemetry.EventStylesheetReload:
		return CategoryStylesheet
	case telemetry.EventWidgetCreated, telemetry.EventWidgetDestroyed:
		return CategoryWidget
	case telemetry.EventPopupOpened, telemetry.EventPopupClosed:
		return CategoryHost
	default:
		return CategoryLayout
	}
}

// Close detaches from telemetry and closes the log files.
func (l *Logger) Close() error {
	l.mu.Lock()
	unsubscribe := l.unsubscribe
	l.unsubscribe = nil
	l.mu.Unlock()
	if unsubscribe != nil {
		unsubscribe()
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	var firstErr error
	if l.sessionFile != nil {
		if err := l.sessionFile.Close(); err != nil {
			firstErr = err
		}
		l.sessionFile = nil
	}
	if l.errorFile != nil {
		if err := l.errorFile.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		l.errorFile = nil
	}
	return firstErr
}
