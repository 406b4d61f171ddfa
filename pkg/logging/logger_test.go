package logging

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odvcencio/slate/pkg/telemetry"
)

func readEvents(t *testing.T, path string) []Event {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var out []Event
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var ev Event
		require.NoError(t, json.Unmarshal(sc.Bytes(), &ev))
		out = append(out, ev)
	}
	return out
}

func TestLoggerWritesSessionFile(t *testing.T) {
	dir := t.TempDir()
	l, err := NewLogger(dir, "test-session")
	require.NoError(t, err)
	defer l.Close()

	require.NoError(t, l.Info(CategoryLayout, "arrange", "root arranged", map[string]any{"w": 300}))

	events := readEvents(t, filepath.Join(dir, "sessions", "test-session.jsonl"))
	require.Len(t, events, 1)
	assert.Equal(t, LevelInfo, events[0].Level)
	assert.Equal(t, CategoryLayout, events[0].Category)
	assert.Equal(t, "test-session", events[0].SessionID)
	assert.False(t, events[0].Timestamp.IsZero())
}

func TestErrorsDuplicatedToErrorFile(t *testing.T) {
	dir := t.TempDir()
	l, err := NewLogger(dir, "s1")
	require.NoError(t, err)
	defer l.Close()

	require.NoError(t, l.Error(CategoryStylesheet, "load_failed", "bad file", nil))
	require.NoError(t, l.Info(CategoryStylesheet, "loaded", "ok", nil))

	errors := readEvents(t, filepath.Join(dir, "errors.jsonl"))
	require.Len(t, errors, 1)
	assert.Equal(t, "load_failed", errors[0].EventType)
}

func TestMinLevelFilters(t *testing.T) {
	dir := t.TempDir()
	l, err := NewLogger(dir, "s2")
	require.NoError(t, err)
	defer l.Close()

	require.NoError(t, l.Debug(CategoryInput, "pointer", "dropped", nil))
	l.SetMinLevel(LevelDebug)
	require.NoError(t, l.Debug(CategoryInput, "pointer", "kept", nil))

	events := readEvents(t, filepath.Join(dir, "sessions", "s2.jsonl"))
	require.Len(t, events, 1)
	assert.Equal(t, "kept", events[0].Message)
}

func TestEmptySessionIDGetsGenerated(t *testing.T) {
	l, err := NewLogger(t.TempDir(), "")
	require.NoError(t, err)
	defer l.Close()
	assert.NotEmpty(t, l.SessionID())
}

func TestAttachLogsTelemetryEvents(t *testing.T) {
	dir := t.TempDir()
	l, err := NewLogger(dir, "s3")
	require.NoError(t, err)

	hub := telemetry.NewHub()
	defer hub.Close()
	l.Attach(hub)

	hub.Emit(telemetry.EventStylesheetLoaded, "registry", map[string]any{"rules": 3})

	// Bridged events must clear the default minimum level; nothing here
	// calls SetMinLevel.
	path := filepath.Join(dir, "sessions", "s3.jsonl")
	require.Eventually(t, func() bool {
		return len(readEvents(t, path)) == 1
	}, 2*time.Second, 10*time.Millisecond)

	events := readEvents(t, path)
	assert.Equal(t, LevelInfo, events[0].Level)
	assert.Equal(t, CategoryStylesheet, events[0].Category)
	assert.Equal(t, string(telemetry.EventStylesheetLoaded), events[0].EventType)

	require.NoError(t, l.Close())
}
