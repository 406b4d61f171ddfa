package stylesheet

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odvcencio/slate/pkg/property"
	"github.com/odvcencio/slate/pkg/telemetry"
)

func TestParseBasics(t *testing.T) {
	rules := parse(`
		/* toolbar chrome */
		.btn {
			color: #FFFFFF;
			padding: 4;
		}
		.btn:hover { color: #000000 }
		.btn, .tab { margin: 2 }
	`)

	require.Contains(t, rules, "btn")
	require.Contains(t, rules, "tab")
	assert.Equal(t, "#FFFFFF", rules["btn"]["color"])
	assert.Equal(t, "4", rules["btn"]["padding"])
	assert.Equal(t, "#000000", rules["btn"]["color:hover"])
	assert.Equal(t, "2", rules["btn"]["margin"])
	assert.Equal(t, "2", rules["tab"]["margin"])
}

func TestParseMalformedFragments(t *testing.T) {
	tests := []struct {
		name   string
		source string
	}{
		{"no_braces", ".btn color: red;"},
		{"empty_body", ".btn { }"},
		{"unknown_pseudo_state", ".btn:blink { color: red }"},
		{"bare_colon_selector", ":hover { color: red }"},
		{"declaration_missing_value", ".btn { color: }"},
		{"unterminated_comment", ".btn /* { color: red }"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rules := parse(tt.source)
			assert.Empty(t, rules["btn"])
		})
	}
}

func TestParseLastValueWins(t *testing.T) {
	rules := parse(`.btn { color: red; color: blue }`)
	assert.Equal(t, "blue", rules["btn"]["color"])
}

func TestParseSelectorWithoutDot(t *testing.T) {
	rules := parse(`toolbar { height: 20 }`)
	assert.Equal(t, "20", rules["toolbar"]["height"])
}

func TestLoadMergesAcrossCalls(t *testing.T) {
	reg := New(nil)
	reg.Load(`.btn { color: red; padding: 4 }`, "first")
	reg.Load(`.btn { color: blue }`, "second")

	props := reg.Class("btn")
	assert.Equal(t, "blue", props["color"])
	assert.Equal(t, "4", props["padding"])
}

func TestAddClassAppliesProperties(t *testing.T) {
	reg := New(nil)
	reg.Load(`.btn { color: #FFFFFF } .btn:hover { color: #000000 }`, "test")

	s := property.NewStore()
	reg.AddClass(s, "btn")

	assert.Equal(t, "btn", s.Get("class", ""))
	assert.Equal(t, "#FFFFFF", s.ResolveStyle("color", "", "", "", property.Normal))

	hover := property.State{Enabled: true, Hovered: true}
	assert.Equal(t, "#000000", s.ResolveStyle("color", "", "", "", hover))
}

func TestAddClassSplitsOnWhitespace(t *testing.T) {
	reg := New(nil)
	reg.Load(`.btn { color: #FFFFFF } .primary { background-color: #0000FF }`, "test")

	s := property.NewStore()
	reg.AddClass(s, "btn  primary")

	// Both tokens join the set and both classes' declarations apply.
	assert.Equal(t, "btn primary", s.Get("class", ""))
	assert.Equal(t, "#FFFFFF", s.Get("color", ""))
	assert.Equal(t, "#0000FF", s.Get("background-color", ""))
	assert.True(t, reg.HasClass(s, "btn primary"))
	assert.False(t, reg.HasClass(s, "btn missing"))

	reg.RemoveClass(s, "primary btn")
	assert.Equal(t, "", s.Get("class", ""))
}

func TestClassSetSortedAndDeduplicated(t *testing.T) {
	reg := New(nil)
	s := property.NewStore()

	reg.AddClass(s, "zeta")
	reg.AddClass(s, "alpha")
	reg.AddClass(s, "alpha")
	assert.Equal(t, "alpha zeta", s.Get("class", ""))

	assert.True(t, reg.HasClass(s, "zeta"))
	reg.RemoveClass(s, "zeta")
	assert.Equal(t, "alpha", s.Get("class", ""))
	assert.False(t, reg.HasClass(s, "zeta"))
}

func TestRemoveClassLeavesStaleValues(t *testing.T) {
	reg := New(nil)
	reg.Load(`.danger { color: red }`, "test")

	s := property.NewStore()
	reg.AddClass(s, "danger")
	reg.RemoveClass(s, "danger")

	// Values applied by the class persist after removal until something
	// overwrites them.
	assert.Equal(t, "red", s.Get("color", ""))
	assert.Equal(t, "", s.Get("class", ""))
}

func TestLaterClassWinsOnConflict(t *testing.T) {
	reg := New(nil)
	reg.Load(`.a { color: red } .b { color: blue }`, "test")

	s := property.NewStore()
	reg.AddClass(s, "b")
	reg.AddClass(s, "a")

	// Application order is the sorted set, so "b" applies after "a"
	// regardless of insertion order.
	assert.Equal(t, "blue", s.Get("color", ""))
}

func TestToggleClass(t *testing.T) {
	reg := New(nil)
	s := property.NewStore()

	reg.ToggleClass(s, "on")
	assert.True(t, reg.HasClass(s, "on"))
	reg.ToggleClass(s, "on")
	assert.False(t, reg.HasClass(s, "on"))
}

func TestReapplyPicksUpNewRules(t *testing.T) {
	reg := New(nil)
	s := property.NewStore()
	reg.AddClass(s, "btn")

	reg.Load(`.btn { color: green }`, "late")
	assert.Equal(t, "", s.Get("color", ""))

	reg.Reapply(s)
	assert.Equal(t, "green", s.Get("color", ""))
}

func TestLoadPublishesTelemetry(t *testing.T) {
	hub := telemetry.NewHub()
	defer hub.Close()
	ch, unsubscribe := hub.Subscribe()
	defer unsubscribe()

	reg := New(hub)
	n := reg.Load(`.a { x: 1 } .b { x: 2 }`, "inline")
	assert.Equal(t, 2, n)

	select {
	case ev := <-ch:
		assert.Equal(t, telemetry.EventStylesheetLoaded, ev.Type)
		assert.Equal(t, "inline", ev.Source)
		assert.Equal(t, 2, ev.Data["rules"])
	case <-time.After(time.Second):
		t.Fatal("no telemetry event")
	}
}

func TestLoadFileMissing(t *testing.T) {
	reg := New(nil)
	err := reg.LoadFile(filepath.Join(t.TempDir(), "absent.css"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestWatcherReloadsOnChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "theme.css")
	require.NoError(t, os.WriteFile(path, []byte(`.btn { color: red }`), 0o644))

	hub := telemetry.NewHub()
	defer hub.Close()
	reg := New(hub)

	w, err := NewWatcher(reg, hub)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, w.Watch(path))
	assert.Equal(t, "red", reg.Class("btn")["color"])

	require.NoError(t, os.WriteFile(path, []byte(`.btn { color: blue }`), 0o644))

	require.Eventually(t, func() bool {
		return reg.Class("btn")["color"] == "blue"
	}, 5*time.Second, 20*time.Millisecond)
}
