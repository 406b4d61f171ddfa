package widget

import (
	"fmt"
	"sort"
	"sync"

	"github.com/oklog/ulid/v2"

	"github.com/odvcencio/slate/pkg/telemetry"
)

// Constructor builds a widget of one kind.
type Constructor func() Widget

// liveWidgetsGauge tracks how many widgets exist, hub-wide.
const liveWidgetsGauge = "widget.live"

// Factory creates widgets by kind name, assigns instance ids, and tracks
// every live widget so a container can tear them all down at once.
type Factory struct {
	mu    sync.Mutex
	ctors map[string]Constructor
	live  map[string]Widget
	hub   *telemetry.Hub
}

// NewFactory creates a factory with the standard kinds registered. hub
// may be nil.
func NewFactory(hub *telemetry.Hub) *Factory {
	f := &Factory{
		ctors: make(map[string]Constructor),
		live:  make(map[string]Widget),
		hub:   hub,
	}
	f.Register("btn", func() Widget { return NewButton("") })
	f.Register("label", func() Widget { return NewLabel("") })
	f.Register("panel", func() Widget { return NewPanel() })
	return f
}

// Register adds or replaces a constructor for a kind.
func (f *Factory) Register(kind string, ctor Constructor) {
	f.mu.Lock()
	f.ctors[kind] = ctor
	f.mu.Unlock()
}

// Kinds returns the registered kind names, sorted.
func (f *Factory) Kinds() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.ctors))
	for k := range f.ctors {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// New creates a widget of the given kind with a fresh instance id.
func (f *Factory) New(kind string) (Widget, error) {
	f.mu.Lock()
	ctor, ok := f.ctors[kind]
	f.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("widget factory: unknown kind %q", kind)
	}

	w := ctor()
	id := ulid.Make().String()
	w.SetID(id)

	f.mu.Lock()
	f.live[id] = w
	live := len(f.live)
	f.mu.Unlock()

	f.hub.Metrics().Gauge(liveWidgetsGauge).Set(int64(live))
	f.hub.Emit(telemetry.EventWidgetCreated, kind, map[string]any{"id": id})
	return w, nil
}

// Adopt registers an externally constructed widget with the factory,
// assigning an id if it has none.
func (f *Factory) Adopt(w Widget) {
	if w == nil {
		return
	}
	if w.ID() == "" {
		w.SetID(ulid.Make().String())
	}
	f.mu.Lock()
	f.live[w.ID()] = w
	live := len(f.live)
	f.mu.Unlock()
	f.hub.Metrics().Gauge(liveWidgetsGauge).Set(int64(live))
}

// Destroy destroys one widget and forgets it. The destroyed event fires
// only when the widget was still tracked, so the overlapping teardown
// paths (cell teardown, container teardown, direct calls) report each
// widget exactly once.
func (f *Factory) Destroy(w Widget) {
	if w == nil {
		return
	}
	f.mu.Lock()
	_, wasLive := f.live[w.ID()]
	delete(f.live, w.ID())
	live := len(f.live)
	f.mu.Unlock()

	w.Destroy()
	if wasLive {
		f.hub.Metrics().Gauge(liveWidgetsGauge).Set(int64(live))
		f.hub.Emit(telemetry.EventWidgetDestroyed, w.Kind(), map[string]any{"id": w.ID()})
	}
}

// DestroyAll destroys every live widget.
func (f *Factory) DestroyAll() {
	f.mu.Lock()
	widgets := make([]Widget, 0, len(f.live))
	for _, w := range f.live {
		widgets = append(widgets, w)
	}
	f.live = make(map[string]Widget)
	f.mu.Unlock()

	f.hub.Metrics().Gauge(liveWidgetsGauge).Set(0)
	for _, w := range widgets {
		w.Destroy()
		f.hub.Emit(telemetry.EventWidgetDestroyed, w.Kind(), map[string]any{"id": w.ID()})
	}
}

// LiveCount returns the number of widgets created and not yet destroyed.
func (f *Factory) LiveCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.live)
}
