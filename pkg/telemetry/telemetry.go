// Package telemetry publishes toolkit events and counters. The layout
// solver, stylesheet registry, and container all report through a Hub so
// tools and tests can observe arrange passes, splitter drags, and popup
// traffic without reaching into internals.
package telemetry

import (
	"sync"
	"time"
)

// EventType identifies the kind of telemetry event.
type EventType string

const (
	EventLayoutArranged     EventType = "layout.arranged"
	EventSplitterDrag       EventType = "layout.splitter_drag"
	EventTrackCollapsed     EventType = "layout.collapse"
	EventTrackRestored      EventType = "layout.restore"
	EventStylesheetLoaded   EventType = "stylesheet.loaded"
	EventStylesheetReload   EventType = "stylesheet.reloaded"
	EventCommandBarOverflow EventType = "commandbar.overflow"
	EventPopupOpened        EventType = "container.popup_opened"
	EventPopupClosed        EventType = "container.popup_closed"
	EventWidgetCreated      EventType = "widget.created"
	EventWidgetDestroyed    EventType = "widget.destroyed"
)

// Event describes toolkit telemetry that tools and tests can consume.
type Event struct {
	Type      EventType      `json:"type"`
	Timestamp time.Time      `json:"timestamp"`
	Source    string         `json:"source,omitempty"`
	Data      map[string]any `json:"data,omitempty"`
}

// Hub fan-outs telemetry events to any number of subscribers and counts
// every published event type in its metric set.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[chan Event]struct{}
	closed      bool
	metrics     *Metrics
}

// NewHub constructs a telemetry hub.
func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[chan Event]struct{}),
		metrics:     newMetrics(),
	}
}

// Metrics returns the hub's metric set, nil on a nil Hub.
func (h *Hub) Metrics() *Metrics {
	if h == nil {
		return nil
	}
	return h.metrics
}

// Publish notifies all subscribers of an event. Non-blocking; drops if a
// subscriber's buffer is full. Safe on a nil Hub so callers can leave
// telemetry unwired.
func (h *Hub) Publish(event Event) {
	if h == nil {
		return
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.closed {
		return
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	h.metrics.Counter(string(event.Type)).Inc()
	for ch := range h.subscribers {
		select {
		case ch <- event:
		default:
			// Drop if subscriber can't keep up; a stalled observer must not
			// block the frame.
		}
	}
}

// Emit is shorthand for publishing an event with a source and data map.
func (h *Hub) Emit(t EventType, source string, data map[string]any) {
	h.Publish(Event{Type: t, Source: source, Data: data})
}

// Subscribe returns a channel that will receive future events and a
// cleanup func.
func (h *Hub) Subscribe() (<-chan Event, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		empty := make(chan Event)
		close(empty)
		return empty, func() {}
	}
	ch := make(chan Event, 64)
	h.subscribers[ch] = struct{}{}
	unsubscribe := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if _, ok := h.subscribers[ch]; ok {
			delete(h.subscribers, ch)
			close(ch)
		}
	}
	return ch, unsubscribe
}

// Close unsubscribes all listeners and prevents future publications.
func (h *Hub) Close() {
	if h == nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	for ch := range h.subscribers {
		close(ch)
		delete(h.subscribers, ch)
	}
}
