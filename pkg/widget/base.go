package widget

import (
	"github.com/odvcencio/slate/pkg/backend"
	"github.com/odvcencio/slate/pkg/property"
)

// Base provides common functionality for widgets. Embed it in widget
// structs to get default implementations; the zero value is visible,
// enabled, and unfocusable.
type Base struct {
	id        string
	host      backend.Host
	store     *property.Store
	bounds    Rect
	hidden    bool
	disabled  bool
	focusable bool
	focused   bool
	hovered   bool
	active    bool
	selected  bool
	handlers  map[string][]func()
	destroyed bool
}

// ID returns the instance id.
func (b *Base) ID() string { return b.id }

// SetID assigns the instance id. The factory calls this at creation.
func (b *Base) SetID(id string) { b.id = id }

// Create records the host surface.
func (b *Base) Create(host backend.Host) error {
	b.host = host
	return nil
}

// Host returns the surface the widget lives on.
func (b *Base) Host() backend.Host { return b.host }

// Bounds returns the widget's assigned bounds.
func (b *Base) Bounds() Rect { return b.bounds }

// SetBounds stores the assigned bounds and invalidates on change.
func (b *Base) SetBounds(r Rect) {
	if b.bounds != r {
		b.bounds = r
		b.Invalidate()
	}
}

// Store returns the property store, creating it on first use.
func (b *Base) Store() *property.Store {
	if b.store == nil {
		b.store = property.NewStore()
	}
	return b.store
}

// SetProp sets a style property and invalidates according to the
// property's registered kind.
func (b *Base) SetProp(key, value string) {
	if v, local := b.Store().Local(key); local && v == value {
		return
	}
	b.store.Set(key, value)
	switch PropertyKindOf(key) {
	case KindBehavior:
	default:
		// Layout changes also repaint; the container re-arranges on the
		// paint pass when a KindLayout property moved.
		b.Invalidate()
	}
}

// Visible reports whether the widget is shown.
func (b *Base) Visible() bool { return !b.hidden }

// SetVisible shows or hides the widget.
func (b *Base) SetVisible(v bool) {
	if b.hidden == !v {
		return
	}
	b.hidden = !v
	b.Invalidate()
}

// Enabled reports whether the widget accepts input.
func (b *Base) Enabled() bool { return !b.disabled }

// SetEnabled enables or disables input.
func (b *Base) SetEnabled(v bool) {
	if b.disabled == !v {
		return
	}
	b.disabled = !v
	b.Invalidate()
}

// Focusable reports whether the widget participates in focus traversal.
func (b *Base) Focusable() bool { return b.focusable && !b.hidden && !b.disabled }

// SetFocusable marks the widget as a focus stop.
func (b *Base) SetFocusable(v bool) { b.focusable = v }

// Focused reports whether the widget has focus.
func (b *Base) Focused() bool { return b.focused }

// SetFocused moves focus in or out, firing EventFocus/EventBlur.
func (b *Base) SetFocused(v bool) {
	if b.focused == v {
		return
	}
	b.focused = v
	if v {
		b.Fire(EventFocus)
	} else {
		b.Fire(EventBlur)
	}
	b.Invalidate()
}

// Hovered reports whether the pointer is over the widget.
func (b *Base) Hovered() bool { return b.hovered }

// SetHovered updates hover state, invalidating on change.
func (b *Base) SetHovered(v bool) {
	if b.hovered == v {
		return
	}
	b.hovered = v
	b.Invalidate()
}

// Active reports whether the widget is being pressed.
func (b *Base) Active() bool { return b.active }

// SetActive updates pressed state, invalidating on change.
func (b *Base) SetActive(v bool) {
	if b.active == v {
		return
	}
	b.active = v
	b.Invalidate()
}

// Selected reports selection state (tabs, toggles).
func (b *Base) Selected() bool { return b.selected }

// SetSelected updates selection state, invalidating on change.
func (b *Base) SetSelected(v bool) {
	if b.selected == v {
		return
	}
	b.selected = v
	b.Invalidate()
}

// StyleState assembles the interaction state used for style resolution.
func (b *Base) StyleState() property.State {
	return property.State{
		Selected: b.selected,
		Enabled:  !b.disabled,
		Hovered:  b.hovered,
		Active:   b.active,
	}
}

// Invalidate requests a repaint from the host, if created.
func (b *Base) Invalidate() {
	if b.host != nil {
		b.host.Invalidate()
	}
}

// HandleEvent ignores everything by default.
func (b *Base) HandleEvent(backend.Event) bool { return false }

// Paint draws nothing by default.
func (b *Base) Paint(backend.Canvas) {}

// On registers a handler for a named event.
func (b *Base) On(event string, fn func()) {
	if fn == nil {
		return
	}
	if b.handlers == nil {
		b.handlers = make(map[string][]func())
	}
	b.handlers[event] = append(b.handlers[event], fn)
}

// Fire invokes all handlers for the event in registration order.
func (b *Base) Fire(event string) {
	for _, fn := range b.handlers[event] {
		fn()
	}
}

// Destroy fires EventDestroy once and drops all handlers.
func (b *Base) Destroy() {
	if b.destroyed {
		return
	}
	b.destroyed = true
	b.Fire(EventDestroy)
	b.handlers = nil
	b.host = nil
}

// Destroyed reports whether Destroy has run.
func (b *Base) Destroyed() bool { return b.destroyed }
