// Package widget provides the widget model for Slate: the Widget
// interface cells arrange, a Base with shared behavior to embed in
// concrete widgets, and a factory that creates widgets by kind name.
package widget

import (
	"github.com/odvcencio/slate/pkg/backend"
	"github.com/odvcencio/slate/pkg/property"
)

// Rect is a rectangle in device pixels.
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether the point is inside the rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Inset shrinks the rectangle by n on every side.
func (r Rect) Inset(n int) Rect {
	r.X += n
	r.Y += n
	r.W -= 2 * n
	r.H -= 2 * n
	if r.W < 0 {
		r.W = 0
	}
	if r.H < 0 {
		r.H = 0
	}
	return r
}

// Widget is an element a cell can arrange, paint, and route input to.
type Widget interface {
	// Kind returns the element kind used for style resolution ("btn",
	// "label", ...).
	Kind() string

	// ID returns the instance id assigned at creation.
	ID() string
	SetID(string)

	// Create realizes the widget on a host surface. Must be called before
	// the widget is painted or receives input.
	Create(host backend.Host) error

	// Host returns the surface the widget was created on, nil before
	// Create.
	Host() backend.Host

	Bounds() Rect
	SetBounds(Rect)

	// Store returns the widget's property store. Never nil.
	Store() *property.Store

	Visible() bool
	SetVisible(bool)
	Enabled() bool
	SetEnabled(bool)

	Focusable() bool
	Focused() bool
	SetFocused(bool)

	// PreferredSize returns the widget's natural size in device pixels.
	PreferredSize() (width, height int)

	// HandleEvent processes an input event, reporting whether it was
	// consumed.
	HandleEvent(backend.Event) bool

	// Paint draws the widget into its bounds on the canvas.
	Paint(backend.Canvas)

	// On registers a handler for a named widget event.
	On(event string, fn func())

	// Fire invokes all handlers registered for the event.
	Fire(event string)

	// Destroy fires EventDestroy and releases handlers. Idempotent.
	Destroy()
}

// Widget event names.
const (
	EventClick   = "click"
	EventFocus   = "focus"
	EventBlur    = "blur"
	EventDestroy = "destroy"
)
