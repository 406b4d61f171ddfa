// Package container ties a host window to the rest of the toolkit: it
// owns the root layout, the top of the property cascade, the widget
// registry with its tab order, an optional paint-only overlay, and the
// glue between host events and layout input.
package container

import (
	"errors"

	"github.com/odvcencio/slate/pkg/backend"
	"github.com/odvcencio/slate/pkg/layout"
	"github.com/odvcencio/slate/pkg/metric"
	"github.com/odvcencio/slate/pkg/property"
	"github.com/odvcencio/slate/pkg/stylesheet"
	"github.com/odvcencio/slate/pkg/telemetry"
	"github.com/odvcencio/slate/pkg/widget"
)

// Config carries the collaborators a container wires together. Every
// field is optional; zero values get sensible defaults.
type Config struct {
	Title   string
	Styles  *stylesheet.Registry
	Factory *widget.Factory
	Hub     *telemetry.Hub

	// Scale overrides the host's DPI scale when positive.
	Scale float64
}

// Container is one window: a root layout over a backend host.
type Container struct {
	host    backend.Host
	scaler  metric.Scaler
	title   string
	styles  *stylesheet.Registry
	factory *widget.Factory
	hub     *telemetry.Hub
	store   *property.Store

	root       *layout.Layout
	registered []widget.Widget
	tabOrder   []widget.Widget
	focusIdx   int
	overlay    widget.Widget

	popup      bool
	modalDepth int
	destroyed  bool
}

var _ layout.Surface = (*Container)(nil)

// New creates a container over the host and installs its event handler.
func New(host backend.Host, cfg Config) *Container {
	scale := cfg.Scale
	if scale <= 0 {
		scale = host.ScaleFactor()
	}
	c := &Container{
		host:     host,
		scaler:   metric.NewScaler(scale),
		title:    cfg.Title,
		styles:   cfg.Styles,
		factory:  cfg.Factory,
		hub:      cfg.Hub,
		store:    property.NewStore(),
		focusIdx: -1,
	}
	if c.styles == nil {
		c.styles = stylesheet.New(cfg.Hub)
	}
	if c.factory == nil {
		c.factory = widget.NewFactory(cfg.Hub)
	}
	host.SetHandler(c.handleEvent)
	return c
}

// Host returns the backend host.
func (c *Container) Host() backend.Host { return c.host }

// Scaler returns the DPI scaler derived from the host.
func (c *Container) Scaler() metric.Scaler { return c.scaler }

// Telemetry returns the hub, nil when unwired.
func (c *Container) Telemetry() *telemetry.Hub { return c.hub }

// Styles returns the stylesheet registry.
func (c *Container) Styles() *stylesheet.Registry { return c.styles }

// Factory returns the widget factory.
func (c *Container) Factory() *widget.Factory { return c.factory }

// Store returns the container's property store, the root of the style
// cascade for everything inside.
func (c *Container) Store() *property.Store { return c.store }

// SetProp sets a container property and returns the container for
// chaining.
func (c *Container) SetProp(key, value string) *Container {
	c.store.Set(key, value)
	c.host.Invalidate()
	return c
}

// Title returns the window title.
func (c *Container) Title() string { return c.title }

// Register tracks a widget for teardown and appends it to the tab order.
// The layout calls this as widgets join cells.
func (c *Container) Register(w widget.Widget) {
	for _, cur := range c.registered {
		if cur == w {
			return
		}
	}
	c.registered = append(c.registered, w)
	c.tabOrder = append(c.tabOrder, w)
	c.factory.Adopt(w)
}

// Unregister forgets a widget without destroying it.
func (c *Container) Unregister(w widget.Widget) {
	for i, cur := range c.registered {
		if cur == w {
			c.registered = append(c.registered[:i], c.registered[i+1:]...)
			break
		}
	}
	for i, cur := range c.tabOrder {
		if cur == w {
			c.tabOrder = append(c.tabOrder[:i], c.tabOrder[i+1:]...)
			if c.focusIdx >= len(c.tabOrder) {
				c.focusIdx = len(c.tabOrder) - 1
			}
			break
		}
	}
}

// CreateRootLayout replaces the root layout with a fresh grid. The new
// layout chains under the container's property store and is arranged to
// the current client size.
func (c *Container) CreateRootLayout(rows, cols int) *layout.Layout {
	if c.root != nil {
		c.root.Destroy()
	}
	c.root = layout.New(c, rows, cols)
	c.root.SetParentStore(c.store)
	w, h := c.host.ClientSize()
	c.root.Arrange(widget.Rect{W: w, H: h})
	return c.root
}

// RootLayout returns the root layout, nil before CreateRootLayout.
func (c *Container) RootLayout() *layout.Layout { return c.root }

// Resize re-arranges the root to the new client size and stretches the
// overlay over it.
func (c *Container) Resize(w, h int) {
	if c.root != nil {
		c.root.Arrange(widget.Rect{W: w, H: h})
	}
	if c.overlay != nil {
		c.overlay.SetBounds(widget.Rect{W: w, H: h})
	}
}

// Redraw paints the frame: background, root layout, then the overlay on
// top.
func (c *Container) Redraw() {
	cv := c.host.Canvas()
	if cv == nil {
		return
	}
	w, h := cv.Size()
	bg := property.RGB{R: 0x40, G: 0x40, B: 0x40}
	if parsed, ok := property.ParseHexColor(c.store.Get("background-color", "")); ok {
		bg = parsed
	}
	cv.FillRect(0, 0, w, h, backend.DefaultStyle().Background(backend.ColorOf(bg)))

	if c.root != nil {
		c.root.Paint(cv)
	}
	if c.overlay != nil && c.overlay.Visible() {
		c.overlay.Paint(cv)
	}
	c.host.Flush()
}

// SetOverlay installs a paint-only widget stretched over the whole
// client area. It draws above everything and receives no input. A
// previous overlay is destroyed; passing nil just removes it.
func (c *Container) SetOverlay(w widget.Widget) widget.Widget {
	if c.overlay != nil {
		c.factory.Destroy(c.overlay)
		c.overlay = nil
	}
	if w == nil {
		c.host.Invalidate()
		return nil
	}
	if err := w.Create(c.host); err != nil {
		return nil
	}
	w.Store().SetParent(c.store)
	c.factory.Adopt(w)
	cw, ch := c.host.ClientSize()
	w.SetBounds(widget.Rect{W: cw, H: ch})
	c.overlay = w
	c.host.Invalidate()
	return w
}

// Overlay returns the current overlay, nil if none.
func (c *Container) Overlay() widget.Widget { return c.overlay }

// CycleFocus moves keyboard focus to the next (or previous) focusable
// widget in registration order, wrapping around.
func (c *Container) CycleFocus(forward bool) {
	if len(c.tabOrder) == 0 {
		return
	}
	step := 1
	if !forward {
		step = -1
	}
	n := len(c.tabOrder)
	idx := c.focusIdx
	for range c.tabOrder {
		idx += step
		if idx >= n {
			idx = 0
		}
		if idx < 0 {
			idx = n - 1
		}
		if !c.tabOrder[idx].Focusable() {
			continue
		}
		if c.focusIdx >= 0 && c.focusIdx < n {
			c.tabOrder[c.focusIdx].SetFocused(false)
		}
		c.focusIdx = idx
		c.tabOrder[idx].SetFocused(true)
		c.host.Invalidate()
		return
	}
}

// Focused returns the widget holding keyboard focus, nil if none.
func (c *Container) Focused() widget.Widget {
	if c.focusIdx < 0 || c.focusIdx >= len(c.tabOrder) {
		return nil
	}
	w := c.tabOrder[c.focusIdx]
	if !w.Focused() {
		return nil
	}
	return w
}

// Show arranges to the current client size and requests the first paint.
func (c *Container) Show() {
	w, h := c.host.ClientSize()
	c.Resize(w, h)
	c.host.Invalidate()
}

// Run shows the container and blocks in the host's event loop until Quit
// or Close.
func (c *Container) Run() error {
	if c.host == nil {
		return errors.New("container: no host")
	}
	c.Show()
	return c.host.Run()
}

// DoModal shows the container and blocks in a nested event loop until
// Close unwinds it. Callers already inside Run use this for dialogs.
func (c *Container) DoModal() {
	c.Show()
	c.modalDepth++
	c.host.RunNested()
	if c.modalDepth > 0 {
		c.modalDepth--
	}
}

// Close ends the container's loop: the innermost modal level if one is
// running, otherwise the whole host loop.
func (c *Container) Close() {
	if c.modalDepth > 0 || c.popup {
		c.host.ExitNested()
		return
	}
	c.host.Quit()
}

// NewPopup opens a popup container anchored at (x, y) in the parent's
// client space. The position is clamped so the popup stays inside the
// parent. The popup shares the parent's styles, factory, and telemetry,
// and its property store chains under the parent's so the cascade
// reaches into it.
func (c *Container) NewPopup(x, y, w, h int) (*Container, error) {
	pw, ph := c.host.ClientSize()
	if x+w > pw {
		x = pw - w
	}
	if x < 0 {
		x = 0
	}
	if y+h > ph {
		y = ph - h
	}
	if y < 0 {
		y = 0
	}

	host, err := c.host.OpenPopup(x, y, w, h)
	if err != nil {
		return nil, err
	}
	p := New(host, Config{
		Styles:  c.styles,
		Factory: c.factory,
		Hub:     c.hub,
	})
	p.popup = true
	p.store.SetParent(c.store)
	return p, nil
}

// CenterRect returns a w by h rectangle centered in the client area. The
// origin never goes negative, so oversized rectangles pin to the top left.
func (c *Container) CenterRect(w, h int) widget.Rect {
	cw, ch := c.host.ClientSize()
	x := (cw - w) / 2
	y := (ch - h) / 2
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}
	return widget.Rect{X: x, Y: y, W: w, H: h}
}

// NewCenteredPopup opens a popup centered over the parent.
func (c *Container) NewCenteredPopup(w, h int) (*Container, error) {
	r := c.CenterRect(w, h)
	return c.NewPopup(r.X, r.Y, w, h)
}

// ShowPopup runs a popup modally: it blocks until a click outside,
// Escape, or Close dismisses it. On a non-popup container it behaves
// like Show.
func (c *Container) ShowPopup() {
	if !c.popup {
		c.Show()
		return
	}
	c.Show()
	c.hub.Emit(telemetry.EventPopupOpened, "container", nil)
	c.host.RunNested()
	c.hub.Emit(telemetry.EventPopupClosed, "container", nil)
}

// handleEvent is the host callback: paints, resizes, focus traversal,
// and input routing into the layout tree.
func (c *Container) handleEvent(ev backend.Event) {
	switch e := ev.(type) {
	case backend.PaintEvent:
		c.Redraw()
	case backend.ResizeEvent:
		c.Resize(e.Width, e.Height)
		c.host.Invalidate()
	case backend.QuitEvent:
		c.Close()
	case backend.KeyEvent:
		if c.popup && e.Key == backend.KeyEscape {
			c.Close()
			return
		}
		if e.Key == backend.KeyTab {
			c.CycleFocus(!e.Shift)
			return
		}
		if f := c.Focused(); f != nil && f.HandleEvent(ev) {
			c.host.Invalidate()
			return
		}
		if c.root != nil && c.root.HandleEvent(ev) {
			c.host.Invalidate()
		}
	case backend.PointerEvent:
		if c.popup && e.Action == backend.PointerPress && e.X < 0 {
			// The host reports presses outside a popup with negative
			// coordinates; they dismiss it.
			c.Close()
			return
		}
		if c.root != nil && c.root.HandleEvent(ev) {
			c.host.Invalidate()
		}
	}
}

// Destroy tears down the root layout and every registered widget. The
// widget list is swapped out first so Unregister calls from destructors
// cannot invalidate the iteration. The host itself stays with its owner.
func (c *Container) Destroy() {
	if c.destroyed {
		return
	}
	c.destroyed = true

	// Snapshot first: tearing down the layout unregisters widgets, and
	// that must not invalidate this iteration.
	toDestroy := c.registered
	c.registered = nil
	c.tabOrder = nil
	c.focusIdx = -1

	if c.overlay != nil {
		c.factory.Destroy(c.overlay)
		c.overlay = nil
	}
	if c.root != nil {
		c.root.Destroy()
		c.root = nil
	}
	for _, w := range toDestroy {
		c.factory.Destroy(w)
	}
	// Popup hosts belong to their container; top-level hosts belong to
	// whoever opened them.
	if c.popup {
		c.host.Destroy()
	}
}
