package layout

import (
	"github.com/odvcencio/slate/pkg/backend"
	"github.com/odvcencio/slate/pkg/property"
	"github.com/odvcencio/slate/pkg/widget"
)

// StackMode controls how a cell arranges its widgets.
type StackMode int

const (
	// StackVertical stacks widgets top to bottom.
	StackVertical StackMode = iota
	// StackHorizontal stacks widgets left to right.
	StackHorizontal
	// StackTabbed shows one widget at a time, filling the cell.
	StackTabbed
	// StackCommandBar packs widgets left to right, moving what does not
	// fit into an overflow popup behind a trigger button.
	StackCommandBar
)

// Default widget extents in logical units for widgets without explicit
// dimension properties.
const (
	stackDefaultMain  = 80 // main-axis extent (width when horizontal)
	stackDefaultCross = 45 // cross-axis extent when not stretched
	wheelScrollStep   = 16
)

// Cell is one grid intersection. It owns a property store chained under
// the layout's store, so widgets added to the cell inherit the full
// cascade.
type Cell struct {
	surface Surface
	store   *property.Store
	bounds  widget.Rect
	mode    StackMode
	widgets []widget.Widget

	activeTab     int
	scrollEnabled bool
	scrollPos     int
	contentSize   int

	nested *Layout

	overflow []widget.Widget
	trigger  *widget.Button
}

func newCell(surface Surface, parent *property.Store) *Cell {
	c := &Cell{
		surface: surface,
		store:   property.NewStore(),
	}
	c.store.SetParent(parent)
	return c
}

// Store returns the cell's property store.
func (c *Cell) Store() *property.Store { return c.store }

// SetProp sets a cell property ("align-items", "justify-content",
// "overflow", ...) and re-lays out the widgets.
func (c *Cell) SetProp(key, value string) *Cell {
	c.store.Set(key, value)
	c.UpdateWidgets()
	return c
}

// Bounds returns the cell's solved rectangle in host coordinates.
func (c *Cell) Bounds() widget.Rect { return c.bounds }

func (c *Cell) setBounds(r widget.Rect) {
	if c.bounds == r {
		return
	}
	c.bounds = r
	c.UpdateWidgets()
}

// AddWidget realizes the widget on the cell's surface, chains its
// property store under the cell, and re-lays out.
func (c *Cell) AddWidget(w widget.Widget) widget.Widget {
	if w == nil {
		return nil
	}
	if err := w.Create(c.surface.Host()); err != nil {
		return nil
	}
	w.Store().SetParent(c.store)
	c.widgets = append(c.widgets, w)
	c.surface.Register(w)
	c.UpdateWidgets()
	return w
}

// RemoveWidget detaches the widget without destroying it.
func (c *Cell) RemoveWidget(w widget.Widget) {
	c.Detach(w)
	c.UpdateWidgets()
}

// Detach removes the widget from the cell, leaving it alive and
// unparented so another cell can adopt it.
func (c *Cell) Detach(w widget.Widget) {
	for i, cur := range c.widgets {
		if cur == w {
			c.widgets = append(c.widgets[:i], c.widgets[i+1:]...)
			c.surface.Unregister(w)
			w.Store().SetParent(nil)
			return
		}
	}
}

// Adopt takes ownership of an already-created widget, re-realizing it on
// this cell's surface.
func (c *Cell) Adopt(w widget.Widget) {
	if w == nil {
		return
	}
	if err := w.Create(c.surface.Host()); err != nil {
		return
	}
	w.Store().SetParent(c.store)
	c.widgets = append(c.widgets, w)
	c.surface.Register(w)
	c.UpdateWidgets()
}

// RemoveAll detaches and destroys every widget in the cell.
func (c *Cell) RemoveAll() {
	for _, w := range c.widgets {
		c.surface.Unregister(w)
		w.Destroy()
	}
	c.widgets = nil
	c.UpdateWidgets()
}

// Widgets returns the cell's widgets in stacking order.
func (c *Cell) Widgets() []widget.Widget {
	out := make([]widget.Widget, len(c.widgets))
	copy(out, c.widgets)
	return out
}

// WidgetAt returns the widget at index, nil if out of range.
func (c *Cell) WidgetAt(i int) widget.Widget {
	if i < 0 || i >= len(c.widgets) {
		return nil
	}
	return c.widgets[i]
}

// WidgetAtPoint returns the topmost visible widget containing the point.
func (c *Cell) WidgetAtPoint(x, y int) widget.Widget {
	for i := len(c.widgets) - 1; i >= 0; i-- {
		w := c.widgets[i]
		if w.Visible() && w.Bounds().Contains(x, y) {
			return w
		}
	}
	return nil
}

// CreateNested replaces the cell's content with a nested layout. A
// nested layout and a widget list are mutually exclusive; any existing
// widgets are destroyed.
func (c *Cell) CreateNested(rows, cols int) *Layout {
	for _, w := range c.widgets {
		c.surface.Unregister(w)
		w.Destroy()
	}
	c.widgets = nil
	c.nested = New(c.surface, rows, cols)
	c.nested.SetParentStore(c.store)
	c.UpdateWidgets()
	return c.nested
}

// Nested returns the nested layout, nil if none.
func (c *Cell) Nested() *Layout { return c.nested }

// SetStackMode changes how widgets stack and re-lays out.
func (c *Cell) SetStackMode(mode StackMode) {
	c.mode = mode
	c.UpdateWidgets()
}

// Mode returns the current stack mode.
func (c *Cell) Mode() StackMode { return c.mode }

// SetActiveTab selects the visible widget in tabbed mode.
func (c *Cell) SetActiveTab(index int) {
	c.activeTab = index
	c.UpdateWidgets()
}

// ActiveTab returns the selected tab index.
func (c *Cell) ActiveTab() int { return c.activeTab }

// EnableScroll turns scrolling on or off for stacked content.
func (c *Cell) EnableScroll(enable bool) {
	c.scrollEnabled = enable
	if !enable {
		c.scrollPos = 0
	}
	c.UpdateWidgets()
}

// ScrollBy moves the scroll position, clamped to the content range.
func (c *Cell) ScrollBy(delta int) {
	if !c.scrollEnabled {
		return
	}
	viewport := c.bounds.H
	if c.mode == StackHorizontal {
		viewport = c.bounds.W
	}
	maxScroll := c.contentSize - viewport
	if maxScroll < 0 {
		maxScroll = 0
	}
	c.scrollPos += delta
	if c.scrollPos < 0 {
		c.scrollPos = 0
	}
	if c.scrollPos > maxScroll {
		c.scrollPos = maxScroll
	}
	c.UpdateWidgets()
}

// ScrollPos returns the current scroll offset.
func (c *Cell) ScrollPos() int { return c.scrollPos }

// OverflowWidgets returns the widgets that did not fit the command bar.
func (c *Cell) OverflowWidgets() []widget.Widget {
	out := make([]widget.Widget, len(c.overflow))
	copy(out, c.overflow)
	return out
}

// OverflowTrigger returns the trigger button, non-nil only while some
// widgets are overflowed.
func (c *Cell) OverflowTrigger() *widget.Button { return c.trigger }

// UpdateWidgets re-lays out the cell's content inside its bounds.
func (c *Cell) UpdateWidgets() {
	if c.nested != nil {
		c.arrangeNested()
		return
	}
	if len(c.widgets) == 0 {
		return
	}

	switch {
	case c.mode == StackCommandBar:
		c.layoutCommandBar()
	case c.mode == StackTabbed:
		c.layoutTabbed()
	case len(c.widgets) == 1 && !c.scrollEnabled:
		c.layoutSingle()
	default:
		c.layoutStack()
	}
}

func (c *Cell) arrangeNested() {
	contentW, contentH := c.bounds.W, c.bounds.H
	offX, offY := 0, 0

	if c.scrollEnabled {
		minW, minH := c.nested.MinimumSize()
		if c.mode == StackHorizontal {
			contentW = max(contentW, minW)
			c.contentSize = contentW
			offX = -c.scrollPos
		} else {
			contentH = max(contentH, minH)
			c.contentSize = contentH
			offY = -c.scrollPos
		}
	}
	c.nested.Arrange(widget.Rect{
		X: c.bounds.X + offX,
		Y: c.bounds.Y + offY,
		W: contentW,
		H: contentH,
	})
}

func (c *Cell) layoutTabbed() {
	for i, w := range c.widgets {
		if i == c.activeTab {
			w.SetVisible(true)
			w.SetBounds(c.bounds)
		} else {
			w.SetVisible(false)
		}
	}
}

// layoutSingle sizes a lone widget by its dimension properties; with no
// explicit size it stretches to fill the cell.
func (c *Cell) layoutSingle() {
	w := c.widgets[0]
	sc := c.surface.Scaler()
	scale := sc.Px

	childW := c.bounds.W
	childH := c.bounds.H
	widthProp := w.Store().Get("width", "")
	heightProp := w.Store().Get("height", "")
	align := w.Store().Get("align-items", "normal")

	if reqW := property.ParseDimension(widthProp, c.bounds.W, scale); reqW >= 0 {
		childW = reqW
	}
	if reqH := property.ParseDimension(heightProp, c.bounds.H, scale); reqH >= 0 {
		childH = reqH
	}

	x := 0
	switch align {
	case "center":
		x = (c.bounds.W - childW) / 2
	case "end":
		x = c.bounds.W - childW
	case "stretch", "normal":
		if widthProp == "" {
			childW = c.bounds.W
		}
	}

	w.SetVisible(true)
	w.SetBounds(widget.Rect{X: c.bounds.X + x, Y: c.bounds.Y, W: childW, H: childH})
}

func (c *Cell) layoutStack() {
	sc := c.surface.Scaler()
	scale := sc.Px
	isHoriz := c.mode == StackHorizontal
	align := c.store.Get("align-items", "normal")
	if align == "" {
		align = "normal"
	}

	cur := -c.scrollPos
	total := 0
	for _, w := range c.widgets {
		reqW := property.ParseDimension(w.Store().Get("width", ""), c.bounds.W, scale)
		reqH := property.ParseDimension(w.Store().Get("height", ""), c.bounds.H, scale)
		var ww, wh int

		if isHoriz {
			ww = stackExtent(reqW, sc.Px(stackDefaultMain))
			switch {
			case reqH >= 0:
				wh = reqH
			case align == "stretch" || align == "normal":
				wh = c.bounds.H
			default:
				wh = sc.Px(stackDefaultCross)
			}
		} else {
			wh = stackExtent(reqH, sc.Px(stackDefaultCross))
			switch {
			case reqW >= 0:
				ww = reqW
			case align == "stretch" || align == "normal":
				ww = c.bounds.W
			default:
				ww = sc.Px(stackDefaultMain)
			}
		}

		wx, wy := 0, cur
		if isHoriz {
			wx, wy = cur, 0
			switch align {
			case "center":
				wy = (c.bounds.H - wh) / 2
			case "end":
				wy = c.bounds.H - wh
			}
		} else {
			switch align {
			case "center":
				wx = (c.bounds.W - ww) / 2
			case "end":
				wx = c.bounds.W - ww
			}
		}

		w.SetVisible(true)
		w.SetBounds(widget.Rect{X: c.bounds.X + wx, Y: c.bounds.Y + wy, W: ww, H: wh})

		step := wh
		if isHoriz {
			step = ww
		}
		cur += step
		total += step
	}
	c.contentSize = total
}

func stackExtent(requested, def int) int {
	if requested >= 0 {
		return requested
	}
	return def
}

// HandleEvent routes input to the cell's content. Pointer presses are
// gated by the cell bounds; moves and releases pass through so hover and
// drag state clears correctly.
func (c *Cell) HandleEvent(ev backend.Event) bool {
	p, isPointer := ev.(backend.PointerEvent)
	if isPointer && p.Action == backend.PointerPress && !c.bounds.Contains(p.X, p.Y) {
		return false
	}

	if isPointer && c.scrollEnabled && p.Action == backend.PointerPress {
		step := c.surface.Scaler().Px(wheelScrollStep)
		switch p.Button {
		case backend.WheelUp:
			c.ScrollBy(-step)
			return true
		case backend.WheelDown:
			c.ScrollBy(step)
			return true
		}
	}

	if c.nested != nil {
		return c.nested.HandleEvent(ev)
	}
	if c.trigger != nil && c.trigger.HandleEvent(ev) {
		return true
	}
	for i := len(c.widgets) - 1; i >= 0; i-- {
		w := c.widgets[i]
		if !w.Visible() {
			continue
		}
		if w.HandleEvent(ev) {
			return true
		}
	}
	return false
}

// Paint draws the cell background and its visible content. The background
// resolves through the cascade as a "cell" element, with the "subclass"
// property as its variant.
func (c *Cell) Paint(cv backend.Canvas) {
	variant := c.store.Get("subclass", "")
	if bg, ok := property.ParseHexColor(c.store.ResolveStyle("background-color", "", "cell", variant, property.Normal)); ok {
		style := backend.DefaultStyle().Background(backend.ColorOf(bg))
		cv.FillRect(c.bounds.X, c.bounds.Y, c.bounds.W, c.bounds.H, style)
	}
	if c.nested != nil {
		c.nested.Paint(cv)
		return
	}
	for _, w := range c.widgets {
		if w.Visible() {
			w.Paint(cv)
		}
	}
	if c.trigger != nil {
		c.trigger.Paint(cv)
	}
}

// Destroy tears down the cell's widgets, trigger, and nested layout.
func (c *Cell) Destroy() {
	if c.trigger != nil {
		c.trigger.Destroy()
		c.trigger = nil
	}
	if c.nested != nil {
		c.nested.Destroy()
		c.nested = nil
	}
	for _, w := range c.widgets {
		c.surface.Unregister(w)
		w.Destroy()
	}
	c.widgets = nil
	c.overflow = nil
}
