package layout

import (
	"github.com/odvcencio/slate/pkg/backend"
	"github.com/odvcencio/slate/pkg/metric"
	"github.com/odvcencio/slate/pkg/property"
	"github.com/odvcencio/slate/pkg/telemetry"
	"github.com/odvcencio/slate/pkg/widget"
)

// Command bar geometry in logical units.
const (
	barMeasureSpacing = 4  // spacing assumed while deciding what fits
	barLayoutSpacing  = 1  // spacing used when placing what fit
	barAutoWidth      = 40 // width of "auto" widgets during measure
	barDefaultWidth   = 80 // width of widgets with no width property
	barReservedWidth  = 40 // room held back for the overflow trigger
	barTriggerWidth   = barReservedWidth / 2
	barDefaultHeight  = 32 // height when not stretched to the bar
)

// measureCommandBar walks the widgets in order, first-fit: a widget that
// does not fit the remaining width goes to overflow, and every widget
// after the first overflowed one follows it regardless of its own width.
// Once any widget has overflowed (or the next widget would collide with
// the reserved trigger area), the usable width shrinks by the trigger
// reservation.
func (c *Cell) measureCommandBar(availableWidth int, allowOverflow bool) (visible, overflow []widget.Widget) {
	if len(c.widgets) == 0 {
		return nil, nil
	}
	sc := c.surface.Scaler()
	reserved := sc.Px(barReservedWidth)
	spacing := sc.Px(barMeasureSpacing)
	used := 0

	for _, w := range c.widgets {
		widthProp := w.Store().Get("width", "")
		var ww int
		if widthProp == "auto" {
			ww = sc.Px(barAutoWidth)
		} else {
			ww = property.ParseDimension(widthProp, availableWidth, sc.Px)
			if ww < 0 {
				ww = sc.Px(barDefaultWidth)
			}
		}

		maxWidth := availableWidth
		if allowOverflow {
			needsRoom := len(overflow) > 0 ||
				used+ww+spacing+reserved > availableWidth
			if needsRoom {
				maxWidth = availableWidth - reserved - spacing
			}
		}

		if len(overflow) == 0 && used+ww <= maxWidth {
			visible = append(visible, w)
			used += ww + spacing
		} else if allowOverflow {
			overflow = append(overflow, w)
		}
		// With overflow disallowed, a widget that does not fit is simply
		// hidden.
	}
	return visible, overflow
}

// layoutCommandBar measures, manages the overflow trigger, and places the
// visible widgets. "auto" widgets share the space left after fixed-width
// widgets equally, with the leftmost ones taking the remainder pixels.
func (c *Cell) layoutCommandBar() {
	sc := c.surface.Scaler()
	allowOverflow := c.store.Get("overflow", "true") != "false"
	align := c.store.Get("align-items", "normal")
	justify := c.store.Get("justify-content", "start")

	visible, overflow := c.measureCommandBar(c.bounds.W, allowOverflow)

	if len(overflow) > 0 {
		if c.trigger == nil {
			c.trigger = c.newOverflowTrigger()
		}
	} else if c.trigger != nil {
		c.trigger.Destroy()
		c.trigger = nil
	}
	c.overflow = overflow

	spacing := sc.Px(barLayoutSpacing)
	totalUsed := 0
	autoCount := 0
	widths := make([]int, len(visible))
	isAuto := make([]bool, len(visible))

	for i, w := range visible {
		widthProp := w.Store().Get("width", "")
		if widthProp == "auto" {
			isAuto[i] = true
			autoCount++
			continue
		}
		ww := property.ParseDimension(widthProp, c.bounds.W, sc.Px)
		if ww < 0 {
			ww = sc.Px(barDefaultWidth)
		}
		widths[i] = ww
		totalUsed += ww
	}
	if len(visible) > 0 {
		totalUsed += (len(visible) - 1) * spacing
	}

	triggerW := 0
	if c.trigger != nil {
		triggerW = sc.Px(barTriggerWidth)
		totalUsed += spacing + triggerW
	}

	if remaining := c.bounds.W - totalUsed; autoCount > 0 && remaining > 0 {
		per := remaining / autoCount
		rem := remaining % autoCount
		for i := range widths {
			if !isAuto[i] {
				continue
			}
			widths[i] = per
			if rem > 0 {
				widths[i]++
				rem--
			}
			totalUsed += widths[i]
		}
	}

	x := 0
	switch justify {
	case "center":
		x = (c.bounds.W - totalUsed) / 2
	case "end", "right":
		x = c.bounds.W - totalUsed
	default:
		x = sc.Px(barLayoutSpacing)
	}
	if x < 0 {
		x = 0
	}

	for i, w := range visible {
		wh := c.barItemHeight(w.Store().Get("height", ""), align)
		wy := c.barItemY(wh, align)
		w.SetVisible(true)
		w.SetBounds(widget.Rect{X: c.bounds.X + x, Y: c.bounds.Y + wy, W: widths[i], H: wh})
		x += widths[i] + spacing
	}

	if c.trigger != nil {
		th := c.barItemHeight("", align)
		ty := c.barItemY(th, align)
		c.trigger.SetBounds(widget.Rect{X: c.bounds.X + x, Y: c.bounds.Y + ty, W: triggerW, H: th})
		if hub := c.surface.Telemetry(); hub != nil {
			hub.Emit(telemetry.EventCommandBarOverflow, "cell", map[string]any{
				"visible":  len(visible),
				"overflow": len(overflow),
			})
		}
	}

	// Everything that was not placed is hidden: overflowed widgets wait
	// for the popup, and with overflow disabled the rest simply vanish.
	shown := make(map[widget.Widget]bool, len(visible))
	for _, w := range visible {
		shown[w] = true
	}
	for _, w := range c.widgets {
		if !shown[w] {
			w.SetVisible(false)
		}
	}
}

func (c *Cell) barItemHeight(heightProp, align string) int {
	sc := c.surface.Scaler()
	if h := property.ParseDimension(heightProp, c.bounds.H, sc.Px); h >= 0 {
		return h
	}
	if align == "stretch" || align == "normal" {
		return c.bounds.H
	}
	return sc.Px(barDefaultHeight)
}

func (c *Cell) barItemY(h int, align string) int {
	switch align {
	case "center":
		return (c.bounds.H - h) / 2
	case "end":
		return c.bounds.H - h
	default:
		return 0
	}
}

func (c *Cell) newOverflowTrigger() *widget.Button {
	btn := widget.NewButton("»")
	if err := btn.Create(c.surface.Host()); err != nil {
		return nil
	}
	btn.Store().SetParent(c.store)
	btn.OnClick(func() { c.ShowOverflowPopup() })
	return btn
}

// ShowOverflowPopup moves the overflowed widgets into a transient
// scrollable popup below the trigger and blocks in a nested event loop
// until the popup closes. The widgets then return to the bar.
func (c *Cell) ShowOverflowPopup() {
	if len(c.overflow) == 0 {
		return
	}
	host := c.surface.Host()
	sc := c.surface.Scaler()
	hub := c.surface.Telemetry()

	itemH := sc.Resolve(metric.ToolbarButtonHeight)
	popupW := sc.Resolve(metric.ToolbarButtonLabeledWidth)
	popupH := (len(c.overflow) + 1) * itemH

	// Anchor under the trigger, falling back to the cell's corner.
	px, py := c.bounds.X, c.bounds.Y+c.bounds.H
	if c.trigger != nil {
		tb := c.trigger.Bounds()
		px, py = tb.X, tb.Y+tb.H
	}

	popupHost, err := host.OpenPopup(px, py, popupW, popupH)
	if err != nil {
		return
	}

	ps := &popupSurface{host: popupHost, scaler: sc, hub: hub}
	popupLayout := New(ps, 1, 1)
	popupCell := popupLayout.Cell(0, 0)
	popupCell.EnableScroll(true)
	popupCell.SetStackMode(StackVertical)

	moved := c.overflow
	c.overflow = nil
	for _, item := range moved {
		c.Detach(item)
		popupCell.Adopt(item)
		item.SetVisible(true)
	}
	popupLayout.Arrange(widget.Rect{W: popupW, H: popupH})

	popupHost.SetHandler(func(ev backend.Event) {
		switch e := ev.(type) {
		case backend.PaintEvent:
			popupLayout.Paint(popupHost.Canvas())
			popupHost.Flush()
		case backend.KeyEvent:
			if e.Key == backend.KeyEscape {
				popupHost.ExitNested()
			}
		case backend.PointerEvent:
			if e.Action == backend.PointerPress && e.X < 0 {
				// Host reports out-of-popup presses with negative coords.
				popupHost.ExitNested()
				return
			}
			handled := popupLayout.HandleEvent(ev)
			if handled && e.Action == backend.PointerRelease {
				// An activated item dismisses the popup, menu style.
				popupHost.ExitNested()
			}
		}
	})
	popupHost.Invalidate()

	hub.Emit(telemetry.EventPopupOpened, "commandbar", map[string]any{"items": len(moved)})
	popupHost.RunNested()

	for _, item := range moved {
		popupCell.Detach(item)
		c.Adopt(item)
	}
	popupLayout.Destroy()
	popupHost.Destroy()

	c.UpdateWidgets()
	hub.Emit(telemetry.EventPopupClosed, "commandbar", nil)
}

// popupSurface is the minimal Surface behind a transient popup. Focus
// registration is a no-op; popup widgets are reachable by pointer only
// for the popup's short life.
type popupSurface struct {
	host   backend.Host
	scaler metric.Scaler
	hub    *telemetry.Hub
}

func (p *popupSurface) Host() backend.Host        { return p.host }
func (p *popupSurface) Scaler() metric.Scaler     { return p.scaler }
func (p *popupSurface) Register(widget.Widget)    {}
func (p *popupSurface) Unregister(widget.Widget)  {}
func (p *popupSurface) Telemetry() *telemetry.Hub { return p.hub }
