// Package tcell provides a backend.Host implementation over a terminal.
// Terminal cells stand in for device pixels at scale 1.0, so the layout
// engine works in cell coordinates unchanged.
package tcell

import (
	"fmt"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/odvcencio/slate/pkg/backend"
)

// Host implements backend.Host on a tcell screen. Popups are regions of
// the same screen stacked over the root; the top of the stack sees input
// first while a nested loop runs.
type Host struct {
	screen tcell.Screen

	mu       sync.Mutex
	handler  backend.EventHandler
	popups   []*popupHost
	depth    int
	quitting bool
	paint    bool
	started  bool
}

// New creates a host on a real terminal screen. Call Run to start it.
func New() (*Host, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("tcell host: %w", err)
	}
	return &Host{screen: screen}, nil
}

// NewWithScreen creates a host on an existing screen (for testing with
// tcell's simulation screen).
func NewWithScreen(screen tcell.Screen) *Host {
	return &Host{screen: screen}
}

// ClientSize returns the screen size in cells.
func (h *Host) ClientSize() (int, int) {
	return h.screen.Size()
}

// ScaleFactor is always 1.0 for terminal cells.
func (h *Host) ScaleFactor() float64 { return 1.0 }

// SetHandler installs the event callback.
func (h *Host) SetHandler(handler backend.EventHandler) {
	h.mu.Lock()
	h.handler = handler
	h.mu.Unlock()
}

// Invalidate schedules a PaintEvent before the next poll.
func (h *Host) Invalidate() {
	h.mu.Lock()
	already := h.paint
	h.paint = true
	h.mu.Unlock()
	if !already {
		_ = h.screen.PostEvent(tcell.NewEventInterrupt(nil))
	}
}

// Run initializes the terminal and pumps events until Quit.
func (h *Host) Run() error {
	if err := h.screen.Init(); err != nil {
		return fmt.Errorf("tcell host: %w", err)
	}
	h.screen.EnableMouse()
	h.mu.Lock()
	h.started = true
	h.mu.Unlock()
	defer h.screen.Fini()

	h.pump(0)
	return nil
}

// Quit makes Run return after the current event.
func (h *Host) Quit() {
	h.mu.Lock()
	h.quitting = true
	h.mu.Unlock()
	_ = h.screen.PostEvent(tcell.NewEventInterrupt(nil))
}

// RunNested pumps events one level deeper until ExitNested.
func (h *Host) RunNested() {
	h.mu.Lock()
	h.depth++
	level := h.depth
	h.mu.Unlock()
	h.pump(level)
}

// ExitNested unwinds the innermost nested loop.
func (h *Host) ExitNested() {
	h.mu.Lock()
	if h.depth > 0 {
		h.depth--
	}
	h.mu.Unlock()
	_ = h.screen.PostEvent(tcell.NewEventInterrupt(nil))
}

// pump delivers events until the loop at this nesting level ends. Level 0
// is the outer Run loop; nested levels end when ExitNested drops depth
// below them.
func (h *Host) pump(level int) {
	for {
		h.mu.Lock()
		if h.quitting || h.depth < level {
			h.mu.Unlock()
			return
		}
		doPaint := h.paint
		h.paint = false
		h.mu.Unlock()

		if doPaint {
			h.deliver(backend.PaintEvent{})
			h.screen.Show()
			continue
		}

		ev := h.screen.PollEvent()
		if ev == nil {
			return
		}
		if converted := convertEvent(ev); converted != nil {
			h.deliver(converted)
		}
	}
}

// deliver routes an event to the topmost popup if one is open, otherwise
// to the root handler. Pointer coordinates are translated into the popup's
// space. A press outside every popup still goes to the popup's handler,
// reported with negative coordinates so it can dismiss itself; other
// outside pointer traffic falls through to the root.
func (h *Host) deliver(ev backend.Event) {
	h.mu.Lock()
	var target backend.EventHandler = h.handler
	if len(h.popups) > 0 {
		top := h.popups[len(h.popups)-1]
		if p, ok := ev.(backend.PointerEvent); ok {
			switch {
			case p.X >= top.x && p.X < top.x+top.w && p.Y >= top.y && p.Y < top.y+top.h:
				ev = backend.PointerEvent{X: p.X - top.x, Y: p.Y - top.y, Button: p.Button, Action: p.Action}
				target = top.handler
			case p.Action == backend.PointerPress:
				ev = backend.PointerEvent{X: -1, Y: -1, Button: p.Button, Action: p.Action}
				target = top.handler
			}
		} else {
			target = top.handler
		}
	}
	h.mu.Unlock()

	if target != nil {
		target(ev)
	}
}

// OpenPopup stacks a popup region over the screen.
func (h *Host) OpenPopup(x, y, width, height int) (backend.Host, error) {
	p := &popupHost{root: h, x: x, y: y, w: width, h: height}
	h.mu.Lock()
	h.popups = append(h.popups, p)
	h.mu.Unlock()
	h.Invalidate()
	return p, nil
}

// Canvas returns the full-screen drawing surface.
func (h *Host) Canvas() backend.Canvas {
	w, hh := h.screen.Size()
	return &screenCanvas{screen: h.screen, w: w, h: hh}
}

// Flush presents the frame.
func (h *Host) Flush() {
	h.mu.Lock()
	started := h.started
	h.mu.Unlock()
	if started {
		h.screen.Show()
	}
}

// Destroy tears the terminal down.
func (h *Host) Destroy() {
	h.Quit()
}

func (h *Host) closePopup(p *popupHost) {
	h.mu.Lock()
	for i, q := range h.popups {
		if q == p {
			h.popups = append(h.popups[:i], h.popups[i+1:]...)
			break
		}
	}
	h.mu.Unlock()
	h.Invalidate()
}

var _ backend.Host = (*Host)(nil)

// popupHost is a region of the root screen acting as a transient surface.
type popupHost struct {
	root       *Host
	x, y, w, h int
	handler    backend.EventHandler
	destroyed  bool
	mu         sync.Mutex
}

func (p *popupHost) ClientSize() (int, int) { return p.w, p.h }
func (p *popupHost) ScaleFactor() float64   { return 1.0 }
func (p *popupHost) Invalidate()            { p.root.Invalidate() }
func (p *popupHost) Run() error             { return nil }
func (p *popupHost) Quit()                  {}
func (p *popupHost) RunNested()             { p.root.RunNested() }
func (p *popupHost) ExitNested()            { p.root.ExitNested() }
func (p *popupHost) Flush()                 { p.root.Flush() }

func (p *popupHost) SetHandler(handler backend.EventHandler) {
	p.mu.Lock()
	p.handler = handler
	p.mu.Unlock()
}

func (p *popupHost) OpenPopup(x, y, width, height int) (backend.Host, error) {
	return p.root.OpenPopup(p.x+x, p.y+y, width, height)
}

func (p *popupHost) Canvas() backend.Canvas {
	return &screenCanvas{screen: p.root.screen, x: p.x, y: p.y, w: p.w, h: p.h}
}

func (p *popupHost) Destroy() {
	p.mu.Lock()
	if p.destroyed {
		p.mu.Unlock()
		return
	}
	p.destroyed = true
	p.mu.Unlock()
	p.root.closePopup(p)
}

var _ backend.Host = (*popupHost)(nil)

// screenCanvas draws to an offset, clipped region of the screen.
type screenCanvas struct {
	screen tcell.Screen
	x, y   int
	w, h   int
}

func (c *screenCanvas) Size() (int, int) { return c.w, c.h }

func (c *screenCanvas) SetCell(x, y int, ch rune, style backend.Style) {
	if x < 0 || x >= c.w || y < 0 || y >= c.h {
		return
	}
	c.screen.SetContent(c.x+x, c.y+y, ch, nil, convertStyle(style))
}

func (c *screenCanvas) FillRect(x, y, w, h int, style backend.Style) {
	for row := y; row < y+h; row++ {
		for col := x; col < x+w; col++ {
			c.SetCell(col, row, ' ', style)
		}
	}
}

func (c *screenCanvas) DrawText(x, y int, text string, style backend.Style) {
	col := x
	for _, r := range text {
		c.SetCell(col, y, r, style)
		col++
	}
}

// convertStyle converts backend.Style to tcell.Style.
func convertStyle(s backend.Style) tcell.Style {
	fg, bg, attrs := s.Decompose()
	style := tcell.StyleDefault.
		Foreground(convertColor(fg)).
		Background(convertColor(bg))

	if attrs&backend.AttrBold != 0 {
		style = style.Bold(true)
	}
	if attrs&backend.AttrUnderline != 0 {
		style = style.Underline(true)
	}
	if attrs&backend.AttrDim != 0 {
		style = style.Dim(true)
	}
	if attrs&backend.AttrReverse != 0 {
		style = style.Reverse(true)
	}
	return style
}

// convertColor converts backend.Color to tcell.Color.
func convertColor(c backend.Color) tcell.Color {
	if c == backend.ColorDefault {
		return tcell.ColorDefault
	}
	if c.IsRGB() {
		r, g, b := c.RGB()
		return tcell.NewRGBColor(int32(r), int32(g), int32(b))
	}
	return tcell.PaletteColor(int(c))
}

// convertEvent converts a tcell event to a backend event.
func convertEvent(ev tcell.Event) backend.Event {
	switch e := ev.(type) {
	case *tcell.EventKey:
		return backend.KeyEvent{
			Key:   convertKey(e.Key()),
			Rune:  e.Rune(),
			Alt:   e.Modifiers()&tcell.ModAlt != 0,
			Ctrl:  e.Modifiers()&tcell.ModCtrl != 0,
			Shift: e.Modifiers()&tcell.ModShift != 0,
		}
	case *tcell.EventResize:
		w, h := e.Size()
		return backend.ResizeEvent{Width: w, Height: h}
	case *tcell.EventMouse:
		x, y := e.Position()
		return backend.PointerEvent{
			X:      x,
			Y:      y,
			Button: convertButton(e.Buttons()),
			Action: convertAction(e.Buttons()),
		}
	default:
		return nil
	}
}

func convertKey(k tcell.Key) backend.Key {
	switch k {
	case tcell.KeyRune:
		return backend.KeyRune
	case tcell.KeyUp:
		return backend.KeyUp
	case tcell.KeyDown:
		return backend.KeyDown
	case tcell.KeyRight:
		return backend.KeyRight
	case tcell.KeyLeft:
		return backend.KeyLeft
	case tcell.KeyPgUp:
		return backend.KeyPageUp
	case tcell.KeyPgDn:
		return backend.KeyPageDown
	case tcell.KeyHome:
		return backend.KeyHome
	case tcell.KeyEnd:
		return backend.KeyEnd
	case tcell.KeyDelete:
		return backend.KeyDelete
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return backend.KeyBackspace
	case tcell.KeyTab:
		return backend.KeyTab
	case tcell.KeyEnter:
		return backend.KeyEnter
	case tcell.KeyEscape:
		return backend.KeyEscape
	default:
		return backend.KeyNone
	}
}

func convertButton(buttons tcell.ButtonMask) backend.PointerButton {
	switch {
	case buttons&tcell.WheelUp != 0:
		return backend.WheelUp
	case buttons&tcell.WheelDown != 0:
		return backend.WheelDown
	case buttons&tcell.Button1 != 0:
		return backend.ButtonLeft
	case buttons&tcell.Button2 != 0:
		return backend.ButtonMiddle
	case buttons&tcell.Button3 != 0:
		return backend.ButtonRight
	default:
		return backend.ButtonNone
	}
}

func convertAction(buttons tcell.ButtonMask) backend.PointerAction {
	if buttons == tcell.ButtonNone {
		return backend.PointerRelease
	}
	return backend.PointerPress
}
