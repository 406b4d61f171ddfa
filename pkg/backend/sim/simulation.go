// Package sim provides a scripted simulation host for testing. Tests queue
// input events, run the loop, and capture the resulting frame as text.
package sim

import (
	"strings"
	"sync"

	"github.com/mattn/go-runewidth"

	"github.com/odvcencio/slate/pkg/backend"
)

// Host is an in-memory backend.Host. Events are scripted ahead of time;
// Run and RunNested deliver them in order and return when the queue runs
// dry, so tests never hang waiting for input.
type Host struct {
	mu            sync.Mutex
	width, height int
	x, y          int
	scale         float64
	handler       backend.EventHandler
	queue         []backend.Event
	canvas        *canvas
	invalidations int
	paintQueued   bool
	depth         int
	destroyed     bool
	parent        *Host
	popups        []*Host
}

// New creates a simulation host with the given client size at scale 1.0.
func New(width, height int) *Host {
	return NewScaled(width, height, 1.0)
}

// NewScaled creates a simulation host with an explicit DPI scale.
func NewScaled(width, height int, scale float64) *Host {
	if scale <= 0 {
		scale = 1.0
	}
	return &Host{
		width:  width,
		height: height,
		scale:  scale,
		canvas: newCanvas(width, height),
	}
}

// Script appends events to the input queue.
func (h *Host) Script(events ...backend.Event) {
	h.mu.Lock()
	h.queue = append(h.queue, events...)
	h.mu.Unlock()
}

// Click scripts a left button press and release at (x, y).
func (h *Host) Click(x, y int) {
	h.Script(
		backend.PointerEvent{X: x, Y: y, Button: backend.ButtonLeft, Action: backend.PointerPress},
		backend.PointerEvent{X: x, Y: y, Button: backend.ButtonLeft, Action: backend.PointerRelease},
	)
}

// MoveTo scripts a pointer move to (x, y).
func (h *Host) MoveTo(x, y int) {
	h.Script(backend.PointerEvent{X: x, Y: y, Action: backend.PointerMove})
}

// TypeKey scripts a key press.
func (h *Host) TypeKey(key backend.Key, r rune) {
	h.Script(backend.KeyEvent{Key: key, Rune: r})
}

// Resize changes the client size and scripts a ResizeEvent.
func (h *Host) Resize(width, height int) {
	h.mu.Lock()
	h.width, h.height = width, height
	h.canvas = newCanvas(width, height)
	h.mu.Unlock()
	h.Script(backend.ResizeEvent{Width: width, Height: height})
}

// ClientSize returns the client area in device pixels.
func (h *Host) ClientSize() (int, int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.width, h.height
}

// ScaleFactor returns the configured DPI scale.
func (h *Host) ScaleFactor() float64 {
	return h.scale
}

// SetHandler installs the event callback.
func (h *Host) SetHandler(handler backend.EventHandler) {
	h.mu.Lock()
	h.handler = handler
	h.mu.Unlock()
}

// Invalidate queues a coalesced PaintEvent.
func (h *Host) Invalidate() {
	h.mu.Lock()
	h.invalidations++
	if !h.paintQueued {
		h.paintQueued = true
		h.queue = append(h.queue, backend.PaintEvent{})
	}
	h.mu.Unlock()
}

// Invalidations returns how many times Invalidate has been called.
func (h *Host) Invalidations() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.invalidations
}

// Run delivers scripted events until the queue runs dry, Quit is called,
// or the host is destroyed.
func (h *Host) Run() error {
	for h.deliverNext(0) {
	}
	return nil
}

// Quit stops the loop by discarding pending events.
func (h *Host) Quit() {
	h.mu.Lock()
	h.queue = nil
	h.mu.Unlock()
}

// RunNested delivers events until ExitNested unwinds this level or the
// queue runs dry.
func (h *Host) RunNested() {
	h.mu.Lock()
	h.depth++
	level := h.depth
	h.mu.Unlock()

	for h.deliverNext(level) {
	}

	h.mu.Lock()
	if h.depth >= level {
		h.depth = level - 1
	}
	h.mu.Unlock()
}

// ExitNested ends the innermost nested loop.
func (h *Host) ExitNested() {
	h.mu.Lock()
	if h.depth > 0 {
		h.depth--
	}
	h.mu.Unlock()
}

// deliverNext pops and delivers one event. Returns false when the loop at
// the given nesting level should stop. Pointer events route to the top
// popup while one is open: translated into popup space when inside it,
// reported with negative coordinates when a press lands outside. A popup
// whose own queue has run dry drains its parent's queue instead; the
// parent's routing sends that input back to the popup, so a nested popup
// loop sees presses scripted on the parent surface.
func (h *Host) deliverNext(level int) bool {
	h.mu.Lock()
	if h.destroyed || h.depth < level {
		h.mu.Unlock()
		return false
	}
	if len(h.queue) == 0 {
		parent := h.parent
		h.mu.Unlock()
		if parent == nil || !parent.deliverNext(0) {
			return false
		}
		h.mu.Lock()
		stop := h.destroyed || h.depth < level
		h.mu.Unlock()
		return !stop
	}
	ev := h.queue[0]
	h.queue = h.queue[1:]
	if _, isPaint := ev.(backend.PaintEvent); isPaint {
		h.paintQueued = false
	}
	handler := h.handler
	if len(h.popups) > 0 {
		if p, ok := ev.(backend.PointerEvent); ok {
			top := h.popups[len(h.popups)-1]
			switch {
			case p.X >= top.x && p.X < top.x+top.width && p.Y >= top.y && p.Y < top.y+top.height:
				ev = backend.PointerEvent{X: p.X - top.x, Y: p.Y - top.y, Button: p.Button, Action: p.Action}
				handler = top.handler
			case p.Action == backend.PointerPress:
				ev = backend.PointerEvent{X: -1, Y: -1, Button: p.Button, Action: p.Action}
				handler = top.handler
			}
		}
	}
	h.mu.Unlock()

	if handler != nil {
		handler(ev)
	}

	h.mu.Lock()
	stop := h.destroyed || h.depth < level
	h.mu.Unlock()
	return !stop
}

// OpenPopup creates a child simulation host. The popup has its own event
// queue; script it before running the nested loop that shows it.
func (h *Host) OpenPopup(x, y, width, height int) (backend.Host, error) {
	popup := NewScaled(width, height, h.scale)
	popup.x, popup.y = x, y
	popup.parent = h

	h.mu.Lock()
	h.popups = append(h.popups, popup)
	h.mu.Unlock()
	return popup, nil
}

// Popups returns the currently open child popups.
func (h *Host) Popups() []*Host {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]*Host, len(h.popups))
	copy(out, h.popups)
	return out
}

// Position returns where a popup was placed relative to its parent.
func (h *Host) Position() (x, y int) {
	return h.x, h.y
}

// Destroyed reports whether Destroy has been called.
func (h *Host) Destroyed() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.destroyed
}

// Canvas returns the frame buffer.
func (h *Host) Canvas() backend.Canvas {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.canvas
}

// Flush is a no-op; the sim canvas is always current.
func (h *Host) Flush() {}

// Destroy marks the host dead and detaches it from its parent.
func (h *Host) Destroy() {
	h.mu.Lock()
	if h.destroyed {
		h.mu.Unlock()
		return
	}
	h.destroyed = true
	h.queue = nil
	parent := h.parent
	h.mu.Unlock()

	if parent != nil {
		parent.mu.Lock()
		for i, p := range parent.popups {
			if p == h {
				parent.popups = append(parent.popups[:i], parent.popups[i+1:]...)
				break
			}
		}
		parent.mu.Unlock()
	}
}

// Capture returns the frame as one string per row.
func (h *Host) Capture() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.canvas.capture()
}

// CellStyle returns the style painted at (x, y).
func (h *Host) CellStyle(x, y int) backend.Style {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.canvas.styleAt(x, y)
}

// ContainsText reports whether text appears anywhere in the frame.
func (h *Host) ContainsText(text string) bool {
	for _, line := range strings.Split(h.Capture(), "\n") {
		if strings.Contains(line, text) {
			return true
		}
	}
	return false
}

var _ backend.Host = (*Host)(nil)

// canvas is a rune grid frame buffer.
type canvas struct {
	width, height int
	cells         []rune
	styles        []backend.Style
}

func newCanvas(width, height int) *canvas {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	c := &canvas{
		width:  width,
		height: height,
		cells:  make([]rune, width*height),
		styles: make([]backend.Style, width*height),
	}
	for i := range c.cells {
		c.cells[i] = ' '
	}
	return c
}

func (c *canvas) Size() (int, int) {
	return c.width, c.height
}

func (c *canvas) SetCell(x, y int, ch rune, style backend.Style) {
	if x < 0 || x >= c.width || y < 0 || y >= c.height {
		return
	}
	i := y*c.width + x
	c.cells[i] = ch
	c.styles[i] = style
}

func (c *canvas) FillRect(x, y, w, h int, style backend.Style) {
	for row := y; row < y+h; row++ {
		for col := x; col < x+w; col++ {
			c.SetCell(col, row, ' ', style)
		}
	}
}

func (c *canvas) DrawText(x, y int, text string, style backend.Style) {
	col := x
	for _, r := range text {
		c.SetCell(col, y, r, style)
		col += runewidth.RuneWidth(r)
	}
}

func (c *canvas) capture() string {
	lines := make([]string, c.height)
	for y := 0; y < c.height; y++ {
		var b strings.Builder
		for x := 0; x < c.width; x++ {
			b.WriteRune(c.cells[y*c.width+x])
		}
		lines[y] = b.String()
	}
	return strings.Join(lines, "\n")
}

func (c *canvas) styleAt(x, y int) backend.Style {
	if x < 0 || x >= c.width || y < 0 || y >= c.height {
		return backend.DefaultStyle()
	}
	return c.styles[y*c.width+x]
}
