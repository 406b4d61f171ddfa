// Package backend defines the windowing host interface the toolkit runs
// against. This abstraction allows swapping between a real host (tcell)
// and the simulation host used by tests, which scripts input and captures
// frames.
package backend

// EventHandler receives input events from the host. A host delivers events
// one at a time on its loop goroutine; handlers must not block.
type EventHandler func(Event)

// Host is a single top-level window or popup surface.
type Host interface {
	// ClientSize returns the drawable area in device pixels.
	ClientSize() (width, height int)

	// ScaleFactor returns the DPI scale of this surface. 1.0 is 96 DPI.
	ScaleFactor() float64

	// SetHandler installs the event callback. Replaces any previous handler.
	SetHandler(EventHandler)

	// Invalidate requests a redraw. Coalesced; the host calls back with a
	// paint pass at most once per frame.
	Invalidate()

	// Run enters the host's event loop and blocks until Quit or Destroy.
	Run() error

	// Quit makes Run return after the current event.
	Quit()

	// RunNested enters a nested event loop and blocks until ExitNested.
	// Re-entrant: a nested loop may start another nested loop, and each
	// ExitNested unwinds exactly one level.
	RunNested()

	// ExitNested ends the innermost nested loop.
	ExitNested()

	// OpenPopup creates a transient child surface at the given position and
	// size in device pixels. The popup shares the parent's event loop;
	// while it is open it sees input first.
	OpenPopup(x, y, width, height int) (Host, error)

	// Canvas returns the drawing surface for the current frame.
	Canvas() Canvas

	// Flush presents everything drawn since the last Flush.
	Flush()

	// Destroy releases the surface. Destroying a popup returns input to its
	// parent. All further calls are no-ops.
	Destroy()
}

// Canvas is the minimal drawing surface widgets paint on.
type Canvas interface {
	// Size returns the canvas dimensions in device pixels.
	Size() (width, height int)

	// SetCell paints a single cell.
	SetCell(x, y int, ch rune, style Style)

	// FillRect paints a solid rectangle.
	FillRect(x, y, w, h int, style Style)

	// DrawText paints a string starting at (x, y), clipped to the canvas.
	DrawText(x, y int, text string, style Style)
}
