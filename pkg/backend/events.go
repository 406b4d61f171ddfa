package backend

// Event represents a host input event.
type Event interface {
	eventMarker()
}

// PointerEvent represents mouse or touch input in device pixels.
type PointerEvent struct {
	X, Y   int
	Button PointerButton
	Action PointerAction
}

func (PointerEvent) eventMarker() {}

// KeyEvent represents a key press.
type KeyEvent struct {
	Key   Key
	Rune  rune
	Alt   bool
	Ctrl  bool
	Shift bool
}

func (KeyEvent) eventMarker() {}

// ResizeEvent indicates the host client area changed.
type ResizeEvent struct {
	Width  int
	Height int
}

func (ResizeEvent) eventMarker() {}

// PaintEvent asks the handler to redraw. Hosts coalesce Invalidate calls
// into at most one PaintEvent per frame.
type PaintEvent struct{}

func (PaintEvent) eventMarker() {}

// QuitEvent is delivered when the host is shutting down.
type QuitEvent struct{}

func (QuitEvent) eventMarker() {}

// PointerButton identifies which button was involved.
type PointerButton int

const (
	ButtonNone PointerButton = iota
	ButtonLeft
	ButtonMiddle
	ButtonRight
	WheelUp
	WheelDown
)

// PointerAction identifies what happened with the pointer.
type PointerAction int

const (
	PointerPress PointerAction = iota
	PointerRelease
	PointerMove
)

// Key represents special keys.
type Key int

const (
	KeyNone Key = iota
	KeyRune
	KeyEnter
	KeyBackspace
	KeyTab
	KeyEscape
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyDelete
)
