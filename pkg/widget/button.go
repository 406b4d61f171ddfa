package widget

import (
	"github.com/mattn/go-runewidth"

	"github.com/odvcencio/slate/pkg/backend"
	"github.com/odvcencio/slate/pkg/property"
)

// Default button geometry in logical units.
const (
	buttonMinWidth = 40
	buttonHeight   = 22
	buttonPad      = 4
)

var _ Widget = (*Button)(nil)

// Button is a clickable push button. Its caption lives in the "text"
// property so stylesheets can set it like any other style value.
type Button struct {
	Base
	onClick func()
}

// NewButton creates a button with the given caption.
func NewButton(text string) *Button {
	b := &Button{}
	b.SetFocusable(true)
	b.Store().Set("text", text)
	return b
}

// Kind returns "btn".
func (b *Button) Kind() string { return "btn" }

// Text returns the caption.
func (b *Button) Text() string {
	return b.Store().Get("text", "")
}

// SetText updates the caption.
func (b *Button) SetText(text string) {
	b.SetProp("text", text)
}

// OnClick sets the click callback. EventClick handlers registered with On
// fire as well.
func (b *Button) OnClick(fn func()) {
	b.onClick = fn
}

// Click fires the button as if the user pressed it.
func (b *Button) Click() {
	if !b.Enabled() {
		return
	}
	b.Fire(EventClick)
	if b.onClick != nil {
		b.onClick()
	}
}

// PreferredSize returns the caption width plus padding, floored at the
// standard button width. An explicit "width" property overrides.
func (b *Button) PreferredSize() (int, int) {
	w := runewidth.StringWidth(b.Text()) + 2*buttonPad
	if w < buttonMinWidth {
		w = buttonMinWidth
	}
	if explicit := property.ParseDimension(b.Store().Get("width", ""), 0, nil); explicit >= 0 {
		w = explicit
	}
	h := buttonHeight
	if explicit := property.ParseDimension(b.Store().Get("height", ""), 0, nil); explicit >= 0 {
		h = explicit
	}
	return w, h
}

// HandleEvent implements press/release click detection. The press arms
// the button; the release fires only if it lands inside the bounds.
func (b *Button) HandleEvent(ev backend.Event) bool {
	if !b.Visible() {
		return false
	}
	switch e := ev.(type) {
	case backend.PointerEvent:
		inside := b.Bounds().Contains(e.X, e.Y)
		switch e.Action {
		case backend.PointerMove:
			b.SetHovered(inside)
			return false
		case backend.PointerPress:
			if inside && e.Button == backend.ButtonLeft && b.Enabled() {
				b.SetActive(true)
				return true
			}
		case backend.PointerRelease:
			if !b.Active() {
				return false
			}
			b.SetActive(false)
			if inside {
				b.Click()
			}
			return true
		}
	case backend.KeyEvent:
		if b.Focused() && b.Enabled() && (e.Key == backend.KeyEnter || (e.Key == backend.KeyRune && e.Rune == ' ')) {
			b.Click()
			return true
		}
	}
	return false
}

// Paint draws the button with cascade-resolved colors.
func (b *Button) Paint(cv backend.Canvas) {
	if !b.Visible() {
		return
	}
	st := b.StyleState()
	variant := b.Store().Get("variant", "")
	fg := resolveColor(b.Store(), "color", "btn", variant, st, property.RGB{R: 0xEE, G: 0xEE, B: 0xEE})
	bg := resolveColor(b.Store(), "background-color", "btn", variant, st, property.RGB{R: 0x33, G: 0x33, B: 0x33})

	style := backend.DefaultStyle().
		Foreground(backend.ColorOf(fg)).
		Background(backend.ColorOf(bg))
	if b.Focused() {
		style = style.Underline(true)
	}
	if !b.Enabled() {
		style = style.Dim(true)
	}

	r := b.Bounds()
	cv.FillRect(r.X, r.Y, r.W, r.H, style)
	text := runewidth.Truncate(b.Text(), r.W, "…")
	tx := r.X + (r.W-runewidth.StringWidth(text))/2
	cv.DrawText(tx, r.Y+r.H/2, text, style)
}

func resolveColor(s *property.Store, prop, element, variant string, st property.State, def property.RGB) property.RGB {
	if c, ok := property.ParseHexColor(s.ResolveStyle(prop, "", element, variant, st)); ok {
		return c
	}
	return def
}
