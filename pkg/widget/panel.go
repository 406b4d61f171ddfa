package widget

import (
	"github.com/odvcencio/slate/pkg/backend"
	"github.com/odvcencio/slate/pkg/property"
)

var _ Widget = (*Panel)(nil)

// Panel is a plain surface: a filled rectangle with an optional border.
// Containers use it as an overlay backdrop and layouts use it as filler.
type Panel struct {
	Base
}

// NewPanel creates an empty panel.
func NewPanel() *Panel {
	return &Panel{}
}

// Kind returns "panel".
func (p *Panel) Kind() string { return "panel" }

// PreferredSize returns the explicit dimension properties, zero otherwise;
// a panel has no natural size of its own.
func (p *Panel) PreferredSize() (int, int) {
	w := property.ParseDimension(p.Store().Get("width", ""), 0, nil)
	h := property.ParseDimension(p.Store().Get("height", ""), 0, nil)
	return max(w, 0), max(h, 0)
}

// Paint fills the bounds with the cascade-resolved background and draws a
// single-cell border when "border-color" resolves.
func (p *Panel) Paint(cv backend.Canvas) {
	if !p.Visible() {
		return
	}
	r := p.Bounds()
	if r.Empty() {
		return
	}
	st := p.StyleState()
	variant := p.Store().Get("variant", "")
	bg := resolveColor(p.Store(), "background-color", "panel", variant, st, property.RGB{R: 0x40, G: 0x40, B: 0x40})
	cv.FillRect(r.X, r.Y, r.W, r.H, backend.DefaultStyle().Background(backend.ColorOf(bg)))

	if bc, ok := property.ParseHexColor(p.Store().ResolveStyle("border-color", "", "panel", variant, st)); ok {
		style := backend.DefaultStyle().
			Foreground(backend.ColorOf(bc)).
			Background(backend.ColorOf(bg))
		for x := r.X; x < r.X+r.W; x++ {
			cv.SetCell(x, r.Y, '─', style)
			cv.SetCell(x, r.Y+r.H-1, '─', style)
		}
		for y := r.Y; y < r.Y+r.H; y++ {
			cv.SetCell(r.X, y, '│', style)
			cv.SetCell(r.X+r.W-1, y, '│', style)
		}
		cv.SetCell(r.X, r.Y, '┌', style)
		cv.SetCell(r.X+r.W-1, r.Y, '┐', style)
		cv.SetCell(r.X, r.Y+r.H-1, '└', style)
		cv.SetCell(r.X+r.W-1, r.Y+r.H-1, '┘', style)
	}
}
