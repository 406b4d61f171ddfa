package widget

import (
	"github.com/mattn/go-runewidth"

	"github.com/odvcencio/slate/pkg/backend"
	"github.com/odvcencio/slate/pkg/property"
)

const labelHeight = 16

var _ Widget = (*Label)(nil)

// Label is a static text widget.
type Label struct {
	Base
}

// NewLabel creates a label with the given text.
func NewLabel(text string) *Label {
	l := &Label{}
	l.Store().Set("text", text)
	return l
}

// Kind returns "label".
func (l *Label) Kind() string { return "label" }

// Text returns the label text.
func (l *Label) Text() string {
	return l.Store().Get("text", "")
}

// SetText updates the label text.
func (l *Label) SetText(text string) {
	l.SetProp("text", text)
}

// PreferredSize returns the text width and a single line of height.
func (l *Label) PreferredSize() (int, int) {
	return runewidth.StringWidth(l.Text()), labelHeight
}

// Paint draws the text left-aligned, vertically centered.
func (l *Label) Paint(cv backend.Canvas) {
	if !l.Visible() {
		return
	}
	st := l.StyleState()
	fg := resolveColor(l.Store(), "color", "label", l.Store().Get("variant", ""), st, property.RGB{R: 0xDD, G: 0xDD, B: 0xDD})

	style := backend.DefaultStyle().Foreground(backend.ColorOf(fg))
	r := l.Bounds()
	cv.DrawText(r.X, r.Y+r.H/2, runewidth.Truncate(l.Text(), r.W, "…"), style)
}
