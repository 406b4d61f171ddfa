package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odvcencio/slate/pkg/telemetry"
	"github.com/odvcencio/slate/pkg/widget"
)

// commandBar builds a 300x40 bar cell with fixed-width buttons.
func commandBar(t *testing.T, s *testSurface, widths ...string) (*Cell, []*widget.Button) {
	t.Helper()
	l := New(s, 1, 1)
	l.Arrange(widget.Rect{W: 300, H: 40})
	cell := l.Cell(0, 0)

	btns := make([]*widget.Button, len(widths))
	for i, w := range widths {
		b := widget.NewButton("b")
		if w != "" {
			b.Store().Set("width", w)
		}
		require.NotNil(t, cell.AddWidget(b))
		btns[i] = b
	}
	cell.SetStackMode(StackCommandBar)
	return cell, btns
}

func TestCommandBarOverflow(t *testing.T) {
	cell, btns := commandBar(t, newTestSurface(300, 40), "80", "80", "80", "80", "80")

	// Three 80px buttons fit; the last two wait behind the trigger.
	assert.Len(t, cell.OverflowWidgets(), 2)
	require.NotNil(t, cell.OverflowTrigger())

	assert.True(t, btns[0].Visible())
	assert.True(t, btns[2].Visible())
	assert.False(t, btns[3].Visible())
	assert.False(t, btns[4].Visible())

	assert.Equal(t, widget.Rect{X: 1, Y: 0, W: 80, H: 40}, btns[0].Bounds())
	assert.Equal(t, widget.Rect{X: 82, Y: 0, W: 80, H: 40}, btns[1].Bounds())
	assert.Equal(t, widget.Rect{X: 163, Y: 0, W: 80, H: 40}, btns[2].Bounds())
	assert.Equal(t, widget.Rect{X: 244, Y: 0, W: 20, H: 40}, cell.OverflowTrigger().Bounds())
}

func TestCommandBarNoOverflowNoTrigger(t *testing.T) {
	cell, btns := commandBar(t, newTestSurface(300, 40), "80", "80")

	assert.Empty(t, cell.OverflowWidgets())
	assert.Nil(t, cell.OverflowTrigger())
	assert.True(t, btns[0].Visible())
	assert.True(t, btns[1].Visible())
}

func TestCommandBarFirstFitDragsLaterWidgetsIntoOverflow(t *testing.T) {
	cell, btns := commandBar(t, newTestSurface(300, 40), "80", "200", "30")

	// The 30px button would fit, but it follows the 200px one into
	// overflow so the bar keeps its visual order.
	assert.Len(t, cell.OverflowWidgets(), 2)
	assert.True(t, btns[0].Visible())
	assert.False(t, btns[1].Visible())
	assert.False(t, btns[2].Visible())
}

func TestCommandBarOverflowMonotonicInWidth(t *testing.T) {
	cell, _ := commandBar(t, newTestSurface(300, 40), "80", "40", "120", "60", "80")

	// Sweeping the bar wider must never grow the overflow set.
	prev := len(cell.Widgets()) + 1
	for width := 0; width <= 600; width += 5 {
		_, overflow := cell.measureCommandBar(width, true)
		assert.LessOrEqual(t, len(overflow), prev, "width %d", width)
		prev = len(overflow)
	}
}

func TestCommandBarAutoWidthsShareRemainder(t *testing.T) {
	_, btns := commandBar(t, newTestSurface(300, 40), "auto", "auto")

	// 299px after the single spacing gap: the leftmost auto takes the
	// odd pixel.
	assert.Equal(t, 150, btns[0].Bounds().W)
	assert.Equal(t, 149, btns[1].Bounds().W)
	assert.Equal(t, 1, btns[0].Bounds().X)
	assert.Equal(t, 152, btns[1].Bounds().X)
}

func TestCommandBarOverflowDisabledHidesRest(t *testing.T) {
	cell, btns := commandBar(t, newTestSurface(300, 40), "80", "80", "80", "80", "80")
	cell.SetProp("overflow", "false")

	assert.Empty(t, cell.OverflowWidgets())
	assert.Nil(t, cell.OverflowTrigger())
	assert.True(t, btns[2].Visible())
	assert.False(t, btns[3].Visible())
	assert.False(t, btns[4].Visible())
}

func TestCommandBarJustify(t *testing.T) {
	cell, btns := commandBar(t, newTestSurface(300, 40), "50", "50", "50")

	cell.SetProp("justify-content", "center")
	assert.Equal(t, 74, btns[0].Bounds().X)

	cell.SetProp("justify-content", "end")
	assert.Equal(t, 148, btns[0].Bounds().X)
}

func TestCommandBarTriggerRemovedWhenBarRefits(t *testing.T) {
	cell, btns := commandBar(t, newTestSurface(300, 40), "80", "80", "80", "80", "80")
	require.NotNil(t, cell.OverflowTrigger())
	trigger := cell.OverflowTrigger()

	cell.RemoveWidget(btns[4])
	cell.RemoveWidget(btns[3])

	assert.Empty(t, cell.OverflowWidgets())
	assert.Nil(t, cell.OverflowTrigger())
	assert.True(t, trigger.Destroyed())
}

func TestOverflowPopupRoundTrip(t *testing.T) {
	s := newTestSurface(300, 40)
	s.hub = telemetry.NewHub()
	defer s.hub.Close()
	ch, unsubscribe := s.hub.Subscribe()
	defer unsubscribe()

	cell, btns := commandBar(t, s, "80", "80", "80", "80", "80")
	require.NotNil(t, cell.OverflowTrigger())

	// The popup host's queue is empty, so the nested loop paints once
	// and returns; the widgets must come back to the bar.
	cell.OverflowTrigger().Click()

	assert.Len(t, cell.Widgets(), 5)
	assert.Empty(t, s.host.Popups())
	assert.Len(t, cell.OverflowWidgets(), 2)
	assert.False(t, btns[3].Destroyed())
	assert.False(t, btns[4].Destroyed())

	var opened, closed bool
	var openedItems int
	for {
		select {
		case ev := <-ch:
			switch ev.Type {
			case telemetry.EventPopupOpened:
				opened = true
				openedItems = ev.Data["items"].(int)
			case telemetry.EventPopupClosed:
				closed = true
			}
			continue
		default:
		}
		break
	}
	assert.True(t, opened)
	assert.True(t, closed)
	assert.Equal(t, 2, openedItems)
}

func TestShowOverflowPopupWithoutOverflowIsNoOp(t *testing.T) {
	s := newTestSurface(300, 40)
	cell, _ := commandBar(t, s, "80")

	cell.ShowOverflowPopup()
	assert.Empty(t, s.host.Popups())
}
