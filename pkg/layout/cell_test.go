package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odvcencio/slate/pkg/backend"
	"github.com/odvcencio/slate/pkg/property"
	"github.com/odvcencio/slate/pkg/widget"
)

// singleCell arranges a 1x1 grid and returns its cell.
func singleCell(t *testing.T, s *testSurface, w, h int) *Cell {
	t.Helper()
	l := New(s, 1, 1)
	l.Arrange(widget.Rect{W: w, H: h})
	cell := l.Cell(0, 0)
	require.NotNil(t, cell)
	return cell
}

func addButtons(t *testing.T, c *Cell, captions ...string) []*widget.Button {
	t.Helper()
	out := make([]*widget.Button, len(captions))
	for i, caption := range captions {
		b := widget.NewButton(caption)
		require.NotNil(t, c.AddWidget(b))
		out[i] = b
	}
	return out
}

func TestVerticalStackStretchesWidth(t *testing.T) {
	c := singleCell(t, newTestSurface(200, 300), 200, 300)
	btns := addButtons(t, c, "a", "b", "c")

	assert.Equal(t, widget.Rect{X: 0, Y: 0, W: 200, H: 45}, btns[0].Bounds())
	assert.Equal(t, widget.Rect{X: 0, Y: 45, W: 200, H: 45}, btns[1].Bounds())
	assert.Equal(t, widget.Rect{X: 0, Y: 90, W: 200, H: 45}, btns[2].Bounds())
}

func TestVerticalStackAlignCenter(t *testing.T) {
	c := singleCell(t, newTestSurface(200, 300), 200, 300)
	c.Store().Set("align-items", "center")
	btns := addButtons(t, c, "a", "b")

	// Not stretched: default width 80, centered in 200.
	assert.Equal(t, widget.Rect{X: 60, Y: 0, W: 80, H: 45}, btns[0].Bounds())
	assert.Equal(t, widget.Rect{X: 60, Y: 45, W: 80, H: 45}, btns[1].Bounds())
}

func TestHorizontalStack(t *testing.T) {
	c := singleCell(t, newTestSurface(300, 100), 300, 100)
	c.SetStackMode(StackHorizontal)
	btns := addButtons(t, c, "a", "b")

	assert.Equal(t, widget.Rect{X: 0, Y: 0, W: 80, H: 100}, btns[0].Bounds())
	assert.Equal(t, widget.Rect{X: 80, Y: 0, W: 80, H: 100}, btns[1].Bounds())
}

func TestStackHonorsDimensionProps(t *testing.T) {
	c := singleCell(t, newTestSurface(200, 300), 200, 300)
	b := widget.NewButton("a")
	b.Store().Set("width", "120")
	b.Store().Set("height", "30")
	c.AddWidget(b)
	addButtons(t, c, "b")

	assert.Equal(t, widget.Rect{X: 0, Y: 0, W: 120, H: 30}, b.Bounds())
	// The next widget stacks below the explicit height.
	assert.Equal(t, 30, c.WidgetAt(1).Bounds().Y)
}

func TestTabbedShowsActiveOnly(t *testing.T) {
	c := singleCell(t, newTestSurface(200, 100), 200, 100)
	c.SetStackMode(StackTabbed)
	btns := addButtons(t, c, "a", "b", "c")

	assert.True(t, btns[0].Visible())
	assert.False(t, btns[1].Visible())
	assert.Equal(t, c.Bounds(), btns[0].Bounds())

	c.SetActiveTab(2)
	assert.False(t, btns[0].Visible())
	assert.True(t, btns[2].Visible())
	assert.Equal(t, c.Bounds(), btns[2].Bounds())
	assert.Equal(t, 2, c.ActiveTab())
}

func TestSingleWidgetFillsCell(t *testing.T) {
	c := singleCell(t, newTestSurface(200, 100), 200, 100)
	btns := addButtons(t, c, "a")

	assert.Equal(t, widget.Rect{X: 0, Y: 0, W: 200, H: 100}, btns[0].Bounds())
}

func TestSingleWidgetSizedAndCentered(t *testing.T) {
	c := singleCell(t, newTestSurface(200, 100), 200, 100)
	b := widget.NewButton("a")
	b.Store().Set("width", "50")
	b.Store().Set("height", "40")
	b.Store().Set("align-items", "center")
	c.AddWidget(b)

	assert.Equal(t, widget.Rect{X: 75, Y: 0, W: 50, H: 40}, b.Bounds())
}

func TestScrollClampsToContent(t *testing.T) {
	c := singleCell(t, newTestSurface(200, 100), 200, 100)
	c.EnableScroll(true)
	addButtons(t, c, "a", "b", "c", "d", "e")

	// Five 45px widgets make 225px of content in a 100px viewport.
	c.ScrollBy(50)
	assert.Equal(t, 50, c.ScrollPos())
	assert.Equal(t, -50, c.WidgetAt(0).Bounds().Y)

	c.ScrollBy(1000)
	assert.Equal(t, 125, c.ScrollPos())

	c.ScrollBy(-1000)
	assert.Equal(t, 0, c.ScrollPos())
}

func TestWheelScrollsWhenEnabled(t *testing.T) {
	c := singleCell(t, newTestSurface(200, 100), 200, 100)
	c.EnableScroll(true)
	addButtons(t, c, "a", "b", "c", "d", "e")

	handled := c.HandleEvent(backend.PointerEvent{X: 10, Y: 10, Button: backend.WheelDown, Action: backend.PointerPress})
	assert.True(t, handled)
	assert.Equal(t, 16, c.ScrollPos())

	c.HandleEvent(backend.PointerEvent{X: 10, Y: 10, Button: backend.WheelUp, Action: backend.PointerPress})
	assert.Equal(t, 0, c.ScrollPos())
}

func TestEnableScrollOffResetsPosition(t *testing.T) {
	c := singleCell(t, newTestSurface(200, 100), 200, 100)
	c.EnableScroll(true)
	addButtons(t, c, "a", "b", "c", "d", "e")
	c.ScrollBy(40)

	c.EnableScroll(false)
	assert.Equal(t, 0, c.ScrollPos())
}

func TestNestedLayoutArrangesWithinCell(t *testing.T) {
	s := newTestSurface(200, 100)
	l := New(s, 1, 1)
	nested := l.Cell(0, 0).CreateNested(1, 2)
	l.Arrange(widget.Rect{W: 200, H: 100})

	assert.Same(t, nested, l.Cell(0, 0).Nested())
	assert.Equal(t, 100, nested.Col(0).Size())
	assert.Equal(t, 100, nested.Col(1).Size())
	assert.Equal(t, widget.Rect{X: 100, Y: 0, W: 100, H: 100}, nested.Cell(0, 1).Bounds())
}

func TestCreateNestedDiscardsWidgets(t *testing.T) {
	c := singleCell(t, newTestSurface(200, 100), 200, 100)
	btns := addButtons(t, c, "a", "b")

	c.CreateNested(1, 1)
	assert.Empty(t, c.Widgets())
	assert.True(t, btns[0].Destroyed())
	assert.True(t, btns[1].Destroyed())
}

func TestNestedScrollExpandsToMinimum(t *testing.T) {
	s := newTestSurface(200, 100)
	l := New(s, 1, 1)
	cell := l.Cell(0, 0)
	nested := cell.CreateNested(4, 1)
	for i := 0; i < 4; i++ {
		nested.SetRow(i, Fixed(60), false, Fixed(0))
	}
	cell.EnableScroll(true)
	l.Arrange(widget.Rect{W: 200, H: 100})

	// 240px of rows in a 100px cell scrolls up to 140.
	cell.ScrollBy(50)
	assert.Equal(t, 50, cell.ScrollPos())
	assert.Equal(t, -50, nested.Row(0).Pos())

	cell.ScrollBy(1000)
	assert.Equal(t, 140, cell.ScrollPos())
}

func TestDetachAndAdoptMovesWidget(t *testing.T) {
	s := newTestSurface(400, 100)
	l := New(s, 1, 2)
	l.Arrange(widget.Rect{W: 400, H: 100})
	a, b := l.Cell(0, 0), l.Cell(0, 1)

	btn := widget.NewButton("x")
	a.AddWidget(btn)
	assert.Equal(t, 1, s.registered)

	a.Detach(btn)
	assert.Empty(t, a.Widgets())
	assert.Equal(t, 0, s.registered)
	assert.False(t, btn.Destroyed())

	b.Adopt(btn)
	assert.Len(t, b.Widgets(), 1)
	assert.Equal(t, 1, s.registered)
	// Adopted widgets land inside the new cell's bounds.
	assert.Equal(t, 200, btn.Bounds().X)
}

func TestRemoveAllDestroysWidgets(t *testing.T) {
	c := singleCell(t, newTestSurface(200, 100), 200, 100)
	btns := addButtons(t, c, "a", "b")

	c.RemoveAll()
	assert.Empty(t, c.Widgets())
	assert.True(t, btns[0].Destroyed())
	assert.True(t, btns[1].Destroyed())
}

func TestWidgetAtPointPrefersTopmost(t *testing.T) {
	c := singleCell(t, newTestSurface(200, 100), 200, 100)
	btns := addButtons(t, c, "a", "b")
	// Overlap them deliberately.
	btns[0].SetBounds(widget.Rect{X: 0, Y: 0, W: 100, H: 100})
	btns[1].SetBounds(widget.Rect{X: 50, Y: 0, W: 100, H: 100})

	assert.Same(t, widget.Widget(btns[1]), c.WidgetAtPoint(60, 10))
	assert.Same(t, widget.Widget(btns[0]), c.WidgetAtPoint(10, 10))
	assert.Nil(t, c.WidgetAtPoint(190, 10))

	btns[1].SetVisible(false)
	assert.Same(t, widget.Widget(btns[0]), c.WidgetAtPoint(60, 10))
}

func TestPressOutsideBoundsIgnored(t *testing.T) {
	s := newTestSurface(400, 100)
	l := New(s, 1, 2)
	l.Arrange(widget.Rect{W: 400, H: 100})

	clicked := false
	btn := widget.NewButton("x")
	btn.OnClick(func() { clicked = true })
	l.Cell(0, 0).AddWidget(btn)

	// A press in the second cell must not reach the first cell's button.
	handled := l.Cell(0, 0).HandleEvent(backend.PointerEvent{X: 250, Y: 10, Button: backend.ButtonLeft, Action: backend.PointerPress})
	assert.False(t, handled)
	assert.False(t, clicked)
}

func TestCellSubclassStylesBackground(t *testing.T) {
	s := newTestSurface(200, 100)
	l := New(s, 1, 1)
	l.Store().Set("cell:sidebar:background-color", "#112233")
	cell := l.Cell(0, 0)
	cell.Store().Set("subclass", "sidebar")
	l.Arrange(widget.Rect{W: 200, H: 100})

	l.Paint(s.host.Canvas())
	got := s.host.CellStyle(10, 10).BG()
	assert.Equal(t, backend.ColorOf(property.RGB{R: 0x11, G: 0x22, B: 0x33}), got)
}

func TestCellPropertyCascadeFromLayout(t *testing.T) {
	s := newTestSurface(200, 100)
	l := New(s, 1, 1)
	l.Store().Set("color", "#ff0000")
	cell := l.Cell(0, 0)
	btn := widget.NewButton("x")
	cell.AddWidget(btn)

	// Widget -> cell -> layout chain resolves inherited properties.
	assert.Equal(t, "#ff0000", btn.Store().Get("color", ""))
}
