package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odvcencio/slate/pkg/backend"
)

func TestRunDeliversScriptedEvents(t *testing.T) {
	host := New(100, 50)

	var got []backend.Event
	host.SetHandler(func(ev backend.Event) {
		got = append(got, ev)
	})

	host.Click(10, 20)
	host.TypeKey(backend.KeyEnter, 0)
	require.NoError(t, host.Run())

	require.Len(t, got, 3)
	press := got[0].(backend.PointerEvent)
	assert.Equal(t, backend.PointerPress, press.Action)
	assert.Equal(t, 10, press.X)
	assert.Equal(t, 20, press.Y)
	release := got[1].(backend.PointerEvent)
	assert.Equal(t, backend.PointerRelease, release.Action)
	key := got[2].(backend.KeyEvent)
	assert.Equal(t, backend.KeyEnter, key.Key)
}

func TestInvalidateCoalesces(t *testing.T) {
	host := New(10, 10)

	paints := 0
	host.SetHandler(func(ev backend.Event) {
		if _, ok := ev.(backend.PaintEvent); ok {
			paints++
		}
	})

	host.Invalidate()
	host.Invalidate()
	host.Invalidate()
	require.NoError(t, host.Run())

	assert.Equal(t, 1, paints)
	assert.Equal(t, 3, host.Invalidations())
}

func TestRunNestedUnwindsOneLevel(t *testing.T) {
	host := New(10, 10)

	var order []string
	host.SetHandler(func(ev backend.Event) {
		k, ok := ev.(backend.KeyEvent)
		if !ok {
			return
		}
		switch k.Rune {
		case 'a':
			order = append(order, "a")
			host.RunNested()
			order = append(order, "a-done")
		case 'b':
			order = append(order, "b")
			host.ExitNested()
		case 'c':
			order = append(order, "c")
		}
	})

	host.TypeKey(backend.KeyRune, 'a')
	host.TypeKey(backend.KeyRune, 'b')
	host.TypeKey(backend.KeyRune, 'c')
	require.NoError(t, host.Run())

	assert.Equal(t, []string{"a", "b", "a-done", "c"}, order)
}

func TestRunNestedExitsWhenQueueRunsDry(t *testing.T) {
	host := New(10, 10)
	host.SetHandler(func(backend.Event) {})

	// Must return rather than block when nothing is scripted.
	host.RunNested()
}

func TestOpenPopupTracksChildren(t *testing.T) {
	host := New(200, 100)

	popup, err := host.OpenPopup(40, 30, 80, 60)
	require.NoError(t, err)
	require.Len(t, host.Popups(), 1)

	child := host.Popups()[0]
	x, y := child.Position()
	assert.Equal(t, 40, x)
	assert.Equal(t, 30, y)
	w, h := popup.ClientSize()
	assert.Equal(t, 80, w)
	assert.Equal(t, 60, h)

	popup.Destroy()
	assert.Empty(t, host.Popups())
	assert.True(t, child.Destroyed())
}

func TestPointerRoutesToOpenPopup(t *testing.T) {
	host := New(200, 100)
	var rootGot, popupGot []backend.Event
	host.SetHandler(func(ev backend.Event) { rootGot = append(rootGot, ev) })

	popup, err := host.OpenPopup(40, 30, 80, 60)
	require.NoError(t, err)
	defer popup.Destroy()
	popup.SetHandler(func(ev backend.Event) { popupGot = append(popupGot, ev) })

	// A press inside the popup arrives translated into popup space.
	host.Script(backend.PointerEvent{X: 50, Y: 35, Button: backend.ButtonLeft, Action: backend.PointerPress})
	require.NoError(t, host.Run())

	require.Len(t, popupGot, 1)
	inside := popupGot[0].(backend.PointerEvent)
	assert.Equal(t, 10, inside.X)
	assert.Equal(t, 5, inside.Y)
	assert.Empty(t, rootGot)
}

func TestOutsidePressReportedToPopupNegative(t *testing.T) {
	host := New(200, 100)
	var rootGot, popupGot []backend.Event
	host.SetHandler(func(ev backend.Event) { rootGot = append(rootGot, ev) })

	popup, err := host.OpenPopup(40, 30, 80, 60)
	require.NoError(t, err)
	defer popup.Destroy()
	popup.SetHandler(func(ev backend.Event) { popupGot = append(popupGot, ev) })

	host.Script(backend.PointerEvent{X: 5, Y: 5, Button: backend.ButtonLeft, Action: backend.PointerPress})
	require.NoError(t, host.Run())

	require.Len(t, popupGot, 1)
	press := popupGot[0].(backend.PointerEvent)
	assert.Negative(t, press.X)
	assert.Negative(t, press.Y)
	assert.Equal(t, backend.PointerPress, press.Action)
	assert.Empty(t, rootGot)
}

func TestCanvasCapture(t *testing.T) {
	host := New(8, 2)
	cv := host.Canvas()
	cv.DrawText(1, 0, "hi", backend.DefaultStyle().Bold(true))

	assert.Equal(t, " hi     \n        ", host.Capture())
	assert.True(t, host.ContainsText("hi"))
	assert.False(t, host.ContainsText("bye"))
	assert.NotZero(t, host.CellStyle(1, 0).Attributes()&backend.AttrBold)
}

func TestCanvasClipsOutOfBounds(t *testing.T) {
	host := New(4, 2)
	cv := host.Canvas()
	cv.FillRect(3, 0, 5, 5, backend.DefaultStyle().Reverse(true))
	cv.SetCell(-1, 0, 'x', backend.DefaultStyle())
	cv.SetCell(4, 0, 'x', backend.DefaultStyle())
	cv.DrawText(2, 1, "long", backend.DefaultStyle())

	assert.Equal(t, "    \n  lo", host.Capture())
}

func TestResizeReplacesCanvas(t *testing.T) {
	host := New(4, 1)

	var sizes [][2]int
	host.SetHandler(func(ev backend.Event) {
		if r, ok := ev.(backend.ResizeEvent); ok {
			sizes = append(sizes, [2]int{r.Width, r.Height})
		}
	})

	host.Resize(6, 2)
	require.NoError(t, host.Run())

	w, h := host.ClientSize()
	assert.Equal(t, 6, w)
	assert.Equal(t, 2, h)
	assert.Equal(t, [][2]int{{6, 2}}, sizes)
}
