package layout

import (
	"github.com/odvcencio/slate/pkg/backend"
	"github.com/odvcencio/slate/pkg/property"
	"github.com/odvcencio/slate/pkg/telemetry"
	"github.com/odvcencio/slate/pkg/widget"
)

// Layout is a grid of tracks with a cell at every intersection.
type Layout struct {
	surface Surface
	store   *property.Store
	rows    []Track
	cols    []Track
	cells   []*Cell
	named   map[string][2]int
	last    widget.Rect

	drag *dragState
}

type dragState struct {
	vertical bool // true when dragging a column splitter
	index    int
}

// New creates a layout with the given grid size. Every track starts as
// Fill(1) with a 20 logical pixel minimum, matching a plain resizable
// grid.
func New(surface Surface, rows, cols int) *Layout {
	if rows < 1 {
		rows = 1
	}
	if cols < 1 {
		cols = 1
	}
	l := &Layout{
		surface: surface,
		store:   property.NewStore(),
		rows:    make([]Track, rows),
		cols:    make([]Track, cols),
		named:   make(map[string][2]int),
	}
	for i := range l.rows {
		l.rows[i] = defaultTrack()
	}
	for i := range l.cols {
		l.cols[i] = defaultTrack()
	}
	l.cells = make([]*Cell, rows*cols)
	for i := range l.cells {
		l.cells[i] = newCell(surface, l.store)
	}
	return l
}

// Store returns the layout's property store, the cascade parent of its
// cells.
func (l *Layout) Store() *property.Store { return l.store }

// SetParentStore chains the layout under an outer property store.
func (l *Layout) SetParentStore(parent *property.Store) {
	l.store.SetParent(parent)
}

// Rows returns the number of row tracks.
func (l *Layout) Rows() int { return len(l.rows) }

// Cols returns the number of column tracks.
func (l *Layout) Cols() int { return len(l.cols) }

// SetRow configures a row track. splitter adds a drag band after the row.
// Out-of-range indexes are ignored.
func (l *Layout) SetRow(i int, policy TrackSize, splitter bool, min TrackSize) {
	if i < 0 || i >= len(l.rows) {
		return
	}
	l.rows[i].Policy = policy
	l.rows[i].Splitter = splitter
	l.rows[i].Min = min
}

// SetCol configures a column track.
func (l *Layout) SetCol(i int, policy TrackSize, splitter bool, min TrackSize) {
	if i < 0 || i >= len(l.cols) {
		return
	}
	l.cols[i].Policy = policy
	l.cols[i].Splitter = splitter
	l.cols[i].Min = min
}

// Row returns a row track for inspection, nil if out of range.
func (l *Layout) Row(i int) *Track {
	if i < 0 || i >= len(l.rows) {
		return nil
	}
	return &l.rows[i]
}

// Col returns a column track for inspection, nil if out of range.
func (l *Layout) Col(i int) *Track {
	if i < 0 || i >= len(l.cols) {
		return nil
	}
	return &l.cols[i]
}

// Cell returns the cell at (row, col), nil if out of range.
func (l *Layout) Cell(row, col int) *Cell {
	if row < 0 || row >= len(l.rows) || col < 0 || col >= len(l.cols) {
		return nil
	}
	return l.cells[row*len(l.cols)+col]
}

// SetCellName names a cell so it can be fetched without grid coordinates.
func (l *Layout) SetCellName(row, col int, name string) {
	if name == "" || l.Cell(row, col) == nil {
		return
	}
	l.named[name] = [2]int{row, col}
}

// CellNamed returns the cell registered under name, nil if unknown.
func (l *Layout) CellNamed(name string) *Cell {
	rc, ok := l.named[name]
	if !ok {
		return nil
	}
	return l.Cell(rc[0], rc[1])
}

// Arrange solves both axes and places every cell. The solved geometry
// stays valid until the next Arrange; splitter drags and collapses re-run
// it with the last rectangle.
func (l *Layout) Arrange(r widget.Rect) {
	l.last = r
	l.solve(l.rows, r.H, r.Y)
	l.solve(l.cols, r.W, r.X)

	for row := 0; row < len(l.rows); row++ {
		for col := 0; col < len(l.cols); col++ {
			cell := l.cells[row*len(l.cols)+col]
			cell.setBounds(widget.Rect{
				X: l.cols[col].pos,
				Y: l.rows[row].pos,
				W: l.cols[col].size,
				H: l.rows[row].size,
			})
		}
	}

	if hub := l.surface.Telemetry(); hub != nil {
		hub.Emit(telemetry.EventLayoutArranged, "layout", map[string]any{
			"rows": len(l.rows),
			"cols": len(l.cols),
			"w":    r.W,
			"h":    r.H,
		})
	}
}

// solve sizes one axis. Fixed policies are resolved first and floored at
// their minimums; fill tracks then split whatever is left by weight, each
// also floored at its minimum. The floor can push the sum past the axis
// size; overflow is allowed, not an error.
func (l *Layout) solve(dims []Track, total, offset int) {
	sc := l.surface.Scaler()
	sSize := sc.Px(SplitterSize)

	avail := total
	fillWeights := 0.0
	for i := range dims {
		d := &dims[i]
		if d.Splitter {
			avail -= sSize
		}
		minPx := d.Min.resolveMin(total, sc)
		switch d.Policy.Unit {
		case UnitPixels:
			d.size = max(sc.Px(d.Policy.Value), minPx)
		case UnitMetric:
			d.size = max(sc.Resolve(d.Policy.Metric), minPx)
		case UnitPercent:
			d.size = max(int(float64(total)*d.Policy.Value/100), minPx)
		default:
			d.size = 0
			fillWeights += d.Policy.Value
			continue
		}
		avail -= d.size
	}

	if fillWeights > 0 {
		for i := range dims {
			d := &dims[i]
			if d.Policy.Unit != UnitFill {
				continue
			}
			share := 0
			if avail > 0 {
				share = int(float64(avail) * d.Policy.Value / fillWeights)
			}
			d.size = max(share, d.Min.resolveMin(total, sc))
		}
	}

	cur := offset
	for i := range dims {
		dims[i].pos = cur
		cur += dims[i].size
		if dims[i].Splitter {
			cur += sSize
		}
	}
}

// MinimumSize returns the smallest rectangle the grid can occupy: fixed
// tracks at their resolved size, everything else at its pixel minimum,
// plus splitter bands.
func (l *Layout) MinimumSize() (w, h int) {
	sc := l.surface.Scaler()
	sSize := sc.Px(SplitterSize)

	for i := range l.rows {
		t := &l.rows[i]
		if t.Splitter {
			h += sSize
		}
		switch t.Policy.Unit {
		case UnitPixels:
			h += sc.Px(t.Policy.Value)
		case UnitMetric:
			h += sc.Resolve(t.Policy.Metric)
		default:
			if t.Min.Unit == UnitPixels {
				h += sc.Px(t.Min.Value)
			}
		}
	}
	for i := range l.cols {
		t := &l.cols[i]
		if t.Splitter {
			w += sSize
		}
		switch t.Policy.Unit {
		case UnitPixels:
			w += sc.Px(t.Policy.Value)
		default:
			if t.Min.Unit == UnitPixels {
				w += sc.Px(t.Min.Value)
			}
		}
	}
	return w, h
}

// DragColSplitter resizes the column at index so its right edge follows
// the pointer's x position. The new size is clamped between the column's
// minimum and the space left after every later column keeps its minimum
// (splitter bands included). The column's policy converts to the dragged
// size: percent policies stay percent, everything else becomes fixed.
func (l *Layout) DragColSplitter(index, pointer int) {
	l.dragTrack(l.cols, index, pointer, l.last.W, true)
}

// DragRowSplitter resizes the row at index so its bottom edge follows the
// pointer's y position.
func (l *Layout) DragRowSplitter(index, pointer int) {
	l.dragTrack(l.rows, index, pointer, l.last.H, false)
}

func (l *Layout) dragTrack(dims []Track, index, pointer, total int, vertical bool) {
	if index < 0 || index >= len(dims) || !dims[index].Splitter {
		return
	}
	sc := l.surface.Scaler()
	sSize := sc.Px(SplitterSize)

	laterMin := 0
	for i := index + 1; i < len(dims); i++ {
		laterMin += dims[i].Min.resolveMin(total, sc)
		if dims[i].Splitter {
			laterMin += sSize
		}
	}

	t := &dims[index]
	newSize := pointer - t.pos
	newSize = max(newSize, t.Min.resolveMin(total, sc))
	newSize = min(newSize, (total-laterMin)-t.pos)

	switch t.Policy.Unit {
	case UnitPercent:
		if total > 0 {
			t.Policy = Percentage(100 * float64(newSize) / float64(total))
		}
	default:
		t.Policy = Fixed(sc.Unpx(newSize))
	}

	l.Arrange(l.last)
	if hub := l.surface.Telemetry(); hub != nil {
		hub.Emit(telemetry.EventSplitterDrag, "layout", map[string]any{
			"vertical": vertical,
			"index":    index,
			"size":     newSize,
		})
	}
}

// CollapseColumn shrinks a column to its minimum, remembering its policy.
// Collapsing an already collapsed column does nothing, so the saved
// policy is never overwritten with the minimum.
func (l *Layout) CollapseColumn(index int) {
	l.collapse(l.cols, index)
}

// RestoreColumn reverses CollapseColumn.
func (l *Layout) RestoreColumn(index int) {
	l.restore(l.cols, index)
}

// IsColumnCollapsed reports whether the column is collapsed.
func (l *Layout) IsColumnCollapsed(index int) bool {
	return index >= 0 && index < len(l.cols) && l.cols[index].collapsed
}

// CollapseRow shrinks a row to its minimum, remembering its policy.
func (l *Layout) CollapseRow(index int) {
	l.collapse(l.rows, index)
}

// RestoreRow reverses CollapseRow.
func (l *Layout) RestoreRow(index int) {
	l.restore(l.rows, index)
}

// IsRowCollapsed reports whether the row is collapsed.
func (l *Layout) IsRowCollapsed(index int) bool {
	return index >= 0 && index < len(l.rows) && l.rows[index].collapsed
}

func (l *Layout) collapse(dims []Track, index int) {
	if index < 0 || index >= len(dims) {
		return
	}
	t := &dims[index]
	if t.collapsed {
		return
	}
	t.savedPolicy = t.Policy
	t.Policy = t.Min
	t.collapsed = true
	l.Arrange(l.last)
	if hub := l.surface.Telemetry(); hub != nil {
		hub.Emit(telemetry.EventTrackCollapsed, "layout", map[string]any{"index": index})
	}
}

func (l *Layout) restore(dims []Track, index int) {
	if index < 0 || index >= len(dims) {
		return
	}
	t := &dims[index]
	if !t.collapsed {
		return
	}
	t.Policy = t.savedPolicy
	t.collapsed = false
	l.Arrange(l.last)
	if hub := l.surface.Telemetry(); hub != nil {
		hub.Emit(telemetry.EventTrackRestored, "layout", map[string]any{"index": index})
	}
}

// SplitterAt hit-tests the splitter bands. vertical is true for a column
// splitter.
func (l *Layout) SplitterAt(x, y int) (index int, vertical, ok bool) {
	sSize := l.surface.Scaler().Px(SplitterSize)
	for i := range l.cols {
		if !l.cols[i].Splitter {
			continue
		}
		sx := l.cols[i].pos + l.cols[i].size
		if x >= sx && x < sx+sSize && y >= l.last.Y && y < l.last.Y+l.last.H {
			return i, true, true
		}
	}
	for i := range l.rows {
		if !l.rows[i].Splitter {
			continue
		}
		sy := l.rows[i].pos + l.rows[i].size
		if y >= sy && y < sy+sSize && x >= l.last.X && x < l.last.X+l.last.W {
			return i, false, true
		}
	}
	return 0, false, false
}

// HandleEvent routes input: pointer presses on a splitter start a drag,
// moves continue it, releases end it; everything else goes to the cells.
func (l *Layout) HandleEvent(ev backend.Event) bool {
	if p, isPointer := ev.(backend.PointerEvent); isPointer {
		switch p.Action {
		case backend.PointerPress:
			if index, vertical, ok := l.SplitterAt(p.X, p.Y); ok && p.Button == backend.ButtonLeft {
				l.drag = &dragState{vertical: vertical, index: index}
				return true
			}
		case backend.PointerMove:
			if l.drag != nil {
				if l.drag.vertical {
					l.DragColSplitter(l.drag.index, p.X)
				} else {
					l.DragRowSplitter(l.drag.index, p.Y)
				}
				return true
			}
		case backend.PointerRelease:
			if l.drag != nil {
				l.drag = nil
				return true
			}
		}
	}
	for _, cell := range l.cells {
		if cell.HandleEvent(ev) {
			return true
		}
	}
	return false
}

// Paint draws every cell and splitter band.
func (l *Layout) Paint(cv backend.Canvas) {
	sSize := l.surface.Scaler().Px(SplitterSize)
	splitterStyle := backend.DefaultStyle().Dim(true)

	for i := range l.cols {
		if l.cols[i].Splitter {
			cv.FillRect(l.cols[i].pos+l.cols[i].size, l.last.Y, sSize, l.last.H, splitterStyle)
		}
	}
	for i := range l.rows {
		if l.rows[i].Splitter {
			cv.FillRect(l.last.X, l.rows[i].pos+l.rows[i].size, l.last.W, sSize, splitterStyle)
		}
	}
	for _, cell := range l.cells {
		cell.Paint(cv)
	}
}

// Destroy tears down every cell and its widgets.
func (l *Layout) Destroy() {
	for _, cell := range l.cells {
		cell.Destroy()
	}
	l.cells = nil
}
