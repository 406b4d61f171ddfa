// Package layout implements Slate's track-based grid solver and the cells
// that arrange widgets inside the solved grid. A Layout divides a surface
// into rows and columns sized by policy (fixed pixels, percent, fill
// weight, or a platform metric), with optional drag splitters and
// collapsible tracks. Each grid intersection holds a Cell that stacks its
// widgets vertically, horizontally, as tabs, or as a command bar with
// overflow.
package layout

import (
	"github.com/odvcencio/slate/pkg/backend"
	"github.com/odvcencio/slate/pkg/metric"
	"github.com/odvcencio/slate/pkg/telemetry"
	"github.com/odvcencio/slate/pkg/widget"
)

// Surface is what a layout needs from its owning container: the host
// window, the DPI scaler, focus registration for widgets entering and
// leaving cells, and the telemetry hub. The container package implements
// it.
type Surface interface {
	// Host returns the backing window surface.
	Host() backend.Host

	// Scaler converts logical units to device pixels for this surface.
	Scaler() metric.Scaler

	// Register adds a widget to the surface's focus order.
	Register(w widget.Widget)

	// Unregister removes a widget from the focus order.
	Unregister(w widget.Widget)

	// Telemetry returns the event hub. May return nil.
	Telemetry() *telemetry.Hub
}
