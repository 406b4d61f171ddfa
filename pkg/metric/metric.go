// Package metric defines the platform metrics Slate sizes chrome against
// and the DPI scaler that converts logical units into device pixels. The
// base values are the classic 96-DPI measurements; everything downstream of
// the layout solver works in device pixels produced by a Scaler.
package metric

// Metric identifies a platform-standard measurement.
type Metric int

const (
	TitleBar Metric = iota
	TitleBarThin
	CaptionButton
	WindowMenu
	MenuHeight
	Toolbar
	ToolbarButtonHeight
	ToolbarButtonLabeledWidth
	StatusBar
	EditBox
	IconSmall
	IconMedium
	IconLarge
	ScrollbarWidth
	CheckBox
	Padding
	Margin
	Border
)

// base measurements in logical units at 96 DPI.
var baseValues = map[Metric]int{
	TitleBar:                  30,
	TitleBarThin:              20,
	CaptionButton:             18,
	WindowMenu:                256,
	MenuHeight:                20,
	Toolbar:                   20,
	ToolbarButtonHeight:       14,
	ToolbarButtonLabeledWidth: 96,
	StatusBar:                 22,
	EditBox:                   16,
	IconSmall:                 16,
	IconMedium:                24,
	IconLarge:                 32,
	ScrollbarWidth:            17,
	CheckBox:                  13,
	Padding:                   4,
	Margin:                    10,
	Border:                    1,
}

var names = map[Metric]string{
	TitleBar:                  "title-bar",
	TitleBarThin:              "title-bar-thin",
	CaptionButton:             "caption-button",
	WindowMenu:                "window-menu",
	MenuHeight:                "menu-height",
	Toolbar:                   "toolbar",
	ToolbarButtonHeight:       "toolbar-button-height",
	ToolbarButtonLabeledWidth: "toolbar-button-labeled-width",
	StatusBar:                 "status-bar",
	EditBox:                   "edit-box",
	IconSmall:                 "icon-small",
	IconMedium:                "icon-medium",
	IconLarge:                 "icon-large",
	ScrollbarWidth:            "scrollbar-width",
	CheckBox:                  "check-box",
	Padding:                   "padding",
	Margin:                    "margin",
	Border:                    "border",
}

// Base returns the metric's unscaled logical-unit value, 0 for unknown
// metrics.
func (m Metric) Base() int {
	return baseValues[m]
}

func (m Metric) String() string {
	if n, ok := names[m]; ok {
		return n
	}
	return "metric(?)"
}

// Scaler converts logical units to device pixels for one output surface.
// Factor 1.0 is 96 DPI; 1.5 is 144 DPI. A zero Scaler is unusable, use
// NewScaler.
type Scaler struct {
	factor float64
}

// NewScaler builds a scaler for the given DPI factor. Non-positive factors
// fall back to 1.0.
func NewScaler(factor float64) Scaler {
	if factor <= 0 {
		factor = 1.0
	}
	return Scaler{factor: factor}
}

// Factor returns the DPI scale factor.
func (s Scaler) Factor() float64 {
	return s.factor
}

// Px converts logical units to device pixels, rounding to nearest.
func (s Scaler) Px(logical float64) int {
	v := logical * s.factor
	if v < 0 {
		return int(v - 0.5)
	}
	return int(v + 0.5)
}

// Unpx converts device pixels back to logical units.
func (s Scaler) Unpx(px int) float64 {
	return float64(px) / s.factor
}

// Resolve returns the metric's value in device pixels.
func (s Scaler) Resolve(m Metric) int {
	return s.Px(float64(m.Base()))
}
