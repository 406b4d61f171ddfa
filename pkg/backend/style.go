package backend

import "github.com/odvcencio/slate/pkg/property"

// Color represents a drawing color. Values 0-255 are palette colors,
// RGB-flagged values are true colors.
type Color int32

const (
	ColorDefault Color = -1
	ColorBlack   Color = 0
	ColorRed     Color = 1
	ColorGreen   Color = 2
	ColorYellow  Color = 3
	ColorBlue    Color = 4
	ColorMagenta Color = 5
	ColorCyan    Color = 6
	ColorWhite   Color = 7
)

// ColorRGB creates a true color from RGB components.
func ColorRGB(r, g, b uint8) Color {
	return Color(int32(r)<<16 | int32(g)<<8 | int32(b) | 0x01000000)
}

// ColorOf converts a style property color to a backend color.
func ColorOf(c property.RGB) Color {
	return ColorRGB(c.R, c.G, c.B)
}

// IsRGB returns true if this is a true color (not palette).
func (c Color) IsRGB() bool {
	return c >= 0 && c&0x01000000 != 0
}

// RGB returns the components of a true color, 0,0,0 otherwise.
func (c Color) RGB() (r, g, b uint8) {
	if !c.IsRGB() {
		return 0, 0, 0
	}
	return uint8((c >> 16) & 0xFF), uint8((c >> 8) & 0xFF), uint8(c & 0xFF)
}

// AttrMask represents text attributes.
type AttrMask uint32

const (
	AttrBold AttrMask = 1 << iota
	AttrUnderline
	AttrReverse
	AttrDim
)

// Style combines foreground, background colors and attributes.
type Style struct {
	fg    Color
	bg    Color
	attrs AttrMask
}

// DefaultStyle returns the default style (default colors, no attributes).
func DefaultStyle() Style {
	return Style{fg: ColorDefault, bg: ColorDefault}
}

// Foreground sets the foreground color.
func (s Style) Foreground(c Color) Style {
	s.fg = c
	return s
}

// Background sets the background color.
func (s Style) Background(c Color) Style {
	s.bg = c
	return s
}

// Bold enables or disables bold.
func (s Style) Bold(on bool) Style {
	if on {
		s.attrs |= AttrBold
	} else {
		s.attrs &^= AttrBold
	}
	return s
}

// Underline enables or disables underline.
func (s Style) Underline(on bool) Style {
	if on {
		s.attrs |= AttrUnderline
	} else {
		s.attrs &^= AttrUnderline
	}
	return s
}

// Reverse enables or disables reverse video.
func (s Style) Reverse(on bool) Style {
	if on {
		s.attrs |= AttrReverse
	} else {
		s.attrs &^= AttrReverse
	}
	return s
}

// Dim enables or disables dim.
func (s Style) Dim(on bool) Style {
	if on {
		s.attrs |= AttrDim
	} else {
		s.attrs &^= AttrDim
	}
	return s
}

// FG returns the foreground color.
func (s Style) FG() Color { return s.fg }

// BG returns the background color.
func (s Style) BG() Color { return s.bg }

// Attributes returns all attributes.
func (s Style) Attributes() AttrMask { return s.attrs }

// Decompose returns the foreground, background, and attributes.
func (s Style) Decompose() (fg, bg Color, attrs AttrMask) {
	return s.fg, s.bg, s.attrs
}
