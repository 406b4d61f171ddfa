package property

import "fmt"

// RGB is a 24-bit color carried through string properties as "#RRGGBB".
type RGB struct {
	R, G, B uint8
}

// Hex formats the color as "#RRGGBB".
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// ParseHexColor parses "#RRGGBB". Anything else reports ok=false.
func ParseHexColor(s string) (RGB, bool) {
	if len(s) != 7 || s[0] != '#' {
		return RGB{}, false
	}
	var c RGB
	if _, err := fmt.Sscanf(s[1:], "%02x%02x%02x", &c.R, &c.G, &c.B); err != nil {
		return RGB{}, false
	}
	return c, true
}

// SetColor stores a color under key in "#RRGGBB" form.
func (s *Store) SetColor(key string, c RGB) *Store {
	return s.Set(key, c.Hex())
}

// Color resolves key through the cascade and parses it as a hex color,
// returning def when the property is absent or malformed.
func (s *Store) Color(key string, def RGB) RGB {
	if c, ok := ParseHexColor(s.Get(key, "")); ok {
		return c
	}
	return def
}
