package backend

import (
	"testing"

	"github.com/odvcencio/slate/pkg/property"
)

func TestColorRGBRoundTrip(t *testing.T) {
	c := ColorRGB(0x12, 0x34, 0x56)
	if !c.IsRGB() {
		t.Fatal("expected RGB color")
	}
	r, g, b := c.RGB()
	if r != 0x12 || g != 0x34 || b != 0x56 {
		t.Fatalf("RGB() = %x %x %x", r, g, b)
	}

	if ColorDefault.IsRGB() {
		t.Fatal("default is not RGB")
	}
	if ColorRed.IsRGB() {
		t.Fatal("palette color is not RGB")
	}
}

func TestColorOf(t *testing.T) {
	c := ColorOf(property.RGB{R: 1, G: 2, B: 3})
	r, g, b := c.RGB()
	if r != 1 || g != 2 || b != 3 {
		t.Fatalf("ColorOf = %x %x %x", r, g, b)
	}
}

func TestStyleAttributes(t *testing.T) {
	s := DefaultStyle().
		Foreground(ColorWhite).
		Background(ColorBlue).
		Bold(true).
		Underline(true)

	fg, bg, attrs := s.Decompose()
	if fg != ColorWhite || bg != ColorBlue {
		t.Fatalf("colors = %v %v", fg, bg)
	}
	if attrs&AttrBold == 0 || attrs&AttrUnderline == 0 {
		t.Fatalf("attrs = %b", attrs)
	}

	s = s.Bold(false)
	if s.Attributes()&AttrBold != 0 {
		t.Fatal("bold not cleared")
	}
	if s.Attributes()&AttrUnderline == 0 {
		t.Fatal("underline lost on clear of bold")
	}
}
