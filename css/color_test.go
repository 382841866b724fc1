package css

import (
	"math"
	"testing"
)

func TestParseColor(t *testing.T) {
	cases := []struct {
		in   string
		hex  string
		ok   bool
	}{
		{"#ff0000", "#ff0000", true},
		{"#F00", "#ff0000", true},
		{"red", "#ff0000", true},
		{"RED", "#ff0000", true},
		{"rgb(255, 0, 0)", "#ff0000", true},
		{"rgba(0, 128, 0, 0.5)", "#008000", true},
		{"rgb(100%, 0%, 0%)", "#ff0000", true},
		{"inherit", "", false},
		{"transparent", "", false},
		{"", "", false},
		{"#zzz", "", false},
		{"not-a-color", "", false},
	}
	for _, tc := range cases {
		c, ok := ParseColor(tc.in)
		if ok != tc.ok {
			t.Errorf("ParseColor(%q) ok = %v, want %v", tc.in, ok, tc.ok)
			continue
		}
		if ok && c.Hex() != tc.hex {
			t.Errorf("ParseColor(%q) = %s, want %s", tc.in, c.Hex(), tc.hex)
		}
	}
}

func TestDarkColor_FlipsLightness(t *testing.T) {
	// Black text becomes white, white background becomes black.
	if got := DarkColor("#000000"); got != "#ffffff" {
		t.Errorf("DarkColor(black) = %s, want #ffffff", got)
	}
	if got := DarkColor("white"); got != "#000000" {
		t.Errorf("DarkColor(white) = %s, want #000000", got)
	}
}

func TestDarkColor_PreservesHue(t *testing.T) {
	c, _ := ParseColor("#ff0000")
	h, _, l := c.Hsl()

	dark, ok := ParseColor(DarkColor("#ff0000"))
	if !ok {
		t.Fatal("DarkColor output should parse")
	}
	dh, _, dl := dark.Hsl()
	if math.Abs(dh-h) > 1 {
		t.Errorf("hue changed: %f -> %f", h, dh)
	}
	if math.Abs(dl-(1-l)) > 0.01 {
		t.Errorf("lightness not flipped: %f -> %f", l, dl)
	}
}

func TestDarkColor_Unparseable(t *testing.T) {
	for _, in := range []string{"inherit", "var(--fg)", ""} {
		if got := DarkColor(in); got != in {
			t.Errorf("DarkColor(%q) = %q, want input unchanged", in, got)
		}
	}
}
