package css

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// namedColors covers the CSS basic palette plus the names that show up in
// pasted editor content. Unknown names simply fail to parse.
var namedColors = map[string]string{
	"black":     "#000000",
	"silver":    "#c0c0c0",
	"gray":      "#808080",
	"grey":      "#808080",
	"white":     "#ffffff",
	"maroon":    "#800000",
	"red":       "#ff0000",
	"purple":    "#800080",
	"fuchsia":   "#ff00ff",
	"magenta":   "#ff00ff",
	"green":     "#008000",
	"lime":      "#00ff00",
	"olive":     "#808000",
	"yellow":    "#ffff00",
	"navy":      "#000080",
	"blue":      "#0000ff",
	"teal":      "#008080",
	"aqua":      "#00ffff",
	"cyan":      "#00ffff",
	"orange":    "#ffa500",
	"brown":     "#a52a2a",
	"pink":      "#ffc0cb",
	"gold":      "#ffd700",
	"indigo":    "#4b0082",
	"violet":    "#ee82ee",
	"darkred":   "#8b0000",
	"darkblue":  "#00008b",
	"darkgreen": "#006400",
	"darkgray":  "#a9a9a9",
	"darkgrey":  "#a9a9a9",
	"lightgray": "#d3d3d3",
	"lightgrey": "#d3d3d3",
	"lightblue": "#add8e6",
	"beige":     "#f5f5dc",
	"ivory":     "#fffff0",
	"coral":     "#ff7f50",
	"salmon":    "#fa8072",
	"khaki":     "#f0e68c",
	"crimson":   "#dc143c",
	"tomato":    "#ff6347",
}

// ParseColor parses a CSS color value: #rgb, #rrggbb, rgb()/rgba(), or a
// named color. The second return is false for anything else (keywords like
// inherit or transparent included).
func ParseColor(s string) (colorful.Color, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return colorful.Color{}, false
	}

	if hex, ok := namedColors[s]; ok {
		s = hex
	}

	if strings.HasPrefix(s, "#") {
		if len(s) == 4 {
			s = fmt.Sprintf("#%c%c%c%c%c%c", s[1], s[1], s[2], s[2], s[3], s[3])
		}
		c, err := colorful.Hex(s)
		if err != nil {
			return colorful.Color{}, false
		}
		return c, true
	}

	if strings.HasPrefix(s, "rgb(") || strings.HasPrefix(s, "rgba(") {
		inner := s[strings.IndexByte(s, '(')+1:]
		inner = strings.TrimSuffix(inner, ")")
		inner = strings.ReplaceAll(inner, "/", ",")
		parts := strings.FieldsFunc(inner, func(r rune) bool { return r == ',' || r == ' ' })
		if len(parts) < 3 {
			return colorful.Color{}, false
		}
		var ch [3]float64
		for i := 0; i < 3; i++ {
			p := strings.TrimSpace(parts[i])
			if strings.HasSuffix(p, "%") {
				pct, err := strconv.ParseFloat(strings.TrimSuffix(p, "%"), 64)
				if err != nil {
					return colorful.Color{}, false
				}
				ch[i] = clamp01(pct / 100)
			} else {
				v, err := strconv.ParseFloat(p, 64)
				if err != nil {
					return colorful.Color{}, false
				}
				ch[i] = clamp01(v / 255)
			}
		}
		return colorful.Color{R: ch[0], G: ch[1], B: ch[2]}, true
	}

	return colorful.Color{}, false
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// DarkColor is the default light-to-dark color mapping: lightness is
// flipped around the HSL mid-point while hue and saturation are preserved,
// so dark text becomes light and light backgrounds become dark. Values that
// do not parse are returned unchanged.
func DarkColor(s string) string {
	c, ok := ParseColor(s)
	if !ok {
		return s
	}
	h, sat, l := c.Hsl()
	return colorful.Hsl(h, sat, 1-l).Clamped().Hex()
}
