package worldmap

import (
	"image/color"
	"strconv"
	"strings"
)

// namedColors covers the CSS color keywords that show up in practice in map
// styling. Unknown names fall back to black, matching SVG's behavior of
// painting something rather than failing.
var namedColors = map[string]color.RGBA{
	"black":     {0, 0, 0, 255},
	"white":     {255, 255, 255, 255},
	"red":       {255, 0, 0, 255},
	"green":     {0, 128, 0, 255},
	"blue":      {0, 0, 255, 255},
	"yellow":    {255, 255, 0, 255},
	"orange":    {255, 165, 0, 255},
	"purple":    {128, 0, 128, 255},
	"navy":      {0, 0, 128, 255},
	"teal":      {0, 128, 128, 255},
	"olive":     {128, 128, 0, 255},
	"maroon":    {128, 0, 0, 255},
	"gray":      {128, 128, 128, 255},
	"grey":      {128, 128, 128, 255},
	"silver":    {192, 192, 192, 255},
	"skyblue":   {135, 206, 235, 255},
	"steelblue": {70, 130, 180, 255},
	"tomato":    {255, 99, 71, 255},
	"limegreen": {50, 205, 50, 255},
	"crimson":   {220, 20, 60, 255},
	"gold":      {255, 215, 0, 255},
	"indigo":    {75, 0, 130, 255},
	"coral":     {255, 127, 80, 255},
}

// parseColor parses "#rgb", "#rrggbb", "#rrggbbaa" and common color names.
func parseColor(s string) color.RGBA {
	s = strings.ToLower(strings.TrimSpace(s))
	if c, ok := namedColors[s]; ok {
		return c
	}
	if strings.HasPrefix(s, "#") {
		hex := s[1:]
		if len(hex) == 3 {
			hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
		}
		if len(hex) == 6 || len(hex) == 8 {
			if v, err := strconv.ParseUint(hex[:6], 16, 32); err == nil {
				c := color.RGBA{uint8(v >> 16), uint8(v >> 8), uint8(v), 255}
				if len(hex) == 8 {
					if a, err := strconv.ParseUint(hex[6:], 16, 8); err == nil {
						c.A = uint8(a)
					}
				}
				return c
			}
		}
	}
	return color.RGBA{0, 0, 0, 255}
}

// blend composites c over bg with the given opacity, producing the flat
// color a filled shape shows against the background.
func blend(bg, c color.RGBA, opacity float64) color.RGBA {
	if opacity < 0 {
		opacity = 0
	}
	if opacity > 1 {
		opacity = 1
	}
	a := opacity * float64(c.A) / 255
	mix := func(b, f uint8) uint8 {
		return uint8(float64(b)*(1-a) + float64(f)*a + 0.5)
	}
	return color.RGBA{mix(bg.R, c.R), mix(bg.G, c.G), mix(bg.B, c.B), 255}
}
