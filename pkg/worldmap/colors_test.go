package worldmap

import (
	"image/color"
	"testing"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want color.RGBA
	}{
		{"steelblue", color.RGBA{70, 130, 180, 255}},
		{" Red ", color.RGBA{255, 0, 0, 255}},
		{"#fff", color.RGBA{255, 255, 255, 255}},
		{"#336699", color.RGBA{0x33, 0x66, 0x99, 255}},
		{"#33669980", color.RGBA{0x33, 0x66, 0x99, 0x80}},
		{"no-such-color", color.RGBA{0, 0, 0, 255}},
		{"#zzzzzz", color.RGBA{0, 0, 0, 255}},
	}
	for _, tt := range tests {
		if got := parseColor(tt.in); got != tt.want {
			t.Errorf("parseColor(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestBlend(t *testing.T) {
	white := color.RGBA{255, 255, 255, 255}
	black := color.RGBA{0, 0, 0, 255}

	if got := blend(white, black, 0); got != white {
		t.Errorf("blend at opacity 0 = %v, want background", got)
	}
	if got := blend(white, black, 1); got != black {
		t.Errorf("blend at opacity 1 = %v, want foreground", got)
	}
	if got := blend(white, black, 0.5); got.R < 126 || got.R > 129 {
		t.Errorf("blend at opacity 0.5 = %v, want mid gray", got)
	}
	// Out-of-range opacities clamp instead of overflowing.
	if got := blend(white, black, 2); got != black {
		t.Errorf("blend at opacity 2 = %v, want foreground", got)
	}
	if got := blend(white, black, -1); got != white {
		t.Errorf("blend at opacity -1 = %v, want background", got)
	}
}
