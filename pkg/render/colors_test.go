package render

import (
	"math"
	"testing"
)

func TestPackUnpackRoundTrip(t *testing.T) {
	tests := []struct {
		name    string
		r, g, b float64
	}{
		{"black", 0, 0, 0},
		{"white", 1, 1, 1},
		{"red", 1, 0, 0},
		{"mid gray", 0.5, 0.5, 0.5},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			packed := PackColor(tc.r, tc.g, tc.b, 1)
			rgb := UnpackColor(packed)
			if math.Abs(rgb.R-tc.r) > 1.0/255 ||
				math.Abs(rgb.G-tc.g) > 1.0/255 ||
				math.Abs(rgb.B-tc.b) > 1.0/255 {
				t.Errorf("round trip %v -> %#08x -> %v", tc, packed, rgb)
			}
			if packed>>24 != 0xFF {
				t.Errorf("alpha = %#x, want 0xFF", packed>>24)
			}
		})
	}
}

func TestPackColorClamps(t *testing.T) {
	if PackColor(2, -1, 0.5, 1)>>16&0xFF != 255 {
		t.Error("overbright channel should clamp to 255")
	}
	if PackColor(2, -1, 0.5, 1)>>8&0xFF != 0 {
		t.Error("negative channel should clamp to 0")
	}
}

func TestLerpColor(t *testing.T) {
	mid := LerpColor(ColorBlack, ColorWhite, 0.5)
	rgb := UnpackColor(mid)
	if math.Abs(rgb.R-0.5) > 0.01 {
		t.Errorf("midpoint of black/white = %v", rgb)
	}

	if LerpColor(ColorRed, ColorBlue, 0) != ColorRed {
		t.Error("t=0 should return the first color")
	}
	if LerpColor(ColorRed, ColorBlue, 1) != ColorBlue {
		t.Error("t=1 should return the second color")
	}
}

func TestModulate(t *testing.T) {
	half := Modulate(ColorWhite, 0.5)
	rgb := UnpackColor(half)
	if math.Abs(rgb.R-0.5) > 0.01 || math.Abs(rgb.G-0.5) > 0.01 || math.Abs(rgb.B-0.5) > 0.01 {
		t.Errorf("white at half intensity = %v", rgb)
	}
	if half>>24 != 0xFF {
		t.Error("modulate must preserve alpha")
	}
	if Modulate(ColorRed, 0) != ColorBlack {
		t.Error("zero intensity should go black")
	}
}

func TestPackRGB(t *testing.T) {
	if PackRGB(0x12, 0x34, 0x56) != 0xFF123456 {
		t.Errorf("PackRGB = %#08x", PackRGB(0x12, 0x34, 0x56))
	}
}
