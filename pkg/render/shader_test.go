package render

import (
	"math"
	"testing"

	"github.com/BeyondBelief96/rusterize/pkg/math3d"
)

func TestFlatShader(t *testing.T) {
	s := NewFlatShader(ColorMagenta)
	if s.Shade([3]float64{1, 0, 0}) != ColorMagenta {
		t.Error("flat shader must ignore barycentrics")
	}
	if s.Shade([3]float64{0.2, 0.3, 0.5}) != ColorMagenta {
		t.Error("flat shader must ignore barycentrics")
	}
}

func TestGouraudShader(t *testing.T) {
	s := NewGouraudShader([3]uint32{ColorRed, ColorGreen, ColorBlue})

	tests := []struct {
		name   string
		lambda [3]float64
		want   RGB
	}{
		{"vertex 0", [3]float64{1, 0, 0}, RGB{R: 1}},
		{"vertex 1", [3]float64{0, 1, 0}, RGB{G: 1}},
		{"vertex 2", [3]float64{0, 0, 1}, RGB{B: 1}},
		{"centroid", [3]float64{1.0 / 3, 1.0 / 3, 1.0 / 3}, RGB{R: 1.0 / 3, G: 1.0 / 3, B: 1.0 / 3}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := UnpackColor(s.Shade(tc.lambda))
			if math.Abs(got.R-tc.want.R) > 0.01 ||
				math.Abs(got.G-tc.want.G) > 0.01 ||
				math.Abs(got.B-tc.want.B) > 0.01 {
				t.Errorf("Shade(%v) = %v, want %v", tc.lambda, got, tc.want)
			}
		})
	}
}

// blackWhiteTexture has a black left half and a white right half, so the
// sampled color reveals which side of u = 0.5 an interpolated UV landed on.
func blackWhiteTexture() *Texture {
	tex := NewTexture(2, 1)
	tex.SetPixel(0, 0, ColorBlack)
	tex.SetPixel(1, 0, ColorWhite)
	return tex
}

func TestTextureShaderAffineMidpoint(t *testing.T) {
	uvs := [3]math3d.Vec2{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}}
	s := NewTextureShader(blackWhiteTexture(), uvs)

	// Affine interpolation puts the halfway point at u = 0.5
	got := s.Shade([3]float64{0.5, 0.5, 0})
	if got != ColorWhite {
		t.Errorf("affine midpoint sampled %#08x, want the u=0.5 texel", got)
	}
}

func TestPerspectiveTextureShaderDepthStretch(t *testing.T) {
	// Vertex 0 at w=1, vertex 1 at w=10: the screen midpoint corresponds
	// to a point much nearer the close vertex in texture space.
	// u = (0.5*0/1 + 0.5*1/10) / (0.5/1 + 0.5/10) = 0.0909...
	uvs := [3]math3d.Vec2{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}}
	points := [3]math3d.Vec3{{X: 0, Y: 0, Z: 1}, {X: 100, Y: 0, Z: 10}, {X: 0, Y: 100, Z: 1}}

	s := NewPerspectiveTextureShader(blackWhiteTexture(), uvs, points)
	got := s.Shade([3]float64{0.5, 0.5, 0})
	if got != ColorBlack {
		t.Errorf("perspective midpoint sampled %#08x, want the near-side texel", got)
	}

	// At a vertex the correction is exact
	if s.Shade([3]float64{1, 0, 0}) != ColorBlack {
		t.Error("vertex 0 should sample u=0")
	}
}

func TestTextureModulateShader(t *testing.T) {
	tex := NewTexture(1, 1)
	tex.SetPixel(0, 0, ColorWhite)

	uvs := [3]math3d.Vec2{}
	// Vertex lighting at half intensity on every vertex
	half := PackColor(0.5, 0.5, 0.5, 1)
	s := NewTextureModulateShader(tex, uvs, [3]uint32{half, half, half})

	got := UnpackColor(s.Shade([3]float64{1.0 / 3, 1.0 / 3, 1.0 / 3}))
	if math.Abs(got.R-0.5) > 0.01 {
		t.Errorf("modulated white at half light = %v", got)
	}
}

func TestPerspectiveTextureModulateShader(t *testing.T) {
	tex := NewTexture(1, 1)
	tex.SetPixel(0, 0, ColorWhite)

	points := [3]math3d.Vec3{{Z: 1}, {Z: 1}, {Z: 1}}
	s := NewPerspectiveTextureModulateShader(tex, [3]math3d.Vec2{}, points,
		[3]uint32{ColorBlack, ColorWhite, ColorBlack})

	// With uniform w the correction reduces to affine interpolation
	got := UnpackColor(s.Shade([3]float64{0, 1, 0}))
	if got.R < 0.99 {
		t.Errorf("full-intensity vertex = %v, want white", got)
	}
	got = UnpackColor(s.Shade([3]float64{1, 0, 0}))
	if got.R > 0.01 {
		t.Errorf("zero-intensity vertex = %v, want black", got)
	}
}
