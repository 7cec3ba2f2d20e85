package render

import (
	"math"
	"testing"

	"github.com/BeyondBelief96/rusterize/pkg/math3d"
)

func TestLightDirectIllumination(t *testing.T) {
	// Light pointing toward -Z, normal facing +Z (toward the light)
	light := NewDirectionalLight(math3d.V3(0, 0, -1))
	if i := light.Intensity(math3d.V3(0, 0, 1)); math.Abs(i-1) > 0.001 {
		t.Errorf("head-on intensity = %g, want 1", i)
	}
}

func TestLightNoIllumination(t *testing.T) {
	// Normal facing away from the light clamps to zero, never negative
	light := NewDirectionalLight(math3d.V3(0, 0, -1))
	if i := light.Intensity(math3d.V3(0, 0, -1)); i != 0 {
		t.Errorf("back-facing intensity = %g, want 0", i)
	}
}

func TestLightAngledIllumination(t *testing.T) {
	// Light straight down, normal at 45 degrees: cos(45) ~ 0.707
	light := NewDirectionalLight(math3d.V3(0, -1, 0))
	i := light.Intensity(math3d.V3(0, 1, 1).Normalize())
	if math.Abs(i-0.707) > 0.01 {
		t.Errorf("angled intensity = %g, want ~0.707", i)
	}
}

func TestLightIntensityRange(t *testing.T) {
	light := NewDirectionalLight(math3d.V3(0.3, -0.8, 0.5))
	normals := []math3d.Vec3{
		{X: 1}, {Y: 1}, {Z: 1},
		{X: -1, Y: -1, Z: -1},
		{X: 0.3, Y: -0.8, Z: 0.5},
	}
	for _, n := range normals {
		if i := light.Intensity(n); i < 0 || i > 1 {
			t.Errorf("intensity for %v = %g, want [0,1]", n, i)
		}
	}
}

func TestLightNormalizesDirection(t *testing.T) {
	light := NewDirectionalLight(math3d.V3(0, 0, -10))
	if math.Abs(light.Direction.Len()-1) > 1e-9 {
		t.Errorf("direction length = %g, want 1", light.Direction.Len())
	}
}
