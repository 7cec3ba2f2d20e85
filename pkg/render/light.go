package render

import (
	"math"

	"github.com/BeyondBelief96/rusterize/pkg/math3d"
)

// DirectionalLight illuminates the scene uniformly from a direction, like
// a distant sun: all rays are effectively parallel.
type DirectionalLight struct {
	// Direction is the normalized direction the light points
	// (not where it comes from).
	Direction math3d.Vec3
	// AmbientIntensity is the base light level in [0, 1].
	AmbientIntensity float64
	// DiffuseStrength multiplies the diffuse contribution.
	DiffuseStrength float64
}

// NewDirectionalLight creates a light pointing in the given direction
// (normalized automatically) with the default ambient and diffuse terms.
func NewDirectionalLight(direction math3d.Vec3) DirectionalLight {
	return DirectionalLight{
		Direction:        direction.Normalize(),
		AmbientIntensity: 0.1,
		DiffuseStrength:  1,
	}
}

// Intensity returns the Lambertian intensity in [0, 1] for a surface
// normal: the light direction is negated so a surface facing the light
// yields a positive dot product.
func (l DirectionalLight) Intensity(normal math3d.Vec3) float64 {
	return math.Max(0, l.Direction.Negate().Dot(normal.Normalize()))
}
