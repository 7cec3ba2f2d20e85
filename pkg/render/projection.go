package render

import (
	"math"

	"github.com/BeyondBelief96/rusterize/pkg/math3d"
)

// Projection is the single source of truth for the perspective projection
// parameters: vertical FOV, aspect ratio, near and far planes. Aspect is
// mutable for window resizes; everything else is fixed at construction.
type Projection struct {
	fovY   float64
	aspect float64
	zNear  float64
	zFar   float64
}

// NewProjection creates a projection. fovY is in radians, aspect is
// width/height, zNear must be > 0 and zFar > zNear.
func NewProjection(fovY, aspect, zNear, zFar float64) *Projection {
	return &Projection{fovY: fovY, aspect: aspect, zNear: zNear, zFar: zFar}
}

// NewProjectionDegrees creates a projection from a FOV in degrees.
func NewProjectionDegrees(fovYDegrees, aspect, zNear, zFar float64) *Projection {
	return NewProjection(fovYDegrees*math.Pi/180, aspect, zNear, zFar)
}

// FovY returns the vertical field of view in radians.
func (p *Projection) FovY() float64 {
	return p.fovY
}

// FovX returns the horizontal field of view, derived from the vertical FOV
// and aspect ratio.
func (p *Projection) FovX() float64 {
	return 2 * math.Atan(p.aspect*math.Tan(p.fovY/2))
}

// Aspect returns the aspect ratio (width / height).
func (p *Projection) Aspect() float64 {
	return p.aspect
}

// ZNear returns the near plane distance.
func (p *Projection) ZNear() float64 {
	return p.zNear
}

// ZFar returns the far plane distance.
func (p *Projection) ZFar() float64 {
	return p.zFar
}

// SetAspect updates the aspect ratio, typically on window resize.
func (p *Projection) SetAspect(aspect float64) {
	p.aspect = aspect
}

// Matrix returns the left-handed perspective projection matrix.
func (p *Projection) Matrix() math3d.Mat4 {
	return math3d.PerspectiveLH(p.fovY, p.aspect, p.zNear, p.zFar)
}

// ViewFrustum builds the view-space frustum planes for the legacy
// view-space clipping path.
func (p *Projection) ViewFrustum() ViewFrustum {
	return NewViewFrustum(p.FovX(), p.fovY, p.zNear, p.zFar)
}
