package models

import "github.com/BeyondBelief96/rusterize/pkg/math3d"

// Transform holds position, rotation (Euler XYZ angles in radians, applied
// X then Y then Z), and scale for a mesh or model.
//
// Mutating methods return the receiver for chaining:
//
//	t.SetPosition(math3d.V3(5, 2, 0)).RotateY(0.1).SetScaleUniform(2)
type Transform struct {
	position math3d.Vec3
	rotation math3d.Vec3 // x=pitch, y=yaw, z=roll
	scale    math3d.Vec3
}

// NewTransform creates an identity transform (position 0, rotation 0,
// scale 1).
func NewTransform() Transform {
	return Transform{scale: math3d.One3()}
}

// Position returns the position.
func (t *Transform) Position() math3d.Vec3 {
	return t.position
}

// SetPosition sets the position.
func (t *Transform) SetPosition(position math3d.Vec3) *Transform {
	t.position = position
	return t
}

// Translate moves the position by a delta vector.
func (t *Transform) Translate(delta math3d.Vec3) *Transform {
	t.position = t.position.Add(delta)
	return t
}

// Rotation returns the Euler angles in radians.
func (t *Transform) Rotation() math3d.Vec3 {
	return t.rotation
}

// SetRotation sets the Euler angles in radians.
func (t *Transform) SetRotation(rotation math3d.Vec3) *Transform {
	t.rotation = rotation
	return t
}

// RotateX adds pitch rotation.
func (t *Transform) RotateX(angle float64) *Transform {
	t.rotation.X += angle
	return t
}

// RotateY adds yaw rotation.
func (t *Transform) RotateY(angle float64) *Transform {
	t.rotation.Y += angle
	return t
}

// RotateZ adds roll rotation.
func (t *Transform) RotateZ(angle float64) *Transform {
	t.rotation.Z += angle
	return t
}

// Scale returns the scale.
func (t *Transform) Scale() math3d.Vec3 {
	return t.scale
}

// SetScale sets the scale.
func (t *Transform) SetScale(scale math3d.Vec3) *Transform {
	t.scale = scale
	return t
}

// SetScaleUniform sets the same scale on all three axes.
func (t *Transform) SetScaleUniform(s float64) *Transform {
	t.scale = math3d.V3(s, s, s)
	return t
}

// Matrix generates the transformation matrix: translation * rotX * rotY *
// rotZ * scale, so scale applies first and translation last.
func (t *Transform) Matrix() math3d.Mat4 {
	return math3d.Translate(t.position).
		Mul(math3d.RotateX(t.rotation.X)).
		Mul(math3d.RotateY(t.rotation.Y)).
		Mul(math3d.RotateZ(t.rotation.Z)).
		Mul(math3d.Scale(t.scale))
}

// NormalMatrix generates the matrix for transforming normals: the inverse
// transpose of the rotation+scale part (translation excluded), which
// handles non-uniform scaling. A singular matrix (zero scale) falls back
// to identity; the lighting artifact is visible but not fatal.
func (t *Transform) NormalMatrix() math3d.Mat4 {
	rotScale := math3d.RotateX(t.rotation.X).
		Mul(math3d.RotateY(t.rotation.Y)).
		Mul(math3d.RotateZ(t.rotation.Z)).
		Mul(math3d.Scale(t.scale))

	inv, ok := rotScale.Inverse()
	if !ok {
		return math3d.Identity()
	}
	return inv.Transpose()
}
