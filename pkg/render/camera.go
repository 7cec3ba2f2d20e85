package render

import (
	"math"

	"github.com/BeyondBelief96/rusterize/pkg/math3d"
)

// FpsCamera is a first-person camera storing position and yaw/pitch/roll.
//
// Yaw rotates around Y (positive looks right), pitch around X (positive
// looks down in the Y-down screen system), roll around Z (positive tilts
// right). Yaw and roll wrap to [0, 2pi); pitch is clamped to its limits
// (+-89 degrees by default). The rotation matrix is built on demand as
// RotateY(-yaw) * RotateX(pitch) * RotateZ(-roll).
type FpsCamera struct {
	position math3d.Vec3
	yaw      float64
	pitch    float64
	roll     float64

	pitchMin float64
	pitchMax float64
}

const defaultPitchLimit = 89 * math.Pi / 180

// NewFpsCamera creates a camera at the given position looking along +Z.
func NewFpsCamera(position math3d.Vec3) *FpsCamera {
	return &FpsCamera{
		position: position,
		pitchMin: -defaultPitchLimit,
		pitchMax: defaultPitchLimit,
	}
}

// NewFpsCameraLookingAt creates a camera at position oriented toward
// target.
func NewFpsCameraLookingAt(position, target math3d.Vec3) *FpsCamera {
	c := NewFpsCamera(position)
	c.LookAt(target)
	return c
}

// rotationMatrix builds the camera orientation from yaw, pitch, and roll.
// Roll is applied first (local), then pitch, then yaw.
func (c *FpsCamera) rotationMatrix() math3d.Mat4 {
	return math3d.RotateY(-c.yaw).
		Mul(math3d.RotateX(c.pitch)).
		Mul(math3d.RotateZ(-c.roll))
}

// Rotate applies yaw and pitch deltas.
func (c *FpsCamera) Rotate(yawDelta, pitchDelta float64) {
	c.RotateYaw(yawDelta)
	c.RotatePitch(pitchDelta)
}

// RotateYaw rotates the camera horizontally. Wraps to [0, 2pi).
func (c *FpsCamera) RotateYaw(delta float64) {
	c.yaw = wrapAngle(c.yaw + delta)
}

// RotatePitch rotates the camera vertically, clamped to the pitch limits.
func (c *FpsCamera) RotatePitch(delta float64) {
	c.pitch = math.Max(c.pitchMin, math.Min(c.pitchMax, c.pitch+delta))
}

// RotateRoll tilts the camera around its forward axis. Wraps to [0, 2pi).
func (c *FpsCamera) RotateRoll(delta float64) {
	c.roll = wrapAngle(c.roll + delta)
}

// LookAt points the camera at a world position, rebuilding yaw and pitch.
// Roll is left unchanged.
func (c *FpsCamera) LookAt(target math3d.Vec3) {
	dir := target.Sub(c.position)
	horizontal := math.Sqrt(dir.X*dir.X + dir.Z*dir.Z)

	if horizontal > 1e-12 {
		c.yaw = wrapAngle(math.Atan2(dir.X, dir.Z))
	}
	if dir.Len() > 1e-12 {
		pitch := math.Atan2(dir.Y, horizontal)
		c.pitch = math.Max(c.pitchMin, math.Min(c.pitchMax, pitch))
	}
}

// SetPitchLimits sets the pitch clamp bounds in radians and re-clamps the
// current pitch.
func (c *FpsCamera) SetPitchLimits(min, max float64) {
	c.pitchMin = min
	c.pitchMax = max
	c.pitch = math.Max(c.pitchMin, math.Min(c.pitchMax, c.pitch))
}

// MoveForward moves the camera along its forward direction.
func (c *FpsCamera) MoveForward(distance float64) {
	c.position = c.position.Add(c.Forward().Scale(distance))
}

// MoveRight strafes the camera along its right direction.
func (c *FpsCamera) MoveRight(distance float64) {
	c.position = c.position.Add(c.Right().Scale(distance))
}

// MoveUp moves the camera along the world up axis (fly-cam style).
func (c *FpsCamera) MoveUp(distance float64) {
	c.position.Y += distance
}

// MoveLocalUp moves the camera along its local up direction.
func (c *FpsCamera) MoveLocalUp(distance float64) {
	c.position = c.position.Add(c.Up().Scale(distance))
}

// SetPosition teleports the camera without changing orientation.
func (c *FpsCamera) SetPosition(position math3d.Vec3) {
	c.position = position
}

// Position returns the camera's world position.
func (c *FpsCamera) Position() math3d.Vec3 {
	return c.position
}

// Yaw returns the yaw angle in radians.
func (c *FpsCamera) Yaw() float64 {
	return c.yaw
}

// Pitch returns the pitch angle in radians.
func (c *FpsCamera) Pitch() float64 {
	return c.pitch
}

// Roll returns the roll angle in radians.
func (c *FpsCamera) Roll() float64 {
	return c.roll
}

// Forward returns the camera's forward direction: the third column of the
// rotation matrix.
func (c *FpsCamera) Forward() math3d.Vec3 {
	rot := c.rotationMatrix()
	return math3d.V3(rot.Get(0, 2), rot.Get(1, 2), rot.Get(2, 2)).Normalize()
}

// Right returns the camera's right direction: the first column of the
// rotation matrix.
func (c *FpsCamera) Right() math3d.Vec3 {
	rot := c.rotationMatrix()
	return math3d.V3(rot.Get(0, 0), rot.Get(1, 0), rot.Get(2, 0)).Normalize()
}

// Up returns the camera's up direction: the negated second column of the
// rotation matrix (the screen is Y-down).
func (c *FpsCamera) Up() math3d.Vec3 {
	rot := c.rotationMatrix()
	return math3d.V3(-rot.Get(0, 1), -rot.Get(1, 1), -rot.Get(2, 1)).Normalize()
}

// ViewMatrix computes the view matrix: the inverse of the camera world
// transform. For rotation R and position P the world transform is
// T(P) * R, so the view is Rt * T(-P), assembled as the rotation
// transpose with translation column -(Rt * P).
func (c *FpsCamera) ViewMatrix() math3d.Mat4 {
	rt := c.rotationMatrix().Transpose()
	translated := rt.MulVec3Dir(c.position.Negate())

	view := rt
	view.SetTranslation(translated)
	return view
}

// wrapAngle wraps an angle to [0, 2pi).
func wrapAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a
}
