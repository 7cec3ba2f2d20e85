package engine

import "github.com/BeyondBelief96/rusterize/pkg/render"

// InputState is the abstract per-frame input snapshot the host supplies:
// held-key booleans plus the mouse delta in pixels since the last frame.
type InputState struct {
	Forward   bool
	Back      bool
	Left      bool
	Right     bool
	Up        bool
	Down      bool
	RollLeft  bool
	RollRight bool

	MouseDX float64
	MouseDY float64
}

// CameraController maps input state onto camera movement and rotation.
type CameraController struct {
	// MoveSpeed is the translation speed in world units per second.
	MoveSpeed float64
	// Sensitivity converts mouse pixels to radians of yaw/pitch.
	Sensitivity float64
	// RollSpeed is the roll rate in radians per second.
	RollSpeed float64
}

// NewCameraController creates a controller with the default speeds.
func NewCameraController() *CameraController {
	return &CameraController{
		MoveSpeed:   5,
		Sensitivity: 0.002,
		RollSpeed:   1.5,
	}
}

// Apply moves and rotates the camera for one frame. dt is the frame time
// in seconds. Vertical movement uses the world up axis (fly-cam style).
func (c *CameraController) Apply(camera *render.FpsCamera, input InputState, dt float64) {
	distance := c.MoveSpeed * dt

	if input.Forward {
		camera.MoveForward(distance)
	}
	if input.Back {
		camera.MoveForward(-distance)
	}
	if input.Right {
		camera.MoveRight(distance)
	}
	if input.Left {
		camera.MoveRight(-distance)
	}
	if input.Up {
		camera.MoveUp(distance)
	}
	if input.Down {
		camera.MoveUp(-distance)
	}

	if input.RollLeft {
		camera.RotateRoll(-c.RollSpeed * dt)
	}
	if input.RollRight {
		camera.RotateRoll(c.RollSpeed * dt)
	}

	if input.MouseDX != 0 || input.MouseDY != 0 {
		camera.Rotate(input.MouseDX*c.Sensitivity, input.MouseDY*c.Sensitivity)
	}
}
