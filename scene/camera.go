package scene

import (
	"render-kernel/math"
)

// PerspectiveCamera is a view camera. The aspect ratio is not stored: it
// comes from whatever framebuffer the camera renders into.
type PerspectiveCamera struct {
	Position math.Vector3
	Rotation math.Quaternion
	// VerticalFov is in degrees.
	VerticalFov float64
	Near        float64
	Far         float64
	Zoom        float64
}

func NewPerspectiveCamera(verticalFov, near, far float64) *PerspectiveCamera {
	return &PerspectiveCamera{
		Rotation:    math.Quaternion{W: 1},
		VerticalFov: verticalFov,
		Near:        near,
		Far:         far,
		Zoom:        1,
	}
}

func (c *PerspectiveCamera) ProjectionMatrix(aspectRatio float64, result *math.Matrix4) *math.Matrix4 {
	return math.MakeMatrix4PerspectiveFov(c.VerticalFov, c.Near, c.Far, c.Zoom, aspectRatio, result)
}

// WorldMatrix is the camera's placement in the world.
func (c *PerspectiveCamera) WorldMatrix(result *math.Matrix4) *math.Matrix4 {
	one := math.Vector3{X: 1, Y: 1, Z: 1}
	return math.MakeMatrix4Compose(&c.Position, &c.Rotation, &one, result)
}

// ViewMatrix is the inverse of the world matrix. It fails only when
// Rotation is the zero quaternion.
func (c *PerspectiveCamera) ViewMatrix(result *math.Matrix4) (*math.Matrix4, error) {
	return c.WorldMatrix(result).Invert()
}

// LookAt orients the camera so its -Z axis points at target.
func (c *PerspectiveCamera) LookAt(target, up *math.Vector3) {
	m := math.MakeMatrix4LookAt(&c.Position, target, up, nil)
	math.MakeQuaternionFromRotationMatrix4(m, &c.Rotation)
}

// Forward returns the direction the camera faces.
func (c *PerspectiveCamera) Forward() *math.Vector3 {
	m := math.MakeMatrix4RotationFromQuaternion(&c.Rotation, nil)
	return math.NewVector3(-m.Elements[8], -m.Elements[9], -m.Elements[10])
}
