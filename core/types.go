package core

import (
	"render-kernel/math"
)

type Color struct {
	R float32 `yaml:"r"`
	G float32 `yaml:"g"`
	B float32 `yaml:"b"`
	A float32 `yaml:"a"`
}

var (
	ColorWhite = Color{1, 1, 1, 1}
	ColorBlack = Color{0, 0, 0, 1}
)

// RGB returns the color channels as a vector, dropping alpha.
func (c Color) RGB() math.Vector3 {
	return math.Vector3{X: float64(c.R), Y: float64(c.G), Z: float64(c.B)}
}

type Transform struct {
	Position math.Vector3
	Rotation math.Quaternion
	Scale    math.Vector3
}

func NewTransform() Transform {
	return Transform{
		Rotation: math.Quaternion{W: 1},
		Scale:    math.Vector3{X: 1, Y: 1, Z: 1},
	}
}

// Matrix writes translation * rotation * scale into result (allocated when nil).
func (t *Transform) Matrix(result *math.Matrix4) *math.Matrix4 {
	return math.MakeMatrix4Compose(&t.Position, &t.Rotation, &t.Scale, result)
}

// SetEuler replaces the rotation with the one described by e.
func (t *Transform) SetEuler(e *math.Euler) error {
	_, err := math.MakeQuaternionFromEuler(e, &t.Rotation)
	return err
}
