package math

import "math"

type Vector2 struct {
	X, Y float64
}

func NewVector2(x, y float64) *Vector2 {
	return &Vector2{X: x, Y: y}
}

func (v *Vector2) Set(x, y float64) *Vector2 {
	v.X = x
	v.Y = y
	return v
}

func (v *Vector2) Clone() *Vector2 {
	return &Vector2{X: v.X, Y: v.Y}
}

func (v *Vector2) Copy(other *Vector2) *Vector2 {
	v.X = other.X
	v.Y = other.Y
	return v
}

func (v *Vector2) Add(other *Vector2) *Vector2 {
	v.X += other.X
	v.Y += other.Y
	return v
}

func (v *Vector2) Sub(other *Vector2) *Vector2 {
	v.X -= other.X
	v.Y -= other.Y
	return v
}

func (v *Vector2) MultiplyByScalar(s float64) *Vector2 {
	v.X *= s
	v.Y *= s
	return v
}

func (v *Vector2) Dot(other *Vector2) float64 {
	return v.X*other.X + v.Y*other.Y
}

func (v *Vector2) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

func (v *Vector2) Normalize() *Vector2 {
	length := v.Length()
	if length > 0 {
		return v.MultiplyByScalar(1 / length)
	}
	return v
}

func (v *Vector2) Equals(other *Vector2) bool {
	return v.X == other.X && v.Y == other.Y
}

func (v *Vector2) Component(index int) float64 {
	switch index {
	case 0:
		return v.X
	case 1:
		return v.Y
	}
	panic("vector2: component index out of range")
}

func (v *Vector2) SetComponent(index int, value float64) *Vector2 {
	switch index {
	case 0:
		v.X = value
	case 1:
		v.Y = value
	default:
		panic("vector2: component index out of range")
	}
	return v
}

func (v *Vector2) NumComponents() int { return 2 }
