package math

import "math"

type Vector3 struct {
	X, Y, Z float64
}

func NewVector3(x, y, z float64) *Vector3 {
	return &Vector3{X: x, Y: y, Z: z}
}

func (v *Vector3) Set(x, y, z float64) *Vector3 {
	v.X = x
	v.Y = y
	v.Z = z
	return v
}

func (v *Vector3) Clone() *Vector3 {
	return &Vector3{X: v.X, Y: v.Y, Z: v.Z}
}

func (v *Vector3) Copy(other *Vector3) *Vector3 {
	v.X = other.X
	v.Y = other.Y
	v.Z = other.Z
	return v
}

func (v *Vector3) Add(other *Vector3) *Vector3 {
	v.X += other.X
	v.Y += other.Y
	v.Z += other.Z
	return v
}

func (v *Vector3) Sub(other *Vector3) *Vector3 {
	v.X -= other.X
	v.Y -= other.Y
	v.Z -= other.Z
	return v
}

func (v *Vector3) MultiplyByScalar(s float64) *Vector3 {
	v.X *= s
	v.Y *= s
	v.Z *= s
	return v
}

func (v *Vector3) Dot(other *Vector3) float64 {
	return v.X*other.X + v.Y*other.Y + v.Z*other.Z
}

// Cross stores v × other into v.
func (v *Vector3) Cross(other *Vector3) *Vector3 {
	x := v.Y*other.Z - v.Z*other.Y
	y := v.Z*other.X - v.X*other.Z
	z := v.X*other.Y - v.Y*other.X
	return v.Set(x, y, z)
}

func (v *Vector3) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

func (v *Vector3) LengthSqr() float64 {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}

func (v *Vector3) Normalize() *Vector3 {
	length := v.Length()
	if length > 0 {
		return v.MultiplyByScalar(1 / length)
	}
	return v
}

func (v *Vector3) Negate() *Vector3 {
	return v.Set(-v.X, -v.Y, -v.Z)
}

func (v *Vector3) Equals(other *Vector3) bool {
	return v.X == other.X && v.Y == other.Y && v.Z == other.Z
}

func (v *Vector3) Component(index int) float64 {
	switch index {
	case 0:
		return v.X
	case 1:
		return v.Y
	case 2:
		return v.Z
	}
	panic("vector3: component index out of range")
}

func (v *Vector3) SetComponent(index int, value float64) *Vector3 {
	switch index {
	case 0:
		v.X = value
	case 1:
		v.Y = value
	case 2:
		v.Z = value
	default:
		panic("vector3: component index out of range")
	}
	return v
}

func (v *Vector3) NumComponents() int { return 3 }
