package math

import "math"

// Quaternion represents a rotation. No operation normalizes it implicitly.
type Quaternion struct {
	X, Y, Z, W float64
}

func NewQuaternion() *Quaternion {
	return &Quaternion{W: 1}
}

func (q *Quaternion) Set(x, y, z, w float64) *Quaternion {
	q.X = x
	q.Y = y
	q.Z = z
	q.W = w
	return q
}

func (q *Quaternion) Clone() *Quaternion {
	return &Quaternion{X: q.X, Y: q.Y, Z: q.Z, W: q.W}
}

func (q *Quaternion) Copy(other *Quaternion) *Quaternion {
	*q = *other
	return q
}

func (q *Quaternion) Dot(other *Quaternion) float64 {
	return q.X*other.X + q.Y*other.Y + q.Z*other.Z + q.W*other.W
}

func (q *Quaternion) Length() float64 {
	return math.Sqrt(q.X*q.X + q.Y*q.Y + q.Z*q.Z + q.W*q.W)
}

// Normalize resets a zero-length quaternion to identity.
func (q *Quaternion) Normalize() *Quaternion {
	l := q.Length()
	if l == 0 {
		return q.Set(0, 0, 0, 1)
	}
	l = 1 / l
	return q.Set(q.X*l, q.Y*l, q.Z*l, q.W*l)
}

func (q *Quaternion) Conjugate() *Quaternion {
	return q.Set(-q.X, -q.Y, -q.Z, q.W)
}

// Multiply sets q = q * other.
func (q *Quaternion) Multiply(other *Quaternion) *Quaternion {
	qax, qay, qaz, qaw := q.X, q.Y, q.Z, q.W
	qbx, qby, qbz, qbw := other.X, other.Y, other.Z, other.W

	return q.Set(
		qax*qbw+qaw*qbx+qay*qbz-qaz*qby,
		qay*qbw+qaw*qby+qaz*qbx-qax*qbz,
		qaz*qbw+qaw*qbz+qax*qby-qay*qbx,
		qaw*qbw-qax*qbx-qay*qby-qaz*qbz,
	)
}

func (q *Quaternion) Equals(other *Quaternion) bool {
	return *q == *other
}
