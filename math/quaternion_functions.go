package math

import (
	"errors"
	"fmt"
	"math"
)

var ErrUnsupportedEulerOrder = errors.New("unsupported euler order")

func quaternionResult(result *Quaternion) *Quaternion {
	if result == nil {
		return NewQuaternion()
	}
	return result
}

// MakeQuaternionFromEuler picks one of six formulas by e.Order. Each composes
// the half-angle terms of the three elemental rotations in that axis order.
func MakeQuaternionFromEuler(e *Euler, result *Quaternion) (*Quaternion, error) {
	c1 := math.Cos(e.X / 2)
	c2 := math.Cos(e.Y / 2)
	c3 := math.Cos(e.Z / 2)

	s1 := math.Sin(e.X / 2)
	s2 := math.Sin(e.Y / 2)
	s3 := math.Sin(e.Z / 2)

	switch e.Order {
	case EulerOrderXYZ:
		return quaternionResult(result).Set(
			s1*c2*c3+c1*s2*s3,
			c1*s2*c3-s1*c2*s3,
			c1*c2*s3+s1*s2*c3,
			c1*c2*c3-s1*s2*s3,
		), nil

	case EulerOrderYXZ:
		return quaternionResult(result).Set(
			s1*c2*c3+c1*s2*s3,
			c1*s2*c3-s1*c2*s3,
			c1*c2*s3-s1*s2*c3,
			c1*c2*c3+s1*s2*s3,
		), nil

	case EulerOrderZXY:
		return quaternionResult(result).Set(
			s1*c2*c3-c1*s2*s3,
			c1*s2*c3+s1*c2*s3,
			c1*c2*s3+s1*s2*c3,
			c1*c2*c3-s1*s2*s3,
		), nil

	case EulerOrderZYX:
		return quaternionResult(result).Set(
			s1*c2*c3-c1*s2*s3,
			c1*s2*c3+s1*c2*s3,
			c1*c2*s3-s1*s2*c3,
			c1*c2*c3+s1*s2*s3,
		), nil

	case EulerOrderYZX:
		return quaternionResult(result).Set(
			s1*c2*c3+c1*s2*s3,
			c1*s2*c3+s1*c2*s3,
			c1*c2*s3-s1*s2*c3,
			c1*c2*c3-s1*s2*s3,
		), nil

	case EulerOrderXZY:
		return quaternionResult(result).Set(
			s1*c2*c3-c1*s2*s3,
			c1*s2*c3-s1*c2*s3,
			c1*c2*s3+s1*s2*c3,
			c1*c2*c3+s1*s2*s3,
		), nil
	}

	return result, fmt.Errorf("%w: %d", ErrUnsupportedEulerOrder, int(e.Order))
}

// MakeQuaternionFromRotationMatrix4 assumes the upper 3x3 of m is a pure
// rotation. The branches must be tested in this order: trace, m11, m22, m33.
func MakeQuaternionFromRotationMatrix4(m *Matrix4, result *Quaternion) *Quaternion {
	q := quaternionResult(result)
	te := &m.Elements

	m11, m12, m13 := te[0], te[4], te[8]
	m21, m22, m23 := te[1], te[5], te[9]
	m31, m32, m33 := te[2], te[6], te[10]

	trace := m11 + m22 + m33

	if trace > 0 {
		s := 0.5 / math.Sqrt(trace+1)
		return q.Set((m32-m23)*s, (m13-m31)*s, (m21-m12)*s, 0.25/s)
	}
	if m11 > m22 && m11 > m33 {
		s := 2 * math.Sqrt(1+m11-m22-m33)
		return q.Set(0.25*s, (m12+m21)/s, (m13+m31)/s, (m32-m23)/s)
	}
	if m22 > m33 {
		s := 2 * math.Sqrt(1+m22-m11-m33)
		return q.Set((m12+m21)/s, 0.25*s, (m23+m32)/s, (m13-m31)/s)
	}

	s := 2 * math.Sqrt(1+m33-m11-m22)
	return q.Set((m13+m31)/s, (m23+m32)/s, 0.25*s, (m21-m12)/s)
}

// MakeQuaternionFromAxisAngle expects a unit axis and does not check it.
func MakeQuaternionFromAxisAngle(axis *Vector3, angle float64, result *Quaternion) *Quaternion {
	halfAngle := angle / 2
	s := math.Sin(halfAngle)
	return quaternionResult(result).Set(axis.X*s, axis.Y*s, axis.Z*s, math.Cos(halfAngle))
}

// MakeQuaternionFromBaryCoordWeights blends a, b and c component-wise with
// the barycentric weights in baryCoord. The blend is not normalized.
func MakeQuaternionFromBaryCoordWeights(baryCoord *Vector3, a, b, c *Quaternion, result *Quaternion) *Quaternion {
	v := baryCoord
	return quaternionResult(result).Set(
		a.X*v.X+b.X*v.Y+c.X*v.Z,
		a.Y*v.X+b.Y*v.Y+c.Y*v.Z,
		a.Z*v.X+b.Z*v.Y+c.Z*v.Z,
		a.W*v.X+b.W*v.Y+c.W*v.Z,
	)
}
