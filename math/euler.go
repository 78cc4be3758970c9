package math

import (
	"fmt"
	"math"
)

type EulerOrder int

const (
	EulerOrderXYZ EulerOrder = iota
	EulerOrderYXZ
	EulerOrderZXY
	EulerOrderZYX
	EulerOrderYZX
	EulerOrderXZY
)

var eulerOrderNames = [...]string{"XYZ", "YXZ", "ZXY", "ZYX", "YZX", "XZY"}

func (o EulerOrder) String() string {
	if o < 0 || int(o) >= len(eulerOrderNames) {
		return fmt.Sprintf("EulerOrder(%d)", int(o))
	}
	return eulerOrderNames[o]
}

func ParseEulerOrder(s string) (EulerOrder, error) {
	for i, name := range eulerOrderNames {
		if name == s {
			return EulerOrder(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedEulerOrder, s)
}

// Euler holds rotation angles in radians, applied in Order.
type Euler struct {
	X, Y, Z float64
	Order   EulerOrder
}

func NewEuler(x, y, z float64, order EulerOrder) *Euler {
	return &Euler{X: x, Y: y, Z: z, Order: order}
}

func (e *Euler) Set(x, y, z float64, order EulerOrder) *Euler {
	e.X = x
	e.Y = y
	e.Z = z
	e.Order = order
	return e
}

func (e *Euler) Clone() *Euler {
	c := *e
	return &c
}

func (e *Euler) Copy(other *Euler) *Euler {
	*e = *other
	return e
}

func (e *Euler) Equals(other *Euler) bool {
	return *e == *other
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// gimbalThreshold marks where the middle rotation is treated as +-90 degrees.
const gimbalThreshold = 0.9999999

// MakeEulerFromRotationMatrix4 extracts angles in the given order from the
// pure rotation in the upper 3x3 of m.
func MakeEulerFromRotationMatrix4(m *Matrix4, order EulerOrder, result *Euler) (*Euler, error) {
	if result == nil {
		result = &Euler{}
	}
	te := &m.Elements

	m11, m12, m13 := te[0], te[4], te[8]
	m21, m22, m23 := te[1], te[5], te[9]
	m31, m32, m33 := te[2], te[6], te[10]

	var x, y, z float64

	switch order {
	case EulerOrderXYZ:
		y = math.Asin(clamp(m13, -1, 1))
		if math.Abs(m13) < gimbalThreshold {
			x = math.Atan2(-m23, m33)
			z = math.Atan2(-m12, m11)
		} else {
			x = math.Atan2(m32, m22)
		}

	case EulerOrderYXZ:
		x = math.Asin(-clamp(m23, -1, 1))
		if math.Abs(m23) < gimbalThreshold {
			y = math.Atan2(m13, m33)
			z = math.Atan2(m21, m22)
		} else {
			y = math.Atan2(-m31, m11)
		}

	case EulerOrderZXY:
		x = math.Asin(clamp(m32, -1, 1))
		if math.Abs(m32) < gimbalThreshold {
			y = math.Atan2(-m31, m33)
			z = math.Atan2(-m12, m22)
		} else {
			z = math.Atan2(m21, m11)
		}

	case EulerOrderZYX:
		y = math.Asin(-clamp(m31, -1, 1))
		if math.Abs(m31) < gimbalThreshold {
			x = math.Atan2(m32, m33)
			z = math.Atan2(m21, m11)
		} else {
			z = math.Atan2(-m12, m22)
		}

	case EulerOrderYZX:
		z = math.Asin(clamp(m21, -1, 1))
		if math.Abs(m21) < gimbalThreshold {
			x = math.Atan2(-m23, m22)
			y = math.Atan2(-m31, m11)
		} else {
			y = math.Atan2(m13, m33)
		}

	case EulerOrderXZY:
		z = math.Asin(-clamp(m12, -1, 1))
		if math.Abs(m12) < gimbalThreshold {
			x = math.Atan2(m32, m22)
			y = math.Atan2(m13, m11)
		} else {
			x = math.Atan2(-m23, m33)
		}

	default:
		return result, fmt.Errorf("%w: %d", ErrUnsupportedEulerOrder, int(order))
	}

	return result.Set(x, y, z, order), nil
}

func MakeEulerFromQuaternion(q *Quaternion, order EulerOrder, result *Euler) (*Euler, error) {
	m := MakeMatrix4RotationFromQuaternion(q, nil)
	return MakeEulerFromRotationMatrix4(m, order, result)
}
