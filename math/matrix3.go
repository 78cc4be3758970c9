package math

import (
	"errors"
	"math"
)

// ErrDegenerateMatrix is returned by Invert when the determinant is exactly zero.
var ErrDegenerateMatrix = errors.New("can not invert degenerate matrix")

// Matrix3 is a 3x3 matrix stored column-major: Elements[column*3+row].
type Matrix3 struct {
	Elements [9]float64
}

func NewMatrix3() *Matrix3 {
	return &Matrix3{Elements: [9]float64{1, 0, 0, 0, 1, 0, 0, 0, 1}}
}

// Set takes its arguments in row-major reading order.
func (m *Matrix3) Set(n11, n12, n13, n21, n22, n23, n31, n32, n33 float64) *Matrix3 {
	te := &m.Elements

	te[0] = n11
	te[1] = n21
	te[2] = n31
	te[3] = n12
	te[4] = n22
	te[5] = n32
	te[6] = n13
	te[7] = n23
	te[8] = n33

	return m
}

func (m *Matrix3) Clone() *Matrix3 {
	return &Matrix3{Elements: m.Elements}
}

func (m *Matrix3) Copy(other *Matrix3) *Matrix3 {
	m.Elements = other.Elements
	return m
}

func (m *Matrix3) Component(index int) float64 {
	return m.Elements[index]
}

func (m *Matrix3) SetComponent(index int, value float64) *Matrix3 {
	m.Elements[index] = value
	return m
}

func (m *Matrix3) NumComponents() int { return 9 }

func (m *Matrix3) MultiplyByScalar(s float64) *Matrix3 {
	for i := range m.Elements {
		m.Elements[i] *= s
	}
	return m
}

func (m *Matrix3) Determinant() float64 {
	te := &m.Elements
	a, b, c := te[0], te[1], te[2]
	d, e, f := te[3], te[4], te[5]
	g, h, i := te[6], te[7], te[8]

	return a*e*i - a*f*h - b*d*i + b*f*g + c*d*h - c*e*g
}

func (m *Matrix3) Transpose() *Matrix3 {
	te := &m.Elements
	te[1], te[3] = te[3], te[1]
	te[2], te[6] = te[6], te[2]
	te[5], te[7] = te[7], te[5]
	return m
}

// Invert replaces m with its cofactor inverse. On a zero determinant m is
// left untouched and ErrDegenerateMatrix is returned.
func (m *Matrix3) Invert() (*Matrix3, error) {
	e := &m.Elements

	n11, n21, n31 := e[0], e[1], e[2]
	n12, n22, n32 := e[3], e[4], e[5]
	n13, n23, n33 := e[6], e[7], e[8]

	t11 := n33*n22 - n32*n23
	t12 := n32*n13 - n33*n12
	t13 := n23*n12 - n22*n13

	det := n11*t11 + n21*t12 + n31*t13
	if det == 0 {
		return m, ErrDegenerateMatrix
	}

	detInv := 1 / det

	e[0] = t11 * detInv
	e[1] = (n31*n23 - n33*n21) * detInv
	e[2] = (n32*n21 - n31*n22) * detInv

	e[3] = t12 * detInv
	e[4] = (n33*n11 - n31*n13) * detInv
	e[5] = (n31*n12 - n32*n11) * detInv

	e[6] = t13 * detInv
	e[7] = (n21*n13 - n23*n11) * detInv
	e[8] = (n22*n11 - n21*n12) * detInv

	return m, nil
}

func (m *Matrix3) MakeIdentity() *Matrix3 {
	return m.Set(1, 0, 0, 0, 1, 0, 0, 0, 1)
}

// MakeConcatenation sets m = a * b. m may alias a or b.
func (m *Matrix3) MakeConcatenation(a, b *Matrix3) *Matrix3 {
	ae := a.Elements
	be := b.Elements

	a11, a12, a13 := ae[0], ae[3], ae[6]
	a21, a22, a23 := ae[1], ae[4], ae[7]
	a31, a32, a33 := ae[2], ae[5], ae[8]

	b11, b12, b13 := be[0], be[3], be[6]
	b21, b22, b23 := be[1], be[4], be[7]
	b31, b32, b33 := be[2], be[5], be[8]

	te := &m.Elements

	te[0] = a11*b11 + a12*b21 + a13*b31
	te[3] = a11*b12 + a12*b22 + a13*b32
	te[6] = a11*b13 + a12*b23 + a13*b33

	te[1] = a21*b11 + a22*b21 + a23*b31
	te[4] = a21*b12 + a22*b22 + a23*b32
	te[7] = a21*b13 + a22*b23 + a23*b33

	te[2] = a31*b11 + a32*b21 + a33*b31
	te[5] = a31*b12 + a32*b22 + a33*b32
	te[8] = a31*b13 + a32*b23 + a33*b33

	return m
}

func (m *Matrix3) MakeTranslation2(t *Vector2) *Matrix3 {
	return m.Set(1, 0, t.X, 0, 1, t.Y, 0, 0, 1)
}

func (m *Matrix3) MakeRotation2FromAngle(angle float64) *Matrix3 {
	c := math.Cos(angle)
	s := math.Sin(angle)
	return m.Set(c, -s, 0, s, c, 0, 0, 0, 1)
}

func (m *Matrix3) MakeRotation3FromMatrix4(other *Matrix4) *Matrix3 {
	me := &other.Elements
	return m.Set(me[0], me[4], me[8], me[1], me[5], me[9], me[2], me[6], me[10])
}

func (m *Matrix3) MakeScale2(s *Vector2) *Matrix3 {
	return m.Set(s.X, 0, 0, 0, s.Y, 0, 0, 0, 1)
}

func (m *Matrix3) MakeScale3(s *Vector3) *Matrix3 {
	return m.Set(s.X, 0, 0, 0, s.Y, 0, 0, 0, s.Z)
}

func (m *Matrix3) Equals(other *Matrix3) bool {
	return m.Elements == other.Elements
}

func (m *Matrix3) SetFromArray(array []float32, offset int) *Matrix3 {
	for i := range m.Elements {
		m.Elements[i] = float64(array[offset+i])
	}
	return m
}

func (m *Matrix3) ToArray(array []float32, offset int) {
	for i, v := range m.Elements {
		array[offset+i] = float32(v)
	}
}
