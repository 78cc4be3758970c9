package math

// Matrix4 is a 4x4 matrix stored column-major: Elements[column*4+row].
// This matches the layout UniformMatrix4fv expects with transpose=false.
type Matrix4 struct {
	Elements [16]float64
}

func NewMatrix4() *Matrix4 {
	return &Matrix4{Elements: [16]float64{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}}
}

// Set takes its arguments in row-major reading order.
func (m *Matrix4) Set(
	n11, n12, n13, n14,
	n21, n22, n23, n24,
	n31, n32, n33, n34,
	n41, n42, n43, n44 float64,
) *Matrix4 {
	te := &m.Elements

	te[0], te[4], te[8], te[12] = n11, n12, n13, n14
	te[1], te[5], te[9], te[13] = n21, n22, n23, n24
	te[2], te[6], te[10], te[14] = n31, n32, n33, n34
	te[3], te[7], te[11], te[15] = n41, n42, n43, n44

	return m
}

func (m *Matrix4) Clone() *Matrix4 {
	return &Matrix4{Elements: m.Elements}
}

func (m *Matrix4) Copy(other *Matrix4) *Matrix4 {
	m.Elements = other.Elements
	return m
}

func (m *Matrix4) Component(index int) float64 {
	return m.Elements[index]
}

func (m *Matrix4) SetComponent(index int, value float64) *Matrix4 {
	m.Elements[index] = value
	return m
}

func (m *Matrix4) NumComponents() int { return 16 }

func (m *Matrix4) MakeIdentity() *Matrix4 {
	return m.Set(
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	)
}

func (m *Matrix4) MultiplyByScalar(s float64) *Matrix4 {
	for i := range m.Elements {
		m.Elements[i] *= s
	}
	return m
}

func (m *Matrix4) Determinant() float64 {
	te := &m.Elements

	n11, n12, n13, n14 := te[0], te[4], te[8], te[12]
	n21, n22, n23, n24 := te[1], te[5], te[9], te[13]
	n31, n32, n33, n34 := te[2], te[6], te[10], te[14]
	n41, n42, n43, n44 := te[3], te[7], te[11], te[15]

	return n41*(n14*n23*n32-n13*n24*n32-n14*n22*n33+n12*n24*n33+n13*n22*n34-n12*n23*n34) +
		n42*(n11*n23*n34-n11*n24*n33+n14*n21*n33-n13*n21*n34+n13*n24*n31-n14*n23*n31) +
		n43*(n11*n24*n32-n11*n22*n34-n14*n21*n32+n12*n21*n34+n14*n22*n31-n12*n24*n31) +
		n44*(-n13*n22*n31-n11*n23*n32+n11*n22*n33+n13*n21*n32-n12*n21*n33+n12*n23*n31)
}

func (m *Matrix4) Transpose() *Matrix4 {
	te := &m.Elements
	te[1], te[4] = te[4], te[1]
	te[2], te[8] = te[8], te[2]
	te[6], te[9] = te[9], te[6]
	te[3], te[12] = te[12], te[3]
	te[7], te[13] = te[13], te[7]
	te[11], te[14] = te[14], te[11]
	return m
}

// Invert replaces m with its inverse. On a zero determinant m is left
// untouched and ErrDegenerateMatrix is returned.
func (m *Matrix4) Invert() (*Matrix4, error) {
	te := &m.Elements

	n11, n21, n31, n41 := te[0], te[1], te[2], te[3]
	n12, n22, n32, n42 := te[4], te[5], te[6], te[7]
	n13, n23, n33, n43 := te[8], te[9], te[10], te[11]
	n14, n24, n34, n44 := te[12], te[13], te[14], te[15]

	t11 := n23*n34*n42 - n24*n33*n42 + n24*n32*n43 - n22*n34*n43 - n23*n32*n44 + n22*n33*n44
	t12 := n14*n33*n42 - n13*n34*n42 - n14*n32*n43 + n12*n34*n43 + n13*n32*n44 - n12*n33*n44
	t13 := n13*n24*n42 - n14*n23*n42 + n14*n22*n43 - n12*n24*n43 - n13*n22*n44 + n12*n23*n44
	t14 := n14*n23*n32 - n13*n24*n32 - n14*n22*n33 + n12*n24*n33 + n13*n22*n34 - n12*n23*n34

	det := n11*t11 + n21*t12 + n31*t13 + n41*t14
	if det == 0 {
		return m, ErrDegenerateMatrix
	}

	detInv := 1 / det

	te[0] = t11 * detInv
	te[1] = (n24*n33*n41 - n23*n34*n41 - n24*n31*n43 + n21*n34*n43 + n23*n31*n44 - n21*n33*n44) * detInv
	te[2] = (n22*n34*n41 - n24*n32*n41 + n24*n31*n42 - n21*n34*n42 - n22*n31*n44 + n21*n32*n44) * detInv
	te[3] = (n23*n32*n41 - n22*n33*n41 - n23*n31*n42 + n21*n33*n42 + n22*n31*n43 - n21*n32*n43) * detInv

	te[4] = t12 * detInv
	te[5] = (n13*n34*n41 - n14*n33*n41 + n14*n31*n43 - n11*n34*n43 - n13*n31*n44 + n11*n33*n44) * detInv
	te[6] = (n14*n32*n41 - n12*n34*n41 - n14*n31*n42 + n11*n34*n42 + n12*n31*n44 - n11*n32*n44) * detInv
	te[7] = (n12*n33*n41 - n13*n32*n41 + n13*n31*n42 - n11*n33*n42 - n12*n31*n43 + n11*n32*n43) * detInv

	te[8] = t13 * detInv
	te[9] = (n14*n23*n41 - n13*n24*n41 - n14*n21*n43 + n11*n24*n43 + n13*n21*n44 - n11*n23*n44) * detInv
	te[10] = (n12*n24*n41 - n14*n22*n41 + n14*n21*n42 - n11*n24*n42 - n12*n21*n44 + n11*n22*n44) * detInv
	te[11] = (n13*n22*n41 - n12*n23*n41 - n13*n21*n42 + n11*n23*n42 + n12*n21*n43 - n11*n22*n43) * detInv

	te[12] = t14 * detInv
	te[13] = (n13*n24*n31 - n14*n23*n31 + n14*n21*n33 - n11*n24*n33 - n13*n21*n34 + n11*n23*n34) * detInv
	te[14] = (n14*n22*n31 - n12*n24*n31 - n14*n21*n32 + n11*n24*n32 + n12*n21*n34 - n11*n22*n34) * detInv
	te[15] = (n12*n23*n31 - n13*n22*n31 + n13*n21*n32 - n11*n23*n32 - n12*n21*n33 + n11*n22*n33) * detInv

	return m, nil
}

// MakeConcatenation sets m = a * b. m may alias a or b.
func (m *Matrix4) MakeConcatenation(a, b *Matrix4) *Matrix4 {
	ae := a.Elements
	be := b.Elements

	a11, a12, a13, a14 := ae[0], ae[4], ae[8], ae[12]
	a21, a22, a23, a24 := ae[1], ae[5], ae[9], ae[13]
	a31, a32, a33, a34 := ae[2], ae[6], ae[10], ae[14]
	a41, a42, a43, a44 := ae[3], ae[7], ae[11], ae[15]

	b11, b12, b13, b14 := be[0], be[4], be[8], be[12]
	b21, b22, b23, b24 := be[1], be[5], be[9], be[13]
	b31, b32, b33, b34 := be[2], be[6], be[10], be[14]
	b41, b42, b43, b44 := be[3], be[7], be[11], be[15]

	return m.Set(
		a11*b11+a12*b21+a13*b31+a14*b41,
		a11*b12+a12*b22+a13*b32+a14*b42,
		a11*b13+a12*b23+a13*b33+a14*b43,
		a11*b14+a12*b24+a13*b34+a14*b44,

		a21*b11+a22*b21+a23*b31+a24*b41,
		a21*b12+a22*b22+a23*b32+a24*b42,
		a21*b13+a22*b23+a23*b33+a24*b43,
		a21*b14+a22*b24+a23*b34+a24*b44,

		a31*b11+a32*b21+a33*b31+a34*b41,
		a31*b12+a32*b22+a33*b32+a34*b42,
		a31*b13+a32*b23+a33*b33+a34*b43,
		a31*b14+a32*b24+a33*b34+a34*b44,

		a41*b11+a42*b21+a43*b31+a44*b41,
		a41*b12+a42*b22+a43*b32+a44*b42,
		a41*b13+a42*b23+a43*b33+a44*b43,
		a41*b14+a42*b24+a43*b34+a44*b44,
	)
}

// TransformPoint applies m to p with w=1 and divides by the resulting w.
func (m *Matrix4) TransformPoint(p *Vector3) *Vector3 {
	v := Vector4{X: p.X, Y: p.Y, Z: p.Z, W: 1}
	v.ApplyMatrix4(m)
	if v.W != 0 && v.W != 1 {
		return p.Set(v.X/v.W, v.Y/v.W, v.Z/v.W)
	}
	return p.Set(v.X, v.Y, v.Z)
}

func (m *Matrix4) Equals(other *Matrix4) bool {
	return m.Elements == other.Elements
}

func (m *Matrix4) SetFromArray(array []float32, offset int) *Matrix4 {
	for i := range m.Elements {
		m.Elements[i] = float64(array[offset+i])
	}
	return m
}

func (m *Matrix4) ToArray(array []float32, offset int) {
	for i, v := range m.Elements {
		array[offset+i] = float32(v)
	}
}
