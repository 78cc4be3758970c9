package math

type Vector4 struct {
	X, Y, Z, W float64
}

func NewVector4(x, y, z, w float64) *Vector4 {
	return &Vector4{X: x, Y: y, Z: z, W: w}
}

func (v *Vector4) Set(x, y, z, w float64) *Vector4 {
	v.X = x
	v.Y = y
	v.Z = z
	v.W = w
	return v
}

func (v *Vector4) Clone() *Vector4 {
	return &Vector4{X: v.X, Y: v.Y, Z: v.Z, W: v.W}
}

func (v *Vector4) Copy(other *Vector4) *Vector4 {
	*v = *other
	return v
}

func (v *Vector4) Dot(other *Vector4) float64 {
	return v.X*other.X + v.Y*other.Y + v.Z*other.Z + v.W*other.W
}

func (v *Vector4) Equals(other *Vector4) bool {
	return *v == *other
}

// ApplyMatrix4 transforms v by m (column vector convention).
func (v *Vector4) ApplyMatrix4(m *Matrix4) *Vector4 {
	e := &m.Elements
	x, y, z, w := v.X, v.Y, v.Z, v.W
	return v.Set(
		e[0]*x+e[4]*y+e[8]*z+e[12]*w,
		e[1]*x+e[5]*y+e[9]*z+e[13]*w,
		e[2]*x+e[6]*y+e[10]*z+e[14]*w,
		e[3]*x+e[7]*y+e[11]*z+e[15]*w,
	)
}
