package math

import "math"

// The MakeMatrix4* constructors write into result when it is non-nil and
// allocate a fresh identity matrix otherwise, so render loops can reuse a
// single destination per frame.

func matrix4Result(result *Matrix4) *Matrix4 {
	if result == nil {
		return NewMatrix4()
	}
	return result
}

func MakeMatrix4Translation(t *Vector3, result *Matrix4) *Matrix4 {
	return matrix4Result(result).Set(
		1, 0, 0, t.X,
		0, 1, 0, t.Y,
		0, 0, 1, t.Z,
		0, 0, 0, 1,
	)
}

func MakeMatrix4Scale(s *Vector3, result *Matrix4) *Matrix4 {
	return matrix4Result(result).Set(
		s.X, 0, 0, 0,
		0, s.Y, 0, 0,
		0, 0, s.Z, 0,
		0, 0, 0, 1,
	)
}

func MakeMatrix4RotationFromQuaternion(q *Quaternion, result *Matrix4) *Matrix4 {
	return MakeMatrix4Compose(&Vector3{}, q, &Vector3{X: 1, Y: 1, Z: 1}, result)
}

// MakeMatrix4RotationFromEuler fails with ErrUnsupportedEulerOrder for an
// order outside the six known orderings.
func MakeMatrix4RotationFromEuler(e *Euler, result *Matrix4) (*Matrix4, error) {
	q, err := MakeQuaternionFromEuler(e, nil)
	if err != nil {
		return result, err
	}
	return MakeMatrix4RotationFromQuaternion(q, result), nil
}

// MakeMatrix4Compose builds translation * rotation * scale.
func MakeMatrix4Compose(position *Vector3, rotation *Quaternion, scale *Vector3, result *Matrix4) *Matrix4 {
	m := matrix4Result(result)
	te := &m.Elements

	x, y, z, w := rotation.X, rotation.Y, rotation.Z, rotation.W
	x2, y2, z2 := x+x, y+y, z+z
	xx, xy, xz := x*x2, x*y2, x*z2
	yy, yz, zz := y*y2, y*z2, z*z2
	wx, wy, wz := w*x2, w*y2, w*z2

	sx, sy, sz := scale.X, scale.Y, scale.Z

	te[0] = (1 - (yy + zz)) * sx
	te[1] = (xy + wz) * sx
	te[2] = (xz - wy) * sx
	te[3] = 0

	te[4] = (xy - wz) * sy
	te[5] = (1 - (xx + zz)) * sy
	te[6] = (yz + wx) * sy
	te[7] = 0

	te[8] = (xz + wy) * sz
	te[9] = (yz - wx) * sz
	te[10] = (1 - (xx + yy)) * sz
	te[11] = 0

	te[12] = position.X
	te[13] = position.Y
	te[14] = position.Z
	te[15] = 1

	return m
}

// MakeMatrix4LookAt returns the rotation that points -Z from eye toward
// target with the given up vector. Translation is left at zero.
func MakeMatrix4LookAt(eye, target, up *Vector3, result *Matrix4) *Matrix4 {
	m := matrix4Result(result)

	z := eye.Clone().Sub(target)
	if z.LengthSqr() == 0 {
		// eye and target coincide
		z.Z = 1
	}
	z.Normalize()

	x := up.Clone().Cross(z)
	if x.LengthSqr() == 0 {
		// up and z are parallel
		if math.Abs(up.Z) == 1 {
			z.X += 0.0001
		} else {
			z.Z += 0.0001
		}
		z.Normalize()
		x = up.Clone().Cross(z)
	}
	x.Normalize()

	y := z.Clone().Cross(x)

	return m.Set(
		x.X, y.X, z.X, 0,
		x.Y, y.Y, z.Y, 0,
		x.Z, y.Z, z.Z, 0,
		0, 0, 0, 1,
	)
}

func MakeMatrix4Perspective(left, right, top, bottom, near, far float64, result *Matrix4) *Matrix4 {
	x := 2 * near / (right - left)
	y := 2 * near / (top - bottom)

	a := (right + left) / (right - left)
	b := (top + bottom) / (top - bottom)
	c := -(far + near) / (far - near)
	d := (-2 * far * near) / (far - near)

	return matrix4Result(result).Set(
		x, 0, a, 0,
		0, y, b, 0,
		0, 0, c, d,
		0, 0, -1, 0,
	)
}

// MakeMatrix4PerspectiveFov takes the vertical field of view in degrees.
func MakeMatrix4PerspectiveFov(verticalFov, near, far, zoom, aspectRatio float64, result *Matrix4) *Matrix4 {
	height := 2 * near * math.Tan(verticalFov*math.Pi/360) / zoom
	width := height * aspectRatio

	top := height / 2
	bottom := top - height
	left := -width / 2
	right := left + width

	return MakeMatrix4Perspective(left, right, top, bottom, near, far, result)
}

func MakeMatrix4Orthographic(left, right, top, bottom, near, far float64, result *Matrix4) *Matrix4 {
	w := 1 / (right - left)
	h := 1 / (top - bottom)
	p := 1 / (far - near)

	x := (right + left) * w
	y := (top + bottom) * h
	z := (far + near) * p

	return matrix4Result(result).Set(
		2*w, 0, 0, -x,
		0, 2*h, 0, -y,
		0, 0, -2*p, -z,
		0, 0, 0, 1,
	)
}
