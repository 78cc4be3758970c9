package scene

import (
	"fmt"
	stdmath "math"

	"render-kernel/math"
)

const (
	AttributeTangent   = "tangent"
	AttributeBitangent = "bitangent"
)

// ComputeTangents adds per-vertex tangent and bitangent streams for
// tangent-space normal mapping. The geometry needs position, normal and uv
// streams; triangles with a degenerate UV area contribute nothing.
func (g *Geometry) ComputeTangents() error {
	positions := g.Attributes[AttributePosition]
	normals := g.Attributes[AttributeNormal]
	uvs := g.Attributes[AttributeUV]
	if positions == nil || normals == nil || uvs == nil {
		return fmt.Errorf("%w: tangents need position, normal and uv", ErrInvalidGeometry)
	}
	if err := g.Validate(); err != nil {
		return err
	}

	count := positions.Count()
	tangents := make([]math.Vector3, count)
	bitangents := make([]math.Vector3, count)

	vec3 := func(a *Attribute, i uint32) math.Vector3 {
		d := a.Data[int(i)*a.Components:]
		return math.Vector3{X: float64(d[0]), Y: float64(d[1]), Z: float64(d[2])}
	}
	uv := func(i uint32) (float64, float64) {
		d := uvs.Data[int(i)*uvs.Components:]
		return float64(d[0]), float64(d[1])
	}

	accum := func(i0, i1, i2 uint32) {
		p0, p1, p2 := vec3(positions, i0), vec3(positions, i1), vec3(positions, i2)
		u0, v0 := uv(i0)
		u1, v1 := uv(i1)
		u2, v2 := uv(i2)

		du1, dv1 := u1-u0, v1-v0
		du2, dv2 := u2-u0, v2-v0
		denom := du1*dv2 - du2*dv1
		if denom == 0 {
			return
		}
		r := 1 / denom

		e1 := p1.Sub(&p0)
		e2 := p2.Sub(&p0)
		t := e1.Clone().MultiplyByScalar(dv2 * r).Sub(e2.Clone().MultiplyByScalar(dv1 * r))
		b := e2.Clone().MultiplyByScalar(du1 * r).Sub(e1.Clone().MultiplyByScalar(du2 * r))

		for _, i := range [3]uint32{i0, i1, i2} {
			tangents[i].Add(t)
			bitangents[i].Add(b)
		}
	}

	if len(g.Indices) > 0 {
		for i := 0; i+2 < len(g.Indices); i += 3 {
			accum(g.Indices[i], g.Indices[i+1], g.Indices[i+2])
		}
	} else {
		for i := 0; i+2 < count; i += 3 {
			accum(uint32(i), uint32(i+1), uint32(i+2))
		}
	}

	// Gram-Schmidt against the normal
	tangentData := make([]float32, 0, count*3)
	bitangentData := make([]float32, 0, count*3)
	for i := 0; i < count; i++ {
		n := vec3(normals, uint32(i))
		t := &tangents[i]
		t.Sub(n.Clone().MultiplyByScalar(n.Dot(t)))
		if t.LengthSqr() < 1e-8 {
			// any direction perpendicular to the normal
			if stdmath.Abs(n.X) < 0.9 {
				t.Set(1, 0, 0).Sub(n.Clone().MultiplyByScalar(n.X))
			} else {
				t.Set(0, 1, 0).Sub(n.Clone().MultiplyByScalar(n.Y))
			}
		}
		t.Normalize()

		b := &bitangents[i]
		if b.LengthSqr() < 1e-8 {
			b.Copy(&n).Cross(t)
		}
		b.Normalize()

		tangentData = append(tangentData, float32(t.X), float32(t.Y), float32(t.Z))
		bitangentData = append(bitangentData, float32(b.X), float32(b.Y), float32(b.Z))
	}

	g.SetAttribute(AttributeTangent, NewAttribute(3, tangentData))
	g.SetAttribute(AttributeBitangent, NewAttribute(3, bitangentData))
	return nil
}
