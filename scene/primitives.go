package scene

import (
	stdmath "math"

	"render-kernel/math"
)

// PassGeometry returns a clip-space quad covering the whole target, used
// for full-screen passes such as cube face projection.
func PassGeometry() *Geometry {
	positions := []float32{
		-1, -1, 0,
		1, -1, 0,
		1, 1, 0,
		-1, 1, 0,
	}
	uvs := []float32{
		0, 0,
		1, 0,
		1, 1,
		0, 1,
	}

	g := NewGeometry()
	g.SetAttribute(AttributePosition, NewAttribute(3, positions))
	g.SetAttribute(AttributeUV, NewAttribute(2, uvs))
	g.Indices = []uint32{0, 1, 2, 0, 2, 3}
	return g
}

// BoxGeometry returns an axis-aligned box centered on the origin with four
// vertices per face so each face gets flat normals.
func BoxGeometry(width, height, depth float32) *Geometry {
	x, y, z := width/2, height/2, depth/2

	type face struct {
		normal  [3]float32
		corners [4][3]float32
	}
	faces := []face{
		// Front
		{[3]float32{0, 0, 1}, [4][3]float32{{-x, -y, z}, {x, -y, z}, {x, y, z}, {-x, y, z}}},
		// Back
		{[3]float32{0, 0, -1}, [4][3]float32{{x, -y, -z}, {-x, -y, -z}, {-x, y, -z}, {x, y, -z}}},
		// Top
		{[3]float32{0, 1, 0}, [4][3]float32{{-x, y, z}, {x, y, z}, {x, y, -z}, {-x, y, -z}}},
		// Bottom
		{[3]float32{0, -1, 0}, [4][3]float32{{-x, -y, -z}, {x, -y, -z}, {x, -y, z}, {-x, -y, z}}},
		// Right
		{[3]float32{1, 0, 0}, [4][3]float32{{x, -y, z}, {x, -y, -z}, {x, y, -z}, {x, y, z}}},
		// Left
		{[3]float32{-1, 0, 0}, [4][3]float32{{-x, -y, -z}, {-x, -y, z}, {-x, y, z}, {-x, y, -z}}},
	}
	faceUVs := [4][2]float32{{0, 0}, {1, 0}, {1, 1}, {0, 1}}

	var positions, normals, uvs []float32
	var indices []uint32
	for i, f := range faces {
		for c := 0; c < 4; c++ {
			positions = append(positions, f.corners[c][:]...)
			normals = append(normals, f.normal[:]...)
			uvs = append(uvs, faceUVs[c][:]...)
		}
		base := uint32(i * 4)
		indices = append(indices, base, base+1, base+2, base+2, base+3, base)
	}

	g := NewGeometry()
	g.SetAttribute(AttributePosition, NewAttribute(3, positions))
	g.SetAttribute(AttributeNormal, NewAttribute(3, normals))
	g.SetAttribute(AttributeUV, NewAttribute(2, uvs))
	g.Indices = indices
	return g
}

// PolyhedronGeometry subdivides each triangle of the given polyhedron detail
// times along its edges and pushes every vertex onto a sphere of radius.
// The result is non-indexed with normals pointing outward.
func PolyhedronGeometry(vertices []float32, indices []uint32, radius float32, detail int) *Geometry {
	if detail < 0 {
		detail = 0
	}

	vertex := func(i uint32) math.Vector3 {
		return math.Vector3{
			X: float64(vertices[i*3]),
			Y: float64(vertices[i*3+1]),
			Z: float64(vertices[i*3+2]),
		}
	}

	var points []math.Vector3
	for i := 0; i+2 < len(indices); i += 3 {
		points = subdivideFace(points, vertex(indices[i]), vertex(indices[i+1]), vertex(indices[i+2]), detail)
	}

	positions := make([]float32, 0, len(points)*3)
	normals := make([]float32, 0, len(points)*3)
	uvs := make([]float32, 0, len(points)*2)
	for i := range points {
		n := points[i].Clone().Normalize()
		p := n.Clone().MultiplyByScalar(float64(radius))

		positions = append(positions, float32(p.X), float32(p.Y), float32(p.Z))
		normals = append(normals, float32(n.X), float32(n.Y), float32(n.Z))

		azimuth := stdmath.Atan2(n.Z, -n.X)
		inclination := stdmath.Atan2(-n.Y, stdmath.Sqrt(n.X*n.X+n.Z*n.Z))
		uvs = append(uvs, float32(azimuth/2/stdmath.Pi+0.5), float32(inclination/stdmath.Pi+0.5))
	}

	g := NewGeometry()
	g.SetAttribute(AttributePosition, NewAttribute(3, positions))
	g.SetAttribute(AttributeNormal, NewAttribute(3, normals))
	g.SetAttribute(AttributeUV, NewAttribute(2, uvs))
	return g
}

func lerp(a, b math.Vector3, t float64) math.Vector3 {
	return math.Vector3{
		X: a.X + (b.X-a.X)*t,
		Y: a.Y + (b.Y-a.Y)*t,
		Z: a.Z + (b.Z-a.Z)*t,
	}
}

// subdivideFace splits triangle abc into (detail+1)^2 triangles.
func subdivideFace(out []math.Vector3, a, b, c math.Vector3, detail int) []math.Vector3 {
	cols := detail + 1

	grid := make([][]math.Vector3, cols+1)
	for i := 0; i <= cols; i++ {
		aj := lerp(a, c, float64(i)/float64(cols))
		bj := lerp(b, c, float64(i)/float64(cols))
		rows := cols - i

		grid[i] = make([]math.Vector3, rows+1)
		for j := 0; j <= rows; j++ {
			if j == 0 && i == cols {
				grid[i][j] = aj
			} else {
				grid[i][j] = lerp(aj, bj, float64(j)/float64(rows))
			}
		}
	}

	for i := 0; i < cols; i++ {
		for j := 0; j < 2*(cols-i)-1; j++ {
			k := j / 2
			if j%2 == 0 {
				out = append(out, grid[i][k+1], grid[i+1][k], grid[i][k])
			} else {
				out = append(out, grid[i][k+1], grid[i+1][k+1], grid[i+1][k])
			}
		}
	}
	return out
}

// IcosahedronGeometry returns a geodesic sphere. detail 0 is the plain
// icosahedron with 20 faces.
func IcosahedronGeometry(radius float32, detail int) *Geometry {
	t := float32((1 + stdmath.Sqrt(5)) / 2)

	vertices := []float32{
		-1, t, 0, 1, t, 0, -1, -t, 0, 1, -t, 0,
		0, -1, t, 0, 1, t, 0, -1, -t, 0, 1, -t,
		t, 0, -1, t, 0, 1, -t, 0, -1, -t, 0, 1,
	}
	indices := []uint32{
		0, 11, 5, 0, 5, 1, 0, 1, 7, 0, 7, 10, 0, 10, 11,
		1, 5, 9, 5, 11, 4, 11, 10, 2, 10, 7, 6, 7, 1, 8,
		3, 9, 4, 3, 4, 2, 3, 2, 6, 3, 6, 8, 3, 8, 9,
		4, 9, 5, 2, 4, 11, 6, 2, 10, 8, 6, 7, 9, 8, 1,
	}

	return PolyhedronGeometry(vertices, indices, radius, detail)
}
