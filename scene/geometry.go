package scene

import (
	"errors"
	"fmt"
	"sort"

	"render-kernel/math"
)

// Standard attribute names. Shaders declare vertex inputs with these names.
const (
	AttributePosition = "position"
	AttributeNormal   = "normal"
	AttributeUV       = "uv"
)

// Attribute is one tightly packed float vertex stream.
type Attribute struct {
	Components int
	Data       []float32
}

func NewAttribute(components int, data []float32) *Attribute {
	return &Attribute{Components: components, Data: data}
}

// Count returns the number of vertices in the stream.
func (a *Attribute) Count() int {
	if a.Components == 0 {
		return 0
	}
	return len(a.Data) / a.Components
}

// Geometry holds CPU-side vertex streams and optional indices.
// GPU upload is done by renderer.MakeBufferGeometryFromGeometry.
type Geometry struct {
	Attributes map[string]*Attribute
	Indices    []uint32
}

func NewGeometry() *Geometry {
	return &Geometry{Attributes: make(map[string]*Attribute)}
}

func (g *Geometry) SetAttribute(name string, a *Attribute) *Geometry {
	g.Attributes[name] = a
	return g
}

// AttributeNames returns the attribute names in sorted order.
func (g *Geometry) AttributeNames() []string {
	names := make([]string, 0, len(g.Attributes))
	for name := range g.Attributes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// VertexCount returns the vertex count shared by all attributes.
func (g *Geometry) VertexCount() int {
	for _, a := range g.Attributes {
		return a.Count()
	}
	return 0
}

var ErrInvalidGeometry = errors.New("invalid geometry")

// Validate checks that every attribute has whole vertices, all attributes
// agree on vertex count, and every index is in range.
func (g *Geometry) Validate() error {
	if len(g.Attributes) == 0 {
		return fmt.Errorf("%w: no attributes", ErrInvalidGeometry)
	}

	count := -1
	for _, name := range g.AttributeNames() {
		a := g.Attributes[name]
		if a.Components < 1 || a.Components > 4 {
			return fmt.Errorf("%w: attribute %q has %d components", ErrInvalidGeometry, name, a.Components)
		}
		if len(a.Data)%a.Components != 0 {
			return fmt.Errorf("%w: attribute %q length %d is not a multiple of %d", ErrInvalidGeometry, name, len(a.Data), a.Components)
		}
		if count >= 0 && a.Count() != count {
			return fmt.Errorf("%w: attribute %q has %d vertices, expected %d", ErrInvalidGeometry, name, a.Count(), count)
		}
		count = a.Count()
	}

	for i, idx := range g.Indices {
		if int(idx) >= count {
			return fmt.Errorf("%w: index %d at %d out of range", ErrInvalidGeometry, idx, i)
		}
	}
	return nil
}

// Transform applies m to the position stream and the rotation part of m to
// the normal stream, in place.
func (g *Geometry) Transform(m *math.Matrix4) *Geometry {
	if pos, ok := g.Attributes[AttributePosition]; ok && pos.Components == 3 {
		p := &math.Vector3{}
		for i := 0; i < len(pos.Data); i += 3 {
			p.Set(float64(pos.Data[i]), float64(pos.Data[i+1]), float64(pos.Data[i+2]))
			m.TransformPoint(p)
			pos.Data[i], pos.Data[i+1], pos.Data[i+2] = float32(p.X), float32(p.Y), float32(p.Z)
		}
	}

	if normal, ok := g.Attributes[AttributeNormal]; ok && normal.Components == 3 {
		rotation := m.Clone()
		rotation.Elements[12], rotation.Elements[13], rotation.Elements[14] = 0, 0, 0
		n := &math.Vector3{}
		for i := 0; i < len(normal.Data); i += 3 {
			n.Set(float64(normal.Data[i]), float64(normal.Data[i+1]), float64(normal.Data[i+2]))
			rotation.TransformPoint(n).Normalize()
			normal.Data[i], normal.Data[i+1], normal.Data[i+2] = float32(n.X), float32(n.Y), float32(n.Z)
		}
	}
	return g
}
