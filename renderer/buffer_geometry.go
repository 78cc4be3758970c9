package renderer

import (
	"fmt"

	"render-kernel/gpu"
	"render-kernel/scene"
)

type bufferAttribute struct {
	buffer     gpu.Buffer
	components int
}

// BufferGeometry is a scene.Geometry uploaded to device buffers: one vertex
// buffer per attribute plus an optional index buffer.
type BufferGeometry struct {
	Mode gpu.PrimitiveMode

	context     *Context
	attributes  map[string]bufferAttribute
	indices     gpu.Buffer
	indexCount  int
	vertexCount int
	destroyed   bool
}

func MakeBufferGeometryFromGeometry(c *Context, g *scene.Geometry) (*BufferGeometry, error) {
	if err := g.Validate(); err != nil {
		return nil, fmt.Errorf("upload geometry: %w", err)
	}

	bg := &BufferGeometry{
		Mode:        gpu.PrimitiveTriangles,
		context:     c,
		attributes:  make(map[string]bufferAttribute, len(g.Attributes)),
		vertexCount: g.VertexCount(),
	}
	for _, name := range g.AttributeNames() {
		a := g.Attributes[name]
		bg.attributes[name] = bufferAttribute{
			buffer:     c.device.CreateVertexBuffer(a.Data),
			components: a.Components,
		}
	}
	if len(g.Indices) > 0 {
		bg.indices = c.device.CreateIndexBuffer(g.Indices)
		bg.indexCount = len(g.Indices)
	}
	return bg, nil
}

func (g *BufferGeometry) VertexCount() int { return g.vertexCount }

func (g *BufferGeometry) IndexCount() int { return g.indexCount }

func (g *BufferGeometry) Indexed() bool { return g.indexCount > 0 }

type boundAttribute struct {
	location   int32
	buffer     gpu.Buffer
	components int
}

// resolveAttributes matches the program's vertex inputs to buffers without
// touching the device.
func (g *BufferGeometry) resolveAttributes(p *Program) ([]boundAttribute, error) {
	if g.destroyed {
		return nil, fmt.Errorf("bind geometry: %w", ErrDestroyed)
	}
	if g.context != p.context {
		return nil, fmt.Errorf("bind geometry: %w", ErrContextMismatch)
	}

	out := make([]boundAttribute, 0, len(p.attributeNames))
	for _, name := range p.attributeNames {
		a, ok := g.attributes[name]
		if !ok {
			return nil, &MissingAttributeError{Program: p.Name, Name: name}
		}
		out = append(out, boundAttribute{
			location:   p.attributes[name].Location,
			buffer:     a.buffer,
			components: a.components,
		})
	}
	return out, nil
}

func (g *BufferGeometry) Destroy() {
	if g.destroyed {
		return
	}
	for _, a := range g.attributes {
		g.context.device.DeleteBuffer(a.buffer)
	}
	if g.indices != 0 {
		g.context.device.DeleteBuffer(g.indices)
	}
	g.destroyed = true
}
