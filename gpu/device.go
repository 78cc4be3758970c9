// Package gpu defines the boundary between the renderer and a native
// graphics API. Everything above this package speaks in the closed
// enumerations declared here; implementations translate them at the edge.
package gpu

import "github.com/gogpu/gputypes"

// Handles are opaque object names issued by a Device. The zero value of
// each means "none", and for Framebuffer it names the default surface.
type (
	Program     uint32
	Buffer      uint32
	Texture     uint32
	Framebuffer uint32
)

// UniformInfo describes one active uniform of a linked program.
type UniformInfo struct {
	Name     string
	Type     UniformType
	Location int32
}

// AttributeInfo describes one active vertex input of a linked program.
type AttributeInfo struct {
	Name       string
	Components int
	Location   int32
}

// Info carries the driver identification strings.
type Info struct {
	Vendor                 string
	Renderer               string
	Version                string
	ShadingLanguageVersion string
}

// Device is the single connection to the GPU. Implementations are not safe
// for concurrent use; all calls must come from the thread that owns the
// native context.
type Device interface {
	Info() Info

	// Pipeline state.
	UseProgram(p Program)
	BindFramebuffer(fb Framebuffer)
	Viewport(x, y, width, height int)
	Scissor(x, y, width, height int)
	SetCapability(c Capability, enabled bool)
	DepthFunc(f CompareFunc)
	BlendEquation(eq BlendEquation)
	BlendFuncSeparate(srcRGB, dstRGB, srcAlpha, dstAlpha BlendFactor)
	ClearColor(r, g, b, a float32)
	ClearDepth(depth float64)
	ClearStencil(s int)
	ColorMask(r, g, b, a bool)
	DepthMask(enabled bool)
	StencilMask(mask uint32)
	Clear(mask ClearMask)

	// Programs. Uniform setters target the program bound with UseProgram.
	CreateProgram(vertexSource, fragmentSource string) (Program, error)
	ValidateProgram(p Program) error
	ActiveUniforms(p Program) []UniformInfo
	ActiveAttributes(p Program) []AttributeInfo
	UniformFloats(location int32, t UniformType, values []float32)
	UniformInt(location int32, value int32)
	DeleteProgram(p Program)

	// Buffers.
	CreateVertexBuffer(data []float32) Buffer
	CreateIndexBuffer(indices []uint32) Buffer
	VertexAttribPointer(location int32, b Buffer, components int)
	BindIndexBuffer(b Buffer)
	DeleteBuffer(b Buffer)

	// Textures. A cube face target writes into the face of a cube texture.
	CreateTexture() Texture
	TexImage2D(t Texture, target TextureTarget, level int, format gputypes.TextureFormat, width, height int, pixels []byte)
	TexImage2DFloat(t Texture, target TextureTarget, level int, format gputypes.TextureFormat, width, height int, pixels []float32)
	TexParameters(t Texture, target TextureTarget, p SamplerParameters)
	GenerateMipmap(t Texture, target TextureTarget)
	BindTexture(unit int, target TextureTarget, t Texture)
	DeleteTexture(t Texture)

	// Framebuffers. Attachment, status and readback act on the bound one.
	CreateFramebuffer() Framebuffer
	FramebufferTexture2D(point AttachmentPoint, target TextureTarget, t Texture, level int)
	CheckFramebufferStatus() error
	ReadPixels(x, y, width, height int) []byte
	ReadFloatPixels(x, y, width, height int) []float32
	DeleteFramebuffer(fb Framebuffer)

	// Draw.
	DrawElements(mode PrimitiveMode, count int)
	DrawArrays(mode PrimitiveMode, first, count int)
}

// SamplerParameters groups the filtering and addressing of a texture.
type SamplerParameters struct {
	MinFilter TextureFilter
	MagFilter TextureFilter
	WrapS     TextureWrap
	WrapT     TextureWrap
}

func DefaultSamplerParameters() SamplerParameters {
	return SamplerParameters{
		MinFilter: FilterLinear,
		MagFilter: FilterLinear,
		WrapS:     WrapClampToEdge,
		WrapT:     WrapClampToEdge,
	}
}
