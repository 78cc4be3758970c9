package opengl

import (
	"fmt"

	gl "github.com/go-gl/gl/v4.1-core/gl"
	"github.com/gogpu/gputypes"

	"render-kernel/gpu"
)

// Translation tables from the gpu enumerations to GL enums. A value missing
// from a table is a programming error in the caller, so lookups panic.

var compareFuncs = map[gpu.CompareFunc]uint32{
	gpu.CompareNever:        gl.NEVER,
	gpu.CompareLess:         gl.LESS,
	gpu.CompareEqual:        gl.EQUAL,
	gpu.CompareLessEqual:    gl.LEQUAL,
	gpu.CompareGreater:      gl.GREATER,
	gpu.CompareNotEqual:     gl.NOTEQUAL,
	gpu.CompareGreaterEqual: gl.GEQUAL,
	gpu.CompareAlways:       gl.ALWAYS,
}

var blendEquations = map[gpu.BlendEquation]uint32{
	gpu.BlendAdd:             gl.FUNC_ADD,
	gpu.BlendSubtract:        gl.FUNC_SUBTRACT,
	gpu.BlendReverseSubtract: gl.FUNC_REVERSE_SUBTRACT,
	gpu.BlendMin:             gl.MIN,
	gpu.BlendMax:             gl.MAX,
}

var blendFactors = map[gpu.BlendFactor]uint32{
	gpu.FactorZero:             gl.ZERO,
	gpu.FactorOne:              gl.ONE,
	gpu.FactorSrcColor:         gl.SRC_COLOR,
	gpu.FactorOneMinusSrcColor: gl.ONE_MINUS_SRC_COLOR,
	gpu.FactorSrcAlpha:         gl.SRC_ALPHA,
	gpu.FactorOneMinusSrcAlpha: gl.ONE_MINUS_SRC_ALPHA,
	gpu.FactorDstColor:         gl.DST_COLOR,
	gpu.FactorOneMinusDstColor: gl.ONE_MINUS_DST_COLOR,
	gpu.FactorDstAlpha:         gl.DST_ALPHA,
	gpu.FactorOneMinusDstAlpha: gl.ONE_MINUS_DST_ALPHA,
	gpu.FactorSrcAlphaSaturate: gl.SRC_ALPHA_SATURATE,
}

var capabilities = map[gpu.Capability]uint32{
	gpu.CapabilityDepthTest:   gl.DEPTH_TEST,
	gpu.CapabilityBlend:       gl.BLEND,
	gpu.CapabilityScissorTest: gl.SCISSOR_TEST,
	gpu.CapabilityCullFace:    gl.CULL_FACE,
}

var textureTargets = map[gpu.TextureTarget]uint32{
	gpu.TargetTexture2D:        gl.TEXTURE_2D,
	gpu.TargetCubeMap:          gl.TEXTURE_CUBE_MAP,
	gpu.TargetCubeMapPositiveX: gl.TEXTURE_CUBE_MAP_POSITIVE_X,
	gpu.TargetCubeMapNegativeX: gl.TEXTURE_CUBE_MAP_NEGATIVE_X,
	gpu.TargetCubeMapPositiveY: gl.TEXTURE_CUBE_MAP_POSITIVE_Y,
	gpu.TargetCubeMapNegativeY: gl.TEXTURE_CUBE_MAP_NEGATIVE_Y,
	gpu.TargetCubeMapPositiveZ: gl.TEXTURE_CUBE_MAP_POSITIVE_Z,
	gpu.TargetCubeMapNegativeZ: gl.TEXTURE_CUBE_MAP_NEGATIVE_Z,
}

var attachmentPoints = map[gpu.AttachmentPoint]uint32{
	gpu.AttachColor0:       gl.COLOR_ATTACHMENT0,
	gpu.AttachColor1:       gl.COLOR_ATTACHMENT1,
	gpu.AttachColor2:       gl.COLOR_ATTACHMENT2,
	gpu.AttachColor3:       gl.COLOR_ATTACHMENT3,
	gpu.AttachDepth:        gl.DEPTH_ATTACHMENT,
	gpu.AttachStencil:      gl.STENCIL_ATTACHMENT,
	gpu.AttachDepthStencil: gl.DEPTH_STENCIL_ATTACHMENT,
}

var textureFilters = map[gpu.TextureFilter]int32{
	gpu.FilterNearest:              gl.NEAREST,
	gpu.FilterLinear:               gl.LINEAR,
	gpu.FilterNearestMipmapNearest: gl.NEAREST_MIPMAP_NEAREST,
	gpu.FilterLinearMipmapNearest:  gl.LINEAR_MIPMAP_NEAREST,
	gpu.FilterNearestMipmapLinear:  gl.NEAREST_MIPMAP_LINEAR,
	gpu.FilterLinearMipmapLinear:   gl.LINEAR_MIPMAP_LINEAR,
}

var textureWraps = map[gpu.TextureWrap]int32{
	gpu.WrapRepeat:         gl.REPEAT,
	gpu.WrapClampToEdge:    gl.CLAMP_TO_EDGE,
	gpu.WrapMirroredRepeat: gl.MIRRORED_REPEAT,
}

var primitiveModes = map[gpu.PrimitiveMode]uint32{
	gpu.PrimitiveTriangles:     gl.TRIANGLES,
	gpu.PrimitiveTriangleStrip: gl.TRIANGLE_STRIP,
	gpu.PrimitiveLines:         gl.LINES,
	gpu.PrimitivePoints:        gl.POINTS,
}

// pixelFormat is the internal format, client format and client type of a
// texture upload.
type pixelFormat struct {
	internal int32
	format   uint32
	xtype    uint32
}

var pixelFormats = map[gputypes.TextureFormat]pixelFormat{
	gputypes.TextureFormatRGBA8Unorm:          {gl.RGBA8, gl.RGBA, gl.UNSIGNED_BYTE},
	gputypes.TextureFormatBGRA8Unorm:          {gl.RGBA8, gl.BGRA, gl.UNSIGNED_BYTE},
	gputypes.TextureFormatR8Unorm:             {gl.R8, gl.RED, gl.UNSIGNED_BYTE},
	gputypes.TextureFormatRGBA32Float:         {gl.RGBA32F, gl.RGBA, gl.FLOAT},
	gputypes.TextureFormatDepth24PlusStencil8: {gl.DEPTH24_STENCIL8, gl.DEPTH_STENCIL, gl.UNSIGNED_INT_24_8},
}

// glslTypes maps the GL type of an active uniform to its UniformType.
var glslTypes = map[uint32]gpu.UniformType{
	gl.FLOAT:        gpu.UniformFloat,
	gl.FLOAT_VEC2:   gpu.UniformVec2,
	gl.FLOAT_VEC3:   gpu.UniformVec3,
	gl.FLOAT_VEC4:   gpu.UniformVec4,
	gl.INT:          gpu.UniformInt,
	gl.BOOL:         gpu.UniformBool,
	gl.FLOAT_MAT3:   gpu.UniformMat3,
	gl.FLOAT_MAT4:   gpu.UniformMat4,
	gl.SAMPLER_2D:   gpu.UniformSampler2D,
	gl.SAMPLER_CUBE: gpu.UniformSamplerCube,
}

// attributeComponents maps the GL type of an active vertex input to its
// float count.
var attributeComponents = map[uint32]int{
	gl.FLOAT:      1,
	gl.FLOAT_VEC2: 2,
	gl.FLOAT_VEC3: 3,
	gl.FLOAT_VEC4: 4,
}

var framebufferStatuses = map[uint32]string{
	gl.FRAMEBUFFER_UNDEFINED:                     "undefined",
	gl.FRAMEBUFFER_INCOMPLETE_ATTACHMENT:         "incomplete attachment",
	gl.FRAMEBUFFER_INCOMPLETE_MISSING_ATTACHMENT: "missing attachment",
	gl.FRAMEBUFFER_INCOMPLETE_DRAW_BUFFER:        "incomplete draw buffer",
	gl.FRAMEBUFFER_INCOMPLETE_READ_BUFFER:        "incomplete read buffer",
	gl.FRAMEBUFFER_UNSUPPORTED:                   "unsupported",
	gl.FRAMEBUFFER_INCOMPLETE_MULTISAMPLE:        "incomplete multisample",
	gl.FRAMEBUFFER_INCOMPLETE_LAYER_TARGETS:      "incomplete layer targets",
}

func lookup[K comparable, V any](table map[K]V, key K, kind string) V {
	v, ok := table[key]
	if !ok {
		panic(fmt.Sprintf("opengl: no GL value for %s %v", kind, key))
	}
	return v
}
