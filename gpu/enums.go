package gpu

import "fmt"

type CompareFunc uint8

const (
	CompareNever CompareFunc = iota
	CompareLess
	CompareEqual
	CompareLessEqual
	CompareGreater
	CompareNotEqual
	CompareGreaterEqual
	CompareAlways
)

var compareFuncNames = [...]string{
	"Never", "Less", "Equal", "LessEqual", "Greater", "NotEqual", "GreaterEqual", "Always",
}

func (f CompareFunc) String() string { return enumName(compareFuncNames[:], int(f), "CompareFunc") }

type BlendEquation uint8

const (
	BlendAdd BlendEquation = iota
	BlendSubtract
	BlendReverseSubtract
	BlendMin
	BlendMax
)

var blendEquationNames = [...]string{"Add", "Subtract", "ReverseSubtract", "Min", "Max"}

func (e BlendEquation) String() string {
	return enumName(blendEquationNames[:], int(e), "BlendEquation")
}

type BlendFactor uint8

const (
	FactorZero BlendFactor = iota
	FactorOne
	FactorSrcColor
	FactorOneMinusSrcColor
	FactorSrcAlpha
	FactorOneMinusSrcAlpha
	FactorDstColor
	FactorOneMinusDstColor
	FactorDstAlpha
	FactorOneMinusDstAlpha
	FactorSrcAlphaSaturate
)

var blendFactorNames = [...]string{
	"Zero", "One",
	"SrcColor", "OneMinusSrcColor",
	"SrcAlpha", "OneMinusSrcAlpha",
	"DstColor", "OneMinusDstColor",
	"DstAlpha", "OneMinusDstAlpha",
	"SrcAlphaSaturate",
}

func (f BlendFactor) String() string { return enumName(blendFactorNames[:], int(f), "BlendFactor") }

// Capability is a server-side toggle switched with SetCapability.
type Capability uint8

const (
	CapabilityDepthTest Capability = iota
	CapabilityBlend
	CapabilityScissorTest
	CapabilityCullFace
)

var capabilityNames = [...]string{"DepthTest", "Blend", "ScissorTest", "CullFace"}

func (c Capability) String() string { return enumName(capabilityNames[:], int(c), "Capability") }

// ClearMask selects which buffers Clear resets. Values combine with |.
type ClearMask uint8

const (
	ClearColorBit ClearMask = 1 << iota
	ClearDepthBit
	ClearStencilBit

	ClearAll = ClearColorBit | ClearDepthBit | ClearStencilBit
)

func (m ClearMask) String() string {
	s := ""
	for i, name := range []string{"Color", "Depth", "Stencil"} {
		if m&(1<<i) != 0 {
			if s != "" {
				s += "|"
			}
			s += name
		}
	}
	if s == "" {
		return "None"
	}
	return s
}

// TextureTarget names either a whole texture or one face of a cube texture.
type TextureTarget uint8

const (
	TargetTexture2D TextureTarget = iota
	TargetCubeMap
	TargetCubeMapPositiveX
	TargetCubeMapNegativeX
	TargetCubeMapPositiveY
	TargetCubeMapNegativeY
	TargetCubeMapPositiveZ
	TargetCubeMapNegativeZ
)

var textureTargetNames = [...]string{
	"Texture2D", "CubeMap",
	"CubeMapPositiveX", "CubeMapNegativeX",
	"CubeMapPositiveY", "CubeMapNegativeY",
	"CubeMapPositiveZ", "CubeMapNegativeZ",
}

func (t TextureTarget) String() string {
	return enumName(textureTargetNames[:], int(t), "TextureTarget")
}

// CubeFaceCount is the number of faces of a cube texture.
const CubeFaceCount = 6

// CubeMapFace returns the target of face index 0..5 in +X, -X, +Y, -Y, +Z,
// -Z order.
func CubeMapFace(index int) TextureTarget {
	if index < 0 || index >= CubeFaceCount {
		panic(fmt.Sprintf("gpu: cube face index %d out of range", index))
	}
	return TargetCubeMapPositiveX + TextureTarget(index)
}

// IsCubeFace reports whether t addresses a single cube face.
func (t TextureTarget) IsCubeFace() bool {
	return t >= TargetCubeMapPositiveX && t <= TargetCubeMapNegativeZ
}

// FaceIndex returns the 0..5 index of a cube face target, or -1.
func (t TextureTarget) FaceIndex() int {
	if !t.IsCubeFace() {
		return -1
	}
	return int(t - TargetCubeMapPositiveX)
}

// BindTarget returns the target a texture of this kind is bound to.
func (t TextureTarget) BindTarget() TextureTarget {
	if t.IsCubeFace() {
		return TargetCubeMap
	}
	return t
}

type AttachmentPoint uint8

const (
	AttachColor0 AttachmentPoint = iota
	AttachColor1
	AttachColor2
	AttachColor3
	AttachDepth
	AttachStencil
	AttachDepthStencil
)

var attachmentPointNames = [...]string{
	"Color0", "Color1", "Color2", "Color3", "Depth", "Stencil", "DepthStencil",
}

func (p AttachmentPoint) String() string {
	return enumName(attachmentPointNames[:], int(p), "AttachmentPoint")
}

type TextureFilter uint8

const (
	FilterNearest TextureFilter = iota
	FilterLinear
	FilterNearestMipmapNearest
	FilterLinearMipmapNearest
	FilterNearestMipmapLinear
	FilterLinearMipmapLinear
)

var textureFilterNames = [...]string{
	"Nearest", "Linear",
	"NearestMipmapNearest", "LinearMipmapNearest",
	"NearestMipmapLinear", "LinearMipmapLinear",
}

func (f TextureFilter) String() string {
	return enumName(textureFilterNames[:], int(f), "TextureFilter")
}

// UsesMipmaps reports whether sampling with f reads levels above zero.
func (f TextureFilter) UsesMipmaps() bool {
	return f >= FilterNearestMipmapNearest
}

type TextureWrap uint8

const (
	WrapRepeat TextureWrap = iota
	WrapClampToEdge
	WrapMirroredRepeat
)

var textureWrapNames = [...]string{"Repeat", "ClampToEdge", "MirroredRepeat"}

func (w TextureWrap) String() string { return enumName(textureWrapNames[:], int(w), "TextureWrap") }

type UniformType uint8

const (
	UniformFloat UniformType = iota
	UniformVec2
	UniformVec3
	UniformVec4
	UniformInt
	UniformBool
	UniformMat3
	UniformMat4
	UniformSampler2D
	UniformSamplerCube
)

var uniformTypeNames = [...]string{
	"float", "vec2", "vec3", "vec4", "int", "bool", "mat3", "mat4", "sampler2D", "samplerCube",
}

func (t UniformType) String() string { return enumName(uniformTypeNames[:], int(t), "UniformType") }

// ParseUniformType maps a GLSL type keyword to its UniformType.
func ParseUniformType(glsl string) (UniformType, bool) {
	for i, name := range uniformTypeNames {
		if name == glsl {
			return UniformType(i), true
		}
	}
	return 0, false
}

// Components returns the float count of a value of type t.
func (t UniformType) Components() int {
	switch t {
	case UniformVec2:
		return 2
	case UniformVec3:
		return 3
	case UniformVec4:
		return 4
	case UniformMat3:
		return 9
	case UniformMat4:
		return 16
	}
	return 1
}

// IsSampler reports whether t binds a texture unit.
func (t UniformType) IsSampler() bool {
	return t == UniformSampler2D || t == UniformSamplerCube
}

type PrimitiveMode uint8

const (
	PrimitiveTriangles PrimitiveMode = iota
	PrimitiveTriangleStrip
	PrimitiveLines
	PrimitivePoints
)

var primitiveModeNames = [...]string{"Triangles", "TriangleStrip", "Lines", "Points"}

func (m PrimitiveMode) String() string {
	return enumName(primitiveModeNames[:], int(m), "PrimitiveMode")
}

func enumName(names []string, v int, kind string) string {
	if v < 0 || v >= len(names) {
		return fmt.Sprintf("%s(%d)", kind, v)
	}
	return names[v]
}
