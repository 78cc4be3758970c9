package gpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
)

// Translation into WebGPU descriptor values, for callers that bake
// pipelines up front instead of toggling state on a live context.

var compareFunctions = map[CompareFunc]gputypes.CompareFunction{
	CompareNever:        gputypes.CompareFunctionNever,
	CompareLess:         gputypes.CompareFunctionLess,
	CompareEqual:        gputypes.CompareFunctionEqual,
	CompareLessEqual:    gputypes.CompareFunctionLessEqual,
	CompareGreater:      gputypes.CompareFunctionGreater,
	CompareNotEqual:     gputypes.CompareFunctionNotEqual,
	CompareGreaterEqual: gputypes.CompareFunctionGreaterEqual,
	CompareAlways:       gputypes.CompareFunctionAlways,
}

var blendOperations = map[BlendEquation]gputypes.BlendOperation{
	BlendAdd:             gputypes.BlendOperationAdd,
	BlendSubtract:        gputypes.BlendOperationSubtract,
	BlendReverseSubtract: gputypes.BlendOperationReverseSubtract,
	BlendMin:             gputypes.BlendOperationMin,
	BlendMax:             gputypes.BlendOperationMax,
}

var blendFactors = map[BlendFactor]gputypes.BlendFactor{
	FactorZero:             gputypes.BlendFactorZero,
	FactorOne:              gputypes.BlendFactorOne,
	FactorSrcColor:         gputypes.BlendFactorSrc,
	FactorOneMinusSrcColor: gputypes.BlendFactorOneMinusSrc,
	FactorSrcAlpha:         gputypes.BlendFactorSrcAlpha,
	FactorOneMinusSrcAlpha: gputypes.BlendFactorOneMinusSrcAlpha,
	FactorDstColor:         gputypes.BlendFactorDst,
	FactorOneMinusDstColor: gputypes.BlendFactorOneMinusDst,
	FactorDstAlpha:         gputypes.BlendFactorDstAlpha,
	FactorOneMinusDstAlpha: gputypes.BlendFactorOneMinusDstAlpha,
	FactorSrcAlphaSaturate: gputypes.BlendFactorSrcAlphaSaturated,
}

func (f CompareFunc) WebGPU() gputypes.CompareFunction {
	v, ok := compareFunctions[f]
	if !ok {
		panic(fmt.Sprintf("gpu: no WebGPU compare function for %v", f))
	}
	return v
}

func (e BlendEquation) WebGPU() gputypes.BlendOperation {
	v, ok := blendOperations[e]
	if !ok {
		panic(fmt.Sprintf("gpu: no WebGPU blend operation for %v", e))
	}
	return v
}

func (f BlendFactor) WebGPU() gputypes.BlendFactor {
	v, ok := blendFactors[f]
	if !ok {
		panic(fmt.Sprintf("gpu: no WebGPU blend factor for %v", f))
	}
	return v
}

// ColorWriteMask packs per-channel write flags into a WebGPU mask.
func ColorWriteMask(r, g, b, a bool) gputypes.ColorWriteMask {
	var m gputypes.ColorWriteMask
	if r {
		m |= gputypes.ColorWriteMaskRed
	}
	if g {
		m |= gputypes.ColorWriteMaskGreen
	}
	if b {
		m |= gputypes.ColorWriteMaskBlue
	}
	if a {
		m |= gputypes.ColorWriteMaskAlpha
	}
	return m
}

// BytesPerPixel returns the storage size of one texel, or 0 for formats the
// renderer does not upload.
func BytesPerPixel(format gputypes.TextureFormat) int {
	switch format {
	case gputypes.TextureFormatRGBA8Unorm, gputypes.TextureFormatBGRA8Unorm, gputypes.TextureFormatDepth24PlusStencil8:
		return 4
	case gputypes.TextureFormatR8Unorm:
		return 1
	case gputypes.TextureFormatRGBA32Float:
		return 16
	}
	return 0
}

// IsFloatFormat reports whether pixels of format are uploaded as float32.
func IsFloatFormat(format gputypes.TextureFormat) bool {
	return format == gputypes.TextureFormatRGBA32Float
}
