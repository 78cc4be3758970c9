package opengl

import (
	"testing"

	"github.com/gogpu/gputypes"

	"render-kernel/gpu"
)

// Every value of every gpu enumeration has a GL translation.
func TestTranslationTablesComplete(t *testing.T) {
	for f := gpu.CompareNever; f <= gpu.CompareAlways; f++ {
		if _, ok := compareFuncs[f]; !ok {
			t.Errorf("no GL compare function for %v", f)
		}
	}
	for e := gpu.BlendAdd; e <= gpu.BlendMax; e++ {
		if _, ok := blendEquations[e]; !ok {
			t.Errorf("no GL blend equation for %v", e)
		}
	}
	for f := gpu.FactorZero; f <= gpu.FactorSrcAlphaSaturate; f++ {
		if _, ok := blendFactors[f]; !ok {
			t.Errorf("no GL blend factor for %v", f)
		}
	}
	for c := gpu.CapabilityDepthTest; c <= gpu.CapabilityCullFace; c++ {
		if _, ok := capabilities[c]; !ok {
			t.Errorf("no GL capability for %v", c)
		}
	}
	for tt := gpu.TargetTexture2D; tt <= gpu.TargetCubeMapNegativeZ; tt++ {
		if _, ok := textureTargets[tt]; !ok {
			t.Errorf("no GL texture target for %v", tt)
		}
	}
	for p := gpu.AttachColor0; p <= gpu.AttachDepthStencil; p++ {
		if _, ok := attachmentPoints[p]; !ok {
			t.Errorf("no GL attachment for %v", p)
		}
	}
	for f := gpu.FilterNearest; f <= gpu.FilterLinearMipmapLinear; f++ {
		if _, ok := textureFilters[f]; !ok {
			t.Errorf("no GL filter for %v", f)
		}
	}
	for w := gpu.WrapRepeat; w <= gpu.WrapMirroredRepeat; w++ {
		if _, ok := textureWraps[w]; !ok {
			t.Errorf("no GL wrap for %v", w)
		}
	}
	for m := gpu.PrimitiveTriangles; m <= gpu.PrimitivePoints; m++ {
		if _, ok := primitiveModes[m]; !ok {
			t.Errorf("no GL primitive for %v", m)
		}
	}
}

func TestPixelFormatsMatchByteSizes(t *testing.T) {
	for format := range pixelFormats {
		if gpu.BytesPerPixel(format) == 0 {
			t.Errorf("%v has a GL format but no byte size", format)
		}
	}
	if _, ok := pixelFormats[gputypes.TextureFormatRGBA8Unorm]; !ok {
		t.Error("RGBA8 must be uploadable")
	}
}

func TestReflectedTypesCoverUniformTypes(t *testing.T) {
	seen := make(map[gpu.UniformType]bool)
	for _, typ := range glslTypes {
		seen[typ] = true
	}
	for typ := gpu.UniformFloat; typ <= gpu.UniformSamplerCube; typ++ {
		if !seen[typ] {
			t.Errorf("no GL type reflects to %v", typ)
		}
	}
}

func TestLookupPanicsOnUnknownValue(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected a panic for an unmapped value")
		}
	}()
	lookup(compareFuncs, gpu.CompareFunc(200), "compare function")
}
