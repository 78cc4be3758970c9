package renderer

import (
	"fmt"

	"github.com/gogpu/gputypes"

	"render-kernel/gpu"
	"render-kernel/math"
)

// The four pipeline state clusters. Each is a plain value: assignment
// copies it, Equals compares every field, and the Context caches the last
// applied value of each.

// ── Depth test ────────────────────────────────────────────────────────────────

type DepthTestState struct {
	Enabled bool
	Func    gpu.CompareFunc
}

// NewDepthTestState returns an enabled Less test.
func NewDepthTestState() DepthTestState {
	return DepthTestState{Enabled: true, Func: gpu.CompareLess}
}

func (s DepthTestState) Clone() DepthTestState { return s }

func (s DepthTestState) Equals(o DepthTestState) bool {
	return s.Enabled == o.Enabled && s.Func == o.Func
}

func (s DepthTestState) String() string {
	return fmt.Sprintf("DepthTest{enabled=%t func=%v}", s.Enabled, s.Func)
}

// WebGPU returns the depth compare function of a pipeline. A disabled test
// always passes.
func (s DepthTestState) WebGPU() gputypes.CompareFunction {
	if !s.Enabled {
		return gputypes.CompareFunctionAlways
	}
	return s.Func.WebGPU()
}

// ── Blend ─────────────────────────────────────────────────────────────────────

type BlendState struct {
	Enabled           bool
	Equation          gpu.BlendEquation
	SourceRGBFactor   gpu.BlendFactor
	DestRGBFactor     gpu.BlendFactor
	SourceAlphaFactor gpu.BlendFactor
	DestAlphaFactor   gpu.BlendFactor
}

// NewBlendState returns the disabled state of a fresh GL context.
func NewBlendState() BlendState {
	return BlendState{
		Equation:          gpu.BlendAdd,
		SourceRGBFactor:   gpu.FactorOne,
		DestRGBFactor:     gpu.FactorZero,
		SourceAlphaFactor: gpu.FactorOne,
		DestAlphaFactor:   gpu.FactorZero,
	}
}

// NormalBlending composites straight alpha over the destination.
func NormalBlending() BlendState {
	return BlendState{
		Enabled:           true,
		Equation:          gpu.BlendAdd,
		SourceRGBFactor:   gpu.FactorSrcAlpha,
		DestRGBFactor:     gpu.FactorOneMinusSrcAlpha,
		SourceAlphaFactor: gpu.FactorOne,
		DestAlphaFactor:   gpu.FactorOneMinusSrcAlpha,
	}
}

func AdditiveBlending() BlendState {
	return BlendState{
		Enabled:           true,
		Equation:          gpu.BlendAdd,
		SourceRGBFactor:   gpu.FactorSrcAlpha,
		DestRGBFactor:     gpu.FactorOne,
		SourceAlphaFactor: gpu.FactorOne,
		DestAlphaFactor:   gpu.FactorOne,
	}
}

// PremultipliedBlending composites colors already multiplied by alpha.
func PremultipliedBlending() BlendState {
	return BlendState{
		Enabled:           true,
		Equation:          gpu.BlendAdd,
		SourceRGBFactor:   gpu.FactorOne,
		DestRGBFactor:     gpu.FactorOneMinusSrcAlpha,
		SourceAlphaFactor: gpu.FactorOne,
		DestAlphaFactor:   gpu.FactorOneMinusSrcAlpha,
	}
}

func (s BlendState) Clone() BlendState { return s }

func (s BlendState) Equals(o BlendState) bool {
	return s.Enabled == o.Enabled &&
		s.Equation == o.Equation &&
		s.SourceRGBFactor == o.SourceRGBFactor &&
		s.DestRGBFactor == o.DestRGBFactor &&
		s.SourceAlphaFactor == o.SourceAlphaFactor &&
		s.DestAlphaFactor == o.DestAlphaFactor
}

func (s BlendState) String() string {
	return fmt.Sprintf("Blend{enabled=%t eq=%v rgb=%v/%v alpha=%v/%v}",
		s.Enabled, s.Equation, s.SourceRGBFactor, s.DestRGBFactor, s.SourceAlphaFactor, s.DestAlphaFactor)
}

// WebGPU returns the blend descriptor of a color target, or nil when
// blending is disabled.
func (s BlendState) WebGPU() *gputypes.BlendState {
	if !s.Enabled {
		return nil
	}
	op := s.Equation.WebGPU()
	return &gputypes.BlendState{
		Color: gputypes.BlendComponent{
			SrcFactor: s.SourceRGBFactor.WebGPU(),
			DstFactor: s.DestRGBFactor.WebGPU(),
			Operation: op,
		},
		Alpha: gputypes.BlendComponent{
			SrcFactor: s.SourceAlphaFactor.WebGPU(),
			DstFactor: s.DestAlphaFactor.WebGPU(),
			Operation: op,
		},
	}
}

// ── Clear ─────────────────────────────────────────────────────────────────────

type ClearState struct {
	Color   math.Vector3
	Alpha   float64
	Depth   float64
	Stencil int
}

// NewClearState returns transparent black, far depth and a zero stencil.
func NewClearState() ClearState {
	return ClearState{Depth: 1}
}

func (s ClearState) Clone() ClearState { return s }

func (s ClearState) Equals(o ClearState) bool {
	return s.Color.Equals(&o.Color) && s.Alpha == o.Alpha && s.Depth == o.Depth && s.Stencil == o.Stencil
}

func (s ClearState) String() string {
	return fmt.Sprintf("Clear{color=(%g,%g,%g) alpha=%g depth=%g stencil=%d}",
		s.Color.X, s.Color.Y, s.Color.Z, s.Alpha, s.Depth, s.Stencil)
}

// WebGPU returns the clear value of a color attachment.
func (s ClearState) WebGPU() gputypes.Color {
	return gputypes.Color{R: s.Color.X, G: s.Color.Y, B: s.Color.Z, A: s.Alpha}
}

// ── Mask ──────────────────────────────────────────────────────────────────────

type MaskState struct {
	Red     bool
	Green   bool
	Blue    bool
	Alpha   bool
	Depth   bool
	Stencil uint32
}

// NewMaskState enables writes to every channel and stencil bit.
func NewMaskState() MaskState {
	return MaskState{Red: true, Green: true, Blue: true, Alpha: true, Depth: true, Stencil: 0xFFFFFFFF}
}

func (s MaskState) Clone() MaskState { return s }

func (s MaskState) Equals(o MaskState) bool {
	return s == o
}

func (s MaskState) String() string {
	return fmt.Sprintf("Mask{rgba=%t,%t,%t,%t depth=%t stencil=%#x}",
		s.Red, s.Green, s.Blue, s.Alpha, s.Depth, s.Stencil)
}

// WebGPU returns the color write mask of a color target.
func (s MaskState) WebGPU() gputypes.ColorWriteMask {
	return gpu.ColorWriteMask(s.Red, s.Green, s.Blue, s.Alpha)
}

// ColorTarget assembles a WebGPU color target from the blend and mask
// clusters, for pipelines baked ahead of time.
func ColorTarget(format gputypes.TextureFormat, blend BlendState, mask MaskState) gputypes.ColorTargetState {
	return gputypes.ColorTargetState{
		Format:    format,
		Blend:     blend.WebGPU(),
		WriteMask: mask.WebGPU(),
	}
}
