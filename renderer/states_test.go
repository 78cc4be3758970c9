package renderer

import (
	"strings"
	"testing"

	"github.com/gogpu/gputypes"

	"render-kernel/gpu"
	"render-kernel/math"
)

func TestStateEquality(t *testing.T) {
	if !NormalBlending().Equals(NormalBlending()) {
		t.Error("identical blend states should be equal")
	}
	if NormalBlending().Equals(AdditiveBlending()) {
		t.Error("different blend factors should not be equal")
	}
	if NewDepthTestState().Equals(DepthTestState{Enabled: true, Func: gpu.CompareLessEqual}) {
		t.Error("different depth functions should not be equal")
	}
	a := ClearState{Color: math.Vector3{X: 0.1}, Depth: 1}
	b := a.Clone()
	b.Color.X = 0.2
	if a.Equals(b) || a.Color.X != 0.1 {
		t.Error("clone should be independent")
	}
	m := NewMaskState()
	m.Stencil = 0xFF
	if m.Equals(NewMaskState()) {
		t.Error("stencil mask should take part in equality")
	}
}

func TestStateStrings(t *testing.T) {
	if s := NewDepthTestState().String(); !strings.Contains(s, "Less") {
		t.Errorf("depth state string lacks the function: %s", s)
	}
	if s := NewMaskState().String(); !strings.Contains(s, "0xffffffff") {
		t.Errorf("mask state string lacks the stencil: %s", s)
	}
}

func TestDepthTestStateWebGPU(t *testing.T) {
	tests := []struct {
		state DepthTestState
		want  gputypes.CompareFunction
	}{
		{NewDepthTestState(), gputypes.CompareFunctionLess},
		{DepthTestState{Enabled: true, Func: gpu.CompareGreaterEqual}, gputypes.CompareFunctionGreaterEqual},
		{DepthTestState{Enabled: false, Func: gpu.CompareNever}, gputypes.CompareFunctionAlways},
	}
	for _, tt := range tests {
		if got := tt.state.WebGPU(); got != tt.want {
			t.Errorf("%v: expected %v, got %v", tt.state, tt.want, got)
		}
	}
}

func TestBlendStateWebGPU(t *testing.T) {
	if NewBlendState().WebGPU() != nil {
		t.Error("disabled blending should have no descriptor")
	}

	got := PremultipliedBlending().WebGPU()
	want := gputypes.BlendStatePremultiplied()
	if got == nil || *got != want {
		t.Errorf("premultiplied: expected %+v, got %+v", want, got)
	}

	add := AdditiveBlending().WebGPU()
	if add.Color.DstFactor != gputypes.BlendFactorOne || add.Color.Operation != gputypes.BlendOperationAdd {
		t.Errorf("additive: unexpected %+v", add)
	}
}

func TestClearStateWebGPU(t *testing.T) {
	s := ClearState{Color: math.Vector3{X: 0.25, Y: 0.5, Z: 0.75}, Alpha: 1}
	if got := s.WebGPU(); got != (gputypes.Color{R: 0.25, G: 0.5, B: 0.75, A: 1}) {
		t.Errorf("unexpected clear color %+v", got)
	}
}

func TestColorTarget(t *testing.T) {
	target := ColorTarget(gputypes.TextureFormatBGRA8Unorm, NewBlendState(), NewMaskState())
	if target.Format != gputypes.TextureFormatBGRA8Unorm || target.Blend != nil {
		t.Errorf("unexpected target %+v", target)
	}
	if target.WriteMask != gputypes.ColorWriteMaskAll {
		t.Errorf("expected all channels writable, got %v", target.WriteMask)
	}

	none := ColorTarget(gputypes.TextureFormatRGBA8Unorm, NormalBlending(), MaskState{Depth: true})
	if none.WriteMask != gputypes.ColorWriteMaskNone || none.Blend == nil {
		t.Errorf("unexpected target %+v", none)
	}
}
