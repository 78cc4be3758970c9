package renderer

import (
	"fmt"
)

type renderOptions struct {
	depthTest *DepthTestState
	blend     *BlendState
	mask      *MaskState
}

// RenderOption supplies pipeline state for one RenderBufferGeometry call.
// State that is not supplied is left as the context has it.
type RenderOption func(*renderOptions)

func WithDepthTestState(s DepthTestState) RenderOption {
	return func(o *renderOptions) { o.depthTest = &s }
}

func WithBlendState(s BlendState) RenderOption {
	return func(o *renderOptions) { o.blend = &s }
}

func WithMaskState(s MaskState) RenderOption {
	return func(o *renderOptions) { o.mask = &s }
}

// RenderBufferGeometry draws geometry into fb with program.
//
// Every uniform the program declares must be present in uniforms and every
// vertex input must exist in geometry. Both are checked before the first
// device call, so a failed draw leaves the device and the context cache as
// they were, and so does a target with no pixels. The viewport is set to
// the size of fb.
func RenderBufferGeometry(fb VirtualFramebuffer, program *Program, uniforms UniformValueMap, geometry *BufferGeometry, opts ...RenderOption) error {
	var o renderOptions
	for _, opt := range opts {
		opt(&o)
	}

	c := fb.Context()
	if program.context != c {
		return fmt.Errorf("render %q: %w", program.Name, ErrContextMismatch)
	}
	if err := c.checkFramebuffer(fb); err != nil {
		return fmt.Errorf("render %q: %w", program.Name, err)
	}

	resolved, err := program.resolveUniforms(uniforms)
	if err != nil {
		return err
	}
	attributes, err := geometry.resolveAttributes(program)
	if err != nil {
		return err
	}
	width, height := fb.Size()
	if width <= 0 || height <= 0 {
		return fmt.Errorf("render %q: %w: target is %dx%d", program.Name, ErrInvalidTarget, width, height)
	}
	// a bound program was validated when it was bound
	if c.program != program {
		if err := program.Validate(); err != nil {
			return err
		}
	}

	c.bindFramebuffer(fb)
	c.SetViewport(NewRect(0, 0, width, height))
	if o.depthTest != nil {
		c.SetDepthTestState(*o.depthTest)
	}
	if o.blend != nil {
		c.SetBlendState(*o.blend)
	}
	if o.mask != nil {
		c.SetMaskState(*o.mask)
	}

	c.bindProgram(program)
	c.uploadUniforms(resolved)

	d := c.device
	for _, a := range attributes {
		d.VertexAttribPointer(a.location, a.buffer, a.components)
	}
	if geometry.Indexed() {
		d.BindIndexBuffer(geometry.indices)
		d.DrawElements(geometry.Mode, geometry.indexCount)
	} else {
		d.DrawArrays(geometry.Mode, 0, geometry.vertexCount)
	}
	return nil
}
