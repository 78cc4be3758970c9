package renderer

import (
	"fmt"
	"sort"

	"render-kernel/core"
	"render-kernel/gpu"
	"render-kernel/scene"
)

// Program is a linked shader program together with its reflected uniform
// and attribute interface.
type Program struct {
	Name string

	context    *Context
	handle     gpu.Program
	uniforms   map[string]gpu.UniformInfo
	attributes map[string]gpu.AttributeInfo
	// sorted names; texture units are assigned in this order
	uniformNames   []string
	attributeNames []string
	destroyed      bool
}

// MakeProgramFromShaderMaterial compiles and links the material's shader
// stages. Link failures wrap gpu.ErrInvalidProgram.
func MakeProgramFromShaderMaterial(c *Context, m *scene.ShaderMaterial) (*Program, error) {
	handle, err := c.device.CreateProgram(m.VertexShader, m.FragmentShader)
	if err != nil {
		return nil, fmt.Errorf("link program %q: %w: %w", m.Name, gpu.ErrInvalidProgram, err)
	}

	p := &Program{
		Name:       m.Name,
		context:    c,
		handle:     handle,
		uniforms:   make(map[string]gpu.UniformInfo),
		attributes: make(map[string]gpu.AttributeInfo),
	}
	for _, u := range c.device.ActiveUniforms(handle) {
		p.uniforms[u.Name] = u
		p.uniformNames = append(p.uniformNames, u.Name)
	}
	for _, a := range c.device.ActiveAttributes(handle) {
		p.attributes[a.Name] = a
		p.attributeNames = append(p.attributeNames, a.Name)
	}
	sort.Strings(p.uniformNames)
	sort.Strings(p.attributeNames)

	core.Logger().Debug("program linked",
		"name", m.Name, "uniforms", len(p.uniformNames), "attributes", len(p.attributeNames))
	return p, nil
}

func (p *Program) Context() *Context { return p.context }

// Validate asks the device whether the program can run in the current
// state. Failures wrap gpu.ErrInvalidProgram.
func (p *Program) Validate() error {
	if p.destroyed {
		return fmt.Errorf("program %q: %w: %w", p.Name, gpu.ErrInvalidProgram, ErrDestroyed)
	}
	if err := p.context.device.ValidateProgram(p.handle); err != nil {
		return fmt.Errorf("program %q: %w: %w", p.Name, gpu.ErrInvalidProgram, err)
	}
	return nil
}

// Uniform returns the reflected description of the named uniform.
func (p *Program) Uniform(name string) (gpu.UniformInfo, bool) {
	u, ok := p.uniforms[name]
	return u, ok
}

// UniformNames returns the names of all active uniforms, sorted.
func (p *Program) UniformNames() []string {
	return append([]string(nil), p.uniformNames...)
}

func (p *Program) Attribute(name string) (gpu.AttributeInfo, bool) {
	a, ok := p.attributes[name]
	return a, ok
}

func (p *Program) AttributeNames() []string {
	return append([]string(nil), p.attributeNames...)
}

// Destroy deletes the program, unbinding it first if it is current.
func (p *Program) Destroy() {
	if p.destroyed {
		return
	}
	if p.context.program == p {
		p.context.bindProgram(nil)
	}
	p.context.device.DeleteProgram(p.handle)
	p.destroyed = true
}
