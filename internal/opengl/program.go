package opengl

import (
	"fmt"
	"strings"

	gl "github.com/go-gl/gl/v4.1-core/gl"

	"render-kernel/gpu"
)

// CreateProgram links the two stages and reflects the result. A uniform or
// vertex input the reflection cannot describe fails the link, so no draw
// ever runs with part of the interface unset.
func (d *Device) CreateProgram(vertexSource, fragmentSource string) (gpu.Program, error) {
	prog, err := newProgram(vertexSource, fragmentSource)
	if err != nil {
		return 0, err
	}
	if _, err := reflectUniforms(prog); err != nil {
		gl.DeleteProgram(prog)
		return 0, fmt.Errorf("link failed: %w", err)
	}
	if _, err := reflectAttributes(prog); err != nil {
		gl.DeleteProgram(prog)
		return 0, fmt.Errorf("link failed: %w", err)
	}
	return gpu.Program(prog), nil
}

func (d *Device) ValidateProgram(p gpu.Program) error {
	prog := uint32(p)
	if !gl.IsProgram(prog) {
		return fmt.Errorf("program %d does not exist", prog)
	}
	gl.ValidateProgram(prog)

	var status int32
	gl.GetProgramiv(prog, gl.VALIDATE_STATUS, &status)
	if status == gl.FALSE {
		return fmt.Errorf("program %d failed validation: %s", prog, programLog(prog))
	}
	return nil
}

// ActiveUniforms reflects the uniforms the linker kept.
func (d *Device) ActiveUniforms(p gpu.Program) []gpu.UniformInfo {
	uniforms, err := reflectUniforms(uint32(p))
	if err != nil {
		panic(fmt.Sprintf("opengl: program %d: %v", p, err))
	}
	return uniforms
}

// ActiveAttributes reflects the vertex inputs, skipping built-ins.
func (d *Device) ActiveAttributes(p gpu.Program) []gpu.AttributeInfo {
	attributes, err := reflectAttributes(uint32(p))
	if err != nil {
		panic(fmt.Sprintf("opengl: program %d: %v", p, err))
	}
	return attributes
}

func reflectUniforms(prog uint32) ([]gpu.UniformInfo, error) {
	var count, maxLen int32
	gl.GetProgramiv(prog, gl.ACTIVE_UNIFORMS, &count)
	gl.GetProgramiv(prog, gl.ACTIVE_UNIFORM_MAX_LENGTH, &maxLen)

	uniforms := make([]gpu.UniformInfo, 0, count)
	buf := make([]uint8, maxLen+1)
	for i := uint32(0); i < uint32(count); i++ {
		var length, size int32
		var xtype uint32
		gl.GetActiveUniform(prog, i, int32(len(buf)), &length, &size, &xtype, &buf[0])
		name := string(buf[:length])

		typ, err := uniformType(name, xtype, size)
		if err != nil {
			return nil, err
		}
		uniforms = append(uniforms, gpu.UniformInfo{
			Name:     name,
			Type:     typ,
			Location: gl.GetUniformLocation(prog, gl.Str(name+"\x00")),
		})
	}
	return uniforms, nil
}

func reflectAttributes(prog uint32) ([]gpu.AttributeInfo, error) {
	var count, maxLen int32
	gl.GetProgramiv(prog, gl.ACTIVE_ATTRIBUTES, &count)
	gl.GetProgramiv(prog, gl.ACTIVE_ATTRIBUTE_MAX_LENGTH, &maxLen)

	attributes := make([]gpu.AttributeInfo, 0, count)
	buf := make([]uint8, maxLen+1)
	for i := uint32(0); i < uint32(count); i++ {
		var length, size int32
		var xtype uint32
		gl.GetActiveAttrib(prog, i, int32(len(buf)), &length, &size, &xtype, &buf[0])
		name := string(buf[:length])
		if strings.HasPrefix(name, "gl_") {
			continue
		}

		components, err := vertexInputComponents(name, xtype, size)
		if err != nil {
			return nil, err
		}
		attributes = append(attributes, gpu.AttributeInfo{
			Name:       name,
			Components: components,
			Location:   gl.GetAttribLocation(prog, gl.Str(name+"\x00")),
		})
	}
	return attributes, nil
}

// uniformType maps one active uniform as GL reports it. Arrays come back
// as "name[0]" and are rejected along with types that have no
// gpu.UniformType.
func uniformType(name string, xtype uint32, size int32) (gpu.UniformType, error) {
	if size != 1 || strings.HasSuffix(name, "]") {
		return 0, fmt.Errorf("uniform %s: arrays are not supported", name)
	}
	typ, ok := glslTypes[xtype]
	if !ok {
		return 0, fmt.Errorf("uniform %s: unsupported type 0x%x", name, xtype)
	}
	return typ, nil
}

func vertexInputComponents(name string, xtype uint32, size int32) (int, error) {
	if size != 1 || strings.HasSuffix(name, "]") {
		return 0, fmt.Errorf("vertex input %s: arrays are not supported", name)
	}
	components, ok := attributeComponents[xtype]
	if !ok {
		return 0, fmt.Errorf("vertex input %s: unsupported type 0x%x", name, xtype)
	}
	return components, nil
}

func (d *Device) UniformFloats(location int32, t gpu.UniformType, values []float32) {
	if len(values) == 0 {
		return
	}
	switch t {
	case gpu.UniformFloat:
		gl.Uniform1fv(location, 1, &values[0])
	case gpu.UniformVec2:
		gl.Uniform2fv(location, 1, &values[0])
	case gpu.UniformVec3:
		gl.Uniform3fv(location, 1, &values[0])
	case gpu.UniformVec4:
		gl.Uniform4fv(location, 1, &values[0])
	case gpu.UniformMat3:
		gl.UniformMatrix3fv(location, 1, false, &values[0])
	case gpu.UniformMat4:
		gl.UniformMatrix4fv(location, 1, false, &values[0])
	default:
		panic(fmt.Sprintf("opengl: %v is not a float uniform", t))
	}
}

func (d *Device) UniformInt(location int32, value int32) {
	gl.Uniform1i(location, value)
}

func (d *Device) DeleteProgram(p gpu.Program) {
	gl.DeleteProgram(uint32(p))
}

// ── Shader helpers ────────────────────────────────────────────────────────────

func newProgram(vertSrc, fragSrc string) (uint32, error) {
	vert, err := compileShader(vertSrc, gl.VERTEX_SHADER)
	if err != nil {
		return 0, fmt.Errorf("vertex: %w", err)
	}
	defer gl.DeleteShader(vert)

	frag, err := compileShader(fragSrc, gl.FRAGMENT_SHADER)
	if err != nil {
		return 0, fmt.Errorf("fragment: %w", err)
	}
	defer gl.DeleteShader(frag)

	prog := gl.CreateProgram()
	gl.AttachShader(prog, vert)
	gl.AttachShader(prog, frag)
	gl.LinkProgram(prog)

	var status int32
	gl.GetProgramiv(prog, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		log := programLog(prog)
		gl.DeleteProgram(prog)
		return 0, fmt.Errorf("link failed: %v", log)
	}
	return prog, nil
}

func compileShader(src string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csrc, free := gl.Strs(src + "\x00")
	gl.ShaderSource(shader, 1, csrc, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen+1))
		gl.GetShaderInfoLog(shader, logLen, nil, gl.Str(log))
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("compile failed: %v", strings.TrimRight(log, "\x00"))
	}
	return shader, nil
}

func programLog(prog uint32) string {
	var logLen int32
	gl.GetProgramiv(prog, gl.INFO_LOG_LENGTH, &logLen)
	log := strings.Repeat("\x00", int(logLen+1))
	gl.GetProgramInfoLog(prog, logLen, nil, gl.Str(log))
	return strings.TrimRight(log, "\x00")
}
