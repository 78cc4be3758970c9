package renderer

import (
	"fmt"

	"render-kernel/gpu"
	"render-kernel/math"
)

// UniformValueMap maps uniform names to values. Accepted values are
// float64, float32, int, bool, math.Vector2/3/4 and math.Matrix3/4 (by value
// or pointer), and *TexImage2D for samplers.
type UniformValueMap map[string]any

type resolvedUniform struct {
	info    gpu.UniformInfo
	floats  []float32
	integer int32
	texture *TexImage2D
}

// resolveUniforms converts every uniform the program declares into upload
// form. It makes no device calls, so a failure leaves the GPU untouched.
func (p *Program) resolveUniforms(values UniformValueMap) ([]resolvedUniform, error) {
	out := make([]resolvedUniform, 0, len(p.uniformNames))
	for _, name := range p.uniformNames {
		info := p.uniforms[name]
		v, ok := values[name]
		if !ok {
			return nil, &MissingUniformError{Program: p.Name, Name: name}
		}
		r, ok := convertUniform(info, v)
		if !ok {
			return nil, &UniformTypeError{Program: p.Name, Name: name, Want: info.Type, Value: v}
		}
		if r.texture != nil {
			if r.texture.destroyed {
				return nil, &UniformTypeError{Program: p.Name, Name: name, Want: info.Type, Value: v}
			}
			if r.texture.context != p.context {
				return nil, fmt.Errorf("uniform %q: %w", name, ErrContextMismatch)
			}
		}
		out = append(out, r)
	}
	return out, nil
}

func convertUniform(info gpu.UniformInfo, v any) (resolvedUniform, bool) {
	r := resolvedUniform{info: info}

	switch info.Type {
	case gpu.UniformFloat:
		switch x := v.(type) {
		case float64:
			r.floats = []float32{float32(x)}
		case float32:
			r.floats = []float32{x}
		case int:
			r.floats = []float32{float32(x)}
		default:
			return r, false
		}

	case gpu.UniformInt, gpu.UniformBool:
		switch x := v.(type) {
		case int:
			r.integer = int32(x)
		case int32:
			r.integer = x
		case bool:
			if x {
				r.integer = 1
			}
		default:
			return r, false
		}

	case gpu.UniformVec2:
		switch x := v.(type) {
		case math.Vector2:
			r.floats = []float32{float32(x.X), float32(x.Y)}
		case *math.Vector2:
			if x == nil {
				return r, false
			}
			r.floats = []float32{float32(x.X), float32(x.Y)}
		default:
			return r, false
		}

	case gpu.UniformVec3:
		switch x := v.(type) {
		case math.Vector3:
			r.floats = []float32{float32(x.X), float32(x.Y), float32(x.Z)}
		case *math.Vector3:
			if x == nil {
				return r, false
			}
			r.floats = []float32{float32(x.X), float32(x.Y), float32(x.Z)}
		default:
			return r, false
		}

	case gpu.UniformVec4:
		switch x := v.(type) {
		case math.Vector4:
			r.floats = []float32{float32(x.X), float32(x.Y), float32(x.Z), float32(x.W)}
		case *math.Vector4:
			if x == nil {
				return r, false
			}
			r.floats = []float32{float32(x.X), float32(x.Y), float32(x.Z), float32(x.W)}
		default:
			return r, false
		}

	case gpu.UniformMat3:
		var m *math.Matrix3
		switch x := v.(type) {
		case math.Matrix3:
			m = &x
		case *math.Matrix3:
			m = x
		}
		if m == nil {
			return r, false
		}
		r.floats = make([]float32, 9)
		m.ToArray(r.floats, 0)

	case gpu.UniformMat4:
		var m *math.Matrix4
		switch x := v.(type) {
		case math.Matrix4:
			m = &x
		case *math.Matrix4:
			m = x
		}
		if m == nil {
			return r, false
		}
		r.floats = make([]float32, 16)
		m.ToArray(r.floats, 0)

	case gpu.UniformSampler2D, gpu.UniformSamplerCube:
		tex, ok := v.(*TexImage2D)
		if !ok || tex == nil {
			return r, false
		}
		want := gpu.TargetTexture2D
		if info.Type == gpu.UniformSamplerCube {
			want = gpu.TargetCubeMap
		}
		if tex.Target != want {
			return r, false
		}
		r.texture = tex

	default:
		return r, false
	}
	return r, true
}

// uploadUniforms sends resolved values to the bound program. Samplers get
// consecutive texture units in uniform name order.
func (c *Context) uploadUniforms(uniforms []resolvedUniform) {
	unit := 0
	for _, u := range uniforms {
		switch {
		case u.texture != nil:
			c.device.BindTexture(unit, u.texture.Target, u.texture.handle)
			c.device.UniformInt(u.info.Location, int32(unit))
			unit++
		case u.floats != nil:
			c.device.UniformFloats(u.info.Location, u.info.Type, u.floats)
		default:
			c.device.UniformInt(u.info.Location, u.integer)
		}
	}
}
