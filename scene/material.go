package scene

// ShaderMaterial pairs the two shader stages of a program. The sources are
// passed to the driver untouched.
type ShaderMaterial struct {
	Name           string
	VertexShader   string
	FragmentShader string
}

func NewShaderMaterial(name, vertexShader, fragmentShader string) *ShaderMaterial {
	return &ShaderMaterial{
		Name:           name,
		VertexShader:   vertexShader,
		FragmentShader: fragmentShader,
	}
}
