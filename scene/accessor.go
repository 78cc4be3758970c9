package scene

import "render-kernel/math"

// TextureAccessor samples a texture through a UV transform: scale, then
// rotation, then translation.
type TextureAccessor struct {
	Texture       *Texture
	UVIndex       int
	UVScale       math.Vector2
	UVRotation    float64
	UVTranslation math.Vector2
}

func NewTextureAccessor(texture *Texture) *TextureAccessor {
	return &TextureAccessor{
		Texture: texture,
		UVScale: math.Vector2{X: 1, Y: 1},
	}
}

// Clone copies the transform. The texture is shared.
func (a *TextureAccessor) Clone() *TextureAccessor {
	c := *a
	return &c
}

// UVTransform writes translation * rotation * scale into result, allocated
// when nil. Upload it as a mat3 uniform.
func (a *TextureAccessor) UVTransform(result *math.Matrix3) *math.Matrix3 {
	if result == nil {
		result = math.NewMatrix3()
	}
	var rotation, scale math.Matrix3
	result.MakeTranslation2(&a.UVTranslation)
	result.MakeConcatenation(result, rotation.MakeRotation2FromAngle(a.UVRotation))
	return result.MakeConcatenation(result, scale.MakeScale2(&a.UVScale))
}
