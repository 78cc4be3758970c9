package opengl

import (
	"unsafe"

	gl "github.com/go-gl/gl/v4.1-core/gl"
	"github.com/gogpu/gputypes"

	"render-kernel/gpu"
)

func (d *Device) CreateTexture() gpu.Texture {
	var id uint32
	gl.GenTextures(1, &id)
	return gpu.Texture(id)
}

// TexImage2D specifies one level of t. Nil pixels allocate storage only,
// which is how render targets are created.
func (d *Device) TexImage2D(t gpu.Texture, target gpu.TextureTarget, level int, format gputypes.TextureFormat, width, height int, pixels []byte) {
	var ptr unsafe.Pointer
	if len(pixels) > 0 {
		ptr = gl.Ptr(pixels)
	}
	d.texImage(t, target, level, format, width, height, ptr)
}

func (d *Device) TexImage2DFloat(t gpu.Texture, target gpu.TextureTarget, level int, format gputypes.TextureFormat, width, height int, pixels []float32) {
	var ptr unsafe.Pointer
	if len(pixels) > 0 {
		ptr = gl.Ptr(pixels)
	}
	d.texImage(t, target, level, format, width, height, ptr)
}

func (d *Device) texImage(t gpu.Texture, target gpu.TextureTarget, level int, format gputypes.TextureFormat, width, height int, pixels unsafe.Pointer) {
	pf := lookup(pixelFormats, format, "texture format")
	bind := lookup(textureTargets, target.BindTarget(), "texture target")

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(bind, uint32(t))
	gl.TexImage2D(
		lookup(textureTargets, target, "texture target"),
		int32(level),
		pf.internal,
		int32(width),
		int32(height),
		0,
		pf.format,
		pf.xtype,
		pixels,
	)
	gl.BindTexture(bind, 0)
}

func (d *Device) TexParameters(t gpu.Texture, target gpu.TextureTarget, p gpu.SamplerParameters) {
	bind := lookup(textureTargets, target.BindTarget(), "texture target")

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(bind, uint32(t))
	gl.TexParameteri(bind, gl.TEXTURE_MIN_FILTER, lookup(textureFilters, p.MinFilter, "texture filter"))
	gl.TexParameteri(bind, gl.TEXTURE_MAG_FILTER, lookup(textureFilters, p.MagFilter, "texture filter"))
	gl.TexParameteri(bind, gl.TEXTURE_WRAP_S, lookup(textureWraps, p.WrapS, "texture wrap"))
	gl.TexParameteri(bind, gl.TEXTURE_WRAP_T, lookup(textureWraps, p.WrapT, "texture wrap"))
	if bind == gl.TEXTURE_CUBE_MAP {
		gl.TexParameteri(bind, gl.TEXTURE_WRAP_R, gl.CLAMP_TO_EDGE)
	}
	gl.BindTexture(bind, 0)
}

func (d *Device) GenerateMipmap(t gpu.Texture, target gpu.TextureTarget) {
	bind := lookup(textureTargets, target.BindTarget(), "texture target")

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(bind, uint32(t))
	gl.GenerateMipmap(bind)
	gl.BindTexture(bind, 0)
}

func (d *Device) BindTexture(unit int, target gpu.TextureTarget, t gpu.Texture) {
	gl.ActiveTexture(gl.TEXTURE0 + uint32(unit))
	gl.BindTexture(lookup(textureTargets, target.BindTarget(), "texture target"), uint32(t))
}

func (d *Device) DeleteTexture(t gpu.Texture) {
	id := uint32(t)
	gl.DeleteTextures(1, &id)
}
