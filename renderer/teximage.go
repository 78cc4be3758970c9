package renderer

import (
	"fmt"
	"math/bits"

	"github.com/gogpu/gputypes"

	"render-kernel/gpu"
	"render-kernel/scene"
)

// TexImage2D is a device texture: a single 2D image or a six-face cube,
// each with MipCount levels.
type TexImage2D struct {
	Width    int
	Height   int
	Target   gpu.TextureTarget
	Format   gputypes.TextureFormat
	MipCount int
	Sampler  gpu.SamplerParameters

	context   *Context
	handle    gpu.Texture
	destroyed bool
}

// NewTexImage2D allocates level 0 without initial pixels, for use as a
// render target. target is TargetTexture2D or TargetCubeMap.
func NewTexImage2D(c *Context, width, height int, target gpu.TextureTarget, format gputypes.TextureFormat) (*TexImage2D, error) {
	if err := checkImageShape(width, height, target, format); err != nil {
		return nil, err
	}

	t := newTexImage2D(c, width, height, target, format)
	for _, face := range t.faces() {
		t.upload(face, scene.PixelData{Width: width, Height: height, Format: format})
	}
	t.SetSampler(gpu.DefaultSamplerParameters())
	return t, nil
}

// MakeTexImage2DFromTexture uploads a 2D texture.
func MakeTexImage2DFromTexture(c *Context, tex *scene.Texture) (*TexImage2D, error) {
	img := tex.Image
	if err := checkImageShape(img.Width, img.Height, gpu.TargetTexture2D, img.Format); err != nil {
		return nil, fmt.Errorf("texture %q: %w", tex.Name, err)
	}

	t := newTexImage2D(c, img.Width, img.Height, gpu.TargetTexture2D, img.Format)
	t.upload(gpu.TargetTexture2D, img)
	t.SetSampler(tex.Sampler())
	if tex.GenerateMipmaps {
		t.GenerateMipmaps()
	}
	return t, nil
}

// MakeTexImage2DFromCubeTexture uploads the six faces of a cube texture.
// Faces without pixel data are allocated empty.
func MakeTexImage2DFromCubeTexture(c *Context, cube *scene.CubeMapTexture) (*TexImage2D, error) {
	first := cube.Images[0]
	if err := checkImageShape(first.Width, first.Height, gpu.TargetCubeMap, first.Format); err != nil {
		return nil, fmt.Errorf("cube texture %q: %w", cube.Name, err)
	}

	t := newTexImage2D(c, first.Width, first.Height, gpu.TargetCubeMap, first.Format)
	for i, target := range scene.CubeFaceTargets {
		t.upload(target, cube.Images[i])
	}
	t.SetSampler(gpu.SamplerParameters{
		MinFilter: cube.MinFilter,
		MagFilter: cube.MagFilter,
		WrapS:     gpu.WrapClampToEdge,
		WrapT:     gpu.WrapClampToEdge,
	})
	if cube.GenerateMipmaps {
		t.GenerateMipmaps()
	}
	return t, nil
}

// MakeTexImage2DFromEquirectangularTexture projects a latitude/longitude
// image onto a new cube texture with faces of faceSize, one framebuffer draw
// per face. The source upload and the helper objects are released before
// returning.
func MakeTexImage2DFromEquirectangularTexture(c *Context, tex *scene.Texture, faceSize int) (*TexImage2D, error) {
	source, err := MakeTexImage2DFromTexture(c, tex)
	if err != nil {
		return nil, err
	}
	defer source.Destroy()

	format := gputypes.TextureFormatRGBA8Unorm
	if gpu.IsFloatFormat(tex.Image.Format) {
		format = tex.Image.Format
	}
	cube, err := NewTexImage2D(c, faceSize, faceSize, gpu.TargetCubeMap, format)
	if err != nil {
		return nil, err
	}

	program, err := MakeProgramFromShaderMaterial(c, EquirectangularMaterial())
	if err != nil {
		cube.Destroy()
		return nil, err
	}
	defer program.Destroy()

	pass, err := MakeBufferGeometryFromGeometry(c, scene.PassGeometry())
	if err != nil {
		cube.Destroy()
		return nil, err
	}
	defer pass.Destroy()

	fb := NewFramebuffer(c)
	defer fb.Destroy()

	uniforms := UniformValueMap{"equirectangularMap": source}
	for i, target := range scene.CubeFaceTargets {
		if err := fb.Attach(gpu.AttachColor0, cube, target, 0); err != nil {
			cube.Destroy()
			return nil, err
		}
		uniforms["faceIndex"] = i
		if err := RenderBufferGeometry(fb, program, uniforms, pass); err != nil {
			cube.Destroy()
			return nil, fmt.Errorf("project face %d: %w", i, err)
		}
	}
	return cube, nil
}

func newTexImage2D(c *Context, width, height int, target gpu.TextureTarget, format gputypes.TextureFormat) *TexImage2D {
	return &TexImage2D{
		Width:    width,
		Height:   height,
		Target:   target,
		Format:   format,
		MipCount: 1,
		context:  c,
		handle:   c.device.CreateTexture(),
	}
}

func checkImageShape(width, height int, target gpu.TextureTarget, format gputypes.TextureFormat) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: image size %dx%d", ErrInvalidTarget, width, height)
	}
	if target != gpu.TargetTexture2D && target != gpu.TargetCubeMap {
		return fmt.Errorf("%w: %v is not a texture target", ErrInvalidTarget, target)
	}
	if target == gpu.TargetCubeMap && width != height {
		return fmt.Errorf("%w: cube faces must be square, got %dx%d", ErrInvalidTarget, width, height)
	}
	if gpu.BytesPerPixel(format) == 0 {
		return fmt.Errorf("%w: unsupported format %v", ErrInvalidTarget, format)
	}
	return nil
}

func (t *TexImage2D) faces() []gpu.TextureTarget {
	if t.Target == gpu.TargetCubeMap {
		return scene.CubeFaceTargets[:]
	}
	return []gpu.TextureTarget{gpu.TargetTexture2D}
}

func (t *TexImage2D) upload(target gpu.TextureTarget, img scene.PixelData) {
	d := t.context.device
	if gpu.IsFloatFormat(t.Format) {
		d.TexImage2DFloat(t.handle, target, 0, t.Format, t.Width, t.Height, img.Floats)
	} else {
		d.TexImage2D(t.handle, target, 0, t.Format, t.Width, t.Height, img.Pixels)
	}
}

// Handle returns the device texture name.
func (t *TexImage2D) Handle() gpu.Texture { return t.handle }

func (t *TexImage2D) SetSampler(p gpu.SamplerParameters) {
	t.context.device.TexParameters(t.handle, t.Target, p)
	t.Sampler = p
}

// LevelSize returns the size of mip level.
func (t *TexImage2D) LevelSize(level int) (int, int) {
	return max(t.Width>>level, 1), max(t.Height>>level, 1)
}

// GenerateMipmaps builds the full chain from level 0.
func (t *TexImage2D) GenerateMipmaps() {
	t.context.device.GenerateMipmap(t.handle, t.Target)
	t.MipCount = bits.Len(uint(max(t.Width, t.Height)))
}

// Destroy deletes the texture. Framebuffers still holding it as an
// attachment must be detached or destroyed separately.
func (t *TexImage2D) Destroy() {
	if t.destroyed {
		return
	}
	t.context.device.DeleteTexture(t.handle)
	t.destroyed = true
}
