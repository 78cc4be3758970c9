package scene

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/gogpu/gputypes"
	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	"golang.org/x/image/tiff"

	"render-kernel/gpu"
)

// PixelData is one image level. Byte formats fill Pixels; float formats
// fill Floats. Rows run bottom-to-top as GL expects.
type PixelData struct {
	Width  int
	Height int
	Format gputypes.TextureFormat
	Pixels []byte
	Floats []float32
}

// NewPixelDataFromImage converts img to RGBA8 and flips it so the first row
// is the bottom of the image.
func NewPixelDataFromImage(img image.Image) PixelData {
	bounds := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, bounds.Min, draw.Src)

	return PixelData{
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
		Format: gputypes.TextureFormatRGBA8Unorm,
		Pixels: flipRows(rgba.Pix, rgba.Stride, bounds.Dy()),
	}
}

// Image returns the pixel data as an RGBA image with the top row first.
// Float data is clamped to [0, 1].
func (p PixelData) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, p.Width, p.Height))
	stride := p.Width * 4

	switch {
	case len(p.Pixels) >= stride*p.Height:
		copy(img.Pix, flipRows(p.Pixels[:stride*p.Height], stride, p.Height))
	case len(p.Floats) >= stride*p.Height:
		for y := 0; y < p.Height; y++ {
			row := p.Floats[(p.Height-1-y)*stride:]
			for x := 0; x < p.Width; x++ {
				img.SetRGBA(x, y, color.RGBA{
					R: unitToByte(row[x*4]),
					G: unitToByte(row[x*4+1]),
					B: unitToByte(row[x*4+2]),
					A: unitToByte(row[x*4+3]),
				})
			}
		}
	}
	return img
}

func unitToByte(v float32) uint8 {
	return uint8(min(max(v, 0), 1)*255 + 0.5)
}

func flipRows(pix []byte, stride, height int) []byte {
	out := make([]byte, len(pix))
	for y := 0; y < height; y++ {
		copy(out[y*stride:(y+1)*stride], pix[(height-1-y)*stride:(height-y)*stride])
	}
	return out
}

// ResizeImage scales img to width x height with Catmull-Rom filtering.
func ResizeImage(img image.Image, width, height int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
	return dst
}

// Texture describes a 2D image together with its sampling parameters.
type Texture struct {
	Name            string
	Image           PixelData
	MinFilter       gpu.TextureFilter
	MagFilter       gpu.TextureFilter
	WrapS           gpu.TextureWrap
	WrapT           gpu.TextureWrap
	GenerateMipmaps bool
}

func NewTexture(name string, img PixelData) *Texture {
	return &Texture{
		Name:      name,
		Image:     img,
		MinFilter: gpu.FilterLinear,
		MagFilter: gpu.FilterLinear,
		WrapS:     gpu.WrapClampToEdge,
		WrapT:     gpu.WrapClampToEdge,
	}
}

// Sampler returns the sampling parameters in device form.
func (t *Texture) Sampler() gpu.SamplerParameters {
	return gpu.SamplerParameters{
		MinFilter: t.MinFilter,
		MagFilter: t.MagFilter,
		WrapS:     t.WrapS,
		WrapT:     t.WrapT,
	}
}

// CubeFaceTargets lists the cube faces in image order: +X, -X, +Y, -Y, +Z, -Z.
var CubeFaceTargets = [gpu.CubeFaceCount]gpu.TextureTarget{
	gpu.TargetCubeMapPositiveX,
	gpu.TargetCubeMapNegativeX,
	gpu.TargetCubeMapPositiveY,
	gpu.TargetCubeMapNegativeY,
	gpu.TargetCubeMapPositiveZ,
	gpu.TargetCubeMapNegativeZ,
}

// CubeMapTexture holds six square faces of equal size, ordered as
// CubeFaceTargets.
type CubeMapTexture struct {
	Name            string
	Images          [gpu.CubeFaceCount]PixelData
	MinFilter       gpu.TextureFilter
	MagFilter       gpu.TextureFilter
	GenerateMipmaps bool
}

var ErrInvalidCubeMap = errors.New("invalid cube map")

func NewCubeMapTexture(name string, images [gpu.CubeFaceCount]PixelData) (*CubeMapTexture, error) {
	size := images[0].Width
	for i, img := range images {
		if img.Width != img.Height {
			return nil, fmt.Errorf("%w: face %d is %dx%d, faces must be square", ErrInvalidCubeMap, i, img.Width, img.Height)
		}
		if img.Width != size || img.Format != images[0].Format {
			return nil, fmt.Errorf("%w: face %d does not match face 0", ErrInvalidCubeMap, i)
		}
	}

	return &CubeMapTexture{
		Name:      name,
		Images:    images,
		MinFilter: gpu.FilterLinear,
		MagFilter: gpu.FilterLinear,
	}, nil
}

// Size returns the edge length of each face.
func (c *CubeMapTexture) Size() int {
	return c.Images[0].Width
}

// LoadTexture reads a PNG, JPEG, BMP or TIFF file from disk and returns a
// CPU-side Texture in RGBA8.
func LoadTexture(path string) (*Texture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open texture %q: %w", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode texture %q: %w", path, err)
	}

	return NewTexture(path, NewPixelDataFromImage(img)), nil
}

// SaveImage encodes img to path, choosing the encoder from the extension.
func SaveImage(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create image %q: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".bmp":
		err = bmp.Encode(f, img)
	case ".tif", ".tiff":
		err = tiff.Encode(f, img, &tiff.Options{Compression: tiff.Deflate})
	default:
		err = png.Encode(f, img)
	}
	if err != nil {
		f.Close()
		return fmt.Errorf("encode image %q: %w", path, err)
	}
	return f.Close()
}

// NewSolidTexture creates a 1x1 texture with the given RGBA color values (0-255).
func NewSolidTexture(name string, r, g, b, a uint8) *Texture {
	return NewTexture(name, PixelData{
		Width:  1,
		Height: 1,
		Format: gputypes.TextureFormatRGBA8Unorm,
		Pixels: []byte{r, g, b, a},
	})
}
