package opengl

import (
	"fmt"

	gl "github.com/go-gl/gl/v4.1-core/gl"

	"render-kernel/gpu"
)

func (d *Device) CreateFramebuffer() gpu.Framebuffer {
	var id uint32
	gl.GenFramebuffers(1, &id)
	return gpu.Framebuffer(id)
}

// FramebufferTexture2D attaches to the bound framebuffer. A zero texture
// detaches the point.
func (d *Device) FramebufferTexture2D(point gpu.AttachmentPoint, target gpu.TextureTarget, t gpu.Texture, level int) {
	gl.FramebufferTexture2D(
		gl.FRAMEBUFFER,
		lookup(attachmentPoints, point, "attachment point"),
		lookup(textureTargets, target, "texture target"),
		uint32(t),
		int32(level),
	)
}

func (d *Device) CheckFramebufferStatus() error {
	status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER)
	if status == gl.FRAMEBUFFER_COMPLETE {
		return nil
	}
	reason, ok := framebufferStatuses[status]
	if !ok {
		reason = fmt.Sprintf("status=0x%X", status)
	}
	return fmt.Errorf("%w: %s", gpu.ErrIncompleteFramebuffer, reason)
}

// ReadPixels reads RGBA8 from color0 of the bound framebuffer, bottom row
// first.
func (d *Device) ReadPixels(x, y, width, height int) []byte {
	out := make([]byte, width*height*4)
	if len(out) == 0 {
		return out
	}
	gl.ReadPixels(int32(x), int32(y), int32(width), int32(height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(out))
	return out
}

func (d *Device) ReadFloatPixels(x, y, width, height int) []float32 {
	out := make([]float32, width*height*4)
	if len(out) == 0 {
		return out
	}
	gl.ReadPixels(int32(x), int32(y), int32(width), int32(height), gl.RGBA, gl.FLOAT, gl.Ptr(out))
	return out
}

func (d *Device) DeleteFramebuffer(fb gpu.Framebuffer) {
	id := uint32(fb)
	gl.DeleteFramebuffers(1, &id)
}
