// Package gputest provides a software gpu.Device that counts every call and
// keeps enough texture and framebuffer storage to read back what a test
// drew. It does not rasterize geometry: a draw fills the viewport of the
// bound color target with the color returned by the FragmentFunc registered
// for the program's fragment source.
package gputest

import (
	"fmt"
	"math"
	"regexp"
	"sort"

	"github.com/gogpu/gputypes"

	"render-kernel/gpu"
)

// Uniforms holds the last values uploaded to the bound program, by name.
type Uniforms map[string][]float32

func (u Uniforms) Float(name string) float32 {
	if v := u[name]; len(v) > 0 {
		return v[0]
	}
	return 0
}

// FragmentFunc returns the RGBA color a draw writes to every covered pixel.
type FragmentFunc func(u Uniforms) [4]float32

// State is a snapshot of the emulated pipeline state.
type State struct {
	Program       gpu.Program
	Framebuffer   gpu.Framebuffer
	Viewport      [4]int
	Scissor       [4]int
	DepthTest     bool
	Blend         bool
	ScissorTest   bool
	CullFace      bool
	DepthFunc     gpu.CompareFunc
	BlendEquation gpu.BlendEquation
	BlendFactors  [4]gpu.BlendFactor
	ClearColor    [4]float32
	ClearDepth    float64
	ClearStencil  int
	ColorMask     [4]bool
	DepthMask     bool
	StencilMask   uint32
}

// Image is the storage of one texture level or cube face.
type Image struct {
	Width, Height int
	Format        gputypes.TextureFormat
	Pixels        []byte
	Floats        []float32
}

type program struct {
	fragment   string
	uniforms   []gpu.UniformInfo
	attributes []gpu.AttributeInfo
	values     Uniforms
	invalid    bool
}

type levelKey struct {
	target gpu.TextureTarget
	level  int
}

type texture struct {
	images  map[levelKey]*Image
	sampler gpu.SamplerParameters
}

type attachment struct {
	texture gpu.Texture
	target  gpu.TextureTarget
	level   int
}

type framebuffer struct {
	attachments map[gpu.AttachmentPoint]attachment
}

// Device is the call-counting software device.
type Device struct {
	calls map[string]int
	log   []string

	nextID       uint32
	programs     map[gpu.Program]*program
	buffers      map[gpu.Buffer]int
	textures     map[gpu.Texture]*texture
	framebuffers map[gpu.Framebuffer]*framebuffer
	units        map[int]gpu.Texture
	attribs      map[int32]gpu.Buffer
	indexBuffer  gpu.Buffer

	canvas  *Image
	state   State
	shaders map[string]FragmentFunc
	draws   int
}

var _ gpu.Device = (*Device)(nil)

// NewDevice returns a device whose default framebuffer is an RGBA8 surface
// of the given size. Initial state mirrors a fresh GL context.
func NewDevice(width, height int) *Device {
	return &Device{
		calls:        make(map[string]int),
		programs:     make(map[gpu.Program]*program),
		buffers:      make(map[gpu.Buffer]int),
		textures:     make(map[gpu.Texture]*texture),
		framebuffers: make(map[gpu.Framebuffer]*framebuffer),
		units:        make(map[int]gpu.Texture),
		attribs:      make(map[int32]gpu.Buffer),
		shaders:      make(map[string]FragmentFunc),
		canvas:       newImage(width, height, gputypes.TextureFormatRGBA8Unorm),
		state: State{
			Viewport:     [4]int{0, 0, width, height},
			Scissor:      [4]int{0, 0, width, height},
			DepthFunc:    gpu.CompareLess,
			BlendFactors: [4]gpu.BlendFactor{gpu.FactorOne, gpu.FactorZero, gpu.FactorOne, gpu.FactorZero},
			ClearDepth:   1,
			ColorMask:    [4]bool{true, true, true, true},
			DepthMask:    true,
			StencilMask:  0xFFFFFFFF,
		},
	}
}

// ── Inspection ────────────────────────────────────────────────────────────────

// Calls returns how many times the named Device method was invoked.
func (d *Device) Calls(method string) int { return d.calls[method] }

func (d *Device) TotalCalls() int { return len(d.log) }

// Log returns the method names in call order.
func (d *Device) Log() []string {
	return append([]string(nil), d.log...)
}

// Reset forgets recorded calls. Resources and state are kept.
func (d *Device) Reset() {
	d.calls = make(map[string]int)
	d.log = nil
}

func (d *Device) State() State { return d.state }

func (d *Device) Draws() int { return d.draws }

// RegisterShader makes draws with programs built from fragmentSource fill
// their target with fn's color.
func (d *Device) RegisterShader(fragmentSource string, fn FragmentFunc) {
	d.shaders[fragmentSource] = fn
}

// InvalidateProgram makes the next ValidateProgram of p fail.
func (d *Device) InvalidateProgram(p gpu.Program) {
	if prog, ok := d.programs[p]; ok {
		prog.invalid = true
	}
}

// UniformValues returns the values last uploaded to p.
func (d *Device) UniformValues(p gpu.Program) Uniforms {
	prog, ok := d.programs[p]
	if !ok {
		return nil
	}
	out := make(Uniforms, len(prog.values))
	for k, v := range prog.values {
		out[k] = append([]float32(nil), v...)
	}
	return out
}

// TextureImage returns the storage of one level of t. target is
// TargetTexture2D or a cube face.
func (d *Device) TextureImage(t gpu.Texture, target gpu.TextureTarget, level int) (*Image, bool) {
	tex, ok := d.textures[t]
	if !ok {
		return nil, false
	}
	img, ok := tex.images[levelKey{target, level}]
	return img, ok
}

// Sampler returns the sampler parameters last set on t.
func (d *Device) Sampler(t gpu.Texture) gpu.SamplerParameters {
	if tex, ok := d.textures[t]; ok {
		return tex.sampler
	}
	return gpu.SamplerParameters{}
}

// Live reports the number of undeleted objects of each kind.
func (d *Device) Live() (programs, buffers, textures, framebuffers int) {
	return len(d.programs), len(d.buffers), len(d.textures), len(d.framebuffers)
}

func (d *Device) record(method string) {
	d.calls[method]++
	d.log = append(d.log, method)
}

func (d *Device) id() uint32 {
	d.nextID++
	return d.nextID
}

// ── State ─────────────────────────────────────────────────────────────────────

func (d *Device) Info() gpu.Info {
	d.record("Info")
	return gpu.Info{
		Vendor:                 "gputest",
		Renderer:               "software",
		Version:                "4.1 gputest",
		ShadingLanguageVersion: "4.10",
	}
}

func (d *Device) UseProgram(p gpu.Program) {
	d.record("UseProgram")
	d.state.Program = p
}

func (d *Device) BindFramebuffer(fb gpu.Framebuffer) {
	d.record("BindFramebuffer")
	d.state.Framebuffer = fb
}

func (d *Device) Viewport(x, y, width, height int) {
	d.record("Viewport")
	d.state.Viewport = [4]int{x, y, width, height}
}

func (d *Device) Scissor(x, y, width, height int) {
	d.record("Scissor")
	d.state.Scissor = [4]int{x, y, width, height}
}

func (d *Device) SetCapability(c gpu.Capability, enabled bool) {
	d.record("SetCapability")
	switch c {
	case gpu.CapabilityDepthTest:
		d.state.DepthTest = enabled
	case gpu.CapabilityBlend:
		d.state.Blend = enabled
	case gpu.CapabilityScissorTest:
		d.state.ScissorTest = enabled
	case gpu.CapabilityCullFace:
		d.state.CullFace = enabled
	}
}

func (d *Device) DepthFunc(f gpu.CompareFunc) {
	d.record("DepthFunc")
	d.state.DepthFunc = f
}

func (d *Device) BlendEquation(eq gpu.BlendEquation) {
	d.record("BlendEquation")
	d.state.BlendEquation = eq
}

func (d *Device) BlendFuncSeparate(srcRGB, dstRGB, srcAlpha, dstAlpha gpu.BlendFactor) {
	d.record("BlendFuncSeparate")
	d.state.BlendFactors = [4]gpu.BlendFactor{srcRGB, dstRGB, srcAlpha, dstAlpha}
}

func (d *Device) ClearColor(r, g, b, a float32) {
	d.record("ClearColor")
	d.state.ClearColor = [4]float32{r, g, b, a}
}

func (d *Device) ClearDepth(depth float64) {
	d.record("ClearDepth")
	d.state.ClearDepth = depth
}

func (d *Device) ClearStencil(s int) {
	d.record("ClearStencil")
	d.state.ClearStencil = s
}

func (d *Device) ColorMask(r, g, b, a bool) {
	d.record("ColorMask")
	d.state.ColorMask = [4]bool{r, g, b, a}
}

func (d *Device) DepthMask(enabled bool) {
	d.record("DepthMask")
	d.state.DepthMask = enabled
}

func (d *Device) StencilMask(mask uint32) {
	d.record("StencilMask")
	d.state.StencilMask = mask
}

func (d *Device) Clear(mask gpu.ClearMask) {
	d.record("Clear")
	if mask&gpu.ClearColorBit == 0 {
		return
	}
	if img := d.colorTarget(); img != nil {
		fill(img, 0, 0, img.Width, img.Height, d.state.ClearColor, d.state.ColorMask)
	}
}

// ── Programs ──────────────────────────────────────────────────────────────────

var (
	uniformDecl   = regexp.MustCompile(`(?m)^\s*uniform\s+(?:(?:lowp|mediump|highp)\s+)?(\w+)\s+(\w+)\s*(\[[^\]]*\])?\s*;`)
	attributeDecl = regexp.MustCompile(`(?m)^\s*(?:layout\s*\([^)]*\)\s*)?(?:in|attribute)\s+(?:(?:lowp|mediump|highp)\s+)?(\w+)\s+(\w+)\s*(\[[^\]]*\])?\s*;`)
)

var attributeComponents = map[string]int{"float": 1, "vec2": 2, "vec3": 3, "vec4": 4}

// CreateProgram "links" by scanning the sources for uniform and vertex input
// declarations.
func (d *Device) CreateProgram(vertexSource, fragmentSource string) (gpu.Program, error) {
	d.record("CreateProgram")
	if vertexSource == "" || fragmentSource == "" {
		return 0, fmt.Errorf("link failed: empty shader source")
	}

	prog := &program{fragment: fragmentSource, values: make(Uniforms)}

	seen := make(map[string]bool)
	for _, src := range []string{vertexSource, fragmentSource} {
		for _, m := range uniformDecl.FindAllStringSubmatch(src, -1) {
			typeName, name := m[1], m[2]
			if seen[name] {
				continue
			}
			if m[3] != "" {
				return 0, fmt.Errorf("link failed: uniform %s is an array", name)
			}
			typ, ok := gpu.ParseUniformType(typeName)
			if !ok {
				return 0, fmt.Errorf("link failed: uniform %s has unsupported type %s", name, typeName)
			}
			seen[name] = true
			prog.uniforms = append(prog.uniforms, gpu.UniformInfo{
				Name:     name,
				Type:     typ,
				Location: int32(len(prog.uniforms)),
			})
		}
	}

	for _, m := range attributeDecl.FindAllStringSubmatch(vertexSource, -1) {
		typeName, name := m[1], m[2]
		if m[3] != "" {
			return 0, fmt.Errorf("link failed: attribute %s is an array", name)
		}
		components, ok := attributeComponents[typeName]
		if !ok {
			return 0, fmt.Errorf("link failed: attribute %s has unsupported type %s", name, typeName)
		}
		prog.attributes = append(prog.attributes, gpu.AttributeInfo{
			Name:       name,
			Components: components,
			Location:   int32(len(prog.attributes)),
		})
	}

	p := gpu.Program(d.id())
	d.programs[p] = prog
	return p, nil
}

func (d *Device) ValidateProgram(p gpu.Program) error {
	d.record("ValidateProgram")
	prog, ok := d.programs[p]
	if !ok {
		return fmt.Errorf("program %d does not exist", p)
	}
	if prog.invalid {
		return fmt.Errorf("program %d failed validation", p)
	}
	return nil
}

func (d *Device) ActiveUniforms(p gpu.Program) []gpu.UniformInfo {
	d.record("ActiveUniforms")
	if prog, ok := d.programs[p]; ok {
		return append([]gpu.UniformInfo(nil), prog.uniforms...)
	}
	return nil
}

func (d *Device) ActiveAttributes(p gpu.Program) []gpu.AttributeInfo {
	d.record("ActiveAttributes")
	if prog, ok := d.programs[p]; ok {
		return append([]gpu.AttributeInfo(nil), prog.attributes...)
	}
	return nil
}

func (d *Device) UniformFloats(location int32, t gpu.UniformType, values []float32) {
	d.record("UniformFloats")
	d.storeUniform(location, append([]float32(nil), values...))
}

func (d *Device) UniformInt(location int32, value int32) {
	d.record("UniformInt")
	d.storeUniform(location, []float32{float32(value)})
}

func (d *Device) storeUniform(location int32, values []float32) {
	prog, ok := d.programs[d.state.Program]
	if !ok {
		panic("gputest: uniform upload with no program bound")
	}
	for _, u := range prog.uniforms {
		if u.Location == location {
			prog.values[u.Name] = values
			return
		}
	}
}

func (d *Device) DeleteProgram(p gpu.Program) {
	d.record("DeleteProgram")
	delete(d.programs, p)
}

// ── Buffers ───────────────────────────────────────────────────────────────────

func (d *Device) CreateVertexBuffer(data []float32) gpu.Buffer {
	d.record("CreateVertexBuffer")
	b := gpu.Buffer(d.id())
	d.buffers[b] = len(data)
	return b
}

func (d *Device) CreateIndexBuffer(indices []uint32) gpu.Buffer {
	d.record("CreateIndexBuffer")
	b := gpu.Buffer(d.id())
	d.buffers[b] = len(indices)
	return b
}

func (d *Device) VertexAttribPointer(location int32, b gpu.Buffer, components int) {
	d.record("VertexAttribPointer")
	d.attribs[location] = b
}

func (d *Device) BindIndexBuffer(b gpu.Buffer) {
	d.record("BindIndexBuffer")
	d.indexBuffer = b
}

func (d *Device) DeleteBuffer(b gpu.Buffer) {
	d.record("DeleteBuffer")
	delete(d.buffers, b)
}

// ── Textures ──────────────────────────────────────────────────────────────────

func (d *Device) CreateTexture() gpu.Texture {
	d.record("CreateTexture")
	t := gpu.Texture(d.id())
	d.textures[t] = &texture{
		images:  make(map[levelKey]*Image),
		sampler: gpu.DefaultSamplerParameters(),
	}
	return t
}

func (d *Device) TexImage2D(t gpu.Texture, target gpu.TextureTarget, level int, format gputypes.TextureFormat, width, height int, pixels []byte) {
	d.record("TexImage2D")
	img := newImage(width, height, format)
	if img.Pixels != nil {
		copy(img.Pixels, pixels)
	}
	d.storeImage(t, target, level, img)
}

func (d *Device) TexImage2DFloat(t gpu.Texture, target gpu.TextureTarget, level int, format gputypes.TextureFormat, width, height int, pixels []float32) {
	d.record("TexImage2DFloat")
	img := newImage(width, height, format)
	if img.Floats != nil {
		copy(img.Floats, pixels)
	}
	d.storeImage(t, target, level, img)
}

func (d *Device) storeImage(t gpu.Texture, target gpu.TextureTarget, level int, img *Image) {
	tex, ok := d.textures[t]
	if !ok {
		panic(fmt.Sprintf("gputest: texture %d does not exist", t))
	}
	tex.images[levelKey{target, level}] = img
}

func (d *Device) TexParameters(t gpu.Texture, target gpu.TextureTarget, p gpu.SamplerParameters) {
	d.record("TexParameters")
	if tex, ok := d.textures[t]; ok {
		tex.sampler = p
	}
}

// GenerateMipmap allocates the full chain below level 0 of every face.
func (d *Device) GenerateMipmap(t gpu.Texture, target gpu.TextureTarget) {
	d.record("GenerateMipmap")
	tex, ok := d.textures[t]
	if !ok {
		return
	}
	faces := []gpu.TextureTarget{gpu.TargetTexture2D}
	if target == gpu.TargetCubeMap {
		faces = faces[:0]
		for i := 0; i < gpu.CubeFaceCount; i++ {
			faces = append(faces, gpu.CubeMapFace(i))
		}
	}
	for _, face := range faces {
		base, ok := tex.images[levelKey{face, 0}]
		if !ok {
			continue
		}
		w, h := base.Width, base.Height
		for level := 1; w > 1 || h > 1; level++ {
			w, h = max(w/2, 1), max(h/2, 1)
			tex.images[levelKey{face, level}] = newImage(w, h, base.Format)
		}
	}
}

func (d *Device) BindTexture(unit int, target gpu.TextureTarget, t gpu.Texture) {
	d.record("BindTexture")
	d.units[unit] = t
}

func (d *Device) DeleteTexture(t gpu.Texture) {
	d.record("DeleteTexture")
	delete(d.textures, t)
}

// ── Framebuffers ──────────────────────────────────────────────────────────────

func (d *Device) CreateFramebuffer() gpu.Framebuffer {
	d.record("CreateFramebuffer")
	fb := gpu.Framebuffer(d.id())
	d.framebuffers[fb] = &framebuffer{attachments: make(map[gpu.AttachmentPoint]attachment)}
	return fb
}

// FramebufferTexture2D with a zero texture detaches the point.
func (d *Device) FramebufferTexture2D(point gpu.AttachmentPoint, target gpu.TextureTarget, t gpu.Texture, level int) {
	d.record("FramebufferTexture2D")
	fb, ok := d.framebuffers[d.state.Framebuffer]
	if !ok {
		panic("gputest: attaching to the default framebuffer")
	}
	if t == 0 {
		delete(fb.attachments, point)
		return
	}
	fb.attachments[point] = attachment{texture: t, target: target, level: level}
}

func (d *Device) CheckFramebufferStatus() error {
	d.record("CheckFramebufferStatus")
	if d.state.Framebuffer == 0 {
		return nil
	}
	fb := d.framebuffers[d.state.Framebuffer]
	if len(fb.attachments) == 0 {
		return fmt.Errorf("%w: missing attachment", gpu.ErrIncompleteFramebuffer)
	}

	width, height := -1, -1
	points := make([]int, 0, len(fb.attachments))
	for p := range fb.attachments {
		points = append(points, int(p))
	}
	sort.Ints(points)
	for _, p := range points {
		img := d.attachmentImage(fb.attachments[gpu.AttachmentPoint(p)])
		if img == nil {
			return fmt.Errorf("%w: %v has no storage", gpu.ErrIncompleteFramebuffer, gpu.AttachmentPoint(p))
		}
		if width >= 0 && (img.Width != width || img.Height != height) {
			return fmt.Errorf("%w: attachment dimensions differ", gpu.ErrIncompleteFramebuffer)
		}
		width, height = img.Width, img.Height
	}
	return nil
}

func (d *Device) ReadPixels(x, y, width, height int) []byte {
	d.record("ReadPixels")
	out := make([]byte, width*height*4)
	img := d.colorTarget()
	if img == nil {
		return out
	}
	for row := 0; row < height; row++ {
		for col := 0; col < width; col++ {
			c := img.at(x+col, y+row)
			for ch := 0; ch < 4; ch++ {
				out[(row*width+col)*4+ch] = toUnorm8(c[ch])
			}
		}
	}
	return out
}

func (d *Device) ReadFloatPixels(x, y, width, height int) []float32 {
	d.record("ReadFloatPixels")
	out := make([]float32, width*height*4)
	img := d.colorTarget()
	if img == nil {
		return out
	}
	for row := 0; row < height; row++ {
		for col := 0; col < width; col++ {
			c := img.at(x+col, y+row)
			copy(out[(row*width+col)*4:], c[:])
		}
	}
	return out
}

func (d *Device) DeleteFramebuffer(fb gpu.Framebuffer) {
	d.record("DeleteFramebuffer")
	delete(d.framebuffers, fb)
}

// ── Draw ──────────────────────────────────────────────────────────────────────

func (d *Device) DrawElements(mode gpu.PrimitiveMode, count int) {
	d.record("DrawElements")
	d.draw()
}

func (d *Device) DrawArrays(mode gpu.PrimitiveMode, first, count int) {
	d.record("DrawArrays")
	d.draw()
}

func (d *Device) draw() {
	d.draws++
	prog, ok := d.programs[d.state.Program]
	if !ok {
		panic("gputest: draw with no program bound")
	}
	fn, ok := d.shaders[prog.fragment]
	if !ok {
		return
	}
	img := d.colorTarget()
	if img == nil {
		return
	}
	color := fn(prog.values)
	vp := d.state.Viewport
	fill(img, vp[0], vp[1], vp[2], vp[3], color, d.state.ColorMask)
}

// colorTarget returns the image behind color0 of the bound framebuffer.
func (d *Device) colorTarget() *Image {
	if d.state.Framebuffer == 0 {
		return d.canvas
	}
	fb, ok := d.framebuffers[d.state.Framebuffer]
	if !ok {
		return nil
	}
	a, ok := fb.attachments[gpu.AttachColor0]
	if !ok {
		return nil
	}
	return d.attachmentImage(a)
}

func (d *Device) attachmentImage(a attachment) *Image {
	tex, ok := d.textures[a.texture]
	if !ok {
		return nil
	}
	return tex.images[levelKey{a.target, a.level}]
}

// ── Image helpers ─────────────────────────────────────────────────────────────

func newImage(width, height int, format gputypes.TextureFormat) *Image {
	img := &Image{Width: width, Height: height, Format: format}
	if gpu.IsFloatFormat(format) {
		img.Floats = make([]float32, width*height*4)
	} else {
		img.Pixels = make([]byte, width*height*max(gpu.BytesPerPixel(format), 1))
	}
	return img
}

// At returns the RGBA value of one pixel as floats.
func (img *Image) At(x, y int) [4]float32 { return img.at(x, y) }

func (img *Image) at(x, y int) [4]float32 {
	var c [4]float32
	if x < 0 || y < 0 || x >= img.Width || y >= img.Height {
		return c
	}
	i := (y*img.Width + x) * 4
	if img.Floats != nil {
		copy(c[:], img.Floats[i:i+4])
		return c
	}
	if gpu.BytesPerPixel(img.Format) != 4 {
		return c
	}
	for ch := 0; ch < 4; ch++ {
		c[ch] = float32(img.Pixels[i+ch]) / 255
	}
	return c
}

func (img *Image) set(x, y int, c [4]float32, mask [4]bool) {
	i := (y*img.Width + x) * 4
	for ch := 0; ch < 4; ch++ {
		if !mask[ch] {
			continue
		}
		if img.Floats != nil {
			img.Floats[i+ch] = c[ch]
		} else if gpu.BytesPerPixel(img.Format) == 4 {
			img.Pixels[i+ch] = toUnorm8(c[ch])
		}
	}
}

func fill(img *Image, x, y, width, height int, c [4]float32, mask [4]bool) {
	x0, y0 := max(x, 0), max(y, 0)
	x1, y1 := min(x+width, img.Width), min(y+height, img.Height)
	for py := y0; py < y1; py++ {
		for px := x0; px < x1; px++ {
			img.set(px, py, c, mask)
		}
	}
}

func toUnorm8(v float32) byte {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return byte(math.Round(float64(v) * 255))
}
