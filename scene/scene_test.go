package scene

import (
	"errors"
	"image"
	"image/color"
	stdmath "math"
	"path/filepath"
	"testing"

	"github.com/gogpu/gputypes"

	"render-kernel/gpu"
	"render-kernel/math"
)

func TestPassGeometry(t *testing.T) {
	g := PassGeometry()
	if err := g.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if g.VertexCount() != 4 || len(g.Indices) != 6 {
		t.Errorf("expected 4 vertices and 6 indices, got %d and %d", g.VertexCount(), len(g.Indices))
	}
}

func TestBoxGeometry(t *testing.T) {
	g := BoxGeometry(2, 2, 2)
	if err := g.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if g.VertexCount() != 24 || len(g.Indices) != 36 {
		t.Errorf("expected 24 vertices and 36 indices, got %d and %d", g.VertexCount(), len(g.Indices))
	}

	pos := g.Attributes[AttributePosition].Data
	for i, v := range pos {
		if v != 1 && v != -1 {
			t.Fatalf("position component %d = %v, expected +-1", i, v)
		}
	}
}

func TestIcosahedronGeometry(t *testing.T) {
	for detail := 0; detail <= 3; detail++ {
		g := IcosahedronGeometry(2, detail)
		if err := g.Validate(); err != nil {
			t.Fatalf("detail %d: %v", detail, err)
		}

		want := 20 * (detail + 1) * (detail + 1) * 3
		if got := g.VertexCount(); got != want {
			t.Errorf("detail %d: expected %d vertices, got %d", detail, want, got)
		}
		if g.Indices != nil {
			t.Errorf("detail %d: expected non-indexed geometry", detail)
		}

		pos := g.Attributes[AttributePosition].Data
		normal := g.Attributes[AttributeNormal].Data
		for i := 0; i < len(pos); i += 3 {
			r := stdmath.Sqrt(float64(pos[i]*pos[i] + pos[i+1]*pos[i+1] + pos[i+2]*pos[i+2]))
			if stdmath.Abs(r-2) > 1e-5 {
				t.Fatalf("detail %d: vertex %d at radius %v", detail, i/3, r)
			}
			if stdmath.Abs(float64(normal[i])*2-float64(pos[i])) > 1e-5 {
				t.Fatalf("detail %d: normal %d does not point outward", detail, i/3)
			}
		}
	}
}

func TestGeometryValidate(t *testing.T) {
	tests := []struct {
		name string
		g    *Geometry
	}{
		{"empty", NewGeometry()},
		{"partial vertex", NewGeometry().SetAttribute(AttributePosition, NewAttribute(3, []float32{0, 0}))},
		{"bad components", NewGeometry().SetAttribute(AttributePosition, NewAttribute(5, make([]float32, 5)))},
		{"count mismatch", NewGeometry().
			SetAttribute(AttributePosition, NewAttribute(3, make([]float32, 6))).
			SetAttribute(AttributeUV, NewAttribute(2, make([]float32, 2)))},
		{"index out of range", &Geometry{
			Attributes: map[string]*Attribute{AttributePosition: NewAttribute(3, make([]float32, 9))},
			Indices:    []uint32{0, 1, 3},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.g.Validate(); !errors.Is(err, ErrInvalidGeometry) {
				t.Errorf("expected ErrInvalidGeometry, got %v", err)
			}
		})
	}
}

func TestGeometryTransform(t *testing.T) {
	g := BoxGeometry(2, 2, 2)
	g.Transform(math.MakeMatrix4Translation(math.NewVector3(10, 0, 0), nil))

	pos := g.Attributes[AttributePosition].Data
	if pos[0] != 9 || pos[3] != 11 {
		t.Errorf("translation not applied: %v", pos[:6])
	}
	// translation must not touch normals
	if n := g.Attributes[AttributeNormal].Data; n[2] != 1 {
		t.Errorf("front normal changed: %v", n[:3])
	}
}

func TestPixelDataRoundTrip(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.SetRGBA(0, 0, color.RGBA{R: 255, A: 255})
	img.SetRGBA(1, 1, color.RGBA{B: 255, A: 255})

	p := NewPixelDataFromImage(img)
	if p.Format != gputypes.TextureFormatRGBA8Unorm || p.Width != 2 || p.Height != 2 {
		t.Fatalf("unexpected pixel data %+v", p)
	}
	// top-left pixel lands in the last row
	if p.Pixels[8] != 255 || p.Pixels[0] != 0 {
		t.Errorf("rows not flipped: %v", p.Pixels)
	}

	back := p.Image()
	if back.RGBAAt(0, 0) != (color.RGBA{R: 255, A: 255}) || back.RGBAAt(1, 1) != (color.RGBA{B: 255, A: 255}) {
		t.Errorf("round trip mismatch: %v", back.Pix)
	}
}

func TestPixelDataFloatImage(t *testing.T) {
	p := PixelData{
		Width:  1,
		Height: 1,
		Format: gputypes.TextureFormatRGBA32Float,
		Floats: []float32{2, 0.5, -1, 1},
	}
	got := p.Image().RGBAAt(0, 0)
	if got != (color.RGBA{R: 255, G: 128, B: 0, A: 255}) {
		t.Errorf("expected clamped color, got %v", got)
	}
}

func TestResizeImage(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 8, 4))
	out := ResizeImage(img, 4, 2)
	if out.Bounds().Dx() != 4 || out.Bounds().Dy() != 2 {
		t.Errorf("unexpected bounds %v", out.Bounds())
	}
}

func TestSaveAndLoadTexture(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 3, 2))
	img.SetRGBA(2, 0, color.RGBA{G: 200, A: 255})

	for _, ext := range []string{".png", ".bmp", ".tiff"} {
		path := filepath.Join(t.TempDir(), "tex"+ext)
		if err := SaveImage(path, img); err != nil {
			t.Fatalf("%s: SaveImage: %v", ext, err)
		}

		tex, err := LoadTexture(path)
		if err != nil {
			t.Fatalf("%s: LoadTexture: %v", ext, err)
		}
		if tex.Image.Width != 3 || tex.Image.Height != 2 {
			t.Errorf("%s: unexpected size %dx%d", ext, tex.Image.Width, tex.Image.Height)
		}
		if got := tex.Image.Image().RGBAAt(2, 0); got.G != 200 {
			t.Errorf("%s: expected green pixel, got %v", ext, got)
		}
	}

	if _, err := LoadTexture(filepath.Join(t.TempDir(), "missing.png")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestNewCubeMapTexture(t *testing.T) {
	var faces [gpu.CubeFaceCount]PixelData
	for i := range faces {
		faces[i] = NewSolidTexture("face", 0, 0, 0, 255).Image
	}

	cube, err := NewCubeMapTexture("cube", faces)
	if err != nil {
		t.Fatalf("NewCubeMapTexture: %v", err)
	}
	if cube.Size() != 1 {
		t.Errorf("expected size 1, got %d", cube.Size())
	}

	faces[3] = PixelData{Width: 2, Height: 1, Format: gputypes.TextureFormatRGBA8Unorm, Pixels: make([]byte, 8)}
	if _, err := NewCubeMapTexture("cube", faces); !errors.Is(err, ErrInvalidCubeMap) {
		t.Errorf("expected ErrInvalidCubeMap, got %v", err)
	}
}

func TestCubeFaceTargetsOrder(t *testing.T) {
	for i, target := range CubeFaceTargets {
		if target != gpu.CubeMapFace(i) {
			t.Errorf("face %d: expected %v, got %v", i, gpu.CubeMapFace(i), target)
		}
	}
}

func TestPerspectiveCamera(t *testing.T) {
	c := NewPerspectiveCamera(90, 1, 100)
	c.Position.Set(0, 0, 5)
	c.LookAt(math.NewVector3(0, 0, 0), math.NewVector3(0, 1, 0))

	f := c.Forward()
	if stdmath.Abs(f.Z+1) > 1e-9 {
		t.Errorf("expected forward -Z, got %+v", f)
	}

	view, err := c.ViewMatrix(nil)
	if err != nil {
		t.Fatalf("ViewMatrix: %v", err)
	}
	origin := view.TransformPoint(math.NewVector3(0, 0, 0))
	if stdmath.Abs(origin.Z+5) > 1e-9 {
		t.Errorf("origin should be 5 units in front of the camera, got %+v", origin)
	}

	proj := c.ProjectionMatrix(2, nil)
	if stdmath.Abs(proj.Elements[0]-0.5) > 1e-9 || stdmath.Abs(proj.Elements[5]-1) > 1e-9 {
		t.Errorf("unexpected projection %v", proj.Elements)
	}
}

func TestComputeTangents(t *testing.T) {
	g := NewGeometry().
		SetAttribute(AttributePosition, NewAttribute(3, []float32{0, 0, 0, 1, 0, 0, 1, 1, 0, 0, 1, 0})).
		SetAttribute(AttributeNormal, NewAttribute(3, []float32{0, 0, 1, 0, 0, 1, 0, 0, 1, 0, 0, 1})).
		SetAttribute(AttributeUV, NewAttribute(2, []float32{0, 0, 1, 0, 1, 1, 0, 1}))
	g.Indices = []uint32{0, 1, 2, 0, 2, 3}

	if err := g.ComputeTangents(); err != nil {
		t.Fatalf("ComputeTangents: %v", err)
	}
	tangents := g.Attributes[AttributeTangent].Data
	bitangents := g.Attributes[AttributeBitangent].Data
	for i := 0; i < 4; i++ {
		tx, ty, tz := tangents[i*3], tangents[i*3+1], tangents[i*3+2]
		bx, by, bz := bitangents[i*3], bitangents[i*3+1], bitangents[i*3+2]
		if !approx(float64(tx), 1) || !approx(float64(ty), 0) || !approx(float64(tz), 0) {
			t.Errorf("vertex %d: expected tangent +X, got (%v,%v,%v)", i, tx, ty, tz)
		}
		if !approx(float64(bx), 0) || !approx(float64(by), 1) || !approx(float64(bz), 0) {
			t.Errorf("vertex %d: expected bitangent +Y, got (%v,%v,%v)", i, bx, by, bz)
		}
	}
	if err := g.Validate(); err != nil {
		t.Errorf("tangent streams broke the geometry: %v", err)
	}
}

func TestComputeTangentsOrthogonalToNormals(t *testing.T) {
	g := BoxGeometry(1, 2, 3)
	if err := g.ComputeTangents(); err != nil {
		t.Fatal(err)
	}
	normals := g.Attributes[AttributeNormal].Data
	tangents := g.Attributes[AttributeTangent].Data
	for i := 0; i < g.VertexCount(); i++ {
		n := math.Vector3{X: float64(normals[i*3]), Y: float64(normals[i*3+1]), Z: float64(normals[i*3+2])}
		tg := math.Vector3{X: float64(tangents[i*3]), Y: float64(tangents[i*3+1]), Z: float64(tangents[i*3+2])}
		if !approx(n.Dot(&tg), 0) || !approx(tg.Length(), 1) {
			t.Fatalf("vertex %d: tangent %v not a unit vector perpendicular to %v", i, tg, n)
		}
	}
}

func TestComputeTangentsNeedsUV(t *testing.T) {
	g := NewGeometry().
		SetAttribute(AttributePosition, NewAttribute(3, []float32{0, 0, 0, 1, 0, 0, 0, 1, 0})).
		SetAttribute(AttributeNormal, NewAttribute(3, []float32{0, 0, 1, 0, 0, 1, 0, 0, 1}))
	if err := g.ComputeTangents(); !errors.Is(err, ErrInvalidGeometry) {
		t.Errorf("expected ErrInvalidGeometry, got %v", err)
	}
}

func TestTextureAccessorUVTransform(t *testing.T) {
	a := NewTextureAccessor(NewSolidTexture("white", 255, 255, 255, 255))

	identity := math.NewMatrix3()
	if !a.UVTransform(nil).Equals(identity) {
		t.Errorf("default accessor should have an identity transform")
	}

	a.UVScale = math.Vector2{X: 2, Y: 2}
	a.UVRotation = stdmath.Pi / 2
	a.UVTranslation = math.Vector2{X: 0.5, Y: 0}
	m := a.UVTransform(nil)

	// (1,0) scales to (2,0), rotates to (0,2), translates to (0.5,2)
	e := m.Elements
	x := e[0]*1 + e[3]*0 + e[6]
	y := e[1]*1 + e[4]*0 + e[7]
	if !approx(x, 0.5) || !approx(y, 2) {
		t.Errorf("expected (0.5, 2), got (%v, %v)", x, y)
	}

	c := a.Clone()
	c.UVRotation = 0
	if a.UVRotation == 0 || c.Texture != a.Texture {
		t.Errorf("clone should copy the transform and share the texture")
	}
}

func approx(a, b float64) bool { return stdmath.Abs(a-b) < 1e-5 }
