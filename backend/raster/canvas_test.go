package raster

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/gogpu/displaylist"
	"github.com/gogpu/displaylist/backend"
	"github.com/gogpu/gg"
)

var (
	red         = [4]uint8{255, 0, 0, 255}
	transparent = [4]uint8{}
)

func redPaint() *backend.Paint {
	p := backend.NewPaint()
	p.Color = gg.RGBA{R: 1, A: 1}
	return &p
}

func newTestCanvas(t *testing.T, w, h int) *Canvas {
	t.Helper()
	c, err := NewCanvas(w, h)
	if err != nil {
		t.Fatalf("NewCanvas(%d, %d): %v", w, h, err)
	}
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func pixel(c *Canvas, x, y int) [4]uint8 {
	d := c.Pixmap().Data()
	i := (y*c.Width() + x) * 4
	return [4]uint8{d[i], d[i+1], d[i+2], d[i+3]}
}

func near(a, b [4]uint8, tol int) bool {
	for i := range a {
		d := int(a[i]) - int(b[i])
		if d < -tol || d > tol {
			return false
		}
	}
	return true
}

func expectPixel(t *testing.T, c *Canvas, x, y int, want [4]uint8) {
	t.Helper()
	if got := pixel(c, x, y); !near(got, want, 2) {
		t.Errorf("pixel(%d, %d) = %v, want %v", x, y, got, want)
	}
}

func TestNewCanvasInvalidSize(t *testing.T) {
	for _, size := range [][2]int{{0, 10}, {10, 0}, {-1, 5}} {
		if _, err := NewCanvas(size[0], size[1]); !errors.Is(err, backend.ErrInvalidSize) {
			t.Errorf("NewCanvas(%d, %d) error = %v, want ErrInvalidSize", size[0], size[1], err)
		}
	}
}

func TestRegistered(t *testing.T) {
	if !backend.IsRegistered(Name) {
		t.Fatalf("%q not registered", Name)
	}
	c, err := backend.NewCanvas(Name, 4, 4)
	if err != nil {
		t.Fatalf("backend.NewCanvas: %v", err)
	}
	if _, ok := c.(*Canvas); !ok {
		t.Errorf("NewCanvas returned %T, want *Canvas", c)
	}
	if _, err := backend.NewCanvas(Name, 0, 4); !errors.Is(err, backend.ErrInvalidSize) {
		t.Errorf("zero width error = %v, want ErrInvalidSize", err)
	}
}

func TestSaveCount(t *testing.T) {
	c := newTestCanvas(t, 8, 8)
	if c.SaveCount() != 1 {
		t.Fatalf("fresh SaveCount() = %d, want 1", c.SaveCount())
	}
	c.Save()
	c.SaveLayer(nil, nil, nil)
	if c.SaveCount() != 3 {
		t.Errorf("SaveCount() = %d, want 3", c.SaveCount())
	}
	c.RestoreToCount(1)
	if c.SaveCount() != 1 {
		t.Errorf("after RestoreToCount(1) SaveCount() = %d", c.SaveCount())
	}
	c.Restore()
	if c.SaveCount() != 1 {
		t.Errorf("Restore at the initial state changed SaveCount to %d", c.SaveCount())
	}
}

func TestMatrixSaveRestore(t *testing.T) {
	c := newTestCanvas(t, 8, 8)
	c.Save()
	c.Concat(displaylist.Translate(3, 4))
	c.Concat(displaylist.Scale(2, 2))
	if x, y := c.TotalMatrix().MapPoint(1, 1); x != 5 || y != 6 {
		t.Errorf("mapped (1, 1) to (%v, %v), want (5, 6)", x, y)
	}
	c.Restore()
	if !c.TotalMatrix().IsIdentity() {
		t.Error("Restore did not restore the matrix")
	}
	c.SetMatrix(displaylist.Translate(1, 0))
	if x, _ := c.TotalMatrix().MapPoint(0, 0); x != 1 {
		t.Errorf("SetMatrix ignored, x = %v", x)
	}
}

func TestDrawRect(t *testing.T) {
	c := newTestCanvas(t, 10, 10)
	c.DrawRect(displaylist.LTRB(2, 2, 8, 8), redPaint())
	expectPixel(t, c, 5, 5, red)
	expectPixel(t, c, 0, 0, transparent)
	expectPixel(t, c, 9, 9, transparent)
}

func TestDrawRectTranslated(t *testing.T) {
	c := newTestCanvas(t, 10, 10)
	c.Concat(displaylist.Translate(5, 0))
	c.DrawRect(displaylist.LTRB(0, 0, 4, 4), redPaint())
	expectPixel(t, c, 6, 2, red)
	expectPixel(t, c, 2, 2, transparent)
}

func TestDrawDRRectHole(t *testing.T) {
	c := newTestCanvas(t, 20, 20)
	outer := displaylist.NewRRect(displaylist.LTRB(0, 0, 20, 20), 0, 0)
	inner := displaylist.NewRRect(displaylist.LTRB(5, 5, 15, 15), 0, 0)
	c.DrawDRRect(outer, inner, redPaint())
	expectPixel(t, c, 2, 10, red)
	expectPixel(t, c, 10, 10, transparent)
}

func TestClip(t *testing.T) {
	tests := []struct {
		name      string
		op        displaylist.ClipOp
		left      [4]uint8
		right     [4]uint8
		wantBound displaylist.Rect
	}{
		{"intersect", displaylist.ClipIntersect, red, transparent, displaylist.LTRB(0, 0, 6, 10)},
		{"difference", displaylist.ClipDifference, transparent, red, displaylist.LTRB(0, 0, 10, 10)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestCanvas(t, 10, 10)
			c.ClipRect(displaylist.LTRB(0, 0, 5, 10), tt.op, true)
			if got := c.DeviceClipBounds(); got != tt.wantBound {
				t.Errorf("DeviceClipBounds() = %+v, want %+v", got, tt.wantBound)
			}
			c.DrawPaint(redPaint())
			expectPixel(t, c, 2, 5, tt.left)
			expectPixel(t, c, 8, 5, tt.right)
		})
	}
}

func TestClipRestored(t *testing.T) {
	c := newTestCanvas(t, 10, 10)
	c.Save()
	c.ClipRect(displaylist.LTRB(0, 0, 2, 2), displaylist.ClipIntersect, false)
	c.Restore()
	c.DrawPaint(redPaint())
	expectPixel(t, c, 8, 8, red)
}

func TestSaveLayerAlpha(t *testing.T) {
	c := newTestCanvas(t, 10, 10)
	c.SaveLayer(nil, backend.AlphaPaint(0.5), nil)
	c.DrawRect(displaylist.LTRB(0, 0, 10, 10), redPaint())
	expectPixel(t, c, 5, 5, transparent)
	c.Restore()
	expectPixel(t, c, 5, 5, [4]uint8{255, 0, 0, 128})
}

func TestSaveLayerBounds(t *testing.T) {
	c := newTestCanvas(t, 10, 10)
	bounds := displaylist.LTRB(0, 0, 5, 10)
	c.SaveLayer(&bounds, nil, nil)
	c.DrawPaint(redPaint())
	c.Restore()
	expectPixel(t, c, 2, 5, red)
	expectPixel(t, c, 8, 5, transparent)
}

func TestSaveLayerBlendMode(t *testing.T) {
	c := newTestCanvas(t, 4, 4)
	c.DrawColor(gg.RGBA{B: 1, A: 1}, displaylist.BlendModeSrc)
	p := backend.NewPaint()
	p.BlendMode = displaylist.BlendModeDstOut
	c.SaveLayer(nil, &p, nil)
	c.DrawPaint(redPaint())
	c.Restore()
	expectPixel(t, c, 1, 1, transparent)
}

func TestDrawColorBlend(t *testing.T) {
	c := newTestCanvas(t, 4, 4)
	c.DrawColor(gg.RGBA{B: 1, A: 1}, displaylist.BlendModeSrcOver)
	c.DrawColor(gg.RGBA{R: 1, A: 0.5}, displaylist.BlendModeSrcOver)
	expectPixel(t, c, 0, 0, [4]uint8{128, 0, 128, 255})
	c.DrawColor(gg.RGBA{}, displaylist.BlendModeClear)
	expectPixel(t, c, 0, 0, transparent)
}

func TestLinearGradient(t *testing.T) {
	c := newTestCanvas(t, 10, 4)
	p := backend.NewPaint()
	p.ColorSource = displaylist.NewLinearGradient(0, 0, 10, 0).
		AddColorStop(0, gg.RGBA{A: 1}).
		AddColorStop(1, gg.RGBA{R: 1, G: 1, B: 1, A: 1})
	c.DrawRect(displaylist.LTRB(0, 0, 10, 4), &p)
	left, right := pixel(c, 1, 2), pixel(c, 8, 2)
	if left[0] >= right[0] {
		t.Errorf("gradient not increasing: left %v, right %v", left, right)
	}
	if left[3] != 255 || right[3] != 255 {
		t.Errorf("gradient should be opaque: %v %v", left, right)
	}
}

func TestDrawImage(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			img.Set(x, y, color.RGBA{R: 255, A: 255})
		}
	}
	c := newTestCanvas(t, 6, 6)
	c.DrawImage(img, gg.Pt(1, 1), displaylist.ImageSamplingNearest, nil)
	expectPixel(t, c, 1, 1, red)
	expectPixel(t, c, 2, 2, red)
	expectPixel(t, c, 4, 4, transparent)

	c.DrawImage(nil, gg.Pt(0, 0), displaylist.ImageSamplingNearest, nil)
}

func TestDrawImageAlpha(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.Set(x, y, color.RGBA{R: 255, A: 255})
		}
	}
	c := newTestCanvas(t, 4, 4)
	c.DrawImageRect(img, displaylist.ImageBounds(img), displaylist.LTRB(0, 0, 4, 4),
		displaylist.ImageSamplingNearest, displaylist.SrcRectConstraintStrict, backend.AlphaPaint(0.5))
	expectPixel(t, c, 2, 2, [4]uint8{255, 0, 0, 128})
}

func TestDrawShadow(t *testing.T) {
	c := newTestCanvas(t, 40, 40)
	path := displaylist.LTRB(10, 10, 20, 20).Path()
	c.DrawShadow(path, backend.Point3{Z: 4}, backend.Point3{Y: -1, Z: 1}, 800.0/600,
		gg.RGBA{A: 0.1}, gg.RGBA{A: 0.5}, backend.ShadowDirectionalLight)
	if got := pixel(c, 15, 22); got[3] == 0 {
		t.Errorf("no spot shadow below the occluder: %v", got)
	}
	if got := pixel(c, 15, 38); got != transparent {
		t.Errorf("shadow reached too far: %v", got)
	}
}

func TestEncodePNG(t *testing.T) {
	c := newTestCanvas(t, 4, 4)
	c.DrawPaint(redPaint())
	var buf bytes.Buffer
	if err := c.EncodePNG(&buf); err != nil {
		t.Fatalf("EncodePNG: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")) {
		t.Error("output is not a PNG")
	}
	if got := c.Image().RGBAAt(1, 1); got != (color.RGBA{R: 255, A: 255}) {
		t.Errorf("Image() pixel = %v", got)
	}
}

func TestDeviceArea(t *testing.T) {
	c := newTestCanvas(t, 10, 10)
	tests := []struct {
		r      displaylist.Rect
		outset float64
		want   image.Rectangle
	}{
		{displaylist.LTRB(1.5, 1.5, 3.2, 3.2), 0, image.Rect(1, 1, 4, 4)},
		{displaylist.LTRB(-50, -50, 50, 50), 0, image.Rect(0, 0, 10, 10)},
		{displaylist.LTRB(2, 2, 3, 3), 1, image.Rect(1, 1, 4, 4)},
		{displaylist.Rect{}, 5, image.Rectangle{}},
		{displaylist.MaxCullRect(), 0, image.Rect(0, 0, 10, 10)},
	}
	for _, tt := range tests {
		if got := c.deviceArea(tt.r, tt.outset); got != tt.want {
			t.Errorf("deviceArea(%+v, %v) = %v, want %v", tt.r, tt.outset, got, tt.want)
		}
	}
}
