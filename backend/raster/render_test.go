package raster

import (
	"testing"

	"github.com/gogpu/displaylist"
	"github.com/gogpu/displaylist/backend"
	"github.com/gogpu/displaylist/dispatch"
	"github.com/gogpu/gg"
)

// A layer that only applies opacity may be flattened into its children.
// Both renderings must produce the same pixels.
func TestFlattenedLayerMatchesRealLayer(t *testing.T) {
	rect := displaylist.LTRB(2, 2, 8, 8)

	b := displaylist.NewBuilder()
	b.SaveLayer(nil, displaylist.NoAttributes, nil, 0)
	b.SetColor(gg.RGBA{R: 1, A: 1})
	b.DrawRect(rect)
	b.Restore()
	list := b.Build()

	flat := newTestCanvas(t, 10, 10)
	dispatch.RenderTo(flat, list, 0.5)

	layered := newTestCanvas(t, 10, 10)
	layered.SaveLayer(nil, backend.AlphaPaint(0.5), nil)
	layered.DrawRect(rect, redPaint())
	layered.Restore()

	want := [4]uint8{255, 0, 0, 128}
	for _, c := range []*Canvas{flat, layered} {
		expectPixel(t, c, 5, 5, want)
		expectPixel(t, c, 0, 0, transparent)
	}
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			if a, b := pixel(flat, x, y), pixel(layered, x, y); !near(a, b, 2) {
				t.Fatalf("pixel(%d, %d): flattened %v, layered %v", x, y, a, b)
			}
		}
	}
}

func TestRenderNestedList(t *testing.T) {
	inner := displaylist.NewBuilder()
	inner.SetColor(gg.RGBA{R: 1, A: 1})
	inner.DrawRect(displaylist.LTRB(0, 0, 4, 4))
	child := inner.Build()

	outer := displaylist.NewBuilder()
	outer.Translate(4, 4)
	outer.DrawDisplayList(child, 1)
	outer.TransformReset()
	outer.DrawRect(displaylist.LTRB(0, 0, 2, 2))
	list := outer.Build()

	c := newTestCanvas(t, 10, 10)
	dispatch.RenderTo(c, list, 1)
	expectPixel(t, c, 5, 5, red)
	// The outer list draws with its own default color, not the child's.
	expectPixel(t, c, 1, 1, [4]uint8{0, 0, 0, 255})
	expectPixel(t, c, 2, 5, transparent)
}

func TestRenderClippedList(t *testing.T) {
	b := displaylist.NewBuilder()
	b.ClipRect(displaylist.LTRB(0, 0, 5, 10), displaylist.ClipIntersect, false)
	b.SetColor(gg.RGBA{R: 1, A: 1})
	b.DrawPaint()
	list := b.Build()

	c := newTestCanvas(t, 10, 10)
	dispatch.RenderTo(c, list, 1)
	expectPixel(t, c, 2, 2, red)
	expectPixel(t, c, 8, 2, transparent)
}
