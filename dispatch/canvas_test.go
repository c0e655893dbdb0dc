package dispatch

import (
	"image"

	"github.com/gogpu/displaylist"
	"github.com/gogpu/displaylist/backend"
	"github.com/gogpu/gg"
)

// canvasCall is one Canvas call captured by stubCanvas. Paint is a copy of
// the paint passed in, or nil.
type canvasCall struct {
	Op    string
	Paint *backend.Paint
	Args  []any
}

type stubState struct {
	matrix displaylist.Matrix
	clip   displaylist.Rect
}

// stubCanvas records calls and tracks the transform, a rectangular clip and
// the save count.
type stubCanvas struct {
	calls  []canvasCall
	state  stubState
	stack  []stubState
	layers []bool
}

func newStubCanvas(w, h float64) *stubCanvas {
	return &stubCanvas{state: stubState{
		matrix: displaylist.Identity(),
		clip:   displaylist.LTRB(0, 0, w, h),
	}}
}

func (c *stubCanvas) add(op string, p *backend.Paint, args ...any) {
	var cp *backend.Paint
	if p != nil {
		v := *p
		cp = &v
	}
	c.calls = append(c.calls, canvasCall{Op: op, Paint: cp, Args: args})
}

func (c *stubCanvas) ops() []string {
	names := make([]string, len(c.calls))
	for i, call := range c.calls {
		names[i] = call.Op
	}
	return names
}

// find returns the calls named op.
func (c *stubCanvas) find(op string) []canvasCall {
	var out []canvasCall
	for _, call := range c.calls {
		if call.Op == op {
			out = append(out, call)
		}
	}
	return out
}

func (c *stubCanvas) SaveCount() int { return len(c.stack) + 1 }

func (c *stubCanvas) Save() {
	c.add("Save", nil)
	c.stack = append(c.stack, c.state)
	c.layers = append(c.layers, false)
}

func (c *stubCanvas) SaveLayer(bounds *displaylist.Rect, p *backend.Paint, backdrop displaylist.ImageFilter) {
	var b any
	if bounds != nil {
		b = *bounds
	}
	c.add("SaveLayer", p, b, backdrop)
	c.stack = append(c.stack, c.state)
	c.layers = append(c.layers, true)
	if bounds != nil {
		c.state.clip = c.state.clip.Intersect(c.state.matrix.MapRect(*bounds))
	}
}

func (c *stubCanvas) Restore() {
	if len(c.stack) == 0 {
		return
	}
	c.add("Restore", nil)
	c.state = c.stack[len(c.stack)-1]
	c.stack = c.stack[:len(c.stack)-1]
	c.layers = c.layers[:len(c.layers)-1]
}

func (c *stubCanvas) RestoreToCount(count int) {
	for c.SaveCount() > count && len(c.stack) > 0 {
		c.Restore()
	}
}

func (c *stubCanvas) Concat(m displaylist.Matrix) {
	c.add("Concat", nil, m)
	c.state.matrix = c.state.matrix.Multiply(m)
}

func (c *stubCanvas) SetMatrix(m displaylist.Matrix) {
	c.add("SetMatrix", nil, m)
	c.state.matrix = m
}

func (c *stubCanvas) TotalMatrix() displaylist.Matrix { return c.state.matrix }

func (c *stubCanvas) ClipRect(r displaylist.Rect, op displaylist.ClipOp, aa bool) {
	c.add("ClipRect", nil, r, op, aa)
	if op == displaylist.ClipIntersect {
		c.state.clip = c.state.clip.Intersect(c.state.matrix.MapRect(r))
	}
}

func (c *stubCanvas) ClipRRect(rr displaylist.RRect, op displaylist.ClipOp, aa bool) {
	c.add("ClipRRect", nil, rr, op, aa)
	if op == displaylist.ClipIntersect {
		c.state.clip = c.state.clip.Intersect(c.state.matrix.MapRect(rr.Rect))
	}
}

func (c *stubCanvas) ClipPath(path *gg.Path, op displaylist.ClipOp, aa bool) {
	c.add("ClipPath", nil, path, op, aa)
}

func (c *stubCanvas) DeviceClipBounds() displaylist.Rect { return c.state.clip }

func (c *stubCanvas) DrawPaint(p *backend.Paint) { c.add("DrawPaint", p) }

func (c *stubCanvas) DrawColor(col gg.RGBA, mode displaylist.BlendMode) {
	c.add("DrawColor", nil, col, mode)
}

func (c *stubCanvas) DrawLine(p0, p1 gg.Point, p *backend.Paint) { c.add("DrawLine", p, p0, p1) }
func (c *stubCanvas) DrawRect(r displaylist.Rect, p *backend.Paint) { c.add("DrawRect", p, r) }
func (c *stubCanvas) DrawOval(r displaylist.Rect, p *backend.Paint) { c.add("DrawOval", p, r) }

func (c *stubCanvas) DrawCircle(center gg.Point, radius float64, p *backend.Paint) {
	c.add("DrawCircle", p, center, radius)
}

func (c *stubCanvas) DrawRRect(rr displaylist.RRect, p *backend.Paint) { c.add("DrawRRect", p, rr) }

func (c *stubCanvas) DrawDRRect(outer, inner displaylist.RRect, p *backend.Paint) {
	c.add("DrawDRRect", p, outer, inner)
}

func (c *stubCanvas) DrawPath(path *gg.Path, p *backend.Paint) { c.add("DrawPath", p, path) }

func (c *stubCanvas) DrawArc(oval displaylist.Rect, start, sweep float64, useCenter bool, p *backend.Paint) {
	c.add("DrawArc", p, oval, start, sweep, useCenter)
}

func (c *stubCanvas) DrawPoints(mode displaylist.PointMode, pts []gg.Point, p *backend.Paint) {
	c.add("DrawPoints", p, mode, pts)
}

func (c *stubCanvas) DrawVertices(v *displaylist.Vertices, mode displaylist.BlendMode, p *backend.Paint) {
	c.add("DrawVertices", p, v, mode)
}

func (c *stubCanvas) DrawImage(img image.Image, pt gg.Point, s displaylist.ImageSampling, p *backend.Paint) {
	c.add("DrawImage", p, img, pt, s)
}

func (c *stubCanvas) DrawImageRect(img image.Image, src, dst displaylist.Rect, s displaylist.ImageSampling,
	constraint displaylist.SrcRectConstraint, p *backend.Paint) {
	c.add("DrawImageRect", p, img, src, dst, s, constraint)
}

func (c *stubCanvas) DrawImageNine(img image.Image, center, dst displaylist.Rect, f displaylist.FilterMode, p *backend.Paint) {
	c.add("DrawImageNine", p, img, center, dst, f)
}

func (c *stubCanvas) DrawAtlas(atlas image.Image, xforms []displaylist.RSTransform, tex []displaylist.Rect,
	colors []gg.RGBA, mode displaylist.BlendMode, s displaylist.ImageSampling, cull *displaylist.Rect, p *backend.Paint) {
	c.add("DrawAtlas", p, atlas, xforms, tex, colors, mode, s, cull)
}

func (c *stubCanvas) DrawTextBlob(blob *displaylist.TextBlob, x, y float64, p *backend.Paint) {
	c.add("DrawTextBlob", p, blob, x, y)
}

func (c *stubCanvas) DrawTextFrame(frame *displaylist.TextFrame, x, y float64, p *backend.Paint) {
	c.add("DrawTextFrame", p, frame, x, y)
}

func (c *stubCanvas) DrawShadow(path *gg.Path, zPlane, light backend.Point3, radius float64,
	ambient, spot gg.RGBA, flags backend.ShadowFlags) {
	c.add("DrawShadow", nil, path, zPlane, light, radius, ambient, spot, flags)
}

var _ backend.Canvas = (*stubCanvas)(nil)
