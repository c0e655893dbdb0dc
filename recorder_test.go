package displaylist

import (
	"image"

	"github.com/gogpu/gg"
	"github.com/google/go-cmp/cmp"
)

// call is one Receiver method invocation captured by callRecorder.
type call struct {
	Op   string
	Args []any
}

// callRecorder captures every Receiver call with its arguments.
type callRecorder struct {
	calls []call
}

func (r *callRecorder) add(op string, args ...any) {
	r.calls = append(r.calls, call{Op: op, Args: args})
}

func (r *callRecorder) ops() []string {
	names := make([]string, len(r.calls))
	for i, c := range r.calls {
		names[i] = c.Op
	}
	return names
}

func (r *callRecorder) SetAntiAlias(aa bool)              { r.add("SetAntiAlias", aa) }
func (r *callRecorder) SetDither(d bool)                  { r.add("SetDither", d) }
func (r *callRecorder) SetInvertColors(v bool)            { r.add("SetInvertColors", v) }
func (r *callRecorder) SetStrokeCap(c StrokeCap)          { r.add("SetStrokeCap", c) }
func (r *callRecorder) SetStrokeJoin(j StrokeJoin)        { r.add("SetStrokeJoin", j) }
func (r *callRecorder) SetStrokeWidth(w float64)          { r.add("SetStrokeWidth", w) }
func (r *callRecorder) SetStrokeMiter(l float64)          { r.add("SetStrokeMiter", l) }
func (r *callRecorder) SetDrawStyle(s DrawStyle)          { r.add("SetDrawStyle", s) }
func (r *callRecorder) SetColor(c gg.RGBA)                { r.add("SetColor", c) }
func (r *callRecorder) SetBlendMode(m BlendMode)          { r.add("SetBlendMode", m) }
func (r *callRecorder) SetColorSource(s ColorSource)      { r.add("SetColorSource", s) }
func (r *callRecorder) SetImageFilter(f ImageFilter)      { r.add("SetImageFilter", f) }
func (r *callRecorder) SetColorFilter(f ColorFilter)      { r.add("SetColorFilter", f) }
func (r *callRecorder) SetPathEffect(e PathEffect)        { r.add("SetPathEffect", e) }
func (r *callRecorder) SetMaskFilter(f MaskFilter)        { r.add("SetMaskFilter", f) }
func (r *callRecorder) Translate(tx, ty float64)          { r.add("Translate", tx, ty) }
func (r *callRecorder) Scale(sx, sy float64)              { r.add("Scale", sx, sy) }
func (r *callRecorder) Rotate(deg float64)                { r.add("Rotate", deg) }
func (r *callRecorder) Skew(sx, sy float64)               { r.add("Skew", sx, sy) }
func (r *callRecorder) TransformFullPerspective(m Matrix) { r.add("TransformFullPerspective", m) }
func (r *callRecorder) TransformReset()                   { r.add("TransformReset") }

func (r *callRecorder) Transform2DAffine(mxx, mxy, mxt, myx, myy, myt float64) {
	r.add("Transform2DAffine", mxx, mxy, mxt, myx, myy, myt)
}

func (r *callRecorder) ClipRect(rect Rect, op ClipOp, aa bool)   { r.add("ClipRect", rect, op, aa) }
func (r *callRecorder) ClipOval(b Rect, op ClipOp, aa bool)      { r.add("ClipOval", b, op, aa) }
func (r *callRecorder) ClipRRect(rr RRect, op ClipOp, aa bool)   { r.add("ClipRRect", rr, op, aa) }
func (r *callRecorder) ClipPath(p *gg.Path, op ClipOp, aa bool)  { r.add("ClipPath", p, op, aa) }
func (r *callRecorder) Save()                                    { r.add("Save") }
func (r *callRecorder) Restore()                                 { r.add("Restore") }
func (r *callRecorder) DrawColor(c gg.RGBA, m BlendMode)         { r.add("DrawColor", c, m) }
func (r *callRecorder) DrawPaint()                               { r.add("DrawPaint") }
func (r *callRecorder) DrawLine(p0, p1 gg.Point)                 { r.add("DrawLine", p0, p1) }
func (r *callRecorder) DrawRect(rect Rect)                       { r.add("DrawRect", rect) }
func (r *callRecorder) DrawOval(b Rect)                          { r.add("DrawOval", b) }
func (r *callRecorder) DrawCircle(c gg.Point, radius float64)    { r.add("DrawCircle", c, radius) }
func (r *callRecorder) DrawRRect(rr RRect)                       { r.add("DrawRRect", rr) }
func (r *callRecorder) DrawDRRect(o, i RRect)                    { r.add("DrawDRRect", o, i) }
func (r *callRecorder) DrawPath(p *gg.Path)                      { r.add("DrawPath", p) }
func (r *callRecorder) DrawPoints(m PointMode, pts []gg.Point)   { r.add("DrawPoints", m, pts) }
func (r *callRecorder) DrawVertices(v *Vertices, m BlendMode)    { r.add("DrawVertices", v, m) }
func (r *callRecorder) DrawDisplayList(dl *DisplayList, o float64) { r.add("DrawDisplayList", dl, o) }
func (r *callRecorder) DrawTextBlob(b *TextBlob, x, y float64)   { r.add("DrawTextBlob", b, x, y) }
func (r *callRecorder) DrawTextFrame(f *TextFrame, x, y float64) { r.add("DrawTextFrame", f, x, y) }

func (r *callRecorder) SaveLayer(bounds *Rect, options SaveLayerOptions, backdrop ImageFilter, id int64) {
	r.add("SaveLayer", bounds, options, backdrop, id)
}

func (r *callRecorder) DrawDashedLine(p0, p1 gg.Point, on, off float64) {
	r.add("DrawDashedLine", p0, p1, on, off)
}

func (r *callRecorder) DrawArc(oval Rect, start, sweep float64, useCenter bool) {
	r.add("DrawArc", oval, start, sweep, useCenter)
}

func (r *callRecorder) DrawImage(img image.Image, p gg.Point, s ImageSampling, attrs bool) {
	r.add("DrawImage", img, p, s, attrs)
}

func (r *callRecorder) DrawImageRect(img image.Image, src, dst Rect, s ImageSampling, attrs bool, c SrcRectConstraint) {
	r.add("DrawImageRect", img, src, dst, s, attrs, c)
}

func (r *callRecorder) DrawImageNine(img image.Image, center, dst Rect, f FilterMode, attrs bool) {
	r.add("DrawImageNine", img, center, dst, f, attrs)
}

func (r *callRecorder) DrawAtlas(atlas image.Image, xforms []RSTransform, tex []Rect, colors []gg.RGBA,
	m BlendMode, s ImageSampling, cull *Rect, attrs bool) {
	r.add("DrawAtlas", atlas, xforms, tex, colors, m, s, cull, attrs)
}

func (r *callRecorder) DrawShadow(p *gg.Path, c gg.RGBA, elevation float64, transparent bool, dpr float64) {
	r.add("DrawShadow", p, c, elevation, transparent, dpr)
}

// depthRecorder also implements DepthReceiver.
type depthRecorder struct {
	callRecorder
	saveDepths  []uint32
	layerDepths []uint32
	layerOpts   []SaveLayerOptions
	layerBounds []Rect
	layerBlends []BlendMode
}

func (r *depthRecorder) SaveWithDepth(depth uint32) {
	r.saveDepths = append(r.saveDepths, depth)
	r.add("Save")
}

func (r *depthRecorder) SaveLayerWithDepth(bounds *Rect, options SaveLayerOptions, depth uint32,
	maxBlend BlendMode, backdrop ImageFilter, id int64) {
	r.layerDepths = append(r.layerDepths, depth)
	r.layerOpts = append(r.layerOpts, options)
	r.layerBounds = append(r.layerBounds, *bounds)
	r.layerBlends = append(r.layerBlends, maxBlend)
	r.add("SaveLayer", bounds, options, backdrop, id)
}

var (
	_ Receiver      = (*callRecorder)(nil)
	_ DepthReceiver = (*depthRecorder)(nil)
	_ Receiver      = (*Builder)(nil)
)

// cmpOpts compares recorded calls. Paths compare by element list, display
// lists by identity.
var cmpOpts = cmp.Options{
	cmp.Comparer(func(a, b *gg.Path) bool {
		if a == nil || b == nil {
			return a == b
		}
		return cmp.Equal(a.Elements(), b.Elements())
	}),
	cmp.Comparer(func(a, b *DisplayList) bool { return a == b }),
	cmp.Comparer(func(a, b *Vertices) bool { return a == b }),
}
