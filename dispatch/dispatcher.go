package dispatch

import (
	"image"

	"github.com/gogpu/displaylist"
	"github.com/gogpu/displaylist/backend"
	"github.com/gogpu/gg"
)

// Shadow parameters. The light is directional, pointing along (0, -1, 1),
// with a radius to height ratio of LightRadius / LightHeight.
const (
	AmbientAlpha = 0.039
	SpotAlpha    = 0.25
	LightHeight  = displaylist.ShadowLightHeight
	LightRadius  = displaylist.ShadowLightRadius
)

// CanvasDispatcher plays display list ops into a backend.Canvas.
//
// Attributes set in a list apply to that list only: a nested list starts
// from defaults with a dispatcher of its own, while the canvas transform
// and clip carry over. A saveLayer whose content can take the layer alpha
// per draw is replayed as a plain save, and the alpha is passed down as
// opacity instead.
//
// A CanvasDispatcher is not safe for concurrent use. Dispatching the same
// list from several goroutines needs one dispatcher and canvas each.
type CanvasDispatcher struct {
	AttributeDispatcher
	canvas   backend.Canvas
	original displaylist.Matrix
	opts     options
}

// NewCanvasDispatcher returns a dispatcher drawing into canvas with the
// given inherited opacity. TransformReset returns to the canvas transform
// at the time of this call.
func NewCanvasDispatcher(canvas backend.Canvas, opacity float64, opts ...Option) *CanvasDispatcher {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return newCanvasDispatcher(canvas, opacity, o)
}

func newCanvasDispatcher(canvas backend.Canvas, opacity float64, o options) *CanvasDispatcher {
	d := &CanvasDispatcher{
		canvas:   canvas,
		original: canvas.TotalMatrix(),
		opts:     o,
	}
	d.reset(opacity)
	return d
}

// RenderTo draws list into canvas at the given opacity, the same way a
// parent list draws a nested one.
func RenderTo(canvas backend.Canvas, list *displaylist.DisplayList, opacity float64, opts ...Option) {
	d := NewCanvasDispatcher(canvas, 1, opts...)
	d.drawList(list, opacity, d.opts.cull)
}

// Canvas returns the canvas the dispatcher draws into.
func (d *CanvasDispatcher) Canvas() backend.Canvas { return d.canvas }

// safePaint returns the paint for a draw that may ignore attributes. Without
// attributes the draw still needs the inherited opacity, if any.
func (d *CanvasDispatcher) safePaint(useAttributes bool) *backend.Paint {
	switch {
	case useAttributes:
		return d.Paint()
	case d.HasOpacity():
		return backend.AlphaPaint(d.Opacity())
	}
	return nil
}

// Transforms

// Translate concatenates a translation onto the canvas matrix.
func (d *CanvasDispatcher) Translate(tx, ty float64) {
	d.canvas.Concat(displaylist.Translate(tx, ty))
}

// Scale concatenates a scale onto the canvas matrix.
func (d *CanvasDispatcher) Scale(sx, sy float64) {
	d.canvas.Concat(displaylist.Scale(sx, sy))
}

// Rotate concatenates a rotation in degrees onto the canvas matrix.
func (d *CanvasDispatcher) Rotate(degrees float64) {
	d.canvas.Concat(displaylist.RotateDegrees(degrees))
}

// Skew concatenates a skew onto the canvas matrix.
func (d *CanvasDispatcher) Skew(sx, sy float64) {
	d.canvas.Concat(displaylist.Skew(sx, sy))
}

// Transform2DAffine concatenates a row-major affine transform onto the
// canvas matrix.
func (d *CanvasDispatcher) Transform2DAffine(mxx, mxy, mxt, myx, myy, myt float64) {
	d.canvas.Concat(displaylist.Affine(mxx, mxy, mxt, myx, myy, myt))
}

// TransformFullPerspective concatenates m onto the canvas matrix.
func (d *CanvasDispatcher) TransformFullPerspective(m displaylist.Matrix) {
	d.canvas.Concat(m)
}

// TransformReset restores the matrix the canvas had when dispatch started,
// so a nested list resets to its parent transform.
func (d *CanvasDispatcher) TransformReset() {
	d.canvas.SetMatrix(d.original)
}

// Clips

// ClipRect clips the canvas to r.
func (d *CanvasDispatcher) ClipRect(r displaylist.Rect, op displaylist.ClipOp, aa bool) {
	d.canvas.ClipRect(r, op, aa)
}

// ClipOval clips to the oval as a rounded rectangle with half-size radii.
func (d *CanvasDispatcher) ClipOval(bounds displaylist.Rect, op displaylist.ClipOp, aa bool) {
	d.canvas.ClipRRect(displaylist.NewRRect(bounds, bounds.Width()/2, bounds.Height()/2), op, aa)
}

// ClipRRect clips the canvas to rr.
func (d *CanvasDispatcher) ClipRRect(rr displaylist.RRect, op displaylist.ClipOp, aa bool) {
	d.canvas.ClipRRect(rr, op, aa)
}

// ClipPath clips the canvas to path. A nil path is skipped.
func (d *CanvasDispatcher) ClipPath(path *gg.Path, op displaylist.ClipOp, aa bool) {
	if path == nil {
		skipped("ClipPath")
		return
	}
	d.canvas.ClipPath(path, op, aa)
}

// Saves

// Save saves the canvas and the inherited opacity.
func (d *CanvasDispatcher) Save() {
	d.canvas.Save()
	d.saveOpacity(d.Opacity())
}

// SaveLayer opens a canvas layer. A layer that only applies opacity to
// children that accept it is replaced by a plain save that pushes the
// opacity down instead.
func (d *CanvasDispatcher) SaveLayer(bounds *displaylist.Rect, options displaylist.SaveLayerOptions,
	backdrop displaylist.ImageFilter, _ int64) {
	if !options.Has(displaylist.ContentIsClipped) && options.Has(displaylist.CanDistributeOpacity) && backdrop == nil {
		// The layer would only apply an alpha, and every child can take that
		// alpha on its own without changing the result.
		d.canvas.Save()
		if options.Has(displaylist.RendersWithAttributes) {
			d.saveOpacity(d.CombinedOpacity())
		} else {
			d.saveOpacity(d.Opacity())
		}
		return
	}
	paint := d.safePaint(options.Has(displaylist.RendersWithAttributes))
	if paint != nil {
		p := *paint
		paint = &p
	}
	var layerBounds *displaylist.Rect
	if options.Has(displaylist.BoundsFromCaller) && bounds != nil {
		r := *bounds
		layerBounds = &r
	}
	d.canvas.SaveLayer(layerBounds, paint, backdrop)
	// The layer applies the inherited opacity when it is composited.
	d.saveOpacity(1)
}

// Restore pops one save. Restores without a matching save are ignored.
func (d *CanvasDispatcher) Restore() {
	if d.saveDepth() == 0 {
		displaylist.Logger().Debug("dispatch: unmatched restore ignored")
		return
	}
	d.canvas.Restore()
	d.restoreOpacity()
}

// Draws

// DrawPaint fills the clip with the current paint.
func (d *CanvasDispatcher) DrawPaint() {
	p := d.Paint()
	if f := p.ImageFilter; f != nil && f.AsColorFilter() == nil {
		displaylist.Logger().Debug("dispatch: drawPaint with an image filter draws through an implicit layer")
	}
	d.canvas.DrawPaint(p)
}

// DrawColor scales the color alpha by the inherited opacity; no paint is
// involved.
func (d *CanvasDispatcher) DrawColor(c gg.RGBA, mode displaylist.BlendMode) {
	c.A *= d.Opacity()
	d.canvas.DrawColor(c, mode)
}

// DrawLine strokes a line with the current paint.
func (d *CanvasDispatcher) DrawLine(p0, p1 gg.Point) {
	d.canvas.DrawLine(p0, p1, d.Paint())
}

// DrawDashedLine strokes a line through a dash path effect.
func (d *CanvasDispatcher) DrawDashedLine(p0, p1 gg.Point, onLength, offLength float64) {
	p := *d.Paint()
	p.PathEffect = displaylist.NewDashPathEffect([]float64{onLength, offLength}, 0)
	d.canvas.DrawLine(p0, p1, &p)
}

// DrawRect draws r with the current paint.
func (d *CanvasDispatcher) DrawRect(r displaylist.Rect) {
	d.canvas.DrawRect(r, d.Paint())
}

// DrawOval draws the oval inscribed in bounds.
func (d *CanvasDispatcher) DrawOval(bounds displaylist.Rect) {
	d.canvas.DrawOval(bounds, d.Paint())
}

// DrawCircle draws a circle with the current paint.
func (d *CanvasDispatcher) DrawCircle(center gg.Point, radius float64) {
	d.canvas.DrawCircle(center, radius, d.Paint())
}

// DrawRRect draws rr with the current paint.
func (d *CanvasDispatcher) DrawRRect(rr displaylist.RRect) {
	d.canvas.DrawRRect(rr, d.Paint())
}

// DrawDRRect draws the area between outer and inner.
func (d *CanvasDispatcher) DrawDRRect(outer, inner displaylist.RRect) {
	d.canvas.DrawDRRect(outer, inner, d.Paint())
}

// DrawPath draws path. A nil path is skipped.
func (d *CanvasDispatcher) DrawPath(path *gg.Path) {
	if path == nil {
		skipped("DrawPath")
		return
	}
	d.canvas.DrawPath(path, d.Paint())
}

// DrawArc draws an arc of oval with the current paint.
func (d *CanvasDispatcher) DrawArc(oval displaylist.Rect, start, sweep float64, useCenter bool) {
	d.canvas.DrawArc(oval, start, sweep, useCenter, d.Paint())
}

// DrawPoints draws points in mode with the current paint.
func (d *CanvasDispatcher) DrawPoints(mode displaylist.PointMode, points []gg.Point) {
	d.canvas.DrawPoints(mode, points, d.Paint())
}

// DrawVertices draws a mesh. A nil mesh is skipped.
func (d *CanvasDispatcher) DrawVertices(v *displaylist.Vertices, mode displaylist.BlendMode) {
	if v == nil {
		skipped("DrawVertices")
		return
	}
	d.canvas.DrawVertices(v, mode, d.Paint())
}

// DrawImage draws img, with the current paint only when attrs is set.
func (d *CanvasDispatcher) DrawImage(img image.Image, p gg.Point, sampling displaylist.ImageSampling, attrs bool) {
	if img == nil {
		skipped("DrawImage")
		return
	}
	d.canvas.DrawImage(img, p, sampling, d.safePaint(attrs))
}

// DrawImageRect draws the src part of img into dst.
func (d *CanvasDispatcher) DrawImageRect(img image.Image, src, dst displaylist.Rect,
	sampling displaylist.ImageSampling, attrs bool, constraint displaylist.SrcRectConstraint) {
	if img == nil {
		skipped("DrawImageRect")
		return
	}
	d.canvas.DrawImageRect(img, src, dst, sampling, constraint, d.safePaint(attrs))
}

// DrawImageNine draws img as a nine-patch.
func (d *CanvasDispatcher) DrawImageNine(img image.Image, center, dst displaylist.Rect,
	filter displaylist.FilterMode, attrs bool) {
	if img == nil {
		skipped("DrawImageNine")
		return
	}
	d.canvas.DrawImageNine(img, center, dst, filter, d.safePaint(attrs))
}

// DrawAtlas draws sprites from atlas.
func (d *CanvasDispatcher) DrawAtlas(atlas image.Image, xforms []displaylist.RSTransform, tex []displaylist.Rect,
	colors []gg.RGBA, mode displaylist.BlendMode, sampling displaylist.ImageSampling, cull *displaylist.Rect, attrs bool) {
	if atlas == nil {
		skipped("DrawAtlas")
		return
	}
	d.canvas.DrawAtlas(atlas, xforms, tex, colors, mode, sampling, cull, d.safePaint(attrs))
}

// DrawTextBlob draws blob with the current paint.
func (d *CanvasDispatcher) DrawTextBlob(blob *displaylist.TextBlob, x, y float64) {
	if blob == nil {
		skipped("DrawTextBlob")
		return
	}
	d.canvas.DrawTextBlob(blob, x, y, d.Paint())
}

// DrawTextFrame draws frame with the current paint.
func (d *CanvasDispatcher) DrawTextFrame(frame *displaylist.TextFrame, x, y float64) {
	if frame == nil {
		skipped("DrawTextFrame")
		return
	}
	d.canvas.DrawTextFrame(frame, x, y, d.Paint())
}

// DrawShadow draws a material shadow for path. The ambient and spot colors
// are color with its alpha scaled by AmbientAlpha and SpotAlpha, passed
// through the tonal resolver.
func (d *CanvasDispatcher) DrawShadow(path *gg.Path, color gg.RGBA, elevation float64,
	transparentOccluder bool, devicePixelRatio float64) {
	if path == nil {
		skipped("DrawShadow")
		return
	}
	ambient, spot := color, color
	ambient.A = AmbientAlpha * color.A
	spot.A = SpotAlpha * color.A
	ambient, spot = d.opts.tonal(ambient, spot)

	flags := backend.ShadowDirectionalLight
	if transparentOccluder {
		flags |= backend.ShadowTransparentOccluder
	}
	d.canvas.DrawShadow(path,
		backend.Point3{Z: devicePixelRatio * elevation},
		backend.Point3{X: 0, Y: -1, Z: 1},
		LightRadius/LightHeight,
		ambient, spot, flags)
}

// DrawDisplayList draws a nested list with its own attribute state.
func (d *CanvasDispatcher) DrawDisplayList(list *displaylist.DisplayList, opacity float64) {
	d.drawList(list, opacity, nil)
}

func (d *CanvasDispatcher) drawList(list *displaylist.DisplayList, opacity float64, cull *displaylist.Rect) {
	if list == nil {
		skipped("DrawDisplayList")
		return
	}
	count := d.canvas.SaveCount()
	combined := opacity * d.Opacity()
	if combined < 1 && !list.CanApplyGroupOpacity() {
		// Some child op cannot take the alpha by itself, so composite the
		// whole list through a layer.
		bounds := list.Bounds()
		d.canvas.SaveLayer(&bounds, backend.AlphaPaint(combined), nil)
		combined = 1
	} else {
		d.canvas.Save()
	}

	child := newCanvasDispatcher(d.canvas, combined, options{tonal: d.opts.tonal})
	if list.RTree() != nil {
		if local, ok := d.localClipBounds(); ok {
			if cull != nil {
				local = local.Intersect(*cull)
			}
			list.DispatchCulled(child, local)
		} else {
			list.Dispatch(child)
		}
	} else {
		list.Dispatch(child)
	}
	d.canvas.RestoreToCount(count)
}

// localClipBounds maps the device clip into the current local space. It
// fails when the transform cannot be inverted.
func (d *CanvasDispatcher) localClipBounds() (displaylist.Rect, bool) {
	inv, ok := d.canvas.TotalMatrix().Invert()
	if !ok {
		return displaylist.Rect{}, false
	}
	return inv.MapRect(d.canvas.DeviceClipBounds()), true
}

func skipped(op string) {
	displaylist.Logger().Debug("dispatch: skipped op with nil resource", "op", op)
}

var _ displaylist.Receiver = (*CanvasDispatcher)(nil)
