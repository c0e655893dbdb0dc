package displaylist

import (
	"image"
	"math"

	"github.com/gogpu/gg"
)

// attributes is the paint state the Builder tracks while recording. It
// mirrors what a playback receiver will see so bounds and opacity analysis
// use the same values.
type attributes struct {
	antiAlias    bool
	dither       bool
	invertColors bool
	strokeCap    StrokeCap
	strokeJoin   StrokeJoin
	strokeWidth  float64
	strokeMiter  float64
	style        DrawStyle
	color        gg.RGBA
	blendMode    BlendMode
	colorSource  ColorSource
	imageFilter  ImageFilter
	colorFilter  ColorFilter
	pathEffect   PathEffect
	maskFilter   MaskFilter
}

func defaultAttributes() attributes {
	return attributes{
		strokeMiter: 4,
		color:       gg.RGBA{A: 1},
		blendMode:   BlendModeSrcOver,
	}
}

// opacityCompatible reports whether scaling the alpha of a draw made with
// these attributes equals compositing it through a layer with that alpha.
func (a *attributes) opacityCompatible() bool {
	if a.invertColors || a.blendMode != BlendModeSrcOver {
		return false
	}
	if a.colorFilter != nil && !a.colorFilter.CanCommuteWithOpacity() {
		return false
	}
	if a.imageFilter != nil {
		if cf := a.imageFilter.AsColorFilter(); cf != nil && !cf.CanCommuteWithOpacity() {
			return false
		}
	}
	return true
}

// alphaOnly reports whether the attributes change nothing about a layer's
// compositing but its alpha.
func (a *attributes) alphaOnly() bool {
	return !a.invertColors && a.blendMode == BlendModeSrcOver &&
		a.colorFilter == nil && a.imageFilter == nil
}

// paintsTransparentBlack reports whether a draw with these attributes
// changes pixels outside its own geometry.
func (a *attributes) paintsTransparentBlack() bool {
	return a.blendMode.ModifiesTransparentBlack() ||
		(a.colorFilter != nil && a.colorFilter.ModifiesTransparentBlack()) ||
		(a.imageFilter != nil && a.imageFilter.ModifiesTransparentBlack())
}

// layerInfo accumulates what the builder learns about the content of one
// layer: the root of the list or a saveLayer scope. Plain saves share the
// layerInfo of their enclosing layer.
type layerInfo struct {
	opacityCompatible bool
	content           Rect // device bounds of content, clipped
	raw               Rect // device bounds of content before clipping
	maxBlendMode      BlendMode
	unbounded         bool
}

func newLayerInfo() *layerInfo {
	return &layerInfo{opacityCompatible: true}
}

// add records one rendering op (or a closed child layer) in the layer.
// Any overlap with earlier content breaks opacity compatibility.
func (l *layerInfo) add(device, raw Rect, compatible bool, blend BlendMode) {
	if blend > l.maxBlendMode {
		l.maxBlendMode = blend
	}
	if !compatible {
		l.opacityCompatible = false
	}
	l.raw = l.raw.Union(raw)
	if device.IsEmpty() {
		return
	}
	if l.content.Intersects(device) {
		l.opacityCompatible = false
	}
	l.content = l.content.Union(device)
}

type saveInfo struct {
	opIndex    int
	save       *saveOp
	layerOp    *saveLayerOp
	layer      *layerInfo
	depthStart uint32
	matrix     Matrix
	clip       Rect

	// saveLayer only
	filter          ImageFilter
	layerCompatible bool
	layerBlend      BlendMode
	paintUnbounded  bool
	alphaOnly       bool // compositing applies nothing but an alpha
}

// Builder records Receiver calls into a DisplayList. While recording it
// tracks the transform, a conservative device clip and the current
// attributes, and computes per-op bounds, depth and opacity compatibility.
//
// Builder implements Receiver, so a DisplayList can be dispatched into a
// Builder to re-record it.
//
// A Builder is not safe for concurrent use.
type Builder struct {
	opts      builderOptions
	ops       []op
	acc       BoundsAccumulator
	attr      attributes
	matrix    Matrix
	clip      Rect
	stack     []saveInfo
	root      *layerInfo
	depth     uint32
	renderOps int
}

// NewBuilder creates an empty Builder.
func NewBuilder(opts ...BuilderOption) *Builder {
	o := defaultBuilderOptions()
	for _, opt := range opts {
		opt(&o)
	}
	b := &Builder{opts: o}
	b.reset()
	return b
}

func (b *Builder) reset() {
	b.ops = nil
	if b.opts.rtree {
		b.acc = NewRTreeBoundsAccumulator()
	} else {
		b.acc = NewRectBoundsAccumulator()
	}
	b.attr = defaultAttributes()
	b.matrix = Identity()
	b.clip = b.opts.cull
	b.stack = nil
	b.root = newLayerInfo()
	b.depth = 0
	b.renderOps = 0
}

// Build closes any open save scopes, returns the recorded DisplayList and
// resets the Builder for reuse.
func (b *Builder) Build() *DisplayList {
	if n := len(b.stack); n > 0 {
		Logger().Warn("displaylist: closing unbalanced saves", "open", n)
		for len(b.stack) > 0 {
			b.Restore()
		}
	}
	dl := &DisplayList{
		ops:                  b.ops,
		bounds:               b.acc.Bounds(),
		rtree:                b.acc.RTree(),
		totalDepth:           b.depth,
		renderOpCount:        b.renderOps,
		canApplyGroupOpacity: b.root.opacityCompatible,
		maxRootBlendMode:     b.root.maxBlendMode,
		rootIsUnbounded:      b.root.unbounded,
	}
	Logger().Debug("displaylist: built",
		"ops", len(dl.ops), "depth", dl.totalDepth, "bounds", dl.bounds)
	b.reset()
	return dl
}

// Transform returns the current transform.
func (b *Builder) Transform() Matrix { return b.matrix }

// DeviceClipBounds returns a conservative bound of the current clip in
// device space.
func (b *Builder) DeviceClipBounds() Rect { return b.clip }

// SaveCount returns 1 plus the number of open save scopes.
func (b *Builder) SaveCount() int { return len(b.stack) + 1 }

// RestoreToCount restores until SaveCount equals count.
func (b *Builder) RestoreToCount(count int) {
	count = max(count, 1)
	for b.SaveCount() > count {
		b.Restore()
	}
}

func (b *Builder) push(o op) int {
	b.ops = append(b.ops, o)
	if o.opType().IsRendering() {
		b.depth++
		b.renderOps++
	}
	return len(b.ops) - 1
}

func (b *Builder) currentLayer() *layerInfo {
	if n := len(b.stack); n > 0 {
		return b.stack[n-1].layer
	}
	return b.root
}

// Attributes

// SetAntiAlias records the anti-alias flag for the draws that follow.
func (b *Builder) SetAntiAlias(aa bool) {
	b.push(setAntiAliasOp{aa: aa})
	b.attr.antiAlias = aa
}

// SetDither records whether gradients and images are dithered.
func (b *Builder) SetDither(dither bool) {
	b.push(setDitherOp{dither: dither})
	b.attr.dither = dither
}

// SetInvertColors records whether colors are inverted after the color filter.
func (b *Builder) SetInvertColors(invert bool) {
	b.push(setInvertColorsOp{invert: invert})
	b.attr.invertColors = invert
}

// SetStrokeCap records the cap used at the open ends of strokes.
func (b *Builder) SetStrokeCap(c StrokeCap) {
	b.push(setStrokeCapOp{strokeCap: c})
	b.attr.strokeCap = c
}

// SetStrokeJoin records the join used between stroke segments.
func (b *Builder) SetStrokeJoin(j StrokeJoin) {
	b.push(setStrokeJoinOp{join: j})
	b.attr.strokeJoin = j
}

// SetStrokeWidth records the stroke width. Zero draws hairlines.
func (b *Builder) SetStrokeWidth(width float64) {
	b.push(setStrokeWidthOp{width: width})
	b.attr.strokeWidth = width
}

// SetStrokeMiter records the miter limit for miter joins.
func (b *Builder) SetStrokeMiter(limit float64) {
	b.push(setStrokeMiterOp{limit: limit})
	b.attr.strokeMiter = limit
}

// SetDrawStyle records whether geometry is filled, stroked or both.
func (b *Builder) SetDrawStyle(style DrawStyle) {
	b.push(setDrawStyleOp{style: style})
	b.attr.style = style
}

// SetColor records the paint color.
func (b *Builder) SetColor(c gg.RGBA) {
	b.push(setColorOp{color: c})
	b.attr.color = c
}

// SetBlendMode records the mode used to blend draws into the target.
func (b *Builder) SetBlendMode(mode BlendMode) {
	b.push(setBlendModeOp{mode: mode})
	b.attr.blendMode = mode
}

// SetColorSource records a gradient or image shader. Nil draws with the color.
func (b *Builder) SetColorSource(source ColorSource) {
	b.push(setColorSourceOp{source: source})
	b.attr.colorSource = source
}

// SetImageFilter records the image filter applied to each draw.
func (b *Builder) SetImageFilter(filter ImageFilter) {
	b.push(setImageFilterOp{filter: filter})
	b.attr.imageFilter = filter
}

// SetColorFilter records the color filter applied to each draw.
func (b *Builder) SetColorFilter(filter ColorFilter) {
	b.push(setColorFilterOp{filter: filter})
	b.attr.colorFilter = filter
}

// SetPathEffect records the path effect applied to stroked geometry.
func (b *Builder) SetPathEffect(effect PathEffect) {
	b.push(setPathEffectOp{effect: effect})
	b.attr.pathEffect = effect
}

// SetMaskFilter records the mask filter applied to draw coverage.
func (b *Builder) SetMaskFilter(filter MaskFilter) {
	b.push(setMaskFilterOp{filter: filter})
	b.attr.maskFilter = filter
}

// Transforms

// Translate records a translation and applies it to the current matrix.
func (b *Builder) Translate(tx, ty float64) {
	b.push(translateOp{tx: tx, ty: ty})
	b.matrix = b.matrix.Multiply(Translate(tx, ty))
}

// Scale records a scale and applies it to the current matrix.
func (b *Builder) Scale(sx, sy float64) {
	b.push(scaleOp{sx: sx, sy: sy})
	b.matrix = b.matrix.Multiply(Scale(sx, sy))
}

// Rotate records a rotation in degrees and applies it to the current matrix.
func (b *Builder) Rotate(degrees float64) {
	b.push(rotateOp{degrees: degrees})
	b.matrix = b.matrix.Multiply(RotateDegrees(degrees))
}

// Skew records a skew and applies it to the current matrix.
func (b *Builder) Skew(sx, sy float64) {
	b.push(skewOp{sx: sx, sy: sy})
	b.matrix = b.matrix.Multiply(Skew(sx, sy))
}

// Transform2DAffine records an affine transform given in row-major order
// and applies it to the current matrix.
func (b *Builder) Transform2DAffine(mxx, mxy, mxt, myx, myy, myt float64) {
	b.push(transform2DAffineOp{mxx: mxx, mxy: mxy, mxt: mxt, myx: myx, myy: myy, myt: myt})
	b.matrix = b.matrix.Multiply(Affine(mxx, mxy, mxt, myx, myy, myt))
}

// TransformFullPerspective records m and applies it to the current matrix.
func (b *Builder) TransformFullPerspective(m Matrix) {
	b.push(transformFullPerspectiveOp{m: m})
	b.matrix = b.matrix.Multiply(m)
}

// TransformReset records a reset of the current matrix to identity.
func (b *Builder) TransformReset() {
	b.push(transformResetOp{})
	b.matrix = Identity()
}

// Clips

// ClipRect records a rectangle clip and narrows the tracked clip bounds.
func (b *Builder) ClipRect(r Rect, op ClipOp, antiAlias bool) {
	b.push(clipRectOp{rect: r, op: op, aa: antiAlias})
	b.clipBounds(r, op, b.matrix.isScaleTranslate())
}

// ClipOval records a clip to the oval inscribed in bounds.
func (b *Builder) ClipOval(bounds Rect, op ClipOp, antiAlias bool) {
	b.push(clipOvalOp{bounds: bounds, op: op, aa: antiAlias})
	b.clipBounds(bounds, op, false)
}

// ClipRRect records a rounded rectangle clip.
func (b *Builder) ClipRRect(rr RRect, op ClipOp, antiAlias bool) {
	b.push(clipRRectOp{rrect: rr, op: op, aa: antiAlias})
	b.clipBounds(rr.Bounds(), op, rr.IsRect() && b.matrix.isScaleTranslate())
}

// ClipPath records a clip to a copy of path.
func (b *Builder) ClipPath(path *gg.Path, op ClipOp, antiAlias bool) {
	if path != nil {
		path = path.Clone()
	}
	b.push(clipPathOp{path: path, op: op, aa: antiAlias})
	b.clipBounds(PathBounds(path), op, false)
}

// clipBounds narrows the tracked device clip. exact reports that local maps
// to exactly its device bounds, which lets a difference clip empty the clip
// when it covers it.
func (b *Builder) clipBounds(local Rect, op ClipOp, exact bool) {
	switch op {
	case ClipIntersect:
		b.clip = b.clip.Intersect(b.matrix.MapRect(local))
	case ClipDifference:
		if exact && b.matrix.MapRect(local).ContainsRect(b.clip) {
			b.clip = Rect{}
		}
	}
}

// Save scopes

// Save opens a save scope that the matching Restore closes.
func (b *Builder) Save() {
	o := &saveOp{}
	idx := b.push(o)
	b.stack = append(b.stack, saveInfo{
		opIndex:    idx,
		save:       o,
		layer:      b.currentLayer(),
		depthStart: b.depth,
		matrix:     b.matrix,
		clip:       b.clip,
	})
	b.acc.Save()
}

// SaveLayer opens a layer scope. bounds are used only when options has
// BoundsFromCaller; otherwise they are computed from the content, so a
// replayed list records the same layer again. Of the other flags only
// RendersWithAttributes is taken; the rest are computed when the layer is
// restored.
func (b *Builder) SaveLayer(bounds *Rect, options SaveLayerOptions, backdrop ImageFilter, backdropID int64) {
	o := &saveLayerOp{
		options:    options & RendersWithAttributes,
		backdrop:   backdrop,
		backdropID: backdropID,
	}
	if !options.Has(BoundsFromCaller) {
		bounds = nil
	}
	if bounds != nil {
		o.bounds = *bounds
		o.options = o.options.With(BoundsFromCaller)
	}
	idx := b.push(o)
	// Compositing the layer consumes one depth unit of its own.
	b.depth++

	info := saveInfo{
		opIndex:         idx,
		layerOp:         o,
		layer:           newLayerInfo(),
		matrix:          b.matrix,
		clip:            b.clip,
		layerCompatible: true,
		layerBlend:      BlendModeSrcOver,
		alphaOnly:       true,
	}
	if o.options.Has(RendersWithAttributes) {
		info.filter = b.attr.imageFilter
		info.layerCompatible = b.attr.opacityCompatible()
		info.layerBlend = b.attr.blendMode
		info.paintUnbounded = b.attr.paintsTransparentBlack()
		info.alphaOnly = b.attr.alphaOnly()
	}
	if backdrop != nil {
		// The backdrop reads and rewrites everything under the layer.
		info.layerCompatible = false
		area := b.clip
		if bounds != nil {
			area = area.Intersect(b.matrix.MapRect(*bounds))
		}
		b.acc.Accumulate(area, idx)
		b.currentLayer().add(area, area, false, info.layerBlend)
	}
	info.depthStart = b.depth
	b.stack = append(b.stack, info)
	b.acc.Save()
	if bounds != nil {
		b.clip = b.clip.Intersect(b.matrix.MapRect(*bounds))
	}
}

// Restore closes the innermost scope. Without an open scope it does nothing.
func (b *Builder) Restore() {
	if len(b.stack) == 0 {
		Logger().Debug("displaylist: unmatched restore ignored", "ops", len(b.ops))
		return
	}
	info := b.stack[len(b.stack)-1]
	b.stack = b.stack[:len(b.stack)-1]
	b.push(restoreOp{})
	b.matrix, b.clip = info.matrix, info.clip

	if info.layerOp == nil {
		info.save.totalContentDepth = b.depth - info.depthStart
		b.acc.Restore()
		return
	}
	b.restoreLayer(&info)
}

func (b *Builder) restoreLayer(info *saveInfo) {
	o, l := info.layerOp, info.layer
	o.totalContentDepth = b.depth - info.depthStart
	o.maxContentBlendMode = l.maxBlendMode
	if l.opacityCompatible && info.alphaOnly {
		o.options = o.options.With(CanDistributeOpacity)
	}
	if l.unbounded {
		o.options = o.options.With(ContentIsUnbounded)
	}
	if o.options.Has(BoundsFromCaller) {
		drawn := l.raw.Intersect(info.clip)
		if !drawn.IsEmpty() && !info.matrix.MapRect(o.bounds).ContainsRect(drawn) {
			o.options = o.options.With(ContentIsClipped)
		}
	} else if inv, ok := info.matrix.Invert(); ok {
		o.bounds = inv.MapRect(l.content)
	}

	device, raw := l.content, l.raw
	unbounded := info.paintUnbounded
	if f := info.filter; f != nil {
		clip := info.clip
		mapFn := func(r Rect) (Rect, bool) { return f.MapDeviceBounds(r, info.matrix) }
		if !b.acc.RestoreMapped(mapFn, &clip) {
			unbounded = true
		}
		if !device.IsEmpty() {
			mapped, ok := mapFn(device)
			if !ok {
				unbounded = true
			}
			device = mapped.Intersect(clip)
			raw, _ = mapFn(raw)
		}
		if f.ModifiesTransparentBlack() {
			unbounded = true
		}
	} else {
		b.acc.Restore()
	}

	parent := b.currentLayer()
	if unbounded {
		device, raw = info.clip, info.clip
		b.acc.Accumulate(device, info.opIndex)
		parent.unbounded = true
	}
	parent.add(device, raw, info.layerCompatible, info.layerBlend)
}

// Rendering

// geometry describes how a draw's local bounds react to stroking.
type geometry uint8

const (
	// geomStroked: the op is always stroked, whatever the draw style.
	geomStroked geometry = 1 << iota
	// geomIgnoresStyle: the op fills a region; stroke attributes never apply.
	geomIgnoresStyle
	// geomCaps: open contours may get caps.
	geomCaps
	// geomAcuteJoins: joins may be sharper than 90 degrees.
	geomAcuteJoins
	// geomButtIsSquare: butt caps still cover a square, as for points.
	geomButtIsSquare
)

// drawn describes how a rendering op touches pixels.
type drawn struct {
	local      Rect
	geom       geometry
	attrs      bool      // op renders with the current attributes
	compatible bool      // op-level opacity compatibility, before attributes
	unbounded  bool      // op fills the whole clip
	blend      BlendMode // used when attrs is false
}

func (b *Builder) draw(o op, d drawn) {
	idx := b.push(o)
	local, compatible, blend, unbounded := d.local, d.compatible, d.blend, d.unbounded
	hairline := false
	if d.attrs {
		compatible = compatible && b.attr.opacityCompatible()
		blend = b.attr.blendMode
		if b.attr.paintsTransparentBlack() {
			unbounded = true
		}
		if d.geom&geomIgnoresStyle == 0 && (d.geom&geomStroked != 0 || b.attr.style != DrawStyleFill) {
			local, hairline = b.strokePad(local, d.geom)
		}
		if b.attr.maskFilter != nil {
			local = b.attr.maskFilter.OutsetBounds(local)
		}
		if f := b.attr.imageFilter; f != nil {
			var ok bool
			if local, ok = f.MapLocalBounds(local); !ok {
				unbounded = true
			}
		}
	}

	var raw Rect
	switch {
	case unbounded:
		raw = b.clip
	case local == (Rect{}):
		// Nothing to draw: nil resource or degenerate geometry.
	default:
		raw = mapBounds(b.matrix, local)
		if hairline {
			raw = raw.Outset(1, 1)
		}
	}
	device := raw.Intersect(b.clip)

	layer := b.currentLayer()
	if unbounded {
		layer.unbounded = true
	}
	layer.add(device, raw, compatible, blend)
	b.acc.Accumulate(device, idx)
}

// strokePad outsets r by the stroke extent. It reports a hairline when the
// stroke width is zero; hairlines are padded in device space instead.
func (b *Builder) strokePad(r Rect, g geometry) (Rect, bool) {
	w := b.attr.strokeWidth
	if w <= 0 {
		return r, true
	}
	pad := w / 2
	if g&geomAcuteJoins != 0 && b.attr.strokeJoin == StrokeJoinMiter {
		pad *= math.Max(b.attr.strokeMiter, 1)
	}
	if g&geomCaps != 0 && (b.attr.strokeCap == StrokeCapSquare || g&geomButtIsSquare != 0) {
		pad *= math.Sqrt2
	}
	return r.Outset(pad, pad), false
}

// mapBounds is MapRect without the empty check, so zero-area geometry like
// a horizontal line still gets device bounds before stroke padding.
func mapBounds(m Matrix, r Rect) Rect {
	if !(r.MinX <= r.MaxX && r.MinY <= r.MaxY) {
		return Rect{}
	}
	out := Rect{MinX: math.Inf(1), MinY: math.Inf(1), MaxX: math.Inf(-1), MaxY: math.Inf(-1)}
	for _, c := range [4][2]float64{
		{r.MinX, r.MinY}, {r.MaxX, r.MinY}, {r.MaxX, r.MaxY}, {r.MinX, r.MaxY},
	} {
		x, y := m.MapPoint(c[0], c[1])
		out.MinX = math.Min(out.MinX, x)
		out.MinY = math.Min(out.MinY, y)
		out.MaxX = math.Max(out.MaxX, x)
		out.MaxY = math.Max(out.MaxY, y)
	}
	return out
}

// DrawColor records a fill of the clip with c blended by mode. The
// current attributes are not used.
func (b *Builder) DrawColor(c gg.RGBA, mode BlendMode) {
	b.draw(drawColorOp{color: c, mode: mode}, drawn{
		unbounded:  true,
		compatible: mode == BlendModeSrcOver,
		blend:      mode,
	})
}

// DrawPaint records a fill of the clip with the current attributes.
func (b *Builder) DrawPaint() {
	b.draw(drawPaintOp{}, drawn{geom: geomIgnoresStyle, attrs: true, compatible: true, unbounded: true})
}

// DrawLine records a line from p0 to p1. Lines are always stroked.
func (b *Builder) DrawLine(p0, p1 gg.Point) {
	b.draw(drawLineOp{p0: p0, p1: p1}, drawn{
		local:      NewRectFromPoints(p0.X, p0.Y, p1.X, p1.Y),
		geom:       geomStroked | geomCaps,
		attrs:      true,
		compatible: true,
	})
}

// DrawDashedLine records a stroked line dashed with the given on and off
// lengths.
func (b *Builder) DrawDashedLine(p0, p1 gg.Point, onLength, offLength float64) {
	b.draw(drawDashedLineOp{p0: p0, p1: p1, on: onLength, off: offLength}, drawn{
		local:      NewRectFromPoints(p0.X, p0.Y, p1.X, p1.Y),
		geom:       geomStroked | geomCaps,
		attrs:      true,
		compatible: true,
	})
}

// DrawRect records r.
func (b *Builder) DrawRect(r Rect) {
	b.draw(drawRectOp{rect: r}, drawn{local: r.Sort(), attrs: true, compatible: true})
}

// DrawOval records the oval inscribed in bounds.
func (b *Builder) DrawOval(bounds Rect) {
	b.draw(drawOvalOp{bounds: bounds}, drawn{local: bounds.Sort(), attrs: true, compatible: true})
}

// DrawCircle records a circle around center.
func (b *Builder) DrawCircle(center gg.Point, radius float64) {
	b.draw(drawCircleOp{center: center, radius: radius}, drawn{
		local:      LTRB(center.X-radius, center.Y-radius, center.X+radius, center.Y+radius),
		attrs:      true,
		compatible: true,
	})
}

// DrawRRect records a rounded rectangle.
func (b *Builder) DrawRRect(rr RRect) {
	b.draw(drawRRectOp{rrect: rr}, drawn{local: rr.Bounds(), attrs: true, compatible: true})
}

// DrawDRRect records the area between outer and inner.
func (b *Builder) DrawDRRect(outer, inner RRect) {
	b.draw(drawDRRectOp{outer: outer, inner: inner}, drawn{local: outer.Bounds(), attrs: true, compatible: true})
}

// DrawPath records a copy of path.
func (b *Builder) DrawPath(path *gg.Path) {
	if path != nil {
		path = path.Clone()
	}
	b.draw(drawPathOp{path: path}, drawn{
		local:      PathBounds(path),
		geom:       geomCaps | geomAcuteJoins,
		attrs:      true,
		compatible: true,
	})
}

// DrawArc records an arc of the oval in oval. With useCenter the arc is
// closed through the center as a wedge.
func (b *Builder) DrawArc(oval Rect, startDegrees, sweepDegrees float64, useCenter bool) {
	g := geomCaps
	if useCenter {
		g = geomAcuteJoins
	}
	b.draw(drawArcOp{oval: oval, start: startDegrees, sweep: sweepDegrees, useCenter: useCenter}, drawn{
		local:      oval.Sort(),
		geom:       g,
		attrs:      true,
		compatible: true,
	})
}

// DrawPoints is opacity compatible only for a single point or segment;
// longer runs may overlap themselves.
func (b *Builder) DrawPoints(mode PointMode, points []gg.Point) {
	points = append([]gg.Point(nil), points...)
	g := geomStroked | geomCaps
	switch mode {
	case PointModePoints:
		g |= geomButtIsSquare
	case PointModePolygon:
		g |= geomAcuteJoins
	}
	b.draw(drawPointsOp{mode: mode, points: points}, drawn{
		local:      pointBounds(points),
		geom:       g,
		attrs:      true,
		compatible: len(points) <= 1 || (mode != PointModePoints && len(points) == 2),
	})
}

// DrawVertices records a triangle mesh. mode blends the vertex colors with
// the paint.
func (b *Builder) DrawVertices(vertices *Vertices, mode BlendMode) {
	var local Rect
	if vertices != nil {
		local = vertices.Bounds()
	}
	b.draw(drawVerticesOp{vertices: vertices, mode: mode}, drawn{
		local: local,
		geom:  geomIgnoresStyle,
		attrs: true,
	})
}

// DrawImage records img with its top-left corner at p.
func (b *Builder) DrawImage(img image.Image, p gg.Point, sampling ImageSampling, renderWithAttributes bool) {
	var local Rect
	if img != nil {
		local = ImageBounds(img).Offset(p.X, p.Y)
	}
	b.draw(drawImageOp{img: img, p: p, sampling: sampling, withAttrs: renderWithAttributes},
		b.imageDraw(local, renderWithAttributes))
}

// DrawImageRect records the src part of img scaled into dst.
func (b *Builder) DrawImageRect(img image.Image, src, dst Rect, sampling ImageSampling,
	renderWithAttributes bool, constraint SrcRectConstraint) {
	var local Rect
	if img != nil {
		local = dst.Sort()
	}
	b.draw(drawImageRectOp{img: img, src: src, dst: dst, sampling: sampling,
		withAttrs: renderWithAttributes, constraint: constraint},
		b.imageDraw(local, renderWithAttributes))
}

// DrawImageNine records img as a nine-patch: center stretches to fill dst
// and the corners keep their size.
func (b *Builder) DrawImageNine(img image.Image, center, dst Rect, filter FilterMode, renderWithAttributes bool) {
	var local Rect
	if img != nil {
		local = dst.Sort()
	}
	b.draw(drawImageNineOp{img: img, center: center, dst: dst, filter: filter, withAttrs: renderWithAttributes},
		b.imageDraw(local, renderWithAttributes))
}

func (b *Builder) imageDraw(local Rect, withAttrs bool) drawn {
	return drawn{
		local:      local,
		geom:       geomIgnoresStyle,
		attrs:      withAttrs,
		compatible: true,
		blend:      BlendModeSrcOver,
	}
}

// DrawAtlas records one sprite from atlas per transform. colors, when set,
// are blended with each sprite using mode.
func (b *Builder) DrawAtlas(atlas image.Image, xforms []RSTransform, tex []Rect, colors []gg.RGBA,
	mode BlendMode, sampling ImageSampling, cull *Rect, renderWithAttributes bool) {
	o := drawAtlasOp{
		atlas:     atlas,
		xforms:    append([]RSTransform(nil), xforms...),
		tex:       append([]Rect(nil), tex...),
		colors:    append([]gg.RGBA(nil), colors...),
		mode:      mode,
		sampling:  sampling,
		withAttrs: renderWithAttributes,
	}
	var local Rect
	switch {
	case atlas == nil:
	case cull != nil:
		c := *cull
		o.cull = &c
		local = c
	default:
		for i, x := range o.xforms {
			if i < len(o.tex) {
				local = local.Union(x.MapRect(o.tex[i].Width(), o.tex[i].Height()))
			}
		}
	}
	// Sprites may overlap each other.
	b.draw(o, drawn{
		local: local,
		geom:  geomIgnoresStyle,
		attrs: renderWithAttributes,
		blend: BlendModeSrcOver,
	})
}

// DrawDisplayList records list as a single op. Depth grows by one plus the
// depth of list. With a spatial builder the child's rectangles are indexed
// individually under this op's index.
func (b *Builder) DrawDisplayList(list *DisplayList, opacity float64) {
	idx := b.push(drawDisplayListOp{list: list, opacity: opacity})
	if list == nil {
		return
	}
	b.depth += list.TotalDepth()

	layer := b.currentLayer()
	if list.rootIsUnbounded {
		layer.unbounded = true
		layer.add(b.clip, b.clip, list.CanApplyGroupOpacity(), list.maxRootBlendMode)
		b.acc.Accumulate(b.clip, idx)
		return
	}
	rects := []Rect{list.Bounds()}
	if b.opts.rtree && list.rtree != nil {
		rects = list.rtree.rects
	}
	var device, raw Rect
	for _, r := range rects {
		m := b.matrix.MapRect(r)
		c := m.Intersect(b.clip)
		b.acc.Accumulate(c, idx)
		device = device.Union(c)
		raw = raw.Union(m)
	}
	layer.add(device, raw, list.CanApplyGroupOpacity(), list.maxRootBlendMode)
}

// DrawTextBlob records blob with its origin at (x, y).
func (b *Builder) DrawTextBlob(blob *TextBlob, x, y float64) {
	b.draw(drawTextBlobOp{blob: blob, x: x, y: y}, drawn{
		local:      offsetNonEmpty(blob.Bounds(), x, y),
		geom:       geomAcuteJoins,
		attrs:      true,
		compatible: true,
	})
}

// DrawTextFrame records frame with its origin at (x, y).
func (b *Builder) DrawTextFrame(frame *TextFrame, x, y float64) {
	b.draw(drawTextFrameOp{frame: frame, x: x, y: y}, drawn{
		local:      offsetNonEmpty(frame.Bounds(), x, y),
		geom:       geomAcuteJoins,
		attrs:      true,
		compatible: true,
	})
}

func offsetNonEmpty(r Rect, dx, dy float64) Rect {
	if r.IsEmpty() {
		return Rect{}
	}
	return r.Offset(dx, dy)
}

// DrawShadow never renders with the current attributes. Ambient and spot
// shadows overlap, so the op is not opacity compatible.
func (b *Builder) DrawShadow(path *gg.Path, color gg.RGBA, elevation float64, transparentOccluder bool, devicePixelRatio float64) {
	if path != nil {
		path = path.Clone()
	}
	b.draw(drawShadowOp{path: path, color: color, elevation: elevation,
		transparent: transparentOccluder, dpr: devicePixelRatio}, drawn{
		local: ShadowBounds(path, elevation, devicePixelRatio),
		geom:  geomIgnoresStyle,
		blend: BlendModeSrcOver,
	})
}
