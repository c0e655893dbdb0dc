package raster

import (
	"image"
	"math"

	"github.com/gogpu/displaylist"
	"github.com/gogpu/displaylist/backend"
	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
)

// rasterize renders the coverage of path under m into c.cover, filling,
// stroking or both as p asks.
func (c *Canvas) rasterize(path *gg.Path, m displaylist.Matrix, p *backend.Paint, rule gg.FillRule) {
	c.cover.Clear(gg.Transparent)
	if m.HasPerspective() {
		displaylist.Logger().Debug("raster: perspective dropped from transform")
	}
	ctx := c.coverCtx
	ctx.SetTransform(m.Affine())
	ctx.SetRGBA(1, 1, 1, 1)
	if p.IsFilled() {
		replay(ctx, path)
		ctx.SetFillRule(rule)
		if err := ctx.Fill(); err != nil {
			displaylist.Logger().Debug("raster: fill failed", "err", err)
		}
	}
	if p.IsStroked() {
		replay(ctx, path)
		width := p.StrokeWidth
		if width <= 0 {
			// Hairline: one device pixel.
			width = 1 / max(m.MaxScale(), 1e-9)
		}
		ctx.SetLineWidth(width)
		ctx.SetLineCap(lineCap(p.StrokeCap))
		ctx.SetLineJoin(lineJoin(p.StrokeJoin))
		ctx.SetMiterLimit(p.StrokeMiter)
		if dash, ok := p.PathEffect.(*displaylist.DashPathEffect); ok && len(dash.Intervals) >= 2 {
			ctx.SetDash(dash.Intervals...)
			ctx.SetDashOffset(dash.Phase)
		} else {
			ctx.ClearDash()
		}
		if err := ctx.Stroke(); err != nil {
			displaylist.Logger().Debug("raster: stroke failed", "err", err)
		}
	}
}

// replay appends path to the context path. The context applies its
// transform to every point.
func replay(ctx *gg.Context, path *gg.Path) {
	ctx.ClearPath()
	for _, e := range path.Elements() {
		switch e := e.(type) {
		case gg.MoveTo:
			ctx.MoveTo(e.Point.X, e.Point.Y)
		case gg.LineTo:
			ctx.LineTo(e.Point.X, e.Point.Y)
		case gg.QuadTo:
			ctx.QuadraticTo(e.Control.X, e.Control.Y, e.Point.X, e.Point.Y)
		case gg.CubicTo:
			ctx.CubicTo(e.Control1.X, e.Control1.Y, e.Control2.X, e.Control2.Y, e.Point.X, e.Point.Y)
		case gg.Close:
			ctx.ClosePath()
		}
	}
}

// strokeOutset returns how far a stroke with p reaches beyond the path, in
// local units.
func strokeOutset(p *backend.Paint) float64 {
	if !p.IsStroked() {
		return 0
	}
	half := p.StrokeWidth / 2
	if p.StrokeJoin == displaylist.StrokeJoinMiter {
		return half * max(p.StrokeMiter, math.Sqrt2)
	}
	return half * math.Sqrt2
}

// drawArea returns the pixels a draw of local bounds with p can touch.
func (c *Canvas) drawArea(s *state, local displaylist.Rect, p *backend.Paint) image.Rectangle {
	local = local.Outset(strokeOutset(p), strokeOutset(p))
	if p.MaskFilter != nil {
		local = p.MaskFilter.OutsetBounds(local)
	}
	if p.ImageFilter != nil {
		mapped, ok := p.ImageFilter.MapLocalBounds(local)
		if !ok {
			return s.clipBounds
		}
		local = mapped
	}
	return c.deviceArea(s.matrix.MapRect(local), 2).Intersect(s.clipBounds)
}

// drawGeometry draws path, whose local bounds are local, with p.
func (c *Canvas) drawGeometry(path *gg.Path, local displaylist.Rect, p *backend.Paint, rule gg.FillRule) {
	p = p.OrDefault()
	s := c.top()
	area := c.drawArea(s, local, p)
	if area.Empty() {
		return
	}
	c.rasterize(path, s.matrix, p, rule)
	c.finish(s, area, p, paintShader(p, s.matrix))
}

// finish applies the paint's mask and image filters to the coverage in
// c.cover and composites src through it.
func (c *Canvas) finish(s *state, area image.Rectangle, p *backend.Paint, src shader) {
	applyMaskFilter(c.cover, area, p.MaskFilter, s.matrix)
	applyImageFilter(c.cover, area, p.ImageFilter, s.matrix)
	c.composite(s, area, c.cover, src, p.BlendMode, p.AntiAlias)
}

// DrawPaint fills the clip with paint.
func (c *Canvas) DrawPaint(paint *backend.Paint) {
	p := paint.OrDefault()
	s := c.top()
	if p.ImageFilter != nil {
		displaylist.Logger().Debug("raster: image filter ignored on DrawPaint")
	}
	c.composite(s, s.clipBounds, nil, paintShader(p, s.matrix), p.BlendMode, true)
}

// DrawColor fills the clip with col blended by mode.
func (c *Canvas) DrawColor(col gg.RGBA, mode displaylist.BlendMode) {
	s := c.top()
	c.composite(s, s.clipBounds, nil, solid(premul(col)), mode, true)
}

// DrawLine strokes a line whatever the paint style.
func (c *Canvas) DrawLine(p0, p1 gg.Point, paint *backend.Paint) {
	p := *paint.OrDefault()
	p.Style = displaylist.DrawStyleStroke
	path := gg.NewPath()
	path.MoveTo(p0.X, p0.Y)
	path.LineTo(p1.X, p1.Y)
	c.drawGeometry(path, displaylist.NewRectFromPoints(p0.X, p0.Y, p1.X, p1.Y).Outset(0.5, 0.5), &p, gg.FillRuleNonZero)
}

// DrawRect draws r.
func (c *Canvas) DrawRect(r displaylist.Rect, paint *backend.Paint) {
	c.drawGeometry(r.Path(), r, paint, gg.FillRuleNonZero)
}

// DrawOval draws the oval inscribed in bounds.
func (c *Canvas) DrawOval(bounds displaylist.Rect, paint *backend.Paint) {
	c.drawGeometry(bounds.OvalPath(), bounds, paint, gg.FillRuleNonZero)
}

// DrawCircle draws a circle as an oval.
func (c *Canvas) DrawCircle(center gg.Point, radius float64, paint *backend.Paint) {
	r := displaylist.LTRB(center.X-radius, center.Y-radius, center.X+radius, center.Y+radius)
	c.DrawOval(r, paint)
}

// DrawRRect draws rr.
func (c *Canvas) DrawRRect(rr displaylist.RRect, paint *backend.Paint) {
	c.drawGeometry(rr.Path(), rr.Rect, paint, gg.FillRuleNonZero)
}

// DrawDRRect fills between outer and inner with the even-odd rule.
func (c *Canvas) DrawDRRect(outer, inner displaylist.RRect, paint *backend.Paint) {
	c.drawGeometry(displaylist.DRRectPath(outer, inner), outer.Rect, paint, gg.FillRuleEvenOdd)
}

// DrawPath draws path. A nil path draws nothing.
func (c *Canvas) DrawPath(path *gg.Path, paint *backend.Paint) {
	if path == nil {
		return
	}
	c.drawGeometry(path, displaylist.PathBounds(path), paint, gg.FillRuleNonZero)
}

// DrawArc draws an arc of oval.
func (c *Canvas) DrawArc(oval displaylist.Rect, startDegrees, sweepDegrees float64, useCenter bool, paint *backend.Paint) {
	path := displaylist.ArcPath(oval, startDegrees, sweepDegrees, useCenter)
	c.drawGeometry(path, oval, paint, gg.FillRuleNonZero)
}

// DrawPoints draws dots sized by the stroke width in points mode, and
// stroked segments or a polyline otherwise.
func (c *Canvas) DrawPoints(mode displaylist.PointMode, points []gg.Point, paint *backend.Paint) {
	if len(points) == 0 {
		return
	}
	p := *paint.OrDefault()
	path := gg.NewPath()
	switch mode {
	case displaylist.PointModePoints:
		r := max(p.StrokeWidth, 1) / 2
		for _, pt := range points {
			dot := displaylist.LTRB(pt.X-r, pt.Y-r, pt.X+r, pt.Y+r)
			if p.StrokeCap == displaylist.StrokeCapRound {
				path.Ellipse(pt.X, pt.Y, r, r)
			} else {
				path.Rectangle(dot.MinX, dot.MinY, dot.Width(), dot.Height())
			}
		}
		p.Style = displaylist.DrawStyleFill
	case displaylist.PointModeLines:
		for i := 0; i+1 < len(points); i += 2 {
			path.MoveTo(points[i].X, points[i].Y)
			path.LineTo(points[i+1].X, points[i+1].Y)
		}
		p.Style = displaylist.DrawStyleStroke
	default:
		path.MoveTo(points[0].X, points[0].Y)
		for _, pt := range points[1:] {
			path.LineTo(pt.X, pt.Y)
		}
		p.Style = displaylist.DrawStyleStroke
	}
	bounds := displaylist.PathBounds(path).Outset(max(p.StrokeWidth, 1), max(p.StrokeWidth, 1))
	c.drawGeometry(path, bounds, &p, gg.FillRuleNonZero)
}

// DrawVertices fills each triangle. Vertex colors are interpolated and, when
// the paint has a color source, combined with it using mode.
func (c *Canvas) DrawVertices(v *displaylist.Vertices, mode displaylist.BlendMode, paint *backend.Paint) {
	if v == nil {
		return
	}
	p := *paint.OrDefault()
	p.Style = displaylist.DrawStyleFill
	s := c.top()
	inv, ok := s.matrix.Invert()
	if !ok {
		return
	}
	base := paintShader(&p, s.matrix)
	pos, colors := v.Positions(), v.Colors()
	for _, tri := range triangleIndices(v) {
		a, b, d := pos[tri[0]], pos[tri[1]], pos[tri[2]]
		path := gg.NewPath()
		path.MoveTo(a.X, a.Y)
		path.LineTo(b.X, b.Y)
		path.LineTo(d.X, d.Y)
		path.Close()
		local := displaylist.PathBounds(path)
		area := c.drawArea(s, local, &p)
		if area.Empty() {
			continue
		}
		c.rasterize(path, s.matrix, &p, gg.FillRuleNonZero)
		src := base
		if len(colors) == len(pos) {
			ca, cb, cd := premul(colors[tri[0]]), premul(colors[tri[1]]), premul(colors[tri[2]])
			alpha := p.Color.A
			shaded := p.ColorSource != nil
			src = func(x, y int) rgba {
				lx, ly := inv.MapPoint(float64(x)+0.5, float64(y)+0.5)
				wa, wb, wd := barycentric(gg.Pt(lx, ly), a, b, d)
				vc := rgba{
					ca.r*wa + cb.r*wb + cd.r*wd,
					ca.g*wa + cb.g*wb + cd.g*wd,
					ca.b*wa + cb.b*wb + cd.b*wd,
					ca.a*wa + cb.a*wb + cd.a*wd,
				}
				if shaded {
					return blend(mode, base(x, y), vc)
				}
				return vc.scale(alpha)
			}
		}
		c.finish(s, area, &p, src)
	}
}

// triangleIndices resolves the mesh into vertex index triples.
func triangleIndices(v *displaylist.Vertices) [][3]int {
	at := func(i int) int {
		if idx := v.Indices(); idx != nil {
			return int(idx[i])
		}
		return i
	}
	n := len(v.Positions())
	if idx := v.Indices(); idx != nil {
		n = len(idx)
	}
	var tris [][3]int
	switch v.Mode() {
	case displaylist.VertexModeTriangleStrip:
		for i := 0; i+2 < n; i++ {
			tris = append(tris, [3]int{at(i), at(i + 1), at(i + 2)})
		}
	case displaylist.VertexModeTriangleFan:
		for i := 1; i+1 < n; i++ {
			tris = append(tris, [3]int{at(0), at(i), at(i + 1)})
		}
	default:
		for i := 0; i+2 < n; i += 3 {
			tris = append(tris, [3]int{at(i), at(i + 1), at(i + 2)})
		}
	}
	return tris
}

func barycentric(p, a, b, c gg.Point) (float64, float64, float64) {
	det := (b.Y-c.Y)*(a.X-c.X) + (c.X-b.X)*(a.Y-c.Y)
	if det == 0 {
		return 1, 0, 0
	}
	wa := ((b.Y-c.Y)*(p.X-c.X) + (c.X-b.X)*(p.Y-c.Y)) / det
	wb := ((c.Y-a.Y)*(p.X-c.X) + (a.X-c.X)*(p.Y-c.Y)) / det
	return wa, wb, 1 - wa - wb
}

// texture is an image region placed on the canvas.
type texture struct {
	img    image.Image
	src    image.Rectangle    // sampled part of img
	toDev  displaylist.Matrix // img pixel space to device
	quad   displaylist.Rect   // destination, in the space of m
	m      displaylist.Matrix
	interp xdraw.Interpolator
}

// drawTexture resamples the texture into c.content and composites it through
// the coverage of its destination quad. tint, when set, post-processes each
// source pixel.
func (c *Canvas) drawTexture(t texture, p *backend.Paint, tint func(rgba) rgba) {
	s := c.top()
	area := c.deviceArea(t.m.MapRect(t.quad), 2).Intersect(s.clipBounds)
	src := t.src.Intersect(t.img.Bounds())
	if area.Empty() || src.Empty() {
		return
	}
	c.content.Clear(gg.Transparent)
	a := t.toDev.Affine()
	t.interp.Transform(nrgba(c.content), f64.Aff3{a.A, a.B, a.C, a.D, a.E, a.F}, t.img, src, xdraw.Src, nil)

	fill := backend.NewPaint()
	c.rasterize(t.quad.Path(), t.m, &fill, gg.FillRuleNonZero)

	data := c.content.Data()
	alpha := p.Color.A
	filter := p.ColorFilter
	sh := func(x, y int) rgba {
		i := (y*c.width + x) * 4
		px := load(data[i : i+4])
		if tint != nil {
			px = tint(px)
		}
		px = px.scale(alpha)
		if filter != nil {
			px = premul(applyColorFilter(filter, px.straight()))
		}
		return px
	}
	c.finish(s, area, p, sh)
}

// DrawImage draws img at its natural size with the top-left corner at pt.
func (c *Canvas) DrawImage(img image.Image, pt gg.Point, sampling displaylist.ImageSampling, paint *backend.Paint) {
	if img == nil {
		return
	}
	b := img.Bounds()
	dst := displaylist.NewRect(pt.X, pt.Y, float64(b.Dx()), float64(b.Dy()))
	c.DrawImageRect(img, displaylist.ImageBounds(img), dst, sampling, displaylist.SrcRectConstraintFast, paint)
}

// DrawImageRect draws the src part of img scaled into dst. Sampling never
// reads outside src, so both constraints behave as strict.
func (c *Canvas) DrawImageRect(img image.Image, src, dst displaylist.Rect, sampling displaylist.ImageSampling,
	_ displaylist.SrcRectConstraint, paint *backend.Paint) {
	if img == nil || src.IsEmpty() || dst.IsEmpty() {
		return
	}
	c.drawImageRect(img, src, dst, interpolator(sampling), paint.OrDefault())
}

func (c *Canvas) drawImageRect(img image.Image, src, dst displaylist.Rect, interp xdraw.Interpolator, p *backend.Paint) {
	m := c.top().matrix
	toDev := m.Multiply(displaylist.Translate(dst.MinX, dst.MinY)).
		Multiply(displaylist.Scale(dst.Width()/src.Width(), dst.Height()/src.Height())).
		Multiply(displaylist.Translate(-src.MinX, -src.MinY))
	c.drawTexture(texture{
		img:    img,
		src:    pixelRect(src),
		toDev:  toDev,
		quad:   dst,
		m:      m,
		interp: interp,
	}, p, nil)
}

func pixelRect(r displaylist.Rect) image.Rectangle {
	return image.Rect(int(math.Floor(r.MinX)), int(math.Floor(r.MinY)), int(math.Ceil(r.MaxX)), int(math.Ceil(r.MaxY)))
}

// DrawImageNine stretches the middle of img across dst and keeps the corners
// at their natural size, shrinking them when dst is too small.
func (c *Canvas) DrawImageNine(img image.Image, center, dst displaylist.Rect, filter displaylist.FilterMode,
	paint *backend.Paint) {
	if img == nil || dst.IsEmpty() {
		return
	}
	b := displaylist.ImageBounds(img)
	center = center.Intersect(b)
	sx := [4]float64{b.MinX, center.MinX, center.MaxX, b.MaxX}
	sy := [4]float64{b.MinY, center.MinY, center.MaxY, b.MaxY}
	dx := nineStops(sx, dst.MinX, dst.MaxX)
	dy := nineStops(sy, dst.MinY, dst.MaxY)
	p := paint.OrDefault()
	interp := filterInterpolator(filter)
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			src := displaylist.LTRB(sx[col], sy[row], sx[col+1], sy[row+1])
			d := displaylist.LTRB(dx[col], dy[row], dx[col+1], dy[row+1])
			if src.IsEmpty() || d.IsEmpty() {
				continue
			}
			c.drawImageRect(img, src, d, interp, p)
		}
	}
}

// nineStops places the four source stops of one axis inside [lo, hi].
func nineStops(s [4]float64, lo, hi float64) [4]float64 {
	left, right := s[1]-s[0], s[3]-s[2]
	if fixed := left + right; fixed > hi-lo && fixed > 0 {
		k := (hi - lo) / fixed
		left, right = left*k, right*k
	}
	return [4]float64{lo, lo + left, hi - right, hi}
}

// DrawAtlas draws one sprite per transform. With colors, each sprite is
// blended onto its color with mode.
func (c *Canvas) DrawAtlas(atlas image.Image, xforms []displaylist.RSTransform, tex []displaylist.Rect,
	colors []gg.RGBA, mode displaylist.BlendMode, sampling displaylist.ImageSampling, cull *displaylist.Rect,
	paint *backend.Paint) {
	if atlas == nil {
		return
	}
	s := c.top()
	if cull != nil && c.deviceArea(s.matrix.MapRect(*cull), 1).Intersect(s.clipBounds).Empty() {
		return
	}
	p := paint.OrDefault()
	interp := interpolator(sampling)
	for i := 0; i < len(xforms) && i < len(tex); i++ {
		t := tex[i]
		if t.IsEmpty() {
			continue
		}
		m := s.matrix.Multiply(displaylist.FromAffine(xforms[i].Affine()))
		var tint func(rgba) rgba
		if i < len(colors) {
			col := premul(colors[i])
			tint = func(px rgba) rgba { return blend(mode, px, col) }
		}
		c.drawTexture(texture{
			img:    atlas,
			src:    pixelRect(t),
			toDev:  m.Multiply(displaylist.Translate(-t.MinX, -t.MinY)),
			quad:   displaylist.LTRB(0, 0, t.Width(), t.Height()),
			m:      m,
			interp: interp,
		}, p, tint)
	}
}

// DrawTextBlob draws blob with its baseline origin at (x, y). gg draws text
// unscaled at the mapped origin, so only the translation of the transform
// applies.
func (c *Canvas) DrawTextBlob(blob *displaylist.TextBlob, x, y float64, paint *backend.Paint) {
	if blob == nil || blob.Face == nil {
		return
	}
	c.drawText(blob.Text, blob.Face, x, y, blob.Bounds(), paint)
}

// DrawTextFrame draws the text of a shaped frame with its face.
func (c *Canvas) DrawTextFrame(frame *displaylist.TextFrame, x, y float64, paint *backend.Paint) {
	if frame == nil || frame.Face == nil {
		return
	}
	c.drawText(frame.Text, frame.Face, x, y, frame.Bounds(), paint)
}

func (c *Canvas) drawText(s string, face text.Face, x, y float64, bounds displaylist.Rect, paint *backend.Paint) {
	p := paint.OrDefault()
	st := c.top()
	if m := st.matrix; m[0] != 1 || m[1] != 0 || m[4] != 0 || m[5] != 1 {
		displaylist.Logger().Debug("raster: text drawn without scale or rotation")
	}
	area := st.clipBounds
	if !bounds.IsEmpty() {
		area = c.drawArea(st, bounds.Offset(x, y), p).Intersect(st.clipBounds)
	}
	if area.Empty() {
		return
	}
	ox, oy := st.matrix.MapPoint(x, y)
	c.cover.Clear(gg.Transparent)
	c.coverCtx.SetFont(face)
	c.coverCtx.SetRGBA(1, 1, 1, 1)
	c.coverCtx.DrawString(s, ox, oy)
	c.finish(st, area, p, paintShader(p, st.matrix))
}
