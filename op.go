package displaylist

import (
	"image"

	"github.com/gogpu/gg"
)

// OpType identifies a recorded operation. There is one OpType per Receiver
// method; the depth-reporting save overloads share OpSave and OpSaveLayer.
type OpType uint8

const (
	// Attributes
	OpSetAntiAlias OpType = iota
	OpSetDither
	OpSetInvertColors
	OpSetStrokeCap
	OpSetStrokeJoin
	OpSetStrokeWidth
	OpSetStrokeMiter
	OpSetDrawStyle
	OpSetColor
	OpSetBlendMode
	OpSetColorSource
	OpSetImageFilter
	OpSetColorFilter
	OpSetPathEffect
	OpSetMaskFilter

	// Save scopes
	OpSave
	OpSaveLayer
	OpRestore

	// Transforms
	OpTranslate
	OpScale
	OpRotate
	OpSkew
	OpTransform2DAffine
	OpTransformFullPerspective
	OpTransformReset

	// Clips
	OpClipRect
	OpClipOval
	OpClipRRect
	OpClipPath

	// Rendering
	OpDrawColor
	OpDrawPaint
	OpDrawLine
	OpDrawDashedLine
	OpDrawRect
	OpDrawOval
	OpDrawCircle
	OpDrawRRect
	OpDrawDRRect
	OpDrawPath
	OpDrawArc
	OpDrawPoints
	OpDrawVertices
	OpDrawImage
	OpDrawImageRect
	OpDrawImageNine
	OpDrawAtlas
	OpDrawDisplayList
	OpDrawTextBlob
	OpDrawTextFrame
	OpDrawShadow

	opTypeCount
)

var opTypeNames = [...]string{
	OpSetAntiAlias:             "SetAntiAlias",
	OpSetDither:                "SetDither",
	OpSetInvertColors:          "SetInvertColors",
	OpSetStrokeCap:             "SetStrokeCap",
	OpSetStrokeJoin:            "SetStrokeJoin",
	OpSetStrokeWidth:           "SetStrokeWidth",
	OpSetStrokeMiter:           "SetStrokeMiter",
	OpSetDrawStyle:             "SetDrawStyle",
	OpSetColor:                 "SetColor",
	OpSetBlendMode:             "SetBlendMode",
	OpSetColorSource:           "SetColorSource",
	OpSetImageFilter:           "SetImageFilter",
	OpSetColorFilter:           "SetColorFilter",
	OpSetPathEffect:            "SetPathEffect",
	OpSetMaskFilter:            "SetMaskFilter",
	OpSave:                     "Save",
	OpSaveLayer:                "SaveLayer",
	OpRestore:                  "Restore",
	OpTranslate:                "Translate",
	OpScale:                    "Scale",
	OpRotate:                   "Rotate",
	OpSkew:                     "Skew",
	OpTransform2DAffine:        "Transform2DAffine",
	OpTransformFullPerspective: "TransformFullPerspective",
	OpTransformReset:           "TransformReset",
	OpClipRect:                 "ClipRect",
	OpClipOval:                 "ClipOval",
	OpClipRRect:                "ClipRRect",
	OpClipPath:                 "ClipPath",
	OpDrawColor:                "DrawColor",
	OpDrawPaint:                "DrawPaint",
	OpDrawLine:                 "DrawLine",
	OpDrawDashedLine:           "DrawDashedLine",
	OpDrawRect:                 "DrawRect",
	OpDrawOval:                 "DrawOval",
	OpDrawCircle:               "DrawCircle",
	OpDrawRRect:                "DrawRRect",
	OpDrawDRRect:               "DrawDRRect",
	OpDrawPath:                 "DrawPath",
	OpDrawArc:                  "DrawArc",
	OpDrawPoints:               "DrawPoints",
	OpDrawVertices:             "DrawVertices",
	OpDrawImage:                "DrawImage",
	OpDrawImageRect:            "DrawImageRect",
	OpDrawImageNine:            "DrawImageNine",
	OpDrawAtlas:                "DrawAtlas",
	OpDrawDisplayList:          "DrawDisplayList",
	OpDrawTextBlob:             "DrawTextBlob",
	OpDrawTextFrame:            "DrawTextFrame",
	OpDrawShadow:               "DrawShadow",
}

// String returns the name of the Receiver method the op replays.
func (t OpType) String() string {
	if int(t) < len(opTypeNames) {
		return opTypeNames[t]
	}
	return "Unknown"
}

// IsRendering reports whether the op draws pixels. Rendering ops consume
// depth and are indexed by the spatial bounds index.
func (t OpType) IsRendering() bool {
	return t >= OpDrawColor && t < opTypeCount
}

// op is one recorded call. dr is r as a DepthReceiver, or nil.
type op interface {
	opType() OpType
	dispatch(r Receiver, dr DepthReceiver)
}

// Attribute ops

type setAntiAliasOp struct{ aa bool }

func (setAntiAliasOp) opType() OpType                       { return OpSetAntiAlias }
func (o setAntiAliasOp) dispatch(r Receiver, _ DepthReceiver) { r.SetAntiAlias(o.aa) }

type setDitherOp struct{ dither bool }

func (setDitherOp) opType() OpType                       { return OpSetDither }
func (o setDitherOp) dispatch(r Receiver, _ DepthReceiver) { r.SetDither(o.dither) }

type setInvertColorsOp struct{ invert bool }

func (setInvertColorsOp) opType() OpType                       { return OpSetInvertColors }
func (o setInvertColorsOp) dispatch(r Receiver, _ DepthReceiver) { r.SetInvertColors(o.invert) }

type setStrokeCapOp struct{ strokeCap StrokeCap }

func (setStrokeCapOp) opType() OpType                       { return OpSetStrokeCap }
func (o setStrokeCapOp) dispatch(r Receiver, _ DepthReceiver) { r.SetStrokeCap(o.strokeCap) }

type setStrokeJoinOp struct{ join StrokeJoin }

func (setStrokeJoinOp) opType() OpType                       { return OpSetStrokeJoin }
func (o setStrokeJoinOp) dispatch(r Receiver, _ DepthReceiver) { r.SetStrokeJoin(o.join) }

type setStrokeWidthOp struct{ width float64 }

func (setStrokeWidthOp) opType() OpType                       { return OpSetStrokeWidth }
func (o setStrokeWidthOp) dispatch(r Receiver, _ DepthReceiver) { r.SetStrokeWidth(o.width) }

type setStrokeMiterOp struct{ limit float64 }

func (setStrokeMiterOp) opType() OpType                       { return OpSetStrokeMiter }
func (o setStrokeMiterOp) dispatch(r Receiver, _ DepthReceiver) { r.SetStrokeMiter(o.limit) }

type setDrawStyleOp struct{ style DrawStyle }

func (setDrawStyleOp) opType() OpType                       { return OpSetDrawStyle }
func (o setDrawStyleOp) dispatch(r Receiver, _ DepthReceiver) { r.SetDrawStyle(o.style) }

type setColorOp struct{ color gg.RGBA }

func (setColorOp) opType() OpType                       { return OpSetColor }
func (o setColorOp) dispatch(r Receiver, _ DepthReceiver) { r.SetColor(o.color) }

type setBlendModeOp struct{ mode BlendMode }

func (setBlendModeOp) opType() OpType                       { return OpSetBlendMode }
func (o setBlendModeOp) dispatch(r Receiver, _ DepthReceiver) { r.SetBlendMode(o.mode) }

type setColorSourceOp struct{ source ColorSource }

func (setColorSourceOp) opType() OpType                       { return OpSetColorSource }
func (o setColorSourceOp) dispatch(r Receiver, _ DepthReceiver) { r.SetColorSource(o.source) }

type setImageFilterOp struct{ filter ImageFilter }

func (setImageFilterOp) opType() OpType                       { return OpSetImageFilter }
func (o setImageFilterOp) dispatch(r Receiver, _ DepthReceiver) { r.SetImageFilter(o.filter) }

type setColorFilterOp struct{ filter ColorFilter }

func (setColorFilterOp) opType() OpType                       { return OpSetColorFilter }
func (o setColorFilterOp) dispatch(r Receiver, _ DepthReceiver) { r.SetColorFilter(o.filter) }

type setPathEffectOp struct{ effect PathEffect }

func (setPathEffectOp) opType() OpType                       { return OpSetPathEffect }
func (o setPathEffectOp) dispatch(r Receiver, _ DepthReceiver) { r.SetPathEffect(o.effect) }

type setMaskFilterOp struct{ filter MaskFilter }

func (setMaskFilterOp) opType() OpType                       { return OpSetMaskFilter }
func (o setMaskFilterOp) dispatch(r Receiver, _ DepthReceiver) { r.SetMaskFilter(o.filter) }

// Save scope ops. Save and saveLayer records are pointers: the builder fills
// in their content totals when it sees the matching restore.

type saveOp struct {
	totalContentDepth uint32
}

func (*saveOp) opType() OpType { return OpSave }

func (o *saveOp) dispatch(r Receiver, dr DepthReceiver) {
	if dr != nil {
		dr.SaveWithDepth(o.totalContentDepth)
		return
	}
	r.Save()
}

type saveLayerOp struct {
	bounds              Rect
	options             SaveLayerOptions
	totalContentDepth   uint32
	maxContentBlendMode BlendMode
	backdrop            ImageFilter
	backdropID          int64
}

func (*saveLayerOp) opType() OpType { return OpSaveLayer }

func (o *saveLayerOp) dispatch(r Receiver, dr DepthReceiver) {
	bounds := o.bounds
	if dr != nil {
		dr.SaveLayerWithDepth(&bounds, o.options, o.totalContentDepth, o.maxContentBlendMode, o.backdrop, o.backdropID)
		return
	}
	r.SaveLayer(&bounds, o.options, o.backdrop, o.backdropID)
}

type restoreOp struct{}

func (restoreOp) opType() OpType                     { return OpRestore }
func (restoreOp) dispatch(r Receiver, _ DepthReceiver) { r.Restore() }

// Transform ops

type translateOp struct{ tx, ty float64 }

func (translateOp) opType() OpType                       { return OpTranslate }
func (o translateOp) dispatch(r Receiver, _ DepthReceiver) { r.Translate(o.tx, o.ty) }

type scaleOp struct{ sx, sy float64 }

func (scaleOp) opType() OpType                       { return OpScale }
func (o scaleOp) dispatch(r Receiver, _ DepthReceiver) { r.Scale(o.sx, o.sy) }

type rotateOp struct{ degrees float64 }

func (rotateOp) opType() OpType                       { return OpRotate }
func (o rotateOp) dispatch(r Receiver, _ DepthReceiver) { r.Rotate(o.degrees) }

type skewOp struct{ sx, sy float64 }

func (skewOp) opType() OpType                       { return OpSkew }
func (o skewOp) dispatch(r Receiver, _ DepthReceiver) { r.Skew(o.sx, o.sy) }

type transform2DAffineOp struct{ mxx, mxy, mxt, myx, myy, myt float64 }

func (transform2DAffineOp) opType() OpType { return OpTransform2DAffine }

func (o transform2DAffineOp) dispatch(r Receiver, _ DepthReceiver) {
	r.Transform2DAffine(o.mxx, o.mxy, o.mxt, o.myx, o.myy, o.myt)
}

type transformFullPerspectiveOp struct{ m Matrix }

func (transformFullPerspectiveOp) opType() OpType { return OpTransformFullPerspective }

func (o transformFullPerspectiveOp) dispatch(r Receiver, _ DepthReceiver) {
	r.TransformFullPerspective(o.m)
}

type transformResetOp struct{}

func (transformResetOp) opType() OpType                     { return OpTransformReset }
func (transformResetOp) dispatch(r Receiver, _ DepthReceiver) { r.TransformReset() }

// Clip ops

type clipRectOp struct {
	rect Rect
	op   ClipOp
	aa   bool
}

func (clipRectOp) opType() OpType                       { return OpClipRect }
func (o clipRectOp) dispatch(r Receiver, _ DepthReceiver) { r.ClipRect(o.rect, o.op, o.aa) }

type clipOvalOp struct {
	bounds Rect
	op     ClipOp
	aa     bool
}

func (clipOvalOp) opType() OpType                       { return OpClipOval }
func (o clipOvalOp) dispatch(r Receiver, _ DepthReceiver) { r.ClipOval(o.bounds, o.op, o.aa) }

type clipRRectOp struct {
	rrect RRect
	op    ClipOp
	aa    bool
}

func (clipRRectOp) opType() OpType                       { return OpClipRRect }
func (o clipRRectOp) dispatch(r Receiver, _ DepthReceiver) { r.ClipRRect(o.rrect, o.op, o.aa) }

type clipPathOp struct {
	path *gg.Path
	op   ClipOp
	aa   bool
}

func (clipPathOp) opType() OpType                       { return OpClipPath }
func (o clipPathOp) dispatch(r Receiver, _ DepthReceiver) { r.ClipPath(o.path, o.op, o.aa) }

// Rendering ops

type drawColorOp struct {
	color gg.RGBA
	mode  BlendMode
}

func (drawColorOp) opType() OpType                       { return OpDrawColor }
func (o drawColorOp) dispatch(r Receiver, _ DepthReceiver) { r.DrawColor(o.color, o.mode) }

type drawPaintOp struct{}

func (drawPaintOp) opType() OpType                     { return OpDrawPaint }
func (drawPaintOp) dispatch(r Receiver, _ DepthReceiver) { r.DrawPaint() }

type drawLineOp struct{ p0, p1 gg.Point }

func (drawLineOp) opType() OpType                       { return OpDrawLine }
func (o drawLineOp) dispatch(r Receiver, _ DepthReceiver) { r.DrawLine(o.p0, o.p1) }

type drawDashedLineOp struct {
	p0, p1  gg.Point
	on, off float64
}

func (drawDashedLineOp) opType() OpType { return OpDrawDashedLine }

func (o drawDashedLineOp) dispatch(r Receiver, _ DepthReceiver) {
	r.DrawDashedLine(o.p0, o.p1, o.on, o.off)
}

type drawRectOp struct{ rect Rect }

func (drawRectOp) opType() OpType                       { return OpDrawRect }
func (o drawRectOp) dispatch(r Receiver, _ DepthReceiver) { r.DrawRect(o.rect) }

type drawOvalOp struct{ bounds Rect }

func (drawOvalOp) opType() OpType                       { return OpDrawOval }
func (o drawOvalOp) dispatch(r Receiver, _ DepthReceiver) { r.DrawOval(o.bounds) }

type drawCircleOp struct {
	center gg.Point
	radius float64
}

func (drawCircleOp) opType() OpType                       { return OpDrawCircle }
func (o drawCircleOp) dispatch(r Receiver, _ DepthReceiver) { r.DrawCircle(o.center, o.radius) }

type drawRRectOp struct{ rrect RRect }

func (drawRRectOp) opType() OpType                       { return OpDrawRRect }
func (o drawRRectOp) dispatch(r Receiver, _ DepthReceiver) { r.DrawRRect(o.rrect) }

type drawDRRectOp struct{ outer, inner RRect }

func (drawDRRectOp) opType() OpType                       { return OpDrawDRRect }
func (o drawDRRectOp) dispatch(r Receiver, _ DepthReceiver) { r.DrawDRRect(o.outer, o.inner) }

type drawPathOp struct{ path *gg.Path }

func (drawPathOp) opType() OpType                       { return OpDrawPath }
func (o drawPathOp) dispatch(r Receiver, _ DepthReceiver) { r.DrawPath(o.path) }

type drawArcOp struct {
	oval         Rect
	start, sweep float64
	useCenter    bool
}

func (drawArcOp) opType() OpType { return OpDrawArc }

func (o drawArcOp) dispatch(r Receiver, _ DepthReceiver) {
	r.DrawArc(o.oval, o.start, o.sweep, o.useCenter)
}

type drawPointsOp struct {
	mode   PointMode
	points []gg.Point
}

func (drawPointsOp) opType() OpType                       { return OpDrawPoints }
func (o drawPointsOp) dispatch(r Receiver, _ DepthReceiver) { r.DrawPoints(o.mode, o.points) }

type drawVerticesOp struct {
	vertices *Vertices
	mode     BlendMode
}

func (drawVerticesOp) opType() OpType                       { return OpDrawVertices }
func (o drawVerticesOp) dispatch(r Receiver, _ DepthReceiver) { r.DrawVertices(o.vertices, o.mode) }

type drawImageOp struct {
	img       image.Image
	p         gg.Point
	sampling  ImageSampling
	withAttrs bool
}

func (drawImageOp) opType() OpType { return OpDrawImage }

func (o drawImageOp) dispatch(r Receiver, _ DepthReceiver) {
	r.DrawImage(o.img, o.p, o.sampling, o.withAttrs)
}

type drawImageRectOp struct {
	img        image.Image
	src, dst   Rect
	sampling   ImageSampling
	withAttrs  bool
	constraint SrcRectConstraint
}

func (drawImageRectOp) opType() OpType { return OpDrawImageRect }

func (o drawImageRectOp) dispatch(r Receiver, _ DepthReceiver) {
	r.DrawImageRect(o.img, o.src, o.dst, o.sampling, o.withAttrs, o.constraint)
}

type drawImageNineOp struct {
	img         image.Image
	center, dst Rect
	filter      FilterMode
	withAttrs   bool
}

func (drawImageNineOp) opType() OpType { return OpDrawImageNine }

func (o drawImageNineOp) dispatch(r Receiver, _ DepthReceiver) {
	r.DrawImageNine(o.img, o.center, o.dst, o.filter, o.withAttrs)
}

type drawAtlasOp struct {
	atlas     image.Image
	xforms    []RSTransform
	tex       []Rect
	colors    []gg.RGBA
	mode      BlendMode
	sampling  ImageSampling
	cull      *Rect
	withAttrs bool
}

func (drawAtlasOp) opType() OpType { return OpDrawAtlas }

func (o drawAtlasOp) dispatch(r Receiver, _ DepthReceiver) {
	var cull *Rect
	if o.cull != nil {
		c := *o.cull
		cull = &c
	}
	r.DrawAtlas(o.atlas, o.xforms, o.tex, o.colors, o.mode, o.sampling, cull, o.withAttrs)
}

type drawDisplayListOp struct {
	list    *DisplayList
	opacity float64
}

func (drawDisplayListOp) opType() OpType { return OpDrawDisplayList }

func (o drawDisplayListOp) dispatch(r Receiver, _ DepthReceiver) {
	r.DrawDisplayList(o.list, o.opacity)
}

type drawTextBlobOp struct {
	blob *TextBlob
	x, y float64
}

func (drawTextBlobOp) opType() OpType                       { return OpDrawTextBlob }
func (o drawTextBlobOp) dispatch(r Receiver, _ DepthReceiver) { r.DrawTextBlob(o.blob, o.x, o.y) }

type drawTextFrameOp struct {
	frame *TextFrame
	x, y  float64
}

func (drawTextFrameOp) opType() OpType                       { return OpDrawTextFrame }
func (o drawTextFrameOp) dispatch(r Receiver, _ DepthReceiver) { r.DrawTextFrame(o.frame, o.x, o.y) }

type drawShadowOp struct {
	path        *gg.Path
	color       gg.RGBA
	elevation   float64
	transparent bool
	dpr         float64
}

func (drawShadowOp) opType() OpType { return OpDrawShadow }

func (o drawShadowOp) dispatch(r Receiver, _ DepthReceiver) {
	r.DrawShadow(o.path, o.color, o.elevation, o.transparent, o.dpr)
}
