package displaylist

import (
	"image"
	"strings"

	"github.com/gogpu/gg"
)

// SaveLayerOptions are flags describing a saveLayer.
type SaveLayerOptions uint8

const (
	// RendersWithAttributes applies the current attributes (alpha, blend
	// mode, filters) when the layer is composited.
	RendersWithAttributes SaveLayerOptions = 1 << iota

	// CanDistributeOpacity means the layer content is group-opacity
	// compatible: applying the layer alpha to each child draw gives the same
	// pixels as compositing the layer with that alpha.
	CanDistributeOpacity

	// BoundsFromCaller means the bounds were supplied by the caller rather
	// than computed from the content.
	BoundsFromCaller

	// ContentIsClipped means the caller's bounds cut off part of the content,
	// so the bounds act as a clip and the layer cannot be skipped.
	ContentIsClipped

	// ContentIsUnbounded means some content (a filter or blend mode that
	// paints transparent black) reaches the whole clip.
	ContentIsUnbounded
)

// NoAttributes is the zero set of options.
const NoAttributes SaveLayerOptions = 0

// Has reports whether every flag in f is set.
func (o SaveLayerOptions) Has(f SaveLayerOptions) bool { return o&f == f }

// With returns o with the flags in f set.
func (o SaveLayerOptions) With(f SaveLayerOptions) SaveLayerOptions { return o | f }

// Without returns o with the flags in f cleared.
func (o SaveLayerOptions) Without(f SaveLayerOptions) SaveLayerOptions { return o &^ f }

var saveLayerOptionNames = [...]string{
	"RendersWithAttributes",
	"CanDistributeOpacity",
	"BoundsFromCaller",
	"ContentIsClipped",
	"ContentIsUnbounded",
}

// String lists the set flags joined by "|".
func (o SaveLayerOptions) String() string {
	if o == 0 {
		return "NoAttributes"
	}
	var names []string
	for i, name := range saveLayerOptionNames {
		if o&(1<<i) != 0 {
			names = append(names, name)
		}
	}
	return strings.Join(names, "|")
}

// AttributeReceiver receives attribute changes. Attributes persist for the
// rest of the list; Save and Restore never change them.
type AttributeReceiver interface {
	SetAntiAlias(aa bool)
	SetDither(dither bool)
	SetInvertColors(invert bool)
	SetStrokeCap(c StrokeCap)
	SetStrokeJoin(j StrokeJoin)
	SetStrokeWidth(width float64)
	SetStrokeMiter(limit float64)
	SetDrawStyle(style DrawStyle)
	SetColor(c gg.RGBA)
	SetBlendMode(mode BlendMode)
	SetColorSource(source ColorSource)
	SetImageFilter(filter ImageFilter)
	SetColorFilter(filter ColorFilter)
	SetPathEffect(effect PathEffect)
	SetMaskFilter(filter MaskFilter)
}

// TransformReceiver receives transform changes. Each call concatenates onto
// the current transform, which is saved and restored with the canvas state.
// TransformReset returns to the transform in effect when playback began.
type TransformReceiver interface {
	Translate(tx, ty float64)
	Scale(sx, sy float64)
	Rotate(degrees float64)
	Skew(sx, sy float64)
	Transform2DAffine(mxx, mxy, mxt, myx, myy, myt float64)
	TransformFullPerspective(m Matrix)
	TransformReset()
}

// ClipReceiver receives clip changes, scoped by Save and Restore.
type ClipReceiver interface {
	ClipRect(r Rect, op ClipOp, antiAlias bool)
	ClipOval(bounds Rect, op ClipOp, antiAlias bool)
	ClipRRect(rr RRect, op ClipOp, antiAlias bool)
	ClipPath(path *gg.Path, op ClipOp, antiAlias bool)
}

// SaveReceiver receives save scopes.
//
// SaveLayer bounds may be nil when the caller did not specify any. A
// recorded list always replays the bounds it computed; BoundsFromCaller in
// options tells the two cases apart, and receivers must not treat bounds as
// caller supplied without it. backdropID is 0 when the backdrop is not
// shared.
type SaveReceiver interface {
	Save()
	SaveLayer(bounds *Rect, options SaveLayerOptions, backdrop ImageFilter, backdropID int64)
	Restore()
}

// DrawReceiver receives rendering operations. Each draw uses the current
// attributes unless it takes a renderWithAttributes flag that is false.
type DrawReceiver interface {
	DrawColor(c gg.RGBA, mode BlendMode)
	DrawPaint()
	DrawLine(p0, p1 gg.Point)
	DrawDashedLine(p0, p1 gg.Point, onLength, offLength float64)
	DrawRect(r Rect)
	DrawOval(bounds Rect)
	DrawCircle(center gg.Point, radius float64)
	DrawRRect(rr RRect)
	DrawDRRect(outer, inner RRect)
	DrawPath(path *gg.Path)
	DrawArc(oval Rect, startDegrees, sweepDegrees float64, useCenter bool)
	DrawPoints(mode PointMode, points []gg.Point)
	DrawVertices(vertices *Vertices, mode BlendMode)
	DrawImage(img image.Image, p gg.Point, sampling ImageSampling, renderWithAttributes bool)
	DrawImageRect(img image.Image, src, dst Rect, sampling ImageSampling, renderWithAttributes bool, constraint SrcRectConstraint)
	DrawImageNine(img image.Image, center, dst Rect, filter FilterMode, renderWithAttributes bool)
	DrawAtlas(atlas image.Image, xforms []RSTransform, tex []Rect, colors []gg.RGBA, mode BlendMode,
		sampling ImageSampling, cull *Rect, renderWithAttributes bool)
	DrawDisplayList(list *DisplayList, opacity float64)
	DrawTextBlob(blob *TextBlob, x, y float64)
	DrawTextFrame(frame *TextFrame, x, y float64)
	DrawShadow(path *gg.Path, color gg.RGBA, elevation float64, transparentOccluder bool, devicePixelRatio float64)
}

// Receiver is anything a DisplayList can be dispatched to: playback
// dispatchers, bounds walkers, recording stubs, the Builder itself.
type Receiver interface {
	AttributeReceiver
	TransformReceiver
	ClipReceiver
	SaveReceiver
	DrawReceiver
}

// DepthReceiver is implemented by receivers that want depth information on
// save scopes. When a receiver implements it, Dispatch calls these instead
// of Save and SaveLayer.
//
// totalContentDepth is the number of depth units consumed between the save
// and its matching restore. maxContentBlendMode is the highest blend mode
// used by the layer content.
type DepthReceiver interface {
	SaveWithDepth(totalContentDepth uint32)
	SaveLayerWithDepth(bounds *Rect, options SaveLayerOptions, totalContentDepth uint32,
		maxContentBlendMode BlendMode, backdrop ImageFilter, backdropID int64)
}

// IgnoreAttributes implements AttributeReceiver with no-ops. Embed it in
// receivers that do not track attributes.
type IgnoreAttributes struct{}

// SetAntiAlias does nothing.
func (IgnoreAttributes) SetAntiAlias(bool) {}

// SetDither does nothing.
func (IgnoreAttributes) SetDither(bool) {}

// SetInvertColors does nothing.
func (IgnoreAttributes) SetInvertColors(bool) {}

// SetStrokeCap does nothing.
func (IgnoreAttributes) SetStrokeCap(StrokeCap) {}

// SetStrokeJoin does nothing.
func (IgnoreAttributes) SetStrokeJoin(StrokeJoin) {}

// SetStrokeWidth does nothing.
func (IgnoreAttributes) SetStrokeWidth(float64) {}

// SetStrokeMiter does nothing.
func (IgnoreAttributes) SetStrokeMiter(float64) {}

// SetDrawStyle does nothing.
func (IgnoreAttributes) SetDrawStyle(DrawStyle) {}

// SetColor does nothing.
func (IgnoreAttributes) SetColor(gg.RGBA) {}

// SetBlendMode does nothing.
func (IgnoreAttributes) SetBlendMode(BlendMode) {}

// SetColorSource does nothing.
func (IgnoreAttributes) SetColorSource(ColorSource) {}

// SetImageFilter does nothing.
func (IgnoreAttributes) SetImageFilter(ImageFilter) {}

// SetColorFilter does nothing.
func (IgnoreAttributes) SetColorFilter(ColorFilter) {}

// SetPathEffect does nothing.
func (IgnoreAttributes) SetPathEffect(PathEffect) {}

// SetMaskFilter does nothing.
func (IgnoreAttributes) SetMaskFilter(MaskFilter) {}

// IgnoreTransforms implements TransformReceiver with no-ops.
type IgnoreTransforms struct{}

// Translate does nothing.
func (IgnoreTransforms) Translate(float64, float64) {}

// Scale does nothing.
func (IgnoreTransforms) Scale(float64, float64) {}

// Rotate does nothing.
func (IgnoreTransforms) Rotate(float64) {}

// Skew does nothing.
func (IgnoreTransforms) Skew(float64, float64) {}

// Transform2DAffine does nothing.
func (IgnoreTransforms) Transform2DAffine(float64, float64, float64, float64, float64, float64) {}

// TransformFullPerspective does nothing.
func (IgnoreTransforms) TransformFullPerspective(Matrix) {}

// TransformReset does nothing.
func (IgnoreTransforms) TransformReset() {}

// IgnoreClips implements ClipReceiver with no-ops.
type IgnoreClips struct{}

// ClipRect does nothing.
func (IgnoreClips) ClipRect(Rect, ClipOp, bool) {}

// ClipOval does nothing.
func (IgnoreClips) ClipOval(Rect, ClipOp, bool) {}

// ClipRRect does nothing.
func (IgnoreClips) ClipRRect(RRect, ClipOp, bool) {}

// ClipPath does nothing.
func (IgnoreClips) ClipPath(*gg.Path, ClipOp, bool) {}

// IgnoreSaves implements SaveReceiver with no-ops.
type IgnoreSaves struct{}

// Save does nothing.
func (IgnoreSaves) Save() {}

// SaveLayer does nothing.
func (IgnoreSaves) SaveLayer(*Rect, SaveLayerOptions, ImageFilter, int64) {}

// Restore does nothing.
func (IgnoreSaves) Restore() {}

// IgnoreDraws implements DrawReceiver with no-ops.
type IgnoreDraws struct{}

// DrawColor does nothing.
func (IgnoreDraws) DrawColor(gg.RGBA, BlendMode) {}

// DrawPaint does nothing.
func (IgnoreDraws) DrawPaint() {}

// DrawLine does nothing.
func (IgnoreDraws) DrawLine(gg.Point, gg.Point) {}

// DrawDashedLine does nothing.
func (IgnoreDraws) DrawDashedLine(gg.Point, gg.Point, float64, float64) {}

// DrawRect does nothing.
func (IgnoreDraws) DrawRect(Rect) {}

// DrawOval does nothing.
func (IgnoreDraws) DrawOval(Rect) {}

// DrawCircle does nothing.
func (IgnoreDraws) DrawCircle(gg.Point, float64) {}

// DrawRRect does nothing.
func (IgnoreDraws) DrawRRect(RRect) {}

// DrawDRRect does nothing.
func (IgnoreDraws) DrawDRRect(RRect, RRect) {}

// DrawPath does nothing.
func (IgnoreDraws) DrawPath(*gg.Path) {}

// DrawArc does nothing.
func (IgnoreDraws) DrawArc(Rect, float64, float64, bool) {}

// DrawPoints does nothing.
func (IgnoreDraws) DrawPoints(PointMode, []gg.Point) {}

// DrawVertices does nothing.
func (IgnoreDraws) DrawVertices(*Vertices, BlendMode) {}

// DrawImage does nothing.
func (IgnoreDraws) DrawImage(image.Image, gg.Point, ImageSampling, bool) {}

// DrawImageRect does nothing.
func (IgnoreDraws) DrawImageRect(image.Image, Rect, Rect, ImageSampling, bool, SrcRectConstraint) {
}
// DrawImageNine does nothing.
func (IgnoreDraws) DrawImageNine(image.Image, Rect, Rect, FilterMode, bool) {}

// DrawAtlas does nothing.
func (IgnoreDraws) DrawAtlas(image.Image, []RSTransform, []Rect, []gg.RGBA, BlendMode, ImageSampling, *Rect, bool) {
}
// DrawDisplayList does nothing.
func (IgnoreDraws) DrawDisplayList(*DisplayList, float64) {}

// DrawTextBlob does nothing.
func (IgnoreDraws) DrawTextBlob(*TextBlob, float64, float64) {}

// DrawTextFrame does nothing.
func (IgnoreDraws) DrawTextFrame(*TextFrame, float64, float64) {}

// DrawShadow does nothing.
func (IgnoreDraws) DrawShadow(*gg.Path, gg.RGBA, float64, bool, float64) {}
