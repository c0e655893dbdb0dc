package backend

import (
	"errors"
	"image"

	"github.com/gogpu/displaylist"
	"github.com/gogpu/gg"
)

// Common backend errors.
var (
	// ErrUnknownCanvas is returned by NewCanvas for a name nothing registered.
	ErrUnknownCanvas = errors.New("backend: unknown canvas")

	// ErrInvalidSize is returned when a canvas is requested with a
	// non-positive width or height.
	ErrInvalidSize = errors.New("backend: invalid canvas size")
)

// Point3 is a point or direction in 3D, used for shadow lighting.
type Point3 struct {
	X, Y, Z float64
}

// ShadowFlags control DrawShadow.
type ShadowFlags uint8

const (
	// ShadowTransparentOccluder means the caster is not opaque, so the
	// shadow must also be drawn underneath it.
	ShadowTransparentOccluder ShadowFlags = 1 << iota

	// ShadowDirectionalLight treats the light position as a direction and
	// the light radius as a radius-to-height ratio.
	ShadowDirectionalLight
)

// Canvas is the drawing target a dispatcher plays a display list into.
//
// Canvas state (transform and clip) is saved and restored with Save,
// SaveLayer and Restore. Paint values are passed per draw call; a nil
// *Paint means the backend default (opaque black fill, SrcOver).
//
// Draw methods never return errors. A backend that cannot honor part of a
// call degrades the output instead.
type Canvas interface {
	// SaveCount returns the number of saved states, starting at 1 for a
	// fresh canvas.
	SaveCount() int
	Save()
	// SaveLayer starts an offscreen layer that is composited with paint on
	// Restore. bounds limits the layer when non-nil; backdrop filters what is
	// already drawn underneath the layer.
	SaveLayer(bounds *displaylist.Rect, paint *Paint, backdrop displaylist.ImageFilter)
	// Restore pops one state. It is a no-op at the initial state.
	Restore()
	// RestoreToCount pops states until SaveCount returns count.
	RestoreToCount(count int)

	Concat(m displaylist.Matrix)
	SetMatrix(m displaylist.Matrix)
	TotalMatrix() displaylist.Matrix

	ClipRect(r displaylist.Rect, op displaylist.ClipOp, antiAlias bool)
	ClipRRect(rr displaylist.RRect, op displaylist.ClipOp, antiAlias bool)
	ClipPath(path *gg.Path, op displaylist.ClipOp, antiAlias bool)
	// DeviceClipBounds returns a conservative device-space bound of the clip.
	DeviceClipBounds() displaylist.Rect

	DrawPaint(paint *Paint)
	DrawColor(c gg.RGBA, mode displaylist.BlendMode)
	DrawLine(p0, p1 gg.Point, paint *Paint)
	DrawRect(r displaylist.Rect, paint *Paint)
	DrawOval(bounds displaylist.Rect, paint *Paint)
	DrawCircle(center gg.Point, radius float64, paint *Paint)
	DrawRRect(rr displaylist.RRect, paint *Paint)
	DrawDRRect(outer, inner displaylist.RRect, paint *Paint)
	DrawPath(path *gg.Path, paint *Paint)
	DrawArc(oval displaylist.Rect, startDegrees, sweepDegrees float64, useCenter bool, paint *Paint)
	DrawPoints(mode displaylist.PointMode, points []gg.Point, paint *Paint)
	DrawVertices(v *displaylist.Vertices, mode displaylist.BlendMode, paint *Paint)
	DrawImage(img image.Image, p gg.Point, sampling displaylist.ImageSampling, paint *Paint)
	DrawImageRect(img image.Image, src, dst displaylist.Rect, sampling displaylist.ImageSampling,
		constraint displaylist.SrcRectConstraint, paint *Paint)
	DrawImageNine(img image.Image, center, dst displaylist.Rect, filter displaylist.FilterMode, paint *Paint)
	DrawAtlas(atlas image.Image, xforms []displaylist.RSTransform, tex []displaylist.Rect, colors []gg.RGBA,
		mode displaylist.BlendMode, sampling displaylist.ImageSampling, cull *displaylist.Rect, paint *Paint)
	DrawTextBlob(blob *displaylist.TextBlob, x, y float64, paint *Paint)
	DrawTextFrame(frame *displaylist.TextFrame, x, y float64, paint *Paint)

	// DrawShadow draws the ambient and spot shadow of an occluder at height
	// zPlane.Z above the canvas, lit from lightPos.
	DrawShadow(path *gg.Path, zPlane, lightPos Point3, lightRadius float64,
		ambient, spot gg.RGBA, flags ShadowFlags)
}
