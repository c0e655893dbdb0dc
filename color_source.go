package displaylist

import (
	"image"

	"github.com/gogpu/gg"
)

// ColorSource is a shader supplying per-pixel colors in place of the solid
// paint color. This is a sealed interface; only types in this package
// implement it.
//
// Color sources are immutable once handed to a Receiver. Gradients are
// pointers so a display list shares them rather than copying stop slices.
type ColorSource interface {
	// IsGradient reports whether the source is a gradient. Backends use it
	// to decide on dithering.
	IsGradient() bool

	colorSourceMarker()
}

// GradientStop is a color at a position along a gradient.
type GradientStop struct {
	Offset float64 // Position in [0, 1]
	Color  gg.RGBA
}

// LinearGradient interpolates colors along the line from Start to End.
type LinearGradient struct {
	Start, End  gg.Point
	Stops       []GradientStop
	Tile        TileMode
	LocalMatrix *Matrix // Optional, applied before the canvas transform
}

// NewLinearGradient creates a linear gradient with no stops.
func NewLinearGradient(x0, y0, x1, y1 float64) *LinearGradient {
	return &LinearGradient{Start: gg.Pt(x0, y0), End: gg.Pt(x1, y1)}
}

// AddColorStop appends a stop. Returns the gradient for chaining.
func (g *LinearGradient) AddColorStop(offset float64, c gg.RGBA) *LinearGradient {
	g.Stops = append(g.Stops, GradientStop{Offset: offset, Color: c})
	return g
}

// SetTileMode sets the tile mode. Returns the gradient for chaining.
func (g *LinearGradient) SetTileMode(mode TileMode) *LinearGradient {
	g.Tile = mode
	return g
}

// IsGradient implements ColorSource.
func (*LinearGradient) IsGradient() bool  { return true }
func (*LinearGradient) colorSourceMarker() {}

// RadialGradient interpolates colors outward from Center to Radius.
type RadialGradient struct {
	Center      gg.Point
	Radius      float64
	Stops       []GradientStop
	Tile        TileMode
	LocalMatrix *Matrix
}

// NewRadialGradient creates a radial gradient with no stops.
func NewRadialGradient(cx, cy, radius float64) *RadialGradient {
	return &RadialGradient{Center: gg.Pt(cx, cy), Radius: radius}
}

// AddColorStop appends a stop. Returns the gradient for chaining.
func (g *RadialGradient) AddColorStop(offset float64, c gg.RGBA) *RadialGradient {
	g.Stops = append(g.Stops, GradientStop{Offset: offset, Color: c})
	return g
}

// SetTileMode sets the tile mode. Returns the gradient for chaining.
func (g *RadialGradient) SetTileMode(mode TileMode) *RadialGradient {
	g.Tile = mode
	return g
}

// IsGradient implements ColorSource.
func (*RadialGradient) IsGradient() bool  { return true }
func (*RadialGradient) colorSourceMarker() {}

// ConicalGradient interpolates between two circles, the two-point conical
// gradient of Skia.
type ConicalGradient struct {
	StartCenter gg.Point
	StartRadius float64
	EndCenter   gg.Point
	EndRadius   float64
	Stops       []GradientStop
	Tile        TileMode
	LocalMatrix *Matrix
}

// NewConicalGradient creates a two-point conical gradient with no stops.
func NewConicalGradient(sx, sy, startRadius, ex, ey, endRadius float64) *ConicalGradient {
	return &ConicalGradient{
		StartCenter: gg.Pt(sx, sy),
		StartRadius: startRadius,
		EndCenter:   gg.Pt(ex, ey),
		EndRadius:   endRadius,
	}
}

// AddColorStop appends a stop. Returns the gradient for chaining.
func (g *ConicalGradient) AddColorStop(offset float64, c gg.RGBA) *ConicalGradient {
	g.Stops = append(g.Stops, GradientStop{Offset: offset, Color: c})
	return g
}

// IsGradient implements ColorSource.
func (*ConicalGradient) IsGradient() bool  { return true }
func (*ConicalGradient) colorSourceMarker() {}

// SweepGradient interpolates colors by angle around Center, from StartDegrees
// to EndDegrees.
type SweepGradient struct {
	Center       gg.Point
	StartDegrees float64
	EndDegrees   float64
	Stops        []GradientStop
	Tile         TileMode
	LocalMatrix  *Matrix
}

// NewSweepGradient creates a full-turn sweep gradient with no stops.
func NewSweepGradient(cx, cy, startDegrees float64) *SweepGradient {
	return &SweepGradient{
		Center:       gg.Pt(cx, cy),
		StartDegrees: startDegrees,
		EndDegrees:   startDegrees + 360,
	}
}

// AddColorStop appends a stop. Returns the gradient for chaining.
func (g *SweepGradient) AddColorStop(offset float64, c gg.RGBA) *SweepGradient {
	g.Stops = append(g.Stops, GradientStop{Offset: offset, Color: c})
	return g
}

// IsGradient implements ColorSource.
func (*SweepGradient) IsGradient() bool  { return true }
func (*SweepGradient) colorSourceMarker() {}

// ImageColorSource tiles an image as a shader.
type ImageColorSource struct {
	Image        image.Image
	TileX, TileY TileMode
	Sampling     ImageSampling
	LocalMatrix  *Matrix
}

// IsGradient implements ColorSource.
func (*ImageColorSource) IsGradient() bool  { return false }
func (*ImageColorSource) colorSourceMarker() {}
