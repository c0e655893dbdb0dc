package displaylist

import (
	"math"

	"github.com/gogpu/gg"
)

// ImageFilter is a pixel-neighborhood effect applied when content is
// composited. This is a sealed interface.
//
// Filters are opaque to the display list except for bounds: a builder must
// know how far a filter can spread content to size layers and accumulate
// tight bounds.
type ImageFilter interface {
	// MapLocalBounds returns the area the filter can write when its input
	// covers r, in the same (local) coordinate space. The bool is false when
	// the output cannot be bounded; the returned rect is then a guess.
	MapLocalBounds(r Rect) (Rect, bool)

	// MapDeviceBounds is MapLocalBounds for a device-space rectangle drawn
	// under the transform ctm.
	MapDeviceBounds(r Rect, ctm Matrix) (Rect, bool)

	// AsColorFilter returns the color filter this filter is equivalent to, or
	// nil. A filter that reduces to a color filter can be applied per draw
	// instead of through a layer.
	AsColorFilter() ColorFilter

	// ModifiesTransparentBlack reports whether the filter produces color where
	// its input is transparent.
	ModifiesTransparentBlack() bool

	imageFilterMarker()
}

// BlurImageFilter is a Gaussian blur.
type BlurImageFilter struct {
	SigmaX, SigmaY float64
	Tile           TileMode
}

// NewBlurImageFilter creates a blur filter.
func NewBlurImageFilter(sigmaX, sigmaY float64, tile TileMode) *BlurImageFilter {
	return &BlurImageFilter{SigmaX: sigmaX, SigmaY: sigmaY, Tile: tile}
}

// MapLocalBounds outsets r by three standard deviations, the extent of a
// Gaussian beyond which contributions vanish at 8-bit precision.
func (f *BlurImageFilter) MapLocalBounds(r Rect) (Rect, bool) {
	return r.Outset(3*f.SigmaX, 3*f.SigmaY), true
}

// MapDeviceBounds implements ImageFilter.
func (f *BlurImageFilter) MapDeviceBounds(r Rect, ctm Matrix) (Rect, bool) {
	return outsetDevice(r, ctm, 3*f.SigmaX, 3*f.SigmaY)
}

// AsColorFilter implements ImageFilter.
func (*BlurImageFilter) AsColorFilter() ColorFilter      { return nil }

// ModifiesTransparentBlack implements ImageFilter.
func (*BlurImageFilter) ModifiesTransparentBlack() bool { return false }
func (*BlurImageFilter) imageFilterMarker()             {}

// DilateImageFilter grows content by a morphology max over the radii.
type DilateImageFilter struct {
	RadiusX, RadiusY float64
}

// MapLocalBounds implements ImageFilter.
func (f *DilateImageFilter) MapLocalBounds(r Rect) (Rect, bool) {
	return r.Outset(f.RadiusX, f.RadiusY), true
}

// MapDeviceBounds implements ImageFilter.
func (f *DilateImageFilter) MapDeviceBounds(r Rect, ctm Matrix) (Rect, bool) {
	return outsetDevice(r, ctm, f.RadiusX, f.RadiusY)
}

// AsColorFilter implements ImageFilter.
func (*DilateImageFilter) AsColorFilter() ColorFilter      { return nil }

// ModifiesTransparentBlack implements ImageFilter.
func (*DilateImageFilter) ModifiesTransparentBlack() bool { return false }
func (*DilateImageFilter) imageFilterMarker()             {}

// ErodeImageFilter shrinks content by a morphology min over the radii.
type ErodeImageFilter struct {
	RadiusX, RadiusY float64
}

// MapLocalBounds implements ImageFilter.
func (f *ErodeImageFilter) MapLocalBounds(r Rect) (Rect, bool) {
	out := r.Inset(f.RadiusX, f.RadiusY)
	if out.IsEmpty() {
		return Rect{}, true
	}
	return out, true
}

// MapDeviceBounds implements ImageFilter.
func (f *ErodeImageFilter) MapDeviceBounds(r Rect, ctm Matrix) (Rect, bool) {
	out, ok := outsetDevice(r, ctm, -f.RadiusX, -f.RadiusY)
	if out.IsEmpty() {
		return Rect{}, ok
	}
	return out, ok
}

// AsColorFilter implements ImageFilter.
func (*ErodeImageFilter) AsColorFilter() ColorFilter      { return nil }

// ModifiesTransparentBlack implements ImageFilter.
func (*ErodeImageFilter) ModifiesTransparentBlack() bool { return false }
func (*ErodeImageFilter) imageFilterMarker()             {}

// MatrixImageFilter transforms the filtered content by Matrix.
type MatrixImageFilter struct {
	Matrix   Matrix
	Sampling ImageSampling
}

// MapLocalBounds implements ImageFilter.
func (f *MatrixImageFilter) MapLocalBounds(r Rect) (Rect, bool) {
	return f.Matrix.MapRect(r), true
}

// MapDeviceBounds applies ctm * Matrix * ctm^-1, the filter matrix expressed
// in device space. A singular ctm cannot be inverted; r is returned as a
// guess.
func (f *MatrixImageFilter) MapDeviceBounds(r Rect, ctm Matrix) (Rect, bool) {
	inv, ok := ctm.Invert()
	if !ok {
		return r, false
	}
	return ctm.Multiply(f.Matrix).Multiply(inv).MapRect(r), true
}

// AsColorFilter implements ImageFilter.
func (*MatrixImageFilter) AsColorFilter() ColorFilter      { return nil }

// ModifiesTransparentBlack implements ImageFilter.
func (*MatrixImageFilter) ModifiesTransparentBlack() bool { return false }
func (*MatrixImageFilter) imageFilterMarker()             {}

// ColorFilterImageFilter applies a color filter to the filtered content.
type ColorFilterImageFilter struct {
	Filter ColorFilter
}

// MapLocalBounds returns r unchanged unless the color filter paints
// transparent pixels, in which case the output covers everything.
func (f *ColorFilterImageFilter) MapLocalBounds(r Rect) (Rect, bool) {
	if f.ModifiesTransparentBlack() {
		return MaxCullRect(), false
	}
	return r, true
}

// MapDeviceBounds implements ImageFilter.
func (f *ColorFilterImageFilter) MapDeviceBounds(r Rect, _ Matrix) (Rect, bool) {
	return f.MapLocalBounds(r)
}

// AsColorFilter implements ImageFilter.
func (f *ColorFilterImageFilter) AsColorFilter() ColorFilter { return f.Filter }

// ModifiesTransparentBlack implements ImageFilter.
func (f *ColorFilterImageFilter) ModifiesTransparentBlack() bool {
	return f.Filter != nil && f.Filter.ModifiesTransparentBlack()
}

func (*ColorFilterImageFilter) imageFilterMarker() {}

// ComposeImageFilter applies Inner, then Outer to the result.
type ComposeImageFilter struct {
	Outer, Inner ImageFilter
}

// MapLocalBounds implements ImageFilter.
func (f *ComposeImageFilter) MapLocalBounds(r Rect) (Rect, bool) {
	mid, okInner := mapLocal(f.Inner, r)
	out, okOuter := mapLocal(f.Outer, mid)
	return out, okInner && okOuter
}

// MapDeviceBounds implements ImageFilter.
func (f *ComposeImageFilter) MapDeviceBounds(r Rect, ctm Matrix) (Rect, bool) {
	mid, okInner := mapDevice(f.Inner, r, ctm)
	out, okOuter := mapDevice(f.Outer, mid, ctm)
	return out, okInner && okOuter
}

// AsColorFilter implements ImageFilter.
func (*ComposeImageFilter) AsColorFilter() ColorFilter { return nil }

// ModifiesTransparentBlack implements ImageFilter.
func (f *ComposeImageFilter) ModifiesTransparentBlack() bool {
	return (f.Inner != nil && f.Inner.ModifiesTransparentBlack()) ||
		(f.Outer != nil && f.Outer.ModifiesTransparentBlack())
}

func (*ComposeImageFilter) imageFilterMarker() {}

func mapLocal(f ImageFilter, r Rect) (Rect, bool) {
	if f == nil {
		return r, true
	}
	return f.MapLocalBounds(r)
}

func mapDevice(f ImageFilter, r Rect, ctm Matrix) (Rect, bool) {
	if f == nil {
		return r, true
	}
	return f.MapDeviceBounds(r, ctm)
}

// outsetDevice outsets a device rectangle by a local-space (dx, dy) mapped
// through the linear part of ctm.
func outsetDevice(r Rect, ctm Matrix, dx, dy float64) (Rect, bool) {
	if ctm.HasPerspective() {
		s := ctm.MaxScale()
		return r.Outset(math.Abs(dx)*s, math.Abs(dy)*s), false
	}
	ox := math.Abs(ctm[0])*dx + math.Abs(ctm[1])*dy
	oy := math.Abs(ctm[4])*dx + math.Abs(ctm[5])*dy
	return r.Outset(ox, oy), true
}

// ColorFilter transforms each pixel's color independently. This is a sealed
// interface.
type ColorFilter interface {
	// ModifiesTransparentBlack reports whether transparent input can produce
	// non-transparent output.
	ModifiesTransparentBlack() bool

	// CanCommuteWithOpacity reports whether filter(color) * alpha equals
	// filter(color * alpha) for every color, so that opacity can be applied
	// before or after the filter.
	CanCommuteWithOpacity() bool

	colorFilterMarker()
}

// BlendColorFilter blends a constant color onto its input with Mode.
type BlendColorFilter struct {
	Color gg.RGBA
	Mode  BlendMode
}

// ModifiesTransparentBlack reports whether blending Color onto a transparent
// pixel leaves something behind.
func (f *BlendColorFilter) ModifiesTransparentBlack() bool {
	if f.Color.A <= 0 {
		return false
	}
	switch f.Mode {
	case BlendModeClear, BlendModeDst, BlendModeSrcIn, BlendModeDstIn,
		BlendModeSrcATop, BlendModeDstOut, BlendModeModulate:
		return false
	}
	return true
}

// CanCommuteWithOpacity implements ColorFilter.
func (*BlendColorFilter) CanCommuteWithOpacity() bool { return false }
func (*BlendColorFilter) colorFilterMarker()          {}

// MatrixColorFilter applies a 5x4 color matrix to unpremultiplied components
// in [0, 1]. Row r computes channel r as
// m[5r]*R + m[5r+1]*G + m[5r+2]*B + m[5r+3]*A + m[5r+4].
type MatrixColorFilter struct {
	Matrix [20]float64
}

// ModifiesTransparentBlack implements ColorFilter.
func (f *MatrixColorFilter) ModifiesTransparentBlack() bool {
	m := &f.Matrix
	return m[4] != 0 || m[9] != 0 || m[14] != 0 || m[19] != 0
}

// CanCommuteWithOpacity requires alpha to be a plain scale of the input alpha
// that does not feed color channels.
func (f *MatrixColorFilter) CanCommuteWithOpacity() bool {
	m := &f.Matrix
	return m[3] == 0 && m[8] == 0 && m[13] == 0 &&
		m[15] == 0 && m[16] == 0 && m[17] == 0 &&
		m[18] >= 0 && m[18] <= 1 && m[19] == 0
}

func (*MatrixColorFilter) colorFilterMarker() {}

// Apply returns the filtered color.
func (f *MatrixColorFilter) Apply(c gg.RGBA) gg.RGBA {
	m := &f.Matrix
	row := func(i int) float64 {
		return m[i]*c.R + m[i+1]*c.G + m[i+2]*c.B + m[i+3]*c.A + m[i+4]
	}
	return gg.RGBA{R: clampUnit(row(0)), G: clampUnit(row(5)), B: clampUnit(row(10)), A: clampUnit(row(15))}
}

func clampUnit(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

var invertColorMatrix = MatrixColorFilter{Matrix: [20]float64{
	-1, 0, 0, 0, 1,
	0, -1, 0, 0, 1,
	0, 0, -1, 0, 1,
	0, 0, 0, 1, 0,
}}

// InvertColorFilter returns the filter used for the invert-colors attribute.
func InvertColorFilter() ColorFilter {
	f := invertColorMatrix
	return &f
}

// ComposeColorFilter applies Inner, then Outer.
type ComposeColorFilter struct {
	Outer, Inner ColorFilter
}

// ComposeColorFilters returns outer(inner(c)), collapsing nil operands.
func ComposeColorFilters(outer, inner ColorFilter) ColorFilter {
	switch {
	case outer == nil:
		return inner
	case inner == nil:
		return outer
	}
	return &ComposeColorFilter{Outer: outer, Inner: inner}
}

// ModifiesTransparentBlack implements ColorFilter.
func (f *ComposeColorFilter) ModifiesTransparentBlack() bool {
	return f.Outer.ModifiesTransparentBlack() || f.Inner.ModifiesTransparentBlack()
}

// CanCommuteWithOpacity implements ColorFilter.
func (f *ComposeColorFilter) CanCommuteWithOpacity() bool {
	return f.Outer.CanCommuteWithOpacity() && f.Inner.CanCommuteWithOpacity()
}

func (*ComposeColorFilter) colorFilterMarker() {}

// SrgbToLinearGamma converts sRGB-encoded colors to linear.
type SrgbToLinearGamma struct{}

// ModifiesTransparentBlack implements ColorFilter.
func (SrgbToLinearGamma) ModifiesTransparentBlack() bool { return false }

// CanCommuteWithOpacity implements ColorFilter.
func (SrgbToLinearGamma) CanCommuteWithOpacity() bool    { return true }
func (SrgbToLinearGamma) colorFilterMarker()             {}

// LinearToSrgbGamma converts linear colors to sRGB encoding.
type LinearToSrgbGamma struct{}

// ModifiesTransparentBlack implements ColorFilter.
func (LinearToSrgbGamma) ModifiesTransparentBlack() bool { return false }

// CanCommuteWithOpacity implements ColorFilter.
func (LinearToSrgbGamma) CanCommuteWithOpacity() bool    { return true }
func (LinearToSrgbGamma) colorFilterMarker()             {}

// MaskFilter modifies the coverage mask of each draw. This is a sealed
// interface.
type MaskFilter interface {
	// OutsetBounds returns the area the filtered coverage of r can reach.
	OutsetBounds(r Rect) Rect

	maskFilterMarker()
}

// BlurMaskFilter blurs the coverage mask.
type BlurMaskFilter struct {
	Style BlurStyle
	Sigma float64
}

// OutsetBounds grows r by the blur extent.
func (f *BlurMaskFilter) OutsetBounds(r Rect) Rect {
	return r.Outset(3*f.Sigma, 3*f.Sigma)
}

func (*BlurMaskFilter) maskFilterMarker() {}

// PathEffect alters geometry before it is stroked or filled. This is a
// sealed interface.
type PathEffect interface {
	pathEffectMarker()
}

// DashPathEffect breaks strokes into dashes. Intervals alternate on and off
// lengths; Phase offsets the pattern start.
type DashPathEffect struct {
	Intervals []float64
	Phase     float64
}

// NewDashPathEffect copies intervals into a new dash effect.
func NewDashPathEffect(intervals []float64, phase float64) *DashPathEffect {
	return &DashPathEffect{Intervals: append([]float64(nil), intervals...), Phase: phase}
}

func (*DashPathEffect) pathEffectMarker() {}
