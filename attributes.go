package displaylist

// DrawStyle selects how geometry is painted.
type DrawStyle uint8

const (
	DrawStyleFill          DrawStyle = iota // Fill the interior
	DrawStyleStroke                         // Stroke the outline
	DrawStyleStrokeAndFill                  // Fill, then stroke
)

var drawStyleNames = [...]string{
	DrawStyleFill:          "Fill",
	DrawStyleStroke:        "Stroke",
	DrawStyleStrokeAndFill: "StrokeAndFill",
}

// String returns the name of the draw style.
func (s DrawStyle) String() string {
	if int(s) < len(drawStyleNames) {
		return drawStyleNames[s]
	}
	return "Unknown"
}

// StrokeCap is the shape of open stroke ends.
type StrokeCap uint8

const (
	StrokeCapButt StrokeCap = iota
	StrokeCapRound
	StrokeCapSquare
)

var strokeCapNames = [...]string{
	StrokeCapButt:   "Butt",
	StrokeCapRound:  "Round",
	StrokeCapSquare: "Square",
}

// String returns the name of the stroke cap.
func (c StrokeCap) String() string {
	if int(c) < len(strokeCapNames) {
		return strokeCapNames[c]
	}
	return "Unknown"
}

// StrokeJoin is the shape of stroke corners.
type StrokeJoin uint8

const (
	StrokeJoinMiter StrokeJoin = iota
	StrokeJoinRound
	StrokeJoinBevel
)

var strokeJoinNames = [...]string{
	StrokeJoinMiter: "Miter",
	StrokeJoinRound: "Round",
	StrokeJoinBevel: "Bevel",
}

// String returns the name of the stroke join.
func (j StrokeJoin) String() string {
	if int(j) < len(strokeJoinNames) {
		return strokeJoinNames[j]
	}
	return "Unknown"
}

// BlendMode is a Porter-Duff or separable/non-separable blend mode.
// The order matters: modes up to BlendModeModulate are Porter-Duff style,
// the rest are "advanced" blends. The zero value is BlendModeClear, so
// attribute state must be initialized to BlendModeSrcOver explicitly.
type BlendMode uint8

const (
	BlendModeClear BlendMode = iota
	BlendModeSrc
	BlendModeDst
	BlendModeSrcOver
	BlendModeDstOver
	BlendModeSrcIn
	BlendModeDstIn
	BlendModeSrcOut
	BlendModeDstOut
	BlendModeSrcATop
	BlendModeDstATop
	BlendModeXor
	BlendModePlus
	BlendModeModulate
	BlendModeScreen
	BlendModeOverlay
	BlendModeDarken
	BlendModeLighten
	BlendModeColorDodge
	BlendModeColorBurn
	BlendModeHardLight
	BlendModeSoftLight
	BlendModeDifference
	BlendModeExclusion
	BlendModeMultiply
	BlendModeHue
	BlendModeSaturation
	BlendModeColor
	BlendModeLuminosity

	// BlendModeLast is the highest valid blend mode.
	BlendModeLast = BlendModeLuminosity
)

var blendModeNames = [...]string{
	BlendModeClear:      "Clear",
	BlendModeSrc:        "Src",
	BlendModeDst:        "Dst",
	BlendModeSrcOver:    "SrcOver",
	BlendModeDstOver:    "DstOver",
	BlendModeSrcIn:      "SrcIn",
	BlendModeDstIn:      "DstIn",
	BlendModeSrcOut:     "SrcOut",
	BlendModeDstOut:     "DstOut",
	BlendModeSrcATop:    "SrcATop",
	BlendModeDstATop:    "DstATop",
	BlendModeXor:        "Xor",
	BlendModePlus:       "Plus",
	BlendModeModulate:   "Modulate",
	BlendModeScreen:     "Screen",
	BlendModeOverlay:    "Overlay",
	BlendModeDarken:     "Darken",
	BlendModeLighten:    "Lighten",
	BlendModeColorDodge: "ColorDodge",
	BlendModeColorBurn:  "ColorBurn",
	BlendModeHardLight:  "HardLight",
	BlendModeSoftLight:  "SoftLight",
	BlendModeDifference: "Difference",
	BlendModeExclusion:  "Exclusion",
	BlendModeMultiply:   "Multiply",
	BlendModeHue:        "Hue",
	BlendModeSaturation: "Saturation",
	BlendModeColor:      "Color",
	BlendModeLuminosity: "Luminosity",
}

// String returns the name of the blend mode.
func (m BlendMode) String() string {
	if int(m) < len(blendModeNames) {
		return blendModeNames[m]
	}
	return "Unknown"
}

// ModifiesTransparentBlack reports whether blending a transparent source with
// this mode can change the destination. Such modes affect every pixel under
// the clip, not just the pixels covered by the geometry.
func (m BlendMode) ModifiesTransparentBlack() bool {
	switch m {
	case BlendModeClear, BlendModeSrc, BlendModeSrcIn, BlendModeDstIn,
		BlendModeSrcOut, BlendModeDstATop, BlendModeModulate:
		return true
	}
	return false
}

// ClipOp combines a clip shape with the current clip.
type ClipOp uint8

const (
	ClipIntersect  ClipOp = iota // Keep the inside of the shape
	ClipDifference               // Keep the outside of the shape
)

var clipOpNames = [...]string{
	ClipIntersect:  "Intersect",
	ClipDifference: "Difference",
}

// String returns the name of the clip op.
func (o ClipOp) String() string {
	if int(o) < len(clipOpNames) {
		return clipOpNames[o]
	}
	return "Unknown"
}

// PointMode selects how DrawPoints interprets its points.
type PointMode uint8

const (
	PointModePoints  PointMode = iota // Each point is a dot
	PointModeLines                    // Consecutive pairs are segments
	PointModePolygon                  // Points form an open polyline
)

var pointModeNames = [...]string{
	PointModePoints:  "Points",
	PointModeLines:   "Lines",
	PointModePolygon: "Polygon",
}

// String returns the name of the point mode.
func (m PointMode) String() string {
	if int(m) < len(pointModeNames) {
		return pointModeNames[m]
	}
	return "Unknown"
}

// VertexMode selects how vertices form triangles.
type VertexMode uint8

const (
	VertexModeTriangles VertexMode = iota
	VertexModeTriangleStrip
	VertexModeTriangleFan
)

var vertexModeNames = [...]string{
	VertexModeTriangles:     "Triangles",
	VertexModeTriangleStrip: "TriangleStrip",
	VertexModeTriangleFan:   "TriangleFan",
}

// String returns the name of the vertex mode.
func (m VertexMode) String() string {
	if int(m) < len(vertexModeNames) {
		return vertexModeNames[m]
	}
	return "Unknown"
}

// SrcRectConstraint controls whether image sampling may read outside the
// source rectangle.
type SrcRectConstraint uint8

const (
	SrcRectConstraintStrict SrcRectConstraint = iota
	SrcRectConstraintFast
)

var srcRectConstraintNames = [...]string{
	SrcRectConstraintStrict: "Strict",
	SrcRectConstraintFast:   "Fast",
}

// String returns the name of the constraint.
func (c SrcRectConstraint) String() string {
	if int(c) < len(srcRectConstraintNames) {
		return srcRectConstraintNames[c]
	}
	return "Unknown"
}

// ImageSampling is the sampling quality for image draws.
type ImageSampling uint8

const (
	ImageSamplingNearest ImageSampling = iota
	ImageSamplingLinear
	ImageSamplingMipmapLinear
	ImageSamplingCubic
)

var imageSamplingNames = [...]string{
	ImageSamplingNearest:      "Nearest",
	ImageSamplingLinear:       "Linear",
	ImageSamplingMipmapLinear: "MipmapLinear",
	ImageSamplingCubic:        "Cubic",
}

// String returns the name of the sampling.
func (s ImageSampling) String() string {
	if int(s) < len(imageSamplingNames) {
		return imageSamplingNames[s]
	}
	return "Unknown"
}

// FilterMode is the texel filter used by nine-patch draws.
type FilterMode uint8

const (
	FilterModeNearest FilterMode = iota
	FilterModeLinear
)

var filterModeNames = [...]string{
	FilterModeNearest: "Nearest",
	FilterModeLinear:  "Linear",
}

// String returns the name of the filter mode.
func (m FilterMode) String() string {
	if int(m) < len(filterModeNames) {
		return filterModeNames[m]
	}
	return "Unknown"
}

// TileMode controls how shaders and filters sample outside their bounds.
type TileMode uint8

const (
	TileModeClamp  TileMode = iota // Extend edge pixels
	TileModeRepeat                 // Repeat the content
	TileModeMirror                 // Repeat, mirroring every other copy
	TileModeDecal                  // Transparent outside the bounds
)

var tileModeNames = [...]string{
	TileModeClamp:  "Clamp",
	TileModeRepeat: "Repeat",
	TileModeMirror: "Mirror",
	TileModeDecal:  "Decal",
}

// String returns the name of the tile mode.
func (m TileMode) String() string {
	if int(m) < len(tileModeNames) {
		return tileModeNames[m]
	}
	return "Unknown"
}

// BlurStyle selects which side of a shape's edge a mask blur affects.
type BlurStyle uint8

const (
	BlurStyleNormal BlurStyle = iota // Blur inside and outside
	BlurStyleSolid                   // Solid inside, blurred outside
	BlurStyleOuter                   // Nothing inside, blurred outside
	BlurStyleInner                   // Blurred inside, nothing outside
)

var blurStyleNames = [...]string{
	BlurStyleNormal: "Normal",
	BlurStyleSolid:  "Solid",
	BlurStyleOuter:  "Outer",
	BlurStyleInner:  "Inner",
}

// String returns the name of the blur style.
func (s BlurStyle) String() string {
	if int(s) < len(blurStyleNames) {
		return blurStyleNames[s]
	}
	return "Unknown"
}
