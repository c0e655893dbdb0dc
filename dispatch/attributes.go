package dispatch

import (
	"github.com/gogpu/displaylist"
	"github.com/gogpu/displaylist/backend"
	"github.com/gogpu/gg"
)

// AttributeDispatcher folds display list attribute ops into a backend.Paint
// and tracks an inherited opacity alongside it.
//
// The opacity is a scale applied to every draw on top of the color alpha.
// It is changed only through the save stack: a flattened saveLayer pushes a
// lower opacity and the matching restore pops it.
type AttributeDispatcher struct {
	paint   backend.Paint
	color   gg.RGBA
	opacity float64

	// one entry per open save, in lockstep with the canvas
	opacities []float64

	dither      bool
	invert      bool
	colorFilter displaylist.ColorFilter
}

// NewAttributeDispatcher returns a dispatcher with default attributes and
// the given starting opacity.
func NewAttributeDispatcher(opacity float64) *AttributeDispatcher {
	a := &AttributeDispatcher{}
	a.reset(opacity)
	return a
}

func (a *AttributeDispatcher) reset(opacity float64) {
	*a = AttributeDispatcher{
		paint:   backend.NewPaint(),
		color:   gg.RGBA{A: 1},
		opacity: opacity,
	}
	a.SetColor(a.color)
}

// Paint returns the composed paint. It stays valid until the next attribute
// change; callers that keep it must copy it.
func (a *AttributeDispatcher) Paint() *backend.Paint { return &a.paint }

// Color returns the color last set, without opacity applied.
func (a *AttributeDispatcher) Color() gg.RGBA { return a.color }

// Opacity returns the inherited opacity.
func (a *AttributeDispatcher) Opacity() float64 { return a.opacity }

// CombinedOpacity returns the paint alpha: the color alpha times the
// inherited opacity.
func (a *AttributeDispatcher) CombinedOpacity() float64 { return a.paint.Color.A }

// HasOpacity reports whether the inherited opacity is below 1.
func (a *AttributeDispatcher) HasOpacity() bool { return a.opacity < 1 }

// SetAntiAlias sets the paint anti-alias flag.
func (a *AttributeDispatcher) SetAntiAlias(aa bool) { a.paint.AntiAlias = aa }

// SetStrokeCap sets the paint stroke cap.
func (a *AttributeDispatcher) SetStrokeCap(c displaylist.StrokeCap) { a.paint.StrokeCap = c }

// SetStrokeJoin sets the paint stroke join.
func (a *AttributeDispatcher) SetStrokeJoin(j displaylist.StrokeJoin) { a.paint.StrokeJoin = j }

// SetStrokeWidth sets the paint stroke width.
func (a *AttributeDispatcher) SetStrokeWidth(w float64) { a.paint.StrokeWidth = w }

// SetStrokeMiter sets the paint miter limit.
func (a *AttributeDispatcher) SetStrokeMiter(limit float64) { a.paint.StrokeMiter = limit }

// SetDrawStyle sets the paint style.
func (a *AttributeDispatcher) SetDrawStyle(s displaylist.DrawStyle) { a.paint.Style = s }

// SetBlendMode sets the paint blend mode.
func (a *AttributeDispatcher) SetBlendMode(m displaylist.BlendMode) { a.paint.BlendMode = m }

// SetImageFilter sets the paint image filter.
func (a *AttributeDispatcher) SetImageFilter(f displaylist.ImageFilter) { a.paint.ImageFilter = f }

// SetMaskFilter sets the paint mask filter.
func (a *AttributeDispatcher) SetMaskFilter(f displaylist.MaskFilter) { a.paint.MaskFilter = f }

// SetPathEffect sets the paint path effect.
func (a *AttributeDispatcher) SetPathEffect(e displaylist.PathEffect) { a.paint.PathEffect = e }

// SetColor stores c and sets the paint color to c with its alpha scaled by
// the inherited opacity.
func (a *AttributeDispatcher) SetColor(c gg.RGBA) {
	a.color = c
	c.A *= a.opacity
	a.paint.Color = c
}

// SetDither requests dithering. Gradients are dithered regardless.
func (a *AttributeDispatcher) SetDither(dither bool) {
	a.dither = dither
	a.updateDither()
}

// SetColorSource sets the paint shader. Gradient sources turn dithering on.
func (a *AttributeDispatcher) SetColorSource(source displaylist.ColorSource) {
	a.paint.ColorSource = source
	a.updateDither()
}

func (a *AttributeDispatcher) updateDither() {
	src := a.paint.ColorSource
	a.paint.Dither = a.dither || (src != nil && src.IsGradient())
}

// SetInvertColors inverts colors after the color filter.
func (a *AttributeDispatcher) SetInvertColors(invert bool) {
	a.invert = invert
	a.updateColorFilter()
}

// SetColorFilter sets the color filter, composed after the inversion when
// colors are inverted.
func (a *AttributeDispatcher) SetColorFilter(f displaylist.ColorFilter) {
	a.colorFilter = f
	a.updateColorFilter()
}

func (a *AttributeDispatcher) updateColorFilter() {
	if a.invert {
		a.paint.ColorFilter = displaylist.ComposeColorFilters(displaylist.InvertColorFilter(), a.colorFilter)
		return
	}
	a.paint.ColorFilter = a.colorFilter
}

func (a *AttributeDispatcher) setOpacity(opacity float64) {
	if opacity != a.opacity {
		a.opacity = opacity
		a.SetColor(a.color)
	}
}

// saveOpacity pushes the current opacity and switches to opacity.
func (a *AttributeDispatcher) saveOpacity(opacity float64) {
	a.opacities = append(a.opacities, a.opacity)
	a.setOpacity(opacity)
}

// restoreOpacity pops the opacity stack. It reports false, changing
// nothing, when the stack is empty.
func (a *AttributeDispatcher) restoreOpacity() bool {
	n := len(a.opacities)
	if n == 0 {
		return false
	}
	a.setOpacity(a.opacities[n-1])
	a.opacities = a.opacities[:n-1]
	return true
}

// saveDepth returns the number of open saves.
func (a *AttributeDispatcher) saveDepth() int { return len(a.opacities) }

var _ displaylist.AttributeReceiver = (*AttributeDispatcher)(nil)
