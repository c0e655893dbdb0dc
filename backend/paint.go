package backend

import (
	"github.com/gogpu/displaylist"
	"github.com/gogpu/gg"
)

// Paint is the per-draw style a Canvas renders with. Color carries the final
// alpha; dispatchers fold any inherited opacity into it.
type Paint struct {
	Color       gg.RGBA
	AntiAlias   bool
	Dither      bool
	Style       displaylist.DrawStyle
	StrokeWidth float64
	StrokeMiter float64
	StrokeCap   displaylist.StrokeCap
	StrokeJoin  displaylist.StrokeJoin
	BlendMode   displaylist.BlendMode

	ColorSource displaylist.ColorSource
	ImageFilter displaylist.ImageFilter
	ColorFilter displaylist.ColorFilter
	MaskFilter  displaylist.MaskFilter
	PathEffect  displaylist.PathEffect
}

// DefaultStrokeMiter is the miter limit of a new paint.
const DefaultStrokeMiter = 4.0

// NewPaint returns the default paint: opaque black fill with SrcOver.
func NewPaint() Paint {
	return Paint{
		Color:       gg.RGBA{A: 1},
		StrokeMiter: DefaultStrokeMiter,
		BlendMode:   displaylist.BlendModeSrcOver,
	}
}

// AlphaPaint returns a default paint whose only change is its alpha.
func AlphaPaint(alpha float64) *Paint {
	p := NewPaint()
	p.Color.A = alpha
	return &p
}

// Alpha returns the paint alpha.
func (p *Paint) Alpha() float64 { return p.Color.A }

// IsStroked reports whether the paint strokes geometry.
func (p *Paint) IsStroked() bool {
	return p.Style == displaylist.DrawStyleStroke || p.Style == displaylist.DrawStyleStrokeAndFill
}

// IsFilled reports whether the paint fills geometry.
func (p *Paint) IsFilled() bool {
	return p.Style == displaylist.DrawStyleFill || p.Style == displaylist.DrawStyleStrokeAndFill
}

// OrDefault returns p, or a default paint when p is nil.
func (p *Paint) OrDefault() *Paint {
	if p != nil {
		return p
	}
	d := NewPaint()
	return &d
}
