package dispatch

import (
	"github.com/gogpu/displaylist"
	"github.com/gogpu/displaylist/backend"
	"github.com/gogpu/gg"
)

// TonalResolver turns raw ambient and spot shadow colors into the colors a
// shadow is drawn with.
type TonalResolver func(ambient, spot gg.RGBA) (gg.RGBA, gg.RGBA)

// Option configures a CanvasDispatcher.
type Option func(*options)

type options struct {
	tonal TonalResolver
	cull  *displaylist.Rect
}

func defaultOptions() options {
	return options{tonal: backend.ComputeTonalColors}
}

// WithTonalColors replaces backend.ComputeTonalColors for shadows.
func WithTonalColors(fn TonalResolver) Option {
	return func(o *options) {
		if fn != nil {
			o.tonal = fn
		}
	}
}

// WithCullRect limits RenderTo to the ops of the top-level list that can
// touch r, given in that list's coordinates. It only takes effect for lists
// recorded with an RTree, and never applies to nested lists.
func WithCullRect(r displaylist.Rect) Option {
	return func(o *options) {
		o.cull = &r
	}
}
