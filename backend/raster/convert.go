package raster

import (
	"github.com/gogpu/displaylist"
	"github.com/gogpu/gg"
	xdraw "golang.org/x/image/draw"
)

// lineCap converts a stroke cap to the gg equivalent. Unknown caps are butt.
func lineCap(c displaylist.StrokeCap) gg.LineCap {
	switch c {
	case displaylist.StrokeCapButt:
		return gg.LineCapButt
	case displaylist.StrokeCapRound:
		return gg.LineCapRound
	case displaylist.StrokeCapSquare:
		return gg.LineCapSquare
	}
	return gg.LineCapButt
}

// lineJoin converts a stroke join to the gg equivalent. Unknown joins miter.
func lineJoin(j displaylist.StrokeJoin) gg.LineJoin {
	switch j {
	case displaylist.StrokeJoinMiter:
		return gg.LineJoinMiter
	case displaylist.StrokeJoinRound:
		return gg.LineJoinRound
	case displaylist.StrokeJoinBevel:
		return gg.LineJoinBevel
	}
	return gg.LineJoinMiter
}

// extendMode converts a gradient tile mode. gg has no decal extension, so
// decal gradients pad instead.
func extendMode(t displaylist.TileMode) gg.ExtendMode {
	switch t {
	case displaylist.TileModeClamp, displaylist.TileModeDecal:
		return gg.ExtendPad
	case displaylist.TileModeRepeat:
		return gg.ExtendRepeat
	case displaylist.TileModeMirror:
		return gg.ExtendReflect
	}
	return gg.ExtendPad
}

// interpolator picks the x/image scaler for a sampling option. Mipmaps are
// not built; MipmapLinear uses the exact bilinear kernel instead.
func interpolator(s displaylist.ImageSampling) xdraw.Interpolator {
	switch s {
	case displaylist.ImageSamplingNearest:
		return xdraw.NearestNeighbor
	case displaylist.ImageSamplingLinear:
		return xdraw.ApproxBiLinear
	case displaylist.ImageSamplingMipmapLinear:
		return xdraw.BiLinear
	case displaylist.ImageSamplingCubic:
		return xdraw.CatmullRom
	}
	return xdraw.ApproxBiLinear
}

// filterInterpolator is interpolator for nine-patch filter modes.
func filterInterpolator(f displaylist.FilterMode) xdraw.Interpolator {
	switch f {
	case displaylist.FilterModeNearest:
		return xdraw.NearestNeighbor
	case displaylist.FilterModeLinear:
		return xdraw.ApproxBiLinear
	}
	return xdraw.ApproxBiLinear
}
