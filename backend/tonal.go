package backend

import (
	"math"

	"github.com/gogpu/gg"
)

// ComputeTonalColors converts the raw ambient and spot shadow colors into
// the colors a shadow is drawn with. The ambient shadow becomes greyscale
// with its alpha kept. The spot shadow mixes a luminance-weighted tint of its
// color with a black shadow, so light colors read as a tinted shadow and dark
// colors read as plain shade.
func ComputeTonalColors(ambient, spot gg.RGBA) (gg.RGBA, gg.RGBA) {
	outAmbient := gg.RGBA{A: ambient.A}

	hi := math.Max(math.Max(spot.R, spot.G), spot.B)
	lo := math.Min(math.Min(spot.R, spot.G), spot.B)
	luminance := 0.5 * (hi + lo)
	a := spot.A

	alphaAdjust := (2.6 + (-2.66667+1.06667*a)*a) * a
	colorAlpha := (3.544762 + (-4.891428+2.3466*luminance)*luminance) * luminance
	colorAlpha = clamp01(alphaAdjust * colorAlpha)
	greyAlpha := clamp01(a * (1 - 0.4*luminance))

	colorScale := colorAlpha * (1 - greyAlpha)
	tonalAlpha := colorScale + greyAlpha
	if tonalAlpha <= 0 {
		return outAmbient, gg.RGBA{}
	}
	unpremul := colorScale / tonalAlpha
	outSpot := gg.RGBA{
		R: unpremul * spot.R,
		G: unpremul * spot.G,
		B: unpremul * spot.B,
		A: tonalAlpha,
	}
	return outAmbient, outSpot
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
