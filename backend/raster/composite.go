package raster

import (
	"math"

	"github.com/gogpu/displaylist"
	"github.com/gogpu/gg"
	"github.com/gogpu/gg/scene"
)

// rgba is a premultiplied color with components in [0, 1].
type rgba struct {
	r, g, b, a float64
}

func premul(c gg.RGBA) rgba {
	return rgba{c.R * c.A, c.G * c.A, c.B * c.A, c.A}
}

// straight returns the unpremultiplied color.
func (c rgba) straight() gg.RGBA {
	if c.a <= 0 {
		return gg.RGBA{}
	}
	return gg.RGBA{R: clamp01(c.r / c.a), G: clamp01(c.g / c.a), B: clamp01(c.b / c.a), A: clamp01(c.a)}
}

func (c rgba) scale(k float64) rgba {
	return rgba{c.r * k, c.g * k, c.b * k, c.a * k}
}

func lerp(from, to rgba, t float64) rgba {
	return rgba{
		from.r + (to.r-from.r)*t,
		from.g + (to.g-from.g)*t,
		from.b + (to.b-from.b)*t,
		from.a + (to.a-from.a)*t,
	}
}

// load reads a straight RGBA8 pixel as premultiplied color.
func load(px []uint8) rgba {
	a := float64(px[3]) / 255
	return rgba{
		float64(px[0]) / 255 * a,
		float64(px[1]) / 255 * a,
		float64(px[2]) / 255 * a,
		a,
	}
}

// store writes c as a straight RGBA8 pixel.
func store(px []uint8, c rgba) {
	s := c.straight()
	px[0] = to8(s.R)
	px[1] = to8(s.G)
	px[2] = to8(s.B)
	px[3] = to8(s.A)
}

func to8(v float64) uint8 {
	return uint8(math.Round(clamp01(v) * 255))
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}

// blend combines source s over destination d with mode. Coverage is applied
// by the caller, so every mode here assumes full coverage. Colors are
// quantized to 8 bits and run through gg's scene blend functions.
func blend(mode displaylist.BlendMode, s, d rgba) rgba {
	sm, ok := sceneBlend(mode)
	if !ok {
		// Modulate has no scene equivalent.
		return rgba{s.r * d.r, s.g * d.g, s.b * d.b, s.a * d.a}
	}
	f := sm.GetBlendFunc()
	r, g, b, a := f(to8(s.r), to8(s.g), to8(s.b), to8(s.a), to8(d.r), to8(d.g), to8(d.b), to8(d.a))
	return rgba{float64(r) / 255, float64(g) / 255, float64(b) / 255, float64(a) / 255}
}

// sceneBlend maps mode to the scene blend mode with the same formula.
// It reports false for Modulate.
func sceneBlend(mode displaylist.BlendMode) (scene.BlendMode, bool) {
	switch mode {
	case displaylist.BlendModeClear:
		return scene.BlendClear, true
	case displaylist.BlendModeSrc:
		return scene.BlendCopy, true
	case displaylist.BlendModeDst:
		return scene.BlendDestination, true
	case displaylist.BlendModeSrcOver:
		return scene.BlendSourceOver, true
	case displaylist.BlendModeDstOver:
		return scene.BlendDestinationOver, true
	case displaylist.BlendModeSrcIn:
		return scene.BlendSourceIn, true
	case displaylist.BlendModeDstIn:
		return scene.BlendDestinationIn, true
	case displaylist.BlendModeSrcOut:
		return scene.BlendSourceOut, true
	case displaylist.BlendModeDstOut:
		return scene.BlendDestinationOut, true
	case displaylist.BlendModeSrcATop:
		return scene.BlendSourceAtop, true
	case displaylist.BlendModeDstATop:
		return scene.BlendDestinationAtop, true
	case displaylist.BlendModeXor:
		return scene.BlendXor, true
	case displaylist.BlendModePlus:
		return scene.BlendPlus, true
	case displaylist.BlendModeModulate:
		return 0, false
	case displaylist.BlendModeScreen:
		return scene.BlendScreen, true
	case displaylist.BlendModeOverlay:
		return scene.BlendOverlay, true
	case displaylist.BlendModeDarken:
		return scene.BlendDarken, true
	case displaylist.BlendModeLighten:
		return scene.BlendLighten, true
	case displaylist.BlendModeColorDodge:
		return scene.BlendColorDodge, true
	case displaylist.BlendModeColorBurn:
		return scene.BlendColorBurn, true
	case displaylist.BlendModeHardLight:
		return scene.BlendHardLight, true
	case displaylist.BlendModeSoftLight:
		return scene.BlendSoftLight, true
	case displaylist.BlendModeDifference:
		return scene.BlendDifference, true
	case displaylist.BlendModeExclusion:
		return scene.BlendExclusion, true
	case displaylist.BlendModeMultiply:
		return scene.BlendMultiply, true
	case displaylist.BlendModeHue:
		return scene.BlendHue, true
	case displaylist.BlendModeSaturation:
		return scene.BlendSaturation, true
	case displaylist.BlendModeColor:
		return scene.BlendColor, true
	case displaylist.BlendModeLuminosity:
		return scene.BlendLuminosity, true
	}
	return scene.BlendSourceOver, true
}
