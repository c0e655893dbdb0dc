package displaylist

import (
	"math"

	"github.com/gogpu/gg"
)

// Shadow light geometry. The light sits ShadowLightHeight logical pixels
// above the canvas with radius ShadowLightRadius; only their ratio matters
// for a directional light.
const (
	ShadowLightHeight = 600.0
	ShadowLightRadius = 800.0
)

// ambient blur grows with elevation at 1/128 * 64 per unit and is capped.
const (
	ambientBlurPerZ  = 0.5
	maxAmbientRadius = 300.0
)

// ShadowBounds returns the local-space area touched by a shadow cast by
// path at the given elevation. It covers the ambient shadow around the path
// and the spot shadow offset away from the directional light, plus one
// pixel for antialiasing.
func ShadowBounds(path *gg.Path, elevation, devicePixelRatio float64) Rect {
	r := PathBounds(path)
	if r.IsEmpty() {
		return Rect{}
	}
	z := math.Max(elevation*devicePixelRatio, 0)
	ambient := math.Min(z*ambientBlurPerZ, maxAmbientRadius)
	spotBlur := z * ShadowLightRadius / ShadowLightHeight
	// Light direction (0, -1, 1) casts the spot shadow z pixels downward.
	spot := r.Offset(0, z).Outset(spotBlur, spotBlur)
	return r.Outset(ambient, ambient).Union(spot).Outset(1, 1)
}
