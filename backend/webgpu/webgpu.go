package webgpu

import (
	"github.com/gogpu/displaylist"
	"github.com/gogpu/gputypes"
)

func component(src, dst gputypes.BlendFactor) gputypes.BlendComponent {
	return gputypes.BlendComponent{SrcFactor: src, DstFactor: dst, Operation: gputypes.BlendOperationAdd}
}

func both(src, dst gputypes.BlendFactor) gputypes.BlendState {
	c := component(src, dst)
	return gputypes.BlendState{Color: c, Alpha: c}
}

// BlendState returns the fixed-function blend state for m. ok is false for
// the advanced modes after Screen, which need the destination in a shader.
func BlendState(m displaylist.BlendMode) (state gputypes.BlendState, ok bool) {
	const (
		zero       = gputypes.BlendFactorZero
		one        = gputypes.BlendFactorOne
		sa         = gputypes.BlendFactorSrcAlpha
		oneMinusSA = gputypes.BlendFactorOneMinusSrcAlpha
		da         = gputypes.BlendFactorDstAlpha
		oneMinusDA = gputypes.BlendFactorOneMinusDstAlpha
	)
	switch m {
	case displaylist.BlendModeClear:
		return both(zero, zero), true
	case displaylist.BlendModeSrc:
		return both(one, zero), true
	case displaylist.BlendModeDst:
		return both(zero, one), true
	case displaylist.BlendModeSrcOver:
		return both(one, oneMinusSA), true
	case displaylist.BlendModeDstOver:
		return both(oneMinusDA, one), true
	case displaylist.BlendModeSrcIn:
		return both(da, zero), true
	case displaylist.BlendModeDstIn:
		return both(zero, sa), true
	case displaylist.BlendModeSrcOut:
		return both(oneMinusDA, zero), true
	case displaylist.BlendModeDstOut:
		return both(zero, oneMinusSA), true
	case displaylist.BlendModeSrcATop:
		return both(da, oneMinusSA), true
	case displaylist.BlendModeDstATop:
		return both(oneMinusDA, sa), true
	case displaylist.BlendModeXor:
		return both(oneMinusDA, oneMinusSA), true
	case displaylist.BlendModePlus:
		// The unorm target saturates the sum.
		return both(one, one), true
	case displaylist.BlendModeModulate:
		return gputypes.BlendState{
			Color: component(zero, gputypes.BlendFactorSrc),
			Alpha: component(zero, sa),
		}, true
	case displaylist.BlendModeScreen:
		return gputypes.BlendState{
			Color: component(one, gputypes.BlendFactorOneMinusSrc),
			Alpha: component(one, oneMinusSA),
		}, true
	}
	return gputypes.BlendState{}, false
}

// FixedFunction reports whether every root op of list blends with a mode
// BlendState covers, so a GPU backend can draw it without reading the
// destination in a shader.
func FixedFunction(list *displaylist.DisplayList) bool {
	if list == nil {
		return true
	}
	_, ok := BlendState(list.MaxRootBlendMode())
	return ok
}

// AddressMode returns the sampler address mode for t. Decal has no sampler
// equivalent; it clamps and reports false so the shader can discard
// samples outside the image.
func AddressMode(t displaylist.TileMode) (gputypes.AddressMode, bool) {
	switch t {
	case displaylist.TileModeClamp:
		return gputypes.AddressModeClampToEdge, true
	case displaylist.TileModeRepeat:
		return gputypes.AddressModeRepeat, true
	case displaylist.TileModeMirror:
		return gputypes.AddressModeMirrorRepeat, true
	}
	return gputypes.AddressModeClampToEdge, false
}

// Filter holds the three sampler filters for an ImageSampling.
type Filter struct {
	Mag, Min, Mipmap gputypes.FilterMode
}

// SamplingFilter returns the sampler filters for s. Cubic sampling needs a
// shader; its sampler is linear.
func SamplingFilter(s displaylist.ImageSampling) Filter {
	switch s {
	case displaylist.ImageSamplingNearest:
		return Filter{gputypes.FilterModeNearest, gputypes.FilterModeNearest, gputypes.FilterModeNearest}
	case displaylist.ImageSamplingMipmapLinear:
		return Filter{gputypes.FilterModeLinear, gputypes.FilterModeLinear, gputypes.FilterModeLinear}
	default:
		return Filter{gputypes.FilterModeLinear, gputypes.FilterModeLinear, gputypes.FilterModeNearest}
	}
}

// FilterMode returns the sampler filter for a nine-patch filter mode.
func FilterMode(f displaylist.FilterMode) gputypes.FilterMode {
	if f == displaylist.FilterModeNearest {
		return gputypes.FilterModeNearest
	}
	return gputypes.FilterModeLinear
}

// Sampler is the sampler configuration of an image color source.
type Sampler struct {
	AddressU, AddressV gputypes.AddressMode
	Filter
	// Decal is set when either axis needs shader-side decal handling.
	Decal bool
}

// SamplerFor returns the sampler configuration of src.
func SamplerFor(src *displaylist.ImageColorSource) Sampler {
	u, okU := AddressMode(src.TileX)
	v, okV := AddressMode(src.TileY)
	return Sampler{
		AddressU: u,
		AddressV: v,
		Filter:   SamplingFilter(src.Sampling),
		Decal:    !okU || !okV,
	}
}
