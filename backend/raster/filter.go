package raster

import (
	"image"
	"math"

	"github.com/gogpu/displaylist"
	"github.com/gogpu/gg"
)

// plane is a premultiplied float copy of a pixmap region, used by the
// filters so repeated passes do not lose precision to 8-bit rounding.
type plane struct {
	area image.Rectangle
	px   []rgba
}

func readPlane(pm *gg.Pixmap, area image.Rectangle) *plane {
	p := &plane{area: area, px: make([]rgba, area.Dx()*area.Dy())}
	data, stride := pm.Data(), pm.Width()*4
	for y := area.Min.Y; y < area.Max.Y; y++ {
		row := (y - area.Min.Y) * area.Dx()
		for x := area.Min.X; x < area.Max.X; x++ {
			i := y*stride + x*4
			p.px[row+x-area.Min.X] = load(data[i : i+4])
		}
	}
	return p
}

func (p *plane) write(pm *gg.Pixmap) {
	data, stride := pm.Data(), pm.Width()*4
	for y := p.area.Min.Y; y < p.area.Max.Y; y++ {
		row := (y - p.area.Min.Y) * p.area.Dx()
		for x := p.area.Min.X; x < p.area.Max.X; x++ {
			i := y*stride + x*4
			store(data[i:i+4], p.px[row+x-p.area.Min.X])
		}
	}
}

// pass runs f over every row (horizontal) or column of the plane. f gets a
// line of pixels and writes the filtered line into out.
func (p *plane) pass(horizontal bool, f func(in, out []rgba)) {
	w, h := p.area.Dx(), p.area.Dy()
	n, lines := w, h
	if !horizontal {
		n, lines = h, w
	}
	in, out := make([]rgba, n), make([]rgba, n)
	for l := 0; l < lines; l++ {
		for i := 0; i < n; i++ {
			in[i] = p.px[p.index(horizontal, l, i)]
		}
		f(in, out)
		for i := 0; i < n; i++ {
			p.px[p.index(horizontal, l, i)] = out[i]
		}
	}
}

func (p *plane) index(horizontal bool, line, i int) int {
	if horizontal {
		return line*p.area.Dx() + i
	}
	return i*p.area.Dx() + line
}

// boxRadius returns the radius of the box filter that, applied three times,
// approximates a Gaussian with the given standard deviation.
func boxRadius(sigma float64) int {
	if sigma <= 0 {
		return 0
	}
	w := math.Sqrt(4*sigma*sigma + 1)
	return int(math.Round((w - 1) / 2))
}

// blur approximates a Gaussian blur with three box passes per axis. Pixels
// outside the plane count as transparent.
func (p *plane) blur(sigmaX, sigmaY float64) {
	for axis, sigma := range [2]float64{sigmaX, sigmaY} {
		r := boxRadius(sigma)
		if r == 0 {
			continue
		}
		for range 3 {
			p.pass(axis == 0, func(in, out []rgba) { boxLine(in, out, r) })
		}
	}
}

func boxLine(in, out []rgba, r int) {
	var sum rgba
	k := 1 / float64(2*r+1)
	add := func(i int, sign float64) {
		if i >= 0 && i < len(in) {
			c := in[i]
			sum = rgba{sum.r + sign*c.r, sum.g + sign*c.g, sum.b + sign*c.b, sum.a + sign*c.a}
		}
	}
	for i := -r; i < r; i++ {
		add(i, 1)
	}
	for i := range in {
		add(i+r, 1)
		out[i] = sum.scale(k)
		add(i-r, -1)
	}
}

// morph replaces each pixel with the per-channel maximum (dilate) or minimum
// over the radius.
func (p *plane) morph(rx, ry int, dilate bool) {
	pick := math.Min
	if dilate {
		pick = math.Max
	}
	for axis, r := range [2]int{rx, ry} {
		if r <= 0 {
			continue
		}
		p.pass(axis == 0, func(in, out []rgba) {
			for i := range in {
				v := in[i]
				for j := max(0, i-r); j <= min(len(in)-1, i+r); j++ {
					c := in[j]
					v = rgba{pick(v.r, c.r), pick(v.g, c.g), pick(v.b, c.b), pick(v.a, c.a)}
				}
				out[i] = v
			}
		})
	}
}

// applyImageFilter filters the area of pm in place. Sizes are scaled from
// local units by the transform. Matrix filters are not supported.
func applyImageFilter(pm *gg.Pixmap, area image.Rectangle, f displaylist.ImageFilter, m displaylist.Matrix) {
	if f == nil || area.Empty() {
		return
	}
	scale := m.MaxScale()
	switch f := f.(type) {
	case *displaylist.BlurImageFilter:
		p := readPlane(pm, area)
		p.blur(f.SigmaX*scale, f.SigmaY*scale)
		p.write(pm)
	case *displaylist.DilateImageFilter:
		p := readPlane(pm, area)
		p.morph(int(math.Round(f.RadiusX*scale)), int(math.Round(f.RadiusY*scale)), true)
		p.write(pm)
	case *displaylist.ErodeImageFilter:
		p := readPlane(pm, area)
		p.morph(int(math.Round(f.RadiusX*scale)), int(math.Round(f.RadiusY*scale)), false)
		p.write(pm)
	case *displaylist.ColorFilterImageFilter:
		p := readPlane(pm, area)
		for i, c := range p.px {
			p.px[i] = premul(applyColorFilter(f.Filter, c.straight()))
		}
		p.write(pm)
	case *displaylist.ComposeImageFilter:
		applyImageFilter(pm, area, f.Inner, m)
		applyImageFilter(pm, area, f.Outer, m)
	default:
		displaylist.Logger().Debug("raster: image filter not supported", "filter", f)
	}
}

// applyMaskFilter filters coverage in the area of pm.
func applyMaskFilter(pm *gg.Pixmap, area image.Rectangle, f displaylist.MaskFilter, m displaylist.Matrix) {
	mf, ok := f.(*displaylist.BlurMaskFilter)
	if !ok || area.Empty() {
		return
	}
	p := readPlane(pm, area)
	orig := append([]rgba(nil), p.px...)
	sigma := mf.Sigma * m.MaxScale()
	p.blur(sigma, sigma)
	for i, c := range p.px {
		o := orig[i].a
		switch mf.Style {
		case displaylist.BlurStyleSolid:
			c.a = math.Max(c.a, o)
		case displaylist.BlurStyleOuter:
			c.a *= 1 - o
		case displaylist.BlurStyleInner:
			c.a *= o
		}
		p.px[i] = rgba{c.a, c.a, c.a, c.a}
	}
	p.write(pm)
}
