package raster

import (
	"image"
	"math"

	"github.com/gogpu/displaylist"
	"github.com/gogpu/displaylist/backend"
	"github.com/gogpu/gg"
)

// shader returns the premultiplied source color for the device pixel (x, y).
type shader func(x, y int) rgba

func solid(c rgba) shader {
	return func(int, int) rgba { return c }
}

// paintShader builds the source for p under the device transform m.
func paintShader(p *backend.Paint, m displaylist.Matrix) shader {
	filter := p.ColorFilter
	if p.ColorSource == nil {
		c := p.Color
		if filter != nil {
			c = applyColorFilter(filter, c)
		}
		return solid(premul(c))
	}

	alpha := p.Color.A
	var src func(lx, ly float64) gg.RGBA
	local := m
	switch cs := p.ColorSource.(type) {
	case *displaylist.ImageColorSource:
		src = imageSampler(cs)
		local = withLocal(m, cs.LocalMatrix)
	default:
		brush, lm := gradientBrush(cs)
		if brush == nil {
			return solid(premul(p.Color))
		}
		src = brush.ColorAt
		local = withLocal(m, lm)
	}
	inv, ok := local.Invert()
	if !ok {
		return solid(rgba{})
	}
	return func(x, y int) rgba {
		lx, ly := inv.MapPoint(float64(x)+0.5, float64(y)+0.5)
		c := src(lx, ly)
		c.A *= alpha
		if filter != nil {
			c = applyColorFilter(filter, c)
		}
		return premul(c)
	}
}

func withLocal(m displaylist.Matrix, local *displaylist.Matrix) displaylist.Matrix {
	if local == nil {
		return m
	}
	return m.Multiply(*local)
}

// gradientBrush converts a gradient color source to a gg brush. Conical
// gradients map to a focal radial gradient centered on the end circle.
func gradientBrush(cs displaylist.ColorSource) (gg.Brush, *displaylist.Matrix) {
	switch g := cs.(type) {
	case *displaylist.LinearGradient:
		b := gg.NewLinearGradientBrush(g.Start.X, g.Start.Y, g.End.X, g.End.Y).SetExtend(extendMode(g.Tile))
		for _, s := range g.Stops {
			b.AddColorStop(s.Offset, s.Color)
		}
		return b, g.LocalMatrix
	case *displaylist.RadialGradient:
		b := gg.NewRadialGradientBrush(g.Center.X, g.Center.Y, 0, g.Radius).SetExtend(extendMode(g.Tile))
		for _, s := range g.Stops {
			b.AddColorStop(s.Offset, s.Color)
		}
		return b, g.LocalMatrix
	case *displaylist.ConicalGradient:
		b := gg.NewRadialGradientBrush(g.EndCenter.X, g.EndCenter.Y, g.StartRadius, g.EndRadius).
			SetFocus(g.StartCenter.X, g.StartCenter.Y).
			SetExtend(extendMode(g.Tile))
		for _, s := range g.Stops {
			b.AddColorStop(s.Offset, s.Color)
		}
		return b, g.LocalMatrix
	case *displaylist.SweepGradient:
		b := gg.NewSweepGradientBrush(g.Center.X, g.Center.Y, radians(g.StartDegrees)).
			SetEndAngle(radians(g.EndDegrees)).
			SetExtend(extendMode(g.Tile))
		for _, s := range g.Stops {
			b.AddColorStop(s.Offset, s.Color)
		}
		return b, g.LocalMatrix
	}
	return nil, nil
}

func radians(deg float64) float64 { return deg * math.Pi / 180 }

// imageSampler samples an image shader in image space. Every sampling
// option other than nearest is bilinear.
func imageSampler(cs *displaylist.ImageColorSource) func(x, y float64) gg.RGBA {
	img := cs.Image
	if img == nil {
		return func(float64, float64) gg.RGBA { return gg.RGBA{} }
	}
	b := img.Bounds()
	at := func(ix, iy int) rgba {
		tx, okx := tile(ix, b.Min.X, b.Dx(), cs.TileX)
		ty, oky := tile(iy, b.Min.Y, b.Dy(), cs.TileY)
		if !okx || !oky {
			return rgba{}
		}
		return pixelAt(img, tx, ty)
	}
	if cs.Sampling == displaylist.ImageSamplingNearest {
		return func(x, y float64) gg.RGBA {
			return at(int(math.Floor(x)), int(math.Floor(y))).straight()
		}
	}
	return func(x, y float64) gg.RGBA {
		x, y = x-0.5, y-0.5
		x0, y0 := math.Floor(x), math.Floor(y)
		fx, fy := x-x0, y-y0
		ix, iy := int(x0), int(y0)
		top := lerp(at(ix, iy), at(ix+1, iy), fx)
		bottom := lerp(at(ix, iy+1), at(ix+1, iy+1), fx)
		return lerp(top, bottom, fy).straight()
	}
}

// tile maps the image coordinate i into [origin, origin+n). ok is false for
// decal samples outside the image.
func tile(i, origin, n int, mode displaylist.TileMode) (int, bool) {
	if n <= 0 {
		return 0, false
	}
	rel := i - origin
	switch mode {
	case displaylist.TileModeRepeat:
		rel = ((rel % n) + n) % n
	case displaylist.TileModeMirror:
		period := 2 * n
		rel = ((rel % period) + period) % period
		if rel >= n {
			rel = period - 1 - rel
		}
	case displaylist.TileModeDecal:
		if rel < 0 || rel >= n {
			return 0, false
		}
	default:
		rel = max(0, min(n-1, rel))
	}
	return origin + rel, true
}

func pixelAt(img image.Image, x, y int) rgba {
	r, g, b, a := img.At(x, y).RGBA()
	return rgba{float64(r) / 0xffff, float64(g) / 0xffff, float64(b) / 0xffff, float64(a) / 0xffff}
}

// applyColorFilter filters an unpremultiplied color.
func applyColorFilter(f displaylist.ColorFilter, c gg.RGBA) gg.RGBA {
	switch f := f.(type) {
	case *displaylist.MatrixColorFilter:
		return f.Apply(c)
	case *displaylist.BlendColorFilter:
		return blend(f.Mode, premul(f.Color), premul(c)).straight()
	case *displaylist.ComposeColorFilter:
		return applyColorFilter(f.Outer, applyColorFilter(f.Inner, c))
	case displaylist.SrgbToLinearGamma, *displaylist.SrgbToLinearGamma:
		return gg.RGBA{R: srgbToLinear(c.R), G: srgbToLinear(c.G), B: srgbToLinear(c.B), A: c.A}
	case displaylist.LinearToSrgbGamma, *displaylist.LinearToSrgbGamma:
		return gg.RGBA{R: linearToSrgb(c.R), G: linearToSrgb(c.G), B: linearToSrgb(c.B), A: c.A}
	}
	return c
}

func srgbToLinear(v float64) float64 {
	if v <= 0.04045 {
		return v / 12.92
	}
	return math.Pow((v+0.055)/1.055, 2.4)
}

func linearToSrgb(v float64) float64 {
	if v <= 0.0031308 {
		return v * 12.92
	}
	return 1.055*math.Pow(v, 1/2.4) - 0.055
}
