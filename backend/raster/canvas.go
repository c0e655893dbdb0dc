package raster

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"math"
	"os"

	"github.com/gogpu/displaylist"
	"github.com/gogpu/displaylist/backend"
	"github.com/gogpu/gg"
)

// Name is the registry name of the raster canvas.
const Name = "raster"

func init() {
	backend.Register(Name, func(width, height int) (backend.Canvas, error) {
		c, err := NewCanvas(width, height)
		if err != nil {
			return nil, err
		}
		return c, nil
	})
}

// layer is an offscreen target opened by SaveLayer.
type layer struct {
	pixmap *gg.Pixmap
	paint  backend.Paint
	area   image.Rectangle
	matrix displaylist.Matrix
}

// state is one entry of the save stack.
type state struct {
	matrix     displaylist.Matrix
	clip       *gg.Mask // nil when nothing is clipped
	clipBounds image.Rectangle
	target     *gg.Pixmap
	layer      *layer // set on the entry a SaveLayer pushed
}

// Canvas is a CPU backend.Canvas drawing into a gg.Pixmap.
//
// gg rasterizes coverage into a scratch pixmap; the canvas then applies the
// clip mask and the paint's blend mode itself. Transforms are treated as 2D
// affine.
//
// A Canvas is not safe for concurrent use.
type Canvas struct {
	width, height int
	base          *gg.Pixmap
	states        []state

	cover    *gg.Pixmap // coverage of the current draw, in alpha
	coverCtx *gg.Context
	content  *gg.Pixmap // image pixels of the current draw
}

// NewCanvas creates a transparent canvas of the given size.
func NewCanvas(width, height int) (*Canvas, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", backend.ErrInvalidSize, width, height)
	}
	c := &Canvas{
		width:   width,
		height:  height,
		base:    gg.NewPixmap(width, height),
		cover:   gg.NewPixmap(width, height),
		content: gg.NewPixmap(width, height),
	}
	c.coverCtx = gg.NewContext(width, height, gg.WithPixmap(c.cover))
	c.states = []state{{
		matrix:     displaylist.Identity(),
		clipBounds: image.Rect(0, 0, width, height),
		target:     c.base,
	}}
	return c, nil
}

// Width returns the canvas width in pixels.
func (c *Canvas) Width() int { return c.width }

// Height returns the canvas height in pixels.
func (c *Canvas) Height() int { return c.height }

// Pixmap returns the base pixmap. Open layers are not included until they
// are restored.
func (c *Canvas) Pixmap() *gg.Pixmap { return c.base }

// Image returns a copy of the canvas as an image.
func (c *Canvas) Image() *image.RGBA { return c.base.ToImage() }

// EncodePNG writes the canvas as PNG to w.
func (c *Canvas) EncodePNG(w io.Writer) error {
	return png.Encode(w, c.base.ToImage())
}

// SavePNG writes the canvas to a PNG file.
func (c *Canvas) SavePNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("raster: create %s: %w", path, err)
	}
	if err := c.EncodePNG(f); err != nil {
		f.Close()
		return fmt.Errorf("raster: encode %s: %w", path, err)
	}
	return f.Close()
}

// Close releases the scratch context.
func (c *Canvas) Close() error {
	return c.coverCtx.Close()
}

func (c *Canvas) top() *state { return &c.states[len(c.states)-1] }

// SaveCount returns the number of saved states, counting the base state.
func (c *Canvas) SaveCount() int { return len(c.states) }

// Save pushes a copy of the matrix and clip.
func (c *Canvas) Save() {
	s := *c.top()
	s.layer = nil
	c.states = append(c.states, s)
}

// SaveLayer opens a transparent layer covering bounds, or the clip when
// bounds is nil. A backdrop filter starts the layer from a filtered copy of
// what is underneath.
func (c *Canvas) SaveLayer(bounds *displaylist.Rect, paint *backend.Paint, backdrop displaylist.ImageFilter) {
	s := *c.top()
	area := s.clipBounds
	if bounds != nil {
		area = area.Intersect(c.deviceArea(s.matrix.MapRect(*bounds), 0))
	}
	l := &layer{
		pixmap: gg.NewPixmap(c.width, c.height),
		paint:  *paint.OrDefault(),
		area:   area,
		matrix: s.matrix,
	}
	if backdrop != nil && !area.Empty() {
		copyArea(l.pixmap, s.target, area)
		applyImageFilter(l.pixmap, area, backdrop, s.matrix)
	}
	s.layer = l
	s.target = l.pixmap
	s.clipBounds = area
	c.states = append(c.states, s)
}

// Restore pops one state and composites its layer, if any. The base state
// is never popped.
func (c *Canvas) Restore() {
	if len(c.states) == 1 {
		return
	}
	s := c.states[len(c.states)-1]
	c.states = c.states[:len(c.states)-1]
	if s.layer != nil {
		c.compositeLayer(s.layer, c.top())
	}
}

// RestoreToCount restores until count states remain.
func (c *Canvas) RestoreToCount(count int) {
	for len(c.states) > max(count, 1) {
		c.Restore()
	}
}

// compositeLayer draws l into the target of parent with the layer paint.
func (c *Canvas) compositeLayer(l *layer, parent *state) {
	p := &l.paint
	applyImageFilter(l.pixmap, l.area, p.ImageFilter, l.matrix)
	data := l.pixmap.Data()
	alpha := p.Color.A
	filter := p.ColorFilter
	src := func(x, y int) rgba {
		i := (y*c.width + x) * 4
		px := load(data[i : i+4]).scale(alpha)
		if filter != nil {
			return premul(applyColorFilter(filter, px.straight()))
		}
		return px
	}
	c.composite(parent, l.area, nil, src, p.BlendMode, true)
}

// Concat multiplies m into the current matrix.
func (c *Canvas) Concat(m displaylist.Matrix) {
	s := c.top()
	s.matrix = s.matrix.Multiply(m)
}

// SetMatrix replaces the current matrix.
func (c *Canvas) SetMatrix(m displaylist.Matrix) { c.top().matrix = m }

// TotalMatrix returns the current matrix.
func (c *Canvas) TotalMatrix() displaylist.Matrix { return c.top().matrix }

// ClipRect clips to r.
func (c *Canvas) ClipRect(r displaylist.Rect, op displaylist.ClipOp, antiAlias bool) {
	c.clip(r.Path(), r, op, antiAlias)
}

// ClipRRect clips to rr.
func (c *Canvas) ClipRRect(rr displaylist.RRect, op displaylist.ClipOp, antiAlias bool) {
	c.clip(rr.Path(), rr.Rect, op, antiAlias)
}

// ClipPath clips to path. A nil path is ignored.
func (c *Canvas) ClipPath(path *gg.Path, op displaylist.ClipOp, antiAlias bool) {
	if path == nil {
		return
	}
	c.clip(path, displaylist.PathBounds(path), op, antiAlias)
}

// clip multiplies the coverage of path into the clip mask. Intersect clips
// also shrink the clip bounds; difference clips leave them alone.
func (c *Canvas) clip(path *gg.Path, local displaylist.Rect, op displaylist.ClipOp, aa bool) {
	s := c.top()
	dev := c.deviceArea(s.matrix.MapRect(local), 1)
	fill := backend.NewPaint()
	c.rasterize(path, s.matrix, &fill, gg.FillRuleNonZero)

	var mask *gg.Mask
	if s.clip != nil {
		mask = s.clip.Clone()
	} else {
		mask = gg.NewMask(c.width, c.height)
		mask.Fill(255)
	}
	cover := c.cover.Data()
	for y := s.clipBounds.Min.Y; y < s.clipBounds.Max.Y; y++ {
		for x := s.clipBounds.Min.X; x < s.clipBounds.Max.X; x++ {
			in := image.Pt(x, y).In(dev)
			if !in && op == displaylist.ClipDifference {
				continue
			}
			var cov uint8
			if in {
				cov = coverage(cover[(y*c.width+x)*4+3], aa)
			}
			if op == displaylist.ClipDifference {
				cov = 255 - cov
			}
			mask.Set(x, y, uint8(uint16(mask.At(x, y))*uint16(cov)/255))
		}
	}
	s.clip = mask
	if op == displaylist.ClipIntersect {
		s.clipBounds = s.clipBounds.Intersect(dev)
	}
}

// DeviceClipBounds returns the clip bounds in whole device pixels.
func (c *Canvas) DeviceClipBounds() displaylist.Rect {
	b := c.top().clipBounds
	return displaylist.LTRB(float64(b.Min.X), float64(b.Min.Y), float64(b.Max.X), float64(b.Max.Y))
}

// deviceArea rounds a device rect out to whole pixels, grows it by outset
// and limits it to the canvas.
func (c *Canvas) deviceArea(r displaylist.Rect, outset float64) image.Rectangle {
	if r.IsEmpty() {
		return image.Rectangle{}
	}
	r = r.Outset(outset, outset)
	area := image.Rect(
		int(math.Floor(max(r.MinX, -1))), int(math.Floor(max(r.MinY, -1))),
		int(math.Ceil(min(r.MaxX, float64(c.width+1)))), int(math.Ceil(min(r.MaxY, float64(c.height+1)))),
	)
	return area.Intersect(image.Rect(0, 0, c.width, c.height))
}

// coverage quantizes an 8-bit coverage value when antialiasing is off.
func coverage(v uint8, aa bool) uint8 {
	if aa || v == 0 {
		return v
	}
	if v < 128 {
		return 0
	}
	return 255
}

// composite blends src into the target of s over area. cover supplies
// per-pixel coverage in its alpha channel; nil means full coverage.
func (c *Canvas) composite(s *state, area image.Rectangle, cover *gg.Pixmap, src shader,
	mode displaylist.BlendMode, aa bool) {
	area = area.Intersect(s.clipBounds)
	dst := s.target.Data()
	var cov []uint8
	if cover != nil {
		cov = cover.Data()
	}
	for y := area.Min.Y; y < area.Max.Y; y++ {
		for x := area.Min.X; x < area.Max.X; x++ {
			i := (y*c.width + x) * 4
			t := 1.0
			if cov != nil {
				v := coverage(cov[i+3], aa)
				if v == 0 {
					continue
				}
				t = float64(v) / 255
			}
			if s.clip != nil {
				m := s.clip.At(x, y)
				if m == 0 {
					continue
				}
				t *= float64(m) / 255
			}
			d := load(dst[i : i+4])
			store(dst[i:i+4], lerp(d, blend(mode, src(x, y), d), t))
		}
	}
}

func copyArea(dst, src *gg.Pixmap, area image.Rectangle) {
	stride := src.Width() * 4
	for y := area.Min.Y; y < area.Max.Y; y++ {
		i := y*stride + area.Min.X*4
		copy(dst.Data()[i:i+area.Dx()*4], src.Data()[i:i+area.Dx()*4])
	}
}

// nrgba views a pixmap as an image.NRGBA sharing its pixels, so x/image can
// draw into it.
func nrgba(pm *gg.Pixmap) *image.NRGBA {
	return &image.NRGBA{Pix: pm.Data(), Stride: pm.Width() * 4, Rect: image.Rect(0, 0, pm.Width(), pm.Height())}
}

var _ backend.Canvas = (*Canvas)(nil)
