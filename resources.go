package displaylist

import (
	"image"
	"math"

	"github.com/go-text/typesetting/shaping"
	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"golang.org/x/image/math/fixed"
)

// Vertices is an immutable triangle mesh. Its inputs are copied and its
// bounds computed once at construction.
type Vertices struct {
	mode      VertexMode
	positions []gg.Point
	texCoords []gg.Point
	colors    []gg.RGBA
	indices   []uint16
	bounds    Rect
}

// NewVertices creates a mesh. texCoords and colors may be nil; when present
// they must have one entry per position. indices may be nil to use the
// positions in order.
func NewVertices(mode VertexMode, positions, texCoords []gg.Point, colors []gg.RGBA, indices []uint16) *Vertices {
	v := &Vertices{
		mode:      mode,
		positions: append([]gg.Point(nil), positions...),
		texCoords: append([]gg.Point(nil), texCoords...),
		colors:    append([]gg.RGBA(nil), colors...),
		indices:   append([]uint16(nil), indices...),
	}
	v.bounds = pointBounds(v.positions)
	return v
}

// Mode returns the triangle assembly mode.
func (v *Vertices) Mode() VertexMode { return v.mode }

// Positions returns the vertex positions. The slice must not be modified.
func (v *Vertices) Positions() []gg.Point { return v.positions }

// TexCoords returns the texture coordinates, or nil.
func (v *Vertices) TexCoords() []gg.Point { return v.texCoords }

// Colors returns the per-vertex colors, or nil.
func (v *Vertices) Colors() []gg.RGBA { return v.colors }

// Indices returns the triangle indices, or nil.
func (v *Vertices) Indices() []uint16 { return v.indices }

// Bounds returns the bounding box of the positions.
func (v *Vertices) Bounds() Rect { return v.bounds }

// Triangles returns the mesh as a flat list of triangles, three points each,
// resolving indices and strip/fan assembly.
func (v *Vertices) Triangles() [][3]gg.Point {
	at := func(i int) gg.Point {
		if v.indices != nil {
			return v.positions[v.indices[i]]
		}
		return v.positions[i]
	}
	n := len(v.positions)
	if v.indices != nil {
		n = len(v.indices)
	}
	var tris [][3]gg.Point
	switch v.mode {
	case VertexModeTriangles:
		for i := 0; i+2 < n; i += 3 {
			tris = append(tris, [3]gg.Point{at(i), at(i + 1), at(i + 2)})
		}
	case VertexModeTriangleStrip:
		for i := 0; i+2 < n; i++ {
			tris = append(tris, [3]gg.Point{at(i), at(i + 1), at(i + 2)})
		}
	case VertexModeTriangleFan:
		for i := 1; i+1 < n; i++ {
			tris = append(tris, [3]gg.Point{at(0), at(i), at(i + 1)})
		}
	}
	return tris
}

func pointBounds(pts []gg.Point) Rect {
	if len(pts) == 0 {
		return Rect{}
	}
	r := Rect{MinX: math.Inf(1), MinY: math.Inf(1), MaxX: math.Inf(-1), MaxY: math.Inf(-1)}
	for _, p := range pts {
		r.MinX = math.Min(r.MinX, p.X)
		r.MinY = math.Min(r.MinY, p.Y)
		r.MaxX = math.Max(r.MaxX, p.X)
		r.MaxY = math.Max(r.MaxY, p.Y)
	}
	return r
}

// TextBlob is a run of text in a single face, positioned with its baseline
// origin at (0, 0).
type TextBlob struct {
	Text string
	Face text.Face
}

// NewTextBlob creates a text blob.
func NewTextBlob(s string, face text.Face) *TextBlob {
	return &TextBlob{Text: s, Face: face}
}

// Bounds returns the text extent from the face metrics: the advance
// horizontally, ascent above and descent below the baseline.
func (b *TextBlob) Bounds() Rect {
	if b == nil || b.Face == nil || b.Text == "" {
		return Rect{}
	}
	m := b.Face.Metrics()
	return Rect{MinX: 0, MinY: -m.Ascent, MaxX: b.Face.Advance(b.Text), MaxY: m.Descent}
}

// TextFrame is a pre-shaped horizontal run produced by go-text/typesetting.
// The display list only needs its geometry; Text and Face let a raster
// backend draw it.
type TextFrame struct {
	Output *shaping.Output
	Text   string
	Face   text.Face
}

// Bounds returns the run extent from the shaped advance and line bounds.
// shaping reports descent as a negative offset from the baseline.
func (f *TextFrame) Bounds() Rect {
	if f == nil || f.Output == nil {
		return Rect{}
	}
	lb := f.Output.LineBounds
	return Rect{
		MinX: 0,
		MinY: -fixedToFloat(lb.Ascent),
		MaxX: fixedToFloat(f.Output.Advance),
		MaxY: -fixedToFloat(lb.Descent),
	}
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}

// ImageBounds returns the bounds of img at the origin, or the zero Rect for
// a nil image.
func ImageBounds(img image.Image) Rect {
	if img == nil {
		return Rect{}
	}
	b := img.Bounds()
	return NewRect(0, 0, float64(b.Dx()), float64(b.Dy()))
}
