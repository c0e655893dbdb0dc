package displaylist

import (
	"math"

	"github.com/gogpu/gg"
)

// Rect is an axis-aligned rectangle in LTRB form.
// A Rect whose right edge is not greater than its left edge, or whose bottom
// is not greater than its top, is empty. The zero Rect is empty.
type Rect struct {
	MinX, MinY float64
	MaxX, MaxY float64
}

// maxCull is the half extent of MaxCullRect.
const maxCull = 1e9

// NewRect creates a rectangle from position and size.
func NewRect(x, y, width, height float64) Rect {
	return Rect{MinX: x, MinY: y, MaxX: x + width, MaxY: y + height}
}

// LTRB creates a rectangle from its four edges.
func LTRB(left, top, right, bottom float64) Rect {
	return Rect{MinX: left, MinY: top, MaxX: right, MaxY: bottom}
}

// NewRectFromPoints creates the smallest rectangle containing both points.
func NewRectFromPoints(x1, y1, x2, y2 float64) Rect {
	return Rect{
		MinX: math.Min(x1, x2),
		MinY: math.Min(y1, y2),
		MaxX: math.Max(x1, x2),
		MaxY: math.Max(y1, y2),
	}
}

// MaxCullRect returns a rectangle large enough to stand in for "everything".
// It is the default cull rectangle of a Builder and the bounds reported for
// content that cannot be bounded.
func MaxCullRect() Rect {
	return Rect{MinX: -maxCull, MinY: -maxCull, MaxX: maxCull, MaxY: maxCull}
}

// Width returns the width of the rectangle.
func (r Rect) Width() float64 { return r.MaxX - r.MinX }

// Height returns the height of the rectangle.
func (r Rect) Height() float64 { return r.MaxY - r.MinY }

// Center returns the center point.
func (r Rect) Center() gg.Point {
	return gg.Pt((r.MinX+r.MaxX)/2, (r.MinY+r.MaxY)/2)
}

// IsEmpty reports whether the rectangle has zero or negative area.
// NaN edges count as empty.
func (r Rect) IsEmpty() bool {
	return !(r.MaxX > r.MinX && r.MaxY > r.MinY)
}

// IsFinite reports whether all four edges are finite.
func (r Rect) IsFinite() bool {
	s := r.MinX + r.MinY + r.MaxX + r.MaxY
	return !math.IsNaN(s) && !math.IsInf(s, 0)
}

// Contains reports whether the point lies inside the rectangle.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.MinX && x <= r.MaxX && y >= r.MinY && y <= r.MaxY
}

// ContainsRect reports whether other lies entirely inside r.
// An empty other is never contained.
func (r Rect) ContainsRect(other Rect) bool {
	if r.IsEmpty() || other.IsEmpty() {
		return false
	}
	return other.MinX >= r.MinX && other.MinY >= r.MinY &&
		other.MaxX <= r.MaxX && other.MaxY <= r.MaxY
}

// Union returns the smallest rectangle containing both r and other.
// Empty operands are ignored.
func (r Rect) Union(other Rect) Rect {
	if other.IsEmpty() {
		return r
	}
	if r.IsEmpty() {
		return other
	}
	return Rect{
		MinX: math.Min(r.MinX, other.MinX),
		MinY: math.Min(r.MinY, other.MinY),
		MaxX: math.Max(r.MaxX, other.MaxX),
		MaxY: math.Max(r.MaxY, other.MaxY),
	}
}

// Intersect returns the intersection of r and other.
// Returns the zero Rect if they don't intersect.
func (r Rect) Intersect(other Rect) Rect {
	result := Rect{
		MinX: math.Max(r.MinX, other.MinX),
		MinY: math.Max(r.MinY, other.MinY),
		MaxX: math.Min(r.MaxX, other.MaxX),
		MaxY: math.Min(r.MaxY, other.MaxY),
	}
	if result.IsEmpty() {
		return Rect{}
	}
	return result
}

// Intersects reports whether r and other share a region of positive area.
// An empty rect intersects nothing.
func (r Rect) Intersects(other Rect) bool {
	if r.IsEmpty() || other.IsEmpty() {
		return false
	}
	return r.MinX < other.MaxX && other.MinX < r.MaxX &&
		r.MinY < other.MaxY && other.MinY < r.MaxY
}

// Outset grows the rectangle by dx horizontally and dy vertically on each side.
func (r Rect) Outset(dx, dy float64) Rect {
	return Rect{MinX: r.MinX - dx, MinY: r.MinY - dy, MaxX: r.MaxX + dx, MaxY: r.MaxY + dy}
}

// Inset shrinks the rectangle by dx horizontally and dy vertically on each side.
func (r Rect) Inset(dx, dy float64) Rect {
	return r.Outset(-dx, -dy)
}

// Offset returns the rectangle translated by (dx, dy).
func (r Rect) Offset(dx, dy float64) Rect {
	return Rect{MinX: r.MinX + dx, MinY: r.MinY + dy, MaxX: r.MaxX + dx, MaxY: r.MaxY + dy}
}

// RoundOut expands the rectangle to integer edges.
func (r Rect) RoundOut() Rect {
	return Rect{
		MinX: math.Floor(r.MinX),
		MinY: math.Floor(r.MinY),
		MaxX: math.Ceil(r.MaxX),
		MaxY: math.Ceil(r.MaxY),
	}
}

// Sort returns the rectangle with its edges ordered so that Min <= Max.
func (r Rect) Sort() Rect {
	return NewRectFromPoints(r.MinX, r.MinY, r.MaxX, r.MaxY)
}

// Path returns the rectangle as a closed path.
func (r Rect) Path() *gg.Path {
	p := gg.NewPath()
	p.Rectangle(r.MinX, r.MinY, r.Width(), r.Height())
	return p
}

// OvalPath returns the ellipse inscribed in the rectangle.
func (r Rect) OvalPath() *gg.Path {
	p := gg.NewPath()
	c := r.Center()
	p.Ellipse(c.X, c.Y, r.Width()/2, r.Height()/2)
	return p
}

// rectFromGG converts a gg bounding box.
func rectFromGG(b gg.Rect) Rect {
	return Rect{MinX: b.Min.X, MinY: b.Min.Y, MaxX: b.Max.X, MaxY: b.Max.Y}
}

// PathBounds returns the bounding box of a path, or the zero Rect for a nil
// or empty path.
func PathBounds(p *gg.Path) Rect {
	if p == nil || len(p.Elements()) == 0 {
		return Rect{}
	}
	return rectFromGG(p.BoundingBox())
}

// Corner indices into RRect.Radii.
const (
	UpperLeft = iota
	UpperRight
	LowerRight
	LowerLeft
)

// RRect is a rectangle with an elliptical radius at each corner.
// Radii are indexed by UpperLeft, UpperRight, LowerRight and LowerLeft; each
// holds the horizontal (X) and vertical (Y) radius of that corner.
type RRect struct {
	Rect  Rect
	Radii [4]gg.Point
}

// NewRRect creates a round rectangle with the same radii at every corner.
func NewRRect(r Rect, rx, ry float64) RRect {
	rr := RRect{Rect: r}
	for i := range rr.Radii {
		rr.Radii[i] = gg.Pt(rx, ry)
	}
	return rr
}

// Bounds returns the bounding rectangle.
func (rr RRect) Bounds() Rect { return rr.Rect }

// IsEmpty reports whether the bounding rectangle is empty.
func (rr RRect) IsEmpty() bool { return rr.Rect.IsEmpty() }

// IsRect reports whether every corner radius is zero.
func (rr RRect) IsRect() bool {
	for _, r := range rr.Radii {
		if r.X > 0 && r.Y > 0 {
			return false
		}
	}
	return true
}

// ContainsRect reports whether other lies inside rr, conservatively treating each
// corner as cut off by its radius box.
func (rr RRect) ContainsRect(other Rect) bool {
	if !rr.Rect.ContainsRect(other) {
		return false
	}
	inner := rr.Rect.Inset(
		math.Max(math.Max(rr.Radii[UpperLeft].X, rr.Radii[LowerLeft].X), math.Max(rr.Radii[UpperRight].X, rr.Radii[LowerRight].X)),
		0,
	)
	if inner.ContainsRect(other) {
		return true
	}
	inner = rr.Rect.Inset(
		0,
		math.Max(math.Max(rr.Radii[UpperLeft].Y, rr.Radii[UpperRight].Y), math.Max(rr.Radii[LowerLeft].Y, rr.Radii[LowerRight].Y)),
	)
	return inner.ContainsRect(other)
}

// kappa is the cubic Bezier control distance for a quarter ellipse.
const kappa = 0.5522847498307936

// Path returns the round rectangle outline.
func (rr RRect) Path() *gg.Path {
	p := gg.NewPath()
	appendRRect(p, rr)
	return p
}

func appendRRect(p *gg.Path, rr RRect) {
	r := rr.Rect
	ul, ur, lr, ll := rr.Radii[UpperLeft], rr.Radii[UpperRight], rr.Radii[LowerRight], rr.Radii[LowerLeft]

	p.MoveTo(r.MinX+ul.X, r.MinY)
	p.LineTo(r.MaxX-ur.X, r.MinY)
	if ur.X > 0 && ur.Y > 0 {
		p.CubicTo(r.MaxX-ur.X*(1-kappa), r.MinY, r.MaxX, r.MinY+ur.Y*(1-kappa), r.MaxX, r.MinY+ur.Y)
	}
	p.LineTo(r.MaxX, r.MaxY-lr.Y)
	if lr.X > 0 && lr.Y > 0 {
		p.CubicTo(r.MaxX, r.MaxY-lr.Y*(1-kappa), r.MaxX-lr.X*(1-kappa), r.MaxY, r.MaxX-lr.X, r.MaxY)
	}
	p.LineTo(r.MinX+ll.X, r.MaxY)
	if ll.X > 0 && ll.Y > 0 {
		p.CubicTo(r.MinX+ll.X*(1-kappa), r.MaxY, r.MinX, r.MaxY-ll.Y*(1-kappa), r.MinX, r.MaxY-ll.Y)
	}
	p.LineTo(r.MinX, r.MinY+ul.Y)
	if ul.X > 0 && ul.Y > 0 {
		p.CubicTo(r.MinX, r.MinY+ul.Y*(1-kappa), r.MinX+ul.X*(1-kappa), r.MinY, r.MinX+ul.X, r.MinY)
	}
	p.Close()
}

// DRRectPath returns the region between outer and inner as a single path.
// The inner contour is added as a second subpath; fill it with the even-odd
// rule to leave the hole open.
func DRRectPath(outer, inner RRect) *gg.Path {
	p := gg.NewPath()
	appendRRect(p, outer)
	appendRRect(p, inner)
	return p
}

// ArcPath returns an arc of the oval inscribed in r. Angles are in degrees,
// clockwise from the positive x axis in y-down coordinates. With useCenter
// the arc is closed through the oval's center (a wedge).
func ArcPath(r Rect, startDegrees, sweepDegrees float64, useCenter bool) *gg.Path {
	if sweepDegrees >= 360 || sweepDegrees <= -360 {
		return r.OvalPath()
	}
	start := startDegrees * math.Pi / 180
	end := (startDegrees + sweepDegrees) * math.Pi / 180
	if end < start {
		start, end = end, start
	}

	unit := gg.NewPath()
	if useCenter {
		unit.MoveTo(0, 0)
		unit.LineTo(math.Cos(start), math.Sin(start))
	}
	unit.Arc(0, 0, 1, start, end)
	if useCenter {
		unit.Close()
	}

	c := r.Center()
	m := gg.Translate(c.X, c.Y).Multiply(gg.Scale(r.Width()/2, r.Height()/2))
	return unit.Transform(m)
}

// RSTransform is a compressed rotate-scale-translate matrix used for atlas
// sprites: x' = SCos*x - SSin*y + Tx, y' = SSin*x + SCos*y + Ty.
type RSTransform struct {
	SCos, SSin float64
	Tx, Ty     float64
}

// NewRSTransform builds a transform from a scale, a rotation in radians and a
// translation.
func NewRSTransform(scale, radians, tx, ty float64) RSTransform {
	return RSTransform{
		SCos: scale * math.Cos(radians),
		SSin: scale * math.Sin(radians),
		Tx:   tx,
		Ty:   ty,
	}
}

// Affine returns the transform as a gg matrix.
func (x RSTransform) Affine() gg.Matrix {
	return gg.Matrix{A: x.SCos, B: -x.SSin, C: x.Tx, D: x.SSin, E: x.SCos, F: x.Ty}
}

// MapRect returns the bounds of a sprite of the given size placed by x.
func (x RSTransform) MapRect(w, h float64) Rect {
	m := x.Affine()
	r := Rect{MinX: math.Inf(1), MinY: math.Inf(1), MaxX: math.Inf(-1), MaxY: math.Inf(-1)}
	for _, p := range [4]gg.Point{{X: 0, Y: 0}, {X: w, Y: 0}, {X: w, Y: h}, {X: 0, Y: h}} {
		q := m.TransformPoint(p)
		r.MinX = math.Min(r.MinX, q.X)
		r.MinY = math.Min(r.MinY, q.Y)
		r.MaxX = math.Max(r.MaxX, q.X)
		r.MaxY = math.Max(r.MaxY, q.Y)
	}
	return r
}
