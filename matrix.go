package displaylist

import (
	"math"

	"github.com/gogpu/gg"
	"golang.org/x/image/math/f64"
)

// Matrix is a 4x4 transformation matrix in row-major order:
//
//	| m[0]  m[1]  m[2]  m[3]  |
//	| m[4]  m[5]  m[6]  m[7]  |
//	| m[8]  m[9]  m[10] m[11] |
//	| m[12] m[13] m[14] m[15] |
//
// Points are column vectors, so x' = m[0]*x + m[1]*y + m[3] for a 2D point.
// The zero Matrix is not the identity; use Identity.
type Matrix f64.Mat4

// Identity returns the identity matrix.
func Identity() Matrix {
	return Matrix{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Affine returns the matrix for the 2D affine transform
//
//	x' = mxx*x + mxy*y + mxt
//	y' = myx*x + myy*y + myt
func Affine(mxx, mxy, mxt, myx, myy, myt float64) Matrix {
	return Matrix{
		mxx, mxy, 0, mxt,
		myx, myy, 0, myt,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Translate returns a translation matrix.
func Translate(tx, ty float64) Matrix {
	return Affine(1, 0, tx, 0, 1, ty)
}

// Scale returns a scaling matrix.
func Scale(sx, sy float64) Matrix {
	return Affine(sx, 0, 0, 0, sy, 0)
}

// RotateDegrees returns a rotation matrix. Positive angles rotate clockwise
// in y-down coordinates.
func RotateDegrees(degrees float64) Matrix {
	sin, cos := math.Sincos(degrees * math.Pi / 180)
	return Affine(cos, -sin, 0, sin, cos, 0)
}

// Skew returns a skew matrix.
func Skew(sx, sy float64) Matrix {
	return Affine(1, sx, 0, sy, 1, 0)
}

// FromAffine converts a gg matrix.
func FromAffine(m gg.Matrix) Matrix {
	return Affine(m.A, m.B, m.C, m.D, m.E, m.F)
}

// Multiply returns m * other. Applied to points, other acts first, which is
// the concatenation order of canvas transform calls.
func (m Matrix) Multiply(other Matrix) Matrix {
	var r Matrix
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			var sum float64
			for k := 0; k < 4; k++ {
				sum += m[row*4+k] * other[k*4+col]
			}
			r[row*4+col] = sum
		}
	}
	return r
}

// MapPoint transforms a 2D point (z = 0), applying the perspective divide.
func (m Matrix) MapPoint(x, y float64) (float64, float64) {
	tx := m[0]*x + m[1]*y + m[3]
	ty := m[4]*x + m[5]*y + m[7]
	w := m[12]*x + m[13]*y + m[15]
	if w != 1 && w != 0 {
		return tx / w, ty / w
	}
	return tx, ty
}

// MapRect returns the bounding box of the transformed corners of r.
// Empty input maps to the zero Rect.
func (m Matrix) MapRect(r Rect) Rect {
	if r.IsEmpty() {
		return Rect{}
	}
	if m.isScaleTranslate() {
		x0, y0 := m[0]*r.MinX+m[3], m[5]*r.MinY+m[7]
		x1, y1 := m[0]*r.MaxX+m[3], m[5]*r.MaxY+m[7]
		return NewRectFromPoints(x0, y0, x1, y1)
	}
	out := Rect{MinX: math.Inf(1), MinY: math.Inf(1), MaxX: math.Inf(-1), MaxY: math.Inf(-1)}
	for _, c := range [4][2]float64{
		{r.MinX, r.MinY}, {r.MaxX, r.MinY}, {r.MaxX, r.MaxY}, {r.MinX, r.MaxY},
	} {
		x, y := m.MapPoint(c[0], c[1])
		out.MinX = math.Min(out.MinX, x)
		out.MinY = math.Min(out.MinY, y)
		out.MaxX = math.Max(out.MaxX, x)
		out.MaxY = math.Max(out.MaxY, y)
	}
	return out
}

func (m Matrix) isScaleTranslate() bool {
	return m[1] == 0 && m[4] == 0 && !m.HasPerspective()
}

// HasPerspective reports whether the bottom row differs from (0, 0, 0, 1).
func (m Matrix) HasPerspective() bool {
	return m[12] != 0 || m[13] != 0 || m[14] != 0 || m[15] != 1
}

// IsIdentity reports whether m is exactly the identity.
func (m Matrix) IsIdentity() bool {
	return m == Identity()
}

// Is2DAffine reports whether m only uses the 2D affine entries.
func (m Matrix) Is2DAffine() bool {
	return m[2] == 0 && m[6] == 0 && m[8] == 0 && m[9] == 0 &&
		m[10] == 1 && m[11] == 0 && !m.HasPerspective()
}

// Affine returns the 2D affine part of m as a gg matrix. Perspective and z
// terms are dropped.
func (m Matrix) Affine() gg.Matrix {
	return gg.Matrix{A: m[0], B: m[1], C: m[3], D: m[4], E: m[5], F: m[7]}
}

// MaxScale returns the larger of the 2D axis scale factors.
func (m Matrix) MaxScale() float64 {
	sx := math.Hypot(m[0], m[4])
	sy := math.Hypot(m[1], m[5])
	return math.Max(sx, sy)
}

// Invert returns the inverse of m and whether it exists.
func (m Matrix) Invert() (Matrix, bool) {
	var inv Matrix
	inv[0] = m[5]*m[10]*m[15] - m[5]*m[11]*m[14] - m[9]*m[6]*m[15] + m[9]*m[7]*m[14] + m[13]*m[6]*m[11] - m[13]*m[7]*m[10]
	inv[4] = -m[4]*m[10]*m[15] + m[4]*m[11]*m[14] + m[8]*m[6]*m[15] - m[8]*m[7]*m[14] - m[12]*m[6]*m[11] + m[12]*m[7]*m[10]
	inv[8] = m[4]*m[9]*m[15] - m[4]*m[11]*m[13] - m[8]*m[5]*m[15] + m[8]*m[7]*m[13] + m[12]*m[5]*m[11] - m[12]*m[7]*m[9]
	inv[12] = -m[4]*m[9]*m[14] + m[4]*m[10]*m[13] + m[8]*m[5]*m[14] - m[8]*m[6]*m[13] - m[12]*m[5]*m[10] + m[12]*m[6]*m[9]
	inv[1] = -m[1]*m[10]*m[15] + m[1]*m[11]*m[14] + m[9]*m[2]*m[15] - m[9]*m[3]*m[14] - m[13]*m[2]*m[11] + m[13]*m[3]*m[10]
	inv[5] = m[0]*m[10]*m[15] - m[0]*m[11]*m[14] - m[8]*m[2]*m[15] + m[8]*m[3]*m[14] + m[12]*m[2]*m[11] - m[12]*m[3]*m[10]
	inv[9] = -m[0]*m[9]*m[15] + m[0]*m[11]*m[13] + m[8]*m[1]*m[15] - m[8]*m[3]*m[13] - m[12]*m[1]*m[11] + m[12]*m[3]*m[9]
	inv[13] = m[0]*m[9]*m[14] - m[0]*m[10]*m[13] - m[8]*m[1]*m[14] + m[8]*m[2]*m[13] + m[12]*m[1]*m[10] - m[12]*m[2]*m[9]
	inv[2] = m[1]*m[6]*m[15] - m[1]*m[7]*m[14] - m[5]*m[2]*m[15] + m[5]*m[3]*m[14] + m[13]*m[2]*m[7] - m[13]*m[3]*m[6]
	inv[6] = -m[0]*m[6]*m[15] + m[0]*m[7]*m[14] + m[4]*m[2]*m[15] - m[4]*m[3]*m[14] - m[12]*m[2]*m[7] + m[12]*m[3]*m[6]
	inv[10] = m[0]*m[5]*m[15] - m[0]*m[7]*m[13] - m[4]*m[1]*m[15] + m[4]*m[3]*m[13] + m[12]*m[1]*m[7] - m[12]*m[3]*m[5]
	inv[14] = -m[0]*m[5]*m[14] + m[0]*m[6]*m[13] + m[4]*m[1]*m[14] - m[4]*m[2]*m[13] - m[12]*m[1]*m[6] + m[12]*m[2]*m[5]
	inv[3] = -m[1]*m[6]*m[11] + m[1]*m[7]*m[10] + m[5]*m[2]*m[11] - m[5]*m[3]*m[10] - m[9]*m[2]*m[7] + m[9]*m[3]*m[6]
	inv[7] = m[0]*m[6]*m[11] - m[0]*m[7]*m[10] - m[4]*m[2]*m[11] + m[4]*m[3]*m[10] + m[8]*m[2]*m[7] - m[8]*m[3]*m[6]
	inv[11] = -m[0]*m[5]*m[11] + m[0]*m[7]*m[9] + m[4]*m[1]*m[11] - m[4]*m[3]*m[9] - m[8]*m[1]*m[7] + m[8]*m[3]*m[5]
	inv[15] = m[0]*m[5]*m[10] - m[0]*m[6]*m[9] - m[4]*m[1]*m[10] + m[4]*m[2]*m[9] + m[8]*m[1]*m[6] - m[8]*m[2]*m[5]

	det := m[0]*inv[0] + m[1]*inv[4] + m[2]*inv[8] + m[3]*inv[12]
	if det == 0 || math.IsNaN(det) || math.IsInf(det, 0) {
		return Identity(), false
	}
	invDet := 1 / det
	for i := range inv {
		inv[i] *= invDet
	}
	return inv, true
}
