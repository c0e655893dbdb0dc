package displaylist

import (
	"math"
	"testing"
)

const eps = 1e-9

func nearly(a, b float64) bool { return math.Abs(a-b) <= eps }

func rectNearly(a, b Rect) bool {
	return nearly(a.MinX, b.MinX) && nearly(a.MinY, b.MinY) &&
		nearly(a.MaxX, b.MaxX) && nearly(a.MaxY, b.MaxY)
}

func TestMatrixMapPoint(t *testing.T) {
	tests := []struct {
		name   string
		m      Matrix
		x, y   float64
		wx, wy float64
	}{
		{"identity", Identity(), 3, 4, 3, 4},
		{"translate", Translate(10, -5), 1, 1, 11, -4},
		{"scale", Scale(2, 3), 1, 1, 2, 3},
		{"rotate 90", RotateDegrees(90), 1, 0, 0, 1},
		{"skew", Skew(1, 0), 0, 2, 2, 2},
		{"scale then translate", Translate(10, 0).Multiply(Scale(2, 2)), 1, 1, 12, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y := tt.m.MapPoint(tt.x, tt.y)
			if !nearly(x, tt.wx) || !nearly(y, tt.wy) {
				t.Errorf("MapPoint(%v, %v) = (%v, %v), want (%v, %v)", tt.x, tt.y, x, y, tt.wx, tt.wy)
			}
		})
	}
}

func TestMatrixMapRect(t *testing.T) {
	r := LTRB(0, 0, 10, 20)
	tests := []struct {
		name string
		m    Matrix
		want Rect
	}{
		{"identity", Identity(), r},
		{"translate", Translate(5, 5), LTRB(5, 5, 15, 25)},
		{"negative scale", Scale(-1, 1), LTRB(-10, 0, 0, 20)},
		{"rotate 90", RotateDegrees(90), LTRB(-20, 0, 0, 10)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.m.MapRect(r); !rectNearly(got, tt.want) {
				t.Errorf("MapRect = %+v, want %+v", got, tt.want)
			}
		})
	}
	if got := Translate(1, 1).MapRect(Rect{}); got != (Rect{}) {
		t.Errorf("MapRect(empty) = %+v, want zero", got)
	}
}

func TestMatrixInvert(t *testing.T) {
	m := Translate(10, 20).Multiply(RotateDegrees(30)).Multiply(Scale(2, 4))
	inv, ok := m.Invert()
	if !ok {
		t.Fatal("Invert() reported singular for an invertible matrix")
	}
	p := m.Multiply(inv)
	id := Identity()
	for i := range p {
		if !nearly(p[i], id[i]) {
			t.Fatalf("m * inv(m) = %v, want identity", p)
		}
	}

	if _, ok := Scale(0, 1).Invert(); ok {
		t.Error("Invert() of a singular matrix should fail")
	}
}

func TestMatrixPredicates(t *testing.T) {
	persp := Identity()
	persp[12] = 0.001
	tests := []struct {
		name        string
		m           Matrix
		identity    bool
		affine      bool
		perspective bool
	}{
		{"identity", Identity(), true, true, false},
		{"translate", Translate(1, 2), false, true, false},
		{"perspective", persp, false, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.m.IsIdentity(); got != tt.identity {
				t.Errorf("IsIdentity() = %v, want %v", got, tt.identity)
			}
			if got := tt.m.Is2DAffine(); got != tt.affine {
				t.Errorf("Is2DAffine() = %v, want %v", got, tt.affine)
			}
			if got := tt.m.HasPerspective(); got != tt.perspective {
				t.Errorf("HasPerspective() = %v, want %v", got, tt.perspective)
			}
		})
	}
}

func TestMatrixAffineRoundTrip(t *testing.T) {
	m := Affine(1, 2, 3, 4, 5, 6)
	if got := FromAffine(m.Affine()); got != m {
		t.Errorf("FromAffine(m.Affine()) = %v, want %v", got, m)
	}
}

func TestMatrixMaxScale(t *testing.T) {
	if got := Scale(2, 5).MaxScale(); !nearly(got, 5) {
		t.Errorf("MaxScale() = %v, want 5", got)
	}
	if got := RotateDegrees(45).MaxScale(); !nearly(got, 1) {
		t.Errorf("rotation MaxScale() = %v, want 1", got)
	}
}
