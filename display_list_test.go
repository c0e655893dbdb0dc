package displaylist

import (
	"image"
	"slices"
	"sync"
	"testing"

	"github.com/gogpu/gg"
	"github.com/google/go-cmp/cmp"
)

// recordScript issues a fixed sequence of non-layer calls.
func recordScript(r Receiver) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	path := gg.NewPath()
	path.MoveTo(0, 0)
	path.LineTo(10, 0)
	path.QuadraticTo(15, 5, 10, 10)
	path.Close()

	r.SetAntiAlias(true)
	r.SetColor(gg.RGBA{R: 0.2, G: 0.4, B: 0.6, A: 0.8})
	r.SetStrokeWidth(3)
	r.SetStrokeCap(StrokeCapRound)
	r.SetStrokeJoin(StrokeJoinBevel)
	r.SetDrawStyle(DrawStyleStrokeAndFill)
	r.SetBlendMode(BlendModeSrcOver)
	r.Save()
	r.Translate(4, 5)
	r.Scale(2, 0.5)
	r.Rotate(30)
	r.Skew(0.1, 0)
	r.Transform2DAffine(1, 0, 3, 0, 1, 4)
	r.ClipRect(LTRB(0, 0, 100, 100), ClipIntersect, true)
	r.ClipRRect(NewRRect(LTRB(0, 0, 50, 50), 5, 5), ClipDifference, false)
	r.ClipPath(path, ClipIntersect, true)
	r.DrawLine(gg.Pt(0, 0), gg.Pt(10, 10))
	r.DrawDashedLine(gg.Pt(0, 0), gg.Pt(10, 0), 2, 1)
	r.DrawRect(LTRB(1, 2, 3, 4))
	r.DrawOval(LTRB(0, 0, 10, 5))
	r.DrawCircle(gg.Pt(5, 5), 2)
	r.DrawRRect(NewRRect(LTRB(0, 0, 10, 10), 2, 2))
	r.DrawDRRect(NewRRect(LTRB(0, 0, 10, 10), 2, 2), NewRRect(LTRB(2, 2, 8, 8), 1, 1))
	r.DrawPath(path)
	r.DrawArc(LTRB(0, 0, 20, 20), 45, 90, true)
	r.DrawPoints(PointModePolygon, []gg.Point{{X: 0, Y: 0}, {X: 5, Y: 5}, {X: 10, Y: 0}})
	r.TransformReset()
	r.DrawImage(img, gg.Pt(1, 1), ImageSamplingLinear, true)
	r.DrawImageRect(img, LTRB(0, 0, 2, 2), LTRB(10, 10, 20, 20), ImageSamplingNearest, false, SrcRectConstraintStrict)
	r.DrawImageNine(img, LTRB(1, 1, 3, 3), LTRB(0, 0, 40, 40), FilterModeLinear, true)
	cull := LTRB(0, 0, 50, 50)
	r.DrawAtlas(img, []RSTransform{NewRSTransform(1, 0, 5, 5)}, []Rect{LTRB(0, 0, 2, 2)},
		[]gg.RGBA{{R: 1, A: 1}}, BlendModeModulate, ImageSamplingLinear, &cull, true)
	r.Restore()
	r.DrawColor(gg.RGBA{G: 1, A: 0.5}, BlendModeSrcOver)
	r.DrawShadow(path, gg.RGBA{A: 1}, 3, true, 2)
	r.DrawPaint()
}

func TestDispatchRoundTrip(t *testing.T) {
	want := &callRecorder{}
	recordScript(want)

	b := NewBuilder()
	recordScript(b)
	dl := b.Build()

	got := &callRecorder{}
	dl.Dispatch(got)
	if diff := cmp.Diff(want.calls, got.calls, cmpOpts); diff != "" {
		t.Errorf("dispatched calls mismatch (-want +got):\n%s", diff)
	}
	if dl.OpCount() != len(want.calls) {
		t.Errorf("OpCount() = %d, want %d", dl.OpCount(), len(want.calls))
	}
	for i, c := range want.calls {
		if dl.OpType(i).String() != c.Op {
			t.Errorf("OpType(%d) = %v, want %s", i, dl.OpType(i), c.Op)
		}
	}
}

func TestDispatchDepthSubstitution(t *testing.T) {
	b := NewBuilder()
	b.Save()
	b.SaveLayer(nil, NoAttributes, nil, 0)
	b.DrawRect(LTRB(0, 0, 1, 1))
	b.Restore()
	b.Restore()
	dl := b.Build()

	plain, depth := &callRecorder{}, &depthRecorder{}
	dl.Dispatch(plain)
	dl.Dispatch(depth)
	if diff := cmp.Diff(plain.ops(), depth.ops()); diff != "" {
		t.Errorf("call sequence differs between receivers (-plain +depth):\n%s", diff)
	}
	if len(depth.saveDepths) != 1 || len(depth.layerDepths) != 1 {
		t.Errorf("depth overloads not used: saves %v, layers %v", depth.saveDepths, depth.layerDepths)
	}
}

func TestDispatchCulled(t *testing.T) {
	b := NewBuilder(WithRTree(true))
	b.SetColor(gg.RGBA{R: 1, A: 1})
	b.DrawRect(LTRB(0, 0, 10, 10))
	b.Save()
	b.Translate(100, 0)
	b.DrawRect(LTRB(0, 0, 10, 10))
	b.Restore()
	b.DrawOval(LTRB(0, 100, 10, 110))
	dl := b.Build()
	if dl.RTree() == nil {
		t.Fatal("RTree() = nil for a spatial builder")
	}

	r := &callRecorder{}
	dl.DispatchCulled(r, LTRB(95, -5, 120, 20))
	want := []string{"SetColor", "Save", "Translate", "DrawRect", "Restore"}
	if got := r.ops(); !slices.Equal(got, want) {
		t.Errorf("culled ops = %v, want %v", got, want)
	}

	all := &callRecorder{}
	dl.DispatchCulled(all, MaxCullRect())
	if len(all.calls) != dl.OpCount() {
		t.Errorf("covering cull dispatched %d ops, want %d", len(all.calls), dl.OpCount())
	}
}

func TestDispatchCulledWithoutRTree(t *testing.T) {
	b := NewBuilder()
	b.DrawRect(LTRB(0, 0, 10, 10))
	dl := b.Build()
	r := &callRecorder{}
	dl.DispatchCulled(r, LTRB(500, 500, 600, 600))
	if len(r.calls) != 1 {
		t.Errorf("flat list should dispatch everything, got %v", r.ops())
	}
}

func TestDispatchConcurrent(t *testing.T) {
	b := NewBuilder()
	recordScript(b)
	dl := b.Build()

	var wg sync.WaitGroup
	counts := make([]int, 8)
	for i := range counts {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			r := &callRecorder{}
			dl.Dispatch(r)
			counts[i] = len(r.calls)
		}(i)
	}
	wg.Wait()
	for i, n := range counts {
		if n != dl.OpCount() {
			t.Errorf("goroutine %d saw %d calls, want %d", i, n, dl.OpCount())
		}
	}
}

func TestOpTypeString(t *testing.T) {
	for typ := OpType(0); typ < opTypeCount; typ++ {
		if typ.String() == "" || typ.String() == "Unknown" {
			t.Errorf("OpType(%d) has no name", typ)
		}
	}
	if OpType(255).String() != "Unknown" {
		t.Error("out-of-range OpType should be Unknown")
	}
	if OpSaveLayer.IsRendering() || !OpDrawShadow.IsRendering() || !OpDrawColor.IsRendering() {
		t.Error("IsRendering misclassifies ops")
	}
}

func TestSaveLayerOptionsString(t *testing.T) {
	tests := []struct {
		o    SaveLayerOptions
		want string
	}{
		{NoAttributes, "NoAttributes"},
		{RendersWithAttributes, "RendersWithAttributes"},
		{CanDistributeOpacity | ContentIsClipped, "CanDistributeOpacity|ContentIsClipped"},
	}
	for _, tt := range tests {
		if got := tt.o.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
	o := NoAttributes.With(BoundsFromCaller | ContentIsUnbounded).Without(ContentIsUnbounded)
	if !o.Has(BoundsFromCaller) || o.Has(ContentIsUnbounded) {
		t.Errorf("With/Without produced %v", o)
	}
}

func TestDisplayListEquals(t *testing.T) {
	build := func(r Rect) *DisplayList {
		b := NewBuilder()
		b.Save()
		b.DrawRect(r)
		b.Restore()
		return b.Build()
	}
	a, b := build(LTRB(0, 0, 1, 1)), build(LTRB(0, 0, 1, 1))
	if !a.Equals(b) {
		t.Error("identical recordings should be equal")
	}
	if a.Equals(build(LTRB(0, 0, 2, 2))) {
		t.Error("different rects should not be equal")
	}
	if a.Equals(nil) {
		t.Error("list should not equal nil")
	}
}
