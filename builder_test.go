package displaylist

import (
	"image"
	"slices"
	"testing"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"github.com/google/go-cmp/cmp"
	"golang.org/x/image/font/gofont/goregular"
)

var red = gg.RGBA{R: 1, A: 1}

func TestBuilderDrawBounds(t *testing.T) {
	tests := []struct {
		name   string
		record func(b *Builder)
		want   Rect
	}{
		{"rect", func(b *Builder) {
			b.DrawRect(LTRB(10, 10, 20, 30))
		}, LTRB(10, 10, 20, 30)},
		{"stroked rect", func(b *Builder) {
			b.SetDrawStyle(DrawStyleStroke)
			b.SetStrokeWidth(4)
			b.DrawRect(LTRB(0, 0, 10, 10))
		}, LTRB(-2, -2, 12, 12)},
		{"hairline", func(b *Builder) {
			b.DrawLine(gg.Pt(0, 5), gg.Pt(10, 5))
		}, LTRB(-1, 4, 11, 6)},
		{"square cap line", func(b *Builder) {
			b.SetStrokeWidth(2)
			b.SetStrokeCap(StrokeCapSquare)
			b.DrawLine(gg.Pt(0, 0), gg.Pt(10, 0))
		}, LTRB(0, 0, 10, 0).Outset(1.4142135623730951, 1.4142135623730951)},
		{"circle", func(b *Builder) {
			b.DrawCircle(gg.Pt(50, 50), 10)
		}, LTRB(40, 40, 60, 60)},
		{"transformed", func(b *Builder) {
			b.Translate(10, 10)
			b.Scale(2, 2)
			b.DrawRect(LTRB(0, 0, 5, 5))
		}, LTRB(10, 10, 20, 20)},
		{"clipped", func(b *Builder) {
			b.ClipRect(LTRB(0, 0, 5, 5), ClipIntersect, false)
			b.DrawRect(LTRB(0, 0, 10, 10))
		}, LTRB(0, 0, 5, 5)},
		{"mask filter", func(b *Builder) {
			b.SetMaskFilter(&BlurMaskFilter{Style: BlurStyleNormal, Sigma: 2})
			b.DrawRect(LTRB(10, 10, 20, 20))
		}, LTRB(4, 4, 26, 26)},
		{"image filter", func(b *Builder) {
			b.SetImageFilter(NewBlurImageFilter(1, 1, TileModeDecal))
			b.DrawRect(LTRB(10, 10, 20, 20))
		}, LTRB(7, 7, 23, 23)},
		{"image", func(b *Builder) {
			b.DrawImage(image.NewRGBA(image.Rect(0, 0, 8, 4)), gg.Pt(2, 3), ImageSamplingNearest, false)
		}, LTRB(2, 3, 10, 7)},
		{"nil image", func(b *Builder) {
			b.DrawImage(nil, gg.Pt(2, 3), ImageSamplingNearest, true)
		}, Rect{}},
		{"atlas", func(b *Builder) {
			atlas := image.NewRGBA(image.Rect(0, 0, 16, 16))
			b.DrawAtlas(atlas,
				[]RSTransform{NewRSTransform(1, 0, 0, 0), NewRSTransform(1, 0, 100, 100)},
				[]Rect{NewRect(0, 0, 8, 8), NewRect(8, 8, 8, 8)},
				nil, BlendModeSrcOver, ImageSamplingLinear, nil, false)
		}, LTRB(0, 0, 108, 108)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBuilder()
			tt.record(b)
			if got := b.Build().Bounds(); !rectNearly(got, tt.want) {
				t.Errorf("Bounds() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestBuilderSaveRestoresClipAndTransform(t *testing.T) {
	b := NewBuilder()
	b.Save()
	b.Translate(100, 0)
	b.ClipRect(LTRB(100, 0, 110, 10), ClipIntersect, false)
	if b.SaveCount() != 2 {
		t.Errorf("SaveCount() = %d, want 2", b.SaveCount())
	}
	b.Restore()
	if !b.Transform().IsIdentity() {
		t.Error("Restore should reset the transform")
	}
	if b.DeviceClipBounds() != MaxCullRect() {
		t.Errorf("DeviceClipBounds() = %+v, want the cull rect", b.DeviceClipBounds())
	}
	b.DrawRect(LTRB(0, 0, 10, 10))
	if got := b.Build().Bounds(); got != LTRB(0, 0, 10, 10) {
		t.Errorf("Bounds() = %+v", got)
	}
}

func TestBuilderDifferenceClipCoveringEverything(t *testing.T) {
	cull := LTRB(0, 0, 100, 100)
	b := NewBuilder(WithCullRect(cull))
	b.ClipRect(LTRB(-10, -10, 200, 200), ClipDifference, false)
	b.DrawRect(LTRB(0, 0, 50, 50))
	dl := b.Build()
	if !dl.Bounds().IsEmpty() {
		t.Errorf("Bounds() = %+v, want empty", dl.Bounds())
	}
	if dl.RenderOpCount() != 1 {
		t.Errorf("clipped-out op should still be recorded, RenderOpCount() = %d", dl.RenderOpCount())
	}
}

func TestBuilderUnmatchedRestore(t *testing.T) {
	b := NewBuilder()
	b.DrawRect(LTRB(0, 0, 1, 1))
	b.Restore()
	dl := b.Build()
	if got := dl.OpTypes(); !slices.Equal(got, []OpType{OpDrawRect}) {
		t.Errorf("OpTypes() = %v, want [DrawRect]", got)
	}
}

func TestBuilderClosesOpenSaves(t *testing.T) {
	b := NewBuilder()
	b.Save()
	b.SaveLayer(nil, NoAttributes, nil, 0)
	b.DrawRect(LTRB(0, 0, 1, 1))
	dl := b.Build()
	want := []OpType{OpSave, OpSaveLayer, OpDrawRect, OpRestore, OpRestore}
	if got := dl.OpTypes(); !slices.Equal(got, want) {
		t.Errorf("OpTypes() = %v, want %v", got, want)
	}
	if b.SaveCount() != 1 || b.Build().OpCount() != 0 {
		t.Error("Build should reset the builder")
	}
}

func TestBuilderDepth(t *testing.T) {
	b := NewBuilder()
	b.DrawRect(LTRB(0, 0, 1, 1))
	b.Save()
	b.DrawRect(LTRB(0, 0, 1, 1))
	b.DrawOval(LTRB(0, 0, 1, 1))
	b.Restore()
	b.SaveLayer(nil, NoAttributes, nil, 0)
	b.DrawPaint()
	b.Restore()
	dl := b.Build()

	// 3 root draws, 1 for the layer itself, 1 inside it.
	if got := dl.TotalDepth(); got != 5 {
		t.Errorf("TotalDepth() = %d, want 5", got)
	}
	r := &depthRecorder{}
	dl.Dispatch(r)
	if !slices.Equal(r.saveDepths, []uint32{2}) {
		t.Errorf("save depths = %v, want [2]", r.saveDepths)
	}
	if !slices.Equal(r.layerDepths, []uint32{1}) {
		t.Errorf("layer depths = %v, want [1]", r.layerDepths)
	}
}

func TestBuilderNestedListDepth(t *testing.T) {
	child := NewBuilder()
	for i := 0; i < 3; i++ {
		child.DrawRect(NewRect(float64(i)*10, 0, 5, 5))
	}
	childList := child.Build()
	if childList.TotalDepth() != 3 {
		t.Fatalf("child TotalDepth() = %d, want 3", childList.TotalDepth())
	}

	b := NewBuilder()
	b.Save()
	b.DrawDisplayList(childList, 1)
	b.Restore()
	dl := b.Build()
	if got := dl.TotalDepth(); got != 4 {
		t.Errorf("TotalDepth() = %d, want 4", got)
	}
	r := &depthRecorder{}
	dl.Dispatch(r)
	if !slices.Equal(r.saveDepths, []uint32{4}) {
		t.Errorf("save depths = %v, want [4]", r.saveDepths)
	}
	if got, want := dl.Bounds(), childList.Bounds(); got != want {
		t.Errorf("Bounds() = %+v, want child bounds %+v", got, want)
	}
}

func TestBuilderGroupOpacity(t *testing.T) {
	tests := []struct {
		name   string
		record func(b *Builder)
		want   bool
	}{
		{"empty", func(b *Builder) {}, true},
		{"disjoint rects", func(b *Builder) {
			b.DrawRect(LTRB(0, 0, 10, 10))
			b.DrawRect(LTRB(20, 0, 30, 10))
		}, true},
		{"overlapping rects", func(b *Builder) {
			b.DrawRect(LTRB(0, 0, 10, 10))
			b.DrawRect(LTRB(5, 5, 15, 15))
		}, false},
		{"blend mode", func(b *Builder) {
			b.SetBlendMode(BlendModeMultiply)
			b.DrawRect(LTRB(0, 0, 10, 10))
		}, false},
		{"invert colors", func(b *Builder) {
			b.SetInvertColors(true)
			b.DrawRect(LTRB(0, 0, 10, 10))
		}, false},
		{"non-commuting color filter", func(b *Builder) {
			b.SetColorFilter(&BlendColorFilter{Color: red, Mode: BlendModeSrcOver})
			b.DrawRect(LTRB(0, 0, 10, 10))
		}, false},
		{"draw color", func(b *Builder) {
			b.DrawColor(red, BlendModeSrcOver)
		}, true},
		{"circle at origin", func(b *Builder) {
			b.DrawCircle(gg.Pt(0, 0), 5)
		}, true},
		{"draw color then rect", func(b *Builder) {
			b.DrawColor(red, BlendModeSrcOver)
			b.DrawRect(LTRB(0, 0, 10, 10))
		}, false},
		{"shadow", func(b *Builder) {
			b.DrawShadow(LTRB(0, 0, 10, 10).Path(), red, 2, false, 1)
		}, false},
		{"layer with overlapping content", func(b *Builder) {
			b.SaveLayer(nil, NoAttributes, nil, 0)
			b.DrawRect(LTRB(0, 0, 10, 10))
			b.DrawRect(LTRB(5, 5, 15, 15))
			b.Restore()
		}, true},
		{"backdrop layer", func(b *Builder) {
			b.SaveLayer(nil, NoAttributes, NewBlurImageFilter(2, 2, TileModeClamp), 0)
			b.Restore()
		}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBuilder()
			tt.record(b)
			if got := b.Build().CanApplyGroupOpacity(); got != tt.want {
				t.Errorf("CanApplyGroupOpacity() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBuilderSaveLayerOptions(t *testing.T) {
	layer := func(record func(b *Builder)) (SaveLayerOptions, Rect) {
		t.Helper()
		b := NewBuilder()
		record(b)
		r := &depthRecorder{}
		b.Build().Dispatch(r)
		if len(r.layerOpts) != 1 {
			t.Fatalf("got %d layers, want 1", len(r.layerOpts))
		}
		return r.layerOpts[0], r.layerBounds[0]
	}

	opts, bounds := layer(func(b *Builder) {
		b.SaveLayer(nil, CanDistributeOpacity|ContentIsClipped, nil, 0)
		b.DrawRect(LTRB(0, 0, 10, 10))
		b.DrawRect(LTRB(20, 0, 30, 10))
		b.Restore()
	})
	if !opts.Has(CanDistributeOpacity) || opts.Has(ContentIsClipped) || opts.Has(BoundsFromCaller) {
		t.Errorf("disjoint layer options = %v", opts)
	}
	if bounds != LTRB(0, 0, 30, 10) {
		t.Errorf("computed layer bounds = %+v, want %+v", bounds, LTRB(0, 0, 30, 10))
	}

	opts, _ = layer(func(b *Builder) {
		b.SaveLayer(nil, NoAttributes, nil, 0)
		b.DrawRect(LTRB(0, 0, 10, 10))
		b.DrawRect(LTRB(5, 0, 15, 10))
		b.Restore()
	})
	if opts.Has(CanDistributeOpacity) {
		t.Errorf("overlapping layer options = %v, want no CanDistributeOpacity", opts)
	}

	callerBounds := LTRB(0, 0, 5, 5)
	opts, bounds = layer(func(b *Builder) {
		b.SaveLayer(&callerBounds, BoundsFromCaller, nil, 0)
		b.DrawRect(LTRB(0, 0, 10, 10))
		b.Restore()
	})
	if !opts.Has(BoundsFromCaller | ContentIsClipped) {
		t.Errorf("clipping layer options = %v, want BoundsFromCaller|ContentIsClipped", opts)
	}
	if bounds != callerBounds {
		t.Errorf("caller bounds replayed as %+v", bounds)
	}

	opts, _ = layer(func(b *Builder) {
		b.SaveLayer(nil, NoAttributes, nil, 0)
		b.SetBlendMode(BlendModeSrc)
		b.DrawRect(LTRB(0, 0, 10, 10))
		b.Restore()
	})
	if !opts.Has(ContentIsUnbounded) {
		t.Errorf("layer with Src content options = %v, want ContentIsUnbounded", opts)
	}
}

func TestBuilderLayerMaxBlendMode(t *testing.T) {
	b := NewBuilder()
	b.SaveLayer(nil, NoAttributes, nil, 0)
	b.DrawRect(LTRB(0, 0, 1, 1))
	b.SetBlendMode(BlendModeMultiply)
	b.DrawRect(LTRB(2, 0, 3, 1))
	b.SetBlendMode(BlendModeSrcOver)
	b.DrawRect(LTRB(4, 0, 5, 1))
	b.Restore()
	r := &depthRecorder{}
	b.Build().Dispatch(r)
	if got := r.layerBlends[0]; got != BlendModeMultiply {
		t.Errorf("max content blend = %v, want Multiply", got)
	}
}

func TestBuilderFilteredLayerBounds(t *testing.T) {
	b := NewBuilder()
	b.SetImageFilter(NewBlurImageFilter(1, 1, TileModeDecal))
	b.SaveLayer(nil, RendersWithAttributes, nil, 0)
	b.SetImageFilter(nil)
	b.DrawRect(LTRB(10, 10, 20, 20))
	b.Restore()
	if got, want := b.Build().Bounds(), LTRB(7, 7, 23, 23); !rectNearly(got, want) {
		t.Errorf("Bounds() = %+v, want %+v", got, want)
	}
}

func TestBuilderUnboundedLayerFilter(t *testing.T) {
	cull := LTRB(0, 0, 100, 100)
	flood := &ColorFilterImageFilter{Filter: &BlendColorFilter{Color: red, Mode: BlendModeSrcOver}}
	b := NewBuilder(WithCullRect(cull))
	b.SetImageFilter(flood)
	b.SaveLayer(nil, RendersWithAttributes, nil, 0)
	b.SetImageFilter(nil)
	b.DrawRect(LTRB(10, 10, 20, 20))
	b.Restore()
	dl := b.Build()
	if dl.Bounds() != cull {
		t.Errorf("Bounds() = %+v, want cull %+v", dl.Bounds(), cull)
	}
	if !dl.RootIsUnbounded() {
		t.Error("RootIsUnbounded() = false, want true")
	}
}

func TestBuilderBackdropCoversClip(t *testing.T) {
	cull := LTRB(0, 0, 100, 100)
	b := NewBuilder(WithCullRect(cull))
	b.SaveLayer(nil, NoAttributes, NewBlurImageFilter(3, 3, TileModeClamp), 7)
	b.Restore()
	if got := b.Build().Bounds(); got != cull {
		t.Errorf("Bounds() = %+v, want %+v", got, cull)
	}
}

func TestBuilderTextBlobBounds(t *testing.T) {
	src, err := text.NewFontSource(goregular.TTF)
	if err != nil {
		t.Fatalf("NewFontSource: %v", err)
	}
	face := src.Face(16)
	blob := NewTextBlob("Hello", face)

	b := NewBuilder()
	b.DrawTextBlob(blob, 10, 50)
	got := b.Build().Bounds()
	m := face.Metrics()
	want := LTRB(10, 50-m.Ascent, 10+face.Advance("Hello"), 50+m.Descent)
	if !rectNearly(got, want) {
		t.Errorf("Bounds() = %+v, want %+v", got, want)
	}
}

func TestBuilderShadowBounds(t *testing.T) {
	path := LTRB(0, 0, 10, 10).Path()
	b := NewBuilder()
	b.DrawShadow(path, red, 4, false, 2)
	got := b.Build().Bounds()
	if !got.ContainsRect(LTRB(0, 0, 10, 10)) {
		t.Errorf("shadow bounds %+v should contain the caster", got)
	}
	// The directional light pushes the spot shadow downward.
	if got.MaxY-10 <= -got.MinY {
		t.Errorf("shadow bounds %+v should extend further below than above", got)
	}
}

// Re-recording a list through a Builder reproduces its bounds and ops.
func TestBuilderLayerAtOriginDistributesOpacity(t *testing.T) {
	b := NewBuilder()
	b.SaveLayer(nil, NoAttributes, nil, 0)
	b.DrawRect(LTRB(-10, -10, 10, 10))
	b.Restore()
	dl := b.Build()

	var r callRecorder
	dl.Dispatch(&r)
	opts, _ := r.calls[0].Args[1].(SaveLayerOptions)
	if !opts.Has(CanDistributeOpacity) {
		t.Errorf("saveLayer options = %v, want CanDistributeOpacity", opts)
	}
}

func TestBuilderAsReceiver(t *testing.T) {
	b := NewBuilder()
	b.Translate(5, 5)
	b.SetColor(red)
	b.DrawRect(LTRB(0, 0, 10, 10))
	b.Save()
	b.Rotate(45)
	b.DrawOval(LTRB(0, 0, 20, 10))
	b.Restore()
	dl := b.Build()

	again := NewBuilder()
	dl.Dispatch(again)
	copied := again.Build()
	if !rectNearly(copied.Bounds(), dl.Bounds()) {
		t.Errorf("copied Bounds() = %+v, want %+v", copied.Bounds(), dl.Bounds())
	}
	if diff := cmp.Diff(dl.OpTypes(), copied.OpTypes()); diff != "" {
		t.Errorf("op types mismatch (-want +got):\n%s", diff)
	}
}

func TestBuilderReplaysSaveLayers(t *testing.T) {
	callerBounds := LTRB(0, 0, 5, 5)
	b := NewBuilder()
	b.SaveLayer(nil, NoAttributes, nil, 0)
	b.DrawRect(LTRB(10, 10, 20, 20))
	b.Restore()
	b.SetColor(gg.RGBA{A: 0.5})
	b.SaveLayer(&callerBounds, BoundsFromCaller|RendersWithAttributes, nil, 0)
	b.DrawRect(LTRB(0, 0, 10, 10))
	b.Restore()
	dl := b.Build()

	again := NewBuilder()
	dl.Dispatch(again)
	copied := again.Build()
	if !copied.Equals(dl) {
		var want, got callRecorder
		dl.Dispatch(&want)
		copied.Dispatch(&got)
		t.Errorf("re-recorded list differs (-want +got):\n%s", cmp.Diff(want.calls, got.calls))
	}
}

func TestBuilderSaveLayerIgnoresBoundsWithoutFlag(t *testing.T) {
	hint := LTRB(0, 0, 5, 5)
	b := NewBuilder()
	b.SaveLayer(&hint, NoAttributes, nil, 0)
	b.DrawRect(LTRB(10, 10, 20, 20))
	b.Restore()

	var r callRecorder
	b.Build().Dispatch(&r)
	bounds, _ := r.calls[0].Args[0].(*Rect)
	opts, _ := r.calls[0].Args[1].(SaveLayerOptions)
	if opts.Has(BoundsFromCaller) {
		t.Errorf("options = %v, want no BoundsFromCaller", opts)
	}
	if bounds == nil || !rectNearly(*bounds, LTRB(10, 10, 20, 20)) {
		t.Errorf("bounds = %v, want computed LTRB(10, 10, 20, 20)", bounds)
	}
}

func TestBuilderSaveLayerAttributesBlockFlattening(t *testing.T) {
	tests := []struct {
		name  string
		setup func(b *Builder)
		want  bool
	}{
		{"alpha only", func(b *Builder) { b.SetColor(gg.RGBA{A: 0.5}) }, true},
		{"blend mode", func(b *Builder) { b.SetBlendMode(BlendModeMultiply) }, false},
		{"image filter", func(b *Builder) { b.SetImageFilter(NewBlurImageFilter(1, 1, TileModeDecal)) }, false},
		{"color filter", func(b *Builder) { b.SetColorFilter(SrgbToLinearGamma{}) }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBuilder()
			tt.setup(b)
			b.SaveLayer(nil, RendersWithAttributes, nil, 0)
			b.SetBlendMode(BlendModeSrcOver)
			b.SetImageFilter(nil)
			b.SetColorFilter(nil)
			b.DrawRect(LTRB(0, 0, 10, 10))
			b.Restore()
			r := &depthRecorder{}
			b.Build().Dispatch(r)
			if got := r.layerOpts[0].Has(CanDistributeOpacity); got != tt.want {
				t.Errorf("CanDistributeOpacity = %v, want %v (options %v)", got, tt.want, r.layerOpts[0])
			}
		})
	}
}
