package inspect

import (
	"fmt"
	"image"
	"io"
	"math"
	"strings"

	"github.com/gogpu/displaylist"
	"github.com/gogpu/gg"
	"gopkg.in/yaml.v3"
)

// Entry is one captured Receiver call.
type Entry struct {
	Op    string         `yaml:"op"`
	Depth int            `yaml:"depth,omitempty"`
	Args  map[string]any `yaml:"args,omitempty,flow"`

	// Children holds the ops of a nested display list when the recorder
	// expands them.
	Children []Entry `yaml:"children,omitempty"`
}

// Option configures a Recorder.
type Option func(*Recorder)

// WithExpand makes the recorder dispatch nested display lists into the
// Children of their DrawDisplayList entry.
func WithExpand() Option {
	return func(r *Recorder) { r.expand = true }
}

// WithDepth makes the recorder implement depth-annotated saves, so Dispatch
// reports content depth and blend mode on every save entry.
func WithDepth() Option {
	return func(r *Recorder) { r.depthAware = true }
}

// Recorder captures Receiver calls. Depth tracks save nesting: entries
// inside a Save or SaveLayer are one level deeper than the save itself.
type Recorder struct {
	entries    []Entry
	depth      int
	expand     bool
	depthAware bool
}

// NewRecorder returns an empty recorder.
func NewRecorder(opts ...Option) *Recorder {
	r := &Recorder{}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Entries returns the captured calls.
func (r *Recorder) Entries() []Entry { return r.entries }

// Reset drops every captured call.
func (r *Recorder) Reset() {
	r.entries = r.entries[:0]
	r.depth = 0
}

// Ops returns the op names in call order.
func (r *Recorder) Ops() []string {
	ops := make([]string, len(r.entries))
	for i, e := range r.entries {
		ops[i] = e.Op
	}
	return ops
}

// Counts returns how many times each op was called.
func (r *Recorder) Counts() map[string]int {
	counts := make(map[string]int)
	var walk func([]Entry)
	walk = func(entries []Entry) {
		for _, e := range entries {
			counts[e.Op]++
			walk(e.Children)
		}
	}
	walk(r.entries)
	return counts
}

// Dump writes the captured calls to w as YAML.
func (r *Recorder) Dump(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r.entries); err != nil {
		return fmt.Errorf("inspect: encode: %w", err)
	}
	return enc.Close()
}

// Record dispatches list into a new recorder.
func Record(list *displaylist.DisplayList, opts ...Option) *Recorder {
	r := NewRecorder(opts...)
	if list != nil {
		r.dispatch(list)
	}
	return r
}

// DumpList writes the ops of list to w as YAML, expanding nested lists.
func DumpList(w io.Writer, list *displaylist.DisplayList) error {
	return Record(list, WithExpand()).Dump(w)
}

func (r *Recorder) dispatch(list *displaylist.DisplayList) {
	if r.depthAware {
		list.Dispatch(depthRecorder{r})
		return
	}
	list.Dispatch(r)
}

// add appends an entry; kv alternates argument names and values.
func (r *Recorder) add(op string, kv ...any) {
	e := Entry{Op: op, Depth: r.depth}
	if len(kv) > 0 {
		e.Args = make(map[string]any, len(kv)/2)
		for i := 0; i+1 < len(kv); i += 2 {
			e.Args[kv[i].(string)] = kv[i+1]
		}
	}
	r.entries = append(r.entries, e)
}

// SetAntiAlias records a setAntiAlias entry.
func (r *Recorder) SetAntiAlias(aa bool) { r.add("setAntiAlias", "value", aa) }

// SetDither records a setDither entry.
func (r *Recorder) SetDither(dither bool) { r.add("setDither", "value", dither) }

// SetInvertColors records a setInvertColors entry.
func (r *Recorder) SetInvertColors(invert bool) { r.add("setInvertColors", "value", invert) }

// SetStrokeWidth records a setStrokeWidth entry.
func (r *Recorder) SetStrokeWidth(width float64) { r.add("setStrokeWidth", "value", num(width)) }

// SetStrokeMiter records a setStrokeMiter entry.
func (r *Recorder) SetStrokeMiter(limit float64) { r.add("setStrokeMiter", "value", num(limit)) }

// SetColor records a setColor entry.
func (r *Recorder) SetColor(c gg.RGBA) { r.add("setColor", "value", color(c)) }

// SetStrokeCap records a setStrokeCap entry.
func (r *Recorder) SetStrokeCap(c displaylist.StrokeCap) { r.add("setStrokeCap", "value", c.String()) }

// SetStrokeJoin records a setStrokeJoin entry.
func (r *Recorder) SetStrokeJoin(j displaylist.StrokeJoin) {
	r.add("setStrokeJoin", "value", j.String())
}

// SetDrawStyle records a setDrawStyle entry.
func (r *Recorder) SetDrawStyle(s displaylist.DrawStyle) { r.add("setDrawStyle", "value", s.String()) }

// SetBlendMode records a setBlendMode entry.
func (r *Recorder) SetBlendMode(mode displaylist.BlendMode) {
	r.add("setBlendMode", "value", mode.String())
}

// SetColorSource records a setColorSource entry.
func (r *Recorder) SetColorSource(s displaylist.ColorSource) {
	r.add("setColorSource", "value", effect(s))
}

// SetImageFilter records a setImageFilter entry.
func (r *Recorder) SetImageFilter(f displaylist.ImageFilter) {
	r.add("setImageFilter", "value", effect(f))
}

// SetColorFilter records a setColorFilter entry.
func (r *Recorder) SetColorFilter(f displaylist.ColorFilter) {
	r.add("setColorFilter", "value", effect(f))
}

// SetPathEffect records a setPathEffect entry.
func (r *Recorder) SetPathEffect(e displaylist.PathEffect) {
	r.add("setPathEffect", "value", effect(e))
}

// SetMaskFilter records a setMaskFilter entry.
func (r *Recorder) SetMaskFilter(f displaylist.MaskFilter) {
	r.add("setMaskFilter", "value", effect(f))
}

// Translate records a translate entry.
func (r *Recorder) Translate(tx, ty float64) { r.add("translate", "tx", num(tx), "ty", num(ty)) }

// Scale records a scale entry.
func (r *Recorder) Scale(sx, sy float64) { r.add("scale", "sx", num(sx), "sy", num(sy)) }

// Rotate records a rotate entry.
func (r *Recorder) Rotate(degrees float64) { r.add("rotate", "degrees", num(degrees)) }

// Skew records a skew entry.
func (r *Recorder) Skew(sx, sy float64) { r.add("skew", "sx", num(sx), "sy", num(sy)) }

// TransformReset records a transformReset entry.
func (r *Recorder) TransformReset() { r.add("transformReset") }

// Transform2DAffine records a transform2DAffine entry.
func (r *Recorder) Transform2DAffine(mxx, mxy, mxt, myx, myy, myt float64) {
	r.add("transform2DAffine", "row0", nums(mxx, mxy, mxt), "row1", nums(myx, myy, myt))
}

// TransformFullPerspective records a transformFullPerspective entry.
func (r *Recorder) TransformFullPerspective(m displaylist.Matrix) {
	r.add("transformFullPerspective", "matrix", nums(m[:]...))
}

// ClipRect records a clipRect entry.
func (r *Recorder) ClipRect(rect displaylist.Rect, op displaylist.ClipOp, antiAlias bool) {
	r.add("clipRect", "rect", ltrb(rect), "op", op.String(), "aa", antiAlias)
}

// ClipOval records a clipOval entry.
func (r *Recorder) ClipOval(bounds displaylist.Rect, op displaylist.ClipOp, antiAlias bool) {
	r.add("clipOval", "bounds", ltrb(bounds), "op", op.String(), "aa", antiAlias)
}

// ClipRRect records a clipRRect entry.
func (r *Recorder) ClipRRect(rr displaylist.RRect, op displaylist.ClipOp, antiAlias bool) {
	r.add("clipRRect", "rrect", rrect(rr), "op", op.String(), "aa", antiAlias)
}

// ClipPath records a clipPath entry.
func (r *Recorder) ClipPath(path *gg.Path, op displaylist.ClipOp, antiAlias bool) {
	r.add("clipPath", "path", pathSummary(path), "op", op.String(), "aa", antiAlias)
}

// Save records a save entry. Entries up to the matching Restore are nested
// one level deeper.
func (r *Recorder) Save() {
	r.add("save")
	r.depth++
}

// SaveLayer records a saveLayer entry with the bounds and options.
func (r *Recorder) SaveLayer(bounds *displaylist.Rect, options displaylist.SaveLayerOptions,
	backdrop displaylist.ImageFilter, backdropID int64) {
	r.add("saveLayer", saveLayerArgs(bounds, options, backdrop, backdropID)...)
	r.depth++
}

// Restore records a restore entry at the depth of its save.
func (r *Recorder) Restore() {
	if r.depth > 0 {
		r.depth--
	}
	r.add("restore")
}

// DrawColor records a drawColor entry.
func (r *Recorder) DrawColor(c gg.RGBA, mode displaylist.BlendMode) {
	r.add("drawColor", "color", color(c), "mode", mode.String())
}

// DrawPaint records a drawPaint entry.
func (r *Recorder) DrawPaint() { r.add("drawPaint") }

// DrawLine records a drawLine entry.
func (r *Recorder) DrawLine(p0, p1 gg.Point) {
	r.add("drawLine", "p0", point(p0), "p1", point(p1))
}

// DrawDashedLine records a drawDashedLine entry.
func (r *Recorder) DrawDashedLine(p0, p1 gg.Point, onLength, offLength float64) {
	r.add("drawDashedLine", "p0", point(p0), "p1", point(p1), "on", num(onLength), "off", num(offLength))
}

// DrawRect records a drawRect entry.
func (r *Recorder) DrawRect(rect displaylist.Rect) { r.add("drawRect", "rect", ltrb(rect)) }

// DrawOval records a drawOval entry.
func (r *Recorder) DrawOval(bounds displaylist.Rect) { r.add("drawOval", "bounds", ltrb(bounds)) }

// DrawRRect records a drawRRect entry.
func (r *Recorder) DrawRRect(rr displaylist.RRect) { r.add("drawRRect", "rrect", rrect(rr)) }

// DrawPath records a drawPath entry with a summary of the path verbs.
func (r *Recorder) DrawPath(path *gg.Path) { r.add("drawPath", "path", pathSummary(path)) }

// DrawCircle records a drawCircle entry.
func (r *Recorder) DrawCircle(c gg.Point, rad float64) { r.add("drawCircle", "center", point(c), "radius", num(rad)) }

// DrawDRRect records a drawDRRect entry.
func (r *Recorder) DrawDRRect(outer, inner displaylist.RRect) {
	r.add("drawDRRect", "outer", rrect(outer), "inner", rrect(inner))
}

// DrawArc records a drawArc entry.
func (r *Recorder) DrawArc(oval displaylist.Rect, startDegrees, sweepDegrees float64, useCenter bool) {
	r.add("drawArc", "oval", ltrb(oval), "start", num(startDegrees), "sweep", num(sweepDegrees),
		"useCenter", useCenter)
}

// DrawPoints records a drawPoints entry with every point.
func (r *Recorder) DrawPoints(mode displaylist.PointMode, points []gg.Point) {
	pts := make([][]float64, len(points))
	for i, p := range points {
		pts[i] = point(p)
	}
	r.add("drawPoints", "mode", mode.String(), "points", pts)
}

// DrawVertices records the mesh mode and vertex count, not the vertices.
func (r *Recorder) DrawVertices(v *displaylist.Vertices, mode displaylist.BlendMode) {
	if v == nil {
		r.add("drawVertices", "vertices", nil, "mode", mode.String())
		return
	}
	r.add("drawVertices", "vertexMode", v.Mode().String(), "count", len(v.Positions()),
		"bounds", ltrb(v.Bounds()), "mode", mode.String())
}

// DrawImage records the image size, not its pixels.
func (r *Recorder) DrawImage(img image.Image, p gg.Point, sampling displaylist.ImageSampling,
	renderWithAttributes bool) {
	r.add("drawImage", "image", imageSummary(img), "point", point(p), "sampling", sampling.String(),
		"attributes", renderWithAttributes)
}

// DrawImageRect records a drawImageRect entry.
func (r *Recorder) DrawImageRect(img image.Image, src, dst displaylist.Rect, sampling displaylist.ImageSampling,
	renderWithAttributes bool, constraint displaylist.SrcRectConstraint) {
	r.add("drawImageRect", "image", imageSummary(img), "src", ltrb(src), "dst", ltrb(dst),
		"sampling", sampling.String(), "attributes", renderWithAttributes, "constraint", constraint.String())
}

// DrawImageNine records a drawImageNine entry.
func (r *Recorder) DrawImageNine(img image.Image, center, dst displaylist.Rect, filter displaylist.FilterMode,
	renderWithAttributes bool) {
	r.add("drawImageNine", "image", imageSummary(img), "center", ltrb(center), "dst", ltrb(dst),
		"filter", filter.String(), "attributes", renderWithAttributes)
}

// DrawAtlas records the sprite, texture and color counts of a drawAtlas call.
func (r *Recorder) DrawAtlas(atlas image.Image, xforms []displaylist.RSTransform, tex []displaylist.Rect,
	colors []gg.RGBA, mode displaylist.BlendMode, sampling displaylist.ImageSampling, cull *displaylist.Rect,
	renderWithAttributes bool) {
	kv := []any{
		"image", imageSummary(atlas), "sprites", len(xforms), "textures", len(tex), "colors", len(colors),
		"mode", mode.String(), "sampling", sampling.String(), "attributes", renderWithAttributes,
	}
	if cull != nil {
		kv = append(kv, "cull", ltrb(*cull))
	}
	r.add("drawAtlas", kv...)
}

// DrawDisplayList records the nested list; with WithExpand its ops become
// the entry's children.
func (r *Recorder) DrawDisplayList(list *displaylist.DisplayList, opacity float64) {
	if list == nil {
		r.add("drawDisplayList", "list", nil, "opacity", num(opacity))
		return
	}
	r.add("drawDisplayList", "ops", list.OpCount(), "bounds", ltrb(list.Bounds()), "opacity", num(opacity))
	if !r.expand {
		return
	}
	child := &Recorder{expand: true, depthAware: r.depthAware}
	child.dispatch(list)
	r.entries[len(r.entries)-1].Children = child.entries
}

// DrawTextBlob records a drawTextBlob entry with the blob text.
func (r *Recorder) DrawTextBlob(blob *displaylist.TextBlob, x, y float64) {
	var s string
	if blob != nil {
		s = blob.Text
	}
	r.add("drawTextBlob", "text", s, "x", num(x), "y", num(y))
}

// DrawTextFrame records a drawTextFrame entry.
func (r *Recorder) DrawTextFrame(frame *displaylist.TextFrame, x, y float64) {
	var s string
	if frame != nil {
		s = frame.Text
	}
	r.add("drawTextFrame", "text", s, "x", num(x), "y", num(y))
}

// DrawShadow records a drawShadow entry.
func (r *Recorder) DrawShadow(path *gg.Path, c gg.RGBA, elevation float64, transparentOccluder bool,
	devicePixelRatio float64) {
	r.add("drawShadow", "path", pathSummary(path), "color", color(c), "elevation", num(elevation),
		"transparentOccluder", transparentOccluder, "dpr", num(devicePixelRatio))
}

// depthRecorder adds the depth-annotated save calls to a Recorder.
type depthRecorder struct {
	*Recorder
}

func (r depthRecorder) SaveWithDepth(totalContentDepth uint32) {
	r.add("save", "contentDepth", totalContentDepth)
	r.depth++
}

func (r depthRecorder) SaveLayerWithDepth(bounds *displaylist.Rect, options displaylist.SaveLayerOptions,
	totalContentDepth uint32, maxContentBlendMode displaylist.BlendMode, backdrop displaylist.ImageFilter,
	backdropID int64) {
	kv := saveLayerArgs(bounds, options, backdrop, backdropID)
	kv = append(kv, "contentDepth", totalContentDepth, "maxBlendMode", maxContentBlendMode.String())
	r.add("saveLayer", kv...)
	r.depth++
}

func saveLayerArgs(bounds *displaylist.Rect, options displaylist.SaveLayerOptions,
	backdrop displaylist.ImageFilter, backdropID int64) []any {
	kv := []any{"options", options.String()}
	if bounds != nil {
		kv = append(kv, "bounds", ltrb(*bounds))
	}
	if backdrop != nil {
		kv = append(kv, "backdrop", effect(backdrop))
	}
	if backdropID != 0 {
		kv = append(kv, "backdropID", backdropID)
	}
	return kv
}

// num rounds v so dumps are stable across platforms.
func num(v float64) float64 {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return v
	}
	return math.Round(v*1e4) / 1e4
}

func nums(vs ...float64) []float64 {
	out := make([]float64, len(vs))
	for i, v := range vs {
		out[i] = num(v)
	}
	return out
}

func ltrb(r displaylist.Rect) []float64 { return nums(r.MinX, r.MinY, r.MaxX, r.MaxY) }

func point(p gg.Point) []float64 { return nums(p.X, p.Y) }

func rrect(rr displaylist.RRect) map[string]any {
	radii := make([][]float64, len(rr.Radii))
	for i, p := range rr.Radii {
		radii[i] = point(p)
	}
	return map[string]any{"rect": ltrb(rr.Rect), "radii": radii}
}

func color(c gg.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x%02x", to8(c.R), to8(c.G), to8(c.B), to8(c.A))
}

func to8(v float64) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(1, v)) * 255))
}

func pathSummary(p *gg.Path) any {
	if p == nil {
		return nil
	}
	return map[string]any{"bounds": ltrb(displaylist.PathBounds(p))}
}

func imageSummary(img image.Image) any {
	if img == nil {
		return nil
	}
	b := img.Bounds()
	return fmt.Sprintf("%dx%d", b.Dx(), b.Dy())
}

// effect names an attribute object by its type, e.g. "BlurImageFilter".
func effect(v any) any {
	if v == nil {
		return nil
	}
	name := fmt.Sprintf("%T", v)
	name = strings.TrimPrefix(name, "*")
	name = strings.TrimPrefix(name, "displaylist.")
	return name
}

var (
	_ displaylist.Receiver      = (*Recorder)(nil)
	_ displaylist.DepthReceiver = depthRecorder{}
)
