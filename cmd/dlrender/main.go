// Command dlrender records a demo display list and renders it to PNG.
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"math"
	"os"
	"strings"

	"github.com/gogpu/displaylist"
	"github.com/gogpu/displaylist/backend"
	_ "github.com/gogpu/displaylist/backend/raster"
	"github.com/gogpu/displaylist/backend/webgpu"
	"github.com/gogpu/displaylist/dispatch"
	"github.com/gogpu/displaylist/inspect"
	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/goregular"
)

// pngWriter is implemented by canvases that can save themselves.
type pngWriter interface {
	SavePNG(path string) error
}

func main() {
	var (
		width   = flag.Int("width", 800, "image width")
		height  = flag.Int("height", 600, "image height")
		output  = flag.String("output", "displaylist.png", "output file")
		dump    = flag.String("dump", "", "write the recorded ops as YAML to this file (- for stdout)")
		canvas  = flag.String("backend", "raster", "canvas backend")
		rtree   = flag.Bool("rtree", false, "record with a spatial index")
		opacity = flag.Float64("opacity", 1, "opacity to render the list with")
		verbose = flag.Bool("v", false, "log debug output")
	)
	flag.Parse()

	if *verbose {
		displaylist.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	w, h := float64(*width), float64(*height)
	b := displaylist.NewBuilder(displaylist.WithRTree(*rtree), displaylist.WithCullRect(displaylist.LTRB(0, 0, w, h)))
	drawBackground(b, w, h)
	drawShapes(b)
	drawLayer(b)
	drawNested(b)
	if err := drawText(b); err != nil {
		log.Fatalf("Failed to load font: %v", err)
	}
	list := b.Build()
	displaylist.Logger().Debug("dlrender: recorded",
		"ops", list.OpCount(),
		"bounds", list.Bounds(),
		"maxBlend", list.MaxRootBlendMode().String(),
		"gpuFixedFunction", webgpu.FixedFunction(list))

	if *dump != "" {
		if err := writeDump(*dump, list); err != nil {
			log.Fatalf("Failed to dump: %v", err)
		}
	}

	c, err := backend.NewCanvas(*canvas, *width, *height)
	if err != nil {
		log.Fatalf("Failed to create canvas (available: %s): %v", strings.Join(backend.Canvases(), ", "), err)
	}
	dispatch.RenderTo(c, list, *opacity)

	out, ok := c.(pngWriter)
	if !ok {
		log.Fatalf("Backend %q cannot write PNG", *canvas)
	}
	if err := out.SavePNG(*output); err != nil {
		log.Fatalf("Failed to save: %v", err)
	}

	log.Printf("Rendered %d ops to %s (%dx%d)\n", list.OpCount(), *output, *width, *height)
}

func writeDump(path string, list *displaylist.DisplayList) error {
	if path == "-" {
		return inspect.DumpList(os.Stdout, list)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := inspect.DumpList(f, list); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func drawBackground(b *displaylist.Builder, w, h float64) {
	g := displaylist.NewLinearGradient(0, 0, 0, h).
		AddColorStop(0, gg.RGB(0.1, 0.2, 0.4)).
		AddColorStop(1, gg.RGB(0.5, 0.5, 0.6))
	b.SetColorSource(g)
	b.DrawPaint()
	b.SetColorSource(nil)
}

func drawShapes(b *displaylist.Builder) {
	// Overlapping circles
	b.SetColor(gg.RGBA2(1, 0.3, 0.3, 0.8))
	b.DrawCircle(gg.Pt(150, 150), 60)
	b.SetColor(gg.RGBA2(0.3, 1, 0.3, 0.8))
	b.DrawCircle(gg.Pt(200, 150), 60)
	b.SetColor(gg.RGBA2(0.3, 0.3, 1, 0.8))
	b.DrawCircle(gg.Pt(175, 200), 60)

	card := displaylist.NewRRect(displaylist.LTRB(350, 100, 470, 180), 15, 15)
	b.DrawShadow(card.Path(), gg.RGBA2(0, 0, 0, 1), 8, false, 1)
	b.SetColor(gg.RGB(1, 0.8, 0))
	b.DrawRRect(card)

	b.SetColor(gg.RGB(1, 1, 1))
	b.SetDrawStyle(displaylist.DrawStyleStroke)
	b.SetStrokeWidth(4)
	b.DrawRect(displaylist.LTRB(350, 100, 470, 180))
	b.SetDrawStyle(displaylist.DrawStyleFill)

	// Rotated squares
	for i := range 8 {
		b.Save()
		b.Translate(600, 150)
		b.Rotate(float64(i) * 45)
		b.SetColor(gg.HSL(float64(i)*45, 0.8, 0.6))
		b.DrawRect(displaylist.LTRB(-30, -30, 30, 30))
		b.Restore()
	}
}

// drawLayer draws overlapping shapes into a half transparent layer, so the
// overlap does not show through.
func drawLayer(b *displaylist.Builder) {
	b.SetColor(gg.RGBA2(0, 0, 0, 0.5))
	b.SaveLayer(nil, displaylist.RendersWithAttributes, nil, 0)
	b.SetColor(gg.RGB(0.2, 0.8, 1))
	b.DrawOval(displaylist.LTRB(80, 320, 240, 420))
	b.DrawOval(displaylist.LTRB(160, 320, 320, 420))
	b.Restore()
}

// drawNested records a star once and draws it twice through a nested list.
func drawNested(b *displaylist.Builder) {
	star := displaylist.NewBuilder()
	star.SetColor(gg.RGB(1, 1, 0))
	star.DrawPath(starPath(60, 30, 5))
	list := star.Build()

	b.Save()
	b.Translate(480, 400)
	b.DrawDisplayList(list, 1)
	b.Translate(160, 0)
	b.Scale(0.6, 0.6)
	b.DrawDisplayList(list, 0.5)
	b.Restore()
}

func starPath(outer, inner float64, points int) *gg.Path {
	p := gg.NewPath()
	for i := range points * 2 {
		angle := float64(i)*math.Pi/float64(points) - math.Pi/2
		r := outer
		if i%2 == 1 {
			r = inner
		}
		if i == 0 {
			p.MoveTo(r*math.Cos(angle), r*math.Sin(angle))
		} else {
			p.LineTo(r*math.Cos(angle), r*math.Sin(angle))
		}
	}
	p.Close()
	return p
}

func drawText(b *displaylist.Builder) error {
	src, err := text.NewFontSource(goregular.TTF)
	if err != nil {
		return fmt.Errorf("goregular: %w", err)
	}
	b.SetColor(gg.RGB(1, 1, 1))
	b.DrawTextBlob(displaylist.NewTextBlob("display list", src.Face(28)), 40, 560)
	return nil
}
