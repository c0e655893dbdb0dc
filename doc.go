// Package displaylist records 2D drawing commands into immutable display
// lists and replays them into any Receiver.
//
// # Overview
//
// A Builder receives drawing calls (attributes, transforms, clips, save
// scopes and draws) and records them as ops. While recording it computes
// the device-space bounds of every op, the depth each save scope consumes,
// and whether the list or a layer can absorb a group opacity without an
// offscreen pass. Build freezes the result into a DisplayList.
//
// # Quick Start
//
//	b := displaylist.NewBuilder()
//	b.SetColor(gg.RGBA{R: 1, A: 1})
//	b.DrawRect(displaylist.NewRect(10, 10, 100, 50))
//	dl := b.Build()
//
//	// Replay into a raster canvas
//	c := raster.New(256, 256)
//	dispatch.RenderTo(c, dl, 1)
//	c.SavePNG("out.png")
//
// # Receivers
//
// Receiver is split into AttributeReceiver, TransformReceiver,
// ClipReceiver, SaveReceiver and DrawReceiver. Receivers that only care
// about some of them embed IgnoreAttributes, IgnoreTransforms, IgnoreClips,
// IgnoreSaves or IgnoreDraws for the rest. A receiver that also implements
// DepthReceiver gets the depth-annotated save calls.
//
// # Bounds
//
// Bounds are accumulated by a BoundsAccumulator. The default keeps one
// rectangle per scope; WithRTree keeps every op's rectangle and builds an
// RTree, which DisplayList.DispatchCulled uses to skip ops outside a cull
// rectangle.
//
// # Packages
//
//   - backend: the canvas contract playback renders into, plus a registry
//   - backend/raster: a software canvas on top of gogpu/gg
//   - backend/webgpu: blend and sampler state mapping for GPU canvases
//   - dispatch: the attribute helper and the canvas playback dispatcher
//   - inspect: a recording receiver that dumps lists as YAML
//
// # Thread Safety
//
// A Builder is not safe for concurrent use. A DisplayList is immutable and
// may be dispatched from many goroutines at once.
package displaylist
