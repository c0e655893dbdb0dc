// Package dispatch plays display lists into a backend.Canvas.
//
// RenderTo is the usual entry point:
//
//	c, err := raster.NewCanvas(800, 600)
//	if err != nil {
//		return err
//	}
//	dispatch.RenderTo(c, list, 1)
//
// CanvasDispatcher implements displaylist.Receiver on top of a canvas. It
// keeps the list attributes in an AttributeDispatcher, which turns them into
// one backend.Paint, and an opacity stack that moves in lockstep with the
// canvas save stack. The opacity stack lets a saveLayer that only applies an
// alpha be replayed as a cheaper save: the alpha is pushed down to the
// children, each of which draws with it.
//
// Nested lists get a fresh dispatcher, so attributes never leak between a
// list and the lists it draws. When a nested list has an RTree, only the ops
// under the current clip are replayed.
package dispatch
