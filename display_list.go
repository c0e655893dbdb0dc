package displaylist

import "reflect"

// DisplayList is an immutable recording of Receiver calls produced by a
// Builder. It can be dispatched any number of times, from any number of
// goroutines at once.
type DisplayList struct {
	ops                  []op
	bounds               Rect
	rtree                *RTree
	totalDepth           uint32
	renderOpCount        int
	canApplyGroupOpacity bool
	maxRootBlendMode     BlendMode
	rootIsUnbounded      bool
}

// Bounds returns the device-space bounds of everything the list draws,
// relative to the transform in effect when recording began.
func (dl *DisplayList) Bounds() Rect { return dl.bounds }

// RTree returns the spatial index of the list, or nil if it was recorded
// without one.
func (dl *DisplayList) RTree() *RTree { return dl.rtree }

// TotalDepth returns the number of depth units the list consumes. A
// receiver that assigns one depth value per rendering op needs this many.
func (dl *DisplayList) TotalDepth() uint32 { return dl.totalDepth }

// CanApplyGroupOpacity reports whether drawing the list with an opacity
// can scale each op's alpha instead of compositing through a layer.
func (dl *DisplayList) CanApplyGroupOpacity() bool { return dl.canApplyGroupOpacity }

// MaxRootBlendMode returns the highest blend mode used by ops at the root
// of the list. It is BlendModeClear for an empty list.
func (dl *DisplayList) MaxRootBlendMode() BlendMode { return dl.maxRootBlendMode }

// RootIsUnbounded reports whether some root-level op reaches the whole clip.
func (dl *DisplayList) RootIsUnbounded() bool { return dl.rootIsUnbounded }

// OpCount returns the number of recorded ops.
func (dl *DisplayList) OpCount() int { return len(dl.ops) }

// RenderOpCount returns the number of recorded rendering ops.
func (dl *DisplayList) RenderOpCount() int { return dl.renderOpCount }

// OpType returns the type of op i.
func (dl *DisplayList) OpType(i int) OpType { return dl.ops[i].opType() }

// OpTypes returns the type of every op in order.
func (dl *DisplayList) OpTypes() []OpType {
	types := make([]OpType, len(dl.ops))
	for i, o := range dl.ops {
		types[i] = o.opType()
	}
	return types
}

// Dispatch replays every op into r in recording order. If r implements
// DepthReceiver, save scopes arrive through SaveWithDepth and
// SaveLayerWithDepth instead of Save and SaveLayer.
func (dl *DisplayList) Dispatch(r Receiver) {
	dr, _ := r.(DepthReceiver)
	for _, o := range dl.ops {
		o.dispatch(r, dr)
	}
}

// DispatchCulled replays the ops that can affect cull. Attribute, transform,
// clip and save ops are always replayed so state stays consistent; rendering
// ops are skipped when their bounds miss cull. Without an RTree, or when cull
// covers the whole list, it behaves like Dispatch.
func (dl *DisplayList) DispatchCulled(r Receiver, cull Rect) {
	if dl.rtree == nil || cull.ContainsRect(dl.bounds) {
		dl.Dispatch(r)
		return
	}
	visible := dl.rtree.Search(cull)
	dr, _ := r.(DepthReceiver)
	next := 0
	for i, o := range dl.ops {
		if o.opType().IsRendering() {
			for next < len(visible) && visible[next] < i {
				next++
			}
			if next == len(visible) || visible[next] != i {
				continue
			}
		}
		o.dispatch(r, dr)
	}
}

// Equals reports whether other records the same op sequence with equal
// arguments. Bounds and analysis results follow from the ops and are not
// compared separately.
func (dl *DisplayList) Equals(other *DisplayList) bool {
	if dl == other {
		return true
	}
	if dl == nil || other == nil || len(dl.ops) != len(other.ops) {
		return false
	}
	for i := range dl.ops {
		if !reflect.DeepEqual(dl.ops[i], other.ops[i]) {
			return false
		}
	}
	return true
}
