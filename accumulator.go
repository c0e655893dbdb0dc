package displaylist

// BoundsAccumulator collects the device-space bounds of recorded ops, scoped
// by save and restore. The Builder uses one; it can also be driven directly.
//
// Restore on an empty stack is a no-op, so a trailing unmatched restore in a
// malformed stream is harmless.
type BoundsAccumulator interface {
	// Accumulate merges r into the innermost scope. index identifies the op
	// that produced r and is only kept by the spatial variant. Empty
	// rectangles are ignored.
	Accumulate(r Rect, index int)

	// Save opens a new, empty scope.
	Save()

	// Restore closes the innermost scope and merges its bounds into the
	// enclosing one unchanged.
	Restore()

	// RestoreMapped closes the innermost scope, passing its content through
	// mapFn and then intersecting with clip (if non-nil) before merging.
	// It returns false if any mapFn call reported failure; the merged bounds
	// are then a guess.
	RestoreMapped(mapFn func(Rect) (Rect, bool), clip *Rect) bool

	// Bounds returns the accumulated bounds of the outermost scope.
	Bounds() Rect

	// RTree returns a spatial index of the accumulated rectangles, or nil.
	RTree() *RTree
}

// RectBoundsAccumulator tracks a single running rectangle per scope.
type RectBoundsAccumulator struct {
	rect  Rect
	saved []Rect
}

// NewRectBoundsAccumulator creates an empty flat accumulator.
func NewRectBoundsAccumulator() *RectBoundsAccumulator {
	return &RectBoundsAccumulator{}
}

// Accumulate implements BoundsAccumulator.
func (a *RectBoundsAccumulator) Accumulate(r Rect, _ int) {
	if r.IsEmpty() {
		return
	}
	a.rect = a.rect.Union(r)
}

// Save implements BoundsAccumulator.
func (a *RectBoundsAccumulator) Save() {
	a.saved = append(a.saved, a.rect)
	a.rect = Rect{}
}

// Restore implements BoundsAccumulator.
func (a *RectBoundsAccumulator) Restore() {
	if len(a.saved) == 0 {
		return
	}
	closed := a.rect
	a.pop()
	a.rect = a.rect.Union(closed)
}

// RestoreMapped applies mapFn once, to the union of the closed scope.
// mapFn is not called for an empty scope.
func (a *RectBoundsAccumulator) RestoreMapped(mapFn func(Rect) (Rect, bool), clip *Rect) bool {
	if len(a.saved) == 0 {
		return true
	}
	closed := a.rect
	a.pop()
	if closed.IsEmpty() {
		return true
	}
	mapped, ok := mapFn(closed)
	if clip != nil {
		mapped = mapped.Intersect(*clip)
	}
	a.rect = a.rect.Union(mapped)
	return ok
}

func (a *RectBoundsAccumulator) pop() {
	n := len(a.saved) - 1
	a.rect = a.saved[n]
	a.saved = a.saved[:n]
}

// Bounds panics if a scope is still open: the running rectangle only holds
// the innermost scope.
func (a *RectBoundsAccumulator) Bounds() Rect {
	if len(a.saved) != 0 {
		panic("displaylist: RectBoundsAccumulator.Bounds called with an unclosed save")
	}
	return a.rect
}

// RTree returns nil; the flat accumulator keeps no per-op rectangles.
func (a *RectBoundsAccumulator) RTree() *RTree { return nil }

// RTreeBoundsAccumulator keeps every accumulated rectangle with the index of
// the op that produced it. Scopes are offsets into that list.
type RTreeBoundsAccumulator struct {
	rects   []Rect
	indices []int
	saved   []int
}

// NewRTreeBoundsAccumulator creates an empty spatial accumulator.
func NewRTreeBoundsAccumulator() *RTreeBoundsAccumulator {
	return &RTreeBoundsAccumulator{}
}

// Accumulate implements BoundsAccumulator.
func (a *RTreeBoundsAccumulator) Accumulate(r Rect, index int) {
	if r.IsEmpty() {
		return
	}
	a.rects = append(a.rects, r)
	a.indices = append(a.indices, index)
}

// Save implements BoundsAccumulator.
func (a *RTreeBoundsAccumulator) Save() {
	a.saved = append(a.saved, len(a.rects))
}

// Restore drops the scope marker. The scope's rectangles already belong to
// the enclosing scope.
func (a *RTreeBoundsAccumulator) Restore() {
	if len(a.saved) == 0 {
		return
	}
	a.saved = a.saved[:len(a.saved)-1]
}

// RestoreMapped maps each rectangle of the closed scope independently, then
// clips it. Rectangles that end up empty are removed.
func (a *RTreeBoundsAccumulator) RestoreMapped(mapFn func(Rect) (Rect, bool), clip *Rect) bool {
	if len(a.saved) == 0 {
		return true
	}
	start := a.saved[len(a.saved)-1]
	a.saved = a.saved[:len(a.saved)-1]

	ok := true
	kept := start
	for i := start; i < len(a.rects); i++ {
		mapped, good := mapFn(a.rects[i])
		if !good {
			ok = false
		}
		if clip != nil {
			mapped = mapped.Intersect(*clip)
		}
		if mapped.IsEmpty() {
			continue
		}
		a.rects[kept] = mapped
		a.indices[kept] = a.indices[i]
		kept++
	}
	a.rects = a.rects[:kept]
	a.indices = a.indices[:kept]
	return ok
}

// Bounds returns the union of every rectangle, open scopes included.
func (a *RTreeBoundsAccumulator) Bounds() Rect {
	var r Rect
	for _, rect := range a.rects {
		r = r.Union(rect)
	}
	return r
}

// RTree builds an index over a copy of the accumulated rectangles.
func (a *RTreeBoundsAccumulator) RTree() *RTree {
	return NewRTree(a.rects, a.indices)
}
