package displaylist

import "slices"

const rtreeFanOut = 8

// RTree is an immutable bounding-volume hierarchy over the rectangles a
// spatial accumulator collected. Leaves keep the index of the op each
// rectangle came from, so a query answers "which ops touch this area".
//
// The tree is packed bottom-up in insertion order: every run of rtreeFanOut
// consecutive entries shares a parent. Ops near each other in a recording
// tend to be near each other on screen, so this keeps nodes tight without
// sorting.
type RTree struct {
	rects   []Rect
	indices []int
	levels  [][]rtreeNode
	bounds  Rect
}

// rtreeNode covers children [first, first+count) of the level below, or
// leaf entries when it sits in levels[0].
type rtreeNode struct {
	bounds Rect
	first  int
	count  int
}

// NewRTree builds a tree over rects, where indices[i] is the op index of
// rects[i]. Both slices are copied. Empty rectangles are skipped.
func NewRTree(rects []Rect, indices []int) *RTree {
	t := &RTree{}
	for i, r := range rects {
		if r.IsEmpty() {
			continue
		}
		t.rects = append(t.rects, r)
		t.indices = append(t.indices, indices[i])
		t.bounds = t.bounds.Union(r)
	}
	if len(t.rects) == 0 {
		return t
	}

	level := packLevel(len(t.rects), func(i int) Rect { return t.rects[i] })
	t.levels = append(t.levels, level)
	for len(level) > 1 {
		below := level
		level = packLevel(len(below), func(i int) Rect { return below[i].bounds })
		t.levels = append(t.levels, level)
	}
	return t
}

func packLevel(n int, boundsOf func(int) Rect) []rtreeNode {
	nodes := make([]rtreeNode, 0, (n+rtreeFanOut-1)/rtreeFanOut)
	for first := 0; first < n; first += rtreeFanOut {
		count := min(rtreeFanOut, n-first)
		var b Rect
		for i := first; i < first+count; i++ {
			b = b.Union(boundsOf(i))
		}
		nodes = append(nodes, rtreeNode{bounds: b, first: first, count: count})
	}
	return nodes
}

// Len returns the number of leaf rectangles.
func (t *RTree) Len() int {
	if t == nil {
		return 0
	}
	return len(t.rects)
}

// Bounds returns the union of all leaf rectangles.
func (t *RTree) Bounds() Rect {
	if t == nil {
		return Rect{}
	}
	return t.bounds
}

// Search returns the op indices whose rectangles intersect query, in
// ascending order and without duplicates.
func (t *RTree) Search(query Rect) []int {
	var out []int
	t.visit(query, func(leaf int) {
		out = append(out, t.indices[leaf])
	})
	slices.Sort(out)
	return slices.Compact(out)
}

// SearchRects returns the leaf rectangles intersecting query, with
// overlapping results merged so that no two returned rectangles intersect.
func (t *RTree) SearchRects(query Rect) []Rect {
	var found []Rect
	t.visit(query, func(leaf int) {
		found = append(found, t.rects[leaf])
	})
	return consolidateRects(found)
}

func (t *RTree) visit(query Rect, fn func(leaf int)) {
	if t == nil || len(t.levels) == 0 || query.IsEmpty() || !t.bounds.Intersects(query) {
		return
	}
	top := len(t.levels) - 1
	for i := range t.levels[top] {
		t.visitNode(top, i, query, fn)
	}
}

func (t *RTree) visitNode(level, i int, query Rect, fn func(leaf int)) {
	n := t.levels[level][i]
	if !n.bounds.Intersects(query) {
		return
	}
	for c := n.first; c < n.first+n.count; c++ {
		if level == 0 {
			if t.rects[c].Intersects(query) {
				fn(c)
			}
			continue
		}
		t.visitNode(level-1, c, query, fn)
	}
}

func consolidateRects(rects []Rect) []Rect {
	for merged := true; merged; {
		merged = false
		for i := 0; i < len(rects); i++ {
			for j := i + 1; j < len(rects); j++ {
				if !rects[i].Intersects(rects[j]) {
					continue
				}
				rects[i] = rects[i].Union(rects[j])
				rects = slices.Delete(rects, j, j+1)
				merged = true
				j = i
			}
		}
	}
	return rects
}
