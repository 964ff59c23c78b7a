package maplabel

import (
	"fmt"

	"github.com/dhconnelly/rtreego"
	"github.com/paulmach/orb"
)

// rtreego rejects rectangles with a zero side, so degenerate boxes
// (zero radius points) are widened by this much.
const minRectLength = 1e-9

type rtreeItem struct {
	id    int
	bound orb.Bound
	rect  rtreego.Rect
}

// Bounds implements rtreego.Spatial.
func (it *rtreeItem) Bounds() rtreego.Rect {
	return it.rect
}

// RTreeIndex is a dynamic SpatialIndex backed by github.com/dhconnelly/rtreego.
type RTreeIndex struct {
	tree  *rtreego.Rtree
	items map[int]*rtreeItem
}

// NewRTreeIndex creates an empty dynamic index.
func NewRTreeIndex() *RTreeIndex {
	return &RTreeIndex{
		tree:  rtreego.NewTree(2, 25, 50),
		items: map[int]*rtreeItem{},
	}
}

func toRect(b orb.Bound) rtreego.Rect {
	w := max(b.Max[0]-b.Min[0], minRectLength)
	h := max(b.Max[1]-b.Min[1], minRectLength)
	rect, err := rtreego.NewRect(rtreego.Point{b.Min[0], b.Min[1]}, []float64{w, h})
	if err != nil {
		panic(fmt.Sprintf("maplabel: invalid rectangle %v: %v", b, err))
	}
	return rect
}

// Insert adds an entry.
func (r *RTreeIndex) Insert(id int, b orb.Bound) {
	if _, ok := r.items[id]; ok {
		panic(fmt.Sprintf("maplabel: RTreeIndex.Insert of id %d twice", id))
	}
	item := &rtreeItem{id: id, bound: b, rect: toRect(b)}
	r.items[id] = item
	r.tree.Insert(item)
}

// Delete removes an entry. b must be the rectangle it was inserted with.
func (r *RTreeIndex) Delete(id int, b orb.Bound) {
	item, ok := r.items[id]
	if !ok {
		panic(fmt.Sprintf("maplabel: RTreeIndex.Delete of id %d that is not in the index", id))
	}
	if item.bound != b {
		panic(fmt.Sprintf("maplabel: RTreeIndex.Delete of id %d with a different rectangle", id))
	}
	if !r.tree.Delete(item) {
		panic(fmt.Sprintf("maplabel: RTreeIndex lost id %d", id))
	}
	delete(r.items, id)
}

// Query appends the ids of all entries intersecting b to results[:0].
func (r *RTreeIndex) Query(b orb.Bound, results []int) []int {
	results = results[:0]
	if len(r.items) == 0 {
		return results
	}
	for _, s := range r.tree.SearchIntersect(toRect(b)) {
		results = append(results, s.(*rtreeItem).id)
	}
	return results
}

// Len returns the number of entries in the index.
func (r *RTreeIndex) Len() int {
	return len(r.items)
}

var _ SpatialIndex = (*RTreeIndex)(nil)
