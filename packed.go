package maplabel

// PackedIndex is a port of https://github.com/mourner/flatbush, extended with
// per-entry activity so that it can serve as a SpatialIndex over entries whose
// rectangles never change.

import (
	"fmt"

	"github.com/paulmach/orb"
)

type packedNode struct {
	bound orb.Bound
	index int // entry id for leaves, position of the first child otherwise
}

// PackedIndex is a static packed Hilbert R-tree.
// Add every box that may ever be inserted, then call Finish. After that, Insert and
// Delete switch entries on and off, and Query only reports entries that are on.
type PackedIndex struct {
	NodeSize int // Minimum 2. Default 16

	nodes         []packedNode
	bounds        orb.Bound
	hilbertValues []uint32
	levelBounds   []int
	numItems      int

	boxes  []orb.Bound // by entry id
	active []bool      // by entry id
	size   int
	queue  []int
}

// NewPackedIndex creates an empty packed index. nodeSize <= 0 selects the default of 16.
func NewPackedIndex(nodeSize int) *PackedIndex {
	if nodeSize <= 0 {
		nodeSize = 16
	}
	return &PackedIndex{
		NodeSize: nodeSize,
		bounds:   invertedBound(),
	}
}

// Reserve enough nodes for the given number of items
func (f *PackedIndex) Reserve(size int) {
	n := size
	numNodes := n
	for n > 1 {
		n = (n + f.NodeSize - 1) / f.NodeSize
		numNodes += n
	}
	f.nodes = make([]packedNode, 0, numNodes)
	f.boxes = make([]orb.Bound, 0, size)
}

// Add a new box, and return its id.
// Ids are zero based and correspond 1:1 with the order of insertion.
// You must add all boxes before calling Finish().
func (f *PackedIndex) Add(b orb.Bound) int {
	if f.levelBounds != nil {
		panic("maplabel: PackedIndex.Add after Finish")
	}
	id := len(f.boxes)
	f.boxes = append(f.boxes, b)
	f.nodes = append(f.nodes, packedNode{bound: b, index: id})
	f.bounds = extend(f.bounds, b)
	return id
}

// Finish builds the tree. All entries start out switched off.
func (f *PackedIndex) Finish() {
	if f.NodeSize < 2 {
		f.NodeSize = 2
	}

	f.numItems = len(f.nodes)
	f.active = make([]bool, f.numItems)

	// calculate the total number of nodes in the R-tree to allocate space for
	// and the index of each tree level (used in search later)
	n := f.numItems
	numNodes := n
	f.levelBounds = append(f.levelBounds[:0], n)
	for {
		n = (n + f.NodeSize - 1) / f.NodeSize
		numNodes += n
		f.levelBounds = append(f.levelBounds, numNodes)
		if n <= 1 {
			break
		}
	}

	width := f.bounds.Max[0] - f.bounds.Min[0]
	height := f.bounds.Max[1] - f.bounds.Min[1]
	if !(width > 0) {
		width = 1
	}
	if !(height > 0) {
		height = 1
	}

	f.hilbertValues = make([]uint32, f.numItems)
	hilbertMax := float64((1 << 16) - 1)

	// map item centers into Hilbert coordinate space and calculate Hilbert values
	for i := 0; i < f.numItems; i++ {
		b := f.nodes[i].bound
		x := uint32(hilbertMax * ((b.Min[0]+b.Max[0])/2 - f.bounds.Min[0]) / width)
		y := uint32(hilbertMax * ((b.Min[1]+b.Max[1])/2 - f.bounds.Min[1]) / height)
		f.hilbertValues[i] = hilbertXYToIndex(16, x, y)
	}

	// sort items by their Hilbert value (for packing later)
	if f.numItems != 0 {
		sortByHilbert(f.hilbertValues, f.nodes, 0, f.numItems-1)
	}

	// generate nodes at each tree level, bottom-up
	pos := 0
	for i := 0; i < len(f.levelBounds)-1; i++ {
		end := f.levelBounds[i]

		// generate a parent node for each block of consecutive <nodeSize> nodes
		for pos < end {
			parent := packedNode{bound: invertedBound(), index: pos}
			for j := 0; j < f.NodeSize && pos < end; j++ {
				parent.bound = extend(parent.bound, f.nodes[pos].bound)
				pos++
			}
			f.nodes = append(f.nodes, parent)
		}
	}
}

func (f *PackedIndex) checkEntry(op string, id int, b orb.Bound) {
	if f.levelBounds == nil {
		panic(fmt.Sprintf("maplabel: PackedIndex.%s before Finish", op))
	}
	if id < 0 || id >= len(f.boxes) {
		panic(fmt.Sprintf("maplabel: PackedIndex.%s of unknown id %d", op, id))
	}
	if f.boxes[id] != b {
		panic(fmt.Sprintf("maplabel: PackedIndex.%s of id %d with a different rectangle", op, id))
	}
}

// Insert switches the entry on. b must be the rectangle the id was added with.
func (f *PackedIndex) Insert(id int, b orb.Bound) {
	f.checkEntry("Insert", id, b)
	if f.active[id] {
		panic(fmt.Sprintf("maplabel: PackedIndex.Insert of id %d twice", id))
	}
	f.active[id] = true
	f.size++
}

// Delete switches the entry off.
func (f *PackedIndex) Delete(id int, b orb.Bound) {
	f.checkEntry("Delete", id, b)
	if !f.active[id] {
		panic(fmt.Sprintf("maplabel: PackedIndex.Delete of id %d that is not in the index", id))
	}
	f.active[id] = false
	f.size--
}

// Len returns the number of entries that are switched on.
func (f *PackedIndex) Len() int {
	return f.size
}

// Query appends the switched on entries that intersect b to results[:0].
func (f *PackedIndex) Query(b orb.Bound, results []int) []int {
	results = results[:0]
	if len(f.levelBounds) == 0 {
		// Must call Finish()
		return results
	}
	if f.numItems == 0 || f.size == 0 {
		return results
	}

	queue := append(f.queue[:0], len(f.nodes)-1, len(f.levelBounds)-1) // nodeIndex, level

	for len(queue) != 0 {
		nodeIndex := queue[len(queue)-2]
		level := queue[len(queue)-1]
		queue = queue[:len(queue)-2]

		// find the end index of the node
		end := min(nodeIndex+f.NodeSize, f.levelBounds[level])

		// search through child nodes
		for pos := nodeIndex; pos < end; pos++ {
			nb := &f.nodes[pos].bound
			if b.Max[0] < nb.Min[0] ||
				b.Max[1] < nb.Min[1] ||
				b.Min[0] > nb.Max[0] ||
				b.Min[1] > nb.Max[1] {
				continue
			}
			if nodeIndex < f.numItems {
				id := f.nodes[pos].index
				if f.active[id] {
					results = append(results, id)
				}
			} else {
				queue = append(queue, f.nodes[pos].index, level-1)
			}
		}
	}
	f.queue = queue
	return results
}

var _ SpatialIndex = (*PackedIndex)(nil)

