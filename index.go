package maplabel

import (
	"fmt"
	"strings"

	"github.com/paulmach/orb"
)

// SpatialIndex answers rectangle intersection queries over integer ids.
//
// Ids are owned by the caller. Inserting an id twice, or deleting an id that is not
// in the index, is a programming error and panics.
type SpatialIndex interface {
	Insert(id int, b orb.Bound)
	Delete(id int, b orb.Bound)
	// Query appends the ids of all entries whose rectangle intersects b to results[:0].
	// Reusing results across calls avoids allocations in hot loops.
	Query(b orb.Bound, results []int) []int
	Len() int
}

// IndexKind selects a SpatialIndex implementation.
type IndexKind int

const (
	// IndexPacked is a packed Hilbert R-tree built once over every entry that may
	// ever be inserted. Insert and Delete only toggle entries on and off.
	IndexPacked IndexKind = iota
	// IndexRTree is a fully dynamic R-tree.
	IndexRTree
)

func (k IndexKind) String() string {
	switch k {
	case IndexPacked:
		return "packed"
	case IndexRTree:
		return "rtree"
	}
	return fmt.Sprintf("IndexKind(%d)", int(k))
}

// ParseIndexKind is the inverse of IndexKind.String.
func ParseIndexKind(s string) (IndexKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "packed", "flatbush":
		return IndexPacked, nil
	case "rtree":
		return IndexRTree, nil
	}
	return 0, fmt.Errorf("%w: index %q", ErrInvalidOptions, s)
}

// newSpatialIndex creates an empty index able to hold the given boxes, where the id of a
// box is its position in the slice.
func newSpatialIndex(kind IndexKind, boxes []orb.Bound, nodeSize int) SpatialIndex {
	switch kind {
	case IndexRTree:
		return NewRTreeIndex()
	default:
		p := NewPackedIndex(nodeSize)
		p.Reserve(len(boxes))
		for _, b := range boxes {
			p.Add(b)
		}
		p.Finish()
		return p
	}
}
