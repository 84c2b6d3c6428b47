// Package spatial indexes integer ids by rectangle on top of a bulk loaded
// r-tree.
//
// The tree itself is immutable once loaded, so recent inserts sit in a small
// overflow list and deletes in a tombstone set until enough change has
// built up to justify a reload.
package spatial

import (
	"sort"

	"github.com/peterstace/simplefeatures/rtree"
	"github.com/voidshard/roadgrowth/geom"
)

const (
	// overflow held before a reload, a tree of n items also tolerates n/4
	minReload = 64
)

// Index maps ids to rectangles and answers rectangle queries.
type Index struct {
	tree   *rtree.RTree
	loaded int

	// every live id and its box
	boxes map[int]rtree.Box

	// live ids not yet in tree
	pending map[int]struct{}

	// ids in tree that are no longer live (or have been re-inserted
	// with a new box and now sit in pending)
	stale map[int]struct{}
}

// New returns an empty Index
func New() *Index {
	return &Index{
		tree:    rtree.BulkLoad(nil),
		boxes:   map[int]rtree.Box{},
		pending: map[int]struct{}{},
		stale:   map[int]struct{}{},
	}
}

func toBox(r geom.Rect) rtree.Box {
	return rtree.Box{MinX: r.Min.X, MinY: r.Min.Y, MaxX: r.Max.X, MaxY: r.Max.Y}
}

func overlaps(a, b rtree.Box) bool {
	return a.MinX <= b.MaxX && b.MinX <= a.MaxX && a.MinY <= b.MaxY && b.MinY <= a.MaxY
}

// Len returns the number of live ids.
func (i *Index) Len() int {
	return len(i.boxes)
}

// Has reports if id is indexed.
func (i *Index) Has(id int) bool {
	_, ok := i.boxes[id]
	return ok
}

// Insert sets the rectangle of id, replacing any previous one.
func (i *Index) Insert(id int, r geom.Rect) {
	if _, ok := i.boxes[id]; ok {
		i.Delete(id)
	}
	i.boxes[id] = toBox(r)
	i.pending[id] = struct{}{}
	i.maybeReload()
}

// Delete removes id, returning false if it was not indexed.
func (i *Index) Delete(id int) bool {
	if _, ok := i.boxes[id]; !ok {
		return false
	}
	delete(i.boxes, id)
	if _, ok := i.pending[id]; ok {
		delete(i.pending, id)
	} else {
		i.stale[id] = struct{}{}
	}
	i.maybeReload()
	return true
}

func (i *Index) maybeReload() {
	limit := i.loaded / 4
	if limit < minReload {
		limit = minReload
	}
	if len(i.pending)+len(i.stale) < limit {
		return
	}
	i.reload()
}

// reload bulk loads a fresh tree from the live ids.
func (i *Index) reload() {
	items := make([]rtree.BulkItem, 0, len(i.boxes))
	for id, box := range i.boxes {
		items = append(items, rtree.BulkItem{Box: box, RecordID: id})
	}
	// bulk loading is sensitive to input order
	sort.Slice(items, func(a, b int) bool { return items[a].RecordID < items[b].RecordID })
	i.tree = rtree.BulkLoad(items)
	i.loaded = len(items)
	i.pending = map[int]struct{}{}
	i.stale = map[int]struct{}{}
}

// Search returns every id whose rectangle touches r, in ascending order.
func (i *Index) Search(r geom.Rect) []int {
	q := toBox(r)
	found := []int{}
	// error is always nil, our callback never fails
	if i.loaded > 0 {
		_ = i.tree.RangeSearch(q, func(id int) error {
			if _, gone := i.stale[id]; !gone {
				found = append(found, id)
			}
			return nil
		})
	}
	for id := range i.pending {
		if overlaps(i.boxes[id], q) {
			found = append(found, id)
		}
	}
	sort.Ints(found)
	return found
}
