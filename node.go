package roadgrowth

import (
	"fmt"

	"github.com/voidshard/roadgrowth/geom"
)

// NodeID is the handle of a node within a PathNetwork.
// IDs are handed out in increasing order and never reused.
type NodeID int

// TransportNode is a junction, bend or end of a path.
type TransportNode struct {
	// where the node sits
	Site geom.Site

	// class of the node, see stage.go
	Stage Stage

	// height of the path surface at Site
	Elevation float64

	// true if the node is the middle of a bridge, such nodes are never
	// joined by new paths and paths touching them are never split
	IsBridge bool
}

// String implements fmt.Stringer
func (n TransportNode) String() string {
	if n.IsBridge {
		return fmt.Sprintf("bridge%v[%s, %.2f]", n.Site, n.Stage, n.Elevation)
	}
	return fmt.Sprintf("node%v[%s, %.2f]", n.Site, n.Stage, n.Elevation)
}

// PathStage is the stage of the path between a and b: the less important of
// the two.
func PathStage(a, b TransportNode) Stage {
	return a.Stage.Max(b.Stage)
}

// PathKey identifies an undirected path. A is always the lower NodeID.
type PathKey struct {
	A NodeID
	B NodeID
}

// NewPathKey returns the key for the path between a and b, in either order.
func NewPathKey(a, b NodeID) PathKey {
	if b < a {
		a, b = b, a
	}
	return PathKey{A: a, B: b}
}

// Stats counts what the builder has done so far.
type Stats struct {
	// stumps popped from the queue
	Iterations int

	// outcomes of those stumps
	New       int
	Existing  int
	Intersect int
	Rejected  int

	// paths built as bridges
	Bridges int
}
