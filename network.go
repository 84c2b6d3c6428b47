package roadgrowth

import (
	"sort"

	"github.com/pkg/errors"
	"github.com/voidshard/roadgrowth/geom"
	"github.com/voidshard/roadgrowth/internal/spatial"
)

var (
	// ErrInconsistentNetwork is the cause of every CheckConsistency error.
	ErrInconsistentNetwork = errors.New("path network is inconsistent")
)

// PathNetwork is an undirected graph of TransportNodes joined by straight
// paths, indexed spatially by node site and by path extent.
type PathNetwork struct {
	nodes  map[NodeID]TransportNode
	adj    map[NodeID]map[NodeID]struct{}
	nextID NodeID

	nodeIndex *spatial.Index
	pathIndex *spatial.Index

	// paths are indexed under an int record id of their own
	pathIDs  map[PathKey]int
	pathKeys map[int]PathKey
	nextPath int
}

// NewPathNetwork returns an empty network
func NewPathNetwork() *PathNetwork {
	return &PathNetwork{
		nodes:     map[NodeID]TransportNode{},
		adj:       map[NodeID]map[NodeID]struct{}{},
		nodeIndex: spatial.New(),
		pathIndex: spatial.New(),
		pathIDs:   map[PathKey]int{},
		pathKeys:  map[int]PathKey{},
	}
}

// AddNode inserts node and returns its new id.
func (n *PathNetwork) AddNode(node TransportNode) NodeID {
	id := n.nextID
	n.nextID++

	n.nodes[id] = node
	n.adj[id] = map[NodeID]struct{}{}
	n.nodeIndex.Insert(int(id), geom.RectFromSites(node.Site))
	return id
}

// RemoveNode deletes the node and every path touching it.
// Unknown ids are ignored.
func (n *PathNetwork) RemoveNode(id NodeID) {
	if _, ok := n.nodes[id]; !ok {
		return
	}
	for _, other := range n.Neighbors(id) {
		n.RemovePath(id, other)
	}
	delete(n.nodes, id)
	delete(n.adj, id)
	n.nodeIndex.Delete(int(id))
}

// AddPath joins a and b. Self loops, unknown nodes and paths that already
// exist are refused.
func (n *PathNetwork) AddPath(a, b NodeID) (PathKey, bool) {
	if a == b || !n.HasNode(a) || !n.HasNode(b) || n.HasPath(a, b) {
		return PathKey{}, false
	}
	key := NewPathKey(a, b)

	n.adj[a][b] = struct{}{}
	n.adj[b][a] = struct{}{}

	rid := n.nextPath
	n.nextPath++
	n.pathIDs[key] = rid
	n.pathKeys[rid] = key
	n.pathIndex.Insert(rid, n.PathCurve(a, b).Bounds())

	return key, true
}

// RemovePath deletes the path between a and b, returning false if there
// was none.
func (n *PathNetwork) RemovePath(a, b NodeID) bool {
	if !n.HasPath(a, b) {
		return false
	}
	key := NewPathKey(a, b)

	delete(n.adj[a], b)
	delete(n.adj[b], a)

	rid := n.pathIDs[key]
	delete(n.pathIDs, key)
	delete(n.pathKeys, rid)
	n.pathIndex.Delete(rid)
	return true
}

// Node returns the node with the given id.
func (n *PathNetwork) Node(id NodeID) (TransportNode, bool) {
	node, ok := n.nodes[id]
	return node, ok
}

// HasNode reports if id is in the network.
func (n *PathNetwork) HasNode(id NodeID) bool {
	_, ok := n.nodes[id]
	return ok
}

// HasPath reports if a and b are joined.
func (n *PathNetwork) HasPath(a, b NodeID) bool {
	nbrs, ok := n.adj[a]
	if !ok {
		return false
	}
	_, ok = nbrs[b]
	return ok
}

// Neighbors returns the ids joined to id, in ascending order.
func (n *PathNetwork) Neighbors(id NodeID) []NodeID {
	out := make([]NodeID, 0, len(n.adj[id]))
	for other := range n.adj[id] {
		out = append(out, other)
	}
	sortIDs(out)
	return out
}

// Degree is the number of paths touching id.
func (n *PathNetwork) Degree(id NodeID) int {
	return len(n.adj[id])
}

// Nodes returns every node id in ascending order.
func (n *PathNetwork) Nodes() []NodeID {
	out := make([]NodeID, 0, len(n.nodes))
	for id := range n.nodes {
		out = append(out, id)
	}
	sortIDs(out)
	return out
}

// Paths returns every path in ascending order.
func (n *PathNetwork) Paths() []PathKey {
	out := make([]PathKey, 0, len(n.pathIDs))
	for key := range n.pathIDs {
		out = append(out, key)
	}
	sortKeys(out)
	return out
}

// NodeCount is the number of nodes.
func (n *PathNetwork) NodeCount() int {
	return len(n.nodes)
}

// PathCount is the number of paths.
func (n *PathNetwork) PathCount() int {
	return len(n.pathIDs)
}

// PathCurve returns the geometry of the path from a to b.
// Unknown nodes sit at the origin.
func (n *PathNetwork) PathCurve(a, b NodeID) geom.PathCurve {
	return geom.NewLinear(n.nodes[a].Site, n.nodes[b].Site)
}

// PathIsBridge reports if either end of the path is a bridge node.
func (n *PathNetwork) PathIsBridge(a, b NodeID) bool {
	return n.nodes[a].IsBridge || n.nodes[b].IsBridge
}

// NodesAroundLine returns the nodes within radius of the segment, in
// ascending id order.
func (n *PathNetwork) NodesAroundLine(line geom.LineSegment, radius float64) []NodeID {
	out := []NodeID{}
	for _, rid := range n.nodeIndex.Search(line.Bounds().Expanded(radius)) {
		id := NodeID(rid)
		if line.Distance(n.nodes[id].Site) <= radius {
			out = append(out, id)
		}
	}
	return out
}

// NearestNode returns the closest node within radius of site.
// Ties go to the lower id.
func (n *PathNetwork) NearestNode(site geom.Site, radius float64) (NodeID, bool) {
	best, found := NodeID(0), false
	bestD := radius * radius
	area := geom.RectFromSites(site).Expanded(radius)
	for _, rid := range n.nodeIndex.Search(area) {
		d := n.nodes[NodeID(rid)].Site.DistanceSquared(site)
		if d < bestD || (d == bestD && !found) {
			best, bestD, found = NodeID(rid), d, true
		}
	}
	return best, found
}

// PathsTouchingRect returns the paths whose extent touches the rectangle
// spanned by p0 and p1, in ascending order.
func (n *PathNetwork) PathsTouchingRect(p0, p1 geom.Site) []PathKey {
	ids := n.pathIndex.Search(geom.RectFromSites(p0, p1))
	out := make([]PathKey, 0, len(ids))
	for _, rid := range ids {
		out = append(out, n.pathKeys[rid])
	}
	sortKeys(out)
	return out
}

// RemoveIslands drops every node with no paths, returning how many went.
func (n *PathNetwork) RemoveIslands() int {
	removed := 0
	for _, id := range n.Nodes() {
		if n.Degree(id) == 0 {
			n.RemoveNode(id)
			removed++
		}
	}
	return removed
}

// CheckConsistency verifies adjacency symmetry, that every path and node
// is indexed, and that the indexes hold nothing else.
func (n *PathNetwork) CheckConsistency() error {
	inconsistent := func(format string, args ...interface{}) error {
		return errors.Wrapf(ErrInconsistentNetwork, format, args...)
	}

	if len(n.adj) != len(n.nodes) {
		return inconsistent("%d nodes but %d adjacency entries", len(n.nodes), len(n.adj))
	}
	if n.nodeIndex.Len() != len(n.nodes) {
		return inconsistent("%d nodes but %d indexed", len(n.nodes), n.nodeIndex.Len())
	}

	paths := 0
	for a, nbrs := range n.adj {
		if _, ok := n.nodes[a]; !ok {
			return inconsistent("adjacency for unknown node %d", a)
		}
		if !n.nodeIndex.Has(int(a)) {
			return inconsistent("node %d is not indexed", a)
		}
		for b := range nbrs {
			if a == b {
				return inconsistent("node %d has a self loop", a)
			}
			if !n.HasPath(b, a) {
				return inconsistent("path %d-%d is one way", a, b)
			}
			rid, ok := n.pathIDs[NewPathKey(a, b)]
			if !ok || !n.pathIndex.Has(rid) {
				return inconsistent("path %d-%d is not indexed", a, b)
			}
			if a < b {
				paths++
			}
		}
	}

	if paths != len(n.pathIDs) || paths != n.pathIndex.Len() || paths != len(n.pathKeys) {
		return inconsistent("%d paths but %d recorded, %d indexed", paths, len(n.pathIDs), n.pathIndex.Len())
	}
	return nil
}

func sortIDs(in []NodeID) {
	sort.Slice(in, func(i, j int) bool { return in[i] < in[j] })
}

func sortKeys(in []PathKey) {
	sort.Slice(in, func(i, j int) bool {
		if in[i].A != in[j].A {
			return in[i].A < in[j].A
		}
		return in[i].B < in[j].B
	})
}
