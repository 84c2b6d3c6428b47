package roadgrowth

import (
	"fmt"
	"math"
	"sort"

	"github.com/golang/glog"
	"github.com/unixpickle/essentials"
	"github.com/voidshard/roadgrowth/geom"
)

// crossings closer than this (in curve parameter) to an end count as
// touching that end
const endEpsilon = 1e-9

// Stump is a path that has been planned from an existing node but not yet
// built. It is checked again against the network when it is taken from the
// queue, since the network may have grown around it in the meantime.
type Stump struct {
	// node the path grows from
	NodeID NodeID

	// where the path should end if nothing is in the way
	ExpectedEnd TransportNode

	// rules in force for the path
	Rules GrowthRules

	// higher is built first
	Priority float64

	// true if the path spans unbuildable ground and needs a bridge node
	CreatesBridge bool
}

// OutcomeKind says what building a Stump would do.
type OutcomeKind int

const (
	// nothing can be built
	OutcomeNone OutcomeKind = iota

	// join an existing node
	OutcomeExisting

	// split an existing path with a new node and join that
	OutcomeIntersect

	// build a new node at the expected end
	OutcomeNew
)

// String implements fmt.Stringer
func (k OutcomeKind) String() string {
	switch k {
	case OutcomeExisting:
		return "existing"
	case OutcomeIntersect:
		return "intersect"
	case OutcomeNew:
		return "new"
	}
	return "none"
}

// Outcome is the result of evaluating a Stump.
type Outcome struct {
	Kind OutcomeKind

	// node to join, set for OutcomeExisting
	Existing NodeID

	// path to split, set for OutcomeIntersect
	Split PathKey

	// node to add, set for OutcomeIntersect & OutcomeNew
	Node TransportNode

	// true if a bridge node goes between the stump's node and the target
	Bridge bool
}

// String implements fmt.Stringer
func (o Outcome) String() string {
	switch o.Kind {
	case OutcomeExisting:
		return fmt.Sprintf("existing(%d, bridge=%v)", o.Existing, o.Bridge)
	case OutcomeIntersect:
		return fmt.Sprintf("intersect(%d-%d at %v, bridge=%v)", o.Split.A, o.Split.B, o.Node.Site, o.Bridge)
	case OutcomeNew:
		return fmt.Sprintf("new(%v, bridge=%v)", o.Node.Site, o.Bridge)
	}
	return "none"
}

// crossing is where a planned path meets an existing one.
type crossing struct {
	path      PathKey
	site      geom.Site
	distance  float64 // from the start of the planned path
	elevation float64 // of the existing path at site
	stage     Stage
	bridge    bool
}

// Evaluate decides what building the stump would do to the network right
// now. In order of preference the stump
//   - joins an existing node near its path,
//   - splits the nearest path it crosses (a little past its end included),
//   - builds a new node at its expected end.
//
// Bridges are never split, and anything that would cross a path without a
// junction (and without enough height between them) is refused.
func (n *PathNetwork) Evaluate(s *Stump) Outcome {
	start, ok := n.Node(s.NodeID)
	if !ok {
		return Outcome{}
	}
	r := s.Rules
	end := s.ExpectedEnd

	line := geom.NewLineSegment(start.Site, end.Site)
	length := line.Length()
	if length == 0 {
		return Outcome{}
	}

	if id, ok := n.existingCandidate(s.NodeID, start, line, r); ok {
		return Outcome{Kind: OutcomeExisting, Existing: id, Bridge: s.CreatesBridge}
	}

	search := geom.NewLineSegment(
		start.Site,
		start.Site.Extend(line.Angle(), length+r.PathExtraLengthForIntersection),
	)
	crossed := n.crossings(start, search, length, end.Elevation, r, s.NodeID)

	blocked := false
	for _, c := range crossed {
		if !r.PathSlopeElevationDiffLimit.CheckConstructable(start.Elevation, c.elevation, c.distance) {
			if c.distance <= length {
				// we'd run over it without a junction
				return Outcome{}
			}
			blocked = true
			continue
		}
		if c.bridge || blocked {
			// a junction here means passing over a path we can't join
			return Outcome{}
		}
		return Outcome{
			Kind:  OutcomeIntersect,
			Split: c.path,
			Node: TransportNode{
				Site:      c.site,
				Stage:     c.stage,
				Elevation: c.elevation,
				IsBridge:  c.bridge,
			},
			Bridge: s.CreatesBridge,
		}
	}

	if !r.PathSlopeElevationDiffLimit.CheckConstructable(start.Elevation, end.Elevation, length) {
		return Outcome{}
	}
	return Outcome{Kind: OutcomeNew, Node: end, Bridge: s.CreatesBridge}
}

// existingCandidate finds a node close enough to line that the path should
// simply join it. The node nearest the end of the line wins, ties going to
// the lower id.
func (n *PathNetwork) existingCandidate(id NodeID, start TransportNode, line geom.LineSegment, r GrowthRules) (NodeID, bool) {
	best, found, bestD := NodeID(0), false, 0.0

	for _, cand := range n.NodesAroundLine(line, r.PathExtraLengthForIntersection) {
		if cand == id || n.HasPath(id, cand) {
			continue
		}
		node := n.nodes[cand]
		if node.IsBridge || node.Site == start.Site {
			continue
		}

		dist := start.Site.Distance(node.Site)
		if !r.PathSlopeElevationDiffLimit.CheckConstructable(start.Elevation, node.Elevation, dist) {
			continue
		}
		toCand := geom.NewLineSegment(start.Site, node.Site)
		if len(n.crossings(start, toCand, dist, node.Elevation, r, id, cand)) > 0 {
			continue
		}

		d := node.Site.DistanceSquared(line.End)
		if !found || d < bestD {
			best, bestD, found = cand, d, true
		}
	}

	return best, found
}

// crossings returns where line crosses existing paths, nearest the start
// first. The planned path climbs linearly from start to endElevation over
// length and is flat past that. Paths touching any of the excluded nodes
// are ignored, as are crossings with enough height difference to pass
// over one another.
func (n *PathNetwork) crossings(start TransportNode, line geom.LineSegment, length, endElevation float64, r GrowthRules, exclude ...NodeID) []crossing {
	skip := func(id NodeID) bool {
		for _, e := range exclude {
			if e == id {
				return true
			}
		}
		return false
	}

	planned := geom.NewLinear(line.Start, line.End)
	lineLength := line.Length()

	found := []crossing{}
	for _, key := range n.PathsTouchingRect(line.Start, line.End) {
		if skip(key.A) || skip(key.B) {
			continue
		}
		a, b := n.nodes[key.A], n.nodes[key.B]
		for _, hit := range planned.Intersections(n.PathCurve(key.A, key.B)) {
			if hit.T <= endEpsilon || hit.OtherT <= endEpsilon || hit.OtherT >= 1-endEpsilon {
				continue
			}
			found = append(found, crossing{
				path:      key,
				site:      hit.Site,
				distance:  hit.T * lineLength,
				elevation: a.Elevation + (b.Elevation-a.Elevation)*hit.OtherT,
				stage:     PathStage(a, b),
				bridge:    a.IsBridge || b.IsBridge,
			})
		}
	}

	for i := len(found) - 1; i >= 0; i-- {
		ours := start.Elevation + (endElevation-start.Elevation)*math.Min(found[i].distance/length, 1)
		if r.gradeSeparated(ours, found[i].elevation) {
			essentials.UnorderedDelete(&found, i)
		}
	}

	sort.Slice(found, func(i, j int) bool {
		if found[i].distance != found[j].distance {
			return found[i].distance < found[j].distance
		}
		if found[i].path.A != found[j].path.A {
			return found[i].path.A < found[j].path.A
		}
		return found[i].path.B < found[j].path.B
	})
	return found
}

// searchStump plans the best path out of node id heading roughly along
// angle. Every direction in the fan allowed by the rules is tried, and for
// each the shortest span (plain path, then longer and longer bridges) that
// lands somewhere buildable is kept. The highest priority direction wins.
func (b *Builder) searchStump(id NodeID, angle geom.Angle, stage Stage) (*Stump, bool) {
	node, ok := b.network.Node(id)
	if !ok {
		return nil, false
	}
	rules, ok := b.rules.Rules(node.Site, angle, stage)
	if !ok {
		return nil, false
	}
	if err := rules.Validate(); err != nil {
		glog.Warningf("ignoring rules for %v heading %.3f: %v", node.Site, angle.Radian(), err)
		return nil, false
	}

	var best *Stump
	fan := angle.IterRangeAround(rules.Direction.MaxRadian, rules.Direction.ComparisonStep)
	for i := 0; i < fan.Len(); i++ {
		theta := fan.At(i)
		for k := 0; k <= rules.bridgeSteps(); k++ {
			length := rules.PathNormalLength + rules.bridgeLength(k)
			site := node.Site.Extend(theta, length)

			elevation, ok := b.terrain.Elevation(site)
			if !ok {
				continue
			}
			if !rules.PathSlopeElevationDiffLimit.CheckConstructable(node.Elevation, elevation, length) {
				continue
			}
			if k == 0 && b.voids != nil && b.voids.CrossesVoid(node.Site, site) {
				continue
			}

			priority, ok := b.prioritizator.Prioritize(node, geom.NewLinear(node.Site, site))
			if !ok {
				continue
			}
			if math.IsNaN(priority) {
				panic(fmt.Sprintf("prioritizator returned NaN for path %v -> %v", node.Site, site))
			}

			if best == nil || priority > best.Priority {
				best = &Stump{
					NodeID: id,
					ExpectedEnd: TransportNode{
						Site:      site,
						Stage:     stage,
						Elevation: elevation,
					},
					Rules:         rules,
					Priority:      priority,
					CreatesBridge: k > 0,
				}
			}
			break
		}
	}

	return best, best != nil
}
