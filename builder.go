package roadgrowth

import (
	"github.com/golang/glog"
	"github.com/voidshard/roadgrowth/geom"
)

// Builder grows a PathNetwork one stump at a time.
//
// Origins seed the queue with stumps in two opposite directions, each
// iteration builds the highest priority stump (if it still fits) and
// stumps that end on new nodes enqueue their own continuations and
// branches. Growth stops when the queue is empty.
type Builder struct {
	network *PathNetwork

	terrain       TerrainProvider
	voids         VoidCrosser // nil unless terrain can answer
	rules         TransportRulesProvider
	prioritizator PathPrioritizator

	queue  *stumpQueue
	checks bool
	stats  Stats
}

// BuilderOption configures a Builder.
type BuilderOption func(*Builder)

// WithNetwork grows an existing network rather than a new empty one.
func WithNetwork(n *PathNetwork) BuilderOption {
	return func(b *Builder) {
		b.network = n
	}
}

// WithConsistencyChecks verifies the network after every iteration and
// panics if it is broken. Slow, intended for tests & debugging.
func WithConsistencyChecks() BuilderOption {
	return func(b *Builder) {
		b.checks = true
	}
}

// NewBuilder returns a Builder over the given providers.
func NewBuilder(terrain TerrainProvider, rules TransportRulesProvider, prioritizator PathPrioritizator, opts ...BuilderOption) *Builder {
	b := &Builder{
		terrain:       terrain,
		rules:         rules,
		prioritizator: prioritizator,
		queue:         newStumpQueue(),
	}
	if vc, ok := terrain.(VoidCrosser); ok {
		b.voids = vc
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.network == nil {
		b.network = NewPathNetwork()
	}
	return b
}

// Network returns the network being grown. It must not be modified while
// the builder is in use.
func (b *Builder) Network() *PathNetwork {
	return b.network
}

// Stats returns counts of what has been built so far.
func (b *Builder) Stats() Stats {
	return b.stats
}

// QueueLen is the number of stumps waiting to be built.
func (b *Builder) QueueLen() int {
	return b.queue.len()
}

// AddOrigin places a node at site and plans paths from it along angle and
// its opposite. Returns false if the terrain has no elevation at site.
func (b *Builder) AddOrigin(site geom.Site, angle geom.Angle, stage Stage) (NodeID, bool) {
	elevation, ok := b.terrain.Elevation(site)
	if !ok {
		return 0, false
	}
	id := b.network.AddNode(TransportNode{Site: site, Stage: stage, Elevation: elevation})

	planned := 0
	for _, dir := range []geom.Angle{angle, angle.Opposite()} {
		if s, ok := b.searchStump(id, dir, stage); ok {
			b.queue.push(s)
			planned++
		}
	}

	glog.V(1).Infof("origin %d at %v (%s), %d stumps planned", id, site, stage, planned)
	return id, true
}

// Iterate builds the highest priority stump. Returns false once there is
// nothing left to build.
func (b *Builder) Iterate(rng RandomF64Provider) bool {
	s, ok := b.queue.pop()
	if !ok {
		return false
	}
	b.stats.Iterations++

	out := b.network.Evaluate(s)
	glog.V(2).Infof("stump %d -> %v priority %.3f: %v", s.NodeID, s.ExpectedEnd.Site, s.Priority, out)

	switch out.Kind {
	case OutcomeExisting:
		b.connect(s.NodeID, out.Existing, out.Bridge)
		b.stats.Existing++
	case OutcomeIntersect:
		b.network.RemovePath(out.Split.A, out.Split.B)
		mid := b.network.AddNode(out.Node)
		b.network.AddPath(out.Split.A, mid)
		b.network.AddPath(mid, out.Split.B)
		b.connect(s.NodeID, mid, out.Bridge)
		b.stats.Intersect++
	case OutcomeNew:
		id := b.network.AddNode(out.Node)
		b.connect(s.NodeID, id, out.Bridge)
		b.stats.New++
		b.grow(s, id, rng)
	default:
		b.stats.Rejected++
	}

	if b.checks {
		if err := b.network.CheckConsistency(); err != nil {
			glog.Errorf("network broken after %v: %v", out, err)
			panic(err)
		}
	}
	return true
}

// IterateN runs at most n iterations, returning how many ran.
func (b *Builder) IterateN(n int, rng RandomF64Provider) int {
	done := 0
	for done < n && b.Iterate(rng) {
		done++
	}
	return done
}

// IterateAsPossible runs until the queue is empty, returning how many
// iterations ran.
func (b *Builder) IterateAsPossible(rng RandomF64Provider) int {
	done := 0
	for b.Iterate(rng) {
		done++
	}
	glog.V(1).Infof("growth finished after %d iterations: %+v", done, b.stats)
	return done
}

// Build drops any node left without paths and returns the network.
// Pending stumps are discarded; the builder should not be used afterwards.
func (b *Builder) Build() *PathNetwork {
	removed := b.network.RemoveIslands()
	b.queue = newStumpQueue()
	glog.V(1).Infof("built network of %d nodes, %d paths (%d islands removed)", b.network.NodeCount(), b.network.PathCount(), removed)
	return b.network
}

// connect joins a and c, through a bridge node halfway if bridge is set.
func (b *Builder) connect(a, c NodeID, bridge bool) {
	if !bridge {
		b.network.AddPath(a, c)
		return
	}
	na, _ := b.network.Node(a)
	nc, _ := b.network.Node(c)
	mid := b.network.AddNode(TransportNode{
		Site:      na.Site.Midpoint(nc.Site),
		Stage:     PathStage(na, nc),
		Elevation: (na.Elevation + nc.Elevation) / 2,
		IsBridge:  true,
	})
	b.network.AddPath(a, mid)
	b.network.AddPath(mid, c)
	b.stats.Bridges++
}

// grow plans what follows a stump that ended on the new node id: a straight
// continuation and maybe a branch to either side.
//
// nb. the four random draws (clockwise branch, clockwise staging, counter
// clockwise branch, counter clockwise staging) are always taken, in that
// order, so a seed replays identically.
func (b *Builder) grow(s *Stump, id NodeID, rng RandomF64Provider) {
	start, _ := b.network.Node(s.NodeID)
	end, _ := b.network.Node(id)
	dir := start.Site.AngleTo(end.Site)

	straight, ok := b.searchStump(id, dir, end.Stage)
	if ok {
		b.queue.push(straight)
	}

	for _, side := range []geom.Angle{dir.Clockwise(), dir.CounterClockwise()} {
		branch := rng.Float64() < s.Rules.Branch.Density
		staging := rng.Float64() < s.Rules.Branch.StagingProbability
		if !branch && ok {
			continue
		}
		stage := end.Stage
		if staging {
			stage = stage.Next()
		}
		if st, found := b.searchStump(id, side, stage); found {
			b.queue.push(st)
		}
	}
}
