package roadgrowth

import (
	"math"
	"testing"

	"github.com/voidshard/roadgrowth/geom"
)

// straightRules never bend, branch or bridge.
func straightRules() GrowthRules {
	r := DefaultGrowthRules()
	r.PathNormalLength = 10
	r.PathExtraLengthForIntersection = 2
	r.Branch = BranchRules{}
	r.Direction = PathDirectionRules{MaxRadian: 0, ComparisonStep: 1}
	return r
}

// crossNetwork is a path A(0,0)-B(10,0) and a node C at (5,-5) below it.
func crossNetwork(bridge bool) (*PathNetwork, NodeID, NodeID, NodeID) {
	n := NewPathNetwork()
	a := n.AddNode(TransportNode{Site: geom.NewSite(0, 0)})
	b := n.AddNode(TransportNode{Site: geom.NewSite(10, 0), IsBridge: bridge})
	c := n.AddNode(TransportNode{Site: geom.NewSite(5, -5)})
	n.AddPath(a, b)
	return n, a, b, c
}

func upwardStump(c NodeID, r GrowthRules) *Stump {
	return &Stump{
		NodeID:      c,
		ExpectedEnd: TransportNode{Site: geom.NewSite(5, 5)},
		Rules:       r,
		Priority:    1,
	}
}

func TestEvaluateIntersect(t *testing.T) {
	n, a, b, c := crossNetwork(false)
	n.nodes[a] = TransportNode{Site: geom.NewSite(0, 0), Elevation: 2, Stage: StageStreet}
	n.nodes[b] = TransportNode{Site: geom.NewSite(10, 0), Elevation: 4}

	out := n.Evaluate(upwardStump(c, straightRules()))
	if out.Kind != OutcomeIntersect {
		t.Fatalf("expected intersect, got %v", out)
	}
	if out.Split != NewPathKey(a, b) {
		t.Fatalf("expected split of %d-%d, got %v", a, b, out.Split)
	}
	if out.Node.Site.Distance(geom.NewSite(5, 0)) > 1e-9 {
		t.Fatalf("expected junction at (5, 0), got %v", out.Node.Site)
	}
	if math.Abs(out.Node.Elevation-3) > 1e-9 {
		t.Fatalf("expected interpolated elevation 3, got %v", out.Node.Elevation)
	}
	if out.Node.Stage != StageStreet {
		t.Fatalf("expected junction to take the path stage, got %v", out.Node.Stage)
	}
}

func TestEvaluateRejectsSplittingBridges(t *testing.T) {
	n, _, _, c := crossNetwork(true)
	if out := n.Evaluate(upwardStump(c, straightRules())); out.Kind != OutcomeNone {
		t.Fatalf("expected bridge path to block the stump, got %v", out)
	}
}

func TestEvaluateIntersectWithinExtraLength(t *testing.T) {
	n, a, b, c := crossNetwork(false)
	// ends 1 short of the path, inside the extra search length
	s := upwardStump(c, straightRules())
	s.ExpectedEnd.Site = geom.NewSite(5, -1)

	out := n.Evaluate(s)
	if out.Kind != OutcomeIntersect || out.Split != NewPathKey(a, b) {
		t.Fatalf("expected stump to reach the path, got %v", out)
	}
}

func TestEvaluateExisting(t *testing.T) {
	n := NewPathNetwork()
	c := n.AddNode(TransportNode{Site: geom.NewSite(5, -5)})
	far := n.AddNode(TransportNode{Site: geom.NewSite(4, 4)})
	close := n.AddNode(TransportNode{Site: geom.NewSite(5.5, 4)})
	n.AddNode(TransportNode{Site: geom.NewSite(5.1, 3), IsBridge: true})

	out := n.Evaluate(upwardStump(c, straightRules()))
	if out.Kind != OutcomeExisting {
		t.Fatalf("expected existing, got %v", out)
	}
	if out.Existing != close {
		t.Fatalf("expected node %d nearest the end, got %d (not %d)", close, out.Existing, far)
	}
}

func TestEvaluateExistingSkipsNeighbours(t *testing.T) {
	n := NewPathNetwork()
	c := n.AddNode(TransportNode{Site: geom.NewSite(5, -5)})
	d := n.AddNode(TransportNode{Site: geom.NewSite(5, 4)})
	n.AddPath(c, d)

	out := n.Evaluate(upwardStump(c, straightRules()))
	if out.Kind == OutcomeExisting {
		t.Fatalf("already joined node should not be joined again, got %v", out)
	}
}

func TestEvaluateExistingBlockedByCrossing(t *testing.T) {
	n, a, b, c := crossNetwork(false)
	n.AddNode(TransportNode{Site: geom.NewSite(5.5, 4)})

	// the path A-B sits between C and the candidate, so we split it instead
	out := n.Evaluate(upwardStump(c, straightRules()))
	if out.Kind != OutcomeIntersect || out.Split != NewPathKey(a, b) {
		t.Fatalf("expected intersect, got %v", out)
	}
}

func TestEvaluateGradeSeparation(t *testing.T) {
	r := straightRules()
	r.PathGradeSeparationElevationDiffRequired = 5

	n, a, b, c := crossNetwork(false)
	n.nodes[a] = TransportNode{Site: geom.NewSite(0, 0), Elevation: 10}
	n.nodes[b] = TransportNode{Site: geom.NewSite(10, 0), Elevation: 10}

	out := n.Evaluate(upwardStump(c, r))
	if out.Kind != OutcomeNew {
		t.Fatalf("expected to pass under the path, got %v", out)
	}

	r.PathGradeSeparationElevationDiffRequired = math.Inf(1)
	out = n.Evaluate(upwardStump(c, r))
	if out.Kind != OutcomeIntersect {
		t.Fatalf("expected to meet the path, got %v", out)
	}
}

func TestEvaluateConflictingCrossing(t *testing.T) {
	r := straightRules()
	r.PathSlopeElevationDiffLimit = LinearLimit(0.1)

	n, a, b, c := crossNetwork(false)
	n.nodes[a] = TransportNode{Site: geom.NewSite(0, 0), Elevation: 10}
	n.nodes[b] = TransportNode{Site: geom.NewSite(10, 0), Elevation: 10}

	// too steep to join the path, not enough height to pass under it
	if out := n.Evaluate(upwardStump(c, r)); out.Kind != OutcomeNone {
		t.Fatalf("expected conflict, got %v", out)
	}
}

func TestEvaluateNew(t *testing.T) {
	n := NewPathNetwork()
	c := n.AddNode(TransportNode{Site: geom.NewSite(5, -5)})

	s := upwardStump(c, straightRules())
	s.CreatesBridge = true
	out := n.Evaluate(s)
	if out.Kind != OutcomeNew || out.Node.Site != geom.NewSite(5, 5) || !out.Bridge {
		t.Fatalf("expected new bridged node at (5, 5), got %v", out)
	}

	t.Run("too steep", func(t *testing.T) {
		r := straightRules()
		r.PathSlopeElevationDiffLimit = LinearLimit(0.1)
		s := upwardStump(c, r)
		s.ExpectedEnd.Elevation = 5
		if out := n.Evaluate(s); out.Kind != OutcomeNone {
			t.Fatalf("expected slope to reject, got %v", out)
		}
	})

	t.Run("start gone", func(t *testing.T) {
		s := upwardStump(NodeID(99), straightRules())
		if out := n.Evaluate(s); out.Kind != OutcomeNone {
			t.Fatalf("expected nothing for a missing start, got %v", out)
		}
	})
}

func TestEvaluateNearerCrossingBlocksJunction(t *testing.T) {
	r := straightRules()
	r.PathSlopeElevationDiffLimit = LinearLimit(1)

	n, a, b, c := crossNetwork(false)
	// a raised path 2 above C, too steep to join
	d := n.AddNode(TransportNode{Site: geom.NewSite(0, -3), Elevation: 5})
	e := n.AddNode(TransportNode{Site: geom.NewSite(10, -3), Elevation: 5})
	n.AddPath(d, e)

	out := n.Evaluate(upwardStump(c, r))
	if out.Kind != OutcomeNone {
		t.Fatalf("expected %d-%d to block reaching %d-%d, got %v", d, e, a, b, out)
	}
}

func TestEvaluateUnjoinableCrossingPastEnd(t *testing.T) {
	r := straightRules()
	r.PathExtraLengthForIntersection = 4
	r.PathSlopeElevationDiffLimit = LinearLimit(1)

	n := NewPathNetwork()
	c := n.AddNode(TransportNode{Site: geom.NewSite(5, -5)})
	// raised path just past the expected end, too steep to join
	a := n.AddNode(TransportNode{Site: geom.NewSite(0, 6), Elevation: 20})
	b := n.AddNode(TransportNode{Site: geom.NewSite(10, 6), Elevation: 20})
	n.AddPath(a, b)

	// nothing is crossed before the end, so the path can still be built
	if out := n.Evaluate(upwardStump(c, r)); out.Kind != OutcomeNew {
		t.Fatalf("expected new, got %v", out)
	}

	// a level path beyond it must not be joined over the raised one
	d := n.AddNode(TransportNode{Site: geom.NewSite(0, 8)})
	e := n.AddNode(TransportNode{Site: geom.NewSite(10, 8)})
	n.AddPath(d, e)

	if out := n.Evaluate(upwardStump(c, r)); out.Kind != OutcomeNone {
		t.Fatalf("expected %d-%d to block reaching %d-%d, got %v", a, b, d, e, out)
	}
}
