package geom

import (
	"math"
	"sort"

	"github.com/golang/geo/r2"
	"github.com/unixpickle/model3d/model2d"
)

// CurveKind is the degree of a PathCurve.
type CurveKind int

const (
	Linear CurveKind = iota
	Quadratic
	Cubic
)

const (
	// max subdivision depth when flattening
	flattenMaxDepth = 16

	// samples taken before refining a projection
	projectionSamples = 64

	// golden section refinement steps for projection
	projectionRefineSteps = 60
)

// PathCurve is a bezier curve of degree 1 to 3 between two sites.
type PathCurve struct {
	kind CurveKind
	pts  [4]Site
}

// CurveSample is a point on a curve and the curve parameter it sits at.
type CurveSample struct {
	Site Site
	T    float64
}

// CurveIntersection is a crossing between two curves.
// T is the parameter on the receiver, OtherT on the argument.
type CurveIntersection struct {
	Site   Site
	T      float64
	OtherT float64
}

// NewLinear returns a straight curve a -> b
func NewLinear(a, b Site) PathCurve {
	return PathCurve{kind: Linear, pts: [4]Site{a, b}}
}

// NewQuadratic returns the quadratic curve from a to b with control c.
func NewQuadratic(a, c, b Site) PathCurve {
	return PathCurve{kind: Quadratic, pts: [4]Site{a, c, b}}
}

// NewCubic returns the cubic curve from a to b with controls c1, c2.
func NewCubic(a, c1, c2, b Site) PathCurve {
	return PathCurve{kind: Cubic, pts: [4]Site{a, c1, c2, b}}
}

// Kind returns the curve degree.
func (c PathCurve) Kind() CurveKind {
	return c.kind
}

// ControlPoints returns start, any controls and the end, in order.
func (c PathCurve) ControlPoints() []Site {
	out := make([]Site, int(c.kind)+2)
	copy(out, c.pts[:])
	return out
}

// Start site of the curve.
func (c PathCurve) Start() Site {
	return c.pts[0]
}

// End site of the curve.
func (c PathCurve) End() Site {
	return c.pts[int(c.kind)+1]
}

// Segment returns the chord from Start to End.
func (c PathCurve) Segment() LineSegment {
	return LineSegment{Start: c.Start(), End: c.End()}
}

// Reverse returns the same curve walked End -> Start.
func (c PathCurve) Reverse() PathCurve {
	ctrl := c.ControlPoints()
	out := PathCurve{kind: c.kind}
	for i := range ctrl {
		out.pts[i] = ctrl[len(ctrl)-1-i]
	}
	return out
}

// Equal is true if both curves join the same two sites, in either direction.
func (c PathCurve) Equal(o PathCurve) bool {
	a0, a1 := c.Start(), c.End()
	b0, b1 := o.Start(), o.End()
	return (a0 == b0 && a1 == b1) || (a0 == b1 && a1 == b0)
}

// Eval returns the site at parameter t in [0,1].
func (c PathCurve) Eval(t float64) Site {
	switch {
	case t <= 0:
		return c.Start()
	case t >= 1:
		return c.End()
	case c.kind == Linear:
		return c.pts[0].Lerp(c.pts[1], t)
	}
	ctrl := c.ControlPoints()
	bz := make(model2d.BezierCurve, len(ctrl))
	for i, s := range ctrl {
		bz[i] = model2d.XY(s.X, s.Y)
	}
	p := bz.Eval(t)
	return Site{X: p.X, Y: p.Y}
}

// Derivative returns the tangent vector at t.
func (c PathCurve) Derivative(t float64) r2.Point {
	p := make([]r2.Point, int(c.kind)+2)
	for i, s := range c.ControlPoints() {
		p[i] = s.point()
	}
	mt := 1 - t
	switch c.kind {
	case Quadratic:
		return p[1].Sub(p[0]).Mul(2 * mt).Add(p[2].Sub(p[1]).Mul(2 * t))
	case Cubic:
		return p[1].Sub(p[0]).Mul(3 * mt * mt).
			Add(p[2].Sub(p[1]).Mul(6 * mt * t)).
			Add(p[3].Sub(p[2]).Mul(3 * t * t))
	}
	return p[1].Sub(p[0])
}

// Bounds returns the tight axis aligned bounds of the curve.
func (c PathCurve) Bounds() Rect {
	sites := []Site{c.Start(), c.End()}
	for _, t := range c.extrema() {
		sites = append(sites, c.Eval(t))
	}
	return RectFromSites(sites...)
}

// extrema returns parameters in (0,1) where the curve turns in x or y.
func (c PathCurve) extrema() []float64 {
	var ts []float64
	keep := func(t float64) {
		if t > 0 && t < 1 {
			ts = append(ts, t)
		}
	}
	axes := []func(Site) float64{
		func(s Site) float64 { return s.X },
		func(s Site) float64 { return s.Y },
	}
	for _, axis := range axes {
		switch c.kind {
		case Quadratic:
			p0, p1, p2 := axis(c.pts[0]), axis(c.pts[1]), axis(c.pts[2])
			den := p0 - 2*p1 + p2
			if den != 0 {
				keep((p0 - p1) / den)
			}
		case Cubic:
			a := axis(c.pts[1]) - axis(c.pts[0])
			b := axis(c.pts[2]) - axis(c.pts[1])
			cc := axis(c.pts[3]) - axis(c.pts[2])
			for _, t := range quadraticRoots(a-2*b+cc, 2*(b-a), a) {
				keep(t)
			}
		}
	}
	return ts
}

// quadraticRoots solves a*t^2 + b*t + c = 0 for real t.
func quadraticRoots(a, b, c float64) []float64 {
	if a == 0 {
		if b == 0 {
			return nil
		}
		return []float64{-c / b}
	}
	disc := b*b - 4*a*c
	if disc < 0 {
		return nil
	}
	sq := math.Sqrt(disc)
	return []float64{(-b + sq) / (2 * a), (-b - sq) / (2 * a)}
}

// tolerance is the flattening error allowed for this curve, relative to its size.
func (c PathCurve) tolerance() float64 {
	b := RectFromSites(c.ControlPoints()...)
	return math.Max(math.Hypot(b.Width(), b.Height())*1e-4, 1e-9)
}

// Flatten approximates the curve with a polyline whose points are within
// tolerance of the curve. The first and last samples are the curve ends.
func (c PathCurve) Flatten(tolerance float64) []CurveSample {
	out := []CurveSample{{Site: c.Start(), T: 0}}
	if c.kind == Linear {
		return append(out, CurveSample{Site: c.End(), T: 1})
	}
	c.subdivide(0, 1, c.Start(), c.End(), tolerance, 0, &out)
	return out
}

// subdivide appends samples for (t0, t1], splitting in half until the chord
// is close enough to the curve.
func (c PathCurve) subdivide(t0, t1 float64, a, b Site, tol float64, depth int, out *[]CurveSample) {
	tm := (t0 + t1) / 2
	m := c.Eval(tm)
	if depth >= flattenMaxDepth || (depth >= 2 && c.flat(t0, t1, a, b, m, tol)) {
		*out = append(*out, CurveSample{Site: b, T: t1})
		return
	}
	c.subdivide(t0, tm, a, m, tol, depth+1, out)
	c.subdivide(tm, t1, m, b, tol, depth+1, out)
}

// flat checks the mid and quarter points of [t0,t1] against the chord a-b.
func (c PathCurve) flat(t0, t1 float64, a, b, m Site, tol float64) bool {
	chord := LineSegment{Start: a, End: b}
	if chord.Distance(m) > tol {
		return false
	}
	q1 := c.Eval(t0 + (t1-t0)/4)
	q3 := c.Eval(t0 + 3*(t1-t0)/4)
	return chord.Distance(q1) <= tol && chord.Distance(q3) <= tol
}

// Length of the curve, measured along its flattened form.
func (c PathCurve) Length() float64 {
	if c.kind == Linear {
		return c.Segment().Length()
	}
	pts := c.Flatten(c.tolerance())
	total := 0.0
	for i := 1; i < len(pts); i++ {
		total += pts[i-1].Site.Distance(pts[i].Site)
	}
	return total
}

// Intersections returns where c and o cross, ordered along c.
// Straight curves intersect exactly, anything else is intersected
// through its flattened form.
func (c PathCurve) Intersections(o PathCurve) []CurveIntersection {
	if c.kind == Linear && o.kind == Linear {
		s, t, u, ok := c.Segment().IntersectionParams(o.Segment())
		if !ok {
			return nil
		}
		return []CurveIntersection{{Site: s, T: t, OtherT: u}}
	}
	if !c.Bounds().Intersects(o.Bounds()) {
		return nil
	}

	tol := math.Min(c.tolerance(), o.tolerance())
	pa, pb := c.Flatten(tol), o.Flatten(tol)

	var found []CurveIntersection
	for i := 1; i < len(pa); i++ {
		sa := LineSegment{Start: pa[i-1].Site, End: pa[i].Site}
		for j := 1; j < len(pb); j++ {
			sb := LineSegment{Start: pb[j-1].Site, End: pb[j].Site}
			s, t, u, ok := sa.IntersectionParams(sb)
			if !ok {
				continue
			}
			hit := CurveIntersection{
				Site:   s,
				T:      pa[i-1].T + t*(pa[i].T-pa[i-1].T),
				OtherT: pb[j-1].T + u*(pb[j].T-pb[j-1].T),
			}
			if !containsNear(found, hit.Site, tol) {
				found = append(found, hit)
			}
		}
	}
	sort.Slice(found, func(i, j int) bool { return found[i].T < found[j].T })
	return found
}

func containsNear(in []CurveIntersection, s Site, tol float64) bool {
	for _, f := range in {
		if f.Site.Distance(s) <= tol {
			return true
		}
	}
	return false
}

// Projection returns the foot of the perpendicular from s onto the curve
// and its parameter. Where the nearest point of the curve is an end that
// is not perpendicular to s there is no projection.
func (c PathCurve) Projection(s Site) (Site, float64, bool) {
	if c.kind == Linear {
		return c.Segment().Projection(s)
	}

	best, bestD := 0, math.Inf(1)
	for i := 0; i <= projectionSamples; i++ {
		d := c.Eval(float64(i) / projectionSamples).DistanceSquared(s)
		if d < bestD {
			best, bestD = i, d
		}
	}

	lo := math.Max(0, float64(best-1)/projectionSamples)
	hi := math.Min(1, float64(best+1)/projectionSamples)
	t := c.refine(s, lo, hi)
	foot := c.Eval(t)

	if t > 1e-9 && t < 1-1e-9 {
		return foot, t, true
	}

	// at an end: only a projection if the offset is perpendicular
	off := s.point().Sub(foot.point())
	d := c.Derivative(t)
	if off.Norm() == 0 || math.Abs(d.Dot(off)) <= 1e-9*d.Norm()*off.Norm() {
		return foot, t, true
	}
	return Site{}, 0, false
}

// refine golden-section searches [lo, hi] for the parameter nearest s.
func (c PathCurve) refine(s Site, lo, hi float64) float64 {
	g := (math.Sqrt(5) - 1) / 2
	f := func(t float64) float64 { return c.Eval(t).DistanceSquared(s) }
	x1, x2 := hi-g*(hi-lo), lo+g*(hi-lo)
	f1, f2 := f(x1), f(x2)
	for i := 0; i < projectionRefineSteps; i++ {
		if f1 < f2 {
			hi, x2, f2 = x2, x1, f1
			x1 = hi - g*(hi-lo)
			f1 = f(x1)
		} else {
			lo, x1, f1 = x1, x2, f2
			x2 = lo + g*(hi-lo)
			f2 = f(x2)
		}
	}
	t := (lo + hi) / 2
	// the ends are not reachable by the search itself
	for _, end := range []float64{0, 1} {
		if f(end) < f(t) {
			t = end
		}
	}
	return t
}

// Distance from s to the curve. Falls back to the nearest end when there
// is no perpendicular projection.
func (c PathCurve) Distance(s Site) float64 {
	if foot, _, ok := c.Projection(s); ok {
		return foot.Distance(s)
	}
	return math.Min(c.Start().Distance(s), c.End().Distance(s))
}
