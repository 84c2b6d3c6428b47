package geom

import (
	"math"
)

// parallelEpsilon is the relative size below which the cross product of two
// segment directions counts as zero.
const parallelEpsilon = 1e-12

// LineSegment is the straight line between two sites.
type LineSegment struct {
	Start Site
	End   Site
}

// NewLineSegment returns the segment a -> b
func NewLineSegment(a, b Site) LineSegment {
	return LineSegment{Start: a, End: b}
}

// Length of the segment.
func (l LineSegment) Length() float64 {
	return l.Start.Distance(l.End)
}

// Midpoint of the segment.
func (l LineSegment) Midpoint() Site {
	return l.Start.Midpoint(l.End)
}

// Angle is the direction from Start to End.
func (l LineSegment) Angle() Angle {
	return l.Start.AngleTo(l.End)
}

// Bounds returns the rectangle spanned by the two ends.
func (l LineSegment) Bounds() Rect {
	return RectFromSites(l.Start, l.End)
}

// Intersection returns the site where the two segments cross.
// Parallel and collinear segments never intersect. Segments that only
// touch at a shared end return that end exactly.
func (l LineSegment) Intersection(o LineSegment) (Site, bool) {
	s, _, _, ok := l.IntersectionParams(o)
	return s, ok
}

// IntersectionParams is Intersection that also returns where the crossing
// sits along each segment, as t on l and u on o (both in [0,1]).
func (l LineSegment) IntersectionParams(o LineSegment) (Site, float64, float64, bool) {
	switch {
	case l.Start == o.Start:
		return l.Start, 0, 0, !l.parallel(o)
	case l.Start == o.End:
		return l.Start, 0, 1, !l.parallel(o)
	case l.End == o.Start:
		return l.End, 1, 0, !l.parallel(o)
	case l.End == o.End:
		return l.End, 1, 1, !l.parallel(o)
	}

	p, q := l.Start.point(), o.Start.point()
	r, s := l.End.point().Sub(p), o.End.point().Sub(q)

	// each segment must straddle the line through the other
	if sameSide(r.Cross(q.Sub(p)), r.Cross(o.End.point().Sub(p))) {
		return Site{}, 0, 0, false
	}
	if sameSide(s.Cross(p.Sub(q)), s.Cross(l.End.point().Sub(q))) {
		return Site{}, 0, 0, false
	}

	d := r.Cross(s)
	if math.Abs(d) <= parallelEpsilon*r.Norm()*s.Norm() {
		return Site{}, 0, 0, false
	}

	qp := q.Sub(p)
	t := qp.Cross(s) / d
	u := qp.Cross(r) / d
	return siteFromPoint(p.Add(r.Mul(t))), clamp01(t), clamp01(u), true
}

// parallel reports if the directions of l and o are (numerically) parallel.
func (l LineSegment) parallel(o LineSegment) bool {
	r := l.End.point().Sub(l.Start.point())
	s := o.End.point().Sub(o.Start.point())
	return math.Abs(r.Cross(s)) <= parallelEpsilon*r.Norm()*s.Norm()
}

// Projection returns the foot of the perpendicular from s onto the segment,
// and its position t along the segment. There is no projection if the foot
// falls outside the segment.
func (l LineSegment) Projection(s Site) (Site, float64, bool) {
	p := l.Start.point()
	r := l.End.point().Sub(p)
	n := r.Dot(r)
	if n == 0 {
		return Site{}, 0, false
	}
	t := s.point().Sub(p).Dot(r) / n
	if t < 0 || t > 1 {
		return Site{}, 0, false
	}
	return siteFromPoint(p.Add(r.Mul(t))), t, true
}

// Distance from s to the nearest point of the segment.
func (l LineSegment) Distance(s Site) float64 {
	if foot, _, ok := l.Projection(s); ok {
		return foot.Distance(s)
	}
	return math.Min(l.Start.Distance(s), l.End.Distance(s))
}

// sameSide is true if both values are strictly on the same side of zero.
func sameSide(a, b float64) bool {
	return (a > 0 && b > 0) || (a < 0 && b < 0)
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
