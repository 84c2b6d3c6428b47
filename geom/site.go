// Package geom holds the 2D geometry used to grow path networks: sites,
// normalised angles, line segments, bezier path curves and rectangles.
package geom

import (
	"fmt"
	"math"

	"github.com/golang/geo/r2"
)

// Site is a point on the plane.
// Sites compare exactly; two sites are the same site only if both
// coordinates are bit-for-bit equal.
type Site struct {
	X float64
	Y float64
}

// NewSite returns a site at x,y
func NewSite(x, y float64) Site {
	return Site{X: x, Y: y}
}

func siteFromPoint(p r2.Point) Site {
	return Site{X: p.X, Y: p.Y}
}

func (s Site) point() r2.Point {
	return r2.Point{X: s.X, Y: s.Y}
}

// Less orders sites lexicographically, x first then y.
func (s Site) Less(o Site) bool {
	if s.X != o.X {
		return s.X < o.X
	}
	return s.Y < o.Y
}

// Cmp returns -1, 0 or 1 following the lexicographic order of Less.
func (s Site) Cmp(o Site) int {
	switch {
	case s.Less(o):
		return -1
	case o.Less(s):
		return 1
	}
	return 0
}

// Distance between two sites.
func (s Site) Distance(o Site) float64 {
	return math.Hypot(o.X-s.X, o.Y-s.Y)
}

// DistanceSquared between two sites.
func (s Site) DistanceSquared(o Site) float64 {
	dx, dy := o.X-s.X, o.Y-s.Y
	return dx*dx + dy*dy
}

// Midpoint between two sites.
func (s Site) Midpoint(o Site) Site {
	return Site{X: (s.X + o.X) / 2, Y: (s.Y + o.Y) / 2}
}

// Lerp returns the site a fraction t of the way from s to o.
func (s Site) Lerp(o Site, t float64) Site {
	return Site{X: s.X + (o.X-s.X)*t, Y: s.Y + (o.Y-s.Y)*t}
}

// Extend returns the site reached by walking length from s in direction a.
func (s Site) Extend(a Angle, length float64) Site {
	return siteFromPoint(s.point().Add(a.Unit().Mul(length)))
}

// AngleTo returns the direction from s to o.
// The direction to the same site is zero.
func (s Site) AngleTo(o Site) Angle {
	return NewAngle(math.Atan2(o.Y-s.Y, o.X-s.X))
}

// String implements fmt.Stringer
func (s Site) String() string {
	return fmt.Sprintf("(%g, %g)", s.X, s.Y)
}
