package geom

import (
	"github.com/golang/geo/r2"
)

// Rect is an axis aligned rectangle. Min holds the smallest x and y.
type Rect struct {
	Min Site
	Max Site
}

// RectFromSites returns the smallest Rect holding all the given sites.
func RectFromSites(sites ...Site) Rect {
	pts := make([]r2.Point, len(sites))
	for i, s := range sites {
		pts[i] = s.point()
	}
	return rectFromR2(r2.RectFromPoints(pts...))
}

func rectFromR2(r r2.Rect) Rect {
	return Rect{
		Min: Site{X: r.X.Lo, Y: r.Y.Lo},
		Max: Site{X: r.X.Hi, Y: r.Y.Hi},
	}
}

func (r Rect) r2() r2.Rect {
	return r2.RectFromPoints(r.Min.point(), r.Max.point())
}

// Intersects reports if the rectangles share any point, edges included.
func (r Rect) Intersects(o Rect) bool {
	return r.r2().Intersects(o.r2())
}

// ContainsSite reports if s is inside or on the edge of r.
func (r Rect) ContainsSite(s Site) bool {
	return r.r2().ContainsPoint(s.point())
}

// Expanded grows the rectangle by margin on every side.
func (r Rect) Expanded(margin float64) Rect {
	return rectFromR2(r.r2().ExpandedByMargin(margin))
}

// Union returns the smallest rectangle holding both r and o.
func (r Rect) Union(o Rect) Rect {
	return rectFromR2(r.r2().Union(o.r2()))
}

// Width of the rectangle.
func (r Rect) Width() float64 {
	return r.Max.X - r.Min.X
}

// Height of the rectangle.
func (r Rect) Height() float64 {
	return r.Max.Y - r.Min.Y
}
