// Package line walks the integer grid cells along a straight line.
package line

import (
	"image"
)

// Walk calls fn with every grid point on the line from a to b, both ends
// included, starting at a. Walking stops early if fn returns false, in
// which case Walk returns false.
func Walk(a, b image.Point, fn func(p image.Point) bool) bool {
	dx, dy := abs(b.X-a.X), -abs(b.Y-a.Y)
	sx, sy := sign(b.X-a.X), sign(b.Y-a.Y)
	e := dx + dy

	p := a
	for {
		if !fn(p) {
			return false
		}
		if p == b {
			return true
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			p.X += sx
		}
		if e2 <= dx {
			e += dx
			p.Y += sy
		}
	}
}

// PointsBetween returns all points on a line between a,b
func PointsBetween(a, b image.Point) []image.Point {
	pts := []image.Point{}
	Walk(a, b, func(p image.Point) bool {
		pts = append(pts, p)
		return true
	})
	return pts
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	}
	return 0
}
