package geom

import (
	"math"

	"github.com/golang/geo/r2"
	"github.com/golang/geo/s1"
)

// Angle is a direction in radians, always held in (-π, π].
// The zero value points along +x.
type Angle struct {
	rad float64
}

// NewAngle normalises rad into (-π, π].
func NewAngle(rad float64) Angle {
	return Angle{rad: float64(s1.Angle(rad).Normalized())}
}

// Radian returns the normalised value.
func (a Angle) Radian() float64 {
	return a.rad
}

// Add rotates by rad (counter clockwise for positive values).
func (a Angle) Add(rad float64) Angle {
	return NewAngle(a.rad + rad)
}

// Opposite returns the angle pointing the other way.
func (a Angle) Opposite() Angle {
	return a.Add(math.Pi)
}

// Clockwise is the right angle turn clockwise of a.
func (a Angle) Clockwise() Angle {
	return a.Add(-math.Pi / 2)
}

// CounterClockwise is the right angle turn counter clockwise of a.
func (a Angle) CounterClockwise() Angle {
	return a.Add(math.Pi / 2)
}

// Unit returns the unit vector of this direction.
func (a Angle) Unit() r2.Point {
	return r2.Point{X: math.Cos(a.rad), Y: math.Sin(a.rad)}
}

// Diff returns the signed shortest rotation from a to o, in (-π, π].
func (a Angle) Diff(o Angle) float64 {
	return NewAngle(o.rad - a.rad).rad
}

// IterRangeCloser returns num angles walking the shorter arc from a to o,
// both ends included.
func (a Angle) IterRangeCloser(o Angle, num int) AngleRange {
	if num <= 1 {
		return AngleRange{start: a.rad, num: maxInt(num, 0)}
	}
	return AngleRange{start: a.rad, step: a.Diff(o) / float64(num-1), num: num}
}

// IterRangeAround returns num angles spread evenly over span, centred on a.
// A single step yields a itself.
func (a Angle) IterRangeAround(span float64, num int) AngleRange {
	if num <= 1 {
		return AngleRange{start: a.rad, num: maxInt(num, 0)}
	}
	return AngleRange{start: a.rad - span/2, step: span / float64(num-1), num: num}
}

// AngleRange is a finite sequence of evenly spaced angles.
// It carries no iteration state, so it can be walked any number of times.
type AngleRange struct {
	start float64
	step  float64
	num   int
}

// Len is the number of angles in the range.
func (r AngleRange) Len() int {
	return r.num
}

// At returns the i'th angle of the range.
func (r AngleRange) At(i int) Angle {
	return NewAngle(r.start + r.step*float64(i))
}

// Angles returns every angle in order.
func (r AngleRange) Angles() []Angle {
	out := make([]Angle, r.num)
	for i := range out {
		out[i] = r.At(i)
	}
	return out
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
