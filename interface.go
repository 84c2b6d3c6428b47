package roadgrowth

import (
	"github.com/voidshard/roadgrowth/geom"
)

// TerrainProvider tells the builder what the ground looks like.
type TerrainProvider interface {
	// Elevation at the given site, or false if nothing can be built
	// there (water, off the map etc).
	Elevation(site geom.Site) (float64, bool)
}

// TransportRulesProvider hands out the rules for growing a path from
// a site, heading in a direction, at a given stage.
type TransportRulesProvider interface {
	// Rules returns false if no path should grow here at all.
	Rules(site geom.Site, angle geom.Angle, stage Stage) (GrowthRules, bool)
}

// PathPrioritizator scores candidate paths. Higher scores are built first.
type PathPrioritizator interface {
	// Prioritize returns false if the path should not be considered.
	// NaN is not a valid priority.
	Prioritize(start TransportNode, path geom.PathCurve) (float64, bool)
}

// RandomF64Provider supplies uniform random numbers in [0,1).
type RandomF64Provider interface {
	Float64() float64
}

// VoidCrosser is optionally implemented by a TerrainProvider that can tell
// if a straight line passes over unbuildable ground. If it can, paths that
// are not bridges must stay on land along their whole length.
type VoidCrosser interface {
	CrossesVoid(a, b geom.Site) bool
}

// TerrainFunc adapts a function to a TerrainProvider.
type TerrainFunc func(site geom.Site) (float64, bool)

// Elevation calls f(site)
func (f TerrainFunc) Elevation(site geom.Site) (float64, bool) {
	return f(site)
}

// RulesFunc adapts a function to a TransportRulesProvider.
type RulesFunc func(site geom.Site, angle geom.Angle, stage Stage) (GrowthRules, bool)

// Rules calls f(site, angle, stage)
func (f RulesFunc) Rules(site geom.Site, angle geom.Angle, stage Stage) (GrowthRules, bool) {
	return f(site, angle, stage)
}

// PrioritizatorFunc adapts a function to a PathPrioritizator.
type PrioritizatorFunc func(start TransportNode, path geom.PathCurve) (float64, bool)

// Prioritize calls f(start, path)
func (f PrioritizatorFunc) Prioritize(start TransportNode, path geom.PathCurve) (float64, bool) {
	return f(start, path)
}

// RandomFunc adapts a function to a RandomF64Provider.
type RandomFunc func() float64

// Float64 calls f()
func (f RandomFunc) Float64() float64 {
	return f()
}
