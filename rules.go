package roadgrowth

import (
	"math"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

var (
	// ErrInvalidRules is the cause of every GrowthRules validation error.
	ErrInvalidRules = errors.New("invalid growth rules")
)

type limitKind int

const (
	limitAllow limitKind = iota
	limitDeny
	limitLinear
	limitNonLinear
)

// ElevationDiffLimit decides how much a path may climb (or drop) over a
// given length. The zero value allows anything.
type ElevationDiffLimit struct {
	kind   limitKind
	factor float64
	fn     func(length float64) float64
}

// AlwaysAllow places no limit on elevation change.
func AlwaysAllow() ElevationDiffLimit {
	return ElevationDiffLimit{kind: limitAllow}
}

// AlwaysDeny refuses every path, even flat ones.
func AlwaysDeny() ElevationDiffLimit {
	return ElevationDiffLimit{kind: limitDeny}
}

// LinearLimit allows a change of k per unit of path length.
func LinearLimit(k float64) ElevationDiffLimit {
	return ElevationDiffLimit{kind: limitLinear, factor: k}
}

// NonLinearLimit allows a change of fn(length).
func NonLinearLimit(fn func(length float64) float64) ElevationDiffLimit {
	return ElevationDiffLimit{kind: limitNonLinear, fn: fn}
}

// Limit returns the largest elevation change allowed over length.
func (l ElevationDiffLimit) Limit(length float64) float64 {
	switch l.kind {
	case limitDeny:
		return math.Inf(-1)
	case limitLinear:
		return l.factor * length
	case limitNonLinear:
		return l.fn(length)
	}
	return math.Inf(1)
}

// CheckConstructable reports if a path of the given length may join
// elevations e0 and e1.
func (l ElevationDiffLimit) CheckConstructable(e0, e1, length float64) bool {
	switch l.kind {
	case limitAllow:
		return true
	case limitDeny:
		return false
	}
	return math.Abs(e1-e0) <= l.Limit(length)
}

// String implements fmt.Stringer
func (l ElevationDiffLimit) String() string {
	switch l.kind {
	case limitDeny:
		return "deny"
	case limitLinear:
		return "linear"
	case limitNonLinear:
		return "non-linear"
	}
	return "allow"
}

// MarshalYAML writes "allow", "deny" or the linear factor.
// Non linear limits hold a function and cannot be written.
func (l ElevationDiffLimit) MarshalYAML() (interface{}, error) {
	switch l.kind {
	case limitLinear:
		return l.factor, nil
	case limitNonLinear:
		return nil, errors.New("non-linear elevation limit cannot be marshalled")
	}
	return l.String(), nil
}

// UnmarshalYAML reads "allow", "deny" or a number (a linear factor).
func (l *ElevationDiffLimit) UnmarshalYAML(value *yaml.Node) error {
	var word string
	if err := value.Decode(&word); err == nil {
		switch word {
		case "allow":
			*l = AlwaysAllow()
			return nil
		case "deny":
			*l = AlwaysDeny()
			return nil
		}
	}
	var k float64
	if err := value.Decode(&k); err != nil {
		return errors.Wrapf(err, "elevation limit on line %d must be allow, deny or a number", value.Line)
	}
	*l = LinearLimit(k)
	return nil
}

// BranchRules decides how often paths split off to the sides.
type BranchRules struct {
	// chance [0,1] a new node grows a branch on each side
	Density float64 `yaml:"density"`

	// chance [0,1] a branch drops to the next stage
	StagingProbability float64 `yaml:"staging_probability"`
}

// PathDirectionRules decides how far a path may bend.
type PathDirectionRules struct {
	// total fan of angles (radians) tried around the wanted direction
	MaxRadian float64 `yaml:"max_radian"`

	// number of angles tried over MaxRadian
	ComparisonStep int `yaml:"comparison_step"`
}

// BridgeRules decides how bridges are searched for.
type BridgeRules struct {
	// longest extra span a bridge may add to a path, 0 disables bridges
	MaxBridgeLength float64 `yaml:"max_bridge_length"`

	// number of increasing bridge lengths tried up to MaxBridgeLength
	CheckStep int `yaml:"check_step"`
}

// GrowthRules hold everything needed to grow one path. Rules are supplied
// per site, direction and stage by a TransportRulesProvider.
type GrowthRules struct {
	// usual length of a new path
	PathNormalLength float64 `yaml:"path_normal_length"`

	// how close (to the search line) other nodes & paths must be to snap
	// onto them rather than building a new node
	PathExtraLengthForIntersection float64 `yaml:"path_extra_length_for_intersection"`

	// slope limit for any path built
	PathSlopeElevationDiffLimit ElevationDiffLimit `yaml:"path_slope_elevation_diff_limit"`

	// paths that cross with more than this elevation difference pass over
	// (or under) each other without a junction. +Inf disables this.
	PathGradeSeparationElevationDiffRequired float64 `yaml:"path_grade_separation_elevation_diff_required"`

	Branch    BranchRules        `yaml:"branch"`
	Direction PathDirectionRules `yaml:"direction"`
	Bridge    BridgeRules        `yaml:"bridge"`
}

// DefaultGrowthRules returns rules for a loose grid of roads with no slope
// limit, no grade separation and no bridges.
func DefaultGrowthRules() GrowthRules {
	return GrowthRules{
		PathNormalLength:                         10,
		PathExtraLengthForIntersection:           4,
		PathSlopeElevationDiffLimit:              AlwaysAllow(),
		PathGradeSeparationElevationDiffRequired: math.Inf(1),
		Branch: BranchRules{
			Density:            0.3,
			StagingProbability: 0,
		},
		Direction: PathDirectionRules{
			MaxRadian:      math.Pi / 8,
			ComparisonStep: 3,
		},
	}
}

// NewGrowthRules returns r if it is valid.
func NewGrowthRules(r GrowthRules) (GrowthRules, error) {
	return r, r.Validate()
}

// Validate returns an error (caused by ErrInvalidRules) describing the
// first problem found.
func (r GrowthRules) Validate() error {
	invalid := func(format string, args ...interface{}) error {
		return errors.Wrapf(ErrInvalidRules, format, args...)
	}
	switch {
	case !(r.PathNormalLength > 0) || math.IsInf(r.PathNormalLength, 0):
		return invalid("path normal length must be positive, got %v", r.PathNormalLength)
	case !(r.PathExtraLengthForIntersection >= 0) || math.IsInf(r.PathExtraLengthForIntersection, 0):
		return invalid("extra length for intersection must be >= 0, got %v", r.PathExtraLengthForIntersection)
	case !(r.PathGradeSeparationElevationDiffRequired >= 0):
		return invalid("grade separation elevation diff must be >= 0, got %v", r.PathGradeSeparationElevationDiffRequired)
	case r.PathSlopeElevationDiffLimit.kind == limitNonLinear && r.PathSlopeElevationDiffLimit.fn == nil:
		return invalid("non-linear slope limit has no function")
	case !inUnit(r.Branch.Density):
		return invalid("branch density must be in [0,1], got %v", r.Branch.Density)
	case !inUnit(r.Branch.StagingProbability):
		return invalid("branch staging probability must be in [0,1], got %v", r.Branch.StagingProbability)
	case !(r.Direction.MaxRadian >= 0 && r.Direction.MaxRadian <= 2*math.Pi):
		return invalid("direction max radian must be in [0,2π], got %v", r.Direction.MaxRadian)
	case r.Direction.ComparisonStep < 1:
		return invalid("direction comparison step must be >= 1, got %d", r.Direction.ComparisonStep)
	case !(r.Bridge.MaxBridgeLength >= 0) || math.IsInf(r.Bridge.MaxBridgeLength, 0):
		return invalid("max bridge length must be >= 0, got %v", r.Bridge.MaxBridgeLength)
	case r.Bridge.CheckStep < 0:
		return invalid("bridge check step must be >= 0, got %d", r.Bridge.CheckStep)
	}
	return nil
}

// bridgeLength is the extra span tried at bridge step k (0 is no bridge).
func (r GrowthRules) bridgeLength(k int) float64 {
	if k <= 0 || r.Bridge.CheckStep <= 0 {
		return 0
	}
	return r.Bridge.MaxBridgeLength * float64(k) / float64(r.Bridge.CheckStep)
}

// bridgeSteps is the number of bridge lengths to try beyond a plain path.
func (r GrowthRules) bridgeSteps() int {
	if r.Bridge.MaxBridgeLength <= 0 {
		return 0
	}
	return r.Bridge.CheckStep
}

// gradeSeparated reports if paths at the two elevations may cross without
// meeting.
func (r GrowthRules) gradeSeparated(e0, e1 float64) bool {
	return math.Abs(e1-e0) > r.PathGradeSeparationElevationDiffRequired
}

func inUnit(v float64) bool {
	return v >= 0 && v <= 1
}
