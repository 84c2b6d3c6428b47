package roadgrowth

import (
	"fmt"
)

// Stage is the class of a path, 0 being the most important (motorways, main
// roads) and each following stage a step down (streets, lanes, tracks ..).
// Branches may be promoted to the next stage as they grow.
type Stage uint

const (
	// well known stages, any value past StageTrack is still valid
	StageMain Stage = iota
	StageStreet
	StageLane
	StageTrack
)

var stageNames = map[Stage]string{
	StageMain:   "main",
	StageStreet: "street",
	StageLane:   "lane",
	StageTrack:  "track",
}

// Max returns the later (less important) of two stages.
func (s Stage) Max(o Stage) Stage {
	if o > s {
		return o
	}
	return s
}

// Next is the stage after s.
func (s Stage) Next() Stage {
	return s + 1
}

// String implements fmt.Stringer
func (s Stage) String() string {
	name, ok := stageNames[s]
	if ok {
		return name
	}
	return fmt.Sprintf("stage-%d", uint(s))
}
