package roadgrowth

import (
	"os"

	"github.com/pkg/errors"
	"github.com/voidshard/roadgrowth/geom"
	"gopkg.in/yaml.v3"
)

// RulesConfig is the on disk form of a StageRules, eg.
//
//	defaults:
//	  path_normal_length: 12
//	  path_slope_elevation_diff_limit: 0.2   # or allow / deny
//	  direction: {max_radian: 0.4, comparison_step: 5}
//	stages:
//	  - branch: {density: 0.4, staging_probability: 0.2}  # main
//	  - path_normal_length: 6                              # street
//
// Every stage starts from DefaultGrowthRules with the defaults applied and
// then its own settings on top.
type RulesConfig struct {
	Defaults yaml.Node   `yaml:"defaults"`
	Stages   []yaml.Node `yaml:"stages"`
}

// StageRules is a TransportRulesProvider with one set of rules per stage.
// Paths at stages past the last configured one are never grown.
type StageRules struct {
	stages []GrowthRules
}

// NewStageRules returns a StageRules where stages[i] applies to Stage(i).
func NewStageRules(stages ...GrowthRules) (*StageRules, error) {
	if len(stages) == 0 {
		return nil, errors.Wrap(ErrInvalidRules, "at least one stage is required")
	}
	for i, r := range stages {
		if err := r.Validate(); err != nil {
			return nil, errors.Wrapf(err, "stage %d", i)
		}
	}
	return &StageRules{stages: stages}, nil
}

// LoadRules reads a RulesConfig YAML file.
func LoadRules(fpath string) (*StageRules, error) {
	data, err := os.ReadFile(fpath)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read rules %s", fpath)
	}
	rules, err := ParseRules(data)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load rules %s", fpath)
	}
	return rules, nil
}

// ParseRules decodes a RulesConfig YAML document.
func ParseRules(data []byte) (*StageRules, error) {
	var cfg RulesConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrap(err, "failed to parse rules")
	}

	base := DefaultGrowthRules()
	if !cfg.Defaults.IsZero() {
		if err := cfg.Defaults.Decode(&base); err != nil {
			return nil, errors.Wrap(err, "failed to decode defaults")
		}
	}

	stages := make([]GrowthRules, len(cfg.Stages))
	for i := range cfg.Stages {
		stages[i] = base
		if err := cfg.Stages[i].Decode(&stages[i]); err != nil {
			return nil, errors.Wrapf(err, "failed to decode stage %d", i)
		}
	}
	return NewStageRules(stages...)
}

// Marshal writes the rules back out as YAML, every stage in full.
func (s *StageRules) Marshal() ([]byte, error) {
	out := struct {
		Stages []GrowthRules `yaml:"stages"`
	}{Stages: s.stages}
	return yaml.Marshal(out)
}

// Len is the number of configured stages.
func (s *StageRules) Len() int {
	return len(s.stages)
}

// Stage returns the rules for a stage.
func (s *StageRules) Stage(stage Stage) (GrowthRules, bool) {
	if int(stage) >= len(s.stages) {
		return GrowthRules{}, false
	}
	return s.stages[stage], true
}

// Rules implements TransportRulesProvider
func (s *StageRules) Rules(site geom.Site, angle geom.Angle, stage Stage) (GrowthRules, bool) {
	return s.Stage(stage)
}
