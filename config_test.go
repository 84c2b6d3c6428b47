package roadgrowth

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/voidshard/roadgrowth/geom"
)

const testRulesYAML = `
defaults:
  path_normal_length: 12
  path_slope_elevation_diff_limit: 0.2
  path_grade_separation_elevation_diff_required: .inf
  direction:
    max_radian: 0.5
    comparison_step: 5
stages:
  - branch:
      density: 0.4
      staging_probability: 0.2
    bridge:
      max_bridge_length: 30
      check_step: 3
  - path_normal_length: 6
    path_slope_elevation_diff_limit: deny
`

func TestParseRules(t *testing.T) {
	rules, err := ParseRules([]byte(testRulesYAML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rules.Len() != 2 {
		t.Fatalf("expected 2 stages, got %d", rules.Len())
	}

	main, ok := rules.Rules(geom.NewSite(0, 0), geom.NewAngle(0), StageMain)
	if !ok {
		t.Fatalf("expected rules for the main stage")
	}
	if main.PathNormalLength != 12 {
		t.Fatalf("expected defaults to apply, got length %v", main.PathNormalLength)
	}
	if main.Branch.Density != 0.4 || main.Bridge.MaxBridgeLength != 30 || main.Bridge.CheckStep != 3 {
		t.Fatalf("stage settings not applied: %+v", main)
	}
	if main.Direction.ComparisonStep != 5 {
		t.Fatalf("expected default direction, got %+v", main.Direction)
	}
	if !main.PathSlopeElevationDiffLimit.CheckConstructable(0, 2, 10) || main.PathSlopeElevationDiffLimit.CheckConstructable(0, 3, 10) {
		t.Fatalf("expected a linear slope limit of 0.2")
	}
	if !math.IsInf(main.PathGradeSeparationElevationDiffRequired, 1) {
		t.Fatalf("expected no grade separation, got %v", main.PathGradeSeparationElevationDiffRequired)
	}

	street, ok := rules.Stage(StageStreet)
	if !ok || street.PathNormalLength != 6 {
		t.Fatalf("expected street length 6, got %v", street.PathNormalLength)
	}
	if street.PathSlopeElevationDiffLimit.CheckConstructable(0, 0, 1) {
		t.Fatalf("expected street slope limit to deny")
	}

	if _, ok := rules.Rules(geom.NewSite(0, 0), geom.NewAngle(0), StageLane); ok {
		t.Fatalf("expected no rules past the last stage")
	}
}

func TestParseRulesRejectsBadInput(t *testing.T) {
	t.Run("invalid rules", func(t *testing.T) {
		_, err := ParseRules([]byte("stages:\n  - branch: {density: 2}\n"))
		if !errors.Is(err, ErrInvalidRules) {
			t.Fatalf("expected ErrInvalidRules, got %v", err)
		}
	})

	t.Run("no stages", func(t *testing.T) {
		_, err := ParseRules([]byte("defaults:\n  path_normal_length: 3\n"))
		if !errors.Is(err, ErrInvalidRules) {
			t.Fatalf("expected ErrInvalidRules, got %v", err)
		}
	})

	t.Run("bad slope limit", func(t *testing.T) {
		_, err := ParseRules([]byte("stages:\n  - path_slope_elevation_diff_limit: steep\n"))
		if err == nil {
			t.Fatalf("expected an error")
		}
	})
}

func TestLoadRules(t *testing.T) {
	fpath := filepath.Join(t.TempDir(), "rules.yaml")
	if err := os.WriteFile(fpath, []byte(testRulesYAML), 0644); err != nil {
		t.Fatalf("failed to write rules: %v", err)
	}
	rules, err := LoadRules(fpath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rules.Len() != 2 {
		t.Fatalf("expected 2 stages, got %d", rules.Len())
	}

	if _, err := LoadRules(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected an error for a missing file")
	}
}

func TestStageRulesMarshal(t *testing.T) {
	rules, err := ParseRules([]byte(testRulesYAML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	data, err := rules.Marshal()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	again, err := ParseRules(data)
	if err != nil {
		t.Fatalf("marshalled rules failed to parse: %v\n%s", err, data)
	}
	street, _ := again.Stage(StageStreet)
	if street.PathNormalLength != 6 || street.PathSlopeElevationDiffLimit.String() != "deny" {
		t.Fatalf("street rules changed on the way through: %+v", street)
	}
}
