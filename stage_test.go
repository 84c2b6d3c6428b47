package roadgrowth

import (
	"testing"
)

func TestStage(t *testing.T) {
	if StageMain.Next() != StageStreet || StageLane.Next() != StageTrack {
		t.Error("unexpected stage order")
	}
	if StageStreet.Max(StageMain) != StageStreet || StageMain.Max(StageLane) != StageLane {
		t.Error("max should be the more minor stage")
	}
	for s, name := range map[Stage]string{StageMain: "main", StageTrack: "track", Stage(7): "stage-7"} {
		if s.String() != name {
			t.Errorf("expected %s got %s", name, s.String())
		}
	}
}
