package roadgrowth

import (
	"math"
	"testing"

	"github.com/voidshard/roadgrowth/geom"
)

// 3x3 samples 10 apart, a single peak at sample (1,0) & a void corner
func testHeightmap() *Heightmap {
	h := NewHeightmap(3, 3, 10)
	h.Set(1, 0, 10)
	h.SetVoid(2, 2)
	return h
}

func TestHeightmapElevation(t *testing.T) {
	h := testHeightmap()

	cases := []struct {
		Name   string
		Site   geom.Site
		Expect float64
		Ok     bool
	}{
		{"on sample", geom.NewSite(10, 0), 10, true},
		{"between samples", geom.NewSite(5, 0), 5, true},
		{"cell centre", geom.NewSite(15, 5), 2.5, true},
		{"far edge", geom.NewSite(20, 0), 0, true},
		{"touches void", geom.NewSite(15, 15), 0, false},
		{"corner void", geom.NewSite(20, 20), 0, false},
		{"off grid", geom.NewSite(-1, 0), 0, false},
		{"past grid", geom.NewSite(0, 21), 0, false},
	}

	for _, tt := range cases {
		t.Run(tt.Name, func(t *testing.T) {
			e, ok := h.Elevation(tt.Site)
			if ok != tt.Ok {
				t.Fatalf("expected ok %v got %v", tt.Ok, ok)
			}
			if ok && math.Abs(e-tt.Expect) > 1e-9 {
				t.Errorf("expected %v got %v", tt.Expect, e)
			}
		})
	}
}

func TestHeightmapCrossesVoid(t *testing.T) {
	h := testHeightmap()

	if h.CrossesVoid(geom.NewSite(0, 0), geom.NewSite(20, 0)) {
		t.Error("top row has no void")
	}
	if !h.CrossesVoid(geom.NewSite(0, 20), geom.NewSite(20, 20)) {
		t.Error("bottom row ends in void")
	}
	if !h.CrossesVoid(geom.NewSite(0, 0), geom.NewSite(30, 0)) {
		t.Error("leaving the grid should count as void")
	}
}

func TestHeightmapBounds(t *testing.T) {
	h := NewHeightmap(4, 2, 5)
	b := h.Bounds()
	if b.Min != geom.NewSite(0, 0) || b.Max != geom.NewSite(15, 5) {
		t.Errorf("unexpected bounds %v", b)
	}

	// too small grids are grown
	if b := NewHeightmap(1, 0, 1).Bounds(); b.Width() != 1 || b.Height() != 1 {
		t.Errorf("expected 2x2 samples, got %v", b)
	}
}

func TestHeightmapImage(t *testing.T) {
	h := NewHeightmapFunc(4, 4, 2, func(s geom.Site) (float64, bool) {
		if s.X > 5 {
			return 0, false
		}
		return s.X*1.5 + s.Y + 100.25, true
	})

	in := HeightmapFromImage(h.Image(100, 0.01), 2, 100, 0.01)

	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			want, wok := h.At(x, y)
			got, gok := in.At(x, y)
			if wok != gok {
				t.Fatalf("sample %d,%d void mismatch", x, y)
			}
			if math.Abs(want-got) > 1e-6 {
				t.Errorf("sample %d,%d expected %v got %v", x, y, want, got)
			}
		}
	}
}
