package spatial

import (
	"testing"

	"github.com/voidshard/roadgrowth/geom"
)

func square(x, y, size float64) geom.Rect {
	return geom.RectFromSites(geom.NewSite(x, y), geom.NewSite(x+size, y+size))
}

func TestIndexSearch(t *testing.T) {
	idx := New()
	idx.Insert(1, square(0, 0, 1))
	idx.Insert(2, square(5, 5, 1))
	idx.Insert(3, square(0.5, 0.5, 1))

	got := idx.Search(square(0, 0, 0.75))
	if len(got) != 2 || got[0] != 1 || got[1] != 3 {
		t.Fatalf("expected [1 3], got %v", got)
	}

	if !idx.Delete(3) {
		t.Fatalf("expected delete of a live id to succeed")
	}
	if idx.Delete(3) {
		t.Fatalf("expected second delete to fail")
	}
	got = idx.Search(square(0, 0, 0.75))
	if len(got) != 1 || got[0] != 1 {
		t.Fatalf("expected [1], got %v", got)
	}
}

func TestIndexSurvivesReloads(t *testing.T) {
	idx := New()
	for i := 0; i < 500; i++ {
		idx.Insert(i, square(float64(i), 0, 0.5))
	}
	for i := 0; i < 500; i += 2 {
		idx.Delete(i)
	}
	// move one id far away
	idx.Insert(1, square(1000, 1000, 1))

	if idx.Len() != 250 {
		t.Fatalf("expected 250 live ids, got %d", idx.Len())
	}
	got := idx.Search(square(0, 0, 10))
	want := []int{3, 5, 7, 9}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
	if got := idx.Search(square(999, 999, 3)); len(got) != 1 || got[0] != 1 {
		t.Fatalf("expected moved id 1, got %v", got)
	}
}
