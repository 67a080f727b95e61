package topology

import (
	"errors"
	"slices"
	"testing"

	"gridca/internal/core"
)

func mustBuild(t *testing.T, w, h int, mode Mode) *Topology {
	t.Helper()
	topo, err := Build(w, h, mode)
	if err != nil {
		t.Fatalf("Build(%d,%d,%s): %v", w, h, mode, err)
	}
	return topo
}

func TestBuildRejectsInvalidInput(t *testing.T) {
	for _, dims := range [][2]int{{0, 5}, {5, 0}, {-1, -1}} {
		if _, err := Build(dims[0], dims[1], Moore); !errors.Is(err, core.ErrInvalidDimension) {
			t.Fatalf("Build(%v) err=%v, want ErrInvalidDimension", dims, err)
		}
	}
	if _, err := Build(3, 3, Mode(42)); !errors.Is(err, core.ErrUnknownNeighborhood) {
		t.Fatalf("unknown mode err=%v", err)
	}
	if _, err := Build(3, 2, Linear); !errors.Is(err, core.ErrInvalidDimension) {
		t.Fatalf("linear with height 2 err=%v", err)
	}
}

func TestMooreCornerEdgeInteriorCounts(t *testing.T) {
	for _, n := range []int{3, 4, 7} {
		topo := mustBuild(t, n, n, Moore)
		for y := 0; y < n; y++ {
			for x := 0; x < n; x++ {
				onX := x == 0 || x == n-1
				onY := y == 0 || y == n-1
				want := 8
				switch {
				case onX && onY:
					want = 3
				case onX || onY:
					want = 5
				}
				if got := topo.Populated(topo.Index(x, y)); got != want {
					t.Fatalf("%dx%d cell (%d,%d) has %d neighbors, want %d", n, n, x, y, got, want)
				}
			}
		}
	}
}

func TestVonNeumannCornerEdgeInteriorCounts(t *testing.T) {
	topo := mustBuild(t, 5, 5, VonNeumann)
	cases := []struct {
		x, y, want int
	}{
		{0, 0, 2}, {4, 4, 2}, {0, 4, 2}, {4, 0, 2},
		{2, 0, 3}, {0, 2, 3}, {4, 2, 3}, {2, 4, 3},
		{2, 2, 4}, {1, 3, 4},
	}
	for _, tc := range cases {
		if got := topo.Populated(topo.Index(tc.x, tc.y)); got != tc.want {
			t.Fatalf("cell (%d,%d) has %d neighbors, want %d", tc.x, tc.y, got, tc.want)
		}
	}
}

func TestSlotConventionTopIsYPlusOne(t *testing.T) {
	topo := mustBuild(t, 3, 3, Moore)
	center := topo.Index(1, 1)
	want := map[int][2]int{
		Top:         {1, 2},
		Bottom:      {1, 0},
		Left:        {0, 1},
		Right:       {2, 1},
		TopLeft:     {0, 2},
		TopRight:    {2, 2},
		BottomLeft:  {0, 0},
		BottomRight: {2, 0},
	}
	for slot, xy := range want {
		got, ok := topo.Neighbor(center, slot)
		if !ok || got != topo.Index(xy[0], xy[1]) {
			t.Fatalf("slot %d = %d (ok=%v), want (%d,%d)", slot, got, ok, xy[0], xy[1])
		}
	}

	corner := topo.Index(0, 0)
	for _, slot := range []int{Bottom, Left, TopLeft, BottomLeft, BottomRight} {
		if _, ok := topo.Neighbor(corner, slot); ok {
			t.Fatalf("corner slot %d should be absent", slot)
		}
	}
}

func TestAdjacencyIsSymmetric(t *testing.T) {
	shapes := []struct {
		w, h int
		mode Mode
	}{
		{1, 1, Moore}, {1, 6, Moore}, {6, 1, VonNeumann}, {5, 4, Moore}, {4, 5, VonNeumann}, {9, 1, Linear},
	}
	for _, s := range shapes {
		topo := mustBuild(t, s.w, s.h, s.mode)
		for a := 0; a < topo.Len(); a++ {
			for _, b := range topo.Neighbors(a) {
				if b == None {
					continue
				}
				if !slices.Contains(topo.Neighbors(int(b)), int32(a)) {
					t.Fatalf("%dx%d %s: %d lists %d but not vice versa", s.w, s.h, s.mode, a, b)
				}
			}
		}
	}
}

func TestBuildIsDeterministic(t *testing.T) {
	a := mustBuild(t, 11, 7, Moore)
	b := mustBuild(t, 11, 7, Moore)
	if !slices.Equal(a.slots, b.slots) {
		t.Fatal("two builds of the same shape differ")
	}
}

func TestLinearEdges(t *testing.T) {
	topo := mustBuild(t, 4, 1, Linear)
	if _, ok := topo.Neighbor(0, LinearLeft); ok {
		t.Fatal("leftmost cell must not have a left neighbor")
	}
	if _, ok := topo.Neighbor(3, LinearRight); ok {
		t.Fatal("rightmost cell must not have a right neighbor")
	}
	if got, _ := topo.Neighbor(1, LinearRight); got != 2 {
		t.Fatalf("right of 1 = %d", got)
	}
}

func TestParseMode(t *testing.T) {
	for in, want := range map[string]Mode{"moore": Moore, "8": Moore, "VonNeumann": VonNeumann, "4": VonNeumann, "linear": Linear} {
		got, err := ParseMode(in)
		if err != nil || got != want {
			t.Fatalf("ParseMode(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseMode("hex"); !errors.Is(err, core.ErrUnknownNeighborhood) {
		t.Fatalf("ParseMode(hex) err=%v", err)
	}
}
