package core

import (
	"errors"
	"testing"
)

func TestNewByteGridRejectsNonPositiveDimensions(t *testing.T) {
	cases := []struct{ w, h int }{{0, 1}, {1, 0}, {-3, 4}, {4, -1}}
	for _, tc := range cases {
		if _, err := NewByteGrid(tc.w, tc.h); !errors.Is(err, ErrInvalidDimension) {
			t.Fatalf("NewByteGrid(%d,%d) err=%v, want ErrInvalidDimension", tc.w, tc.h, err)
		}
	}
}

func TestByteGridIndexRoundTrip(t *testing.T) {
	g, err := NewByteGrid(7, 3)
	if err != nil {
		t.Fatal(err)
	}
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			cx, cy := g.Coord(g.Index(x, y))
			if cx != x || cy != y {
				t.Fatalf("Coord(Index(%d,%d)) = (%d,%d)", x, y, cx, cy)
			}
		}
	}
}

func TestByteGridAtDoesNotWrap(t *testing.T) {
	g, err := NewByteGrid(4, 4)
	if err != nil {
		t.Fatal(err)
	}
	g.Cells()[g.Index(3, 0)] = 1
	if _, err := g.At(-1, 0); !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("At(-1,0) err=%v, want ErrOutOfRange", err)
	}
	if _, err := g.At(4, 0); !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("At(4,0) err=%v, want ErrOutOfRange", err)
	}
	v, err := g.At(3, 0)
	if err != nil || v != 1 {
		t.Fatalf("At(3,0) = %d, %v", v, err)
	}
	g.Clear()
	if v, _ := g.At(3, 0); v != 0 {
		t.Fatalf("Clear left %d", v)
	}
}
