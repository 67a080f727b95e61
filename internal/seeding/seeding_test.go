package seeding

import (
	"errors"
	"testing"

	"gridca/internal/core"
	rng "gridca/pkg/core"
)

func count(a Assignment, w, h int, state uint8) int {
	n := 0
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if a(x, y) == state {
				n++
			}
		}
	}
	return n
}

func TestUniformIsOrderIndependent(t *testing.T) {
	a := Uniform(rng.NewRNG(4), 16, 16, 0.5, 1)
	forward := make([]uint8, 0, 256)
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			forward = append(forward, a(x, y))
		}
	}
	for y := 15; y >= 0; y-- {
		for x := 15; x >= 0; x-- {
			if a(x, y) != forward[y*16+x] {
				t.Fatalf("cell (%d,%d) depends on query order", x, y)
			}
		}
	}
}

func TestFractionSelectsExactCount(t *testing.T) {
	for _, frac := range []float64{0, 0.1, 0.25, 1, 2} {
		a := Fraction(rng.NewRNG(9), 10, 10, frac, 1)
		want := int(min(frac, 1) * 100)
		if got := count(a, 10, 10, 1); got != want {
			t.Fatalf("fraction %.2f selected %d cells, want %d", frac, got, want)
		}
	}
}

func TestCenteredClusterStaysCentered(t *testing.T) {
	full := func(int, int) uint8 { return 1 }
	a := CenteredCluster(11, 9, 2, full)
	for y := 0; y < 9; y++ {
		for x := 0; x < 11; x++ {
			inside := x >= 3 && x <= 7 && y >= 2 && y <= 6
			if (a(x, y) == 1) != inside {
				t.Fatalf("cell (%d,%d) = %d, inside=%v", x, y, a(x, y), inside)
			}
		}
	}
}

func TestNoiseDeterministicAndBounded(t *testing.T) {
	a := Noise(7, 6, 0.5, 2)
	b := Noise(7, 6, 0.5, 2)
	for y := 0; y < 20; y++ {
		for x := 0; x < 20; x++ {
			if a(x, y) != b(x, y) {
				t.Fatalf("noise differs at (%d,%d)", x, y)
			}
			if v := a(x, y); v != 0 && v != 2 {
				t.Fatalf("noise produced state %d", v)
			}
		}
	}
	if got := count(Noise(7, 6, 0, 1), 20, 20, 1); got != 0 {
		t.Fatalf("zero density selected %d cells", got)
	}
}

func TestUniformLevelsOnlyOnSelectedState(t *testing.T) {
	states := Fraction(rng.NewRNG(2), 8, 8, 0.5, 1)
	levels := UniformLevels(rng.NewRNG(3), 8, 8, 50, states, 1)
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			v := levels(x, y)
			if states(x, y) != 1 && v != 0 {
				t.Fatalf("unselected (%d,%d) got level %g", x, y, v)
			}
			if v < 0 || v >= 50 {
				t.Fatalf("level %g outside [0,50)", v)
			}
		}
	}
}

func TestNewAndParsePolicy(t *testing.T) {
	for _, p := range Policies {
		got, err := ParsePolicy(string(p))
		if err != nil || got != p {
			t.Fatalf("ParsePolicy(%q) = %q, %v", p, got, err)
		}
		if _, err := New(p, Options{Width: 4, Height: 4, Density: 0.5, State: 1, Radius: 1}); err != nil {
			t.Fatalf("New(%q): %v", p, err)
		}
	}
	if _, err := ParsePolicy("glider-gun"); !errors.Is(err, core.ErrUnknownSeeding) {
		t.Fatalf("ParsePolicy err=%v", err)
	}
	if _, err := New(PolicyUniform, Options{Width: 0, Height: 4}); !errors.Is(err, core.ErrInvalidDimension) {
		t.Fatalf("New with zero width err=%v", err)
	}
}
