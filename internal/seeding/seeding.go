// Package seeding provides initial-condition policies. Each policy is a pure
// function of the coordinate once constructed, so the engine can apply it in
// any order.
package seeding

import (
	"fmt"
	"math"
	"strings"

	"github.com/aquilax/go-perlin"

	"gridca/internal/core"
	rng "gridca/pkg/core"
)

// Assignment maps a coordinate to its initial state.
type Assignment func(x, y int) uint8

// Levels maps a coordinate to its initial infection level.
type Levels func(x, y int) float64

// Policy names an initial-condition strategy.
type Policy string

const (
	// PolicyUniform sets each cell independently with probability Density.
	PolicyUniform Policy = "uniform"
	// PolicyCluster applies uniform fill inside a centered square only.
	PolicyCluster Policy = "cluster"
	// PolicyFraction sets exactly round(Density*W*H) cells.
	PolicyFraction Policy = "fraction"
	// PolicyNoise thresholds 2D perlin noise.
	PolicyNoise Policy = "noise"
)

// Policies lists the known policies.
var Policies = []Policy{PolicyUniform, PolicyCluster, PolicyFraction, PolicyNoise}

// ParsePolicy maps a name onto a Policy.
func ParsePolicy(s string) (Policy, error) {
	p := Policy(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Policies {
		if p == known {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w %q", core.ErrUnknownSeeding, s)
}

// Options parameterize a policy.
type Options struct {
	Width, Height int
	Seed          int64
	// Density is the fill probability (uniform, cluster), the exact fraction
	// (fraction) or the share of the noise range above the cut (noise).
	Density float64
	// Radius is the half-width of the cluster square.
	Radius int
	// State is written to selected cells; all others get zero.
	State uint8
	// NoiseScale is the feature size of the noise field in cells.
	NoiseScale float64
}

// New builds the assignment for policy.
func New(policy Policy, opt Options) (Assignment, error) {
	if opt.Width <= 0 || opt.Height <= 0 {
		return nil, fmt.Errorf("seeding %dx%d: %w", opt.Width, opt.Height, core.ErrInvalidDimension)
	}
	switch policy {
	case PolicyUniform:
		return Uniform(rng.NewRNG(opt.Seed), opt.Width, opt.Height, opt.Density, opt.State), nil
	case PolicyCluster:
		fill := Uniform(rng.NewRNG(opt.Seed), opt.Width, opt.Height, opt.Density, opt.State)
		return CenteredCluster(opt.Width, opt.Height, opt.Radius, fill), nil
	case PolicyFraction:
		return Fraction(rng.NewRNG(opt.Seed), opt.Width, opt.Height, opt.Density, opt.State), nil
	case PolicyNoise:
		return Noise(opt.Seed, opt.NoiseScale, opt.Density, opt.State), nil
	}
	return nil, fmt.Errorf("%w %q", core.ErrUnknownSeeding, string(policy))
}

// Uniform draws every cell once, up front, so the result does not depend on
// the order the engine queries coordinates in.
func Uniform(r *rng.RNG, w, h int, p float64, state uint8) Assignment {
	cells := make([]bool, w*h)
	for i := range cells {
		cells[i] = r.Chance(p)
	}
	return fromMask(cells, w, h, state)
}

// Fraction selects exactly round(frac*w*h) distinct cells.
func Fraction(r *rng.RNG, w, h int, frac float64, state uint8) Assignment {
	total := w * h
	frac = math.Max(0, math.Min(1, frac))
	k := int(math.Round(frac * float64(total)))
	cells := make([]bool, total)
	for _, i := range r.Perm(total)[:k] {
		cells[i] = true
	}
	return fromMask(cells, w, h, state)
}

// CenteredCluster restricts fill to the square of half-width radius around
// the grid center. Cells outside are zero.
func CenteredCluster(w, h, radius int, fill Assignment) Assignment {
	cx, cy := w/2, h/2
	return func(x, y int) uint8 {
		if abs(x-cx) > radius || abs(y-cy) > radius {
			return 0
		}
		return fill(x, y)
	}
}

// Noise marks cells where a perlin field exceeds the cut that leaves roughly
// density of the range above it.
func Noise(seed int64, scale, density float64, state uint8) Assignment {
	if scale <= 0 {
		scale = 8
	}
	if density <= 0 {
		return func(int, int) uint8 { return 0 }
	}
	if density >= 1 {
		return func(int, int) uint8 { return state }
	}
	// Noise2D output lies roughly within [-1, 1].
	cut := 1 - 2*density
	p := perlin.NewPerlin(2, 2, 3, seed)
	return func(x, y int) uint8 {
		if p.Noise2D(float64(x)/scale, float64(y)/scale) > cut {
			return state
		}
		return 0
	}
}

// UniformLevels assigns levels in [0, limit) to cells whose state is selected
// by states and zero elsewhere.
func UniformLevels(r *rng.RNG, w, h int, limit float64, states Assignment, want uint8) Levels {
	levels := make([]float64, w*h)
	for i := range levels {
		x, y := i%w, i/w
		if states(x, y) == want {
			levels[i] = r.Float64() * limit
		}
	}
	return func(x, y int) float64 {
		if x < 0 || x >= w || y < 0 || y >= h {
			return 0
		}
		return levels[y*w+x]
	}
}

func fromMask(cells []bool, w, h int, state uint8) Assignment {
	return func(x, y int) uint8 {
		if x < 0 || x >= w || y < 0 || y >= h {
			return 0
		}
		if cells[y*w+x] {
			return state
		}
		return 0
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
