package cellular

import (
	"strconv"

	"gridca/internal/automaton"
	"gridca/internal/seeding"
	"gridca/internal/topology"
)

// Config controls one of the grid automata.
type Config struct {
	Width  int
	Height int

	Rule         automaton.Rule
	Neighborhood topology.Mode
	Workers      int

	Seed       int64
	Seeding    seeding.Policy
	Density    float64
	Radius     int
	NoiseScale float64
	// InitialLevel bounds the random infection level given to seeded
	// infected cells. Zero leaves them at level zero.
	InitialLevel float64

	Params automaton.Params
}

// DefaultConfig returns the standard configuration for rule.
func DefaultConfig(rule automaton.Rule) Config {
	c := Config{
		Width:        50,
		Height:       50,
		Rule:         rule,
		Neighborhood: topology.Moore,
		Seed:         42,
		Seeding:      seeding.PolicyUniform,
		Density:      0.5,
		Radius:       4,
		NoiseScale:   8,
		Params:       automaton.DefaultParams(),
	}
	switch rule {
	case automaton.Seeds:
		c.Seeding = seeding.PolicyCluster
	case automaton.BriansBrain:
		c.Density = 0.125
	case automaton.Infection:
		c.Width, c.Height = 128, 128
		c.Seeding = seeding.PolicyFraction
		c.Density = 0.1
		c.InitialLevel = 50
	}
	return c
}

// FromMap populates a Config for rule from a string map (flag-style key/value
// pairs). Unparseable or out-of-range values keep their defaults.
func FromMap(rule automaton.Rule, cfg map[string]string) Config {
	c := DefaultConfig(rule)
	if cfg == nil {
		return c
	}
	if v, ok := cfg["w"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Width = parsed
		}
	}
	if v, ok := cfg["h"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Height = parsed
		}
	}
	if v, ok := cfg["neighborhood"]; ok {
		if parsed, err := topology.ParseMode(v); err == nil && parsed != topology.Linear {
			c.Neighborhood = parsed
		}
	}
	if v, ok := cfg["workers"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			c.Workers = parsed
		}
	}
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}
	if v, ok := cfg["seeding"]; ok {
		if parsed, err := seeding.ParsePolicy(v); err == nil {
			c.Seeding = parsed
		}
	}
	if v, ok := cfg["density"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 && parsed <= 1 {
			c.Density = parsed
		}
	}
	if v, ok := cfg["radius"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			c.Radius = parsed
		}
	}
	if v, ok := cfg["noise_scale"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed > 0 {
			c.NoiseScale = parsed
		}
	}
	if v, ok := cfg["initial_level"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			c.InitialLevel = parsed
		}
	}
	if v, ok := cfg["infection_resistance"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Params.InfectionResistance = parsed
		}
	}
	if v, ok := cfg["illness_resistance"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Params.IllnessResistance = parsed
		}
	}
	if v, ok := cfg["infectivity"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			c.Params.Infectivity = parsed
		}
	}
	if v, ok := cfg["ceiling"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed > 0 {
			c.Params.Ceiling = parsed
		}
	}
	if v, ok := cfg["threshold"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			c.Params.Threshold = parsed
		}
	}
	if c.Params.Threshold >= c.Params.Ceiling {
		c.Params.Threshold = 0
	}
	if c.InitialLevel > c.Params.Ceiling {
		c.InitialLevel = c.Params.Ceiling
	}
	return c
}
