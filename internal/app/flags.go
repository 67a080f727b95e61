package app

import (
	"flag"
	"fmt"
	"strings"
	"time"

	"gridca/internal/core"
)

// KVList collects repeatable key=value flags.
type KVList []string

func (l *KVList) String() string {
	return strings.Join(*l, ",")
}

// Set appends one override.
func (l *KVList) Set(value string) error {
	if !strings.Contains(value, "=") {
		return fmt.Errorf("override %q: want key=value", value)
	}
	*l = append(*l, value)
	return nil
}

// Config represents the command-line parameters shared by the commands.
type Config struct {
	Sim    string
	Scale  int
	TPS    int
	Period time.Duration
	Seed   int64
	Sets   KVList
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{Sim: "life", Scale: 10, TPS: 60, Period: core.DefaultPeriod, Seed: 42}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Sim, "sim", c.Sim, "simulation to run ("+strings.Join(core.Names(), ", ")+")")
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixel scale multiplier")
	fs.IntVar(&c.TPS, "tps", c.TPS, "frames per second")
	fs.DurationVar(&c.Period, "period", c.Period, "wall time between generations")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for simulation reset")
	fs.Var(&c.Sets, "set", "sim parameter override in key=value form (repeatable)")
}

// Overrides converts the -set flags into the map consumed by sim factories.
// Later entries win.
func (c *Config) Overrides() map[string]string {
	out := make(map[string]string, len(c.Sets))
	for _, kv := range c.Sets {
		key, value, ok := strings.Cut(kv, "=")
		if !ok {
			continue
		}
		out[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	return out
}

// Build looks up, constructs and seeds the configured sim.
func (c *Config) Build() (core.Sim, error) {
	factory, err := core.Lookup(c.Sim)
	if err != nil {
		return nil, err
	}
	sim, err := factory(c.Overrides())
	if err != nil {
		return nil, fmt.Errorf("build %s: %w", c.Sim, err)
	}
	if err := sim.Reset(c.Seed); err != nil {
		return nil, fmt.Errorf("reset %s: %w", c.Sim, err)
	}
	return sim, nil
}
