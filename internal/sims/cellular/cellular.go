// Package cellular adapts the automaton engine to the sim registry, one
// registered sim per rule.
package cellular

import (
	"fmt"

	"gridca/internal/automaton"
	"gridca/internal/core"
	"gridca/internal/seeding"
	rng "gridca/pkg/core"
)

// Sim runs one rule on a bounded grid.
type Sim struct {
	cfg Config
	eng *automaton.Engine
}

// New validates cfg and builds the engine. The grid starts empty; call Reset
// to seed it.
func New(cfg Config) (*Sim, error) {
	eng, err := automaton.New(automaton.Config{
		Width:        cfg.Width,
		Height:       cfg.Height,
		Rule:         cfg.Rule,
		Neighborhood: cfg.Neighborhood,
		Params:       cfg.Params,
		Workers:      cfg.Workers,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", cfg.Rule, err)
	}
	return &Sim{cfg: cfg, eng: eng}, nil
}

// Name returns the simulation identifier.
func (s *Sim) Name() string { return s.cfg.Rule.String() }

// Size returns the grid dimensions.
func (s *Sim) Size() core.Size { return s.eng.Size() }

// Cells exposes the committed states.
func (s *Sim) Cells() []uint8 { return s.eng.Cells() }

// Engine exposes the underlying engine for coordinate queries.
func (s *Sim) Engine() *automaton.Engine { return s.eng }

// Rule returns the active rule.
func (s *Sim) Rule() automaton.Rule { return s.cfg.Rule }

// Cell returns the cell at flat index i.
func (s *Sim) Cell(i int) *automaton.Cell { return s.eng.Cell(i) }

// Generation counts steps since the last Reset.
func (s *Sim) Generation() uint64 { return s.eng.Generation() }

// Infections returns the committed infection levels.
func (s *Sim) Infections() []float64 { return s.eng.Infections() }

// Population counts cells per state.
func (s *Sim) Population() []int { return s.eng.Population() }

// Config returns the active configuration.
func (s *Sim) Config() Config { return s.cfg }

// Reset reseeds the grid with the configured policy. A zero seed falls back
// to the configured one.
func (s *Sim) Reset(seed int64) error {
	effective := seed
	if effective == 0 {
		effective = s.cfg.Seed
	}
	size := s.Size()
	assign, err := seeding.New(s.cfg.Seeding, seeding.Options{
		Width:      size.W,
		Height:     size.H,
		Seed:       effective,
		Density:    s.cfg.Density,
		Radius:     s.cfg.Radius,
		State:      1,
		NoiseScale: s.cfg.NoiseScale,
	})
	if err != nil {
		return err
	}
	if err := s.eng.Seed(assign); err != nil {
		return err
	}
	if s.cfg.Rule == automaton.Infection && s.cfg.InitialLevel > 0 {
		levels := seeding.UniformLevels(rng.NewRNG(effective+1), size.W, size.H, s.cfg.InitialLevel, assign, automaton.Infected)
		if err := s.eng.SeedInfection(levels); err != nil {
			return err
		}
	}
	return nil
}

// Step advances one generation.
func (s *Sim) Step() error { return s.eng.Step() }

// Parameters reports the current settings for the HUD.
func (s *Sim) Parameters() core.ParameterSnapshot {
	groups := []core.ParameterGroup{
		{
			Name: "World",
			Params: []core.Parameter{
				core.StringParam("rule", "Rule", s.cfg.Rule.String()),
				core.IntParam("w", "Width", s.cfg.Width),
				core.IntParam("h", "Height", s.cfg.Height),
				core.StringParam("neighborhood", "Neighborhood", s.cfg.Neighborhood.String()),
				core.Int64Param("seed", "Seed", s.cfg.Seed),
				core.StringParam("seeding", "Seeding", string(s.cfg.Seeding)),
				core.Int64Param("generation", "Generation", int64(s.eng.Generation())),
			},
		},
	}
	if s.cfg.Rule == automaton.Infection {
		p := s.eng.Params()
		groups = append(groups, core.ParameterGroup{
			Name: "Infection",
			Params: []core.Parameter{
				core.IntParam("infection_resistance", "Infection resistance", p.InfectionResistance),
				core.IntParam("illness_resistance", "Illness resistance", p.IllnessResistance),
				core.FloatParam("infectivity", "Infectivity", p.Infectivity),
				core.FloatParam("ceiling", "Ceiling", p.Ceiling),
				core.FloatParam("threshold", "Threshold", p.Threshold),
			},
		})
	}
	return core.ParameterSnapshot{Groups: groups}
}

// ParameterControls lists the values adjustable at runtime. Only the
// infection rule has any.
func (s *Sim) ParameterControls() []core.ParameterControl {
	if s.cfg.Rule != automaton.Infection {
		return nil
	}
	return []core.ParameterControl{
		{Key: "infectivity", Label: "Infectivity", Type: core.ParamTypeFloat, Step: 1, Min: 0, Max: 100},
		{Key: "infection_resistance", Label: "Infection resistance", Type: core.ParamTypeInt, Step: 1, Min: 1, Max: 8},
		{Key: "illness_resistance", Label: "Illness resistance", Type: core.ParamTypeInt, Step: 1, Min: 1, Max: 8},
	}
}

// SetFloatParameter updates a control value, clamped to its bounds. It
// reports whether key names a control.
func (s *Sim) SetFloatParameter(key string, value float64) bool {
	var ctrl *core.ParameterControl
	controls := s.ParameterControls()
	for i := range controls {
		if controls[i].Key == key {
			ctrl = &controls[i]
		}
	}
	if ctrl == nil {
		return false
	}
	value = ctrl.Clamp(value)
	p := s.eng.Params()
	switch key {
	case "infectivity":
		p.Infectivity = value
	case "infection_resistance":
		p.InfectionResistance = int(value)
	case "illness_resistance":
		p.IllnessResistance = int(value)
	}
	if err := s.eng.SetParams(p); err != nil {
		return false
	}
	s.cfg.Params = p
	return true
}

func init() {
	for _, rule := range automaton.Rules {
		core.Register(rule.String(), func(cfg map[string]string) (core.Sim, error) {
			sim, err := New(FromMap(rule, cfg))
			if err != nil {
				return nil, err
			}
			return sim, nil
		})
	}
}
