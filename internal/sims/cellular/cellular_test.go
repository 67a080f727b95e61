package cellular

import (
	"math"
	"slices"
	"testing"

	"gridca/internal/automaton"
	"gridca/internal/core"
	"gridca/internal/seeding"
	"gridca/internal/topology"
)

func TestEveryRuleIsRegistered(t *testing.T) {
	for _, rule := range automaton.Rules {
		factory, err := core.Lookup(rule.String())
		if err != nil {
			t.Fatalf("Lookup(%s): %v", rule, err)
		}
		sim, err := factory(map[string]string{"w": "12", "h": "10"})
		if err != nil {
			t.Fatalf("factory(%s): %v", rule, err)
		}
		if sim.Name() != rule.String() {
			t.Fatalf("sim name %q, want %q", sim.Name(), rule)
		}
		if got := sim.Size(); got != (core.Size{W: 12, H: 10}) {
			t.Fatalf("size %+v", got)
		}
	}
}

func TestFromMapParsesAndIgnoresBadValues(t *testing.T) {
	c := FromMap(automaton.Infection, map[string]string{
		"w":                    "64",
		"h":                    "-3",
		"neighborhood":         "vonneumann",
		"seeding":              "noise",
		"density":              "1.5",
		"infectivity":          "7.5",
		"infection_resistance": "0",
		"illness_resistance":   "4",
		"threshold":            "500",
	})
	def := DefaultConfig(automaton.Infection)
	if c.Width != 64 || c.Height != def.Height {
		t.Fatalf("dims %dx%d", c.Width, c.Height)
	}
	if c.Neighborhood != topology.VonNeumann || c.Seeding != seeding.PolicyNoise {
		t.Fatalf("neighborhood=%s seeding=%s", c.Neighborhood, c.Seeding)
	}
	if c.Density != def.Density {
		t.Fatalf("density %g should keep default", c.Density)
	}
	if c.Params.Infectivity != 7.5 || c.Params.IllnessResistance != 4 {
		t.Fatalf("params %+v", c.Params)
	}
	if c.Params.InfectionResistance != def.Params.InfectionResistance {
		t.Fatal("zero resistance must be ignored")
	}
	if c.Params.Threshold != 0 {
		t.Fatalf("threshold above ceiling kept: %g", c.Params.Threshold)
	}

	if got := FromMap(automaton.Life, map[string]string{"neighborhood": "linear"}).Neighborhood; got != topology.Moore {
		t.Fatalf("linear neighborhood accepted for a 2D grid: %s", got)
	}
}

func TestResetDeterministic(t *testing.T) {
	for _, rule := range automaton.Rules {
		cfg := DefaultConfig(rule)
		cfg.Width, cfg.Height = 24, 18
		sim, err := New(cfg)
		if err != nil {
			t.Fatal(err)
		}
		if err := sim.Reset(0); err != nil {
			t.Fatal(err)
		}
		initial := slices.Clone(sim.Cells())
		initialLevels := slices.Clone(sim.Engine().Infections())

		for i := 0; i < 3; i++ {
			if err := sim.Step(); err != nil {
				t.Fatal(err)
			}
		}
		if err := sim.Reset(0); err != nil {
			t.Fatal(err)
		}
		if !slices.Equal(initial, sim.Cells()) {
			t.Fatalf("%s: Reset with config seed not deterministic", rule)
		}
		if !slices.Equal(initialLevels, sim.Engine().Infections()) {
			t.Fatalf("%s: Reset levels not deterministic", rule)
		}
		if sim.Generation() != 0 {
			t.Fatalf("%s: generation %d after reset", rule, sim.Generation())
		}

		if err := sim.Reset(777); err != nil {
			t.Fatal(err)
		}
		if rule != automaton.Seeds && slices.Equal(initial, sim.Cells()) {
			t.Fatalf("%s: different seeds should produce different initial states", rule)
		}
	}
}

func TestInfectionResetSeedsLevelsOnInfectedCells(t *testing.T) {
	cfg := DefaultConfig(automaton.Infection)
	cfg.Width, cfg.Height = 20, 20
	sim, err := New(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if err := sim.Reset(5); err != nil {
		t.Fatal(err)
	}
	pop := sim.Population()
	if pop[automaton.Infected] != 40 {
		t.Fatalf("infected %d, want exactly 10%% of 400", pop[automaton.Infected])
	}
	for i, s := range sim.Cells() {
		level := sim.Engine().Infections()[i]
		if s != automaton.Infected && level != 0 {
			t.Fatalf("healthy cell %d has level %g", i, level)
		}
		if level < 0 || level >= cfg.InitialLevel {
			t.Fatalf("level %g outside [0,%g)", level, cfg.InitialLevel)
		}
	}
}

func TestSetFloatParameterClamps(t *testing.T) {
	sim, err := New(DefaultConfig(automaton.Infection))
	if err != nil {
		t.Fatal(err)
	}
	if !sim.SetFloatParameter("infectivity", 150) {
		t.Fatal("expected infectivity to be adjustable")
	}
	if got := sim.Engine().Params().Infectivity; math.Abs(got-100) > 1e-9 {
		t.Fatalf("infectivity %g, want clamp to 100", got)
	}
	if !sim.SetFloatParameter("infection_resistance", 0) {
		t.Fatal("expected resistance to be adjustable")
	}
	if got := sim.Engine().Params().InfectionResistance; got != 1 {
		t.Fatalf("resistance %d, want clamp to 1", got)
	}
	if sim.SetFloatParameter("ceiling", 10) {
		t.Fatal("ceiling is not a runtime control")
	}

	life, err := New(DefaultConfig(automaton.Life))
	if err != nil {
		t.Fatal(err)
	}
	if life.SetFloatParameter("infectivity", 5) {
		t.Fatal("life exposes no controls")
	}
}

func TestParametersIncludeInfectionGroup(t *testing.T) {
	sim, err := New(DefaultConfig(automaton.Infection))
	if err != nil {
		t.Fatal(err)
	}
	snap := sim.Parameters()
	if len(snap.Groups) != 2 || snap.Groups[1].Name != "Infection" {
		t.Fatalf("groups %+v", snap.Groups)
	}
	life, _ := New(DefaultConfig(automaton.Life))
	if got := len(life.Parameters().Groups); got != 1 {
		t.Fatalf("life has %d groups", got)
	}
}
