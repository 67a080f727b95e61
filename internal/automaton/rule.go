package automaton

import (
	"fmt"
	"strings"

	"gridca/internal/core"
)

// Rule selects the transition function applied to every cell.
type Rule uint8

const (
	// Life is Conway's B3/S23.
	Life Rule = iota + 1
	// Seeds is B2/S: every live cell dies each generation.
	Seeds
	// BriansBrain is the three-state excitable medium.
	BriansBrain
	// Infection is the hodgepodge-style reaction-diffusion rule.
	Infection
)

// Binary states (Life, Seeds, Brian's Brain).
const (
	Dead  uint8 = 0
	Alive uint8 = 1
	Dying uint8 = 2
)

// Infection states.
const (
	Healthy  uint8 = 0
	Infected uint8 = 1
	Ill      uint8 = 2
)

// Rules lists every rule in declaration order.
var Rules = []Rule{Life, Seeds, BriansBrain, Infection}

func (r Rule) String() string {
	switch r {
	case Life:
		return "life"
	case Seeds:
		return "seeds"
	case BriansBrain:
		return "briansbrain"
	case Infection:
		return "infection"
	}
	return fmt.Sprintf("Rule(%d)", uint8(r))
}

// ParseRule maps a rule name onto a Rule.
func ParseRule(s string) (Rule, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for _, r := range Rules {
		if r.String() == name {
			return r, nil
		}
	}
	return 0, fmt.Errorf("%w %q", core.ErrUnknownRule, s)
}

// States reports how many distinct states the rule uses; valid states are
// [0, States()). Unknown rules report zero.
func (r Rule) States() int {
	switch r {
	case Life, Seeds:
		return 2
	case BriansBrain, Infection:
		return 3
	}
	return 0
}

// StateNames labels each state of r, indexed by state value.
func (r Rule) StateNames() []string {
	switch r {
	case Life, Seeds:
		return []string{"dead", "alive"}
	case BriansBrain:
		return []string{"dead", "alive", "dying"}
	case Infection:
		return []string{"healthy", "infected", "ill"}
	}
	return nil
}

// Valid reports whether r is one of the declared rules.
func (r Rule) Valid() bool { return r.States() > 0 }

// Params holds the tunables of the infection rule. The count-based rules
// ignore them.
type Params struct {
	// InfectionResistance divides the infected-neighbor count of a healthy cell.
	InfectionResistance int
	// IllnessResistance divides the ill-neighbor count of a healthy cell.
	IllnessResistance int
	// Infectivity is added to an infected cell's averaged level every step.
	Infectivity float64
	// Ceiling is the level above which an infected cell turns ill.
	Ceiling float64
	// Threshold is the level above which a healthy cell becomes infected.
	Threshold float64
}

// DefaultParams returns the infection settings used when none are supplied.
func DefaultParams() Params {
	return Params{
		InfectionResistance: 2,
		IllnessResistance:   3,
		Infectivity:         20,
		Ceiling:             100,
		Threshold:           0,
	}
}

// Validate reports parameters the infection rule cannot run with.
func (p Params) Validate() error {
	if p.InfectionResistance <= 0 {
		return fmt.Errorf("infection resistance %d: %w", p.InfectionResistance, core.ErrInvalidParameter)
	}
	if p.IllnessResistance <= 0 {
		return fmt.Errorf("illness resistance %d: %w", p.IllnessResistance, core.ErrInvalidParameter)
	}
	if p.Ceiling <= 0 {
		return fmt.Errorf("ceiling %g: %w", p.Ceiling, core.ErrInvalidParameter)
	}
	if p.Threshold < 0 || p.Threshold >= p.Ceiling {
		return fmt.Errorf("threshold %g outside [0,%g): %w", p.Threshold, p.Ceiling, core.ErrInvalidParameter)
	}
	return nil
}

// Summary is what a cell learns about its existing neighbors from the
// previous generation. Missing neighbors contribute to none of the fields.
type Summary struct {
	// Alive counts neighbors in state 1 (alive, or infected).
	Alive int
	// Ill counts neighbors in state 2 (dying, or ill).
	Ill int
	// InfectionSum adds up neighbor infection levels.
	InfectionSum float64
}

// Outcome is the next committed value of a cell.
type Outcome struct {
	State     uint8
	Infection float64
}

// Apply computes the next state of a cell currently in state with the given
// infection level and neighbor summary.
func Apply(r Rule, state uint8, infection float64, s Summary, p Params) (Outcome, error) {
	if int(state) >= r.States() {
		if !r.Valid() {
			return Outcome{}, fmt.Errorf("%w %s", core.ErrUnknownRule, r)
		}
		return Outcome{}, fmt.Errorf("state %d under %s: %w", state, r, core.ErrInvalidState)
	}
	switch r {
	case Life:
		return Outcome{State: life(state, s.Alive)}, nil
	case Seeds:
		return Outcome{State: seeds(state, s.Alive)}, nil
	case BriansBrain:
		return Outcome{State: briansBrain(state, s.Alive)}, nil
	case Infection:
		return infect(state, infection, s, p), nil
	}
	return Outcome{}, fmt.Errorf("%w %s", core.ErrUnknownRule, r)
}

func life(state uint8, alive int) uint8 {
	if state == Alive {
		if alive == 2 || alive == 3 {
			return Alive
		}
		return Dead
	}
	if alive == 3 {
		return Alive
	}
	return Dead
}

func seeds(state uint8, alive int) uint8 {
	if state == Dead && alive == 2 {
		return Alive
	}
	return Dead
}

func briansBrain(state uint8, alive int) uint8 {
	switch state {
	case Alive:
		return Dying
	case Dying:
		return Dead
	}
	if alive == 2 {
		return Alive
	}
	return Dead
}

func infect(state uint8, level float64, s Summary, p Params) Outcome {
	switch state {
	case Ill:
		return Outcome{State: Healthy}
	case Infected:
		next := (level+s.InfectionSum)/float64(s.Alive+s.Ill+1) + p.Infectivity
		if next > p.Ceiling {
			return Outcome{State: Ill, Infection: p.Ceiling}
		}
		return Outcome{State: Infected, Infection: next}
	}
	// Integer division: weak pressure floors to zero.
	next := float64(s.Alive/p.InfectionResistance + s.Ill/p.IllnessResistance)
	if next > p.Threshold {
		return Outcome{State: Infected, Infection: next}
	}
	return Outcome{State: Healthy, Infection: next}
}
