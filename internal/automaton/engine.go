// Package automaton steps a bounded grid of cells under one of a closed set
// of local rules.
//
// Every generation runs in two passes. The compute pass reads only the
// snapshot of the previous generation and writes each cell's outcome to a
// scratch buffer; it may run on several goroutines. The commit pass then
// applies all outcomes and refreshes the snapshot. No cell ever observes a
// sibling's value from the generation being computed.
package automaton

import (
	"fmt"
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"

	"gridca/internal/core"
	"gridca/internal/topology"
)

// Config describes an engine.
type Config struct {
	Width        int
	Height       int
	Rule         Rule
	Neighborhood topology.Mode
	Params       Params
	// Workers bounds the goroutines used by the compute pass. Zero or less
	// means GOMAXPROCS.
	Workers int
}

// DefaultConfig returns a 50x50 Moore-neighborhood Life engine.
func DefaultConfig() Config {
	return Config{
		Width:        50,
		Height:       50,
		Rule:         Life,
		Neighborhood: topology.Moore,
		Params:       DefaultParams(),
	}
}

// Engine owns the cells, the previous-generation snapshot and the scratch
// outcomes of one grid. Step must not be called concurrently.
type Engine struct {
	topo    *topology.Topology
	rule    Rule
	params  Params
	workers int

	cells         []Cell
	snapshot      *core.ByteGrid
	snapInfection []float64
	next          []Outcome

	generation uint64
}

// New validates cfg and allocates an engine with every cell dead/healthy and
// flagged as changed so the first render draws the whole grid.
func New(cfg Config) (*Engine, error) {
	if !cfg.Rule.Valid() {
		return nil, fmt.Errorf("%w %s", core.ErrUnknownRule, cfg.Rule)
	}
	if cfg.Rule == Infection {
		if err := cfg.Params.Validate(); err != nil {
			return nil, err
		}
	}
	topo, err := topology.Build(cfg.Width, cfg.Height, cfg.Neighborhood)
	if err != nil {
		return nil, err
	}
	return NewWithTopology(topo, cfg.Rule, cfg.Params, cfg.Workers)
}

// NewWithTopology builds an engine on a prebuilt topology. Several engines
// may share one topology.
func NewWithTopology(topo *topology.Topology, rule Rule, params Params, workers int) (*Engine, error) {
	if !rule.Valid() {
		return nil, fmt.Errorf("%w %s", core.ErrUnknownRule, rule)
	}
	if rule == Infection {
		if err := params.Validate(); err != nil {
			return nil, err
		}
	}
	snapshot, err := core.NewByteGrid(topo.Width(), topo.Height())
	if err != nil {
		return nil, err
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	n := topo.Len()
	e := &Engine{
		topo:          topo,
		rule:          rule,
		params:        params,
		workers:       workers,
		cells:         make([]Cell, n),
		snapshot:      snapshot,
		snapInfection: make([]float64, n),
		next:          make([]Outcome, n),
	}
	for i := range e.cells {
		e.cells[i].changed = true
	}
	return e, nil
}

// Rule returns the active rule.
func (e *Engine) Rule() Rule { return e.rule }

// Params returns the active rule parameters.
func (e *Engine) Params() Params { return e.params }

// SetParams replaces the infection parameters between steps.
func (e *Engine) SetParams(p Params) error {
	if e.rule == Infection {
		if err := p.Validate(); err != nil {
			return err
		}
	}
	e.params = p
	return nil
}

// Topology returns the shared neighbor table.
func (e *Engine) Topology() *topology.Topology { return e.topo }

// Size reports the grid dimensions.
func (e *Engine) Size() core.Size { return core.Size{W: e.topo.Width(), H: e.topo.Height()} }

// Len returns the number of cells.
func (e *Engine) Len() int { return len(e.cells) }

// Generation counts completed steps since the last seeding.
func (e *Engine) Generation() uint64 { return e.generation }

// Cells exposes the committed states, row-major with row zero at the bottom.
// The slice is the snapshot buffer and must be treated as read-only.
func (e *Engine) Cells() []uint8 { return e.snapshot.Cells() }

// Infections exposes the committed infection levels. Read-only.
func (e *Engine) Infections() []float64 { return e.snapInfection }

// Cell returns the cell at flat index i.
func (e *Engine) Cell(i int) *Cell { return &e.cells[i] }

// Seed assigns every cell the state returned by assign and resets infection
// levels and the generation counter. Nothing is written when any returned
// state is invalid for the active rule.
func (e *Engine) Seed(assign func(x, y int) uint8) error {
	states := e.snapshot.Cells()
	next := make([]uint8, len(states))
	for i := range next {
		x, y := e.topo.Coord(i)
		s := assign(x, y)
		if int(s) >= e.rule.States() {
			return fmt.Errorf("seed (%d,%d) state %d under %s: %w", x, y, s, e.rule, core.ErrInvalidState)
		}
		next[i] = s
	}
	for i, s := range next {
		c := &e.cells[i]
		c.state = s
		c.infection = 0
		c.changed = true
		states[i] = s
		e.snapInfection[i] = 0
	}
	e.generation = 0
	return nil
}

// SeedInfection assigns initial infection levels under the infection rule.
// Levels must be finite and within [0, Ceiling].
func (e *Engine) SeedInfection(assign func(x, y int) float64) error {
	if e.rule != Infection {
		return fmt.Errorf("infection levels under %s: %w", e.rule, core.ErrInvalidState)
	}
	levels := make([]float64, len(e.cells))
	for i := range levels {
		x, y := e.topo.Coord(i)
		v := assign(x, y)
		if math.IsNaN(v) || v < 0 || v > e.params.Ceiling {
			return fmt.Errorf("seed (%d,%d) infection %g: %w", x, y, v, core.ErrInvalidState)
		}
		levels[i] = v
	}
	for i, v := range levels {
		e.cells[i].SetInfection(v)
		e.snapInfection[i] = v
	}
	return nil
}

// Step advances exactly one generation. On error no cell is modified and the
// generation counter is unchanged.
func (e *Engine) Step() error {
	if err := e.compute(); err != nil {
		return fmt.Errorf("generation %d: %w", e.generation+1, err)
	}
	e.commit()
	e.generation++
	return nil
}

func (e *Engine) compute() error {
	n := len(e.cells)
	workers := min(e.workers, n)
	if workers <= 1 {
		return e.computeRange(0, n)
	}
	band := (n + workers - 1) / workers
	var g errgroup.Group
	for start := 0; start < n; start += band {
		end := min(start+band, n)
		g.Go(func() error {
			return e.computeRange(start, end)
		})
	}
	return g.Wait()
}

func (e *Engine) computeRange(lo, hi int) error {
	states := e.snapshot.Cells()
	for i := lo; i < hi; i++ {
		out, err := Apply(e.rule, states[i], e.snapInfection[i], e.summarize(i), e.params)
		if err != nil {
			x, y := e.topo.Coord(i)
			return fmt.Errorf("cell (%d,%d): %w", x, y, err)
		}
		e.next[i] = out
	}
	return nil
}

func (e *Engine) summarize(i int) Summary {
	var s Summary
	states := e.snapshot.Cells()
	for _, nb := range e.topo.Neighbors(i) {
		if nb == topology.None {
			continue
		}
		switch states[nb] {
		case 1:
			s.Alive++
		case 2:
			s.Ill++
		}
		s.InfectionSum += e.snapInfection[nb]
	}
	return s
}

func (e *Engine) commit() {
	states := e.snapshot.Cells()
	for i := range e.cells {
		c := &e.cells[i]
		out := e.next[i]
		c.SetState(out.State)
		if e.rule == Infection {
			c.SetInfection(out.Infection)
		}
		states[i] = c.state
		e.snapInfection[i] = c.infection
	}
}

func (e *Engine) cellAt(x, y int) (*Cell, error) {
	if !e.topo.Contains(x, y) {
		return nil, fmt.Errorf("%w: (%d,%d) in %dx%d", core.ErrOutOfRange, x, y, e.topo.Width(), e.topo.Height())
	}
	return &e.cells[e.topo.Index(x, y)], nil
}

// StateOf returns the committed state at (x, y).
func (e *Engine) StateOf(x, y int) (uint8, error) {
	c, err := e.cellAt(x, y)
	if err != nil {
		return 0, err
	}
	return c.state, nil
}

// InfectionOf returns the committed infection level at (x, y). Rules other
// than Infection always report zero.
func (e *Engine) InfectionOf(x, y int) (float64, error) {
	c, err := e.cellAt(x, y)
	if err != nil {
		return 0, err
	}
	return c.infection, nil
}

// DidChange reports whether (x, y) changed since its last acknowledgement.
func (e *Engine) DidChange(x, y int) (bool, error) {
	c, err := e.cellAt(x, y)
	if err != nil {
		return false, err
	}
	return c.changed, nil
}

// AcknowledgeRender clears the changed flag at (x, y).
func (e *Engine) AcknowledgeRender(x, y int) error {
	c, err := e.cellAt(x, y)
	if err != nil {
		return err
	}
	c.AcknowledgeRender()
	return nil
}

// Population counts cells per state; index s holds the number of cells in
// state s.
func (e *Engine) Population() []int {
	counts := make([]int, e.rule.States())
	for _, s := range e.snapshot.Cells() {
		counts[s]++
	}
	return counts
}
