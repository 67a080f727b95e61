package elementary

import (
	"fmt"
	"strconv"

	"gridca/internal/core"
	"gridca/internal/topology"
)

// Config holds parameters for the elementary cellular automaton.
type Config struct {
	Width  int
	Height int
	Rule   uint8
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{Width: 150, Height: 150, Rule: 222}
}

// FromMap populates a Config from a string map.
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
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
	if v, ok := cfg["rule"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 && parsed <= 255 {
			c.Rule = uint8(parsed)
		}
	}
	return c
}

// Elementary implements a one-dimensional Wolfram code. The row has no
// wraparound: a missing neighbor reads as a 0 bit. Past generations scroll
// downward so the newest row is always the top one (y = h-1).
type Elementary struct {
	w, h int
	rule uint8
	topo *topology.Topology
	row  []uint8
	next []uint8
	hist *core.ByteGrid
	gen  uint64
}

// New creates an automaton with the given dimensions and rule.
func New(w, h int, rule uint8) (*Elementary, error) {
	topo, err := topology.Build(w, 1, topology.Linear)
	if err != nil {
		return nil, fmt.Errorf("elementary: %w", err)
	}
	hist, err := core.NewByteGrid(w, h)
	if err != nil {
		return nil, fmt.Errorf("elementary: %w", err)
	}
	return &Elementary{
		w:    w,
		h:    h,
		rule: rule,
		topo: topo,
		row:  make([]uint8, w),
		next: make([]uint8, w),
		hist: hist,
	}, nil
}

// Name returns the simulation identifier.
func (e *Elementary) Name() string { return "elementary" }

// Size returns the simulation grid dimensions.
func (e *Elementary) Size() core.Size { return core.Size{W: e.w, H: e.h} }

// Cells exposes the render buffer.
func (e *Elementary) Cells() []uint8 { return e.hist.Cells() }

// Row exposes the current generation.
func (e *Elementary) Row() []uint8 { return e.row }

// Generation counts steps since the last Reset.
func (e *Elementary) Generation() uint64 { return e.gen }

// Reset clears the history and seeds the row with a single active cell at the
// center. The seed is unused; the initial condition is fixed.
func (e *Elementary) Reset(int64) error {
	for i := range e.row {
		e.row[i] = 0
	}
	e.row[e.w/2] = 1
	e.hist.Clear()
	e.writeTop()
	e.gen = 0
	return nil
}

// Step computes the next generation from the previous row and scrolls
// history downwards.
func (e *Elementary) Step() error {
	for x := 0; x < e.w; x++ {
		var left, right uint8
		if i, ok := e.topo.Neighbor(x, topology.LinearLeft); ok {
			left = e.row[i]
		}
		if i, ok := e.topo.Neighbor(x, topology.LinearRight); ok {
			right = e.row[i]
		}
		idx := (left << 2) | (e.row[x] << 1) | right
		e.next[x] = (e.rule >> idx) & 1
	}
	e.row, e.next = e.next, e.row

	cells := e.hist.Cells()
	copy(cells, cells[e.w:])
	e.writeTop()
	e.gen++
	return nil
}

func (e *Elementary) writeTop() {
	copy(e.hist.Cells()[e.hist.Index(0, e.h-1):], e.row)
}

func init() {
	core.Register("elementary", func(cfg map[string]string) (core.Sim, error) {
		c := FromMap(cfg)
		sim, err := New(c.Width, c.Height, c.Rule)
		if err != nil {
			return nil, err
		}
		return sim, nil
	})
}
