package automaton

// Cell is the mutable state of one grid position. Its identity is its index in
// the engine's flat cell slice; neighbors live in the shared topology table.
type Cell struct {
	state     uint8
	infection float64
	changed   bool
}

// State returns the committed state.
func (c *Cell) State() uint8 { return c.state }

// Infection returns the committed infection level. It is always zero outside
// the infection rule.
func (c *Cell) Infection() float64 { return c.infection }

// Changed reports whether the cell changed since presentation last
// acknowledged it.
func (c *Cell) Changed() bool { return c.changed }

// SetState stores s and flags the cell as changed iff s differs from the
// previous state.
func (c *Cell) SetState(s uint8) {
	c.changed = s != c.state
	c.state = s
}

// SetInfection stores the infection level. A level change marks the cell as
// changed but never clears a pending state change.
func (c *Cell) SetInfection(v float64) {
	if v != c.infection {
		c.changed = true
	}
	c.infection = v
}

// AcknowledgeRender clears the changed flag after presentation consumed it.
func (c *Cell) AcknowledgeRender() { c.changed = false }
