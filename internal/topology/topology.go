// Package topology precomputes the bounded neighbor table of a grid.
//
// Slots are stored per cell in a fixed order. A side that would fall outside
// the grid holds None; edges are never wrapped.
package topology

import (
	"fmt"
	"strings"

	"gridca/internal/core"
)

// Mode selects the neighborhood shape.
type Mode uint8

const (
	// VonNeumann uses the four orthogonal neighbors.
	VonNeumann Mode = iota + 1
	// Moore adds the four diagonals.
	Moore
	// Linear is the one-dimensional left/right neighborhood.
	Linear
)

// None marks an absent neighbor slot.
const None int32 = -1

// Slot indices for VonNeumann and Moore. Moore extends the first four.
const (
	Top = iota
	Bottom
	Left
	Right
	TopLeft
	TopRight
	BottomLeft
	BottomRight
)

// Slot indices for Linear.
const (
	LinearLeft = iota
	LinearRight
)

// Slots reports how many neighbor slots each cell carries in mode m.
func (m Mode) Slots() int {
	switch m {
	case VonNeumann:
		return 4
	case Moore:
		return 8
	case Linear:
		return 2
	}
	return 0
}

func (m Mode) String() string {
	switch m {
	case VonNeumann:
		return "vonneumann"
	case Moore:
		return "moore"
	case Linear:
		return "linear"
	}
	return fmt.Sprintf("Mode(%d)", uint8(m))
}

// ParseMode maps a user-facing name onto a Mode.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "4", "vonneumann", "von-neumann", "von_neumann":
		return VonNeumann, nil
	case "8", "moore":
		return Moore, nil
	case "2", "linear":
		return Linear, nil
	}
	return 0, fmt.Errorf("%w %q", core.ErrUnknownNeighborhood, s)
}

// offsets lists the (dx, dy) of each slot. y grows upward, so top is +1.
var offsets = [...][2]int{
	Top:         {0, 1},
	Bottom:      {0, -1},
	Left:        {-1, 0},
	Right:       {1, 0},
	TopLeft:     {-1, 1},
	TopRight:    {1, 1},
	BottomLeft:  {-1, -1},
	BottomRight: {1, -1},
}

var linearOffsets = [...]int{LinearLeft: -1, LinearRight: 1}

// Topology is an immutable neighbor table for a w*h grid.
type Topology struct {
	w, h  int
	mode  Mode
	slots []int32
}

// Build computes the neighbor table for a width*height grid. Linear mode
// requires height 1.
func Build(width, height int, mode Mode) (*Topology, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("topology %dx%d: %w", width, height, core.ErrInvalidDimension)
	}
	n := mode.Slots()
	if n == 0 {
		return nil, fmt.Errorf("topology: %w %s", core.ErrUnknownNeighborhood, mode)
	}
	if mode == Linear && height != 1 {
		return nil, fmt.Errorf("linear topology with height %d: %w", height, core.ErrInvalidDimension)
	}

	t := &Topology{w: width, h: height, mode: mode, slots: make([]int32, width*height*n)}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			base := (y*width + x) * n
			for s := 0; s < n; s++ {
				t.slots[base+s] = t.resolve(x, y, s)
			}
		}
	}
	return t, nil
}

func (t *Topology) resolve(x, y, slot int) int32 {
	var nx, ny int
	if t.mode == Linear {
		nx, ny = x+linearOffsets[slot], y
	} else {
		nx, ny = x+offsets[slot][0], y+offsets[slot][1]
	}
	if !t.Contains(nx, ny) {
		return None
	}
	return int32(ny*t.w + nx)
}

// Width returns the grid width.
func (t *Topology) Width() int { return t.w }

// Height returns the grid height.
func (t *Topology) Height() int { return t.h }

// Len returns the number of cells.
func (t *Topology) Len() int { return t.w * t.h }

// Mode returns the neighborhood mode the table was built for.
func (t *Topology) Mode() Mode { return t.mode }

// Contains reports whether (x, y) lies inside the grid.
func (t *Topology) Contains(x, y int) bool {
	return x >= 0 && x < t.w && y >= 0 && y < t.h
}

// Index returns the flat index of (x, y).
func (t *Topology) Index(x, y int) int { return y*t.w + x }

// Coord returns the coordinates of flat index i.
func (t *Topology) Coord(i int) (int, int) { return i % t.w, i / t.w }

// Neighbors returns the slot table of cell i. The slice aliases the topology
// and must not be modified.
func (t *Topology) Neighbors(i int) []int32 {
	n := t.mode.Slots()
	return t.slots[i*n : (i+1)*n : (i+1)*n]
}

// Neighbor returns the index in the given slot of cell i and whether it exists.
func (t *Topology) Neighbor(i, slot int) (int, bool) {
	v := t.Neighbors(i)[slot]
	if v == None {
		return 0, false
	}
	return int(v), true
}

// Populated counts the present neighbors of cell i.
func (t *Topology) Populated(i int) int {
	count := 0
	for _, v := range t.Neighbors(i) {
		if v != None {
			count++
		}
	}
	return count
}
