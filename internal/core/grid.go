package core

import "fmt"

// ByteGrid stores a 2D grid of byte-sized cell values in row-major order.
// Row zero is the bottom row: y grows upward.
type ByteGrid struct {
	W, H int
	data []uint8
}

// NewByteGrid allocates a grid with the given dimensions.
func NewByteGrid(w, h int) (*ByteGrid, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimension, w, h)
	}
	return &ByteGrid{W: w, H: h, data: make([]uint8, w*h)}, nil
}

// Cells exposes the backing slice so callers can read/write values directly.
func (g *ByteGrid) Cells() []uint8 { return g.data }

// Len reports the number of cells.
func (g *ByteGrid) Len() int { return len(g.data) }

// Index returns the linear slice index for coordinates (x, y).
func (g *ByteGrid) Index(x, y int) int { return y*g.W + x }

// Coord converts a linear index back into coordinates.
func (g *ByteGrid) Coord(i int) (int, int) { return i % g.W, i / g.W }

// Contains reports whether (x, y) addresses a cell. There is no wrapping.
func (g *ByteGrid) Contains(x, y int) bool {
	return x >= 0 && x < g.W && y >= 0 && y < g.H
}

// At returns the value at (x, y).
func (g *ByteGrid) At(x, y int) (uint8, error) {
	if !g.Contains(x, y) {
		return 0, fmt.Errorf("%w: (%d,%d) in %dx%d", ErrOutOfRange, x, y, g.W, g.H)
	}
	return g.data[g.Index(x, y)], nil
}

// Clear fills the grid with zeros.
func (g *ByteGrid) Clear() {
	for i := range g.data {
		g.data[i] = 0
	}
}
