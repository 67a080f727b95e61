// Package render turns automaton state into RGBA pixels.
//
// Grid row zero is the bottom row while image row zero is the top, so every
// write flips y.
package render

import (
	"gridca/internal/automaton"
	"gridca/internal/core"
)

// Tracked is a sim whose cells carry change flags.
type Tracked interface {
	core.Sim
	Cell(i int) *automaton.Cell
}

// Painter keeps an RGBA buffer in sync with a sim.
type Painter struct {
	w, h   int
	buf    []byte
	shader Shader
}

// NewPainter allocates a painter for a grid of the given size.
func NewPainter(size core.Size, shader Shader) *Painter {
	return &Painter{w: size.W, h: size.H, buf: make([]byte, 4*size.W*size.H), shader: shader}
}

// Pixels returns the RGBA buffer, row-major from the top image row.
func (p *Painter) Pixels() []byte { return p.buf }

// Size returns the image dimensions.
func (p *Painter) Size() (int, int) { return p.w, p.h }

func (p *Painter) pixelBase(i int) int {
	x, y := i%p.w, i/p.w
	return ((p.h-1-y)*p.w + x) * 4
}

// PaintAll redraws every cell from a plain state buffer.
func (p *Painter) PaintAll(cells []uint8) int {
	if len(cells) != p.w*p.h {
		return 0
	}
	for i, s := range cells {
		put(p.buf, p.pixelBase(i), p.shader(s, 0))
	}
	return len(cells)
}

// PaintChanged redraws only flagged cells and acknowledges each one. It
// returns the number of cells redrawn.
func (p *Painter) PaintChanged(src Tracked) int {
	size := src.Size()
	if size.W != p.w || size.H != p.h {
		return 0
	}
	n := 0
	for i := 0; i < p.w*p.h; i++ {
		c := src.Cell(i)
		if !c.Changed() {
			continue
		}
		put(p.buf, p.pixelBase(i), p.shader(c.State(), c.Infection()))
		c.AcknowledgeRender()
		n++
	}
	return n
}

// Paint uses change tracking when the sim supports it and a full redraw
// otherwise.
func (p *Painter) Paint(sim core.Sim) int {
	if tracked, ok := sim.(Tracked); ok {
		return p.PaintChanged(tracked)
	}
	return p.PaintAll(sim.Cells())
}

type engineProvider interface {
	Engine() *automaton.Engine
}

// ShaderForSim picks the default shader for any registered sim. Sims without
// an engine are drawn as binary.
func ShaderForSim(sim core.Sim) Shader {
	if p, ok := sim.(engineProvider); ok {
		eng := p.Engine()
		return ShaderFor(eng.Rule(), eng.Params())
	}
	return PaletteShader(BinaryPalette)
}
