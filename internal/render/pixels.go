package render

import (
	"image/color"
	"math"

	"gridca/internal/automaton"
)

// Shader maps a cell's state and infection level to a pixel color.
type Shader func(state uint8, level float64) color.RGBA

var (
	deadColor  = color.RGBA{R: 62, G: 62, B: 62, A: 255}
	aliveColor = color.RGBA{R: 95, G: 174, B: 213, A: 255}
	dyingColor = color.RGBA{R: 36, G: 82, B: 140, A: 255}
	illColor   = color.RGBA{R: 230, G: 40, B: 30, A: 255}
	feverColor = color.RGBA{R: 250, G: 170, B: 40, A: 255}
)

// BinaryPalette covers the two-state rules.
var BinaryPalette = []color.RGBA{deadColor, aliveColor}

// BrainPalette covers Brian's Brain: dead, alive, dying.
var BrainPalette = []color.RGBA{deadColor, aliveColor, dyingColor}

// PaletteShader ignores the infection level and indexes palette by state,
// clamping to the last entry. An empty palette yields transparent black.
func PaletteShader(palette []color.RGBA) Shader {
	return func(state uint8, _ float64) color.RGBA {
		if len(palette) == 0 {
			return color.RGBA{}
		}
		idx := min(int(state), len(palette)-1)
		return palette[idx]
	}
}

// InfectionShader shades infected cells from the dead color toward a fever
// color by level/ceiling; ill cells are solid red.
func InfectionShader(ceiling float64) Shader {
	return func(state uint8, level float64) color.RGBA {
		switch state {
		case automaton.Ill:
			return illColor
		case automaton.Infected:
			t := 0.0
			if ceiling > 0 {
				t = math.Max(0, math.Min(1, level/ceiling))
			}
			return lerp(aliveColor, feverColor, t)
		}
		return deadColor
	}
}

// ShaderFor picks the default shader of rule.
func ShaderFor(rule automaton.Rule, params automaton.Params) Shader {
	switch rule {
	case automaton.BriansBrain:
		return PaletteShader(BrainPalette)
	case automaton.Infection:
		return InfectionShader(params.Ceiling)
	}
	return PaletteShader(BinaryPalette)
}

func lerp(a, b color.RGBA, t float64) color.RGBA {
	inv := 1 - t
	return color.RGBA{
		R: uint8(float64(a.R)*inv + float64(b.R)*t + 0.5),
		G: uint8(float64(a.G)*inv + float64(b.G)*t + 0.5),
		B: uint8(float64(a.B)*inv + float64(b.B)*t + 0.5),
		A: 255,
	}
}

func put(buf []byte, base int, c color.RGBA) {
	buf[base+0] = c.R
	buf[base+1] = c.G
	buf[base+2] = c.B
	buf[base+3] = c.A
}
