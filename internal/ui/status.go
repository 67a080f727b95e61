package ui

import (
	"fmt"
	"strconv"
	"strings"

	"gridca/internal/core"
)

type progressProvider interface {
	Generation() uint64
}

type populationProvider interface {
	Population() []int
}

// StatusLines renders the textual HUD contents for sim: title, generation,
// per-state population and the published parameters.
func StatusLines(sim core.Sim) []string {
	lines := []string{"gridca - " + sim.Name()}
	if p, ok := sim.(progressProvider); ok {
		lines = append(lines, fmt.Sprintf("generation %d", p.Generation()))
	}
	if p, ok := sim.(populationProvider); ok {
		pop := p.Population()
		parts := make([]string, len(pop))
		for s, n := range pop {
			parts[s] = fmt.Sprintf("%d:%d", s, n)
		}
		lines = append(lines, "population "+strings.Join(parts, " "))
	}
	if p, ok := sim.(core.ParameterProvider); ok {
		for _, g := range p.Parameters().Groups {
			lines = append(lines, "", "["+g.Name+"]")
			for _, param := range g.Params {
				if param.Key == "generation" {
					continue
				}
				lines = append(lines, fmt.Sprintf("%s: %s", param.Label, param.Value))
			}
		}
	}
	return lines
}

// formatControl prints a control value with the precision its step implies.
func formatControl(ctrl core.ParameterControl, value float64) string {
	if ctrl.Type == core.ParamTypeInt {
		return strconv.Itoa(int(value))
	}
	decimals := 0
	for step := ctrl.Step; step > 0 && step < 1 && decimals < 4; step *= 10 {
		decimals++
	}
	return strconv.FormatFloat(value, 'f', decimals, 64)
}
