// Package stats records per-generation population counts and plots them.
package stats

import (
	"errors"
	"fmt"
	"io"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"gridca/internal/core"
)

// ErrNoPopulation is returned for sims that cannot report state counts.
var ErrNoPopulation = errors.New("sim does not report population")

// Counter is a sim that can count its cells per state.
type Counter interface {
	core.Sim
	Population() []int
}

// History holds one count series per state. Series[s][g] is the number of
// cells in state s after generation g; generation zero is the seeded grid.
type History struct {
	Names  []string
	Series [][]int
}

// Generations is the number of recorded samples.
func (h *History) Generations() int {
	if len(h.Series) == 0 {
		return 0
	}
	return len(h.Series[0])
}

func (h *History) add(pop []int) {
	for s := range h.Series {
		n := 0
		if s < len(pop) {
			n = pop[s]
		}
		h.Series[s] = append(h.Series[s], n)
	}
}

// Record samples the sim's population, then steps it steps times sampling
// after each generation. names labels the states; missing labels are filled
// with "state N".
func Record(sim core.Sim, steps int, names []string) (*History, error) {
	counter, ok := sim.(Counter)
	if !ok {
		return nil, fmt.Errorf("%s: %w", sim.Name(), ErrNoPopulation)
	}
	first := counter.Population()
	h := &History{
		Names:  make([]string, len(first)),
		Series: make([][]int, len(first)),
	}
	for s := range h.Names {
		if s < len(names) {
			h.Names[s] = names[s]
		} else {
			h.Names[s] = fmt.Sprintf("state %d", s)
		}
		h.Series[s] = make([]int, 0, steps+1)
	}
	h.add(first)
	for i := 0; i < steps; i++ {
		if err := sim.Step(); err != nil {
			return h, fmt.Errorf("generation %d: %w", i+1, err)
		}
		h.add(counter.Population())
	}
	return h, nil
}

var seriesColors = []drawing.Color{
	{R: 62, G: 62, B: 62, A: 255},
	{R: 95, G: 174, B: 213, A: 255},
	{R: 230, G: 40, B: 30, A: 255},
	chart.ColorGreen,
}

// Chart builds a line chart with one series per state.
func (h *History) Chart(title string, width, height int) chart.Chart {
	xs := make([]float64, h.Generations())
	for i := range xs {
		xs[i] = float64(i)
	}
	series := make([]chart.Series, 0, len(h.Series))
	for s, counts := range h.Series {
		ys := make([]float64, len(counts))
		for i, n := range counts {
			ys[i] = float64(n)
		}
		series = append(series, chart.ContinuousSeries{
			Name:    h.Names[s],
			XValues: xs,
			YValues: ys,
			Style:   chart.Style{StrokeColor: seriesColors[s%len(seriesColors)], StrokeWidth: 2.0},
		})
	}

	graph := chart.Chart{
		Title:  title,
		Width:  width,
		Height: height,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 20, Right: 20, Bottom: 20},
		},
		XAxis: chart.XAxis{
			Name:  "generation",
			Style: chart.Style{FontSize: 10.0},
			ValueFormatter: func(v interface{}) string {
				return fmt.Sprintf("%d", int(v.(float64)))
			},
		},
		YAxis: chart.YAxis{
			Name:  "cells",
			Style: chart.Style{FontSize: 10.0},
		},
		Series: series,
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}
	return graph
}

// WritePNG renders the chart as PNG into w.
func (h *History) WritePNG(w io.Writer, title string, width, height int) error {
	if h.Generations() < 2 {
		return fmt.Errorf("need at least two samples to plot, have %d", h.Generations())
	}
	graph := h.Chart(title, width, height)
	if err := graph.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	return nil
}
