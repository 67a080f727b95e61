package main

import (
	"flag"
	"fmt"
	"runtime"

	"gridca/internal/app"
	"gridca/internal/automaton"
	"gridca/internal/sims/cellular"
)

func main() {
	steps := flag.Int("steps", 300, "generations to simulate per candidate")
	workers := flag.Int("workers", runtime.NumCPU(), "parallel candidate evaluations")
	top := flag.Int("top", 5, "results to print")
	var overrides app.KVList
	flag.Var(&overrides, "set", "world override in key=value form (repeatable)")
	flag.Parse()

	flags := app.Config{Sets: overrides}
	base := cellular.FromMap(automaton.Infection, flags.Overrides())

	var sets []automaton.Params
	for _, g := range []float64{5, 10, 20, 30, 40} {
		for k1 := 1; k1 <= 4; k1++ {
			for k2 := 1; k2 <= 4; k2++ {
				p := base.Params
				p.Infectivity = g
				p.InfectionResistance = k1
				p.IllnessResistance = k2
				sets = append(sets, p)
			}
		}
	}

	fmt.Printf("Sweeping %d parameter sets on %dx%d for %d steps with %d workers\n",
		len(sets), base.Width, base.Height, *steps, *workers)

	results := cellular.SweepInfection(base, sets, *steps, *workers)

	fmt.Println("\nTop results:")
	shown := 0
	for _, res := range results {
		if res.Err != nil {
			fmt.Printf("  error: %v\n", res.Err)
			continue
		}
		if shown == *top {
			continue
		}
		fmt.Printf("  %s\n", res)
		shown++
	}

	for _, res := range results {
		if res.Err == nil {
			fmt.Printf("\nBest: -set infectivity=%.1f -set infection_resistance=%d -set illness_resistance=%d\n",
				res.Params.Infectivity, res.Params.InfectionResistance, res.Params.IllnessResistance)
			return
		}
	}
}
