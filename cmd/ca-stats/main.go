package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"gridca/internal/app"
	"gridca/internal/automaton"
	_ "gridca/internal/sims/cellular"
	_ "gridca/internal/sims/elementary"
	"gridca/internal/stats"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	steps := flag.Int("steps", 200, "generations to simulate")
	out := flag.String("out", "population.png", "output PNG path")
	width := flag.Int("width", 960, "chart width in pixels")
	height := flag.Int("height", 480, "chart height in pixels")
	flag.Parse()

	sim, err := cfg.Build()
	if err != nil {
		log.Fatal(err)
	}

	var names []string
	if rule, err := automaton.ParseRule(sim.Name()); err == nil {
		names = rule.StateNames()
	}

	history, err := stats.Record(sim, *steps, names)
	if err != nil {
		log.Fatalf("record: %v", err)
	}

	f, err := os.Create(*out)
	if err != nil {
		log.Fatalf("create %s: %v", *out, err)
	}
	title := fmt.Sprintf("%s population (seed %d)", sim.Name(), cfg.Seed)
	if err := history.WritePNG(f, title, *width, *height); err != nil {
		f.Close()
		log.Fatal(err)
	}
	if err := f.Close(); err != nil {
		log.Fatalf("close %s: %v", *out, err)
	}

	last := history.Generations() - 1
	for s, name := range history.Names {
		fmt.Printf("%-10s %d\n", name, history.Series[s][last])
	}
	fmt.Printf("wrote %s (%d generations)\n", *out, last)
}
