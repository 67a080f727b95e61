//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log"

	"gridca/internal/app"
	_ "gridca/internal/sims/cellular"
	_ "gridca/internal/sims/elementary"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	sim, err := cfg.Build()
	if err != nil {
		log.Fatal(err)
	}

	game := app.New(sim, cfg)
	size := sim.Size()

	ebiten.SetWindowTitle("gridca - " + sim.Name())
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowSize(size.W*cfg.Scale+game.HUDWidth(), size.H*cfg.Scale)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
