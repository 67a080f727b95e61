package main

import (
	"flag"
	"log"
	"time"

	"gridca/internal/app"
	"gridca/internal/core"
	"gridca/internal/render"
	_ "gridca/internal/sims/cellular"
	_ "gridca/internal/sims/elementary"
	"gridca/internal/ui"

	"github.com/gdamore/tcell/v2"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	frame := flag.Duration("frame", 30*time.Millisecond, "terminal redraw interval")
	flag.Parse()

	sim, err := cfg.Build()
	if err != nil {
		log.Fatal(err)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatalf("creating screen: %v", err)
	}
	if err := screen.Init(); err != nil {
		log.Fatalf("initializing screen: %v", err)
	}
	defer screen.Fini()
	screen.HideCursor()

	events := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	shader := render.ShaderForSim(sim)
	ticker := core.NewFixedStep(cfg.Period)
	frames := time.NewTicker(*frame)
	defer frames.Stop()

	paused := false
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return
			}
			switch ev := ev.(type) {
			case *tcell.EventKey:
				switch {
				case ev.Key() == tcell.KeyEscape, ev.Key() == tcell.KeyCtrlC, ev.Rune() == 'q':
					return
				case ev.Rune() == ' ':
					paused = !paused
				case ev.Rune() == 'n':
					if err := sim.Step(); err != nil {
						screen.Fini()
						log.Fatalf("step: %v", err)
					}
				case ev.Rune() == 'r':
					if err := sim.Reset(cfg.Seed); err != nil {
						screen.Fini()
						log.Fatalf("reset: %v", err)
					}
				}
			case *tcell.EventResize:
				screen.Sync()
			}
		case <-frames.C:
			if !paused && ticker.ShouldStep() {
				if err := sim.Step(); err != nil {
					screen.Fini()
					log.Fatalf("step: %v", err)
				}
			}
			draw(screen, sim, shader, paused)
		}
	}
}

// draw paints every cell as two terminal columns, top grid row first.
func draw(screen tcell.Screen, sim core.Sim, shader render.Shader, paused bool) {
	screen.Clear()
	size := sim.Size()
	cells := sim.Cells()
	levels := levelsOf(sim)
	for i, s := range cells {
		x, y := i%size.W, i/size.W
		row := size.H - 1 - y
		level := 0.0
		if levels != nil {
			level = levels[i]
		}
		c := shader(s, level)
		style := tcell.StyleDefault.Background(tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B)))
		screen.SetContent(2*x, row, ' ', nil, style)
		screen.SetContent(2*x+1, row, ' ', nil, style)
	}

	lines := ui.StatusLines(sim)
	if paused {
		lines = append(lines, "paused")
	}
	for n, line := range lines {
		for col, r := range line {
			screen.SetContent(col, size.H+n, r, nil, tcell.StyleDefault)
		}
	}
	screen.Show()
}

type leveled interface {
	Infections() []float64
}

func levelsOf(sim core.Sim) []float64 {
	if s, ok := sim.(leveled); ok {
		return s.Infections()
	}
	return nil
}
