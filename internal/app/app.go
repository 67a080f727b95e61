//go:build ebiten

package app

import (
	"time"

	"gridca/internal/core"
	"gridca/internal/render"
	"gridca/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const hudWidth = 240

// Game adapts a core simulation to the ebiten.Game interface. Generations
// advance on the FixedStep cadence, independent of the frame rate.
type Game struct {
	sim     core.Sim
	painter *render.Painter
	img     *ebiten.Image
	hud     *ui.HUD
	ticker  *core.FixedStep

	scale    int
	paused   bool
	tickOnce bool
	seed     int64
}

// New constructs a Game for the provided simulation.
func New(sim core.Sim, cfg *Config) *Game {
	size := sim.Size()
	return &Game{
		sim:     sim,
		painter: render.NewPainter(size, render.ShaderForSim(sim)),
		img:     ebiten.NewImage(size.W, size.H),
		hud:     ui.NewHUD(sim, hudWidth),
		ticker:  core.NewFixedStep(cfg.Period),
		scale:   cfg.Scale,
		seed:    cfg.Seed,
	}
}

// Reset reinitializes the simulation state with the provided seed.
func (g *Game) Reset(seed int64) error {
	g.seed = seed
	g.tickOnce = false
	return g.sim.Reset(seed)
}

// Update handles per-frame logic and advances the simulation.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.tickOnce = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		if err := g.Reset(g.seed); err != nil {
			return err
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		if err := g.Reset(time.Now().UnixNano()); err != nil {
			return err
		}
	}

	g.hud.Update()

	due := g.ticker.ShouldStep()
	if (!g.paused && due) || g.tickOnce {
		g.tickOnce = false
		return g.sim.Step()
	}
	return nil
}

// Draw renders the current simulation state.
func (g *Game) Draw(screen *ebiten.Image) {
	if g.painter.Paint(g.sim) > 0 {
		g.img.WritePixels(g.painter.Pixels())
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(g.scale), float64(g.scale))
	screen.DrawImage(g.img, op)
	g.hud.Draw(screen, g.sim.Size().W*g.scale)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	s := g.sim.Size()
	return s.W*g.scale + g.hud.Width(), s.H * g.scale
}

// HUDWidth is the width of the parameter panel beside the grid.
func (g *Game) HUDWidth() int { return g.hud.Width() }
