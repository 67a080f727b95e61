//go:build ebiten

package ui

import (
	"image/color"
	"strconv"

	"gridca/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

const (
	panelPadding = 8
	lineHeight   = 16
)

// HUD renders the status panel to the right of the simulation view. Up/Down
// select a control and Left/Right adjust it.
type HUD struct {
	sim      core.Sim
	width    int
	panel    *ebiten.Image
	controls []core.ParameterControl
	values   map[string]float64
	selected int
	setter   core.FloatParameterSetter
}

// NewHUD constructs a HUD for the provided simulation and panel width.
func NewHUD(sim core.Sim, width int) *HUD {
	if width < 0 {
		width = 0
	}
	h := &HUD{sim: sim, width: width, values: map[string]float64{}}
	if provider, ok := sim.(core.ParameterControlsProvider); ok {
		h.controls = provider.ParameterControls()
	}
	if setter, ok := sim.(core.FloatParameterSetter); ok {
		h.setter = setter
	}
	h.refreshValues()
	return h
}

// Width reports the panel width in pixels.
func (h *HUD) Width() int {
	if h == nil {
		return 0
	}
	return h.width
}

// Update handles HUD keyboard interactions.
func (h *HUD) Update() {
	if h == nil || len(h.controls) == 0 {
		return
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDown) {
		h.selected = (h.selected + 1) % len(h.controls)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyUp) {
		h.selected = (h.selected + len(h.controls) - 1) % len(h.controls)
	}
	direction := 0
	if inpututil.IsKeyJustPressed(ebiten.KeyRight) {
		direction = 1
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyLeft) {
		direction = -1
	}
	if direction != 0 && h.setter != nil {
		ctrl := h.controls[h.selected]
		next := ctrl.Clamp(h.values[ctrl.Key] + float64(direction)*ctrl.Step)
		if h.setter.SetFloatParameter(ctrl.Key, next) {
			h.refreshValues()
		}
	}
}

func (h *HUD) refreshValues() {
	provider, ok := h.sim.(core.ParameterProvider)
	if !ok {
		return
	}
	for _, g := range provider.Parameters().Groups {
		for _, p := range g.Params {
			if p.Type == core.ParamTypeString {
				continue
			}
			if v, err := strconv.ParseFloat(p.Value, 64); err == nil {
				h.values[p.Key] = v
			}
		}
	}
}

// Draw renders the panel at offsetX.
func (h *HUD) Draw(screen *ebiten.Image, offsetX int) {
	if h == nil || h.width == 0 {
		return
	}
	height := screen.Bounds().Dy()
	if h.panel == nil || h.panel.Bounds().Dy() != height {
		h.panel = ebiten.NewImage(h.width, height)
	}
	h.panel.Fill(color.RGBA{R: 16, G: 16, B: 20, A: 255})

	face := basicfont.Face7x13
	y := panelPadding + lineHeight
	for _, line := range StatusLines(h.sim) {
		text.Draw(h.panel, line, face, panelPadding, y, color.RGBA{R: 200, G: 200, B: 210, A: 255})
		y += lineHeight
	}
	if len(h.controls) > 0 {
		y += lineHeight
		text.Draw(h.panel, "[Controls]", face, panelPadding, y, color.RGBA{R: 200, G: 200, B: 210, A: 255})
		y += lineHeight
		for i, ctrl := range h.controls {
			fg := color.RGBA{R: 150, G: 150, B: 160, A: 255}
			prefix := "  "
			if i == h.selected {
				fg = color.RGBA{R: 250, G: 210, B: 90, A: 255}
				prefix = "> "
			}
			line := prefix + ctrl.Label + ": " + formatControl(ctrl, h.values[ctrl.Key])
			text.Draw(h.panel, line, face, panelPadding, y, fg)
			y += lineHeight
		}
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(offsetX), 0)
	screen.DrawImage(h.panel, op)
}
