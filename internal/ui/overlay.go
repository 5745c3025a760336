//go:build ebiten

package ui

import (
	"image/color"

	"sandfall/internal/core"
	"sandfall/internal/render"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

type maskProvider interface {
	HeatMask(dst []float32) []float32
	DecayMask(dst []float32) []float32
}

// Overlay draws optional diagnostic layers over the grid: key 1 toggles
// heat, key 2 toggles lifetime decay.
type Overlay struct {
	sim       core.Sim
	scale     int
	showHeat  bool
	showDecay bool

	painter *render.GridPainter
	mask    []float32
}

// NewOverlay constructs an overlay for sim drawn at the given scale.
func NewOverlay(sim core.Sim, scale int) *Overlay {
	size := sim.Size()
	return &Overlay{
		sim:     sim,
		scale:   scale,
		painter: render.NewGridPainter(size.W, size.H),
	}
}

// Update toggles layers from the keyboard.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit1) {
		o.showHeat = !o.showHeat
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit2) {
		o.showDecay = !o.showDecay
	}
}

// Draw renders the enabled layers onto screen.
func (o *Overlay) Draw(screen *ebiten.Image) {
	provider, ok := o.sim.(maskProvider)
	if !ok {
		return
	}
	if o.showHeat {
		o.mask = provider.HeatMask(o.mask)
		o.painter.BlitMask(screen, o.mask, color.RGBA{R: 255, G: 120, B: 40}, 170, o.scale)
	}
	if o.showDecay {
		o.mask = provider.DecayMask(o.mask)
		o.painter.BlitMask(screen, o.mask, color.RGBA{R: 140, G: 90, B: 200}, 150, o.scale)
	}
}
