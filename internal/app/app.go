//go:build ebiten

package app

import (
	"image/color"
	"time"

	"sandfall/internal/core"
	"sandfall/internal/render"
	"sandfall/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

var monochrome = []color.RGBA{{A: 255}, {R: 255, G: 255, B: 255, A: 255}}

// Game adapts a core simulation to the ebiten.Game interface. When the
// simulation is also a core.Tool the mouse paints with the material chosen
// on the HUD: left button paints, right button erases, the wheel resizes
// the brush.
type Game struct {
	sim     core.Sim
	tool    core.Tool
	palette []color.RGBA
	painter *render.GridPainter
	overlay *ui.Overlay
	hud     *ui.HUD

	scale    int
	hudWidth int
	brush    int
	paused   bool
	tickOnce bool
	seed     int64
}

// New constructs a Game for the provided simulation.
func New(sim core.Sim, cfg *Config) *Game {
	size := sim.Size()
	g := &Game{
		sim:      sim,
		palette:  monochrome,
		painter:  render.NewGridPainter(size.W, size.H),
		overlay:  ui.NewOverlay(sim, cfg.Scale),
		scale:    max(cfg.Scale, 1),
		hudWidth: max(cfg.HUDWidth, 0),
		brush:    2,
		seed:     cfg.Seed,
	}
	if p, ok := sim.(core.PaletteProvider); ok {
		g.palette = p.Palette()
	}
	if t, ok := sim.(core.Tool); ok {
		g.tool = t
	}
	if g.hudWidth > 0 {
		g.hud = ui.NewHUD(sim, g.hudWidth)
	}
	return g
}

// Reset reinitializes the simulation state with the provided seed.
func (g *Game) Reset(seed int64) {
	g.seed = seed
	g.sim.Reset(seed)
	g.tickOnce = false
}

// Update handles per-frame logic and advances the simulation.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		g.paused = false
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.tickOnce = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.Reset(g.seed)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.Reset(time.Now().UnixNano())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		dir := 1
		if ebiten.IsKeyPressed(ebiten.KeyShift) {
			dir = -1
		}
		g.hud.Cycle(dir)
	}

	g.overlay.Update()
	g.hud.Update(g.gridWidth())
	g.paint()

	if !g.paused || g.tickOnce {
		g.sim.Step()
		g.tickOnce = false
	}
	return nil
}

func (g *Game) paint() {
	_, wheel := ebiten.Wheel()
	g.brush = nextBrush(g.brush, wheel)
	if g.tool == nil {
		return
	}
	mx, my := ebiten.CursorPosition()
	if g.hud.Contains(mx) {
		return
	}
	x, y, ok := cellAt(mx, my, g.scale, g.sim.Size())
	if !ok {
		return
	}
	switch {
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft):
		if name := g.hud.Selected(); name != "" {
			g.tool.PaintNamed(name, x, y, g.brush, false)
		}
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight):
		g.tool.Erase(x, y, g.brush)
	}
}

func (g *Game) gridWidth() int { return g.sim.Size().W * g.scale }

// Draw renders the current simulation state.
func (g *Game) Draw(screen *ebiten.Image) {
	g.painter.Blit(screen, g.sim.Cells(), g.palette, g.scale)
	g.overlay.Draw(screen)
	g.hud.Draw(screen, g.gridWidth(), g.scale)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	s := g.sim.Size()
	w := s.W * g.scale
	if g.hud != nil {
		w += g.hudWidth
	}
	return w, s.H * g.scale
}
