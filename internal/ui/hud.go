//go:build ebiten

package ui

import (
	"image"
	"image/color"
	"strings"

	"sandfall/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

type swatchProvider interface {
	Swatch(name string) color.RGBA
}

var (
	panelColor = color.RGBA{R: 16, G: 16, B: 20, A: 255}
	textColor  = color.RGBA{R: 220, G: 220, B: 230, A: 255}
	dimColor   = color.RGBA{R: 150, G: 150, B: 160, A: 255}
)

// HUD renders the side panel: the material picker for the paint tool and
// +/- steppers for the simulation's tunables.
type HUD struct {
	sim    core.Sim
	width  int
	panel  *ebiten.Image
	pixel  *ebiten.Image
	title  string
	offset int

	picker   picker
	swatches []color.RGBA
	steppers []stepper
	setter   core.FloatParameterSetter

	paramsTop int
}

// NewHUD constructs a HUD for the simulation and panel width.
func NewHUD(sim core.Sim, width int) *HUD {
	h := &HUD{sim: sim, width: max(width, 0), title: buildTitle(sim)}
	h.pixel = ebiten.NewImage(1, 1)
	h.pixel.Fill(color.White)

	top := panelPadding + headerBaseline + sectionGap
	if tool, ok := sim.(core.Tool); ok {
		h.picker.names = tool.Materials()
		h.swatches = make([]color.RGBA, len(h.picker.names))
		if sp, ok := sim.(swatchProvider); ok {
			for i, name := range h.picker.names {
				h.swatches[i] = sp.Swatch(name)
			}
		}
		top = h.picker.layout(top, h.width) + sectionGap
	}
	h.paramsTop = top
	if provider, ok := sim.(core.ParameterControlsProvider); ok {
		h.steppers = newSteppers(provider.ParameterControls())
		layoutSteppers(h.steppers, top, h.width)
	}
	if setter, ok := sim.(core.FloatParameterSetter); ok {
		h.setter = setter
	}
	return h
}

func buildTitle(sim core.Sim) string {
	if sim == nil || sim.Name() == "" {
		return "Controls"
	}
	name := sim.Name()
	return strings.ToUpper(name[:1]) + name[1:]
}

// Selected returns the material the paint tool places.
func (h *HUD) Selected() string {
	if h == nil {
		return ""
	}
	return h.picker.Selected()
}

// Cycle moves the material selection.
func (h *HUD) Cycle(dir int) {
	if h != nil {
		h.picker.Cycle(dir)
	}
}

// Contains reports whether a screen x coordinate lies on the panel.
func (h *HUD) Contains(x int) bool {
	return h != nil && h.width > 0 && x >= h.offset
}

// Update refreshes parameter values and handles clicks on the panel.
func (h *HUD) Update(offsetX int) {
	if h == nil {
		return
	}
	h.offset = offsetX
	if provider, ok := h.sim.(core.ParameterProvider); ok {
		snap := provider.Parameters()
		for i := range h.steppers {
			h.steppers[i].refresh(snap)
		}
	}
	if !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return
	}
	mx, my := ebiten.CursorPosition()
	if !h.Contains(mx) {
		return
	}
	px := mx - h.offset
	if h.picker.pick(px, my) {
		return
	}
	for i := range h.steppers {
		s := &h.steppers[i]
		switch pt := image.Pt(px, my); {
		case pt.In(s.minus):
			h.adjust(s, -1)
			return
		case pt.In(s.plus):
			h.adjust(s, 1)
			return
		}
	}
}

func (h *HUD) adjust(s *stepper, dir int) {
	if h.setter == nil {
		return
	}
	v, ok := s.target(dir)
	if !ok {
		return
	}
	if h.setter.SetFloatParameter(s.control.Key, v) {
		s.value = v
		s.text = formatValue(s.control, v)
	}
}

// Draw paints the panel at offsetX.
func (h *HUD) Draw(screen *ebiten.Image, offsetX int, scale int) {
	if h == nil || h.width <= 0 {
		return
	}
	height := h.sim.Size().H * max(scale, 1)
	if height <= 0 {
		return
	}
	if h.panel == nil || h.panel.Bounds().Dy() != height {
		h.panel = ebiten.NewImage(h.width, height)
	}
	h.panel.Fill(panelColor)

	face := basicfont.Face7x13
	text.Draw(h.panel, h.title, face, panelPadding, panelPadding+headerBaseline, textColor)
	h.drawPicker()
	if len(h.steppers) == 0 {
		text.Draw(h.panel, "No adjustable parameters", face, panelPadding, h.paramsTop+labelBaseline, dimColor)
	}
	for i := range h.steppers {
		h.drawStepper(&h.steppers[i])
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(offsetX), 0)
	screen.DrawImage(h.panel, op)
}

func (h *HUD) drawPicker() {
	for i, r := range h.picker.rects {
		if i == h.picker.selected {
			h.fillRect(r.Inset(-2), textColor)
		}
		h.fillRect(r, h.swatches[i])
	}
	if name := h.picker.Selected(); name != "" {
		text.Draw(h.panel, "paint: "+name, basicfont.Face7x13, panelPadding+80, panelPadding+headerBaseline, dimColor)
	}
}

func (h *HUD) drawStepper(s *stepper) {
	face := basicfont.Face7x13
	y := s.top + labelBaseline
	text.Draw(h.panel, s.control.Label, face, panelPadding, y, textColor)

	col := textColor
	if !s.ok {
		col = dimColor
	}
	w := text.BoundString(face, s.text).Dx()
	text.Draw(h.panel, s.text, face, s.minus.Min.X-buttonGap-w, y, col)

	_, canDown := s.target(-1)
	_, canUp := s.target(1)
	h.drawButton(s.minus, "-", canDown && h.setter != nil)
	h.drawButton(s.plus, "+", canUp && h.setter != nil)
}

func (h *HUD) drawButton(r image.Rectangle, label string, enabled bool) {
	bg := color.RGBA{R: 54, G: 56, B: 64, A: 255}
	fg := color.RGBA{R: 230, G: 230, B: 240, A: 255}
	if !enabled {
		bg = color.RGBA{R: 32, G: 34, B: 40, A: 255}
		fg = color.RGBA{R: 120, G: 120, B: 130, A: 255}
	}
	h.fillRect(r, bg)
	face := basicfont.Face7x13
	b := text.BoundString(face, label)
	x := r.Min.X + (r.Dx()-b.Dx())/2
	y := r.Min.Y + (r.Dy()-b.Dy())/2 + b.Dy()
	text.Draw(h.panel, label, face, x, y, fg)
}

func (h *HUD) fillRect(r image.Rectangle, c color.RGBA) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(r.Dx()), float64(r.Dy()))
	op.GeoM.Translate(float64(r.Min.X), float64(r.Min.Y))
	op.ColorScale.ScaleWithColor(c)
	h.panel.DrawImage(h.pixel, op)
}
