package ui

import (
	"image"
	"math"
	"strconv"

	"sandfall/internal/core"
)

const (
	panelPadding   = 12
	lineHeight     = 30
	buttonSize     = 20
	buttonGap      = 6
	headerBaseline = 18
	labelBaseline  = 20
	sectionGap     = 18
	swatchSize     = 22
	swatchGap      = 6
)

// stepper is one +/- control bound to a simulation parameter.
type stepper struct {
	control core.ParameterControl
	value   float64
	text    string
	ok      bool

	top         int
	minus, plus image.Rectangle
}

func newSteppers(controls []core.ParameterControl) []stepper {
	out := make([]stepper, len(controls))
	for i, c := range controls {
		out[i] = stepper{control: c, text: "--"}
	}
	return out
}

// refresh reloads the displayed value from a parameter snapshot.
func (s *stepper) refresh(snap core.ParameterSnapshot) {
	s.ok = false
	s.text = "--"
	p, found := snap.Lookup(s.control.Key)
	if !found {
		return
	}
	v, err := strconv.ParseFloat(p.Value, 64)
	if err != nil {
		return
	}
	switch s.control.Type {
	case core.ParamTypeInt:
		s.value = math.Round(v)
	case core.ParamTypeFloat:
		s.value = v
	default:
		return
	}
	s.ok = true
	s.text = formatValue(s.control, s.value)
}

func (s *stepper) increment() float64 {
	step := s.control.Step
	if s.control.Type == core.ParamTypeInt {
		return math.Max(1, math.Round(step))
	}
	if step <= 0 {
		step = 0.05
	}
	return step
}

// target returns the value one step in direction dir, clamped to the
// control's bounds, and whether it differs from the current value.
func (s *stepper) target(dir int) (float64, bool) {
	if !s.ok || dir == 0 {
		return s.value, false
	}
	v := s.value + float64(dir)*s.increment()
	if s.control.HasMin && v < s.control.Min {
		v = s.control.Min
	}
	if s.control.HasMax && v > s.control.Max {
		v = s.control.Max
	}
	return v, math.Abs(v-s.value) > 1e-9
}

func formatValue(ctrl core.ParameterControl, v float64) string {
	if ctrl.Type == core.ParamTypeInt {
		return strconv.Itoa(int(v))
	}
	precision := 1
	switch step := ctrl.Step; {
	case step <= 0:
		precision = 2
	case step < 0.001:
		precision = 4
	case step < 0.01:
		precision = 3
	case step < 0.1:
		precision = 2
	}
	return strconv.FormatFloat(v, 'f', precision, 64)
}

// layoutSteppers stacks the steppers from top down inside a panel of the
// given width and returns the y just below the last one.
func layoutSteppers(steppers []stepper, top, width int) int {
	for i := range steppers {
		rowTop := top + i*lineHeight
		y := rowTop + (lineHeight-buttonSize)/2
		plus := image.Rect(width-panelPadding-buttonSize, y, width-panelPadding, y+buttonSize)
		minus := image.Rect(plus.Min.X-buttonGap-buttonSize, y, plus.Min.X-buttonGap, y+buttonSize)
		steppers[i].top = rowTop
		steppers[i].minus = minus
		steppers[i].plus = plus
	}
	return top + len(steppers)*lineHeight
}

// picker is the material palette: a grid of swatches with one selected.
type picker struct {
	names    []string
	selected int
	rects    []image.Rectangle
}

// Selected returns the selected material, or "" when there is none.
func (p *picker) Selected() string {
	if len(p.names) == 0 {
		return ""
	}
	return p.names[p.selected]
}

// Cycle moves the selection by dir, wrapping at both ends.
func (p *picker) Cycle(dir int) {
	n := len(p.names)
	if n == 0 {
		return
	}
	p.selected = ((p.selected+dir)%n + n) % n
}

// layout places the swatches in rows starting at top and returns the y just
// below the last row.
func (p *picker) layout(top, width int) int {
	perRow := max(1, (width-2*panelPadding+swatchGap)/(swatchSize+swatchGap))
	p.rects = make([]image.Rectangle, len(p.names))
	for i := range p.names {
		x := panelPadding + (i%perRow)*(swatchSize+swatchGap)
		y := top + (i/perRow)*(swatchSize+swatchGap)
		p.rects[i] = image.Rect(x, y, x+swatchSize, y+swatchSize)
	}
	rows := (len(p.names) + perRow - 1) / perRow
	return top + rows*(swatchSize+swatchGap)
}

// pick selects the swatch under (x, y) in panel coordinates.
func (p *picker) pick(x, y int) bool {
	for i, r := range p.rects {
		if image.Pt(x, y).In(r) {
			p.selected = i
			return true
		}
	}
	return false
}
