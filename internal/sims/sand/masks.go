package sand

import "image/color"

// HeatMask reports per-cell heat in [0,1]: 1 for burning particles, half
// for radiating ones such as lava, 0 elsewhere. dst is reused when it has
// the right length.
func (w *World) HeatMask(dst []float32) []float32 {
	dst = resize(dst, len(w.grid.cells))
	for i := range w.grid.cells {
		p := &w.grid.cells[i]
		switch {
		case p.OnFire:
			dst[i] = 1
		case p.mat.EmitsHeat:
			dst[i] = 0.5
		default:
			dst[i] = 0
		}
	}
	return dst
}

// DecayMask reports how far each limited-life particle is through its
// countdown, from 0 when fresh to 1 when about to expire.
func (w *World) DecayMask(dst []float32) []float32 {
	dst = resize(dst, len(w.grid.cells))
	for i := range w.grid.cells {
		p := &w.grid.cells[i]
		dst[i] = 0
		if !p.LimitedLife {
			continue
		}
		full := p.mat.Lifetime + p.mat.LifetimeJitter
		if full < 1 {
			dst[i] = 1
			continue
		}
		left := float32(p.Lifetime) / float32(full)
		if left > 1 {
			left = 1
		}
		if left < 0 {
			left = 0
		}
		dst[i] = 1 - left
	}
	return dst
}

// Swatch returns the first color of the named material.
func (w *World) Swatch(name string) color.RGBA {
	k, ok := ParseKind(name)
	if !ok {
		return color.RGBA{}
	}
	shades := w.cfg.Materials.Get(k).Shades()
	if len(shades) == 0 {
		return color.RGBA{}
	}
	return shades[0]
}

func resize(buf []float32, n int) []float32 {
	if len(buf) == n {
		return buf
	}
	return make([]float32, n)
}
