package sand

import "image/color"

// Display values index the palette: kind*maxShades+shade for ordinary
// particles, fireBase+flame once a burning particle has flickered.
const fireBase = int(kindCount) * maxShades

// Palette exposes the colors addressed by Cells.
func (w *World) Palette() []color.RGBA { return w.palette }

func buildPalette(cfg *Config) []color.RGBA {
	palette := make([]color.RGBA, fireBase+maxShades)
	for _, k := range Kinds() {
		shades := cfg.Materials.Get(k).Shades()
		for s := 0; s < maxShades; s++ {
			if len(shades) == 0 {
				continue
			}
			palette[int(k)*maxShades+s] = shades[s%len(shades)]
		}
	}
	for i := 0; i < maxShades; i++ {
		if len(cfg.fire) == 0 {
			break
		}
		palette[fireBase+i] = cfg.fire[i%len(cfg.fire)]
	}
	return palette
}

func (w *World) encode(p *Particle) uint8 {
	if p.OnFire && p.flame >= 0 {
		return uint8(fireBase + int(p.flame))
	}
	return uint8(int(p.Kind)*maxShades + int(p.shade))
}

func (w *World) refresh() {
	cells := w.grid.cells
	out := w.display.Cells()
	for i := range cells {
		out[i] = w.encode(&cells[i])
	}
}
