package render

import "image/color"

// fillPaletteRGBA converts cell values into RGBA pixels using a palette.
// Values past the end of the palette use its last entry; an empty palette
// clears the buffer to transparent black.
func fillPaletteRGBA(buf []byte, cells []uint8, palette []color.RGBA) {
	if len(palette) == 0 {
		clear(buf[:4*len(cells)])
		return
	}
	last := len(palette) - 1
	for i, c := range cells {
		col := palette[min(int(c), last)]
		base := i * 4
		buf[base+0] = col.R
		buf[base+1] = col.G
		buf[base+2] = col.B
		buf[base+3] = col.A
	}
}

// fillMaskRGBA tints buf by a [0,1] intensity mask. Alpha follows the
// intensity so cold cells stay fully transparent.
func fillMaskRGBA(buf []byte, mask []float32, tint color.RGBA, maxAlpha uint8) {
	for i, v := range mask {
		base := i * 4
		if v <= 0 {
			clear(buf[base : base+4])
			continue
		}
		if v > 1 {
			v = 1
		}
		buf[base+0] = tint.R
		buf[base+1] = tint.G
		buf[base+2] = tint.B
		buf[base+3] = uint8(float32(maxAlpha)*v + 0.5)
	}
}
