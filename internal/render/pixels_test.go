package render

import (
	"image/color"
	"testing"
)

func TestFillPaletteRGBA(t *testing.T) {
	palette := []color.RGBA{{R: 1, G: 2, B: 3, A: 255}, {R: 9, G: 8, B: 7, A: 255}}
	cells := []uint8{0, 1, 200}
	buf := make([]byte, 4*len(cells))
	fillPaletteRGBA(buf, cells, palette)

	want := []byte{1, 2, 3, 255, 9, 8, 7, 255, 9, 8, 7, 255}
	for i := range want {
		if buf[i] != want[i] {
			t.Fatalf("buf[%d] = %d, want %d", i, buf[i], want[i])
		}
	}

	fillPaletteRGBA(buf, cells, nil)
	for i, b := range buf {
		if b != 0 {
			t.Fatalf("empty palette left buf[%d] = %d", i, b)
		}
	}
}

func TestFillMaskRGBA(t *testing.T) {
	tint := color.RGBA{R: 255, G: 120, B: 40}
	buf := make([]byte, 12)
	for i := range buf {
		buf[i] = 0xff
	}
	fillMaskRGBA(buf, []float32{0, 0.5, 2}, tint, 200)

	if buf[3] != 0 || buf[0] != 0 {
		t.Fatal("cold cells must be transparent")
	}
	if buf[4] != 255 || buf[7] != 100 {
		t.Fatalf("half intensity got rgba %v", buf[4:8])
	}
	if buf[11] != 200 {
		t.Fatalf("intensity is clamped to 1, alpha %d", buf[11])
	}
}
