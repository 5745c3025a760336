package app

import "sandfall/internal/core"

const maxBrush = 12

// cellAt maps a cursor position in screen pixels to a grid cell.
func cellAt(mx, my, scale int, size core.Size) (x, y int, ok bool) {
	if scale <= 0 || mx < 0 || my < 0 {
		return 0, 0, false
	}
	x, y = mx/scale, my/scale
	if x >= size.W || y >= size.H {
		return 0, 0, false
	}
	return x, y, true
}

// nextBrush applies a wheel delta to the brush radius.
func nextBrush(brush int, wheel float64) int {
	switch {
	case wheel > 0:
		brush++
	case wheel < 0:
		brush--
	}
	return min(max(brush, 0), maxBrush)
}
