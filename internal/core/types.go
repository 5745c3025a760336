package core

import (
	"image/color"
	"sort"
)

// Size describes the dimensions of a simulation grid.
type Size struct {
	W int
	H int
}

// Sim defines the minimal contract a simulation must implement to be driven
// by one of the front-ends.
type Sim interface {
	Name() string
	Size() Size
	Reset(seed int64)
	Step()
	Cells() []uint8
}

// PaletteProvider maps the values returned by Sim.Cells to display colors.
type PaletteProvider interface {
	Palette() []color.RGBA
}

// Tool is the input collaborator contract: place a material by name or clear
// a cell. Coordinates are (x, y) in grid cells.
type Tool interface {
	Materials() []string
	PaintNamed(name string, x, y, radius int, overwrite bool) int
	Erase(x, y, radius int) int
}

// Factory constructs a Sim using an optional configuration map.
type Factory func(cfg map[string]string) Sim

var sims = map[string]Factory{}

// Register adds a simulation factory under the provided name.
func Register(name string, f Factory) {
	if name == "" || f == nil {
		return
	}
	sims[name] = f
}

// Sims exposes the registry of available simulation factories.
func Sims() map[string]Factory {
	return sims
}

// Names lists registered simulations in sorted order.
func Names() []string {
	names := make([]string, 0, len(sims))
	for name := range sims {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
