package sand

import (
	"image/color"
	"log/slog"

	"sandfall/internal/core"
	rng "sandfall/pkg/core"
)

// World drives the falling-sand grid one tick at a time.
type World struct {
	cfg Config

	rng      *rng.RNG
	grid     *Grid
	resolver resolver
	rules    ruleEngine
	life     lifecycle

	display     *core.ByteGrid
	palette     []color.RGBA
	leftToRight bool
}

// New returns a sand world with the provided dimensions using defaults.
func New(w, h int) *World {
	cfg := DefaultConfig()
	cfg.Width = w
	cfg.Height = h
	return NewWithConfig(cfg)
}

// NewWithConfig returns a sand world built from cfg. An invalid config is
// logged and replaced by the embedded defaults.
func NewWithConfig(cfg Config) *World {
	if err := cfg.Validate(); err != nil {
		slog.Warn("sand: falling back to default config", "err", err)
		cfg = DefaultConfig()
	}
	w := &World{cfg: cfg, rng: rng.NewRNG(cfg.Seed)}
	w.grid = newGrid(cfg.Height, cfg.Width, &w.cfg.Materials, w.rng, cfg.Debug)
	w.resolver = resolver{g: w.grid, rng: w.rng, damping: cfg.Params.DiagonalDamping}
	w.rules = ruleEngine{g: w.grid, rng: w.rng, params: &w.cfg.Params}
	w.life = lifecycle{g: w.grid, rng: w.rng, params: &w.cfg.Params, flames: len(w.cfg.fire)}
	w.display = core.NewByteGrid(cfg.Width, cfg.Height)
	w.palette = buildPalette(&w.cfg)
	w.refresh()
	return w
}

// Name returns the simulation identifier.
func (w *World) Name() string { return "sand" }

// Size reports the grid dimensions.
func (w *World) Size() core.Size { return core.Size{W: w.grid.cols, H: w.grid.rows} }

// Cells exposes the palette-indexed display buffer.
func (w *World) Cells() []uint8 { return w.display.Cells() }

// Grid exposes the particle grid.
func (w *World) Grid() *Grid { return w.grid }

// Tick returns the number of completed ticks since the last reset.
func (w *World) Tick() uint64 { return w.grid.tick }

// Config returns a copy of the active configuration.
func (w *World) Config() Config { return w.cfg }

// Reset clears the grid, reseeds the world stream and lays out the
// configured scene. A zero seed reuses the configured one.
func (w *World) Reset(seed int64) {
	if seed == 0 {
		seed = w.cfg.Seed
	}
	w.rng.Reseed(seed)
	w.grid.reset()
	w.leftToRight = false
	if build, ok := scenes[w.cfg.Scene]; ok {
		build(w)
	}
	w.refresh()
}

// Step advances the world by one tick. Rows are visited bottom to top and
// the column direction alternates every tick; particles already processed
// this tick are skipped.
func (w *World) Step() {
	g := w.grid
	g.tick++
	w.leftToRight = !w.leftToRight
	for row := g.rows - 1; row >= 0; row-- {
		for i := 0; i < g.cols; i++ {
			col := i
			if !w.leftToRight {
				col = g.cols - 1 - i
			}
			p := &g.cells[row*g.cols+col]
			if p.Kind == Empty || g.Modified(p) {
				continue
			}
			w.update(p)
		}
	}
	w.refresh()
}

func (w *World) update(p *Particle) {
	p.stamp = w.grid.tick
	p = w.resolver.resolve(p)
	if !w.rules.apply(p) {
		return
	}
	w.life.apply(p)
}

// Spawn places a fresh particle of kind k at (row, col). Occupied cells are
// only replaced when overwrite is set.
func (w *World) Spawn(k Kind, row, col int, overwrite bool) bool {
	if !k.Valid() || !w.grid.InBounds(row, col) {
		return false
	}
	p := w.grid.Get(row, col)
	if !overwrite && !p.IsEmpty() {
		return false
	}
	w.grid.SetNewKind(p, k)
	w.display.Set(col, row, w.encode(p))
	return true
}

// ClearCell empties (row, col).
func (w *World) ClearCell(row, col int) bool {
	return w.Spawn(Empty, row, col, true)
}

// Paint fills a disc of the given radius centred on (row, col) and returns
// the number of cells written.
func (w *World) Paint(k Kind, row, col, radius int, overwrite bool) int {
	if radius < 0 {
		radius = 0
	}
	n := 0
	for dr := -radius; dr <= radius; dr++ {
		for dc := -radius; dc <= radius; dc++ {
			if dr*dr+dc*dc > radius*radius {
				continue
			}
			if w.Spawn(k, row+dr, col+dc, overwrite) {
				n++
			}
		}
	}
	return n
}

// Materials lists the paintable material names.
func (w *World) Materials() []string {
	kinds := Kinds()
	names := make([]string, 0, len(kinds))
	for _, k := range kinds {
		if k == Empty {
			continue
		}
		names = append(names, k.String())
	}
	return names
}

// PaintNamed paints the named material at grid position (x, y).
func (w *World) PaintNamed(name string, x, y, radius int, overwrite bool) int {
	k, ok := ParseKind(name)
	if !ok {
		return 0
	}
	return w.Paint(k, y, x, radius, overwrite)
}

// Erase clears a disc around grid position (x, y).
func (w *World) Erase(x, y, radius int) int {
	return w.Paint(Empty, y, x, radius, true)
}

// At returns a copy of the particle at (row, col).
func (w *World) At(row, col int) Particle {
	return *w.grid.Get(row, col)
}

// ColorAt returns the display color of (row, col).
func (w *World) ColorAt(row, col int) color.RGBA {
	if !w.grid.InBounds(row, col) {
		return color.RGBA{}
	}
	return w.palette[w.display.At(col, row)]
}

func init() {
	core.Register("sand", func(cfg map[string]string) core.Sim {
		c := FromMap(cfg)
		return NewWithConfig(c)
	})
}
