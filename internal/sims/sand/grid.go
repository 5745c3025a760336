package sand

import (
	"fmt"

	"sandfall/pkg/core"
)

// neighborOffsets enumerates the Moore neighborhood as (drow, dcol) in the
// fixed order NW, N, NE, W, E, SW, S, SE.
var neighborOffsets = [8][2]int{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}

// Grid owns every particle in a dense row-major arena. Row 0 is the top.
// Pointers returned by the grid address arena slots and stay valid until
// the grid is discarded; after a Swap they address the slot, not the
// particle that used to live there.
type Grid struct {
	rows, cols int
	cells      []Particle

	mats  *MaterialTable
	rng   *core.RNG
	tick  uint64
	debug bool

	edge Particle
}

func newGrid(rows, cols int, mats *MaterialTable, rng *core.RNG, debug bool) *Grid {
	g := &Grid{
		rows:  rows,
		cols:  cols,
		cells: make([]Particle, rows*cols),
		mats:  mats,
		rng:   rng,
		debug: debug,
	}
	g.reset()
	return g
}

func (g *Grid) reset() {
	g.tick = 0
	for r := 0; r < g.rows; r++ {
		for c := 0; c < g.cols; c++ {
			g.cells[r*g.cols+c] = g.newParticle(Empty, r, c)
		}
	}
}

// Rows returns the grid height.
func (g *Grid) Rows() int { return g.rows }

// Cols returns the grid width.
func (g *Grid) Cols() int { return g.cols }

// Tick returns the number of the tick in progress or last completed.
func (g *Grid) Tick() uint64 { return g.tick }

// InBounds reports whether (row, col) addresses a cell.
func (g *Grid) InBounds(row, col int) bool {
	return row >= 0 && col >= 0 && row < g.rows && col < g.cols
}

// Get returns the particle at (row, col). Outside the grid it returns a
// boundary sentinel with infinite density that can never be displaced or
// written.
func (g *Grid) Get(row, col int) *Particle {
	if !g.InBounds(row, col) {
		g.edge = Particle{Kind: boundary, Row: row, Col: col, flame: -1, mat: &boundaryMaterial}
		return &g.edge
	}
	return &g.cells[row*g.cols+col]
}

// Set writes p into the cell at its recorded position, replacing whatever
// was there. The material is rebound from p.Kind so the value can never
// disagree with the table.
func (g *Grid) Set(p Particle) {
	if !g.InBounds(p.Row, p.Col) {
		return
	}
	if !g.invariant(p.Kind.Valid(), "set kind %v at (%d,%d)", p.Kind, p.Row, p.Col) {
		p = g.newParticle(Empty, p.Row, p.Col)
	}
	if p.mat == nil {
		p.flame = -1
	}
	p.mat = g.mats.Get(p.Kind)
	if p.OnFire {
		p.Ignite()
	}
	g.cells[p.Row*g.cols+p.Col] = p
}

// SetNewKind destroys p and constructs a fresh particle of kind k with the
// kind's defaults in the same cell. The new particle counts as processed
// for the current tick so a transition cannot cascade.
func (g *Grid) SetNewKind(p *Particle, k Kind) *Particle {
	if !g.owns(p) {
		g.invariant(p != nil && p.IsBoundary(), "set new kind on foreign particle")
		return p
	}
	if !g.invariant(k.Valid(), "set new kind %v at (%d,%d)", k, p.Row, p.Col) {
		k = Empty
	}
	*p = g.newParticle(k, p.Row, p.Col)
	return p
}

// Clear replaces p with Empty.
func (g *Grid) Clear(p *Particle) {
	g.SetNewKind(p, Empty)
}

// Swap exchanges the contents of the cells holding a and b and keeps both
// positions consistent. It returns the slot that now holds a's particle.
func (g *Grid) Swap(a, b *Particle) *Particle {
	if a == b || b.IsBoundary() {
		return a
	}
	if !g.invariant(g.owns(a) && g.owns(b), "swap of foreign particle") {
		return a
	}
	ar, ac := a.Row, a.Col
	br, bc := b.Row, b.Col
	*a, *b = *b, *a
	a.Row, a.Col = ar, ac
	b.Row, b.Col = br, bc
	return b
}

// Adjacent returns the Moore neighborhood of p in NW, N, NE, W, E, SW, S, SE
// order. Open cells are Empty particles and cells past the edge are the
// boundary sentinel. All boundary entries share the grid's single sentinel,
// so their Row and Col are those of the last out-of-range lookup.
func (g *Grid) Adjacent(p *Particle) [8]*Particle {
	var out [8]*Particle
	for i, off := range neighborOffsets {
		r, c := p.Row+off[0], p.Col+off[1]
		if !g.InBounds(r, c) {
			out[i] = g.Get(r, c)
			continue
		}
		out[i] = &g.cells[r*g.cols+c]
	}
	return out
}

// Modified reports whether p has already been processed this tick.
func (g *Grid) Modified(p *Particle) bool {
	return p.stamp == g.tick
}

func (g *Grid) owns(p *Particle) bool {
	if p == nil || !g.InBounds(p.Row, p.Col) {
		return false
	}
	return &g.cells[p.Row*g.cols+p.Col] == p
}

func (g *Grid) newParticle(k Kind, row, col int) Particle {
	m := g.mats.Get(k)
	p := Particle{
		Kind:        k,
		Row:         row,
		Col:         col,
		Lifetime:    m.Lifetime,
		LimitedLife: m.LimitedLife,
		flame:       -1,
		stamp:       g.tick,
		mat:         m,
	}
	if k == Empty {
		return p
	}
	if m.LifetimeJitter > 0 {
		p.Lifetime += g.rng.IntN(m.LifetimeJitter + 1)
	}
	if n := len(m.shades); n > 1 {
		p.shade = uint8(g.rng.IntN(n))
	}
	if m.Class == ClassMovableSolid {
		p.FallingThroughAir = true
	}
	if m.HardenMin > 0 || m.HardenJitter > 0 {
		p.MeltsToHarden = m.HardenMin + g.rng.IntN(m.HardenJitter+1)
	}
	if m.OnFire {
		p.Ignite()
	}
	return p
}

// invariant reports ok. A violation panics in debug builds and is otherwise
// absorbed so the caller can clamp.
func (g *Grid) invariant(ok bool, format string, args ...any) bool {
	if ok {
		return true
	}
	if g.debug {
		panic(fmt.Sprintf("sand: "+format, args...))
	}
	return false
}
