package sand

// Census counts the particles of each kind on the grid.
type Census struct {
	Tick     uint64
	Counts   [kindCount]int
	Burning  int
	Decaying int
}

// Count returns the population of kind k.
func (c Census) Count(k Kind) int {
	if !k.Valid() {
		return 0
	}
	return c.Counts[k]
}

// Occupied returns the number of non-empty cells.
func (c Census) Occupied() int {
	n := 0
	for k, v := range c.Counts {
		if Kind(k) != Empty {
			n += v
		}
	}
	return n
}

// Census walks the grid and tallies every cell.
func (w *World) Census() Census {
	c := Census{Tick: w.grid.tick}
	for i := range w.grid.cells {
		p := &w.grid.cells[i]
		c.Counts[p.Kind]++
		if p.OnFire {
			c.Burning++
		}
		if p.LimitedLife && !p.OnFire && p.mat.Class != ClassGas {
			c.Decaying++
		}
	}
	return c
}
