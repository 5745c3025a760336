package sand

import (
	"math"

	"sandfall/pkg/core"
)

// resolver turns accumulated velocity into cell displacement for movable
// particles. It only ever touches the grid through Swap.
type resolver struct {
	g       *Grid
	rng     *core.RNG
	damping float64
}

// resolve integrates p's velocity and moves it up to the resulting number
// of cells. It returns the slot p ends up in.
func (r *resolver) resolve(p *Particle) *Particle {
	m := p.mat
	if !m.Movable() {
		return p
	}
	p.Velocity += m.Acceleration
	if math.Abs(p.Velocity) > m.MaxSpeed {
		p.Velocity = math.Copysign(m.MaxSpeed, p.Velocity)
	}

	steps := r.stepCount(p.Velocity)
	for i := 0; i < steps && p.Velocity != 0; i++ {
		var moved bool
		p, moved = r.step(p)
		if !moved {
			break
		}
	}
	return p
}

// stepCount returns floor(|v|) plus one more step with probability equal
// to the fractional part, so slow particles keep their average speed.
func (r *resolver) stepCount(v float64) int {
	abs := math.Abs(v)
	whole := math.Floor(abs)
	n := int(whole)
	if frac := abs - whole; frac > 0 && r.rng.Float64() < frac {
		n++
	}
	return n
}

func (r *resolver) step(p *Particle) (*Particle, bool) {
	delta := 1
	if p.Velocity < 0 {
		delta = -1
	}
	bias := r.rng.Sign()
	switch {
	case p.mat.Dispersion > 0:
		return r.stepDispersive(p, delta, bias)
	case p.mat.Class == ClassMovableSolid:
		return r.stepSolid(p, delta, bias)
	default:
		return r.stepFluid(p, delta, bias)
	}
}

// stepFluid handles gases and non-dispersive liquids: direct, then both
// diagonals, then both sides. Any move off the direct line is damped.
func (r *resolver) stepFluid(p *Particle, delta, bias int) (*Particle, bool) {
	row := p.Row + delta
	if t := r.g.Get(row, p.Col); lighter(t, p) {
		return r.g.Swap(p, t), true
	}
	for _, dc := range [2]int{-bias, bias} {
		if t := r.g.Get(row, p.Col+dc); lighter(t, p) {
			p = r.g.Swap(p, t)
			r.damp(p, delta)
			return p, true
		}
	}
	if p.mat.MovesSideways() {
		for _, dc := range [2]int{-bias, bias} {
			if t := r.g.Get(p.Row, p.Col+dc); lighter(t, p) {
				p = r.g.Swap(p, t)
				r.damp(p, delta)
				return p, true
			}
		}
	}
	p.Velocity = 0
	return p, false
}

// stepSolid moves a movable solid. Only free-falling solids may slide
// diagonally, friction can bring a blocked one to rest, and a falling solid
// knocks loose the solids beside it.
func (r *resolver) stepSolid(p *Particle, delta, bias int) (*Particle, bool) {
	row := p.Row + delta
	if t := r.g.Get(row, p.Col); lighter(t, p) {
		p = r.g.Swap(p, t)
		p.FallingThroughAir = true
		r.wakeBeside(p)
		return p, true
	}
	if !p.FallingThroughAir || r.rng.Chance(p.mat.Friction) {
		p.FallingThroughAir = false
		p.Velocity = 0
		return p, false
	}
	for _, dc := range [2]int{-bias, bias} {
		if t := r.g.Get(row, p.Col+dc); lighter(t, p) {
			p = r.g.Swap(p, t)
			r.damp(p, delta)
			r.wakeBeside(p)
			return p, true
		}
	}
	p.FallingThroughAir = false
	p.Velocity = 0
	return p, false
}

// stepDispersive moves liquids that spread: when the direct cell is
// blocked they scan up to Dispersion cells along the diagonal row and then
// sideways for the farthest lighter cell before an obstacle.
func (r *resolver) stepDispersive(p *Particle, delta, bias int) (*Particle, bool) {
	row := p.Row + delta
	if t := r.g.Get(row, p.Col); lighter(t, p) {
		p = r.g.Swap(p, t)
		r.undermine(p)
		return p, true
	}
	for _, scanRow := range [2]int{row, p.Row} {
		for _, dir := range [2]int{-bias, bias} {
			if t := r.scan(p, scanRow, dir); t != nil {
				p = r.g.Swap(p, t)
				r.undermine(p)
				return p, true
			}
		}
	}
	p.Velocity = 0
	return p, false
}

// scan walks from p's column along row in direction dir. Movable solids it
// meets are destabilized; the walk stops at the first occupant that is
// neither empty nor liquid.
func (r *resolver) scan(p *Particle, row, dir int) *Particle {
	var target *Particle
	for i := 1; i <= p.mat.Dispersion; i++ {
		c := r.g.Get(row, p.Col+dir*i)
		if c.IsBoundary() {
			break
		}
		if lighter(c, p) {
			target = c
		}
		if c.IsEmpty() || c.mat.Class == ClassLiquid {
			continue
		}
		if c.mat.Class == ClassMovableSolid {
			c.FallingThroughAir = true
		}
		break
	}
	return target
}

// undermine marks movable solids beside a flowing liquid as falling so a
// pile resting on the liquid collapses into the gap.
func (r *resolver) undermine(p *Particle) {
	for _, dc := range [2]int{-1, 1} {
		if n := r.g.Get(p.Row, p.Col+dc); n.mat.Class == ClassMovableSolid {
			n.FallingThroughAir = true
		}
	}
}

// wakeBeside knocks resting solids beside p into free fall unless their
// inertial resistance holds them.
func (r *resolver) wakeBeside(p *Particle) {
	for _, dc := range [2]int{-1, 1} {
		n := r.g.Get(p.Row, p.Col+dc)
		if n.mat.Class != ClassMovableSolid || n.FallingThroughAir {
			continue
		}
		if r.rng.Chance(1 - n.mat.InertialResistance) {
			n.FallingThroughAir = true
		}
	}
}

// damp takes the lateral energy loss off a velocity moving along delta,
// stopping at zero rather than reversing.
func (r *resolver) damp(p *Particle, delta int) {
	v := p.Velocity - r.damping*float64(delta)
	if (v > 0) != (p.Velocity > 0) {
		v = 0
	}
	p.Velocity = v
}

// lighter reports whether mover may displace target.
func lighter(target, mover *Particle) bool {
	return target.mat.Density < mover.mat.Density
}
