package sand

import "sandfall/pkg/core"

// lifecycle counts down limited-life particles and retires them when they
// expire. Burning particles also pick a new flame color now and then.
type lifecycle struct {
	g      *Grid
	rng    *core.RNG
	params *Params
	flames int
}

func (l *lifecycle) apply(p *Particle) {
	if p.LimitedLife && p.Lifetime < 1 {
		l.expire(p)
		return
	}
	if p.OnFire && l.flames > 0 && l.rng.Chance(l.params.FlickerChance) {
		p.flame = int8(l.rng.IntN(l.flames))
	}
	if p.LimitedLife {
		p.Lifetime--
	}
}

func (l *lifecycle) expire(p *Particle) {
	m := p.mat
	switch {
	case m.Class == ClassGas:
		l.g.Clear(p)
	case p.Kind == Fire || p.OnFire:
		if l.rng.Chance(l.params.BurnoutSmokeChance) {
			l.g.SetNewKind(p, Smoke)
			return
		}
		l.g.Clear(p)
	case m.DecaysTo != Empty:
		l.g.SetNewKind(p, m.DecaysTo)
	default:
		l.g.Clear(p)
	}
}
