package sand

import "sandfall/pkg/core"

// ruleEngine evaluates the neighbor-triggered material transitions. Each
// stage that replaces the particle ends the evaluation for this tick.
type ruleEngine struct {
	g      *Grid
	rng    *core.RNG
	params *Params
}

// apply runs the rule battery for p and reports whether p is still the
// particle that entered, i.e. it was neither replaced nor cleared.
func (e *ruleEngine) apply(p *Particle) bool {
	m := p.mat
	if m.Flammable || p.OnFire {
		if !e.burn(p) {
			return false
		}
	}
	if p.Kind == Water {
		if !e.wet(p) {
			return false
		}
		e.rust(p)
	}
	if p.Kind == Lava {
		return e.melt(p)
	}
	return true
}

// burn covers extinguishing, ignition and the smoke left behind when a
// burning particle is put out.
func (e *ruleEngine) burn(p *Particle) bool {
	adj := e.g.Adjacent(p)

	extinguished := false
	if p.OnFire {
		for _, n := range adj {
			if !n.ExtinguishesThings() {
				continue
			}
			if n.Kind == Water {
				if e.rng.Chance(e.params.WaterExtinguishChance) {
					e.g.SetNewKind(n, Steam)
					extinguished = true
				}
				continue
			}
			if dry, ok := dryForm[n.Kind]; ok {
				e.g.SetNewKind(n, dry)
				e.g.SetNewKind(p, Steam)
				return false
			}
		}
	}

	if !p.OnFire {
		fires := 0
		for _, n := range adj {
			if n.Burning() {
				fires++
			}
		}
		if fires > 0 && e.rng.Chance(p.mat.ChanceToCatch*float64(fires)) {
			p.Ignite()
		}
	}

	if extinguished && p.OnFire {
		e.g.SetNewKind(p, Smoke)
		return false
	}
	return true
}

// wet soaks one neighboring grain and consumes the water.
func (e *ruleEngine) wet(p *Particle) bool {
	for _, n := range e.shuffled(p) {
		soaked, ok := wetForm[n.Kind]
		if !ok || !e.rng.Chance(e.params.WetChance) {
			continue
		}
		e.g.SetNewKind(n, soaked)
		e.g.Clear(p)
		return false
	}
	return true
}

// rust starts the decay countdown of steel touching p. Each steel particle
// rolls against its own rust chance.
func (e *ruleEngine) rust(p *Particle) {
	for _, n := range e.shuffled(p) {
		if n.Kind != Steel || n.LimitedLife {
			continue
		}
		if e.rng.Chance(n.mat.ChanceToRust) {
			n.StartDecay()
		}
	}
}

// melt applies lava's contact rules. Every empty or obsidian contact cools
// the lava. The budget is checked before each neighbor, so lava that spends
// MeltsToHarden on its last neighbor turns to obsidian on its next update.
func (e *ruleEngine) melt(p *Particle) bool {
	for _, n := range e.g.Adjacent(p) {
		if p.MeltsToHarden < 1 {
			e.g.SetNewKind(p, Obsidian)
			return false
		}
		switch n.Kind {
		case Empty:
			p.MeltsToHarden--
			if e.rng.Chance(e.params.LavaSmokeChance) {
				e.g.SetNewKind(n, Smoke)
			}
		case Obsidian:
			p.MeltsToHarden--
		case Water:
			e.g.SetNewKind(n, Obsidian)
			e.g.SetNewKind(p, Steam)
			return false
		case WetSand, WetDirt:
			e.g.SetNewKind(n, dryForm[n.Kind])
			e.g.SetNewKind(p, Obsidian)
			return false
		default:
			nm := n.mat
			if !nm.Meltable(p.mat.Temperature) || !e.rng.Chance(nm.MeltChance) {
				continue
			}
			was := n.Kind
			e.g.SetNewKind(n, Lava)
			p.MeltsToHarden -= nm.MeltCost
			if !nm.MeltTerminal {
				continue
			}
			if e.rng.Chance(e.params.LavaResolidifyChance) {
				e.g.SetNewKind(p, was)
				return false
			}
			return true
		}
	}
	return true
}

// shuffled returns p's neighbors in a random order drawn from the world
// stream.
func (e *ruleEngine) shuffled(p *Particle) [8]*Particle {
	adj := e.g.Adjacent(p)
	e.rng.Shuffle(len(adj), func(i, j int) { adj[i], adj[j] = adj[j], adj[i] })
	return adj
}
