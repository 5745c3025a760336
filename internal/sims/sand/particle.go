package sand

// Particle is the occupant of one cell. Its kind and material constants are
// fixed when the grid constructs it; a transition replaces the whole value.
type Particle struct {
	Kind     Kind
	Row, Col int

	Velocity float64

	LimitedLife bool
	Lifetime    int
	OnFire      bool

	// FallingThroughAir lets a movable solid slide diagonally. Resting
	// solids only move when the cell directly below is lighter.
	FallingThroughAir bool

	// MeltsToHarden counts the contacts lava survives before it cools to
	// obsidian.
	MeltsToHarden int

	shade uint8
	flame int8
	stamp uint64
	mat   *Material
}

// Material returns the constants the particle was built with.
func (p *Particle) Material() *Material { return p.mat }

func (p *Particle) Density() float64         { return p.mat.Density }
func (p *Particle) Acceleration() float64    { return p.mat.Acceleration }
func (p *Particle) MaxSpeed() float64        { return p.mat.MaxSpeed }
func (p *Particle) Flammable() bool          { return p.mat.Flammable }
func (p *Particle) ChanceToCatch() float64   { return p.mat.ChanceToCatch }
func (p *Particle) ExtinguishesThings() bool { return p.mat.ExtinguishesThings }
func (p *Particle) Temperature() int         { return p.mat.Temperature }
func (p *Particle) MeltingPoint() int        { return p.mat.MeltingPoint }

// MovesDown reports whether gravity pulls the particle towards higher rows.
func (p *Particle) MovesDown() bool { return p.mat.Acceleration > 0 }

// IsEmpty reports whether the cell holds no particle.
func (p *Particle) IsEmpty() bool { return p.Kind == Empty }

// IsBoundary reports whether p is the out-of-bounds sentinel.
func (p *Particle) IsBoundary() bool { return p.Kind == boundary }

// Burning reports whether the particle ignites flammable neighbors: it is on
// fire or it radiates heat like lava.
func (p *Particle) Burning() bool { return p.OnFire || p.mat.EmitsHeat }

// Ignite sets the particle on fire. Burning implies limited life.
func (p *Particle) Ignite() {
	p.OnFire = true
	p.LimitedLife = true
	if p.Lifetime < 1 {
		p.Lifetime = 1
	}
}

// StartDecay begins the particle's lifetime countdown if it is not running.
func (p *Particle) StartDecay() {
	if p.LimitedLife {
		return
	}
	p.LimitedLife = true
	if p.Lifetime < 1 {
		p.Lifetime = 1
	}
}

// Shade is the color variant picked at construction.
func (p *Particle) Shade() int { return int(p.shade) }

// Flame is the current fire flicker color, or -1 before the first flicker.
func (p *Particle) Flame() int { return int(p.flame) }
