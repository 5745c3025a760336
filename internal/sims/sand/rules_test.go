package sand

import (
	"testing"

	"gonum.org/v1/gonum/stat"
)

func permanentFire(c *Config) {
	c.Materials[Fire].Lifetime = 1 << 30
	c.Materials[Fire].LifetimeJitter = 0
}

func TestWaterWetsOneGrain(t *testing.T) {
	world := newTestWorld(t, 1, 2, nil)
	mustSpawn(t, world, Water, 0, 0)
	mustSpawn(t, world, Sand, 1, 0)
	world.Step()

	c := world.Census()
	if c.Count(WetSand) != 1 || c.Count(Water) != 0 || c.Count(Sand) != 0 {
		t.Fatalf("got wet=%d water=%d sand=%d, want 1/0/0", c.Count(WetSand), c.Count(Water), c.Count(Sand))
	}
}

func TestWettingConservesMatter(t *testing.T) {
	world := newTestWorld(t, 10, 10, nil)
	for c := 0; c < 10; c++ {
		mustSpawn(t, world, Water, 0, c)
		mustSpawn(t, world, Sand, 8, c)
		mustSpawn(t, world, Sand, 9, c)
	}
	for i := 0; i < 200; i++ {
		world.Step()
		c := world.Census()
		if grains := c.Count(Sand) + c.Count(WetSand); grains != 20 {
			t.Fatalf("tick %d: %d grains, want 20", i+1, grains)
		}
		if water := c.Count(Water) + c.Count(WetSand); water != 10 {
			t.Fatalf("tick %d: water plus wet sand = %d, want 10", i+1, water)
		}
	}
	if got := world.Census().Count(WetSand); got != 10 {
		t.Fatalf("wet sand = %d, want every drop absorbed", got)
	}
}

func TestLavaHardensWhenExhausted(t *testing.T) {
	world := newTestWorld(t, 3, 3, nil)
	mustSpawn(t, world, Lava, 1, 1)
	world.Grid().Get(1, 1).MeltsToHarden = 0
	world.Step()

	c := world.Census()
	if c.Count(Obsidian) != 1 || c.Count(Lava) != 0 {
		t.Fatalf("obsidian=%d lava=%d, want 1/0", c.Count(Obsidian), c.Count(Lava))
	}
}

func TestLavaHardensOnEvaluationAfterBudgetRunsOut(t *testing.T) {
	world := newTestWorld(t, 3, 2, nil)
	for _, at := range [][2]int{{0, 0}, {0, 2}, {1, 0}, {1, 1}, {1, 2}} {
		mustSpawn(t, world, Obsidian, at[0], at[1])
	}
	mustSpawn(t, world, Lava, 0, 1)
	// Five obsidian neighbours spend the whole budget in one evaluation.
	world.Grid().Get(0, 1).MeltsToHarden = 5

	world.Step()
	if p := world.At(0, 1); p.Kind != Lava || p.MeltsToHarden != 0 {
		t.Fatalf("after first tick got %v with budget %d, want lava with 0", p.Kind, p.MeltsToHarden)
	}
	world.Step()
	if k := world.At(0, 1).Kind; k != Obsidian {
		t.Fatalf("after second tick got %v, want obsidian", k)
	}
}

func TestLavaMeetsWater(t *testing.T) {
	world := newTestWorld(t, 2, 1, nil)
	mustSpawn(t, world, Lava, 0, 0)
	mustSpawn(t, world, Water, 0, 1)
	world.Step()

	c := world.Census()
	if c.Count(Obsidian) != 1 || c.Count(Steam) != 1 {
		t.Fatalf("obsidian=%d steam=%d, want 1/1", c.Count(Obsidian), c.Count(Steam))
	}
}

func TestLavaDriesWetSand(t *testing.T) {
	world := newTestWorld(t, 2, 1, nil)
	mustSpawn(t, world, Lava, 0, 0)
	mustSpawn(t, world, WetSand, 0, 1)
	world.Step()

	if world.At(0, 1).Kind != Sand || world.At(0, 0).Kind != Obsidian {
		t.Fatalf("got %v|%v, want obsidian|sand", world.At(0, 0).Kind, world.At(0, 1).Kind)
	}
}

func TestLavaMeltsStoneWithoutLosingCells(t *testing.T) {
	world := newTestWorld(t, 2, 1, nil)
	mustSpawn(t, world, Lava, 0, 0)
	mustSpawn(t, world, Stone, 0, 1)
	melted := false
	for i := 0; i < 2000; i++ {
		world.Step()
		c := world.Census()
		if c.Count(Lava)+c.Count(Stone) != 2 || c.Count(Lava) < 1 {
			t.Fatalf("tick %d: lava=%d stone=%d", i+1, c.Count(Lava), c.Count(Stone))
		}
		if world.At(0, 1).Kind == Lava {
			melted = true
		}
	}
	if !melted {
		t.Fatal("stone next to lava never melted")
	}
}

func ticksToIgnite(t *testing.T, seed int64) int {
	t.Helper()
	world := newTestWorld(t, 2, 1, func(c *Config) {
		c.Seed = seed
		permanentFire(c)
	})
	mustSpawn(t, world, Fire, 0, 0)
	mustSpawn(t, world, Wood, 0, 1)
	for tick := 1; tick <= 20000; tick++ {
		world.Step()
		if world.At(0, 1).OnFire {
			return tick
		}
	}
	t.Fatalf("seed %d: wood never ignited", seed)
	return 0
}

func TestWoodIgnitionRate(t *testing.T) {
	cfg := DefaultConfig()
	chance := cfg.Materials.Get(Wood).ChanceToCatch
	samples := make([]float64, 400)
	for i := range samples {
		samples[i] = float64(ticksToIgnite(t, int64(i+1)))
	}
	mean := stat.Mean(samples, nil)
	want := 1 / chance
	if mean < want*0.8 || mean > want*1.2 {
		t.Fatalf("mean ticks to ignite %.1f, want about %.1f", mean, want)
	}
}

func TestBurningWoodBurnsOut(t *testing.T) {
	world := newTestWorld(t, 2, 1, permanentFire)
	mustSpawn(t, world, Fire, 0, 0)
	mustSpawn(t, world, Wood, 0, 1)
	world.Grid().Get(0, 1).Ignite()

	lifetime := world.cfg.Materials.Get(Wood).Lifetime
	for i := 0; i < lifetime+5; i++ {
		world.Step()
	}
	if world.At(0, 1).Kind == Wood {
		t.Fatal("burning wood outlived its lifetime")
	}
	if got := world.Census().Burning; got != 1 {
		t.Fatalf("%d burning particles, want only the permanent fire", got)
	}
}

func TestFireBurnsOut(t *testing.T) {
	world := newTestWorld(t, 1, 1, nil)
	mustSpawn(t, world, Fire, 0, 0)
	m := world.cfg.Materials.Get(Fire)
	for i := 0; i < m.Lifetime+m.LifetimeJitter+5; i++ {
		world.Step()
	}
	if world.At(0, 0).Kind == Fire {
		t.Fatal("fire outlived its lifetime")
	}
	if k := world.At(0, 0).Kind; k != Smoke && k != Empty {
		t.Fatalf("fire burned out into %v", k)
	}
}

func TestWaterExtinguishesFire(t *testing.T) {
	world := newTestWorld(t, 2, 1, permanentFire)
	mustSpawn(t, world, Fire, 0, 0)
	mustSpawn(t, world, Water, 0, 1)
	for i := 0; i < 200; i++ {
		world.Step()
		if world.Census().Count(Fire) == 0 {
			break
		}
	}
	c := world.Census()
	if c.Count(Fire) != 0 || c.Count(Smoke) != 1 || c.Count(Steam) != 1 {
		t.Fatalf("fire=%d smoke=%d steam=%d, want 0/1/1", c.Count(Fire), c.Count(Smoke), c.Count(Steam))
	}
}

func TestWetSandSmothersFire(t *testing.T) {
	world := newTestWorld(t, 2, 1, permanentFire)
	mustSpawn(t, world, Fire, 0, 0)
	mustSpawn(t, world, WetSand, 0, 1)
	world.Step()

	if world.At(0, 0).Kind != Steam || world.At(0, 1).Kind != Sand {
		t.Fatalf("got %v|%v, want steam|sand", world.At(0, 0).Kind, world.At(0, 1).Kind)
	}
}

func TestWaterRustsSteel(t *testing.T) {
	world := newTestWorld(t, 2, 1, nil)
	mustSpawn(t, world, Water, 0, 0)
	mustSpawn(t, world, Steel, 0, 1)
	for i := 0; i < 5000; i++ {
		world.Step()
	}
	c := world.Census()
	if c.Count(Rust) != 1 || c.Count(Steel) != 0 || c.Count(Water) != 1 {
		t.Fatalf("rust=%d steel=%d water=%d, want 1/0/1", c.Count(Rust), c.Count(Steel), c.Count(Water))
	}
}
