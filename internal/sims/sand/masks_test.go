package sand

import "testing"

func TestHeatMask(t *testing.T) {
	world := newTestWorld(t, 3, 1, nil)
	mustSpawn(t, world, Fire, 0, 0)
	mustSpawn(t, world, Lava, 0, 1)

	mask := world.HeatMask(nil)
	want := []float32{1, 0.5, 0}
	for i, v := range want {
		if mask[i] != v {
			t.Fatalf("heat[%d] = %v, want %v", i, mask[i], v)
		}
	}
	if again := world.HeatMask(mask); &again[0] != &mask[0] {
		t.Fatal("a correctly sized buffer should be reused")
	}
}

func TestDecayMaskGrowsWithAge(t *testing.T) {
	world := newTestWorld(t, 2, 1, nil)
	mustSpawn(t, world, Smoke, 0, 0)
	mustSpawn(t, world, Stone, 0, 1)

	before := world.DecayMask(nil)[0]
	for i := 0; i < 10; i++ {
		world.Step()
	}
	mask := world.DecayMask(nil)
	if mask[0] <= before {
		t.Fatalf("decay %v did not grow from %v", mask[0], before)
	}
	if mask[1] != 0 {
		t.Fatalf("stone decay %v, want 0", mask[1])
	}
}

func TestSwatch(t *testing.T) {
	world := newTestWorld(t, 1, 1, nil)
	if got, want := world.Swatch("water"), world.cfg.Materials.Get(Water).Shades()[0]; got != want {
		t.Fatalf("swatch %v, want %v", got, want)
	}
	if got := world.Swatch("plasma"); got.A != 0 {
		t.Fatalf("unknown material swatch %v, want transparent", got)
	}
}
