package sand

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sand.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestDefaultConfigValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults invalid: %v", err)
	}
	if cfg.Materials.Get(Water).Dispersion == 0 {
		t.Fatal("water should disperse")
	}
	if cfg.Materials.Get(Steel).DecaysTo != Rust {
		t.Fatalf("steel decays to %v, want rust", cfg.Materials.Get(Steel).DecaysTo)
	}
}

func TestLoadConfigOverlayMerges(t *testing.T) {
	path := writeFile(t, `
width: 40
params:
  wet_chance: 0.5
materials:
  sand:
    density: 9
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	def := DefaultConfig()
	if cfg.Width != 40 || cfg.Height != def.Height {
		t.Fatalf("size %dx%d, want 40x%d", cfg.Width, cfg.Height, def.Height)
	}
	if cfg.Params.WetChance != 0.5 {
		t.Fatalf("wet chance %v, want 0.5", cfg.Params.WetChance)
	}
	if cfg.Params.WaterExtinguishChance != def.Params.WaterExtinguishChance {
		t.Fatal("unrelated params must keep their defaults")
	}
	sand := cfg.Materials.Get(Sand)
	if sand.Density != 9 {
		t.Fatalf("sand density %v, want 9", sand.Density)
	}
	if sand.Friction != def.Materials.Get(Sand).Friction || len(sand.Shades()) == 0 {
		t.Fatal("sand fields missing from the overlay must keep their defaults")
	}
}

func TestLoadConfigRejectsInvalid(t *testing.T) {
	cases := map[string]string{
		"probability": "params:\n  wet_chance: 2\n",
		"material":    "materials:\n  mithril:\n    density: 1\n",
		"color":       "materials:\n  sand:\n    colors: [\"#zzzzzz\"]\n",
		"scene":       "scene: volcano\n",
		"decay":       "materials:\n  steel:\n    decays_to: gold\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := LoadConfig(writeFile(t, body)); err == nil {
				t.Fatal("expected an error")
			}
		})
	}
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}

func TestWriteYAMLReloads(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Seed = 4242
	cfg.Materials[Water].Dispersion = 7
	path := filepath.Join(t.TempDir(), "out.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("write: %v", err)
	}
	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if loaded.Seed != 4242 || loaded.Materials.Get(Water).Dispersion != 7 {
		t.Fatalf("reloaded seed=%d dispersion=%d", loaded.Seed, loaded.Materials.Get(Water).Dispersion)
	}
}

func TestFromMap(t *testing.T) {
	cfg := FromMap(map[string]string{
		"w":                      "32",
		"h":                      "-4",
		"seed":                   "11",
		"scene":                  "empty",
		"wet_chance":             "0.25",
		"lava_resolidify_chance": "3",
		"diagonal_damping":       "0.5",
		"debug":                  "true",
	})
	def := DefaultConfig()
	if cfg.Width != 32 || cfg.Height != def.Height {
		t.Fatalf("size %dx%d", cfg.Width, cfg.Height)
	}
	if cfg.Seed != 11 || cfg.Scene != "empty" || !cfg.Debug {
		t.Fatalf("seed=%d scene=%q debug=%v", cfg.Seed, cfg.Scene, cfg.Debug)
	}
	if cfg.Params.WetChance != 0.25 {
		t.Fatalf("wet chance %v", cfg.Params.WetChance)
	}
	if cfg.Params.LavaResolidifyChance != def.Params.LavaResolidifyChance {
		t.Fatal("out-of-range probability must be ignored")
	}
	if cfg.Params.DiagonalDamping != 0.5 {
		t.Fatalf("damping %v", cfg.Params.DiagonalDamping)
	}
}

func TestParseKind(t *testing.T) {
	for _, k := range Kinds() {
		got, ok := ParseKind(k.String())
		if !ok || got != k {
			t.Fatalf("ParseKind(%q) = %v, %v", k.String(), got, ok)
		}
	}
	if _, ok := ParseKind("boundary"); ok {
		t.Fatal("boundary must not parse as a material")
	}
}
