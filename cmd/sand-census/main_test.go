package main

import (
	"os"
	"path/filepath"
	"testing"

	"sandfall/internal/sims/sand"
	"sandfall/internal/telemetry"
)

func TestRunWritesCensusAndSummary(t *testing.T) {
	cfg := sand.DefaultConfig()
	cfg.Width, cfg.Height = 24, 16
	cfg.Scene = "demo"
	world := sand.NewWithConfig(cfg)
	world.Reset(3)

	dir := t.TempDir()
	if err := run(world, 40, 10, dir); err != nil {
		t.Fatalf("run: %v", err)
	}

	samples, err := telemetry.ReadSamples(filepath.Join(dir, "census.csv"))
	if err != nil {
		t.Fatalf("read census: %v", err)
	}
	if len(samples) != 5 {
		t.Fatalf("%d census rows, want 5", len(samples))
	}
	if samples[len(samples)-1].Tick != 40 {
		t.Fatalf("last row tick %d, want 40", samples[len(samples)-1].Tick)
	}
	for _, name := range []string{"config.yaml", "summary.csv"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Fatalf("missing %s: %v", name, err)
		}
	}
}

func TestRunWithoutOutputDir(t *testing.T) {
	world := sand.New(8, 8)
	world.Reset(1)
	if err := run(world, 5, 1, ""); err != nil {
		t.Fatalf("run: %v", err)
	}
}
