package telemetry

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"sandfall/internal/sims/sand"
)

func TestRecorderWritesHeaderOnce(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "run")
	rec, err := NewRecorder(dir)
	if err != nil {
		t.Fatalf("NewRecorder: %v", err)
	}

	cfg := sand.DefaultConfig()
	cfg.Width, cfg.Height, cfg.Scene = 24, 16, "demo"
	world := sand.NewWithConfig(cfg)
	world.Reset(0)
	for i := 0; i < 3; i++ {
		world.Step()
		if err := rec.Write(FromCensus(world.Census())); err != nil {
			t.Fatalf("Write: %v", err)
		}
	}
	if err := rec.WriteConfig(&cfg); err != nil {
		t.Fatalf("WriteConfig: %v", err)
	}
	if err := rec.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "census.csv"))
	if err != nil {
		t.Fatalf("read census: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want header plus 3 rows", len(lines))
	}
	if !strings.HasPrefix(lines[0], "tick,occupied,burning") {
		t.Fatalf("unexpected header %q", lines[0])
	}

	samples, err := ReadSamples(filepath.Join(dir, "census.csv"))
	if err != nil {
		t.Fatalf("ReadSamples: %v", err)
	}
	if samples[2].Tick != 3 {
		t.Fatalf("last tick %d, want 3", samples[2].Tick)
	}
	total := cfg.Width * cfg.Height
	if samples[0].Occupied <= 0 || samples[0].Occupied > total {
		t.Fatalf("occupied %d outside (0,%d]", samples[0].Occupied, total)
	}

	if _, err := sand.LoadConfig(filepath.Join(dir, "config.yaml")); err != nil {
		t.Fatalf("written config does not reload: %v", err)
	}
}

func TestNilRecorderIsNoop(t *testing.T) {
	rec, err := NewRecorder("")
	if err != nil || rec != nil {
		t.Fatalf("NewRecorder(\"\") = %v, %v", rec, err)
	}
	if err := rec.Write(Sample{}); err != nil {
		t.Fatal(err)
	}
	if err := rec.Close(); err != nil {
		t.Fatal(err)
	}
	if rec.Dir() != "" {
		t.Fatal("nil recorder has no directory")
	}
}

func TestSummarize(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		mean   float64
		min    float64
		max    float64
		p50    float64
	}{
		{"empty", nil, 0, 0, 0, 0},
		{"single", []float64{4}, 4, 4, 4, 4},
		{"spread", []float64{5, 1, 3, 2, 4}, 3, 1, 5, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Summarize(tt.name, tt.values)
			if s.N != len(tt.values) || s.Mean != tt.mean || s.Min != tt.min || s.Max != tt.max || s.P50 != tt.p50 {
				t.Fatalf("got %+v", s)
			}
			if math.IsNaN(s.StdDev) {
				t.Fatal("std must not be NaN")
			}
		})
	}
}

func TestWriteSummaries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "summary.csv")
	summaries := []Summary{Summarize("lava", []float64{1, 2, 3})}
	if err := WriteSummaries(path, summaries); err != nil {
		t.Fatalf("WriteSummaries: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "\nlava,3,") {
		t.Fatalf("summary row missing: %q", data)
	}
}
