package app

import (
	"flag"
	"strings"
	"testing"

	"sandfall/internal/core"
	"sandfall/internal/sims/sand"
)

func TestConfigBind(t *testing.T) {
	cfg := NewConfig()
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cfg.Bind(fs)
	if err := fs.Parse([]string{"-seed", "9", "-scene", "empty", "-scale", "2"}); err != nil {
		t.Fatalf("parse: %v", err)
	}
	usage := fs.Lookup("scene").Usage
	for _, name := range sand.SceneNames() {
		if !strings.Contains(usage, name) {
			t.Errorf("scene usage %q does not list %q", usage, name)
		}
	}
	if cfg.Seed != 9 || cfg.Scene != "empty" || cfg.Scale != 2 || cfg.Sim != "sand" {
		t.Fatalf("unexpected config %+v", cfg)
	}

	opts := cfg.SimOptions()
	if opts["seed"] != "9" || opts["scene"] != "empty" {
		t.Fatalf("options %v", opts)
	}
	if _, ok := opts["config"]; ok {
		t.Fatal("unset config path must be omitted")
	}
}

func TestCellAt(t *testing.T) {
	size := core.Size{W: 10, H: 5}
	tests := []struct {
		mx, my, scale int
		x, y          int
		ok            bool
	}{
		{0, 0, 4, 0, 0, true},
		{39, 19, 4, 9, 4, true},
		{40, 0, 4, 0, 0, false},
		{0, 20, 4, 0, 0, false},
		{-1, 3, 4, 0, 0, false},
		{5, 5, 0, 0, 0, false},
	}
	for _, tt := range tests {
		x, y, ok := cellAt(tt.mx, tt.my, tt.scale, size)
		if x != tt.x || y != tt.y || ok != tt.ok {
			t.Errorf("cellAt(%d,%d,%d) = %d,%d,%v; want %d,%d,%v", tt.mx, tt.my, tt.scale, x, y, ok, tt.x, tt.y, tt.ok)
		}
	}
}

func TestNextBrush(t *testing.T) {
	if got := nextBrush(0, -1); got != 0 {
		t.Fatalf("brush below zero: %d", got)
	}
	if got := nextBrush(maxBrush, 1); got != maxBrush {
		t.Fatalf("brush above max: %d", got)
	}
	if got := nextBrush(3, 0.5); got != 4 {
		t.Fatalf("wheel up gives %d", got)
	}
}
