package telemetry

import (
	"log/slog"

	"sandfall/internal/sims/sand"
)

// Sample is one census row: the particle population after a tick.
type Sample struct {
	Tick     uint64 `csv:"tick"`
	Occupied int    `csv:"occupied"`
	Burning  int    `csv:"burning"`
	Decaying int    `csv:"decaying"`

	Sand     int `csv:"sand"`
	WetSand  int `csv:"wet_sand"`
	Dirt     int `csv:"dirt"`
	WetDirt  int `csv:"wet_dirt"`
	Stone    int `csv:"stone"`
	Lava     int `csv:"lava"`
	Obsidian int `csv:"obsidian"`
	Steel    int `csv:"steel"`
	Rust     int `csv:"rust"`
	Wood     int `csv:"wood"`
	Leaf     int `csv:"leaf"`
	Fire     int `csv:"fire"`
	Smoke    int `csv:"smoke"`
	Water    int `csv:"water"`
	Steam    int `csv:"steam"`
}

// FromCensus flattens a census into a CSV row.
func FromCensus(c sand.Census) Sample {
	return Sample{
		Tick:     c.Tick,
		Occupied: c.Occupied(),
		Burning:  c.Burning,
		Decaying: c.Decaying,
		Sand:     c.Count(sand.Sand),
		WetSand:  c.Count(sand.WetSand),
		Dirt:     c.Count(sand.Dirt),
		WetDirt:  c.Count(sand.WetDirt),
		Stone:    c.Count(sand.Stone),
		Lava:     c.Count(sand.Lava),
		Obsidian: c.Count(sand.Obsidian),
		Steel:    c.Count(sand.Steel),
		Rust:     c.Count(sand.Rust),
		Wood:     c.Count(sand.Wood),
		Leaf:     c.Count(sand.Leaf),
		Fire:     c.Count(sand.Fire),
		Smoke:    c.Count(sand.Smoke),
		Water:    c.Count(sand.Water),
		Steam:    c.Count(sand.Steam),
	}
}

// LogValue implements slog.LogValuer for structured logging. Only the
// aggregate columns are logged; the CSV carries the per-kind breakdown.
func (s Sample) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Uint64("tick", s.Tick),
		slog.Int("occupied", s.Occupied),
		slog.Int("burning", s.Burning),
		slog.Int("decaying", s.Decaying),
		slog.Int("lava", s.Lava),
		slog.Int("water", s.Water),
	)
}
