package app

import (
	"flag"
	"strconv"
	"strings"

	"sandfall/internal/sims/sand"
)

// Config represents the command-line parameters shared by the front-ends.
type Config struct {
	Sim        string
	Scale      int
	TPS        int
	Seed       int64
	ConfigPath string
	Scene      string
	HUDWidth   int
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{Sim: "sand", Scale: 4, TPS: 60, Seed: 1337, HUDWidth: 260}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Sim, "sim", c.Sim, "simulation to run")
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixel scale multiplier")
	fs.IntVar(&c.TPS, "tps", c.TPS, "ticks per second")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for simulation reset")
	fs.StringVar(&c.ConfigPath, "config", c.ConfigPath, "YAML file overriding the default materials and rules")
	fs.StringVar(&c.Scene, "scene", c.Scene, "initial scene ("+strings.Join(sand.SceneNames(), ", ")+")")
	fs.IntVar(&c.HUDWidth, "hud", c.HUDWidth, "side panel width in pixels, 0 to hide")
}

// SimOptions converts the flags into the key/value map simulation
// factories accept. Unset options are omitted so the factory keeps its own
// defaults.
func (c *Config) SimOptions() map[string]string {
	opts := map[string]string{"seed": strconv.FormatInt(c.Seed, 10)}
	if c.ConfigPath != "" {
		opts["config"] = c.ConfigPath
	}
	if c.Scene != "" {
		opts["scene"] = c.Scene
	}
	return opts
}
