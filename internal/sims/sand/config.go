package sand

import (
	_ "embed"
	"errors"
	"fmt"
	"image/color"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Params holds the rule probabilities that are not tied to one material.
type Params struct {
	WaterExtinguishChance float64 `yaml:"water_extinguish_chance"`
	WetChance             float64 `yaml:"wet_chance"`
	BurnoutSmokeChance    float64 `yaml:"burnout_smoke_chance"`
	FlickerChance         float64 `yaml:"flicker_chance"`
	LavaSmokeChance       float64 `yaml:"lava_smoke_chance"`
	LavaResolidifyChance  float64 `yaml:"lava_resolidify_chance"`
	DiagonalDamping       float64 `yaml:"diagonal_damping"`
}

// Config controls the sand world dimensions, rules and material table.
type Config struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Seed   int64  `yaml:"seed"`
	Scene  string `yaml:"scene"`
	// Debug turns invariant violations into panics instead of clamping.
	Debug bool `yaml:"debug"`

	Params     Params        `yaml:"params"`
	FireColors []string      `yaml:"fire_colors,flow"`
	Materials  MaterialTable `yaml:"materials"`

	fire []color.RGBA
}

// DefaultConfig returns the configuration embedded in defaults.yaml.
func DefaultConfig() Config {
	cfg, err := decodeConfig(defaultsYAML, nil)
	if err != nil {
		panic(fmt.Sprintf("sand: embedded defaults: %v", err))
	}
	return cfg
}

// LoadConfig overlays the YAML file at path onto the embedded defaults. An
// empty path yields the defaults.
func LoadConfig(path string) (Config, error) {
	if path == "" {
		return DefaultConfig(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}
	return decodeConfig(defaultsYAML, data)
}

func decodeConfig(base, overlay []byte) (Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(base, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing defaults: %w", err)
	}
	if overlay != nil {
		if err := yaml.Unmarshal(overlay, &cfg); err != nil {
			return Config{}, fmt.Errorf("parsing config file: %w", err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks ranges and compiles the color tables. It must succeed
// before a World is built from the config.
func (c *Config) Validate() error {
	var errs []error
	if c.Width <= 0 || c.Height <= 0 {
		errs = append(errs, fmt.Errorf("size %dx%d must be positive", c.Width, c.Height))
	}
	if _, ok := scenes[c.Scene]; !ok {
		errs = append(errs, fmt.Errorf("unknown scene %q", c.Scene))
	}
	for key, p := range c.Params.probabilities() {
		if p < 0 || p > 1 {
			errs = append(errs, fmt.Errorf("params.%s %v outside [0,1]", key, p))
		}
	}
	if c.Params.DiagonalDamping < 0 {
		errs = append(errs, fmt.Errorf("params.diagonal_damping %v must be >= 0", c.Params.DiagonalDamping))
	}
	if n := len(c.FireColors); n == 0 || n > maxShades {
		errs = append(errs, fmt.Errorf("need 1..%d fire colors, got %d", maxShades, n))
	}
	fire, err := parseColors(c.FireColors)
	if err != nil {
		errs = append(errs, fmt.Errorf("fire_colors: %w", err))
	}
	if err := c.Materials.prepare(); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid sand config: %w", errors.Join(errs...))
	}
	c.fire = fire
	return nil
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

func (p *Params) probabilities() map[string]float64 {
	return map[string]float64{
		"water_extinguish_chance": p.WaterExtinguishChance,
		"wet_chance":              p.WetChance,
		"burnout_smoke_chance":    p.BurnoutSmokeChance,
		"flicker_chance":          p.FlickerChance,
		"lava_smoke_chance":       p.LavaSmokeChance,
		"lava_resolidify_chance":  p.LavaResolidifyChance,
	}
}

func (p *Params) floatField(key string) *float64 {
	switch key {
	case "water_extinguish_chance":
		return &p.WaterExtinguishChance
	case "wet_chance":
		return &p.WetChance
	case "burnout_smoke_chance":
		return &p.BurnoutSmokeChance
	case "flicker_chance":
		return &p.FlickerChance
	case "lava_smoke_chance":
		return &p.LavaSmokeChance
	case "lava_resolidify_chance":
		return &p.LavaResolidifyChance
	case "diagonal_damping":
		return &p.DiagonalDamping
	}
	return nil
}

// FromMap populates the config from a string map (flag-style key/value
// pairs). A "config" key names a YAML file to load first; unparsable values
// are ignored and keep their defaults.
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if path, ok := cfg["config"]; ok && path != "" {
		if loaded, err := LoadConfig(path); err == nil {
			c = loaded
		}
	}
	if v, ok := cfg["w"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Width = parsed
		}
	}
	if v, ok := cfg["h"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Height = parsed
		}
	}
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}
	if v, ok := cfg["scene"]; ok {
		if _, known := scenes[v]; known {
			c.Scene = v
		}
	}
	if v, ok := cfg["debug"]; ok {
		if parsed, err := strconv.ParseBool(v); err == nil {
			c.Debug = parsed
		}
	}
	for key := range c.Params.probabilities() {
		v, ok := cfg[key]
		if !ok {
			continue
		}
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 && parsed <= 1 {
			*c.Params.floatField(key) = parsed
		}
	}
	if v, ok := cfg["diagonal_damping"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			c.Params.DiagonalDamping = parsed
		}
	}
	return c
}
