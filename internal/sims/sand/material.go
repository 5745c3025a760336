package sand

import (
	"errors"
	"fmt"
	"image/color"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"
)

// Class selects which movement and rule subsets apply to a material.
type Class uint8

const (
	ClassEmpty Class = iota
	ClassImmovable
	ClassMovableSolid
	ClassLiquid
	ClassGas
)

var classNames = [...]string{
	ClassEmpty:        "empty",
	ClassImmovable:    "immovable",
	ClassMovableSolid: "movable_solid",
	ClassLiquid:       "liquid",
	ClassGas:          "gas",
}

func (c Class) String() string {
	if int(c) < len(classNames) {
		return classNames[c]
	}
	return fmt.Sprintf("class(%d)", uint8(c))
}

// UnmarshalYAML decodes a class from its name.
func (c *Class) UnmarshalYAML(value *yaml.Node) error {
	var name string
	if err := value.Decode(&name); err != nil {
		return err
	}
	for i, n := range classNames {
		if n == name {
			*c = Class(i)
			return nil
		}
	}
	return fmt.Errorf("line %d: unknown class %q", value.Line, name)
}

// MarshalYAML encodes a class as its name.
func (c Class) MarshalYAML() (any, error) { return c.String(), nil }

// maxShades bounds the color variants per material so palette indices fit
// in a byte.
const maxShades = 4

// Material holds the constants shared by every particle of one kind.
type Material struct {
	Class        Class   `yaml:"class"`
	Density      float64 `yaml:"density"`
	Acceleration float64 `yaml:"acceleration"`
	MaxSpeed     float64 `yaml:"max_speed"`
	// Dispersion is how many cells a liquid scans sideways for an opening.
	Dispersion int `yaml:"dispersion"`

	// Lifetime is the countdown used once the particle has limited life:
	// burn time for flammables, rust time for steel, decay for gases.
	// -1 means infinite.
	Lifetime       int  `yaml:"lifetime"`
	LifetimeJitter int  `yaml:"lifetime_jitter"`
	LimitedLife    bool `yaml:"limited_life"`
	DecaysTo       Kind `yaml:"decays_to"`

	Flammable          bool    `yaml:"flammable"`
	ChanceToCatch      float64 `yaml:"chance_to_catch"`
	ExtinguishesThings bool    `yaml:"extinguishes_things"`
	OnFire             bool    `yaml:"on_fire"`
	EmitsHeat          bool    `yaml:"emits_heat"`

	Temperature  int     `yaml:"temperature"`
	MeltingPoint int     `yaml:"melting_point"`
	MeltChance   float64 `yaml:"melt_chance"`
	MeltCost     int     `yaml:"melt_cost"`
	MeltTerminal bool    `yaml:"melt_terminal"`
	HardenMin    int     `yaml:"harden_min"`
	HardenJitter int     `yaml:"harden_jitter"`

	ChanceToRust float64 `yaml:"chance_to_rust"`

	InertialResistance float64 `yaml:"inertial_resistance"`
	Friction           float64 `yaml:"friction"`

	Colors []string `yaml:"colors,flow"`

	shades []color.RGBA
}

// Movable reports whether the movement resolver runs for this material.
func (m *Material) Movable() bool {
	return m.Class == ClassMovableSolid || m.Class == ClassLiquid || m.Class == ClassGas
}

// MovesSideways reports whether the lateral candidates are examined.
func (m *Material) MovesSideways() bool {
	return m.Class == ClassLiquid || m.Class == ClassGas
}

// Meltable reports whether heat at temperature t can melt this material.
func (m *Material) Meltable(t int) bool {
	return m.MeltingPoint > 0 && t >= m.MeltingPoint && m.MeltChance > 0
}

// Shades returns the parsed color variants.
func (m *Material) Shades() []color.RGBA { return m.shades }

func (m *Material) prepare(k Kind) error {
	var errs []error
	if m.Density < 0 || math.IsNaN(m.Density) {
		errs = append(errs, fmt.Errorf("density %v must be >= 0", m.Density))
	}
	if k == Empty && (m.Density != 0 || m.Class != ClassEmpty) {
		errs = append(errs, errors.New("empty must have class empty and density 0"))
	}
	if k != Empty && m.Class == ClassEmpty {
		errs = append(errs, errors.New("only empty may use class empty"))
	}
	if m.Movable() && m.MaxSpeed <= 0 {
		errs = append(errs, fmt.Errorf("movable material needs max_speed > 0, got %v", m.MaxSpeed))
	}
	if m.Dispersion < 0 {
		errs = append(errs, fmt.Errorf("dispersion %d must be >= 0", m.Dispersion))
	}
	if (m.Flammable || m.LimitedLife || m.OnFire) && m.Lifetime < 1 {
		errs = append(errs, fmt.Errorf("lifetime %d must be >= 1 for limited-life materials", m.Lifetime))
	}
	if m.LifetimeJitter < 0 || m.HardenJitter < 0 {
		errs = append(errs, errors.New("jitter values must be >= 0"))
	}
	if !m.DecaysTo.Valid() {
		errs = append(errs, fmt.Errorf("decays_to %v is not a material", m.DecaysTo))
	}
	for name, p := range map[string]float64{
		"chance_to_catch":     m.ChanceToCatch,
		"melt_chance":         m.MeltChance,
		"chance_to_rust":      m.ChanceToRust,
		"inertial_resistance": m.InertialResistance,
		"friction":            m.Friction,
	} {
		if p < 0 || p > 1 {
			errs = append(errs, fmt.Errorf("%s %v outside [0,1]", name, p))
		}
	}
	if len(m.Colors) == 0 || len(m.Colors) > maxShades {
		errs = append(errs, fmt.Errorf("need 1..%d colors, got %d", maxShades, len(m.Colors)))
	}
	shades, err := parseColors(m.Colors)
	if err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return fmt.Errorf("material %s: %w", k, errors.Join(errs...))
	}
	m.shades = shades
	return nil
}

func parseColors(hex []string) ([]color.RGBA, error) {
	out := make([]color.RGBA, 0, len(hex))
	for _, h := range hex {
		c, err := colorful.Hex(h)
		if err != nil {
			return nil, fmt.Errorf("color %q: %w", h, err)
		}
		r, g, b := c.RGB255()
		out = append(out, color.RGBA{R: r, G: g, B: b, A: 255})
	}
	return out, nil
}

// MaterialTable holds one Material per kind. In YAML it is a mapping keyed
// by material name; entries merge into the existing table so an override
// file only needs the fields it changes.
type MaterialTable [kindCount]Material

// Get returns the material for k.
func (t *MaterialTable) Get(k Kind) *Material {
	if !k.Valid() {
		return &boundaryMaterial
	}
	return &t[k]
}

// UnmarshalYAML merges a name-keyed mapping into the table.
func (t *MaterialTable) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: materials must be a mapping", value.Line)
	}
	for i := 0; i+1 < len(value.Content); i += 2 {
		key, node := value.Content[i], value.Content[i+1]
		k, ok := ParseKind(key.Value)
		if !ok {
			return fmt.Errorf("line %d: unknown material %q", key.Line, key.Value)
		}
		if err := node.Decode(&t[k]); err != nil {
			return fmt.Errorf("material %s: %w", key.Value, err)
		}
	}
	return nil
}

// MarshalYAML emits the table as a name-keyed mapping in kind order.
func (t MaterialTable) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for k := range t {
		var val yaml.Node
		if err := val.Encode(t[k]); err != nil {
			return nil, fmt.Errorf("material %s: %w", Kind(k), err)
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: Kind(k).String()},
			&val,
		)
	}
	return node, nil
}

func (t *MaterialTable) prepare() error {
	var errs []error
	for k := range t {
		if err := t[k].prepare(Kind(k)); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

var boundaryMaterial = Material{
	Class:   ClassImmovable,
	Density: math.Inf(1),
}
