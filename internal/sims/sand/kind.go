package sand

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Kind tags the material a particle is made of. The set is closed.
type Kind uint8

const (
	Empty Kind = iota
	Sand
	WetSand
	Dirt
	WetDirt
	Stone
	Lava
	Obsidian
	Steel
	Rust
	Wood
	Leaf
	Fire
	Smoke
	Water
	Steam

	kindCount
)

// boundary marks the sentinel returned for coordinates outside the grid.
// It is never stored in a cell.
const boundary Kind = 0xff

var kindNames = [kindCount]string{
	Empty:    "empty",
	Sand:     "sand",
	WetSand:  "wet_sand",
	Dirt:     "dirt",
	WetDirt:  "wet_dirt",
	Stone:    "stone",
	Lava:     "lava",
	Obsidian: "obsidian",
	Steel:    "steel",
	Rust:     "rust",
	Wood:     "wood",
	Leaf:     "leaf",
	Fire:     "fire",
	Smoke:    "smoke",
	Water:    "water",
	Steam:    "steam",
}

// Kinds lists every material kind, Empty included, in tag order.
func Kinds() []Kind {
	out := make([]Kind, kindCount)
	for i := range out {
		out[i] = Kind(i)
	}
	return out
}

// Valid reports whether k belongs to the closed kind set.
func (k Kind) Valid() bool { return k < kindCount }

func (k Kind) String() string {
	if k == boundary {
		return "boundary"
	}
	if !k.Valid() {
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
	return kindNames[k]
}

// ParseKind resolves a snake_case material name.
func ParseKind(name string) (Kind, bool) {
	for i, n := range kindNames {
		if n == name {
			return Kind(i), true
		}
	}
	return Empty, false
}

// UnmarshalYAML decodes a kind from its name.
func (k *Kind) UnmarshalYAML(value *yaml.Node) error {
	var name string
	if err := value.Decode(&name); err != nil {
		return err
	}
	parsed, ok := ParseKind(name)
	if !ok {
		return fmt.Errorf("line %d: unknown material %q", value.Line, name)
	}
	*k = parsed
	return nil
}

// MarshalYAML encodes a kind as its name.
func (k Kind) MarshalYAML() (any, error) { return k.String(), nil }

// wetForm and dryForm pair the solids that water soaks.
var (
	wetForm = map[Kind]Kind{Sand: WetSand, Dirt: WetDirt}
	dryForm = map[Kind]Kind{WetSand: Sand, WetDirt: Dirt}
)
