// Package match3 implements the POOPEE Crush tile engine: board generation,
// match detection, swapping, cascade resolution, objectives, special tiles
// and boosters. It contains no I/O so it can be driven by any frontend and
// tested deterministically.
package match3

import "fmt"

// Tile is the value held by a single board cell.
type Tile uint8

const (
	Empty Tile = iota
	Blocked

	// Basic kinds.
	Poop
	Coin
	Gem
	Rocket
	Diamond
	Moon

	// Special kinds (created from 4/5/L/T matches).
	StripedHorizontal
	StripedVertical
	Wrapped
	ColorBomb
)

// MaxKinds is the number of basic kinds available.
const MaxKinds = int(Moon-Poop) + 1

var tileNames = map[Tile]string{
	Empty:             "empty",
	Blocked:           "blocked",
	Poop:              "poop",
	Coin:              "coin",
	Gem:               "gem",
	Rocket:            "rocket",
	Diamond:           "diamond",
	Moon:              "moon",
	StripedHorizontal: "striped_horizontal",
	StripedVertical:   "striped_vertical",
	Wrapped:           "wrapped",
	ColorBomb:         "color_bomb",
}

// BasicKind returns the i-th basic kind (0-based).
func BasicKind(i int) Tile {
	return Poop + Tile(i)
}

// IsBasic reports whether t is one of the basic kinds.
func (t Tile) IsBasic() bool {
	return t >= Poop && t <= Moon
}

// IsSpecial reports whether t is a special tile.
func (t Tile) IsSpecial() bool {
	return t >= StripedHorizontal && t <= ColorBomb
}

// Matchable reports whether t may start or extend a run.
func (t Tile) Matchable() bool {
	return t != Empty && t != Blocked
}

// String returns the tile name.
func (t Tile) String() string {
	if name, ok := tileNames[t]; ok {
		return name
	}
	return fmt.Sprintf("tile(%d)", uint8(t))
}

// MarshalText encodes the tile by name so saved games stay readable.
func (t Tile) MarshalText() ([]byte, error) {
	name, ok := tileNames[t]
	if !ok {
		return nil, fmt.Errorf("match3: unknown tile %d", uint8(t))
	}
	return []byte(name), nil
}

// UnmarshalText decodes a tile name.
func (t *Tile) UnmarshalText(text []byte) error {
	for tile, name := range tileNames {
		if name == string(text) {
			*t = tile
			return nil
		}
	}
	return fmt.Errorf("match3: unknown tile %q", text)
}
