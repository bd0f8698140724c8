package match3

// Event is an animation record for the presentation layer. Events are
// informational only; the engine never reads them back.
type Event interface {
	Kind() string
}

// MatchEvent lists the cells cleared in one wave.
type MatchEvent struct {
	Wave      int
	Positions []Position
	Tiles     []Tile
}

func (MatchEvent) Kind() string { return "match" }

// DropEvent lists tiles that fell after a wave was cleared.
type DropEvent struct {
	Wave  int
	Drops []Drop
}

func (DropEvent) Kind() string { return "drop" }

// RefillEvent lists cells filled with new tiles.
type RefillEvent struct {
	Wave      int
	Positions []Position
}

func (RefillEvent) Kind() string { return "refill" }

// CascadeEvent marks a completed wave and the multiplier it scored with.
type CascadeEvent struct {
	Wave       int
	Multiplier float64
	Score      int
}

func (CascadeEvent) Kind() string { return "cascade" }

// InvalidEvent reports a rejected swap.
type InvalidEvent struct {
	From, To Position
	Reason   SwapReason
}

func (InvalidEvent) Kind() string { return "invalid" }

// SpecialCreatedEvent reports a special tile left behind by a shaped match.
type SpecialCreatedEvent struct {
	At   Position
	Tile Tile
}

func (SpecialCreatedEvent) Kind() string { return "special_created" }

// SpecialTriggeredEvent reports a special tile's clear effect.
type SpecialTriggeredEvent struct {
	At      Position
	Tile    Tile
	Cleared []Position
}

func (SpecialTriggeredEvent) Kind() string { return "special_triggered" }

// ShuffleEvent reports the board being re-placed.
type ShuffleEvent struct {
	Reason string
}

func (ShuffleEvent) Kind() string { return "shuffle" }

// BoosterEvent reports a booster being applied.
type BoosterEvent struct {
	Booster Booster
	Target  *Position
	Hint    *[2]Position
}

func (BoosterEvent) Kind() string { return "booster" }
