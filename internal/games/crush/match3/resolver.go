package match3

import "math"

// Scoring controls points and the cascade loop.
type Scoring struct {
	TilePoints   int     `yaml:"tile_points" json:"tile_points"`
	SpecialBonus int     `yaml:"special_bonus" json:"special_bonus"`
	ComboStep    float64 `yaml:"combo_step" json:"combo_step"`
	MaxCascades  int     `yaml:"max_cascades" json:"max_cascades"`
}

// DefaultScoring returns the stock point values.
func DefaultScoring() Scoring {
	return Scoring{
		TilePoints:   10,
		SpecialBonus: 50,
		ComboStep:    0.5,
		MaxCascades:  50,
	}
}

// Trigger describes what starts a resolution. Matches and Moved come from an
// accepted swap; Extra holds cells removed directly (hammer).
type Trigger struct {
	Matches    []Match
	Moved      []Position
	Detonation *Detonation
	Extra      []Position
}

func (t Trigger) seeded() bool {
	return t.Detonation != nil || len(t.Extra) > 0
}

// Resolution summarises one resolve call.
type Resolution struct {
	ScoreDelta int
	Waves      int
	Cleared    int
	Truncated  bool
	Events     []Event
}

// Resolver clears matches, applies gravity and refills until the board is
// stable.
type Resolver struct {
	Kinds    int
	Specials bool
	Scoring  Scoring
	Rng      Rand
}

// Resolve runs the cascade loop on b, updating p in place. When the loop
// hits Scoring.MaxCascades the board is re-placed without runs and the
// resolution is marked truncated.
func (r Resolver) Resolve(b Board, p *Progress, t Trigger) Resolution {
	var res Resolution
	p.ComboMultiplier = 1

	matches := t.Matches
	if matches == nil {
		matches = FindMatches(b)
	}

	for first := true; ; first = false {
		if !first {
			matches = FindMatches(b)
		}
		if len(matches) == 0 && !(first && t.seeded()) {
			break
		}
		if r.Scoring.MaxCascades > 0 && res.Waves >= r.Scoring.MaxCascades {
			Randomize(b, r.Kinds, r.Rng)
			res.Truncated = true
			res.Events = append(res.Events, ShuffleEvent{Reason: "cascade limit"})
			break
		}

		wave := res.Waves + 1
		seeds := UniquePositions(matches)
		var moved []Position
		var det *Detonation
		if first {
			moved = t.Moved
			det = t.Detonation
			seeds = append(seeds, t.Extra...)
			if det != nil {
				seeds = append(seeds, det.At)
				if det.Partner != nil {
					seeds = append(seeds, *det.Partner)
				}
			}
		}

		var spawns []spawn
		if r.Specials {
			spawns = planSpecials(matches, moved)
		}
		protected := make(map[Position]bool, len(spawns))
		for _, s := range spawns {
			protected[s.At] = true
		}

		cleared, triggered := expand(b, seeds, protected, det)

		sum, specials := 0, 0
		tiles := make([]Tile, len(cleared))
		for i, pos := range cleared {
			tile := b.At(pos)
			tiles[i] = tile
			sum += r.Scoring.TilePoints
			if tile.IsSpecial() {
				sum += r.Scoring.SpecialBonus
				specials++
			}
			b.Set(pos, Empty)
		}
		waveScore := int(math.Round(float64(sum) * p.ComboMultiplier))

		res.Events = append(res.Events, MatchEvent{Wave: wave, Positions: cleared, Tiles: tiles})
		res.Events = append(res.Events, triggered...)
		for _, s := range spawns {
			b.Set(s.At, s.Tile)
			res.Events = append(res.Events, SpecialCreatedEvent(s))
		}

		p.Score += waveScore
		p.ClearedTiles += len(cleared)
		p.SpecialTilesCleared += specials
		p.SpecialTilesCreated += len(spawns)
		RefreshObjectives(p)

		drops := applyGravity(b)
		filled := refill(b, r.Kinds, r.Rng)
		p.Cascades++

		res.Events = append(res.Events,
			DropEvent{Wave: wave, Drops: drops},
			RefillEvent{Wave: wave, Positions: filled},
			CascadeEvent{Wave: wave, Multiplier: p.ComboMultiplier, Score: waveScore},
		)

		p.ComboMultiplier += r.Scoring.ComboStep
		res.ScoreDelta += waveScore
		res.Waves++
		res.Cleared += len(cleared)
	}

	RefreshObjectives(p)
	return res
}

// expand grows the seed set with the areas of every special tile it reaches,
// breadth-first. Protected cells, empty and blocked cells are never cleared.
func expand(b Board, seeds []Position, protected map[Position]bool, det *Detonation) ([]Position, []Event) {
	in := make(map[Position]bool, len(seeds))
	var cleared, queue []Position

	add := func(p Position) bool {
		if in[p] || protected[p] || !b.At(p).Matchable() {
			return false
		}
		in[p] = true
		cleared = append(cleared, p)
		if b.At(p).IsSpecial() {
			queue = append(queue, p)
		}
		return true
	}
	for _, p := range seeds {
		add(p)
	}

	var events []Event
	for len(queue) > 0 {
		at := queue[0]
		queue = queue[1:]
		tile := b.At(at)
		var hit []Position
		for _, p := range effectArea(b, at, tile, det) {
			if add(p) {
				hit = append(hit, p)
			}
		}
		events = append(events, SpecialTriggeredEvent{At: at, Tile: tile, Cleared: hit})
	}

	sortPositions(cleared)
	return cleared, events
}
