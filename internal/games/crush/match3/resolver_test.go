package match3

import (
	"math/rand"
	"testing"
)

func hRun(kind Tile, row, col, n int) Match {
	m := Match{Kind: kind, Direction: Horizontal}
	for i := 0; i < n; i++ {
		m.Positions = append(m.Positions, pos(row, col+i))
	}
	return m
}

func vRun(kind Tile, row, col, n int) Match {
	m := Match{Kind: kind, Direction: Vertical}
	for i := 0; i < n; i++ {
		m.Positions = append(m.Positions, pos(row+i, col))
	}
	return m
}

func TestPlanSpecials(t *testing.T) {
	tests := []struct {
		name    string
		matches []Match
		moved   []Position
		want    []spawn
	}{
		{
			name:    "three makes nothing",
			matches: []Match{hRun(Poop, 0, 0, 3)},
		},
		{
			name:    "four horizontal at swapped-to cell",
			matches: []Match{hRun(Poop, 3, 0, 4)},
			moved:   []Position{pos(3, 2), pos(2, 2)},
			want:    []spawn{{At: pos(3, 2), Tile: StripedHorizontal}},
		},
		{
			name:    "four vertical falls back to centre",
			matches: []Match{vRun(Coin, 0, 5, 4)},
			want:    []spawn{{At: pos(2, 5), Tile: StripedVertical}},
		},
		{
			name:    "five makes a colour bomb",
			matches: []Match{hRun(Gem, 1, 0, 5)},
			want:    []spawn{{At: pos(1, 2), Tile: ColorBomb}},
		},
		{
			name:    "L shape makes wrapped at the corner",
			matches: []Match{hRun(Poop, 2, 0, 3), vRun(Poop, 2, 0, 3)},
			want:    []spawn{{At: pos(2, 0), Tile: Wrapped}},
		},
		{
			name:    "crossing runs of different kinds stay separate",
			matches: []Match{hRun(Poop, 2, 0, 4), vRun(Coin, 0, 6, 4)},
			want: []spawn{
				{At: pos(2, 2), Tile: StripedHorizontal},
				{At: pos(2, 6), Tile: StripedVertical},
			},
		},
		{
			name:    "runs of specials never promote",
			matches: []Match{hRun(Wrapped, 0, 0, 4)},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := planSpecials(tt.matches, tt.moved)
			if len(got) != len(tt.want) {
				t.Fatalf("planSpecials = %+v, want %+v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("spawn %d = %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestEffectArea(t *testing.T) {
	b := stripes(8, 8)
	tests := []struct {
		name string
		at   Position
		tile Tile
		want int
	}{
		{"striped horizontal clears the row", pos(3, 3), StripedHorizontal, 8},
		{"striped vertical clears the column", pos(3, 3), StripedVertical, 8},
		{"wrapped clears 3x3", pos(3, 3), Wrapped, 9},
		{"wrapped in a corner is clipped", pos(0, 0), Wrapped, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := len(effectArea(b, tt.at, tt.tile, nil)); got != tt.want {
				t.Errorf("area = %d cells, want %d", got, tt.want)
			}
		})
	}

	t.Run("colour bomb clears its target kind", func(t *testing.T) {
		det := &Detonation{At: pos(3, 3), Target: Rocket}
		area := effectArea(b, pos(3, 3), ColorBomb, det)
		if want := 1 + b.Count(Rocket); len(area) != want {
			t.Errorf("area = %d cells, want %d", len(area), want)
		}
	})
}

// runningBoard puts a Poop run at the top-left of row 3. With a source that
// always refills Poop, the refilled top row forms a new run of three on
// every wave.
func runningBoard() Board {
	b := stripes(8, 8)
	b.Set(pos(3, 0), Poop)
	b.Set(pos(3, 1), Poop)
	b.Set(pos(3, 2), Poop)
	return b
}

func TestResolveComboScoring(t *testing.T) {
	b := runningBoard()
	scoring := DefaultScoring()
	scoring.MaxCascades = 3
	r := Resolver{Kinds: 6, Scoring: scoring, Rng: constRand(0)}
	p := Progress{Moves: 10, ComboMultiplier: 1}

	res := r.Resolve(b, &p, Trigger{})

	if res.Waves != 3 {
		t.Fatalf("waves = %d, want 3", res.Waves)
	}
	var scores []int
	for _, ev := range res.Events {
		if c, ok := ev.(CascadeEvent); ok {
			scores = append(scores, c.Score)
		}
	}
	want := []int{30, 45, 60}
	if len(scores) != len(want) {
		t.Fatalf("cascade scores = %v, want %v", scores, want)
	}
	for i := range want {
		if scores[i] != want[i] {
			t.Errorf("wave %d score = %d, want %d", i+1, scores[i], want[i])
		}
	}
	if res.ScoreDelta != 135 || p.Score != 135 {
		t.Errorf("score delta = %d, progress score = %d, want 135", res.ScoreDelta, p.Score)
	}
	if p.ClearedTiles != 9 || p.Cascades != 3 {
		t.Errorf("cleared = %d cascades = %d, want 9 and 3", p.ClearedTiles, p.Cascades)
	}
}

func TestResolveTruncatesAtCap(t *testing.T) {
	b := runningBoard()
	scoring := DefaultScoring()
	scoring.MaxCascades = 5
	r := Resolver{Kinds: 6, Scoring: scoring, Rng: constRand(0)}
	p := Progress{Moves: 10, ComboMultiplier: 1}

	res := r.Resolve(b, &p, Trigger{})

	if !res.Truncated {
		t.Fatal("expected truncation")
	}
	if res.Waves != 5 {
		t.Errorf("waves = %d, want 5", res.Waves)
	}
	if hasMatch(b) {
		t.Error("truncated board still has a match")
	}
	last, ok := res.Events[len(res.Events)-1].(ShuffleEvent)
	if !ok || last.Reason != "cascade limit" {
		t.Errorf("last event = %#v, want cascade limit shuffle", res.Events[len(res.Events)-1])
	}
}

func TestResolveStableBoardIsNoop(t *testing.T) {
	b := stripes(8, 8)
	before := b.Clone()
	r := Resolver{Kinds: 6, Scoring: DefaultScoring(), Rng: constRand(0)}
	p := Progress{ComboMultiplier: 1}

	res := r.Resolve(b, &p, Trigger{})
	if res.Waves != 0 || res.ScoreDelta != 0 || len(res.Events) != 0 {
		t.Errorf("resolution = %+v, want empty", res)
	}
	if !b.Equal(before) {
		t.Error("stable board changed")
	}
}

func TestResolveEndsStable(t *testing.T) {
	for seed := int64(1); seed <= 30; seed++ {
		rng := rand.New(rand.NewSource(seed))
		b := runningBoard()
		r := Resolver{Kinds: 6, Specials: true, Scoring: DefaultScoring(), Rng: rng}
		p := Progress{Moves: 10, ComboMultiplier: 1}

		res := r.Resolve(b, &p, Trigger{})
		if res.ScoreDelta <= 0 {
			t.Errorf("seed %d: score delta = %d, want > 0", seed, res.ScoreDelta)
		}
		if hasMatch(b) {
			t.Errorf("seed %d: board not stable after resolve", seed)
		}
		if b.Count(Empty) != 0 {
			t.Errorf("seed %d: %d empty cells left", seed, b.Count(Empty))
		}
	}
}

func TestResolveSpecialChain(t *testing.T) {
	tests := []struct {
		name    string
		tile    Tile
		cleared int
	}{
		{"striped horizontal", StripedHorizontal, 8},
		{"striped vertical", StripedVertical, 8},
		{"wrapped", Wrapped, 9},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := stripes(8, 8)
			b.Set(pos(3, 3), tt.tile)
			scoring := DefaultScoring()
			scoring.MaxCascades = 1
			r := Resolver{Kinds: 6, Specials: true, Scoring: scoring, Rng: rand.New(rand.NewSource(1))}
			p := Progress{ComboMultiplier: 1}

			res := r.Resolve(b, &p, Trigger{Extra: []Position{pos(3, 3)}})

			first, ok := res.Events[0].(MatchEvent)
			if !ok {
				t.Fatalf("first event = %#v, want match", res.Events[0])
			}
			if len(first.Positions) != tt.cleared {
				t.Errorf("first wave cleared %d, want %d", len(first.Positions), tt.cleared)
			}
			trig, ok := res.Events[1].(SpecialTriggeredEvent)
			if !ok || trig.Tile != tt.tile {
				t.Errorf("second event = %#v, want %v triggered", res.Events[1], tt.tile)
			}
			if p.SpecialTilesCleared != 1 {
				t.Errorf("special tiles cleared = %d, want 1", p.SpecialTilesCleared)
			}
			wantScore := tt.cleared*scoring.TilePoints + scoring.SpecialBonus
			if cas := firstCascade(res.Events); cas.Score != wantScore {
				t.Errorf("wave score = %d, want %d", cas.Score, wantScore)
			}
		})
	}
}

func firstCascade(events []Event) CascadeEvent {
	for _, ev := range events {
		if c, ok := ev.(CascadeEvent); ok {
			return c
		}
	}
	return CascadeEvent{}
}

func TestResolveColourBombDetonation(t *testing.T) {
	b := stripes(8, 8)
	b.Set(pos(3, 3), ColorBomb)
	sr := TrySwap(b, pos(3, 3), pos(3, 4), true)
	if !sr.Accepted {
		t.Fatal("bomb swap rejected")
	}
	rockets := b.Count(Rocket)

	scoring := DefaultScoring()
	scoring.MaxCascades = 1
	r := Resolver{Kinds: 6, Specials: true, Scoring: scoring, Rng: rand.New(rand.NewSource(3))}
	p := Progress{ComboMultiplier: 1}
	res := r.Resolve(b, &p, Trigger{Matches: sr.Matches, Detonation: sr.Detonation})

	first := res.Events[0].(MatchEvent)
	if len(first.Positions) != rockets+1 {
		t.Errorf("bomb cleared %d cells, want %d", len(first.Positions), rockets+1)
	}
}

func TestResolveBombWithSpecialPartner(t *testing.T) {
	resolve := func(b Board, sr SwapResult) MatchEvent {
		t.Helper()
		if !sr.Accepted || sr.Detonation == nil || sr.Detonation.Partner == nil {
			t.Fatalf("swap = %+v", sr)
		}
		scoring := DefaultScoring()
		scoring.MaxCascades = 1
		r := Resolver{Kinds: 6, Specials: true, Scoring: scoring, Rng: rand.New(rand.NewSource(5))}
		p := Progress{ComboMultiplier: 1}
		res := r.Resolve(b, &p, Trigger{Matches: sr.Matches, Moved: []Position{sr.To, sr.From}, Detonation: sr.Detonation})
		if n := b.Count(ColorBomb); n != 0 {
			t.Errorf("%d colour bombs left on the board", n)
		}
		return res.Events[0].(MatchEvent)
	}

	t.Run("two bombs clear the board", func(t *testing.T) {
		b := stripes(8, 8)
		b.Set(pos(3, 3), ColorBomb)
		b.Set(pos(3, 4), ColorBomb)
		b.Set(pos(0, 0), Blocked)
		first := resolve(b, TrySwap(b, pos(3, 3), pos(3, 4), true))
		if len(first.Positions) != 63 {
			t.Errorf("cleared %d cells, want 63", len(first.Positions))
		}
		if b.At(pos(0, 0)) != Blocked {
			t.Error("blocked cell was cleared")
		}
	})

	t.Run("striped partner fires its row", func(t *testing.T) {
		b := stripes(8, 8)
		b.Set(pos(3, 3), ColorBomb)
		b.Set(pos(3, 4), StripedHorizontal)
		first := resolve(b, TrySwap(b, pos(3, 3), pos(3, 4), true))
		in := map[Position]bool{}
		for _, p := range first.Positions {
			in[p] = true
		}
		for c := 0; c < 8; c++ {
			if !in[pos(3, c)] {
				t.Errorf("row 3 cell %d not cleared", c)
			}
		}
	})
}
