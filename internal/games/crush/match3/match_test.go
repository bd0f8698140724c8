package match3

import "testing"

func TestFindMatches(t *testing.T) {
	tests := []struct {
		name    string
		setup   map[Position]Tile
		want    []Match
		cleared int
	}{
		{
			name:  "no runs",
			setup: nil,
		},
		{
			name:  "horizontal three",
			setup: map[Position]Tile{pos(1, 1): Poop, pos(1, 2): Poop, pos(1, 3): Poop},
			want: []Match{
				{Kind: Poop, Direction: Horizontal, Positions: []Position{pos(1, 1), pos(1, 2), pos(1, 3)}},
			},
			cleared: 3,
		},
		{
			name:  "vertical four",
			setup: map[Position]Tile{pos(0, 4): Coin, pos(1, 4): Coin, pos(2, 4): Coin, pos(3, 4): Coin},
			want: []Match{
				{Kind: Coin, Direction: Vertical, Positions: []Position{pos(0, 4), pos(1, 4), pos(2, 4), pos(3, 4)}},
			},
			cleared: 4,
		},
		{
			name: "L shape reports both runs",
			setup: map[Position]Tile{
				pos(2, 0): Poop, pos(2, 1): Poop, pos(2, 2): Poop,
				pos(3, 0): Poop, pos(4, 0): Poop,
			},
			want: []Match{
				{Kind: Poop, Direction: Horizontal, Positions: []Position{pos(2, 0), pos(2, 1), pos(2, 2)}},
				{Kind: Poop, Direction: Vertical, Positions: []Position{pos(2, 0), pos(3, 0), pos(4, 0)}},
			},
			cleared: 5,
		},
		{
			name:  "two is not a run",
			setup: map[Position]Tile{pos(0, 0): Poop, pos(0, 1): Poop},
		},
		{
			name:  "blocked cells never match",
			setup: map[Position]Tile{pos(5, 0): Blocked, pos(5, 1): Blocked, pos(5, 2): Blocked},
		},
		{
			name:  "empty cells never match",
			setup: map[Position]Tile{pos(5, 0): Empty, pos(5, 1): Empty, pos(5, 2): Empty},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := stripes(6, 6)
			for p, tile := range tt.setup {
				b.Set(p, tile)
			}
			got := FindMatches(b)
			if len(got) != len(tt.want) {
				t.Fatalf("FindMatches = %+v, want %+v", got, tt.want)
			}
			for i := range got {
				if got[i].Kind != tt.want[i].Kind || got[i].Direction != tt.want[i].Direction {
					t.Errorf("match %d = %v %v, want %v %v", i, got[i].Kind, got[i].Direction, tt.want[i].Kind, tt.want[i].Direction)
				}
				if len(got[i].Positions) != len(tt.want[i].Positions) {
					t.Fatalf("match %d positions = %v, want %v", i, got[i].Positions, tt.want[i].Positions)
				}
				for j := range got[i].Positions {
					if got[i].Positions[j] != tt.want[i].Positions[j] {
						t.Errorf("match %d positions = %v, want %v", i, got[i].Positions, tt.want[i].Positions)
						break
					}
				}
			}
			if n := len(UniquePositions(got)); n != tt.cleared {
				t.Errorf("unique positions = %d, want %d", n, tt.cleared)
			}
		})
	}
}

func TestFindMatchesIsDeterministic(t *testing.T) {
	b := stripes(6, 6)
	b.Set(pos(1, 1), Poop)
	b.Set(pos(1, 2), Poop)
	b.Set(pos(1, 3), Poop)
	first := UniquePositions(FindMatches(b))
	for i := 0; i < 10; i++ {
		again := UniquePositions(FindMatches(b))
		for j := range first {
			if first[j] != again[j] {
				t.Fatalf("run %d differs: %v vs %v", i, first, again)
			}
		}
	}
}

func TestUniquePositionsRowMajor(t *testing.T) {
	got := UniquePositions([]Match{
		{Positions: []Position{pos(2, 1), pos(0, 3)}},
		{Positions: []Position{pos(0, 3), pos(1, 0)}},
	})
	want := []Position{pos(0, 3), pos(1, 0), pos(2, 1)}
	if len(got) != len(want) {
		t.Fatalf("UniquePositions = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("UniquePositions = %v, want %v", got, want)
		}
	}
}

func hasMatch(b Board) bool { return len(FindMatches(b)) > 0 }
