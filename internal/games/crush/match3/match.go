package match3

import "sort"

// Direction is the axis of a run.
type Direction int

const (
	Horizontal Direction = iota
	Vertical
)

func (d Direction) String() string {
	if d == Vertical {
		return "vertical"
	}
	return "horizontal"
}

// MinRun is the shortest run that counts as a match.
const MinRun = 3

// Match is one maximal run of identical tiles.
type Match struct {
	Kind      Tile       `json:"kind"`
	Direction Direction  `json:"direction"`
	Positions []Position `json:"positions"`
}

// Len returns the run length.
func (m Match) Len() int {
	return len(m.Positions)
}

// Contains reports whether p is part of the run.
func (m Match) Contains(p Position) bool {
	for _, q := range m.Positions {
		if q == p {
			return true
		}
	}
	return false
}

// FindMatches returns every maximal horizontal run, then every maximal
// vertical run, of length >= MinRun. A cell in both an H and a V run appears
// in both matches; use UniquePositions before clearing.
func FindMatches(b Board) []Match {
	var matches []Match
	for r := 0; r < b.Rows; r++ {
		matches = scanLine(b, matches, Horizontal, b.Cols, func(i int) Position {
			return Position{Row: r, Col: i}
		})
	}
	for c := 0; c < b.Cols; c++ {
		matches = scanLine(b, matches, Vertical, b.Rows, func(i int) Position {
			return Position{Row: i, Col: c}
		})
	}
	return matches
}

func scanLine(b Board, out []Match, dir Direction, n int, at func(int) Position) []Match {
	start := 0
	for i := 1; i <= n; i++ {
		if i < n && b.At(at(i)) == b.At(at(start)) {
			continue
		}
		kind := b.At(at(start))
		if i-start >= MinRun && kind.Matchable() {
			m := Match{Kind: kind, Direction: dir, Positions: make([]Position, 0, i-start)}
			for j := start; j < i; j++ {
				m.Positions = append(m.Positions, at(j))
			}
			out = append(out, m)
		}
		start = i
	}
	return out
}

// UniquePositions flattens matches into a de-duplicated, row-major list.
func UniquePositions(matches []Match) []Position {
	seen := make(map[Position]bool)
	var out []Position
	for _, m := range matches {
		for _, p := range m.Positions {
			if !seen[p] {
				seen[p] = true
				out = append(out, p)
			}
		}
	}
	sortPositions(out)
	return out
}

func sortPositions(ps []Position) {
	sort.Slice(ps, func(i, j int) bool {
		if ps[i].Row != ps[j].Row {
			return ps[i].Row < ps[j].Row
		}
		return ps[i].Col < ps[j].Col
	})
}
