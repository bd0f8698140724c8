package match3

// spawn is a special tile to be left behind by a shaped match.
type spawn struct {
	At   Position
	Tile Tile
}

// planSpecials picks the specials created by a wave. Only basic-kind runs
// qualify, each run is used once, and 5-lines win over L/T shapes which win
// over 4-lines. moved lists the swapped cells, swapped-to cell first.
func planSpecials(matches []Match, moved []Position) []spawn {
	used := make([]bool, len(matches))
	taken := make(map[Position]bool)
	var out []spawn

	place := func(at Position, t Tile) {
		if taken[at] {
			return
		}
		taken[at] = true
		out = append(out, spawn{At: at, Tile: t})
	}

	for i, m := range matches {
		if m.Kind.IsBasic() && m.Len() >= 5 {
			used[i] = true
			place(pickCell(m.Positions, moved, m.Positions[m.Len()/2]), ColorBomb)
		}
	}

	for i, h := range matches {
		if used[i] || h.Direction != Horizontal || !h.Kind.IsBasic() {
			continue
		}
		for j, v := range matches {
			if used[j] || v.Direction != Vertical || v.Kind != h.Kind {
				continue
			}
			cross, ok := intersection(h, v)
			if !ok {
				continue
			}
			used[i], used[j] = true, true
			cells := append(append([]Position(nil), h.Positions...), v.Positions...)
			place(pickCell(cells, moved, cross), Wrapped)
			break
		}
	}

	for i, m := range matches {
		if used[i] || !m.Kind.IsBasic() || m.Len() != 4 {
			continue
		}
		used[i] = true
		t := StripedHorizontal
		if m.Direction == Vertical {
			t = StripedVertical
		}
		place(pickCell(m.Positions, moved, m.Positions[m.Len()/2]), t)
	}
	return out
}

func pickCell(cells, moved []Position, fallback Position) Position {
	for _, mv := range moved {
		for _, c := range cells {
			if c == mv {
				return mv
			}
		}
	}
	return fallback
}

func intersection(a, b Match) (Position, bool) {
	for _, p := range a.Positions {
		if b.Contains(p) {
			return p, true
		}
	}
	return Position{}, false
}

// effectArea returns the cells a special tile clears when it goes off.
func effectArea(b Board, at Position, t Tile, det *Detonation) []Position {
	var area []Position
	switch t {
	case StripedHorizontal:
		for c := 0; c < b.Cols; c++ {
			area = append(area, Position{Row: at.Row, Col: c})
		}
	case StripedVertical:
		for r := 0; r < b.Rows; r++ {
			area = append(area, Position{Row: r, Col: at.Col})
		}
	case Wrapped:
		for r := at.Row - 1; r <= at.Row+1; r++ {
			for c := at.Col - 1; c <= at.Col+1; c++ {
				if p := (Position{Row: r, Col: c}); b.InBounds(p) {
					area = append(area, p)
				}
			}
		}
	case ColorBomb:
		target := b.MostCommonBasic()
		if det != nil && det.At == at {
			target = det.Target
		}
		area = append(area, at)
		for r := 0; r < b.Rows; r++ {
			for c := 0; c < b.Cols; c++ {
				if b.Cells[r][c] == target || (target == ColorBomb && b.Cells[r][c].Matchable()) {
					area = append(area, Position{Row: r, Col: c})
				}
			}
		}
	}
	return area
}
