package match3

// SwapReason explains why a swap was rejected.
type SwapReason int

const (
	SwapOK SwapReason = iota
	SwapOutOfBounds
	SwapNotAdjacent
	SwapBlockedCell
	SwapEmptyCell
	SwapNoMatch
)

func (r SwapReason) String() string {
	switch r {
	case SwapOK:
		return "ok"
	case SwapOutOfBounds:
		return "out of bounds"
	case SwapNotAdjacent:
		return "not adjacent"
	case SwapBlockedCell:
		return "blocked cell"
	case SwapEmptyCell:
		return "empty cell"
	case SwapNoMatch:
		return "no match"
	default:
		return "unknown"
	}
}

// Detonation is a special tile set off directly by a swap rather than by a
// line match (currently only a colour bomb). Target ColorBomb means every
// tile on the board. Partner is the special the bomb was swapped with; it
// goes off in the same wave.
type Detonation struct {
	At      Position
	Target  Tile
	Partner *Position
}

// SwapResult is the outcome of TrySwap.
type SwapResult struct {
	Accepted   bool
	Reason     SwapReason
	From, To   Position
	Matches    []Match
	Detonation *Detonation
}

// TrySwap exchanges the tiles at from and to if the swap produces a match.
// A rejected swap leaves the board exactly as it was. With specials enabled
// a colour bomb swapped with any other tile is always accepted.
func TrySwap(b Board, from, to Position, specials bool) SwapResult {
	res := SwapResult{From: from, To: to}
	switch {
	case !b.InBounds(from) || !b.InBounds(to):
		res.Reason = SwapOutOfBounds
		return res
	case !Adjacent(from, to):
		res.Reason = SwapNotAdjacent
		return res
	case b.At(from) == Blocked || b.At(to) == Blocked:
		res.Reason = SwapBlockedCell
		return res
	case b.At(from) == Empty || b.At(to) == Empty:
		res.Reason = SwapEmptyCell
		return res
	}

	a, c := b.At(from), b.At(to)
	b.Set(from, c)
	b.Set(to, a)

	if specials {
		if d := bombDetonation(b, from, to); d != nil {
			res.Accepted = true
			res.Detonation = d
			res.Matches = FindMatches(b)
			return res
		}
	}

	matches := FindMatches(b)
	if len(matches) == 0 {
		b.Set(from, a)
		b.Set(to, c)
		res.Reason = SwapNoMatch
		return res
	}
	res.Accepted = true
	res.Matches = matches
	return res
}

// bombDetonation inspects the post-swap cells. The bomb targets the kind it
// was swapped with. Two bombs clear the whole board; a bomb swapped with
// another special targets the most common basic kind and sets the partner
// off as well.
func bombDetonation(b Board, from, to Position) *Detonation {
	for _, pair := range [][2]Position{{to, from}, {from, to}} {
		bomb, other := pair[0], pair[1]
		if b.At(bomb) != ColorBomb {
			continue
		}
		d := &Detonation{At: bomb, Target: b.At(other)}
		if d.Target.IsSpecial() {
			d.Partner = &other
			if d.Target != ColorBomb {
				d.Target = b.MostCommonBasic()
			}
		}
		return d
	}
	return nil
}
