package match3

// ClickOutcome is what a single cell click did to the selection.
type ClickOutcome int

const (
	ClickIgnored ClickOutcome = iota
	ClickSelected
	ClickDeselected
	ClickReselected
	ClickSwap
)

func (o ClickOutcome) String() string {
	switch o {
	case ClickSelected:
		return "selected"
	case ClickDeselected:
		return "deselected"
	case ClickReselected:
		return "reselected"
	case ClickSwap:
		return "swap"
	default:
		return "ignored"
	}
}

// Selection holds at most one selected cell.
type Selection struct {
	pos    Position
	active bool
}

// Current returns the selected cell, if any.
func (s Selection) Current() (Position, bool) {
	return s.pos, s.active
}

// Clear drops the selection.
func (s *Selection) Clear() {
	s.active = false
}

// Click advances the selection state machine. For ClickSwap the returned
// position is the previously selected cell and the selection is cleared
// whatever the swap's outcome.
func (s *Selection) Click(b Board, p Position) (ClickOutcome, Position) {
	selectable := b.InBounds(p) && b.At(p) != Blocked && b.At(p) != Empty

	if !s.active {
		if !selectable {
			return ClickIgnored, Position{}
		}
		s.pos, s.active = p, true
		return ClickSelected, p
	}

	prev := s.pos
	switch {
	case p == prev:
		s.active = false
		return ClickDeselected, prev
	case Adjacent(prev, p):
		s.active = false
		return ClickSwap, prev
	case selectable:
		s.pos = p
		return ClickReselected, p
	default:
		return ClickIgnored, prev
	}
}
