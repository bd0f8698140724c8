package match3

import "testing"

func TestTrySwapRejectsAndReverts(t *testing.T) {
	tests := []struct {
		name     string
		from, to Position
		reason   SwapReason
	}{
		{"no match", pos(0, 0), pos(0, 1), SwapNoMatch},
		{"not adjacent", pos(0, 0), pos(2, 2), SwapNotAdjacent},
		{"diagonal", pos(0, 0), pos(1, 1), SwapNotAdjacent},
		{"off board", pos(0, 0), pos(-1, 0), SwapOutOfBounds},
		{"blocked", pos(4, 4), pos(4, 5), SwapBlockedCell},
		{"empty", pos(5, 5), pos(5, 4), SwapEmptyCell},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := stripes(8, 8)
			b.Set(pos(4, 4), Blocked)
			b.Set(pos(5, 5), Empty)
			before := b.Clone()

			res := TrySwap(b, tt.from, tt.to, true)
			if res.Accepted {
				t.Fatal("swap should be rejected")
			}
			if res.Reason != tt.reason {
				t.Errorf("reason = %v, want %v", res.Reason, tt.reason)
			}
			if !b.Equal(before) {
				t.Error("rejected swap changed the board")
			}
		})
	}
}

func TestTrySwapAccepts(t *testing.T) {
	b := stripes(8, 8)
	b.Set(pos(3, 1), Poop)
	b.Set(pos(3, 2), Poop)
	b.Set(pos(3, 4), Poop)

	res := TrySwap(b, pos(3, 3), pos(3, 4), false)
	if !res.Accepted || res.Reason != SwapOK {
		t.Fatalf("swap rejected: %v", res.Reason)
	}
	if b.At(pos(3, 3)) != Poop {
		t.Errorf("swap not applied: (3,3) = %v", b.At(pos(3, 3)))
	}
	if len(res.Matches) != 1 || res.Matches[0].Len() != 3 {
		t.Errorf("matches = %+v, want one run of 3", res.Matches)
	}
}

func TestTrySwapColorBomb(t *testing.T) {
	b := stripes(8, 8)
	b.Set(pos(3, 3), ColorBomb)
	other := b.At(pos(3, 4))

	t.Run("disabled specials need a match", func(t *testing.T) {
		c := b.Clone()
		if res := TrySwap(c, pos(3, 3), pos(3, 4), false); res.Accepted {
			t.Error("bomb swap accepted without specials")
		}
	})

	t.Run("detonates on the swapped kind", func(t *testing.T) {
		c := b.Clone()
		res := TrySwap(c, pos(3, 3), pos(3, 4), true)
		if !res.Accepted || res.Detonation == nil {
			t.Fatalf("bomb swap = %+v", res)
		}
		if res.Detonation.At != pos(3, 4) {
			t.Errorf("detonation at %v, want (3,4)", res.Detonation.At)
		}
		if res.Detonation.Target != other {
			t.Errorf("target = %v, want %v", res.Detonation.Target, other)
		}
	})

	t.Run("two bombs target the whole board", func(t *testing.T) {
		c := b.Clone()
		c.Set(pos(3, 4), ColorBomb)
		res := TrySwap(c, pos(3, 3), pos(3, 4), true)
		if res.Detonation == nil || res.Detonation.Target != ColorBomb {
			t.Fatalf("detonation = %+v", res.Detonation)
		}
		if res.Detonation.Partner == nil || *res.Detonation.Partner != pos(3, 3) {
			t.Errorf("partner = %v, want (3,3)", res.Detonation.Partner)
		}
	})

	t.Run("special partner falls back to most common", func(t *testing.T) {
		c := b.Clone()
		c.Set(pos(3, 4), Wrapped)
		res := TrySwap(c, pos(3, 3), pos(3, 4), true)
		if res.Detonation == nil {
			t.Fatal("no detonation")
		}
		if want := c.MostCommonBasic(); res.Detonation.Target != want {
			t.Errorf("target = %v, want %v", res.Detonation.Target, want)
		}
		if res.Detonation.Partner == nil || c.At(*res.Detonation.Partner) != Wrapped {
			t.Errorf("partner = %v, want the wrapped tile", res.Detonation.Partner)
		}
	})
}

func TestSelectionClick(t *testing.T) {
	b := stripes(8, 8)
	b.Set(pos(7, 7), Blocked)

	t.Run("select then deselect", func(t *testing.T) {
		var s Selection
		if out, _ := s.Click(b, pos(2, 2)); out != ClickSelected {
			t.Fatalf("first click = %v", out)
		}
		if out, _ := s.Click(b, pos(2, 2)); out != ClickDeselected {
			t.Fatalf("second click = %v", out)
		}
		if _, ok := s.Current(); ok {
			t.Error("selection should be empty")
		}
	})

	t.Run("non adjacent reselects", func(t *testing.T) {
		var s Selection
		s.Click(b, pos(0, 0))
		out, p := s.Click(b, pos(5, 5))
		if out != ClickReselected || p != pos(5, 5) {
			t.Fatalf("click = %v %v, want reselected (5,5)", out, p)
		}
		if cur, ok := s.Current(); !ok || cur != pos(5, 5) {
			t.Errorf("current = %v %v", cur, ok)
		}
	})

	t.Run("adjacent requests swap and clears", func(t *testing.T) {
		var s Selection
		s.Click(b, pos(3, 3))
		out, prev := s.Click(b, pos(3, 4))
		if out != ClickSwap || prev != pos(3, 3) {
			t.Fatalf("click = %v %v, want swap from (3,3)", out, prev)
		}
		if _, ok := s.Current(); ok {
			t.Error("selection should be cleared after a swap request")
		}
	})

	t.Run("blocked and off board ignored", func(t *testing.T) {
		var s Selection
		if out, _ := s.Click(b, pos(7, 7)); out != ClickIgnored {
			t.Errorf("blocked click = %v", out)
		}
		if out, _ := s.Click(b, pos(9, 0)); out != ClickIgnored {
			t.Errorf("off-board click = %v", out)
		}
		s.Click(b, pos(0, 0))
		if out, _ := s.Click(b, pos(7, 7)); out != ClickIgnored {
			t.Errorf("blocked second click = %v", out)
		}
		if cur, ok := s.Current(); !ok || cur != pos(0, 0) {
			t.Error("ignored click should keep the selection")
		}
	})
}
