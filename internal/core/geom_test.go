package core

import "testing"

func TestRectContains(t *testing.T) {
	r := NewRect(2, 3, 4, 2)
	tests := []struct {
		name string
		x, y int
		want bool
	}{
		{"top-left corner", 2, 3, true},
		{"last cell", 5, 4, true},
		{"right edge is outside", 6, 3, false},
		{"bottom edge is outside", 2, 5, false},
		{"left of rect", 1, 3, false},
		{"above rect", 3, 2, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Contains(tt.x, tt.y); got != tt.want {
				t.Errorf("Contains(%d, %d) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
	if r.Right() != 6 || r.Bottom() != 5 {
		t.Errorf("edges = %d,%d", r.Right(), r.Bottom())
	}
}

func TestClamp(t *testing.T) {
	tests := []struct{ val, want int }{
		{-3, 0},
		{0, 0},
		{4, 4},
		{7, 7},
		{12, 7},
	}
	for _, tt := range tests {
		if got := Clamp(tt.val, 0, 7); got != tt.want {
			t.Errorf("Clamp(%d, 0, 7) = %d, want %d", tt.val, got, tt.want)
		}
	}
}
