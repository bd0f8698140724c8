package core

import (
	"strings"
	"testing"
)

func TestNewScreen(t *testing.T) {
	s := NewScreen(10, 5)
	if s.Width() != 10 || s.Height() != 5 {
		t.Fatalf("size = %dx%d, want 10x5", s.Width(), s.Height())
	}
	for y := 0; y < 5; y++ {
		if row := s.Row(y); row != strings.Repeat(" ", 10) {
			t.Errorf("row %d = %q, want blanks", y, row)
		}
	}
}

func TestScreenSetGet(t *testing.T) {
	s := NewScreen(4, 3)
	s.Set(1, 1, 'X')
	s.SetColored(2, 1, '$', ColorYellow)

	tests := []struct {
		x, y  int
		want  rune
		color Color
	}{
		{1, 1, 'X', ColorDefault},
		{2, 1, '$', ColorYellow},
		{0, 0, ' ', ColorDefault},
		{-1, 0, ' ', ColorDefault},
		{4, 0, ' ', ColorDefault},
		{0, 3, ' ', ColorDefault},
	}
	for _, tt := range tests {
		c := s.GetCell(tt.x, tt.y)
		if c.Rune != tt.want || c.Color != tt.color || s.Get(tt.x, tt.y) != tt.want {
			t.Errorf("cell(%d,%d) = %+v, want %q/%d", tt.x, tt.y, c, tt.want, tt.color)
		}
	}

	// Out-of-bounds writes are ignored rather than panicking.
	s.Set(-1, -1, 'Z')
	s.Set(100, 100, 'Z')
}

func TestScreenClear(t *testing.T) {
	s := NewScreen(3, 2)
	s.SetColored(0, 0, '#', ColorRed)
	s.Clear()
	if c := s.GetCell(0, 0); c != (Cell{Rune: ' '}) {
		t.Errorf("after Clear cell = %+v", c)
	}
}

func TestScreenDrawText(t *testing.T) {
	s := NewScreen(8, 1)
	s.DrawText(2, 0, "hi")
	s.DrawTextColored(6, 0, "clipped", ColorGreen)
	if got := s.Row(0); got != "  hi  cl" {
		t.Errorf("row = %q", got)
	}
	if s.GetCell(6, 0).Color != ColorGreen {
		t.Error("colored text lost its color")
	}
}

func TestScreenDrawTextCenteredMultibyte(t *testing.T) {
	s := NewScreen(9, 1)
	s.DrawTextCentered(0, "★ok")
	if got := s.Row(0); got != "   ★ok   " {
		t.Errorf("row = %q", got)
	}
}

func TestScreenDrawBox(t *testing.T) {
	s := NewScreen(5, 4)
	s.DrawBox(NewRect(0, 0, 5, 4), ColorCyan)
	want := []string{
		"┌───┐",
		"│   │",
		"│   │",
		"└───┘",
	}
	for y, w := range want {
		if got := s.Row(y); got != w {
			t.Errorf("row %d = %q, want %q", y, got, w)
		}
	}
	if s.GetCell(0, 0).Color != ColorCyan {
		t.Error("box color not applied")
	}
}

func TestScreenDrawRect(t *testing.T) {
	s := NewScreen(4, 3)
	s.DrawRect(NewRect(1, 1, 2, 2), '#')
	if got := s.String(); got != "    \n ## \n ## " {
		t.Errorf("screen = %q", got)
	}
}

func TestScreenResizeKeepsContent(t *testing.T) {
	s := NewScreen(4, 2)
	s.SetColored(1, 1, 'A', ColorRed)
	s.SetColored(3, 0, 'B', ColorBlue)

	s.Resize(2, 3)
	if s.Width() != 2 || s.Height() != 3 {
		t.Fatalf("size = %dx%d", s.Width(), s.Height())
	}
	if c := s.GetCell(1, 1); c.Rune != 'A' || c.Color != ColorRed {
		t.Errorf("kept cell = %+v", c)
	}
	if got := s.Row(2); got != "  " {
		t.Errorf("new row = %q", got)
	}

	s.Resize(-3, 1)
	if s.Width() != 0 || s.String() != "" {
		t.Errorf("negative resize = %dx%d %q", s.Width(), s.Height(), s.String())
	}
}

func TestRectContainsAndClamp(t *testing.T) {
	r := NewRect(2, 3, 4, 2)
	inside := [][2]int{{2, 3}, {5, 4}}
	outside := [][2]int{{1, 3}, {6, 3}, {2, 5}, {2, 2}}
	for _, p := range inside {
		if !r.Contains(p[0], p[1]) {
			t.Errorf("Contains(%v) = false", p)
		}
	}
	for _, p := range outside {
		if r.Contains(p[0], p[1]) {
			t.Errorf("Contains(%v) = true", p)
		}
	}
	if Clamp(-1, 0, 7) != 0 || Clamp(9, 0, 7) != 7 || Clamp(3, 0, 7) != 3 {
		t.Error("Clamp out of range")
	}
}

func TestInputFrame(t *testing.T) {
	f := NewInputFrame()
	if !f.Empty() {
		t.Error("new frame not empty")
	}
	f.Set(ActionHint)
	f.SetClick(4, 7)
	if !f.Has(ActionHint) || f.Has(ActionHammer) || f.Click == nil || *f.Click != (Point{4, 7}) {
		t.Errorf("frame = %+v", f)
	}
	f.Clear()
	if !f.Empty() || f.Has(ActionHint) {
		t.Error("Clear left input behind")
	}

	var zero InputFrame
	zero.Set(ActionNext)
	if !zero.Has(ActionNext) {
		t.Error("Set on zero frame lost the action")
	}
	if ActionExtraMoves.String() != "ExtraMoves" || Action(99).String() != "Unknown" {
		t.Error("action names")
	}
}
