package core

import (
	"strings"
	"testing"
)

func TestNewScreen(t *testing.T) {
	s := NewScreen(80, 24)

	if s.Width() != 80 {
		t.Errorf("Width() = %d, expected 80", s.Width())
	}
	if s.Height() != 24 {
		t.Errorf("Height() = %d, expected 24", s.Height())
	}

	for y := range s.Height() {
		for x := range s.Width() {
			if s.Get(x, y) != ' ' {
				t.Fatalf("New screen should be filled with spaces, got %q at (%d, %d)", s.Get(x, y), x, y)
			}
		}
	}
}

func TestScreenSetGet(t *testing.T) {
	s := NewScreen(10, 10)

	s.SetColored(5, 5, 'X', ColorGold)
	cell := s.GetCell(5, 5)
	if cell.Rune != 'X' || cell.Color != ColorGold {
		t.Errorf("GetCell(5, 5) = %+v, expected gold 'X'", cell)
	}

	// Out of bounds writes are dropped
	s.Set(-1, 0, 'A')
	s.Set(100, 0, 'A')
	s.Set(0, -1, 'A')
	s.Set(0, 100, 'A')

	if s.Get(-1, 0) != ' ' || s.Get(100, 0) != ' ' {
		t.Error("Out of bounds Get should return space")
	}
}

func TestScreenClear(t *testing.T) {
	s := NewScreen(4, 3)
	s.DrawRect(NewRect(0, 0, 4, 3), 'X')
	s.Clear()

	if got := s.String(); got != "    \n    \n    " {
		t.Errorf("After Clear, String() = %q", got)
	}
}

func TestScreenDrawText(t *testing.T) {
	s := NewScreen(12, 3)
	s.DrawText(1, 0, "Score: 10")
	s.DrawTextCentered(2, "ok")

	if row := s.Row(0); row != " Score: 10  " {
		t.Errorf("Row(0) = %q", row)
	}
	if row := s.Row(2); strings.TrimSpace(row) != "ok" || strings.Index(row, "ok") != 5 {
		t.Errorf("Row(2) = %q, expected centered text", row)
	}

	// Clipped at the right edge
	s.DrawText(10, 1, "abc")
	if row := s.Row(1); row != "          ab" {
		t.Errorf("Row(1) = %q, expected clipped text", row)
	}
}

func TestScreenDrawBox(t *testing.T) {
	s := NewScreen(5, 3)
	s.DrawBox(NewRect(0, 0, 5, 3))

	expected := "┌───┐\n│   │\n└───┘"
	if got := s.String(); got != expected {
		t.Errorf("DrawBox produced:\n%s\nexpected:\n%s", got, expected)
	}
}

func TestScreenResize(t *testing.T) {
	s := NewScreen(4, 4)
	s.Set(1, 1, 'X')
	s.Resize(6, 2)

	if s.Width() != 6 || s.Height() != 2 {
		t.Fatalf("Resize gave %dx%d, expected 6x2", s.Width(), s.Height())
	}
	if s.Get(1, 1) != ' ' {
		t.Error("Resize should clear the buffer")
	}
	if s.Row(5) != "      " {
		t.Error("Row out of range should be blank")
	}
}
