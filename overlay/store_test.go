package overlay

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/golang/geo/r2"
)

func TestAddTextDefaults(t *testing.T) {
	s := NewStore()
	el := s.AddText(0, "hello", r2.Point{X: 10, Y: 20}, 0, "")

	if el.FontSize != DefaultFontSize {
		t.Errorf("FontSize = %v, want %v", el.FontSize, DefaultFontSize)
	}
	if el.Color != DefaultColor {
		t.Errorf("Color = %q, want %q", el.Color, DefaultColor)
	}
	if el.Kind != Text {
		t.Errorf("Kind = %q, want %q", el.Kind, Text)
	}
	if el.Page != 0 {
		t.Errorf("Page = %d, want 0", el.Page)
	}
}

func TestTextSizeHeuristic(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		fontSize float64
		want     r2.Point
	}{
		{"five chars at 12", "hello", 12, r2.Point{X: 36, Y: 12}},
		{"empty string", "", 12, r2.Point{X: 0, Y: 12}},
		{"one char at 10", "x", 10, r2.Point{X: 6, Y: 10}},
		{"multibyte runes", "héllo", 12, r2.Point{X: 36, Y: 12}},
		{"larger font", "ab", 20, r2.Point{X: 24, Y: 20}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewStore()
			el := s.AddText(0, tt.content, r2.Point{}, tt.fontSize, "black")
			if math.Abs(el.Size.X-tt.want.X) > 1e-9 || math.Abs(el.Size.Y-tt.want.Y) > 1e-9 {
				t.Errorf("Size = %+v, want %+v", el.Size, tt.want)
			}
		})
	}
}

func TestElementIDsAreUnique(t *testing.T) {
	s := NewStore()
	seen := make(map[int64]bool)

	for i := 0; i < 10; i++ {
		el := s.AddText(i%3, "a", r2.Point{}, 12, "black")
		if seen[el.ID] {
			t.Fatalf("duplicate id %d", el.ID)
		}
		seen[el.ID] = true
	}
}

func TestElementsOfPreservesInsertionOrder(t *testing.T) {
	s := NewStore()
	a := s.AddText(2, "a", r2.Point{}, 12, "black")
	b := s.AddImage(2, "b.png", r2.Point{X: 5}, r2.Point{X: 10, Y: 10})
	c := s.AddText(2, "c", r2.Point{X: 9}, 12, "black")

	got := s.ElementsOf(2)
	want := []*Element{a, b, c}

	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("element %d = %v, want %v", i, got[i].ID, want[i].ID)
		}
	}
}

func TestElementsOfUnknownPage(t *testing.T) {
	s := NewStore()
	if got := s.ElementsOf(99); len(got) != 0 {
		t.Errorf("ElementsOf(99) = %v, want empty", got)
	}
}

func TestCountTracksAddsAndDeletes(t *testing.T) {
	s := NewStore()
	s.AddText(0, "a", r2.Point{X: 0, Y: 0}, 12, "black")
	s.AddText(0, "b", r2.Point{X: 100, Y: 100}, 12, "black")
	s.AddImage(0, "c.png", r2.Point{X: 200, Y: 200}, r2.Point{X: 10, Y: 10})

	if s.Count(0) != 3 {
		t.Fatalf("Count = %d, want 3", s.Count(0))
	}

	s.SelectAt(0, r2.Point{X: 205, Y: 205})
	if !s.DeleteSelected() {
		t.Fatal("DeleteSelected returned false after a hit")
	}
	if s.Count(0) != 2 {
		t.Errorf("Count after delete = %d, want 2", s.Count(0))
	}
}

func TestRemoveAbsentElementIsNoop(t *testing.T) {
	s := NewStore()
	kept := s.AddText(0, "kept", r2.Point{}, 12, "black")

	stray := &Element{ID: 999, Kind: Text, Page: 0}
	s.Remove(stray)

	if s.Count(0) != 1 || s.ElementsOf(0)[0] != kept {
		t.Errorf("Remove of absent element disturbed the page sequence")
	}
}

func TestPagesEnumeratesOccupiedPages(t *testing.T) {
	s := NewStore()
	s.AddText(5, "a", r2.Point{}, 12, "black")
	s.AddText(1, "b", r2.Point{X: 50, Y: 50}, 12, "black")
	s.AddText(1, "c", r2.Point{}, 12, "black")

	got := s.Pages()
	want := []int{1, 5}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("Pages() = %v, want %v", got, want)
	}

	s.SelectAt(5, r2.Point{X: 1, Y: 1})
	s.DeleteSelected()
	if got := s.Pages(); len(got) != 1 || got[0] != 1 {
		t.Errorf("Pages() after emptying page 5 = %v, want [1]", got)
	}
}

func TestElementJSONRoundTrip(t *testing.T) {
	s := NewStore()
	el := s.AddText(3, "note", r2.Point{X: 12.5, Y: 40}, 14, "#1D3557")

	data, err := json.Marshal(el)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var got Element
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	if got.ID != el.ID || got.Kind != el.Kind || got.Content != el.Content ||
		got.Position != el.Position || got.Size != el.Size ||
		got.FontSize != el.FontSize || got.Color != el.Color || got.Page != el.Page {
		t.Errorf("round trip = %+v, want %+v", got, *el)
	}
	if got.Selected {
		t.Error("Selected survived the wire format")
	}
}
