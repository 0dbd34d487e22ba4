package session

import (
	"strings"
	"testing"

	"github.com/golang/geo/r2"

	"github.com/pdfdesk/pdfdesk/overlay"
)

func TestLoad(t *testing.T) {
	script := `[
		{"op": "add-text", "page": 0, "text": "hello", "x": 100, "y": 100, "fontSize": 14, "color": "#1D3557"},
		{"op": "select", "page": 0, "x": 105, "y": 105},
		{"op": "move", "dx": 5, "dy": -3}
	]`

	ops, err := Load(strings.NewReader(script))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(ops) != 3 {
		t.Fatalf("len(ops) = %d, want 3", len(ops))
	}
	if ops[0].Op != "add-text" || ops[0].Text != "hello" || ops[0].FontSize != 14 {
		t.Errorf("first op decoded as %+v", ops[0])
	}
	if ops[2].DX != 5 || ops[2].DY != -3 {
		t.Errorf("move deltas decoded as (%v, %v)", ops[2].DX, ops[2].DY)
	}
}

func TestLoadRejectsJunk(t *testing.T) {
	if _, err := Load(strings.NewReader(`{"op": "not-an-array"}`)); err == nil {
		t.Error("Load accepted a non-array script")
	}
}

func TestApplyFullInteraction(t *testing.T) {
	store := overlay.NewStore()
	ops := []Op{
		{Op: "add-text", Page: 0, Text: "draft", X: 100, Y: 100},
		{Op: "select", Page: 0, X: 101, Y: 101},
		{Op: "move", DX: 5, DY: 0},
		{Op: "move", DX: 0, DY: 5},
		{Op: "edit", Text: "final"},
		{Op: "clear"},
	}

	res, err := Apply(store, ops)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if res.Applied != 6 || res.Misses != 0 {
		t.Errorf("Result = %+v, want 6 applied, 0 misses", res)
	}

	els := store.ElementsOf(0)
	if len(els) != 1 {
		t.Fatalf("page 0 has %d elements, want 1", len(els))
	}
	if els[0].Content != "final" {
		t.Errorf("Content = %q, want %q", els[0].Content, "final")
	}
	if els[0].Position != (r2.Point{X: 105, Y: 105}) {
		t.Errorf("Position = %+v, want {105 105}", els[0].Position)
	}
	if store.Selected() != nil {
		t.Error("selection not cleared")
	}
}

func TestApplyCountsMisses(t *testing.T) {
	store := overlay.NewStore()
	ops := []Op{
		{Op: "select", Page: 0, X: 1, Y: 1}, // nothing there
		{Op: "move", DX: 5, DY: 5},          // no selection
		{Op: "delete"},                      // no selection
	}

	res, err := Apply(store, ops)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if res.Applied != 0 || res.Misses != 3 {
		t.Errorf("Result = %+v, want 0 applied, 3 misses", res)
	}
}

func TestApplyDelete(t *testing.T) {
	store := overlay.NewStore()
	ops := []Op{
		{Op: "add-image", Page: 1, Image: "logo.png", X: 10, Y: 10, Width: 50, Height: 50},
		{Op: "select", Page: 1, X: 20, Y: 20},
		{Op: "delete"},
	}

	if _, err := Apply(store, ops); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if store.Count(1) != 0 {
		t.Errorf("Count = %d, want 0", store.Count(1))
	}
}

func TestApplyMalformedOps(t *testing.T) {
	tests := []struct {
		name string
		op   Op
	}{
		{"unknown op", Op{Op: "rotate"}},
		{"add-text without text", Op{Op: "add-text", Page: 0}},
		{"add-image without path", Op{Op: "add-image", Width: 10, Height: 10}},
		{"add-image without size", Op{Op: "add-image", Image: "a.png"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Apply(overlay.NewStore(), []Op{tt.op}); err == nil {
				t.Error("Apply accepted a malformed op")
			}
		})
	}
}
