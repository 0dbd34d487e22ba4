// Package session replays scripted editing operations against an overlay
// store. It stands in for an interactive presentation layer: each op is one
// discrete input event, applied in order on a single goroutine.
package session

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/golang/geo/r2"

	"github.com/pdfdesk/pdfdesk/overlay"
)

// Op is a single scripted operation. Fields are a union over all op types;
// each op reads only the ones it needs.
type Op struct {
	Op string `json:"op"`

	Page int     `json:"page,omitempty"`
	X    float64 `json:"x,omitempty"`
	Y    float64 `json:"y,omitempty"`

	// add-text, edit
	Text     string  `json:"text,omitempty"`
	FontSize float64 `json:"fontSize,omitempty"`
	Color    string  `json:"color,omitempty"`

	// add-image
	Image  string  `json:"image,omitempty"`
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`

	// move
	DX float64 `json:"dx,omitempty"`
	DY float64 `json:"dy,omitempty"`
}

// Result reports what a replayed script did. Misses counts select ops that
// hit nothing and move/edit/delete ops that had no selection to act on;
// per the model's contract those are no-ops, not errors.
type Result struct {
	Applied int `json:"applied"`
	Misses  int `json:"misses"`
}

// Load decodes a script: a JSON array of ops.
func Load(r io.Reader) ([]Op, error) {
	var ops []Op
	if err := json.NewDecoder(r).Decode(&ops); err != nil {
		return nil, fmt.Errorf("decode script: %w", err)
	}
	return ops, nil
}

// Apply replays ops against store in order. It stops at the first malformed
// op; no-op outcomes of well-formed ops are counted, not fatal.
func Apply(store *overlay.Store, ops []Op) (Result, error) {
	var res Result

	for i, op := range ops {
		ok, err := apply(store, op)
		if err != nil {
			return res, fmt.Errorf("op %d: %w", i+1, err)
		}
		if ok {
			res.Applied++
		} else {
			res.Misses++
		}
	}

	return res, nil
}

func apply(store *overlay.Store, op Op) (bool, error) {
	switch op.Op {
	case "add-text":
		if op.Text == "" {
			return false, fmt.Errorf("add-text needs text")
		}
		store.AddText(op.Page, op.Text, r2.Point{X: op.X, Y: op.Y}, op.FontSize, op.Color)
		return true, nil

	case "add-image":
		if op.Image == "" {
			return false, fmt.Errorf("add-image needs an image path")
		}
		if op.Width <= 0 || op.Height <= 0 {
			return false, fmt.Errorf("add-image needs a positive width and height")
		}
		store.AddImage(op.Page, op.Image, r2.Point{X: op.X, Y: op.Y}, r2.Point{X: op.Width, Y: op.Height})
		return true, nil

	case "select":
		return store.SelectAt(op.Page, r2.Point{X: op.X, Y: op.Y}) != nil, nil

	case "move":
		return store.MoveSelected(op.DX, op.DY), nil

	case "edit":
		return store.EditSelected(op.Text), nil

	case "font-size":
		return store.SetSelectedFontSize(op.FontSize), nil

	case "delete":
		return store.DeleteSelected(), nil

	case "clear":
		store.ClearSelection()
		return true, nil

	default:
		return false, fmt.Errorf("unknown op %q", op.Op)
	}
}
