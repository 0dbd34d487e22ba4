package overlay

import (
	"encoding/json"
	"unicode/utf8"

	"github.com/golang/geo/r2"
)

// Element kinds.
const (
	Text  string = "text"
	Image        = "image"
)

// Default text attributes, applied when an add operation leaves them unset.
const (
	DefaultFontSize float64 = 12
	DefaultColor    string  = "black"
)

// Element is a single annotation placed on a page. Position is the top-left
// corner of its bounding box in document points; the y-axis grows downward,
// matching rendered page rasters.
type Element struct {
	ID       int64
	Kind     string
	Content  string
	Position r2.Point
	Size     r2.Point
	FontSize float64
	Color    string
	Page     int
	Selected bool
}

// Bounds returns the element's axis-aligned bounding box.
func (e *Element) Bounds() r2.Rect {
	return r2.RectFromPoints(
		e.Position,
		r2.Point{X: e.Position.X + e.Size.X, Y: e.Position.Y + e.Size.Y},
	)
}

// Contains reports whether pt falls on the element, edges included.
func (e *Element) Contains(pt r2.Point) bool {
	return e.Bounds().ContainsPoint(pt)
}

// fitText derives the bounding box of a text element from its content and
// font size. Called on construction and again whenever either changes.
func (e *Element) fitText() {
	if e.Kind != Text {
		return
	}
	e.Size = r2.Point{
		X: 0.6 * e.FontSize * float64(utf8.RuneCountInString(e.Content)),
		Y: e.FontSize,
	}
}

type elementJSON struct {
	ID       int64   `json:"id"`
	Type     string  `json:"type"`
	Content  string  `json:"content"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	FontSize float64 `json:"fontSize,omitempty"`
	Color    string  `json:"color,omitempty"`
	Page     int     `json:"page"`
}

// MarshalJSON flattens the element for session dumps.
func (e *Element) MarshalJSON() ([]byte, error) {
	return json.Marshal(elementJSON{
		ID:       e.ID,
		Type:     e.Kind,
		Content:  e.Content,
		X:        e.Position.X,
		Y:        e.Position.Y,
		Width:    e.Size.X,
		Height:   e.Size.Y,
		FontSize: e.FontSize,
		Color:    e.Color,
		Page:     e.Page,
	})
}

// UnmarshalJSON restores an element from its flattened form. Selection state
// is not part of the wire format.
func (e *Element) UnmarshalJSON(data []byte) error {
	var w elementJSON
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*e = Element{
		ID:       w.ID,
		Kind:     w.Type,
		Content:  w.Content,
		Position: r2.Point{X: w.X, Y: w.Y},
		Size:     r2.Point{X: w.Width, Y: w.Height},
		FontSize: w.FontSize,
		Color:    w.Color,
		Page:     w.Page,
	}
	return nil
}
