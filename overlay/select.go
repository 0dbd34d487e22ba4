package overlay

import "github.com/golang/geo/r2"

// SelectAt resolves pt against page's elements and makes the hit element the
// store's single selection. Elements are scanned in reverse insertion order,
// so where boxes overlap the most recently added one wins, matching the
// visual stacking order. Bounding-box edges count as hits.
//
// A miss clears the selection and returns nil. At most one element across
// all pages is selected at any time.
func (s *Store) SelectAt(page int, pt r2.Point) *Element {
	s.ClearSelection()

	seq := s.pages[page]
	for i := len(seq) - 1; i >= 0; i-- {
		if seq[i].Contains(pt) {
			seq[i].Selected = true
			s.selected = seq[i]
			return seq[i]
		}
	}

	return nil
}

// ClearSelection deselects the selected element, if any. Idempotent.
func (s *Store) ClearSelection() {
	if s.selected != nil {
		s.selected.Selected = false
		s.selected = nil
	}
}

// MoveSelected shifts the selected element by (dx, dy) and reports whether a
// move happened. Deltas accumulate: callers driving a drag must pass the
// displacement since their previous call, not since the drag started.
func (s *Store) MoveSelected(dx, dy float64) bool {
	if s.selected == nil {
		return false
	}
	s.selected.Position = r2.Point{
		X: s.selected.Position.X + dx,
		Y: s.selected.Position.Y + dy,
	}
	return true
}

// EditSelected replaces the selected text element's content and refits its
// bounding box. Returns false when nothing is selected or the selection is
// not a text element.
func (s *Store) EditSelected(content string) bool {
	if s.selected == nil || s.selected.Kind != Text {
		return false
	}
	s.selected.Content = content
	s.selected.fitText()
	return true
}

// SetSelectedFontSize changes the selected text element's font size and
// refits its bounding box. Same no-op signaling as EditSelected.
func (s *Store) SetSelectedFontSize(fontSize float64) bool {
	if s.selected == nil || s.selected.Kind != Text || fontSize <= 0 {
		return false
	}
	s.selected.FontSize = fontSize
	s.selected.fitText()
	return true
}

// DeleteSelected removes the selected element from its page sequence and
// clears the selection. Returns false when nothing is selected.
func (s *Store) DeleteSelected() bool {
	if s.selected == nil {
		return false
	}
	s.Remove(s.selected)
	return true
}
