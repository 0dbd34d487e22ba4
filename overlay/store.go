package overlay

import (
	"sort"

	"github.com/golang/geo/r2"
)

// Store owns every overlay element of an editing session, keyed by the
// zero-based page the element sits on. Insertion order within a page is the
// z-order: later elements draw on top and win hit tests.
//
// The store is not safe for concurrent use. All mutation happens on the
// event loop that feeds it, one operation at a time.
type Store struct {
	pages    map[int][]*Element
	selected *Element
	nextID   int64
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{pages: make(map[int][]*Element)}
}

// AddText appends a text element to page. A fontSize of zero or less falls
// back to DefaultFontSize, an empty color to DefaultColor. The element's
// size is derived from content length and font size.
func (s *Store) AddText(page int, content string, pos r2.Point, fontSize float64, color string) *Element {
	if fontSize <= 0 {
		fontSize = DefaultFontSize
	}
	if color == "" {
		color = DefaultColor
	}

	el := &Element{
		ID:       s.issueID(),
		Kind:     Text,
		Content:  content,
		Position: pos,
		FontSize: fontSize,
		Color:    color,
		Page:     page,
	}
	el.fitText()

	s.pages[page] = append(s.pages[page], el)
	return el
}

// AddImage appends an image element to page. Content is a reference to the
// image data (a file path); the bounding box size is caller-supplied.
func (s *Store) AddImage(page int, ref string, pos r2.Point, size r2.Point) *Element {
	el := &Element{
		ID:       s.issueID(),
		Kind:     Image,
		Content:  ref,
		Position: pos,
		Size:     size,
		Page:     page,
	}

	s.pages[page] = append(s.pages[page], el)
	return el
}

// ElementsOf returns page's elements in z-order. Pages with no elements,
// including page numbers the document does not have, yield nil.
func (s *Store) ElementsOf(page int) []*Element {
	return s.pages[page]
}

// Remove deletes el from its page sequence by identity. Removing an element
// that is not in the store is a no-op. Removing the selected element clears
// the selection.
func (s *Store) Remove(el *Element) {
	seq := s.pages[el.Page]
	for i, e := range seq {
		if e == el {
			s.pages[el.Page] = append(seq[:i], seq[i+1:]...)
			if s.selected == el {
				el.Selected = false
				s.selected = nil
			}
			return
		}
	}
}

// Pages returns the page numbers that currently hold elements, ascending.
func (s *Store) Pages() []int {
	pages := make([]int, 0, len(s.pages))
	for p, seq := range s.pages {
		if len(seq) > 0 {
			pages = append(pages, p)
		}
	}
	sort.Ints(pages)
	return pages
}

// Selected returns the selected element, or nil when nothing is selected.
func (s *Store) Selected() *Element {
	return s.selected
}

// Count returns the number of elements on page.
func (s *Store) Count(page int) int {
	return len(s.pages[page])
}

func (s *Store) issueID() int64 {
	s.nextID++
	return s.nextID
}
