// Package overlay holds the in-memory annotation model: positioned text and
// image elements attached to document pages, with selection, hit-testing,
// drag-move, in-place edit and deletion.
//
// Elements are visual-only. They are drawn on top of rendered page rasters
// and are never written back into the document itself. The model lives for
// the duration of an editing session and starts empty for every document.
package overlay
