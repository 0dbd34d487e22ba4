package pdfdoc

import (
	"fmt"
	"image"
	"math"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/golang/geo/r2"
	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/mgmeyers/unipdf/v3/core"
	"github.com/mgmeyers/unipdf/v3/model"

	"github.com/pdfdesk/pdfdesk/overlay"
	"github.com/pdfdesk/pdfdesk/render"
)

// ImportOptions controls how document annotations become overlay elements.
// Square annotations are cropped out of the rendered page and saved under
// ImageDir; when ImageDir is empty they are skipped.
type ImportOptions struct {
	ImageDir string
	BaseName string
	Format   string // "png" or "jpg"
	Quality  int    // jpg only
	DPI      float64
}

func (o *ImportOptions) fillDefaults() {
	if o.BaseName == "" {
		o.BaseName = "annot"
	}
	if o.Format == "" {
		o.Format = "png"
	}
	if o.Quality <= 0 {
		o.Quality = 90
	}
	if o.DPI <= 0 {
		o.DPI = 120
	}
}

// ImportAnnotations reads the document's own annotations and appends them to
// store as overlay elements: text notes become text elements, square
// annotations become image elements backed by a cropped page raster. Markup
// annotations (highlight, strikeout, underline) have no free-standing box
// and are skipped. Text notes that carry no usable color fall back to the
// default text color. Returns the added elements in import order.
//
// Annotation rectangles live in PDF coordinates with the origin at the
// bottom left; overlay positions are top-left based, so the y-axis is
// flipped against the page height here.
func (d *Document) ImportAnnotations(store *overlay.Store, opts ImportOptions) ([]*overlay.Element, error) {
	opts.fillDefaults()
	var imported []*overlay.Element

	for i := 0; i < d.PageCount(); i++ {
		page, err := d.reader.GetPage(i + 1)
		if err != nil {
			return imported, fmt.Errorf("page %d: %w", i+1, err)
		}

		annotations, err := page.GetAnnotations()
		if err != nil {
			return imported, fmt.Errorf("page %d annotations: %w", i+1, err)
		}

		var pageImg image.Image // rendered lazily, only if a square annotation needs a crop

		for _, annotation := range annotations {
			rect, ok := annotRect(annotation)
			if !ok {
				continue
			}

			switch annotation.GetContext().(type) {
			case *model.PdfAnnotationText:
				content := ""
				if annotation.Contents != nil {
					content = stripControl(annotation.Contents.String())
				}
				if content == "" {
					continue
				}

				pos := topLeft(rect, pageHeight(page))
				imported = append(imported, store.AddText(i, content, pos, 0, annotColor(annotation)))

			case *model.PdfAnnotationSquare:
				if opts.ImageDir == "" {
					continue
				}

				if pageImg == nil {
					pageImg, err = d.RenderPage(i, opts.DPI)
					if err != nil {
						return imported, err
					}
				}

				path, err := cropAnnotImage(pageImg, page, i, rect, opts)
				if err != nil {
					return imported, err
				}

				pos := topLeft(rect, pageHeight(page))
				size := r2.Point{X: rect.Size().X, Y: rect.Size().Y}
				imported = append(imported, store.AddImage(i, path, pos, size))
			}
		}
	}

	return imported, nil
}

// cropAnnotImage cuts the annotation's region out of the page raster and
// writes it under opts.ImageDir, returning the written path.
func cropAnnotImage(pageImg image.Image, page *model.PdfPage, pageIndex int, rect r2.Rect, opts ImportOptions) (string, error) {
	if err := os.MkdirAll(opts.ImageDir, os.ModePerm); err != nil {
		return "", fmt.Errorf("create %s: %w", opts.ImageDir, err)
	}

	cropped, err := render.Crop(pageImg, annotCropRect(pageImg.Bounds(), page, rect))
	if err != nil {
		return "", err
	}

	path := filepath.Join(opts.ImageDir, fmt.Sprintf(
		"%s-%d-x%d-y%d.%s",
		opts.BaseName, pageIndex+1, int(rect.X.Lo), int(rect.Y.Lo), opts.Format,
	))

	if err := render.WriteImage(opts.Format, cropped, path, opts.Quality); err != nil {
		return "", err
	}

	return path, nil
}

// annotCropRect maps an annotation rectangle in PDF points onto raster
// pixels. The raster follows the page's visual orientation, so both axes
// swap for 90/270 degree page rotation.
func annotCropRect(imgBounds image.Rectangle, page *model.PdfPage, rect r2.Rect) image.Rectangle {
	height := pageHeight(page)
	scale := float64(imgBounds.Max.X) / pageWidth(page)

	return image.Rect(
		int(math.Round(rect.X.Lo*scale)),
		int(math.Round((height-rect.Y.Hi)*scale)),
		int(math.Round(rect.X.Hi*scale)),
		int(math.Round((height-rect.Y.Lo)*scale)),
	)
}

// annotRect returns the annotation's bounding rectangle in PDF coordinates.
func annotRect(annotation *model.PdfAnnotation) (r2.Rect, bool) {
	arr, ok := annotation.Rect.(*core.PdfObjectArray)
	if !ok {
		return r2.Rect{}, false
	}

	coords, err := arr.ToFloat64Array()
	if err != nil || len(coords) < 4 {
		return r2.Rect{}, false
	}

	return r2.RectFromPoints(
		r2.Point{X: coords[0], Y: coords[1]},
		r2.Point{X: coords[2], Y: coords[3]},
	), true
}

// annotColor extracts the annotation color as "#rrggbb", or "" when the
// annotation carries none.
func annotColor(annotation *model.PdfAnnotation) string {
	var c core.PdfObject

	switch ctx := annotation.GetContext().(type) {
	case *model.PdfAnnotationText:
		c = ctx.C
	case *model.PdfAnnotationSquare:
		c = ctx.C
	case *model.PdfAnnotationHighlight:
		c = ctx.C
	case *model.PdfAnnotationStrikeOut:
		c = ctx.C
	case *model.PdfAnnotationUnderline:
		c = ctx.C
	}

	if c == nil {
		return ""
	}

	arr, ok := c.(*core.PdfObjectArray)
	if !ok {
		return ""
	}

	clr, err := arr.ToFloat64Array()
	if err != nil || len(clr) < 3 {
		return ""
	}

	return colorful.Color{R: clr[0], G: clr[1], B: clr[2]}.Hex()
}

// pageWidth returns the page's visual width, accounting for 90/270 degree
// page rotation.
func pageWidth(page *model.PdfPage) float64 {
	if page.Rotate != nil && (*page.Rotate == 90 || *page.Rotate == 270) {
		return page.MediaBox.Height()
	}
	return page.MediaBox.Width()
}

// pageHeight returns the page's visual height, accounting for 90/270 degree
// page rotation.
func pageHeight(page *model.PdfPage) float64 {
	if page.Rotate != nil && (*page.Rotate == 90 || *page.Rotate == 270) {
		return page.MediaBox.Width()
	}
	return page.MediaBox.Height()
}

// topLeft converts a PDF-space rectangle into the overlay's top-left based
// position.
func topLeft(rect r2.Rect, pageHeight float64) r2.Point {
	return r2.Point{X: rect.X.Lo, Y: pageHeight - rect.Y.Hi}
}

func stripControl(str string) string {
	return strings.Map(func(r rune) rune {
		if r == unicode.ReplacementChar || unicode.IsControl(r) {
			return -1
		}
		return r
	}, str)
}
