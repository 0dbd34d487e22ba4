// Package pdfdoc is the document access layer: it wraps the PDF engines and
// exposes opening, page inspection, rasterization, page-level operations and
// annotation import. Nothing above this package touches PDF bytes.
package pdfdoc

import (
	"fmt"
	"image"
	"io"
	"os"

	"github.com/gen2brain/go-fitz"
	"github.com/mgmeyers/unipdf/v3/model"
)

// Document is an open PDF. Rendering goes through MuPDF, structural access
// (pages, annotations) through the PDF object model reader. Both views are
// backed by the same file and stay read-only; page-level mutations are
// file-to-file operations in ops.go.
type Document struct {
	path   string
	file   *os.File
	fitz   *fitz.Document
	reader *model.PdfReader
}

// PageInfo describes a single page. Number is 1-based, dimensions are in
// points, rotation in degrees clockwise.
type PageInfo struct {
	Number   int     `json:"number"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	Rotation int64   `json:"rotation"`
}

// Info is the document metadata report.
type Info struct {
	Title     string `json:"title,omitempty"`
	Author    string `json:"author,omitempty"`
	Subject   string `json:"subject,omitempty"`
	Keywords  string `json:"keywords,omitempty"`
	Creator   string `json:"creator,omitempty"`
	Producer  string `json:"producer,omitempty"`
	Created   string `json:"creationDate,omitempty"`
	Modified  string `json:"modDate,omitempty"`
	PageCount int    `json:"pageCount"`
	FileSize  int64  `json:"fileSize"`
}

// Open loads the PDF at path.
func Open(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	reader, err := model.NewPdfReader(io.ReadSeeker(f))
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	fitzDoc, err := fitz.New(path)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("open %s for rendering: %w", path, err)
	}

	return &Document{path: path, file: f, fitz: fitzDoc, reader: reader}, nil
}

// Close releases both engine handles.
func (d *Document) Close() error {
	err := d.fitz.Close()
	if cerr := d.file.Close(); err == nil {
		err = cerr
	}
	return err
}

// Path returns the file path the document was opened from.
func (d *Document) Path() string {
	return d.path
}

// PageCount returns the number of pages.
func (d *Document) PageCount() int {
	return d.fitz.NumPage()
}

// PageInfo returns geometry for the zero-based page.
func (d *Document) PageInfo(page int) (PageInfo, error) {
	if page < 0 || page >= d.PageCount() {
		return PageInfo{}, fmt.Errorf("page %d out of range (document has %d)", page, d.PageCount())
	}

	bounds, err := d.fitz.Bound(page)
	if err != nil {
		return PageInfo{}, fmt.Errorf("page %d bounds: %w", page, err)
	}

	info := PageInfo{
		Number: page + 1,
		Width:  float64(bounds.Dx()),
		Height: float64(bounds.Dy()),
	}

	pdfPage, err := d.reader.GetPage(page + 1)
	if err == nil && pdfPage.Rotate != nil {
		info.Rotation = *pdfPage.Rotate
	}

	return info, nil
}

// Pages returns geometry for every page in order.
func (d *Document) Pages() ([]PageInfo, error) {
	infos := make([]PageInfo, 0, d.PageCount())
	for i := 0; i < d.PageCount(); i++ {
		info, err := d.PageInfo(i)
		if err != nil {
			return nil, err
		}
		infos = append(infos, info)
	}
	return infos, nil
}

// RenderPage rasterizes the zero-based page at the given DPI. 72 DPI yields
// one pixel per point.
func (d *Document) RenderPage(page int, dpi float64) (image.Image, error) {
	if page < 0 || page >= d.PageCount() {
		return nil, fmt.Errorf("page %d out of range (document has %d)", page, d.PageCount())
	}
	if dpi <= 0 {
		dpi = 72
	}

	img, err := d.fitz.ImageDPI(page, dpi)
	if err != nil {
		return nil, fmt.Errorf("render page %d: %w", page, err)
	}

	return img, nil
}

// RenderZoom rasterizes a page at a zoom factor relative to natural size,
// e.g. 1.0 is 72 DPI, 2.0 is 144 DPI.
func (d *Document) RenderZoom(page int, zoom float64) (image.Image, error) {
	if zoom <= 0 {
		zoom = 1
	}
	return d.RenderPage(page, zoom*72)
}

// Metadata reports the document information dictionary plus page count and
// file size.
func (d *Document) Metadata() Info {
	meta := d.fitz.Metadata()

	info := Info{
		Title:     meta["title"],
		Author:    meta["author"],
		Subject:   meta["subject"],
		Keywords:  meta["keywords"],
		Creator:   meta["creator"],
		Producer:  meta["producer"],
		Created:   meta["creationDate"],
		Modified:  meta["modDate"],
		PageCount: d.PageCount(),
	}

	if st, err := os.Stat(d.path); err == nil {
		info.FileSize = st.Size()
	}

	return info
}
