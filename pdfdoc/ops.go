package pdfdoc

import (
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// Page-level operations are file to file: the open Document stays read-only
// and callers reopen the output if they need to keep working on it.

// RotatePages writes a copy of in to out with the given pages rotated by
// angle degrees clockwise. Angle must be a multiple of 90. An empty pages
// slice rotates every page.
func RotatePages(in, out string, angle int, pages []int) error {
	if angle%90 != 0 {
		return fmt.Errorf("rotate %s: angle %d is not a multiple of 90", in, angle)
	}

	conf := model.NewDefaultConfiguration()
	if err := api.RotateFile(in, out, angle, pageSelector(pages), conf); err != nil {
		return fmt.Errorf("rotate %s: %w", in, err)
	}
	return nil
}

// ExtractPages writes the selected zero-based pages of in to out, in the
// order given, duplicates included.
func ExtractPages(in, out string, pages []int) error {
	if len(pages) == 0 {
		return fmt.Errorf("extract %s: no pages selected", in)
	}

	conf := model.NewDefaultConfiguration()
	if err := api.CollectFile(in, out, pageSelector(pages), conf); err != nil {
		return fmt.Errorf("extract pages from %s: %w", in, err)
	}
	return nil
}

// Merge concatenates the input documents into out, in argument order.
func Merge(inputs []string, out string) error {
	if len(inputs) < 2 {
		return fmt.Errorf("merge needs at least two inputs, got %d", len(inputs))
	}

	conf := model.NewDefaultConfiguration()
	if err := api.MergeCreateFile(inputs, out, false, conf); err != nil {
		return fmt.Errorf("merge into %s: %w", out, err)
	}
	return nil
}

// Optimize rewrites in to out with its object graph compacted. Used as the
// save path so rotations and stamps persist through a cleanup pass.
func Optimize(in, out string) error {
	conf := model.NewDefaultConfiguration()
	if err := api.OptimizeFile(in, out, conf); err != nil {
		return fmt.Errorf("optimize %s: %w", in, err)
	}
	return nil
}

// StampText bakes text into the zero-based page at (x, y), measured in
// points from the page's top-left corner. The color must be a "#rrggbb"
// string. Unlike overlay elements this is an engine-level edit and survives
// in the output file.
func StampText(in, out, text string, page int, x, y, fontSize float64, col string) error {
	dims, err := api.PageDimsFile(in)
	if err != nil {
		return fmt.Errorf("stamp %s: %w", in, err)
	}
	if page < 0 || page >= len(dims) {
		return fmt.Errorf("stamp %s: page %d out of range (document has %d)", in, page, len(dims))
	}

	desc := fmt.Sprintf(
		"fontname:Helvetica, points:%g, scale:1 abs, pos:bl, rot:0, fillcolor:%s, op:1",
		fontSize, col,
	)

	wm, err := pdfcpu.ParseTextWatermarkDetails(text, desc, true, types.POINTS)
	if err != nil {
		return fmt.Errorf("stamp %s: %w", in, err)
	}

	// pdfcpu offsets run from the bottom-left corner.
	wm.Dx = x
	wm.Dy = dims[page].Height - y

	conf := model.NewDefaultConfiguration()
	if err := api.AddWatermarksFile(in, out, pageSelector([]int{page}), wm, conf); err != nil {
		return fmt.Errorf("stamp %s: %w", in, err)
	}
	return nil
}

// StampImage bakes the image file into the zero-based page with its lower
// left corner at (x, y) points from the page's top-left corner.
func StampImage(in, out, imgPath string, page int, x, y, scale float64) error {
	dims, err := api.PageDimsFile(in)
	if err != nil {
		return fmt.Errorf("stamp %s: %w", in, err)
	}
	if page < 0 || page >= len(dims) {
		return fmt.Errorf("stamp %s: page %d out of range (document has %d)", in, page, len(dims))
	}
	if scale <= 0 {
		scale = 1
	}

	desc := fmt.Sprintf("scale:%.2f, pos:full, rot:0, op:1", scale)

	wm, err := pdfcpu.ParseImageWatermarkDetails(imgPath, desc, true, types.POINTS)
	if err != nil {
		return fmt.Errorf("stamp %s with %s: %w", in, imgPath, err)
	}

	wm.Dx = x
	wm.Dy = dims[page].Height - y

	conf := model.NewDefaultConfiguration()
	if err := api.AddWatermarksFile(in, out, pageSelector([]int{page}), wm, conf); err != nil {
		return fmt.Errorf("stamp %s: %w", in, err)
	}
	return nil
}
