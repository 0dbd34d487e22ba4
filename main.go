package main

import (
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"golang.org/x/sync/errgroup"

	"github.com/pdfdesk/pdfdesk/overlay"
	"github.com/pdfdesk/pdfdesk/pdfdoc"
	"github.com/pdfdesk/pdfdesk/render"
	"github.com/pdfdesk/pdfdesk/session"
	"github.com/pdfdesk/pdfdesk/theme"
)

var cli struct {
	Info     InfoCmd     `cmd:"" help:"Print document metadata and page geometry as JSON"`
	Render   RenderCmd   `cmd:"" help:"Rasterize pages to image files"`
	Rotate   RotateCmd   `cmd:"" help:"Rotate pages into a new document"`
	Extract  ExtractCmd  `cmd:"" help:"Extract a page selection into a new document"`
	Merge    MergeCmd    `cmd:"" help:"Merge documents into one"`
	Stamp    StampCmd    `cmd:"" help:"Bake text or an image into a page"`
	Annotate AnnotateCmd `cmd:"" help:"Replay an annotation script and write overlay previews"`
}

func main() {
	ctx := kong.Parse(&cli)
	endIfErr(ctx.Run())
}

type InfoCmd struct {
	Input string `arg:"" name:"input" help:"Path to input PDF" type:"path"`
}

func (c *InfoCmd) Run() error {
	doc, err := pdfdoc.Open(c.Input)
	if err != nil {
		return err
	}
	defer doc.Close()

	pages, err := doc.Pages()
	if err != nil {
		return err
	}

	report := struct {
		pdfdoc.Info
		Pages []pdfdoc.PageInfo `json:"pages"`
	}{doc.Metadata(), pages}

	printJSON(report)
	return nil
}

type RenderCmd struct {
	OutputPath string  `short:"o" default:"." help:"Directory for rendered images" type:"path"`
	BaseName   string  `short:"n" default:"page" help:"Base name of rendered images"`
	Format     string  `short:"f" enum:"jpg,png" default:"png" help:"Image format. Supports png and jpg"`
	DPI        float64 `short:"d" default:"120" help:"Image DPI"`
	Zoom       float64 `short:"z" help:"Zoom factor relative to natural page size. Overrides --dpi"`
	Quality    int     `short:"q" default:"90" help:"Image quality. Only applies to jpg images"`
	Pages      string  `short:"p" help:"1-based page selection, e.g. 1,3-5. Default: all pages"`

	Input string `arg:"" name:"input" help:"Path to input PDF" type:"path"`
}

func (c *RenderCmd) Run() error {
	doc, err := pdfdoc.Open(c.Input)
	if err != nil {
		return err
	}
	defer doc.Close()

	pages, err := pdfdoc.ParsePageRange(c.Pages, doc.PageCount())
	if err != nil {
		return err
	}

	if err := os.MkdirAll(c.OutputPath, os.ModePerm); err != nil {
		return err
	}

	var g errgroup.Group
	for _, page := range pages {
		page := page
		g.Go(func() error {
			var img image.Image
			var err error
			if c.Zoom > 0 {
				img, err = doc.RenderZoom(page, c.Zoom)
			} else {
				img, err = doc.RenderPage(page, c.DPI)
			}
			if err != nil {
				return err
			}
			name := filepath.Join(c.OutputPath, fmt.Sprintf("%s-%d.%s", c.BaseName, page+1, c.Format))
			return render.WriteImage(c.Format, img, name, c.Quality)
		})
	}

	return g.Wait()
}

type RotateCmd struct {
	Output string `short:"o" required:"" help:"Path of the rotated document" type:"path"`
	Angle  int    `short:"a" enum:"90,180,270" default:"90" help:"Rotation in degrees clockwise"`
	Pages  string `short:"p" help:"1-based page selection. Default: all pages"`

	Input string `arg:"" name:"input" help:"Path to input PDF" type:"path"`
}

func (c *RotateCmd) Run() error {
	pages, err := pdfdoc.ParsePageRange(c.Pages, 0)
	if err != nil {
		return err
	}
	return pdfdoc.RotatePages(c.Input, c.Output, c.Angle, pages)
}

type ExtractCmd struct {
	Output string `short:"o" required:"" help:"Path of the extracted document" type:"path"`
	Pages  string `short:"p" required:"" help:"1-based page selection, e.g. 1,3-5"`

	Input string `arg:"" name:"input" help:"Path to input PDF" type:"path"`
}

func (c *ExtractCmd) Run() error {
	pages, err := pdfdoc.ParsePageRange(c.Pages, 0)
	if err != nil {
		return err
	}
	return pdfdoc.ExtractPages(c.Input, c.Output, pages)
}

type MergeCmd struct {
	Output string `short:"o" required:"" help:"Path of the merged document" type:"path"`

	Inputs []string `arg:"" name:"inputs" help:"PDFs to merge, in order" type:"path"`
}

func (c *MergeCmd) Run() error {
	return pdfdoc.Merge(c.Inputs, c.Output)
}

type StampCmd struct {
	Output   string  `short:"o" required:"" help:"Path of the stamped document" type:"path"`
	Page     int     `short:"p" default:"1" help:"1-based page to stamp"`
	X        float64 `default:"100" help:"X position in points from the left edge"`
	Y        float64 `default:"100" help:"Y position in points from the top edge"`
	Text     string  `short:"t" xor:"content" help:"Text to bake into the page"`
	Image    string  `short:"i" xor:"content" help:"Image file to bake into the page" type:"path"`
	FontSize float64 `default:"12" help:"Font size in points (text only)"`
	Color    string  `default:"black" help:"Text color name or #rrggbb (text only)"`
	Scale    float64 `default:"1" help:"Image scale factor (image only)"`

	Input string `arg:"" name:"input" help:"Path to input PDF" type:"path"`
}

func (c *StampCmd) Run() error {
	if c.Page < 1 {
		return fmt.Errorf("page numbers start at 1, got %d", c.Page)
	}
	if c.Text == "" && c.Image == "" {
		return fmt.Errorf("nothing to stamp: pass --text or --image")
	}

	if c.Image != "" {
		return pdfdoc.StampImage(c.Input, c.Output, c.Image, c.Page-1, c.X, c.Y, c.Scale)
	}

	col, err := theme.Parse(c.Color)
	if err != nil {
		return err
	}
	return pdfdoc.StampText(c.Input, c.Output, c.Text, c.Page-1, c.X, c.Y, c.FontSize, col.Hex())
}

type AnnotateCmd struct {
	Script       string  `short:"s" help:"JSON op script to replay" type:"path"`
	OutputPath   string  `short:"o" default:"annotated" help:"Directory for preview images" type:"path"`
	Format       string  `short:"f" enum:"jpg,png" default:"png" help:"Preview image format"`
	DPI          float64 `short:"d" default:"120" help:"Preview image DPI"`
	Quality      int     `short:"q" default:"90" help:"Image quality. Only applies to jpg images"`
	ImportAnnots bool    `help:"Seed the overlay with the document's own annotations"`

	Input string `arg:"" name:"input" help:"Path to input PDF" type:"path"`
}

type importedAnnot struct {
	ID            int64  `json:"id"`
	Page          int    `json:"page"`
	Kind          string `json:"kind"`
	Color         string `json:"color,omitempty"`
	ColorCategory string `json:"colorCategory,omitempty"`
}

func (c *AnnotateCmd) Run() error {
	if c.Script == "" && !c.ImportAnnots {
		return fmt.Errorf("nothing to do: pass --script, --import-annots or both")
	}

	doc, err := pdfdoc.Open(c.Input)
	if err != nil {
		return err
	}
	defer doc.Close()

	store := overlay.NewStore()

	var imported []*overlay.Element
	if c.ImportAnnots {
		imported, err = doc.ImportAnnotations(store, pdfdoc.ImportOptions{
			ImageDir: filepath.Join(c.OutputPath, "imports"),
			Format:   c.Format,
			Quality:  c.Quality,
			DPI:      c.DPI,
		})
		if err != nil {
			return err
		}
	}

	var result session.Result
	if c.Script != "" {
		fd, err := os.Open(c.Script)
		if err != nil {
			return err
		}
		ops, err := session.Load(fd)
		fd.Close()
		if err != nil {
			return err
		}

		result, err = session.Apply(store, ops)
		if err != nil {
			return err
		}
	}

	comp, err := render.NewCompositor()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(c.OutputPath, os.ModePerm); err != nil {
		return err
	}

	elements := []*overlay.Element{}
	previews := []string{}

	for _, page := range store.Pages() {
		els := store.ElementsOf(page)
		elements = append(elements, els...)

		// Pages the document does not have can hold elements but produce no
		// preview.
		if page < 0 || page >= doc.PageCount() {
			continue
		}

		img, err := doc.RenderPage(page, c.DPI)
		if err != nil {
			return err
		}

		composed, err := comp.Compose(img, els, c.DPI)
		if err != nil {
			return err
		}

		name := filepath.Join(c.OutputPath, fmt.Sprintf("page-%d.%s", page+1, c.Format))
		if err := render.WriteImage(c.Format, composed, name, c.Quality); err != nil {
			return err
		}
		previews = append(previews, name)
	}

	imports := make([]importedAnnot, 0, len(imported))
	for _, el := range imported {
		imports = append(imports, importedAnnot{
			ID:            el.ID,
			Page:          el.Page + 1,
			Kind:          el.Kind,
			Color:         el.Color,
			ColorCategory: theme.CategoryName(el.Color),
		})
	}

	printJSON(struct {
		Imports  []importedAnnot    `json:"imports,omitempty"`
		Applied  int                `json:"applied"`
		Misses   int                `json:"misses"`
		Elements []*overlay.Element `json:"elements"`
		Previews []string           `json:"previews"`
	}{imports, result.Applied, result.Misses, elements, previews})

	return nil
}
