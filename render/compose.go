package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"
	"os"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"github.com/pdfdesk/pdfdesk/overlay"
	"github.com/pdfdesk/pdfdesk/theme"
)

// Compositor draws overlay elements on top of page rasters. It owns the
// parsed text face font and is reusable across pages.
type Compositor struct {
	fnt *sfnt.Font
}

// NewCompositor parses the bundled text face.
func NewCompositor() (*Compositor, error) {
	fnt, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	return &Compositor{fnt: fnt}, nil
}

// Compose draws els over page in z-order and returns the combined raster.
// dpi must match the DPI page was rendered at, so that element positions in
// document points land on the right pixels. The selected element, if it is
// among els, gets an outline in the accent color.
func (c *Compositor) Compose(page image.Image, els []*overlay.Element, dpi float64) (*image.RGBA, error) {
	if dpi <= 0 {
		dpi = 72
	}
	scale := dpi / 72

	dst := image.NewRGBA(page.Bounds())
	draw.Draw(dst, dst.Bounds(), page, page.Bounds().Min, draw.Src)

	for _, el := range els {
		var err error
		switch el.Kind {
		case overlay.Text:
			err = c.drawText(dst, el, scale, dpi)
		case overlay.Image:
			err = drawImage(dst, el, scale)
		default:
			err = fmt.Errorf("unknown element kind %q", el.Kind)
		}
		if err != nil {
			return nil, err
		}

		if el.Selected {
			sel, err := theme.Parse(theme.AccentBlue)
			if err != nil {
				return nil, err
			}
			outline(dst, pixelBounds(el, scale), toRGBA(sel), 2)
		}
	}

	return dst, nil
}

func (c *Compositor) drawText(dst *image.RGBA, el *overlay.Element, scale, dpi float64) error {
	col, err := theme.Parse(el.Color)
	if err != nil {
		return err
	}

	face, err := opentype.NewFace(c.fnt, &opentype.FaceOptions{
		Size:    el.FontSize,
		DPI:     dpi,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return fmt.Errorf("text face at %gpt: %w", el.FontSize, err)
	}
	defer face.Close()

	drawer := font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(toRGBA(col)),
		Face: face,
		Dot: fixed.Point26_6{
			X: floatFixed(el.Position.X * scale),
			Y: floatFixed(el.Position.Y*scale) + face.Metrics().Ascent,
		},
	}
	drawer.DrawString(el.Content)

	return nil
}

func drawImage(dst *image.RGBA, el *overlay.Element, scale float64) error {
	fd, err := os.Open(el.Content)
	if err != nil {
		return fmt.Errorf("open image element %s: %w", el.Content, err)
	}
	defer fd.Close()

	src, _, err := image.Decode(fd)
	if err != nil {
		return fmt.Errorf("decode image element %s: %w", el.Content, err)
	}

	xdraw.ApproxBiLinear.Scale(dst, pixelBounds(el, scale), src, src.Bounds(), xdraw.Over, nil)
	return nil
}

// pixelBounds maps an element's document-space box onto raster pixels.
func pixelBounds(el *overlay.Element, scale float64) image.Rectangle {
	b := el.Bounds()
	return image.Rect(
		int(math.Round(b.X.Lo*scale)),
		int(math.Round(b.Y.Lo*scale)),
		int(math.Round(b.X.Hi*scale)),
		int(math.Round(b.Y.Hi*scale)),
	)
}

// outline strokes r's border with the given thickness, inset into the box.
func outline(dst *image.RGBA, r image.Rectangle, col color.RGBA, thickness int) {
	r = r.Intersect(dst.Bounds())
	for t := 0; t < thickness; t++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			dst.SetRGBA(x, r.Min.Y+t, col)
			dst.SetRGBA(x, r.Max.Y-1-t, col)
		}
		for y := r.Min.Y; y < r.Max.Y; y++ {
			dst.SetRGBA(r.Min.X+t, y, col)
			dst.SetRGBA(r.Max.X-1-t, y, col)
		}
	}
}

func floatFixed(v float64) fixed.Int26_6 {
	return fixed.Int26_6(math.Round(v * 64))
}

func toRGBA(c color.Color) color.RGBA {
	r, g, b, a := c.RGBA()
	return color.RGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: uint8(a >> 8)}
}
