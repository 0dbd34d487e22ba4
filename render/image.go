// Package render composites overlay elements onto rasterized pages and
// handles image encoding for previews and annotation crops.
package render

import (
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"os"
)

type subImager interface {
	SubImage(r image.Rectangle) image.Image
}

// Crop returns the sub-image of img bounded by crop.
func Crop(img image.Image, crop image.Rectangle) (image.Image, error) {
	simg, ok := img.(subImager)
	if !ok {
		return nil, fmt.Errorf("image type %T does not support cropping", img)
	}

	return simg.SubImage(crop), nil
}

// WriteImage encodes img to name. Format is "png" or "jpg"; quality applies
// to jpg only.
func WriteImage(format string, img image.Image, name string, quality int) error {
	if format == "jpg" {
		return writeJPG(img, name, quality)
	}
	return writePNG(img, name)
}

func writeJPG(img image.Image, name string, quality int) error {
	fd, err := os.Create(name)
	if err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	defer fd.Close()

	if err := jpeg.Encode(fd, img, &jpeg.Options{Quality: quality}); err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}
	return nil
}

func writePNG(img image.Image, name string) error {
	fd, err := os.Create(name)
	if err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	defer fd.Close()

	if err := png.Encode(fd, img); err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}
	return nil
}
