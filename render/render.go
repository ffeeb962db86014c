// Package render draws debug overlays visualizing extraction results on the
// source image.
//
// All recognized token boxes are outlined in light gray, accepted item name
// boxes in green, and price boxes in red, with short labels above each.
// Rendering is diagnostic output only; failures here should be treated as
// warnings, never as extraction errors.
package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"os"
	"path/filepath"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	_ "image/png"

	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/beleglab/bonscan/model"
)

var (
	tokenColor = color.RGBA{200, 200, 200, 255}
	nameColor  = color.RGBA{0, 200, 0, 255}
	priceColor = color.RGBA{200, 0, 0, 255}
)

// jpegQuality matches the quality the debug images are saved with.
const jpegQuality = 90

// LoadImage decodes the image at the given path. PNG and JPEG decode via
// the standard library; TIFF and WEBP via the x/image decoders.
func LoadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}

// Overlay draws all token boxes and the accepted item boxes with labels
// onto a copy of the image. The input image is not modified.
func Overlay(img image.Image, tokens []model.Token, items []model.Item) *image.RGBA {
	bounds := img.Bounds()
	dst := image.NewRGBA(bounds)
	draw.Draw(dst, bounds, img, bounds.Min, draw.Src)

	for _, tok := range tokens {
		drawRect(dst, tok.Box, tokenColor, 1)
	}

	for i, item := range items {
		drawRect(dst, item.NameBox, nameColor, 3)
		drawRect(dst, item.PriceBox, priceColor, 3)

		nameLabel := fmt.Sprintf("%d. %s", i+1, item.Name)
		priceLabel := fmt.Sprintf("%.2f %s (%s)", item.Price.Value, item.Price.Currency, item.Price.VatTag)
		drawLabel(dst, item.NameBox.X1, item.NameBox.Y1-12, nameLabel, nameColor)
		drawLabel(dst, item.PriceBox.X1, item.PriceBox.Y1-12, priceLabel, priceColor)
	}

	return dst
}

// SaveJPEG writes the image as a JPEG, creating the output directory as
// needed.
func SaveJPEG(img image.Image, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return jpeg.Encode(f, img, &jpeg.Options{Quality: jpegQuality})
}

// Save is the convenience path used by the batch driver: load the source
// image, draw the overlay, and write it next to the other outputs.
func Save(imagePath string, tokens []model.Token, items []model.Item, outPath string) error {
	img, err := LoadImage(imagePath)
	if err != nil {
		return err
	}
	return SaveJPEG(Overlay(img, tokens, items), outPath)
}

// drawRect outlines a box with the given edge thickness, clipped to the
// image bounds.
func drawRect(dst *image.RGBA, box model.Box, c color.RGBA, width int) {
	x1, y1 := int(box.X1), int(box.Y1)
	x2, y2 := int(box.X2), int(box.Y2)

	for w := 0; w < width; w++ {
		for x := x1 - w; x <= x2+w; x++ {
			setPixel(dst, x, y1-w, c)
			setPixel(dst, x, y2+w, c)
		}
		for y := y1 - w; y <= y2+w; y++ {
			setPixel(dst, x1-w, y, c)
			setPixel(dst, x2+w, y, c)
		}
	}
}

func setPixel(dst *image.RGBA, x, y int, c color.RGBA) {
	if image.Pt(x, y).In(dst.Bounds()) {
		dst.SetRGBA(x, y, c)
	}
}

// drawLabel draws text with its baseline at the given position, clamped to
// stay inside the image.
func drawLabel(dst *image.RGBA, x, y float64, text string, c color.RGBA) {
	baseline := int(y)
	if baseline < basicfont.Face7x13.Ascent {
		baseline = basicfont.Face7x13.Ascent
	}
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(int(x), baseline),
	}
	d.DrawString(text)
}
