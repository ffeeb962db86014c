//go:build ocr

package ocr

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// writeTestImage renders a line of text into a temporary PNG so recognition
// has something real to find.
func writeTestImage(t *testing.T, text string) string {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 300, 80))
	for y := 0; y < 80; y++ {
		for x := 0; x < 300; x++ {
			img.Set(x, y, color.White)
		}
	}
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.Black),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(20, 40),
	}
	d.DrawString(text)

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode test image: %v", err)
	}
	path := filepath.Join(t.TempDir(), "sample.png")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("write test image: %v", err)
	}
	return path
}

func TestTesseractRecognize(t *testing.T) {
	engine := NewTesseract()
	engine.SetLanguage("eng")
	defer engine.Close()

	path := writeTestImage(t, "MILK 2.49")

	tokens, err := engine.Recognize(context.Background(), path)
	if err != nil {
		t.Skipf("Tesseract not available: %v", err)
	}

	// The exact text depends on the installed Tesseract; verify the
	// structural contract only.
	for _, tok := range tokens {
		if tok.Box.X1 > tok.Box.X2 || tok.Box.Y1 > tok.Box.Y2 {
			t.Errorf("token %q has inverted box %+v", tok.Text, tok.Box)
		}
		if tok.Confidence != nil && (*tok.Confidence < 0 || *tok.Confidence > 1) {
			t.Errorf("token %q confidence %v outside [0,1]", tok.Text, *tok.Confidence)
		}
	}
}

func TestTesseractRecognizeCancelled(t *testing.T) {
	engine := NewTesseract()
	defer engine.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := engine.Recognize(ctx, "does-not-matter.png"); err == nil {
		t.Error("Recognize() with cancelled context should fail")
	}
}

func TestTesseractReuseAcrossImages(t *testing.T) {
	engine := NewTesseract()
	engine.SetLanguage("eng")
	defer engine.Close()

	path := writeTestImage(t, "BREAD 1.09")
	if _, err := engine.Recognize(context.Background(), path); err != nil {
		t.Skipf("Tesseract not available: %v", err)
	}
	// Second call reuses the lazily created client.
	if _, err := engine.Recognize(context.Background(), path); err != nil {
		t.Errorf("second Recognize() failed: %v", err)
	}
}
