//go:build !ocr

package ocr

import (
	"context"
	"errors"
	"testing"
)

func TestStubRecognize(t *testing.T) {
	engine := NewTesseract()
	defer engine.Close()

	_, err := engine.Recognize(context.Background(), "receipt.jpg")
	if !errors.Is(err, ErrOCRNotEnabled) {
		t.Errorf("Recognize() error = %v, want ErrOCRNotEnabled", err)
	}
}

func TestStubName(t *testing.T) {
	if got := NewTesseract().Name(); got != "tesseract" {
		t.Errorf("Name() = %q, want tesseract", got)
	}
}

func TestStubCloseIsSafe(t *testing.T) {
	engine := NewTesseract()
	if err := engine.Close(); err != nil {
		t.Errorf("Close() error: %v", err)
	}
	// Setters are no-ops but must not panic.
	engine.SetLanguage("deu")
	engine.SetPageSegMode(PSM_SPARSE_TEXT)
}
