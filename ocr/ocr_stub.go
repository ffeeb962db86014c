//go:build !ocr

// Package ocr provides the OCR boundary of the extraction pipeline: turning
// a receipt image into recognized tokens with bounding boxes.
//
// This is the stub implementation used when the "ocr" build tag is not set.
// Recognize returns ErrOCRNotEnabled, so the JSON token input path still
// works everywhere without Tesseract installed.
//
// To enable OCR, rebuild with the "ocr" build tag:
//
//	go build -tags ocr
//
// This requires Tesseract to be installed. On macOS:
//
//	brew install tesseract tesseract-lang
//
// On Ubuntu/Debian:
//
//	apt-get install tesseract-ocr tesseract-ocr-deu
package ocr

import (
	"context"

	"github.com/beleglab/bonscan/model"
)

// PageSegMode represents page segmentation modes for OCR.
// These control how Tesseract analyzes the page layout.
type PageSegMode int

// Page segmentation modes (matching the OCR-enabled implementation).
const (
	PSM_OSD_ONLY               PageSegMode = 0  // Orientation and script detection only
	PSM_AUTO_OSD               PageSegMode = 1  // Automatic with OSD
	PSM_AUTO_ONLY              PageSegMode = 2  // Automatic, no OSD or OCR
	PSM_AUTO                   PageSegMode = 3  // Fully automatic (default)
	PSM_SINGLE_COLUMN          PageSegMode = 4  // Single column of variable sizes
	PSM_SINGLE_BLOCK_VERT_TEXT PageSegMode = 5  // Single uniform block of vertically aligned text
	PSM_SINGLE_BLOCK           PageSegMode = 6  // Single uniform block of text
	PSM_SINGLE_LINE            PageSegMode = 7  // Single text line
	PSM_SINGLE_WORD            PageSegMode = 8  // Single word
	PSM_CIRCLE_WORD            PageSegMode = 9  // Single word in a circle
	PSM_SINGLE_CHAR            PageSegMode = 10 // Single character
	PSM_SPARSE_TEXT            PageSegMode = 11 // Find as much text as possible
	PSM_SPARSE_TEXT_OSD        PageSegMode = 12 // Sparse text with OSD
	PSM_RAW_LINE               PageSegMode = 13 // Treat image as single text line
)

// Tesseract is a stub engine that returns ErrOCRNotEnabled for recognition.
type Tesseract struct{}

// NewTesseract creates a stub engine.
// To enable OCR, rebuild with: go build -tags ocr
func NewTesseract() *Tesseract {
	return &Tesseract{}
}

// Name returns the engine name.
func (t *Tesseract) Name() string {
	return "tesseract"
}

// SetLanguage is a no-op for the stub engine.
func (t *Tesseract) SetLanguage(lang string) {}

// SetPageSegMode is a no-op for the stub engine.
func (t *Tesseract) SetPageSegMode(mode PageSegMode) {}

// Recognize returns an error indicating OCR support is not enabled.
func (t *Tesseract) Recognize(ctx context.Context, imagePath string) ([]model.Token, error) {
	return nil, ErrOCRNotEnabled
}

// Close is a no-op for the stub engine.
// It is safe to call on a nil engine.
func (t *Tesseract) Close() error {
	return nil
}
