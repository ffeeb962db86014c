//go:build ocr

// Package ocr provides the OCR boundary of the extraction pipeline: turning
// a receipt image into recognized tokens with bounding boxes.
//
// This package wraps the Tesseract OCR engine via gosseract. It requires
// Tesseract to be installed on the system. On macOS, install via:
//
//	brew install tesseract tesseract-lang
//
// On Ubuntu/Debian:
//
//	apt-get install tesseract-ocr tesseract-ocr-deu
package ocr

import (
	"context"
	"fmt"

	"github.com/otiai10/gosseract/v2"

	"github.com/beleglab/bonscan/model"
)

// Tesseract wraps a gosseract client as an Engine.
//
// The underlying client is created lazily on the first Recognize call and
// reused for every subsequent image, so one Tesseract value serves a whole
// batch. It is not safe for concurrent use.
type Tesseract struct {
	client   *gosseract.Client
	language string
	psm      gosseract.PageSegMode
}

// NewTesseract creates a Tesseract engine configured for German receipts.
// The engine should be closed when no longer needed to release resources.
func NewTesseract() *Tesseract {
	return &Tesseract{
		language: "deu",
		psm:      gosseract.PSM_AUTO,
	}
}

// Name returns the engine name.
func (t *Tesseract) Name() string {
	return "tesseract"
}

// SetLanguage sets the language(s) for recognition before the first
// Recognize call. Multiple languages can be specified as a "+" separated
// string (e.g. "deu+eng"). Default is "deu".
func (t *Tesseract) SetLanguage(lang string) {
	t.language = lang
}

// SetPageSegMode sets the page segmentation mode before the first Recognize
// call. See gosseract.PageSegMode constants for available modes.
func (t *Tesseract) SetPageSegMode(mode gosseract.PageSegMode) {
	t.psm = mode
}

// Recognize performs OCR on the image at the given path and returns
// word-level tokens. Confidences are scaled from Tesseract's percentages
// to [0, 1]. The context is checked before the engine call; a recognition
// already in flight is not interrupted.
func (t *Tesseract) Recognize(ctx context.Context, imagePath string) ([]model.Token, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	if err := t.ensureClient(); err != nil {
		return nil, err
	}
	if err := t.client.SetImage(imagePath); err != nil {
		return nil, fmt.Errorf("set image: %w", err)
	}

	boxes, err := t.client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil {
		return nil, fmt.Errorf("OCR failed: %w", err)
	}

	tokens := make([]model.Token, 0, len(boxes))
	for _, b := range boxes {
		conf := b.Confidence / 100.0
		tokens = append(tokens, model.Token{
			Text:       b.Word,
			Confidence: &conf,
			Box: model.Box{
				X1: float64(b.Box.Min.X),
				Y1: float64(b.Box.Min.Y),
				X2: float64(b.Box.Max.X),
				Y2: float64(b.Box.Max.Y),
			},
		})
	}
	return tokens, nil
}

// Close releases OCR resources. Safe to call before the first Recognize.
func (t *Tesseract) Close() error {
	if t.client == nil {
		return nil
	}
	err := t.client.Close()
	t.client = nil
	return err
}

// ensureClient performs the lazy one-time client construction.
func (t *Tesseract) ensureClient() error {
	if t.client != nil {
		return nil
	}
	client := gosseract.NewClient()
	if err := client.SetLanguage(t.language); err != nil {
		_ = client.Close()
		return fmt.Errorf("set language: %w", err)
	}
	if err := client.SetPageSegMode(t.psm); err != nil {
		_ = client.Close()
		return fmt.Errorf("set page seg mode: %w", err)
	}
	t.client = client
	return nil
}
