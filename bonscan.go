// Package bonscan extracts purchase line items from receipt images and OCR
// token streams.
//
// The pipeline turns unstructured OCR output — a flat set of recognized text
// fragments with confidence scores and bounding polygons — into a structured
// list of items (name, price, currency, tax tag) using purely heuristic
// spatial and lexical reasoning: tokens are normalized, clustered into
// visual rows, and each price candidate is paired with the product name to
// its left or above it.
//
// Basic usage with precomputed OCR results:
//
//	scanner := bonscan.New()
//	result, err := scanner.ScanResults("receipt.json", data)
//	if err != nil {
//	    // handle error
//	}
//	for _, item := range result.Items {
//	    fmt.Printf("%s  %.2f %s (%s)\n", item.Name, item.Price.Value,
//	        item.Price.Currency, item.Price.VatTag)
//	}
//
// With an OCR engine (requires the "ocr" build tag):
//
//	engine := ocr.NewTesseract()
//	defer engine.Close()
//	scanner := bonscan.New(bonscan.WithEngine(engine))
//	result, err := scanner.ScanImage(ctx, "receipt.jpg")
//
// Extraction itself is a pure function of the token list: identical input
// always yields an identical item list, and nothing is shared across images.
package bonscan

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/beleglab/bonscan/extract"
	"github.com/beleglab/bonscan/layout"
	"github.com/beleglab/bonscan/model"
	"github.com/beleglab/bonscan/ocr"
	"github.com/beleglab/bonscan/token"
)

// ErrNoEngine is returned by ScanImage when no OCR engine was configured.
var ErrNoEngine = errors.New("no OCR engine configured")

// Meta describes the provenance of a scan result.
type Meta struct {
	// Source is the path or identifier the tokens came from.
	Source string `json:"source"`

	// TokenCount is the number of tokens after normalization.
	TokenCount int `json:"tokenCount"`
}

// Result is the outcome of scanning one image, JSON-serializable in the
// output record shape written per image.
type Result struct {
	// Items are the extracted purchase lines.
	Items []model.Item `json:"items"`

	// ItemCount is len(Items).
	ItemCount int `json:"itemCount"`

	// Text is the newline-joined raw recognized texts, before filtering.
	Text string `json:"text"`

	// Meta carries the source path and normalized token count.
	Meta Meta `json:"meta"`
}

// Scanner runs the extraction pipeline. A Scanner holds no per-image state
// and may be reused across a batch; the OCR engine it wraps is the only
// stateful resource and is not assumed safe for concurrent use.
type Scanner struct {
	engine     ocr.Engine
	normalizer *token.Normalizer
	grouper    layout.Grouper
	assembler  *extract.Assembler
}

// New creates a Scanner with default components, adjusted by options.
func New(opts ...Option) *Scanner {
	s := &Scanner{
		normalizer: token.NewNormalizer(),
		grouper:    layout.NewGreedyGrouper(),
		assembler:  extract.NewAssembler(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ScanTokens extracts items from already-decoded OCR tokens. The input is
// not modified; the same tokens always produce the same result.
func (s *Scanner) ScanTokens(source string, raw []model.Token) *Result {
	texts := make([]string, 0, len(raw))
	for _, t := range raw {
		if t.Text != "" {
			texts = append(texts, t.Text)
		}
	}

	tokens := s.normalizer.Normalize(raw)
	rows := s.grouper.Group(tokens)
	items := s.assembler.Assemble(rows)

	return &Result{
		Items:     items,
		ItemCount: len(items),
		Text:      strings.Join(texts, "\n"),
		Meta: Meta{
			Source:     source,
			TokenCount: len(tokens),
		},
	}
}

// NormalizeTokens runs only the normalization stage — confidence filtering
// and duplicate removal — and returns the surviving tokens. These are the
// tokens the pipeline actually works with, which is what diagnostic output
// such as the debug overlay should show.
func (s *Scanner) NormalizeTokens(raw []model.Token) []model.Token {
	return s.normalizer.Normalize(raw)
}

// ScanResults decodes a JSON document of OCR result batches and extracts
// items from it. An unrecognized batch shape yields an empty token list and
// therefore zero items, not an error.
func (s *Scanner) ScanResults(source string, data []byte) (*Result, error) {
	tokens, err := token.DecodeResults(data)
	if err != nil {
		return nil, err
	}
	return s.ScanTokens(source, tokens), nil
}

// ScanImage recognizes the image through the configured OCR engine and
// extracts items from the recognized tokens. Requires WithEngine.
func (s *Scanner) ScanImage(ctx context.Context, imagePath string) (*Result, error) {
	if s.engine == nil {
		return nil, ErrNoEngine
	}
	tokens, err := s.engine.Recognize(ctx, imagePath)
	if err != nil {
		return nil, fmt.Errorf("recognize %s: %w", imagePath, err)
	}
	return s.ScanTokens(imagePath, tokens), nil
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
