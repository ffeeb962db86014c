package bonscan

import (
	"github.com/beleglab/bonscan/extract"
	"github.com/beleglab/bonscan/layout"
	"github.com/beleglab/bonscan/ocr"
	"github.com/beleglab/bonscan/token"
	"github.com/beleglab/bonscan/vat"
)

// Option configures a Scanner.
type Option func(*Scanner)

// WithEngine sets the OCR engine used by ScanImage. The engine is owned by
// the caller, who is responsible for closing it; one engine can serve many
// sequential scans.
func WithEngine(engine ocr.Engine) Option {
	return func(s *Scanner) {
		s.engine = engine
	}
}

// WithMinConfidence drops tokens whose OCR confidence is known and below
// min. Tokens with an unknown score always pass.
func WithMinConfidence(min float64) Option {
	return func(s *Scanner) {
		cfg := token.DefaultConfig()
		cfg.MinConfidence = min
		s.normalizer = token.NewNormalizerWithConfig(cfg)
	}
}

// WithNormalizerConfig replaces the token normalization configuration.
func WithNormalizerConfig(cfg token.Config) Option {
	return func(s *Scanner) {
		s.normalizer = token.NewNormalizerWithConfig(cfg)
	}
}

// WithGrouper replaces the row clustering strategy.
func WithGrouper(grouper layout.Grouper) Option {
	return func(s *Scanner) {
		s.grouper = grouper
	}
}

// WithRowOverlap sets the vertical-overlap threshold of the default greedy
// row grouper.
func WithRowOverlap(threshold float64) Option {
	return func(s *Scanner) {
		s.grouper = layout.NewGreedyGrouperWithConfig(layout.Config{
			RowOverlapThreshold: threshold,
		})
	}
}

// WithVatConfig replaces the tax-tag resolver configuration.
func WithVatConfig(cfg vat.Config) Option {
	return func(s *Scanner) {
		s.assembler = extract.NewAssemblerWithResolver(vat.NewResolverWithConfig(cfg))
	}
}
