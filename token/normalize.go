package token

import (
	"strings"

	"github.com/beleglab/bonscan/model"
)

// Config holds configuration for token normalization.
type Config struct {
	// MinConfidence drops tokens with a known score below this value.
	// Zero disables the filter; tokens with an unknown score always pass.
	MinConfidence float64

	// DedupeOverlap is the vertical-overlap ratio above which two tokens
	// with equal or contained text are considered re-detections of the
	// same fragment (default: 0.6).
	DedupeOverlap float64
}

// DefaultConfig returns sensible default configuration.
func DefaultConfig() Config {
	return Config{
		MinConfidence: 0,
		DedupeOverlap: 0.6,
	}
}

// Normalizer confidence-filters and deduplicates raw OCR tokens.
type Normalizer struct {
	config Config
}

// NewNormalizer creates a normalizer with default configuration.
func NewNormalizer() *Normalizer {
	return &Normalizer{config: DefaultConfig()}
}

// NewNormalizerWithConfig creates a normalizer with custom configuration.
func NewNormalizerWithConfig(config Config) *Normalizer {
	return &Normalizer{config: config}
}

// Normalize filters and deduplicates tokens, preserving input order.
// The input slice is not modified.
func (n *Normalizer) Normalize(tokens []model.Token) []model.Token {
	filtered := n.filterByConfidence(tokens)
	return n.dedupe(filtered)
}

func (n *Normalizer) filterByConfidence(tokens []model.Token) []model.Token {
	if n.config.MinConfidence <= 0 {
		return tokens
	}
	kept := make([]model.Token, 0, len(tokens))
	for _, tok := range tokens {
		if tok.Confidence != nil && *tok.Confidence < n.config.MinConfidence {
			continue
		}
		kept = append(kept, tok)
	}
	return kept
}

// dedupe drops tokens that re-detect an already-accepted fragment: heavy
// vertical overlap combined with equal trimmed text, or text contained in a
// strictly longer accepted text. Repeated OCR passes (orientation-corrected
// reruns) produce such duplicates; the more complete text wins because it
// was accepted first or is longer. Quadratic, fine for per-image token
// counts in the tens to low hundreds.
func (n *Normalizer) dedupe(tokens []model.Token) []model.Token {
	accepted := make([]model.Token, 0, len(tokens))
	for _, tok := range tokens {
		if n.isDuplicate(tok, accepted) {
			continue
		}
		accepted = append(accepted, tok)
	}
	return accepted
}

func (n *Normalizer) isDuplicate(tok model.Token, accepted []model.Token) bool {
	text := strings.TrimSpace(tok.Text)
	for _, prev := range accepted {
		if tok.Box.VerticalOverlapRatio(prev.Box) <= n.config.DedupeOverlap {
			continue
		}
		prevText := strings.TrimSpace(prev.Text)
		if text == prevText {
			return true
		}
		if strings.Contains(prevText, text) && len(prevText) > len(text) {
			return true
		}
	}
	return false
}
