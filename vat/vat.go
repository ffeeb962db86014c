// Package vat resolves the tax category tag (A, B, or C) for a price
// candidate on a receipt.
//
// Receipts print a single category letter next to each price, but OCR
// frequently misreads it as a visually similar glyph: a Greek or Cyrillic
// look-alike, a digit, or a stray symbol. [NormalizeTag] corrects these
// misreads through a confusable-glyph table and Unicode-name heuristics.
// [Resolver] applies the correction to the price text itself and to nearby
// tokens, searching the same row, then below, then above the price.
package vat

import (
	"regexp"
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/unicode/runenames"

	"github.com/beleglab/bonscan/model"
	"github.com/beleglab/bonscan/price"
)

// visualMap corrects glyphs that OCR commonly confuses with the Latin tag
// letters. Corrections are data edits here, not new branches in the lookup
// logic.
var visualMap = map[rune]rune{
	// Greek/Cyrillic look-alikes
	'Β': 'B', 'В': 'B', 'А': 'A', 'Α': 'A', 'С': 'C', 'Ϲ': 'C',
	// currency symbols that look like B
	'฿': 'B', 'Ƀ': 'B',
	// digits commonly misread for letters
	'8': 'B', '3': 'B',
	'0': 'O', '1': 'I', 'l': 'I',
	// lower-case variants
	'ß': 'B', 'α': 'A', 'с': 'C',
}

// keepAlnumRE retains ASCII alphanumerics plus the Greek and Cyrillic blocks.
var keepAlnumRE = regexp.MustCompile(`[^0-9A-Za-z\x{0370}-\x{03FF}\x{0400}-\x{04FF}]`)

// stripMarks decomposes the text and removes combining marks, so accented
// misreads reduce to their base letter.
var stripMarks = transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.M)))

// mapRune maps a single rune to a corrected tag letter candidate.
func mapRune(r rune) (rune, bool) {
	up := unicode.ToUpper(r)
	if up == 'A' || up == 'B' || up == 'C' {
		return up, true
	}
	if m, ok := visualMap[r]; ok {
		return m, true
	}
	name := runenames.Name(r)
	if strings.Contains(name, "GREEK") && strings.Contains(name, "BETA") {
		return 'B', true
	}
	if strings.Contains(name, "CYRILLIC") {
		if strings.Contains(name, "VE") {
			return 'B', true
		}
		if strings.Contains(name, "A") {
			return 'A', true
		}
	}
	return 0, false
}

// NormalizeTag resolves a token's text to a tax tag, correcting OCR misreads.
//
// The text is decomposed, stripped of combining marks, and reduced to
// alphanumeric, Greek, and Cyrillic runes. An empty remainder that still had
// a non-digit rune defaults to "B" — a documented heuristic, not certainty:
// receipts overwhelmingly use B as the generic reduced-rate tag, so an
// unreadable non-digit glyph defaults there. Otherwise the retained runes
// pass through the confusable table and Unicode-name heuristics, and the
// first corrected rune in {A, B, C} wins, with staged single-glyph and
// short-remainder fallbacks to "B". Returns false when nothing resolves.
func NormalizeTag(text string) (model.VatTag, bool) {
	s := strings.TrimSpace(text)
	if s == "" {
		return "", false
	}

	decomposed, _, err := transform.String(stripMarks, s)
	if err != nil {
		decomposed = s
	}
	cleaned := keepAlnumRE.ReplaceAllString(decomposed, "")

	if cleaned == "" {
		if hasNonDigit(decomposed) {
			return model.VatB, true
		}
		return "", false
	}

	mapped := make([]rune, 0, len(cleaned))
	for _, r := range cleaned {
		if m, ok := mapRune(r); ok {
			mapped = append(mapped, m)
		}
	}
	for _, m := range mapped {
		if m == 'A' || m == 'B' || m == 'C' {
			return model.VatTag(m), true
		}
	}

	cleanedRunes := []rune(cleaned)
	if len(cleanedRunes) == 1 && !unicode.IsDigit(cleanedRunes[0]) {
		return model.VatB, true
	}

	letters := stripDigits(cleanedRunes)
	if len(letters) > 0 {
		candidate := unicode.ToUpper(letters[0])
		if candidate == 'A' || candidate == 'B' || candidate == 'C' {
			return model.VatTag(candidate), true
		}
		if len(letters) <= 2 {
			return model.VatB, true
		}
	}
	return "", false
}

func hasNonDigit(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

func stripDigits(rs []rune) []rune {
	out := rs[:0:0]
	for _, r := range rs {
		if !unicode.IsDigit(r) {
			out = append(out, r)
		}
	}
	return out
}

// Config holds configuration for the nearby-tag search.
type Config struct {
	// SearchAbove is how many rows above the price to search (default: 3).
	SearchAbove int

	// SearchBelow is how many rows below the price to search (default: 1).
	SearchBelow int

	// SameRowMaxRight is how far past the price's right edge a same-row
	// tag token's left edge may sit, in pixels (default: 40).
	SameRowMaxRight float64

	// BelowTolerance widens the price box horizontally when matching tag
	// centers in rows below, in pixels (default: 40).
	BelowTolerance float64

	// AboveTolerance widens the price box horizontally when matching tag
	// centers in rows above, in pixels (default: 50).
	AboveTolerance float64
}

// DefaultConfig returns default configuration.
func DefaultConfig() Config {
	return Config{
		SearchAbove:     3,
		SearchBelow:     1,
		SameRowMaxRight: 40,
		BelowTolerance:  40,
		AboveTolerance:  50,
	}
}

// Resolver determines the tax category for a price candidate, inline or
// from nearby tokens.
type Resolver struct {
	config Config
}

// NewResolver creates a resolver with default configuration.
func NewResolver() *Resolver {
	return &Resolver{config: DefaultConfig()}
}

// NewResolverWithConfig creates a resolver with custom configuration.
func NewResolverWithConfig(config Config) *Resolver {
	return &Resolver{config: config}
}

// Resolve determines the tax tag for the price token at rows[rowIdx][tokenIdx].
// An inline trailing tag letter on the price itself wins; otherwise nearby
// tokens are searched in priority order: same row by horizontal distance,
// then rows below, then rows above with tolerances that widen with distance.
// Returns false when no tag resolves; the caller must then discard the price
// candidate, since an item is never emitted without a tax tag.
func (r *Resolver) Resolve(rows []model.Row, rowIdx, tokenIdx int) (model.VatTag, bool) {
	priceTok := rows[rowIdx][tokenIdx]
	if _, tag, ok := price.FindWithTag(priceTok.Text); ok {
		return model.VatTag(tag), true
	}
	return r.nearby(rows, rowIdx, tokenIdx)
}

func (r *Resolver) nearby(rows []model.Row, rowIdx, tokenIdx int) (model.VatTag, bool) {
	priceBox := rows[rowIdx][tokenIdx].Box
	priceHeight := priceBox.Height()
	if priceHeight < 1 {
		priceHeight = 1
	}

	// Same row: closest tokens first.
	row := rows[rowIdx]
	neighbors := make([]model.Token, 0, len(row)-1)
	for i, t := range row {
		if i != tokenIdx {
			neighbors = append(neighbors, t)
		}
	}
	sort.SliceStable(neighbors, func(i, j int) bool {
		di := abs(neighbors[i].Box.CenterX() - priceBox.CenterX())
		dj := abs(neighbors[j].Box.CenterX() - priceBox.CenterX())
		return di < dj
	})
	for _, t := range neighbors {
		tag, ok := NormalizeTag(t.Text)
		if !ok {
			continue
		}
		if t.Box.X1 <= priceBox.X2+r.config.SameRowMaxRight &&
			priceBox.VerticalOverlapRatio(t.Box) >= 0.15 {
			return tag, true
		}
	}

	// Rows below: tag centered under the price, a short gap away.
	for d := 1; d <= r.config.SearchBelow; d++ {
		idx := rowIdx + d
		if idx >= len(rows) {
			break
		}
		for _, t := range rows[idx] {
			tag, ok := NormalizeTag(t.Text)
			if !ok {
				continue
			}
			cx := t.Box.CenterX()
			gap := t.Box.Y1 - priceBox.Y2
			if cx >= priceBox.X1-r.config.BelowTolerance &&
				cx <= priceBox.X2+r.config.BelowTolerance &&
				gap >= 0 && gap <= max(8, 1.5*priceHeight) {
				return tag, true
			}
		}
	}

	// Rows above: tolerance grows with the row distance.
	for u := 1; u <= r.config.SearchAbove; u++ {
		idx := rowIdx - u
		if idx < 0 {
			break
		}
		for _, t := range rows[idx] {
			tag, ok := NormalizeTag(t.Text)
			if !ok {
				continue
			}
			cx := t.Box.CenterX()
			gap := priceBox.Y1 - t.Box.Y2
			if cx >= priceBox.X1-r.config.AboveTolerance &&
				cx <= priceBox.X2+r.config.AboveTolerance &&
				gap >= 0 && gap <= max(12, 1.8*priceHeight*float64(u)) {
				return tag, true
			}
		}
	}

	return "", false
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func max(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
