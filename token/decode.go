package token

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/beleglab/bonscan/model"
)

// DecodeResults decodes a JSON document of OCR results into tokens.
// The document may be a single result batch or an array of batches; batches
// from all shapes are concatenated in document order. A batch that matches
// no known shape contributes nothing, so an unrecognized document yields an
// empty token list rather than an error.
func DecodeResults(data []byte) ([]model.Token, error) {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode OCR results: %w", err)
	}

	switch v := doc.(type) {
	case map[string]any:
		return ExtractBatch(v), nil
	case []any:
		if looksLikePairList(v) {
			return ExtractBatch(v), nil
		}
		var tokens []model.Token
		for _, batch := range v {
			tokens = append(tokens, ExtractBatch(batch)...)
		}
		return tokens, nil
	default:
		return nil, nil
	}
}

// ExtractBatch extracts tokens from one decoded OCR result batch.
// Two historical shapes are supported: a map of parallel arrays keyed
// rec_texts/rec_scores/rec_polys or texts/scores/polys (optionally nested one
// level inside another map, with dt_polys also accepted for the polygon key),
// and a list of [polygon, [text, score]] pairs. Anything else yields nil.
func ExtractBatch(batch any) []model.Token {
	switch v := batch.(type) {
	case map[string]any:
		return extractFromResultMap(v)
	case []any:
		return extractFromPairList(v)
	default:
		return nil
	}
}

// extractFromResultMap handles the parallel-array result shape.
func extractFromResultMap(m map[string]any) []model.Token {
	texts := findFirstList(m, "rec_texts", "texts")
	scores := findFirstList(m, "rec_scores", "scores")
	polys := findFirstList(m, "rec_polys", "polys", "dt_polys")
	if texts == nil || polys == nil {
		return nil
	}
	// An empty scores list means "no scores", not "zero tokens".
	if len(scores) == 0 {
		scores = nil
	}

	n := len(texts)
	if len(polys) < n {
		n = len(polys)
	}
	if scores != nil && len(scores) < n {
		n = len(scores)
	}

	tokens := make([]model.Token, 0, n)
	for i := 0; i < n; i++ {
		text, ok := texts[i].(string)
		if !ok {
			continue
		}
		box, ok := model.BoxFromPolygon(toPolygon(polys[i]))
		if !ok {
			continue
		}
		tok := model.Token{Text: text, Box: box}
		if scores != nil {
			if s, ok := scores[i].(float64); ok {
				tok.Confidence = &s
			}
		}
		tokens = append(tokens, tok)
	}
	return tokens
}

// extractFromPairList handles the [polygon, [text, score]] pair shape.
func extractFromPairList(entries []any) []model.Token {
	var tokens []model.Token
	for _, entry := range entries {
		if tok, ok := pairToken(entry); ok {
			tokens = append(tokens, tok)
		}
	}
	return tokens
}

func pairToken(entry any) (model.Token, bool) {
	pair, ok := entry.([]any)
	if !ok || len(pair) != 2 {
		return model.Token{}, false
	}
	box, ok := model.BoxFromPolygon(toPolygon(pair[0]))
	if !ok {
		return model.Token{}, false
	}
	ts, ok := pair[1].([]any)
	if !ok || len(ts) < 1 {
		return model.Token{}, false
	}
	text, ok := ts[0].(string)
	if !ok {
		return model.Token{}, false
	}
	tok := model.Token{Text: text, Box: box}
	if len(ts) > 1 {
		if s, ok := ts[1].(float64); ok {
			tok.Confidence = &s
		}
	}
	return tok, true
}

// looksLikePairList reports whether the array's first well-formed entry is a
// [polygon, [text, score]] pair, distinguishing a bare pair list from an
// array of result batches.
func looksLikePairList(entries []any) bool {
	for _, entry := range entries {
		if _, ok := pairToken(entry); ok {
			return true
		}
		if _, ok := entry.(map[string]any); ok {
			return false
		}
	}
	return false
}

// findFirstList returns the first list value found under any of the given
// keys, checking the map itself first and then one nesting level down.
// Nested maps are scanned in sorted key order so extraction stays
// deterministic.
func findFirstList(m map[string]any, keys ...string) []any {
	for _, k := range keys {
		if list, ok := m[k].([]any); ok {
			return list
		}
	}
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		nested, ok := m[name].(map[string]any)
		if !ok {
			continue
		}
		for _, k := range keys {
			if list, ok := nested[k].([]any); ok {
				return list
			}
		}
	}
	return nil
}

func toPolygon(v any) []model.Point {
	raw, ok := v.([]any)
	if !ok {
		return nil
	}
	points := make([]model.Point, 0, len(raw))
	for _, p := range raw {
		coords, ok := p.([]any)
		if !ok || len(coords) < 2 {
			return nil
		}
		x, xok := coords[0].(float64)
		y, yok := coords[1].(float64)
		if !xok || !yok {
			return nil
		}
		points = append(points, model.Point{X: x, Y: y})
	}
	return points
}
