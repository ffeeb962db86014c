package model

import "strings"

// Token represents a single recognized text fragment from OCR.
// Confidence is nil when the OCR result carried no score for the fragment;
// such tokens always pass confidence filtering.
type Token struct {
	Text       string
	Confidence *float64
	Box        Box
}

// Row is a sequence of tokens judged to lie on the same visual text line,
// ordered left to right by their left edge.
type Row []Token

// Bounds returns the union bounding box of the row's tokens.
// Returns the zero box for an empty row.
func (r Row) Bounds() Box {
	if len(r) == 0 {
		return Box{}
	}
	b := r[0].Box
	for _, t := range r[1:] {
		b = b.Union(t.Box)
	}
	return b
}

// Text returns the row's token texts joined with single spaces.
func (r Row) Text() string {
	parts := make([]string, 0, len(r))
	for _, t := range r {
		parts = append(parts, t.Text)
	}
	return strings.Join(parts, " ")
}
