package extract

import (
	"regexp"
	"strings"

	"github.com/beleglab/bonscan/model"
	"github.com/beleglab/bonscan/price"
)

// badNameKeywords lists receipt boilerplate that disqualifies a name:
// totals, rounding, discounts, deposits, tax terms, and document labels.
// Additions are data edits, not new branches.
var badNameKeywords = []string{
	"summe",
	"zwischensumme",
	"gesamt",
	"total",
	`zu\s*zahlen`,
	"rundung",
	"rabatt",
	"pfand",
	`ec[-\s]*cash`,
	"kundenbeleg",
	"kassenbon",
	"kassenbeleg",
	"uid",
	"steuern?",
	"mwst",
	"ust",
	"eur$",
}

var (
	badNameRE = regexp.MustCompile(`(?i)\b(` + strings.Join(badNameKeywords, "|") + `)\b`)

	// qtyOnlyRE matches bare quantity expressions like "2 Stk" or "3 x".
	qtyOnlyRE = regexp.MustCompile(`(?i)^\s*\d+\s*(stk|stück|x)\b`)

	// ignoreNameTokenRE matches tokens skipped during name assembly: bare
	// currency symbols, bare tax letters, and circled-digit glyphs.
	ignoreNameTokenRE = regexp.MustCompile(`^(?:€|EUR|[ABC]|[①②③④⑤⑥⑦⑧⑨])$`)
)

// FindNameTokens locates the tokens naming the product a price belongs to.
// Candidates are searched in priority order, stopping at the first non-empty
// result: tokens strictly left of the price in the same row, then up to
// three rows above whose tokens sit left of the price center, then the
// immediately preceding row where a token still overlaps the price
// vertically. Returns nil when every step comes up empty; the price is then
// rejected.
func FindNameTokens(rows []model.Row, rowIdx, tokenIdx int) []model.Token {
	priceBox := rows[rowIdx][tokenIdx].Box

	// Same row, strictly left of the price.
	var left []model.Token
	for i, t := range rows[rowIdx] {
		if i == tokenIdx {
			continue
		}
		if t.Box.X2 > priceBox.X1-2 {
			continue
		}
		if price.Matches(t.Text) || price.IsUnitPrice(t.Text) {
			continue
		}
		left = append(left, t)
	}
	if len(left) > 0 {
		return left
	}

	// Rows above, nearest first.
	priceCenter := priceBox.CenterX()
	for i := 1; i <= 3; i++ {
		idx := rowIdx - i
		if idx < 0 {
			break
		}
		var cand []model.Token
		for _, t := range rows[idx] {
			if price.Matches(t.Text) || price.IsUnitPrice(t.Text) {
				continue
			}
			if t.Box.CenterX() < priceCenter+35 {
				cand = append(cand, t)
			}
		}
		if len(cand) > 0 {
			return cand
		}
	}

	// Immediately preceding row, still overlapping the price vertically.
	if rowIdx-1 >= 0 {
		var cand []model.Token
		for _, t := range rows[rowIdx-1] {
			if price.Matches(t.Text) {
				continue
			}
			if t.Box.VerticalOverlapRatio(priceBox) >= 0.05 {
				cand = append(cand, t)
			}
		}
		if len(cand) > 0 {
			return cand
		}
	}

	return nil
}

// BuildName joins the tokens' texts left-to-right with single spaces,
// skipping bare currency symbols, bare tax letters, and circled digits.
func BuildName(tokens []model.Token) string {
	parts := make([]string, 0, len(tokens))
	for _, t := range tokens {
		text := strings.TrimSpace(t.Text)
		if text == "" {
			continue
		}
		if ignoreNameTokenRE.MatchString(text) {
			continue
		}
		parts = append(parts, text)
	}
	return strings.TrimSpace(strings.Join(parts, " "))
}

// IsRejectedName reports whether the assembled name is unusable: empty,
// a bare currency word, or receipt boilerplate.
func IsRejectedName(name string) bool {
	n := strings.TrimSpace(name)
	if n == "" {
		return true
	}
	if up := strings.ToUpper(n); up == "EUR" || up == "€" {
		return true
	}
	return badNameRE.MatchString(n)
}

// IsQuantityOnly reports whether the name is a bare quantity expression
// ("2 Stk", "3 x ...") of three or fewer words.
func IsQuantityOnly(name string) bool {
	return qtyOnlyRE.MatchString(name) && len(strings.Fields(name)) <= 3
}
