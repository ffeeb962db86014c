// Package price recognizes and parses price expressions in OCR token text.
//
// The price pattern accepts digits with optional thousands groups of exactly
// three separated by '.' or ',' and exactly two trailing decimal digits
// ("12,99", "1.234,56", "12.99"), optionally wrapped in a euro sign or EUR
// and optionally followed by a single tax tag letter. Parsing decides the
// decimal separator per match, so German and machine-formatted prices both
// work. The currency is always EUR regardless of any detected symbol.
package price

import (
	"regexp"
	"strconv"
	"strings"
)

const priceCore = `(?:\d{1,3}(?:[.,]\d{3})*(?:[.,]\d{2})|\d+[.,]\d{2})`

// RE2 has no lookbehind; the "not preceded by a digit" guard is a consumed
// (?:^|[^0-9]) prefix, with the price expression taken from a capture group.
var (
	priceRE = regexp.MustCompile(
		`(?i)(?:^|[^0-9])\s*((?:€|\bEUR\b)?\s*` + priceCore + `\s*(?:€|\bEUR\b)?(?:\s*[ABC])?)`)

	priceWithTagRE = regexp.MustCompile(
		`(?i)(?:^|[^0-9])(?:€|\bEUR\b)?\s*(` + priceCore + `)\s*(?:€|\bEUR\b)?\s*([ABC])\b`)

	unitPriceRE = regexp.MustCompile(
		`(?i)(?:€\s*/\s*(?:kg|g|100g|l|ml|stk|stück)|(?:pro|per)\s*(?:kg|g|100g|l|ml|stk|stück)|/(?:kg|g|100g|l|ml))`)

	thousandsRE = regexp.MustCompile(`\d{1,3},\d{3}`)
	numberRE    = regexp.MustCompile(`[-+]?\d*\.?\d+`)
)

// Matches reports whether the text contains a price expression.
func Matches(text string) bool {
	return priceRE.MatchString(text)
}

// Find returns the raw price substring matched in the text.
func Find(text string) (string, bool) {
	m := priceRE.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	return strings.TrimSpace(m[1]), true
}

// FindWithTag matches a price immediately followed by an inline tax tag
// letter. Returns the price core and the uppercased tag.
func FindWithTag(text string) (raw, tag string, ok bool) {
	m := priceWithTagRE.FindStringSubmatch(text)
	if m == nil {
		return "", "", false
	}
	return m[1], strings.ToUpper(m[2]), true
}

// IsUnitPrice reports whether the text expresses a per-unit price
// ("€/kg", "pro Stück", "/l") rather than a line-item total.
func IsUnitPrice(text string) bool {
	return unitPriceRE.MatchString(text)
}

// Parse converts a raw price substring into a numeric value and currency.
// The decimal separator is decided per match: a comma after the last dot is
// decimal (dots are thousands), a comma followed by a three-digit group is a
// thousands separator, any other comma is decimal. Returns false when no
// numeric substring remains or it does not parse.
func Parse(raw string) (float64, string, bool) {
	const currency = "EUR"
	s := strings.TrimSpace(raw)

	lastComma := strings.LastIndex(s, ",")
	lastDot := strings.LastIndex(s, ".")
	switch {
	case lastComma > lastDot:
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	case strings.Contains(s, ",") && thousandsRE.MatchString(s):
		s = strings.ReplaceAll(s, ",", "")
	default:
		s = strings.ReplaceAll(s, ",", ".")
	}

	num := numberRE.FindString(s)
	if num == "" {
		return 0, currency, false
	}
	value, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0, currency, false
	}
	return value, currency, true
}
