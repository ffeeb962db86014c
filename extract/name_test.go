package extract

import (
	"testing"

	"github.com/beleglab/bonscan/model"
)

func makeToken(text string, box model.Box) model.Token {
	return model.Token{Text: text, Box: box}
}

func tokenTexts(tokens []model.Token) []string {
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		out = append(out, t.Text)
	}
	return out
}

func TestFindNameTokens_SameRowLeft(t *testing.T) {
	rows := []model.Row{
		{
			makeToken("Bio", model.Box{X1: 0, Y1: 0, X2: 40, Y2: 20}),
			makeToken("Milch", model.Box{X1: 45, Y1: 0, X2: 110, Y2: 20}),
			makeToken("2,49", model.Box{X1: 200, Y1: 0, X2: 240, Y2: 20}),
		},
	}

	got := FindNameTokens(rows, 0, 2)
	if len(got) != 2 || got[0].Text != "Bio" || got[1].Text != "Milch" {
		t.Errorf("FindNameTokens() = %v, want [Bio Milch]", tokenTexts(got))
	}
}

func TestFindNameTokens_ExcludesPriceLikeTokens(t *testing.T) {
	rows := []model.Row{
		{
			makeToken("Milch", model.Box{X1: 0, Y1: 0, X2: 80, Y2: 20}),
			makeToken("1,24", model.Box{X1: 90, Y1: 0, X2: 130, Y2: 20}),
			makeToken("2,49", model.Box{X1: 200, Y1: 0, X2: 240, Y2: 20}),
		},
	}

	got := FindNameTokens(rows, 0, 2)
	if len(got) != 1 || got[0].Text != "Milch" {
		t.Errorf("FindNameTokens() = %v, want [Milch]", tokenTexts(got))
	}
}

func TestFindNameTokens_TooCloseToPrice(t *testing.T) {
	// Right edge within 2px of the price's left edge does not count as left.
	rows := []model.Row{
		{
			makeToken("x", model.Box{X1: 190, Y1: 0, X2: 199, Y2: 20}),
			makeToken("2,49", model.Box{X1: 200, Y1: 0, X2: 240, Y2: 20}),
		},
	}

	if got := FindNameTokens(rows, 0, 1); got != nil {
		t.Errorf("FindNameTokens() = %v, want nil", tokenTexts(got))
	}
}

func TestFindNameTokens_RowAbove(t *testing.T) {
	rows := []model.Row{
		{makeToken("Joghurt", model.Box{X1: 0, Y1: 0, X2: 90, Y2: 20}), makeToken("natur", model.Box{X1: 100, Y1: 0, X2: 160, Y2: 20})},
		{makeToken("0,79", model.Box{X1: 200, Y1: 30, X2: 240, Y2: 50})},
	}

	got := FindNameTokens(rows, 1, 0)
	if len(got) != 2 {
		t.Fatalf("FindNameTokens() = %v, want both tokens from the row above", tokenTexts(got))
	}
}

func TestFindNameTokens_RowAboveRespectsCenterLimit(t *testing.T) {
	// A token far right of the price center is not part of the name.
	rows := []model.Row{
		{makeToken("weit-rechts", model.Box{X1: 400, Y1: 0, X2: 500, Y2: 20})},
		{makeToken("0,79", model.Box{X1: 100, Y1: 30, X2: 140, Y2: 50})},
	}

	if got := FindNameTokens(rows, 1, 0); got != nil {
		t.Errorf("FindNameTokens() = %v, want nil", tokenTexts(got))
	}
}

func TestFindNameTokens_PrecedingRowOverlap(t *testing.T) {
	// Rows above fail the center filter, but the previous row still has a
	// vertically overlapping token.
	rows := []model.Row{
		{makeToken("versetzt", model.Box{X1: 400, Y1: 0, X2: 480, Y2: 22})},
		{makeToken("1,99", model.Box{X1: 100, Y1: 4, X2: 140, Y2: 24})},
	}

	got := FindNameTokens(rows, 1, 0)
	if len(got) != 1 || got[0].Text != "versetzt" {
		t.Errorf("FindNameTokens() = %v, want [versetzt]", tokenTexts(got))
	}
}

func TestFindNameTokens_NothingFound(t *testing.T) {
	rows := []model.Row{
		{makeToken("2,49", model.Box{X1: 200, Y1: 0, X2: 240, Y2: 20})},
	}

	if got := FindNameTokens(rows, 0, 0); got != nil {
		t.Errorf("FindNameTokens() = %v, want nil", tokenTexts(got))
	}
}

func TestBuildName(t *testing.T) {
	tests := []struct {
		name   string
		tokens []model.Token
		want   string
	}{
		{
			"plain join",
			[]model.Token{makeToken("Bio", model.Box{}), makeToken("Milch", model.Box{})},
			"Bio Milch",
		},
		{
			"skips currency and tag glyphs",
			[]model.Token{makeToken("€", model.Box{}), makeToken("Milch", model.Box{}), makeToken("A", model.Box{}), makeToken("①", model.Box{})},
			"Milch",
		},
		{
			"trims token whitespace",
			[]model.Token{makeToken(" Milch ", model.Box{}), makeToken("", model.Box{})},
			"Milch",
		},
		{
			"keeps words containing tag letters",
			[]model.Token{makeToken("Apfel", model.Box{})},
			"Apfel",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BuildName(tt.tokens); got != tt.want {
				t.Errorf("BuildName() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIsRejectedName(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"", true},
		{"   ", true},
		{"EUR", true},
		{"eur", true},
		{"€", true},
		{"Gesamt", true},
		{"SUMME", true},
		{"Zwischensumme", true},
		{"zu zahlen", true},
		{"Pfand 0,25", true},
		{"EC-Cash", true},
		{"MwSt", true},
		{"Milch", false},
		{"Bio Apfel", false},
		{"Steuerrad", false}, // keyword must match a whole word
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsRejectedName(tt.name); got != tt.want {
				t.Errorf("IsRejectedName(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

func TestIsQuantityOnly(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"2 Stk", true},
		{"3 x", true},
		{"2 Stück Brezel", true},
		{"2 Stück Brezel vom Vortag", false}, // more than 3 words
		{"Milch", false},
		{"2,49", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsQuantityOnly(tt.name); got != tt.want {
				t.Errorf("IsQuantityOnly(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}
