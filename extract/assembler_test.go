package extract

import (
	"math"
	"reflect"
	"testing"

	"github.com/beleglab/bonscan/model"
)

func makeScoredToken(text string, conf float64, box model.Box) model.Token {
	return model.Token{Text: text, Confidence: &conf, Box: box}
}

func TestAssembler_SimpleItem(t *testing.T) {
	a := NewAssembler()
	rows := []model.Row{
		{
			makeScoredToken("Milch", 0.9, model.Box{X1: 0, Y1: 0, X2: 80, Y2: 20}),
			makeScoredToken("2,49", 0.95, model.Box{X1: 200, Y1: 0, X2: 240, Y2: 20}),
			makeScoredToken("A", 0.9, model.Box{X1: 245, Y1: 0, X2: 255, Y2: 20}),
		},
	}

	items := a.Assemble(rows)
	if len(items) != 1 {
		t.Fatalf("Assemble() = %d items, want 1", len(items))
	}

	item := items[0]
	if item.Name != "Milch" {
		t.Errorf("Name = %q, want Milch", item.Name)
	}
	if math.Abs(item.Price.Value-2.49) > 0.0001 {
		t.Errorf("Price.Value = %v, want 2.49", item.Price.Value)
	}
	if item.Price.VatTag != model.VatA {
		t.Errorf("Price.VatTag = %q, want A", item.Price.VatTag)
	}
	if item.Price.Currency != "EUR" {
		t.Errorf("Price.Currency = %q, want EUR", item.Price.Currency)
	}
	if item.RowIndex != 0 {
		t.Errorf("RowIndex = %d, want 0", item.RowIndex)
	}
	if item.NameBox != (model.Box{X1: 0, Y1: 0, X2: 80, Y2: 20}) {
		t.Errorf("NameBox = %+v, want the name token box", item.NameBox)
	}
	if item.PriceBox != (model.Box{X1: 200, Y1: 0, X2: 240, Y2: 20}) {
		t.Errorf("PriceBox = %+v, want the price token box", item.PriceBox)
	}
	if item.Confidence == nil || *item.Confidence != 0.95 {
		t.Errorf("Confidence = %v, want 0.95 from the price token", item.Confidence)
	}
}

func TestAssembler_RejectsBlacklistedName(t *testing.T) {
	a := NewAssembler()
	rows := []model.Row{
		{
			makeScoredToken("Gesamt", 0.9, model.Box{X1: 0, Y1: 0, X2: 80, Y2: 20}),
			makeScoredToken("19,99", 0.95, model.Box{X1: 200, Y1: 0, X2: 240, Y2: 20}),
			makeScoredToken("B", 0.9, model.Box{X1: 245, Y1: 0, X2: 255, Y2: 20}),
		},
	}

	if items := a.Assemble(rows); len(items) != 0 {
		t.Errorf("Assemble() = %d items, want 0 for blacklisted name", len(items))
	}
}

func TestAssembler_RejectsWithoutTag(t *testing.T) {
	a := NewAssembler()
	rows := []model.Row{
		{
			makeScoredToken("Nudeln", 0.9, model.Box{X1: 0, Y1: 0, X2: 80, Y2: 20}),
			makeScoredToken("1,79", 0.95, model.Box{X1: 200, Y1: 0, X2: 240, Y2: 20}),
		},
	}

	// "Nudeln" carries no resolvable tag letter, and nothing else is near.
	if items := a.Assemble(rows); len(items) != 0 {
		t.Errorf("Assemble() = %d items, want 0 without a tax tag", len(items))
	}
}

func TestAssembler_SkipsUnitPriceContext(t *testing.T) {
	a := NewAssembler()
	rows := []model.Row{
		{
			makeScoredToken("Äpfel", 0.9, model.Box{X1: 0, Y1: 0, X2: 80, Y2: 20}),
			makeScoredToken("2,99", 0.95, model.Box{X1: 150, Y1: 0, X2: 190, Y2: 20}),
			makeScoredToken("€/kg", 0.9, model.Box{X1: 195, Y1: 0, X2: 235, Y2: 20}),
			makeScoredToken("A", 0.9, model.Box{X1: 245, Y1: 0, X2: 255, Y2: 20}),
		},
	}

	if items := a.Assemble(rows); len(items) != 0 {
		t.Errorf("Assemble() = %d items, want 0 for unit-price row", len(items))
	}
}

func TestAssembler_SkipsQuantityOnlyName(t *testing.T) {
	a := NewAssembler()
	rows := []model.Row{
		{
			makeScoredToken("2 Stk", 0.9, model.Box{X1: 0, Y1: 0, X2: 60, Y2: 20}),
			makeScoredToken("1,98", 0.95, model.Box{X1: 200, Y1: 0, X2: 240, Y2: 20}),
			makeScoredToken("B", 0.9, model.Box{X1: 245, Y1: 0, X2: 255, Y2: 20}),
		},
	}

	if items := a.Assemble(rows); len(items) != 0 {
		t.Errorf("Assemble() = %d items, want 0 for quantity-only name", len(items))
	}
}

func TestAssembler_NameFromRowAbove(t *testing.T) {
	a := NewAssembler()
	rows := []model.Row{
		{makeScoredToken("Bergkäse", 0.92, model.Box{X1: 0, Y1: 0, X2: 110, Y2: 20})},
		{
			makeScoredToken("4,59", 0.95, model.Box{X1: 60, Y1: 30, X2: 100, Y2: 50}),
			makeScoredToken("B", 0.9, model.Box{X1: 110, Y1: 30, X2: 122, Y2: 50}),
		},
	}

	items := a.Assemble(rows)
	if len(items) != 1 {
		t.Fatalf("Assemble() = %d items, want 1", len(items))
	}
	if items[0].Name != "Bergkäse" {
		t.Errorf("Name = %q, want Bergkäse", items[0].Name)
	}
	if items[0].RowIndex != 1 {
		t.Errorf("RowIndex = %d, want 1", items[0].RowIndex)
	}
}

func TestAssembler_MultiplePricesInRow(t *testing.T) {
	a := NewAssembler()
	rows := []model.Row{
		{
			makeScoredToken("Brot", 0.9, model.Box{X1: 0, Y1: 0, X2: 60, Y2: 20}),
			makeScoredToken("1,09 B", 0.95, model.Box{X1: 100, Y1: 0, X2: 170, Y2: 20}),
			makeScoredToken("2,18 B", 0.95, model.Box{X1: 200, Y1: 0, X2: 270, Y2: 20}),
		},
	}

	items := a.Assemble(rows)
	if len(items) != 2 {
		t.Fatalf("Assemble() = %d items, want 2", len(items))
	}
	if items[0].Price.Value != 1.09 || items[1].Price.Value != 2.18 {
		t.Errorf("values = %v and %v, want 1.09 and 2.18", items[0].Price.Value, items[1].Price.Value)
	}
}

func TestAssembler_Idempotent(t *testing.T) {
	a := NewAssembler()
	rows := []model.Row{
		{makeScoredToken("Joghurt", 0.9, model.Box{X1: 0, Y1: 0, X2: 90, Y2: 20})},
		{
			makeScoredToken("0,79", 0.95, model.Box{X1: 200, Y1: 30, X2: 240, Y2: 50}),
			makeScoredToken("B", 0.9, model.Box{X1: 245, Y1: 30, X2: 257, Y2: 50}),
		},
	}

	first := a.Assemble(rows)
	for i := 0; i < 5; i++ {
		if got := a.Assemble(rows); !reflect.DeepEqual(got, first) {
			t.Fatalf("Assemble() run %d differs from first run", i)
		}
	}
}

func TestAssembler_EmptyRows(t *testing.T) {
	a := NewAssembler()
	items := a.Assemble(nil)
	if items == nil || len(items) != 0 {
		t.Errorf("Assemble(nil) = %v, want empty non-nil slice", items)
	}
}
