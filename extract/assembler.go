package extract

import (
	"github.com/beleglab/bonscan/model"
	"github.com/beleglab/bonscan/price"
	"github.com/beleglab/bonscan/vat"
)

// Assembler turns grouped rows into purchase line items.
type Assembler struct {
	resolver *vat.Resolver
}

// NewAssembler creates an assembler with a default tag resolver.
func NewAssembler() *Assembler {
	return &Assembler{resolver: vat.NewResolver()}
}

// NewAssemblerWithResolver creates an assembler using a custom tag resolver.
func NewAssemblerWithResolver(resolver *vat.Resolver) *Assembler {
	return &Assembler{resolver: resolver}
}

// Assemble extracts items from the rows. For each price-matching token it
// applies the rejection chain: unit-price context, tax-tag resolution, name
// association, name validation, and price parsing. Any failure drops that
// candidate only; other candidates in the same row proceed, and a row with
// multiple qualifying prices yields multiple items. The result is a pure
// function of the input rows.
func (a *Assembler) Assemble(rows []model.Row) []model.Item {
	items := make([]model.Item, 0)
	for rowIdx, row := range rows {
		unitCtx := price.IsUnitPrice(row.Text())
		for tokenIdx, tok := range row {
			raw, ok := price.Find(tok.Text)
			if !ok {
				continue
			}
			// Per-unit prices ("€/kg", "pro Stück") are not line totals.
			if unitCtx || price.IsUnitPrice(tok.Text) {
				continue
			}
			tag, ok := a.resolver.Resolve(rows, rowIdx, tokenIdx)
			if !ok {
				continue
			}
			nameTokens := FindNameTokens(rows, rowIdx, tokenIdx)
			if len(nameTokens) == 0 {
				continue
			}
			name := BuildName(nameTokens)
			if IsRejectedName(name) || IsQuantityOnly(name) {
				continue
			}
			value, currency, ok := price.Parse(raw)
			if !ok {
				continue
			}
			items = append(items, model.Item{
				RowIndex: rowIdx,
				Name:     name,
				NameBox:  unionBounds(nameTokens),
				Price: model.Price{
					Raw:      raw,
					Value:    value,
					Currency: currency,
					VatTag:   tag,
				},
				PriceBox:   tok.Box,
				Confidence: tok.Confidence,
			})
		}
	}
	return items
}

func unionBounds(tokens []model.Token) model.Box {
	b := tokens[0].Box
	for _, t := range tokens[1:] {
		b = b.Union(t.Box)
	}
	return b
}
