// Package extract pairs prices with product names and assembles the final
// item list.
//
// [FindNameTokens] locates the tokens naming the product a price belongs to:
// same-row tokens to the left of the price first, then rows above, then the
// immediately preceding row. [BuildName] joins the chosen tokens into a name,
// and rejection rules filter out receipt boilerplate (totals, deposits,
// discounts) and bare quantity expressions.
//
// [Assembler] orchestrates the whole per-row extraction: unit-price context
// filtering, tax-tag resolution, name association, and price parsing. Every
// rejection drops only the affected price candidate, never the row or image.
package extract
