package model

// VatTag is a tax category letter printed near a price on a receipt.
type VatTag string

// Tax categories. German receipts use A for the standard rate, B for the
// reduced rate, and C for exempt positions.
const (
	VatA VatTag = "A"
	VatB VatTag = "B"
	VatC VatTag = "C"
)

// Price is the parsed price of one purchase line.
type Price struct {
	// Raw is the substring matched by the price pattern, as recognized.
	Raw string `json:"raw"`

	// Value is the parsed numeric value. Always finite and non-negative.
	Value float64 `json:"value"`

	// Currency is fixed to "EUR".
	Currency string `json:"currency"`

	// VatTag is the resolved tax category, one of A, B, C.
	VatTag VatTag `json:"vatTag"`
}

// Item is one extracted purchase line. Items are built once per accepted
// (price, name) pairing and never mutated; they are scoped to a single
// image's processing run.
type Item struct {
	// RowIndex is the index of the row the price token belongs to.
	// Row order approximates but does not guarantee top-to-bottom order.
	RowIndex int `json:"rowIndex"`

	// Name is the assembled product name.
	Name string `json:"name"`

	// NameBox is the union bounding box of the name tokens.
	NameBox Box `json:"nameBox"`

	// Price is the parsed price.
	Price Price `json:"price"`

	// PriceBox is the bounding box of the price token.
	PriceBox Box `json:"priceBox"`

	// Confidence is inherited from the price token's OCR score;
	// nil when the score is unknown.
	Confidence *float64 `json:"confidence"`
}
