// Package model provides the data model for receipt item extraction.
//
// This package defines the user-facing data structures that the extraction
// pipeline consumes and produces. All scanning operations ultimately yield
// these types, making them the primary API for consuming results.
//
// # Tokens and Rows
//
// A [Token] is a single recognized text fragment with an optional confidence
// score and an axis-aligned bounding [Box] in image coordinates:
//
//	tok := model.Token{Text: "Milch", Box: model.Box{X1: 0, Y1: 0, X2: 80, Y2: 20}}
//
// A [Row] is a group of tokens judged to lie on the same visual text line,
// ordered left to right.
//
// # Items
//
// An [Item] is one extracted purchase line: product name, [Price] with
// currency and VAT tag, and the bounding boxes of the name and price tokens.
// Items are built once and never mutated.
//
// # Geometry
//
// [Box] supports the geometric reasoning the pipeline relies on:
//
//   - Union - aggregate bounding box
//   - VerticalOverlapRatio - intersection of y-intervals over their union
//   - BoxFromPolygon - min/max reduction of an OCR polygon
//
// Boxes serialize to JSON as a flat [x1, y1, x2, y2] array.
package model
