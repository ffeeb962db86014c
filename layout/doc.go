// Package layout clusters OCR tokens into visual text rows.
//
// Receipt tokens arrive order-less with image-space geometry only. The
// [Grouper] interface turns a token list into rows; the default
// [GreedyGrouper] sorts tokens by position and assigns each to the first
// existing row whose aggregate bounding box overlaps it vertically.
//
// Alternative clustering strategies (interval graphs, connected components)
// can be registered by name and swapped in without touching downstream code:
//
//	layout.Register(myGrouper)
//	g := layout.Get("interval")
package layout
