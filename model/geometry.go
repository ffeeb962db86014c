package model

import (
	"encoding/json"
	"fmt"
	"math"
)

// Point represents a 2D point in image coordinates.
type Point struct {
	X, Y float64
}

// Box represents an axis-aligned bounding box in image coordinates.
// X1 <= X2 and Y1 <= Y2 always hold for boxes produced by BoxFromPolygon.
type Box struct {
	X1, Y1, X2, Y2 float64
}

// BoxFromPolygon reduces a polygon to its axis-aligned bounding box via
// coordinate min/max. Returns false if the polygon has fewer than 4 points.
func BoxFromPolygon(points []Point) (Box, bool) {
	if len(points) < 4 {
		return Box{}, false
	}
	b := Box{
		X1: points[0].X, Y1: points[0].Y,
		X2: points[0].X, Y2: points[0].Y,
	}
	for _, p := range points[1:] {
		b.X1 = math.Min(b.X1, p.X)
		b.Y1 = math.Min(b.Y1, p.Y)
		b.X2 = math.Max(b.X2, p.X)
		b.Y2 = math.Max(b.Y2, p.Y)
	}
	return b, true
}

// Width returns the horizontal extent of the box.
func (b Box) Width() float64 {
	return b.X2 - b.X1
}

// Height returns the vertical extent of the box.
func (b Box) Height() float64 {
	return b.Y2 - b.Y1
}

// CenterX returns the X coordinate of the box center.
func (b Box) CenterX() float64 {
	return (b.X1 + b.X2) / 2
}

// CenterY returns the Y coordinate of the box center.
func (b Box) CenterY() float64 {
	return (b.Y1 + b.Y2) / 2
}

// Union returns the smallest box containing both boxes.
func (b Box) Union(other Box) Box {
	return Box{
		X1: math.Min(b.X1, other.X1),
		Y1: math.Min(b.Y1, other.Y1),
		X2: math.Max(b.X2, other.X2),
		Y2: math.Max(b.Y2, other.Y2),
	}
}

// VerticalOverlapRatio returns the intersection of the two boxes' y-intervals
// divided by the union of those intervals. Returns a value in [0, 1]; zero
// when the intervals do not overlap or the union is degenerate.
func (b Box) VerticalOverlapRatio(other Box) float64 {
	inter := math.Min(b.Y2, other.Y2) - math.Max(b.Y1, other.Y1)
	if inter < 0 {
		inter = 0
	}
	union := (b.Y2 - b.Y1) + (other.Y2 - other.Y1) - inter
	if union <= 0 {
		return 0
	}
	return inter / union
}

// IsEmpty returns true if the box has zero area.
func (b Box) IsEmpty() bool {
	return b.X2 <= b.X1 || b.Y2 <= b.Y1
}

// MarshalJSON serializes the box as a flat [x1, y1, x2, y2] array.
func (b Box) MarshalJSON() ([]byte, error) {
	return json.Marshal([4]float64{b.X1, b.Y1, b.X2, b.Y2})
}

// UnmarshalJSON parses a flat [x1, y1, x2, y2] array.
func (b *Box) UnmarshalJSON(data []byte) error {
	var coords []float64
	if err := json.Unmarshal(data, &coords); err != nil {
		return err
	}
	if len(coords) != 4 {
		return fmt.Errorf("box: expected 4 coordinates, got %d", len(coords))
	}
	b.X1, b.Y1, b.X2, b.Y2 = coords[0], coords[1], coords[2], coords[3]
	return nil
}
