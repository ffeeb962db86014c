// Package token adapts raw OCR output into the pipeline's token model and
// prepares it for row grouping.
//
// [DecodeResults] accepts the historical OCR result shapes (parallel-array
// maps, optionally nested, and polygon/text pair lists) and reduces each
// polygon to an axis-aligned bounding box. A batch that matches no known
// shape yields an empty token list, not an error.
//
// [Normalizer] confidence-filters the decoded tokens and drops near-duplicate
// re-detections from repeated OCR passes, preferring the more complete text.
package token
