package ocr

import (
	"context"
	"errors"

	"github.com/beleglab/bonscan/model"
)

// ErrOCRNotEnabled is returned when OCR functions are called but OCR support
// was not compiled in. Rebuild with -tags ocr to enable OCR support.
var ErrOCRNotEnabled = errors.New("OCR support not enabled; rebuild with -tags ocr")

// Engine turns an image on disk into recognized tokens.
//
// Engines are the only stateful resource in the pipeline: expensive to
// construct, long-lived, and reused across a batch. Implementations are not
// assumed safe for concurrent use; callers that parallelize across images
// must pool separate engines or serialize their calls.
type Engine interface {
	// Name returns the engine name.
	Name() string

	// Recognize performs OCR on the image at the given path and returns
	// word-level tokens with confidence scores and bounding boxes.
	Recognize(ctx context.Context, imagePath string) ([]model.Token, error)

	// Close releases engine resources.
	Close() error
}
