package extract

import (
	"context"

	"github.com/joseph-ayodele/stayparse/internal/ocr"
)

// TextExtractor is Stage 1: payload -> text. *ocr.Extractor satisfies it.
type TextExtractor interface {
	Extract(ctx context.Context, payload []byte, mediaType string) (ocr.ExtractionResult, error)
}
