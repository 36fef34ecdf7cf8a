package extract

import "context"

// TextExtractor turns a staged document file into a text blob. The normalizer
// treats it as a black box: downstream only sees the text.
type TextExtractor interface {
	Extract(ctx context.Context, path string) (TextExtractionResult, error)
}

type TextExtractionResult struct {
	Text   string
	Pages  int
	Method string // "pdf-text"
}
