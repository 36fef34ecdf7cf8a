package llm

import (
	"context"
	"errors"
)

// ErrUnparseableResponse marks a capability reply whose content could not be
// decoded as a JSON field map. Callers synthesize a low-confidence placeholder
// instead of failing the document.
var ErrUnparseableResponse = errors.New("unparseable extraction response")

// ExtractRequest carries the document text sent to the external extraction
// capability. Text beyond the budget is silently truncated before the call.
type ExtractRequest struct {
	Text         string
	FilenameHint string
}

// ExtractionResult is the normalized outcome of one unstructured-source
// invocation. Fields is keyed by canonical field name (a superset is allowed
// for document-type-specific extras); Confidence is always in [0,1].
type ExtractionResult struct {
	Fields     map[string]any `json:"fields"`
	Confidence float64        `json:"confidence"`
	Diagnostic string         `json:"diagnostic,omitempty"`
}

// FieldExtractor is the boundary to the external extraction capability. It
// returns the loosely-typed field map decoded from the reply plus the raw
// reply bytes for diagnostics. A reply that is not valid JSON yields an error
// wrapping ErrUnparseableResponse; transport and auth failures yield ordinary
// errors and are terminal for the document.
type FieldExtractor interface {
	ExtractFields(ctx context.Context, req ExtractRequest) (map[string]any, []byte, error)
}
