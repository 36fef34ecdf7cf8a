package llm

import (
	"log/slog"
	"strings"

	"github.com/mbzesq/npl-vision-2/internal/coerce"
	"github.com/mbzesq/npl-vision-2/internal/schema"
)

// PlaceholderConfidence is assigned when the capability reply could not be
// parsed as a field map.
const PlaceholderConfidence = 0.1

// PlaceholderResult is the synthetic low-confidence result returned for an
// unparseable capability reply, so the call still completes.
func PlaceholderResult(diagnostic string) ExtractionResult {
	return ExtractionResult{
		Fields:     map[string]any{"document_type": "unknown"},
		Confidence: PlaceholderConfidence,
		Diagnostic: diagnostic,
	}
}

// Normalize runs every value of a raw capability field map through the
// coercion engine keyed by the matching canonical field's type. Keys outside
// the schema are kept and coerced as text (document-type-specific extras are
// a permitted superset). The confidence value is lifted out of the field map
// into the result.
func Normalize(s *schema.Schema, raw map[string]any, logger *slog.Logger) ExtractionResult {
	if logger == nil {
		logger = slog.Default()
	}

	fields := make(map[string]any, len(raw))
	confidence := 0.0
	unparseable := make([]string, 0, 4)

	for key, value := range raw {
		rv := coerce.FromAny(value)
		// Some models spell absence as the literal string "null".
		if sv, ok := value.(string); ok && strings.EqualFold(strings.TrimSpace(sv), "null") {
			rv = coerce.Nil()
		}

		field, known := s.Lookup(key)
		if !known {
			field = schema.Field{Name: key, Type: schema.TypeText}
		}
		if field.Type == schema.TypeConfidence {
			confidence = coerce.Confidence(rv)
			continue
		}

		coerced := coerce.Coerce(field, rv)
		if coerced == nil && !rv.IsNil() {
			unparseable = append(unparseable, key)
		}
		fields[key] = coerced
	}

	if len(unparseable) > 0 {
		logger.Warn("llm.normalize.unparseable_fields", "fields", unparseable)
	}
	return ExtractionResult{Fields: fields, Confidence: confidence}
}
