package llm

import "github.com/mbzesq/npl-vision-2/internal/schema"

// BuildDocumentJSONSchema returns a JSON-Schema (draft 2020-12 subset) as a
// generic map describing the field map we ask the capability for. Validation
// against it is advisory: a schema-invalid value still goes through coercion,
// which nulls whatever does not parse.
func BuildDocumentJSONSchema(s *schema.Schema) map[string]any {
	props := make(map[string]any, len(s.Fields()))
	for _, f := range s.Fields() {
		switch f.Type {
		case schema.TypeDate:
			props[f.Name] = map[string]any{
				"type":    []string{"string", "null"},
				"pattern": `^\d{4}-\d{2}-\d{2}$`,
			}
		case schema.TypeCurrency, schema.TypeRate:
			props[f.Name] = map[string]any{"type": []string{"string", "number", "null"}}
		case schema.TypeInteger:
			props[f.Name] = map[string]any{"type": []string{"integer", "number", "null"}}
		case schema.TypeConfidence:
			props[f.Name] = map[string]any{"type": "number", "minimum": 0.0, "maximum": 1.0}
		default:
			props[f.Name] = map[string]any{"type": []string{"string", "null"}}
		}
	}

	return map[string]any{
		"type": "object",
		// Extras are allowed: document types carry fields of their own.
		"additionalProperties": true,
		"properties":           props,
		"required":             []string{"document_type", "confidence"},
	}
}
