package llm

import (
	"encoding/json"
	"fmt"
	"strings"
)

// StripCodeFence removes a surrounding markdown code fence (``` or ```json)
// from a capability reply. Content without a fence passes through unchanged.
func StripCodeFence(content string) string {
	s := strings.TrimSpace(content)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	// Drop an optional language tag on the opening fence.
	s = strings.TrimSpace(strings.TrimPrefix(s, "json"))
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// DecodeFieldMap parses a capability reply into a flat field map, tolerating
// markdown fence wrapping. A reply that does not contain a JSON object yields
// ErrUnparseableResponse.
func DecodeFieldMap(content string) (map[string]any, error) {
	payload := StripCodeFence(content)
	var m map[string]any
	if err := json.Unmarshal([]byte(payload), &m); err != nil {
		return nil, fmt.Errorf("decode field map: %v: %w", err, ErrUnparseableResponse)
	}
	return m, nil
}
