package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStripCodeFence(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"bare json", `{"a": 1}`, `{"a": 1}`},
		{"plain fence", "```\n{\"a\": 1}\n```", `{"a": 1}`},
		{"json fence", "```json\n{\"a\": 1}\n```", `{"a": 1}`},
		{"surrounding whitespace", "  ```json\n{\"a\": 1}\n```  ", `{"a": 1}`},
		{"no closing fence", "```json\n{\"a\": 1}", `{"a": 1}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripCodeFence(tt.content))
		})
	}
}

func TestDecodeFieldMap(t *testing.T) {
	m, err := DecodeFieldMap("```json\n{\"document_type\": \"note\", \"confidence\": 0.9}\n```")
	require.NoError(t, err)
	assert.Equal(t, "note", m["document_type"])
	assert.Equal(t, 0.9, m["confidence"])
}

func TestDecodeFieldMap_Unparseable(t *testing.T) {
	for _, content := range []string{
		"I could not find any structured data in this document.",
		"```json\nnot json at all\n```",
		"",
	} {
		_, err := DecodeFieldMap(content)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrUnparseableResponse)
	}
}
