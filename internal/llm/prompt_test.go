package llm

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"

	"github.com/mbzesq/npl-vision-2/internal/schema"
)

func TestBuildUserPrompt_TruncatesText(t *testing.T) {
	s := schema.New(schema.DocumentFields())
	long := strings.Repeat("x", DefaultTextBudget*3)

	prompt := BuildUserPrompt(s, long, 0)
	// The budgeted prefix is present; the tail is not.
	assert.Contains(t, prompt, strings.Repeat("x", DefaultTextBudget))
	assert.NotContains(t, prompt, strings.Repeat("x", DefaultTextBudget+1))
}

func TestBuildUserPrompt_TruncatesOnRuneBoundary(t *testing.T) {
	s := schema.New(schema.DocumentFields())
	// Each rune is 3 bytes; a byte-index cut would split one in half.
	long := strings.Repeat("日", DefaultTextBudget*2)

	prompt := BuildUserPrompt(s, long, 0)
	assert.True(t, utf8.ValidString(prompt))
	assert.Contains(t, prompt, strings.Repeat("日", DefaultTextBudget))
	assert.NotContains(t, prompt, strings.Repeat("日", DefaultTextBudget+1))
}

func TestTruncateRunes(t *testing.T) {
	assert.Equal(t, "abc", truncateRunes("abcdef", 3))
	assert.Equal(t, "abc", truncateRunes("abc", 10))
	assert.Equal(t, "日本", truncateRunes("日本語", 2))
	assert.Equal(t, "", truncateRunes("abc", 0))
}

func TestBuildUserPrompt_ListsEveryField(t *testing.T) {
	s := schema.New(schema.DocumentFields())
	prompt := BuildUserPrompt(s, "NOTE. Borrower promises to pay...", 4000)

	for _, name := range s.Names() {
		assert.Contains(t, prompt, name)
	}
	assert.Contains(t, prompt, "NOTE. Borrower promises to pay...")
}
