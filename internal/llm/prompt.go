package llm

import (
	"strings"

	"github.com/mbzesq/npl-vision-2/internal/schema"
)

// DefaultTextBudget caps how much document text is sent to the capability.
// Truncation is silent: a long recording rides on its first pages anyway, and
// the external request-size limit is a hard one.
const DefaultTextBudget = 4000

// fieldGuidance gives the model a short rubric per canonical field. Fields
// without an entry are prompted by name alone.
var fieldGuidance = map[string]string{
	"document_type":     "The type of document (note, mortgage, assignment, allonge, etc.)",
	"borrower_name":     "Primary borrower name",
	"co_borrower_name":  "Co-borrower name if present",
	"date_of_loan":      "Date when the loan was originated",
	"recording_date":    "Date when the document was recorded",
	"instrument_number": "Recording or instrument number",
	"property_address":  "Full property address",
	"city":              "Property city",
	"state":             "Property state",
	"zip_code":          "Property zip code",
	"loan_amount":       "Original loan amount",
	"interest_rate":     "Interest rate as a decimal, e.g. 0.05 for 5%",
	"maturity_date":     "Loan maturity date",
	"original_lender":   "Original lender name",
	"assignor":          "Entity assigning the loan (if assignment document)",
	"assignee":          "Entity receiving the assignment (if assignment document)",
	"confidence":        "Your confidence in the extraction (0.0 to 1.0)",
}

// BuildSystemPrompt composes the system message for loan-document extraction.
func BuildSystemPrompt() string {
	return "You are an expert at extracting structured data from loan documents. " +
		"Return ONLY a JSON object with the requested fields. " +
		"Use ISO-8601 dates (YYYY-MM-DD). " +
		"If a field is not found or unclear, set it to null. " +
		"For multiple assignments, provide the most recent assignor and assignee."
}

// BuildUserPrompt packages the field list and a bounded prefix of the
// document text.
func BuildUserPrompt(s *schema.Schema, text string, budget int) string {
	if budget <= 0 {
		budget = DefaultTextBudget
	}
	text = truncateRunes(text, budget)

	var b strings.Builder
	b.WriteString("Extract structured data from this loan document. Return a JSON object with the following fields:\n\n")
	for _, f := range s.Fields() {
		b.WriteString("- ")
		b.WriteString(f.Name)
		if g, ok := fieldGuidance[f.Name]; ok {
			b.WriteString(": ")
			b.WriteString(g)
		}
		b.WriteString("\n")
	}
	b.WriteString("\nDocument text:\n")
	b.WriteString(text)
	b.WriteString("\n\nReturn only valid JSON.")
	return b.String()
}

// truncateRunes cuts text to at most n runes. Cutting on a byte index could
// split a multibyte rune and ship invalid UTF-8.
func truncateRunes(text string, n int) string {
	count := 0
	for i := range text {
		if count == n {
			return text[:i]
		}
		count++
	}
	return text
}
