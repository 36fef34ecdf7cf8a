package entity

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbzesq/npl-vision-2/internal/llm"
	"github.com/mbzesq/npl-vision-2/internal/schema"
)

func TestLoanFromRecord(t *testing.T) {
	amount := decimal.NewFromInt(250000)
	rec := schema.Record{
		"borrower_name":  "Smith, John",
		"loan_amount":    amount,
		"interest_rate":  0.065,
		"maturity_date":  time.Date(2034, 1, 1, 0, 0, 0, 0, time.UTC),
		"remaining_term": 96,
		"city":           nil,
	}

	loan := LoanFromRecord(rec)
	require.NotNil(t, loan.BorrowerName)
	assert.Equal(t, "Smith, John", *loan.BorrowerName)
	require.NotNil(t, loan.LoanAmount)
	assert.True(t, loan.LoanAmount.Equal(amount))
	require.NotNil(t, loan.InterestRate)
	assert.Equal(t, 0.065, *loan.InterestRate)
	require.NotNil(t, loan.RemainingTerm)
	assert.Equal(t, 96, *loan.RemainingTerm)
	assert.Nil(t, loan.City)
	assert.Nil(t, loan.CoBorrowerName)
	assert.NotEqual(t, loan.ID.String(), "00000000-0000-0000-0000-000000000000")
}

func TestDocumentFromExtraction(t *testing.T) {
	recorded := time.Date(2021, 6, 30, 0, 0, 0, 0, time.UTC)
	doc := DocumentFromExtraction(llm.ExtractionResult{
		Fields: map[string]any{
			"document_type":  "Assignment",
			"recording_date": recorded,
			"assignor":       "First National Bank",
			"assignee":       "NPL Partners LLC",
		},
		Confidence: 0.9,
	})

	require.NotNil(t, doc.DocumentType)
	assert.Equal(t, "assignment", *doc.DocumentType)
	require.NotNil(t, doc.RecordingDate)
	assert.Equal(t, recorded, *doc.RecordingDate)
	require.NotNil(t, doc.Assignor)
	assert.Equal(t, "First National Bank", *doc.Assignor)
	assert.Equal(t, 0.9, doc.ConfidenceScore)
	assert.Nil(t, doc.OriginalLender)
}
