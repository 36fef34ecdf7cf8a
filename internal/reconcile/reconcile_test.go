package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbzesq/npl-vision-2/internal/schema"
)

func TestReconcile_LoanHeaders(t *testing.T) {
	s := schema.New(schema.LoanFields())
	mapping := Reconcile(s, []string{"Borrower", "Loan Amount", "Int Rate"})

	assert.Equal(t, "Borrower", mapping["borrower_name"])
	assert.Equal(t, "Loan Amount", mapping["loan_amount"])
	assert.Equal(t, "Int Rate", mapping["interest_rate"])

	// The co-borrower field scores lower against "Borrower" than the
	// borrower field does, so it must stay unmapped rather than steal the
	// column.
	_, ok := mapping["co_borrower_name"]
	assert.False(t, ok)
}

func TestReconcile_KeepsOriginalHeaderSpelling(t *testing.T) {
	s := schema.New(schema.LoanFields())
	mapping := Reconcile(s, []string{"  BORROWER NAME  ", "CURRENT UPB"})

	// Matching is case- and space-insensitive but the mapping must point at
	// the header exactly as observed, since rows are keyed by it.
	assert.Equal(t, "  BORROWER NAME  ", mapping["borrower_name"])
	assert.Equal(t, "CURRENT UPB", mapping["current_upb"])
}

func TestReconcile_NoMatchBelowCutoff(t *testing.T) {
	s := schema.New(schema.LoanFields())
	mapping := Reconcile(s, []string{"Account Manager Phone", "xyz", ""})
	assert.NotContains(t, mapping, "borrower_name")
	assert.NotContains(t, mapping, "loan_amount")
}

func TestReconcile_HeaderClaimedOnce(t *testing.T) {
	s := schema.New([]schema.Field{
		{Name: "alpha", Type: schema.TypeText, Synonyms: []string{"value"}},
		{Name: "beta", Type: schema.TypeText, Synonyms: []string{"value"}},
	})
	mapping := Reconcile(s, []string{"Value"})

	// Equal scores break lexicographically by field name, and the losing
	// field may not reuse the claimed header.
	require.Len(t, mapping, 1)
	assert.Equal(t, "Value", mapping["alpha"])
}

func TestReconcile_Deterministic(t *testing.T) {
	s := schema.New(schema.LoanFields())
	headers := []string{"Borrower", "Co-Borrower", "Loan Amount", "Interest Rate", "Current Balance", "Total Balance", "Status"}

	first := Reconcile(s, headers)
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, Reconcile(s, headers))
	}
}

func TestJaccard(t *testing.T) {
	assert.Equal(t, 1.0, jaccard("abc", "cab"))
	assert.Equal(t, 0.0, jaccard("abc", "xyz"))
	assert.InDelta(t, 1.0/3.0, jaccard("ab", "bc"), 1e-9)
}
