package pipeline

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbzesq/npl-vision-2/internal/common"
	"github.com/mbzesq/npl-vision-2/internal/entity"
	"github.com/mbzesq/npl-vision-2/internal/llm"
	"github.com/mbzesq/npl-vision-2/internal/schema"
)

type fakeExtractor struct {
	fields map[string]any
	err    error
	calls  int
}

func (f *fakeExtractor) ExtractFields(ctx context.Context, req llm.ExtractRequest) (map[string]any, []byte, error) {
	f.calls++
	if f.err != nil {
		return nil, nil, f.err
	}
	return f.fields, nil, nil
}

type fakeDocsRepo struct {
	created []*entity.Document
}

func (f *fakeDocsRepo) CreateDocument(ctx context.Context, doc *entity.Document) error {
	f.created = append(f.created, doc)
	return nil
}

func (f *fakeDocsRepo) ListByLoan(ctx context.Context, loanID uuid.UUID) ([]*entity.Document, error) {
	return nil, nil
}

func newTestStage(fe *fakeExtractor) *DocumentStage {
	return NewDocumentStage(nil, schema.New(schema.DocumentFields()), nil, fe, &fakeDocsRepo{})
}

func TestExtractFromText_RefusesEmptyText(t *testing.T) {
	fe := &fakeExtractor{}
	stage := newTestStage(fe)

	for _, text := range []string{"", "   ", "\n\t"} {
		_, err := stage.ExtractFromText(context.Background(), text, "scan.pdf")
		require.Error(t, err)
		assert.ErrorIs(t, err, common.ErrNoContent)
	}
	// The refusal must happen before any external invocation.
	assert.Equal(t, 0, fe.calls)
}

func TestExtractFromText_NormalizesFields(t *testing.T) {
	fe := &fakeExtractor{fields: map[string]any{
		"document_type": "note",
		"loan_amount":   "$95,000",
		"interest_rate": "8.25",
		"confidence":    0.88,
	}}
	stage := newTestStage(fe)

	res, err := stage.ExtractFromText(context.Background(), "NOTE dated January 5...", "note.pdf")
	require.NoError(t, err)
	assert.Equal(t, "note", res.Fields["document_type"])
	assert.InDelta(t, 0.0825, res.Fields["interest_rate"].(float64), 1e-9)
	assert.Equal(t, 0.88, res.Confidence)
	assert.Equal(t, 1, fe.calls)
}

func TestExtractFromText_UnparseableReplyDegradesToPlaceholder(t *testing.T) {
	fe := &fakeExtractor{err: fmt.Errorf("decode field map: invalid character 'I': %w", llm.ErrUnparseableResponse)}
	stage := newTestStage(fe)

	res, err := stage.ExtractFromText(context.Background(), "some scanned text", "doc.pdf")
	require.NoError(t, err)
	assert.Equal(t, "unknown", res.Fields["document_type"])
	assert.Equal(t, llm.PlaceholderConfidence, res.Confidence)
	assert.NotEmpty(t, res.Diagnostic)
}

func TestExtractFromText_TransportFailureIsTerminal(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	fe := &fakeExtractor{err: cause}
	stage := newTestStage(fe)

	_, err := stage.ExtractFromText(context.Background(), "some scanned text", "doc.pdf")
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrExternalCall)
	assert.ErrorIs(t, err, cause)
}
