package entity

import (
	"time"

	"github.com/google/uuid"

	"github.com/mbzesq/npl-vision-2/constants"
	"github.com/mbzesq/npl-vision-2/internal/llm"
	"github.com/mbzesq/npl-vision-2/internal/schema"
)

// Document is a normalized legal-document record produced by unstructured
// extraction.
type Document struct {
	ID               uuid.UUID  `json:"id"`
	LoanID           *uuid.UUID `json:"loan_id,omitempty"`
	DocumentType     *string    `json:"document_type,omitempty"`
	RecordingDate    *time.Time `json:"recording_date,omitempty"`
	InstrumentNumber *string    `json:"instrument_number,omitempty"`
	OriginalLender   *string    `json:"original_lender,omitempty"`
	Assignor         *string    `json:"assignor,omitempty"`
	Assignee         *string    `json:"assignee,omitempty"`
	ConfidenceScore  float64    `json:"confidence_score"`
	CreatedAt        time.Time  `json:"created_at"`
}

// DocumentFromExtraction builds a Document from the document-specific subset
// of an extraction result. A recognized document type label is stored in its
// canonical lowercase form; unrecognized labels are kept as extracted.
func DocumentFromExtraction(res llm.ExtractionResult) *Document {
	rec := schema.Record(res.Fields)
	docType := textVal(rec, "document_type")
	if docType != nil {
		if dt, ok := constants.CanonicalDocumentType(*docType); ok {
			s := string(dt)
			docType = &s
		}
	}
	return &Document{
		ID:               uuid.New(),
		DocumentType:     docType,
		RecordingDate:    dateVal(rec, "recording_date"),
		InstrumentNumber: textVal(rec, "instrument_number"),
		OriginalLender:   textVal(rec, "original_lender"),
		Assignor:         textVal(rec, "assignor"),
		Assignee:         textVal(rec, "assignee"),
		ConfidenceScore:  res.Confidence,
	}
}
