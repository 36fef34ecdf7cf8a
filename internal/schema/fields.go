package schema

import "strings"

// FieldType is the semantic type a canonical field normalizes into.
type FieldType string

const (
	TypeText       FieldType = "text"
	TypeCurrency   FieldType = "currency"
	TypeRate       FieldType = "fraction_rate"
	TypeDate       FieldType = "date"
	TypeInteger    FieldType = "integer"
	TypeConfidence FieldType = "confidence_score"
)

// Field is one canonical target attribute. Synonyms are the matching
// vocabulary for header reconciliation; they are lower-cased and trimmed
// when the Schema is built.
type Field struct {
	Name     string
	Type     FieldType
	Synonyms []string
}

// Schema is the full canonical field set. It is built once at startup and
// never mutated afterward, so it is safe for unsynchronized concurrent reads.
type Schema struct {
	fields []Field
	byName map[string]int
}

// New builds a Schema from the given fields, normalizing every synonym.
func New(fields []Field) *Schema {
	s := &Schema{
		fields: make([]Field, len(fields)),
		byName: make(map[string]int, len(fields)),
	}
	for i, f := range fields {
		syns := make([]string, len(f.Synonyms))
		for j, syn := range f.Synonyms {
			syns[j] = strings.ToLower(strings.TrimSpace(syn))
		}
		s.fields[i] = Field{Name: f.Name, Type: f.Type, Synonyms: syns}
		s.byName[f.Name] = i
	}
	return s
}

// Fields returns the fields in declaration order. Callers must not mutate
// the returned slice.
func (s *Schema) Fields() []Field {
	return s.fields
}

// Lookup returns the field with the given canonical name.
func (s *Schema) Lookup(name string) (Field, bool) {
	i, ok := s.byName[name]
	if !ok {
		return Field{}, false
	}
	return s.fields[i], true
}

// Names returns the canonical field names in declaration order.
func (s *Schema) Names() []string {
	names := make([]string, len(s.fields))
	for i, f := range s.fields {
		names[i] = f.Name
	}
	return names
}

// Record maps canonical field names to coerced typed values (nil for
// unparseable or absent cells).
type Record map[string]any

// Empty reports whether every value in the record is nil. An empty record
// must be discarded by the caller, never persisted.
func (r Record) Empty() bool {
	for _, v := range r {
		if v != nil {
			return false
		}
	}
	return true
}

// LoanFields is the canonical field set for tabular loan records.
func LoanFields() []Field {
	return []Field{
		{Name: "borrower_name", Type: TypeText, Synonyms: []string{"borrower", "borrower name", "borrower_name", "primary borrower", "mortgagor"}},
		{Name: "co_borrower_name", Type: TypeText, Synonyms: []string{"co-borrower", "co borrower", "co_borrower", "secondary borrower", "co-mortgagor"}},
		{Name: "address", Type: TypeText, Synonyms: []string{"address", "property address", "street address", "property_address"}},
		{Name: "city", Type: TypeText, Synonyms: []string{"city"}},
		{Name: "state", Type: TypeText, Synonyms: []string{"state", "st"}},
		{Name: "zip_code", Type: TypeText, Synonyms: []string{"zip", "zip code", "zipcode", "postal code"}},
		{Name: "loan_amount", Type: TypeCurrency, Synonyms: []string{"loan amount", "original balance", "principal amount", "loan_amount"}},
		{Name: "interest_rate", Type: TypeRate, Synonyms: []string{"interest rate", "rate", "int rate", "interest_rate"}},
		{Name: "maturity_date", Type: TypeDate, Synonyms: []string{"maturity date", "due date", "maturity_date"}},
		{Name: "date_of_loan", Type: TypeDate, Synonyms: []string{"loan date", "origination date", "date_of_loan"}},
		{Name: "current_upb", Type: TypeCurrency, Synonyms: []string{"current balance", "unpaid balance", "current upb", "upb"}},
		{Name: "accrued_interest", Type: TypeCurrency, Synonyms: []string{"accrued interest", "interest accrued"}},
		{Name: "total_balance", Type: TypeCurrency, Synonyms: []string{"total balance", "total amount due"}},
		{Name: "last_paid_date", Type: TypeDate, Synonyms: []string{"last payment date", "last paid", "last_paid_date"}},
		{Name: "next_due_date", Type: TypeDate, Synonyms: []string{"next due date", "next payment date", "next_due_date"}},
		{Name: "remaining_term", Type: TypeInteger, Synonyms: []string{"remaining term", "months remaining"}},
		{Name: "legal_status", Type: TypeText, Synonyms: []string{"status", "legal status", "loan status"}},
		{Name: "lien_position", Type: TypeText, Synonyms: []string{"lien position", "position"}},
		{Name: "investor_name", Type: TypeText, Synonyms: []string{"investor", "investor name", "owner"}},
	}
}

// DocumentFields is the canonical field set for unstructured legal documents.
// It shares the borrower/property/terms fields with LoanFields and adds the
// document-specific attributes produced by assignment chains and recordings.
func DocumentFields() []Field {
	return []Field{
		{Name: "document_type", Type: TypeText, Synonyms: []string{"document type", "doc type", "document_type"}},
		{Name: "borrower_name", Type: TypeText, Synonyms: []string{"borrower", "borrower name", "borrower_name", "mortgagor"}},
		{Name: "co_borrower_name", Type: TypeText, Synonyms: []string{"co-borrower", "co borrower", "co_borrower_name"}},
		{Name: "date_of_loan", Type: TypeDate, Synonyms: []string{"loan date", "origination date", "date_of_loan"}},
		{Name: "recording_date", Type: TypeDate, Synonyms: []string{"recording date", "recorded", "recording_date"}},
		{Name: "instrument_number", Type: TypeText, Synonyms: []string{"instrument number", "recording number", "instrument_number"}},
		{Name: "property_address", Type: TypeText, Synonyms: []string{"property address", "address", "property_address"}},
		{Name: "city", Type: TypeText, Synonyms: []string{"city"}},
		{Name: "state", Type: TypeText, Synonyms: []string{"state", "st"}},
		{Name: "zip_code", Type: TypeText, Synonyms: []string{"zip", "zip code", "zip_code"}},
		{Name: "loan_amount", Type: TypeCurrency, Synonyms: []string{"loan amount", "principal amount", "loan_amount"}},
		{Name: "interest_rate", Type: TypeRate, Synonyms: []string{"interest rate", "rate", "interest_rate"}},
		{Name: "maturity_date", Type: TypeDate, Synonyms: []string{"maturity date", "maturity_date"}},
		{Name: "original_lender", Type: TypeText, Synonyms: []string{"original lender", "lender", "original_lender"}},
		{Name: "assignor", Type: TypeText, Synonyms: []string{"assignor"}},
		{Name: "assignee", Type: TypeText, Synonyms: []string{"assignee"}},
		{Name: "confidence", Type: TypeConfidence, Synonyms: []string{"confidence", "confidence score", "confidence_score"}},
	}
}
