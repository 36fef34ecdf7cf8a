package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mbzesq/npl-vision-2/internal/schema"
)

// Loan is a normalized tabular loan record for transfer between layers.
// Pointer fields are absent when the source cell was missing or unparseable.
type Loan struct {
	ID              uuid.UUID        `json:"id"`
	BorrowerName    *string          `json:"borrower_name,omitempty"`
	CoBorrowerName  *string          `json:"co_borrower_name,omitempty"`
	Address         *string          `json:"address,omitempty"`
	City            *string          `json:"city,omitempty"`
	State           *string          `json:"state,omitempty"`
	ZipCode         *string          `json:"zip_code,omitempty"`
	LoanAmount      *decimal.Decimal `json:"loan_amount,omitempty"`
	InterestRate    *float64         `json:"interest_rate,omitempty"`
	MaturityDate    *time.Time       `json:"maturity_date,omitempty"`
	DateOfLoan      *time.Time       `json:"date_of_loan,omitempty"`
	CurrentUPB      *decimal.Decimal `json:"current_upb,omitempty"`
	AccruedInterest *decimal.Decimal `json:"accrued_interest,omitempty"`
	TotalBalance    *decimal.Decimal `json:"total_balance,omitempty"`
	LastPaidDate    *time.Time       `json:"last_paid_date,omitempty"`
	NextDueDate     *time.Time       `json:"next_due_date,omitempty"`
	RemainingTerm   *int             `json:"remaining_term,omitempty"`
	LegalStatus     *string          `json:"legal_status,omitempty"`
	LienPosition    *string          `json:"lien_position,omitempty"`
	InvestorName    *string          `json:"investor_name,omitempty"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

// LoanFromRecord builds a Loan from a canonical record. Values of the wrong
// dynamic type are treated as absent.
func LoanFromRecord(rec schema.Record) *Loan {
	return &Loan{
		ID:              uuid.New(),
		BorrowerName:    textVal(rec, "borrower_name"),
		CoBorrowerName:  textVal(rec, "co_borrower_name"),
		Address:         textVal(rec, "address"),
		City:            textVal(rec, "city"),
		State:           textVal(rec, "state"),
		ZipCode:         textVal(rec, "zip_code"),
		LoanAmount:      decimalVal(rec, "loan_amount"),
		InterestRate:    floatVal(rec, "interest_rate"),
		MaturityDate:    dateVal(rec, "maturity_date"),
		DateOfLoan:      dateVal(rec, "date_of_loan"),
		CurrentUPB:      decimalVal(rec, "current_upb"),
		AccruedInterest: decimalVal(rec, "accrued_interest"),
		TotalBalance:    decimalVal(rec, "total_balance"),
		LastPaidDate:    dateVal(rec, "last_paid_date"),
		NextDueDate:     dateVal(rec, "next_due_date"),
		RemainingTerm:   intVal(rec, "remaining_term"),
		LegalStatus:     textVal(rec, "legal_status"),
		LienPosition:    textVal(rec, "lien_position"),
		InvestorName:    textVal(rec, "investor_name"),
	}
}

func textVal(rec schema.Record, name string) *string {
	if v, ok := rec[name].(string); ok {
		return &v
	}
	return nil
}

func decimalVal(rec schema.Record, name string) *decimal.Decimal {
	if v, ok := rec[name].(decimal.Decimal); ok {
		return &v
	}
	return nil
}

func floatVal(rec schema.Record, name string) *float64 {
	if v, ok := rec[name].(float64); ok {
		return &v
	}
	return nil
}

func dateVal(rec schema.Record, name string) *time.Time {
	if v, ok := rec[name].(time.Time); ok {
		return &v
	}
	return nil
}

func intVal(rec schema.Record, name string) *int {
	if v, ok := rec[name].(int); ok {
		return &v
	}
	return nil
}
