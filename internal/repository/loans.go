package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mbzesq/npl-vision-2/internal/common"
	"github.com/mbzesq/npl-vision-2/internal/entity"
)

// LoanRepository persists normalized loan records.
type LoanRepository interface {
	CreateLoan(ctx context.Context, loan *entity.Loan) error
	GetLoan(ctx context.Context, id uuid.UUID) (*entity.Loan, error)
	ListLoans(ctx context.Context, limit, offset int) ([]*entity.Loan, error)
}

type loanRepository struct {
	db     *DB
	logger *slog.Logger
}

func NewLoanRepository(db *DB, logger *slog.Logger) LoanRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &loanRepository{db: db, logger: logger}
}

const loanColumns = `id, borrower_name, co_borrower_name, address, city, state, zip_code,
	loan_amount, interest_rate, maturity_date, date_of_loan, current_upb,
	accrued_interest, total_balance, last_paid_date, next_due_date,
	remaining_term, legal_status, lien_position, investor_name, created_at, updated_at`

func (r *loanRepository) CreateLoan(ctx context.Context, loan *entity.Loan) error {
	now := time.Now().UTC()
	loan.CreatedAt = now
	loan.UpdatedAt = now

	query := `INSERT INTO loans (` + loanColumns + `) VALUES
		($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22)`

	_, err := r.db.SQL.ExecContext(ctx, r.db.bind(query),
		loan.ID.String(),
		loan.BorrowerName,
		loan.CoBorrowerName,
		loan.Address,
		loan.City,
		loan.State,
		loan.ZipCode,
		decimalArg(loan.LoanAmount),
		loan.InterestRate,
		loan.MaturityDate,
		loan.DateOfLoan,
		decimalArg(loan.CurrentUPB),
		decimalArg(loan.AccruedInterest),
		decimalArg(loan.TotalBalance),
		loan.LastPaidDate,
		loan.NextDueDate,
		loan.RemainingTerm,
		loan.LegalStatus,
		loan.LienPosition,
		loan.InvestorName,
		loan.CreatedAt,
		loan.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("failed to create loan", "loan_id", loan.ID, "error", err)
		return fmt.Errorf("create loan: %w", err)
	}
	return nil
}

func (r *loanRepository) GetLoan(ctx context.Context, id uuid.UUID) (*entity.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans WHERE id = $1`
	row := r.db.SQL.QueryRowContext(ctx, r.db.bind(query), id.String())
	loan, err := scanLoan(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		r.logger.Error("failed to get loan", "loan_id", id, "error", err)
		return nil, fmt.Errorf("get loan: %w", err)
	}
	return loan, nil
}

func (r *loanRepository) ListLoans(ctx context.Context, limit, offset int) ([]*entity.Loan, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	query := `SELECT ` + loanColumns + ` FROM loans ORDER BY created_at DESC, id LIMIT $1 OFFSET $2`
	rows, err := r.db.SQL.QueryContext(ctx, r.db.bind(query), limit, offset)
	if err != nil {
		r.logger.Error("failed to list loans", "error", err)
		return nil, fmt.Errorf("list loans: %w", err)
	}
	defer rows.Close()

	var loans []*entity.Loan
	for rows.Next() {
		loan, err := scanLoan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan loan: %w", err)
		}
		loans = append(loans, loan)
	}
	return loans, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLoan(row rowScanner) (*entity.Loan, error) {
	var (
		idStr           string
		borrower        sql.NullString
		coBorrower      sql.NullString
		address         sql.NullString
		city            sql.NullString
		state           sql.NullString
		zipCode         sql.NullString
		loanAmount      decimal.NullDecimal
		interestRate    sql.NullFloat64
		maturityDate    sql.NullTime
		dateOfLoan      sql.NullTime
		currentUPB      decimal.NullDecimal
		accruedInterest decimal.NullDecimal
		totalBalance    decimal.NullDecimal
		lastPaidDate    sql.NullTime
		nextDueDate     sql.NullTime
		remainingTerm   sql.NullInt64
		legalStatus     sql.NullString
		lienPosition    sql.NullString
		investorName    sql.NullString
		createdAt       time.Time
		updatedAt       time.Time
	)

	if err := row.Scan(
		&idStr, &borrower, &coBorrower, &address, &city, &state, &zipCode,
		&loanAmount, &interestRate, &maturityDate, &dateOfLoan, &currentUPB,
		&accruedInterest, &totalBalance, &lastPaidDate, &nextDueDate,
		&remainingTerm, &legalStatus, &lienPosition, &investorName,
		&createdAt, &updatedAt,
	); err != nil {
		return nil, err
	}

	id, err := uuid.Parse(idStr)
	if err != nil {
		return nil, fmt.Errorf("parse loan id: %w", err)
	}

	return &entity.Loan{
		ID:              id,
		BorrowerName:    strPtr(borrower),
		CoBorrowerName:  strPtr(coBorrower),
		Address:         strPtr(address),
		City:            strPtr(city),
		State:           strPtr(state),
		ZipCode:         strPtr(zipCode),
		LoanAmount:      decPtr(loanAmount),
		InterestRate:    floatPtr(interestRate),
		MaturityDate:    timePtr(maturityDate),
		DateOfLoan:      timePtr(dateOfLoan),
		CurrentUPB:      decPtr(currentUPB),
		AccruedInterest: decPtr(accruedInterest),
		TotalBalance:    decPtr(totalBalance),
		LastPaidDate:    timePtr(lastPaidDate),
		NextDueDate:     timePtr(nextDueDate),
		RemainingTerm:   intPtr(remainingTerm),
		LegalStatus:     strPtr(legalStatus),
		LienPosition:    strPtr(lienPosition),
		InvestorName:    strPtr(investorName),
		CreatedAt:       createdAt,
		UpdatedAt:       updatedAt,
	}, nil
}

func decimalArg(d *decimal.Decimal) any {
	if d == nil {
		return nil
	}
	return d.String()
}

func strPtr(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	return &v.String
}

func decPtr(v decimal.NullDecimal) *decimal.Decimal {
	if !v.Valid {
		return nil
	}
	return &v.Decimal
}

func floatPtr(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	return &v.Float64
}

func timePtr(v sql.NullTime) *time.Time {
	if !v.Valid {
		return nil
	}
	return &v.Time
}

func intPtr(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	n := int(v.Int64)
	return &n
}
