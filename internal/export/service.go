package export

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/mbzesq/npl-vision-2/internal/repository"
)

// Service produces XLSX bytes for loan exports.
type Service struct {
	loansRepo repository.LoanRepository
	logger    *slog.Logger
}

func NewService(loans repository.LoanRepository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{loansRepo: loans, logger: logger}
}

// ExportLoansXLSX returns an XLSX workbook (as bytes) of up to limit loans.
func (s *Service) ExportLoansXLSX(ctx context.Context, limit int) ([]byte, error) {
	start := time.Now()

	loans, err := s.loansRepo.ListLoans(ctx, limit, 0)
	if err != nil {
		return nil, fmt.Errorf("query loans: %w", err)
	}

	f := excelize.NewFile()
	const sheet = "Loans"
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)

	headers := []string{
		"Borrower Name",
		"Co-Borrower Name",
		"Property Address",
		"City",
		"State",
		"Zip Code",
		"Loan Amount",
		"Interest Rate",
		"Origination Date",
		"Maturity Date",
		"Current UPB",
		"Total Balance",
		"Legal Status",
		"Investor Name",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	row := 2
	for _, l := range loans {
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(sheet, cell, v)
		}
		write(1, strOrEmpty(l.BorrowerName))
		write(2, strOrEmpty(l.CoBorrowerName))
		write(3, strOrEmpty(l.Address))
		write(4, strOrEmpty(l.City))
		write(5, strOrEmpty(l.State))
		write(6, strOrEmpty(l.ZipCode))
		write(7, decOrEmpty(l.LoanAmount))
		if l.InterestRate != nil {
			write(8, *l.InterestRate)
		} else {
			write(8, "")
		}
		write(9, dateOrEmpty(l.DateOfLoan))
		write(10, dateOrEmpty(l.MaturityDate))
		write(11, decOrEmpty(l.CurrentUPB))
		write(12, decOrEmpty(l.TotalBalance))
		write(13, strOrEmpty(l.LegalStatus))
		write(14, strOrEmpty(l.InvestorName))
		row++
	}

	_ = f.SetColWidth(sheet, "A", "B", 24)
	_ = f.SetColWidth(sheet, "C", "C", 36)
	_ = f.SetColWidth(sheet, "G", "L", 14)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	s.logger.Info("export.xlsx.ok",
		"rows", len(loans),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}

func strOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func decOrEmpty(d *decimal.Decimal) string {
	if d == nil {
		return ""
	}
	return d.String()
}

func dateOrEmpty(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}
