package pipeline

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/mbzesq/npl-vision-2/internal/entity"
	"github.com/mbzesq/npl-vision-2/internal/schema"
)

type fakeLoansRepo struct {
	created []*entity.Loan
}

func (f *fakeLoansRepo) CreateLoan(ctx context.Context, loan *entity.Loan) error {
	f.created = append(f.created, loan)
	return nil
}

func (f *fakeLoansRepo) GetLoan(ctx context.Context, id uuid.UUID) (*entity.Loan, error) {
	return nil, nil
}

func (f *fakeLoansRepo) ListLoans(ctx context.Context, limit, offset int) ([]*entity.Loan, error) {
	return f.created, nil
}

func writeTestWorkbook(t *testing.T, headers []string, rows [][]any) string {
	t.Helper()
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		require.NoError(t, err)
		require.NoError(t, f.SetCellValue(sheet, cell, h))
	}
	for r, row := range rows {
		for c, v := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue(sheet, cell, v))
		}
	}
	path := filepath.Join(t.TempDir(), "portfolio.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestExcelStageRun(t *testing.T) {
	repo := &fakeLoansRepo{}
	stage := NewExcelStage(nil, schema.New(schema.LoanFields()), repo)

	path := writeTestWorkbook(t,
		[]string{"Borrower", "Loan Amount", "Interest Rate", "State"},
		[][]any{
			{"Smith, John", "$250,000.00", "6.5", "NY"},
			{"Jones, Mary", "180000", "0.055", "FL"},
			{"", "", "", ""}, // blank row must be discarded, not persisted
		},
	)

	summary, err := stage.Run(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.CreatedCount)
	require.Len(t, repo.created, 2)

	first := repo.created[0]
	require.NotNil(t, first.BorrowerName)
	assert.Equal(t, "Smith, John", *first.BorrowerName)
	require.NotNil(t, first.LoanAmount)
	assert.Equal(t, "250000", first.LoanAmount.String())
	require.NotNil(t, first.InterestRate)
	assert.InDelta(t, 0.065, *first.InterestRate, 1e-9)
}

func TestExcelStageRun_MissingFile(t *testing.T) {
	stage := NewExcelStage(nil, schema.New(schema.LoanFields()), &fakeLoansRepo{})
	_, err := stage.Run(context.Background(), filepath.Join(t.TempDir(), "nope.xlsx"))
	require.Error(t, err)
}
