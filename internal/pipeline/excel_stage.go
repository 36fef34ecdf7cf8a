package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/mbzesq/npl-vision-2/internal/entity"
	"github.com/mbzesq/npl-vision-2/internal/repository"
	"github.com/mbzesq/npl-vision-2/internal/schema"
	"github.com/mbzesq/npl-vision-2/internal/tabular"
)

// ExcelStage normalizes a staged spreadsheet into loan records and persists
// them.
type ExcelStage struct {
	Logger    *slog.Logger
	Tabular   *tabular.Pipeline
	LoansRepo repository.LoanRepository
}

func NewExcelStage(logger *slog.Logger, s *schema.Schema, loans repository.LoanRepository) *ExcelStage {
	if logger == nil {
		logger = slog.Default()
	}
	return &ExcelStage{
		Logger:    logger,
		Tabular:   tabular.NewPipeline(s, logger),
		LoansRepo: loans,
	}
}

// Run reads the workbook at path, runs the tabular ingestion pipeline, and
// persists every created record. Row-level problems never abort the batch;
// a persistence failure is terminal for the upload.
func (p *ExcelStage) Run(ctx context.Context, path string) (tabular.Summary, error) {
	f, err := os.Open(path)
	if err != nil {
		return tabular.Summary{}, fmt.Errorf("open spreadsheet: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			p.Logger.Warn("pipeline.excel.close_failed", "path", path, "error", cerr)
		}
	}()

	headers, rows, err := tabular.ReadWorkbook(f)
	if err != nil {
		return tabular.Summary{}, fmt.Errorf("read workbook: %w", err)
	}

	records, summary := p.Tabular.Ingest(headers, rows)
	for _, rec := range records {
		if err := p.LoansRepo.CreateLoan(ctx, entity.LoanFromRecord(rec)); err != nil {
			return tabular.Summary{}, fmt.Errorf("persist loan: %w", err)
		}
	}

	p.Logger.Info("pipeline.excel.ok", "path", path, "loans_created", summary.CreatedCount)
	return summary, nil
}

// IngestRecords runs the normalization pipeline without persistence, for
// callers that only want the records (CLI dry runs, tests).
func (p *ExcelStage) IngestRecords(headers []string, rows []tabular.Row) ([]schema.Record, tabular.Summary) {
	return p.Tabular.Ingest(headers, rows)
}
