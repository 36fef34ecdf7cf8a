// Package pipeline coordinates the staged processing of uploaded sources:
// spreadsheets through the tabular pipeline, documents through text
// extraction and the external capability.
package pipeline

import (
	"context"
	"log/slog"

	"github.com/mbzesq/npl-vision-2/internal/llm"
	"github.com/mbzesq/npl-vision-2/internal/tabular"
)

// Processor is the single entry point the API layer depends on.
type Processor struct {
	Logger   *slog.Logger
	Excel    *ExcelStage
	Document *DocumentStage
}

func NewProcessor(logger *slog.Logger, excel *ExcelStage, document *DocumentStage) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{Logger: logger, Excel: excel, Document: document}
}

// ProcessSpreadsheet normalizes and persists a staged spreadsheet.
func (p *Processor) ProcessSpreadsheet(ctx context.Context, path string) (tabular.Summary, error) {
	summary, err := p.Excel.Run(ctx, path)
	if err != nil {
		p.Logger.Error("processor.excel.failed", "path", path, "error", err)
		return tabular.Summary{}, err
	}
	return summary, nil
}

// ProcessDocument normalizes and persists a staged PDF document. The
// filename travels along as a hint for the extractor and the logs.
func (p *Processor) ProcessDocument(ctx context.Context, path, filename string) (llm.ExtractionResult, error) {
	result, err := p.Document.Run(ctx, path, filename)
	if err != nil {
		p.Logger.Error("processor.document.failed", "filename", filename, "error", err)
		return llm.ExtractionResult{}, err
	}
	return result, nil
}
