package extract

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/ledongthuc/pdf"
)

// PDFExtractor extracts the embedded text layer of a PDF. Scanned documents
// without a text layer come back empty; the caller treats that as
// no extractable content.
type PDFExtractor struct {
	logger *slog.Logger
}

func NewPDFExtractor(logger *slog.Logger) *PDFExtractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &PDFExtractor{logger: logger}
}

func (e *PDFExtractor) Extract(ctx context.Context, path string) (TextExtractionResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return TextExtractionResult{}, fmt.Errorf("read pdf: %w", err)
	}

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return TextExtractionResult{}, fmt.Errorf("open pdf: %w", err)
	}

	var b bytes.Buffer
	total := r.NumPage()
	for pageIndex := 1; pageIndex <= total; pageIndex++ {
		if err := ctx.Err(); err != nil {
			return TextExtractionResult{}, err
		}
		p := r.Page(pageIndex)
		if p.V.IsNull() {
			continue
		}
		rows, err := p.GetTextByRow()
		if err != nil {
			e.logger.Warn("extract.pdf.page_failed", "path", path, "page", pageIndex, "error", err)
			continue
		}
		for _, row := range rows {
			for _, word := range row.Content {
				b.WriteString(word.S)
			}
			b.WriteString("\n")
		}
	}

	res := TextExtractionResult{Text: b.String(), Pages: total, Method: "pdf-text"}
	e.logger.Info("extract.pdf.ok", "path", path, "pages", total, "bytes", b.Len())
	return res, nil
}
