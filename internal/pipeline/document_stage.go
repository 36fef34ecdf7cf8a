package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/mbzesq/npl-vision-2/internal/common"
	"github.com/mbzesq/npl-vision-2/internal/entity"
	"github.com/mbzesq/npl-vision-2/internal/extract"
	"github.com/mbzesq/npl-vision-2/internal/llm"
	"github.com/mbzesq/npl-vision-2/internal/repository"
	"github.com/mbzesq/npl-vision-2/internal/schema"
)

// DocumentStage runs a staged PDF through text extraction, the external
// field-extraction capability, and the coercion pipeline, then persists the
// resulting document record.
type DocumentStage struct {
	Logger        *slog.Logger
	Schema        *schema.Schema
	TextExtractor extract.TextExtractor
	Extractor     llm.FieldExtractor
	DocsRepo      repository.DocumentRepository
}

func NewDocumentStage(
	logger *slog.Logger,
	s *schema.Schema,
	tx extract.TextExtractor,
	fe llm.FieldExtractor,
	docs repository.DocumentRepository,
) *DocumentStage {
	if logger == nil {
		logger = slog.Default()
	}
	return &DocumentStage{
		Logger:        logger,
		Schema:        s,
		TextExtractor: tx,
		Extractor:     fe,
		DocsRepo:      docs,
	}
}

// Run processes the PDF at path end to end. Empty extracted text refuses the
// document before the external call; a capability transport failure is
// terminal with the cause preserved; an unparseable capability reply degrades
// to a low-confidence placeholder instead of failing.
func (p *DocumentStage) Run(ctx context.Context, path, filename string) (llm.ExtractionResult, error) {
	text, err := p.TextExtractor.Extract(ctx, path)
	if err != nil {
		return llm.ExtractionResult{}, fmt.Errorf("extract text: %w", err)
	}

	result, err := p.ExtractFromText(ctx, text.Text, filename)
	if err != nil {
		return llm.ExtractionResult{}, err
	}

	if err := p.DocsRepo.CreateDocument(ctx, entity.DocumentFromExtraction(result)); err != nil {
		return llm.ExtractionResult{}, fmt.Errorf("persist document: %w", err)
	}
	return result, nil
}

// ExtractFromText is the unstructured extraction adapter: it refuses empty
// input, invokes the capability once, and normalizes whatever comes back
// through the coercion engine. It does not persist.
func (p *DocumentStage) ExtractFromText(ctx context.Context, text, filenameHint string) (llm.ExtractionResult, error) {
	start := time.Now()

	if strings.TrimSpace(text) == "" {
		p.Logger.Warn("pipeline.document.no_content", "filename", filenameHint)
		return llm.ExtractionResult{}, fmt.Errorf("no text content extracted from document: %w", common.ErrNoContent)
	}

	raw, _, err := p.Extractor.ExtractFields(ctx, llm.ExtractRequest{Text: text, FilenameHint: filenameHint})
	if err != nil {
		if errors.Is(err, llm.ErrUnparseableResponse) {
			p.Logger.Warn("pipeline.document.placeholder", "filename", filenameHint, "error", err)
			return llm.PlaceholderResult(err.Error()), nil
		}
		return llm.ExtractionResult{}, fmt.Errorf("%w: %w", common.ErrExternalCall, err)
	}

	result := llm.Normalize(p.Schema, raw, p.Logger)
	p.Logger.Info("pipeline.document.ok",
		"filename", filenameHint,
		"fields", len(result.Fields),
		"confidence", result.Confidence,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return result, nil
}
