// Package tabular turns rows of inconsistently-labeled spreadsheet data into
// canonical loan records.
package tabular

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/mbzesq/npl-vision-2/internal/coerce"
	"github.com/mbzesq/npl-vision-2/internal/reconcile"
	"github.com/mbzesq/npl-vision-2/internal/schema"
)

// PreviewLimit bounds how many created records the ingestion summary carries.
const PreviewLimit = 5

// Row maps an observed column label to the raw cell under it.
type Row map[string]coerce.Raw

// Summary is the ingestion outcome returned to the caller alongside the
// full record set.
type Summary struct {
	CreatedCount int             `json:"loans_created"`
	Preview      []schema.Record `json:"preview"`
}

type Pipeline struct {
	schema *schema.Schema
	logger *slog.Logger
}

func NewPipeline(s *schema.Schema, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{schema: s, logger: logger}
}

// Ingest reconciles the observed headers once, coerces every mapped cell of
// every row, and assembles canonical records. Rows whose every mapped cell
// coerces to nil are discarded; a row that fails assembly is logged and
// skipped without aborting the batch. The preview holds at most the first
// PreviewLimit created records in row order.
func (p *Pipeline) Ingest(observedHeaders []string, rows []Row) ([]schema.Record, Summary) {
	start := time.Now()
	mapping := reconcile.Reconcile(p.schema, observedHeaders)

	records := make([]schema.Record, 0, len(rows))
	preview := make([]schema.Record, 0, PreviewLimit)
	skipped := 0

	for i, row := range rows {
		rec, err := p.buildRecord(row, mapping)
		if err != nil {
			skipped++
			p.logger.Warn("tabular.row.skipped", "row", i, "error", err)
			continue
		}
		if rec.Empty() {
			continue
		}
		records = append(records, rec)
		if len(preview) < PreviewLimit {
			preview = append(preview, rec)
		}
	}

	p.logger.Info("tabular.ingest.ok",
		"rows", len(rows),
		"created", len(records),
		"skipped", skipped,
		"mapped_fields", len(mapping),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return records, Summary{CreatedCount: len(records), Preview: preview}
}

// buildRecord isolates per-row failures so one bad row never takes down the
// batch.
func (p *Pipeline) buildRecord(row Row, mapping map[string]string) (rec schema.Record, err error) {
	defer func() {
		if r := recover(); r != nil {
			rec, err = nil, fmt.Errorf("assemble record: %v", r)
		}
	}()

	rec = make(schema.Record, len(mapping))
	for name, header := range mapping {
		field, ok := p.schema.Lookup(name)
		if !ok {
			continue
		}
		raw, ok := row[header]
		if !ok {
			rec[name] = nil
			continue
		}
		rec[name] = coerce.Coerce(field, raw)
	}
	return rec, nil
}
