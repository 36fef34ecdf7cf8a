package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mbzesq/npl-vision-2/internal/llm"
)

// ExtractFields implements llm.FieldExtractor over chat/completions. The
// reply content is fence-stripped and decoded into a field map; content that
// is not a JSON object returns llm.ErrUnparseableResponse so the caller can
// fall back to a placeholder result.
func (c *Client) ExtractFields(ctx context.Context, req llm.ExtractRequest) (map[string]any, []byte, error) {
	rid := uuid.New().String()
	start := time.Now()

	c.log.Info("llm.extract.start",
		"req_id", rid,
		"model", c.cfg.Model,
		"temp", c.cfg.Temperature,
		"text_len", len(req.Text),
		"filename", req.FilenameHint,
	)

	body := map[string]any{
		"model":       c.cfg.Model,
		"temperature": c.cfg.Temperature,
		"max_tokens":  c.cfg.MaxTokens,
		"messages": []map[string]any{
			{"role": "system", "content": llm.BuildSystemPrompt()},
			{"role": "user", "content": llm.BuildUserPrompt(c.schema, req.Text, c.cfg.TextBudget)},
		},
	}

	endpoint := strings.TrimRight(c.cfg.BaseURL, "/") + "/chat/completions"
	headers := map[string]string{"Authorization": "Bearer " + c.cfg.APIKey}
	raw, status, err := llm.SendJSON(ctx, c.http, endpoint, body, headers, c.log)
	if err != nil {
		c.log.Error("llm.extract.http_error",
			"req_id", rid, "status", status, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return nil, raw, fmt.Errorf("openai call: %w", err)
	}

	var cc struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(raw, &cc); err != nil {
		c.log.Error("llm.extract.decode_error",
			"req_id", rid, "error", err, "raw_bytes", len(raw),
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return nil, raw, fmt.Errorf("decode openai response: %w", err)
	}
	if len(cc.Choices) == 0 {
		c.log.Error("llm.extract.no_choices", "req_id", rid, "elapsed_ms", time.Since(start).Milliseconds())
		return nil, raw, fmt.Errorf("no choices in openai response")
	}
	content := strings.TrimSpace(cc.Choices[0].Message.Content)

	fields, err := llm.DecodeFieldMap(content)
	if err != nil {
		c.log.Warn("llm.extract.unparseable_content",
			"req_id", rid, "content_bytes", len(content),
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return nil, []byte(content), err
	}

	// Advisory only: coercion nulls whatever the schema would have rejected.
	payload, _ := json.Marshal(fields)
	if verr := llm.ValidateJSONAgainstSchema(llm.BuildDocumentJSONSchema(c.schema), payload); verr != nil {
		c.log.Warn("llm.extract.schema_mismatch", "req_id", rid, "error", verr)
	}

	c.log.Info("llm.extract.ok",
		"req_id", rid,
		"fields", len(fields),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return fields, []byte(content), nil
}
