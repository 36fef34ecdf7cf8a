package openai

import (
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/mbzesq/npl-vision-2/internal/schema"
)

// Config for the OpenAI-backed field extractor.
type Config struct {
	APIKey      string        // if empty, falls back to env OPENAI_API_KEY
	BaseURL     string        // default https://api.openai.com/v1
	Model       string        // e.g. "gpt-4o-mini"
	Temperature float32       // 0..2
	MaxTokens   int           // completion cap
	Timeout     time.Duration // http client timeout
	TextBudget  int           // document-text prefix sent to the model
}

type Client struct {
	cfg    Config
	schema *schema.Schema
	http   *http.Client
	log    *slog.Logger
}

func NewClient(cfg Config, s *schema.Schema, logger *slog.Logger) *Client {
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("OPENAI_API_KEY")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.openai.com/v1"
	}
	if cfg.Model == "" {
		cfg.Model = "gpt-4o-mini"
	}
	if cfg.Temperature <= 0 {
		cfg.Temperature = 0.1
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = 1000
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 45 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		cfg:    cfg,
		schema: s,
		http:   &http.Client{Timeout: cfg.Timeout},
		log:    logger,
	}
}
