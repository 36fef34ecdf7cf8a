// Command nplvisiond runs the NPL Vision HTTP API: spreadsheet and document
// uploads in, normalized loan records out.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mbzesq/npl-vision-2/internal/common"
	"github.com/mbzesq/npl-vision-2/internal/export"
	"github.com/mbzesq/npl-vision-2/internal/extract"
	"github.com/mbzesq/npl-vision-2/internal/llm/openai"
	"github.com/mbzesq/npl-vision-2/internal/pipeline"
	"github.com/mbzesq/npl-vision-2/internal/repository"
	"github.com/mbzesq/npl-vision-2/internal/schema"
	"github.com/mbzesq/npl-vision-2/internal/server"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := repository.Open(ctx, cfg.Database, logger)
	if err != nil {
		logger.Error("database connect failed", "error", err)
		os.Exit(1)
	}
	defer db.Close(logger)

	if err := db.HealthCheck(ctx, cfg.Database.DialTimeout); err != nil {
		logger.Error("database health failed", "error", err)
		os.Exit(1)
	}
	if err := db.Migrate(ctx); err != nil {
		logger.Error("migrations failed", "error", err)
		os.Exit(1)
	}

	loansRepo := repository.NewLoanRepository(db, logger)
	docsRepo := repository.NewDocumentRepository(db, logger)

	loanSchema := schema.New(schema.LoanFields())
	docSchema := schema.New(schema.DocumentFields())

	extractor := openai.NewClient(openai.Config{
		APIKey:      cfg.LLM.APIKey,
		BaseURL:     cfg.LLM.BaseURL,
		Model:       cfg.LLM.Model,
		Temperature: cfg.LLM.Temperature,
		Timeout:     cfg.LLM.Timeout,
		TextBudget:  cfg.LLM.TextBudget,
	}, docSchema, logger)

	proc := pipeline.NewProcessor(
		logger,
		pipeline.NewExcelStage(logger, loanSchema, loansRepo),
		pipeline.NewDocumentStage(logger, docSchema, extract.NewPDFExtractor(logger), extractor, docsRepo),
	)

	exporter := export.NewService(loansRepo, logger)
	srv := server.New(logger, proc, loansRepo, docsRepo, exporter, cfg.Server.MaxUploadBytes)

	httpSrv := &http.Server{
		Addr:              cfg.Server.HTTPAddr,
		Handler:           srv.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("http serving", "addr", cfg.Server.HTTPAddr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http serve failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http shutdown failed", "error", err)
	}
	logger.Info("stopped")
}
