// Command nplvision is the operator CLI: ingest files from disk and inspect
// the resulting records without going through the HTTP API.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/mbzesq/npl-vision-2/internal/common"
	"github.com/mbzesq/npl-vision-2/internal/export"
	"github.com/mbzesq/npl-vision-2/internal/extract"
	"github.com/mbzesq/npl-vision-2/internal/llm/openai"
	"github.com/mbzesq/npl-vision-2/internal/pipeline"
	"github.com/mbzesq/npl-vision-2/internal/repository"
	"github.com/mbzesq/npl-vision-2/internal/schema"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	root := &cobra.Command{
		Use:           "nplvision",
		Short:         "Ingest and inspect loan portfolio data",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		ingestExcelCmd(logger),
		ingestPDFCmd(logger),
		loansCmd(logger),
		exportCmd(logger),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// app bundles the wired dependencies every subcommand needs.
type app struct {
	cfg       *common.Config
	db        *repository.DB
	loansRepo repository.LoanRepository
	docsRepo  repository.DocumentRepository
	proc      *pipeline.Processor
}

func newApp(ctx context.Context, logger *slog.Logger, needLLM bool) (*app, error) {
	cfg := common.LoadConfig()
	if cfg.Database.DSN == "" {
		return nil, fmt.Errorf("DB_URL is required: %w", common.ErrInvalidInput)
	}
	if needLLM && cfg.LLM.APIKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is required: %w", common.ErrInvalidInput)
	}

	db, err := repository.Open(ctx, cfg.Database, logger)
	if err != nil {
		return nil, err
	}
	if err := db.Migrate(ctx); err != nil {
		db.Close(logger)
		return nil, err
	}

	loansRepo := repository.NewLoanRepository(db, logger)
	docsRepo := repository.NewDocumentRepository(db, logger)

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
		pipeline.NewExcelStage(logger, schema.New(schema.LoanFields()), loansRepo),
		pipeline.NewDocumentStage(logger, docSchema, extract.NewPDFExtractor(logger), extractor, docsRepo),
	)

	return &app{cfg: cfg, db: db, loansRepo: loansRepo, docsRepo: docsRepo, proc: proc}, nil
}

func (a *app) close(logger *slog.Logger) { a.db.Close(logger) }

func ingestExcelCmd(logger *slog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "ingest-excel <file>",
		Short: "Ingest a loan spreadsheet into the database",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx, logger, false)
			if err != nil {
				return err
			}
			defer a.close(logger)

			summary, err := a.proc.ProcessSpreadsheet(ctx, args[0])
			if err != nil {
				return err
			}
			fmt.Printf("created %d loans\n", summary.CreatedCount)
			for i, rec := range summary.Preview {
				fmt.Printf("  preview[%d]: %v\n", i, rec)
			}
			return nil
		},
	}
}

func ingestPDFCmd(logger *slog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "ingest-pdf <file>",
		Short: "Extract structured fields from a loan document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx, logger, true)
			if err != nil {
				return err
			}
			defer a.close(logger)

			res, err := a.proc.ProcessDocument(ctx, args[0], args[0])
			if err != nil {
				return err
			}
			fmt.Printf("confidence: %.2f\n", res.Confidence)
			for k, v := range res.Fields {
				fmt.Printf("  %s: %v\n", k, v)
			}
			return nil
		},
	}
}

func loansCmd(logger *slog.Logger) *cobra.Command {
	var limit, skip int
	cmd := &cobra.Command{
		Use:   "loans",
		Short: "List stored loans",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx, logger, false)
			if err != nil {
				return err
			}
			defer a.close(logger)

			loans, err := a.loansRepo.ListLoans(ctx, limit, skip)
			if err != nil {
				return err
			}
			for _, l := range loans {
				name := ""
				if l.BorrowerName != nil {
					name = *l.BorrowerName
				}
				upb := ""
				if l.CurrentUPB != nil {
					upb = l.CurrentUPB.String()
				}
				fmt.Printf("%s  %-30s  upb=%s\n", l.ID, name, upb)
			}
			fmt.Printf("%d loans\n", len(loans))
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 100, "maximum loans to list")
	cmd.Flags().IntVar(&skip, "skip", 0, "loans to skip")
	return cmd
}

func exportCmd(logger *slog.Logger) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export stored loans to an XLSX workbook",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx, logger, false)
			if err != nil {
				return err
			}
			defer a.close(logger)

			data, err := export.NewService(a.loansRepo, logger).ExportLoansXLSX(ctx, 10000)
			if err != nil {
				return err
			}
			if err := os.WriteFile(out, data, 0o644); err != nil {
				return err
			}
			fmt.Printf("wrote %s (%d bytes)\n", out, len(data))
			return nil
		},
	}
	cmd.Flags().StringVar(&out, "out", "loans.xlsx", "output path")
	return cmd
}
