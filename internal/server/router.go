// Package server exposes the HTTP API: upload endpoints that feed the
// normalization pipeline plus thin read endpoints over persisted records.
package server

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mbzesq/npl-vision-2/internal/common"
	"github.com/mbzesq/npl-vision-2/internal/export"
	"github.com/mbzesq/npl-vision-2/internal/pipeline"
	"github.com/mbzesq/npl-vision-2/internal/repository"
)

// Server wires handlers to the pipeline and repositories.
type Server struct {
	logger    *slog.Logger
	processor *pipeline.Processor
	loansRepo repository.LoanRepository
	docsRepo  repository.DocumentRepository
	exporter  *export.Service

	maxUploadBytes int64
}

func New(
	logger *slog.Logger,
	proc *pipeline.Processor,
	loans repository.LoanRepository,
	docs repository.DocumentRepository,
	exporter *export.Service,
	maxUploadBytes int64,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		logger:         logger,
		processor:      proc,
		loansRepo:      loans,
		docsRepo:       docs,
		exporter:       exporter,
		maxUploadBytes: maxUploadBytes,
	}
}

// Router builds the gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger())
	r.MaxMultipartMemory = 32 << 20

	r.GET("/", s.health)

	api := r.Group("/api")
	{
		upload := api.Group("/upload")
		upload.POST("/excel", s.UploadExcel)
		upload.POST("/pdf", s.UploadPDF)

		loans := api.Group("/loans")
		loans.GET("", s.ListLoans)
		loans.GET("/:id", s.GetLoan)
		loans.GET("/:id/documents", s.ListLoanDocuments)

		api.GET("/export/loans.xlsx", s.ExportLoans)
	}
	return r
}

func (s *Server) health(c *gin.Context) {
	c.JSON(200, gin.H{"message": "NPL Vision API is running"})
}

// requestLogger attaches a request ID and logs every request with its status
// and latency.
func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		reqID := uuid.New().String()
		c.Request = c.Request.WithContext(common.WithRequestID(c.Request.Context(), reqID))
		start := time.Now()

		c.Next()

		s.logger.Info("http.request",
			"req_id", reqID,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
	}
}

// fail maps an error onto its HTTP status and renders the standard error
// body.
func (s *Server) fail(c *gin.Context, err error) {
	c.JSON(common.HTTPStatus(err), gin.H{"detail": err.Error()})
}
