package server

import (
	"fmt"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"github.com/mbzesq/npl-vision-2/constants"
	"github.com/mbzesq/npl-vision-2/internal/common"
	"github.com/mbzesq/npl-vision-2/internal/ingest"
)

// UploadExcel accepts a spreadsheet of loan rows, runs the tabular pipeline
// and responds with the created count plus a preview of the first records.
func (s *Server) UploadExcel(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		s.fail(c, fmt.Errorf("missing file field: %w", common.ErrInvalidInput))
		return
	}

	ext := constants.NormalizeExt(filepath.Ext(fileHeader.Filename))
	if !constants.IsExcelExt(ext) {
		s.fail(c, fmt.Errorf("file must be an Excel spreadsheet (.xlsx or .xls): %w", common.ErrInvalidInput))
		return
	}
	if s.maxUploadBytes > 0 && fileHeader.Size > s.maxUploadBytes {
		s.fail(c, fmt.Errorf("file exceeds maximum upload size of %d bytes: %w", s.maxUploadBytes, common.ErrInvalidInput))
		return
	}

	src, err := fileHeader.Open()
	if err != nil {
		s.fail(c, fmt.Errorf("open uploaded file: %w", err))
		return
	}
	defer src.Close()

	staged, err := ingest.Stage(src, ext, s.logger)
	if err != nil {
		s.fail(c, fmt.Errorf("stage uploaded file: %w", err))
		return
	}
	defer staged.Cleanup()

	summary, err := s.processor.ProcessSpreadsheet(c.Request.Context(), staged.Path)
	if err != nil {
		s.fail(c, err)
		return
	}

	c.JSON(200, gin.H{
		"message":       fmt.Sprintf("Successfully processed %d loans", summary.CreatedCount),
		"loans_created": summary.CreatedCount,
		"preview":       summary.Preview,
	})
}

// UploadPDF accepts a loan document, extracts its text, sends it through the
// field extractor and responds with the normalized document fields.
func (s *Server) UploadPDF(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		s.fail(c, fmt.Errorf("missing file field: %w", common.ErrInvalidInput))
		return
	}

	ext := constants.NormalizeExt(filepath.Ext(fileHeader.Filename))
	if !constants.IsPDFExt(ext) {
		s.fail(c, fmt.Errorf("file must be a PDF: %w", common.ErrInvalidInput))
		return
	}
	if s.maxUploadBytes > 0 && fileHeader.Size > s.maxUploadBytes {
		s.fail(c, fmt.Errorf("file exceeds maximum upload size of %d bytes: %w", s.maxUploadBytes, common.ErrInvalidInput))
		return
	}

	src, err := fileHeader.Open()
	if err != nil {
		s.fail(c, fmt.Errorf("open uploaded file: %w", err))
		return
	}
	defer src.Close()

	staged, err := ingest.Stage(src, ext, s.logger)
	if err != nil {
		s.fail(c, fmt.Errorf("stage uploaded file: %w", err))
		return
	}
	defer staged.Cleanup()

	res, err := s.processor.ProcessDocument(c.Request.Context(), staged.Path, fileHeader.Filename)
	if err != nil {
		s.fail(c, err)
		return
	}

	c.JSON(200, gin.H{
		"message":       "Document processed successfully",
		"document_data": res.Fields,
		"confidence":    res.Confidence,
	})
}
