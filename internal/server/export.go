package server

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
)

const exportLimit = 10000

// ExportLoans streams the loan portfolio as an XLSX workbook.
func (s *Server) ExportLoans(c *gin.Context) {
	data, err := s.exporter.ExportLoansXLSX(c.Request.Context(), exportLimit)
	if err != nil {
		s.fail(c, err)
		return
	}

	filename := fmt.Sprintf("loans-%s.xlsx", time.Now().UTC().Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename=%q`, filename))
	c.Data(200, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}
