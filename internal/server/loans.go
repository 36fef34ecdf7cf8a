package server

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mbzesq/npl-vision-2/internal/common"
)

const (
	defaultListLimit = 100
	maxListLimit     = 1000
)

// ListLoans returns loans ordered by creation time, paginated with
// skip/limit query parameters.
func (s *Server) ListLoans(c *gin.Context) {
	skip, err := queryInt(c, "skip", 0)
	if err != nil {
		s.fail(c, err)
		return
	}
	limit, err := queryInt(c, "limit", defaultListLimit)
	if err != nil {
		s.fail(c, err)
		return
	}
	if limit <= 0 || limit > maxListLimit {
		limit = defaultListLimit
	}

	loans, err := s.loansRepo.ListLoans(c.Request.Context(), limit, skip)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(200, loans)
}

// GetLoan returns a single loan by ID.
func (s *Server) GetLoan(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		s.fail(c, fmt.Errorf("invalid loan id: %w", common.ErrInvalidInput))
		return
	}

	loan, err := s.loansRepo.GetLoan(c.Request.Context(), id)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(200, loan)
}

// ListLoanDocuments returns the documents linked to a loan.
func (s *Server) ListLoanDocuments(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		s.fail(c, fmt.Errorf("invalid loan id: %w", common.ErrInvalidInput))
		return
	}

	docs, err := s.docsRepo.ListByLoan(c.Request.Context(), id)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(200, docs)
}

func queryInt(c *gin.Context, name string, def int) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return 0, fmt.Errorf("query parameter %q must be a non-negative integer: %w", name, common.ErrInvalidInput)
	}
	return v, nil
}
