package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "kakeibo/internal/errors"
	"kakeibo/internal/pagination"
	"kakeibo/internal/services"
)

// LedgerHandler handles read-only ledger requests.
type LedgerHandler struct {
	ledgerService services.LedgerServicer
}

// NewLedgerHandler creates a new LedgerHandler.
func NewLedgerHandler(ledgerService services.LedgerServicer) *LedgerHandler {
	return &LedgerHandler{ledgerService: ledgerService}
}

// GetPostings handles listing the postings recorded in a month.
// @Summary     Get postings
// @Description Get a paginated list of ledger postings for a month, newest first
// @Tags        ledger
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       month     query string true  "Month (YYYY-MM-01)"
// @Param       page      query int    false "Page number (default 1)"
// @Param       page_size query int    false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.Posting] "Paginated postings"
// @Failure     400 {object} ErrorResponse "Invalid month or pagination"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /ledger/postings [get]
func (h *LedgerHandler) GetPostings(c *gin.Context) {
	m, err := parseMonthQuery(c, "month")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.ledgerService.ListPostings(m, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
