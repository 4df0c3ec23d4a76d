package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "kakeibo/internal/errors"
	"kakeibo/internal/models"
	"kakeibo/internal/month"
	"kakeibo/internal/services"
)

// BudgetHandler handles budget-related requests.
type BudgetHandler struct {
	budgetService  services.BudgetServicer
	summaryService services.SummaryServicer
	copyService    services.CopyServicer
}

// NewBudgetHandler creates a new BudgetHandler.
func NewBudgetHandler(
	budgetService services.BudgetServicer,
	summaryService services.SummaryServicer,
	copyService services.CopyServicer,
) *BudgetHandler {
	return &BudgetHandler{
		budgetService:  budgetService,
		summaryService: summaryService,
		copyService:    copyService,
	}
}

// TargetRequest identifies a budget target in a request payload.
type TargetRequest struct {
	Kind string `json:"kind" binding:"required,target_kind"`
	ID   string `json:"id" binding:"required,uuid"`
}

func (t TargetRequest) toRef() models.TargetRef {
	return models.TargetRef{Kind: models.TargetKind(t.Kind), ID: t.ID}
}

// CreateBudgetRequest represents the request payload for creating a budget.
type CreateBudgetRequest struct {
	Month  string        `json:"month" binding:"required,month_string"`
	Target TargetRequest `json:"target" binding:"required"`
	Amount int64         `json:"amount" binding:"required,gt=0"`
	Note   *string       `json:"note" binding:"omitempty,max=500"`
}

// UpdateBudgetRequest represents the request payload for updating a budget.
// Month and target are immutable; only the amount and note can change. An
// explicit null note clears it, an absent note leaves it untouched.
type UpdateBudgetRequest struct {
	Amount int64          `json:"amount" binding:"required,gt=0"`
	Note   OptionalString `json:"note"`
}

// CopyBudgetsRequest represents the request payload for a month-to-month copy.
type CopyBudgetsRequest struct {
	From string `json:"from" binding:"required,month_string"`
	To   string `json:"to" binding:"required,month_string"`
}

// CreateBudget handles the creation of a new budget.
// @Summary     Create a budget
// @Description Create a budget for a category or savings goal in a month
// @Tags        budgets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateBudgetRequest true "Budget details"
// @Success     201 {object} services.BudgetInfo "Budget created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Target not found"
// @Failure     409 {object} ErrorResponse "Duplicate or non-budgetable target"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets [post]
func (h *BudgetHandler) CreateBudget(c *gin.Context) {
	var req CreateBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	m, err := month.Parse(req.Month)
	if err != nil {
		respondWithError(c, err)
		return
	}

	budget, err := h.budgetService.CreateBudget(m, req.Target.toRef(), req.Amount, req.Note)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"budget": budget})
}

// GetBudgets handles listing budgets, optionally filtered by month.
// @Summary     Get budgets
// @Description Get budgets, optionally filtered to one month
// @Tags        budgets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       month query string false "Month filter (YYYY-MM-01)"
// @Success     200 {array} services.BudgetInfo "Budgets"
// @Failure     400 {object} ErrorResponse "Invalid month"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets [get]
func (h *BudgetHandler) GetBudgets(c *gin.Context) {
	var filter *month.Month
	if v := c.Query("month"); v != "" {
		m, err := month.Parse(v)
		if err != nil {
			respondWithError(c, err)
			return
		}
		filter = &m
	}

	budgets, err := h.budgetService.ListBudgets(filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"budgets": budgets})
}

// GetBudget handles retrieving a specific budget.
// @Summary     Get budget by ID
// @Description Get a specific budget by ID
// @Tags        budgets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Budget ID"
// @Success     200 {object} services.BudgetInfo "Budget details"
// @Failure     400 {object} ErrorResponse "Invalid budget ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Budget not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets/{id} [get]
func (h *BudgetHandler) GetBudget(c *gin.Context) {
	budgetID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	budget, err := h.budgetService.GetBudget(budgetID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	if budget == nil {
		respondWithError(c, apperrors.ErrBudgetNotFound)
		return
	}

	c.JSON(http.StatusOK, gin.H{"budget": budget})
}

// UpdateBudget handles updating an existing budget's amount and note.
// @Summary     Update budget
// @Description Update a budget's amount and optionally its note
// @Tags        budgets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string              true "Budget ID"
// @Param       request body UpdateBudgetRequest true "Updated budget details"
// @Success     200 {object} services.BudgetInfo "Updated budget"
// @Failure     400 {object} ErrorResponse "Invalid input or budget ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Budget not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets/{id} [put]
func (h *BudgetHandler) UpdateBudget(c *gin.Context) {
	budgetID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	note := services.NoteChange{Set: req.Note.Set, Value: req.Note.Value}
	budget, err := h.budgetService.UpdateBudget(budgetID, req.Amount, note)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"budget": budget})
}

// DeleteBudget handles deleting a budget.
// @Summary     Delete budget
// @Description Delete a budget by ID
// @Tags        budgets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Budget ID"
// @Success     200 {object} MessageResponse "Budget deleted"
// @Failure     400 {object} ErrorResponse "Invalid budget ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Budget not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets/{id} [delete]
func (h *BudgetHandler) DeleteBudget(c *gin.Context) {
	budgetID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.budgetService.DeleteBudget(budgetID); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Budget deleted successfully"})
}

// GetSummary handles retrieving the spend-vs-budget summary for a month.
// @Summary     Get month summary
// @Description Get spend versus budgeted amounts for every budget in a month
// @Tags        budgets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       month query string true "Month (YYYY-MM-01)"
// @Success     200 {object} services.BudgetSummary "Month summary"
// @Failure     400 {object} ErrorResponse "Invalid month"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets/summary [get]
func (h *BudgetHandler) GetSummary(c *gin.Context) {
	m, err := parseMonthQuery(c, "month")
	if err != nil {
		respondWithError(c, err)
		return
	}

	summary, err := h.summaryService.Summarize(m)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"summary": summary})
}

// CopyBudgets handles copying one month's budgets into another month.
// @Summary     Copy budgets
// @Description Copy all budgets from one month to another, skipping targets already budgeted
// @Tags        budgets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CopyBudgetsRequest true "Source and destination months"
// @Success     200 {object} services.CopyResult "Copy outcome"
// @Failure     400 {object} ErrorResponse "Invalid input, same month, or empty source month"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     409 {object} ErrorResponse "Destination conflict during copy"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budgets/copy [post]
func (h *BudgetHandler) CopyBudgets(c *gin.Context) {
	var req CopyBudgetsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	from, err := month.Parse(req.From)
	if err != nil {
		respondWithError(c, err)
		return
	}
	to, err := month.Parse(req.To)
	if err != nil {
		respondWithError(c, err)
		return
	}

	result, err := h.copyService.Copy(from, to)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": result})
}
