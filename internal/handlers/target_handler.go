package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"kakeibo/internal/services"
)

// TargetHandler handles budget-target listing requests.
type TargetHandler struct {
	targetService services.TargetServicer
}

// NewTargetHandler creates a new TargetHandler.
func NewTargetHandler(targetService services.TargetServicer) *TargetHandler {
	return &TargetHandler{targetService: targetService}
}

// GetTargets handles listing every target a budget can be attached to.
// @Summary     Get budgetable targets
// @Description Get all active expense categories and savings goals
// @Tags        targets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array} services.ResolvedTarget "Budgetable targets"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /targets [get]
func (h *TargetHandler) GetTargets(c *gin.Context) {
	targets, err := h.targetService.ListBudgetable()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"targets": targets})
}
