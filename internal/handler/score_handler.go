package handler

import (
	"greenscore/internal/dto"
	"greenscore/internal/middleware"
	"greenscore/internal/service"
	"greenscore/internal/utils"

	"github.com/gin-gonic/gin"
)

// ScoreHandler scores and dashboard
type ScoreHandler struct {
	scoreService *service.ScoreService
}

// NewScoreHandler creates a ScoreHandler
func NewScoreHandler(scoreService *service.ScoreService) *ScoreHandler {
	return &ScoreHandler{scoreService: scoreService}
}

// Calculate recomputes one bucket
// @Router /api/scores/calculate/{month}/{year} [post]
func (h *ScoreHandler) Calculate(c *gin.Context) {
	var uri dto.BucketURI
	if err := c.ShouldBindUri(&uri); err != nil {
		utils.BadRequest(c, utils.FormatValidationError(err))
		return
	}

	id, _ := middleware.GetIdentity(c)
	score, err := h.scoreService.Calculate(c.Request.Context(), id, uri.Month, uri.Year)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessWithMessage(c, "score calculated", score)
}

// List stored scores
// @Router /api/scores [get]
func (h *ScoreHandler) List(c *gin.Context) {
	var query dto.YearQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		utils.BadRequest(c, utils.FormatValidationError(err))
		return
	}

	scores, err := h.scoreService.List(c.Request.Context(), query.YearPtr())
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, scores)
}

// Dashboard
// @Router /api/dashboard [get]
func (h *ScoreHandler) Dashboard(c *gin.Context) {
	var query dto.YearQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		utils.BadRequest(c, utils.FormatValidationError(err))
		return
	}

	id, _ := middleware.GetIdentity(c)
	dash, err := h.scoreService.Dashboard(c.Request.Context(), id, query.YearPtr())
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, dash)
}
