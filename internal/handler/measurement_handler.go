package handler

import (
	"greenscore/internal/dto"
	"greenscore/internal/middleware"
	"greenscore/internal/service"
	"greenscore/internal/utils"

	"github.com/gin-gonic/gin"
)

// MeasurementHandler /api/measurements/:kind
type MeasurementHandler struct {
	measurementService *service.MeasurementService
}

// NewMeasurementHandler creates a MeasurementHandler
func NewMeasurementHandler(measurementService *service.MeasurementService) *MeasurementHandler {
	return &MeasurementHandler{measurementService: measurementService}
}

// Create
// @Router /api/measurements/{kind} [post]
func (h *MeasurementHandler) Create(c *gin.Context) {
	kind, ok := parseKind(c)
	if !ok {
		return
	}
	var req dto.MeasurementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, utils.FormatValidationError(err))
		return
	}

	id, _ := middleware.GetIdentity(c)
	resp, err := h.measurementService.Create(c.Request.Context(), id, kind, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.Created(c, "measurement saved", resp)
}

// List
// @Router /api/measurements/{kind} [get]
func (h *MeasurementHandler) List(c *gin.Context) {
	kind, ok := parseKind(c)
	if !ok {
		return
	}
	var query dto.MeasurementListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		utils.BadRequest(c, utils.FormatValidationError(err))
		return
	}

	id, _ := middleware.GetIdentity(c)
	items, total, err := h.measurementService.List(c.Request.Context(), id, kind, &query)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.PaginatedResponse(c, items, total, query.Page, query.PerPage)
}

// Update
// @Router /api/measurements/{kind}/{id} [put]
func (h *MeasurementHandler) Update(c *gin.Context) {
	kind, ok := parseKind(c)
	if !ok {
		return
	}
	measurementID, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.MeasurementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, utils.FormatValidationError(err))
		return
	}

	id, _ := middleware.GetIdentity(c)
	resp, err := h.measurementService.Update(c.Request.Context(), id, kind, measurementID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessWithMessage(c, "measurement updated", resp)
}

// Delete
// @Router /api/measurements/{kind}/{id} [delete]
func (h *MeasurementHandler) Delete(c *gin.Context) {
	kind, ok := parseKind(c)
	if !ok {
		return
	}
	measurementID, ok := parseID(c, "id")
	if !ok {
		return
	}

	id, _ := middleware.GetIdentity(c)
	resp, err := h.measurementService.Delete(c.Request.Context(), id, kind, measurementID)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessWithMessage(c, "measurement deleted", resp)
}
