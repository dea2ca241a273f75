package handler

import (
	"greenscore/internal/dto"
	"greenscore/internal/middleware"
	"greenscore/internal/service"
	"greenscore/internal/utils"

	"github.com/gin-gonic/gin"
)

// AdminHandler user management
type AdminHandler struct {
	userService *service.UserService
}

// NewAdminHandler creates an AdminHandler
func NewAdminHandler(userService *service.UserService) *AdminHandler {
	return &AdminHandler{userService: userService}
}

// ListUsers users with entry and activity counts
// @Router /api/admin/users [get]
func (h *AdminHandler) ListUsers(c *gin.Context) {
	var query dto.UserListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		utils.BadRequest(c, utils.FormatValidationError(err))
		return
	}

	users, total, err := h.userService.List(c.Request.Context(), &query)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.PaginatedResponse(c, users, total, query.Page, query.PerPage)
}

// CreateUser
// @Router /api/admin/users [post]
func (h *AdminHandler) CreateUser(c *gin.Context) {
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, utils.FormatValidationError(err))
		return
	}

	actor, _ := middleware.GetIdentity(c)
	user, err := h.userService.Create(c.Request.Context(), actor, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.Created(c, "user created", user)
}

// DeleteUser
// @Router /api/admin/users/{id} [delete]
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	userID, ok := parseID(c, "id")
	if !ok {
		return
	}

	actor, _ := middleware.GetIdentity(c)
	if err := h.userService.Delete(c.Request.Context(), actor, userID); err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessWithMessage(c, "user deleted", gin.H{"success": true})
}

// ResetPassword
// @Router /api/admin/users/{id}/reset_password [post]
func (h *AdminHandler) ResetPassword(c *gin.Context) {
	userID, ok := parseID(c, "id")
	if !ok {
		return
	}

	actor, _ := middleware.GetIdentity(c)
	resp, err := h.userService.ResetPassword(c.Request.Context(), actor, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessWithMessage(c, "password reset", resp)
}

// UserActivity
// @Router /api/admin/users/{id}/activity [get]
func (h *AdminHandler) UserActivity(c *gin.Context) {
	userID, ok := parseID(c, "id")
	if !ok {
		return
	}
	var page dto.PageQuery
	if err := c.ShouldBindQuery(&page); err != nil {
		utils.BadRequest(c, utils.FormatValidationError(err))
		return
	}

	entries, total, err := h.userService.Activity(c.Request.Context(), userID, &page)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.PaginatedResponse(c, entries, total, page.Page, page.PerPage)
}
