package handler

import (
	"greenscore/internal/dto"
	"greenscore/internal/middleware"
	"greenscore/internal/service"
	"greenscore/internal/utils"

	"github.com/gin-gonic/gin"
)

// AuthHandler login, logout and current user
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates an AuthHandler
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Login
// @Router /api/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, utils.FormatValidationError(err))
		return
	}

	resp, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessWithMessage(c, "login successful", resp)
}

// Logout
// @Router /api/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	id, _ := middleware.GetIdentity(c)
	h.authService.Logout(c.Request.Context(), id)
	utils.SuccessWithMessage(c, "logged out", nil)
}

// GetMe
// @Router /api/me [get]
func (h *AuthHandler) GetMe(c *gin.Context) {
	id, _ := middleware.GetIdentity(c)
	info, err := h.authService.GetMe(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, info)
}
