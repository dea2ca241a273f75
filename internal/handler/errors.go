package handler

import (
	"errors"
	"strconv"

	"greenscore/internal/scoring"
	"greenscore/internal/service"
	"greenscore/internal/utils"

	"github.com/gin-gonic/gin"
)

// respondError maps service errors onto the response envelope. Unexpected
// errors are attached to the context for the request logger and reported
// without internals.
func respondError(c *gin.Context, err error) {
	var rowErr *utils.RowError
	switch {
	case errors.Is(err, scoring.ErrUnknownKind),
		errors.Is(err, service.ErrInvalidBucket),
		errors.Is(err, utils.ErrUnsupportedFormat),
		errors.Is(err, utils.ErrMissingColumns),
		errors.Is(err, utils.ErrNoRows),
		errors.Is(err, utils.ErrTooManyRows),
		errors.Is(err, utils.ErrMalformedFile),
		errors.As(err, &rowErr):
		utils.BadRequest(c, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		utils.Unauthorized(c, err.Error())
	case errors.Is(err, service.ErrForbidden), errors.Is(err, service.ErrSelfDelete):
		utils.Forbidden(c, err.Error())
	case errors.Is(err, service.ErrNotFound), errors.Is(err, service.ErrNoScores):
		utils.NotFound(c, err.Error())
	case errors.Is(err, service.ErrUsernameTaken):
		utils.Conflict(c, err.Error())
	default:
		_ = c.Error(err)
		utils.InternalError(c, "internal server error")
	}
}

// parseID reads a positive integer path parameter
func parseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		utils.BadRequest(c, "invalid "+name)
		return 0, false
	}
	return uint(id), true
}

// parseKind reads the :kind path parameter against the allow-list
func parseKind(c *gin.Context) (scoring.Kind, bool) {
	kind, err := scoring.ParseKind(c.Param("kind"))
	if err != nil {
		utils.BadRequest(c, err.Error())
		return 0, false
	}
	return kind, true
}
