package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"greenscore/internal/scoring"
	"greenscore/internal/service"
	"greenscore/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestRespondError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("wrap: %w", scoring.ErrUnknownKind), http.StatusBadRequest},
		{&utils.RowError{Row: 3, Column: "month", Reason: "bad"}, http.StatusBadRequest},
		{fmt.Errorf("import x: %w", utils.ErrMissingColumns), http.StatusBadRequest},
		{service.ErrInvalidCredentials, http.StatusUnauthorized},
		{service.ErrForbidden, http.StatusForbidden},
		{service.ErrSelfDelete, http.StatusForbidden},
		{service.ErrNotFound, http.StatusNotFound},
		{service.ErrNoScores, http.StatusNotFound},
		{service.ErrUsernameTaken, http.StatusConflict},
		{errors.New("disk on fire"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			respondError(c, tt.err)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestRespondError_UnreadableUploadIsBadRequest(t *testing.T) {
	gin.SetMode(gin.TestMode)

	files := map[string]string{
		"broken.xlsx": "this is not a zip",
		"broken.csv":  "month,year,energy,water,waste,greenery\n1,2025,\"12\"00,800,300,150\n",
	}
	for name, body := range files {
		t.Run(name, func(t *testing.T) {
			_, err := utils.ParseImportFile(name, strings.NewReader(body), 100)
			assert.ErrorIs(t, err, utils.ErrMalformedFile)

			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			respondError(c, err)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestRespondError_HidesInternals(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	respondError(c, errors.New("password=hunter2"))
	assert.NotContains(t, w.Body.String(), "hunter2")
	assert.Len(t, c.Errors, 1)
}

func TestParseKind(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "kind", Value: "water"}}

	kind, ok := parseKind(c)
	assert.True(t, ok)
	assert.Equal(t, scoring.Water, kind)

	c.Params = gin.Params{{Key: "kind", Value: "users"}}
	_, ok = parseKind(c)
	assert.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
