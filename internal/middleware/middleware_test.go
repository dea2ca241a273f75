package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"greenscore/internal/config"
	"greenscore/internal/dto"
	"greenscore/internal/models"
	"greenscore/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestRouter(jwtManager *utils.JWTManager) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID())
	api := r.Group("/api", AuthMiddleware(jwtManager))
	api.GET("/me", func(c *gin.Context) {
		id, _ := GetIdentity(c)
		c.JSON(http.StatusOK, id)
	})
	api.GET("/admin", AdminMiddleware(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func doRequest(r http.Handler, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	jwtManager := utils.NewJWTManager("secret", "HS256", time.Hour)
	r := newTestRouter(jwtManager)

	assert.Equal(t, http.StatusUnauthorized, doRequest(r, http.MethodGet, "/api/me", "").Code)
	assert.Equal(t, http.StatusUnauthorized, doRequest(r, http.MethodGet, "/api/me", "garbage").Code)

	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req.Header.Set("Authorization", "Token abc")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	token, err := jwtManager.GenerateToken(3, "carol", "user")
	require.NoError(t, err)
	w = doRequest(r, http.MethodGet, "/api/me", token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"Username":"carol"`)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestAdminMiddleware(t *testing.T) {
	jwtManager := utils.NewJWTManager("secret", "HS256", time.Hour)
	r := newTestRouter(jwtManager)

	userToken, err := jwtManager.GenerateToken(3, "carol", "user")
	require.NoError(t, err)
	adminToken, err := jwtManager.GenerateToken(1, "admin", "admin")
	require.NoError(t, err)

	assert.Equal(t, http.StatusForbidden, doRequest(r, http.MethodGet, "/api/admin", userToken).Code)
	assert.Equal(t, http.StatusOK, doRequest(r, http.MethodGet, "/api/admin", adminToken).Code)
}

type userStore map[uint]*models.User

func (s userStore) GetByID(_ context.Context, id uint) (*models.User, error) {
	if id == 0 {
		return nil, errors.New("connection refused")
	}
	u, ok := s[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func TestActiveUserMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	jwtManager := utils.NewJWTManager("secret", "HS256", time.Hour)
	users := userStore{3: {ID: 3, Username: "carol", Role: models.RoleAdmin}}

	r := gin.New()
	api := r.Group("/api", AuthMiddleware(jwtManager), ActiveUserMiddleware(users))
	api.POST("/measurements/energy", func(c *gin.Context) {
		id, _ := GetIdentity(c)
		c.String(http.StatusOK, id.Role)
	})

	live, err := jwtManager.GenerateToken(3, "carol", "user")
	require.NoError(t, err)
	w := doRequest(r, http.MethodPost, "/api/measurements/energy", live)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.RoleAdmin, w.Body.String(), "role comes from the stored account")

	deleted, err := jwtManager.GenerateToken(8, "gone", "user")
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, doRequest(r, http.MethodPost, "/api/measurements/energy", deleted).Code)

	broken, err := jwtManager.GenerateToken(0, "nobody", "user")
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, doRequest(r, http.MethodPost, "/api/measurements/energy", broken).Code)
}

func TestRequestID_Propagates(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, GetRequestID(c)) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Body.String())
	assert.Equal(t, "abc-123", w.Header().Get("X-Request-ID"))
}

func TestCORS_Preflight(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{CORS: config.CORSConfig{
		Origins:      []string{"http://localhost:5173"},
		AllowMethods: []string{"GET", "POST"},
	}}
	r := gin.New()
	r.Use(CORS(cfg))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "GET, POST", w.Header().Get("Access-Control-Allow-Methods"))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "http://evil.example")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestLoggerMiddleware_Fields(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logger, hook := test.NewNullLogger()

	r := gin.New()
	r.Use(RequestID(), LoggerMiddleware(logger))
	r.GET("/boom", func(c *gin.Context) {
		c.Set(identityKey, dto.Identity{UserID: 9})
		c.Status(http.StatusInternalServerError)
	})
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/boom", nil))

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.ErrorLevel, entry.Level)
	assert.Equal(t, 500, entry.Data["status"])
	assert.Equal(t, uint(9), entry.Data["user_id"])
	assert.NotEmpty(t, entry.Data["request_id"])
}
