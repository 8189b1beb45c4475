package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"adminhub/pkg/config"
	"adminhub/pkg/jwt"
	"adminhub/pkg/logger"
	"adminhub/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func decode(t *testing.T, w *httptest.ResponseRecorder) response.Response {
	t.Helper()
	var resp response.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func newAuthRouter(manager *jwt.JWTManager) *gin.Engine {
	r := gin.New()
	auth := NewAuthMiddleware(manager, config.Default().Auth)
	r.Use(auth.RequireToken())
	r.GET("/user/info", func(c *gin.Context) {
		response.Success(c, gin.H{"userId": GetUserID(c)})
	})
	r.POST("/user/login", func(c *gin.Context) {
		response.Success(c, nil)
	})
	return r
}

func TestRequireToken(t *testing.T) {
	manager := jwt.NewJWTManager("secret", time.Hour)
	r := newAuthRouter(manager)

	token, err := manager.GenerateToken(7)
	require.NoError(t, err)
	otherToken, err := jwt.NewJWTManager("other", time.Hour).GenerateToken(7)
	require.NoError(t, err)
	expired, err := jwt.NewJWTManager("secret", -time.Minute).GenerateToken(7)
	require.NoError(t, err)

	tests := []struct {
		name   string
		path   string
		method string
		header string
		code   int
	}{
		{"allow list", "/user/login", http.MethodPost, "", 0},
		{"missing token", "/user/info", http.MethodGet, "", 401},
		{"bad scheme", "/user/info", http.MethodGet, "Token " + token, 401},
		{"wrong secret", "/user/info", http.MethodGet, "Bearer " + otherToken, 401},
		{"expired", "/user/info", http.MethodGet, "Bearer " + expired, 401},
		{"valid", "/user/info", http.MethodGet, "Bearer " + token, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, http.StatusOK, w.Code)
			resp := decode(t, w)
			assert.Equal(t, tt.code, resp.Code)
			if tt.code == 401 {
				assert.Equal(t, "accessToken无效", resp.Msg)
			}
		})
	}
}

func TestErrorHandler_RecoversPanic(t *testing.T) {
	r := gin.New()
	r.Use(RequestLogger(), ErrorHandler())
	r.GET("/boom", func(c *gin.Context) {
		panic("boom")
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	resp := decode(t, w)
	assert.Equal(t, 500, resp.Code)
	assert.Equal(t, "Unknown error", resp.Msg)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestRequestLogger_KeepsIncomingID(t *testing.T) {
	r := gin.New()
	r.Use(RequestLogger())
	r.GET("/ping", func(c *gin.Context) {
		response.Success(c, gin.H{
			"gin": c.GetString(ContextRequestID),
			"ctx": logger.RequestID(c.Request.Context()),
		})
	})

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("X-Request-ID", "abc")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "abc", w.Header().Get("X-Request-ID"))
	data, ok := decode(t, w).Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "abc", data["gin"])
	assert.Equal(t, "abc", data["ctx"])
}

func TestRateLimit(t *testing.T) {
	r := gin.New()
	r.Use(RateLimit(config.RateLimitConfig{Requests: 2, Window: 60, Burst: 2}))
	r.POST("/user/login", func(c *gin.Context) {
		response.Success(c, nil)
	})

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/user/login", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		codes = append(codes, decode(t, w).Code)
	}
	assert.Equal(t, []int{0, 0, 429}, codes)

	// 其他IP不受影响
	req := httptest.NewRequest(http.MethodPost, "/user/login", nil)
	req.RemoteAddr = "10.0.0.2:1234"
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, 0, decode(t, w).Code)
}
