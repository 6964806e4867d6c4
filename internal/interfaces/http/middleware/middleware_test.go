package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orderdesk/backend/internal/infrastructure/auth"
	"github.com/orderdesk/backend/internal/infrastructure/config"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func errorCode(t *testing.T, body []byte) string {
	t.Helper()
	var resp struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(body, &resp))
	return resp.Error.Code
}

func newJWTTestService() *auth.JWTService {
	return auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-access-secret-at-least-32-bytes!",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: time.Hour,
		Issuer:                 "orderdesk-test",
	})
}

func TestJWTAuthMiddleware(t *testing.T) {
	jwtService := newJWTTestService()

	newEngine := func() *gin.Engine {
		engine := gin.New()
		engine.Use(JWTAuthMiddlewareWithConfig(JWTMiddlewareConfig{
			JWTService: jwtService,
			SkipPaths:  []string{"/open"},
		}))
		engine.GET("/open", func(c *gin.Context) { c.Status(http.StatusOK) })
		engine.GET("/protected", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"user_id":  GetJWTUserID(c),
				"username": GetJWTUsername(c),
			})
		})
		return engine
	}

	t.Run("skip path needs no token", func(t *testing.T) {
		w := httptest.NewRecorder()
		newEngine().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/open", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("valid token populates context", func(t *testing.T) {
		userID := uuid.New()
		pair, err := jwtService.GenerateTokenPair(auth.GenerateTokenInput{UserID: userID, Username: "operator1"})
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set(AuthHeaderKey, BearerPrefix+pair.AccessToken)
		w := httptest.NewRecorder()
		newEngine().ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		var resp map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, userID.String(), resp["user_id"])
		assert.Equal(t, "operator1", resp["username"])
	})

	t.Run("missing header", func(t *testing.T) {
		w := httptest.NewRecorder()
		newEngine().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/protected", nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "TOKEN_INVALID", errorCode(t, w.Body.Bytes()))
	})

	t.Run("malformed header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set(AuthHeaderKey, "Basic abc123")
		w := httptest.NewRecorder()
		newEngine().ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("refresh token rejected on protected route", func(t *testing.T) {
		pair, err := jwtService.GenerateTokenPair(auth.GenerateTokenInput{UserID: uuid.New()})
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set(AuthHeaderKey, BearerPrefix+pair.RefreshToken)
		w := httptest.NewRecorder()
		newEngine().ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("expired token", func(t *testing.T) {
		expired := auth.NewJWTService(config.JWTConfig{
			Secret:                 "test-access-secret-at-least-32-bytes!",
			AccessTokenExpiration:  -time.Minute,
			RefreshTokenExpiration: time.Hour,
			Issuer:                 "orderdesk-test",
		})
		pair, err := expired.GenerateTokenPair(auth.GenerateTokenInput{UserID: uuid.New()})
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set(AuthHeaderKey, BearerPrefix+pair.AccessToken)
		w := httptest.NewRecorder()
		newEngine().ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "TOKEN_EXPIRED", errorCode(t, w.Body.Bytes()))
	})
}

func TestRateLimiter(t *testing.T) {
	t.Run("allows up to the limit", func(t *testing.T) {
		rl := NewRateLimiter(3, time.Minute)

		assert.True(t, rl.Allow("a"))
		assert.True(t, rl.Allow("a"))
		assert.True(t, rl.Allow("a"))
		assert.False(t, rl.Allow("a"))
	})

	t.Run("keys are independent", func(t *testing.T) {
		rl := NewRateLimiter(1, time.Minute)

		assert.True(t, rl.Allow("a"))
		assert.False(t, rl.Allow("a"))
		assert.True(t, rl.Allow("b"))
	})

	t.Run("window reset restores tokens", func(t *testing.T) {
		rl := NewRateLimiter(1, 10*time.Millisecond)

		assert.True(t, rl.Allow("a"))
		assert.False(t, rl.Allow("a"))
		time.Sleep(20 * time.Millisecond)
		assert.True(t, rl.Allow("a"))
	})

	t.Run("remaining", func(t *testing.T) {
		rl := NewRateLimiter(2, time.Minute)

		assert.Equal(t, 2, rl.Remaining("a"))
		rl.Allow("a")
		assert.Equal(t, 1, rl.Remaining("a"))
	})
}

func TestRateLimitMiddleware(t *testing.T) {
	engine := gin.New()
	engine.Use(RateLimit(NewRateLimiter(2, time.Minute)))
	engine.GET("/login", func(c *gin.Context) { c.Status(http.StatusOK) })

	get := func() *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/login", nil))
		return w
	}

	first := get()
	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, "2", first.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, http.StatusOK, get().Code)

	third := get()
	assert.Equal(t, http.StatusTooManyRequests, third.Code)
	assert.Equal(t, "RATE_LIMITED", errorCode(t, third.Body.Bytes()))
}

func TestBodyLimit(t *testing.T) {
	engine := gin.New()
	engine.Use(BodyLimit(10))
	engine.POST("/upload", func(c *gin.Context) { c.Status(http.StatusOK) })

	t.Run("small body passes", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/upload", strings.NewReader("small"))
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("oversize body rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/upload", strings.NewReader("this body is way too large"))
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
		assert.Equal(t, "FILE_TOO_LARGE", errorCode(t, w.Body.Bytes()))
	})
}

func TestRequestID(t *testing.T) {
	engine := gin.New()
	engine.Use(RequestID())
	engine.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString("request_id"))
	})

	t.Run("generates an id", func(t *testing.T) {
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

		id := w.Header().Get("X-Request-ID")
		assert.NotEmpty(t, id)
		assert.Equal(t, id, w.Body.String())
	})

	t.Run("keeps incoming id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Request-ID", "req-from-upstream")
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Equal(t, "req-from-upstream", w.Header().Get("X-Request-ID"))
	})
}

func TestCORS(t *testing.T) {
	cfg := DefaultCORSConfig()
	cfg.AllowOrigins = []string{"https://app.example.com"}

	engine := gin.New()
	engine.Use(CORSWithConfig(cfg))
	engine.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	t.Run("allowed origin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Origin", "https://app.example.com")
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Equal(t, "https://app.example.com", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
	})

	t.Run("unknown origin gets no CORS headers", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Origin", "https://evil.example.com")
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("preflight always gets 204", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/missing", nil)
		req.Header.Set("Origin", "https://app.example.com")
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
	})
}
