package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"social-service/internal/auth"
	"social-service/internal/telemetry"
)

func newJWT() *auth.JWTService {
	return auth.NewJWTService(auth.JWTConfig{SecretKey: "test-secret", TokenTTL: time.Hour, Issuer: "test"})
}

func setupAuthRouter(tokens TokenValidator, sessions *SessionManager) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/me", AuthMiddleware(tokens, sessions), func(c *gin.Context) {
		p := PrincipalFrom(c)
		c.JSON(http.StatusOK, gin.H{"id": p.ID, "username": p.Username, "user_id": c.GetInt("userID")})
	})
	return r
}

func TestAuthMiddlewareAcceptsBearerToken(t *testing.T) {
	jwt := newJWT()
	token, _, err := jwt.Issue(auth.Principal{ID: 3, Username: "alice"})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	setupAuthRouter(jwt, nil).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"id":3,"username":"alice","user_id":3}`, rec.Body.String())
}

func TestAuthMiddlewareRejectsBadToken(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer nope")
	rec := httptest.NewRecorder()
	setupAuthRouter(newJWT(), nil).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddlewareRejectsMissingCredentials(t *testing.T) {
	rec := httptest.NewRecorder()
	setupAuthRouter(newJWT(), NewSessionManager("0123456789abcdef0123456789abcdef", 3600, false)).
		ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/me", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddlewareAcceptsSessionCookie(t *testing.T) {
	sessions := NewSessionManager("0123456789abcdef0123456789abcdef", 3600, false)

	login := httptest.NewRecorder()
	require.NoError(t, sessions.Start(login, httptest.NewRequest(http.MethodPost, "/login", nil), auth.Principal{ID: 8, Username: "bob"}))
	cookies := login.Result().Cookies()
	require.NotEmpty(t, cookies)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	setupAuthRouter(newJWT(), sessions).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"id":8,"username":"bob","user_id":8}`, rec.Body.String())
}

func TestSessionClearExpiresCookie(t *testing.T) {
	sessions := NewSessionManager("0123456789abcdef0123456789abcdef", 3600, false)

	rec := httptest.NewRecorder()
	require.NoError(t, sessions.Clear(rec, httptest.NewRequest(http.MethodGet, "/logout", nil)))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.True(t, cookies[0].MaxAge < 0)
}

func TestRequestIDPropagatesHeader(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID())
	var fromCtx string
	r.GET("/", func(c *gin.Context) {
		fromCtx = telemetry.RequestIDFromContext(c.Request.Context())
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-Id", "abc")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, "abc", rec.Header().Get("X-Request-Id"))
	assert.Equal(t, "abc", fromCtx)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))
}

func TestRateLimiterPerAccount(t *testing.T) {
	gin.SetMode(gin.TestMode)
	limiter := NewRateLimiter(0.001, 2)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		if c.GetHeader("X-User") == "2" {
			c.Set("userID", 2)
		} else {
			c.Set("userID", 1)
		}
		c.Next()
	})
	r.POST("/send", limiter.Handler(), func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/send", nil))
		codes = append(codes, rec.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	req := httptest.NewRequest(http.MethodPost, "/send", nil)
	req.Header.Set("X-User", "2")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRateLimiterCleanupEvictsIdleBuckets(t *testing.T) {
	limiter := NewRateLimiter(1, 1)
	now := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return now }

	limiter.getLimiter("user:1")
	now = now.Add(5 * time.Minute)
	limiter.getLimiter("user:2")
	now = now.Add(6 * time.Minute)

	assert.Equal(t, 1, limiter.Cleanup(10*time.Minute))
	assert.Equal(t, 1, limiter.size())

	limiter.mu.Lock()
	_, kept := limiter.limiters["user:2"]
	limiter.mu.Unlock()
	assert.True(t, kept)
}

func TestRateLimiterStartCleanupStopsWithContext(t *testing.T) {
	limiter := NewRateLimiter(1, 1)
	limiter.getLimiter("ip:10.0.0.1")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	limiter.StartCleanup(ctx, 5*time.Millisecond, 0)

	assert.Eventually(t, func() bool { return limiter.size() == 0 }, time.Second, 5*time.Millisecond)
}
