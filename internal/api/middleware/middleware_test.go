package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d60-Lab/commentlog/config"
	"github.com/d60-Lab/commentlog/internal/address"
	"github.com/d60-Lab/commentlog/pkg/auth"
)

func serve(r *gin.Engine, token string) int {
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w.Code
}

func TestRateLimiterPerCaller(t *testing.T) {
	gin.SetMode(gin.TestMode)
	signer := auth.NewSigner("middleware-test-secret", time.Hour)
	limiter := NewRateLimiter(config.RateLimitConfig{Enabled: true, RPS: 0.001, Burst: 1})

	r := gin.New()
	r.GET("/ping", AuthRequired(signer), limiter.Middleware(), func(c *gin.Context) { c.Status(http.StatusOK) })

	alice, err := signer.Issue(address.Derive("user", []byte("alice")))
	require.NoError(t, err)
	bob, err := signer.Issue(address.Derive("user", []byte("bob")))
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, serve(r, alice))
	assert.Equal(t, http.StatusTooManyRequests, serve(r, alice))
	assert.Equal(t, http.StatusOK, serve(r, bob))
}

func TestAuthRequiredSetsCaller(t *testing.T) {
	gin.SetMode(gin.TestMode)
	signer := auth.NewSigner("middleware-test-secret", time.Hour)
	who := address.Derive("user", []byte("carol"))

	var got address.Address
	r := gin.New()
	r.GET("/ping", AuthRequired(signer), func(c *gin.Context) {
		got, _ = Caller(c)
		c.Status(http.StatusOK)
	})

	token, err := signer.Issue(who)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, serve(r, token))
	assert.Equal(t, who, got)

	assert.Equal(t, http.StatusUnauthorized, serve(r, ""))
	assert.Equal(t, http.StatusUnauthorized, serve(r, "not-a-jwt"))
}
