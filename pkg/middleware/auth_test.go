package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	mr "github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/clauselens/clauselens/backend/go-services/internal/session"
	"github.com/clauselens/clauselens/backend/go-services/internal/token"
)

func protectedRouter() *gin.Engine {
	g := gin.New()
	g.GET("/", AuthMiddleware(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"sub": c.GetString("sub")})
	})
	return g
}

func TestAuthMiddleware_NoHeader(t *testing.T) {
	g := protectedRouter()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rw := httptest.NewRecorder()
	g.ServeHTTP(rw, req)
	require.Equal(t, http.StatusUnauthorized, rw.Code)
}

func TestAuthMiddleware_InvalidHeader(t *testing.T) {
	g := protectedRouter()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "BadHeader")
	rw := httptest.NewRecorder()
	g.ServeHTTP(rw, req)
	require.Equal(t, http.StatusUnauthorized, rw.Code)
}

func TestAuthMiddleware_MalformedToken(t *testing.T) {
	g := protectedRouter()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer not.a.credential2")
	rw := httptest.NewRecorder()
	g.ServeHTTP(rw, req)
	require.Equal(t, http.StatusUnauthorized, rw.Code)
}

func TestAuthMiddleware_ExpiredToken(t *testing.T) {
	cred, err := token.Mint("mw-secret", "user@example.com", -time.Minute)
	require.NoError(t, err)

	g := protectedRouter()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+cred)
	rw := httptest.NewRecorder()
	g.ServeHTTP(rw, req)
	require.Equal(t, http.StatusUnauthorized, rw.Code)
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	cred, err := token.Mint("mw-secret", "user@example.com", time.Hour)
	require.NoError(t, err)

	g := protectedRouter()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+cred)
	rw := httptest.NewRecorder()
	g.ServeHTTP(rw, req)
	require.Equal(t, http.StatusOK, rw.Code)
	require.Contains(t, rw.Body.String(), "user@example.com")
}

func TestAuthMiddleware_RejectsBlacklistedToken(t *testing.T) {
	m, err := mr.Run()
	require.NoError(t, err)
	defer m.Close()
	client := redis.NewClient(&redis.Options{Addr: m.Addr()})
	session.SetBlacklistClient(client)
	defer session.SetBlacklistClient(nil)

	cred, err := token.Mint("mw-secret", "user@example.com", time.Hour)
	require.NoError(t, err)
	require.NoError(t, session.BlacklistCredential(context.Background(), cred, 5*time.Second))

	g := protectedRouter()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+cred)
	rw := httptest.NewRecorder()
	g.ServeHTTP(rw, req)
	require.Equal(t, http.StatusUnauthorized, rw.Code)
}
