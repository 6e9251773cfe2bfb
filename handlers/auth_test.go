package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	mr "github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clauselens/clauselens/backend/go-services/internal/auth"
	"github.com/clauselens/clauselens/backend/go-services/internal/config"
	"github.com/clauselens/clauselens/backend/go-services/internal/session"
	"github.com/clauselens/clauselens/backend/go-services/internal/token"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.JWT.Secret = "handlers-test-secret-32-bytes-xxx"
	cfg.JWT.TokenTTL = time.Hour
	cfg.Demo.DemoEmail = "user@example.com"
	cfg.Demo.DemoPassword = "password123"
	cfg.Demo.ExistingEmail = "exists@example.com"
	return cfg
}

func newAuthRouter(t *testing.T) (*gin.Engine, session.Store) {
	t.Helper()
	cfg := testConfig()
	store := session.NewMemoryStore()
	h := NewAuthHandler(cfg, auth.NewService(cfg, store), store)
	r := gin.New()
	h.Register(r.Group("/"))
	return r, store
}

func postJSON(r *gin.Engine, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("POST", path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestLogin_Success(t *testing.T) {
	r, store := newAuthRouter(t)

	w := postJSON(r, "/api/auth/login", `{"email":"user@example.com","password":"password123"}`, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, true, got["ok"])
	tok, _ := got["token"].(string)
	require.NotEmpty(t, tok)

	claims, err := token.Decode(tok)
	require.NoError(t, err)
	assert.Equal(t, "user@example.com", claims.Subject)

	// slot written as a side effect
	cred, err := store.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, tok, cred)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	r, _ := newAuthRouter(t)

	w := postJSON(r, "/api/auth/login", `{"email":"user@example.com","password":"nope"}`, nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, false, got["ok"])
	assert.Equal(t, "Invalid credentials", got["error"])
}

func TestLogin_MissingFields(t *testing.T) {
	r, _ := newAuthRouter(t)
	w := postJSON(r, "/api/auth/login", `{"email":"user@example.com"}`, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRegister_Conflict(t *testing.T) {
	r, _ := newAuthRouter(t)
	w := postJSON(r, "/api/auth/register", `{"email":"exists@example.com","password":"longenough"}`, nil)
	require.Equal(t, http.StatusConflict, w.Code)
	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "User already exists", got["error"])
}

func TestRegister_ShortPasswordRejectedLocally(t *testing.T) {
	r, store := newAuthRouter(t)
	w := postJSON(r, "/api/auth/register", `{"email":"a@b.c","password":"short"}`, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	_, err := store.Get(context.Background())
	assert.ErrorIs(t, err, session.ErrNoCredential)
}

func TestRegister_NovelAddress(t *testing.T) {
	r, _ := newAuthRouter(t)
	w := postJSON(r, "/api/auth/register", `{"email":"new@example.com","password":"longenough"}`, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, true, got["ok"])
	assert.NotEmpty(t, got["token"])
}

func TestSocialLogin_DerivedAddress(t *testing.T) {
	r, _ := newAuthRouter(t)
	w := postJSON(r, "/api/auth/social/google", `{}`, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	tok, _ := got["token"].(string)
	require.NotEmpty(t, tok)
	claims, err := token.Decode(tok)
	require.NoError(t, err)
	assert.Equal(t, "google-user@example.com", claims.Subject)
}

func TestLogout_BlacklistsBearerAndClearsSlot(t *testing.T) {
	m, err := mr.Run()
	require.NoError(t, err)
	defer m.Close()
	client := redis.NewClient(&redis.Options{Addr: m.Addr()})
	session.SetBlacklistClient(client)
	defer session.SetBlacklistClient(nil)

	r, store := newAuthRouter(t)

	w := postJSON(r, "/api/auth/login", `{"email":"user@example.com","password":"password123"}`, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	tok := got["token"].(string)

	w = postJSON(r, "/api/auth/logout", `{}`, map[string]string{"Authorization": fmt.Sprintf("Bearer %s", tok)})
	require.Equal(t, http.StatusOK, w.Code)

	// slot cleared
	_, err = store.Get(context.Background())
	assert.ErrorIs(t, err, session.ErrNoCredential)

	// token blacklisted for its remaining TTL
	exists := m.Exists("blacklist:credential:" + tok)
	assert.True(t, exists)
}
