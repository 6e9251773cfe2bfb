package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/clauselens/clauselens/backend/go-services/internal/auth"
	"github.com/clauselens/clauselens/backend/go-services/internal/config"
	"github.com/clauselens/clauselens/backend/go-services/internal/session"
	"github.com/clauselens/clauselens/backend/go-services/internal/token"
	"github.com/clauselens/clauselens/backend/go-services/pkg/logger"
)

// AuthRequest is the body for login and register.
type AuthRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AuthHandler holds dependencies
type AuthHandler struct {
	cfg   *config.Config
	svc   *auth.Service
	store session.Store
}

func NewAuthHandler(cfg *config.Config, svc *auth.Service, store session.Store) *AuthHandler {
	return &AuthHandler{cfg: cfg, svc: svc, store: store}
}

// Register routes under /api/auth
func (h *AuthHandler) Register(rg *gin.RouterGroup) {
	a := rg.Group("/api/auth")
	a.POST("/login", h.Login)
	a.POST("/register", h.RegisterAccount)
	a.POST("/social/:provider", h.SocialLogin)
	a.POST("/logout", h.Logout)
}

// Login exchanges the demo credential pair for a token.
func (h *AuthHandler) Login(c *gin.Context) {
	var req AuthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
		return
	}
	res, err := h.svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		logger.Errorf("login failed unexpectedly: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "internal error"})
		return
	}
	if !res.OK {
		c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": res.Error})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "token": res.Token})
}

// RegisterAccount accepts any novel address; nothing is persisted, so every
// register call from a clean state succeeds except the designated duplicate.
func (h *AuthHandler) RegisterAccount(c *gin.Context) {
	var req AuthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
		return
	}
	if len(req.Password) < 6 {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "Password must be at least 6 characters long."})
		return
	}
	res, err := h.svc.Register(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		logger.Errorf("register failed unexpectedly: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "internal error"})
		return
	}
	if !res.OK {
		c.JSON(http.StatusConflict, gin.H{"ok": false, "error": res.Error})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "token": res.Token})
}

// SocialLogin always succeeds with a synthetic address derived from the
// provider name.
func (h *AuthHandler) SocialLogin(c *gin.Context) {
	provider := c.Param("provider")
	if provider == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "provider required"})
		return
	}
	res, err := h.svc.SocialLogin(c.Request.Context(), provider)
	if err != nil {
		logger.Errorf("social login failed unexpectedly: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "token": res.Token})
}

// Logout clears the credential slot. When the client supplied a Bearer token
// and Redis is available, the token is blacklisted for its remaining TTL so
// it cannot be replayed before its natural expiry.
func (h *AuthHandler) Logout(c *gin.Context) {
	if raw := bearerToken(c); raw != "" {
		if claims, err := token.Decode(raw); err == nil {
			if ttl := time.Until(claims.ExpiresAt); ttl > 0 {
				if err := session.BlacklistCredential(c.Request.Context(), raw, ttl); err != nil {
					c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to blacklist token"})
					return
				}
			}
		}
	}
	if err := h.store.Clear(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to clear session"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

func bearerToken(c *gin.Context) string {
	auth := c.GetHeader("Authorization")
	const prefix = "Bearer "
	if len(auth) > len(prefix) && auth[:len(prefix)] == prefix {
		return auth[len(prefix):]
	}
	return ""
}
