// Package handlers provides HTTP request handlers for the presentation layer.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dzakyfr/portfolio-go/internal/application/services"
	"github.com/dzakyfr/portfolio-go/internal/infrastructure/observability/logging"
	"github.com/dzakyfr/portfolio-go/pkg/config"
)

// AuthHandlers contains all authentication-related HTTP handlers.
type AuthHandlers struct {
	session *services.SessionService
	logger  *logging.ChanneledLogger
}

// NewAuthHandlers creates auth handlers with injected dependencies.
func NewAuthHandlers(session *services.SessionService, logger *logging.ChanneledLogger) *AuthHandlers {
	return &AuthHandlers{session: session, logger: logger}
}

// PostLogin handles POST /api/v1/auth/login.
func (h *AuthHandlers) PostLogin(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request format"})
		return
	}

	operator, err := h.session.Login(req.Email, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	maxAge := int(config.SessionTokenTTL.Seconds())
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie("admin_auth", h.session.Token(), maxAge, "/", "", false, true)

	c.JSON(http.StatusOK, gin.H{
		"operator": operator,
		"token":    h.session.Token(),
	})
}

// PostLogout handles POST /api/v1/auth/logout. Logout always succeeds from
// the caller's point of view.
func (h *AuthHandlers) PostLogout(c *gin.Context) {
	h.session.Logout()
	c.SetCookie("admin_auth", "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"status": "logged out"})
}

// GetStatus handles GET /api/v1/auth/status.
func (h *AuthHandlers) GetStatus(c *gin.Context) {
	operator, ok := h.session.Operator()
	if !ok {
		c.JSON(http.StatusOK, gin.H{"authenticated": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"authenticated": true, "operator": operator})
}
