package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/scrimsync/teamsync/internal/config"
	"github.com/scrimsync/teamsync/pkg/auth"
	"github.com/scrimsync/teamsync/pkg/clients/discordclient"
	"github.com/scrimsync/teamsync/pkg/core/services"
	"github.com/scrimsync/teamsync/pkg/postgres"
)

const (
	ctxUID     = "uid"
	ctxIsAdmin = "is_admin"
)

// Handler holds the dependencies for all HTTP handlers
type Handler struct {
	DB       *postgres.DB
	Cfg      *config.Config
	Logger   *zap.Logger
	Verifier *auth.Verifier
}

// Authenticate validates the bearer token and loads the caller's admin flag
func (h *Handler) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		tokenString, found := strings.CutPrefix(header, "Bearer ")
		if !found || tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		claims, err := h.Verifier.Verify(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		isAdmin := claims.UID == h.Cfg.SuperAdminUID
		if !isAdmin {
			profile, err := h.DB.GetProfile(c.Request.Context(), claims.UID)
			if err != nil {
				h.Logger.Error("Failed to load caller profile", zap.Error(err))
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
				return
			}
			isAdmin = profile != nil && profile.IsAdmin
		}

		c.Set(ctxUID, claims.UID)
		c.Set(ctxIsAdmin, isAdmin)
		c.Next()
	}
}

// RequireAdmin rejects callers without the admin privilege flag
func (h *Handler) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !c.GetBool(ctxIsAdmin) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin privileges required"})
			return
		}
		c.Next()
	}
}

// caller builds the services.Caller for the authenticated request
func (h *Handler) caller(c *gin.Context) services.Caller {
	return services.Caller{
		UID:     c.GetString(ctxUID),
		IsAdmin: c.GetBool(ctxIsAdmin),
	}
}

// notifier resolves the effective webhook URL and builds a webhook client
func (h *Handler) notifier(c *gin.Context) (*discordclient.Client, error) {
	url, err := services.ResolveWebhookURL(c.Request.Context(), h.DB, h.Cfg.WebhookURL)
	if err != nil {
		return nil, err
	}
	return discordclient.NewClient(url)
}

// respondError maps service error kinds to HTTP statuses
func (h *Handler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidArgument):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrUnauthenticated):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	default:
		h.Logger.Error("Request failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
