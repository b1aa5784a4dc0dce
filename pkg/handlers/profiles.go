package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/scrimsync/teamsync/pkg/core/services"
)

// SaveProfile upserts the caller's own profile
func (h *Handler) SaveProfile(c *gin.Context) {
	var body struct {
		Username        string `json:"username" binding:"required"`
		FavoriteTank    string `json:"favoriteTank"`
		Role            string `json:"role"`
		DiscordUsername string `json:"discordUsername"`
		PhotoURL        string `json:"photoUrl"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username is required"})
		return
	}

	profile, err := services.SaveProfile(c.Request.Context(), h.DB, h.Logger, c.GetString(ctxUID), services.ProfileInput{
		Username:        body.Username,
		FavoriteTank:    body.FavoriteTank,
		Role:            body.Role,
		DiscordUsername: body.DiscordUsername,
		PhotoURL:        body.PhotoURL,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"profile": profile})
}

// SetRoster updates the admin-managed roster fields on a profile
func (h *Handler) SetRoster(c *gin.Context) {
	var body struct {
		RosterStatus  string   `json:"rosterStatus"`
		PlaystyleTags []string `json:"playstyleTags"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	err := services.SetRoster(c.Request.Context(), h.DB, h.Logger, c.Param("userID"), services.RosterInput{
		RosterStatus:  body.RosterStatus,
		PlaystyleTags: body.PlaystyleTags,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// MarkNotificationsRead stamps the caller's feed read marker
func (h *Handler) MarkNotificationsRead(c *gin.Context) {
	if err := services.MarkNotificationsRead(c.Request.Context(), h.DB, h.Logger, c.GetString(ctxUID), time.Now()); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
