package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/scrimsync/teamsync/internal/metrics"
	"github.com/scrimsync/teamsync/pkg/core/schedule"
	"github.com/scrimsync/teamsync/pkg/core/services"
)

// CreateEvent handles the admin event-creation form
func (h *Handler) CreateEvent(c *gin.Context) {
	var body struct {
		Type          string `json:"type" binding:"required"`
		Date          string `json:"date" binding:"required"`
		Time          string `json:"time" binding:"required"`
		Description   string `json:"description"`
		ImageURL      string `json:"imageUrl"`
		DiscordRoleID string `json:"discordRoleId"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "type, date and time are required"})
		return
	}

	event, err := services.CreateEvent(c.Request.Context(), h.DB, h.Logger, c.GetString(ctxUID), services.NewEventInput{
		Type:          body.Type,
		Date:          body.Date,
		TimeLabel:     body.Time,
		Description:   body.Description,
		ImageURL:      body.ImageURL,
		DiscordRoleID: body.DiscordRoleID,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	// Feed entry failures don't fail the creation
	message := fmt.Sprintf("New %s scheduled for %s at %s", event.Type, event.Date, event.TimeLabel)
	if err := services.RecordNotification(c.Request.Context(), h.DB, h.Logger, message, "calendar", c.GetString(ctxUID)); err != nil {
		h.Logger.Warn("Failed to record notification")
	}

	c.JSON(http.StatusCreated, gin.H{"event": event})
}

// SetEventStatus toggles an event between Active and Cancelled
func (h *Handler) SetEventStatus(c *gin.Context) {
	var body struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "status is required"})
		return
	}

	if err := services.SetEventStatus(c.Request.Context(), h.DB, h.Logger, c.Param("id"), body.Status); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// DeletePastEvents bulk-deletes events that have already started
func (h *Handler) DeletePastEvents(c *gin.Context) {
	deleted, err := services.ClearPastEvents(c.Request.Context(), h.DB, h.Cfg, h.Logger, time.Now())
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": deleted})
}

// PostEventReminder posts the reminder embed for one event
func (h *Handler) PostEventReminder(c *gin.Context) {
	includeNudges := c.Query("nudges") == "true"

	notifier, err := h.notifier(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	body, err := services.PostEventReminder(c.Request.Context(), h.DB, notifier, h.Cfg, h.Logger, c.Param("id"), includeNudges)
	if err != nil {
		metrics.WebhookFailures.Inc()
		h.respondError(c, err)
		return
	}
	metrics.RemindersSent.Inc()

	c.JSON(http.StatusOK, gin.H{"success": true, "message": body})
}

// PostRosterReady posts the roster-ready broadcast for one event
func (h *Handler) PostRosterReady(c *gin.Context) {
	notifier, err := h.notifier(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	body, err := services.PostRosterReady(c.Request.Context(), h.DB, notifier, h.Cfg, h.Logger, c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": body})
}

// PostDailySummary posts the schedule summary for today
func (h *Handler) PostDailySummary(c *gin.Context) {
	notifier, err := h.notifier(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	body, err := services.PostDailySummary(c.Request.Context(), h.DB, notifier, h.Cfg, h.Logger, time.Now())
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": body})
}

// PutOverride records a manual "possibly available" exception
func (h *Handler) PutOverride(c *gin.Context) {
	if err := services.PutOverride(c.Request.Context(), h.DB, h.Logger, c.Param("eventID"), c.Param("userID")); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// DeleteOverride removes a manual exception
func (h *Handler) DeleteOverride(c *gin.Context) {
	if err := services.RemoveOverride(c.Request.Context(), h.DB, h.Logger, c.Param("eventID"), c.Param("userID")); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// ClearWeekVotes bulk-deletes all votes for one week
func (h *Handler) ClearWeekVotes(c *gin.Context) {
	weekParam := c.Query("week")
	if weekParam == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "week is required"})
		return
	}
	weekStart, err := time.ParseInLocation(schedule.DateLayout, weekParam, h.Cfg.Location())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid week date"})
		return
	}

	deleted, err := services.ClearWeekVotes(c.Request.Context(), h.DB, h.Logger, weekStart)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": deleted})
}

// GrantAdmin grants the admin privilege flag to the target identity
func (h *Handler) GrantAdmin(c *gin.Context) {
	var body struct {
		UID string `json:"uid"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	message, err := services.GrantAdmin(c.Request.Context(), h.DB, h.Logger, h.caller(c), h.Cfg.SuperAdminUID, body.UID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": message})
}

// SetWebhook validates and persists the outbound webhook URL
func (h *Handler) SetWebhook(c *gin.Context) {
	var body struct {
		URL string `json:"url"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	message, err := services.SetWebhookURL(c.Request.Context(), h.DB, h.Logger, h.caller(c), body.URL)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": message})
}

// TestWebhook sends the canned test embed to the configured webhook
func (h *Handler) TestWebhook(c *gin.Context) {
	notifier, err := h.notifier(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	message, err := services.TestWebhook(c.Request.Context(), notifier, h.Logger)
	if err != nil {
		metrics.WebhookFailures.Inc()
		c.JSON(http.StatusOK, gin.H{"success": false, "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": message})
}

// DeleteProfile removes a profile with its votes, overrides, and RSVPs
func (h *Handler) DeleteProfile(c *gin.Context) {
	if err := services.DeleteProfileCascade(c.Request.Context(), h.DB, h.Logger, c.Param("userID")); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
