package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/scrimsync/teamsync/internal/metrics"
	"github.com/scrimsync/teamsync/pkg/core/schedule"
	"github.com/scrimsync/teamsync/pkg/core/services"
)

// ToggleVote flips the caller's availability vote for a timeslot
func (h *Handler) ToggleVote(c *gin.Context) {
	var body struct {
		Timeslot string `json:"timeslot" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "timeslot is required"})
		return
	}

	voted, err := services.ToggleVote(c.Request.Context(), h.DB, h.Logger, c.GetString(ctxUID), body.Timeslot)
	if err != nil {
		h.respondError(c, err)
		return
	}
	metrics.VotesToggled.Inc()

	c.JSON(http.StatusOK, gin.H{"voted": voted})
}

// ToggleRSVP flips the caller's RSVP for an event
func (h *Handler) ToggleRSVP(c *gin.Context) {
	attending, err := services.ToggleEventVote(c.Request.Context(), h.DB, h.Logger, c.Param("id"), c.GetString(ctxUID))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"attending": attending})
}

// GetAvailability returns the week's slot grid with per-slot usernames.
// The week query parameter is the Monday (or chosen start) date; it
// defaults to today.
func (h *Handler) GetAvailability(c *gin.Context) {
	weekStart := time.Now().In(h.Cfg.Location())
	if weekParam := c.Query("week"); weekParam != "" {
		parsed, err := time.ParseInLocation(schedule.DateLayout, weekParam, h.Cfg.Location())
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid week date"})
			return
		}
		weekStart = parsed
	}

	votes, err := h.DB.GetVotes(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	profiles, err := h.DB.GetProfiles(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	templates := make([]schedule.SlotTemplate, len(h.Cfg.SlotTemplates))
	for i, tmpl := range h.Cfg.SlotTemplates {
		templates[i] = schedule.SlotTemplate{RRule: tmpl.RRule, TimeLabel: tmpl.TimeLabel}
	}
	slots, err := schedule.ExpandWeekSlots(templates, weekStart)
	if err != nil {
		h.respondError(c, err)
		return
	}

	aggregated := services.AggregateBySlot(votes, profiles, h.Logger)

	grid := make(map[string][]string, len(slots))
	for _, slot := range slots {
		names := aggregated[slot]
		if names == nil {
			names = []string{}
		}
		grid[slot] = names
	}

	c.JSON(http.StatusOK, gin.H{
		"weekStart": weekStart.Format(schedule.DateLayout),
		"slots":     slots,
		"grid":      grid,
	})
}

// GetEventAvailability returns the RSVP and override summary for one event
func (h *Handler) GetEventAvailability(c *gin.Context) {
	eventID := c.Param("id")

	event, err := h.DB.GetEvent(c.Request.Context(), eventID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if event == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "event not found"})
		return
	}

	profiles, err := h.DB.GetProfiles(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	availability, err := services.AggregateEvent(c.Request.Context(), h.DB, profiles, h.Logger, eventID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"eventId":     eventID,
		"attendees":   availability.Attendees,
		"attendeeIds": availability.AttendeeIDs,
		"overrideIds": availability.OverrideIDs,
		"ready":       services.RosterReady(len(availability.AttendeeIDs), h.Cfg.MinimumPlayers),
	})
}

// GetRoster returns all profiles in public roster order
func (h *Handler) GetRoster(c *gin.Context) {
	profiles, err := h.DB.GetProfiles(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"roster": services.SortRoster(profiles)})
}

// GetNotifications returns the newest feed entries with the caller's unread count
func (h *Handler) GetNotifications(c *gin.Context) {
	notifications, err := h.DB.GetNotifications(c.Request.Context(), 50)
	if err != nil {
		h.respondError(c, err)
		return
	}

	profile, err := h.DB.GetProfile(c.Request.Context(), c.GetString(ctxUID))
	if err != nil {
		h.respondError(c, err)
		return
	}

	var lastRead *time.Time
	if profile != nil {
		lastRead = profile.LastNotifReadAt
	}

	c.JSON(http.StatusOK, gin.H{
		"notifications": notifications,
		"unread":        services.UnreadCount(notifications, lastRead),
	})
}
