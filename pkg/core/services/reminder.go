package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/scrimsync/teamsync/internal/config"
	"github.com/scrimsync/teamsync/pkg/clients/discordclient"
	"github.com/scrimsync/teamsync/pkg/core/schedule"
	"github.com/scrimsync/teamsync/pkg/db"
)

const nonePlaceholder = "- None"

// Notifier defines the outbound webhook operations needed by reminder services
type Notifier interface {
	Post(ctx context.Context, message discordclient.Message) error
}

// ReminderStore defines the database operations needed to post an event reminder
type ReminderStore interface {
	GetEvent(ctx context.Context, id string) (*db.ScheduleEvent, error)
	GetProfiles(ctx context.Context) ([]db.PlayerProfile, error)
	GetEventVotes(ctx context.Context, eventID string) ([]db.EventVote, error)
	GetOverridesByEvent(ctx context.Context, eventID string) ([]db.AvailabilityOverride, error)
}

// BuildEventReminder renders the reminder body for one event: the dynamic
// start timestamp, the Available section, a Possibly Available section when
// overrides exist, an Awaiting Response section when nudges are requested,
// and the trailing call-to-action.
func BuildEventReminder(
	event db.ScheduleEvent,
	availability *EventAvailability,
	profiles []db.PlayerProfile,
	includeNudges bool,
	cfg *config.Config,
) (string, error) {
	start, err := schedule.EventStart(event.Date, event.TimeLabel, cfg.Location())
	if err != nil {
		return "", fmt.Errorf("failed to compute event start: %w", err)
	}

	profilesByID := profileMap(profiles)
	attendeeSet := make(map[string]bool, len(availability.AttendeeIDs))
	for _, id := range availability.AttendeeIDs {
		attendeeSet[id] = true
	}
	overrideSet := make(map[string]bool, len(availability.OverrideIDs))
	for _, id := range availability.OverrideIDs {
		overrideSet[id] = true
	}

	var b strings.Builder

	if mention := discordclient.RoleMention(event.DiscordRoleID); mention != "" {
		fmt.Fprintf(&b, "%s\n", mention)
	}
	fmt.Fprintf(&b, "%s starts %s\n", event.Type, discordclient.DynamicTimestamp(start, discordclient.FlagLongDateTime))
	if event.Description != "" {
		fmt.Fprintf(&b, "%s\n", event.Description)
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "**Available (%d)**\n", len(availability.AttendeeIDs))
	writeMentionLines(&b, availability.AttendeeIDs, profilesByID)

	if len(availability.OverrideIDs) > 0 {
		fmt.Fprintf(&b, "\n**Possibly Available (%d)**\n", len(availability.OverrideIDs))
		writeMentionLines(&b, availability.OverrideIDs, profilesByID)
	}

	if includeNudges {
		missing := missingMainRoster(profiles, attendeeSet, overrideSet)
		fmt.Fprintf(&b, "\n**Awaiting Response (Main)**\n")
		writeProfileMentionLines(&b, missing)
	}

	fmt.Fprintf(&b, "\nVote on your availability at %s", cfg.WebsiteURL)

	return b.String(), nil
}

// BuildRosterReady renders the short broadcast sent once availability crosses
// the minimum-player threshold: confirmed plus possible attendees.
func BuildRosterReady(
	event db.ScheduleEvent,
	availability *EventAvailability,
	profiles []db.PlayerProfile,
	cfg *config.Config,
) (string, error) {
	start, err := schedule.EventStart(event.Date, event.TimeLabel, cfg.Location())
	if err != nil {
		return "", fmt.Errorf("failed to compute event start: %w", err)
	}

	profilesByID := profileMap(profiles)

	var b strings.Builder
	fmt.Fprintf(&b, "ROSTER READY! %s %s\n\n", event.Type, discordclient.DynamicTimestamp(start, discordclient.FlagLongDateTime))

	fmt.Fprintf(&b, "**Confirmed (%d)**\n", len(availability.AttendeeIDs))
	writeMentionLines(&b, availability.AttendeeIDs, profilesByID)

	if len(availability.OverrideIDs) > 0 {
		fmt.Fprintf(&b, "\n**Possible (%d)**\n", len(availability.OverrideIDs))
		writeMentionLines(&b, availability.OverrideIDs, profilesByID)
	}

	return b.String(), nil
}

// PostEventReminder aggregates availability for one event, renders the
// reminder, and posts it to the webhook. A single delivery attempt is made;
// failures are returned to the caller to report once.
func PostEventReminder(
	ctx context.Context,
	store ReminderStore,
	notifier Notifier,
	cfg *config.Config,
	logger *zap.Logger,
	eventID string,
	includeNudges bool,
) (string, error) {
	logger.Debug("Starting postEventReminder",
		zap.String("event_id", eventID),
		zap.Bool("include_nudges", includeNudges))

	event, err := store.GetEvent(ctx, eventID)
	if err != nil {
		return "", fmt.Errorf("failed to fetch event: %w", err)
	}
	if event == nil {
		return "", fmt.Errorf("event not found: %s", eventID)
	}

	profiles, err := store.GetProfiles(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to fetch profiles: %w", err)
	}
	logger.Debug("Found profiles", zap.Int("count", len(profiles)))

	availability, err := AggregateEvent(ctx, store, profiles, logger, eventID)
	if err != nil {
		return "", err
	}

	body, err := BuildEventReminder(*event, availability, profiles, includeNudges, cfg)
	if err != nil {
		return "", err
	}

	message := eventEmbed(*event, fmt.Sprintf("%s Reminder", event.Type), body, discordclient.ColorReminder)
	if err := notifier.Post(ctx, message); err != nil {
		return "", fmt.Errorf("failed to post reminder: %w", err)
	}

	logger.Info("Posted event reminder",
		zap.String("event_id", eventID),
		zap.Int("attending", len(availability.AttendeeIDs)))

	return body, nil
}

// PostRosterReady posts the roster-ready broadcast for an event. It refuses
// to post while availability is still below the threshold.
func PostRosterReady(
	ctx context.Context,
	store ReminderStore,
	notifier Notifier,
	cfg *config.Config,
	logger *zap.Logger,
	eventID string,
) (string, error) {
	logger.Debug("Starting postRosterReady", zap.String("event_id", eventID))

	event, err := store.GetEvent(ctx, eventID)
	if err != nil {
		return "", fmt.Errorf("failed to fetch event: %w", err)
	}
	if event == nil {
		return "", fmt.Errorf("event not found: %s", eventID)
	}

	profiles, err := store.GetProfiles(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to fetch profiles: %w", err)
	}

	availability, err := AggregateEvent(ctx, store, profiles, logger, eventID)
	if err != nil {
		return "", err
	}

	if !RosterReady(len(availability.AttendeeIDs), cfg.MinimumPlayers) {
		return "", fmt.Errorf("roster not ready: %d of %d players available",
			len(availability.AttendeeIDs), cfg.MinimumPlayers)
	}

	body, err := BuildRosterReady(*event, availability, profiles, cfg)
	if err != nil {
		return "", err
	}

	message := eventEmbed(*event, "ROSTER READY!", body, discordclient.ColorRosterReady)
	if err := notifier.Post(ctx, message); err != nil {
		return "", fmt.Errorf("failed to post roster-ready broadcast: %w", err)
	}

	logger.Info("Posted roster-ready broadcast", zap.String("event_id", eventID))

	return body, nil
}

// eventEmbed wraps a rendered body into the webhook embed payload
func eventEmbed(event db.ScheduleEvent, title, body string, color int) discordclient.Message {
	embed := discordclient.Embed{
		Title:       title,
		Description: body,
		Color:       color,
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
		Footer:      &discordclient.EmbedFooter{Text: "TeamSync"},
	}
	if event.ImageURL != "" {
		embed.Image = &discordclient.EmbedImage{URL: event.ImageURL}
	}
	return discordclient.Message{Embeds: []discordclient.Embed{embed}}
}

// writeMentionLines writes one "- <mention>" line per user id, or the None
// placeholder when the list is empty
func writeMentionLines(b *strings.Builder, userIDs []string, profilesByID map[string]db.PlayerProfile) {
	if len(userIDs) == 0 {
		b.WriteString(nonePlaceholder + "\n")
		return
	}
	for _, id := range userIDs {
		fmt.Fprintf(b, "- %s\n", mentionForUser(id, profilesByID))
	}
}

func writeProfileMentionLines(b *strings.Builder, profiles []db.PlayerProfile) {
	if len(profiles) == 0 {
		b.WriteString(nonePlaceholder + "\n")
		return
	}
	for _, profile := range profiles {
		fmt.Fprintf(b, "- %s\n", discordclient.FormatMention(resolveHandle(profile)))
	}
}

// mentionForUser resolves a user id to a mention-or-name string, preferring
// the Discord handle and falling back to the in-app username. Unresolvable
// ids render as "Unknown".
func mentionForUser(userID string, profilesByID map[string]db.PlayerProfile) string {
	profile, exists := profilesByID[userID]
	if !exists {
		return discordclient.FormatMention("")
	}
	return discordclient.FormatMention(resolveHandle(profile))
}

func resolveHandle(profile db.PlayerProfile) string {
	if profile.DiscordUsername != "" {
		return profile.DiscordUsername
	}
	return profile.Username
}

// missingMainRoster returns Main Roster profiles that are neither attending
// nor covered by an override, in roster-sorted order
func missingMainRoster(profiles []db.PlayerProfile, attendeeSet, overrideSet map[string]bool) []db.PlayerProfile {
	missing := make([]db.PlayerProfile, 0)
	for _, profile := range SortRoster(profiles) {
		if profile.RosterStatus != db.RosterStatusMain {
			continue
		}
		if attendeeSet[profile.ID] || overrideSet[profile.ID] {
			continue
		}
		missing = append(missing, profile)
	}
	return missing
}
