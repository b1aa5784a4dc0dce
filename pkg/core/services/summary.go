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

const noEventsPlaceholder = "- No events scheduled today"

// DailySummaryStore defines the database operations needed for the daily summary
type DailySummaryStore interface {
	GetEvents(ctx context.Context) ([]db.ScheduleEvent, error)
	GetVotes(ctx context.Context) ([]db.Vote, error)
	GetProfiles(ctx context.Context) ([]db.PlayerProfile, error)
}

// BuildDailySummary renders one line per event scheduled on the day of now,
// showing the slot-vote count against the minimum-player threshold
func BuildDailySummary(
	events []db.ScheduleEvent,
	slotVotes SlotAvailability,
	cfg *config.Config,
	now time.Time,
) string {
	today := now.In(cfg.Location()).Format(schedule.DateLayout)

	var b strings.Builder
	fmt.Fprintf(&b, "Schedule for %s\n\n", today)

	lines := 0
	for _, event := range events {
		if event.Date != today || event.Status == db.EventStatusCancelled {
			continue
		}
		count := len(slotVotes[schedule.SlotKey(mustDate(event.Date), event.TimeLabel)])
		fmt.Fprintf(&b, "- %s: %s (%d/%d)\n", event.TimeLabel, event.Type, count, cfg.MinimumPlayers)
		lines++
	}

	if lines == 0 {
		b.WriteString(noEventsPlaceholder + "\n")
	}

	fmt.Fprintf(&b, "\nVote on your availability at %s", cfg.WebsiteURL)

	return b.String()
}

// PostDailySummary aggregates today's events and posts the summary embed
func PostDailySummary(
	ctx context.Context,
	store DailySummaryStore,
	notifier Notifier,
	cfg *config.Config,
	logger *zap.Logger,
	now time.Time,
) (string, error) {
	logger.Debug("Starting postDailySummary")

	events, err := store.GetEvents(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to fetch events: %w", err)
	}
	logger.Debug("Found events", zap.Int("count", len(events)))

	votes, err := store.GetVotes(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to fetch votes: %w", err)
	}

	profiles, err := store.GetProfiles(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to fetch profiles: %w", err)
	}

	slotVotes := AggregateBySlot(votes, profiles, logger)
	body := BuildDailySummary(events, slotVotes, cfg, now)

	message := discordclient.Message{
		Embeds: []discordclient.Embed{{
			Title:       "Daily Schedule",
			Description: body,
			Color:       discordclient.ColorSummary,
			Timestamp:   now.UTC().Format(time.RFC3339),
			Footer:      &discordclient.EmbedFooter{Text: "TeamSync"},
		}},
	}
	if err := notifier.Post(ctx, message); err != nil {
		return "", fmt.Errorf("failed to post daily summary: %w", err)
	}

	logger.Info("Posted daily summary")

	return body, nil
}

// mustDate parses a stored event date, which is validated on write. A zero
// time keeps a corrupt record from panicking the summary.
func mustDate(dateStr string) time.Time {
	t, err := time.Parse(schedule.DateLayout, dateStr)
	if err != nil {
		return time.Time{}
	}
	return t
}
