package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/scrimsync/teamsync/internal/config"
	"github.com/scrimsync/teamsync/internal/metrics"
	"github.com/scrimsync/teamsync/pkg/clients/discordclient"
	"github.com/scrimsync/teamsync/pkg/core/schedule"
	"github.com/scrimsync/teamsync/pkg/db"
)

// Sweep lookahead window: events starting strictly more than 15 minutes and
// at most 30 minutes from now qualify.
const (
	sweepWindowMin = 15 * time.Minute
	sweepWindowMax = 30 * time.Minute
)

// SweepStore defines the database operations needed by the reminder sweep
type SweepStore interface {
	GetEvents(ctx context.Context) ([]db.ScheduleEvent, error)
	GetVotes(ctx context.Context) ([]db.Vote, error)
	GetProfiles(ctx context.Context) ([]db.PlayerProfile, error)
	MarkReminded(ctx context.Context, id string, at time.Time) error
}

// SweepResult summarises one sweep run
type SweepResult struct {
	Examined int      // events considered
	Reminded []string // event ids posted
	Failed   []string // event ids whose post failed
}

// SweepDueReminders posts a pre-start reminder for every active event whose
// start falls inside the lookahead window and that has not been reminded
// yet. Each posted event is marked so a later sweep cannot double-send; an
// event whose post fails stays unmarked and is retried while it remains in
// the window.
func SweepDueReminders(
	ctx context.Context,
	store SweepStore,
	notifier Notifier,
	cfg *config.Config,
	logger *zap.Logger,
	now time.Time,
) (*SweepResult, error) {
	logger.Debug("Starting reminder sweep", zap.Time("now", now))
	metrics.SweepRuns.Inc()

	events, err := store.GetEvents(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch events: %w", err)
	}

	due := make([]db.ScheduleEvent, 0)
	for _, event := range events {
		if event.Status == db.EventStatusCancelled {
			continue
		}
		if event.RemindedAt != nil {
			continue
		}

		start, err := schedule.EventStart(event.Date, event.TimeLabel, cfg.Location())
		if err != nil {
			logger.Debug("Skipping event with unparseable start",
				zap.String("event_id", event.ID),
				zap.String("date", event.Date),
				zap.String("time_label", event.TimeLabel))
			continue
		}

		lead := start.Sub(now)
		if lead > sweepWindowMin && lead <= sweepWindowMax {
			due = append(due, event)
		}
	}

	result := &SweepResult{Examined: len(events)}
	if len(due) == 0 {
		logger.Debug("No events due for reminders")
		return result, nil
	}

	votes, err := store.GetVotes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch votes: %w", err)
	}

	profiles, err := store.GetProfiles(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch profiles: %w", err)
	}

	slotVotes := AggregateBySlot(votes, profiles, logger)

	for _, event := range due {
		message, err := buildSweepReminder(event, slotVotes, profiles, cfg)
		if err != nil {
			logger.Warn("Failed to build sweep reminder",
				zap.String("event_id", event.ID),
				zap.Error(err))
			result.Failed = append(result.Failed, event.ID)
			continue
		}

		if err := notifier.Post(ctx, message); err != nil {
			// Logged and dropped; the event stays unmarked so the next
			// sweep inside the window retries it.
			logger.Warn("Failed to post sweep reminder",
				zap.String("event_id", event.ID),
				zap.Error(err))
			metrics.WebhookFailures.Inc()
			result.Failed = append(result.Failed, event.ID)
			continue
		}
		metrics.RemindersSent.Inc()

		if err := store.MarkReminded(ctx, event.ID, now); err != nil {
			logger.Warn("Failed to mark event reminded",
				zap.String("event_id", event.ID),
				zap.Error(err))
		}

		result.Reminded = append(result.Reminded, event.ID)
	}

	logger.Info("Reminder sweep completed",
		zap.Int("examined", result.Examined),
		zap.Int("reminded", len(result.Reminded)),
		zap.Int("failed", len(result.Failed)))

	return result, nil
}

// RunSweepLoop runs the sweep on the configured cadence until ctx is cancelled
func RunSweepLoop(
	ctx context.Context,
	store SweepStore,
	notifier Notifier,
	cfg *config.Config,
	logger *zap.Logger,
) {
	ticker := time.NewTicker(cfg.SweepInterval)
	defer ticker.Stop()

	logger.Info("Reminder sweep loop started", zap.Duration("interval", cfg.SweepInterval))

	for {
		select {
		case <-ctx.Done():
			logger.Info("Reminder sweep loop stopped")
			return
		case <-ticker.C:
			if _, err := SweepDueReminders(ctx, store, notifier, cfg, logger, time.Now()); err != nil {
				logger.Error("Reminder sweep failed", zap.Error(err))
			}
		}
	}
}

// buildSweepReminder renders the fixed-field sweep variant: available,
// unavailable by simple difference over the Main Roster, and players needed.
func buildSweepReminder(
	event db.ScheduleEvent,
	slotVotes SlotAvailability,
	profiles []db.PlayerProfile,
	cfg *config.Config,
) (discordclient.Message, error) {
	start, err := schedule.EventStart(event.Date, event.TimeLabel, cfg.Location())
	if err != nil {
		return discordclient.Message{}, err
	}

	slotKey := schedule.SlotKey(start, event.TimeLabel)
	available := slotVotes[slotKey]
	availableSet := make(map[string]bool, len(available))
	for _, name := range available {
		availableSet[name] = true
	}

	unavailable := make([]string, 0)
	for _, profile := range SortRoster(profiles) {
		if profile.RosterStatus != db.RosterStatusMain {
			continue
		}
		if !availableSet[profile.Username] {
			unavailable = append(unavailable, profile.Username)
		}
	}

	needed := cfg.MinimumPlayers - len(available)
	if needed < 0 {
		needed = 0
	}

	embed := discordclient.Embed{
		Title: fmt.Sprintf("%s starting soon", event.Type),
		Description: fmt.Sprintf("%s starts %s",
			event.Type, discordclient.DynamicTimestamp(start, discordclient.FlagRelative)),
		Color:     discordclient.ColorReminder,
		Timestamp: start.UTC().Format(time.RFC3339),
		Footer:    &discordclient.EmbedFooter{Text: "TeamSync"},
		Fields: []discordclient.EmbedField{
			{Name: fmt.Sprintf("Available (%d)", len(available)), Value: lineList(available)},
			{Name: fmt.Sprintf("Unavailable (%d)", len(unavailable)), Value: lineList(unavailable)},
			{Name: "Players Needed", Value: fmt.Sprintf("%d", needed), Inline: true},
		},
	}
	if event.ImageURL != "" {
		embed.Image = &discordclient.EmbedImage{URL: event.ImageURL}
	}

	message := discordclient.Message{Embeds: []discordclient.Embed{embed}}
	if mention := discordclient.RoleMention(event.DiscordRoleID); mention != "" {
		message.Content = mention
	}

	return message, nil
}

func lineList(names []string) string {
	if len(names) == 0 {
		return nonePlaceholder
	}
	lines := make([]string, len(names))
	for i, name := range names {
		lines[i] = "- " + name
	}
	return strings.Join(lines, "\n")
}
