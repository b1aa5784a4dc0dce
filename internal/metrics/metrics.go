package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RemindersSent counts webhook reminder messages delivered successfully
	RemindersSent = promauto.NewCounter(prometheus.CounterOpts{
		Name: "teamsync_reminders_sent_total",
		Help: "Webhook reminder messages posted successfully",
	})

	// WebhookFailures counts failed webhook delivery attempts
	WebhookFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "teamsync_webhook_failures_total",
		Help: "Webhook delivery attempts that failed",
	})

	// SweepRuns counts reminder sweep executions
	SweepRuns = promauto.NewCounter(prometheus.CounterOpts{
		Name: "teamsync_sweep_runs_total",
		Help: "Reminder sweep executions",
	})

	// VotesToggled counts slot-vote toggle operations
	VotesToggled = promauto.NewCounter(prometheus.CounterOpts{
		Name: "teamsync_votes_toggled_total",
		Help: "Slot vote toggle operations",
	})
)
