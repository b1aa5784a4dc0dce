package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/scrimsync/teamsync/cmd/cli/commands"
	"github.com/scrimsync/teamsync/internal/config"
	"github.com/scrimsync/teamsync/pkg/postgres"
	"github.com/scrimsync/teamsync/pkg/utils/logging"
)

var app = &commands.AppContext{}

func main() {
	rootCmd := &cobra.Command{
		Use:   "teamsync",
		Short: "TeamSync CLI - Manage team availability and Discord reminders",
		Long:  `A CLI tool for posting event reminders, roster summaries, and schedule broadcasts, and for admin maintenance of votes and events.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app != nil {
				if app.Logger != nil {
					app.Logger.Sync()
				}
				if app.Database != nil {
					app.Database.Close()
				}
			}
		},
	}

	rootCmd.AddCommand(commands.PostEventReminderCmd(app))
	rootCmd.AddCommand(commands.PostRosterReadyCmd(app))
	rootCmd.AddCommand(commands.PostDailySummaryCmd(app))
	rootCmd.AddCommand(commands.SweepCmd(app))
	rootCmd.AddCommand(commands.SetWebhookCmd(app))
	rootCmd.AddCommand(commands.TestWebhookCmd(app))
	rootCmd.AddCommand(commands.GrantAdminCmd(app))
	rootCmd.AddCommand(commands.ListRosterCmd(app))
	rootCmd.AddCommand(commands.ListSlotsCmd(app))
	rootCmd.AddCommand(commands.ClearVotesCmd(app))
	rootCmd.AddCommand(commands.ClearPastEventsCmd(app))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// initApp sets up logger, config, and the database connection
func initApp() error {
	_ = godotenv.Load()

	app.Ctx = context.Background()

	logger, err := logging.InitLogger("cli")
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	logger.Info("Loading configuration")
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is not set")
	}

	logger.Info("Connecting to database")
	database, err := postgres.NewDB(app.Ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := database.RunMigrations(app.Ctx); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	logger.Debug("Database initialized successfully")

	app.Cfg = cfg
	app.Database = database
	app.Logger = logger

	return nil
}
