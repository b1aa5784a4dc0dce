package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/scrimsync/teamsync/pkg/core/services"
)

// SetWebhookCmd creates the setWebhook command
func SetWebhookCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "setWebhook <url>",
		Short: "Persist the Discord webhook URL used for outbound messages",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			caller := services.Caller{UID: app.Cfg.SuperAdminUID, IsAdmin: true}

			message, err := services.SetWebhookURL(app.Ctx, app.Database, app.Logger, caller, args[0])
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ %s\n", message)
			return nil
		},
	}
}

// TestWebhookCmd creates the testWebhook command
func TestWebhookCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "testWebhook",
		Short: "Send a test embed to the configured Discord webhook",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			notifier, err := app.Notifier()
			if err != nil {
				return err
			}

			message, err := services.TestWebhook(app.Ctx, notifier, app.Logger)
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ %s\n", message)
			return nil
		},
	}
}
