package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/scrimsync/teamsync/pkg/core/services"
)

// PostEventReminderCmd creates the postEventReminder command
func PostEventReminderCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "postEventReminder <event_id>",
		Short: "Post an availability reminder for an event to Discord",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eventID := args[0]
			includeNudges, _ := cmd.Flags().GetBool("nudges")

			notifier, err := app.Notifier()
			if err != nil {
				return err
			}

			body, err := services.PostEventReminder(app.Ctx, app.Database, notifier, app.Cfg, app.Logger, eventID, includeNudges)
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Reminder posted!\n\n%s\n", body)
			return nil
		},
	}

	cmd.Flags().Bool("nudges", false, "Include the Awaiting Response section for missing Main Roster players")

	return cmd
}
