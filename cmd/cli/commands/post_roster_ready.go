package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/scrimsync/teamsync/pkg/core/services"
)

// PostRosterReadyCmd creates the postRosterReady command
func PostRosterReadyCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "postRosterReady <event_id>",
		Short: "Post the roster-ready broadcast for an event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			notifier, err := app.Notifier()
			if err != nil {
				return err
			}

			body, err := services.PostRosterReady(app.Ctx, app.Database, notifier, app.Cfg, app.Logger, args[0])
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Roster-ready broadcast posted!\n\n%s\n", body)
			return nil
		},
	}
}
