package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/scrimsync/teamsync/pkg/core/services"
)

// PostDailySummaryCmd creates the postDailySummary command
func PostDailySummaryCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "postDailySummary",
		Short: "Post today's schedule summary to Discord",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			notifier, err := app.Notifier()
			if err != nil {
				return err
			}

			body, err := services.PostDailySummary(app.Ctx, app.Database, notifier, app.Cfg, app.Logger, time.Now())
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Daily summary posted!\n\n%s\n", body)
			return nil
		},
	}
}
