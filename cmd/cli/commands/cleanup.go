package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/scrimsync/teamsync/pkg/core/schedule"
	"github.com/scrimsync/teamsync/pkg/core/services"
)

// ClearVotesCmd creates the clearVotes command
func ClearVotesCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "clearVotes <week_start>",
		Short: "Delete all availability votes for one week",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			weekStart, err := time.ParseInLocation(schedule.DateLayout, args[0], app.Cfg.Location())
			if err != nil {
				return fmt.Errorf("week_start must be YYYY-MM-DD: %w", err)
			}

			deleted, err := services.ClearWeekVotes(app.Ctx, app.Database, app.Logger, weekStart)
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Deleted %d votes for week of %s\n", deleted, args[0])
			return nil
		},
	}
}

// ClearPastEventsCmd creates the clearPastEvents command
func ClearPastEventsCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "clearPastEvents",
		Short: "Delete all events that have already started",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			deleted, err := services.ClearPastEvents(app.Ctx, app.Database, app.Cfg, app.Logger, time.Now())
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Deleted %d past events\n", deleted)
			return nil
		},
	}
}
