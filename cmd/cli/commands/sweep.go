package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/scrimsync/teamsync/pkg/core/services"
)

// SweepCmd creates the sweep command
func SweepCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Post reminders for events starting in the next 15-30 minutes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			loop, _ := cmd.Flags().GetBool("loop")

			notifier, err := app.Notifier()
			if err != nil {
				return err
			}

			if loop {
				// Runs until interrupted
				services.RunSweepLoop(app.Ctx, app.Database, notifier, app.Cfg, app.Logger)
				return nil
			}

			result, err := services.SweepDueReminders(app.Ctx, app.Database, notifier, app.Cfg, app.Logger, time.Now())
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Sweep completed: %d events examined\n", result.Examined)
			if len(result.Reminded) > 0 {
				fmt.Printf("Reminders posted for %d events:\n", len(result.Reminded))
				for _, id := range result.Reminded {
					fmt.Printf("  ✓ %s\n", id)
				}
			}
			if len(result.Failed) > 0 {
				fmt.Printf("⚠️  Failed to post %d reminders:\n", len(result.Failed))
				for _, id := range result.Failed {
					fmt.Printf("  ✗ %s\n", id)
				}
			}
			if len(result.Reminded) == 0 && len(result.Failed) == 0 {
				fmt.Println("No events due for reminders.")
			}

			return nil
		},
	}

	cmd.Flags().Bool("loop", false, "Keep sweeping on the configured interval until interrupted")

	return cmd
}
