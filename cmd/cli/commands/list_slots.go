package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/scrimsync/teamsync/pkg/core/schedule"
)

// ListSlotsCmd creates the listSlots command
func ListSlotsCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "listSlots [week_start]",
		Short: "Show the week's availability slot keys from the configured templates",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			weekStart := time.Now().In(app.Cfg.Location())
			if len(args) > 0 {
				parsed, err := time.ParseInLocation(schedule.DateLayout, args[0], app.Cfg.Location())
				if err != nil {
					return fmt.Errorf("week_start must be YYYY-MM-DD: %w", err)
				}
				weekStart = parsed
			}

			templates := make([]schedule.SlotTemplate, len(app.Cfg.SlotTemplates))
			for i, tmpl := range app.Cfg.SlotTemplates {
				templates[i] = schedule.SlotTemplate{RRule: tmpl.RRule, TimeLabel: tmpl.TimeLabel}
			}

			slots, err := schedule.ExpandWeekSlots(templates, weekStart)
			if err != nil {
				return fmt.Errorf("failed to expand slot templates: %w", err)
			}

			if len(slots) == 0 {
				fmt.Println("No slot templates configured.")
				return nil
			}

			fmt.Printf("\nSlots for week of %s:\n\n", weekStart.Format(schedule.DateLayout))
			for _, slot := range slots {
				fmt.Printf("- %s\n", slot)
			}

			return nil
		},
	}
}
