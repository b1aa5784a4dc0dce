package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/scrimsync/teamsync/pkg/core/services"
)

// ListRosterCmd creates the listRoster command
func ListRosterCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "listRoster",
		Short: "List all player profiles in roster order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			profiles, err := app.Database.GetProfiles(app.Ctx)
			if err != nil {
				return fmt.Errorf("failed to list profiles: %w", err)
			}

			sorted := services.SortRoster(profiles)

			fmt.Printf("\nFound %d players:\n\n", len(sorted))
			for _, p := range sorted {
				status := p.RosterStatus
				if status == "" {
					status = "Unassigned"
				}
				adminTag := ""
				if p.IsAdmin {
					adminTag = " [admin]"
				}
				discordInfo := ""
				if p.DiscordUsername != "" {
					discordInfo = fmt.Sprintf(" - %s", p.DiscordUsername)
				}
				fmt.Printf("- %s (%s) - %s%s%s\n", p.Username, p.ID, status, discordInfo, adminTag)
			}

			return nil
		},
	}
}
