package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/scrimsync/teamsync/pkg/core/services"
)

// GrantAdminCmd creates the grantAdmin command
func GrantAdminCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "grantAdmin <uid>",
		Short: "Grant the admin privilege flag to a player",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// The CLI runs as the configured super-admin identity
			caller := services.Caller{UID: app.Cfg.SuperAdminUID, IsAdmin: true}

			message, err := services.GrantAdmin(app.Ctx, app.Database, app.Logger, caller, app.Cfg.SuperAdminUID, args[0])
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ %s\n", message)
			return nil
		},
	}
}
