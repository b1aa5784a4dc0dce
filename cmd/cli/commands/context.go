package commands

import (
	"context"

	"go.uber.org/zap"

	"github.com/scrimsync/teamsync/internal/config"
	"github.com/scrimsync/teamsync/pkg/clients/discordclient"
	"github.com/scrimsync/teamsync/pkg/core/services"
	"github.com/scrimsync/teamsync/pkg/postgres"
)

// AppContext holds the application dependencies shared across all commands
type AppContext struct {
	Cfg      *config.Config
	Database *postgres.DB
	Logger   *zap.Logger
	Ctx      context.Context
}

// Notifier resolves the effective webhook URL and builds a webhook client
func (a *AppContext) Notifier() (*discordclient.Client, error) {
	url, err := services.ResolveWebhookURL(a.Ctx, a.Database, a.Cfg.WebhookURL)
	if err != nil {
		return nil, err
	}
	return discordclient.NewClient(url)
}
