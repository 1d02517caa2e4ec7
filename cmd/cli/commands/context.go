package commands

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/mdvenues/kitplanner/internal/config"
	"github.com/mdvenues/kitplanner/pkg/clients/sheetsclient"
	"github.com/mdvenues/kitplanner/pkg/core/kitplan"
	"github.com/mdvenues/kitplanner/pkg/core/services"
	"github.com/mdvenues/kitplanner/pkg/db"
)

// AppContext holds the application dependencies shared across all commands
type AppContext struct {
	Env      string
	Cfg      *config.Config
	Database db.Database
	Logger   *zap.Logger
	Ctx      context.Context

	sheetsClient *sheetsclient.Client
}

// SheetsClient returns the Google Sheets client, authenticating on first use
func (app *AppContext) SheetsClient() (*sheetsclient.Client, error) {
	if app.sheetsClient != nil {
		return app.sheetsClient, nil
	}

	app.Logger.Info("Loading OAuth client configuration")
	oauthCfg, err := config.LoadOAuthClientWithEnv(app.Env)
	if err != nil {
		return nil, fmt.Errorf("failed to load OAuth client config: %w", err)
	}

	client, err := sheetsclient.NewClient(app.Ctx, oauthCfg, app.Env, app.Logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets client: %w", err)
	}

	app.sheetsClient = client
	return client, nil
}

// weekStartArg returns the week given on the command line, or the current week
func weekStartArg(args []string, startDay time.Weekday, now time.Time) string {
	if len(args) > 0 {
		return args[0]
	}
	return services.WeekStartFor(now, startDay).Format(kitplan.DateLayout)
}
