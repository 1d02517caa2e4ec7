package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mdvenues/kitplanner/cmd/cli/commands"
	"github.com/mdvenues/kitplanner/internal/config"
	"github.com/mdvenues/kitplanner/pkg/postgres"
	"github.com/mdvenues/kitplanner/pkg/utils/logging"
)

var (
	env string
	app = &commands.AppContext{}
	pg  *postgres.DB
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	app.Ctx = ctx

	rootCmd := &cobra.Command{
		Use:   "kitplanner",
		Short: "Kit Planner CLI - Plan scenario kit transfers between stores",
		Long:  `A CLI tool for planning, confirming, and tracking the movement of scenario kits between venues.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if pg != nil {
				pg.Close()
			}
			if app.Logger != nil {
				_ = app.Logger.Sync()
			}
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVarP(&env, "env", "e", "", "Environment (required: test, prod, etc.)")
	rootCmd.MarkPersistentFlagRequired("env")

	rootCmd.AddCommand(commands.PlanWeekCmd(app))
	rootCmd.AddCommand(commands.ValidateWeekCmd(app))
	rootCmd.AddCommand(commands.ListKitsCmd(app))
	rootCmd.AddCommand(commands.SetKitLocationCmd(app))
	rootCmd.AddCommand(commands.SetKitConditionCmd(app))
	rootCmd.AddCommand(commands.UpdateTransferCmd(app))
	rootCmd.AddCommand(commands.CancelPendingCmd(app))
	rootCmd.AddCommand(commands.ServeCmd(app))
	rootCmd.AddCommand(commands.InteractiveCmd(app))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// initApp loads config, sets up the logger and connects to the database
func initApp() error {
	var err error
	app.Env = env

	app.Cfg, err = config.LoadWithEnv(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	app.Logger, err = logging.InitLogger(env, app.Cfg.LogDir)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	app.Logger.Info("Starting application", zap.String("environment", env))

	app.Logger.Info("Connecting to database")
	pg, err = postgres.NewDB(app.Ctx, app.Cfg.DatabaseURL, app.Cfg.OrganizationID)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := pg.RunMigrations(app.Ctx); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	app.Database = pg
	app.Logger.Info("Database initialized successfully", zap.String("organization_id", app.Cfg.OrganizationID))

	return nil
}
