package commands

import (
	"github.com/spf13/cobra"

	"github.com/mdvenues/kitplanner/internal/api"
)

// ServeCmd creates the serve command
func ServeCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the kit planner HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
				app.Cfg.API.Addr = addr
			}

			server := api.NewServer(app.Cfg, app.Database, app.Logger)
			return server.ListenAndServe(app.Ctx)
		},
	}

	cmd.Flags().String("addr", "", "Listen address (overrides api.addr from config)")

	return cmd
}
