package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mdvenues/kitplanner/pkg/core/services"
)

// ValidateWeekCmd creates the validateWeek command
func ValidateWeekCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "validateWeek [week_start]",
		Short: "Check that pending transfers cover a week's performances",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			weekStart := weekStartArg(args, app.Cfg.WeekStart(), time.Now())

			app.Logger.Debug("validateWeek command", zap.String("week_start", weekStart))

			result, err := services.ValidateWeek(app.Ctx, app.Database, app.Logger, weekStart)
			if err != nil {
				return err
			}

			fmt.Printf("\n🔎 Validation for %s to %s\n\n", result.WeekStart, result.WeekEnd)
			fmt.Printf("Pending transfers: %d\n\n", len(result.PendingTransfers))
			if len(result.PendingTransfers) > 0 {
				printTransfers(result.PendingTransfers)
				fmt.Println()
			}

			printValidation(result.Validation)
			return nil
		},
	}
}
