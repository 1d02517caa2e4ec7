package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mdvenues/kitplanner/pkg/core/services"
	"github.com/mdvenues/kitplanner/pkg/db"
)

// UpdateTransferCmd creates the updateTransfer command
func UpdateTransferCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "updateTransfer <event_id> <status>",
		Short: "Set a transfer's status (pending, completed, cancelled)",
		Long:  "Set a transfer's status. Completing a transfer moves the kit to its destination store.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			eventID, status := args[0], args[1]

			app.Logger.Debug("updateTransfer command", zap.String("event_id", eventID), zap.String("status", status))

			event, err := services.UpdateTransferStatus(app.Ctx, app.Database, app.Logger, eventID, status)
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Transfer %s is now %s\n", event.ID, event.Status)
			if event.Status == db.TransferStatusCompleted {
				fmt.Printf("  Kit #%d of %s is at %s\n", event.KitNumber, event.ScenarioID, event.ToStoreID)
			}
			fmt.Println()

			return nil
		},
	}
}

// CancelPendingCmd creates the cancelPending command
func CancelPendingCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "cancelPending <start_date> <end_date>",
		Short: "Cancel every pending transfer dated between two dates (inclusive)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			start, end := args[0], args[1]

			app.Logger.Debug("cancelPending command", zap.String("start", start), zap.String("end", end))

			count, err := services.CancelPendingTransfers(app.Ctx, app.Database, app.Logger, start, end)
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Cancelled %d pending transfers between %s and %s\n\n", count, start, end)
			return nil
		},
	}
}
