package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mdvenues/kitplanner/pkg/core/services"
)

// SetKitLocationCmd creates the setKitLocation command
func SetKitLocationCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "setKitLocation <scenario_id> <kit_number> <store_id>",
		Short: "Record which store currently holds a kit",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			scenarioID, storeID := args[0], args[2]
			kitNumber, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("kit_number must be a number: %w", err)
			}

			app.Logger.Debug("setKitLocation command",
				zap.String("scenario_id", scenarioID),
				zap.Int("kit_number", kitNumber),
				zap.String("store_id", storeID))

			if err := services.SetKitLocation(app.Ctx, app.Database, app.Logger, scenarioID, kitNumber, storeID); err != nil {
				return err
			}

			fmt.Printf("\n✓ Kit #%d of %s is now at %s\n\n", kitNumber, scenarioID, storeID)
			return nil
		},
	}
}

// SetKitConditionCmd creates the setKitCondition command
func SetKitConditionCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "setKitCondition <scenario_id> <kit_number> <condition>",
		Short: "Record the condition of a kit (excellent, good, fair, poor, damaged)",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			scenarioID, condition := args[0], args[2]
			kitNumber, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("kit_number must be a number: %w", err)
			}
			notes, _ := cmd.Flags().GetString("notes")

			app.Logger.Debug("setKitCondition command",
				zap.String("scenario_id", scenarioID),
				zap.Int("kit_number", kitNumber),
				zap.String("condition", condition))

			if err := services.UpdateKitCondition(app.Ctx, app.Database, app.Logger, scenarioID, kitNumber, condition, notes); err != nil {
				return err
			}

			fmt.Printf("\n✓ Kit #%d of %s marked %s\n\n", kitNumber, scenarioID, condition)
			return nil
		},
	}

	cmd.Flags().String("notes", "", "Free-text notes about the kit's condition")

	return cmd
}
