package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mdvenues/kitplanner/pkg/core/services"
)

// ListKitsCmd creates the listKits command
func ListKitsCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "listKits",
		Short: "List every scenario kit with its store and condition",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			kits, err := services.ListKitLocations(app.Ctx, app.Database, app.Logger)
			if err != nil {
				return err
			}

			app.Logger.Info("Kits fetched successfully", zap.Int("count", len(kits)))

			fmt.Printf("\nFound %d kits:\n\n", len(kits))
			fmt.Printf("%-25s  %-4s  %-20s  %-10s  %s\n", "Scenario", "Kit", "Store", "Condition", "Notes")
			fmt.Println("-------------------------  ----  --------------------  ----------  --------------------")
			for _, kit := range kits {
				store := kit.StoreName
				switch {
				case kit.StoreID == "":
					store = "(not placed)"
				case store == "":
					store = kit.StoreID
				}
				condition := kit.Condition
				if condition == "" {
					condition = "—"
				}
				fmt.Printf("%-25s  #%-3d  %-20s  %-10s  %s\n",
					kit.ScenarioTitle, kit.KitNumber, store, condition, kit.ConditionNotes)
			}
			fmt.Println()

			return nil
		},
	}
}
