package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mdvenues/kitplanner/pkg/core/kitplan"
	"github.com/mdvenues/kitplanner/pkg/core/services"
)

// PlanWeekCmd creates the planWeek command
func PlanWeekCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "planWeek [week_start]",
		Short: "Plan kit transfers for a week (defaults to the current week)",
		Long: `Plan the kit transfers needed to supply every performance in the 7 days starting at week_start (YYYY-MM-DD).
Use --save to record the transfers as pending and --publish to write the checklist to Google Sheets.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			save, _ := cmd.Flags().GetBool("save")
			publish, _ := cmd.Flags().GetBool("publish")
			weekStart := weekStartArg(args, app.Cfg.WeekStart(), time.Now())

			app.Logger.Debug("planWeek command",
				zap.String("week_start", weekStart),
				zap.Bool("save", save),
				zap.Bool("publish", publish))

			plan, err := services.PlanWeek(app.Ctx, app.Database, app.Cfg, app.Logger, weekStart)
			if err != nil {
				return err
			}

			printWeekPlan(plan)

			if save {
				events, err := services.ConfirmTransfers(app.Ctx, app.Database, app.Logger, plan.Transfers)
				if err != nil {
					return err
				}
				fmt.Printf("✓ Saved %d pending transfers\n", len(events))
			}

			if publish {
				client, err := app.SheetsClient()
				if err != nil {
					return err
				}
				if err := services.PublishTransfers(client, app.Cfg, app.Logger, plan); err != nil {
					return err
				}
				fmt.Printf("✓ Published transfer checklist to sheet %s\n", app.Cfg.ChecklistSheetID)
			}

			return nil
		},
	}

	cmd.Flags().Bool("save", false, "Record the planned transfers as pending transfer events")
	cmd.Flags().Bool("publish", false, "Publish the transfer checklist to the configured Google Sheet")

	return cmd
}

func printWeekPlan(plan *services.WeekPlan) {
	fmt.Printf("\n📦 Kit plan for %s to %s\n\n", plan.WeekStart, plan.WeekEnd)
	fmt.Printf("Performances: %d\n\n", len(plan.Demands))

	if len(plan.Transfers) == 0 {
		fmt.Println("No transfers needed.")
	} else {
		printTransfers(plan.Transfers)
	}
	fmt.Println()

	printValidation(plan.Validation)
}

func printTransfers(transfers []kitplan.KitTransferSuggestion) {
	fmt.Printf("%-10s  %-25s  %-4s  %-15s  %-15s  %s\n", "Date", "Scenario", "Kit", "From", "To", "Reason")
	fmt.Println("----------  -------------------------  ----  ---------------  ---------------  ------------------------------")
	for _, t := range transfers {
		title := t.ScenarioTitle
		if title == "" {
			title = t.ScenarioID
		}
		fmt.Printf("%-10s  %-25s  #%-3d  %-15s  %-15s  %s\n",
			t.TransferDate, title, t.KitNumber, t.FromStoreName, t.ToStoreName, t.Reason)
	}
}

func printValidation(validation kitplan.PlanValidation) {
	if validation.Valid {
		fmt.Println("✅ Every performance has a kit")
		fmt.Println()
		return
	}

	fmt.Printf("⚠️  %d unresolved shortages:\n", len(validation.Shortages))
	for _, message := range validation.Errors() {
		fmt.Printf("  ✗ %s\n", message)
	}
	fmt.Println()
}
