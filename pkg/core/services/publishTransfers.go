package services

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/mdvenues/kitplanner/internal/config"
	"github.com/mdvenues/kitplanner/pkg/clients/sheetsclient"
)

// ChecklistPublisher publishes a week's transfer checklist
type ChecklistPublisher interface {
	PublishTransferChecklist(spreadsheetID string, checklist *sheetsclient.TransferChecklist) error
}

// PublishTransfers writes the plan's transfers to the configured checklist spreadsheet
func PublishTransfers(
	publisher ChecklistPublisher,
	cfg *config.Config,
	logger *zap.Logger,
	plan *WeekPlan,
) error {
	if cfg == nil || cfg.ChecklistSheetID == "" {
		return errors.New("checklistSheetID is not configured")
	}

	checklist := buildTransferChecklist(plan)
	logger.Debug("Publishing transfer checklist",
		zap.String("week_start", plan.WeekStart),
		zap.Int("rows", len(checklist.Rows)))

	if err := publisher.PublishTransferChecklist(cfg.ChecklistSheetID, checklist); err != nil {
		return fmt.Errorf("failed to publish transfer checklist: %w", err)
	}
	return nil
}

// buildTransferChecklist lists the plan's transfers in plan order using display names
func buildTransferChecklist(plan *WeekPlan) *sheetsclient.TransferChecklist {
	rows := make([]sheetsclient.ChecklistRow, 0, len(plan.Transfers))
	for _, t := range plan.Transfers {
		scenario := t.ScenarioTitle
		if scenario == "" {
			scenario = t.ScenarioID
		}
		rows = append(rows, sheetsclient.ChecklistRow{
			TransferDate: t.TransferDate,
			Scenario:     scenario,
			KitNumber:    t.KitNumber,
			From:         t.FromStoreName,
			To:           t.ToStoreName,
			Reason:       t.Reason,
		})
	}

	return &sheetsclient.TransferChecklist{WeekStart: plan.WeekStart, Rows: rows}
}
