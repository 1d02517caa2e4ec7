package sheetsclient

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
)

const tabDateLayout = "Mon Jan 02 2006"

// Checklist column headers, in sheet order
const (
	ColTransferDate = "Transfer date"
	ColScenario     = "Scenario"
	ColKit          = "Kit"
	ColFrom         = "From"
	ColTo           = "To"
	ColReason       = "Reason"
	ColDone         = "Done"
)

var checklistHeader = []interface{}{ColTransferDate, ColScenario, ColKit, ColFrom, ColTo, ColReason, ColDone}

// ChecklistRow is a single kit move for staff to carry out
type ChecklistRow struct {
	TransferDate string // Format: "2006-01-02"
	Scenario     string
	KitNumber    int
	From         string
	To           string
	Reason       string
}

// TransferChecklist is one planning week's kit moves
type TransferChecklist struct {
	WeekStart string // Format: "2006-01-02"
	Rows      []ChecklistRow
}

// PublishTransferChecklist writes the checklist to a tab named after the week,
// e.g. "Kits Mon Nov 10 2025 - Sun Nov 16 2025". The tab is created if missing.
// When the tab already exists it is rewritten, keeping the Done cell of rows
// that match on transfer date, scenario, kit and destination.
func (c *Client) PublishTransferChecklist(spreadsheetID string, checklist *TransferChecklist) error {
	tabTitle, err := checklistTabTitle(checklist.WeekStart)
	if err != nil {
		return fmt.Errorf("failed to generate tab title: %w", err)
	}

	exists, err := c.HasSheet(spreadsheetID, tabTitle)
	if err != nil {
		return err
	}

	var existing [][]interface{}
	if exists {
		existing, err = c.GetValues(spreadsheetID, fmt.Sprintf("'%s'!A1:ZZ", tabTitle))
		if err != nil {
			return fmt.Errorf("failed to read existing checklist: %w", err)
		}
		if err := c.ClearValues(spreadsheetID, fmt.Sprintf("'%s'!A1:ZZ", tabTitle)); err != nil {
			return err
		}
	} else {
		if _, err := c.CreateSheet(spreadsheetID, tabTitle); err != nil {
			return fmt.Errorf("failed to create tab: %w", err)
		}
	}

	values := buildChecklistValues(checklist.Rows, existingDoneValues(existing))
	if err := c.WriteValues(spreadsheetID, fmt.Sprintf("'%s'!A1", tabTitle), values); err != nil {
		return fmt.Errorf("failed to write checklist: %w", err)
	}

	c.logger.Info("Published transfer checklist",
		zap.String("tab", tabTitle),
		zap.Int("rows", len(checklist.Rows)),
		zap.Bool("updated_existing", exists))

	return nil
}

// checklistTabTitle names the tab for the 7-day week starting on weekStart
func checklistTabTitle(weekStart string) (string, error) {
	start, err := time.Parse("2006-01-02", weekStart)
	if err != nil {
		return "", fmt.Errorf("invalid week start: %w", err)
	}
	end := start.AddDate(0, 0, 6)

	return fmt.Sprintf("Kits %s - %s", start.Format(tabDateLayout), end.Format(tabDateLayout)), nil
}

// formatTransferDate renders "2025-11-06" as "Thu Nov 06"; unparseable dates pass through
func formatTransferDate(date string) string {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	return t.Format("Mon Jan 02")
}

func rowKey(date, scenario, kit, to string) string {
	return strings.Join([]string{date, scenario, kit, to}, "\x1f")
}

// existingDoneValues indexes the Done cells of a previously published checklist by row key
func existingDoneValues(existing [][]interface{}) map[string]interface{} {
	done := make(map[string]interface{})
	if len(existing) == 0 {
		return done
	}

	header := existing[0]
	dateCol := findColumnIndex(header, ColTransferDate)
	scenarioCol := findColumnIndex(header, ColScenario)
	kitCol := findColumnIndex(header, ColKit)
	toCol := findColumnIndex(header, ColTo)
	doneCol := findColumnIndex(header, ColDone)
	if dateCol == -1 || scenarioCol == -1 || kitCol == -1 || toCol == -1 || doneCol == -1 {
		return done
	}

	for _, row := range existing[1:] {
		value := cell(row, doneCol)
		if value == "" {
			continue
		}
		key := rowKey(cell(row, dateCol), cell(row, scenarioCol), cell(row, kitCol), cell(row, toCol))
		done[key] = row[doneCol]
	}

	return done
}

// buildChecklistValues renders the header and rows, restoring preserved Done cells
func buildChecklistValues(rows []ChecklistRow, done map[string]interface{}) [][]interface{} {
	values := make([][]interface{}, 0, len(rows)+1)
	values = append(values, checklistHeader)

	for _, row := range rows {
		date := formatTransferDate(row.TransferDate)
		kit := fmt.Sprint(row.KitNumber)

		doneValue, ok := done[rowKey(date, row.Scenario, kit, row.To)]
		if !ok {
			doneValue = ""
		}

		values = append(values, []interface{}{date, row.Scenario, row.KitNumber, row.From, row.To, row.Reason, doneValue})
	}

	return values
}

// findColumnIndex returns the index of the header cell matching name, or -1
func findColumnIndex(header []interface{}, name string) int {
	for i, h := range header {
		if strings.EqualFold(strings.TrimSpace(fmt.Sprint(h)), name) {
			return i
		}
	}
	return -1
}

func cell(row []interface{}, col int) string {
	if col < 0 || col >= len(row) || row[col] == nil {
		return ""
	}
	return strings.TrimSpace(fmt.Sprint(row[col]))
}
