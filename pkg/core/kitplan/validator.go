package kitplan

import (
	"fmt"
	"sort"
)

// Shortage describes a store that does not hold enough kits for its performances on a date
type Shortage struct {
	Date          string `json:"date"`
	ScenarioID    string `json:"scenario_id"`
	ScenarioTitle string `json:"scenario_title,omitempty"`
	StoreID       string `json:"store_id"`
	Deficit       int    `json:"deficit"`
	Description   string `json:"description"`
}

// PlanValidation is the result of replaying a transfer plan against demand
type PlanValidation struct {
	Valid     bool       `json:"valid"`
	Shortages []Shortage `json:"shortages"`
}

// Errors returns the human-readable description of every shortage
func (v PlanValidation) Errors() []string {
	errors := make([]string, 0, len(v.Shortages))
	for _, shortage := range v.Shortages {
		errors = append(errors, shortage.Description)
	}
	return errors
}

// ValidateTransferPlan replays a plan day by day and reports every unmet demand.
//
// For each date that has either a demand or a transfer, the transfers dated that day
// are applied first (in list order), then each store's need is compared with the kits
// it holds. Transfers take effect on their transfer date, not on the performance date.
// The inputs are not modified.
func ValidateTransferPlan(
	initialState KitState,
	transfers []KitTransferSuggestion,
	demands []Demand,
	scenarios []Scenario,
) PlanValidation {
	scenarioMap := make(map[string]Scenario, len(scenarios))
	for _, scenario := range scenarios {
		scenarioMap[scenario.ID] = scenario
	}

	transfersByDate := make(map[string][]KitTransferSuggestion)
	dates := make(map[string]bool)
	for _, transfer := range transfers {
		transfersByDate[transfer.TransferDate] = append(transfersByDate[transfer.TransferDate], transfer)
		dates[transfer.TransferDate] = true
	}

	demandsByDate := make(map[string][]Demand)
	for _, day := range groupDemandsByDate(demands) {
		demandsByDate[day.Date] = day.Demands
		dates[day.Date] = true
	}

	sortedDates := make([]string, 0, len(dates))
	for date := range dates {
		sortedDates = append(sortedDates, date)
	}
	sort.Strings(sortedDates)

	state := initialState.Clone()
	shortages := []Shortage{}

	for _, date := range sortedDates {
		for _, transfer := range transfersByDate[date] {
			state.Apply(transfer)
		}

		needs := aggregateNeeds(demandsByDate[date])
		for _, storeNeeds := range needs.Stores {
			for _, need := range storeNeeds.Scenarios {
				available := state.CountAt(need.ScenarioID, storeNeeds.StoreID)
				if available >= need.Count {
					continue
				}

				shortages = append(shortages, newShortage(date, need, storeNeeds.StoreID, need.Count-available, scenarioMap))
			}
		}
	}

	return PlanValidation{
		Valid:     len(shortages) == 0,
		Shortages: shortages,
	}
}

func newShortage(date string, need *scenarioNeed, storeID string, deficit int, scenarios map[string]Scenario) Shortage {
	label := need.ScenarioID
	var title string
	if scenario, ok := scenarios[need.ScenarioID]; ok && scenario.Title != "" {
		title = scenario.Title
		label = scenario.Title
	}

	return Shortage{
		Date:          date,
		ScenarioID:    need.ScenarioID,
		ScenarioTitle: title,
		StoreID:       storeID,
		Deficit:       deficit,
		Description:   fmt.Sprintf("%s: %s is short %d kit(s) at store %s", date, label, deficit, storeID),
	}
}
