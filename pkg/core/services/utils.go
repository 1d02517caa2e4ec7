package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/mdvenues/kitplanner/internal/config"
	"github.com/mdvenues/kitplanner/pkg/core/kitplan"
	"github.com/mdvenues/kitplanner/pkg/db"
)

var (
	ErrInvalidDate         = errors.New("invalid date")
	ErrInvalidStatus       = errors.New("invalid transfer status")
	ErrInvalidCondition    = errors.New("invalid kit condition")
	ErrKitNumberOutOfRange = errors.New("kit number out of range")
	ErrUnknownScenario     = errors.New("unknown scenario")
	ErrUnknownStore        = errors.New("unknown store")
)

// daysPerWeek is the length of a planning window
const daysPerWeek = 7

// WeekStartFor returns midnight UTC of the first day of the week containing date,
// where weeks begin on startDay
func WeekStartFor(date time.Time, startDay time.Weekday) time.Time {
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	diff := (int(day.Weekday()) - int(startDay) + daysPerWeek) % daysPerWeek
	return day.AddDate(0, 0, -diff)
}

// weekWindow is an inclusive range of "2006-01-02" dates
type weekWindow struct {
	Start string
	End   string
}

// resolveWeek returns the 7-day window beginning on weekStart
func resolveWeek(weekStart string) (weekWindow, error) {
	start, err := parseDate(weekStart)
	if err != nil {
		return weekWindow{}, err
	}
	return weekWindow{
		Start: start.Format(kitplan.DateLayout),
		End:   start.AddDate(0, 0, daysPerWeek-1).Format(kitplan.DateLayout),
	}, nil
}

func parseDate(date string) (time.Time, error) {
	t, err := time.Parse(kitplan.DateLayout, date)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w %q: expected YYYY-MM-DD", ErrInvalidDate, date)
	}
	return t, nil
}

// allowedTransferDays reads the configured transfer weekdays; nil selects the planner default
func allowedTransferDays(cfg *config.Config) []time.Weekday {
	if cfg == nil {
		return nil
	}
	return cfg.AllowedTransferDays()
}

// plannerStores converts store records, keeping catalog order
func plannerStores(stores []db.Store) []kitplan.Store {
	result := make([]kitplan.Store, 0, len(stores))
	for _, s := range stores {
		result = append(result, kitplan.Store{
			ID:        s.ID,
			Name:      s.Name,
			ShortName: s.ShortName,
			Status:    s.Status,
		})
	}
	return result
}

// scenariosWithKits converts the scenarios that have at least one physical kit
func scenariosWithKits(scenarios []db.Scenario) []kitplan.Scenario {
	result := make([]kitplan.Scenario, 0, len(scenarios))
	for _, s := range scenarios {
		if s.KitCount <= 0 {
			continue
		}
		result = append(result, kitplan.Scenario{ID: s.ID, Title: s.Title, KitCount: s.KitCount})
	}
	return result
}

// buildKitState maps kit location records to the planner's state
func buildKitState(locations []db.KitLocation) kitplan.KitState {
	state := make(kitplan.KitState)
	for _, loc := range locations {
		state.Place(loc.ScenarioID, loc.KitNumber, loc.StoreID)
	}
	return state
}

// buildDemands turns each scheduled performance into one demand
func buildDemands(performances []db.Performance) []kitplan.Demand {
	demands := make([]kitplan.Demand, 0, len(performances))
	for _, p := range performances {
		demands = append(demands, kitplan.Demand{Date: p.Date, StoreID: p.StoreID, ScenarioID: p.ScenarioID})
	}
	return demands
}

// demandsForScenarios keeps the demands whose scenario is in the list
func demandsForScenarios(demands []kitplan.Demand, scenarios []kitplan.Scenario) []kitplan.Demand {
	known := make(map[string]bool, len(scenarios))
	for _, s := range scenarios {
		known[s.ID] = true
	}

	filtered := make([]kitplan.Demand, 0, len(demands))
	for _, d := range demands {
		if known[d.ScenarioID] {
			filtered = append(filtered, d)
		}
	}
	return filtered
}

// findScenario returns the scenario with the given ID
func findScenario(scenarios []db.Scenario, id string) (*db.Scenario, bool) {
	for i := range scenarios {
		if scenarios[i].ID == id {
			return &scenarios[i], true
		}
	}
	return nil, false
}

// findStore returns the store with the given ID
func findStore(stores []db.Store, id string) (*db.Store, bool) {
	for i := range stores {
		if stores[i].ID == id {
			return &stores[i], true
		}
	}
	return nil, false
}
