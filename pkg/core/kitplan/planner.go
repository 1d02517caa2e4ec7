package kitplan

import (
	"fmt"
	"sort"
	"time"
)

// unknownStoreName is shown when a kit comes from a store missing from the catalog
const unknownStoreName = "Unknown"

// PlanConfig contains the inputs for a planning run
type PlanConfig struct {
	// InitialState is the current placement of every numbered kit (may be incomplete).
	// It is never modified by the planner.
	InitialState KitState

	// Demands are the performances to supply, in any order
	Demands []Demand

	// Scenarios and Stores are the reference catalogs
	Scenarios []Scenario
	Stores    []Store

	// AllowedTransferDays are the weekdays on which kits can be moved.
	// nil means DefaultTransferDays; an empty non-nil slice means no weekday is allowed,
	// so every transfer happens the day before the performance.
	AllowedTransferDays []time.Weekday
}

// transferDays resolves the configured weekdays, applying the default for nil
func (c PlanConfig) transferDays() []time.Weekday {
	if c.AllowedTransferDays == nil {
		return DefaultTransferDays()
	}
	return c.AllowedTransferDays
}

// kitCandidate is a kit that could be moved to cover a shortage
type kitCandidate struct {
	KitNumber   int
	FromStoreID string
}

// planner holds the working state of a single planning run
type planner struct {
	state        KitState
	scenarios    map[string]Scenario
	stores       map[string]Store
	originStore  *Store
	transferDays []time.Weekday
	suggestions  []KitTransferSuggestion
}

// CalculateKitTransfers computes the kit moves needed to supply every demand.
//
// Demands are processed one date at a time in ascending order. For each store and
// scenario needed on a date, any shortage is covered by kits from stores that hold
// more copies than they need that day, then by kits that have never been placed
// (sent from the first active store). Candidates are used in the order found and the
// working state is updated after every move, so later needs on the same date see it.
//
// This is a greedy single pass: it does not minimise the number of moves and it
// silently drops any shortage it cannot cover. Use ValidateTransferPlan to find those.
func CalculateKitTransfers(cfg PlanConfig) []KitTransferSuggestion {
	p := newPlanner(cfg)

	for _, day := range groupDemandsByDate(cfg.Demands) {
		performanceDate, err := parseDate(day.Date)
		if err != nil {
			continue
		}
		p.planDay(performanceDate, aggregateNeeds(day.Demands))
	}

	return DeduplicateTransfers(p.suggestions)
}

func newPlanner(cfg PlanConfig) *planner {
	p := &planner{
		state:        cfg.InitialState.Clone(),
		scenarios:    make(map[string]Scenario, len(cfg.Scenarios)),
		stores:       make(map[string]Store, len(cfg.Stores)),
		transferDays: cfg.transferDays(),
	}

	for _, scenario := range cfg.Scenarios {
		p.scenarios[scenario.ID] = scenario
	}
	for _, store := range cfg.Stores {
		p.stores[store.ID] = store
	}
	for i := range cfg.Stores {
		if cfg.Stores[i].Status == StoreStatusActive {
			p.originStore = &cfg.Stores[i]
			break
		}
	}

	return p
}

// planDay covers the shortages of every store and scenario needed on one date
func (p *planner) planDay(date time.Time, needs *dayNeeds) {
	for _, storeNeeds := range needs.Stores {
		for _, need := range storeNeeds.Scenarios {
			scenario, ok := p.scenarios[need.ScenarioID]
			if !ok {
				continue
			}
			store, ok := p.stores[storeNeeds.StoreID]
			if !ok {
				continue
			}

			available := p.state.CountAt(scenario.ID, store.ID)
			shortage := max(need.Count-available, 0)
			if shortage == 0 {
				continue
			}

			candidates := p.findCandidates(scenario, store.ID, needs)
			for i := 0; i < shortage && i < len(candidates); i++ {
				p.moveKit(date, scenario, store, candidates[i])
			}
		}
	}
}

// findCandidates lists the kits of a scenario that could be moved to the store.
// Kits placed at other stores come first, but only when that store holds more
// copies than it needs the same day. Kits never placed anywhere follow, starting
// from the first active store.
func (p *planner) findCandidates(scenario Scenario, storeID string, needs *dayNeeds) []kitCandidate {
	var candidates []kitCandidate
	kitCount := scenario.kitCount()

	for kitNumber := 1; kitNumber <= kitCount; kitNumber++ {
		location, placed := p.state.Location(scenario.ID, kitNumber)
		if !placed || location == storeID {
			continue
		}

		kitsAtLocation := p.state.CountAt(scenario.ID, location)
		if kitsAtLocation > needs.count(location, scenario.ID) {
			candidates = append(candidates, kitCandidate{KitNumber: kitNumber, FromStoreID: location})
		}
	}

	if p.originStore == nil {
		return candidates
	}

	for kitNumber := 1; kitNumber <= kitCount; kitNumber++ {
		if _, placed := p.state.Location(scenario.ID, kitNumber); !placed {
			candidates = append(candidates, kitCandidate{KitNumber: kitNumber, FromStoreID: p.originStore.ID})
		}
	}

	return candidates
}

// moveKit records a suggestion for the candidate and applies it to the working state
func (p *planner) moveKit(date time.Time, scenario Scenario, to Store, candidate kitCandidate) {
	fromName := unknownStoreName
	if from, ok := p.stores[candidate.FromStoreID]; ok && from.DisplayName() != "" {
		fromName = from.DisplayName()
	}

	suggestion := KitTransferSuggestion{
		ScenarioID:    scenario.ID,
		ScenarioTitle: scenario.Title,
		KitNumber:     candidate.KitNumber,
		FromStoreID:   candidate.FromStoreID,
		FromStoreName: fromName,
		ToStoreID:     to.ID,
		ToStoreName:   to.DisplayName(),
		TransferDate:  FindNearestTransferDay(date, p.transferDays).Format(DateLayout),
		Reason:        fmt.Sprintf("Performance at %s on %s", to.DisplayName(), formatDateShort(date)),
	}

	p.suggestions = append(p.suggestions, suggestion)
	p.state.Apply(suggestion)
}

// dateDemands are the demands that fall on a single date
type dateDemands struct {
	Date    string
	Demands []Demand
}

// groupDemandsByDate sorts demands by date (keeping input order within a date)
// and groups them into ascending date buckets
func groupDemandsByDate(demands []Demand) []dateDemands {
	sorted := make([]Demand, len(demands))
	copy(sorted, demands)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date < sorted[j].Date
	})

	var groups []dateDemands
	for _, demand := range sorted {
		if len(groups) == 0 || groups[len(groups)-1].Date != demand.Date {
			groups = append(groups, dateDemands{Date: demand.Date})
		}
		last := &groups[len(groups)-1]
		last.Demands = append(last.Demands, demand)
	}

	return groups
}
