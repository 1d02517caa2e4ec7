package kitplan

// scenarioNeed is the number of kits of one scenario needed at a store on a day
type scenarioNeed struct {
	ScenarioID string
	Count      int
}

// storeNeed holds the per-scenario needs of one store, in order of first appearance
type storeNeed struct {
	StoreID   string
	Scenarios []*scenarioNeed

	index map[string]*scenarioNeed
}

// dayNeeds aggregates a day's demands as store -> scenario -> count.
// Iteration follows the order in which each store and scenario first appeared
// in the demand list, so planning output is reproducible for a given input order.
type dayNeeds struct {
	Stores []*storeNeed

	index map[string]*storeNeed
}

// aggregateNeeds counts the kits required per store and scenario for a set of demands
func aggregateNeeds(demands []Demand) *dayNeeds {
	needs := &dayNeeds{index: make(map[string]*storeNeed)}

	for _, demand := range demands {
		store, ok := needs.index[demand.StoreID]
		if !ok {
			store = &storeNeed{
				StoreID: demand.StoreID,
				index:   make(map[string]*scenarioNeed),
			}
			needs.index[demand.StoreID] = store
			needs.Stores = append(needs.Stores, store)
		}

		scenario, ok := store.index[demand.ScenarioID]
		if !ok {
			scenario = &scenarioNeed{ScenarioID: demand.ScenarioID}
			store.index[demand.ScenarioID] = scenario
			store.Scenarios = append(store.Scenarios, scenario)
		}
		scenario.Count++
	}

	return needs
}

// count returns how many kits of the scenario the store needs (0 if none)
func (n *dayNeeds) count(storeID, scenarioID string) int {
	store, ok := n.index[storeID]
	if !ok {
		return 0
	}
	scenario, ok := store.index[scenarioID]
	if !ok {
		return 0
	}
	return scenario.Count
}
