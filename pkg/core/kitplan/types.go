package kitplan

// StoreStatusActive marks stores that can act as the origin for kits that have never been placed
const StoreStatusActive = "active"

// Scenario is a playable scenario and the number of physical kit copies that exist for it
type Scenario struct {
	ID    string `json:"id"`
	Title string `json:"title"`

	// KitCount is the number of independently located copies of this scenario's kit.
	// Kit numbers run from 1 to KitCount inclusive. Zero is treated as a single kit.
	KitCount int `json:"kit_count"`
}

// kitCount returns the effective number of kits for the scenario
func (s Scenario) kitCount() int {
	if s.KitCount <= 0 {
		return 1
	}
	return s.KitCount
}

// Store is a venue that hosts performances and holds kits
type Store struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	ShortName string `json:"short_name"`
	Status    string `json:"status"`
}

// DisplayName returns the short name of the store, falling back to its full name
func (s Store) DisplayName() string {
	if s.ShortName != "" {
		return s.ShortName
	}
	return s.Name
}

// Demand is a single performance that needs one kit of a scenario at a store on a date
type Demand struct {
	Date       string `json:"date"` // Format: "2006-01-02"
	StoreID    string `json:"store_id"`
	ScenarioID string `json:"scenario_id"`
}

// KitTransferSuggestion is an instruction to move one numbered kit between stores on a date
type KitTransferSuggestion struct {
	ScenarioID    string `json:"scenario_id"`
	ScenarioTitle string `json:"scenario_title"`
	KitNumber     int    `json:"kit_number"`
	FromStoreID   string `json:"from_store_id"`
	FromStoreName string `json:"from_store_name"`
	ToStoreID     string `json:"to_store_id"`
	ToStoreName   string `json:"to_store_name"`
	TransferDate  string `json:"transfer_date"` // Format: "2006-01-02"
	Reason        string `json:"reason"`
}

// KitState maps scenario ID -> kit number -> ID of the store currently holding that kit.
// A kit number missing from the inner map (or mapped to "") has not been placed anywhere.
type KitState map[string]map[int]string

// Clone returns a deep copy of the state so the copy can be mutated freely
func (ks KitState) Clone() KitState {
	clone := make(KitState, len(ks))
	for scenarioID, kits := range ks {
		inner := make(map[int]string, len(kits))
		for kitNumber, storeID := range kits {
			inner[kitNumber] = storeID
		}
		clone[scenarioID] = inner
	}
	return clone
}

// Location returns the store holding the given kit and whether the kit has been placed
func (ks KitState) Location(scenarioID string, kitNumber int) (string, bool) {
	storeID, ok := ks[scenarioID][kitNumber]
	if !ok || storeID == "" {
		return "", false
	}
	return storeID, true
}

// CountAt returns how many kits of the scenario are currently at the store
func (ks KitState) CountAt(scenarioID, storeID string) int {
	count := 0
	for _, sid := range ks[scenarioID] {
		if sid == storeID {
			count++
		}
	}
	return count
}

// Place records the kit as being at the given store
func (ks KitState) Place(scenarioID string, kitNumber int, storeID string) {
	if ks[scenarioID] == nil {
		ks[scenarioID] = make(map[int]string)
	}
	ks[scenarioID][kitNumber] = storeID
}

// Apply moves the kit named by the transfer to its destination store
func (ks KitState) Apply(transfer KitTransferSuggestion) {
	ks.Place(transfer.ScenarioID, transfer.KitNumber, transfer.ToStoreID)
}
