package kitplan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateTransferPlan_AllDemandsSupplied(t *testing.T) {
	validation := ValidateTransferPlan(
		KitState{"alpha": {1: "store-a"}},
		nil,
		[]Demand{{Date: "2025-11-10", StoreID: "store-a", ScenarioID: "alpha"}},
		[]Scenario{{ID: "alpha", Title: "Alpha", KitCount: 1}},
	)

	assert.True(t, validation.Valid)
	assert.Empty(t, validation.Shortages)
	assert.Empty(t, validation.Errors())
}

func TestValidateTransferPlan_NoDemandsNoTransfers(t *testing.T) {
	validation := ValidateTransferPlan(KitState{}, nil, nil, nil)

	assert.True(t, validation.Valid)
	assert.NotNil(t, validation.Shortages)
}

func TestValidateTransferPlan_ReportsShortageMessage(t *testing.T) {
	validation := ValidateTransferPlan(
		KitState{"alpha": {1: "store-a"}},
		nil,
		[]Demand{
			{Date: "2025-11-10", StoreID: "store-b", ScenarioID: "alpha"},
			{Date: "2025-11-10", StoreID: "store-b", ScenarioID: "alpha"},
		},
		[]Scenario{{ID: "alpha", Title: "Alpha", KitCount: 1}},
	)

	assert.False(t, validation.Valid)
	require.Len(t, validation.Shortages, 1)

	shortage := validation.Shortages[0]
	assert.Equal(t, "2025-11-10", shortage.Date)
	assert.Equal(t, "alpha", shortage.ScenarioID)
	assert.Equal(t, "Alpha", shortage.ScenarioTitle)
	assert.Equal(t, "store-b", shortage.StoreID)
	assert.Equal(t, 2, shortage.Deficit)
	assert.Equal(t, []string{"2025-11-10: Alpha is short 2 kit(s) at store store-b"}, validation.Errors())
}

func TestValidateTransferPlan_UnknownScenarioUsesID(t *testing.T) {
	validation := ValidateTransferPlan(
		KitState{},
		nil,
		[]Demand{{Date: "2025-11-10", StoreID: "store-b", ScenarioID: "mystery"}},
		nil,
	)

	require.Len(t, validation.Shortages, 1)
	assert.Empty(t, validation.Shortages[0].ScenarioTitle)
	assert.Equal(t, "2025-11-10: mystery is short 1 kit(s) at store store-b", validation.Shortages[0].Description)
}

func TestValidateTransferPlan_TransferAppliedOnTransferDate(t *testing.T) {
	initial := KitState{"alpha": {1: "store-a"}}
	demands := []Demand{{Date: "2025-11-10", StoreID: "store-b", ScenarioID: "alpha"}}
	scenarios := []Scenario{{ID: "alpha", Title: "Alpha", KitCount: 1}}

	onTime := []KitTransferSuggestion{
		{ScenarioID: "alpha", KitNumber: 1, FromStoreID: "store-a", ToStoreID: "store-b", TransferDate: "2025-11-06"},
	}
	assert.True(t, ValidateTransferPlan(initial, onTime, demands, scenarios).Valid)

	// Arriving after the performance does not help
	late := []KitTransferSuggestion{
		{ScenarioID: "alpha", KitNumber: 1, FromStoreID: "store-a", ToStoreID: "store-b", TransferDate: "2025-11-13"},
	}
	validation := ValidateTransferPlan(initial, late, demands, scenarios)
	assert.False(t, validation.Valid)
	require.Len(t, validation.Shortages, 1)
	assert.Equal(t, "store-b", validation.Shortages[0].StoreID)
}

func TestValidateTransferPlan_SameDayTransferCounts(t *testing.T) {
	validation := ValidateTransferPlan(
		KitState{"alpha": {1: "store-a"}},
		[]KitTransferSuggestion{
			{ScenarioID: "alpha", KitNumber: 1, ToStoreID: "store-b", TransferDate: "2025-11-10"},
		},
		[]Demand{{Date: "2025-11-10", StoreID: "store-b", ScenarioID: "alpha"}},
		nil,
	)

	assert.True(t, validation.Valid)
}

func TestValidateTransferPlan_KitMovedAwayLeavesShortage(t *testing.T) {
	// The kit serves store A on Monday, then moves to store B before A's Friday show
	validation := ValidateTransferPlan(
		KitState{"alpha": {1: "store-a"}},
		[]KitTransferSuggestion{
			{ScenarioID: "alpha", KitNumber: 1, ToStoreID: "store-b", TransferDate: "2025-11-13"},
		},
		[]Demand{
			{Date: "2025-11-10", StoreID: "store-a", ScenarioID: "alpha"},
			{Date: "2025-11-14", StoreID: "store-a", ScenarioID: "alpha"},
		},
		[]Scenario{{ID: "alpha", Title: "Alpha", KitCount: 1}},
	)

	require.Len(t, validation.Shortages, 1)
	assert.Equal(t, "2025-11-14", validation.Shortages[0].Date)
}

func TestValidateTransferPlan_DoesNotMutateInputs(t *testing.T) {
	initial := KitState{"alpha": {1: "store-a"}}
	snapshot := initial.Clone()
	transfers := []KitTransferSuggestion{
		{ScenarioID: "alpha", KitNumber: 1, ToStoreID: "store-b", TransferDate: "2025-11-06"},
		{ScenarioID: "beta", KitNumber: 1, ToStoreID: "store-b", TransferDate: "2025-11-06"},
	}
	demands := []Demand{
		{Date: "2025-11-10", StoreID: "store-b", ScenarioID: "alpha"},
		{Date: "2025-11-09", StoreID: "store-b", ScenarioID: "alpha"},
	}

	ValidateTransferPlan(initial, transfers, demands, nil)

	assert.Equal(t, snapshot, initial)
	assert.Equal(t, "2025-11-10", demands[0].Date, "demands must not be reordered")
}

func TestValidateTransferPlan_PlannerOutputIsValidWhenSupplySuffices(t *testing.T) {
	initial := KitState{
		"alpha": {1: "store-a", 2: "store-b"},
		"beta":  {1: "store-c"},
	}
	demands := []Demand{
		{Date: "2025-11-10", StoreID: "store-c", ScenarioID: "alpha"},
		{Date: "2025-11-11", StoreID: "store-a", ScenarioID: "beta"},
		{Date: "2025-11-12", StoreID: "store-b", ScenarioID: "alpha"},
		{Date: "2025-11-12", StoreID: "store-c", ScenarioID: "alpha"},
	}
	scenarios := []Scenario{
		{ID: "alpha", Title: "Alpha", KitCount: 2},
		{ID: "beta", Title: "Beta", KitCount: 1},
	}

	transfers := CalculateKitTransfers(PlanConfig{
		InitialState: initial,
		Demands:      demands,
		Scenarios:    scenarios,
		Stores:       testStores(),
	})
	require.NotEmpty(t, transfers)

	validation := ValidateTransferPlan(initial, transfers, demands, scenarios)
	assert.True(t, validation.Valid, "unexpected shortages: %v", validation.Errors())

	// Replaying the plan supplies every demand on its date
	state := initial.Clone()
	for _, transfer := range transfers {
		state.Apply(transfer)
	}
	assert.GreaterOrEqual(t, state.CountAt("alpha", "store-b")+state.CountAt("alpha", "store-c"), 2)
}
