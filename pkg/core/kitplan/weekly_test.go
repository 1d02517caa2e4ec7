package kitplan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptimizeWeeklyTransfers_FinalStateReflectsTransfers(t *testing.T) {
	initial := KitState{"alpha": {1: "store-a"}}

	plan := OptimizeWeeklyTransfers(PlanConfig{
		InitialState: initial,
		Demands: []Demand{
			{Date: "2025-11-10", StoreID: "store-b", ScenarioID: "alpha"},
		},
		Scenarios: []Scenario{{ID: "alpha", Title: "Alpha", KitCount: 1}},
		Stores:    testStores(),
	})

	require.Len(t, plan.Transfers, 1)
	assert.Equal(t, KitState{"alpha": {1: "store-b"}}, plan.FinalState)
	assert.Equal(t, KitState{"alpha": {1: "store-a"}}, initial)
}

func TestOptimizeWeeklyTransfers_BootstrapsUnplacedKits(t *testing.T) {
	plan := OptimizeWeeklyTransfers(PlanConfig{
		InitialState: nil,
		Demands: []Demand{
			{Date: "2025-11-12", StoreID: "store-c", ScenarioID: "alpha"},
		},
		Scenarios: []Scenario{{ID: "alpha", Title: "Alpha", KitCount: 2}},
		Stores:    testStores(),
	})

	require.Len(t, plan.Transfers, 1)
	storeID, placed := plan.FinalState.Location("alpha", 1)
	assert.True(t, placed)
	assert.Equal(t, "store-c", storeID)

	_, placed = plan.FinalState.Location("alpha", 2)
	assert.False(t, placed)
}

func TestOptimizeWeeklyTransfers_KitsNeverDuplicated(t *testing.T) {
	scenarios := []Scenario{
		{ID: "alpha", Title: "Alpha", KitCount: 2},
		{ID: "beta", Title: "Beta", KitCount: 3},
	}

	plan := OptimizeWeeklyTransfers(PlanConfig{
		InitialState: KitState{
			"alpha": {1: "store-a", 2: "store-a"},
			"beta":  {1: "store-b"},
		},
		Demands: []Demand{
			{Date: "2025-11-10", StoreID: "store-b", ScenarioID: "alpha"},
			{Date: "2025-11-10", StoreID: "store-c", ScenarioID: "alpha"},
			{Date: "2025-11-11", StoreID: "store-a", ScenarioID: "beta"},
			{Date: "2025-11-11", StoreID: "store-c", ScenarioID: "beta"},
			{Date: "2025-11-13", StoreID: "store-a", ScenarioID: "alpha"},
			{Date: "2025-11-15", StoreID: "store-c", ScenarioID: "beta"},
		},
		Scenarios: scenarios,
		Stores:    testStores(),
	})

	for _, scenario := range scenarios {
		kits := plan.FinalState[scenario.ID]
		assert.LessOrEqual(t, len(kits), scenario.KitCount)

		total := 0
		for _, store := range testStores() {
			total += plan.FinalState.CountAt(scenario.ID, store.ID)
		}
		assert.Equal(t, len(kits), total, "every kit of %s is at exactly one store", scenario.ID)

		for kitNumber := range kits {
			assert.GreaterOrEqual(t, kitNumber, 1)
			assert.LessOrEqual(t, kitNumber, scenario.KitCount)
		}
	}
}
